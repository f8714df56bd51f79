package runtime

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/sergev/mica/lang"
	"github.com/sergev/mica/parser"
)

// NewEvaluator constructs an evaluator with the natives and prelude installed.
func NewEvaluator() *lang.Evaluator {
	ev := lang.NewEvaluator()
	installPrimitives(ev)
	if err := installLibrary(ev); err != nil {
		panic(fmt.Errorf("runtime bootstrap failed: %w", err))
	}
	return ev
}

// SetArgv stores the command-line arguments as an array of strings in the
// given environment.
func SetArgv(env *lang.Env, args []string) {
	values := make([]lang.Value, len(args))
	for i, arg := range args {
		values[i] = lang.StringValue(arg)
	}
	env.Define("argv", lang.ArrayValue(values))
}

func installLibrary(ev *lang.Evaluator) error {
	for _, src := range preludeSources {
		if _, err := EvaluateString(ev, src); err != nil {
			return err
		}
	}
	return nil
}

func readFileSkippingShebang(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if bytes.HasPrefix(data, []byte("#!")) {
		if idx := bytes.IndexByte(data, '\n'); idx >= 0 {
			// Keep the newline so diagnostics report the file's own line numbers.
			return data[idx:], nil
		}
		return []byte{}, nil
	}
	return data, nil
}

// EvaluateString parses and evaluates source in the root environment.
func EvaluateString(ev *lang.Evaluator, src string) (lang.Value, error) {
	prog, err := parser.ParseString(src)
	if err != nil {
		return lang.Value{}, err
	}
	return ev.Evaluate(prog, nil)
}

// EvaluateReader parses and evaluates all source from the reader.
func EvaluateReader(ev *lang.Evaluator, r io.Reader) (lang.Value, error) {
	prog, err := parser.ParseReader(r)
	if err != nil {
		return lang.Value{}, err
	}
	return ev.Evaluate(prog, nil)
}

// EvaluateFile loads and executes a source file, allowing a #! line.
func EvaluateFile(ev *lang.Evaluator, path string) (lang.Value, error) {
	data, err := readFileSkippingShebang(path)
	if err != nil {
		return lang.Value{}, err
	}
	return EvaluateReader(ev, bytes.NewReader(data))
}
