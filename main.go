package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"
	"github.com/sergev/mica/config"
	"github.com/sergev/mica/lang"
	"github.com/sergev/mica/parser"
	"github.com/sergev/mica/runtime"
)

func main() {
	ev := runtime.NewEvaluator()
	args := os.Args[1:]
	if len(args) > 0 {
		runtime.SetArgv(ev.Global, args)
		// Failures are reported but do not change the exit status.
		runScript(ev, args[0], os.Stdin, os.Stderr)
		return
	}

	cfg, err := config.LoadDefault()
	if err != nil {
		fmt.Fprintf(os.Stderr, "mica: %v\n", err)
	}
	runtime.SetArgv(ev.Global, []string{})
	runREPL(ev, cfg)
}

func runScript(ev *lang.Evaluator, script string, stdin io.Reader, stderr io.Writer) {
	var err error
	if script == "-" {
		_, err = runtime.EvaluateReader(ev, stdin)
	} else {
		_, err = runtime.EvaluateFile(ev, script)
	}
	if err != nil {
		reportError(stderr, err)
	}
}

// reportError prints every parse diagnostic on its own line, or the single
// runtime error.
func reportError(w io.Writer, err error) {
	var serr *parser.SyntaxError
	if errors.As(err, &serr) {
		for _, msg := range serr.Messages {
			fmt.Fprintf(w, "parse error: %s\n", msg)
		}
		return
	}
	var ierr *parser.IllegalTokenError
	if errors.As(err, &ierr) {
		fmt.Fprintf(w, "parse error: %v\n", err)
		return
	}
	fmt.Fprintf(w, "error: %v\n", err)
}

func runREPL(ev *lang.Evaluator, cfg config.Config) {
	if !isInteractive() {
		runBufferedREPL(ev, bufio.NewReader(os.Stdin), cfg, os.Stdout, os.Stderr)
		return
	}
	runInteractiveREPL(ev, cfg)
}

// replStep parses and evaluates one buffered chunk of input. It returns
// false when the chunk ends inside an unclosed construct and more lines
// should be read first.
func replStep(ev *lang.Evaluator, src string, atEOF bool, cfg config.Config, out, errOut io.Writer) bool {
	prog, err := parser.ParseString(src)
	if err != nil {
		if parser.IsIncomplete(err) && !atEOF {
			return false
		}
		reportError(errOut, err)
		return true
	}
	val, err := ev.Evaluate(prog, nil)
	if err != nil {
		reportError(errOut, err)
		return true
	}
	if shouldEcho(val, cfg) {
		fmt.Fprintln(out, val.Inspect())
	}
	return true
}

func shouldEcho(val lang.Value, cfg config.Config) bool {
	switch val.Type {
	case lang.TypeUndefined, lang.TypeNull:
		return cfg.PrintUndefined
	}
	return true
}

func runBufferedREPL(ev *lang.Evaluator, reader *bufio.Reader, cfg config.Config, out, errOut io.Writer) {
	var buffer strings.Builder

	for {
		line, err := reader.ReadString('\n')
		atEOF := errors.Is(err, io.EOF)
		if err != nil && !atEOF {
			fmt.Fprintf(errOut, "read error: %v\n", err)
			return
		}
		buffer.WriteString(line)
		src := buffer.String()
		if strings.TrimSpace(src) == "" {
			buffer.Reset()
		} else if replStep(ev, src, atEOF, cfg, out, errOut) {
			buffer.Reset()
		}
		if atEOF {
			return
		}
	}
}

func runInteractiveREPL(ev *lang.Evaluator, cfg config.Config) {
	state := liner.NewLiner()
	defer state.Close()
	state.SetCtrlCAborts(true)
	if cfg.Completion {
		state.SetWordCompleter(func(line string, pos int) (string, []string, string) {
			return completeWord(completionCandidates(ev), line, pos)
		})
	}

	if cfg.HistoryFile != "" {
		if f, err := os.Open(cfg.HistoryFile); err == nil {
			state.ReadHistory(f)
			f.Close()
		}
		defer func() {
			if f, err := os.Create(cfg.HistoryFile); err == nil {
				state.WriteHistory(f)
				f.Close()
			}
		}()
	}

	var buffer strings.Builder

	for {
		prompt := cfg.Prompt
		if buffer.Len() > 0 {
			prompt = cfg.ContinuationPrompt
		}
		input, err := state.Prompt(prompt)
		if err != nil {
			switch {
			case errors.Is(err, liner.ErrPromptAborted):
				fmt.Println()
				buffer.Reset()
				continue
			case errors.Is(err, io.EOF):
				fmt.Println()
				fmt.Println("Goodbye!")
				return
			default:
				fmt.Fprintf(os.Stderr, "read error: %v\n", err)
				return
			}
		}
		buffer.WriteString(input)
		buffer.WriteString("\n")

		src := buffer.String()
		if strings.TrimSpace(src) == "" {
			buffer.Reset()
			continue
		}
		if !replStep(ev, src, false, cfg, os.Stdout, os.Stderr) {
			continue
		}
		buffer.Reset()
		state.AppendHistory(strings.TrimSpace(src))
	}
}

func completionCandidates(ev *lang.Evaluator) []string {
	return append(parser.Keywords(), ev.Global.Names()...)
}

// completeWord completes the identifier ending at pos (a rune offset).
func completeWord(candidates []string, line string, pos int) (string, []string, string) {
	runes := []rune(line)
	if pos < 0 {
		pos = 0
	}
	if pos > len(runes) {
		pos = len(runes)
	}
	start := pos
	for start > 0 && isIdentRune(runes[start-1]) {
		start--
	}
	head, prefix, tail := string(runes[:start]), string(runes[start:pos]), string(runes[pos:])
	if prefix == "" {
		return head, nil, tail
	}
	var matches []string
	seen := make(map[string]bool)
	for _, name := range candidates {
		if strings.HasPrefix(name, prefix) && !seen[name] {
			seen[name] = true
			matches = append(matches, name)
		}
	}
	return head, matches, tail
}

func isIdentRune(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

func isInteractive() bool {
	info, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
