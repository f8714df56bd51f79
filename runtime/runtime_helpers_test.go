package runtime

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sergev/mica/lang"
	"github.com/sergev/mica/parser"
)

func TestReadFileSkippingShebang(t *testing.T) {
	dir := t.TempDir()

	withShebang := filepath.Join(dir, "script.mica")
	if err := os.WriteFile(withShebang, []byte("#!/usr/bin/env mica\n1 + 2;\n"), 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}
	data, err := readFileSkippingShebang(withShebang)
	if err != nil {
		t.Fatalf("readFileSkippingShebang error: %v", err)
	}
	if string(data) != "\n1 + 2;\n" {
		t.Fatalf("expected shebang to be stripped, got %q", data)
	}

	onlyShebang := filepath.Join(dir, "only_shebang.mica")
	if err := os.WriteFile(onlyShebang, []byte("#!/bin/true"), 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}
	data, err = readFileSkippingShebang(onlyShebang)
	if err != nil {
		t.Fatalf("readFileSkippingShebang error: %v", err)
	}
	if len(data) != 0 {
		t.Fatalf("expected empty body for shebang-only script, got %q", data)
	}

	noShebang := filepath.Join(dir, "plain.mica")
	if err := os.WriteFile(noShebang, []byte(`print("hi")`), 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}
	data, err = readFileSkippingShebang(noShebang)
	if err != nil {
		t.Fatalf("readFileSkippingShebang error: %v", err)
	}
	if string(data) != `print("hi")` {
		t.Fatalf("expected content unchanged, got %q", data)
	}

	if _, err := readFileSkippingShebang(filepath.Join(dir, "missing.mica")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestEvaluateFile(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "prog.mica")
	src := `#!/usr/bin/env mica
let inc = fn(n) {
  return n + 1;
};
inc(41);
`
	if err := os.WriteFile(script, []byte(src), 0o600); err != nil {
		t.Fatalf("write script: %v", err)
	}

	ev := NewEvaluator()
	val, err := EvaluateFile(ev, script)
	if err != nil {
		t.Fatalf("EvaluateFile error: %v", err)
	}
	if val.Type != lang.TypeNumber || val.Number() != 42 {
		t.Fatalf("expected 42 from script, got %v", val)
	}

	broken := filepath.Join(dir, "broken.mica")
	if err := os.WriteFile(broken, []byte("#!/usr/bin/env mica\nlet x = 1\n"), 0o600); err != nil {
		t.Fatalf("write script: %v", err)
	}
	_, err = EvaluateFile(ev, broken)
	var serr *parser.SyntaxError
	if !errors.As(err, &serr) || !strings.Contains(err.Error(), "at line 3") {
		t.Fatalf("expected syntax error reported against file lines, got %v", err)
	}
}

func TestEvaluateReaderAndString(t *testing.T) {
	ev := NewEvaluator()
	if _, err := EvaluateReader(ev, strings.NewReader("let shared = 10;")); err != nil {
		t.Fatalf("EvaluateReader error: %v", err)
	}
	val, err := EvaluateString(ev, "shared * 2")
	if err != nil || val.Number() != 20 {
		t.Fatalf("expected bindings to persist, got %v err=%v", val, err)
	}

	_, err = EvaluateString(ev, "missing + 1")
	var nf *lang.VariableNotFoundError
	if !errors.As(err, &nf) || nf.Name != "missing" {
		t.Fatalf("expected variable not found, got %v", err)
	}
}

func TestSetArgvProducesArray(t *testing.T) {
	env := lang.NewEnv(nil)
	SetArgv(env, []string{"foo", "bar"})

	val, err := env.Get("argv", 0)
	if err != nil {
		t.Fatalf("Get argv: %v", err)
	}
	arr := val.Array()
	if val.Type != lang.TypeArray || arr.Len() != 2 {
		t.Fatalf("unexpected argv value: %v", val)
	}
	if first, _ := arr.At(0); first.Str() != "foo" {
		t.Fatalf("unexpected argv contents: %v", val)
	}
}
