package main

import (
	"bufio"
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/sergev/mica/config"
	"github.com/sergev/mica/lang"
	"github.com/sergev/mica/runtime"
)

func newTestEvaluator(out *bytes.Buffer) *lang.Evaluator {
	ev := runtime.NewEvaluator()
	ev.Out = out
	return ev
}

func TestRunScriptReportsErrorsToStderr(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "prog.mica")
	src := "let x = 40;\nprint(x + 2);\nprint(y);\nprint(\"unreached\");\n"
	if err := os.WriteFile(script, []byte(src), 0o600); err != nil {
		t.Fatalf("write script: %v", err)
	}

	var out, stderr bytes.Buffer
	runScript(newTestEvaluator(&out), script, nil, &stderr)
	if out.String() != "42\n" {
		t.Fatalf("unexpected stdout %q", out.String())
	}
	if stderr.String() != "error: variable not found: y at line 3\n" {
		t.Fatalf("unexpected stderr %q", stderr.String())
	}
}

func TestRunScriptFromStdinListsEveryParseError(t *testing.T) {
	var out, stderr bytes.Buffer
	runScript(newTestEvaluator(&out), "-", strings.NewReader("let = 1;\nlet y 2;\n"), &stderr)
	lines := strings.Split(strings.TrimSpace(stderr.String()), "\n")
	if len(lines) < 2 {
		t.Fatalf("expected several parse errors, got %q", stderr.String())
	}
	for _, line := range lines {
		if !strings.HasPrefix(line, "parse error: ") {
			t.Fatalf("unexpected diagnostic line %q", line)
		}
	}
	if out.Len() != 0 {
		t.Fatalf("nothing should run after a parse error, got %q", out.String())
	}

	stderr.Reset()
	runScript(newTestEvaluator(&out), "-", strings.NewReader("let a = 1 @ 2;"), &stderr)
	if !strings.Contains(stderr.String(), "parse error: illegal token '@' at line 1") {
		t.Fatalf("unexpected lexer diagnostic %q", stderr.String())
	}
}

func TestReplStepIncompleteInput(t *testing.T) {
	var out, stderr bytes.Buffer
	ev := newTestEvaluator(&out)
	cfg := config.Default()

	if replStep(ev, "let f = fn(a) {\n", false, cfg, &out, &stderr) {
		t.Fatalf("expected open function body to request more input")
	}
	if !replStep(ev, "let f = fn(a) {\n a * 2 };\nf(21)\n", false, cfg, &out, &stderr) {
		t.Fatalf("expected completed input to be consumed")
	}
	if out.String() != "42\n" || stderr.Len() != 0 {
		t.Fatalf("unexpected output %q stderr %q", out.String(), stderr.String())
	}

	out.Reset()
	if !replStep(ev, "1 +\n", true, cfg, &out, &stderr) {
		t.Fatalf("incomplete input at EOF must be reported, not buffered")
	}
	if !strings.Contains(stderr.String(), "parse error: unexpected EOF") {
		t.Fatalf("expected EOF diagnostic, got %q", stderr.String())
	}

	stderr.Reset()
	if !replStep(ev, "let x = 1\n", false, cfg, &out, &stderr) || !strings.Contains(stderr.String(), "expected ;") {
		t.Fatalf("missing semicolon should be reported immediately, got %q", stderr.String())
	}
}

func TestBufferedREPLSession(t *testing.T) {
	var out, stderr bytes.Buffer
	ev := newTestEvaluator(&out)
	input := strings.Join([]string{
		`let greet = fn(name) {`,
		`  "hello, " + name`,
		`};`,
		``,
		`greet("mica")`,
		`print("side effect")`,
		`let n = 3;`,
		`[n, {"k": n}]`,
		`missing`,
		`n * 2`,
	}, "\n")

	runBufferedREPL(ev, bufio.NewReader(strings.NewReader(input)), config.Default(), &out, &stderr)

	want := "\"hello, mica\"\nside effect\n[3, {\"k\": 3}]\n6\n"
	if out.String() != want {
		t.Fatalf("unexpected REPL output:\n%s\nwant:\n%s", out.String(), want)
	}
	if stderr.String() != "error: variable not found: missing at line 1\n" {
		t.Fatalf("unexpected REPL errors %q", stderr.String())
	}
}

func TestBufferedREPLEchoesEmptyResultsWhenConfigured(t *testing.T) {
	var out, stderr bytes.Buffer
	cfg := config.Default()
	cfg.PrintUndefined = true
	runBufferedREPL(newTestEvaluator(&out), bufio.NewReader(strings.NewReader("let a = 1;\nnull\n")), cfg, &out, &stderr)
	if out.String() != "undefined\nnull\n" {
		t.Fatalf("unexpected output %q", out.String())
	}
}

func TestCompleteWord(t *testing.T) {
	candidates := []string{"let", "len", "length", "print", "len"}

	head, matches, tail := completeWord(candidates, "x = le(1)", 6)
	if head != "x = " || tail != "(1)" {
		t.Fatalf("unexpected split head=%q tail=%q", head, tail)
	}
	if !reflect.DeepEqual(matches, []string{"let", "len", "length"}) {
		t.Fatalf("unexpected matches %v", matches)
	}

	if _, matches, _ := completeWord(candidates, "1 + ", 4); matches != nil {
		t.Fatalf("expected no completions without a prefix, got %v", matches)
	}
	if head, matches, _ := completeWord(candidates, "pr", 99); head != "" || len(matches) != 1 {
		t.Fatalf("expected cursor clamped to line end, got head=%q matches=%v", head, matches)
	}

	names := completionCandidates(runtime.NewEvaluator())
	found := map[string]bool{}
	for _, n := range names {
		found[n] = true
	}
	for _, want := range []string{"while", "print", "map"} {
		if !found[want] {
			t.Fatalf("expected %q among completion candidates", want)
		}
	}
}
