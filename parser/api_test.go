package parser

import (
	"errors"
	"strings"
	"testing"
)

func TestParseStringProducesStatements(t *testing.T) {
	src := `
let answer = 41;
answer + 1;
`
	prog, err := ParseString(src)
	if err != nil {
		t.Fatalf("ParseString returned error: %v", err)
	}
	if len(prog) != 2 {
		t.Fatalf("expected two statements (let and expression), got %d", len(prog))
	}
	let, ok := prog[0].(*LetStmt)
	if !ok {
		t.Fatalf("expected first statement to be *LetStmt, got %T", prog[0])
	}
	if lit, ok := let.Value.(*NumberLiteral); !ok || lit.Value != 41 {
		t.Fatalf("expected initializer 41, got %#v", let.Value)
	}
}

func TestParseStringPropagatesLexerErrors(t *testing.T) {
	_, err := ParseString(`let s = "open`)
	if err == nil || !strings.Contains(err.Error(), "unterminated string") {
		t.Fatalf("expected unterminated string error, got %v", err)
	}
	_, err = ParseString("let s = 1 # 2;")
	var ierr *IllegalTokenError
	if !errors.As(err, &ierr) || ierr.Char != '#' {
		t.Fatalf("expected illegal token '#', got %v", err)
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("boom")
}

func TestParseReaderHandlesIOReturns(t *testing.T) {
	if _, err := ParseReader(failingReader{}); err == nil || !strings.Contains(err.Error(), "boom") {
		t.Fatalf("expected underlying IO error, got %v", err)
	}

	prog, err := ParseReader(strings.NewReader("let value = 5; value;"))
	if err != nil {
		t.Fatalf("ParseReader returned error: %v", err)
	}
	if len(prog) != 2 {
		t.Fatalf("expected two statements from reader, got %d", len(prog))
	}
}
