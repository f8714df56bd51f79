package parser

import (
	"io"
)

// ParseString lexes and parses Mica source text into a program.
func ParseString(src string) ([]Stmt, error) {
	p, err := New(src)
	if err != nil {
		return nil, err
	}
	return p.Parse()
}

// ParseReader consumes Mica source from an io.Reader and parses it.
func ParseReader(r io.Reader) ([]Stmt, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return ParseString(string(data))
}
