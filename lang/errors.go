package lang

import (
	"errors"
	"fmt"
)

func atLine(msg string, line int) string {
	if line > 0 {
		return fmt.Sprintf("%s at line %d", msg, line)
	}
	return msg
}

// VariableNotFoundError reports a lookup or assignment of an unbound name.
type VariableNotFoundError struct {
	Name string
	Line int
}

func (e *VariableNotFoundError) Error() string {
	return atLine("variable not found: "+e.Name, e.Line)
}

// TypeMismatchError reports operands of the wrong kind. Unary operations
// and natives leave Left unset.
type TypeMismatchError struct {
	Op    string
	Left  ValueType
	Right ValueType
	Unary bool
	Line  int
}

func (e *TypeMismatchError) Error() string {
	if e.Unary {
		return atLine(fmt.Sprintf("type mismatch: %s %s", e.Op, e.Right), e.Line)
	}
	return atLine(fmt.Sprintf("type mismatch: %s %s %s", e.Left, e.Op, e.Right), e.Line)
}

// IndexOutOfBoundsError reports the index as written, before negative
// indices are normalised.
type IndexOutOfBoundsError struct {
	Index  int
	Length int
}

func (e *IndexOutOfBoundsError) Error() string {
	return fmt.Sprintf("index out of bounds: %d (length %d)", e.Index, e.Length)
}

// ArityError reports a call with the wrong number of arguments.
type ArityError struct {
	Name     string
	Expected int
	Got      int
	Line     int
}

func (e *ArityError) Error() string {
	name := e.Name
	if name == "" {
		name = "function"
	}
	return atLine(fmt.Sprintf("%s expects %d arguments, got %d", name, e.Expected, e.Got), e.Line)
}

// RuntimeError covers every other evaluation failure.
type RuntimeError struct {
	Msg  string
	Line int
}

func (e *RuntimeError) Error() string {
	return atLine(e.Msg, e.Line)
}

func runtimeErrorf(line int, format string, args ...interface{}) error {
	return &RuntimeError{Msg: fmt.Sprintf(format, args...), Line: line}
}

// withLine stamps line onto a positioned error raised without one, such as
// an error returned by a native.
func withLine(err error, line int) error {
	var (
		nf *VariableNotFoundError
		tm *TypeMismatchError
		ar *ArityError
		rt *RuntimeError
	)
	switch {
	case errors.As(err, &nf):
		if nf.Line == 0 {
			nf.Line = line
		}
	case errors.As(err, &tm):
		if tm.Line == 0 {
			tm.Line = line
		}
	case errors.As(err, &ar):
		if ar.Line == 0 {
			ar.Line = line
		}
	case errors.As(err, &rt):
		if rt.Line == 0 {
			rt.Line = line
		}
	}
	return err
}
