package lang

import (
	"io"
	"math"
	"os"

	"github.com/sergev/mica/parser"
)

// Evaluator walks parsed programs. It owns the root environment and the
// writer natives print to.
type Evaluator struct {
	Global *Env
	Out    io.Writer
}

// NewEvaluator creates an evaluator with an empty root environment.
func NewEvaluator() *Evaluator {
	return &Evaluator{
		Global: NewEnv(nil),
		Out:    os.Stdout,
	}
}

// Evaluate runs prog in env (the root environment when env is nil) and
// returns the value of the last statement. A top-level return ends the
// program with its value.
func (ev *Evaluator) Evaluate(prog []parser.Stmt, env *Env) (Value, error) {
	if env == nil {
		env = ev.Global
	}
	result := Undefined
	for _, stmt := range prog {
		val, err := ev.execStmt(stmt, env)
		if err != nil {
			return Value{}, err
		}
		if _, ok := stmt.(*parser.ReturnStmt); ok {
			return unwrap(val), nil
		}
		result = unwrap(val)
	}
	return result, nil
}

// EvalExpr evaluates a single expression in env.
func (ev *Evaluator) EvalExpr(expr parser.Expr, env *Env) (Value, error) {
	if env == nil {
		env = ev.Global
	}
	return ev.evalOperand(expr, env)
}

// Call invokes a closure or native with already evaluated arguments. line
// is used for diagnostics.
func (ev *Evaluator) Call(fn Value, args []Value, line int) (Value, error) {
	switch fn.Type {
	case TypeNative:
		val, err := fn.Native().Fn(ev, args)
		if err != nil {
			return Value{}, withLine(err, line)
		}
		return val, nil
	case TypeClosure:
		c := fn.Closure()
		if len(args) != len(c.Params) {
			return Value{}, &ArityError{Expected: len(c.Params), Got: len(args), Line: line}
		}
		callEnv := NewEnv(c.Env)
		for i, name := range c.Params {
			callEnv.Define(name, args[i])
		}
		val, err := ev.execBlock(c.Body, callEnv)
		if err != nil {
			return Value{}, err
		}
		return unwrap(val), nil
	}
	return Value{}, runtimeErrorf(line, "%s is not a function", fn.Type)
}

func (ev *Evaluator) execStmt(stmt parser.Stmt, env *Env) (Value, error) {
	switch s := stmt.(type) {
	case *parser.LetStmt:
		val, err := ev.evalOperand(s.Value, env)
		if err != nil {
			return Value{}, err
		}
		env.Define(s.Name.Name, val)
		return Undefined, nil
	case *parser.AssignStmt:
		if err := ev.assign(s, env); err != nil {
			return Value{}, err
		}
		return Undefined, nil
	case *parser.ReturnStmt:
		val := Null
		if s.Value != nil {
			var err error
			if val, err = ev.evalOperand(s.Value, env); err != nil {
				return Value{}, err
			}
		}
		return returnValue(val), nil
	case *parser.ExprStmt:
		return ev.eval(s.Expr, env)
	}
	return Value{}, runtimeErrorf(stmt.Line(), "unknown statement %T", stmt)
}

// execBlock runs stmts in env. A returning signal stops the block and is
// passed up unchanged.
func (ev *Evaluator) execBlock(stmts []parser.Stmt, env *Env) (Value, error) {
	result := Undefined
	for _, stmt := range stmts {
		val, err := ev.execStmt(stmt, env)
		if err != nil {
			return Value{}, err
		}
		if val.isReturn() {
			return val, nil
		}
		result = val
	}
	return result, nil
}

// evalOperand evaluates expr where its value is consumed, so a returning
// signal is reduced to the value it carries.
func (ev *Evaluator) evalOperand(expr parser.Expr, env *Env) (Value, error) {
	val, err := ev.eval(expr, env)
	if err != nil {
		return Value{}, err
	}
	return unwrap(val), nil
}

func (ev *Evaluator) evalOperands(exprs []parser.Expr, env *Env) ([]Value, error) {
	out := make([]Value, 0, len(exprs))
	for _, expr := range exprs {
		val, err := ev.evalOperand(expr, env)
		if err != nil {
			return nil, err
		}
		out = append(out, val)
	}
	return out, nil
}

func (ev *Evaluator) eval(expr parser.Expr, env *Env) (Value, error) {
	switch e := expr.(type) {
	case *parser.NumberLiteral:
		return NumberValue(e.Value), nil
	case *parser.StringLiteral:
		return StringValue(e.Value), nil
	case *parser.BooleanLiteral:
		return BoolValue(e.Value), nil
	case *parser.NullLiteral:
		return Null, nil
	case *parser.Identifier:
		return env.Get(e.Name, e.Ln)
	case *parser.UnaryExpr:
		operand, err := ev.evalOperand(e.Operand, env)
		if err != nil {
			return Value{}, err
		}
		return unary(e.Op, operand, e.Ln)
	case *parser.BinaryExpr:
		left, err := ev.evalOperand(e.Left, env)
		if err != nil {
			return Value{}, err
		}
		right, err := ev.evalOperand(e.Right, env)
		if err != nil {
			return Value{}, err
		}
		return binary(e.Op, left, right, e.Ln)
	case *parser.IndexExpr:
		target, err := ev.evalOperand(e.Target, env)
		if err != nil {
			return Value{}, err
		}
		index, err := ev.evalOperand(e.Index, env)
		if err != nil {
			return Value{}, err
		}
		return indexValue(target, index, e.Ln)
	case *parser.ArrayLiteral:
		elems, err := ev.evalOperands(e.Elements, env)
		if err != nil {
			return Value{}, err
		}
		return ArrayValue(elems), nil
	case *parser.DictLiteral:
		d := NewDict()
		for _, entry := range e.Entries {
			key, err := ev.evalOperand(entry.Key, env)
			if err != nil {
				return Value{}, err
			}
			val, err := ev.evalOperand(entry.Value, env)
			if err != nil {
				return Value{}, err
			}
			d.Set(key, val)
		}
		return DictValue(d), nil
	case *parser.FunctionLiteral:
		params := make([]string, len(e.Params))
		for i, p := range e.Params {
			params[i] = p.Name
		}
		return ClosureValue(params, e.Body, env), nil
	case *parser.CallExpr:
		callee, err := ev.evalOperand(e.Callee, env)
		if err != nil {
			return Value{}, err
		}
		args, err := ev.evalOperands(e.Args, env)
		if err != nil {
			return Value{}, err
		}
		return ev.Call(callee, args, e.Ln)
	case *parser.IfExpr:
		cond, err := ev.evalOperand(e.Cond, env)
		if err != nil {
			return Value{}, err
		}
		if IsTruthy(cond) {
			return ev.execBlock(e.Then, NewEnv(env))
		}
		return ev.execBlock(e.Else, NewEnv(env))
	case *parser.WhileExpr:
		return ev.evalWhile(e, env)
	case *parser.BlockExpr:
		return ev.execBlock(e.Stmts, NewEnv(env))
	}
	return Value{}, runtimeErrorf(expr.Line(), "unknown expression %T", expr)
}

// evalWhile runs every iteration, and the condition, in one child scope.
func (ev *Evaluator) evalWhile(e *parser.WhileExpr, env *Env) (Value, error) {
	loopEnv := NewEnv(env)
	result := Undefined
	for {
		cond, err := ev.evalOperand(e.Cond, loopEnv)
		if err != nil {
			return Value{}, err
		}
		if !IsTruthy(cond) {
			return result, nil
		}
		val, err := ev.execBlock(e.Body, loopEnv)
		if err != nil {
			return Value{}, err
		}
		if val.isReturn() {
			return val, nil
		}
		result = val
	}
}

func (ev *Evaluator) assign(s *parser.AssignStmt, env *Env) error {
	switch target := s.Target.(type) {
	case *parser.Identifier:
		val, err := ev.evalOperand(s.Value, env)
		if err != nil {
			return err
		}
		return env.Assign(target.Name, val, target.Ln)
	case *parser.IndexExpr:
		container, err := ev.evalOperand(target.Target, env)
		if err != nil {
			return err
		}
		key, err := ev.evalOperand(target.Index, env)
		if err != nil {
			return err
		}
		val, err := ev.evalOperand(s.Value, env)
		if err != nil {
			return err
		}
		switch container.Type {
		case TypeArray:
			i, err := ToIndex(key, target.Ln)
			if err != nil {
				return err
			}
			return container.Array().Set(i, val)
		case TypeDict:
			container.Dict().Set(key, val)
			return nil
		case TypeString:
			return runtimeErrorf(target.Ln, "cannot assign into a string")
		}
		return runtimeErrorf(target.Ln, "cannot index %s", container.Type)
	}
	return runtimeErrorf(s.Ln, "invalid assignment target")
}

func unary(op parser.TokenType, operand Value, line int) (Value, error) {
	switch {
	case op == parser.TokenMinus && operand.Type == TypeNumber:
		return NumberValue(-operand.Number()), nil
	case op == parser.TokenBang && operand.Type == TypeBool:
		return BoolValue(!operand.Bool()), nil
	}
	return Value{}, &TypeMismatchError{Op: op.String(), Right: operand.Type, Unary: true, Line: line}
}

func binary(op parser.TokenType, left, right Value, line int) (Value, error) {
	mismatch := &TypeMismatchError{Op: op.String(), Left: left.Type, Right: right.Type, Line: line}
	switch op {
	case parser.TokenEqualEqual, parser.TokenBangEqual:
		if left.Type != right.Type {
			return Value{}, mismatch
		}
		eq := Equal(left, right)
		if op == parser.TokenBangEqual {
			eq = !eq
		}
		return BoolValue(eq), nil
	case parser.TokenPlus:
		if left.Type == TypeString && right.Type == TypeString {
			return StringValue(left.Str() + right.Str()), nil
		}
	}
	if left.Type != TypeNumber || right.Type != TypeNumber {
		return Value{}, mismatch
	}
	a, b := left.Number(), right.Number()
	switch op {
	case parser.TokenPlus:
		return NumberValue(a + b), nil
	case parser.TokenMinus:
		return NumberValue(a - b), nil
	case parser.TokenStar:
		return NumberValue(a * b), nil
	case parser.TokenSlash:
		return NumberValue(a / b), nil
	case parser.TokenLess:
		return BoolValue(a < b), nil
	case parser.TokenLessEqual:
		return BoolValue(a <= b), nil
	case parser.TokenGreater:
		return BoolValue(a > b), nil
	case parser.TokenGreaterEqual:
		return BoolValue(a >= b), nil
	}
	return Value{}, runtimeErrorf(line, "unknown operator %s", op)
}

func indexValue(target, index Value, line int) (Value, error) {
	switch target.Type {
	case TypeArray:
		i, err := ToIndex(index, line)
		if err != nil {
			return Value{}, err
		}
		return target.Array().At(i)
	case TypeDict:
		if val, ok := target.Dict().Get(index); ok {
			return val, nil
		}
		return Null, nil
	case TypeString:
		i, err := ToIndex(index, line)
		if err != nil {
			return Value{}, err
		}
		runes := []rune(target.Str())
		n := i
		if n < 0 {
			n += len(runes)
		}
		if n < 0 || n >= len(runes) {
			return Value{}, &IndexOutOfBoundsError{Index: i, Length: len(runes)}
		}
		return StringValue(string(runes[n])), nil
	}
	return Value{}, runtimeErrorf(line, "cannot index %s", target.Type)
}

// maxIndex is the largest magnitude at which every integer is exact in a
// float64. Larger indices are clamped to it; they are out of bounds anyway.
const maxIndex = 1 << 53

// ToIndex converts an integral number to a Go index. NaN, infinities and
// fractions are rejected; range checks are left to the container.
func ToIndex(v Value, line int) (int, error) {
	if v.Type != TypeNumber {
		return 0, runtimeErrorf(line, "index must be a number, got %s", v.Type)
	}
	f := v.Number()
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, runtimeErrorf(line, "index must be an integer, got %s", v)
	}
	return int(math.Max(-maxIndex, math.Min(f, maxIndex))), nil
}

