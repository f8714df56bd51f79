package lang

import "sort"

// Env implements a lexical environment chain.
type Env struct {
	parent *Env
	values map[string]Value
}

// NewEnv creates an environment with optional parent.
func NewEnv(parent *Env) *Env {
	return &Env{
		parent: parent,
		values: make(map[string]Value),
	}
}

// Define binds name to value in current frame, shadowing outer bindings
// and replacing a previous binding in the same frame.
func (e *Env) Define(name string, val Value) {
	e.values[name] = val
}

// GetLocal looks name up in the current frame only.
func (e *Env) GetLocal(name string) (Value, bool) {
	val, ok := e.values[name]
	return val, ok
}

// Get retrieves a binding, searching parents if necessary. line is
// reported when the name is unbound.
func (e *Env) Get(name string, line int) (Value, error) {
	for env := e; env != nil; env = env.parent {
		if val, ok := env.values[name]; ok {
			return val, nil
		}
	}
	return Value{}, &VariableNotFoundError{Name: name, Line: line}
}

// Assign updates the nearest existing binding of name.
func (e *Env) Assign(name string, val Value, line int) error {
	for env := e; env != nil; env = env.parent {
		if _, ok := env.values[name]; ok {
			env.values[name] = val
			return nil
		}
	}
	return &VariableNotFoundError{Name: name, Line: line}
}

// Names returns every name visible from e in sorted order.
func (e *Env) Names() []string {
	seen := make(map[string]bool)
	var names []string
	for env := e; env != nil; env = env.parent {
		for name := range env.values {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	sort.Strings(names)
	return names
}
