package lang

import "math"

// Array is a growable, shared sequence of values.
type Array struct {
	Elements []Value
}

// Len returns the number of elements.
func (a *Array) Len() int {
	return len(a.Elements)
}

// normalize maps a possibly negative index onto the element range.
func (a *Array) normalize(index int) (int, error) {
	i := index
	if i < 0 {
		i += len(a.Elements)
	}
	if i < 0 || i >= len(a.Elements) {
		return 0, &IndexOutOfBoundsError{Index: index, Length: len(a.Elements)}
	}
	return i, nil
}

// At returns the element at index; negative indices count from the end.
func (a *Array) At(index int) (Value, error) {
	i, err := a.normalize(index)
	if err != nil {
		return Value{}, err
	}
	return a.Elements[i], nil
}

// Set replaces the element at index.
func (a *Array) Set(index int, val Value) error {
	i, err := a.normalize(index)
	if err != nil {
		return err
	}
	a.Elements[i] = val
	return nil
}

// Push appends val.
func (a *Array) Push(val Value) {
	a.Elements = append(a.Elements, val)
}

// Pop removes and returns the last element.
func (a *Array) Pop() (Value, error) {
	if len(a.Elements) == 0 {
		return Value{}, &RuntimeError{Msg: "pop from empty array"}
	}
	return a.PopAt(-1)
}

// PopAt removes and returns the element at index, shifting later ones down.
func (a *Array) PopAt(index int) (Value, error) {
	i, err := a.normalize(index)
	if err != nil {
		return Value{}, err
	}
	val := a.Elements[i]
	copy(a.Elements[i:], a.Elements[i+1:])
	a.Elements[len(a.Elements)-1] = Value{}
	a.Elements = a.Elements[:len(a.Elements)-1]
	return val, nil
}

// dictKey identifies a key: scalars by kind and value, heap objects by
// kind and pointer.
type dictKey struct {
	typ     ValueType
	payload interface{}
}

// nanKey stands in for every NaN so that NaN keys find each other.
type nanKey struct{}

func keyOf(v Value) dictKey {
	if v.Type == TypeNumber && math.IsNaN(v.Number()) {
		return dictKey{typ: v.Type, payload: nanKey{}}
	}
	return dictKey{typ: v.Type, payload: v.payload}
}

// Dict is a mutable mapping that remembers insertion order.
type Dict struct {
	keys   []Value
	values []Value
	index  map[dictKey]int
}

// NewDict returns an empty dictionary.
func NewDict() *Dict {
	return &Dict{index: make(map[dictKey]int)}
}

// Len returns the number of entries.
func (d *Dict) Len() int {
	return len(d.keys)
}

// Get looks up key.
func (d *Dict) Get(key Value) (Value, bool) {
	i, ok := d.index[keyOf(key)]
	if !ok {
		return Value{}, false
	}
	return d.values[i], true
}

// Set inserts or replaces the entry for key. Replacing keeps its position.
func (d *Dict) Set(key, val Value) {
	k := keyOf(key)
	if i, ok := d.index[k]; ok {
		d.values[i] = val
		return
	}
	d.index[k] = len(d.keys)
	d.keys = append(d.keys, key)
	d.values = append(d.values, val)
}
