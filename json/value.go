package json

import (
	"strconv"
)

// Kind discriminates the variants of the Value union.
type Kind int8

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Value is one node of a parsed json document. Arrays and objects are
// handles: copying a Value never copies the subtree it points to.
type Value interface {
	Kind() Kind
}

type Null struct{}

func (Null) Kind() Kind { return KindNull }

type Bool bool

func (Bool) Kind() Kind { return KindBool }

type Number float64

func (Number) Kind() Kind { return KindNumber }

type Str string

func (Str) Kind() Kind { return KindString }

type Array struct {
	Items []Value
}

func NewArray(items ...Value) *Array {
	return &Array{
		Items: items,
	}
}

func (*Array) Kind() Kind { return KindArray }

func (a *Array) Len() int {
	return len(a.Items)
}

func (a *Array) At(i int) (Value, bool) {
	if i < 0 || i >= len(a.Items) {
		return nil, false
	}
	return a.Items[i], true
}

func (a *Array) Append(v Value) {
	a.Items = append(a.Items, v)
}

// Object keeps its members in insertion order.
type Object struct {
	keys   []string
	values map[string]Value
}

func NewObject() *Object {
	return &Object{
		values: make(map[string]Value),
	}
}

func (*Object) Kind() Kind { return KindObject }

func (o *Object) Len() int {
	return len(o.keys)
}

func (o *Object) Keys() []string {
	return o.keys
}

func (o *Object) Get(key string) (Value, bool) {
	v, ok := o.values[key]
	return v, ok
}

func (o *Object) Has(key string) bool {
	_, ok := o.values[key]
	return ok
}

func (o *Object) Set(key string, value Value) {
	if _, ok := o.values[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.values[key] = value
}

func (o *Object) Del(key string) {
	if _, ok := o.values[key]; !ok {
		return
	}
	delete(o.values, key)
	for i := range o.keys {
		if o.keys[i] == key {
			o.keys = append(o.keys[:i], o.keys[i+1:]...)
			break
		}
	}
}

// Equal reports deep equality of two values. Object comparison ignores
// member order.
func Equal(left, right Value) bool {
	if left == nil || right == nil {
		return left == nil && right == nil
	}
	if left.Kind() != right.Kind() {
		return false
	}
	switch v := left.(type) {
	case Null:
		return true
	case Bool:
		return v == right.(Bool)
	case Number:
		return v == right.(Number)
	case Str:
		return v == right.(Str)
	case *Array:
		other := right.(*Array)
		if len(v.Items) != len(other.Items) {
			return false
		}
		for i := range v.Items {
			if !Equal(v.Items[i], other.Items[i]) {
				return false
			}
		}
		return true
	case *Object:
		other := right.(*Object)
		if v.Len() != other.Len() {
			return false
		}
		for _, k := range v.keys {
			w, ok := other.Get(k)
			if !ok || !Equal(v.values[k], w) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// Text renders a scalar value the way it appears in a document. Arrays
// and objects report their kind instead.
func Text(v Value) string {
	switch v := v.(type) {
	case nil, Null:
		return "null"
	case Bool:
		return strconv.FormatBool(bool(v))
	case Number:
		return strconv.FormatFloat(float64(v), 'f', -1, 64)
	case Str:
		return string(v)
	default:
		return "<" + v.Kind().String() + ">"
	}
}
