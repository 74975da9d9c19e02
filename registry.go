package jsonpath

import (
	"sync"
	"unicode/utf8"

	"github.com/midbel/jsonpath/json"
)

// Method transforms the value it is called on. A false return excludes
// the element the enclosing filter is applied to.
type Method func(json.Value) (json.Value, bool)

// Registry maps method names usable in filter expressions to their
// implementations. The zero value is not usable; call NewRegistry.
//
// A Registry owned by a single evaluator needs no synchronization; the
// package level default registry is shared and therefore guarded.
type Registry struct {
	mu      sync.RWMutex
	methods map[string]Method
}

// NewRegistry returns a registry seeded with the built-in methods
// length, size, min and max.
func NewRegistry() *Registry {
	reg := Registry{
		methods: make(map[string]Method),
	}
	reg.methods["length"] = methodLength
	reg.methods["size"] = methodLength
	reg.methods["min"] = methodMin
	reg.methods["max"] = methodMax
	return &reg
}

func (r *Registry) Register(name string, fn Method) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.methods[name] = fn
}

func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.methods, name)
}

func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.methods = make(map[string]Method)
}

func (r *Registry) Lookup(name string) (Method, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.methods[name]
	return fn, ok
}

var defaultRegistry = NewRegistry()

// Register adds a method to the shared default registry.
func Register(name string, fn Method) {
	defaultRegistry.Register(name, fn)
}

// Unregister removes a method from the shared default registry.
func Unregister(name string) {
	defaultRegistry.Unregister(name)
}

// ClearMethods empties the shared default registry, built-ins included.
func ClearMethods() {
	defaultRegistry.Clear()
}

func methodLength(v json.Value) (json.Value, bool) {
	switch v := v.(type) {
	case json.Str:
		return json.Number(utf8.RuneCountInString(string(v))), true
	case *json.Array:
		return json.Number(v.Len()), true
	default:
		return nil, false
	}
}

func methodMin(v json.Value) (json.Value, bool) {
	return foldNumbers(v, func(acc, n float64) float64 {
		if n < acc {
			return n
		}
		return acc
	})
}

func methodMax(v json.Value) (json.Value, bool) {
	return foldNumbers(v, func(acc, n float64) float64 {
		if n > acc {
			return n
		}
		return acc
	})
}

func foldNumbers(v json.Value, pick func(acc, n float64) float64) (json.Value, bool) {
	arr, ok := v.(*json.Array)
	if !ok || arr.Len() == 0 {
		return nil, false
	}
	var acc float64
	for i, item := range arr.Items {
		n, ok := item.(json.Number)
		if !ok {
			return nil, false
		}
		if i == 0 {
			acc = float64(n)
			continue
		}
		acc = pick(acc, float64(n))
	}
	return json.Number(acc), true
}
