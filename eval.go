package jsonpath

import (
	"strconv"

	"github.com/midbel/jsonpath/json"
)

// Result is one query match. Value is a handle into the evaluated
// document: mutating an object or array reached through it is visible
// to the owner of the tree.
type Result struct {
	Value json.Value
	Path  string
	Depth int
}

// SelectAll evaluates an expression against a document and returns
// every match in document order. Filter methods come from the default
// registry.
func SelectAll(root json.Value, expr string) ([]Result, error) {
	return defaultRegistry.SelectAll(root, expr)
}

// SelectAll evaluates an expression with the methods of this registry.
func (r *Registry) SelectAll(root json.Value, expr string) ([]Result, error) {
	nodes, err := ParseUnion(expr)
	if err != nil {
		return nil, err
	}
	if CanHandleSimple(nodes) {
		return EvaluateSimple(root, nodes), nil
	}
	return r.EvaluateAdvanced(root, nodes), nil
}

// EvaluateSimple runs a program containing only root, property, index,
// slice and wildcard nodes. Programs with other node kinds yield nil.
func EvaluateSimple(root json.Value, nodes []Node) []Result {
	if !CanHandleSimple(nodes) {
		return nil
	}
	e := evaluator{}
	return e.run(root, nodes)
}

// EvaluateAdvanced runs any program, delegating filter predicates to
// the default registry.
func EvaluateAdvanced(root json.Value, nodes []Node) []Result {
	return defaultRegistry.EvaluateAdvanced(root, nodes)
}

func (r *Registry) EvaluateAdvanced(root json.Value, nodes []Node) []Result {
	e := evaluator{
		reg: r,
	}
	return e.run(root, nodes)
}

type candidate struct {
	value json.Value
	path  string
	depth int
}

// evaluator refines a candidate set node by node: each program node
// maps the current set to its successor set.
type evaluator struct {
	reg *Registry
}

func (e evaluator) run(root json.Value, nodes []Node) []Result {
	if root == nil || len(nodes) == 0 {
		return nil
	}
	cur := []candidate{{value: root, path: "$"}}
	for _, n := range nodes {
		cur = e.step(cur, n)
		if len(cur) == 0 {
			break
		}
	}
	results := make([]Result, 0, len(cur))
	for _, c := range cur {
		results = append(results, Result{Value: c.value, Path: c.path, Depth: c.depth})
	}
	return results
}

func (e evaluator) step(cur []candidate, n Node) []candidate {
	var next []candidate
	for _, c := range cur {
		switch n.Kind {
		case KindRoot:
			next = append(next, c)
		case KindProperty:
			if obj, ok := c.value.(*json.Object); ok {
				if v, ok := obj.Get(n.Name); ok {
					next = append(next, c.child(v, "."+n.Name))
				}
			}
		case KindIndex:
			if arr, ok := c.value.(*json.Array); ok {
				if i, ok := resolveIndex(n.Index, arr.Len()); ok {
					next = append(next, c.child(arr.Items[i], subscript(i)))
				}
			}
		case KindSlice:
			if arr, ok := c.value.(*json.Array); ok {
				for _, i := range sliceIndices(n.Start, n.End, n.Step, arr.Len()) {
					next = append(next, c.child(arr.Items[i], subscript(i)))
				}
			}
		case KindWildcard:
			next = append(next, expand(c)...)
		case KindRecurse:
			next = append(next, recurseWalk(c, n.Property)...)
		case KindFilter:
			next = append(next, e.filterStep(c, n.Filter)...)
		case KindUnion:
			next = append(next, e.unionStep(c, n)...)
		}
	}
	return next
}

func (c candidate) child(v json.Value, suffix string) candidate {
	return candidate{
		value: v,
		path:  c.path + suffix,
		depth: c.depth + 1,
	}
}

// expand maps an object to its member values and an array to its
// elements, in document order.
func expand(c candidate) []candidate {
	var next []candidate
	switch v := c.value.(type) {
	case *json.Object:
		for _, k := range v.Keys() {
			item, _ := v.Get(k)
			next = append(next, c.child(item, "."+k))
		}
	case *json.Array:
		for i, item := range v.Items {
			next = append(next, c.child(item, subscript(i)))
		}
	}
	return next
}

// recurseWalk collects, in pre-order, the candidate itself and every
// descendant, keeping only values owning the target property when one
// is given. The walk drives an explicit stack so document depth never
// translates into call stack depth.
func recurseWalk(c candidate, property string) []candidate {
	var (
		out   []candidate
		stack = []candidate{c}
	)
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if property == "" || hasProperty(cur.value, property) {
			out = append(out, cur)
		}
		children := expand(cur)
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, children[i])
		}
	}
	return out
}

// filterStep expands array inputs into their elements, passes other
// inputs through unchanged, and keeps the ones matching the predicate.
func (e evaluator) filterStep(c candidate, filter string) []candidate {
	reg := e.reg
	if reg == nil {
		reg = defaultRegistry
	}
	var next []candidate
	if arr, ok := c.value.(*json.Array); ok {
		for i, item := range arr.Items {
			if reg.Match(filter, item) {
				next = append(next, c.child(item, subscript(i)))
			}
		}
		return next
	}
	if reg.Match(filter, c.value) {
		next = append(next, c)
	}
	return next
}

// unionStep evaluates either a multi-index union, silently skipping
// out of range indices, or a list of sub expressions each run
// independently against the input.
func (e evaluator) unionStep(c candidate, n Node) []candidate {
	var next []candidate
	if len(n.Indices) > 0 {
		arr, ok := c.value.(*json.Array)
		if !ok {
			return nil
		}
		for _, ix := range n.Indices {
			if i, ok := resolveIndex(ix, arr.Len()); ok {
				next = append(next, c.child(arr.Items[i], subscript(i)))
			}
		}
		return next
	}
	for _, sub := range n.Paths {
		nodes, err := Parse(sub)
		if err != nil {
			continue
		}
		for _, res := range e.run(c.value, nodes) {
			next = append(next, candidate{value: res.Value, path: res.Path, depth: res.Depth})
		}
	}
	return next
}

func hasProperty(v json.Value, name string) bool {
	obj, ok := v.(*json.Object)
	return ok && obj.Has(name)
}

func resolveIndex(i, n int) (int, bool) {
	if i < 0 {
		i += n
	}
	if i < 0 || i >= n {
		return 0, false
	}
	return i, true
}

// sliceIndices resolves slice bounds against the current array length.
// The end sentinel means the array length for a forward walk and "past
// the first element" for a reverse one; a zero start with a negative
// step begins at the last element.
func sliceIndices(start, end, step, n int) []int {
	if n == 0 || step == 0 {
		return nil
	}
	var indices []int
	if step > 0 {
		s := start
		if s < 0 {
			s += n
		}
		s = max(s, 0)
		e := n
		if end != SliceMax {
			e = end
			if e < 0 {
				e += n
			}
			e = min(e, n)
		}
		for i := s; i < e; i += step {
			indices = append(indices, i)
		}
		return indices
	}
	s := n - 1
	if start != 0 {
		s = start
		if s < 0 {
			s += n
		}
		s = min(s, n-1)
	}
	e := -1
	if end != SliceMax {
		e = end
		if e < 0 {
			e += n
		}
	}
	for i := s; i > e && i >= 0; i += step {
		indices = append(indices, i)
	}
	return indices
}

func subscript(i int) string {
	return "[" + strconv.Itoa(i) + "]"
}
