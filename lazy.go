package jsonpath

import (
	"errors"

	"github.com/midbel/jsonpath/json"
)

// ErrNoResults is returned by Next when the generator is exhausted.
var ErrNoResults = errors.New("jsonpath: no more results")

type lazyState int8

const (
	lazyUninitialized lazyState = iota
	lazyInitialized
	lazyExhausted
)

type recurseState int8

const (
	recurseNone recurseState = iota
	recurseSelf
	recurseChildren
)

// frame is one unit of pending traversal work. Frames are plain values
// on the generator's explicit stack; none outlives the root they point
// into.
type frame struct {
	value json.Value
	path  string
	index int
	depth int

	rec     recurseState
	recProp string
}

// Lazy is a pull based, resumable query generator. It produces one
// match at a time in the same order the batch evaluators would, driving
// an explicit stack so document depth never overflows the call stack.
//
// A Lazy is not safe for concurrent use; run independent instances for
// concurrent queries over the same tree.
type Lazy struct {
	root json.Value
	expr string
	reg  *Registry

	nodes   []Node
	paths   []string
	pathIdx int

	pred func(json.Value, string) bool

	state   lazyState
	stack   []frame
	pending *Result

	cache   *resultCache
	caching bool
	hits    int
	queries int
}

// NewLazy builds a generator for a path expression. A parse failure
// degrades to a zero node program: the generator yields no results
// instead of reporting the error.
func NewLazy(root json.Value, expr string) *Lazy {
	return NewLazyWith(root, expr, defaultRegistry)
}

// NewLazyWith is NewLazy with an explicit method registry for filters.
func NewLazyWith(root json.Value, expr string, reg *Registry) *Lazy {
	l := Lazy{
		root:    root,
		expr:    expr,
		reg:     reg,
		cache:   newResultCache(),
		caching: true,
	}
	if HasTopLevelComma(expr) {
		l.paths = SplitUnion(expr)
		return &l
	}
	if nodes, err := Parse(expr); err == nil {
		l.nodes = nodes
	}
	return &l
}

// NewLazyFunc builds a generator that walks the whole tree in pre-order
// and yields every value the predicate accepts.
func NewLazyFunc(root json.Value, pred func(value json.Value, path string) bool) *Lazy {
	return &Lazy{
		root:    root,
		pred:    pred,
		reg:     defaultRegistry,
		cache:   newResultCache(),
		caching: true,
	}
}

// HasNext reports whether a result is pending, initializing and
// advancing the traversal as needed. It does not consume the result.
func (l *Lazy) HasNext() bool {
	if l.state == lazyUninitialized {
		l.init()
	}
	if l.pending == nil && l.state != lazyExhausted {
		l.advance()
	}
	return l.pending != nil
}

// Next consumes and returns the pending result.
func (l *Lazy) Next() (Result, error) {
	if !l.HasNext() {
		return Result{}, ErrNoResults
	}
	res := *l.pending
	l.pending = nil
	return res, nil
}

// NextBatch collects up to max results.
func (l *Lazy) NextBatch(max int) []Result {
	var results []Result
	for len(results) < max && l.HasNext() {
		res, err := l.Next()
		if err != nil {
			break
		}
		results = append(results, res)
	}
	return results
}

// Reset rewinds the generator and immediately re-seeds the traversal.
// The cache and its counters survive so repeated runs can be compared.
func (l *Lazy) Reset() {
	l.init()
}

// SetCache enables or disables result caching. Toggling never changes
// which results a query yields.
func (l *Lazy) SetCache(enabled bool) {
	l.caching = enabled
}

func (l *Lazy) CacheEnabled() bool {
	return l.caching
}

// ClearCache drops every cached entry. Counters are kept.
func (l *Lazy) ClearCache() {
	l.cache.clear()
}

func (l *Lazy) CacheSize() int {
	return l.cache.size()
}

func (l *Lazy) Hits() int {
	return l.hits
}

func (l *Lazy) Queries() int {
	return l.queries
}

func (l *Lazy) init() {
	l.state = lazyInitialized
	l.stack = l.stack[:0]
	l.pending = nil
	l.pathIdx = 0
	if l.root == nil {
		return
	}
	switch {
	case l.pred != nil:
		l.push(frame{value: l.root, path: "$"})
	case len(l.paths) > 0:
		l.nextUnionPath()
	case len(l.nodes) > 0:
		l.push(frame{value: l.root, path: "$"})
	}
}

func (l *Lazy) advance() {
	for l.pending == nil {
		if len(l.stack) == 0 {
			if l.pathIdx < len(l.paths) && l.nextUnionPath() {
				l.advance()
				return
			}
			l.state = lazyExhausted
			return
		}
		f := l.pop()
		if l.pred != nil {
			l.stepPredicate(f)
			continue
		}
		l.stepNode(f)
	}
}

// nextUnionPath discards the current stack and seeds a fresh root frame
// for the next sub expression, skipping the ones that fail to parse.
func (l *Lazy) nextUnionPath() bool {
	for l.pathIdx < len(l.paths) {
		sub := l.paths[l.pathIdx]
		l.pathIdx++
		nodes, err := Parse(sub)
		if err != nil {
			continue
		}
		l.nodes = nodes
		l.stack = l.stack[:0]
		l.push(frame{value: l.root, path: "$"})
		return true
	}
	return false
}

func (l *Lazy) stepPredicate(f frame) {
	children := expand(candidate{value: f.value, path: f.path, depth: f.depth})
	for i := len(children) - 1; i >= 0; i-- {
		c := children[i]
		l.push(frame{value: c.value, path: c.path, depth: c.depth})
	}
	if l.pred(f.value, f.path) {
		l.pending = &Result{Value: f.value, Path: f.path, Depth: f.depth}
	}
}

func (l *Lazy) stepNode(f frame) {
	if f.index >= len(l.nodes) {
		l.emit(f)
		return
	}
	n := l.nodes[f.index]
	switch n.Kind {
	case KindRoot:
		f.index++
		l.push(f)
	case KindProperty:
		if obj, ok := f.value.(*json.Object); ok {
			if v, ok := obj.Get(n.Name); ok {
				l.push(l.successor(f, v, "."+n.Name))
			}
		}
	case KindIndex:
		if arr, ok := f.value.(*json.Array); ok {
			if i, ok := resolveIndex(n.Index, arr.Len()); ok {
				l.push(l.successor(f, arr.Items[i], subscript(i)))
			}
		}
	case KindSlice:
		if arr, ok := f.value.(*json.Array); ok {
			indices := sliceIndices(n.Start, n.End, n.Step, arr.Len())
			for i := len(indices) - 1; i >= 0; i-- {
				ix := indices[i]
				l.push(l.successor(f, arr.Items[ix], subscript(ix)))
			}
		}
	case KindWildcard:
		l.pushAll(f, expand(candidate{value: f.value, path: f.path, depth: f.depth}))
	case KindFilter:
		l.stepFilter(f, n.Filter)
	case KindUnion:
		l.stepUnion(f, n)
	case KindRecurse:
		l.stepRecurse(f, n)
	}
}

func (l *Lazy) stepFilter(f frame, filter string) {
	if arr, ok := f.value.(*json.Array); ok {
		var matched []candidate
		for i, item := range arr.Items {
			if l.reg.Match(filter, item) {
				matched = append(matched, candidate{
					value: item,
					path:  f.path + subscript(i),
					depth: f.depth + 1,
				})
			}
		}
		l.pushAll(f, matched)
		return
	}
	if l.reg.Match(filter, f.value) {
		f.index++
		l.push(f)
	}
}

func (l *Lazy) stepUnion(f frame, n Node) {
	if len(n.Indices) == 0 {
		return
	}
	arr, ok := f.value.(*json.Array)
	if !ok {
		return
	}
	for i := len(n.Indices) - 1; i >= 0; i-- {
		if ix, ok := resolveIndex(n.Indices[i], arr.Len()); ok {
			l.push(l.successor(f, arr.Items[ix], subscript(ix)))
		}
	}
}

// stepRecurse drives the per frame sub state machine of a recursive
// node: the self pass emits a continuation frame past this node, the
// children pass restarts the cycle on each child at the same node.
func (l *Lazy) stepRecurse(f frame, n Node) {
	switch f.rec {
	case recurseNone:
		f.rec = recurseSelf
		f.recProp = n.Property
		l.push(f)
	case recurseSelf:
		next := f
		next.rec = recurseChildren
		l.push(next)
		if f.recProp == "" || hasProperty(f.value, f.recProp) {
			l.push(frame{
				value: f.value,
				path:  f.path,
				index: f.index + 1,
				depth: f.depth,
			})
		}
	case recurseChildren:
		children := expand(candidate{value: f.value, path: f.path, depth: f.depth})
		for i := len(children) - 1; i >= 0; i-- {
			c := children[i]
			l.push(frame{
				value: c.value,
				path:  c.path,
				index: f.index,
				depth: c.depth,
			})
		}
	}
}

// emit buffers a terminal frame as the pending result. Cache lookups
// happen here only: intermediate traversal is never cached.
func (l *Lazy) emit(f frame) {
	if l.caching && l.expr != "" {
		key := l.expr + "#" + f.path
		l.queries++
		if values, ok := l.cache.get(key); ok && len(values) > 0 {
			l.hits++
			l.pending = &Result{Value: values[0], Path: f.path, Depth: f.depth}
			return
		}
		l.cache.put(key, f.value)
	}
	l.pending = &Result{Value: f.value, Path: f.path, Depth: f.depth}
}

func (l *Lazy) successor(f frame, v json.Value, suffix string) frame {
	return frame{
		value: v,
		path:  f.path + suffix,
		index: f.index + 1,
		depth: f.depth + 1,
	}
}

// pushAll pushes successor frames in reverse so the stack pops them
// back in document order.
func (l *Lazy) pushAll(f frame, children []candidate) {
	for i := len(children) - 1; i >= 0; i-- {
		c := children[i]
		l.push(frame{
			value: c.value,
			path:  c.path,
			index: f.index + 1,
			depth: c.depth,
		})
	}
}

func (l *Lazy) push(f frame) {
	l.stack = append(l.stack, f)
}

func (l *Lazy) pop() frame {
	f := l.stack[len(l.stack)-1]
	l.stack = l.stack[:len(l.stack)-1]
	return f
}
