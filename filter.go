package jsonpath

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/midbel/jsonpath/json"
)

// MatchFilter evaluates a filter expression against a context value
// using the default method registry. It never fails: any parse or
// navigation error excludes the element.
func MatchFilter(expr string, ctx json.Value) bool {
	return defaultRegistry.Match(expr, ctx)
}

// Match evaluates a filter expression against a context value. The
// expression is interpreted by repeated top level substring search,
// loosest operator first; text nested in parens, brackets or quotes is
// opaque to the scan.
func (r *Registry) Match(expr string, ctx json.Value) bool {
	expr = strings.TrimSpace(expr)
	expr = strings.TrimPrefix(expr, "?")
	expr = stripParens(expr)
	if expr == "" || ctx == nil {
		return false
	}
	if i := topLevelIndex(expr, "[?"); i >= 0 {
		return r.matchNested(expr, i, ctx)
	}
	if i := topLevelIndex(expr, " || "); i >= 0 {
		left := r.Match(expr[:i], ctx)
		right := r.Match(expr[i+4:], ctx)
		return left || right
	}
	if i := topLevelIndex(expr, " && "); i >= 0 {
		left := r.Match(expr[:i], ctx)
		right := r.Match(expr[i+4:], ctx)
		return left && right
	}
	if strings.HasPrefix(expr, "@") && topLevelIndex(expr, "()") >= 0 {
		return r.matchMethod(expr, ctx)
	}
	if i := topLevelIndex(expr, " in "); i >= 0 {
		return r.matchIn(expr[:i], expr[i+4:], ctx)
	}
	if i := topLevelIndex(expr, "=~"); i >= 0 {
		return r.matchRegex(expr[:i], expr[i+2:], ctx)
	}
	for _, op := range []string{"==", "!=", ">=", "<=", ">", "<"} {
		if i := topLevelIndex(expr, op); i >= 0 {
			return r.compare(expr[:i], op, expr[i+len(op):], ctx)
		}
	}
	v, ok := r.resolve(expr, ctx)
	return ok && v.Kind() != json.KindNull
}

// matchNested handles <path>[?<condition>]: navigate to the property,
// then apply the condition to each array element (any match wins) or to
// the object itself.
func (r *Registry) matchNested(expr string, at int, ctx json.Value) bool {
	end := matchingBracket(expr, at)
	if end < 0 {
		return false
	}
	var (
		path = strings.TrimSpace(expr[:at])
		cond = expr[at+2 : end]
	)
	target, ok := r.resolve(path, ctx)
	if !ok {
		return false
	}
	switch target := target.(type) {
	case *json.Array:
		for _, item := range target.Items {
			if r.Match(cond, item) {
				return true
			}
		}
		return false
	case *json.Object:
		return r.Match(cond, target)
	default:
		return false
	}
}

// matchMethod evaluates a left to right chain of property and method
// elements, threading each stage as the context of the next, then
// re-evaluates the remainder against the synthetic result.
func (r *Registry) matchMethod(expr string, ctx json.Value) bool {
	var (
		rest   = expr[1:]
		cur    = ctx
		called bool
	)
	for strings.HasPrefix(rest, ".") {
		rest = rest[1:]
		n := identLen(rest)
		if n == 0 {
			return false
		}
		name := rest[:n]
		rest = rest[n:]
		if strings.HasPrefix(rest, "()") {
			fn, ok := r.Lookup(name)
			if !ok {
				return false
			}
			v, ok := fn(cur)
			if !ok {
				return false
			}
			cur = v
			called = true
			rest = rest[2:]
			continue
		}
		obj, ok := cur.(*json.Object)
		if !ok {
			return false
		}
		v, ok := obj.Get(name)
		if !ok {
			return false
		}
		cur = v
	}
	if !called {
		return false
	}
	rest = strings.TrimSpace(rest)
	if rest == "" {
		return cur != nil && cur.Kind() != json.KindNull
	}
	return r.Match("@ "+rest, cur)
}

// matchIn tests membership of the left value in the right array.
// Only string elements can match.
func (r *Registry) matchIn(left, right string, ctx json.Value) bool {
	target, ok := r.resolve(right, ctx)
	if !ok {
		return false
	}
	arr, ok := target.(*json.Array)
	if !ok {
		return false
	}
	var name string
	if s, ok := quoted(strings.TrimSpace(left)); ok {
		name = s
	} else {
		v, ok := r.resolve(left, ctx)
		if !ok {
			return false
		}
		s, ok := v.(json.Str)
		if !ok {
			return false
		}
		name = string(s)
	}
	for _, item := range arr.Items {
		if s, ok := item.(json.Str); ok && string(s) == name {
			return true
		}
	}
	return false
}

// matchRegex tests the left string against a /pattern/ literal with
// substring search semantics. Flags are accepted and ignored.
func (r *Registry) matchRegex(left, right string, ctx json.Value) bool {
	v, ok := r.resolve(left, ctx)
	if !ok {
		return false
	}
	str, ok := v.(json.Str)
	if !ok {
		return false
	}
	right = strings.TrimSpace(right)
	if !strings.HasPrefix(right, "/") {
		return false
	}
	end := strings.LastIndex(right, "/")
	if end <= 0 {
		return false
	}
	re, err := regexp.Compile(right[1:end])
	if err != nil {
		return false
	}
	return re.MatchString(string(str))
}

// compare applies a comparator. The right hand literal is classified by
// its lexical shape; the left value's type must agree or the result is
// false, there is no cross type coercion.
func (r *Registry) compare(left, op, right string, ctx json.Value) bool {
	lv, ok := r.resolve(strings.TrimSpace(left), ctx)
	if !ok {
		return false
	}
	right = strings.TrimSpace(right)
	if s, ok := quoted(right); ok {
		ls, ok := lv.(json.Str)
		if !ok {
			return false
		}
		return compareOrdered(string(ls), s, op)
	}
	if n, err := strconv.ParseFloat(right, 64); err == nil {
		ln, ok := lv.(json.Number)
		if !ok {
			return false
		}
		return compareOrdered(float64(ln), n, op)
	}
	switch right {
	case "true", "false":
		lb, ok := lv.(json.Bool)
		if !ok {
			return false
		}
		rb := right == "true"
		switch op {
		case "==":
			return bool(lb) == rb
		case "!=":
			return bool(lb) != rb
		}
		return false
	case "null":
		switch op {
		case "==":
			return lv.Kind() == json.KindNull
		case "!=":
			return lv.Kind() != json.KindNull
		}
		return false
	}
	return false
}

func compareOrdered[T string | float64](left, right T, op string) bool {
	switch op {
	case "==":
		return left == right
	case "!=":
		return left != right
	case ">=":
		return left >= right
	case "<=":
		return left <= right
	case ">":
		return left > right
	case "<":
		return left < right
	}
	return false
}

// resolve navigates an @-relative property path: '@' alone is the
// context, '@.a.b.c' a dotted walk failing at the first missing segment
// or non object intermediate, '@["k"]' a single bracket quoted lookup.
// A bare name resolves like '@.' plus the name.
func (r *Registry) resolve(path string, ctx json.Value) (json.Value, bool) {
	path = strings.TrimSpace(path)
	if path == "" || ctx == nil {
		return nil, false
	}
	if path == "@" {
		return ctx, true
	}
	var rest string
	switch {
	case strings.HasPrefix(path, "@."):
		rest = path[2:]
	case strings.HasPrefix(path, "@"):
		body := strings.TrimSpace(path[1:])
		if !strings.HasPrefix(body, "[") || !strings.HasSuffix(body, "]") {
			return nil, false
		}
		key, ok := quoted(strings.TrimSpace(body[1 : len(body)-1]))
		if !ok {
			return nil, false
		}
		obj, ok := ctx.(*json.Object)
		if !ok {
			return nil, false
		}
		return obj.Get(key)
	default:
		rest = path
	}
	cur := ctx
	for _, name := range strings.Split(rest, ".") {
		obj, ok := cur.(*json.Object)
		if !ok {
			return nil, false
		}
		v, ok := obj.Get(name)
		if !ok {
			return nil, false
		}
		cur = v
	}
	return cur, true
}

// topLevelIndex returns the first index of sub in s that is not nested
// inside parens, brackets or a quoted string, or -1.
func topLevelIndex(s, sub string) int {
	var (
		depth int
		quote byte
	)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if quote != 0 {
			if c == '\\' {
				i++
			} else if c == quote {
				quote = 0
			}
			continue
		}
		if depth == 0 && strings.HasPrefix(s[i:], sub) {
			return i
		}
		switch c {
		case '\'', '"':
			quote = c
		case '[', '(':
			depth++
		case ']', ')':
			depth--
		}
	}
	return -1
}

// matchingBracket returns the index of the ']' closing the '[' at
// position at, or -1.
func matchingBracket(s string, at int) int {
	var (
		depth int
		quote byte
	)
	for i := at; i < len(s); i++ {
		c := s[i]
		if quote != 0 {
			if c == '\\' {
				i++
			} else if c == quote {
				quote = 0
			}
			continue
		}
		switch c {
		case '\'', '"':
			quote = c
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// stripParens removes one layer of wrapping parens when the opening
// paren is closed by the final character.
func stripParens(expr string) string {
	expr = strings.TrimSpace(expr)
	if !strings.HasPrefix(expr, "(") {
		return expr
	}
	var (
		depth int
		quote byte
	)
	for i := 0; i < len(expr); i++ {
		c := expr[i]
		if quote != 0 {
			if c == '\\' {
				i++
			} else if c == quote {
				quote = 0
			}
			continue
		}
		switch c {
		case '\'', '"':
			quote = c
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				if i == len(expr)-1 {
					return strings.TrimSpace(expr[1:i])
				}
				return expr
			}
		}
	}
	return expr
}

func quoted(s string) (string, bool) {
	if len(s) >= 2 && (s[0] == '\'' || s[0] == '"') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1], true
	}
	return "", false
}

func identLen(s string) int {
	for i, c := range s {
		if !isIdentRune(c) {
			return i
		}
	}
	return len(s)
}
