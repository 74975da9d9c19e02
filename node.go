package jsonpath

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// NodeKind discriminates the variants of a path program node.
type NodeKind int8

const (
	KindRoot NodeKind = iota
	KindProperty
	KindIndex
	KindSlice
	KindWildcard
	KindRecurse
	KindFilter
	KindUnion
)

// SliceMax is the sentinel slice end meaning "up to the array length".
const SliceMax = math.MaxInt

// Node is one step of a compiled path program. A program is a flat list
// of nodes applied left to right, always starting with a KindRoot node.
type Node struct {
	Kind NodeKind

	Name string

	Index int

	Start int
	End   int
	Step  int

	// Property restricts a recursive descent to values owning the
	// named member. Empty matches everything at every depth.
	Property string

	// Filter keeps the predicate as raw text, re-interpreted on each
	// evaluation.
	Filter string

	// Paths and Indices are the two union forms, mutually exclusive.
	Paths   []string
	Indices []int
}

func (n Node) String() string {
	switch n.Kind {
	case KindRoot:
		return "$"
	case KindProperty:
		return "." + n.Name
	case KindIndex:
		return fmt.Sprintf("[%d]", n.Index)
	case KindSlice:
		end := "max"
		if n.End != SliceMax {
			end = strconv.Itoa(n.End)
		}
		return fmt.Sprintf("[%d:%s:%d]", n.Start, end, n.Step)
	case KindWildcard:
		return "[*]"
	case KindRecurse:
		return ".." + n.Property
	case KindFilter:
		return "[?" + n.Filter + "]"
	case KindUnion:
		if len(n.Paths) > 0 {
			return strings.Join(n.Paths, ",")
		}
		var list []string
		for _, i := range n.Indices {
			list = append(list, strconv.Itoa(i))
		}
		return "[" + strings.Join(list, ",") + "]"
	default:
		return "<unknown>"
	}
}

// CanHandleSimple reports whether the program only uses the node kinds
// the simple evaluator implements.
func CanHandleSimple(nodes []Node) bool {
	for _, n := range nodes {
		switch n.Kind {
		case KindRoot, KindProperty, KindIndex, KindSlice, KindWildcard:
		default:
			return false
		}
	}
	return true
}

// CanHandleAdvanced reports whether the advanced evaluator accepts the
// program. It handles every node kind.
func CanHandleAdvanced(nodes []Node) bool {
	return len(nodes) > 0
}
