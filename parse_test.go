package jsonpath

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	data := []struct {
		Expr string
		Want []Node
	}{
		{
			Expr: "$",
			Want: []Node{{Kind: KindRoot}},
		},
		{
			Expr: "$.store.book",
			Want: []Node{
				{Kind: KindRoot},
				{Kind: KindProperty, Name: "store"},
				{Kind: KindProperty, Name: "book"},
			},
		},
		{
			Expr: "$['with space']",
			Want: []Node{
				{Kind: KindRoot},
				{Kind: KindProperty, Name: "with space"},
			},
		},
		{
			Expr: "$.book[0]",
			Want: []Node{
				{Kind: KindRoot},
				{Kind: KindProperty, Name: "book"},
				{Kind: KindIndex, Index: 0},
			},
		},
		{
			Expr: "$[-1]",
			Want: []Node{
				{Kind: KindRoot},
				{Kind: KindIndex, Index: -1},
			},
		},
		{
			Expr: "$[1:3]",
			Want: []Node{
				{Kind: KindRoot},
				{Kind: KindSlice, Start: 1, End: 3, Step: 1},
			},
		},
		{
			Expr: "$[:2]",
			Want: []Node{
				{Kind: KindRoot},
				{Kind: KindSlice, Start: 0, End: 2, Step: 1},
			},
		},
		{
			Expr: "$[1:]",
			Want: []Node{
				{Kind: KindRoot},
				{Kind: KindSlice, Start: 1, End: SliceMax, Step: 1},
			},
		},
		{
			Expr: "$[::-1]",
			Want: []Node{
				{Kind: KindRoot},
				{Kind: KindSlice, Start: 0, End: SliceMax, Step: -1},
			},
		},
		{
			Expr: "$[::0]",
			Want: []Node{
				{Kind: KindRoot},
				{Kind: KindSlice, Start: 0, End: SliceMax, Step: 1},
			},
		},
		{
			Expr: "$.items[*]",
			Want: []Node{
				{Kind: KindRoot},
				{Kind: KindProperty, Name: "items"},
				{Kind: KindWildcard},
			},
		},
		{
			Expr: "$.*",
			Want: []Node{
				{Kind: KindRoot},
				{Kind: KindWildcard},
			},
		},
		{
			Expr: "$..price",
			Want: []Node{
				{Kind: KindRoot},
				{Kind: KindRecurse, Property: "price"},
			},
		},
		{
			Expr: "$..*",
			Want: []Node{
				{Kind: KindRoot},
				{Kind: KindRecurse},
			},
		},
		{
			Expr: "$[0,2,4]",
			Want: []Node{
				{Kind: KindRoot},
				{Kind: KindUnion, Indices: []int{0, 2, 4}},
			},
		},
		{
			Expr: "$.in",
			Want: []Node{
				{Kind: KindRoot},
				{Kind: KindProperty, Name: "in"},
			},
		},
		{
			Expr: "$[?(@.price > 10)]",
			Want: []Node{
				{Kind: KindRoot},
				{Kind: KindFilter, Filter: "(@.price > 10)"},
			},
		},
		{
			Expr: "$.book[?(@.tag in @.tags && @.price <= 5)].title",
			Want: []Node{
				{Kind: KindRoot},
				{Kind: KindProperty, Name: "book"},
				{Kind: KindFilter, Filter: "(@.tag in @.tags && @.price <= 5)"},
				{Kind: KindProperty, Name: "title"},
			},
		},
	}
	for _, d := range data {
		nodes, err := Parse(d.Expr)
		if err != nil {
			t.Errorf("%s: fail to parse: %s", d.Expr, err)
			continue
		}
		compareNodes(t, d.Expr, nodes, d.Want)
	}
}

func compareNodes(t *testing.T, expr string, got, want []Node) {
	t.Helper()
	if len(got) != len(want) {
		t.Errorf("%s: want %d nodes, got %d (%v)", expr, len(want), len(got), got)
		return
	}
	for i := range got {
		if got[i].Kind != want[i].Kind {
			t.Errorf("%s: node %d: want kind %s, got %s", expr, i, want[i], got[i])
			continue
		}
		g, w := got[i], want[i]
		switch {
		case g.Name != w.Name:
			t.Errorf("%s: node %d: want name %q, got %q", expr, i, w.Name, g.Name)
		case g.Index != w.Index:
			t.Errorf("%s: node %d: want index %d, got %d", expr, i, w.Index, g.Index)
		case g.Property != w.Property:
			t.Errorf("%s: node %d: want property %q, got %q", expr, i, w.Property, g.Property)
		case g.Filter != w.Filter:
			t.Errorf("%s: node %d: want filter %q, got %q", expr, i, w.Filter, g.Filter)
		}
		if g.Kind == KindSlice {
			if g.Start != w.Start || g.End != w.End || g.Step != w.Step {
				t.Errorf("%s: node %d: want slice %d:%d:%d, got %d:%d:%d", expr, i, w.Start, w.End, w.Step, g.Start, g.End, g.Step)
			}
		}
		if g.Kind == KindUnion {
			if len(g.Indices) != len(w.Indices) {
				t.Errorf("%s: node %d: want %d indices, got %d", expr, i, len(w.Indices), len(g.Indices))
				continue
			}
			for j := range g.Indices {
				if g.Indices[j] != w.Indices[j] {
					t.Errorf("%s: node %d: index %d: want %d, got %d", expr, i, j, w.Indices[j], g.Indices[j])
				}
			}
		}
	}
}

func TestParseErrors(t *testing.T) {
	data := []struct {
		Expr  string
		Cause string
	}{
		{Expr: "", Cause: "empty expression"},
		{Expr: "store.book", Cause: "missing leading root"},
		{Expr: "$.", Cause: "dot without property"},
		{Expr: "$.store.", Cause: "trailing dot"},
		{Expr: "$[", Cause: "unterminated bracket"},
		{Expr: "$[1", Cause: "index missing closing bracket"},
		{Expr: "$[1:2:3:4]", Cause: "slice with too many parts"},
		{Expr: "$[1,]", Cause: "union with dangling comma"},
		{Expr: "$[?(@.a > 1)", Cause: "filter missing closing bracket"},
		{Expr: "$['a'", Cause: "quoted property missing closing bracket"},
		{Expr: "$]", Cause: "stray closing bracket"},
	}
	for _, d := range data {
		_, err := Parse(d.Expr)
		if err == nil {
			t.Errorf("%s: invalid expression parsed properly!", d.Cause)
			continue
		}
		var perr *ParseError
		if !errors.As(err, &perr) {
			t.Errorf("%s: unexpected error type %T", d.Cause, err)
		}
	}
}

func TestSplitUnion(t *testing.T) {
	data := []struct {
		Expr string
		Want []string
	}{
		{
			Expr: "$.a, $.b",
			Want: []string{"$.a", "$.b"},
		},
		{
			Expr: "$.a[1,2], $.b",
			Want: []string{"$.a[1,2]", "$.b"},
		},
		{
			Expr: "$['x,y'], $.b[?(@.a == 'p,q')]",
			Want: []string{"$['x,y']", "$.b[?(@.a == 'p,q')]"},
		},
		{
			Expr: "$.solo",
			Want: []string{"$.solo"},
		},
	}
	for _, d := range data {
		got := SplitUnion(d.Expr)
		if len(got) != len(d.Want) {
			t.Errorf("%s: want %d parts, got %d (%v)", d.Expr, len(d.Want), len(got), got)
			continue
		}
		for i := range got {
			if got[i] != d.Want[i] {
				t.Errorf("%s: part %d: want %q, got %q", d.Expr, i, d.Want[i], got[i])
			}
		}
		want := len(d.Want) > 1
		if got := HasTopLevelComma(d.Expr); got != want {
			t.Errorf("%s: HasTopLevelComma: want %t, got %t", d.Expr, want, got)
		}
	}
}

func TestParseUnion(t *testing.T) {
	nodes, err := ParseUnion("$.a.b, $.c[0]")
	if err != nil {
		t.Fatalf("fail to parse union: %s", err)
	}
	want := []Node{
		{Kind: KindRoot},
		{Kind: KindUnion, Paths: []string{"$.a.b", "$.c[0]"}},
	}
	if len(nodes) != len(want) {
		t.Fatalf("want %d nodes, got %d", len(want), len(nodes))
	}
	if nodes[1].Kind != KindUnion || len(nodes[1].Paths) != 2 {
		t.Fatalf("want a union of 2 paths, got %v", nodes[1])
	}
	for i, p := range want[1].Paths {
		if nodes[1].Paths[i] != p {
			t.Errorf("path %d: want %q, got %q", i, p, nodes[1].Paths[i])
		}
	}
	if _, err := ParseUnion("$.a, store"); err == nil {
		t.Errorf("union with invalid sub expression parsed properly!")
	}
}
