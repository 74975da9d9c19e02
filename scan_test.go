package jsonpath

import (
	"errors"
	"testing"
)

func TestTokenize(t *testing.T) {
	data := []struct {
		Expr string
		Want []rune
	}{
		{
			Expr: "$",
			Want: []rune{Root, EOF},
		},
		{
			Expr: "$.store.book",
			Want: []rune{Root, Dot, Ident, Dot, Ident, EOF},
		},
		{
			Expr: "$..price",
			Want: []rune{Root, Recurse, Ident, EOF},
		},
		{
			Expr: "$.items[*]",
			Want: []rune{Root, Dot, Ident, BegBracket, Wildcard, EndBracket, EOF},
		},
		{
			Expr: "$[1:3:-1]",
			Want: []rune{Root, BegBracket, Number, Colon, Number, Colon, Number, EndBracket, EOF},
		},
		{
			Expr: "$[0,2,4]",
			Want: []rune{Root, BegBracket, Number, Comma, Number, Comma, Number, EndBracket, EOF},
		},
		{
			Expr: "$['with space']",
			Want: []rune{Root, BegBracket, String, EndBracket, EOF},
		},
		{
			Expr: "$[?(@.price >= 12.5)]",
			Want: []rune{Root, BegBracket, Question, BegGrp, Current, Dot, Ident, Ge, Number, EndGrp, EndBracket, EOF},
		},
		{
			Expr: "$[?(@.a == 1 && @.b != 2 || @.c < 3)]",
			Want: []rune{
				Root, BegBracket, Question, BegGrp,
				Current, Dot, Ident, Eq, Number, And,
				Current, Dot, Ident, Ne, Number, Or,
				Current, Dot, Ident, Lt, Number,
				EndGrp, EndBracket, EOF,
			},
		},
		{
			Expr: "$[?(@.name =~ /col+/i)]",
			Want: []rune{Root, BegBracket, Question, BegGrp, Current, Dot, Ident, Match, Regex, EndGrp, EndBracket, EOF},
		},
		{
			Expr: "$[?(@.tag in [\"a\", 'b'])]",
			Want: []rune{Root, BegBracket, Question, BegGrp, Current, Dot, Ident, In, BegBracket, String, Comma, String, EndBracket, EndGrp, EndBracket, EOF},
		},
		{
			Expr: "$[-3]",
			Want: []rune{Root, BegBracket, Number, EndBracket, EOF},
		},
	}
	for _, d := range data {
		tokens, err := Tokenize(d.Expr)
		if err != nil {
			t.Errorf("%s: fail to tokenize: %s", d.Expr, err)
			continue
		}
		if len(tokens) != len(d.Want) {
			t.Errorf("%s: want %d tokens, got %d (%v)", d.Expr, len(d.Want), len(tokens), tokens)
			continue
		}
		for i := range tokens {
			if tokens[i].Type != d.Want[i] {
				t.Errorf("%s: token %d: want %s, got %s", d.Expr, i, Token{Type: d.Want[i]}, tokens[i])
			}
		}
	}
}

func TestTokenizeLiterals(t *testing.T) {
	data := []struct {
		Expr string
		At   int
		Want string
	}{
		{Expr: "$.store", At: 2, Want: "store"},
		{Expr: "$['a\\'b']", At: 2, Want: "a'b"},
		{Expr: `$["tab\there"]`, At: 2, Want: "tab\there"},
		{Expr: "$[-3]", At: 2, Want: "-3"},
		{Expr: "$[?(@.p == 12.5)]", At: 8, Want: "12.5"},
		{Expr: "$[?(@.n =~ /ab+c/gi)]", At: 8, Want: "/ab+c/gi"},
	}
	for _, d := range data {
		tokens, err := Tokenize(d.Expr)
		if err != nil {
			t.Errorf("%s: fail to tokenize: %s", d.Expr, err)
			continue
		}
		if d.At >= len(tokens) {
			t.Errorf("%s: no token at %d", d.Expr, d.At)
			continue
		}
		if tokens[d.At].Literal != d.Want {
			t.Errorf("%s: want literal %q, got %q", d.Expr, d.Want, tokens[d.At].Literal)
		}
	}
}

func TestTokenizeOffsets(t *testing.T) {
	tokens, err := Tokenize("$.ab[10]")
	if err != nil {
		t.Fatalf("fail to tokenize: %s", err)
	}
	offsets := []int{0, 1, 2, 4, 5, 7, 8}
	if len(tokens) != len(offsets) {
		t.Fatalf("want %d tokens, got %d", len(offsets), len(tokens))
	}
	for i := range tokens {
		if tokens[i].Offset != offsets[i] {
			t.Errorf("token %d (%s): want offset %d, got %d", i, tokens[i], offsets[i], tokens[i].Offset)
		}
	}
}

func TestTokenizeErrors(t *testing.T) {
	data := []struct {
		Expr   string
		Offset int
	}{
		{Expr: "$['open", Offset: 2},
		{Expr: "$[?(@.n =~ /open)]", Offset: 11},
		{Expr: "$[?(@.a = 1)]", Offset: 8},
		{Expr: "$[?(@.a ! 1)]", Offset: 8},
		{Expr: "$[?(@.a & @.b)]", Offset: 8},
		{Expr: "$[?(@.a | @.b)]", Offset: 8},
		{Expr: "$.a#b", Offset: 3},
	}
	for _, d := range data {
		_, err := Tokenize(d.Expr)
		if err == nil {
			t.Errorf("%s: invalid expression tokenized properly!", d.Expr)
			continue
		}
		var serr *SyntaxError
		if !errors.As(err, &serr) {
			t.Errorf("%s: unexpected error type %T", d.Expr, err)
			continue
		}
		if serr.Offset != d.Offset {
			t.Errorf("%s: want error at %d, got %d (%s)", d.Expr, d.Offset, serr.Offset, serr)
		}
	}
}
