package jsonpath

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseError reports a grammar error and the byte offset of the token
// where parsing stopped.
type ParseError struct {
	Message string
	Pos     int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at %d: %s", e.Pos, e.Message)
}

func parseError(message string, pos int) error {
	return &ParseError{
		Message: message,
		Pos:     pos,
	}
}

// Parse compiles a path expression into its flat node program.
func Parse(expr string) ([]Node, error) {
	tokens, err := Tokenize(expr)
	if err != nil {
		return nil, err
	}
	p := parser{
		tokens: tokens,
	}
	return p.parse()
}

// ParseUnion compiles an expression that may contain top level commas.
// A comma union becomes a program of a single union node holding the
// sub expressions; anything else parses as a plain program.
func ParseUnion(expr string) ([]Node, error) {
	if !HasTopLevelComma(expr) {
		return Parse(expr)
	}
	paths := SplitUnion(expr)
	for _, sub := range paths {
		if _, err := Parse(sub); err != nil {
			return nil, err
		}
	}
	nodes := []Node{
		{Kind: KindRoot},
		{Kind: KindUnion, Paths: paths},
	}
	return nodes, nil
}

type parser struct {
	tokens []Token
	idx    int
}

func (p *parser) parse() ([]Node, error) {
	if !p.is(Root) {
		return nil, parseError("expression must start with '$'", p.curr().Offset)
	}
	nodes := []Node{{Kind: KindRoot}}
	p.next()
	for !p.is(EOF) {
		switch p.curr().Type {
		case Dot:
			p.next()
			switch {
			case p.is(Ident) || p.is(In):
				name := p.curr().Literal
				if p.is(In) {
					name = "in"
				}
				nodes = append(nodes, Node{Kind: KindProperty, Name: name})
				p.next()
			case p.is(Wildcard):
				nodes = append(nodes, Node{Kind: KindWildcard})
				p.next()
			default:
				return nil, parseError("'.' must be followed by a property name or '*'", p.curr().Offset)
			}
		case Recurse:
			p.next()
			n := Node{Kind: KindRecurse}
			switch {
			case p.is(Ident):
				n.Property = p.curr().Literal
				p.next()
			case p.is(Wildcard):
				p.next()
			}
			nodes = append(nodes, n)
		case BegBracket:
			p.next()
			n, err := p.parseBracket()
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, n)
		default:
			return nil, parseError(fmt.Sprintf("unexpected token %s", p.curr()), p.curr().Offset)
		}
	}
	return nodes, nil
}

func (p *parser) parseBracket() (Node, error) {
	var zero Node
	switch p.curr().Type {
	case String:
		n := Node{Kind: KindProperty, Name: p.curr().Literal}
		p.next()
		return n, p.expect(EndBracket, "missing ']'")
	case Number:
		first, err := p.integer()
		if err != nil {
			return zero, err
		}
		if p.is(Colon) {
			return p.parseSlice(first)
		}
		if !p.is(Comma) {
			n := Node{Kind: KindIndex, Index: first}
			return n, p.expect(EndBracket, "missing ']'")
		}
		indices := []int{first}
		for p.is(Comma) {
			p.next()
			i, err := p.integer()
			if err != nil {
				return zero, err
			}
			indices = append(indices, i)
		}
		n := Node{Kind: KindUnion, Indices: indices}
		return n, p.expect(EndBracket, "missing ']'")
	case Colon:
		return p.parseSlice(0)
	case Wildcard:
		p.next()
		n := Node{Kind: KindWildcard}
		return n, p.expect(EndBracket, "missing ']'")
	case Question:
		return p.parseFilter()
	default:
		return zero, parseError(fmt.Sprintf("unexpected token %s in brackets", p.curr()), p.curr().Offset)
	}
}

func (p *parser) parseSlice(start int) (Node, error) {
	var zero Node
	n := Node{
		Kind:  KindSlice,
		Start: start,
		End:   SliceMax,
		Step:  1,
	}
	if err := p.expect(Colon, "missing ':'"); err != nil {
		return zero, err
	}
	if p.is(Number) {
		end, err := p.integer()
		if err != nil {
			return zero, err
		}
		n.End = end
	}
	if p.is(Colon) {
		p.next()
		if p.is(Number) {
			step, err := p.integer()
			if err != nil {
				return zero, err
			}
			if step != 0 {
				n.Step = step
			}
		}
	}
	return n, p.expect(EndBracket, "missing ']'")
}

// parseFilter collects the bracket body from the '?' marker to the
// matching ']' and rebuilds it as text for the filter evaluator.
func (p *parser) parseFilter() (Node, error) {
	var (
		body  []Token
		depth = 1
	)
	for {
		if p.is(EOF) {
			return Node{}, parseError("missing ']'", p.curr().Offset)
		}
		switch p.curr().Type {
		case BegBracket:
			depth++
		case EndBracket:
			depth--
			if depth == 0 {
				p.next()
				n := Node{
					Kind:   KindFilter,
					Filter: renderFilter(body),
				}
				return n, nil
			}
		}
		body = append(body, p.curr())
		p.next()
	}
}

// renderFilter serializes filter tokens back to text. Spacing is tuned
// so the result re-lexes the way the filter evaluator expects: tight
// around '@.', parens and closers, single space elsewhere.
func renderFilter(tokens []Token) string {
	var str strings.Builder
	for i, t := range tokens {
		if i > 0 && !noSpaceAfter(tokens[i-1].Type) && !noSpaceBefore(t.Type) {
			str.WriteRune(' ')
		}
		str.WriteString(t.text())
	}
	return str.String()
}

func noSpaceAfter(t rune) bool {
	return t == Dot || t == Recurse || t == Current || t == BegGrp || t == BegBracket || t == Question
}

func noSpaceBefore(t rune) bool {
	return t == Dot || t == Comma || t == EndGrp || t == EndBracket || t == BegGrp || t == BegBracket || t == Question
}

func (p *parser) integer() (int, error) {
	if !p.is(Number) {
		return 0, parseError("number expected", p.curr().Offset)
	}
	i, err := strconv.Atoi(p.curr().Literal)
	if err != nil {
		return 0, parseError(fmt.Sprintf("invalid number %q", p.curr().Literal), p.curr().Offset)
	}
	p.next()
	return i, nil
}

func (p *parser) expect(kind rune, message string) error {
	if !p.is(kind) {
		return parseError(message, p.curr().Offset)
	}
	p.next()
	return nil
}

func (p *parser) curr() Token {
	if p.idx >= len(p.tokens) {
		return Token{Type: EOF, Offset: len(p.tokens)}
	}
	return p.tokens[p.idx]
}

func (p *parser) is(kind rune) bool {
	return p.curr().Type == kind
}

func (p *parser) next() {
	if p.idx < len(p.tokens) {
		p.idx++
	}
}

// HasTopLevelComma scans the raw expression for a comma outside any
// bracket, paren or quoted string. Such an expression is a union of
// independent sub expressions.
func HasTopLevelComma(expr string) bool {
	return len(SplitUnion(expr)) > 1
}

// SplitUnion splits an expression at its top level commas.
func SplitUnion(expr string) []string {
	var (
		parts []string
		depth int
		quote rune
		last  int
	)
	for i, c := range expr {
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '\'' || c == '"':
			quote = c
		case c == '[' || c == '(':
			depth++
		case c == ']' || c == ')':
			depth--
		case c == ',' && depth == 0:
			parts = append(parts, strings.TrimSpace(expr[last:i]))
			last = i + 1
		}
	}
	parts = append(parts, strings.TrimSpace(expr[last:]))
	return parts
}
