package json

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	tokEOF = -(1 + iota)
	tokBegArr
	tokEndArr
	tokBegObj
	tokEndObj
	tokComma
	tokColon
	tokBoolean
	tokNull
	tokString
	tokNumber
	tokInvalid
)

type token struct {
	Literal string
	Type    rune
}

// Parse reads a json document and returns its value tree.
func Parse(r io.Reader) (Value, error) {
	p := parser{
		scan: scan(r),
	}
	p.next()
	p.next()
	v, err := p.parse()
	if err != nil {
		return nil, err
	}
	if !p.done() {
		return nil, fmt.Errorf("syntax error: content after top level value")
	}
	return v, nil
}

func ParseString(doc string) (Value, error) {
	return Parse(strings.NewReader(doc))
}

type parser struct {
	scan *scanner
	curr token
	peek token
}

func (p *parser) parse() (Value, error) {
	switch p.curr.Type {
	case tokBegArr:
		return p.parseArray()
	case tokBegObj:
		return p.parseObject()
	case tokString:
		return p.parseString(), nil
	case tokNumber:
		return p.parseNumber(), nil
	case tokBoolean:
		return p.parseBool(), nil
	case tokNull:
		return p.parseNull(), nil
	default:
		return nil, fmt.Errorf("syntax error: unexpected token %q", p.curr.Literal)
	}
}

func (p *parser) parseKey() (string, error) {
	if p.curr.Type != tokString {
		return "", fmt.Errorf("syntax error: object key should be string")
	}
	key := p.curr.Literal
	p.next()
	if !p.is(tokColon) {
		return "", fmt.Errorf("syntax error: missing ':'")
	}
	p.next()
	return key, nil
}

func (p *parser) parseObject() (Value, error) {
	p.next()
	obj := NewObject()
	for !p.done() && !p.is(tokEndObj) {
		k, err := p.parseKey()
		if err != nil {
			return nil, err
		}
		a, err := p.parse()
		if err != nil {
			return nil, err
		}
		obj.Set(k, a)
		switch {
		case p.is(tokComma):
			p.next()
			if p.is(tokEndObj) {
				return nil, fmt.Errorf("syntax error: trailing comma not allowed")
			}
		case p.is(tokEndObj):
		default:
			return nil, fmt.Errorf("syntax error: expected ',' or '}'")
		}
	}
	if !p.is(tokEndObj) {
		return nil, fmt.Errorf("object: missing '}'")
	}
	p.next()
	return obj, nil
}

func (p *parser) parseArray() (Value, error) {
	p.next()
	arr := NewArray()
	for !p.done() && !p.is(tokEndArr) {
		a, err := p.parse()
		if err != nil {
			return nil, err
		}
		arr.Append(a)
		switch {
		case p.is(tokComma):
			p.next()
			if p.is(tokEndArr) {
				return nil, fmt.Errorf("syntax error: trailing comma not allowed")
			}
		case p.is(tokEndArr):
		default:
			return nil, fmt.Errorf("syntax error: expected ',' or ']'")
		}
	}
	if !p.is(tokEndArr) {
		return nil, fmt.Errorf("array: missing ']'")
	}
	p.next()
	return arr, nil
}

func (p *parser) parseNumber() Value {
	defer p.next()
	n, _ := strconv.ParseFloat(p.curr.Literal, 64)
	return Number(n)
}

func (p *parser) parseBool() Value {
	defer p.next()
	return Bool(p.curr.Literal == "true")
}

func (p *parser) parseString() Value {
	defer p.next()
	return Str(p.curr.Literal)
}

func (p *parser) parseNull() Value {
	defer p.next()
	return Null{}
}

func (p *parser) done() bool {
	return p.is(tokEOF)
}

func (p *parser) is(kind rune) bool {
	return p.curr.Type == kind
}

func (p *parser) next() {
	p.curr = p.peek
	p.peek = p.scan.Scan()
}

type scanner struct {
	input io.RuneScanner
	char  rune

	str bytes.Buffer
}

func scan(r io.Reader) *scanner {
	s := scanner{
		input: bufio.NewReader(r),
	}
	s.read()
	return &s
}

func (s *scanner) Scan() token {
	defer s.str.Reset()
	s.skipBlank()

	var tok token
	if s.done() {
		tok.Type = tokEOF
		return tok
	}
	switch {
	case isLower(s.char):
		s.scanIdent(&tok)
	case isQuote(s.char):
		s.scanString(&tok)
	case isDigit(s.char) || s.char == '-':
		s.scanNumber(&tok)
	case isDelim(s.char):
		s.scanDelimiter(&tok)
	default:
		tok.Type = tokInvalid
	}
	return tok
}

func (s *scanner) scanIdent(tok *token) {
	for !s.done() && isAlpha(s.char) {
		s.write()
		s.read()
	}
	tok.Literal = s.str.String()
	switch tok.Literal {
	case "true", "false":
		tok.Type = tokBoolean
	case "null":
		tok.Type = tokNull
	default:
		tok.Type = tokInvalid
	}
}

func (s *scanner) scanString(tok *token) {
	quote := s.char
	s.read()
	for !s.done() && s.char != quote {
		if s.char == '\\' {
			s.read()
			if ok := s.scanEscape(quote); !ok {
				tok.Type = tokInvalid
				return
			}
		}
		s.write()
		s.read()
	}
	tok.Literal = s.str.String()
	tok.Type = tokString
	if s.char != quote {
		tok.Type = tokInvalid
	} else {
		s.read()
	}
}

func (s *scanner) scanEscape(quote rune) bool {
	switch s.char {
	case quote:
		s.char = quote
	case '\\':
		s.char = '\\'
	case '/':
		s.char = '/'
	case 'b':
		s.char = '\b'
	case 'f':
		s.char = '\f'
	case 'n':
		s.char = '\n'
	case 'r':
		s.char = '\r'
	case 't':
		s.char = '\t'
	case 'u':
		s.read()
		buf := make([]rune, 4)
		for i := 1; i <= 4; i++ {
			if !isHex(s.char) {
				return false
			}
			buf[i-1] = s.char
			if i < 4 {
				s.read()
			}
		}
		char, _ := strconv.ParseInt(string(buf), 16, 32)
		s.char = rune(char)
	default:
		return false
	}
	return true
}

func (s *scanner) scanNumber(tok *token) {
	tok.Type = tokNumber
	if s.char == '-' {
		s.write()
		s.read()
	}
	for !s.done() && isDigit(s.char) {
		s.write()
		s.read()
	}
	if s.char == '.' {
		s.write()
		s.read()
		if !isDigit(s.char) {
			tok.Type = tokInvalid
			return
		}
		for !s.done() && isDigit(s.char) {
			s.write()
			s.read()
		}
	}
	if s.char == 'e' || s.char == 'E' {
		s.write()
		s.read()
		if s.char == '-' || s.char == '+' {
			s.write()
			s.read()
		}
		if !isDigit(s.char) {
			tok.Type = tokInvalid
			return
		}
		for !s.done() && isDigit(s.char) {
			s.write()
			s.read()
		}
	}
	tok.Literal = s.str.String()
}

func (s *scanner) scanDelimiter(tok *token) {
	switch s.char {
	case '[':
		tok.Type = tokBegArr
	case ']':
		tok.Type = tokEndArr
	case '{':
		tok.Type = tokBegObj
	case '}':
		tok.Type = tokEndObj
	case ',':
		tok.Type = tokComma
	case ':':
		tok.Type = tokColon
	default:
		tok.Type = tokInvalid
	}
	if tok.Type != tokInvalid {
		s.read()
	}
}

func (s *scanner) write() {
	s.str.WriteRune(s.char)
}

func (s *scanner) read() {
	char, _, err := s.input.ReadRune()
	if errors.Is(err, io.EOF) {
		char = utf8.RuneError
	}
	s.char = char
}

func (s *scanner) done() bool {
	return s.char == utf8.RuneError
}

func (s *scanner) skipBlank() {
	for !s.done() && unicode.IsSpace(s.char) {
		s.read()
	}
}

func isHex(c rune) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func isDigit(c rune) bool {
	return c >= '0' && c <= '9'
}

func isLower(c rune) bool {
	return c >= 'a' && c <= 'z'
}

func isAlpha(c rune) bool {
	return isLower(c) || (c >= 'A' && c <= 'Z') || isDigit(c) || c == '_'
}

func isQuote(c rune) bool {
	return c == '"'
}

func isDelim(c rune) bool {
	return c == '{' || c == '}' || c == '[' || c == ']' || c == ',' || c == ':'
}
