package jsonpath

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

// SyntaxError reports a lexical error and the byte offset where it was
// found in the expression.
type SyntaxError struct {
	Message string
	Offset  int
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at %d: %s", e.Offset, e.Message)
}

func syntaxError(message string, offset int) error {
	return &SyntaxError{
		Message: message,
		Offset:  offset,
	}
}

// Tokenize lexes a path expression. The returned slice is always
// terminated by an EOF token when err is nil.
func Tokenize(expr string) ([]Token, error) {
	var (
		scan   = scanner{input: expr}
		tokens []Token
	)
	scan.read()
	for {
		tok, err := scan.Scan()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Type == EOF {
			return tokens, nil
		}
	}
}

type scanner struct {
	input string
	pos   int
	next  int
	char  rune
}

func (s *scanner) Scan() (Token, error) {
	s.skipBlank()

	tok := Token{
		Offset: s.pos,
	}
	if s.done() {
		tok.Type = EOF
		return tok, nil
	}
	switch {
	case s.char == '$':
		tok.Type = Root
		s.read()
	case s.char == '@':
		tok.Type = Current
		s.read()
	case s.char == '.':
		tok.Type = Dot
		s.read()
		if s.char == '.' {
			tok.Type = Recurse
			s.read()
		}
	case s.char == '[':
		tok.Type = BegBracket
		s.read()
	case s.char == ']':
		tok.Type = EndBracket
		s.read()
	case s.char == '(':
		tok.Type = BegGrp
		s.read()
	case s.char == ')':
		tok.Type = EndGrp
		s.read()
	case s.char == '*':
		tok.Type = Wildcard
		s.read()
	case s.char == ':':
		tok.Type = Colon
		s.read()
	case s.char == '?':
		tok.Type = Question
		s.read()
	case s.char == ',':
		tok.Type = Comma
		s.read()
	case isStrQuote(s.char):
		return tok, s.scanString(&tok)
	case s.char == '/':
		return tok, s.scanRegex(&tok)
	case isDigit(s.char) || s.char == '-':
		s.scanNumber(&tok)
	case isIdentStart(s.char):
		s.scanIdent(&tok)
	case isOperator(s.char):
		return tok, s.scanOperator(&tok)
	default:
		return tok, syntaxError(fmt.Sprintf("unexpected character %q", s.char), s.pos)
	}
	return tok, nil
}

func (s *scanner) scanString(tok *Token) error {
	var (
		quote = s.char
		start = s.pos
		str   []rune
	)
	s.read()
	for !s.done() && s.char != quote {
		if s.char == '\\' {
			s.read()
			c, ok := unescape(s.char, quote)
			if !ok {
				return syntaxError(fmt.Sprintf("unknown escape sequence \\%c", s.char), s.pos)
			}
			s.char = c
		}
		str = append(str, s.char)
		s.read()
	}
	if s.char != quote {
		return syntaxError("unterminated string", start)
	}
	s.read()
	tok.Type = String
	tok.Literal = string(str)
	return nil
}

// scanRegex lexes a /pattern/flags literal whole, delimiters included.
func (s *scanner) scanRegex(tok *Token) error {
	var (
		start = s.pos
		str   []rune
	)
	str = append(str, s.char)
	s.read()
	for !s.done() && s.char != '/' {
		if s.char == '\\' {
			str = append(str, s.char)
			s.read()
			if s.done() {
				break
			}
		}
		str = append(str, s.char)
		s.read()
	}
	if s.char != '/' {
		return syntaxError("unterminated regex", start)
	}
	str = append(str, s.char)
	s.read()
	for !s.done() && unicode.IsLetter(s.char) {
		str = append(str, s.char)
		s.read()
	}
	tok.Type = Regex
	tok.Literal = string(str)
	return nil
}

func (s *scanner) scanNumber(tok *Token) {
	var str []rune
	if s.char == '-' {
		str = append(str, s.char)
		s.read()
	}
	for !s.done() && isDigit(s.char) {
		str = append(str, s.char)
		s.read()
	}
	if s.char == '.' && isDigit(s.peek()) {
		str = append(str, s.char)
		s.read()
		for !s.done() && isDigit(s.char) {
			str = append(str, s.char)
			s.read()
		}
	}
	tok.Type = Number
	tok.Literal = string(str)
}

func (s *scanner) scanIdent(tok *Token) {
	var str []rune
	for !s.done() && isIdentRune(s.char) {
		str = append(str, s.char)
		s.read()
	}
	tok.Literal = string(str)
	if tok.Literal == "in" {
		tok.Type = In
		return
	}
	tok.Type = Ident
}

func (s *scanner) scanOperator(tok *Token) error {
	char := s.char
	s.read()
	switch char {
	case '=':
		switch s.char {
		case '=':
			tok.Type = Eq
		case '~':
			tok.Type = Match
		default:
			return syntaxError("invalid operator '='", tok.Offset)
		}
		s.read()
	case '!':
		if s.char != '=' {
			return syntaxError("invalid operator '!'", tok.Offset)
		}
		tok.Type = Ne
		s.read()
	case '<':
		tok.Type = Lt
		if s.char == '=' {
			tok.Type = Le
			s.read()
		}
	case '>':
		tok.Type = Gt
		if s.char == '=' {
			tok.Type = Ge
			s.read()
		}
	case '&':
		if s.char != '&' {
			return syntaxError("invalid operator '&'", tok.Offset)
		}
		tok.Type = And
		s.read()
	case '|':
		if s.char != '|' {
			return syntaxError("invalid operator '|'", tok.Offset)
		}
		tok.Type = Or
		s.read()
	}
	return nil
}

func (s *scanner) read() {
	if s.next >= len(s.input) {
		s.pos = len(s.input)
		s.char = utf8.RuneError
		return
	}
	char, size := utf8.DecodeRuneInString(s.input[s.next:])
	s.pos = s.next
	s.next += size
	s.char = char
}

func (s *scanner) peek() rune {
	if s.next >= len(s.input) {
		return utf8.RuneError
	}
	char, _ := utf8.DecodeRuneInString(s.input[s.next:])
	return char
}

func (s *scanner) done() bool {
	return s.char == utf8.RuneError && s.next >= len(s.input)
}

func (s *scanner) skipBlank() {
	for !s.done() && unicode.IsSpace(s.char) {
		s.read()
	}
}

func unescape(c, quote rune) (rune, bool) {
	switch c {
	case quote, '\\', '/', '\'', '"':
		return c, true
	case 'n':
		return '\n', true
	case 't':
		return '\t', true
	case 'r':
		return '\r', true
	case 'b':
		return '\b', true
	case 'f':
		return '\f', true
	default:
		return c, false
	}
}

func isStrQuote(c rune) bool {
	return c == '\'' || c == '"'
}

func isDigit(c rune) bool {
	return c >= '0' && c <= '9'
}

func isIdentStart(c rune) bool {
	return unicode.IsLetter(c) || c == '_'
}

func isIdentRune(c rune) bool {
	return isIdentStart(c) || isDigit(c)
}

func isOperator(c rune) bool {
	return c == '=' || c == '!' || c == '<' || c == '>' || c == '&' || c == '|'
}
