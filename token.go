package jsonpath

import "fmt"

// Token is one lexical unit of a path expression. Offset is the byte
// position of the token in the source expression.
type Token struct {
	Literal string
	Type    rune
	Offset  int
}

func (t Token) String() string {
	var prefix string
	switch t.Type {
	case Root:
		return "<root>"
	case Current:
		return "<current>"
	case Dot:
		return "<dot>"
	case Recurse:
		return "<recurse>"
	case BegBracket:
		return "<beg-bracket>"
	case EndBracket:
		return "<end-bracket>"
	case BegGrp:
		return "<beg-grp>"
	case EndGrp:
		return "<end-grp>"
	case Wildcard:
		return "<wildcard>"
	case Colon:
		return "<colon>"
	case Question:
		return "<question>"
	case Comma:
		return "<comma>"
	case Eq:
		return "<equal>"
	case Ne:
		return "<not-equal>"
	case Lt:
		return "<lesser-than>"
	case Le:
		return "<lesser-eq>"
	case Gt:
		return "<greater-than>"
	case Ge:
		return "<greater-eq>"
	case And:
		return "<and>"
	case Or:
		return "<or>"
	case Match:
		return "<match>"
	case In:
		return "<in>"
	case EOF:
		return "<eof>"
	case Ident:
		prefix = "identifier"
	case String:
		prefix = "string"
	case Number:
		prefix = "number"
	case Regex:
		prefix = "regex"
	case Invalid:
		prefix = "invalid"
	}
	return fmt.Sprintf("%s(%s)", prefix, t.Literal)
}

const (
	EOF = -(1 + iota)
	Root
	Current
	Dot
	Recurse
	BegBracket
	EndBracket
	BegGrp
	EndGrp
	Ident
	String
	Number
	Regex
	Wildcard
	Colon
	Question
	Comma
	Eq
	Ne
	Lt
	Le
	Gt
	Ge
	And
	Or
	Match
	In
	Invalid
)

// text renders a token back to expression source form. Used when a
// filter body is rebuilt from its tokens.
func (t Token) text() string {
	switch t.Type {
	case Root:
		return "$"
	case Current:
		return "@"
	case Dot:
		return "."
	case Recurse:
		return ".."
	case BegBracket:
		return "["
	case EndBracket:
		return "]"
	case BegGrp:
		return "("
	case EndGrp:
		return ")"
	case Wildcard:
		return "*"
	case Colon:
		return ":"
	case Question:
		return "?"
	case Comma:
		return ","
	case Eq:
		return "=="
	case Ne:
		return "!="
	case Lt:
		return "<"
	case Le:
		return "<="
	case Gt:
		return ">"
	case Ge:
		return ">="
	case And:
		return "&&"
	case Or:
		return "||"
	case Match:
		return "=~"
	case In:
		return "in"
	case String:
		return "'" + t.Literal + "'"
	default:
		return t.Literal
	}
}
