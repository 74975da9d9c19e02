package json

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

type Writer struct {
	ws *bufio.Writer

	Indent  string
	Compact bool

	level int
}

func NewWriter(w io.Writer) *Writer {
	ws := Writer{
		ws:     bufio.NewWriter(w),
		Indent: "  ",
	}
	return &ws
}

func (w *Writer) Write(value Value) error {
	defer func() {
		w.level = 0
		w.ws.Flush()
	}()
	return w.writeValue(value)
}

func (w *Writer) writeValue(value Value) error {
	switch v := value.(type) {
	case *Object:
		return w.writeObject(v)
	case *Array:
		return w.writeArray(v)
	case Str:
		w.writeString(string(v))
	case Number:
		w.ws.WriteString(strconv.FormatFloat(float64(v), 'f', -1, 64))
	case Bool:
		w.ws.WriteString(strconv.FormatBool(bool(v)))
	default:
		w.ws.WriteString("null")
	}
	return nil
}

func (w *Writer) writeObject(value *Object) error {
	w.enter()

	w.ws.WriteRune('{')
	w.writeNL()
	for i, k := range value.Keys() {
		if i > 0 {
			w.ws.WriteRune(',')
			w.writeNL()
		}
		w.writePrefix()
		w.writeKey(k)
		v, _ := value.Get(k)
		if err := w.writeValue(v); err != nil {
			return err
		}
	}
	w.leave()
	w.writeNL()
	w.writePrefix()
	w.ws.WriteRune('}')
	return nil
}

func (w *Writer) writeArray(value *Array) error {
	w.enter()

	w.ws.WriteRune('[')
	w.writeNL()
	for i := range value.Items {
		if i > 0 {
			w.ws.WriteRune(',')
			w.writeNL()
		}
		w.writePrefix()
		if err := w.writeValue(value.Items[i]); err != nil {
			return err
		}
	}
	w.leave()
	w.writeNL()
	w.writePrefix()
	w.ws.WriteRune(']')
	return nil
}

func (w *Writer) writeKey(key string) {
	w.writeString(key)
	w.ws.WriteRune(':')
	if !w.Compact {
		w.ws.WriteRune(' ')
	}
}

func (w *Writer) writeString(value string) {
	w.ws.WriteRune('"')
	for _, c := range value {
		switch c {
		case '"':
			w.ws.WriteString("\\\"")
		case '\\':
			w.ws.WriteString("\\\\")
		case '\n':
			w.ws.WriteString("\\n")
		case '\r':
			w.ws.WriteString("\\r")
		case '\t':
			w.ws.WriteString("\\t")
		case '\b':
			w.ws.WriteString("\\b")
		case '\f':
			w.ws.WriteString("\\f")
		default:
			w.ws.WriteRune(c)
		}
	}
	w.ws.WriteRune('"')
}

func (w *Writer) writePrefix() {
	if w.Compact || w.level == 0 {
		return
	}
	w.ws.WriteString(strings.Repeat(w.Indent, w.level))
}

func (w *Writer) writeNL() {
	if w.Compact {
		return
	}
	w.ws.WriteRune('\n')
}

func (w *Writer) enter() {
	w.level++
}

func (w *Writer) leave() {
	w.level--
}
