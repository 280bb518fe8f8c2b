package xmlout

import "strings"

// StreamWriter re-emits an XML token stream with the same two-space
// indentation as Render. Annotate and the diff flag applier use it to
// rewrite translation files while preserving element structure, text,
// comments, and CDATA.
type StreamWriter struct {
	b         strings.Builder
	depth     int
	wroteAny  bool
	lastEvent int
}

const (
	evNone = iota
	evStart
	evText
	evOther
)

func (w *StreamWriter) breakLine() {
	if w.wroteAny {
		w.b.WriteString("\n")
	}
	w.b.WriteString(strings.Repeat("  ", w.depth))
	w.wroteAny = true
}

// WriteDecl writes the UTF-8 XML declaration.
func (w *StreamWriter) WriteDecl() {
	if w.wroteAny {
		return
	}
	w.b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	w.wroteAny = true
	w.lastEvent = evOther
}

// WriteStart opens an element on its own indented line.
func (w *StreamWriter) WriteStart(name string) {
	w.breakLine()
	w.b.WriteString("<" + name + ">")
	w.depth++
	w.lastEvent = evStart
}

// WriteText writes escaped character data inline.
func (w *StreamWriter) WriteText(text string) {
	w.b.WriteString(escapeText(text))
	w.wroteAny = true
	w.lastEvent = evText
}

// WriteCData writes a CDATA section inline.
func (w *StreamWriter) WriteCData(text string) {
	w.b.WriteString("<![CDATA[" + text + "]]>")
	w.wroteAny = true
	w.lastEvent = evText
}

// WriteEnd closes an element. Content-free and text-only elements close
// inline; elements with children close on their own indented line.
func (w *StreamWriter) WriteEnd(name string) {
	w.depth--
	if w.lastEvent == evStart || w.lastEvent == evText {
		w.b.WriteString("</" + name + ">")
	} else {
		w.breakLine()
		w.b.WriteString("</" + name + ">")
	}
	w.lastEvent = evOther
}

// WriteEmpty writes a self-closing element on its own indented line.
func (w *StreamWriter) WriteEmpty(name string) {
	w.breakLine()
	w.b.WriteString("<" + name + "/>")
	w.lastEvent = evOther
}

// WriteComment writes a comment on its own indented line.
func (w *StreamWriter) WriteComment(body string) {
	w.breakLine()
	w.b.WriteString("<!--" + body + "-->")
	w.lastEvent = evOther
}

// Bytes returns the rewritten document with a trailing newline.
func (w *StreamWriter) Bytes() []byte {
	out := w.b.String()
	if !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	return []byte(out)
}
