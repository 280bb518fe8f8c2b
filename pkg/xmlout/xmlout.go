// Package xmlout renders LanguageData XML documents.
//
// Rendering is byte-deterministic: the same entries always produce the same
// bytes, so the importer can diff rendered output against on-disk files to
// implement incremental skips.
package xmlout

import (
	"strings"

	"github.com/rimloc/rimloc/pkg/constants"
	"github.com/rimloc/rimloc/pkg/fileutil"
)

// Entry is one key/value pair of a LanguageData document.
type Entry struct {
	Key   string
	Value string
}

// escapeText escapes the XML text special characters.
func escapeText(s string) string {
	if !strings.ContainsAny(s, "&<>") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 8)
	for _, r := range s {
		switch r {
		case '&':
			b.WriteString("&amp;")
		case '<':
			b.WriteString("&lt;")
		case '>':
			b.WriteString("&gt;")
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Render produces the bytes of a LanguageData document with a UTF-8 XML
// declaration and two-space indentation.
func Render(entries []Entry) []byte {
	var b strings.Builder
	b.WriteString("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n")
	b.WriteString("<" + constants.LanguageDataRoot + ">\n")
	for _, e := range entries {
		b.WriteString("  <")
		b.WriteString(e.Key)
		b.WriteString(">")
		b.WriteString(escapeText(e.Value))
		b.WriteString("</")
		b.WriteString(e.Key)
		b.WriteString(">\n")
	}
	b.WriteString("</" + constants.LanguageDataRoot + ">\n")
	return []byte(b.String())
}

// Write renders entries and writes them atomically to path, creating parent
// directories as needed.
func Write(path string, entries []Entry) error {
	return fileutil.WriteAtomic(path, Render(entries))
}
