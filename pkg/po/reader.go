// Package po reads and writes gettext PO files with the RimLoc msgctxt
// disambiguator grammar: "key|relPathFromLanguages[:line]".
package po

import (
	"bufio"
	"errors"
	"os"
	"strings"

	"github.com/rimloc/rimloc/pkg/domain"
	"github.com/rimloc/rimloc/pkg/logger"
)

var readerLog = logger.New("po:reader")

// unquote parses a PO string literal including its surrounding quotes and
// unescapes \\ \" \n \r \t. Unknown escapes keep the escaped character.
func unquote(s string) (string, error) {
	s = strings.TrimSpace(s)
	if len(s) < 2 || !strings.HasPrefix(s, `"`) || !strings.HasSuffix(s, `"`) {
		return "", errors.New("invalid po string: " + s)
	}
	inner := s[1 : len(s)-1]
	var b strings.Builder
	b.Grow(len(inner))
	escaped := false
	for _, r := range inner {
		if escaped {
			switch r {
			case 'n':
				b.WriteByte('\n')
			case 'r':
				b.WriteByte('\r')
			case 't':
				b.WriteByte('\t')
			case '"':
				b.WriteByte('"')
			case '\\':
				b.WriteByte('\\')
			default:
				b.WriteRune(r)
			}
			escaped = false
			continue
		}
		if r == '\\' {
			escaped = true
			continue
		}
		b.WriteRune(r)
	}
	return b.String(), nil
}

type record struct {
	reference string
	ctxt      string
	hasCtxt   bool
	id        string
	str       string
}

// keyFromCtxt splits the msgctxt disambiguator on the first '|'.
func keyFromCtxt(ctxt string) string {
	if i := strings.IndexByte(ctxt, '|'); i >= 0 {
		return ctxt[:i]
	}
	return ctxt
}

// ReadFile parses a PO file into entries. Records without a msgctxt
// (notably the header) and records whose msgid and msgstr are both empty
// are discarded. Only the first "#:" reference of a record is kept.
func ReadFile(path string) ([]domain.PoEntry, error) {
	records, err := readRecords(path)
	if err != nil {
		return nil, err
	}
	entries := make([]domain.PoEntry, 0, len(records))
	for _, r := range records {
		entries = append(entries, domain.PoEntry{
			Key:       keyFromCtxt(r.ctxt),
			Value:     r.str,
			Reference: r.reference,
		})
	}
	readerLog.Printf("Read %d entries from %s", len(entries), path)
	return entries, nil
}

// ReadSourceTexts returns the key -> msgid table of a PO file, first record
// wins. Diff uses it to compare current source text against a baseline.
func ReadSourceTexts(path string) (map[string]string, error) {
	records, err := readRecords(path)
	if err != nil {
		return nil, err
	}
	sources := make(map[string]string, len(records))
	for _, r := range records {
		key := keyFromCtxt(r.ctxt)
		if _, ok := sources[key]; !ok {
			sources[key] = r.id
		}
	}
	return sources, nil
}

func readRecords(path string) ([]record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var records []record
	var cur record
	const (
		inNone = iota
		inID
		inStr
	)
	mode := inNone
	lineNo := 0

	flush := func() {
		// The header (no msgctxt) and records with both msgid and msgstr
		// empty are dropped.
		if cur.hasCtxt && (cur.id != "" || cur.str != "") {
			records = append(records, cur)
		}
		cur = record{}
		mode = inNone
	}

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())

		switch {
		case line == "":
			flush()
		case strings.HasPrefix(line, "#:"):
			if cur.reference == "" {
				cur.reference = strings.TrimSpace(strings.TrimPrefix(line, "#:"))
			}
		case strings.HasPrefix(line, "#"):
			// other comments ignored
		case strings.HasPrefix(line, "msgctxt"):
			value, err := unquote(strings.TrimPrefix(line, "msgctxt"))
			if err != nil {
				return nil, &domain.PoParseError{Path: path, Line: lineNo, Err: err}
			}
			cur.ctxt = value
			cur.hasCtxt = true
			mode = inNone
		case strings.HasPrefix(line, "msgid"):
			value, err := unquote(strings.TrimPrefix(line, "msgid"))
			if err != nil {
				return nil, &domain.PoParseError{Path: path, Line: lineNo, Err: err}
			}
			cur.id = value
			mode = inID
		case strings.HasPrefix(line, "msgstr"):
			value, err := unquote(strings.TrimPrefix(line, "msgstr"))
			if err != nil {
				return nil, &domain.PoParseError{Path: path, Line: lineNo, Err: err}
			}
			cur.str = value
			mode = inStr
		case strings.HasPrefix(line, `"`):
			value, err := unquote(line)
			if err != nil {
				return nil, &domain.PoParseError{Path: path, Line: lineNo, Err: err}
			}
			switch mode {
			case inID:
				cur.id += value
			case inStr:
				cur.str += value
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, &domain.PoParseError{Path: path, Err: err}
	}
	flush()
	return records, nil
}
