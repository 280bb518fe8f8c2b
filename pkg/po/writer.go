package po

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/rimloc/rimloc/pkg/constants"
	"github.com/rimloc/rimloc/pkg/domain"
	"github.com/rimloc/rimloc/pkg/logger"
	"github.com/rimloc/rimloc/pkg/xmlscan"
)

var writerLog = logger.New("po:writer")

// Stats reports how many entries were written and how many msgstr values
// were pre-filled from translation memory.
type Stats struct {
	Total    int `json:"total"`
	TMFilled int `json:"tm_filled"`
}

// relFromLanguages extracts the path portion after Languages/<lang>/.
var relFromLanguages = regexp.MustCompile(`(?:^|[/\\])Languages[/\\][^/\\]+[/\\](.+)$`)

// RelFromLanguages returns the substring of path after the first
// Languages/<anyLang>/ segment, or the file's basename when there is none.
func RelFromLanguages(path string) string {
	if m := relFromLanguages.FindStringSubmatch(path); m != nil {
		return m[1]
	}
	return filepath.Base(path)
}

// escape writes the PO escape sequences for \ " \n \r \t. Bytes >= 0x80 are
// left alone; the file is UTF-8.
func escape(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 8)
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// WriteFile writes units to a PO file. Entries are sorted by
// (path, line, key). When tm is non-nil, msgstr is pre-filled from it.
// The optional lang code is recorded in the header.
func WriteFile(path string, units []domain.TransUnit, lang string, tm map[string]string) (*Stats, error) {
	sorted := append([]domain.TransUnit(nil), units...)
	xmlscan.SortUnits(sorted)

	if parent := filepath.Dir(path); parent != "" {
		if err := os.MkdirAll(parent, 0o755); err != nil {
			return nil, err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprintln(w, `msgid ""`)
	fmt.Fprintln(w, `msgstr ""`)
	fmt.Fprintln(w, `"Project-Id-Version: rimloc\n"`)
	fmt.Fprintln(w, `"MIME-Version: 1.0\n"`)
	fmt.Fprintln(w, `"Content-Type: text/plain; charset=UTF-8\n"`)
	fmt.Fprintln(w, `"Content-Transfer-Encoding: 8bit\n"`)
	fmt.Fprintf(w, "\"Language: %s\\n\"\n", lang)
	fmt.Fprintf(w, "\"X-RimLoc-Schema: %d\\n\"\n", constants.SchemaVersion)
	fmt.Fprintln(w)

	stats := &Stats{}
	for _, u := range sorted {
		if u.Line > 0 {
			fmt.Fprintf(w, "#: %s:%d\n", u.Path, u.Line)
		} else {
			fmt.Fprintf(w, "#: %s\n", u.Path)
		}

		ctx := u.Key + "|" + RelFromLanguages(u.Path)
		if u.Line > 0 {
			ctx += fmt.Sprintf(":%d", u.Line)
		}
		fmt.Fprintf(w, "msgctxt \"%s\"\n", escape(ctx))
		fmt.Fprintf(w, "msgid \"%s\"\n", escape(u.Source))

		msgstr := ""
		if tm != nil {
			if v, ok := tm[u.Key]; ok && strings.TrimSpace(v) != "" {
				msgstr = v
				stats.TMFilled++
			}
		}
		fmt.Fprintf(w, "msgstr \"%s\"\n", escape(msgstr))
		fmt.Fprintln(w)
		stats.Total++
	}

	if err := w.Flush(); err != nil {
		return nil, err
	}
	writerLog.Printf("Wrote %d entries to %s (%d TM-filled)", stats.Total, path, stats.TMFilled)
	return stats, nil
}

// BuildTM scans each root with the keyed extractor and merges key -> value
// tables. Later roots override earlier ones.
func BuildTM(roots []string) (map[string]string, error) {
	if len(roots) == 0 {
		return nil, nil
	}
	tm := make(map[string]string)
	for _, root := range roots {
		result, err := xmlscan.Scan(root, xmlscan.Options{NoDefs: true})
		if err != nil {
			return nil, err
		}
		for _, u := range result.Units {
			if v := strings.TrimSpace(u.Source); v != "" {
				tm[u.Key] = v
			}
		}
	}
	return tm, nil
}
