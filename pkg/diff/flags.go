package diff

import (
	"encoding/xml"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/rimloc/rimloc/pkg/domain"
	"github.com/rimloc/rimloc/pkg/fileutil"
	"github.com/rimloc/rimloc/pkg/logger"
	"github.com/rimloc/rimloc/pkg/xmlout"
	"github.com/rimloc/rimloc/pkg/xmlscan"
)

var flagsLog = logger.New("diff:flags")

// Flag comment bodies. Existing rimloc flag comments are stripped before new
// ones are inserted, so repeated runs converge to the same bytes.
const (
	fuzzyComment  = " rimloc:fuzzy source changed "
	unusedComment = " rimloc:unused key absent from source "
)

func isFlagComment(body string) bool {
	trimmed := strings.TrimSpace(body)
	return strings.HasPrefix(trimmed, "rimloc:fuzzy") || strings.HasPrefix(trimmed, "rimloc:unused")
}

// applyFlagsToContent rewrites one LanguageData document, inserting a fuzzy
// comment before keys listed in fuzzy and an unused comment before keys
// listed in unused. All other markup is re-emitted.
func applyFlagsToContent(content []byte, fuzzy, unused map[string]struct{}) ([]byte, error) {
	decoder := xml.NewDecoder(strings.NewReader(string(content)))

	w := &xmlout.StreamWriter{}
	w.WriteDecl()
	depth := 0

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		switch t := token.(type) {
		case xml.StartElement:
			if depth == 1 {
				if _, ok := fuzzy[t.Name.Local]; ok {
					w.WriteComment(fuzzyComment)
				}
				if _, ok := unused[t.Name.Local]; ok {
					w.WriteComment(unusedComment)
				}
			}
			w.WriteStart(t.Name.Local)
			depth++
		case xml.EndElement:
			depth--
			w.WriteEnd(t.Name.Local)
		case xml.CharData:
			if text := strings.TrimSpace(string(t)); text != "" {
				w.WriteText(text)
			}
		case xml.Comment:
			if !isFlagComment(string(t)) {
				w.WriteComment(string(t))
			}
		}
	}
	return w.Bytes(), nil
}

// ApplyFlags rewrites the translation XML files under the target language
// folder, flagging keys whose source changed (from out.Changed) as fuzzy and
// keys missing from the source (out.OnlyInTranslation) as unused. Returns
// the number of files rewritten.
func ApplyFlags(root, targetLangDir string, out *domain.DiffOutput, backup bool) (int, error) {
	fuzzy := make(map[string]struct{}, len(out.Changed))
	for _, c := range out.Changed {
		fuzzy[c.Key] = struct{}{}
	}
	unused := make(map[string]struct{}, len(out.OnlyInTranslation))
	for _, k := range out.OnlyInTranslation {
		unused[k] = struct{}{}
	}

	files, err := xmlscan.ListLanguageFiles(root, targetLangDir)
	if err != nil {
		return 0, err
	}
	sort.Strings(files)

	rewritten := 0
	for _, path := range files {
		content, err := os.ReadFile(path)
		if err != nil {
			flagsLog.Printf("Skipping unreadable %s: %v", path, err)
			continue
		}
		updated, err := applyFlagsToContent(content, fuzzy, unused)
		if err != nil {
			flagsLog.Printf("Skipping malformed %s: %v", path, err)
			continue
		}
		if string(updated) == string(content) {
			continue
		}
		if backup {
			if err := fileutil.CopyFile(path, fileutil.BackupPath(path)); err != nil {
				flagsLog.Printf("Backup of %s failed: %v", path, err)
			}
		}
		if err := fileutil.WriteAtomic(path, updated); err != nil {
			return rewritten, err
		}
		rewritten++
	}
	flagsLog.Printf("Applied diff flags to %d files under %s", rewritten, targetLangDir)
	return rewritten, nil
}
