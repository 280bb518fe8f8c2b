// Package annotate inserts source-text comments into translation XML files
// so translators see the original string next to each key.
package annotate

import (
	"encoding/xml"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/rimloc/rimloc/pkg/constants"
	"github.com/rimloc/rimloc/pkg/domain"
	"github.com/rimloc/rimloc/pkg/fileutil"
	"github.com/rimloc/rimloc/pkg/logger"
	"github.com/rimloc/rimloc/pkg/xmlout"
	"github.com/rimloc/rimloc/pkg/xmlscan"
)

var annotateLog = logger.New("annotate:annotate")

// Options configures an annotate run.
type Options struct {
	SourceLangDir string
	TargetLangDir string
	// CommentPrefix is inserted before the source text in each comment.
	CommentPrefix string
	// Strip removes existing comments instead of adding new ones.
	Strip bool
	// DryRun computes a plan without touching files.
	DryRun bool
	// Backup copies each rewritten file to <file>.xml.bak first.
	Backup bool
}

// sanitizeComment keeps comment bodies legal: "--" may not appear inside an
// XML comment.
func sanitizeComment(s string) string {
	return strings.ReplaceAll(s, "--", "—")
}

// sourceMap builds key -> source text for the source language folder,
// first-seen wins.
func sourceMap(root, sourceLangDir string) (map[string]string, error) {
	result, err := xmlscan.Scan(root, xmlscan.Options{SourceLangDir: sourceLangDir})
	if err != nil {
		return nil, err
	}
	src := make(map[string]string)
	for _, u := range result.Units {
		if !xmlscan.IsUnderLanguagesDir(u.Path, sourceLangDir) {
			continue
		}
		if _, ok := src[u.Key]; !ok {
			src[u.Key] = u.Source
		}
	}
	return src, nil
}

// targetKeyedFiles lists the Keyed XML files of the target language.
func targetKeyedFiles(root, targetLangDir string) ([]string, error) {
	files, err := xmlscan.ListLanguageFiles(root, targetLangDir)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, f := range files {
		normalized := strings.ReplaceAll(f, "\\", "/")
		if strings.Contains(normalized, "/"+constants.KeyedDirName+"/") {
			out = append(out, f)
		}
	}
	sort.Strings(out)
	return out, nil
}

// rewrite re-emits one document. In annotate mode a comment with the source
// text is inserted before every direct child of LanguageData that has a
// source unit; existing comments are preserved, except earlier annotations
// (comments starting with the prefix), which are replaced. In strip mode all comments
// are dropped and none are added. Returns the new bytes and the counts of
// added and stripped comments.
func rewrite(content []byte, src map[string]string, prefix string, strip bool) ([]byte, int, int, error) {
	decoder := xml.NewDecoder(strings.NewReader(string(content)))

	w := &xmlout.StreamWriter{}
	w.WriteDecl()
	depth := 0
	added, stripped := 0, 0

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, 0, 0, err
		}
		switch t := token.(type) {
		case xml.StartElement:
			if depth == 1 && !strip {
				if source, ok := src[t.Name.Local]; ok {
					w.WriteComment(" " + prefix + " " + sanitizeComment(source) + " ")
					added++
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
			if strip {
				stripped++
				continue
			}
			// Drop stale annotations so re-running converges instead of
			// stacking duplicates.
			if strings.HasPrefix(strings.TrimSpace(string(t)), prefix+" ") {
				continue
			}
			w.WriteComment(string(t))
		}
	}
	return w.Bytes(), added, stripped, nil
}

// Run annotates (or strips) the target language Keyed files. On dry run it
// returns only a plan; otherwise only a summary.
func Run(root string, opts Options) (*domain.AnnotatePlan, *domain.AnnotateSummary, error) {
	src, err := sourceMap(root, opts.SourceLangDir)
	if err != nil {
		return nil, nil, err
	}
	files, err := targetKeyedFiles(root, opts.TargetLangDir)
	if err != nil {
		return nil, nil, err
	}

	plan := &domain.AnnotatePlan{}
	summary := &domain.AnnotateSummary{}

	for _, path := range files {
		content, err := os.ReadFile(path)
		if err != nil {
			annotateLog.Printf("Skipping unreadable %s: %v", path, err)
			continue
		}
		plan.Processed++
		summary.Processed++

		updated, added, stripped, err := rewrite(content, src, opts.CommentPrefix, opts.Strip)
		if err != nil {
			annotateLog.Printf("Skipping malformed %s: %v", path, err)
			continue
		}

		if opts.DryRun {
			plan.Files = append(plan.Files, domain.AnnotateFilePlan{Path: path, Add: added, Strip: stripped})
			plan.TotalAdd += added
			plan.TotalStrip += stripped
			continue
		}

		if opts.Backup {
			if err := fileutil.CopyFile(path, fileutil.BackupPath(path)); err != nil {
				annotateLog.Printf("Backup of %s failed: %v", path, err)
			}
		}
		if err := fileutil.WriteAtomic(path, updated); err != nil {
			return nil, nil, err
		}
		summary.Annotated += added
	}

	if opts.DryRun {
		return plan, nil, nil
	}
	annotateLog.Printf("Annotated %d comments across %d files", summary.Annotated, summary.Processed)
	return nil, summary, nil
}
