package xmlscan

import (
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rimloc/rimloc/pkg/constants"
	"github.com/rimloc/rimloc/pkg/logger"
)

var discoverLog = logger.New("xmlscan:discover")

// learnDirNames are the directory names probed for learned dictionaries.
var learnDirNames = []string{"_learn", "learn_out", "Learn", "learn"}

// learnedDefsFileName is the row-based output of the learn pipeline.
const learnedDefsFileName = "learned_defs.json"

// maxLearnDepth bounds the search for learn directories under Languages.
const maxLearnDepth = 4

// AutoContext is the merged dictionary context discovered for a mod root:
// the embedded baseline, learned rows, and any discovered dictionary files.
type AutoContext struct {
	Dict           FieldDict
	ExtraFields    []string
	LearnedSources []string
	DictSources    []string
}

type learnedRow struct {
	DefType   string `json:"defType"`
	FieldPath string `json:"fieldPath"`
}

func isLearnDirName(name string) bool {
	for _, candidate := range learnDirNames {
		if strings.EqualFold(name, candidate) {
			return true
		}
	}
	return false
}

// discoverLearnDirs locates candidate learn directories at the root and up
// to maxLearnDepth levels under Languages.
func discoverLearnDirs(root string) []string {
	var dirs []string
	seen := make(map[string]struct{})
	push := func(p string) {
		if info, err := os.Stat(p); err != nil || !info.IsDir() {
			return
		}
		if _, ok := seen[p]; ok {
			return
		}
		seen[p] = struct{}{}
		dirs = append(dirs, p)
	}

	for _, name := range learnDirNames {
		push(filepath.Join(root, name))
	}

	languagesRoot := filepath.Join(root, constants.LanguagesDirName)
	_ = filepath.WalkDir(languagesRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		rel, relErr := filepath.Rel(languagesRoot, path)
		if relErr != nil || rel == "." {
			return nil
		}
		if strings.Count(filepath.ToSlash(rel), "/") >= maxLearnDepth {
			return fs.SkipDir
		}
		if isLearnDirName(d.Name()) {
			push(path)
		}
		return nil
	})

	return dirs
}

func isDictCandidate(name string) bool {
	if !strings.EqualFold(filepath.Ext(name), ".json") {
		return false
	}
	return strings.Contains(name, "defs_dict") || strings.HasSuffix(name, ".dict.json")
}

// Autodiscover builds the dictionary context for a mod root: the embedded
// baseline unioned with learned_defs.json rows and every discovered
// dictionary file in the learn directories. Unreadable or malformed files
// are skipped; discovery never fails on bad input.
func Autodiscover(root string) (*AutoContext, error) {
	ctx := &AutoContext{}
	dicts := []FieldDict{EmbeddedDict()}
	extraFields := make(map[string]struct{})

	for _, dir := range discoverLearnDirs(root) {
		learnedPath := filepath.Join(dir, learnedDefsFileName)
		if data, err := os.ReadFile(learnedPath); err == nil {
			var rows []learnedRow
			if err := json.Unmarshal(data, &rows); err != nil {
				discoverLog.Printf("Skipping malformed %s: %v", learnedPath, err)
			} else {
				ctx.LearnedSources = append(ctx.LearnedSources, learnedPath)
				learned := FieldDict{}
				for _, row := range rows {
					if row.DefType == "" || row.FieldPath == "" {
						continue
					}
					if strings.Contains(row.FieldPath, ".") {
						learned[row.DefType] = append(learned[row.DefType], row.FieldPath)
					} else {
						extraFields[row.FieldPath] = struct{}{}
					}
				}
				dicts = append(dicts, learned)
			}
		}

		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if entry.IsDir() || !isDictCandidate(entry.Name()) {
				continue
			}
			path := filepath.Join(dir, entry.Name())
			dict, err := LoadDictFile(path)
			if err != nil {
				discoverLog.Printf("Skipping dictionary %s: %v", path, err)
				continue
			}
			dicts = append(dicts, dict)
			ctx.DictSources = append(ctx.DictSources, path)
		}
	}

	ctx.Dict = MergeDicts(dicts...)
	for f := range extraFields {
		ctx.ExtraFields = append(ctx.ExtraFields, f)
	}
	sort.Strings(ctx.ExtraFields)
	discoverLog.Printf("Autodiscovered %d learned sources, %d dict files", len(ctx.LearnedSources), len(ctx.DictSources))
	return ctx, nil
}
