// Package xmlscan extracts translation units from a RimWorld-style mod tree:
// Keyed and DefInjected LanguageData XML, plus Defs XML interpreted through a
// field dictionary. It also auto-discovers learned dictionaries.
package xmlscan

import (
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rimloc/rimloc/pkg/constants"
	"github.com/rimloc/rimloc/pkg/domain"
	"github.com/rimloc/rimloc/pkg/logger"
	"github.com/sourcegraph/conc/pool"
)

var scanLog = logger.New("xmlscan:scan")

// Warning records a file that was skipped during a scan.
type Warning struct {
	Path string
	Err  error
}

// Options controls a workspace scan.
type Options struct {
	// SourceLangDir is the language folder Defs-derived units are attributed
	// to. Defaults to English.
	SourceLangDir string
	// DefsRoot optionally points Defs scanning at an alternate directory.
	DefsRoot string
	// Dict is the merged field dictionary. When nil, the embedded baseline
	// plus auto-discovered dictionaries are used.
	Dict FieldDict
	// ExtraFields are field names applied to every DefType.
	ExtraFields []string
	// Include and Exclude are doublestar glob patterns matched against the
	// slash-normalized path relative to the scan root.
	Include []string
	Exclude []string
	// NoDefs disables Defs extraction entirely.
	NoDefs bool
	// HeuristicMinLen and HeuristicBlacklist filter heuristic Defs candidates.
	HeuristicMinLen    int
	HeuristicBlacklist []string
}

// Result is the outcome of a scan: the deduplicated, order-stable unit
// stream plus per-file warnings for anything that was skipped.
type Result struct {
	Units    []domain.TransUnit
	Warnings []Warning
}

// listXMLFiles walks root and returns sorted XML file paths, filtered by the
// given include/exclude globs.
func listXMLFiles(root string, include, exclude []string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable subtrees are skipped, not fatal.
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if !strings.EqualFold(filepath.Ext(path), ".xml") {
			return nil
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			rel = path
		}
		rel = filepath.ToSlash(rel)
		if len(include) > 0 && !matchAny(include, rel) {
			return nil
		}
		if matchAny(exclude, rel) {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

func matchAny(patterns []string, rel string) bool {
	for _, p := range patterns {
		if ok, err := doublestar.Match(p, rel); err == nil && ok {
			return true
		}
	}
	return false
}

type fileResult struct {
	units   []domain.TransUnit
	warning *Warning
}

// scanLanguageData parses every XML file under root with the keyed
// extractor. Files are parsed in parallel; output order follows the sorted
// file list, so results are deterministic.
func scanLanguageData(root string, include, exclude []string) ([]domain.TransUnit, []Warning, error) {
	files, err := listXMLFiles(root, include, exclude)
	if err != nil {
		return nil, nil, err
	}

	// Results are written by index so output order follows the sorted file
	// list no matter how the workers interleave.
	results := make([]fileResult, len(files))
	p := pool.New().WithMaxGoroutines(runtime.NumCPU())
	for i, file := range files {
		p.Go(func() {
			content, err := os.ReadFile(file)
			if err != nil {
				results[i] = fileResult{warning: &Warning{Path: file, Err: err}}
				return
			}
			units, err := extractKeyed(content, file)
			if err != nil {
				results[i] = fileResult{warning: &Warning{Path: file, Err: err}}
				return
			}
			results[i] = fileResult{units: units}
		})
	}
	p.Wait()

	var units []domain.TransUnit
	var warnings []Warning
	for _, r := range results {
		if r.warning != nil {
			warnings = append(warnings, *r.warning)
			continue
		}
		units = append(units, r.units...)
	}
	return units, warnings, nil
}

func seenKey(path, key string) string {
	return strings.ReplaceAll(path, "\\", "/") + "|" + key
}

// SortUnits orders units by (path, line, key), the canonical output order.
func SortUnits(units []domain.TransUnit) {
	sort.SliceStable(units, func(i, j int) bool {
		a, b := units[i], units[j]
		if a.Path != b.Path {
			return a.Path < b.Path
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Key < b.Key
	})
}

// Scan walks the resolved scan root and returns the canonical unit stream:
// Keyed and DefInjected units first, then Defs-derived units rewritten onto
// their synthesized DefInjected target paths. Duplicate (path, key) pairs
// are coalesced first-wins, which also means a concrete DefInjected file
// always wins over a Defs-synthesized unit for the same target.
func Scan(root string, opts Options) (*Result, error) {
	sourceLangDir := opts.SourceLangDir
	if sourceLangDir == "" {
		sourceLangDir = constants.DefaultSourceLangDir
	}

	dict := opts.Dict
	extraFields := opts.ExtraFields
	if dict == nil {
		auto, err := Autodiscover(root)
		if err != nil {
			return nil, err
		}
		dict = auto.Dict
		extraFields = append(append([]string(nil), auto.ExtraFields...), extraFields...)
	}

	units, warnings, err := scanLanguageData(root, opts.Include, opts.Exclude)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(units))
	deduped := units[:0]
	for _, u := range units {
		k := seenKey(u.Path, u.Key)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		deduped = append(deduped, u)
	}
	units = deduped

	if !opts.NoDefs {
		defsUnits, defsWarnings, err := ScanDefs(root, DefsOptions{
			DefsRoot:           opts.DefsRoot,
			Dict:               dict,
			ExtraFields:        extraFields,
			HeuristicMinLen:    opts.HeuristicMinLen,
			HeuristicBlacklist: opts.HeuristicBlacklist,
		})
		if err != nil {
			return nil, err
		}
		warnings = append(warnings, defsWarnings...)
		for _, du := range defsUnits {
			if strings.TrimSpace(du.Unit.Source) == "" {
				continue
			}
			u := du.Unit
			u.Path = DefInjectedTargetPath(root, sourceLangDir, du.DefType, u.Path)
			u.Line = 0
			k := seenKey(u.Path, u.Key)
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			units = append(units, u)
		}
	}

	SortUnits(units)
	scanLog.Printf("Scan of %s: %d units, %d warnings", root, len(units), len(warnings))
	return &Result{Units: units, Warnings: warnings}, nil
}

// ListXMLFiles returns every XML file under root in sorted order.
func ListXMLFiles(root string) ([]string, error) {
	return listXMLFiles(root, nil, nil)
}

// ListLanguageFiles returns the sorted XML files under Languages/<langDir>
// anywhere below root.
func ListLanguageFiles(root, langDir string) ([]string, error) {
	files, err := listXMLFiles(root, nil, nil)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, f := range files {
		if IsUnderLanguagesDir(f, langDir) {
			out = append(out, f)
		}
	}
	return out, nil
}

// IsUnderLanguagesDir reports whether path lies under Languages/<langDir>/.
func IsUnderLanguagesDir(path, langDir string) bool {
	components := strings.Split(strings.ReplaceAll(path, "\\", "/"), "/")
	for i, c := range components {
		if strings.EqualFold(c, constants.LanguagesDirName) && i+1 < len(components) {
			return components[i+1] == langDir
		}
	}
	return false
}

// IsSourceForLangDir reports whether path counts as source material for the
// given language folder. For English, Defs XML counts too: many mods omit an
// English LanguageData tree and rely on Defs.
func IsSourceForLangDir(path, langDir string) bool {
	if IsUnderLanguagesDir(path, langDir) {
		return true
	}
	if strings.EqualFold(langDir, constants.DefaultSourceLangDir) {
		return isUnderDefs(path)
	}
	return false
}
