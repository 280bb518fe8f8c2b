// Package learn scans Defs for translation candidates, scores them with a
// pluggable Scorer, and writes the learned dictionary consumed by the
// scanner's auto-discovery.
package learn

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rimloc/rimloc/pkg/constants"
	"github.com/rimloc/rimloc/pkg/fileutil"
	"github.com/rimloc/rimloc/pkg/logger"
	"github.com/rimloc/rimloc/pkg/xmlout"
	"github.com/rimloc/rimloc/pkg/xmlscan"
)

var learnLog = logger.New("learn:learn")

// Candidate is one potential translatable field discovered under Defs.
type Candidate struct {
	DefType    string  `json:"defType"`
	DefName    string  `json:"defName"`
	FieldPath  string  `json:"fieldPath"`
	Value      string  `json:"value"`
	SourceFile string  `json:"sourceFile"`
	Confidence float64 `json:"confidence"`
}

// Scorer rates a candidate between 0 and 1. Implementations must be safe
// for repeated calls; the built-in heuristic is pure.
type Scorer interface {
	Score(c *Candidate) (float64, error)
}

// LengthScorer rates candidates by value length: longer prose-like values
// score higher. It is the built-in, offline scorer.
type LengthScorer struct {
	// FullScoreLen is the value length that earns score 1.0.
	FullScoreLen int
}

// Score implements Scorer.
func (s *LengthScorer) Score(c *Candidate) (float64, error) {
	full := s.FullScoreLen
	if full <= 0 {
		full = 40
	}
	n := len(strings.TrimSpace(c.Value))
	if n == 0 {
		return 0, nil
	}
	if n >= full {
		return 1, nil
	}
	return float64(n) / float64(full), nil
}

// Options configures a learn run.
type Options struct {
	ModRoot   string
	DefsRoot  string
	DictFiles []string
	// LangDir is the target language whose existing DefInjected keys are
	// subtracted from the result.
	LangDir   string
	Threshold float64
	MinLen    int
	Blacklist []string
	OutDir    string
	// LearnedOut overrides the learned_defs.json output path.
	LearnedOut string
	// Scorer rates candidates; nil uses LengthScorer.
	Scorer Scorer
}

// Result summarizes a learn run.
type Result struct {
	Candidates    []Candidate
	Accepted      int
	MissingPath   string
	SuggestedPath string
	LearnedPath   string
}

// ScanCandidates walks Defs and returns every dictionary and heuristic
// candidate, unscored.
func ScanCandidates(modRoot, defsRoot string, dict xmlscan.FieldDict, minLen int, blacklist []string) ([]Candidate, error) {
	units, _, err := xmlscan.ScanDefs(modRoot, xmlscan.DefsOptions{
		DefsRoot:           defsRoot,
		Dict:               dict,
		HeuristicMinLen:    minLen,
		HeuristicBlacklist: blacklist,
	})
	if err != nil {
		return nil, err
	}

	blacklisted := func(path string) bool {
		for _, b := range blacklist {
			if strings.EqualFold(path, b) {
				return true
			}
		}
		return false
	}

	var out []Candidate
	for _, du := range units {
		defName, fieldPath, ok := strings.Cut(du.Unit.Key, ".")
		if !ok {
			continue
		}
		if len(du.Unit.Source) < minLen || blacklisted(fieldPath) {
			continue
		}
		out = append(out, Candidate{
			DefType:    du.DefType,
			DefName:    defName,
			FieldPath:  fieldPath,
			Value:      du.Unit.Source,
			SourceFile: du.Unit.Path,
		})
	}
	return out, nil
}

// existingDefInjectedKeys collects the DefName.field keys already present
// under Languages/<langDir>/DefInjected.
func existingDefInjectedKeys(root, langDir string) (map[string]struct{}, error) {
	files, err := xmlscan.ListLanguageFiles(root, langDir)
	if err != nil {
		return nil, err
	}
	keys := make(map[string]struct{})
	for _, path := range files {
		normalized := strings.ReplaceAll(path, "\\", "/")
		if !strings.Contains(normalized, "/"+constants.DefInjectedDirName+"/") {
			continue
		}
		content, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		root, err := xmlscan.ParseTree(content)
		if err != nil {
			continue
		}
		for _, child := range root.Children {
			if child.Name != "" {
				keys[child.Name] = struct{}{}
			}
		}
	}
	return keys, nil
}

func writeJSON(path string, value any) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return err
	}
	return fileutil.WriteAtomic(path, append(data, '\n'))
}

// Run executes the learn pipeline: merge dictionaries, scan candidates,
// score and filter them, subtract already-translated keys, and write
// missing_keys.json, suggested.xml, and learned_defs.json.
func Run(opts Options) (*Result, error) {
	dicts := []xmlscan.FieldDict{xmlscan.EmbeddedDict()}
	for _, f := range opts.DictFiles {
		path := f
		if !filepath.IsAbs(path) {
			path = filepath.Join(opts.ModRoot, path)
		}
		dict, err := xmlscan.LoadDictFile(path)
		if err != nil {
			learnLog.Printf("Skipping dictionary %s: %v", path, err)
			continue
		}
		dicts = append(dicts, dict)
	}
	dict := xmlscan.MergeDicts(dicts...)

	candidates, err := ScanCandidates(opts.ModRoot, opts.DefsRoot, dict, opts.MinLen, opts.Blacklist)
	if err != nil {
		return nil, err
	}

	scorer := opts.Scorer
	if scorer == nil {
		scorer = &LengthScorer{}
	}
	for i := range candidates {
		score, err := scorer.Score(&candidates[i])
		if err != nil {
			return nil, fmt.Errorf("score %s.%s: %w", candidates[i].DefName, candidates[i].FieldPath, err)
		}
		candidates[i].Confidence = score
	}

	existing, err := existingDefInjectedKeys(opts.ModRoot, opts.LangDir)
	if err != nil {
		return nil, err
	}

	var missing []Candidate
	for _, c := range candidates {
		if c.Confidence < opts.Threshold {
			continue
		}
		if _, ok := existing[c.DefName+"."+c.FieldPath]; ok {
			continue
		}
		missing = append(missing, c)
	}
	sort.Slice(missing, func(i, j int) bool {
		if missing[i].DefName != missing[j].DefName {
			return missing[i].DefName < missing[j].DefName
		}
		return missing[i].FieldPath < missing[j].FieldPath
	})

	if err := os.MkdirAll(opts.OutDir, 0o755); err != nil {
		return nil, err
	}
	missingPath := filepath.Join(opts.OutDir, "missing_keys.json")
	if err := writeJSON(missingPath, missing); err != nil {
		return nil, err
	}

	suggestedPath := filepath.Join(opts.OutDir, "suggested.xml")
	entries := make([]xmlout.Entry, 0, len(missing))
	for _, c := range missing {
		entries = append(entries, xmlout.Entry{Key: c.DefName + "." + c.FieldPath, Value: c.Value})
	}
	if err := xmlout.Write(suggestedPath, entries); err != nil {
		return nil, err
	}

	learnedPath := opts.LearnedOut
	if learnedPath == "" {
		learnedPath = filepath.Join(opts.OutDir, "learned_defs.json")
	}
	type learnedRow struct {
		DefType    string  `json:"defType"`
		DefName    string  `json:"defName"`
		FieldPath  string  `json:"fieldPath"`
		Confidence float64 `json:"confidence"`
		SourceFile string  `json:"sourceFile"`
	}
	rows := make([]learnedRow, 0, len(missing))
	for _, c := range missing {
		rows = append(rows, learnedRow{
			DefType:    c.DefType,
			DefName:    c.DefName,
			FieldPath:  c.FieldPath,
			Confidence: c.Confidence,
			SourceFile: c.SourceFile,
		})
	}
	if err := writeJSON(learnedPath, rows); err != nil {
		return nil, err
	}

	learnLog.Printf("Learn run: %d candidates, %d missing", len(candidates), len(missing))
	return &Result{
		Candidates:    candidates,
		Accepted:      len(missing),
		MissingPath:   missingPath,
		SuggestedPath: suggestedPath,
		LearnedPath:   learnedPath,
	}, nil
}
