package importer

import (
	"path/filepath"
	"sort"

	"github.com/rimloc/rimloc/pkg/constants"
	"github.com/rimloc/rimloc/pkg/fileutil"
	"github.com/rimloc/rimloc/pkg/logger"
	"github.com/rimloc/rimloc/pkg/po"
	"github.com/rimloc/rimloc/pkg/xmlout"
	"github.com/rimloc/rimloc/pkg/xmlscan"
)

var initLog = logger.New("importer:init")

// InitFilePlan is one skeleton file of an init plan.
type InitFilePlan struct {
	Path string   `json:"path"`
	Keys []string `json:"keys"`
}

// InitPlan describes the translation skeleton for a target language.
type InitPlan struct {
	Files    []InitFilePlan `json:"files"`
	Language string         `json:"language"`
}

// MakeInitPlan groups the source language keys file-by-file and maps each
// file onto the target language folder.
func MakeInitPlan(root, sourceLangDir, targetLangDir string) (*InitPlan, error) {
	result, err := xmlscan.Scan(root, xmlscan.Options{SourceLangDir: sourceLangDir})
	if err != nil {
		return nil, err
	}

	grouped := make(map[string]map[string]struct{})
	for _, u := range result.Units {
		if !xmlscan.IsUnderLanguagesDir(u.Path, sourceLangDir) {
			continue
		}
		rel := po.RelFromLanguages(u.Path)
		if grouped[rel] == nil {
			grouped[rel] = make(map[string]struct{})
		}
		grouped[rel][u.Key] = struct{}{}
	}

	plan := &InitPlan{Language: targetLangDir}
	rels := make([]string, 0, len(grouped))
	for rel := range grouped {
		rels = append(rels, rel)
	}
	sort.Strings(rels)
	for _, rel := range rels {
		keys := make([]string, 0, len(grouped[rel]))
		for k := range grouped[rel] {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		plan.Files = append(plan.Files, InitFilePlan{
			Path: filepath.Join(root, constants.LanguagesDirName, targetLangDir, filepath.FromSlash(rel)),
			Keys: keys,
		})
	}
	return plan, nil
}

// WriteInitPlan writes skeleton files with empty values for each planned
// key. Existing files are left alone unless overwrite is set. Returns the
// number of files written.
func WriteInitPlan(plan *InitPlan, overwrite, dryRun bool) (int, error) {
	written := 0
	for _, f := range plan.Files {
		if fileutil.FileExists(f.Path) && !overwrite {
			continue
		}
		if dryRun {
			continue
		}
		entries := make([]xmlout.Entry, 0, len(f.Keys))
		for _, k := range f.Keys {
			entries = append(entries, xmlout.Entry{Key: k})
		}
		if err := xmlout.Write(f.Path, entries); err != nil {
			return written, err
		}
		written++
	}
	initLog.Printf("Init wrote %d skeleton files for %s", written, plan.Language)
	return written, nil
}
