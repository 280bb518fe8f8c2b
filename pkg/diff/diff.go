// Package diff compares source and translated language trees and reports
// changed, missing, and orphaned keys.
package diff

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/rimloc/rimloc/pkg/domain"
	"github.com/rimloc/rimloc/pkg/logger"
	"github.com/rimloc/rimloc/pkg/po"
	"github.com/rimloc/rimloc/pkg/xmlscan"
)

var diffLog = logger.New("diff:diff")

// Compute scans the workspace root and diffs the source language folder
// against the target one. When baselinePo is non-empty, keys whose current
// source text differs from the baseline msgid are reported as changed.
func Compute(root, sourceLangDir, targetLangDir, baselinePo string) (*domain.DiffOutput, error) {
	result, err := xmlscan.Scan(root, xmlscan.Options{SourceLangDir: sourceLangDir})
	if err != nil {
		return nil, err
	}

	srcMap := make(map[string]string)
	trgKeys := make(map[string]struct{})
	for _, u := range result.Units {
		if xmlscan.IsUnderLanguagesDir(u.Path, sourceLangDir) {
			if _, ok := srcMap[u.Key]; !ok {
				srcMap[u.Key] = u.Source
			}
		} else if xmlscan.IsUnderLanguagesDir(u.Path, targetLangDir) {
			trgKeys[u.Key] = struct{}{}
		}
	}

	out := &domain.DiffOutput{}
	for k := range srcMap {
		if _, ok := trgKeys[k]; !ok {
			out.OnlyInMod = append(out.OnlyInMod, k)
		}
	}
	for k := range trgKeys {
		if _, ok := srcMap[k]; !ok {
			out.OnlyInTranslation = append(out.OnlyInTranslation, k)
		}
	}
	sort.Strings(out.OnlyInMod)
	sort.Strings(out.OnlyInTranslation)

	if baselinePo != "" {
		baseline, err := po.ReadSourceTexts(baselinePo)
		if err != nil {
			return nil, err
		}
		for k, newSource := range srcMap {
			if old, ok := baseline[k]; ok && old != newSource {
				out.Changed = append(out.Changed, domain.ChangedKey{Key: k, Source: newSource})
			}
		}
		sort.Slice(out.Changed, func(i, j int) bool {
			return out.Changed[i].Key < out.Changed[j].Key
		})
	}

	diffLog.Printf("Diff %s vs %s: %d changed, %d only-translation, %d only-mod",
		sourceLangDir, targetLangDir, len(out.Changed), len(out.OnlyInTranslation), len(out.OnlyInMod))
	return out, nil
}

// WriteReports writes the three plain-text report files into dir:
// ChangedData.txt (key<TAB>newSource), TranslationData.txt, ModData.txt.
func WriteReports(dir string, out *domain.DiffOutput) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	var changed []byte
	for _, c := range out.Changed {
		changed = append(changed, c.Key...)
		changed = append(changed, '\t')
		changed = append(changed, c.Source...)
		changed = append(changed, '\n')
	}
	if err := os.WriteFile(filepath.Join(dir, "ChangedData.txt"), changed, 0o644); err != nil {
		return err
	}

	var translation []byte
	for _, k := range out.OnlyInTranslation {
		translation = append(translation, k...)
		translation = append(translation, '\n')
	}
	if err := os.WriteFile(filepath.Join(dir, "TranslationData.txt"), translation, 0o644); err != nil {
		return err
	}

	var mod []byte
	for _, k := range out.OnlyInMod {
		mod = append(mod, k...)
		mod = append(mod, '\n')
	}
	return os.WriteFile(filepath.Join(dir, "ModData.txt"), mod, 0o644)
}
