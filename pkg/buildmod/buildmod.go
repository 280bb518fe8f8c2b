// Package buildmod assembles a standalone translation mod: an About.xml
// plus per-file LanguageData trees generated from a PO file or from an
// existing Languages tree.
package buildmod

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rimloc/rimloc/pkg/constants"
	"github.com/rimloc/rimloc/pkg/domain"
	"github.com/rimloc/rimloc/pkg/fileutil"
	"github.com/rimloc/rimloc/pkg/importer"
	"github.com/rimloc/rimloc/pkg/logger"
	"github.com/rimloc/rimloc/pkg/po"
	"github.com/rimloc/rimloc/pkg/xmlout"
	"github.com/rimloc/rimloc/pkg/xmlscan"
)

var buildLog = logger.New("buildmod:build")

// Options describes the mod to assemble.
type Options struct {
	ModName   string
	PackageID string
	RwVersion string
	// LangDir is the language folder name inside the mod (e.g. Russian).
	LangDir string
	// Dedupe drops repeated keys inside one file, last occurrence wins.
	Dedupe bool
}

// Plan lists what a build would write.
type Plan struct {
	ModName   string               `json:"mod_name"`
	PackageID string               `json:"package_id"`
	RwVersion string               `json:"rw_version"`
	OutMod    string               `json:"out_mod"`
	LangDir   string               `json:"lang_dir"`
	Files     []domain.PlannedFile `json:"files"`
	TotalKeys int                  `json:"total_keys"`
}

func aboutXML(opts Options) []byte {
	return []byte(fmt.Sprintf(`<ModMetaData>
  <packageId>%s</packageId>
  <name>%s</name>
  <description>Auto-generated translation mod</description>
  <supportedVersions>
    <li>%s</li>
  </supportedVersions>
</ModMetaData>
`, opts.PackageID, opts.ModName, opts.RwVersion))
}

func dedupeLastWins(items []xmlout.Entry) []xmlout.Entry {
	seen := make(map[string]struct{}, len(items))
	out := make([]xmlout.Entry, 0, len(items))
	for i := len(items) - 1; i >= 0; i-- {
		if _, ok := seen[items[i].Key]; ok {
			continue
		}
		seen[items[i].Key] = struct{}{}
		out = append(out, items[i])
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// groupFromPo buckets PO entries by their relative target path.
func groupFromPo(poPath string) (map[string][]xmlout.Entry, error) {
	entries, err := po.ReadFile(poPath)
	if err != nil {
		return nil, err
	}
	grouped := make(map[string][]xmlout.Entry)
	for _, e := range entries {
		rel := importer.RelFromReference(e.Reference)
		if rel == "" {
			rel = filepath.Join(constants.KeyedDirName, constants.ImportedFileName)
		}
		grouped[rel] = append(grouped[rel], xmlout.Entry{Key: e.Key, Value: e.Value})
	}
	return grouped, nil
}

func planFromGroups(grouped map[string][]xmlout.Entry, outMod string, opts Options) *Plan {
	plan := &Plan{
		ModName:   opts.ModName,
		PackageID: opts.PackageID,
		RwVersion: opts.RwVersion,
		OutMod:    outMod,
		LangDir:   opts.LangDir,
	}
	rels := make([]string, 0, len(grouped))
	for rel := range grouped {
		rels = append(rels, rel)
	}
	sort.Strings(rels)
	for _, rel := range rels {
		items := grouped[rel]
		if opts.Dedupe {
			items = dedupeLastWins(items)
		}
		plan.Files = append(plan.Files, domain.PlannedFile{
			Path: filepath.Join(outMod, constants.LanguagesDirName, opts.LangDir, rel),
			Keys: len(items),
		})
		plan.TotalKeys += len(items)
	}
	return plan
}

// PlanFromPo computes the dry-run plan for building a mod from a PO file.
// Nothing is written.
func PlanFromPo(poPath, outMod string, opts Options) (*Plan, error) {
	grouped, err := groupFromPo(poPath)
	if err != nil {
		return nil, err
	}
	return planFromGroups(grouped, outMod, opts), nil
}

// BuildFromPo assembles the translation mod from a PO file.
func BuildFromPo(poPath, outMod string, opts Options) error {
	grouped, err := groupFromPo(poPath)
	if err != nil {
		return err
	}

	aboutDir := filepath.Join(outMod, "About")
	if err := os.MkdirAll(aboutDir, 0o755); err != nil {
		return err
	}
	if err := fileutil.WriteAtomic(filepath.Join(aboutDir, "About.xml"), aboutXML(opts)); err != nil {
		return err
	}

	rels := make([]string, 0, len(grouped))
	for rel := range grouped {
		rels = append(rels, rel)
	}
	sort.Strings(rels)
	for _, rel := range rels {
		items := grouped[rel]
		if opts.Dedupe {
			items = dedupeLastWins(items)
		}
		outPath := filepath.Join(outMod, constants.LanguagesDirName, opts.LangDir, rel)
		if err := xmlout.Write(outPath, items); err != nil {
			return err
		}
	}
	buildLog.Printf("Built mod %s with %d files", opts.ModName, len(rels))
	return nil
}

// BuildFromRoot re-groups an existing Languages/<LangDir> tree under
// fromRoot into a new mod. When versions is non-empty, only files under a
// matching version subtree are taken. Returns the files with key counts and
// the total; write=false computes the plan only.
func BuildFromRoot(fromRoot, outMod string, opts Options, versions []string, write bool) ([]domain.PlannedFile, int, error) {
	result, err := xmlscan.Scan(fromRoot, xmlscan.Options{NoDefs: true})
	if err != nil {
		return nil, 0, err
	}

	matchesVersion := func(path string) bool {
		if len(versions) == 0 {
			return true
		}
		normalized := strings.ReplaceAll(path, "\\", "/")
		for _, v := range versions {
			if strings.Contains(normalized, "/"+v+"/") || strings.Contains(normalized, "/v"+v+"/") {
				return true
			}
		}
		return false
	}

	grouped := make(map[string][]xmlout.Entry)
	total := 0
	for _, u := range result.Units {
		if !xmlscan.IsUnderLanguagesDir(u.Path, opts.LangDir) || !matchesVersion(u.Path) {
			continue
		}
		if u.Source == "" {
			continue
		}
		rel := po.RelFromLanguages(u.Path)
		grouped[rel] = append(grouped[rel], xmlout.Entry{Key: u.Key, Value: u.Source})
		total++
	}

	rels := make([]string, 0, len(grouped))
	for rel := range grouped {
		rels = append(rels, rel)
	}
	sort.Strings(rels)

	var files []domain.PlannedFile
	for _, rel := range rels {
		items := grouped[rel]
		if opts.Dedupe {
			items = dedupeLastWins(items)
		}
		full := filepath.Join(outMod, constants.LanguagesDirName, opts.LangDir, filepath.FromSlash(rel))
		if write {
			if err := xmlout.Write(full, items); err != nil {
				return files, total, err
			}
		}
		files = append(files, domain.PlannedFile{Path: full, Keys: len(items)})
	}

	if write {
		if err := os.MkdirAll(filepath.Join(outMod, "About"), 0o755); err != nil {
			return files, total, err
		}
	}
	return files, total, nil
}
