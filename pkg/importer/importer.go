// Package importer re-groups PO entries into per-file LanguageData XML under
// a target language folder. It supports dry-run planning, byte-identical
// incremental skips, key-level diffs, atomic writes, and backups.
package importer

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/rimloc/rimloc/pkg/constants"
	"github.com/rimloc/rimloc/pkg/domain"
	"github.com/rimloc/rimloc/pkg/fileutil"
	"github.com/rimloc/rimloc/pkg/logger"
	"github.com/rimloc/rimloc/pkg/po"
	"github.com/rimloc/rimloc/pkg/xmlout"
	"github.com/rimloc/rimloc/pkg/xmlscan"
)

var importLog = logger.New("importer:import")

// Flags controls an import run.
type Flags struct {
	// KeepEmpty keeps entries whose msgstr trims to empty.
	KeepEmpty bool
	// DryRun returns a plan and never touches the filesystem.
	DryRun bool
	// Backup copies an existing target to <file>.xml.bak before writing.
	Backup bool
	// SingleFile routes every entry into Keyed/_Imported.xml.
	SingleFile bool
	// Incremental skips a file when the rendered bytes equal the on-disk
	// bytes.
	Incremental bool
	// OnlyDiff retains only entries that are new or changed against the
	// existing file.
	OnlyDiff bool
	// Report classifies incoming keys as added or changed per file.
	Report bool
}

// relPathPattern recovers the path relative to Languages/<lang>/ from a PO
// reference, dropping a trailing :line suffix.
var relPathPattern = regexp.MustCompile(`(?:^|[/\\])Languages[/\\][^/\\]+[/\\](?P<rel>.+?)(?::\d+)?$`)

// RelFromReference recovers the target path relative to Languages/<lang>/
// from a PO reference line, or "" when the reference has no Languages
// segment.
func RelFromReference(reference string) string {
	if m := relPathPattern.FindStringSubmatch(reference); m != nil {
		return filepath.FromSlash(strings.ReplaceAll(m[relPathPattern.SubexpIndex("rel")], "\\", "/"))
	}
	return ""
}

func defaultRel() string {
	return filepath.Join(constants.KeyedDirName, constants.ImportedFileName)
}

// parseLanguageFileKeys reads the key -> value map of an existing
// LanguageData file.
func parseLanguageFileKeys(path string) (map[string]string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	root, err := xmlscan.ParseTree(content)
	if err != nil {
		return nil, &domain.XMLParseError{Path: path, Err: err}
	}
	keys := make(map[string]string, len(root.Children))
	for _, child := range root.Children {
		if child.Name == "" {
			continue
		}
		if _, ok := keys[child.Name]; !ok {
			keys[child.Name] = strings.TrimSpace(child.Text)
		}
	}
	return keys, nil
}

// group buckets entries by their target path relative to Languages/<lang>/,
// preserving entry order inside each bucket.
func group(entries []domain.PoEntry) map[string][]xmlout.Entry {
	grouped := make(map[string][]xmlout.Entry)
	for _, e := range entries {
		rel := RelFromReference(e.Reference)
		if rel == "" {
			rel = defaultRel()
		}
		grouped[rel] = append(grouped[rel], xmlout.Entry{Key: e.Key, Value: e.Value})
	}
	return grouped
}

func sortedRels(grouped map[string][]xmlout.Entry) []string {
	rels := make([]string, 0, len(grouped))
	for rel := range grouped {
		rels = append(rels, rel)
	}
	sort.Strings(rels)
	return rels
}

// ImportToTree imports a PO file into root/Languages/<langFolder>. On dry
// run it returns only a plan; otherwise only a summary with a status per
// target file. A failed file write aborts the run and returns only the
// error; no summary of the files already written is returned.
func ImportToTree(poPath, root, langFolder string, flags Flags) (*domain.ImportPlan, *domain.ImportSummary, error) {
	entries, err := po.ReadFile(poPath)
	if err != nil {
		return nil, nil, err
	}
	if !flags.KeepEmpty {
		kept := entries[:0]
		for _, e := range entries {
			if strings.TrimSpace(e.Value) != "" {
				kept = append(kept, e)
			}
		}
		entries = kept
		if len(entries) == 0 {
			importLog.Print("All entries empty after filtering; nothing to import")
			return nil, &domain.ImportSummary{Mode: "import"}, nil
		}
	}

	langRoot := filepath.Join(root, constants.LanguagesDirName, langFolder)

	var grouped map[string][]xmlout.Entry
	if flags.SingleFile {
		items := make([]xmlout.Entry, 0, len(entries))
		for _, e := range entries {
			items = append(items, xmlout.Entry{Key: e.Key, Value: e.Value})
		}
		grouped = map[string][]xmlout.Entry{defaultRel(): items}
	} else {
		grouped = group(entries)
	}

	if flags.DryRun {
		plan := &domain.ImportPlan{}
		for _, rel := range sortedRels(grouped) {
			n := len(grouped[rel])
			plan.Files = append(plan.Files, domain.PlannedFile{
				Path: filepath.Join(langRoot, rel),
				Keys: n,
			})
			plan.TotalKeys += n
		}
		return plan, nil, nil
	}

	summary := &domain.ImportSummary{Mode: "import"}
	for _, rel := range sortedRels(grouped) {
		items := grouped[rel]
		outPath := filepath.Join(langRoot, rel)
		existed := fileutil.FileExists(outPath)

		if flags.Backup && existed {
			if err := fileutil.CopyFile(outPath, fileutil.BackupPath(outPath)); err != nil {
				importLog.Printf("Backup of %s failed: %v", outPath, err)
			}
		}

		var added, changed []string
		if flags.Report && existed {
			if oldKeys, err := parseLanguageFileKeys(outPath); err == nil {
				for _, item := range items {
					if old, ok := oldKeys[item.Key]; ok {
						if old != item.Value {
							changed = append(changed, item.Key)
						}
					} else {
						added = append(added, item.Key)
					}
				}
			}
		}

		if flags.Incremental && existed {
			newBytes := xmlout.Render(items)
			oldBytes, readErr := os.ReadFile(outPath)
			if readErr == nil && bytes.Equal(oldBytes, newBytes) {
				summary.Skipped++
				summary.Files = append(summary.Files, domain.ImportFileStat{
					Path:   outPath,
					Keys:   len(items),
					Status: "skipped",
				})
				continue
			}
		}

		if flags.OnlyDiff && existed {
			oldKeys, err := parseLanguageFileKeys(outPath)
			if err == nil {
				kept := items[:0]
				for _, item := range items {
					if old, ok := oldKeys[item.Key]; !ok || old != item.Value {
						kept = append(kept, item)
					}
				}
				items = kept
			}
			if len(items) == 0 {
				summary.Skipped++
				summary.Files = append(summary.Files, domain.ImportFileStat{
					Path:   outPath,
					Status: "skipped",
				})
				continue
			}
		}

		if err := xmlout.Write(outPath, items); err != nil {
			return nil, nil, err
		}
		summary.Keys += len(items)
		status := "created"
		if existed {
			status = "updated"
			summary.Updated++
		} else {
			summary.Created++
		}
		summary.Files = append(summary.Files, domain.ImportFileStat{
			Path:    outPath,
			Keys:    len(items),
			Status:  status,
			Added:   added,
			Changed: changed,
		})
	}

	importLog.Printf("Import done: created=%d updated=%d skipped=%d keys=%d",
		summary.Created, summary.Updated, summary.Skipped, summary.Keys)
	return nil, summary, nil
}

// ImportToFile imports every PO entry into one explicit XML file.
func ImportToFile(poPath, outXML string, flags Flags) (*domain.ImportSummary, error) {
	entries, err := po.ReadFile(poPath)
	if err != nil {
		return nil, err
	}
	if !flags.KeepEmpty {
		kept := entries[:0]
		for _, e := range entries {
			if strings.TrimSpace(e.Value) != "" {
				kept = append(kept, e)
			}
		}
		entries = kept
	}

	items := make([]xmlout.Entry, 0, len(entries))
	for _, e := range entries {
		items = append(items, xmlout.Entry{Key: e.Key, Value: e.Value})
	}

	existed := fileutil.FileExists(outXML)
	if flags.DryRun {
		status := "planned"
		summary := &domain.ImportSummary{
			Mode: "import",
			Keys: len(items),
			Files: []domain.ImportFileStat{
				{Path: outXML, Keys: len(items), Status: status},
			},
		}
		if existed {
			summary.Updated = 1
		} else {
			summary.Created = 1
		}
		return summary, nil
	}

	if flags.Backup && existed {
		if err := fileutil.CopyFile(outXML, fileutil.BackupPath(outXML)); err != nil {
			importLog.Printf("Backup of %s failed: %v", outXML, err)
		}
	}
	if err := xmlout.Write(outXML, items); err != nil {
		return nil, err
	}

	summary := &domain.ImportSummary{
		Mode: "import",
		Keys: len(items),
		Files: []domain.ImportFileStat{
			{Path: outXML, Keys: len(items), Status: "updated"},
		},
	}
	if existed {
		summary.Updated = 1
	} else {
		summary.Created = 1
		summary.Files[0].Status = "created"
	}
	return summary, nil
}
