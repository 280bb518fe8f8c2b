package po

import (
	"github.com/rimloc/rimloc/pkg/constants"
	"github.com/rimloc/rimloc/pkg/domain"
	"github.com/rimloc/rimloc/pkg/langdir"
	"github.com/rimloc/rimloc/pkg/xmlscan"
)

// ExportOptions configures Export.
type ExportOptions struct {
	// Lang is the target language code recorded in the PO header.
	Lang string
	// SourceLang is an ISO code resolved through langdir when SourceLangDir
	// is not given explicitly.
	SourceLang string
	// SourceLangDir is the language folder to export from. Defaults to
	// English.
	SourceLangDir string
	// TMRoots are translation-memory trees scanned to pre-fill msgstr.
	// Later roots win.
	TMRoots []string
}

// Export scans the workspace root, keeps units under the source language
// folder, and writes them as a PO file with the msgctxt disambiguator.
func Export(scanRoot, outPath string, opts ExportOptions) (*Stats, error) {
	srcDir := opts.SourceLangDir
	if srcDir == "" && opts.SourceLang != "" {
		srcDir = langdir.ForLang(opts.SourceLang)
	}
	if srcDir == "" {
		srcDir = constants.DefaultSourceLangDir
	}

	result, err := xmlscan.Scan(scanRoot, xmlscan.Options{SourceLangDir: srcDir, NoDefs: true})
	if err != nil {
		return nil, err
	}

	var filtered []domain.TransUnit
	for _, u := range result.Units {
		if xmlscan.IsUnderLanguagesDir(u.Path, srcDir) {
			filtered = append(filtered, u)
		}
	}

	tm, err := BuildTM(opts.TMRoots)
	if err != nil {
		return nil, err
	}

	return WriteFile(outPath, filtered, opts.Lang, tm)
}
