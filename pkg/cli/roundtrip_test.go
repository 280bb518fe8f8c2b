package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rimloc/rimloc/pkg/importer"
	"github.com/rimloc/rimloc/pkg/po"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestKeyedRoundTrip exports a single Keyed file to PO and imports it into a
// fresh tree for Russian, which must produce an empty-valued skeleton of the
// same keys.
func TestKeyedRoundTrip(t *testing.T) {
	src := t.TempDir()
	keyed := filepath.Join(src, "Languages", "English", "Keyed")
	require.NoError(t, os.MkdirAll(keyed, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(keyed, "G.xml"),
		[]byte(`<LanguageData><Greeting>Hello</Greeting></LanguageData>`), 0o644))

	poPath := filepath.Join(t.TempDir(), "out.po")
	stats, err := po.Export(src, poPath, po.ExportOptions{Lang: "ru"})
	require.NoError(t, err)
	require.Equal(t, 1, stats.Total)

	fresh := t.TempDir()
	_, summary, err := importer.ImportToTree(poPath, fresh, "Russian", importer.Flags{KeepEmpty: true})
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Created)
	assert.Equal(t, 1, summary.Keys)

	content, err := os.ReadFile(filepath.Join(fresh, "Languages", "Russian", "Keyed", "G.xml"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "<Greeting></Greeting>")
}

// TestRunImportPoDryRun drives the command-level entry point.
func TestRunImportPoDryRun(t *testing.T) {
	src := t.TempDir()
	keyed := filepath.Join(src, "Languages", "English", "Keyed")
	require.NoError(t, os.MkdirAll(keyed, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(keyed, "A.xml"),
		[]byte(`<LanguageData><K>v</K></LanguageData>`), 0o644))

	poPath := filepath.Join(t.TempDir(), "out.po")
	_, err := po.Export(src, poPath, po.ExportOptions{})
	require.NoError(t, err)

	target := t.TempDir()
	err = RunImportPo(poPath, target, "Russian", importer.Flags{KeepEmpty: true, DryRun: true}, false)
	require.NoError(t, err)

	// dry run leaves the target untouched
	_, statErr := os.Stat(filepath.Join(target, "Languages"))
	assert.True(t, os.IsNotExist(statErr))
}
