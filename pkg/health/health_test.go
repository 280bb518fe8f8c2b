package health

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rimloc/rimloc/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeXML(t *testing.T, root, name string, content []byte) {
	t.Helper()
	path := filepath.Join(root, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, content, 0o644))
}

func categories(report *domain.HealthReport) map[string]bool {
	out := make(map[string]bool)
	for _, issue := range report.Issues {
		out[issue.Category] = true
	}
	return out
}

func TestScanFlagsEncodingDoctypeAndControlChars(t *testing.T) {
	root := t.TempDir()
	writeXML(t, root, "encoding.xml",
		[]byte(`<?xml version="1.0" encoding="windows-1251"?><LanguageData><K>x</K></LanguageData>`))
	writeXML(t, root, "doctype.xml",
		[]byte("<!DOCTYPE foo>\n<LanguageData><K>x</K></LanguageData>"))
	writeXML(t, root, "control.xml",
		[]byte("<LanguageData><K>bad\x1bchar</K></LanguageData>"))

	report, err := Scan(root, "")
	require.NoError(t, err)
	assert.Equal(t, 3, report.Checked)

	got := categories(report)
	assert.True(t, got[domain.HealthEncodingDetected], "expected encoding-detected")
	assert.True(t, got[domain.HealthUnexpectedDoctype], "expected unexpected-doctype")
	assert.True(t, got[domain.HealthInvalidChar], "expected invalid-char")
}

func TestScanFlagsTagMismatch(t *testing.T) {
	root := t.TempDir()
	writeXML(t, root, "broken.xml",
		[]byte(`<LanguageData><A>x</B></LanguageData>`))

	report, err := Scan(root, "")
	require.NoError(t, err)
	assert.True(t, categories(report)[domain.HealthTagMismatch])
}

func TestScanFlagsInvalidEntity(t *testing.T) {
	root := t.TempDir()
	writeXML(t, root, "entity.xml",
		[]byte(`<LanguageData><A>x &unknownentity y</A></LanguageData>`))

	report, err := Scan(root, "")
	require.NoError(t, err)
	got := categories(report)
	assert.True(t, got[domain.HealthInvalidEntity] || got[domain.HealthParse])
}

func TestScanCleanFile(t *testing.T) {
	root := t.TempDir()
	writeXML(t, root, "ok.xml",
		[]byte(`<?xml version="1.0" encoding="UTF-8"?><LanguageData><K>x</K></LanguageData>`))

	report, err := Scan(root, "")
	require.NoError(t, err)
	assert.Equal(t, 1, report.Checked)
	assert.Empty(t, report.Issues)
}

func TestScanLangDirFilter(t *testing.T) {
	root := t.TempDir()
	writeXML(t, root, filepath.Join("Languages", "Russian", "Keyed", "bad.xml"),
		[]byte(`<LanguageData><A>x</B></LanguageData>`))
	writeXML(t, root, filepath.Join("Languages", "English", "Keyed", "alsobad.xml"),
		[]byte(`<LanguageData><A>x</B></LanguageData>`))

	report, err := Scan(root, "Russian")
	require.NoError(t, err)
	assert.Equal(t, 1, report.Checked)
	require.NotEmpty(t, report.Issues)
	assert.Contains(t, report.Issues[0].Path, "Russian")
}
