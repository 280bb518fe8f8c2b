package xmlscan

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractKeyedBasics(t *testing.T) {
	content := []byte(`<?xml version="1.0" encoding="UTF-8"?>
<LanguageData>
  <Greeting>Hello</Greeting>
  <Farewell>Bye</Farewell>
</LanguageData>`)

	units, err := extractKeyed(content, "G.xml")
	require.NoError(t, err)
	require.Len(t, units, 2)

	assert.Equal(t, "Greeting", units[0].Key)
	assert.Equal(t, "Hello", units[0].Source)
	assert.Equal(t, 3, units[0].Line)
	assert.Equal(t, "Farewell", units[1].Key)
	assert.Equal(t, 4, units[1].Line)
}

func TestExtractKeyedNestedKeys(t *testing.T) {
	content := []byte(`<LanguageData><Outer><Inner>deep</Inner></Outer></LanguageData>`)

	units, err := extractKeyed(content, "N.xml")
	require.NoError(t, err)
	require.Len(t, units, 1)
	assert.Equal(t, "Outer.Inner", units[0].Key)
	assert.Equal(t, "deep", units[0].Source)
}

func TestExtractKeyedEmptyElements(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"self closing", `<LanguageData><Key/></LanguageData>`},
		{"open close", `<LanguageData><Key></Key></LanguageData>`},
		{"whitespace only", `<LanguageData><Key>   </Key></LanguageData>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			units, err := extractKeyed([]byte(tt.content), "E.xml")
			require.NoError(t, err)
			require.Len(t, units, 1)
			assert.Equal(t, "Key", units[0].Key)
			assert.Empty(t, units[0].Source)
		})
	}
}

func TestExtractKeyedTrimsAndUnescapes(t *testing.T) {
	content := []byte(`<LanguageData><K>  a &amp; b  </K></LanguageData>`)

	units, err := extractKeyed(content, "T.xml")
	require.NoError(t, err)
	require.Len(t, units, 1)
	assert.Equal(t, "a & b", units[0].Source)
}

func TestScanSkipsMalformedFiles(t *testing.T) {
	root := t.TempDir()
	keyed := filepath.Join(root, "Languages", "English", "Keyed")
	require.NoError(t, os.MkdirAll(keyed, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(keyed, "Good.xml"),
		[]byte(`<LanguageData><A>ok</A></LanguageData>`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(keyed, "Bad.xml"),
		[]byte(`<LanguageData><A>broken</B></LanguageData>`), 0o644))

	result, err := Scan(root, Options{NoDefs: true})
	require.NoError(t, err)

	require.Len(t, result.Units, 1)
	assert.Equal(t, "A", result.Units[0].Key)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0].Path, "Bad.xml")
}

func TestScanDeduplicatesPathKeyFirstWins(t *testing.T) {
	root := t.TempDir()
	keyed := filepath.Join(root, "Languages", "English", "Keyed")
	require.NoError(t, os.MkdirAll(keyed, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(keyed, "Dup.xml"),
		[]byte(`<LanguageData><K>first</K><K>second</K></LanguageData>`), 0o644))

	result, err := Scan(root, Options{NoDefs: true})
	require.NoError(t, err)
	require.Len(t, result.Units, 1)
	assert.Equal(t, "first", result.Units[0].Source)
}

func TestScanRespectsExcludeGlobs(t *testing.T) {
	root := t.TempDir()
	keyed := filepath.Join(root, "Languages", "English", "Keyed")
	require.NoError(t, os.MkdirAll(keyed, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(keyed, "Keep.xml"),
		[]byte(`<LanguageData><A>x</A></LanguageData>`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(keyed, "Drop.xml"),
		[]byte(`<LanguageData><B>y</B></LanguageData>`), 0o644))

	result, err := Scan(root, Options{
		NoDefs:  true,
		Exclude: []string{"**/Drop.xml"},
	})
	require.NoError(t, err)
	require.Len(t, result.Units, 1)
	assert.Equal(t, "A", result.Units[0].Key)
}

func TestIsUnderLanguagesDir(t *testing.T) {
	assert.True(t, IsUnderLanguagesDir("/mod/Languages/English/Keyed/A.xml", "English"))
	assert.False(t, IsUnderLanguagesDir("/mod/Languages/Russian/Keyed/A.xml", "English"))
	assert.False(t, IsUnderLanguagesDir("/mod/Defs/ThingDefs/A.xml", "English"))
	// windows separators
	assert.True(t, IsUnderLanguagesDir(`C:\mod\Languages\English\Keyed\A.xml`, "English"))
}

func TestIsSourceForLangDir(t *testing.T) {
	assert.True(t, IsSourceForLangDir("/mod/Defs/ThingDefs/A.xml", "English"))
	assert.False(t, IsSourceForLangDir("/mod/Defs/ThingDefs/A.xml", "Russian"))
	assert.True(t, IsSourceForLangDir("/mod/Languages/Russian/Keyed/A.xml", "Russian"))
}
