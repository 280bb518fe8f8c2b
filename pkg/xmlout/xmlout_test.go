package xmlout

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rimloc/rimloc/pkg/xmlscan"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderShape(t *testing.T) {
	got := Render([]Entry{
		{Key: "Greeting", Value: "Hello"},
		{Key: "Empty", Value: ""},
	})

	want := `<?xml version="1.0" encoding="UTF-8"?>
<LanguageData>
  <Greeting>Hello</Greeting>
  <Empty></Empty>
</LanguageData>
`
	assert.Equal(t, want, string(got))
}

func TestRenderEscapesText(t *testing.T) {
	got := Render([]Entry{{Key: "K", Value: "a < b & c > d"}})
	assert.Contains(t, string(got), "<K>a &lt; b &amp; c &gt; d</K>")
}

func TestRenderIsDeterministic(t *testing.T) {
	entries := []Entry{{Key: "A", Value: "x"}, {Key: "B", Value: "y"}}
	assert.Equal(t, Render(entries), Render(entries))
}

func TestRenderParseRenderRoundTrip(t *testing.T) {
	entries := []Entry{
		{Key: "Composite.Path", Value: "value"},
		{Key: "Plain", Value: "a & b"},
		{Key: "Empty", Value: ""},
	}
	first := Render(entries)

	root, err := xmlscan.ParseTree(first)
	require.NoError(t, err)

	reparsed := make([]Entry, 0, len(root.Children))
	for _, child := range root.Children {
		reparsed = append(reparsed, Entry{Key: child.Name, Value: child.Text})
	}
	second := Render(reparsed)
	assert.Equal(t, first, second)
}

func TestWriteIsAtomicAndCreatesParents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Languages", "Russian", "Keyed", "A.xml")
	require.NoError(t, Write(path, []Entry{{Key: "K", Value: "v"}}))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "<K>v</K>")

	// no temp file left behind
	_, err = os.Stat(path + ".tmp.write")
	assert.True(t, os.IsNotExist(err))
}
