package xmlscan

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAutodiscoverLearnedDefs(t *testing.T) {
	root := t.TempDir()
	learnDir := filepath.Join(root, "_learn")
	require.NoError(t, os.MkdirAll(learnDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(learnDir, "learned_defs.json"), []byte(
		`[{"defType":"ThingDef","fieldPath":"comps.li.label"},
		  {"defType":"ThingDef","fieldPath":"tooltip"}]`), 0o644))

	ctx, err := Autodiscover(root)
	require.NoError(t, err)

	// dotted paths merge into the dictionary, bare names become extra fields
	assert.Contains(t, ctx.Dict["ThingDef"], "comps.li.label")
	assert.Contains(t, ctx.ExtraFields, "tooltip")
	require.Len(t, ctx.LearnedSources, 1)
}

func TestAutodiscoverDictFiles(t *testing.T) {
	root := t.TempDir()
	learnDir := filepath.Join(root, "learn_out")
	require.NoError(t, os.MkdirAll(learnDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(learnDir, "my.dict.json"),
		[]byte(`{"CustomDef": ["label"]}`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(learnDir, "defs_dict_extra.json"),
		[]byte(`{"CustomDef": ["title"]}`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(learnDir, "unrelated.json"),
		[]byte(`{"Ignored": ["x"]}`), 0o644))

	ctx, err := Autodiscover(root)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"label", "title"}, ctx.Dict["CustomDef"])
	assert.NotContains(t, ctx.Dict, "Ignored")
	assert.Len(t, ctx.DictSources, 2)
}

func TestAutodiscoverNestedUnderLanguages(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "Languages", "English", "DefInjected", "_learn")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(nested, "learned_defs.json"),
		[]byte(`[{"defType":"ThingDef","fieldPath":"stages.li.label"}]`), 0o644))

	ctx, err := Autodiscover(root)
	require.NoError(t, err)
	assert.Contains(t, ctx.Dict["ThingDef"], "stages.li.label")
}

func TestAutodiscoverSkipsMalformedFiles(t *testing.T) {
	root := t.TempDir()
	learnDir := filepath.Join(root, "_learn")
	require.NoError(t, os.MkdirAll(learnDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(learnDir, "learned_defs.json"),
		[]byte(`not json`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(learnDir, "bad.dict.json"),
		[]byte(`{"X": "not-an-array"}`), 0o644))

	ctx, err := Autodiscover(root)
	require.NoError(t, err)

	// embedded baseline still present, nothing malformed merged
	assert.NotEmpty(t, ctx.Dict)
	assert.Empty(t, ctx.LearnedSources)
	assert.Empty(t, ctx.DictSources)
	assert.NotContains(t, ctx.Dict, "X")
}

func TestAutodiscoverIncludesEmbeddedBaseline(t *testing.T) {
	ctx, err := Autodiscover(t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, ctx.Dict["ThingDef"], "label")
}
