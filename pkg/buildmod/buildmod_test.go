package buildmod

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePo(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "build.po")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const samplePo = `#: /src/Languages/English/Keyed/A.xml:1
msgctxt "Greeting|Keyed/A.xml:1"
msgid "Hello"
msgstr "Привет"

#: /src/Languages/English/DefInjected/ThingDef/F.xml
msgctxt "Meal.label|DefInjected/ThingDef/F.xml"
msgid "meal"
msgstr "еда"

`

func options() Options {
	return Options{
		ModName:   "My Translation",
		PackageID: "my.translation",
		RwVersion: "1.5",
		LangDir:   "Russian",
	}
}

func TestPlanFromPo(t *testing.T) {
	poPath := writePo(t, samplePo)
	out := filepath.Join(t.TempDir(), "OutMod")

	plan, err := PlanFromPo(poPath, out, options())
	require.NoError(t, err)

	assert.Equal(t, 2, plan.TotalKeys)
	require.Len(t, plan.Files, 2)
	assert.Equal(t,
		filepath.Join(out, "Languages", "Russian", "DefInjected", "ThingDef", "F.xml"),
		plan.Files[0].Path)
	assert.Equal(t,
		filepath.Join(out, "Languages", "Russian", "Keyed", "A.xml"),
		plan.Files[1].Path)

	// planning writes nothing
	_, err = os.Stat(out)
	assert.True(t, os.IsNotExist(err))
}

func TestBuildFromPo(t *testing.T) {
	poPath := writePo(t, samplePo)
	out := filepath.Join(t.TempDir(), "OutMod")

	require.NoError(t, BuildFromPo(poPath, out, options()))

	about, err := os.ReadFile(filepath.Join(out, "About", "About.xml"))
	require.NoError(t, err)
	assert.Contains(t, string(about), "<packageId>my.translation</packageId>")
	assert.Contains(t, string(about), "<name>My Translation</name>")
	assert.Contains(t, string(about), "<li>1.5</li>")

	keyed, err := os.ReadFile(filepath.Join(out, "Languages", "Russian", "Keyed", "A.xml"))
	require.NoError(t, err)
	assert.Contains(t, string(keyed), "<Greeting>Привет</Greeting>")

	injected, err := os.ReadFile(filepath.Join(out, "Languages", "Russian", "DefInjected", "ThingDef", "F.xml"))
	require.NoError(t, err)
	assert.Contains(t, string(injected), "<Meal.label>еда</Meal.label>")
}

func TestDedupeLastWins(t *testing.T) {
	poPath := writePo(t, `#: /src/Languages/English/Keyed/A.xml:1
msgctxt "K|Keyed/A.xml:1"
msgid "a"
msgstr "first"

#: /src/Languages/English/Keyed/A.xml:2
msgctxt "K|Keyed/A.xml:2"
msgid "a"
msgstr "second"

`)
	out := filepath.Join(t.TempDir(), "OutMod")
	opts := options()
	opts.Dedupe = true

	plan, err := PlanFromPo(poPath, out, opts)
	require.NoError(t, err)
	assert.Equal(t, 1, plan.TotalKeys)

	require.NoError(t, BuildFromPo(poPath, out, opts))
	content, err := os.ReadFile(filepath.Join(out, "Languages", "Russian", "Keyed", "A.xml"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "<K>second</K>")
	assert.NotContains(t, string(content), "first")
}

func TestBuildFromRoot(t *testing.T) {
	from := t.TempDir()
	keyed := filepath.Join(from, "Languages", "Russian", "Keyed")
	require.NoError(t, os.MkdirAll(keyed, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(keyed, "A.xml"),
		[]byte(`<LanguageData><K>значение</K></LanguageData>`), 0o644))

	out := filepath.Join(t.TempDir(), "OutMod")
	files, total, err := BuildFromRoot(from, out, options(), nil, true)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, files, 1)

	content, err := os.ReadFile(files[0].Path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "<K>значение</K>")
}
