package xmlscan

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestScanSynthesizesDefInjectedUnits(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "Defs", "ThingDefs", "Food.xml"), `<Defs>
  <ThingDef>
    <defName>Meal_Simple</defName>
    <label>simple meal</label>
  </ThingDef>
</Defs>`)

	result, err := Scan(root, Options{})
	require.NoError(t, err)

	var found bool
	for _, u := range result.Units {
		if u.Key == "Meal_Simple.label" {
			found = true
			assert.Equal(t, "simple meal", u.Source)
			assert.Equal(t,
				filepath.Join(root, "Languages", "English", "DefInjected", "ThingDef", "Food.xml"),
				u.Path)
			assert.Zero(t, u.Line)
		}
	}
	assert.True(t, found, "expected a synthesized Meal_Simple.label unit")
}

func TestExtractDefsListTraversal(t *testing.T) {
	content := []byte(`<Defs>
  <TraitDef>
    <defName>Nerves</defName>
    <degreeDatas>
      <li><label>steadfast</label></li>
      <li><label>iron-willed</label></li>
    </degreeDatas>
  </TraitDef>
</Defs>`)

	root, err := ParseTree(content)
	require.NoError(t, err)

	units := extractDefs(root, "Traits.xml", DefsOptions{
		Dict: FieldDict{"TraitDef": {"degreeDatas.li.label"}},
	})

	keys := make([]string, 0, len(units))
	for _, u := range units {
		keys = append(keys, u.Unit.Key+"="+u.Unit.Source)
	}
	assert.Contains(t, keys, "Nerves.degreeDatas.li.label=steadfast")
	assert.Contains(t, keys, "Nerves.degreeDatas.li.label=iron-willed")
}

func TestExtractDefsCaseInsensitivePath(t *testing.T) {
	content := []byte(`<Defs>
  <ThingDef>
    <defName>Widget</defName>
    <Label>the widget</Label>
  </ThingDef>
</Defs>`)

	root, err := ParseTree(content)
	require.NoError(t, err)

	units := extractDefs(root, "W.xml", DefsOptions{
		Dict: FieldDict{"ThingDef": {"label"}},
	})

	require.NotEmpty(t, units)
	assert.Equal(t, "Widget.label", units[0].Unit.Key)
	assert.Equal(t, "the widget", units[0].Unit.Source)
}

func TestExtractDefsExtraFieldsApplyToEveryDefType(t *testing.T) {
	content := []byte(`<Defs>
  <SoundDef>
    <defName>Click</defName>
    <niceName>a click</niceName>
  </SoundDef>
</Defs>`)

	root, err := ParseTree(content)
	require.NoError(t, err)

	units := extractDefs(root, "S.xml", DefsOptions{
		ExtraFields: []string{"niceName"},
	})

	require.Len(t, units, 1)
	assert.Equal(t, "Click.niceName", units[0].Unit.Key)
}

func TestExtractDefsHeuristicFilters(t *testing.T) {
	content := []byte(`<Defs>
  <WeirdDef>
    <defName>W</defName>
    <description>long enough text</description>
    <label>ok</label>
  </WeirdDef>
</Defs>`)

	root, err := ParseTree(content)
	require.NoError(t, err)

	units := extractDefs(root, "W.xml", DefsOptions{
		HeuristicMinLen:    5,
		HeuristicBlacklist: []string{"description"},
	})

	// description is blacklisted; label is shorter than min length
	assert.Empty(t, units)
}

func TestExtractDefsSkipsDefsWithoutDefName(t *testing.T) {
	content := []byte(`<Defs>
  <ThingDef>
    <label>anonymous</label>
  </ThingDef>
</Defs>`)

	root, err := ParseTree(content)
	require.NoError(t, err)

	units := extractDefs(root, "A.xml", DefsOptions{
		Dict: FieldDict{"ThingDef": {"label"}},
	})
	assert.Empty(t, units)
}

func TestScanConcreteDefInjectedFileWinsOverSynthesized(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "Defs", "ThingDefs", "Food.xml"), `<Defs>
  <ThingDef>
    <defName>Meal_Simple</defName>
    <label>from defs</label>
  </ThingDef>
</Defs>`)
	writeFile(t,
		filepath.Join(root, "Languages", "English", "DefInjected", "ThingDef", "Food.xml"),
		`<LanguageData><Meal_Simple.label>from file</Meal_Simple.label></LanguageData>`)

	result, err := Scan(root, Options{})
	require.NoError(t, err)

	var values []string
	for _, u := range result.Units {
		if u.Key == "Meal_Simple.label" {
			values = append(values, u.Source)
		}
	}
	require.Len(t, values, 1)
	assert.Equal(t, "from file", values[0])
}
