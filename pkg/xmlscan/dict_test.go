package xmlscan

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rimloc/rimloc/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedDictLoads(t *testing.T) {
	dict := EmbeddedDict()
	require.NotEmpty(t, dict)
	assert.Contains(t, dict["ThingDef"], "label")
	assert.Contains(t, dict["ThingDef"], "description")
}

func TestLoadDictFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.dict.json")
	require.NoError(t, os.WriteFile(path,
		[]byte(`{"ThingDef": ["label", "comps.li.label"]}`), 0o644))

	dict, err := LoadDictFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"label", "comps.li.label"}, dict["ThingDef"])
}

func TestLoadDictFileRejectsWrongShape(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"array root", `[1, 2, 3]`},
		{"non-array values", `{"ThingDef": "label"}`},
		{"non-string items", `{"ThingDef": [1]}`},
		{"not json", `{{{`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "bad.dict.json")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			_, err := LoadDictFile(path)
			require.Error(t, err)
			var dictErr *domain.DictError
			assert.True(t, errors.As(err, &dictErr))
		})
	}
}

func TestMergeDictsIsSetUnion(t *testing.T) {
	a := FieldDict{"ThingDef": {"label"}}
	b := FieldDict{"ThingDef": {"label", "description"}, "JobDef": {"reportString"}}

	merged := MergeDicts(a, b)
	assert.Equal(t, []string{"description", "label"}, merged["ThingDef"])
	assert.Equal(t, []string{"reportString"}, merged["JobDef"])
}

func TestMergeDictsAssociativeAndCommutative(t *testing.T) {
	a := FieldDict{"A": {"x"}}
	b := FieldDict{"A": {"y"}, "B": {"z"}}
	c := FieldDict{"B": {"w"}}

	left := MergeDicts(MergeDicts(a, b), c)
	right := MergeDicts(a, MergeDicts(b, c))
	reversed := MergeDicts(c, b, a)

	assert.Equal(t, left, right)
	assert.Equal(t, left, reversed)
}
