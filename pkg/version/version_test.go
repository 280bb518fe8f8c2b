package version

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rimloc/rimloc/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseComponents(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []int
	}{
		{"two parts", "1.4", []int{1, 4}},
		{"v prefix", "v1.4.3", []int{1, 4, 3}},
		{"double digit", "10.0", []int{10, 0}},
		{"empty", "", nil},
		{"bare v", "v", nil},
		{"empty component", "1..2", nil},
		{"letters", "a.b", nil},
		{"mixed", "1.a", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseComponents(tt.input))
		})
	}
}

func TestResolvePicksDeeperTuple(t *testing.T) {
	base := t.TempDir()
	for _, name := range []string{"1.3", "1.10", "1.9.1", "foo"} {
		require.NoError(t, os.MkdirAll(filepath.Join(base, name), 0o755))
	}

	root, selected, err := Resolve(base, "")
	require.NoError(t, err)
	// 1.9.1 has more components than 1.10, so it is considered newer.
	assert.Equal(t, "1.9.1", selected)
	assert.Equal(t, filepath.Join(base, "1.9.1"), root)
}

func TestResolveRequestedProbesBothForms(t *testing.T) {
	base := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(base, "v1.4"), 0o755))

	root, selected, err := Resolve(base, "1.4")
	require.NoError(t, err)
	assert.Equal(t, "v1.4", selected)
	assert.Equal(t, filepath.Join(base, "v1.4"), root)

	root, selected, err = Resolve(base, "v1.4")
	require.NoError(t, err)
	assert.Equal(t, "v1.4", selected)
	assert.Equal(t, filepath.Join(base, "v1.4"), root)
}

func TestResolveRequestedMissing(t *testing.T) {
	base := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(base, "1.4"), 0o755))

	_, _, err := Resolve(base, "2.0")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrVersionNotFound))
}

func TestResolveBaseIsVersionDir(t *testing.T) {
	base := filepath.Join(t.TempDir(), "1.5")
	require.NoError(t, os.MkdirAll(base, 0o755))

	root, selected, err := Resolve(base, "")
	require.NoError(t, err)
	assert.Equal(t, base, root)
	assert.Equal(t, "1.5", selected)
}

func TestResolveNoVersionDirs(t *testing.T) {
	base := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(base, "Defs"), 0o755))

	root, selected, err := Resolve(base, "")
	require.NoError(t, err)
	assert.Equal(t, base, root)
	assert.Empty(t, selected)
}
