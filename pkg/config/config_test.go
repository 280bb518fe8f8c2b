package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromWorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(
		"source_lang: en\ntarget_lang: ru\ngame_version: \"1.4\"\nlist_limit: 50\n"), 0o644))
	t.Chdir(dir)

	cfg := Load()
	assert.Equal(t, "en", cfg.SourceLang)
	assert.Equal(t, "ru", cfg.TargetLang)
	assert.Equal(t, "1.4", cfg.GameVersion)
	assert.Equal(t, 50, cfg.ListLimit)
}

func TestLoadMissingFileIsEmpty(t *testing.T) {
	t.Chdir(t.TempDir())
	cfg := Load()
	assert.Empty(t, cfg.SourceLang)
	assert.Zero(t, cfg.ListLimit)
}

func TestLoadIgnoresMalformedFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName),
		[]byte("::: not yaml {{{"), 0o644))
	t.Chdir(dir)

	cfg := Load()
	assert.Empty(t, cfg.SourceLang)
}

func TestMergePrefersFirst(t *testing.T) {
	a := &Config{SourceLang: "en"}
	b := &Config{SourceLang: "de", TargetLang: "ru"}

	merged := merge(a, b)
	assert.Equal(t, "en", merged.SourceLang)
	assert.Equal(t, "ru", merged.TargetLang)
}
