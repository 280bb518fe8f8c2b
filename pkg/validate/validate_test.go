package validate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rimloc/rimloc/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tu(key, source string, line int) domain.TransUnit {
	return domain.TransUnit{Key: key, Source: source, Path: "Dummy/Keyed/Bad.xml", Line: line}
}

func kinds(messages []domain.ValidationMessage) map[string]int {
	out := make(map[string]int)
	for _, m := range messages {
		out[m.Kind]++
	}
	return out
}

func TestUnitsDetectsDuplicateEmptyAndPlaceholders(t *testing.T) {
	units := []domain.TransUnit{
		tu("DuplicateKey", "Hello", 3),
		tu("DuplicateKey", "World", 5),
		tu("EmptyKey", "   ", 7),
		tu("WithPlaceholders", "Value {NAME} %d", 11),
	}

	messages := Units(units)
	counts := kinds(messages)

	assert.Equal(t, 1, counts[KindDuplicate])
	assert.Equal(t, 1, counts[KindEmpty])
	assert.Equal(t, 1, counts[KindPlaceholder])
}

func TestExtractPlaceholders(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"no placeholders here", nil},
		{"%s and %d", []string{"%d", "%s"}},
		{"%1$s positional", []string{"%1$s"}},
		{"%03d padded", []string{"%03d"}},
		{"{NAME} and {0}", []string{"{0}", "{NAME}"}},
		{"mixed %s {PAWN}", []string{"%s", "{PAWN}"}},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := ExtractPlaceholders(tt.input)
			if tt.want == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func writeLang(t *testing.T, root, lang, file, content string) {
	t.Helper()
	path := filepath.Join(root, "Languages", lang, "Keyed", file)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestUnderRootCrossLanguagePlaceholders(t *testing.T) {
	root := t.TempDir()
	writeLang(t, root, "English", "A.xml",
		`<LanguageData><Msg>Hello %s from {PAWN}</Msg></LanguageData>`)
	writeLang(t, root, "Russian", "A.xml",
		`<LanguageData><Msg>Привет %s и {OTHER}</Msg></LanguageData>`)

	messages, err := UnderRoot(root, Options{
		SourceLangDir:  "English",
		CompareLangDir: "Russian",
	})
	require.NoError(t, err)

	var mismatch *domain.ValidationMessage
	for i, m := range messages {
		if m.Kind == KindPlaceholder && m.Key == "Msg" &&
			(len(m.Message) > 0 && m.Message != "placeholders present: %s {PAWN}") {
			mismatch = &messages[i]
		}
	}
	require.NotNil(t, mismatch, "expected a cross-language mismatch message")
	assert.Contains(t, mismatch.Message, "{PAWN}")
	assert.Contains(t, mismatch.Message, "{OTHER}")
	assert.True(t, HasMismatch(messages))
}

func TestUnderRootFiltersBySourceLangDir(t *testing.T) {
	root := t.TempDir()
	writeLang(t, root, "English", "A.xml",
		`<LanguageData><Good>text</Good></LanguageData>`)
	writeLang(t, root, "Russian", "A.xml",
		`<LanguageData><Empty></Empty></LanguageData>`)

	messages, err := UnderRoot(root, Options{SourceLangDir: "English"})
	require.NoError(t, err)

	// the empty key lives in Russian and must not be reported
	for _, m := range messages {
		assert.NotEqual(t, "Empty", m.Key)
	}
}
