package langdir

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestForLang(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"ru", "Russian"},
		{"ja", "Japanese"},
		{"en", "English"},
		{"pt-br", "PortugueseBrazilian"},
		{"pt_BR", "PortugueseBrazilian"},
		{"zh-hant", "ChineseTraditional"},
		{"es-419", "SpanishLatin"},
		// canonical names pass through
		{"Russian", "Russian"},
		{"russian", "Russian"},
		// fallback capitalization for unknown codes
		{"xx", "Xx"},
		{"pt-ao", "PtAo"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ForLang(tt.input))
		})
	}
}
