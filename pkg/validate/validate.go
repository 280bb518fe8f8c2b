// Package validate checks a translation unit stream for duplicate keys,
// empty values, and placeholder issues.
package validate

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/rimloc/rimloc/pkg/domain"
	"github.com/rimloc/rimloc/pkg/langdir"
	"github.com/rimloc/rimloc/pkg/logger"
	"github.com/rimloc/rimloc/pkg/xmlscan"
)

var validateLog = logger.New("validate:validate")

// Message kinds.
const (
	KindDuplicate   = "duplicate"
	KindEmpty       = "empty"
	KindPlaceholder = "placeholder-check"
)

var (
	// percentPlaceholder matches printf-style tokens: %s %d %i %f and the
	// positional/width forms like %1$s or %03d.
	percentPlaceholder = regexp.MustCompile(`%(\d+\$)?0?\d*[sdif]`)
	// bracePlaceholder matches {IDENT} and {DIGITS} tokens.
	bracePlaceholder = regexp.MustCompile(`\{[^}]+\}`)
)

// ExtractPlaceholders returns the sorted set of placeholder tokens in s.
func ExtractPlaceholders(s string) []string {
	set := make(map[string]struct{})
	for _, m := range percentPlaceholder.FindAllString(s, -1) {
		set[m] = struct{}{}
	}
	for _, m := range bracePlaceholder.FindAllString(s, -1) {
		set[m] = struct{}{}
	}
	out := make([]string, 0, len(set))
	for t := range set {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// Units runs the single-stream validations: duplicate keys across the whole
// stream, empty values, and an informational placeholder hint.
func Units(units []domain.TransUnit) []domain.ValidationMessage {
	var messages []domain.ValidationMessage

	seen := make(map[string]int)
	for _, u := range units {
		if count := seen[u.Key]; count > 0 {
			messages = append(messages, domain.ValidationMessage{
				Kind:    KindDuplicate,
				Key:     u.Key,
				Path:    u.Path,
				Line:    u.Line,
				Message: fmt.Sprintf("key seen %d time(s) before", count),
			})
		}
		seen[u.Key]++
	}

	for _, u := range units {
		if strings.TrimSpace(u.Source) == "" {
			messages = append(messages, domain.ValidationMessage{
				Kind:    KindEmpty,
				Key:     u.Key,
				Path:    u.Path,
				Line:    u.Line,
				Message: "empty value",
			})
		}
	}

	for _, u := range units {
		if placeholders := ExtractPlaceholders(u.Source); len(placeholders) > 0 {
			messages = append(messages, domain.ValidationMessage{
				Kind:    KindPlaceholder,
				Key:     u.Key,
				Path:    u.Path,
				Line:    u.Line,
				Message: "placeholders present: " + strings.Join(placeholders, " "),
			})
		}
	}

	validateLog.Printf("Validated %d units: %d messages", len(units), len(messages))
	return messages
}

// Options configures a root validation run.
type Options struct {
	// SourceLang is an ISO code resolved through langdir when SourceLangDir
	// is empty.
	SourceLang string
	// SourceLangDir restricts validation to one language folder.
	SourceLangDir string
	// CompareLangDir enables the cross-language placeholder comparison
	// against this target folder.
	CompareLangDir string
}

// diffTokens returns elements of a not present in b.
func diffTokens(a, b []string) []string {
	set := make(map[string]struct{}, len(b))
	for _, t := range b {
		set[t] = struct{}{}
	}
	var out []string
	for _, t := range a {
		if _, ok := set[t]; !ok {
			out = append(out, t)
		}
	}
	return out
}

// UnderRoot scans the root and validates the (optionally language-filtered)
// unit stream. When CompareLangDir is set, placeholder sets of source and
// target values are compared per key and any difference is reported.
func UnderRoot(scanRoot string, opts Options) ([]domain.ValidationMessage, error) {
	result, err := xmlscan.Scan(scanRoot, xmlscan.Options{NoDefs: true})
	if err != nil {
		return nil, err
	}

	srcDir := opts.SourceLangDir
	if srcDir == "" && opts.SourceLang != "" {
		srcDir = langdir.ForLang(opts.SourceLang)
	}

	units := result.Units
	if srcDir != "" {
		filtered := units[:0:0]
		for _, u := range units {
			if xmlscan.IsUnderLanguagesDir(u.Path, srcDir) {
				filtered = append(filtered, u)
			}
		}
		units = filtered
	}

	messages := Units(units)

	if opts.CompareLangDir != "" && srcDir != "" {
		target := make(map[string]string)
		for _, u := range result.Units {
			if xmlscan.IsUnderLanguagesDir(u.Path, opts.CompareLangDir) {
				if _, ok := target[u.Key]; !ok {
					target[u.Key] = u.Source
				}
			}
		}
		for _, u := range units {
			trg, ok := target[u.Key]
			if !ok {
				continue
			}
			srcTokens := ExtractPlaceholders(u.Source)
			trgTokens := ExtractPlaceholders(trg)
			missing := diffTokens(srcTokens, trgTokens)
			extra := diffTokens(trgTokens, srcTokens)
			if len(missing) == 0 && len(extra) == 0 {
				continue
			}
			var parts []string
			if len(missing) > 0 {
				parts = append(parts, "missing in translation: "+strings.Join(missing, " "))
			}
			if len(extra) > 0 {
				parts = append(parts, "extra in translation: "+strings.Join(extra, " "))
			}
			messages = append(messages, domain.ValidationMessage{
				Kind:    KindPlaceholder,
				Key:     u.Key,
				Path:    u.Path,
				Line:    u.Line,
				Message: strings.Join(parts, "; "),
			})
		}
	}

	return messages, nil
}

// HasMismatch reports whether messages contain a placeholder mismatch, for
// strict-mode callers that fail on any mismatch. Informational
// "placeholders present" hints do not count.
func HasMismatch(messages []domain.ValidationMessage) bool {
	for _, m := range messages {
		if m.Kind == KindPlaceholder && !strings.HasPrefix(m.Message, "placeholders present: ") {
			return true
		}
	}
	return false
}
