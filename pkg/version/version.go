// Package version resolves the game-version subtree of a workspace root.
//
// A mod root may contain sibling version directories like 1.4/ or v1.6/.
// Resolve picks the scan root from them: an explicit request is honored,
// otherwise the newest version wins. Versions sort by component count first,
// then component-wise, so a deeper tuple such as 1.9.1 is considered newer
// than 1.10 — in this ecosystem deeper tuples signal newer patches.
package version

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/rimloc/rimloc/pkg/domain"
	"github.com/rimloc/rimloc/pkg/logger"
)

var versionLog = logger.New("version:resolve")

type entry struct {
	name       string
	components []int
	path       string
}

// parseComponents parses "1.4" or "v1.4.3" into numeric components.
// Returns nil when the name is not a dotted numeric version.
func parseComponents(name string) []int {
	trimmed := strings.TrimPrefix(name, "v")
	if trimmed == "" {
		return nil
	}
	parts := strings.Split(trimmed, ".")
	if len(parts) < 2 {
		return nil
	}
	components := make([]int, 0, len(parts))
	for _, part := range parts {
		if part == "" {
			return nil
		}
		value, err := strconv.Atoi(part)
		if err != nil || value < 0 {
			return nil
		}
		components = append(components, value)
	}
	return components
}

func isVersionDir(path string) bool {
	return parseComponents(filepath.Base(path)) != nil
}

func listVersionDirs(base string) ([]entry, error) {
	dirEntries, err := os.ReadDir(base)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var entries []entry
	for _, de := range dirEntries {
		if !de.IsDir() {
			continue
		}
		if components := parseComponents(de.Name()); components != nil {
			entries = append(entries, entry{
				name:       de.Name(),
				components: components,
				path:       filepath.Join(base, de.Name()),
			})
		}
	}
	return entries, nil
}

// findRequested probes both the bare and the v-prefixed form of a requested
// version name, preferring the form the caller wrote.
func findRequested(base, requested string) string {
	normalized := strings.TrimPrefix(strings.TrimSpace(requested), "v")
	var candidates []string
	if strings.HasPrefix(requested, "v") {
		candidates = []string{strings.TrimSpace(requested), normalized}
	} else {
		candidates = []string{normalized, "v" + normalized}
	}
	for _, name := range candidates {
		if name == "" {
			continue
		}
		candidate := filepath.Join(base, name)
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return candidate
		}
	}
	return ""
}

// Resolve selects the scan root for a workspace. It returns the resolved
// root and the selected version name (empty when base itself is used and is
// not a version directory).
//
// Rules:
//   - base whose own name parses as a version is returned as-is
//   - an explicit request must resolve, or domain.ErrVersionNotFound
//   - with no request and no version dirs, base is returned unselected
//   - otherwise the newest version wins (component count, then tuple order)
func Resolve(base, requested string) (string, string, error) {
	if isVersionDir(base) {
		versionLog.Printf("Base %s is itself a version directory", base)
		return base, filepath.Base(base), nil
	}

	if requested != "" {
		if path := findRequested(base, requested); path != "" {
			return path, filepath.Base(path), nil
		}
		return "", "", fmt.Errorf("requested version %q under %s: %w", requested, base, domain.ErrVersionNotFound)
	}

	entries, err := listVersionDirs(base)
	if err != nil {
		return "", "", err
	}
	if len(entries) == 0 {
		return base, "", nil
	}

	slices.SortFunc(entries, func(a, b entry) int {
		if c := len(a.components) - len(b.components); c != 0 {
			return c
		}
		return slices.Compare(a.components, b.components)
	})

	picked := entries[len(entries)-1]
	versionLog.Printf("Picked version %s from %d candidates", picked.name, len(entries))
	return picked.path, picked.name, nil
}
