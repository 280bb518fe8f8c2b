package xmlscan

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rimloc/rimloc/pkg/constants"
	"github.com/rimloc/rimloc/pkg/domain"
	"github.com/rimloc/rimloc/pkg/logger"
)

var defsLog = logger.New("xmlscan:defs")

// heuristicFields are def children that carry translatable text in practice
// even when no dictionary lists them.
var heuristicFields = []string{
	"label",
	"labelShort",
	"labelPlural",
	"description",
	"jobString",
	"inspectString",
	"flavorText",
}

// DefsUnit is a unit discovered in a Defs file, together with the DefType it
// came from so the caller can synthesize the DefInjected target path.
type DefsUnit struct {
	Unit    domain.TransUnit
	DefType string
}

// DefsOptions controls Defs extraction.
type DefsOptions struct {
	// DefsRoot restricts scanning to an alternate defs directory. When empty,
	// any file under a Defs/ path segment of the scan root is considered.
	DefsRoot string
	// Dict maps DefType to dotted field paths.
	Dict FieldDict
	// ExtraFields are field names applied to every DefType.
	ExtraFields []string
	// HeuristicMinLen drops heuristic candidates whose value is shorter.
	HeuristicMinLen int
	// HeuristicBlacklist drops heuristic candidates by field name.
	HeuristicBlacklist []string
}

// collectByPath walks the dotted path through node children
// case-insensitively, descending into every <li> child when the segment is
// literally "li", and appends all leaf text values in document order.
func collectByPath(node *Node, segments []string, out *[]string) {
	if len(segments) == 0 {
		if t := strings.TrimSpace(node.Text); t != "" {
			*out = append(*out, t)
		}
		return
	}
	seg := segments[0]
	if seg == "li" {
		for _, li := range node.ChildrenNamed("li") {
			collectByPath(li, segments[1:], out)
		}
		return
	}
	for _, child := range node.ChildrenNamed(seg) {
		collectByPath(child, segments[1:], out)
	}
}

func splitPath(path string) []string {
	var segments []string
	for _, s := range strings.Split(path, ".") {
		if s != "" {
			segments = append(segments, s)
		}
	}
	return segments
}

func isUnderDefs(path string) bool {
	normalized := strings.ReplaceAll(path, "\\", "/")
	return strings.Contains(normalized, "/"+constants.DefsDirName+"/")
}

// DefInjectedTargetPath synthesizes the canonical DefInjected path a
// Defs-derived unit maps to, regardless of where the Defs file lives.
func DefInjectedTargetPath(scanRoot, sourceLangDir, defType, defsFile string) string {
	return filepath.Join(scanRoot, constants.LanguagesDirName, sourceLangDir,
		constants.DefInjectedDirName, defType, filepath.Base(defsFile))
}

// extractDefs pulls dictionary-driven and heuristic units out of one parsed
// Defs document.
func extractDefs(root *Node, path string, opts DefsOptions) []DefsUnit {
	var out []DefsUnit
	emit := func(defType, defName, fieldPath, value string) {
		out = append(out, DefsUnit{
			DefType: defType,
			Unit: domain.TransUnit{
				Key:    defName + "." + fieldPath,
				Source: value,
				Path:   path,
			},
		})
	}

	for _, def := range root.Children {
		defType := def.Name
		defName := ""
		if n := def.ChildNamed("defName"); n != nil {
			defName = strings.TrimSpace(n.Text)
		}
		if defName == "" {
			continue
		}

		paths := append([]string(nil), opts.Dict[defType]...)
		paths = append(paths, opts.ExtraFields...)
		for _, fieldPath := range paths {
			var values []string
			collectByPath(def, splitPath(fieldPath), &values)
			for _, v := range values {
				emit(defType, defName, fieldPath, v)
			}
		}

		// Heuristic candidates on immediate children.
		for _, child := range def.Children {
			name := child.Name
			matched := false
			for _, h := range heuristicFields {
				if strings.EqualFold(name, h) {
					matched = true
					break
				}
			}
			if !matched {
				continue
			}
			blacklisted := false
			for _, b := range opts.HeuristicBlacklist {
				if strings.EqualFold(name, b) {
					blacklisted = true
					break
				}
			}
			if blacklisted {
				continue
			}
			value := strings.TrimSpace(child.Text)
			if value == "" || len(value) < opts.HeuristicMinLen {
				continue
			}
			emit(defType, defName, name, value)
		}
	}
	return out
}

// ScanDefs walks Defs XML under the scan root (or opts.DefsRoot when given)
// and returns discovered units with their def types. Malformed files are
// skipped; the returned warnings describe them.
func ScanDefs(scanRoot string, opts DefsOptions) ([]DefsUnit, []Warning, error) {
	searchRoot := scanRoot
	restrictToDefs := true
	if opts.DefsRoot != "" {
		searchRoot = opts.DefsRoot
		restrictToDefs = false
	}

	files, err := listXMLFiles(searchRoot, nil, nil)
	if err != nil {
		return nil, nil, err
	}

	var units []DefsUnit
	var warnings []Warning
	for _, file := range files {
		if restrictToDefs && !isUnderDefs(file) {
			continue
		}
		content, err := os.ReadFile(file)
		if err != nil {
			warnings = append(warnings, Warning{Path: file, Err: err})
			continue
		}
		root, err := ParseTree(content)
		if err != nil {
			warnings = append(warnings, Warning{Path: file, Err: &domain.XMLParseError{Path: file, Err: err}})
			continue
		}
		units = append(units, extractDefs(root, file, opts)...)
	}
	defsLog.Printf("Scanned %d defs files under %s: %d units", len(files), searchRoot, len(units))
	return units, warnings, nil
}
