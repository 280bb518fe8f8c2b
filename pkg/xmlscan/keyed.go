package xmlscan

import (
	"encoding/xml"
	"io"
	"sort"
	"strings"

	"github.com/rimloc/rimloc/pkg/constants"
	"github.com/rimloc/rimloc/pkg/domain"
	"github.com/rimloc/rimloc/pkg/logger"
)

var keyedLog = logger.New("xmlscan:keyed")

// lineStarts returns the byte offsets at which each line begins.
func lineStarts(content []byte) []int {
	starts := make([]int, 1, 256)
	starts[0] = 0
	for i, b := range content {
		if b == '\n' {
			starts = append(starts, i+1)
		}
	}
	return starts
}

// lineAt converts a byte offset into a 1-based line number using the
// precomputed line-start index.
func lineAt(offset int64, starts []int) int {
	line := sort.Search(len(starts), func(i int) bool {
		return int64(starts[i]) > offset
	})
	if line < 1 {
		return 1
	}
	return line
}

type frame struct {
	name     string
	hadText  bool
	hadChild bool
}

func frameKey(stack []frame, extra string) string {
	parts := make([]string, 0, len(stack)+1)
	for _, f := range stack {
		parts = append(parts, f.name)
	}
	if extra != "" {
		parts = append(parts, extra)
	}
	key := strings.Join(parts, ".")
	return strings.TrimPrefix(key, constants.LanguageDataRoot+".")
}

// extractKeyed walks one LanguageData-style XML document and emits a unit
// for every text-bearing element and for every declared-empty element.
// The key is the dotted element path with the LanguageData prefix stripped.
func extractKeyed(content []byte, path string) ([]domain.TransUnit, error) {
	decoder := xml.NewDecoder(strings.NewReader(string(content)))
	starts := lineStarts(content)

	var units []domain.TransUnit
	var stack []frame

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &domain.XMLParseError{Path: path, Err: err}
		}
		switch t := token.(type) {
		case xml.StartElement:
			if len(stack) > 0 {
				stack[len(stack)-1].hadChild = true
			}
			stack = append(stack, frame{name: t.Name.Local})
		case xml.CharData:
			if len(stack) == 0 {
				continue
			}
			value := strings.TrimSpace(string(t))
			if value == "" {
				continue
			}
			stack[len(stack)-1].hadText = true
			units = append(units, domain.TransUnit{
				Key:    frameKey(stack, ""),
				Source: value,
				Path:   path,
				Line:   lineAt(decoder.InputOffset(), starts),
			})
		case xml.EndElement:
			if len(stack) == 0 {
				continue
			}
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if !top.hadText && !top.hadChild {
				units = append(units, domain.TransUnit{
					Key:  frameKey(stack, top.name),
					Path: path,
					Line: lineAt(decoder.InputOffset(), starts),
				})
			}
		}
	}
	keyedLog.Printf("Extracted %d units from %s", len(units), path)
	return units, nil
}
