// Package health scans XML files for encoding, structure, and entity
// problems that break the game's loader.
package health

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"regexp"
	"runtime"
	"strings"

	"github.com/rimloc/rimloc/pkg/domain"
	"github.com/rimloc/rimloc/pkg/logger"
	"github.com/rimloc/rimloc/pkg/xmlscan"
	"github.com/sourcegraph/conc/pool"
	"golang.org/x/text/encoding/htmlindex"
)

var healthLog = logger.New("health:scan")

// declEncoding extracts the encoding attribute of the XML declaration.
var declEncoding = regexp.MustCompile(`(?i)<\?xml[^>]*encoding\s*=\s*['"]([^'"]+)['"][^>]*\?>`)

// headLimit bounds how much of a file the declaration and doctype checks
// inspect.
const headLimit = 512

func isUTF8Name(name string) bool {
	normalized := strings.ReplaceAll(strings.ToLower(name), "_", "-")
	return normalized == "utf-8" || normalized == "utf8"
}

// checkFile collects the issues of a single XML file.
func checkFile(path string) []domain.HealthIssue {
	var issues []domain.HealthIssue
	content, err := os.ReadFile(path)
	if err != nil {
		issues = append(issues, domain.HealthIssue{
			Path:     path,
			Category: domain.HealthParse,
			Error:    err.Error(),
		})
		return issues
	}

	head := content
	if len(head) > headLimit {
		head = head[:headLimit]
	}
	headStr := string(head)

	if m := declEncoding.FindStringSubmatch(headStr); m != nil {
		if !isUTF8Name(m[1]) {
			detail := fmt.Sprintf("XML declares encoding=%s; expected UTF-8", m[1])
			// Name the actual charset when the declared label is known.
			if enc, err := htmlindex.Get(strings.ToLower(m[1])); err == nil {
				if canonical, err := htmlindex.Name(enc); err == nil {
					detail = fmt.Sprintf("XML declares encoding=%s (%s); expected UTF-8", m[1], canonical)
				}
			}
			issues = append(issues, domain.HealthIssue{
				Path:     path,
				Category: domain.HealthEncodingDetected,
				Error:    detail,
			})
		}
	}
	if strings.Contains(strings.ToLower(headStr), "<!doctype") {
		issues = append(issues, domain.HealthIssue{
			Path:     path,
			Category: domain.HealthUnexpectedDoctype,
			Error:    "DOCTYPE present (not expected in LanguageData)",
		})
	}

	for _, b := range content {
		if b < 0x20 && b != '\t' && b != '\n' && b != '\r' {
			issues = append(issues, domain.HealthIssue{
				Path:     path,
				Category: domain.HealthInvalidChar,
				Error:    fmt.Sprintf("control character 0x%02X", b),
			})
			break
		}
	}

	decoder := xml.NewDecoder(strings.NewReader(string(content)))
	for {
		_, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			issues = append(issues, domain.HealthIssue{
				Path:     path,
				Category: classifyParseError(err),
				Error:    err.Error(),
			})
			break
		}
	}

	return issues
}

func classifyParseError(err error) string {
	message := strings.ToLower(err.Error())
	switch {
	case strings.Contains(message, "mismatch"), strings.Contains(message, "closed by"),
		strings.Contains(message, "unexpected end element"):
		return domain.HealthTagMismatch
	case strings.Contains(message, "doctype"), strings.Contains(message, "dtd"):
		return domain.HealthUnexpectedDoctype
	case strings.Contains(message, "entity"), strings.Contains(message, "escape"), strings.Contains(message, "&"):
		return domain.HealthInvalidEntity
	default:
		return domain.HealthParse
	}
}

// Scan walks the XML files under root, optionally restricted to
// Languages/<langDir>, and reports every issue found. Files are checked in
// parallel; the report order follows the sorted file list.
func Scan(root, langDir string) (*domain.HealthReport, error) {
	var files []string
	var err error
	if langDir != "" {
		files, err = xmlscan.ListLanguageFiles(root, langDir)
	} else {
		files, err = xmlscan.ListXMLFiles(root)
	}
	if err != nil {
		return nil, err
	}

	// Results are written by index so the report order follows the sorted
	// file list no matter how the workers interleave.
	results := make([][]domain.HealthIssue, len(files))
	p := pool.New().WithMaxGoroutines(runtime.NumCPU())
	for i, file := range files {
		p.Go(func() {
			results[i] = checkFile(file)
		})
	}
	p.Wait()

	report := &domain.HealthReport{Checked: len(files)}
	for _, issues := range results {
		report.Issues = append(report.Issues, issues...)
	}
	healthLog.Printf("Health scan of %s: %d files, %d issues", root, report.Checked, len(report.Issues))
	return report, nil
}
