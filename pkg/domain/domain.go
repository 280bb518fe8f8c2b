// Package domain defines the value types exchanged between the RimLoc
// pipelines: translation units, PO entries, and the report shapes returned
// by import, diff, annotate, and health operations.
//
// All types are plain immutable values; a pipeline invocation produces them
// and never mutates them afterwards.
package domain

// TransUnit is a single translation entry scanned from Keyed or DefInjected
// XML, or synthesized from Defs through the field dictionary.
type TransUnit struct {
	// Key is the translation key. For Keyed XML it is the element's dotted
	// path; for DefInjected and Defs it has the form DefName.field.path.
	Key string `json:"key"`
	// Source is the source text. May be empty for declared-empty keys.
	Source string `json:"source"`
	// Path is the canonical provenance path. Units synthesized from Defs
	// carry the DefInjected target path they map to, not the Defs file.
	Path string `json:"path"`
	// Line is the 1-based line number, or 0 when unknown (Defs-derived units).
	Line int `json:"line,omitempty"`
}

// PoEntry is a single record parsed from a PO file.
type PoEntry struct {
	// Key is the msgctxt up to the first '|'.
	Key string `json:"key"`
	// Value is the msgstr (possibly empty).
	Value string `json:"value"`
	// Reference is the first "#:" line, used to reconstruct target paths.
	Reference string `json:"reference,omitempty"`
}

// ValidationMessage is one finding produced by the validator.
type ValidationMessage struct {
	Kind    string `json:"kind"`
	Key     string `json:"key"`
	Path    string `json:"path"`
	Line    int    `json:"line,omitempty"`
	Message string `json:"message"`
}

// ImportFileStat describes the outcome for one target file of an import.
type ImportFileStat struct {
	Path    string   `json:"path"`
	Keys    int      `json:"keys"`
	Status  string   `json:"status"` // created, updated, skipped; planned on a single-file dry run
	Added   []string `json:"added,omitempty"`
	Changed []string `json:"changed,omitempty"`
}

// ImportSummary aggregates the outcome of an import run.
type ImportSummary struct {
	Mode    string           `json:"mode"`
	Created int              `json:"created"`
	Updated int              `json:"updated"`
	Skipped int              `json:"skipped"`
	Keys    int              `json:"keys"`
	Files   []ImportFileStat `json:"files"`
}

// ImportPlan lists the files an import would write, for dry runs.
type ImportPlan struct {
	Files     []PlannedFile `json:"files"`
	TotalKeys int           `json:"total_keys"`
}

// PlannedFile is one target of a dry-run plan.
type PlannedFile struct {
	Path string `json:"path"`
	Keys int    `json:"keys"`
}

// ChangedKey pairs a key with its new source text in a diff.
type ChangedKey struct {
	Key    string `json:"key"`
	Source string `json:"source"`
}

// DiffOutput holds the three sorted diff lists.
type DiffOutput struct {
	Changed           []ChangedKey `json:"changed"`
	OnlyInTranslation []string     `json:"only_in_translation"`
	OnlyInMod         []string     `json:"only_in_mod"`
}

// IsEmpty reports whether the diff found nothing.
func (d *DiffOutput) IsEmpty() bool {
	return len(d.Changed) == 0 && len(d.OnlyInTranslation) == 0 && len(d.OnlyInMod) == 0
}

// HealthIssue is one problem found by the XML health scanner.
type HealthIssue struct {
	Path     string `json:"path"`
	Category string `json:"category"`
	Error    string `json:"error"`
}

// Health issue categories.
const (
	HealthEncodingDetected  = "encoding-detected"
	HealthUnexpectedDoctype = "unexpected-doctype"
	HealthInvalidChar       = "invalid-char"
	HealthTagMismatch       = "tag-mismatch"
	HealthInvalidEntity     = "invalid-entity"
	HealthParse             = "parse"
)

// HealthReport aggregates XML health findings.
type HealthReport struct {
	Checked int           `json:"checked"`
	Issues  []HealthIssue `json:"issues"`
}

// AnnotateFilePlan describes planned annotate changes for one file.
type AnnotateFilePlan struct {
	Path  string `json:"path"`
	Add   int    `json:"add"`
	Strip int    `json:"strip"`
}

// AnnotatePlan is the dry-run output of the annotate engine.
type AnnotatePlan struct {
	Files      []AnnotateFilePlan `json:"files"`
	TotalAdd   int                `json:"total_add"`
	TotalStrip int                `json:"total_strip"`
	Processed  int                `json:"processed"`
}

// AnnotateSummary is the apply-mode output of the annotate engine.
type AnnotateSummary struct {
	Processed int `json:"processed"`
	Annotated int `json:"annotated"`
}
