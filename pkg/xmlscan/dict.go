package xmlscan

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/rimloc/rimloc/pkg/domain"
	"github.com/rimloc/rimloc/pkg/logger"
	"github.com/santhosh-tekuri/jsonschema/v6"
)

var dictLog = logger.New("xmlscan:dict")

//go:embed schemas/defs_dict.json
var embeddedDictJSON []byte

//go:embed schemas/defs_dict.schema.json
var dictSchemaJSON string

// FieldDict maps a DefType to the dotted field paths that carry translatable
// text. A path segment equal to "li" descends into every list child.
type FieldDict map[string][]string

var (
	dictSchemaOnce sync.Once
	dictSchema     *jsonschema.Schema
	dictSchemaErr  error
)

func compiledDictSchema() (*jsonschema.Schema, error) {
	dictSchemaOnce.Do(func() {
		var doc any
		if err := json.Unmarshal([]byte(dictSchemaJSON), &doc); err != nil {
			dictSchemaErr = fmt.Errorf("parse dictionary schema: %w", err)
			return
		}
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("defs_dict.schema.json", doc); err != nil {
			dictSchemaErr = fmt.Errorf("add dictionary schema resource: %w", err)
			return
		}
		dictSchema, dictSchemaErr = compiler.Compile("defs_dict.schema.json")
	})
	return dictSchema, dictSchemaErr
}

// EmbeddedDict returns a copy of the baseline dictionary shipped with the
// toolkit. It is always present underneath any user or learned dictionaries.
func EmbeddedDict() FieldDict {
	var dict FieldDict
	// The embedded dictionary is validated by tests; a decode failure here
	// would mean a corrupted build.
	if err := json.Unmarshal(embeddedDictJSON, &dict); err != nil {
		panic(fmt.Sprintf("embedded defs dictionary is invalid: %v", err))
	}
	return dict
}

// LoadDictFile reads and validates a field dictionary JSON file.
// A file that is not the expected shape yields a *domain.DictError.
func LoadDictFile(path string) (FieldDict, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	schema, err := compiledDictSchema()
	if err != nil {
		return nil, err
	}
	instance, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, &domain.DictError{Path: path, Err: err}
	}
	if err := schema.Validate(instance); err != nil {
		return nil, &domain.DictError{Path: path, Err: err}
	}
	var dict FieldDict
	if err := json.Unmarshal(data, &dict); err != nil {
		return nil, &domain.DictError{Path: path, Err: err}
	}
	dictLog.Printf("Loaded dictionary %s: %d def types", path, len(dict))
	return dict, nil
}

// MergeDicts combines dictionaries by per-DefType set union. The operation
// is associative and commutative; order of inputs does not matter.
func MergeDicts(dicts ...FieldDict) FieldDict {
	sets := make(map[string]map[string]struct{})
	for _, d := range dicts {
		for defType, fields := range d {
			set, ok := sets[defType]
			if !ok {
				set = make(map[string]struct{})
				sets[defType] = set
			}
			for _, f := range fields {
				set[f] = struct{}{}
			}
		}
	}
	merged := make(FieldDict, len(sets))
	for defType, set := range sets {
		fields := make([]string, 0, len(set))
		for f := range set {
			fields = append(fields, f)
		}
		sort.Strings(fields)
		merged[defType] = fields
	}
	return merged
}
