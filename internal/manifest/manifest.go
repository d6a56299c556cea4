// Package manifest reads the hand-maintained navigation manifest (docs.json)
// and verifies it against the page set a split will produce. The manifest is
// never written: keeping it current is an authoring responsibility, this
// package only reports drift.
package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/xeipuuv/gojsonschema"
)

// SchemaError represents errors loading or parsing the schema itself.
type SchemaError struct {
	Path    string
	Message string
	Cause   error
}

func (e *SchemaError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load schema %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load schema %s: %s", e.Path, e.Message)
}

func (e *SchemaError) Unwrap() error {
	return e.Cause
}

// ValidationError represents a manifest that does not conform to the schema.
type ValidationError struct {
	Path   string
	Errors []FieldError
}

// FieldError is a single validation failure at a specific field.
type FieldError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	msg := fmt.Sprintf("manifest %s failed schema validation:", e.Path)
	for i, fe := range e.Errors {
		msg += fmt.Sprintf("\n  %d. %s: %s", i+1, fe.Field, fe.Message)
	}
	return msg
}

// Validate checks a manifest file against a JSON Schema file.
func Validate(schemaPath, manifestPath string) error {
	schemaLoader := gojsonschema.NewReferenceLoader("file://" + schemaPath)
	documentLoader := gojsonschema.NewReferenceLoader("file://" + manifestPath)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return &SchemaError{Path: schemaPath, Message: "schema validation could not run", Cause: err}
	}
	if result.Valid() {
		return nil
	}

	verr := &ValidationError{Path: manifestPath}
	for _, re := range result.Errors() {
		verr.Errors = append(verr.Errors, FieldError{Field: re.Field(), Message: re.Description()})
	}
	return verr
}

// Pages extracts every page path listed anywhere in the manifest's
// navigation, in document order. Nested groups are walked recursively.
func Pages(manifestPath string) ([]string, error) {
	data, err := os.ReadFile(manifestPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest %s: %w", manifestPath, err)
	}

	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse manifest %s: %w", manifestPath, err)
	}

	var pages []string
	collectPages(doc["navigation"], &pages)
	return pages, nil
}

// collectPages walks the navigation value collecting strings found in
// "pages" arrays, including arrays nested inside groups.
func collectPages(v any, out *[]string) {
	switch node := v.(type) {
	case []any:
		for _, item := range node {
			collectPages(item, out)
		}
	case map[string]any:
		for _, key := range []string{"pages", "groups", "tabs", "anchors", "dropdowns"} {
			if sub, ok := node[key]; ok {
				collectPages(sub, out)
			}
		}
	case string:
		*out = append(*out, node)
	}
}

// Coverage is the result of cross-checking manifest pages against the page
// set a split produces.
type Coverage struct {
	// Missing are produced pages absent from the manifest; these would be
	// built but unreachable through navigation.
	Missing []string
	// Stale are manifest pages the split does not produce. They are not
	// necessarily wrong (the manifest may list pages owned by other tools),
	// so callers treat them as warnings.
	Stale []string
}

// Check compares the manifest's pages with the expected post-split page set.
// Both inputs are extensionless page paths.
func Check(manifestPages, expected []string) Coverage {
	listed := make(map[string]bool, len(manifestPages))
	for _, p := range manifestPages {
		listed[p] = true
	}
	produced := make(map[string]bool, len(expected))
	for _, p := range expected {
		produced[p] = true
	}

	var cov Coverage
	for _, p := range expected {
		if !listed[p] {
			cov.Missing = append(cov.Missing, p)
		}
	}
	for _, p := range manifestPages {
		if !produced[p] {
			cov.Stale = append(cov.Stale, p)
		}
	}
	sort.Strings(cov.Missing)
	sort.Strings(cov.Stale)
	return cov
}
