// Package config provides configuration structures for the scoring engine.
// It defines index settings controlling which fields carry positional data
// and how final scores are bounded.
package config

import (
	"strings"
)

// IndexSettings contains all configuration options for a scored index.
//
// PositionalFields are the fields whose term vectors store occurrence
// offsets; only those fields can contribute a position to the score.
// NonPositionalFields are indexed for lookup but without offsets: a
// position lookup against one of them is an unsupported operation, which
// the scorer logs and treats as "not found" rather than failing the query.
type IndexSettings struct {
	Name                string   `json:"name"`                  // Unique name for the index
	PositionalFields    []string `json:"positional_fields"`     // Fields with term vectors that include occurrence offsets
	NonPositionalFields []string `json:"non_positional_fields"` // Fields with term vectors but no offsets (lookups degrade to not-found)
	DefaultField        string   `json:"default_field"`         // Field scored when a query term names none
	ClampNonNegative    bool     `json:"clamp_non_negative"`    // Floor the multi-term score at 0 instead of letting it go negative
}

// Validate checks the settings for basic consistency and returns a list of
// human-readable problems, empty when the settings are usable.
func (settings *IndexSettings) Validate() []string {
	var problems []string

	problems = append(problems, checkDuplicates("positional_fields", settings.PositionalFields)...)
	problems = append(problems, checkDuplicates("non_positional_fields", settings.NonPositionalFields)...)

	positional := make(map[string]bool)
	for _, field := range settings.PositionalFields {
		positional[field] = true
	}
	for _, field := range settings.NonPositionalFields {
		if positional[field] {
			problems = append(problems, "Field '"+field+"' cannot be both positional and non-positional")
		}
	}

	allFields := make([]string, 0, len(settings.PositionalFields)+len(settings.NonPositionalFields))
	allFields = append(allFields, settings.PositionalFields...)
	allFields = append(allFields, settings.NonPositionalFields...)
	for _, field := range allFields {
		if strings.TrimSpace(field) == "" {
			problems = append(problems, "Field name cannot be empty or whitespace-only")
		}
	}

	if settings.DefaultField != "" && !positional[settings.DefaultField] {
		found := false
		for _, field := range settings.NonPositionalFields {
			if field == settings.DefaultField {
				found = true
				break
			}
		}
		if !found {
			problems = append(problems, "Default field '"+settings.DefaultField+"' is not an indexed field")
		}
	}

	return problems
}

// checkDuplicates checks for duplicate values in a slice and returns error messages
func checkDuplicates(fieldName string, fields []string) []string {
	var problems []string
	seen := make(map[string]bool)

	for _, field := range fields {
		if seen[field] {
			problems = append(problems, "Duplicate field '"+field+"' found in "+fieldName)
		}
		seen[field] = true
	}

	return problems
}

// ApplyDefaults applies default values to the index settings.
func (settings *IndexSettings) ApplyDefaults() {
	if settings.PositionalFields == nil {
		settings.PositionalFields = []string{}
	}
	if settings.NonPositionalFields == nil {
		settings.NonPositionalFields = []string{}
	}
	if settings.DefaultField == "" && len(settings.PositionalFields) > 0 {
		settings.DefaultField = settings.PositionalFields[0]
	}
}
