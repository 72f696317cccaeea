package config

import (
	"testing"
)

func TestValidate(t *testing.T) {
	t.Run("valid settings", func(t *testing.T) {
		settings := &IndexSettings{
			Name:                "products",
			PositionalFields:    []string{"title", "description"},
			NonPositionalFields: []string{"tags"},
			DefaultField:        "title",
		}
		if problems := settings.Validate(); len(problems) != 0 {
			t.Errorf("Expected no problems, got %v", problems)
		}
	})

	t.Run("duplicate fields", func(t *testing.T) {
		settings := &IndexSettings{
			Name:             "products",
			PositionalFields: []string{"title", "title"},
		}
		problems := settings.Validate()
		if len(problems) == 0 {
			t.Error("Expected duplicate field problem, got none")
		}
	})

	t.Run("field in both categories", func(t *testing.T) {
		settings := &IndexSettings{
			Name:                "products",
			PositionalFields:    []string{"title"},
			NonPositionalFields: []string{"title"},
		}
		problems := settings.Validate()
		if len(problems) == 0 {
			t.Error("Expected overlap problem, got none")
		}
	})

	t.Run("empty field name", func(t *testing.T) {
		settings := &IndexSettings{
			Name:             "products",
			PositionalFields: []string{"  "},
		}
		problems := settings.Validate()
		if len(problems) == 0 {
			t.Error("Expected empty field name problem, got none")
		}
	})

	t.Run("unknown default field", func(t *testing.T) {
		settings := &IndexSettings{
			Name:             "products",
			PositionalFields: []string{"title"},
			DefaultField:     "body",
		}
		problems := settings.Validate()
		if len(problems) == 0 {
			t.Error("Expected default field problem, got none")
		}
	})
}

func TestApplyDefaults(t *testing.T) {
	settings := &IndexSettings{
		Name:             "products",
		PositionalFields: []string{"title", "description"},
	}
	settings.ApplyDefaults()

	if settings.DefaultField != "title" {
		t.Errorf("Expected default field to be 'title', got %q", settings.DefaultField)
	}
	if settings.NonPositionalFields == nil {
		t.Error("Expected NonPositionalFields to be initialized")
	}

	empty := &IndexSettings{Name: "empty"}
	empty.ApplyDefaults()
	if empty.DefaultField != "" {
		t.Errorf("Expected no default field without positional fields, got %q", empty.DefaultField)
	}
	if empty.PositionalFields == nil {
		t.Error("Expected PositionalFields to be initialized")
	}
}
