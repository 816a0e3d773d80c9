package model

import (
	"strings"
	"testing"
)

func TestValidateContentDefaultsPass(t *testing.T) {
	for _, kind := range Kinds {
		content, err := DefaultContent(kind)
		if err != nil {
			t.Fatalf("DefaultContent(%s): %v", kind, err)
		}
		if err := ValidateContent(kind, content); err != nil {
			t.Fatalf("ValidateContent(%s) on defaults: %v", kind, err)
		}
	}
}

func TestValidateContentRejectsOutOfRangeLevel(t *testing.T) {
	content, _ := DefaultContent(KindSkill)
	content["level"] = 150
	err := ValidateContent(KindSkill, content)
	if err == nil {
		t.Fatalf("expected level>100 to fail validation")
	}
	if !strings.Contains(err.Error(), "level") {
		t.Fatalf("error should mention level: %v", err)
	}
}

func TestValidateContentRejectsMissingRequired(t *testing.T) {
	content, _ := DefaultContent(KindExperience)
	delete(content, "company")
	if err := ValidateContent(KindExperience, content); err == nil {
		t.Fatalf("expected missing company to fail validation")
	}
}

func TestValidateContentUnknownKind(t *testing.T) {
	if err := ValidateContent(BlockKind("video"), map[string]interface{}{}); err != ErrUnknownKind {
		t.Fatalf("want ErrUnknownKind, got %v", err)
	}
}

func TestValidateFields(t *testing.T) {
	rules := map[string]FieldRule{
		"name":    {Required: true, MinLength: 2},
		"email":   {Required: true, Email: true},
		"website": {URL: true},
	}

	cases := []struct {
		name   string
		values map[string]string
		bad    []string
	}{
		{
			name:   "all valid",
			values: map[string]string{"name": "Ada", "email": "ada@example.com", "website": "https://example.com"},
			bad:    nil,
		},
		{
			name:   "missing required",
			values: map[string]string{"website": "https://example.com"},
			bad:    []string{"name", "email"},
		},
		{
			name:   "bad email and url",
			values: map[string]string{"name": "Ada", "email": "not-an-email", "website": "not a url"},
			bad:    []string{"email", "website"},
		},
		{
			name:   "optional blank skipped",
			values: map[string]string{"name": "Ada", "email": "ada@example.com", "website": ""},
			bad:    nil,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			problems := ValidateFields(tc.values, rules)
			if len(problems) != len(tc.bad) {
				t.Fatalf("problems: want=%d got=%d (%v)", len(tc.bad), len(problems), problems)
			}
			for _, field := range tc.bad {
				if _, ok := problems[field]; !ok {
					t.Fatalf("expected problem for %q, got %v", field, problems)
				}
			}
		})
	}
}
