package model

import (
	"fmt"
	"net/mail"
	"net/url"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// contentSchemas holds one JSON schema per block kind. Blocks are validated
// against these only at publish/export time; the editing operations stay total
// and never reject content.
var contentSchemas = map[BlockKind]map[string]interface{}{
	KindText: {
		"type":     "object",
		"required": []string{"text", "size", "align", "style"},
		"properties": map[string]interface{}{
			"text":  map[string]interface{}{"type": "string"},
			"size":  map[string]interface{}{"type": "string"},
			"align": map[string]interface{}{"type": "string"},
			"style": map[string]interface{}{"type": "string"},
		},
	},
	KindImage: {
		"type":     "object",
		"required": []string{"src", "alt"},
		"properties": map[string]interface{}{
			"src":     map[string]interface{}{"type": "string"},
			"alt":     map[string]interface{}{"type": "string"},
			"width":   map[string]interface{}{"type": "string"},
			"caption": map[string]interface{}{"type": "string"},
		},
	},
	KindProject: {
		"type":     "object",
		"required": []string{"title", "description"},
		"properties": map[string]interface{}{
			"title":       map[string]interface{}{"type": "string", "minLength": 1},
			"description": map[string]interface{}{"type": "string"},
			"tech":        map[string]interface{}{"type": "array", "items": map[string]interface{}{"type": "string", "minLength": 1}},
			"features":    map[string]interface{}{"type": "array", "items": map[string]interface{}{"type": "string", "minLength": 1}},
		},
	},
	KindSkill: {
		"type":     "object",
		"required": []string{"skill", "level"},
		"properties": map[string]interface{}{
			"skill":       map[string]interface{}{"type": "string", "minLength": 1},
			"level":       map[string]interface{}{"type": "integer", "minimum": 0, "maximum": 100},
			"description": map[string]interface{}{"type": "string"},
		},
	},
	KindContact: {
		"type":     "object",
		"required": []string{"title"},
		"properties": map[string]interface{}{
			"title":   map[string]interface{}{"type": "string", "minLength": 1},
			"methods": map[string]interface{}{"type": "array", "items": map[string]interface{}{"type": "string", "minLength": 1}},
		},
	},
	KindEducation: {
		"type":     "object",
		"required": []string{"degree", "field", "university"},
		"properties": map[string]interface{}{
			"degree":     map[string]interface{}{"type": "string", "minLength": 1},
			"field":      map[string]interface{}{"type": "string"},
			"university": map[string]interface{}{"type": "string"},
			"year":       map[string]interface{}{"type": "string"},
			"honors":     map[string]interface{}{"type": "array", "items": map[string]interface{}{"type": "string", "minLength": 1}},
		},
	},
	KindExperience: {
		"type":     "object",
		"required": []string{"title", "company"},
		"properties": map[string]interface{}{
			"title":        map[string]interface{}{"type": "string", "minLength": 1},
			"company":      map[string]interface{}{"type": "string", "minLength": 1},
			"duration":     map[string]interface{}{"type": "string"},
			"description":  map[string]interface{}{"type": "string"},
			"achievements": map[string]interface{}{"type": "array", "items": map[string]interface{}{"type": "string", "minLength": 1}},
		},
	},
	KindTestimonial: {
		"type":     "object",
		"required": []string{"quote", "author"},
		"properties": map[string]interface{}{
			"quote":    map[string]interface{}{"type": "string", "minLength": 1},
			"author":   map[string]interface{}{"type": "string", "minLength": 1},
			"position": map[string]interface{}{"type": "string"},
			"avatar":   map[string]interface{}{"type": "string"},
		},
	},
	KindCertificate: {
		"type":     "object",
		"required": []string{"name", "issuer"},
		"properties": map[string]interface{}{
			"name":         map[string]interface{}{"type": "string", "minLength": 1},
			"issuer":       map[string]interface{}{"type": "string"},
			"date":         map[string]interface{}{"type": "string"},
			"credentialId": map[string]interface{}{"type": "string"},
			"verifyUrl":    map[string]interface{}{"type": "string"},
		},
	},
}

// ValidateContent validates a block's content against the schema for its kind.
func ValidateContent(kind BlockKind, content map[string]interface{}) error {
	schema, ok := contentSchemas[kind]
	if !ok {
		return ErrUnknownKind
	}
	res, err := gojsonschema.Validate(gojsonschema.NewGoLoader(schema), gojsonschema.NewGoLoader(content))
	if err != nil {
		return err
	}
	if res.Valid() {
		return nil
	}
	// collect errors
	msgs := ""
	for _, e := range res.Errors() {
		msgs += fmt.Sprintf("%s; ", e.String())
	}
	return fmt.Errorf("content validation failed for %s block: %s", kind, msgs)
}

// FieldRule is one validation predicate set applied to a keyed form value.
// Rules for a form are held in a mapping field name -> rule and evaluated
// uniformly rather than per-field ad hoc checks.
type FieldRule struct {
	Required  bool
	MinLength int
	Email     bool
	URL       bool
}

// ValidateFields checks every rule against the corresponding value and
// returns one message per failing field, keyed by field name.
func ValidateFields(values map[string]string, rules map[string]FieldRule) map[string]string {
	problems := map[string]string{}
	for name, rule := range rules {
		v := strings.TrimSpace(values[name])
		if rule.Required && v == "" {
			problems[name] = "required"
			continue
		}
		if v == "" {
			continue
		}
		if rule.MinLength > 0 && len(v) < rule.MinLength {
			problems[name] = fmt.Sprintf("must be at least %d characters", rule.MinLength)
			continue
		}
		if rule.Email {
			if _, err := mail.ParseAddress(v); err != nil {
				problems[name] = "invalid email address"
				continue
			}
		}
		if rule.URL {
			u, err := url.Parse(v)
			if err != nil || u.Scheme == "" || u.Host == "" {
				problems[name] = "invalid url"
			}
		}
	}
	return problems
}
