package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

var (
	ErrSchemaInvalid    = errors.New("schema invalid")
	ErrSchemaValidation = errors.New("schema validation failed")
)

// ValidationIssue captures a single validation failure.
type ValidationIssue struct {
	Location string
	Message  string
}

// PayloadValidationError surfaces validation issues with schema-aware context.
type PayloadValidationError struct {
	Issues []ValidationIssue
	Cause  error
}

func (e *PayloadValidationError) Error() string {
	if len(e.Issues) == 0 {
		if e.Cause != nil {
			return e.Cause.Error()
		}
		return ErrSchemaValidation.Error()
	}
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		location := strings.TrimSpace(issue.Location)
		if location == "" {
			location = "#"
		} else if !strings.HasPrefix(location, "#") {
			location = "#" + location
		}
		if issue.Message == "" {
			parts = append(parts, location)
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", location, issue.Message))
	}
	return strings.Join(parts, "; ")
}

func (e *PayloadValidationError) Unwrap() error {
	return ErrSchemaValidation
}

// Issues extracts validation issues from an error.
func Issues(err error) []ValidationIssue {
	if err == nil {
		return nil
	}
	var payloadErr *PayloadValidationError
	if errors.As(err, &payloadErr) && payloadErr != nil {
		return payloadErr.Issues
	}
	var validationErr *jsonschema.ValidationError
	if errors.As(err, &validationErr) && validationErr != nil {
		return collectValidationIssues(validationErr)
	}
	return []ValidationIssue{{Message: err.Error()}}
}

// ArticleFrontMatterSchema returns the JSON schema every article metadata
// block is held to. Dates are accepted as strings because the corpus spans
// several date layouts; layout checking happens after YAML decoding, not here.
func ArticleFrontMatterSchema() map[string]any {
	stringValue := map[string]any{"type": "string"}
	stringList := map[string]any{
		"type":     "array",
		"items":    map[string]any{"type": "string", "minLength": 1},
		"minItems": 1,
	}
	stringOrList := map[string]any{
		"anyOf": []any{
			map[string]any{"type": "string", "minLength": 1},
			stringList,
		},
	}

	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title":       map[string]any{"type": "string", "minLength": 1},
			"authors":     stringOrList,
			"categories":  stringOrList,
			"date":        stringValue,
			"modified":    stringValue,
			"excerpt":     stringValue,
			"description": stringValue,
			"image":       stringValue,
			"url":         map[string]any{"type": "string", "minLength": 1},
		},
		"required":             []any{"title", "url"},
		"additionalProperties": true,
	}
}

var (
	articleSchemaOnce sync.Once
	articleSchema     *jsonschema.Schema
	articleSchemaErr  error
)

// ValidateFrontMatter validates a raw front matter map against the article
// schema.
func ValidateFrontMatter(payload map[string]any) error {
	articleSchemaOnce.Do(func() {
		articleSchema, articleSchemaErr = compileSchema(ArticleFrontMatterSchema())
	})
	if articleSchemaErr != nil {
		return fmt.Errorf("%w: %v", ErrSchemaInvalid, articleSchemaErr)
	}
	return validateWithSchema(articleSchema, payload)
}

// ValidatePayload validates payload against the provided schema. Callers with
// bespoke schemas (test fixtures, downstream tools) compile per call.
func ValidatePayload(schema map[string]any, payload map[string]any) error {
	if len(schema) == 0 {
		return nil
	}
	compiled, err := compileSchema(schema)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSchemaValidation, err)
	}
	return validateWithSchema(compiled, payload)
}

func validateWithSchema(schema *jsonschema.Schema, payload map[string]any) error {
	if payload == nil {
		payload = map[string]any{}
	}
	if err := schema.Validate(normalizePayload(payload)); err != nil {
		return &PayloadValidationError{
			Issues: Issues(err),
			Cause:  err,
		}
	}
	return nil
}

// normalizePayload round-trips the payload through JSON so YAML-decoded types
// (time.Time values, []string slices, map[any]any) validate cleanly.
func normalizePayload(payload map[string]any) any {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return payload
	}
	var normalized any
	if err := json.Unmarshal(encoded, &normalized); err != nil {
		return payload
	}
	return normalized
}

func compileSchema(schema map[string]any) (*jsonschema.Schema, error) {
	encoded, err := json.Marshal(schema)
	if err != nil {
		return nil, err
	}
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource("schema.json", bytes.NewReader(encoded)); err != nil {
		return nil, err
	}
	return compiler.Compile("schema.json")
}

func collectValidationIssues(err *jsonschema.ValidationError) []ValidationIssue {
	if err == nil {
		return nil
	}
	issues := []ValidationIssue{}
	var walk func(*jsonschema.ValidationError)
	walk = func(node *jsonschema.ValidationError) {
		if node == nil {
			return
		}
		if len(node.Causes) == 0 {
			issues = append(issues, ValidationIssue{
				Location: strings.TrimSpace(node.InstanceLocation),
				Message:  strings.TrimSpace(node.Message),
			})
			return
		}
		for _, cause := range node.Causes {
			walk(cause)
		}
	}
	walk(err)
	return issues
}
