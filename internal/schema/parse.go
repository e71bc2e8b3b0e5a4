package schema

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// Parse validates raw model output against the definition's JSON Schema and
// decodes it into a normalized ParsedResume. All list fields of the result
// are non-nil and skill lists are deduplicated; failures surface as
// *ValidationError carrying a truncated excerpt of raw.
func (d *Definition) Parse(raw string) (*ParsedResume, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, newValidationError(d.Variant, "response is empty", raw, nil)
	}

	schemaLoader := gojsonschema.NewStringLoader(d.jsonSchema)
	documentLoader := gojsonschema.NewStringLoader(raw)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		// Validate fails outright when the document is not syntactically
		// valid JSON.
		return nil, newValidationError(d.Variant, "response is not valid JSON", raw, err)
	}
	if !result.Valid() {
		return nil, newValidationError(d.Variant, describeFieldErrors(result), raw, nil)
	}

	parsed := &ParsedResume{Variant: d.Variant}
	switch d.Variant {
	case VariantRich:
		var rich RichResume
		if err := json.Unmarshal([]byte(raw), &rich); err != nil {
			return nil, newValidationError(d.Variant, "failed to decode response", raw, err)
		}
		normalizeRich(&rich)
		parsed.Rich = &rich
	default:
		var simple SimpleResume
		if err := json.Unmarshal([]byte(raw), &simple); err != nil {
			return nil, newValidationError(d.Variant, "failed to decode response", raw, err)
		}
		normalizeSimple(&simple)
		parsed.Simple = &simple
	}

	return parsed, nil
}

// describeFieldErrors flattens schema validation results into one diagnostic.
func describeFieldErrors(result *gojsonschema.Result) string {
	var sb strings.Builder
	sb.WriteString("response does not match schema:")
	for i, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		sb.WriteString(fmt.Sprintf(" %d. %s: %s;", i+1, field, desc.Description()))
	}
	return strings.TrimSuffix(sb.String(), ";")
}
