// Package schema defines the structured-output contracts for resume
// extraction: two fixed shapes (rich and simple), the prompt-embeddable
// format instructions describing them, and a validating parser that turns
// raw model output into normalized ParsedResume values.
package schema

import (
	"fmt"
	"strings"
)

// Variant selects one of the two fixed extraction shapes.
type Variant string

// Supported schema variants.
const (
	// VariantRich extracts the full structured shape.
	VariantRich Variant = "rich"
	// VariantSimple extracts the flat shape (cheaper, faster).
	VariantSimple Variant = "simple"
)

// ForSimple maps the caller-facing simple flag to a variant.
func ForSimple(simple bool) Variant {
	if simple {
		return VariantSimple
	}
	return VariantRich
}

// Field describes a single output field for prompt construction.
type Field struct {
	Name        string
	Type        string
	Description string
	Required    bool
}

// Definition is a registered schema variant: its field table for prompt
// construction and its JSON Schema document for structural validation.
type Definition struct {
	Variant    Variant
	fields     []Field
	jsonSchema string
}

// Get returns the definition for a variant. Unknown variants fall back to
// the simple definition.
func Get(variant Variant) *Definition {
	if variant == VariantRich {
		return &richDefinition
	}
	return &simpleDefinition
}

// FormatInstructions renders the machine-readable shape description embedded
// in extraction prompts. Output is fixed for a given variant so prompts stay
// reproducible.
func (d *Definition) FormatInstructions() string {
	var sb strings.Builder

	sb.WriteString("Return ONLY valid JSON matching this exact structure:\n{\n")
	for i, field := range d.fields {
		requiredHint := ""
		if field.Required {
			requiredHint = " (required)"
		}
		sb.WriteString(fmt.Sprintf("  \"%s\": %s%s", field.Name, field.Type, requiredHint))
		if field.Description != "" {
			sb.WriteString(" // " + field.Description)
		}
		if i < len(d.fields)-1 {
			sb.WriteString(",")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("}\n")

	return sb.String()
}

var simpleDefinition = Definition{
	Variant: VariantSimple,
	fields: []Field{
		{Name: "name", Type: `"string"`, Description: "Full name", Required: true},
		{Name: "email", Type: `"string" or null`, Description: "Email address"},
		{Name: "phone", Type: `"string" or null`, Description: "Phone number"},
		{Name: "location", Type: `"string" or null`, Description: "Location"},
		{Name: "summary", Type: `"string" or null`, Description: "Professional summary"},
		{Name: "skills", Type: `["string"]`, Description: "All skills"},
		{Name: "experience", Type: `["string"]`, Description: "Work experience as text entries"},
		{Name: "education", Type: `["string"]`, Description: "Education as text entries"},
		{Name: "total_experience_years", Type: `integer or null`, Description: "Years of experience"},
	},
	jsonSchema: simpleJSONSchema,
}

var richDefinition = Definition{
	Variant: VariantRich,
	fields: []Field{
		{Name: "name", Type: `"string"`, Description: "Full name of the candidate", Required: true},
		{Name: "email", Type: `"string" or null`, Description: "Email address"},
		{Name: "phone", Type: `"string" or null`, Description: "Phone number"},
		{Name: "location", Type: `"string" or null`, Description: "Current location (city, state/country)"},
		{Name: "linkedin", Type: `"string" or null`, Description: "LinkedIn profile URL"},
		{Name: "github", Type: `"string" or null`, Description: "GitHub profile URL"},
		{Name: "portfolio", Type: `"string" or null`, Description: "Personal website or portfolio URL"},
		{Name: "summary", Type: `"string" or null`, Description: "Professional summary or objective statement"},
		{Name: "skills", Type: `["string"]`, Description: "List of all skills"},
		{Name: "technical_skills", Type: `["string"]`, Description: "Technical/hard skills"},
		{Name: "soft_skills", Type: `["string"]`, Description: "Soft skills"},
		{Name: "experience", Type: `[{company, position, location, start_date, end_date, description, achievements}]`, Description: "Work experience entries; end_date is the end date or 'Present'"},
		{Name: "total_experience_years", Type: `integer or null`, Description: "Total years of professional experience"},
		{Name: "education", Type: `[{institution, degree, field_of_study, location, start_date, end_date, gpa, honors}]`, Description: "Education entries"},
		{Name: "highest_education", Type: `"string" or null`, Description: "Highest level of education"},
		{Name: "certifications", Type: `[{name, issuing_organization, issue_date, expiry_date, credential_id}]`, Description: "Professional certifications"},
		{Name: "projects", Type: `[{name, description, technologies, url, date}]`, Description: "Notable projects"},
		{Name: "languages", Type: `["string"]`, Description: "Languages spoken"},
		{Name: "awards", Type: `["string"]`, Description: "Awards and honors"},
		{Name: "publications", Type: `["string"]`, Description: "Publications or papers"},
		{Name: "volunteer_work", Type: `["string"]`, Description: "Volunteer experience"},
	},
	jsonSchema: richJSONSchema,
}

const simpleJSONSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["name"],
  "properties": {
    "name": {"type": "string", "minLength": 1},
    "email": {"type": ["string", "null"]},
    "phone": {"type": ["string", "null"]},
    "location": {"type": ["string", "null"]},
    "summary": {"type": ["string", "null"]},
    "skills": {"type": "array", "items": {"type": "string"}},
    "experience": {"type": "array", "items": {"type": "string"}},
    "education": {"type": "array", "items": {"type": "string"}},
    "total_experience_years": {"type": ["integer", "null"]}
  }
}`

const richJSONSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["name"],
  "properties": {
    "name": {"type": "string", "minLength": 1},
    "email": {"type": ["string", "null"]},
    "phone": {"type": ["string", "null"]},
    "location": {"type": ["string", "null"]},
    "linkedin": {"type": ["string", "null"]},
    "github": {"type": ["string", "null"]},
    "portfolio": {"type": ["string", "null"]},
    "summary": {"type": ["string", "null"]},
    "skills": {"type": "array", "items": {"type": "string"}},
    "technical_skills": {"type": "array", "items": {"type": "string"}},
    "soft_skills": {"type": "array", "items": {"type": "string"}},
    "experience": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["company", "position", "start_date"],
        "properties": {
          "company": {"type": "string"},
          "position": {"type": "string"},
          "location": {"type": ["string", "null"]},
          "start_date": {"type": "string"},
          "end_date": {"type": ["string", "null"]},
          "description": {"type": ["string", "null"]},
          "achievements": {"type": "array", "items": {"type": "string"}}
        }
      }
    },
    "total_experience_years": {"type": ["integer", "null"]},
    "education": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["institution", "degree"],
        "properties": {
          "institution": {"type": "string"},
          "degree": {"type": "string"},
          "field_of_study": {"type": ["string", "null"]},
          "location": {"type": ["string", "null"]},
          "start_date": {"type": ["string", "null"]},
          "end_date": {"type": ["string", "null"]},
          "gpa": {"type": ["string", "null"]},
          "honors": {"type": "array", "items": {"type": "string"}}
        }
      }
    },
    "highest_education": {"type": ["string", "null"]},
    "certifications": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["name"],
        "properties": {
          "name": {"type": "string"},
          "issuing_organization": {"type": ["string", "null"]},
          "issue_date": {"type": ["string", "null"]},
          "expiry_date": {"type": ["string", "null"]},
          "credential_id": {"type": ["string", "null"]}
        }
      }
    },
    "projects": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["name"],
        "properties": {
          "name": {"type": "string"},
          "description": {"type": ["string", "null"]},
          "technologies": {"type": "array", "items": {"type": "string"}},
          "url": {"type": ["string", "null"]},
          "date": {"type": ["string", "null"]}
        }
      }
    },
    "languages": {"type": "array", "items": {"type": "string"}},
    "awards": {"type": "array", "items": {"type": "string"}},
    "publications": {"type": "array", "items": {"type": "string"}},
    "volunteer_work": {"type": "array", "items": {"type": "string"}}
  }
}`
