package observability

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/job-board/internal/jobimport"
	"github.com/jonathan/job-board/internal/schema"
)

func TestPrintParsedResume(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	years := 7
	parsed := &schema.ParsedResume{
		Variant: schema.VariantSimple,
		Simple: &schema.SimpleResume{
			Name:                 "Ada Lovelace",
			Skills:               []string{"Go", "PostgreSQL", "Docker"},
			Education:            []string{"MSc Mathematics"},
			TotalExperienceYears: &years,
		},
	}

	p.PrintParsedResume(parsed)
	output := buf.String()

	assert.Contains(t, output, "Parsed Resume")
	assert.Contains(t, output, "Ada Lovelace")
	assert.Contains(t, output, "7 years")
	assert.Contains(t, output, "MSc Mathematics")
	assert.Contains(t, output, "Go")
	assert.Contains(t, output, "Skills (3)")
}

func TestPrintParsedResume_Nil(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintParsedResume(nil)

	assert.Empty(t, buf.String())
}

func TestPrintParsedResume_TruncatesLongSkillLists(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	parsed := &schema.ParsedResume{
		Variant: schema.VariantSimple,
		Simple: &schema.SimpleResume{
			Name:   "Ada Lovelace",
			Skills: []string{"Go", "PostgreSQL", "Docker", "Kubernetes", "Terraform", "Redis", "Kafka"},
		},
	}

	p.PrintParsedResume(parsed)
	output := buf.String()

	assert.Contains(t, output, "Skills (7)")
	assert.Contains(t, output, "and 2 more")
	assert.NotContains(t, output, "Kafka")
}

func TestPrintJobDraft(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	draft := &jobimport.Draft{
		Title:            "Platform Engineer",
		Company:          "Initech",
		Location:         "Berlin",
		JobType:          "full-time",
		WorkMode:         "remote",
		Platform:         "greenhouse",
		RequiredSkills:   []string{"Go", "Kubernetes"},
		NiceToHaveSkills: []string{"Rust"},
	}

	p.PrintJobDraft(draft)
	output := buf.String()

	assert.Contains(t, output, "Imported Job Posting")
	assert.Contains(t, output, "Initech")
	assert.Contains(t, output, "Platform Engineer")
	assert.Contains(t, output, "greenhouse")
	assert.Contains(t, output, "Rust")
}

func TestPrintJobDraft_Nil(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintJobDraft(nil)

	assert.Empty(t, buf.String())
}
