// Package jobimport turns a job posting URL into a draft posting. It fetches
// the page, reduces it to text, and extracts structured fields with the LLM.
package jobimport

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jonathan/job-board/internal/fetch"
	"github.com/jonathan/job-board/internal/llm"
	"github.com/jonathan/job-board/internal/schema"
)

// Draft is the structured extraction from a posting page. It maps onto a job
// record but stays unpersisted until the recruiter reviews it.
type Draft struct {
	Title            string   `json:"title"`
	Company          string   `json:"company"`
	Location         string   `json:"location"`
	JobType          string   `json:"job_type"`
	WorkMode         string   `json:"work_mode"`
	ExperienceLevel  string   `json:"experience_level"`
	SalaryMin        *float64 `json:"salary_min"`
	SalaryMax        *float64 `json:"salary_max"`
	RequiredSkills   []string `json:"required_skills"`
	NiceToHaveSkills []string `json:"nice_to_have_skills"`
	Description      string   `json:"description"`
	Requirements     string   `json:"requirements"`

	SourceURL string `json:"source_url"`
	Platform  string `json:"platform"`
}

// ImportError represents a failure to import a posting from a URL.
type ImportError struct {
	URL     string
	Message string
	Cause   error
}

func (e *ImportError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("job import failed for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("job import failed for %s: %s", e.URL, e.Message)
}

func (e *ImportError) Unwrap() error {
	return e.Cause
}

// Importer fetches posting pages and extracts draft postings.
type Importer struct {
	client     llm.Client
	options    *fetch.Options
	useBrowser bool
}

// NewImporter creates an Importer. When useBrowser is true, pages with too
// little static content are re-rendered in a headless browser.
func NewImporter(client llm.Client, useBrowser bool) *Importer {
	return &Importer{
		client:     client,
		options:    fetch.DefaultOptions(),
		useBrowser: useBrowser,
	}
}

// Import fetches the posting at urlStr and extracts a draft.
func (i *Importer) Import(ctx context.Context, urlStr string) (*Draft, error) {
	platform := fetch.DetectPlatform(urlStr)

	result, err := fetch.URL(ctx, urlStr, i.options)
	if err != nil {
		return nil, &ImportError{URL: urlStr, Message: "fetch failed", Cause: err}
	}

	contentSelectors := fetch.PlatformContentSelectors(platform)
	noiseSelectors := fetch.PlatformNoiseSelectors(platform)

	text, err := fetch.ExtractMainText(result.HTML, contentSelectors, noiseSelectors...)
	if err != nil {
		return nil, &ImportError{URL: urlStr, Message: "content extraction failed", Cause: err}
	}

	if i.useBrowser && fetch.ShouldUseBrowser(text) {
		if html, browserErr := fetch.BrowserSimple(ctx, urlStr); browserErr == nil {
			if rendered, extractErr := fetch.ExtractMainText(html, contentSelectors, noiseSelectors...); extractErr == nil {
				text = rendered
			}
		}
		// The static HTTP content stands in when rendering fails.
	}

	text = CleanText(text)
	if text == "" {
		return nil, &ImportError{URL: urlStr, Message: "no text content found"}
	}

	draft, err := i.extract(ctx, text)
	if err != nil {
		return nil, &ImportError{URL: urlStr, Message: "structured extraction failed", Cause: err}
	}

	draft.SourceURL = urlStr
	draft.Platform = string(platform)
	return draft, nil
}

// extract asks the model for structured posting fields and normalizes them.
func (i *Importer) extract(ctx context.Context, text string) (*Draft, error) {
	raw, err := i.client.GenerateJSON(ctx, importRules, buildImportPrompt(text))
	if err != nil {
		return nil, err
	}
	raw = llm.CleanJSONBlock(raw)

	var draft Draft
	if err := json.Unmarshal([]byte(raw), &draft); err != nil {
		return nil, fmt.Errorf("failed to unmarshal posting JSON: %w", err)
	}

	if strings.TrimSpace(draft.Title) == "" {
		return nil, fmt.Errorf("posting has no title")
	}

	draft.Title = strings.TrimSpace(draft.Title)
	draft.Company = strings.TrimSpace(draft.Company)
	draft.Location = strings.TrimSpace(draft.Location)
	draft.JobType = normalizeEnum(draft.JobType, jobTypes)
	draft.WorkMode = normalizeEnum(draft.WorkMode, workModes)
	draft.ExperienceLevel = normalizeEnum(draft.ExperienceLevel, experienceLevels)
	draft.RequiredSkills = schema.CleanSkills(draft.RequiredSkills)
	draft.NiceToHaveSkills = schema.CleanSkills(draft.NiceToHaveSkills)

	return &draft, nil
}

var (
	jobTypes         = []string{"full-time", "part-time", "contract", "internship", "freelance"}
	workModes        = []string{"remote", "onsite", "hybrid"}
	experienceLevels = []string{"entry", "junior", "mid", "senior", "lead", "executive"}
)

// normalizeEnum lowercases the value and drops it when it is not one of the
// allowed labels.
func normalizeEnum(value string, allowed []string) string {
	value = strings.ToLower(strings.TrimSpace(value))
	for _, a := range allowed {
		if value == a {
			return value
		}
	}
	return ""
}

// importRules is the fixed system turn for posting extraction.
const importRules = `You are an expert at reading job postings. Extract the posting's fields from the text you are given.

Rules:
1. Output ONLY the JSON object, no other text.
2. Do not invent information that is not in the posting. Use null for missing scalars and [] for missing lists.
3. job_type is one of: full-time, part-time, contract, internship, freelance.
4. work_mode is one of: remote, onsite, hybrid.
5. experience_level is one of: entry, junior, mid, senior, lead, executive.
6. required_skills lists concrete skills the posting requires; nice_to_have_skills lists optional ones.
7. salary_min and salary_max are yearly amounts as numbers, without currency symbols.
8. description is the posting's own description text, requirements is its requirements text, both preserved close to verbatim.`

// buildImportPrompt assembles the user turn of the extraction prompt for one
// posting. The rules travel separately as the system instruction.
func buildImportPrompt(text string) string {
	var sb strings.Builder
	sb.WriteString("Return ONLY valid JSON matching this exact structure:\n")
	sb.WriteString(`{
  "title": "string",
  "company": "string",
  "location": "string",
  "job_type": "string or null",
  "work_mode": "string or null",
  "experience_level": "string or null",
  "salary_min": 0,
  "salary_max": 0,
  "required_skills": ["string"],
  "nice_to_have_skills": ["string"],
  "description": "string",
  "requirements": "string"
}`)
	sb.WriteString("\n\nJob posting text:\n")
	sb.WriteString(text)
	return sb.String()
}
