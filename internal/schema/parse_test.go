package schema

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Simple(t *testing.T) {
	raw := `{
		"name": "Jane Doe",
		"email": "jane@example.com",
		"phone": "+1 (555) 123-4567",
		"skills": ["Python", "python", " SQL ", ""],
		"experience": ["Acme Corp - Engineer (2020-2023)"],
		"education": ["BSc Computer Science, State University"],
		"total_experience_years": 3
	}`

	parsed, err := Get(VariantSimple).Parse(raw)
	require.NoError(t, err)
	require.NotNil(t, parsed.Simple)
	assert.Nil(t, parsed.Rich)

	assert.Equal(t, VariantSimple, parsed.Variant)
	assert.Equal(t, "Jane Doe", parsed.Name())
	assert.Equal(t, []string{"Python", "SQL"}, parsed.Skills())
	assert.Equal(t, 3, parsed.TotalExperienceYears())
	assert.Equal(t, "BSc Computer Science, State University", parsed.EducationLevel())

	require.NotNil(t, parsed.Simple.Phone)
	assert.Equal(t, "15551234567", *parsed.Simple.Phone)
}

func TestParse_Simple_ListsNeverNil(t *testing.T) {
	parsed, err := Get(VariantSimple).Parse(`{"name": "Jane Doe"}`)
	require.NoError(t, err)

	assert.NotNil(t, parsed.Simple.Skills)
	assert.NotNil(t, parsed.Simple.Experience)
	assert.NotNil(t, parsed.Simple.Education)
	assert.Empty(t, parsed.Skills())
	assert.Equal(t, 0, parsed.TotalExperienceYears())
	assert.Equal(t, "", parsed.EducationLevel())
}

func TestParse_Rich_EndDateDefaultsToPresent(t *testing.T) {
	raw := `{
		"name": "John Smith",
		"experience": [
			{"company": "Acme", "position": "Engineer", "start_date": "Jan 2021"},
			{"company": "Globex", "position": "Analyst", "start_date": "2018", "end_date": "2020"}
		]
	}`

	parsed, err := Get(VariantRich).Parse(raw)
	require.NoError(t, err)
	require.Len(t, parsed.Rich.Experience, 2)

	assert.Equal(t, "Present", parsed.Rich.Experience[0].EndDate)
	assert.Equal(t, "2020", parsed.Rich.Experience[1].EndDate)
	assert.NotNil(t, parsed.Rich.Experience[0].Achievements)
}

func TestParse_Rich_SkillListsDeduplicated(t *testing.T) {
	raw := `{
		"name": "John Smith",
		"skills": ["Go", "go", "Kubernetes"],
		"technical_skills": ["Go", "Terraform", "terraform"],
		"soft_skills": ["Communication", " communication "]
	}`

	parsed, err := Get(VariantRich).Parse(raw)
	require.NoError(t, err)

	assert.Equal(t, []string{"Go", "Kubernetes"}, parsed.Rich.Skills)
	assert.Equal(t, []string{"Go", "Terraform"}, parsed.Rich.TechnicalSkills)
	assert.Equal(t, []string{"Communication"}, parsed.Rich.SoftSkills)
}

func TestParse_Rich_EducationLevelFallback(t *testing.T) {
	raw := `{
		"name": "John Smith",
		"education": [{"institution": "MIT", "degree": "BSc"}]
	}`

	parsed, err := Get(VariantRich).Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "Not specified", parsed.EducationLevel())
}

func TestParse_InvalidJSON(t *testing.T) {
	_, err := Get(VariantSimple).Parse("this is not json {")
	require.Error(t, err)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, VariantSimple, valErr.Variant)
	assert.Contains(t, valErr.Excerpt, "this is not json")
}

func TestParse_MissingRequiredName(t *testing.T) {
	_, err := Get(VariantSimple).Parse(`{"skills": ["Go"]}`)
	require.Error(t, err)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Contains(t, valErr.Message, "name")
}

func TestParse_ExcerptTruncated(t *testing.T) {
	long := "{" + strings.Repeat("x", 2000)
	_, err := Get(VariantSimple).Parse(long)
	require.Error(t, err)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.LessOrEqual(t, len(valErr.Excerpt), 500)
}

func TestParse_EmptyResponse(t *testing.T) {
	for _, raw := range []string{"", "   ", "\n\t"} {
		_, err := Get(VariantSimple).Parse(raw)
		var valErr *ValidationError
		require.ErrorAs(t, err, &valErr)
	}
}

func TestParse_WrongTypeForSkills(t *testing.T) {
	_, err := Get(VariantSimple).Parse(`{"name": "Jane", "skills": "Go, SQL"}`)
	require.Error(t, err)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Contains(t, valErr.Message, "skills")
}
