package schema

// WorkExperience is one employment entry in the rich schema.
type WorkExperience struct {
	Company      string   `json:"company"`
	Position     string   `json:"position"`
	Location     *string  `json:"location"`
	StartDate    string   `json:"start_date"`
	EndDate      string   `json:"end_date"`
	Description  *string  `json:"description"`
	Achievements []string `json:"achievements"`
}

// Education is one education entry in the rich schema.
type Education struct {
	Institution  string   `json:"institution"`
	Degree       string   `json:"degree"`
	FieldOfStudy *string  `json:"field_of_study"`
	Location     *string  `json:"location"`
	StartDate    *string  `json:"start_date"`
	EndDate      *string  `json:"end_date"`
	GPA          *string  `json:"gpa"`
	Honors       []string `json:"honors"`
}

// Certification is a professional certification entry.
type Certification struct {
	Name                string  `json:"name"`
	IssuingOrganization *string `json:"issuing_organization"`
	IssueDate           *string `json:"issue_date"`
	ExpiryDate          *string `json:"expiry_date"`
	CredentialID        *string `json:"credential_id"`
}

// Project is a personal or professional project entry.
type Project struct {
	Name         string   `json:"name"`
	Description  *string  `json:"description"`
	Technologies []string `json:"technologies"`
	URL          *string  `json:"url"`
	Date         *string  `json:"date"`
}

// RichResume is the full structured extraction shape.
type RichResume struct {
	Name      string  `json:"name"`
	Email     *string `json:"email"`
	Phone     *string `json:"phone"`
	Location  *string `json:"location"`
	LinkedIn  *string `json:"linkedin"`
	GitHub    *string `json:"github"`
	Portfolio *string `json:"portfolio"`

	Summary *string `json:"summary"`

	Skills          []string `json:"skills"`
	TechnicalSkills []string `json:"technical_skills"`
	SoftSkills      []string `json:"soft_skills"`

	Experience           []WorkExperience `json:"experience"`
	TotalExperienceYears *int             `json:"total_experience_years"`

	Education        []Education `json:"education"`
	HighestEducation *string     `json:"highest_education"`

	Certifications []Certification `json:"certifications"`
	Projects       []Project       `json:"projects"`
	Languages      []string        `json:"languages"`
	Awards         []string        `json:"awards"`
	Publications   []string        `json:"publications"`
	VolunteerWork  []string        `json:"volunteer_work"`
}

// SimpleResume is the cheaper flat extraction shape. Experience and
// education entries are free-text lines rather than structured objects.
type SimpleResume struct {
	Name     string  `json:"name"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	Location *string `json:"location"`
	Summary  *string `json:"summary"`

	Skills     []string `json:"skills"`
	Experience []string `json:"experience"`
	Education  []string `json:"education"`

	TotalExperienceYears *int `json:"total_experience_years"`
}

// ParsedResume is the variant-tagged result of a schema parse. Exactly one
// of Rich or Simple is set, matching Variant.
type ParsedResume struct {
	Variant Variant       `json:"variant"`
	Rich    *RichResume   `json:"rich,omitempty"`
	Simple  *SimpleResume `json:"simple,omitempty"`
}

// Name returns the extracted candidate name.
func (p *ParsedResume) Name() string {
	if p.Rich != nil {
		return p.Rich.Name
	}
	if p.Simple != nil {
		return p.Simple.Name
	}
	return ""
}

// Skills returns the flat skill list, never nil.
func (p *ParsedResume) Skills() []string {
	var skills []string
	switch {
	case p.Rich != nil:
		skills = p.Rich.Skills
	case p.Simple != nil:
		skills = p.Simple.Skills
	}
	if skills == nil {
		return []string{}
	}
	return skills
}

// TotalExperienceYears returns the extracted experience estimate, or 0 when
// the model reported none.
func (p *ParsedResume) TotalExperienceYears() int {
	var years *int
	switch {
	case p.Rich != nil:
		years = p.Rich.TotalExperienceYears
	case p.Simple != nil:
		years = p.Simple.TotalExperienceYears
	}
	if years == nil {
		return 0
	}
	return *years
}

// EducationLevel derives the stored education label: the first free-text
// entry for the simple variant, the model's highest-education summary for
// the rich one. Returns empty when no education was extracted.
func (p *ParsedResume) EducationLevel() string {
	switch {
	case p.Simple != nil && len(p.Simple.Education) > 0:
		return p.Simple.Education[0]
	case p.Rich != nil && p.Rich.HighestEducation != nil && *p.Rich.HighestEducation != "":
		return *p.Rich.HighestEducation
	case p.Rich != nil && len(p.Rich.Education) > 0:
		return "Not specified"
	}
	return ""
}

// Payload returns the variant's inner value for persistence as the parsed
// payload.
func (p *ParsedResume) Payload() any {
	if p.Rich != nil {
		return p.Rich
	}
	if p.Simple != nil {
		return p.Simple
	}
	return map[string]any{}
}
