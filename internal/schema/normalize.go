package schema

import "strings"

// CleanSkills trims entries, drops empties, and removes case-insensitive
// duplicates while preserving first-seen order and casing.
func CleanSkills(skills []string) []string {
	seen := make(map[string]bool, len(skills))
	cleaned := make([]string, 0, len(skills))
	for _, skill := range skills {
		trimmed := strings.TrimSpace(skill)
		if trimmed == "" {
			continue
		}
		key := strings.ToLower(trimmed)
		if seen[key] {
			continue
		}
		seen[key] = true
		cleaned = append(cleaned, trimmed)
	}
	return cleaned
}

// cleanPhone strips every non-digit character. Nil stays nil.
func cleanPhone(phone *string) *string {
	if phone == nil {
		return nil
	}
	var sb strings.Builder
	for _, r := range *phone {
		if r >= '0' && r <= '9' {
			sb.WriteRune(r)
		}
	}
	digits := sb.String()
	return &digits
}

func normalizeSimple(r *SimpleResume) {
	r.Phone = cleanPhone(r.Phone)
	r.Skills = CleanSkills(r.Skills)
	if r.Experience == nil {
		r.Experience = []string{}
	}
	if r.Education == nil {
		r.Education = []string{}
	}
}

func normalizeRich(r *RichResume) {
	r.Phone = cleanPhone(r.Phone)
	r.Skills = CleanSkills(r.Skills)
	r.TechnicalSkills = CleanSkills(r.TechnicalSkills)
	r.SoftSkills = CleanSkills(r.SoftSkills)

	for i := range r.Experience {
		exp := &r.Experience[i]
		if strings.TrimSpace(exp.EndDate) == "" {
			exp.EndDate = "Present"
		}
		if exp.Achievements == nil {
			exp.Achievements = []string{}
		}
	}
	if r.Experience == nil {
		r.Experience = []WorkExperience{}
	}

	for i := range r.Education {
		if r.Education[i].Honors == nil {
			r.Education[i].Honors = []string{}
		}
	}
	if r.Education == nil {
		r.Education = []Education{}
	}

	for i := range r.Projects {
		if r.Projects[i].Technologies == nil {
			r.Projects[i].Technologies = []string{}
		}
	}
	if r.Certifications == nil {
		r.Certifications = []Certification{}
	}
	if r.Projects == nil {
		r.Projects = []Project{}
	}
	if r.Languages == nil {
		r.Languages = []string{}
	}
	if r.Awards == nil {
		r.Awards = []string{}
	}
	if r.Publications == nil {
		r.Publications = []string{}
	}
	if r.VolunteerWork == nil {
		r.VolunteerWork = []string{}
	}
}
