package llm

import (
	"sort"
	"strconv"
	"strings"

	"darzi-backend/internal/resume"
)

// Section name aliases the extraction prompt tends to produce. The model
// is free to invent section names; these cover the ones seen in practice.
var (
	contactSections = []string{
		"contact_information", "personal_details", "personal_info",
		"contact_details", "personal", "contact", "header_info",
	}
	experienceSections = []string{
		"work_experience", "professional_experience", "employment_history",
		"experience", "career_history", "employment", "work_history",
		"professional_background", "job_history",
	}
	educationSections = []string{
		"education", "academic_background", "educational_background",
		"academic_history", "schooling", "qualifications",
	}
	skillSections = []string{
		"skills", "technical_skills", "core_competencies", "expertise",
		"proficiencies", "capabilities", "competencies",
	}
	skillCategoryKeys = []string{
		"programming_languages", "frameworks", "libraries", "databases",
		"cloud_platforms", "tools", "software", "technologies",
		"languages", "soft_skills",
	}
	projectSections = []string{
		"projects", "portfolio", "personal_projects", "side_projects",
		"notable_projects", "key_projects", "project_experience",
	}
	summarySections = []string{
		"professional_summary", "summary", "objective", "profile",
		"career_objective", "professional_profile", "overview",
		"about", "introduction", "bio",
	}
	certificationSections = []string{"certifications", "licenses", "credentials"}
)

// resumeFromDynamic maps the model's free-form JSON onto the fixed
// resume schema. Unknown sections are ignored rather than failing the
// parse.
func resumeFromDynamic(data map[string]any) resume.ParsedResume {
	var out resume.ParsedResume

	contact := contactInfo(data)
	out.Name = stringField(contact, "full_name", "name", "candidate_name")
	out.Email = stringList(anyField(contact, "email", "email_address"))
	out.MobileNumber = stringList(anyField(contact, "phone", "phone_number", "mobile", "telephone", "contact_number"))
	out.Location = stringField(contact, "location", "address", "city", "residence")
	for _, key := range []string{"linkedin", "linkedin_url", "github", "github_url", "portfolio", "website"} {
		if link := stringOf(contact[key]); link != "" {
			out.Links = append(out.Links, link)
		}
	}

	out.Summary = firstString(data, summarySections)
	out.Skills = collectSkills(data)
	out.Experience = collectExperience(data)
	out.Education = collectEducation(data)
	out.Certifications = collectCertifications(data)
	out.Projects = collectProjects(data)
	return out
}

// contactInfo merges the first contact-like section with top-level
// contact fields, top-level winning on key collisions.
func contactInfo(data map[string]any) map[string]any {
	contact := map[string]any{}
	for _, name := range contactSections {
		if section, ok := data[name].(map[string]any); ok {
			for k, v := range section {
				contact[k] = v
			}
			break
		}
	}
	for _, key := range []string{"name", "email", "phone", "location", "address"} {
		if v, ok := data[key]; ok {
			contact[key] = v
		}
	}
	return contact
}

func collectExperience(data map[string]any) []resume.Experience {
	section, ok := firstSection(data, experienceSections)
	if !ok {
		return nil
	}
	var out []resume.Experience
	for _, item := range mapList(section) {
		exp := resume.Experience{
			Title:            stringField(item, "position", "title", "role", "job_title", "designation"),
			Company:          stringField(item, "company", "employer", "organization", "firm"),
			Duration:         stringField(item, "duration", "dates", "period"),
			Responsibilities: stringList(anyField(item, "responsibilities", "duties", "description")),
			Achievements:     stringList(item["achievements"]),
		}
		if exp.Duration == "" {
			exp.Duration = joinDates(stringField(item, "start_date"), stringField(item, "end_date"))
		}
		if exp.Title != "" || exp.Company != "" {
			out = append(out, exp)
		}
	}
	return out
}

func collectEducation(data map[string]any) []resume.Education {
	section, ok := firstSection(data, educationSections)
	if !ok {
		return nil
	}
	var out []resume.Education
	for _, item := range mapList(section) {
		edu := resume.Education{
			Degree:      stringField(item, "degree", "qualification", "program"),
			Institution: stringField(item, "institution", "school", "university", "college"),
			Year:        stringField(item, "graduation_year", "year", "dates", "period"),
		}
		if field := stringField(item, "field", "field_of_study", "major", "specialization", "subject"); field != "" {
			if edu.Degree != "" {
				edu.Degree += " in " + field
			} else {
				edu.Degree = field
			}
		}
		if edu.Degree != "" || edu.Institution != "" {
			out = append(out, edu)
		}
	}
	return out
}

func collectSkills(data map[string]any) []string {
	var out []string
	for _, name := range skillSections {
		section, ok := data[name]
		if !ok {
			continue
		}
		if categorized, ok := section.(map[string]any); ok {
			for _, category := range sortedKeys(categorized) {
				out = append(out, stringList(categorized[category])...)
			}
			continue
		}
		out = append(out, stringList(section)...)
	}
	for _, key := range skillCategoryKeys {
		if v, ok := data[key]; ok {
			out = append(out, stringList(v)...)
		}
	}
	return dedupeFold(out)
}

func collectCertifications(data map[string]any) []string {
	section, ok := firstSection(data, certificationSections)
	if !ok {
		return nil
	}
	items, isList := section.([]any)
	if !isList {
		return dedupeFold(stringList(section))
	}
	var out []string
	for _, item := range items {
		if cert, ok := item.(map[string]any); ok {
			if name := stringField(cert, "name", "title", "certification"); name != "" {
				out = append(out, name)
			}
			continue
		}
		if s := stringOf(item); s != "" {
			out = append(out, s)
		}
	}
	return dedupeFold(out)
}

func collectProjects(data map[string]any) []resume.Project {
	section, ok := firstSection(data, projectSections)
	if !ok {
		return nil
	}
	var out []resume.Project
	for _, item := range mapList(section) {
		p := resume.Project{
			Name:         stringField(item, "name", "title", "project_name"),
			Description:  stringField(item, "description", "summary", "details"),
			Technologies: stringList(anyField(item, "technologies", "technologies_used", "tech_stack", "tools")),
		}
		if p.Name != "" || p.Description != "" {
			out = append(out, p)
		}
	}
	return out
}

func firstSection(data map[string]any, names []string) (any, bool) {
	for _, name := range names {
		if v, ok := data[name]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

func firstString(data map[string]any, names []string) string {
	for _, name := range names {
		if s := stringOf(data[name]); s != "" {
			return s
		}
	}
	return ""
}

func anyField(m map[string]any, keys ...string) any {
	for _, key := range keys {
		if v, ok := m[key]; ok && v != nil {
			return v
		}
	}
	return nil
}

func stringField(m map[string]any, keys ...string) string {
	for _, key := range keys {
		if s := stringOf(m[key]); s != "" {
			return s
		}
	}
	return ""
}

// stringOf renders scalar JSON values as strings. Numbers show up for
// fields like graduation years.
func stringOf(v any) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return ""
	}
}

func stringList(v any) []string {
	items, ok := v.([]any)
	if !ok {
		if s := stringOf(v); s != "" {
			return []string{s}
		}
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s := stringOf(item); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func mapList(v any) []map[string]any {
	switch val := v.(type) {
	case []any:
		out := make([]map[string]any, 0, len(val))
		for _, item := range val {
			if m, ok := item.(map[string]any); ok {
				out = append(out, m)
			}
		}
		return out
	case map[string]any:
		return []map[string]any{val}
	default:
		return nil
	}
}

func joinDates(start, end string) string {
	switch {
	case start != "" && end != "":
		return start + " - " + end
	case start != "":
		return start
	default:
		return end
	}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// dedupeFold removes case-insensitive duplicates keeping first-seen order.
func dedupeFold(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	var out []string
	for _, item := range items {
		item = strings.TrimSpace(item)
		key := strings.ToLower(item)
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, item)
	}
	return out
}
