package generator

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode"

	"darzi-backend/internal/llm"
)

// buildPrompt fills the embedded generation prompt with the request data.
func buildPrompt(generationID string, req Request, template string) string {
	return strings.NewReplacer(
		"{{GENERATION_ID}}", generationID,
		"{{TIMESTAMP}}", time.Now().Format("2006-01-02 15:04:05"),
		"{{RESUME_DATA}}", renderResumeData(req.UserResume),
		"{{EXTRA_SECTIONS}}", renderExtraSections(req),
		"{{TEMPLATE}}", template,
	).Replace(llm.ResumeGenPromptTemplate())
}

// renderResumeData flattens the parsed-resume-shaped map into labelled
// sections for the prompt. Missing fields get explicit NOT_PROVIDED markers
// so the model never invents contact details.
func renderResumeData(data map[string]any) string {
	var b strings.Builder

	contact, _ := data["contact_information"].(map[string]any)
	if len(contact) > 0 || hasAnyKey(data, "name", "email", "phone") {
		b.WriteString("=== CONTACT INFORMATION ===\n")
		fmt.Fprintf(&b, "Full Name: %s\n", stringOr("NO_NAME_PROVIDED", contact["full_name"], data["name"]))
		fmt.Fprintf(&b, "Email: %s\n", stringOr("NO_EMAIL_PROVIDED", contact["email"], data["email"]))
		fmt.Fprintf(&b, "Phone: %s\n", stringOr("NO_PHONE_PROVIDED", contact["phone"], data["phone"], data["mobile_number"]))
		fmt.Fprintf(&b, "Location: %s\n", stringOr("NO_LOCATION_PROVIDED", contact["location"], data["location"]))
		if v := stringOr("", contact["linkedin"], data["linkedin"]); v != "" {
			fmt.Fprintf(&b, "LinkedIn: %s\n", v)
		}
		if v := stringOr("", contact["github"], data["github"]); v != "" {
			fmt.Fprintf(&b, "GitHub: %s\n", v)
		}
		b.WriteString("\n")
	}

	if summary := stringOr("", data["professional_summary"], data["summary"]); summary != "" {
		b.WriteString("=== PROFESSIONAL SUMMARY ===\n")
		b.WriteString(summary)
		b.WriteString("\n\n")
	}

	experience := asMapList(data["work_experience"])
	if len(experience) == 0 {
		experience = asMapList(data["experience"])
	}
	if len(experience) > 0 {
		b.WriteString("=== WORK EXPERIENCE ===\n")
		for i, exp := range experience {
			n := i + 1
			fmt.Fprintf(&b, "JOB %d:\n", n)
			fmt.Fprintf(&b, "  Position: %s\n", stringOr(fmt.Sprintf("Position %d", n), exp["position"], exp["title"]))
			fmt.Fprintf(&b, "  Company: %s\n", stringOr(fmt.Sprintf("Company %d", n), exp["company"]))
			fmt.Fprintf(&b, "  Duration: %s\n", stringOr("Duration not specified", exp["duration"], exp["dates"], exp["employment_dates"]))
			fmt.Fprintf(&b, "  Location: %s\n", stringOr("Location not specified", exp["location"]))
			if desc := asString(exp["description"]); desc != "" {
				fmt.Fprintf(&b, "  Description: %s\n", desc)
			}
			if bullets := firstList(exp["responsibilities"], exp["achievements"], exp["duties"]); len(bullets) > 0 {
				b.WriteString("  Key Responsibilities/Achievements:\n")
				for _, item := range bullets {
					fmt.Fprintf(&b, "    • %s\n", item)
				}
			}
			b.WriteString("\n")
		}
	}

	if education := asMapList(data["education"]); len(education) > 0 {
		b.WriteString("=== EDUCATION ===\n")
		for i, edu := range education {
			n := i + 1
			fmt.Fprintf(&b, "EDUCATION %d:\n", n)
			fmt.Fprintf(&b, "  Degree: %s\n", stringOr(fmt.Sprintf("Degree %d", n), edu["degree"]))
			fmt.Fprintf(&b, "  Institution: %s\n", stringOr(fmt.Sprintf("Institution %d", n), edu["institution"], edu["school"], edu["university"]))
			fmt.Fprintf(&b, "  Field of Study: %s\n", stringOr("Field not specified", edu["field_of_study"], edu["field"], edu["major"]))
			fmt.Fprintf(&b, "  Graduation Year: %s\n", stringOr("Year not specified", edu["graduation_year"], edu["year"], edu["graduation_date"]))
			if gpa := asString(edu["gpa"]); gpa != "" {
				fmt.Fprintf(&b, "  GPA: %s\n", gpa)
			}
			if honors := asString(edu["honors"]); honors != "" {
				fmt.Fprintf(&b, "  Honors: %s\n", honors)
			}
			if details := asString(edu["details"]); details != "" {
				fmt.Fprintf(&b, "  Additional Details: %s\n", details)
			}
			b.WriteString("\n")
		}
	}

	renderSkills(&b, data["skills"])

	if projects := asMapList(data["projects"]); len(projects) > 0 {
		b.WriteString("=== PROJECTS ===\n")
		for i, project := range projects {
			n := i + 1
			fmt.Fprintf(&b, "PROJECT %d: %s\n", n, stringOr(fmt.Sprintf("Project %d", n), project["name"]))
			if desc := asString(project["description"]); desc != "" {
				fmt.Fprintf(&b, "  Description: %s\n", desc)
			}
			if techs := firstList(project["technologies"]); len(techs) > 0 {
				fmt.Fprintf(&b, "  Technologies: %s\n", strings.Join(techs, ", "))
			}
			if url := asString(project["url"]); url != "" {
				fmt.Fprintf(&b, "  URL: %s\n", url)
			}
			b.WriteString("\n")
		}
	}

	if certs := asStringList(data["certifications"]); len(certs) > 0 {
		b.WriteString("=== CERTIFICATIONS ===\n")
		for _, cert := range certs {
			fmt.Fprintf(&b, "• %s\n", cert)
		}
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n")
}

func renderSkills(b *strings.Builder, v any) {
	switch skills := v.(type) {
	case map[string]any:
		if len(skills) == 0 {
			return
		}
		b.WriteString("=== SKILLS ===\n")
		for _, category := range sortedKeys(skills) {
			list := asStringList(skills[category])
			if len(list) == 0 {
				if s := asString(skills[category]); s != "" {
					list = []string{s}
				} else {
					continue
				}
			}
			fmt.Fprintf(b, "%s: %s\n", titleCase(strings.ReplaceAll(category, "_", " ")), strings.Join(list, ", "))
		}
		b.WriteString("\n")
	case []any:
		if list := asStringList(skills); len(list) > 0 {
			fmt.Fprintf(b, "=== SKILLS ===\nSkills: %s\n\n", strings.Join(list, ", "))
		}
	case string:
		if skills != "" {
			fmt.Fprintf(b, "=== SKILLS ===\nSkills: %s\n\n", skills)
		}
	}
}

// renderExtraSections renders the optional additional-info, ATS score and
// suggestion blocks that follow the resume data.
func renderExtraSections(req Request) string {
	var b strings.Builder

	if len(req.ExtraInfo) > 0 {
		b.WriteString("=== ADDITIONAL INFORMATION ===\n")
		for _, key := range sortedKeys(req.ExtraInfo) {
			if v := strings.TrimSpace(req.ExtraInfo[key]); v != "" {
				fmt.Fprintf(&b, "%s: %s\n", titleCase(strings.ReplaceAll(key, "_", " ")), v)
			}
		}
		b.WriteString("\n")
	}

	if req.AtsScore != nil {
		fmt.Fprintf(&b, "=== CURRENT ATS COMPATIBILITY ===\nCurrent ATS Score: %d/100\n\n", *req.AtsScore)
	}

	if len(req.ImprovementSuggestions) > 0 {
		b.WriteString("=== ATS IMPROVEMENT SUGGESTIONS ===\n")
		b.WriteString("Please incorporate these suggestions to improve ATS compatibility:\n")
		for i, suggestion := range req.ImprovementSuggestions {
			fmt.Fprintf(&b, "%d. %s\n", i+1, suggestion)
		}
		b.WriteString("\n")
	}

	return b.String()
}

// asString renders scalars the way the prompt expects. Lists collapse to
// their first non-empty element, which covers parse output where email and
// phone are arrays.
func asString(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case []any:
		for _, item := range t {
			if s := asString(item); s != "" {
				return s
			}
		}
	}
	return ""
}

func stringOr(fallback string, candidates ...any) string {
	for _, c := range candidates {
		if s := asString(c); s != "" {
			return s
		}
	}
	return fallback
}

func asStringList(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s := asString(item); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// firstList returns the first candidate that yields content, wrapping a
// lone string as a single-element list.
func firstList(candidates ...any) []string {
	for _, c := range candidates {
		if list := asStringList(c); len(list) > 0 {
			return list
		}
		if s, ok := c.(string); ok && strings.TrimSpace(s) != "" {
			return []string{strings.TrimSpace(s)}
		}
	}
	return nil
}

func asMapList(v any) []map[string]any {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]map[string]any, 0, len(items))
	for _, item := range items {
		if m, ok := item.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}

func hasAnyKey(m map[string]any, keys ...string) bool {
	for _, k := range keys {
		if _, ok := m[k]; ok {
			return true
		}
	}
	return false
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, word := range words {
		runes := []rune(word)
		runes[0] = unicode.ToUpper(runes[0])
		for j := 1; j < len(runes); j++ {
			runes[j] = unicode.ToLower(runes[j])
		}
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
