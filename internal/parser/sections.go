package parser

import (
	"regexp"
	"strings"
	"unicode"
)

// Resume section headers, checked per line against the lowercased and
// de-punctuated text.
var sectionHeaders = map[string][]string{
	"personal": {"contact", "personal information", "profile", "summary", "objective"},
	"experience": {"experience", "work experience", "employment", "professional experience",
		"career history", "work history", "employment history"},
	"education": {"education", "academic background", "qualifications", "academic",
		"educational background", "schooling"},
	"skills": {"skills", "technical skills", "core competencies", "expertise",
		"technologies", "tools", "programming languages", "core skills"},
	"projects":       {"projects", "key projects", "notable projects", "personal projects"},
	"certifications": {"certifications", "certificates", "licenses", "professional certifications"},
	"achievements":   {"achievements", "accomplishments", "awards", "honors", "recognition"},
	"languages":      {"languages", "language skills", "linguistic skills"},
}

var nonWordRe = regexp.MustCompile(`[^\w\s]`)

// detectSections splits the text into named sections keyed by the header
// vocabulary above. Text before the first recognized header lands in
// "general".
func detectSections(text string) map[string]string {
	sections := make(map[string]string)
	current := "general"
	var content []string

	for _, line := range strings.Split(text, "\n") {
		found := headerFor(line)
		if found == "" {
			content = append(content, line)
			continue
		}
		if len(content) > 0 {
			sections[current] = strings.Join(content, "\n")
		}
		current = found
		content = nil
	}
	if len(content) > 0 {
		sections[current] = strings.Join(content, "\n")
	}
	return sections
}

// headerFor reports which section a line starts, or "" when the line is body
// text. Headers are short and either upper-case, title-case or punctuated
// like "Skills:".
func headerFor(line string) string {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || len(trimmed) >= 50 {
		return ""
	}
	normalized := nonWordRe.ReplaceAllString(strings.ToLower(trimmed), "")
	if len(normalized) >= 50 {
		return ""
	}
	looksLikeHeader := isUpperLine(trimmed) || isTitleLine(trimmed) || strings.ContainsAny(line, ":-—•")
	if !looksLikeHeader {
		return ""
	}
	for sectionType, headers := range sectionHeaders {
		for _, header := range headers {
			if strings.Contains(normalized, header) {
				return sectionType
			}
		}
	}
	return ""
}

// sectionOr returns the named section, or the whole text when the section was
// not detected.
func sectionOr(sections map[string]string, name, text string) string {
	if s, ok := sections[name]; ok {
		return s
	}
	return text
}

func isUpperLine(s string) bool {
	hasCased := false
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) {
			hasCased = true
		}
	}
	return hasCased
}

func isTitleLine(s string) bool {
	words := strings.Fields(s)
	if len(words) == 0 {
		return false
	}
	for _, w := range words {
		first := true
		for _, r := range w {
			if !unicode.IsLetter(r) {
				continue
			}
			if first {
				if !unicode.IsUpper(r) {
					return false
				}
				first = false
			} else if unicode.IsUpper(r) {
				return false
			}
		}
	}
	return true
}
