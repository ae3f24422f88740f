// Package parser implements the rule-based local resume parser. It never
// calls out to a network service and never fails: any input yields a
// ParsedResume, possibly empty with a near-zero confidence score.
package parser

import (
	"regexp"
	"strings"

	"darzi-backend/internal/resume"
)

const rawTextLimit = 500

// Service is the local rule-based parser. It holds no per-call state and is
// safe for concurrent use.
type Service struct{}

// Parse extracts structured resume fields from plain text.
func (s *Service) Parse(text string) resume.ParsedResume {
	text = cleanText(text)
	sections := detectSections(text)

	rec := resume.ParsedResume{
		Name:           extractName(text),
		Email:          extractEmails(text),
		MobileNumber:   extractPhones(text),
		Links:          extractLinks(text),
		Skills:         extractSkills(text, sections),
		Experience:     extractExperience(text, sections),
		Education:      extractEducation(text, sections),
		Summary:        extractSummary(text, sections),
		Certifications: extractCertifications(text, sections),
		Projects:       extractProjects(text, sections),
		RawText:        truncate(text, rawTextLimit),
		ParsingSource:  resume.SourceLocal,
	}
	rec.ConfidenceScore = confidenceScore(rec)
	rec.Normalize()
	return rec
}

// confidenceScore weights the presence of extracted fields: contact details
// and skills count 0.2 each, experience and education 0.1 each.
func confidenceScore(rec resume.ParsedResume) float64 {
	score := 0.0
	if len(rec.Email) > 0 {
		score += 0.2
	}
	if len(rec.MobileNumber) > 0 {
		score += 0.2
	}
	if rec.Name != "" {
		score += 0.2
	}
	if len(rec.Skills) > 0 {
		score += 0.2
	}
	if len(rec.Experience) > 0 {
		score += 0.1
	}
	if len(rec.Education) > 0 {
		score += 0.1
	}
	return resume.Clamp01(score)
}

var (
	crlfRe        = regexp.MustCompile(`\r\n?`)
	spaceRunRe    = regexp.MustCompile(`[ \t]+`)
	blankLinesRe  = regexp.MustCompile(`\n{3,}`)
	trailingWSRe  = regexp.MustCompile(`[ \t]+\n`)
)

// cleanText normalizes whitespace while keeping line structure, which the
// section and name heuristics depend on.
func cleanText(text string) string {
	text = crlfRe.ReplaceAllString(text, "\n")
	text = spaceRunRe.ReplaceAllString(text, " ")
	text = trailingWSRe.ReplaceAllString(text, "\n")
	text = blankLinesRe.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

func truncate(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + "..."
}

func dedupeOrdered(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		key := strings.ToLower(s)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, s)
	}
	return out
}
