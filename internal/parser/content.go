package parser

import (
	"regexp"
	"strings"

	"darzi-backend/internal/resume"
)

// Company captures exclude digits and parens so the date range never bleeds
// into the company name.
var jobPatterns = []*regexp.Regexp{
	// Title at Company (date range)
	regexp.MustCompile(`(?im)([A-Z][^.\n(]{10,60})\s+(?:at|@)\s+([A-Z][^.\n(\d]{2,40})\s*\(?([^)\n]*(?:20\d{2}|19\d{2})[^)\n]*)\)?`),
	// Company - Title (date range)
	regexp.MustCompile(`(?im)([A-Z][^.\n(\d]{2,40})\s*[-\x{2013}\x{2014}]\s*([A-Z][^.\n(]{10,60})\s*\(?([^)\n]*(?:20\d{2}|19\d{2})[^)\n]*)\)?`),
	// Title newline Company (date range)
	regexp.MustCompile(`(?im)([A-Z][^\n(]{10,60})\n\s*([A-Z][^\n(\d]{2,40})\s*\(?([^)\n]*(?:20\d{2}|19\d{2})[^)\n]*)\)?`),
}

var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(\d{1,2}/\d{4})\s*[-\x{2013}\x{2014}]\s*(\d{1,2}/\d{4}|present|current)`),
	regexp.MustCompile(`(?i)(\w+\s+\d{4})\s*[-\x{2013}\x{2014}]\s*(\w+\s+\d{4}|present|current)`),
	regexp.MustCompile(`(?i)(\d{4})\s*[-\x{2013}\x{2014}]\s*(\d{4}|present|current)`),
}

var jobTitleKeywords = []string{
	"engineer", "developer", "manager", "analyst", "consultant",
	"specialist", "lead", "senior", "junior", "intern", "director",
}

var titleLineRe = regexp.MustCompile(`^[A-Z][^.]*$`)

// extractExperience finds title/company/date triples in the experience
// section (or the whole text) and attaches a short description scraped from
// the following lines.
func extractExperience(text string, sections map[string]string) []resume.Experience {
	expText := sectionOr(sections, "experience", text)

	var out []resume.Experience
	for _, re := range jobPatterns {
		for _, loc := range re.FindAllStringSubmatchIndex(expText, -1) {
			field1 := strings.TrimSpace(expText[loc[2]:loc[3]])
			field2 := strings.TrimSpace(expText[loc[4]:loc[5]])
			dateInfo := ""
			if loc[6] >= 0 {
				dateInfo = expText[loc[6]:loc[7]]
			}

			// Titles usually carry a role keyword; otherwise assume the
			// second field is the title.
			title, company := field2, field1
			if containsAnyFold(field1, jobTitleKeywords) {
				title, company = field1, field2
			}

			duration := ""
			for _, dre := range datePatterns {
				if m := dre.FindStringSubmatch(dateInfo); m != nil {
					duration = m[1] + " - " + m[2]
					break
				}
			}

			exp := resume.Experience{Title: title, Company: company, Duration: duration}
			if desc := scrapeDescription(expText, loc[1]); desc != "" {
				exp.Responsibilities = []string{truncate(desc, 200)}
			}
			out = append(out, exp)
		}
	}
	return out
}

// scrapeDescription collects substantial lines right after a match, stopping
// at the next title-looking line.
func scrapeDescription(text string, from int) string {
	window := text[from:]
	if len(window) > 500 {
		window = window[:500]
	}
	var kept []string
	lines := strings.Split(window, "\n")
	if len(lines) > 5 {
		lines = lines[:5]
	}
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" && len(line) > 20 && !titleLineRe.MatchString(line) {
			kept = append(kept, line)
		} else if len(kept) > 0 {
			break
		}
	}
	return strings.Join(kept, " ")
}

var educationPatterns = []*regexp.Regexp{
	// Degree from Institution (year)
	regexp.MustCompile(`(?im)((?:bachelor|master|phd|doctorate|diploma|certificate)[^.\n]{0,60}?)\s+(?:from|at)\s+([A-Za-z][^.\n(]{2,60}?)(?:\s*\(?(\d{4})\)?)?\s*(?:[.\n]|$)`),
	// Institution - Degree (year)
	regexp.MustCompile(`(?im)([^\n]{0,60}?(?:university|college|institute))\s*[-\x{2013}\x{2014}]\s*([^\n(]{2,60}?)(?:\s*\(?(\d{4})\)?)?\s*(?:[.\n]|$)`),
	// Degree, Institution (year)
	regexp.MustCompile(`(?im)((?:bachelor|master|phd|doctorate)[^,\n]{0,60}),\s*([^\n(]{2,60}?)(?:\s*\(?(\d{4})\)?)?\s*(?:[.\n]|$)`),
}

var simpleDegreeRes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(bachelor[^.\n]*?(?:science|arts|engineering|technology))\b`),
	regexp.MustCompile(`(?i)\b(master[^.\n]*?(?:science|arts|engineering|technology|business))\b`),
	regexp.MustCompile(`(?i)\b(ph\.?d\.?)\b`),
	regexp.MustCompile(`(?i)\b(mba)\b`),
}

var (
	degreeKeywords = []string{
		"bachelor", "master", "phd", "doctorate", "diploma", "certificate",
		"b.s", "b.a", "m.s", "m.a", "mba", "b.tech", "m.tech", "b.e", "m.e",
	}
	institutionKeywords = []string{"university", "college", "institute", "school", "academy"}
)

var yearRe = regexp.MustCompile(`^\d{4}$`)

// extractEducation classifies pattern groups into degree, institution and
// year by keyword, then adds bare degree mentions not already captured.
func extractEducation(text string, sections map[string]string) []resume.Education {
	eduText := sectionOr(sections, "education", text)

	var out []resume.Education
	for _, re := range educationPatterns {
		for _, m := range re.FindAllStringSubmatch(eduText, -1) {
			var degree, institution, year string
			for _, group := range m[1:] {
				group = strings.TrimSpace(group)
				if group == "" {
					continue
				}
				switch {
				case yearRe.MatchString(group):
					year = group
				case containsAnyFold(group, degreeKeywords):
					degree = group
				case containsAnyFold(group, institutionKeywords):
					institution = group
				case degree == "" && len(group) < 50:
					degree = group
				case institution == "":
					institution = group
				}
			}
			if degree != "" || institution != "" {
				out = append(out, resume.Education{Degree: degree, Institution: institution, Year: year})
			}
		}
	}

	for _, re := range simpleDegreeRes {
		for _, m := range re.FindAllStringSubmatch(eduText, -1) {
			degree := m[1]
			if !hasDegree(out, degree) {
				out = append(out, resume.Education{Degree: titleWords(degree)})
			}
		}
	}
	return out
}

func hasDegree(entries []resume.Education, degree string) bool {
	for _, e := range entries {
		if strings.EqualFold(e.Degree, degree) {
			return true
		}
	}
	return false
}

var certificationRes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)certified\s+(.+?)(?:\s*[-\x{2013}\x{2014}]\s*|\s*\(|\n|$)`),
	regexp.MustCompile(`(?i)certification\s+in\s+(.+?)(?:\s*[-\x{2013}\x{2014}]\s*|\s*\(|\n|$)`),
	regexp.MustCompile(`(?i)(.+?)\s+certification\b`),
	regexp.MustCompile(`(?i)(.+?)\s+certified\b`),
}

func extractCertifications(text string, sections map[string]string) []string {
	certText := sectionOr(sections, "certifications", text)

	var out []string
	for _, re := range certificationRes {
		for _, m := range re.FindAllStringSubmatch(certText, -1) {
			cert := strings.TrimSpace(m[1])
			if len(cert) > 3 && len(cert) < 100 {
				out = append(out, titleWords(cert))
			}
		}
	}
	return dedupeOrdered(out)
}

var projectRes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)project[:\s]+([^\n]+)`),
	regexp.MustCompile(`\x{2022}\s*([A-Z][^\n\x{2022}]+)`),
	regexp.MustCompile(`-\s*([A-Z][^\n-]+)`),
}

func extractProjects(text string, sections map[string]string) []resume.Project {
	projText := sectionOr(sections, "projects", text)

	var out []resume.Project
	for _, re := range projectRes {
		for _, loc := range re.FindAllStringSubmatchIndex(projText, -1) {
			name := strings.TrimSpace(projText[loc[2]:loc[3]])
			if len(name) <= 10 || len(name) >= 100 {
				continue
			}
			out = append(out, resume.Project{
				Name:        name,
				Description: scrapeProjectDescription(projText, loc[1]),
			})
		}
	}
	return out
}

func scrapeProjectDescription(text string, from int) string {
	window := text[from:]
	if len(window) > 300 {
		window = window[:300]
	}
	var kept []string
	lines := strings.Split(window, "\n")
	if len(lines) > 3 {
		lines = lines[:3]
	}
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" && !strings.HasPrefix(line, "•") && !strings.HasPrefix(line, "-") && !strings.HasPrefix(line, "Project") {
			kept = append(kept, line)
		} else if len(kept) > 0 {
			break
		}
	}
	return strings.Join(kept, " ")
}

var (
	summaryMarkerRe = regexp.MustCompile(`(?i)(?:professional\s+summary|summary|objective|profile)[:\s]+`)
	nextHeaderRe    = regexp.MustCompile(`\n[A-Z][A-Z\s]*:`)
	wsRunRe         = regexp.MustCompile(`\s+`)
	contactLineRe   = regexp.MustCompile(`(?i)@|phone|email|address`)
)

// extractSummary takes the text after a summary/objective marker up to the
// next all-caps header, falling back to the first substantial line.
func extractSummary(text string, sections map[string]string) string {
	summaryText, ok := sections["personal"]
	if !ok {
		summaryText = sections["general"]
	}

	if loc := summaryMarkerRe.FindStringIndex(summaryText); loc != nil {
		rest := summaryText[loc[1]:]
		if end := nextHeaderRe.FindStringIndex(rest); end != nil {
			rest = rest[:end[0]]
		}
		summary := wsRunRe.ReplaceAllString(strings.TrimSpace(rest), " ")
		if summary != "" {
			return truncate(summary, 300)
		}
	}

	for _, line := range strings.Split(summaryText, "\n") {
		line = strings.TrimSpace(line)
		if len(line) > 50 && !contactLineRe.MatchString(line) && !isUpperLine(line) {
			return truncate(line, 300)
		}
	}
	return ""
}

func containsAnyFold(s string, keywords []string) bool {
	lower := strings.ToLower(s)
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
