// Package hybrid orchestrates the local rule-based parser and the LLM
// parser, merging both outputs into a single resume record when the LLM
// branch succeeds and degrading to the local result when it does not.
package hybrid

import (
	"strings"

	"darzi-backend/internal/resume"
)

// Merge combines a local and an LLM parse of the same input. LLM values win
// scalars, list entries keep LLM-first order with local-only remainders
// appended, and raw_text always comes from the local pass. Confidence is the
// 0.4/0.6 weighted combination of the two source scores.
func Merge(local, llm resume.ParsedResume) resume.ParsedResume {
	merged := resume.ParsedResume{
		Name:            firstNonEmpty(llm.Name, local.Name),
		Email:           unionExact(llm.Email, local.Email),
		MobileNumber:    unionExact(llm.MobileNumber, local.MobileNumber),
		Location:        firstNonEmpty(llm.Location, local.Location),
		Links:           unionExact(llm.Links, local.Links),
		Summary:         firstNonEmpty(llm.Summary, local.Summary),
		Skills:          unionFold(llm.Skills, local.Skills),
		Experience:      unionExperience(llm.Experience, local.Experience),
		Education:       unionEducation(llm.Education, local.Education),
		Certifications:  unionFold(llm.Certifications, local.Certifications),
		Projects:        unionProjects(llm.Projects, local.Projects),
		RawText:         local.RawText,
		ParsingSource:   resume.SourceHybrid,
		ConfidenceScore: resume.Clamp01(0.4*local.ConfidenceScore + 0.6*llm.ConfidenceScore),
	}
	merged.Normalize()
	return merged
}

func firstNonEmpty(primary, fallback string) string {
	if strings.TrimSpace(primary) != "" {
		return primary
	}
	return fallback
}

// unionExact deduplicates by exact string match. Emails, phone numbers and
// links are identifiers where case can be significant.
func unionExact(primary, secondary []string) []string {
	return unionBy(primary, secondary, func(s string) string { return s })
}

// unionFold deduplicates case-insensitively, keeping the first-seen casing.
func unionFold(primary, secondary []string) []string {
	return unionBy(primary, secondary, strings.ToLower)
}

func unionBy(primary, secondary []string, key func(string) string) []string {
	out := make([]string, 0, len(primary)+len(secondary))
	seen := make(map[string]struct{}, len(primary)+len(secondary))
	for _, list := range [][]string{primary, secondary} {
		for _, v := range list {
			v = strings.TrimSpace(v)
			if v == "" {
				continue
			}
			k := key(v)
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			out = append(out, v)
		}
	}
	return out
}

func unionExperience(primary, secondary []resume.Experience) []resume.Experience {
	out := make([]resume.Experience, 0, len(primary)+len(secondary))
	seen := make(map[string]struct{}, len(primary)+len(secondary))
	for _, list := range [][]resume.Experience{primary, secondary} {
		for _, e := range list {
			k := pairKey(e.Title, e.Company)
			if k == "" {
				continue
			}
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			out = append(out, e)
		}
	}
	return out
}

func unionEducation(primary, secondary []resume.Education) []resume.Education {
	out := make([]resume.Education, 0, len(primary)+len(secondary))
	seen := make(map[string]struct{}, len(primary)+len(secondary))
	for _, list := range [][]resume.Education{primary, secondary} {
		for _, e := range list {
			k := pairKey(e.Degree, e.Institution)
			if k == "" {
				continue
			}
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			out = append(out, e)
		}
	}
	return out
}

func unionProjects(primary, secondary []resume.Project) []resume.Project {
	out := make([]resume.Project, 0, len(primary)+len(secondary))
	seen := make(map[string]struct{}, len(primary)+len(secondary))
	for _, list := range [][]resume.Project{primary, secondary} {
		for _, p := range list {
			k := strings.ToLower(strings.TrimSpace(p.Name))
			if k == "" {
				k = strings.ToLower(strings.TrimSpace(p.Description))
			}
			if k == "" {
				continue
			}
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			out = append(out, p)
		}
	}
	return out
}

// pairKey builds a case-insensitive dedup key from two fields. Empty when
// both fields are blank, which callers treat as an entry to drop.
func pairKey(a, b string) string {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	if a == "" && b == "" {
		return ""
	}
	return a + "|" + b
}
