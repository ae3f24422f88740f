// Package resume defines the normalized resume record shared by the parser,
// hybrid merge, ATS and generator layers.
package resume

import "strings"

// Parsing source tags carried in ParsedResume.ParsingSource.
const (
	SourceLocal  = "local"
	SourceLLM    = "llm"
	SourceHybrid = "hybrid"
)

// Entry caps applied during normalization. Oversized LLM output is truncated
// rather than rejected.
const (
	maxExperienceEntries    = 10
	maxEducationEntries     = 5
	maxCertificationEntries = 10
	maxProjectEntries       = 5
)

// Experience is one work-experience entry.
type Experience struct {
	Title            string   `json:"title"`
	Company          string   `json:"company"`
	Duration         string   `json:"duration,omitempty"`
	Responsibilities []string `json:"responsibilities,omitempty"`
	Achievements     []string `json:"achievements,omitempty"`
}

// Education is one education entry.
type Education struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Year        string `json:"year,omitempty"`
}

// Project is one project entry.
type Project struct {
	Name         string   `json:"name"`
	Description  string   `json:"description,omitempty"`
	Technologies []string `json:"technologies,omitempty"`
}

// ParsedResume is the normalized record every parsing path produces. JSON
// keys match the public API schema.
type ParsedResume struct {
	Name            string       `json:"name"`
	Email           []string     `json:"email"`
	MobileNumber    []string     `json:"mobile_number"`
	Location        string       `json:"location,omitempty"`
	Links           []string     `json:"links,omitempty"`
	Summary         string       `json:"summary"`
	Skills          []string     `json:"skills"`
	Experience      []Experience `json:"experience"`
	Education       []Education  `json:"education"`
	Certifications  []string     `json:"certifications"`
	Projects        []Project    `json:"projects,omitempty"`
	RawText         string       `json:"raw_text"`
	ParsingSource   string       `json:"parsing_source"`
	ConfidenceScore float64      `json:"confidence_score"`
}

// Normalize trims scalar fields, replaces nil lists with empty ones so the
// API always serializes arrays, drops blank list entries, applies the entry
// caps and clamps the confidence score into [0, 1].
func (r *ParsedResume) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Summary = strings.TrimSpace(r.Summary)
	r.Location = strings.TrimSpace(r.Location)

	r.Email = cleanStrings(r.Email)
	r.MobileNumber = cleanStrings(r.MobileNumber)
	r.Links = cleanStrings(r.Links)
	r.Skills = cleanStrings(r.Skills)
	r.Certifications = cleanStrings(r.Certifications)

	if r.Experience == nil {
		r.Experience = []Experience{}
	}
	if r.Education == nil {
		r.Education = []Education{}
	}

	if len(r.Experience) > maxExperienceEntries {
		r.Experience = r.Experience[:maxExperienceEntries]
	}
	if len(r.Education) > maxEducationEntries {
		r.Education = r.Education[:maxEducationEntries]
	}
	if len(r.Certifications) > maxCertificationEntries {
		r.Certifications = r.Certifications[:maxCertificationEntries]
	}
	if len(r.Projects) > maxProjectEntries {
		r.Projects = r.Projects[:maxProjectEntries]
	}

	r.ConfidenceScore = Clamp01(r.ConfidenceScore)
}

// Clamp01 clamps a score into [0, 1].
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func cleanStrings(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if trimmed := strings.TrimSpace(s); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
