// Package ats scores a resume against a job description using an LLM and
// returns a structured compatibility report. There is no rule-based scorer:
// without a provider the analysis is unavailable.
package ats

// KeywordAnalysis compares resume terms against the job description.
type KeywordAnalysis struct {
	KeywordMatchScore       float64  `json:"keyword_match_score"`
	MatchedKeywords         []string `json:"matched_keywords"`
	MissingCriticalKeywords []string `json:"missing_critical_keywords"`
	KeywordDensity          float64  `json:"keyword_density"`
	Recommendations         []string `json:"recommendations"`
}

// ContentAnalysis assesses achievements and section coverage.
type ContentAnalysis struct {
	ContentScore    float64  `json:"content_score"`
	Strengths       []string `json:"strengths"`
	Weaknesses      []string `json:"weaknesses"`
	MissingSections []string `json:"missing_sections"`
	Recommendations []string `json:"recommendations"`
}

// FormattingAnalysis flags structure that trips up tracking systems.
type FormattingAnalysis struct {
	FormattingScore  float64  `json:"formatting_score"`
	FormattingIssues []string `json:"formatting_issues"`
	Recommendations  []string `json:"recommendations"`
}

// SkillsAnalysis matches resume skills to the posting's requirements.
type SkillsAnalysis struct {
	SkillsMatchScore float64  `json:"skills_match_score"`
	MatchedSkills    []string `json:"matched_skills"`
	MissingSkills    []string `json:"missing_skills"`
	SkillGaps        []string `json:"skill_gaps"`
	Recommendations  []string `json:"recommendations"`
}

// ExperienceAnalysis rates how well past roles fit the posting.
type ExperienceAnalysis struct {
	ExperienceScore    float64  `json:"experience_score"`
	RelevantExperience []string `json:"relevant_experience"`
	ExperienceGaps     []string `json:"experience_gaps"`
	Recommendations    []string `json:"recommendations"`
}

// ImprovementPriority buckets suggested fixes by impact.
type ImprovementPriority struct {
	HighPriority   []string `json:"high_priority"`
	MediumPriority []string `json:"medium_priority"`
	LowPriority    []string `json:"low_priority"`
}

// Report is the full ATS compatibility assessment.
type Report struct {
	OverallScore        float64             `json:"overall_score"`
	KeywordAnalysis     KeywordAnalysis     `json:"keyword_analysis"`
	ContentAnalysis     ContentAnalysis     `json:"content_analysis"`
	FormattingAnalysis  FormattingAnalysis  `json:"formatting_analysis"`
	SkillsAnalysis      SkillsAnalysis      `json:"skills_analysis"`
	ExperienceAnalysis  ExperienceAnalysis  `json:"experience_analysis"`
	ImprovementPriority ImprovementPriority `json:"improvement_priority"`
	OptimizationTips    []string            `json:"ats_optimization_tips"`
	PredictedPassRate   float64             `json:"predicted_ats_pass_rate"`
	Summary             string              `json:"summary"`
	ConfidenceScore     float64             `json:"confidence_score"`
	AnalysisMethod      string              `json:"analysis_method"`
	ProviderUsed        string              `json:"provider_used"`
	AnalysisTimestamp   string              `json:"analysis_timestamp"`
}

// normalize clamps every score into [0, 100], fills the summary default and
// replaces nil lists with empty ones so the JSON shape is stable.
func (r *Report) normalize() {
	r.OverallScore = clamp100(r.OverallScore)
	r.PredictedPassRate = clamp100(r.PredictedPassRate)
	r.KeywordAnalysis.KeywordMatchScore = clamp100(r.KeywordAnalysis.KeywordMatchScore)
	r.KeywordAnalysis.KeywordDensity = clamp100(r.KeywordAnalysis.KeywordDensity)
	r.ContentAnalysis.ContentScore = clamp100(r.ContentAnalysis.ContentScore)
	r.FormattingAnalysis.FormattingScore = clamp100(r.FormattingAnalysis.FormattingScore)
	r.SkillsAnalysis.SkillsMatchScore = clamp100(r.SkillsAnalysis.SkillsMatchScore)
	r.ExperienceAnalysis.ExperienceScore = clamp100(r.ExperienceAnalysis.ExperienceScore)

	if r.Summary == "" {
		r.Summary = "Analysis completed"
	}

	r.KeywordAnalysis.MatchedKeywords = ensureList(r.KeywordAnalysis.MatchedKeywords)
	r.KeywordAnalysis.MissingCriticalKeywords = ensureList(r.KeywordAnalysis.MissingCriticalKeywords)
	r.KeywordAnalysis.Recommendations = ensureList(r.KeywordAnalysis.Recommendations)
	r.ContentAnalysis.Strengths = ensureList(r.ContentAnalysis.Strengths)
	r.ContentAnalysis.Weaknesses = ensureList(r.ContentAnalysis.Weaknesses)
	r.ContentAnalysis.MissingSections = ensureList(r.ContentAnalysis.MissingSections)
	r.ContentAnalysis.Recommendations = ensureList(r.ContentAnalysis.Recommendations)
	r.FormattingAnalysis.FormattingIssues = ensureList(r.FormattingAnalysis.FormattingIssues)
	r.FormattingAnalysis.Recommendations = ensureList(r.FormattingAnalysis.Recommendations)
	r.SkillsAnalysis.MatchedSkills = ensureList(r.SkillsAnalysis.MatchedSkills)
	r.SkillsAnalysis.MissingSkills = ensureList(r.SkillsAnalysis.MissingSkills)
	r.SkillsAnalysis.SkillGaps = ensureList(r.SkillsAnalysis.SkillGaps)
	r.SkillsAnalysis.Recommendations = ensureList(r.SkillsAnalysis.Recommendations)
	r.ExperienceAnalysis.RelevantExperience = ensureList(r.ExperienceAnalysis.RelevantExperience)
	r.ExperienceAnalysis.ExperienceGaps = ensureList(r.ExperienceAnalysis.ExperienceGaps)
	r.ExperienceAnalysis.Recommendations = ensureList(r.ExperienceAnalysis.Recommendations)
	r.ImprovementPriority.HighPriority = ensureList(r.ImprovementPriority.HighPriority)
	r.ImprovementPriority.MediumPriority = ensureList(r.ImprovementPriority.MediumPriority)
	r.ImprovementPriority.LowPriority = ensureList(r.ImprovementPriority.LowPriority)
	r.OptimizationTips = ensureList(r.OptimizationTips)
}

func clamp100(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func ensureList(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}
