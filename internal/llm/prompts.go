package llm

import (
	_ "embed"
	"strings"
)

var (
	//go:embed prompts/parse_v1.txt
	parsePromptV1 string
	//go:embed prompts/ats_v1.txt
	atsPromptV1 string
	//go:embed prompts/resume_gen_v1.txt
	resumeGenPromptV1 string
)

// ParsePrompt builds the extraction prompt for one resume text.
func ParsePrompt(resumeText string) string {
	return strings.NewReplacer("{{RESUME_TEXT}}", resumeText).Replace(parsePromptV1)
}

// ATSPromptTemplate returns the scoring template. The analyzer fills
// {{RESUME_TEXT}} and {{JOB_DESCRIPTION}}.
func ATSPromptTemplate() string {
	return atsPromptV1
}

// ResumeGenPromptTemplate returns the LaTeX generation template. The
// generator fills {{GENERATION_ID}}, {{TIMESTAMP}}, {{RESUME_DATA}},
// {{EXTRA_SECTIONS}} and {{TEMPLATE}}.
func ResumeGenPromptTemplate() string {
	return resumeGenPromptV1
}
