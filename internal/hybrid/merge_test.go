package hybrid

import (
	"math"
	"strings"
	"testing"

	"darzi-backend/internal/resume"
)

func TestMergePrefersLLMScalars(t *testing.T) {
	local := resume.ParsedResume{Name: "Jane Doe", Summary: "Engineer with ten years of experience.", ConfidenceScore: 0.6}
	llm := resume.ParsedResume{Name: "Jane Q. Doe", ConfidenceScore: 0.95}

	merged := Merge(local, llm)
	if merged.Name != "Jane Q. Doe" {
		t.Fatalf("expected LLM name to win, got %q", merged.Name)
	}
	if merged.Summary != "Engineer with ten years of experience." {
		t.Fatalf("expected local summary to fill the gap, got %q", merged.Summary)
	}
}

func TestMergeSkillsDedupeCaseInsensitive(t *testing.T) {
	local := resume.ParsedResume{Skills: []string{"python", "Go"}}
	llm := resume.ParsedResume{Skills: []string{"Python", "AWS"}}

	merged := Merge(local, llm)
	got := strings.Join(merged.Skills, ",")
	if got != "Python,AWS,Go" {
		t.Fatalf("expected LLM-first union with first-seen casing, got %q", got)
	}
}

func TestMergeEmailsDedupeExact(t *testing.T) {
	local := resume.ParsedResume{Email: []string{"jane@example.com", "Jane@Example.com"}}
	llm := resume.ParsedResume{Email: []string{"jane@example.com"}}

	merged := Merge(local, llm)
	got := strings.Join(merged.Email, ",")
	if got != "jane@example.com,Jane@Example.com" {
		t.Fatalf("expected exact-match dedup to keep case variants, got %q", got)
	}
}

func TestMergeConfidenceWeighting(t *testing.T) {
	local := resume.ParsedResume{ConfidenceScore: 0.5}
	llm := resume.ParsedResume{ConfidenceScore: 0.95}

	merged := Merge(local, llm)
	want := 0.4*0.5 + 0.6*0.95
	if math.Abs(merged.ConfidenceScore-want) > 1e-9 {
		t.Fatalf("expected confidence %v, got %v", want, merged.ConfidenceScore)
	}
}

func TestMergeTagsHybridSourceAndLocalRawText(t *testing.T) {
	local := resume.ParsedResume{RawText: "raw resume excerpt", ParsingSource: resume.SourceLocal}
	llm := resume.ParsedResume{RawText: "", ParsingSource: resume.SourceLLM}

	merged := Merge(local, llm)
	if merged.ParsingSource != resume.SourceHybrid {
		t.Fatalf("expected hybrid source, got %q", merged.ParsingSource)
	}
	if merged.RawText != "raw resume excerpt" {
		t.Fatalf("expected raw text from the local pass, got %q", merged.RawText)
	}
}

func TestMergeExperienceDedupesByTitleAndCompany(t *testing.T) {
	local := resume.ParsedResume{Experience: []resume.Experience{
		{Title: "software engineer", Company: "ACME", Duration: "2020 - Present"},
		{Title: "Intern", Company: "Initech"},
	}}
	llm := resume.ParsedResume{Experience: []resume.Experience{
		{Title: "Software Engineer", Company: "Acme", Duration: "2020 - 2023"},
	}}

	merged := Merge(local, llm)
	if len(merged.Experience) != 2 {
		t.Fatalf("expected 2 experience entries, got %d", len(merged.Experience))
	}
	if merged.Experience[0].Duration != "2020 - 2023" {
		t.Fatalf("expected the LLM entry to win the duplicate, got %+v", merged.Experience[0])
	}
	if merged.Experience[1].Title != "Intern" {
		t.Fatalf("expected the local-only entry to survive, got %+v", merged.Experience[1])
	}
}

func TestMergeEducationDedupesByDegreeAndInstitution(t *testing.T) {
	local := resume.ParsedResume{Education: []resume.Education{
		{Degree: "BSc Computer Science", Institution: "mit", Year: "2015"},
	}}
	llm := resume.ParsedResume{Education: []resume.Education{
		{Degree: "bsc computer science", Institution: "MIT"},
		{Degree: "MSc Robotics", Institution: "CMU"},
	}}

	merged := Merge(local, llm)
	if len(merged.Education) != 2 {
		t.Fatalf("expected 2 education entries, got %d", len(merged.Education))
	}
	if merged.Education[0].Degree != "bsc computer science" {
		t.Fatalf("expected LLM-first ordering, got %+v", merged.Education[0])
	}
}

func TestMergeDropsEntriesWithNoIdentity(t *testing.T) {
	local := resume.ParsedResume{Experience: []resume.Experience{{Duration: "2020"}}}
	llm := resume.ParsedResume{Projects: []resume.Project{{Technologies: []string{"Go"}}}}

	merged := Merge(local, llm)
	if len(merged.Experience) != 0 {
		t.Fatalf("expected blank experience entry to be dropped, got %+v", merged.Experience)
	}
	if len(merged.Projects) != 0 {
		t.Fatalf("expected blank project entry to be dropped, got %+v", merged.Projects)
	}
}

func TestMergeIsDeterministic(t *testing.T) {
	local := resume.ParsedResume{
		Name:   "Sam Rivera",
		Skills: []string{"Go", "Docker", "kubernetes"},
		Email:  []string{"sam@example.com"},
	}
	llm := resume.ParsedResume{
		Name:            "Sam Rivera",
		Skills:          []string{"Kubernetes", "Terraform"},
		ConfidenceScore: 0.95,
	}

	first := Merge(local, llm)
	second := Merge(local, llm)
	if strings.Join(first.Skills, ",") != strings.Join(second.Skills, ",") {
		t.Fatalf("expected identical skill order across runs: %v vs %v", first.Skills, second.Skills)
	}
	if strings.Join(first.Skills, ",") != "Kubernetes,Terraform,Go,Docker" {
		t.Fatalf("unexpected merged skills: %v", first.Skills)
	}
}
