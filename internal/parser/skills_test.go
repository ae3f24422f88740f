package parser

import (
	"strings"
	"testing"
)

func TestExtractSkillsKeywordVocabulary(t *testing.T) {
	text := "Built services with node.js and React deployed on Kubernetes"
	got := extractSkills(text, map[string]string{})

	want := []string{"Kubernetes", "Node.js", "React"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestExtractSkillsOptionalDot(t *testing.T) {
	got := extractSkills("expert nodejs developer", map[string]string{})

	// The dotted and undotted vocabulary entries both match the undotted
	// spelling.
	want := []string{"Node.js", "Nodejs"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestExtractSkillsPrefersSkillsSection(t *testing.T) {
	text := "Python everywhere\nSKILLS:\nDocker, Terraform"
	sections := map[string]string{"skills": "Docker, Terraform"}
	got := extractSkills(text, sections)

	want := []string{"Docker", "Terraform"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("expected only section skills %v, got %v", want, got)
	}
}

func TestExtractSkillsContextPhrases(t *testing.T) {
	text := "Technologies: Snowflake, Looker\nTools: Asana"
	got := extractSkills(text, map[string]string{})

	want := []string{"Asana", "Looker", "Snowflake"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestExtractSkillsProficiencyCaptureStopsAtComma(t *testing.T) {
	got := extractSkills("Proficient in Snowflake, Looker", map[string]string{})

	if len(got) != 1 || got[0] != "Snowflake" {
		t.Fatalf("expected only the first phrase segment, got %v", got)
	}
}

func TestExtractSkillsDropsShortNames(t *testing.T) {
	got := extractSkills("statistical models in r and matlab", map[string]string{})

	if len(got) != 1 || got[0] != "Matlab" {
		t.Fatalf("expected single-letter skills filtered, got %v", got)
	}
}

func TestExtractSkillsDedupesAcrossSources(t *testing.T) {
	got := extractSkills("Tools: Docker, docker", map[string]string{})

	if len(got) != 1 || got[0] != "Docker" {
		t.Fatalf("expected one deduped skill, got %v", got)
	}
}
