package resume

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestNormalizeInitializesLists(t *testing.T) {
	r := ParsedResume{Name: "  Jane Doe  ", ConfidenceScore: 1.4}
	r.Normalize()

	if r.Name != "Jane Doe" {
		t.Fatalf("expected trimmed name, got %q", r.Name)
	}
	if r.Email == nil || r.Skills == nil || r.Experience == nil || r.Education == nil || r.Certifications == nil {
		t.Fatalf("expected all list fields initialized")
	}
	if r.ConfidenceScore != 1.0 {
		t.Fatalf("expected confidence clamped to 1.0, got %v", r.ConfidenceScore)
	}

	data, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(data), `"skills":null`) {
		t.Fatalf("expected empty array serialization, got %s", data)
	}
}

func TestNormalizeAppliesEntryCaps(t *testing.T) {
	r := ParsedResume{}
	for i := 0; i < 20; i++ {
		r.Experience = append(r.Experience, Experience{Title: "Engineer", Company: "Acme"})
		r.Certifications = append(r.Certifications, "cert")
	}
	for i := 0; i < 8; i++ {
		r.Education = append(r.Education, Education{Degree: "BS", Institution: "State"})
		r.Projects = append(r.Projects, Project{Name: "proj"})
	}
	r.Normalize()

	if len(r.Experience) != 10 {
		t.Fatalf("expected 10 experience entries, got %d", len(r.Experience))
	}
	if len(r.Education) != 5 {
		t.Fatalf("expected 5 education entries, got %d", len(r.Education))
	}
	if len(r.Certifications) != 10 {
		t.Fatalf("expected 10 certifications, got %d", len(r.Certifications))
	}
	if len(r.Projects) != 5 {
		t.Fatalf("expected 5 projects, got %d", len(r.Projects))
	}
}

func TestNormalizeDropsBlankListEntries(t *testing.T) {
	r := ParsedResume{
		Skills: []string{"Go", "  ", "", "Python "},
		Email:  []string{" a@b.com ", ""},
	}
	r.Normalize()

	if len(r.Skills) != 2 || r.Skills[0] != "Go" || r.Skills[1] != "Python" {
		t.Fatalf("unexpected skills: %v", r.Skills)
	}
	if len(r.Email) != 1 || r.Email[0] != "a@b.com" {
		t.Fatalf("unexpected emails: %v", r.Email)
	}
}

func TestClamp01(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{-0.2, 0},
		{0, 0},
		{0.55, 0.55},
		{1, 1},
		{1.7, 1},
	}
	for _, tc := range cases {
		if got := Clamp01(tc.in); got != tc.want {
			t.Fatalf("Clamp01(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
