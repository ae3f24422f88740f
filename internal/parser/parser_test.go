package parser

import (
	"strings"
	"testing"

	"darzi-backend/internal/resume"
)

const sampleResume = `John Smith
john.smith@example.com
(555) 123-4567

SUMMARY:
Seasoned backend engineer with a decade of experience building distributed systems for fintech clients.

SKILLS:
Python, Go, Docker, Kubernetes, PostgreSQL

EXPERIENCE:
Senior Software Engineer at Quantum Analytics (2019 - 2023)
Built event pipelines processing billions of records daily for trading desks.

EDUCATION:
Bachelor of Science in Computer Science from Stanford University (2015)
`

func TestParseSingleLineResume(t *testing.T) {
	var svc Service
	rec := svc.Parse("John Doe. Email: john.doe@example.com. Phone: 1234567890. Python developer with 5 years experience at Google.")

	if rec.Name != "John Doe" {
		t.Fatalf("expected name John Doe, got %q", rec.Name)
	}
	if len(rec.Email) != 1 || rec.Email[0] != "john.doe@example.com" {
		t.Fatalf("unexpected emails: %v", rec.Email)
	}
	if len(rec.MobileNumber) != 1 || rec.MobileNumber[0] != "1234567890" {
		t.Fatalf("unexpected phones: %v", rec.MobileNumber)
	}
	if len(rec.Skills) != 1 || rec.Skills[0] != "Python" {
		t.Fatalf("unexpected skills: %v", rec.Skills)
	}
	if rec.ParsingSource != resume.SourceLocal {
		t.Fatalf("expected parsing_source local, got %q", rec.ParsingSource)
	}
	if rec.ConfidenceScore != 0.8 {
		t.Fatalf("expected confidence 0.8, got %v", rec.ConfidenceScore)
	}
}

func TestParseSectionedResume(t *testing.T) {
	var svc Service
	rec := svc.Parse(sampleResume)

	if rec.Name != "John Smith" {
		t.Fatalf("expected name John Smith, got %q", rec.Name)
	}
	if len(rec.Email) != 1 || rec.Email[0] != "john.smith@example.com" {
		t.Fatalf("unexpected emails: %v", rec.Email)
	}
	if len(rec.MobileNumber) != 1 || rec.MobileNumber[0] != "5551234567" {
		t.Fatalf("unexpected phones: %v", rec.MobileNumber)
	}

	wantSkills := []string{"Docker", "Go", "Kubernetes", "Postgresql", "Python"}
	if len(rec.Skills) != len(wantSkills) {
		t.Fatalf("expected skills %v, got %v", wantSkills, rec.Skills)
	}
	for i, s := range wantSkills {
		if rec.Skills[i] != s {
			t.Fatalf("expected skills %v, got %v", wantSkills, rec.Skills)
		}
	}

	if len(rec.Experience) != 1 {
		t.Fatalf("expected one experience entry, got %v", rec.Experience)
	}
	exp := rec.Experience[0]
	if exp.Title != "Senior Software Engineer" {
		t.Fatalf("unexpected title: %q", exp.Title)
	}
	if exp.Company != "Quantum Analytics" {
		t.Fatalf("unexpected company: %q", exp.Company)
	}
	if exp.Duration != "2019 - 2023" {
		t.Fatalf("unexpected duration: %q", exp.Duration)
	}
	if len(exp.Responsibilities) != 1 || !strings.HasPrefix(exp.Responsibilities[0], "Built event pipelines") {
		t.Fatalf("unexpected responsibilities: %v", exp.Responsibilities)
	}

	if len(rec.Education) == 0 {
		t.Fatalf("expected education entries")
	}
	edu := rec.Education[0]
	if edu.Degree != "Bachelor of Science in Computer Science" {
		t.Fatalf("unexpected degree: %q", edu.Degree)
	}
	if edu.Institution != "Stanford University" {
		t.Fatalf("unexpected institution: %q", edu.Institution)
	}
	if edu.Year != "2015" {
		t.Fatalf("unexpected year: %q", edu.Year)
	}

	if !strings.HasPrefix(rec.Summary, "Seasoned backend engineer") {
		t.Fatalf("unexpected summary: %q", rec.Summary)
	}
	if rec.ConfidenceScore != 1.0 {
		t.Fatalf("expected confidence 1.0, got %v", rec.ConfidenceScore)
	}
}

func TestParseEmptyInputNeverFails(t *testing.T) {
	var svc Service
	rec := svc.Parse("")

	if rec.Name != "" || len(rec.Email) != 0 || len(rec.Skills) != 0 {
		t.Fatalf("expected empty record, got %+v", rec)
	}
	if rec.ConfidenceScore != 0 {
		t.Fatalf("expected zero confidence, got %v", rec.ConfidenceScore)
	}
	if rec.ParsingSource != resume.SourceLocal {
		t.Fatalf("expected parsing_source local, got %q", rec.ParsingSource)
	}
}

func TestParseGarbageInputNeverFails(t *testing.T) {
	var svc Service
	rec := svc.Parse("\x00\x01\x02 ))) ((( \n\n\n ---- 12345")

	if rec.ParsingSource != resume.SourceLocal {
		t.Fatalf("expected parsing_source local, got %q", rec.ParsingSource)
	}
	if rec.ConfidenceScore != 0 {
		t.Fatalf("expected zero confidence for garbage, got %v", rec.ConfidenceScore)
	}
}

func TestParseTruncatesRawText(t *testing.T) {
	var svc Service
	long := strings.Repeat("resume text ", 100)
	rec := svc.Parse(long)

	if !strings.HasSuffix(rec.RawText, "...") {
		t.Fatalf("expected truncated raw text to end with ellipsis")
	}
	if got := len([]rune(rec.RawText)); got != rawTextLimit+3 {
		t.Fatalf("expected %d runes, got %d", rawTextLimit+3, got)
	}

	short := svc.Parse("short resume body")
	if short.RawText != "short resume body" {
		t.Fatalf("expected raw text kept verbatim, got %q", short.RawText)
	}
}

func TestDetectSectionsSplitsOnHeaders(t *testing.T) {
	text := "intro line\nSKILLS:\nGo, Rust\nEXPERIENCE:\nsome job history"
	sections := detectSections(text)

	if sections["general"] != "intro line" {
		t.Fatalf("unexpected general section: %q", sections["general"])
	}
	if sections["skills"] != "Go, Rust" {
		t.Fatalf("unexpected skills section: %q", sections["skills"])
	}
	if sections["experience"] != "some job history" {
		t.Fatalf("unexpected experience section: %q", sections["experience"])
	}
}

func TestHeaderRequiresShortDecoratedLine(t *testing.T) {
	if got := headerFor("SKILLS:"); got != "skills" {
		t.Fatalf("expected skills header, got %q", got)
	}
	if got := headerFor("I have many skills and this sentence is definitely too long to be a header line"); got != "" {
		t.Fatalf("expected long line to be body text, got %q", got)
	}
	if got := headerFor("my skills grew over time"); got != "" {
		t.Fatalf("expected lowercase undecorated line to be body text, got %q", got)
	}
}
