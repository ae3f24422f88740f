package util

import "testing"

func TestHashText(t *testing.T) {
	text := "John Doe\njohn@example.com\nSkills: Go, Python"
	got := HashText(text)
	if got != HashText(text) {
		t.Fatalf("expected stable hash, got %s", got)
	}
	for _, ch := range got {
		if !((ch >= 'a' && ch <= 'f') || (ch >= '0' && ch <= '9')) {
			t.Fatalf("hash contains non-hex character: %c", ch)
		}
	}
	if len(got) != 64 {
		t.Fatalf("expected 64 hex characters, got %d", len(got))
	}
	if HashText("other text") == got {
		t.Fatalf("expected distinct inputs to hash differently")
	}
}
