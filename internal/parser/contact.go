package parser

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	emailRe = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)

	// usPhoneRe captures area/prefix/line groups which are joined digit-only.
	usPhoneRe     = regexp.MustCompile(`\+?1?[-.\s]?\(?([0-9]{3})\)?[-.\s]?([0-9]{3})[-.\s]?([0-9]{4})`)
	intlPhoneRe   = regexp.MustCompile(`\+\d{1,3}[-.\s]?\d{1,4}[-.\s]?\d{1,4}[-.\s]?\d{1,9}`)
	tenDigitRe    = regexp.MustCompile(`\b\d{10}\b`)
	parenPhoneRe  = regexp.MustCompile(`\(\d{3}\)\s?\d{3}[-.\s]?\d{4}`)
	dashedPhoneRe = regexp.MustCompile(`\d{3}[-.\s]\d{3}[-.\s]\d{4}`)

	nonPhoneCharRe = regexp.MustCompile(`[^\d+]`)

	// Label is case-insensitive, the captured name is not, so the capture
	// stops at the first non proper-case word.
	nameLabelRe      = regexp.MustCompile(`(?i:name)[:\s]+([A-Z][a-z]+(?:\s+[A-Z][a-z]+)*)`)
	candidateLabelRe = regexp.MustCompile(`(?i:candidate)[:\s]+([A-Z][a-z]+(?:\s+[A-Z][a-z]+)*)`)

	urlRe = regexp.MustCompile(`(?i)\b(?:https?://|www\.|linkedin\.com/|github\.com/)[^\s,;|)]+`)
)

const punctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

var nameSkipMarkers = []string{"@", "http", "www", "phone", "email", "tel:"}

// extractName looks for a 2-4 word proper-case line near the top of the
// resume. Lines are also split on sentence boundaries so single-line input
// still yields the leading name.
func extractName(text string) string {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	if len(lines) > 5 {
		lines = lines[:5]
	}
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		for _, candidate := range nameCandidates(line) {
			if name := validName(candidate); name != "" {
				return name
			}
		}
	}

	for _, re := range []*regexp.Regexp{nameLabelRe, candidateLabelRe} {
		if m := re.FindStringSubmatch(text); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	return ""
}

// nameCandidates yields the full line first, then its sentence segments.
func nameCandidates(line string) []string {
	candidates := []string{line}
	if segments := strings.Split(line, ". "); len(segments) > 1 {
		candidates = append(candidates, segments...)
	}
	return candidates
}

func validName(candidate string) string {
	candidate = strings.TrimSpace(candidate)
	if candidate == "" {
		return ""
	}
	lower := strings.ToLower(candidate)
	for _, marker := range nameSkipMarkers {
		if strings.Contains(lower, marker) {
			return ""
		}
	}

	var digits, punct, total int
	for _, r := range candidate {
		total++
		if unicode.IsDigit(r) {
			digits++
		}
		if strings.ContainsRune(punctuation, r) {
			punct++
		}
	}
	if total == 0 || float64(digits) > float64(total)*0.3 || float64(punct) > float64(total)*0.3 {
		return ""
	}

	words := strings.Fields(candidate)
	if len(words) < 2 || len(words) > 4 {
		return ""
	}
	hasUpper := false
	for _, w := range words {
		if len([]rune(w)) <= 1 {
			return ""
		}
		stripped := strings.NewReplacer(".", "", ",", "").Replace(w)
		if stripped == "" || !isAlpha(stripped) {
			return ""
		}
		if r := []rune(w)[0]; unicode.IsUpper(r) {
			hasUpper = true
		}
	}
	if !hasUpper {
		return ""
	}
	return candidate
}

func isAlpha(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// extractEmails returns lowercased, de-duplicated email addresses in order
// of first appearance.
func extractEmails(text string) []string {
	var out []string
	for _, m := range emailRe.FindAllString(text, -1) {
		email := strings.ToLower(m)
		domain := email[strings.LastIndex(email, "@")+1:]
		if len(email) <= 5 || !strings.Contains(domain, ".") ||
			strings.HasPrefix(email, ".") || strings.HasSuffix(email, ".") {
			continue
		}
		out = append(out, email)
	}
	return dedupeOrdered(out)
}

// extractPhones returns digit-normalized phone numbers between 7 and 15
// characters, keeping a leading "+".
func extractPhones(text string) []string {
	var out []string

	for _, m := range usPhoneRe.FindAllStringSubmatch(text, -1) {
		out = appendPhone(out, m[1]+m[2]+m[3])
	}
	for _, re := range []*regexp.Regexp{intlPhoneRe, tenDigitRe, parenPhoneRe, dashedPhoneRe} {
		for _, m := range re.FindAllString(text, -1) {
			out = appendPhone(out, m)
		}
	}
	return dedupeOrdered(out)
}

func appendPhone(phones []string, raw string) []string {
	phone := nonPhoneCharRe.ReplaceAllString(raw, "")
	if len(phone) < 7 || len(phone) > 15 {
		return phones
	}
	return append(phones, phone)
}

// extractLinks collects profile and portfolio URLs.
func extractLinks(text string) []string {
	var out []string
	for _, m := range urlRe.FindAllString(text, -1) {
		out = append(out, strings.TrimRight(m, ".,"))
	}
	return dedupeOrdered(out)
}
