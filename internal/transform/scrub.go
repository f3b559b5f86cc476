package transform

import (
	"regexp"
	"strings"
)

// Redaction placeholder tokens.
const (
	tokenEmail = "[EMAIL_REDACTED]"
	tokenPhone = "[PHONE_REDACTED]"
	tokenSSN   = "[SSN_REDACTED]"
	tokenCard  = "[CARD_REDACTED]"
)

// piiPatterns are applied in fixed priority order: email, phone (two
// formats), SSN, card. A lower-priority pattern only wins when it matches
// strictly earlier in the text.
var piiPatterns = []struct {
	re    *regexp.Regexp
	token string
}{
	{regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`), tokenEmail},
	{regexp.MustCompile(`\b\d{3}[-.]?\d{3}[-.]?\d{4}\b`), tokenPhone},
	{regexp.MustCompile(`\b\+?\d{1,3}[-.\s]?\(?\d{1,4}\)?[-.\s]?\d{1,4}[-.\s]?\d{1,9}\b`), tokenPhone},
	{regexp.MustCompile(`\b\d{3}-\d{2}-\d{4}\b`), tokenSSN},
	{regexp.MustCompile(`\b\d{4}[-\s]?\d{4}[-\s]?\d{4}[-\s]?\d{4}\b`), tokenCard},
}

var htmlTagRe = regexp.MustCompile(`<[^>]*>`)

// RedactName reduces a name to its first letter plus mask.
func RedactName(name string) string {
	runes := []rune(strings.TrimSpace(name))
	if len(runes) == 0 {
		return "***"
	}
	return string(runes[0]) + "***"
}

// AnonymizeEmail reduces an email to first-letter-plus-mask at the original
// domain. Values without an @ collapse to a fixed placeholder.
func AnonymizeEmail(email string) string {
	email = strings.TrimSpace(email)
	local, domain, ok := strings.Cut(email, "@")
	if !ok {
		return "***@***.com"
	}
	runes := []rune(local)
	if len(runes) == 0 {
		return "***@" + domain
	}
	return string(runes[0]) + "***@" + domain
}

// ScrubText replaces email, phone, SSN-like and credit-card-like substrings
// with placeholder tokens in a single linear pass. At each position the
// earliest match across all patterns wins, with ties resolved by pattern
// priority; scanning resumes after the inserted token.
func ScrubText(text string) string {
	if text == "" {
		return text
	}

	var b strings.Builder
	rest := text
	for rest != "" {
		bestStart, bestEnd, bestToken := -1, -1, ""
		for _, p := range piiPatterns {
			loc := p.re.FindStringIndex(rest)
			if loc == nil {
				continue
			}
			if bestStart == -1 || loc[0] < bestStart {
				bestStart, bestEnd, bestToken = loc[0], loc[1], p.token
			}
		}
		if bestStart == -1 {
			b.WriteString(rest)
			break
		}
		b.WriteString(rest[:bestStart])
		b.WriteString(bestToken)
		rest = rest[bestEnd:]
	}
	return b.String()
}

// ScrubTextPtr scrubs optional free text, preserving absence.
func ScrubTextPtr(text *string) *string {
	if text == nil {
		return nil
	}
	scrubbed := strings.TrimSpace(ScrubText(*text))
	if scrubbed == "" {
		return nil
	}
	return &scrubbed
}

// StripHTML removes markup tags and truncates the result to maxLen,
// reserving three characters for an ellipsis when cut.
func StripHTML(text string, maxLen int) string {
	clean := strings.TrimSpace(htmlTagRe.ReplaceAllString(text, ""))
	if maxLen > 3 && len(clean) > maxLen {
		return clean[:maxLen-3] + "..."
	}
	return clean
}
