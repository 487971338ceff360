package classifier

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/romado33/JobApplicationTracker/internal/models"
)

// Subject shapes that carry a job title and usually a company. Group 1 is
// the title, group 2 (when present) the company.
var subjectPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bapplying (?:to|for)\s+(?:the\s+)?(.+?)\s+at\s+(.+?)[\s!.]*$`),
	regexp.MustCompile(`(?i)\bapplication (?:to|for)\s+(?:the\s+)?(.+?)\s+at\s+(.+?)[\s!.]*$`),
	regexp.MustCompile(`(?i)\bapplied (?:to|for)\s+(?:the\s+)?(.+?)\s+at\s+(.+?)[\s!.]*$`),
	regexp.MustCompile(`(?i)\bfor the position of\s+(.+?)(?:\s+at\s+(.+?))?[\s!.]*$`),
}

// Subject shapes that name only the company ("Your application to Acme").
var companyPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\byour application (?:to|with)\s+(.+?)[\s!.]*$`),
	regexp.MustCompile(`(?i)\bapplication was sent to\s+(.+?)[\s!.]*$`),
}

// senderNoise matches recruiting boilerplate in From display names, e.g.
// "Acme Careers" or "Initech Talent Team".
var senderNoise = regexp.MustCompile(`(?i)\b(careers?|recruiting|recruitment|talent|hiring|jobs?|team|notifications?|no-?reply)\b`)

// Second-level labels that belong to the public suffix, not the company.
var genericLabels = map[string]bool{
	"co": true, "com": true, "net": true, "org": true,
	"ac": true, "edu": true, "gov": true,
}

// extractApplication pulls a best-effort (company, job title) pair from the
// subject and sender. It never fails: an unidentifiable company comes back
// as "Unknown" and an unidentifiable title as "".
func extractApplication(email models.Email) (company, title string) {
	for _, pattern := range subjectPatterns {
		match := pattern.FindStringSubmatch(email.Subject)
		if match == nil {
			continue
		}
		title = cleanField(match[1])
		if len(match) > 2 {
			company = cleanField(match[2])
		}
		break
	}

	if company == "" {
		for _, pattern := range companyPatterns {
			if match := pattern.FindStringSubmatch(email.Subject); match != nil {
				company = cleanField(match[1])
				break
			}
		}
	}
	if company == "" {
		company = companyFromSender(email.SenderName, email.Sender)
	}
	return company, title
}

// companyFromSender derives a company name from the From header: the display
// name stripped of recruiting boilerplate, else the registrable label of the
// sender domain, title-cased.
func companyFromSender(displayName, address string) string {
	if name := cleanField(senderNoise.ReplaceAllString(displayName, " ")); name != "" {
		return name
	}

	lowered := strings.ToLower(strings.TrimSpace(address))
	at := strings.LastIndex(lowered, "@")
	if at < 0 || at == len(lowered)-1 {
		return "Unknown"
	}

	labels := strings.Split(lowered[at+1:], ".")
	label := labels[0]
	if len(labels) >= 2 {
		label = labels[len(labels)-2]
	}
	if genericLabels[label] && len(labels) >= 3 {
		label = labels[len(labels)-3]
	}
	if label == "" {
		return "Unknown"
	}
	return titleCase(label)
}

// cleanField collapses whitespace and trims stray punctuation from an
// extracted fragment.
func cleanField(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	return strings.Trim(s, " -:;,.!?\"'")
}

func titleCase(s string) string {
	runes := []rune(s)
	for i := range runes {
		if i == 0 {
			runes[i] = unicode.ToUpper(runes[i])
		} else {
			runes[i] = unicode.ToLower(runes[i])
		}
	}
	return string(runes)
}
