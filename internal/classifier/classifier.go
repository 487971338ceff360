package classifier

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/romado33/JobApplicationTracker/internal/models"
)

// Result is the outcome of classifying a single email. Company and JobTitle
// are best-effort extractions and only meaningful when Relevant is true.
type Result struct {
	Relevant bool
	Status   models.Status
	Company  string
	JobTitle string
}

// rule pairs a status with its phrase patterns. Rules are evaluated in
// order and the first match decides the status.
type rule struct {
	status   models.Status
	patterns []*regexp.Regexp
}

// Classifier labels emails using ordered phrase sets. It is stateless and
// safe for concurrent use once built.
type Classifier struct {
	denylist []string
	excluded []string
	guards   []*regexp.Regexp
	rules    []rule
}

// New compiles a Classifier from cfg. Empty phrase lists fall back to the
// built-in defaults.
func New(cfg models.RuleConfig) (*Classifier, error) {
	guards, err := compile("guards", orDefault(cfg.Guards, defaultGuards))
	if err != nil {
		return nil, err
	}
	rejected, err := compile("rejected", orDefault(cfg.Rejected, defaultRejected))
	if err != nil {
		return nil, err
	}
	interview, err := compile("interview", orDefault(cfg.Interview, defaultInterview))
	if err != nil {
		return nil, err
	}
	sent, err := compile("sent", orDefault(cfg.Sent, defaultSent))
	if err != nil {
		return nil, err
	}

	return &Classifier{
		denylist: lowerAll(orDefault(cfg.Denylist, defaultDenylist)),
		excluded: lowerAll(orDefault(cfg.ExcludedKeywords, defaultExcludedKeywords)),
		guards:   guards,
		rules: []rule{
			// Rejections first: decision mail often quotes application
			// boilerplate, and rejection language is the least ambiguous.
			{status: models.StatusRejected, patterns: rejected},
			{status: models.StatusInterview, patterns: interview},
			{status: models.StatusSent, patterns: sent},
		},
	}, nil
}

// Classify maps one email to a Result. It performs no I/O and does not
// mutate the email.
func (c *Classifier) Classify(email models.Email) Result {
	if c.denied(email.Sender) {
		return Result{}
	}

	subject := strings.ToLower(email.Subject)
	for _, keyword := range c.excluded {
		if strings.Contains(subject, keyword) {
			return Result{}
		}
	}

	// Guard phrases mark process boilerplate anywhere in the message as
	// irrelevant before any category matching.
	if matchAny(c.guards, email.Subject, email.BodyText) {
		return Result{}
	}

	for _, r := range c.rules {
		if matchAny(r.patterns, email.Subject, email.BodyText) {
			company, title := extractApplication(email)
			return Result{
				Relevant: true,
				Status:   r.status,
				Company:  company,
				JobTitle: title,
			}
		}
	}

	return Result{}
}

// denied reports whether the sender address, its domain, or any parent
// domain is denylisted.
func (c *Classifier) denied(sender string) bool {
	address := strings.ToLower(strings.TrimSpace(sender))
	if address == "" {
		return false
	}

	domain := address
	if at := strings.LastIndex(address, "@"); at >= 0 {
		domain = address[at+1:]
	}

	for _, entry := range c.denylist {
		if address == entry || domain == entry || strings.HasSuffix(domain, "."+entry) {
			return true
		}
	}
	return false
}

func matchAny(patterns []*regexp.Regexp, subject, body string) bool {
	for _, pattern := range patterns {
		if pattern.MatchString(subject) || pattern.MatchString(body) {
			return true
		}
	}
	return false
}

func compile(name string, patterns []string) ([]*regexp.Regexp, error) {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, pattern := range patterns {
		re, err := regexp.Compile(`(?i)` + pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid %s pattern %q: %w", name, pattern, err)
		}
		compiled = append(compiled, re)
	}
	return compiled, nil
}

func orDefault(list, fallback []string) []string {
	if len(list) == 0 {
		return fallback
	}
	return list
}

func lowerAll(list []string) []string {
	lowered := make([]string, len(list))
	for i, entry := range list {
		lowered[i] = strings.ToLower(strings.TrimSpace(entry))
	}
	return lowered
}
