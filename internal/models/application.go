package models

import (
	"strings"
	"time"
)

// Status is the tracked outcome of a job application. The values are the
// display strings written to the report.
type Status string

const (
	StatusSent      Status = "Application Sent"
	StatusRejected  Status = "Rejected"
	StatusInterview Status = "Interview Requested"
)

// Overrides reports whether an email with status s may replace current.
// Rejected and Interview Requested always win; Sent only replaces Sent, so
// a late acknowledgement never downgrades a decision.
func (s Status) Overrides(current Status) bool {
	return s != StatusSent || current == StatusSent
}

// ApplicationRecord is one tracked application, keyed by (company, job title).
type ApplicationRecord struct {
	Company      string
	JobTitle     string
	DateApplied  time.Time
	Status       Status
	LastUpdate   time.Time
	EmailSubject string
}

// Key returns the normalized grouping key for the record.
func (r ApplicationRecord) Key() string {
	return ApplicationKey(r.Company, r.JobTitle)
}

// ApplicationKey builds the grouping key for a (company, job title) pair.
// An empty job title yields a company-wide key that never collides with a
// titled one.
func ApplicationKey(company, jobTitle string) string {
	return CanonicalField(company) + "\x00" + CanonicalField(jobTitle)
}

// CanonicalField normalizes a grouping field: lowercased, with leading,
// trailing and repeated whitespace removed.
func CanonicalField(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
