package models

import "time"

// Email represents a normalized parsed email message as supplied by the
// mail source. Sender and Subject may be empty; classification treats
// missing fields as empty strings rather than errors.
type Email struct {
	UID        uint32
	Sender     string // address only, e.g. "jobs@acme.com"
	SenderName string // display name from the From header, may be empty
	Subject    string
	BodyText   string // plain-text snippet, truncated to the configured length
	Date       time.Time
	TraceID    string
}
