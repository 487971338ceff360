package models

import "time"

// Authentication methods for the IMAP login.
const (
	AuthPassword = "password"
	AuthXOAuth2  = "xoauth2"
)

// Config represents the application configuration
type Config struct {
	LogLevel string        `yaml:"logLevel"`
	Email    EmailConfig   `yaml:"email"`
	Scan     ScanConfig    `yaml:"scan"`
	Rules    RuleConfig    `yaml:"rules"`
	Report   ReportConfig  `yaml:"report"`
	History  HistoryConfig `yaml:"history"`
}

// EmailConfig represents IMAP email configuration
type EmailConfig struct {
	Imap        string        `yaml:"imap"`
	Login       string        `yaml:"login"`
	Password    string        `yaml:"password"`
	Auth        string        `yaml:"auth"` // "password" or "xoauth2"
	OAuth       OAuthConfig   `yaml:"oauth"`
	MailBox     string        `yaml:"mailbox"`
	RefreshTime time.Duration `yaml:"refreshTime"` // 0 runs a single scan
}

// OAuthConfig holds the refresh-token credentials used when Auth is
// "xoauth2".
type OAuthConfig struct {
	ClientID     string `yaml:"clientId"`
	ClientSecret string `yaml:"clientSecret"`
	RefreshToken string `yaml:"refreshToken"`
	TokenURL     string `yaml:"tokenUrl"`
}

// ScanConfig bounds a single mailbox scan.
type ScanConfig struct {
	WindowDays      int      `yaml:"windowDays"`
	BatchSize       int      `yaml:"batchSize"`
	MaxMessages     int      `yaml:"maxMessages"`
	SnippetLength   int      `yaml:"snippetLength"`
	SubjectKeywords []string `yaml:"subjectKeywords"`
}

// RuleConfig holds the classification phrase sets. Empty lists fall back
// to the built-in defaults.
type RuleConfig struct {
	Denylist         []string `yaml:"denylist"`
	ExcludedKeywords []string `yaml:"excludedKeywords"`
	Guards           []string `yaml:"guards"`
	Rejected         []string `yaml:"rejected"`
	Interview        []string `yaml:"interview"`
	Sent             []string `yaml:"sent"`
}

// ReportConfig controls where the report is written.
type ReportConfig struct {
	CSV string `yaml:"csv"`
}

// HistoryConfig controls the optional persistent application history.
// An empty Path disables persistence.
type HistoryConfig struct {
	Path string `yaml:"path"`
}
