package config

import (
	"fmt"
	"os"
	"regexp"

	"github.com/romado33/JobApplicationTracker/internal/logging"
	"github.com/romado33/JobApplicationTracker/internal/models"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

const (
	defaultImap     = "imap.gmail.com:993"
	defaultMailbox  = "[Gmail]/All Mail"
	defaultTokenURL = "https://oauth2.googleapis.com/token"

	defaultWindowDays    = 90
	defaultBatchSize     = 50
	defaultMaxMessages   = 1500
	defaultSnippetLength = 2048

	defaultCSV = "job_applications.csv"
)

var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// Load reads the configuration from the specified YAML file and returns a
// Config struct with defaults applied. ${VAR} references in the file are
// expanded from the environment; a .env file in the working directory is
// loaded first so credentials can stay out of the YAML.
func Load(filepath string) (*models.Config, error) {
	if err := godotenv.Load(); err != nil {
		logging.Log.Debugf("No .env file loaded: %v", err)
	}

	configFile, err := os.ReadFile(filepath)
	if err != nil {
		return nil, err
	}

	var config models.Config
	expanded := expandEnvVars(string(configFile))
	if err := yaml.Unmarshal([]byte(expanded), &config); err != nil {
		return nil, err
	}

	applyDefaults(&config)
	if err := validate(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// expandEnvVars substitutes ${VAR} references with environment values,
// leaving unset references untouched.
func expandEnvVars(content string) string {
	return envVarPattern.ReplaceAllStringFunc(content, func(match string) string {
		if value := os.Getenv(match[2 : len(match)-1]); value != "" {
			return value
		}
		return match
	})
}

func applyDefaults(config *models.Config) {
	if config.Email.Imap == "" {
		config.Email.Imap = defaultImap
	}
	if config.Email.Login == "" {
		config.Email.Login = os.Getenv("EMAIL_USER")
	}
	if config.Email.Password == "" {
		config.Email.Password = os.Getenv("EMAIL_PASS")
	}
	if config.Email.Auth == "" {
		config.Email.Auth = models.AuthPassword
	}
	if config.Email.OAuth.TokenURL == "" {
		config.Email.OAuth.TokenURL = defaultTokenURL
	}
	if config.Email.MailBox == "" {
		config.Email.MailBox = defaultMailbox
	}

	if config.Scan.WindowDays <= 0 {
		config.Scan.WindowDays = defaultWindowDays
	}
	if config.Scan.BatchSize <= 0 {
		config.Scan.BatchSize = defaultBatchSize
	}
	if config.Scan.MaxMessages <= 0 {
		config.Scan.MaxMessages = defaultMaxMessages
	}
	if config.Scan.SnippetLength <= 0 {
		config.Scan.SnippetLength = defaultSnippetLength
	}

	if config.Report.CSV == "" {
		config.Report.CSV = defaultCSV
	}
}

func validate(config *models.Config) error {
	if config.Email.Login == "" {
		return fmt.Errorf("email.login is required (or set EMAIL_USER)")
	}

	switch config.Email.Auth {
	case models.AuthPassword:
		if config.Email.Password == "" {
			return fmt.Errorf("email.password is required (or set EMAIL_PASS)")
		}
	case models.AuthXOAuth2:
		if config.Email.OAuth.ClientID == "" || config.Email.OAuth.RefreshToken == "" {
			return fmt.Errorf("email.oauth.clientId and email.oauth.refreshToken are required for xoauth2")
		}
	default:
		return fmt.Errorf("unknown auth method %q", config.Email.Auth)
	}

	return nil
}
