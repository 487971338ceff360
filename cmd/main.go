package main

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/romado33/JobApplicationTracker/internal/classifier"
	"github.com/romado33/JobApplicationTracker/internal/config"
	imapclient "github.com/romado33/JobApplicationTracker/internal/imap"
	"github.com/romado33/JobApplicationTracker/internal/logging"
	"github.com/romado33/JobApplicationTracker/internal/models"
	"github.com/romado33/JobApplicationTracker/internal/report"
	"github.com/romado33/JobApplicationTracker/internal/scanner"
	"github.com/romado33/JobApplicationTracker/internal/store"
	"github.com/romado33/JobApplicationTracker/internal/tracker"
)

var imapFailureCount atomic.Int32

const failureSleepDuration = 30 * time.Minute

func main() {
	cfg, err := config.Load("config.yaml")
	if err != nil {
		logging.Log.Fatalf("Error reading configuration file: %v", err)
	}
	logging.SetLevel(cfg.LogLevel)

	cls, err := classifier.New(cfg.Rules)
	if err != nil {
		logging.Log.Fatalf("Error building classifier: %v", err)
	}

	var history *store.Store
	if cfg.History.Path != "" {
		history, err = store.Open(cfg.History.Path)
		if err != nil {
			logging.Log.Fatalf("Error opening history database: %v", err)
		}
		defer func() {
			_ = history.Close()
		}()
	}

	// One-shot mode: a single scan, non-zero exit on failure.
	if cfg.Email.RefreshTime <= 0 {
		if err := scanAndReport(cfg, cls, history); err != nil {
			logging.Log.Fatalf("Scan failed: %v", err)
		}
		return
	}

	logging.Log.Infof("Starting inbox watch, refresh every %s", cfg.Email.RefreshTime)
	for {
		if err := scanAndReport(cfg, cls, history); err != nil {
			handleIMAPFailure(err)
		} else {
			imapFailureCount.Store(0)
		}
		time.Sleep(cfg.Email.RefreshTime)
	}
}

// scanAndReport runs one full pass: connect, authenticate, scan the
// mailbox, aggregate, merge into history when configured, and write the
// CSV report.
func scanAndReport(cfg *models.Config, cls *classifier.Classifier, history *store.Store) error {
	client := imapclient.NewStandardClient()

	if err := client.Connect(cfg.Email.Imap); err != nil {
		return err
	}
	defer func(client *imapclient.StandardClient) {
		_ = client.Close()
	}(client)

	if err := login(client, cfg); err != nil {
		return fmt.Errorf("login error: %w", err)
	}

	if err := client.SelectMailbox(cfg.Email.MailBox); err != nil {
		return fmt.Errorf("folder selection error: %w", err)
	}

	classified, err := scanner.NewScanner(client, cls, cfg.Scan).Scan()
	if err != nil {
		return err
	}

	records := tracker.Aggregate(classified)

	if history != nil {
		if err := history.Merge(records); err != nil {
			return err
		}
		if records, err = history.List(); err != nil {
			return err
		}
	}

	if err := report.WriteCSV(cfg.Report.CSV, records); err != nil {
		return err
	}

	summary := report.Summarize(records)
	logging.Log.WithFields(summary.Fields()).Infof("Report written to %s", cfg.Report.CSV)
	return nil
}

// login authenticates with the configured method.
func login(client *imapclient.StandardClient, cfg *models.Config) error {
	if cfg.Email.Auth == models.AuthXOAuth2 {
		tokens := imapclient.TokenSource(
			cfg.Email.OAuth.ClientID,
			cfg.Email.OAuth.ClientSecret,
			cfg.Email.OAuth.RefreshToken,
			cfg.Email.OAuth.TokenURL,
		)
		return client.Authenticate(cfg.Email.Login, tokens)
	}
	return client.Login(cfg.Email.Login, cfg.Email.Password)
}

// handleIMAPFailure increments the failure count and implements an exponential backoff strategy
func handleIMAPFailure(err error) {
	failures := imapFailureCount.Add(1)
	logging.Log.Errorf("Scan error: %v", err)

	if failures >= 5 {
		base := 5 * time.Minute
		maxSteps := int32(10)

		n := failures - 5
		if n > maxSteps {
			n = maxSteps
		}

		backoff := base * time.Duration(1<<n)
		if backoff > failureSleepDuration {
			backoff = failureSleepDuration
		}

		logging.Log.Warnf("Scan failed %d times, waiting %s before next attempt", failures, backoff)
		time.Sleep(backoff)
	}
}
