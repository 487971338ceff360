package scanner

import (
	"fmt"
	"strings"
	"time"

	"github.com/emersion/go-imap"

	"github.com/romado33/JobApplicationTracker/internal/classifier"
	imapclient "github.com/romado33/JobApplicationTracker/internal/imap"
	"github.com/romado33/JobApplicationTracker/internal/logging"
	"github.com/romado33/JobApplicationTracker/internal/mailparse"
	"github.com/romado33/JobApplicationTracker/internal/models"
	"github.com/romado33/JobApplicationTracker/internal/tracker"
)

// Scanner orchestrates one pass over a mailbox: list UIDs in the lookback
// window, fetch in batches, parse, classify, and collect the relevant
// results. The client must already be connected, authenticated, and have a
// mailbox selected.
type Scanner struct {
	client     imapclient.Client
	classifier *classifier.Classifier
	cfg        models.ScanConfig
}

// NewScanner creates a Scanner over the given client and classifier.
func NewScanner(client imapclient.Client, cls *classifier.Classifier, cfg models.ScanConfig) *Scanner {
	return &Scanner{
		client:     client,
		classifier: cls,
		cfg:        cfg,
	}
}

// Scan runs one full mailbox pass and returns the classified relevant
// emails. Search failures propagate; per-message parse failures are logged
// and skipped so one malformed email never aborts a scan.
func (s *Scanner) Scan() ([]tracker.Classified, error) {
	cutoff := time.Now().AddDate(0, 0, -s.cfg.WindowDays)

	uids, err := s.client.ListUIDsSince(cutoff)
	if err != nil {
		return nil, fmt.Errorf("error listing emails: %w", err)
	}

	if s.cfg.MaxMessages > 0 && len(uids) > s.cfg.MaxMessages {
		logging.Log.Warnf("Found %d emails in window, capping at the %d most recent", len(uids), s.cfg.MaxMessages)
		uids = uids[len(uids)-s.cfg.MaxMessages:]
	}

	logging.Log.Infof("Scanning %d emails since %s", len(uids), cutoff.Format("2006-01-02"))

	batchSize := s.cfg.BatchSize
	if batchSize <= 0 {
		batchSize = len(uids)
	}

	var classified []tracker.Classified
	for start := 0; start < len(uids); start += batchSize {
		end := start + batchSize
		if end > len(uids) {
			end = len(uids)
		}

		messages, err := s.client.FetchMessages(uids[start:end])
		if err != nil {
			logging.Log.Errorf("Error fetching batch %d-%d: %v", start, end, err)
			continue
		}

		for _, msg := range messages {
			if item, ok := s.processMessage(msg); ok {
				classified = append(classified, item)
			}
		}
	}

	return classified, nil
}

// processMessage parses and classifies one fetched message. It returns
// ok=false for irrelevant, prefiltered, or unparseable messages.
func (s *Scanner) processMessage(msg *imap.Message) (tracker.Classified, bool) {
	email, err := mailparse.Parse(msg, s.cfg.SnippetLength)
	if err != nil {
		logging.Log.Warnf("Error parsing email UID %d, skipping: %v", msg.Uid, err)
		return tracker.Classified{}, false
	}

	locallog := logging.Log.WithField("trace_id", email.TraceID)

	if !s.subjectMatches(email.Subject) {
		return tracker.Classified{}, false
	}

	result := s.classifier.Classify(*email)
	if !result.Relevant {
		return tracker.Classified{}, false
	}

	locallog.Debugf("Classified %q from %s as %s (company=%q, title=%q)",
		email.Subject, email.Sender, result.Status, result.Company, result.JobTitle)

	return tracker.Classified{Email: *email, Result: result}, true
}

// subjectMatches applies the optional subject prefilter. An empty keyword
// list disables the prefilter.
func (s *Scanner) subjectMatches(subject string) bool {
	if len(s.cfg.SubjectKeywords) == 0 {
		return true
	}

	lowered := strings.ToLower(subject)
	for _, keyword := range s.cfg.SubjectKeywords {
		if strings.Contains(lowered, strings.ToLower(keyword)) {
			return true
		}
	}
	return false
}
