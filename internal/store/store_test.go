package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/romado33/JobApplicationTracker/internal/models"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() {
		_ = s.Close()
	})
	return s
}

func day(d int) time.Time {
	return time.Date(2025, time.June, d, 12, 0, 0, 0, time.UTC)
}

func TestMergeInsertsNewRecords(t *testing.T) {
	s := openTestStore(t)

	records := []models.ApplicationRecord{
		{
			Company:      "Acme",
			JobTitle:     "Data Analyst",
			DateApplied:  day(1),
			Status:       models.StatusSent,
			LastUpdate:   day(1),
			EmailSubject: "Thank you for applying",
		},
	}

	if err := s.Merge(records); err != nil {
		t.Fatalf("Merge() error = %v", err)
	}

	stored, err := s.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(stored) != 1 {
		t.Fatalf("List() returned %d records, want 1", len(stored))
	}
	if stored[0].Company != "Acme" || stored[0].Status != models.StatusSent {
		t.Errorf("stored record = %+v", stored[0])
	}
}

func TestMergeNeverDowngradesDecisions(t *testing.T) {
	s := openTestStore(t)

	if err := s.Merge([]models.ApplicationRecord{{
		Company:      "Acme",
		JobTitle:     "Data Analyst",
		DateApplied:  day(1),
		Status:       models.StatusRejected,
		LastUpdate:   day(10),
		EmailSubject: "Update on your application",
	}}); err != nil {
		t.Fatalf("Merge() error = %v", err)
	}

	// A later scan whose window only covers the acknowledgement.
	if err := s.Merge([]models.ApplicationRecord{{
		Company:      "Acme",
		JobTitle:     "Data Analyst",
		DateApplied:  day(1),
		Status:       models.StatusSent,
		LastUpdate:   day(1),
		EmailSubject: "Thank you for applying",
	}}); err != nil {
		t.Fatalf("Merge() error = %v", err)
	}

	stored, err := s.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(stored) != 1 {
		t.Fatalf("List() returned %d records, want 1", len(stored))
	}
	if stored[0].Status != models.StatusRejected {
		t.Errorf("status = %q, want %q (Sent must not overwrite a rejection)", stored[0].Status, models.StatusRejected)
	}
	if !stored[0].LastUpdate.Equal(day(10)) {
		t.Errorf("last update = %v, want %v", stored[0].LastUpdate, day(10))
	}
}

func TestMergeDecisionsFollowChronology(t *testing.T) {
	s := openTestStore(t)

	if err := s.Merge([]models.ApplicationRecord{{
		Company:      "Acme",
		JobTitle:     "Data Analyst",
		DateApplied:  day(1),
		Status:       models.StatusInterview,
		LastUpdate:   day(10),
		EmailSubject: "Invitation to interview",
	}}); err != nil {
		t.Fatalf("Merge() error = %v", err)
	}

	// A later scan with a narrower window that only saw an older rejection.
	if err := s.Merge([]models.ApplicationRecord{{
		Company:      "Acme",
		JobTitle:     "Data Analyst",
		DateApplied:  day(1),
		Status:       models.StatusRejected,
		LastUpdate:   day(5),
		EmailSubject: "Update on your application",
	}}); err != nil {
		t.Fatalf("Merge() error = %v", err)
	}

	stored, err := s.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(stored) != 1 {
		t.Fatalf("List() returned %d records, want 1", len(stored))
	}
	got := stored[0]
	if got.Status != models.StatusInterview {
		t.Errorf("status = %q, want %q (an older decision must not overwrite a newer one)", got.Status, models.StatusInterview)
	}
	if !got.LastUpdate.Equal(day(10)) {
		t.Errorf("last update = %v, want %v", got.LastUpdate, day(10))
	}
	if got.EmailSubject != "Invitation to interview" {
		t.Errorf("subject = %q, want the newest email's subject", got.EmailSubject)
	}
}

func TestMergeOlderDecisionBeatsStoredSent(t *testing.T) {
	s := openTestStore(t)

	if err := s.Merge([]models.ApplicationRecord{{
		Company:      "Initech",
		DateApplied:  day(5),
		Status:       models.StatusSent,
		LastUpdate:   day(5),
		EmailSubject: "Thank you for applying",
	}}); err != nil {
		t.Fatalf("Merge() error = %v", err)
	}

	if err := s.Merge([]models.ApplicationRecord{{
		Company:      "Initech",
		DateApplied:  day(3),
		Status:       models.StatusRejected,
		LastUpdate:   day(3),
		EmailSubject: "Update on your application",
	}}); err != nil {
		t.Fatalf("Merge() error = %v", err)
	}

	stored, err := s.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(stored) != 1 {
		t.Fatalf("List() returned %d records, want 1", len(stored))
	}
	got := stored[0]
	if got.Status != models.StatusRejected {
		t.Errorf("status = %q, want %q (a decision beats an acknowledgement regardless of dates)", got.Status, models.StatusRejected)
	}
	if !got.LastUpdate.Equal(day(5)) {
		t.Errorf("last update = %v, want %v", got.LastUpdate, day(5))
	}
}

func TestMergeKeepsEarliestDateApplied(t *testing.T) {
	s := openTestStore(t)

	if err := s.Merge([]models.ApplicationRecord{{
		Company:     "Initech",
		DateApplied: day(5),
		Status:      models.StatusSent,
		LastUpdate:  day(5),
	}}); err != nil {
		t.Fatalf("Merge() error = %v", err)
	}
	if err := s.Merge([]models.ApplicationRecord{{
		Company:      "Initech",
		DateApplied:  day(2),
		Status:       models.StatusInterview,
		LastUpdate:   day(8),
		EmailSubject: "Invitation to interview",
	}}); err != nil {
		t.Fatalf("Merge() error = %v", err)
	}

	stored, err := s.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(stored) != 1 {
		t.Fatalf("List() returned %d records, want 1", len(stored))
	}
	got := stored[0]
	if !got.DateApplied.Equal(day(2)) {
		t.Errorf("date applied = %v, want %v", got.DateApplied, day(2))
	}
	if got.Status != models.StatusInterview {
		t.Errorf("status = %q, want %q", got.Status, models.StatusInterview)
	}
	if got.EmailSubject != "Invitation to interview" {
		t.Errorf("subject = %q, want the newest email's subject", got.EmailSubject)
	}
}

func TestMergeIsIdempotent(t *testing.T) {
	s := openTestStore(t)

	records := []models.ApplicationRecord{
		{Company: "Acme", JobTitle: "Data Analyst", DateApplied: day(1), Status: models.StatusRejected, LastUpdate: day(10), EmailSubject: "Update"},
		{Company: "Acme", JobTitle: "", DateApplied: day(3), Status: models.StatusSent, LastUpdate: day(3), EmailSubject: "Thanks"},
	}

	for i := 0; i < 2; i++ {
		if err := s.Merge(records); err != nil {
			t.Fatalf("Merge() pass %d error = %v", i+1, err)
		}
	}

	stored, err := s.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(stored) != 2 {
		t.Fatalf("List() returned %d records, want 2 (titled and untitled groups stay distinct)", len(stored))
	}
}

func TestListOrdersByLastUpdateDesc(t *testing.T) {
	s := openTestStore(t)

	if err := s.Merge([]models.ApplicationRecord{
		{Company: "Acme", DateApplied: day(1), Status: models.StatusSent, LastUpdate: day(1)},
		{Company: "Initech", DateApplied: day(2), Status: models.StatusSent, LastUpdate: day(20)},
		{Company: "Globex", DateApplied: day(3), Status: models.StatusSent, LastUpdate: day(20)},
	}); err != nil {
		t.Fatalf("Merge() error = %v", err)
	}

	stored, err := s.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}

	want := []string{"Globex", "Initech", "Acme"}
	if len(stored) != len(want) {
		t.Fatalf("List() returned %d records, want %d", len(stored), len(want))
	}
	for i, company := range want {
		if stored[i].Company != company {
			t.Errorf("record %d company = %q, want %q", i, stored[i].Company, company)
		}
	}
}
