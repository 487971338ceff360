package tracker

import (
	"testing"
	"time"

	"github.com/romado33/JobApplicationTracker/internal/classifier"
	"github.com/romado33/JobApplicationTracker/internal/models"
)

func day(n int) time.Time {
	return time.Date(2025, time.June, n, 12, 0, 0, 0, time.UTC)
}

func classified(company, title string, status models.Status, date time.Time, subject string) Classified {
	return Classified{
		Email: models.Email{
			Subject: subject,
			Date:    date,
		},
		Result: classifier.Result{
			Relevant: true,
			Status:   status,
			Company:  company,
			JobTitle: title,
		},
	}
}

func TestAggregateLifecycle(t *testing.T) {
	items := []Classified{
		classified("Acme", "Data Analyst", models.StatusSent, day(1), "Thank you for applying"),
		classified("Acme", "Data Analyst", models.StatusInterview, day(5), "Interview invitation"),
		classified("Acme", "Data Analyst", models.StatusSent, day(10), "We received your application"),
	}

	records := Aggregate(items)
	if len(records) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(records))
	}

	record := records[0]
	if record.Status != models.StatusInterview {
		t.Errorf("Expected status to stay %q, got %q", models.StatusInterview, record.Status)
	}
	if !record.DateApplied.Equal(day(1)) {
		t.Errorf("Expected DateApplied %v, got %v", day(1), record.DateApplied)
	}
	if !record.LastUpdate.Equal(day(10)) {
		t.Errorf("Expected LastUpdate %v, got %v", day(10), record.LastUpdate)
	}
	if record.EmailSubject != "We received your application" {
		t.Errorf("Expected subject of newest email, got %q", record.EmailSubject)
	}
}

func TestAggregateOrderIndependent(t *testing.T) {
	ordered := []Classified{
		classified("Acme", "Data Analyst", models.StatusSent, day(1), "ack"),
		classified("Acme", "Data Analyst", models.StatusRejected, day(5), "rejection"),
	}
	shuffled := []Classified{ordered[1], ordered[0]}

	a := Aggregate(ordered)
	b := Aggregate(shuffled)

	if len(a) != 1 || len(b) != 1 {
		t.Fatalf("Expected 1 record each, got %d and %d", len(a), len(b))
	}
	if a[0] != b[0] {
		t.Errorf("Expected order-independent result, got %+v vs %+v", a[0], b[0])
	}
	if a[0].Status != models.StatusRejected {
		t.Errorf("Expected %q, got %q", models.StatusRejected, a[0].Status)
	}
}

func TestAggregateStatusTransitions(t *testing.T) {
	tests := []struct {
		name     string
		statuses []models.Status
		want     models.Status
	}{
		{
			name:     "sent refreshes sent",
			statuses: []models.Status{models.StatusSent, models.StatusSent},
			want:     models.StatusSent,
		},
		{
			name:     "rejection overrides sent",
			statuses: []models.Status{models.StatusSent, models.StatusRejected},
			want:     models.StatusRejected,
		},
		{
			name:     "late acknowledgement keeps rejection",
			statuses: []models.Status{models.StatusRejected, models.StatusSent},
			want:     models.StatusRejected,
		},
		{
			name:     "late acknowledgement keeps interview",
			statuses: []models.Status{models.StatusInterview, models.StatusSent},
			want:     models.StatusInterview,
		},
		{
			name:     "rejection after interview",
			statuses: []models.Status{models.StatusInterview, models.StatusRejected},
			want:     models.StatusRejected,
		},
		{
			name:     "interview after rejection",
			statuses: []models.Status{models.StatusRejected, models.StatusInterview},
			want:     models.StatusInterview,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			var items []Classified
			for i, status := range tt.statuses {
				items = append(items, classified("Acme", "Engineer", status, day(i+1), "subject"))
			}

			records := Aggregate(items)
			if len(records) != 1 {
				t.Fatalf("Expected 1 record, got %d", len(records))
			}
			if records[0].Status != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, records[0].Status)
			}
		})
	}
}

func TestAggregateDateApplied(t *testing.T) {
	// A rejection arrives before the acknowledgement is scanned;
	// DateApplied must settle on the acknowledgement date.
	items := []Classified{
		classified("Acme", "Engineer", models.StatusRejected, day(2), "rejection"),
		classified("Acme", "Engineer", models.StatusSent, day(4), "ack"),
	}

	records := Aggregate(items)
	if len(records) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(records))
	}
	if !records[0].DateApplied.Equal(day(4)) {
		t.Errorf("Expected DateApplied %v (first acknowledgement), got %v", day(4), records[0].DateApplied)
	}
	if records[0].Status != models.StatusRejected {
		t.Errorf("Expected status %q, got %q", models.StatusRejected, records[0].Status)
	}
	if !records[0].LastUpdate.Equal(day(4)) {
		t.Errorf("Expected LastUpdate %v, got %v", day(4), records[0].LastUpdate)
	}
}

func TestAggregateGrouping(t *testing.T) {
	items := []Classified{
		classified("Acme", "Data Analyst", models.StatusSent, day(1), "a"),
		classified("acme", "data  analyst", models.StatusRejected, day(2), "b"),
		classified("Acme", "Platform Engineer", models.StatusSent, day(3), "c"),
		classified("Acme", "", models.StatusSent, day(4), "d"),
		classified("Hooli", "Data Analyst", models.StatusSent, day(5), "e"),
	}

	records := Aggregate(items)
	if len(records) != 4 {
		t.Fatalf("Expected 4 records, got %d", len(records))
	}

	// Case and whitespace variants of the same application merge.
	if records[0].Status != models.StatusRejected {
		t.Errorf("Expected variants to merge into %q, got %q", models.StatusRejected, records[0].Status)
	}

	// Output follows first-appearance order.
	wantSubjects := []string{"b", "c", "d", "e"}
	for i, want := range wantSubjects {
		if records[i].EmailSubject != want {
			t.Errorf("Record %d: expected subject %q, got %q", i, want, records[i].EmailSubject)
		}
	}
}

func TestAggregateSkipsIrrelevantAndUndated(t *testing.T) {
	items := []Classified{
		{
			Email:  models.Email{Subject: "noise", Date: day(1)},
			Result: classifier.Result{Relevant: false},
		},
		{
			Email:  models.Email{Subject: "undated"},
			Result: classifier.Result{Relevant: true, Status: models.StatusSent, Company: "Acme"},
		},
	}

	if records := Aggregate(items); len(records) != 0 {
		t.Errorf("Expected no records, got %d", len(records))
	}
}

func TestAggregateEmpty(t *testing.T) {
	if records := Aggregate(nil); len(records) != 0 {
		t.Errorf("Expected no records for nil input, got %d", len(records))
	}
}
