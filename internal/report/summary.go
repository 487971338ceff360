package report

import (
	"github.com/sirupsen/logrus"

	"github.com/romado33/JobApplicationTracker/internal/models"
)

// Summary holds per-status counts for one set of application records.
type Summary struct {
	Total     int
	Sent      int
	Rejected  int
	Interview int
}

// Summarize counts the records per status.
func Summarize(records []models.ApplicationRecord) Summary {
	s := Summary{Total: len(records)}
	for _, record := range records {
		switch record.Status {
		case models.StatusSent:
			s.Sent++
		case models.StatusRejected:
			s.Rejected++
		case models.StatusInterview:
			s.Interview++
		}
	}
	return s
}

// Fields renders the summary as structured log fields.
func (s Summary) Fields() logrus.Fields {
	return logrus.Fields{
		"applications": s.Total,
		"sent":         s.Sent,
		"rejected":     s.Rejected,
		"interview":    s.Interview,
	}
}
