package tracker

import (
	"sort"

	"github.com/romado33/JobApplicationTracker/internal/classifier"
	"github.com/romado33/JobApplicationTracker/internal/logging"
	"github.com/romado33/JobApplicationTracker/internal/models"
)

// Classified pairs an email with its classification result.
type Classified struct {
	Email  models.Email
	Result classifier.Result
}

// entry carries per-application bookkeeping that is not part of the output
// record.
type entry struct {
	record   models.ApplicationRecord
	sentSeen bool
}

// Aggregate folds classified emails into one ApplicationRecord per
// application identity. Emails are processed oldest first regardless of
// input order, and output records are ordered by the first appearance of
// each application, so repeated runs over the same input are identical.
//
// Within one application the status follows the override rule: a decision
// (rejection or interview) sticks, while acknowledgements only refresh
// other acknowledgements. DateApplied is the date of the first
// acknowledgement, or of the earliest email until one arrives. LastUpdate
// and EmailSubject always track the newest email.
func Aggregate(items []Classified) []models.ApplicationRecord {
	sorted := make([]Classified, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Email.Date.Before(sorted[j].Email.Date)
	})

	byKey := make(map[string]*entry)
	var order []string

	for _, item := range sorted {
		if !item.Result.Relevant {
			continue
		}
		if item.Email.Date.IsZero() {
			logging.Log.Warnf("Skipping email without a date: %q", item.Email.Subject)
			continue
		}

		key := models.ApplicationKey(item.Result.Company, item.Result.JobTitle)
		current, ok := byKey[key]
		if !ok {
			byKey[key] = &entry{
				record: models.ApplicationRecord{
					Company:      item.Result.Company,
					JobTitle:     item.Result.JobTitle,
					DateApplied:  item.Email.Date,
					Status:       item.Result.Status,
					LastUpdate:   item.Email.Date,
					EmailSubject: item.Email.Subject,
				},
				sentSeen: item.Result.Status == models.StatusSent,
			}
			order = append(order, key)
			continue
		}

		current.record.LastUpdate = item.Email.Date
		current.record.EmailSubject = item.Email.Subject
		if item.Result.Status.Overrides(current.record.Status) {
			current.record.Status = item.Result.Status
		}
		if item.Result.Status == models.StatusSent && !current.sentSeen {
			current.record.DateApplied = item.Email.Date
			current.sentSeen = true
		}
	}

	records := make([]models.ApplicationRecord, 0, len(order))
	for _, key := range order {
		records = append(records, byKey[key].record)
	}
	return records
}
