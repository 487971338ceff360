package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"

	"github.com/romado33/JobApplicationTracker/internal/models"
)

// Column order of the report, fixed by contract with downstream consumers.
var header = []string{
	"Company",
	"Job Title",
	"Date Applied",
	"Current Status",
	"Last Update",
	"Email Subject",
}

const dateLayout = "2006-01-02"

// WriteCSV renders the records as a CSV file at path, most recent update
// first, ties broken by company name. The input slice is not modified.
func WriteCSV(path string, records []models.ApplicationRecord) error {
	sorted := make([]models.ApplicationRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].LastUpdate.Equal(sorted[j].LastUpdate) {
			return sorted[i].LastUpdate.After(sorted[j].LastUpdate)
		}
		return sorted[i].Company < sorted[j].Company
	})

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating report file: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	writer := csv.NewWriter(file)

	if err := writer.Write(header); err != nil {
		return fmt.Errorf("error writing report header: %w", err)
	}

	for _, record := range sorted {
		row := []string{
			record.Company,
			record.JobTitle,
			record.DateApplied.Format(dateLayout),
			string(record.Status),
			record.LastUpdate.Format(dateLayout),
			record.EmailSubject,
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("error writing report row for %q: %w", record.Company, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("error flushing report: %w", err)
	}
	return nil
}
