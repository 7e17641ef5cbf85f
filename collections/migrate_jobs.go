package collections

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase"
)

// ScheduledDateLayout is the stored form of a job's scheduled date.
const ScheduledDateLayout = "2006-01-02"

var scheduledDateInputLayouts = []string{
	ScheduledDateLayout,
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05.000Z",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"01/02/2006",
}

// NormalizeScheduledDate converts a date or timestamp into YYYY-MM-DD. An
// empty input stays empty.
func NormalizeScheduledDate(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}
	for _, layout := range scheduledDateInputLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC().Format(ScheduledDateLayout), nil
		}
	}
	return "", fmt.Errorf("invalid scheduled date %q", raw)
}

// MigrateScheduledDates rewrites job scheduled dates stored as full
// timestamps into YYYY-MM-DD. Safe to call on every startup -- returns early
// if nothing to migrate.
func MigrateScheduledDates(app *pocketbase.PocketBase) error {
	jobsCol, err := app.FindCollectionByNameOrId("jobs")
	if err != nil {
		return fmt.Errorf("migrate: could not find jobs collection: %w", err)
	}

	jobs, err := app.FindRecordsByFilter(jobsCol, "scheduled_date ~ ':'", "", 0, 0, nil)
	if err != nil {
		return fmt.Errorf("migrate: could not query jobs: %w", err)
	}
	if len(jobs) == 0 {
		return nil
	}

	log.Printf("migrate: found %d job(s) with timestamp scheduled dates -- normalising...\n", len(jobs))

	for _, job := range jobs {
		raw := job.GetString("scheduled_date")
		date, err := NormalizeScheduledDate(raw)
		if err != nil {
			log.Printf("migrate: job %s: %v\n", job.Id, err)
			continue
		}
		job.Set("scheduled_date", date)
		if err := app.Save(job); err != nil {
			log.Printf("migrate: failed to save job %s: %v\n", job.Id, err)
			continue
		}
	}

	log.Println("migrate: scheduled date migration complete.")
	return nil
}
