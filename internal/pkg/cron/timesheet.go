package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// AbsenceSeeder is the one repository capability the timesheet jobs need.
type AbsenceSeeder interface {
	SeedMissingForDate(ctx context.Context, date time.Time) (int64, error)
}

type TimesheetJobs struct {
	seeder AbsenceSeeder
	loc    *time.Location
}

func NewTimesheetJobs(seeder AbsenceSeeder, loc *time.Location) *TimesheetJobs {
	return &TimesheetJobs{seeder: seeder, loc: loc}
}

func (j *TimesheetJobs) RegisterJobs(scheduler *Scheduler) {
	seedHour := 1
	scheduler.AddJob(Job{
		Name:   "seed_absent_day_records",
		Every:  time.Hour,
		AtHour: &seedHour,
		Fn:     j.SeedAbsentDayRecords,
	})
}

// SeedAbsentDayRecords backfills an absent record for every active employee
// who produced no punches yesterday, so attendance views and payroll see an
// explicit absence instead of a missing row.
func (j *TimesheetJobs) SeedAbsentDayRecords(ctx context.Context) error {
	now := time.Now().In(j.loc)
	yesterday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, j.loc).AddDate(0, 0, -1)

	created, err := j.seeder.SeedMissingForDate(ctx, yesterday)
	if err != nil {
		return fmt.Errorf("failed to seed absent day records: %w", err)
	}

	if created > 0 {
		slog.Info("Cron: Seeded absent day records", "date", yesterday.Format("2006-01-02"), "count", created)
	}
	return nil
}
