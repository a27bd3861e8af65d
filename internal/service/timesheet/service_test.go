package timesheet

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/shopspring/decimal"
	"github.com/silang-hris/payroll-backend-go/internal/domain/employee"
	"github.com/silang-hris/payroll-backend-go/internal/domain/holiday"
	"github.com/silang-hris/payroll-backend-go/internal/domain/leave"
	"github.com/silang-hris/payroll-backend-go/internal/domain/schedule"
	"github.com/silang-hris/payroll-backend-go/internal/domain/timesheet"
	"github.com/silang-hris/payroll-backend-go/internal/pkg/validator"
	scheduleService "github.com/silang-hris/payroll-backend-go/internal/service/schedule"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCompanyID = "co-1"

func authedContext(t *testing.T) context.Context {
	t.Helper()
	tokenAuth := jwtauth.New("HS256", []byte("test-secret"), nil)
	tok, _, err := tokenAuth.Encode(map[string]interface{}{
		"user_id":    "user-1",
		"company_id": testCompanyID,
		"role":       "MANAGER",
		"type":       "access",
	})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), tok, nil)
}

func dayKey(employeeID string, date time.Time) string {
	return employeeID + "|" + date.Format("2006-01-02")
}

type memDayRepo struct {
	records map[string]timesheet.DayRecord
	seq     int
}

func (m *memDayRepo) Upsert(_ context.Context, rec timesheet.DayRecord) (timesheet.DayRecord, error) {
	key := dayKey(rec.EmployeeID, rec.Date)
	if existing, ok := m.records[key]; ok {
		if existing.IsLocked {
			return timesheet.DayRecord{}, timesheet.ErrDayLocked
		}
		rec.ID = existing.ID
		rec.Override = existing.Override
		rec.DayType = existing.DayType
		rec.Status = existing.Status
	} else {
		m.seq++
		rec.ID = fmt.Sprintf("rec-%d", m.seq)
	}
	m.records[key] = rec
	return rec, nil
}

func (m *memDayRepo) GetByEmployeeDate(_ context.Context, employeeID string, date time.Time, _ string) (timesheet.DayRecord, error) {
	rec, ok := m.records[dayKey(employeeID, date)]
	if !ok {
		return timesheet.DayRecord{}, timesheet.ErrDayRecordNotFound
	}
	return rec, nil
}

func (m *memDayRepo) ListByPeriod(_ context.Context, _ string, _, _ time.Time, _ []string) ([]timesheet.DayRecord, error) {
	return nil, nil
}

func (m *memDayRepo) List(_ context.Context, _ string, _ timesheet.DayRecordFilter) ([]timesheet.DayRecord, int64, error) {
	var out []timesheet.DayRecord
	for _, rec := range m.records {
		out = append(out, rec)
	}
	return out, int64(len(out)), nil
}

func (m *memDayRepo) UpdateOverride(_ context.Context, id, _ string, override timesheet.DayOverride) error {
	for key, rec := range m.records {
		if rec.ID != id {
			continue
		}
		if rec.IsLocked {
			return timesheet.ErrDayLocked
		}
		rec.Override = override
		m.records[key] = rec
		return nil
	}
	return timesheet.ErrDayRecordNotFound
}

func (m *memDayRepo) LockByPeriod(_ context.Context, _ string, _, _ time.Time, _ []string) error {
	return nil
}

func (m *memDayRepo) SeedMissingForDate(_ context.Context, _ time.Time) (int64, error) {
	return 0, nil
}

type memEmployeeRepo struct {
	employees map[string]employee.Employee
}

func (m *memEmployeeRepo) GetByID(_ context.Context, id, _ string) (employee.Employee, error) {
	emp, ok := m.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (m *memEmployeeRepo) GetActiveByCompanyID(_ context.Context, _ string) ([]employee.Employee, error) {
	return nil, nil
}

func (m *memEmployeeRepo) GetByIDs(_ context.Context, _ []string, _ string) ([]employee.Employee, error) {
	return nil, nil
}

type memHolidayRepo struct {
	events map[string]holiday.Event
}

func (m *memHolidayRepo) GetByDate(_ context.Context, _ string, date time.Time) (holiday.Event, error) {
	ev, ok := m.events[date.Format("2006-01-02")]
	if !ok {
		return holiday.Event{}, holiday.ErrHolidayNotFound
	}
	return ev, nil
}

func (m *memHolidayRepo) ListByRange(_ context.Context, _ string, _, _ time.Time) (map[string]holiday.Event, error) {
	return m.events, nil
}

func (m *memHolidayRepo) Upsert(_ context.Context, ev holiday.Event) (holiday.Event, error) {
	m.events[ev.Date.Format("2006-01-02")] = ev
	return ev, nil
}

func (m *memHolidayRepo) Delete(_ context.Context, _, _ string) error { return nil }

type memLeaveRepo struct{}

func (memLeaveRepo) ListApprovedByRange(_ context.Context, _ string, _, _ time.Time, _ []string) ([]leave.Grant, error) {
	return nil, nil
}

func (memLeaveRepo) GetApprovedByEmployeeDate(_ context.Context, _ string, _ time.Time, _ string) (leave.Grant, error) {
	return leave.Grant{}, leave.ErrGrantNotFound
}

type memShiftRepo struct {
	templates map[string]schedule.ShiftTemplate
}

func (m *memShiftRepo) Create(_ context.Context, s schedule.ShiftTemplate) (schedule.ShiftTemplate, error) {
	m.templates[s.ID] = s
	return s, nil
}

func (m *memShiftRepo) GetByID(_ context.Context, id, _ string) (schedule.ShiftTemplate, error) {
	tpl, ok := m.templates[id]
	if !ok {
		return schedule.ShiftTemplate{}, schedule.ErrShiftNotFound
	}
	return tpl, nil
}

func (m *memShiftRepo) GetByIDs(_ context.Context, ids []string, _ string) (map[string]schedule.ShiftTemplate, error) {
	out := make(map[string]schedule.ShiftTemplate)
	for _, id := range ids {
		if tpl, ok := m.templates[id]; ok {
			out[id] = tpl
		}
	}
	return out, nil
}

func (m *memShiftRepo) ListByCompanyID(_ context.Context, _ string) ([]schedule.ShiftTemplate, error) {
	return nil, nil
}

func (m *memShiftRepo) Update(_ context.Context, _ schedule.ShiftTemplate) error { return nil }
func (m *memShiftRepo) Delete(_ context.Context, _, _ string) error              { return nil }

type timesheetFixture struct {
	svc  TimesheetService
	days *memDayRepo
}

func newTimesheetFixture() *timesheetFixture {
	shiftID := "shift-day"
	days := &memDayRepo{records: map[string]timesheet.DayRecord{}}

	svc := NewTimesheetService(
		days,
		&memEmployeeRepo{employees: map[string]employee.Employee{
			"emp-1": {
				ID:             "emp-1",
				CompanyID:      testCompanyID,
				DefaultShiftID: &shiftID,
				IsActive:       true,
				PayProfile: employee.PayProfile{
					WageType:            employee.WageTypeMonthly,
					BaseRate:            decimal.NewFromInt(26000),
					StandardHoursPerDay: 8,
				},
			},
		}},
		&memHolidayRepo{events: map[string]holiday.Event{}},
		memLeaveRepo{},
		scheduleService.NewResolver(&memShiftRepo{templates: map[string]schedule.ShiftTemplate{
			shiftID: {
				ID:           shiftID,
				CompanyID:    testCompanyID,
				Name:         "Standard Office Hours",
				StartMinute:  9 * 60,
				EndMinute:    18 * 60,
				BreakMinutes: 60,
			},
		}}),
		manila,
	)

	return &timesheetFixture{svc: svc, days: days}
}

func rfc3339Ptr(t time.Time) *string {
	s := t.Format(time.RFC3339)
	return &s
}

func TestImportPunches(t *testing.T) {
	t.Parallel()

	f := newTimesheetFixture()
	ctx := authedContext(t)

	resp, err := f.svc.ImportPunches(ctx, timesheet.ImportPunchesRequest{Punches: []timesheet.PunchRow{
		{
			EmployeeID: "emp-1",
			Date:       "2025-03-10",
			ClockIn:    rfc3339Ptr(time.Date(2025, 3, 10, 9, 0, 0, 0, manila)),
			ClockOut:   rfc3339Ptr(time.Date(2025, 3, 10, 18, 0, 0, 0, manila)),
		},
		{
			EmployeeID: "emp-1",
			Date:       "2025-03-11",
			ClockIn:    rfc3339Ptr(time.Date(2025, 3, 11, 9, 0, 0, 0, manila)),
		},
	}})

	require.NoError(t, err)
	assert.Equal(t, 2, resp.Imported)
	assert.Zero(t, resp.Skipped)
	assert.Empty(t, resp.Errors)
	assert.Len(t, f.days.records, 2)
}

func TestImportPunches_EmptyRequest(t *testing.T) {
	t.Parallel()

	f := newTimesheetFixture()

	_, err := f.svc.ImportPunches(authedContext(t), timesheet.ImportPunchesRequest{})

	assert.Error(t, err)
}

func TestImportPunches_BadRowsReportedNotFatal(t *testing.T) {
	t.Parallel()

	f := newTimesheetFixture()
	badOut := "not-a-timestamp"

	resp, err := f.svc.ImportPunches(authedContext(t), timesheet.ImportPunchesRequest{Punches: []timesheet.PunchRow{
		{
			EmployeeID: "emp-1",
			Date:       "2025-03-10",
			ClockIn:    rfc3339Ptr(time.Date(2025, 3, 10, 18, 0, 0, 0, manila)),
			ClockOut:   rfc3339Ptr(time.Date(2025, 3, 10, 9, 0, 0, 0, manila)),
		},
		{
			EmployeeID: "emp-1",
			Date:       "2025-03-11",
			ClockOut:   &badOut,
		},
		{
			EmployeeID: "emp-1",
			Date:       "2025-03-12",
			ClockIn:    rfc3339Ptr(time.Date(2025, 3, 12, 9, 0, 0, 0, manila)),
		},
	}})

	require.NoError(t, err)
	assert.Equal(t, 1, resp.Imported, "the valid row still lands")
	assert.Len(t, resp.Errors, 2)
}

func TestImportPunches_LockedRecordSkipped(t *testing.T) {
	t.Parallel()

	f := newTimesheetFixture()
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	f.days.records[dayKey("emp-1", date)] = timesheet.DayRecord{
		ID: "rec-locked", EmployeeID: "emp-1", CompanyID: testCompanyID,
		Date: date, IsLocked: true,
	}

	resp, err := f.svc.ImportPunches(authedContext(t), timesheet.ImportPunchesRequest{Punches: []timesheet.PunchRow{
		{
			EmployeeID: "emp-1",
			Date:       "2025-03-10",
			ClockIn:    rfc3339Ptr(time.Date(2025, 3, 10, 9, 0, 0, 0, manila)),
			ClockOut:   rfc3339Ptr(time.Date(2025, 3, 10, 18, 0, 0, 0, manila)),
		},
	}})

	require.NoError(t, err)
	assert.Zero(t, resp.Imported)
	assert.Equal(t, 1, resp.Skipped, "locked days are approved payroll facts")
}

func TestImportPunches_ReimportKeepsStoredClassification(t *testing.T) {
	t.Parallel()

	f := newTimesheetFixture()
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	f.days.records[dayKey("emp-1", date)] = timesheet.DayRecord{
		ID: "rec-1", EmployeeID: "emp-1", CompanyID: testCompanyID,
		Date: date, DayType: timesheet.DayTypeRestDay, Status: timesheet.StatusNoData,
	}

	_, err := f.svc.ImportPunches(authedContext(t), timesheet.ImportPunchesRequest{Punches: []timesheet.PunchRow{
		{
			EmployeeID: "emp-1",
			Date:       "2025-03-10",
			ClockIn:    rfc3339Ptr(time.Date(2025, 3, 10, 9, 0, 0, 0, manila)),
			ClockOut:   rfc3339Ptr(time.Date(2025, 3, 10, 13, 0, 0, 0, manila)),
		},
	}})
	require.NoError(t, err)

	stored := f.days.records[dayKey("emp-1", date)]
	assert.Equal(t, timesheet.DayTypeRestDay, stored.DayType, "a marked rest day survives a punch re-import")
	assert.NotNil(t, stored.ClockIn)
}

func TestGetDay_ReconcilesOnRead(t *testing.T) {
	t.Parallel()

	f := newTimesheetFixture()
	ctx := authedContext(t)
	_, err := f.svc.ImportPunches(ctx, timesheet.ImportPunchesRequest{Punches: []timesheet.PunchRow{
		{
			EmployeeID: "emp-1",
			Date:       "2025-03-10",
			ClockIn:    rfc3339Ptr(time.Date(2025, 3, 10, 9, 10, 0, 0, manila)),
			ClockOut:   rfc3339Ptr(time.Date(2025, 3, 10, 18, 0, 0, 0, manila)),
		},
	}})
	require.NoError(t, err)

	day, err := f.svc.GetDay(ctx, "emp-1", "2025-03-10")
	require.NoError(t, err)

	assert.Equal(t, string(timesheet.StatusPresent), day.Status)
	assert.Equal(t, 10, day.LateMinutes)
	assert.Equal(t, 470, day.WorkedMinutes)
}

func TestGetDay_NotFound(t *testing.T) {
	t.Parallel()

	f := newTimesheetFixture()

	_, err := f.svc.GetDay(authedContext(t), "emp-1", "2025-03-10")

	assert.ErrorIs(t, err, timesheet.ErrDayRecordNotFound)
}

func TestGetDay_InvalidDate(t *testing.T) {
	t.Parallel()

	f := newTimesheetFixture()

	_, err := f.svc.GetDay(authedContext(t), "emp-1", "10-03-2025")

	assert.Error(t, err)
}

func TestUpsertOverride_ApprovalChangesFigures(t *testing.T) {
	t.Parallel()

	f := newTimesheetFixture()
	ctx := authedContext(t)
	_, err := f.svc.ImportPunches(ctx, timesheet.ImportPunchesRequest{Punches: []timesheet.PunchRow{
		{
			EmployeeID: "emp-1",
			Date:       "2025-03-10",
			ClockIn:    rfc3339Ptr(time.Date(2025, 3, 10, 8, 30, 0, 0, manila)),
			ClockOut:   rfc3339Ptr(time.Date(2025, 3, 10, 18, 0, 0, 0, manila)),
		},
	}})
	require.NoError(t, err)

	before, err := f.svc.GetDay(ctx, "emp-1", "2025-03-10")
	require.NoError(t, err)
	assert.Zero(t, before.OtEarlyInMinutes)
	assert.Equal(t, 30, before.PendingEarlyInMinutes)

	approved := true
	after, err := f.svc.UpsertOverride(ctx, timesheet.UpsertOverrideRequest{
		EmployeeID:      "emp-1",
		Date:            "2025-03-10",
		EarlyInApproved: &approved,
	})
	require.NoError(t, err)

	assert.Equal(t, 30, after.OtEarlyInMinutes)
	assert.Equal(t, 510, after.WorkedMinutes)
}

func TestUpsertOverride_MergesWithExisting(t *testing.T) {
	t.Parallel()

	f := newTimesheetFixture()
	ctx := authedContext(t)
	_, err := f.svc.ImportPunches(ctx, timesheet.ImportPunchesRequest{Punches: []timesheet.PunchRow{
		{
			EmployeeID: "emp-1",
			Date:       "2025-03-10",
			ClockIn:    rfc3339Ptr(time.Date(2025, 3, 10, 8, 30, 0, 0, manila)),
			ClockOut:   rfc3339Ptr(time.Date(2025, 3, 10, 18, 0, 0, 0, manila)),
		},
	}})
	require.NoError(t, err)

	earlyIn := true
	_, err = f.svc.UpsertOverride(ctx, timesheet.UpsertOverrideRequest{
		EmployeeID: "emp-1", Date: "2025-03-10", EarlyInApproved: &earlyIn,
	})
	require.NoError(t, err)

	// A second partial edit must not wipe the first approval.
	zero := 0
	day, err := f.svc.UpsertOverride(ctx, timesheet.UpsertOverrideRequest{
		EmployeeID: "emp-1", Date: "2025-03-10", BreakMinutesOverride: &zero,
	})
	require.NoError(t, err)

	assert.Equal(t, 30, day.OtEarlyInMinutes)
	assert.Equal(t, 60, day.OtBreakMinutes)
}

func TestUpsertOverride_MalformedDailyRateRejected(t *testing.T) {
	t.Parallel()

	f := newTimesheetFixture()
	ctx := authedContext(t)
	_, err := f.svc.ImportPunches(ctx, timesheet.ImportPunchesRequest{Punches: []timesheet.PunchRow{
		{
			EmployeeID: "emp-1",
			Date:       "2025-03-10",
			ClockIn:    rfc3339Ptr(time.Date(2025, 3, 10, 9, 0, 0, 0, manila)),
			ClockOut:   rfc3339Ptr(time.Date(2025, 3, 10, 18, 0, 0, 0, manila)),
		},
	}})
	require.NoError(t, err)

	for _, bad := range []string{"banana", "-100"} {
		rate := bad
		_, err := f.svc.UpsertOverride(ctx, timesheet.UpsertOverrideRequest{
			EmployeeID: "emp-1", Date: "2025-03-10", DailyRateOverride: &rate,
		})

		var vErrs validator.ValidationErrors
		require.ErrorAs(t, err, &vErrs, "rate %q must be rejected", bad)
		assert.Contains(t, vErrs.ToMap(), "daily_rate_override")
	}

	stored := f.days.records[dayKey("emp-1", time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC))]
	assert.Nil(t, stored.Override.DailyRateOverride, "a rejected rate never persists")
}

func TestUpsertOverride_LockedRejected(t *testing.T) {
	t.Parallel()

	f := newTimesheetFixture()
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	f.days.records[dayKey("emp-1", date)] = timesheet.DayRecord{
		ID: "rec-locked", EmployeeID: "emp-1", CompanyID: testCompanyID,
		Date: date, IsLocked: true,
	}

	approved := true
	_, err := f.svc.UpsertOverride(authedContext(t), timesheet.UpsertOverrideRequest{
		EmployeeID: "emp-1", Date: "2025-03-10", EarlyInApproved: &approved,
	})

	assert.ErrorIs(t, err, timesheet.ErrDayLocked)
}
