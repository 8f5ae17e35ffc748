package workflow

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func allHours(time.Time) bool { return true }

func TestAddBusinessHours_AllHoursCalendar(t *testing.T) {
	now := time.Date(2026, time.March, 2, 9, 30, 0, 0, time.UTC)
	got := AddBusinessHours(now, 24, allHours)
	assert.Equal(t, now.Add(24*time.Hour), got)
}

func TestAddBusinessHours_SkipsSunday(t *testing.T) {
	// Saturday 18:00; the default calendar excludes all of Sunday, so
	// 24 business hours spans the skipped day as well.
	sat := time.Date(2026, time.March, 7, 18, 0, 0, 0, time.UTC)
	got := AddBusinessHours(sat, 24, DefaultCalendar)
	assert.Equal(t, time.Date(2026, time.March, 9, 18, 0, 0, 0, time.UTC), got)
	assert.Equal(t, time.Monday, got.Weekday())
}

func TestAddBusinessHours_PreservesSubHourOffset(t *testing.T) {
	sat := time.Date(2026, time.March, 7, 23, 45, 0, 0, time.UTC)
	got := AddBusinessHours(sat, 24, DefaultCalendar)
	assert.Equal(t, 45, got.Minute())
}

func TestSnoozeUntil(t *testing.T) {
	now := time.Date(2026, time.March, 3, 10, 0, 0, 0, time.UTC) // Tuesday
	assert.Equal(t, now.Add(24*time.Hour), SnoozeUntil(now, 24, DefaultCalendar))
}

func TestBusinessHoursBetween(t *testing.T) {
	mon := time.Date(2026, time.March, 2, 8, 0, 0, 0, time.UTC)

	assert.Equal(t, 0.0, BusinessHoursBetween(mon, mon, allHours))
	assert.Equal(t, 0.0, BusinessHoursBetween(mon, mon.Add(-time.Hour), allHours))
	assert.InDelta(t, 5.5, BusinessHoursBetween(mon, mon.Add(5*time.Hour+30*time.Minute), allHours), 1e-9)

	// Saturday noon to Monday noon: Sunday contributes nothing.
	sat := time.Date(2026, time.March, 7, 12, 0, 0, 0, time.UTC)
	assert.InDelta(t, 24.0, BusinessHoursBetween(sat, sat.Add(48*time.Hour), DefaultCalendar), 1e-9)
}

func TestClassifyActivity(t *testing.T) {
	now := time.Date(2026, time.March, 3, 12, 0, 0, 0, time.UTC) // Tuesday
	snoozed := now.Add(2 * time.Hour)
	expired := now.Add(-time.Hour)

	tests := []struct {
		name         string
		lastActivity time.Time
		snoozedTo    *time.Time
		want         ActivityState
	}{
		{"fresh", now.Add(-2 * time.Hour), nil, ActivityActive},
		{"idle one day", now.Add(-30 * time.Hour), nil, ActivityWarning},
		{"idle two days", now.Add(-50 * time.Hour), nil, ActivityCritical},
		{"snoozed hides staleness", now.Add(-50 * time.Hour), &snoozed, ActivitySnoozed},
		{"expired snooze ignored", now.Add(-50 * time.Hour), &expired, ActivityCritical},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyActivity(tt.lastActivity, tt.snoozedTo, now, allHours))
		})
	}
}

func TestReminderDue(t *testing.T) {
	now := time.Date(2026, time.March, 3, 12, 0, 0, 0, time.UTC)
	firstReminder := now.Add(-30 * time.Hour)
	recentReminder := now.Add(-2 * time.Hour)
	snoozed := now.Add(time.Hour)

	tests := []struct {
		name         string
		lastActivity time.Time
		lastReminder *time.Time
		snoozedTo    *time.Time
		want         ReminderLevel
	}{
		{"fresh job", now.Add(-3 * time.Hour), nil, nil, ReminderNone},
		{"first escalation at 24h", now.Add(-26 * time.Hour), nil, nil, Reminder24h},
		{"straight to 48h when never reminded", now.Add(-60 * time.Hour), nil, nil, Reminder48h},
		{"second escalation after another day", now.Add(-60 * time.Hour), &firstReminder, nil, Reminder48h},
		{"recently reminded", now.Add(-60 * time.Hour), &recentReminder, nil, ReminderNone},
		{"snoozed job skipped", now.Add(-60 * time.Hour), nil, &snoozed, ReminderNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ReminderDue(tt.lastActivity, tt.lastReminder, tt.snoozedTo, now, allHours))
		})
	}
}
