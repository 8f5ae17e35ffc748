package workflow

import "time"

// BusinessHourFunc reports whether the given instant counts toward
// business-hour totals. Injecting the calendar keeps the arithmetic
// testable and lets deployments swap in local holidays.
type BusinessHourFunc func(time.Time) bool

// DefaultCalendar treats every hour of every day except Sunday as a
// business hour.
func DefaultCalendar(t time.Time) bool {
	return t.Weekday() != time.Sunday
}

// AddBusinessHours advances from start until the requested number of
// business hours, per the calendar, have elapsed. Hours failing the
// calendar are skipped over without being counted, so snoozing on a
// Saturday evening lands on Monday rather than Sunday.
func AddBusinessHours(start time.Time, hours int, cal BusinessHourFunc) time.Time {
	if cal == nil {
		cal = DefaultCalendar
	}
	t := start
	for counted := 0; counted < hours; {
		if cal(t) {
			counted++
		}
		t = t.Add(time.Hour)
	}
	return t
}

// SnoozeUntil returns the instant a snoozed job becomes eligible for
// reminders again: the given number of business hours after now.
func SnoozeUntil(now time.Time, hours int, cal BusinessHourFunc) time.Time {
	return AddBusinessHours(now, hours, cal)
}

// BusinessHoursBetween counts the business hours, possibly fractional,
// between start and end. Returns 0 when end is not after start.
func BusinessHoursBetween(start, end time.Time, cal BusinessHourFunc) float64 {
	if cal == nil {
		cal = DefaultCalendar
	}
	if !end.After(start) {
		return 0
	}
	var total float64
	for t := start; t.Before(end); {
		step := time.Hour
		if remaining := end.Sub(t); remaining < step {
			step = remaining
		}
		if cal(t) {
			total += step.Hours()
		}
		t = t.Add(step)
	}
	return total
}

// ActivityState classifies how stale a job is for the inactivity sweep.
type ActivityState string

const (
	ActivityActive   ActivityState = "ACTIVE"
	ActivityWarning  ActivityState = "WARNING"  // idle 24+ business hours
	ActivityCritical ActivityState = "CRITICAL" // idle 48+ business hours
	ActivitySnoozed  ActivityState = "SNOOZED"
)

// ClassifyActivity maps a job's last activity and snooze window to an
// activity state at the given instant.
func ClassifyActivity(lastActivity time.Time, snoozedTo *time.Time, now time.Time, cal BusinessHourFunc) ActivityState {
	if snoozedTo != nil && now.Before(*snoozedTo) {
		return ActivitySnoozed
	}
	idle := BusinessHoursBetween(lastActivity, now, cal)
	switch {
	case idle >= 48:
		return ActivityCritical
	case idle >= 24:
		return ActivityWarning
	default:
		return ActivityActive
	}
}

// ReminderLevel identifies which escalation a sweep should send for a
// job, if any.
type ReminderLevel string

const (
	ReminderNone ReminderLevel = ""
	Reminder24h  ReminderLevel = "24H"
	Reminder48h  ReminderLevel = "48H"
)

// ReminderDue decides whether an idle job is owed a reminder right now.
// A job gets at most one reminder per level: the 24h reminder when it
// crosses 24 idle business hours, and the 48h escalation once a further
// 24 business hours pass after the previous reminder. Snoozed jobs are
// never due.
func ReminderDue(lastActivity time.Time, lastReminder *time.Time, snoozedTo *time.Time, now time.Time, cal BusinessHourFunc) ReminderLevel {
	if snoozedTo != nil && now.Before(*snoozedTo) {
		return ReminderNone
	}
	idle := BusinessHoursBetween(lastActivity, now, cal)
	if idle < 24 {
		return ReminderNone
	}
	if lastReminder == nil {
		if idle >= 48 {
			return Reminder48h
		}
		return Reminder24h
	}
	if idle >= 48 && BusinessHoursBetween(*lastReminder, now, cal) >= 24 {
		return Reminder48h
	}
	return ReminderNone
}
