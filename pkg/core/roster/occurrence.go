package roster

import (
	"sort"
	"strings"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/jakechorley/duty-roster/pkg/db"
)

// ClockLayout is the 12-hour time-of-day format used by recurring events,
// e.g. "10:00 AM"
const ClockLayout = "3:04 PM"

// DateLayout is the ISO date format used for duty assignment dates
const DateLayout = "2006-01-02"

// Occurrence is one concrete date instance of a recurring event
type Occurrence struct {
	Date  time.Time
	Event db.RecurringEvent
}

// DateString returns the occurrence date in ISO form
func (o Occurrence) DateString() string {
	return o.Date.Format(DateLayout)
}

var weekdays = map[string]rrule.Weekday{
	"sunday":    rrule.SU,
	"monday":    rrule.MO,
	"tuesday":   rrule.TU,
	"wednesday": rrule.WE,
	"thursday":  rrule.TH,
	"friday":    rrule.FR,
	"saturday":  rrule.SA,
}

// Display ordering for weekday names, Sunday first
var weekdayOrder = map[string]int{
	"sunday": 0, "monday": 1, "tuesday": 2, "wednesday": 3,
	"thursday": 4, "friday": 5, "saturday": 6,
}

var timeWeekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// ParseWeekday resolves a day-of-week name to its recurrence weekday.
// Matching is case-insensitive and whitespace-trimmed; ok is false for
// anything that is not one of the seven recognized names.
func ParseWeekday(day string) (rrule.Weekday, bool) {
	wd, ok := weekdays[strings.ToLower(strings.TrimSpace(day))]
	return wd, ok
}

// TimeWeekday resolves a day-of-week name to the standard library weekday,
// with the same matching rules as ParseWeekday
func TimeWeekday(day string) (time.Weekday, bool) {
	wd, ok := timeWeekdays[strings.ToLower(strings.TrimSpace(day))]
	return wd, ok
}

// WeekdayOrder returns the display sort position of a day name, Sunday
// first. Unrecognized names sort last.
func WeekdayOrder(day string) int {
	if pos, ok := weekdayOrder[strings.ToLower(strings.TrimSpace(day))]; ok {
		return pos
	}
	return len(weekdayOrder)
}

// ParseClock parses a 12-hour time-of-day value such as "10:00 AM"
func ParseClock(value string) (time.Time, error) {
	return time.Parse(ClockLayout, strings.TrimSpace(value))
}

// MonthBounds returns the first day of the given month and the first day of
// the following month, both at midnight UTC. The end bound is exclusive and
// rolls the year at December.
func MonthBounds(year, month int) (start, end time.Time) {
	start = time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end = start.AddDate(0, 1, 0)
	return start, end
}

// ExpandMonth produces every concrete (date, event) occurrence in the given
// month, in ascending date order. Events whose day-of-week does not resolve
// to a recognized weekday name are skipped rather than failing the
// expansion: a misspelled day is a data-quality problem, not an error.
//
// The result is a pure function of its inputs; expanding the same month
// twice yields the same sequence.
func ExpandMonth(events []db.RecurringEvent, year, month int) []Occurrence {
	start, end := MonthBounds(year, month)

	var occurrences []Occurrence
	for _, event := range events {
		weekday, ok := ParseWeekday(event.Day)
		if !ok {
			continue
		}

		rule, err := rrule.NewRRule(rrule.ROption{
			Freq:      rrule.WEEKLY,
			Byweekday: []rrule.Weekday{weekday},
			Dtstart:   start,
			// Until is inclusive; the last candidate instant is midnight on
			// the month's final day
			Until: end.AddDate(0, 0, -1),
		})
		if err != nil {
			continue
		}

		for _, date := range rule.All() {
			occurrences = append(occurrences, Occurrence{Date: date, Event: event})
		}
	}

	sort.SliceStable(occurrences, func(i, j int) bool {
		if !occurrences[i].Date.Equal(occurrences[j].Date) {
			return occurrences[i].Date.Before(occurrences[j].Date)
		}
		ti := clockOrDefault(occurrences[i].Event.Time)
		tj := clockOrDefault(occurrences[j].Event.Time)
		if !ti.Equal(tj) {
			return ti.Before(tj)
		}
		return occurrences[i].Event.ID < occurrences[j].Event.ID
	})

	return occurrences
}

// clockOrDefault parses an event time, falling back to midnight for values
// that do not parse so that malformed times still sort stably
func clockOrDefault(value string) time.Time {
	t, err := ParseClock(value)
	if err != nil {
		return time.Time{}
	}
	return t
}
