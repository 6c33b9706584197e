// Package hours answers whether the business is currently open, purely as
// a function of a fixed schedule and an explicit "now". Callers always pass
// the instant in; the package never reads the wall clock itself.
package hours

import (
	"fmt"
	"strings"
	"time"
)

// TimeOfDay is a local wall-clock time within the schedule's timezone.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// ParseTimeOfDay parses "HH:MM".
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("invalid time of day %q: %w", s, err)
	}
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute()}, nil
}

// weekdayNames maps the short names used in configuration.
var weekdayNames = map[string]time.Weekday{
	"sun": time.Sunday, "mon": time.Monday, "tue": time.Tuesday,
	"wed": time.Wednesday, "thu": time.Thursday, "fri": time.Friday,
	"sat": time.Saturday,
}

// ParseWeekdays parses short weekday names ("mon", "tue", ...).
func ParseWeekdays(names []string) ([]time.Weekday, error) {
	days := make([]time.Weekday, 0, len(names))
	for _, name := range names {
		day, ok := weekdayNames[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return nil, fmt.Errorf("invalid weekday %q", name)
		}
		days = append(days, day)
	}
	return days, nil
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// minutes returns the offset from midnight, for interval comparisons.
func (t TimeOfDay) minutes() int {
	return t.Hour*60 + t.Minute
}

// Schedule is the immutable opening-hours configuration.
type Schedule struct {
	location *time.Location
	openDays map[time.Weekday]bool
	open     TimeOfDay
	close    TimeOfDay
}

// closedMessages are the pre-templated closed-state texts per language key.
// Dutch is the fallback for unrecognized keys.
var closedMessages = map[string]string{
	"nl": "We zijn momenteel gesloten. Laat een bericht achter en we nemen zo snel mogelijk contact met u op.",
	"fr": "Nous sommes actuellement fermés. Laissez un message et nous vous contacterons dès que possible.",
	"en": "We are currently closed. Leave a message and we will get back to you as soon as possible.",
}

const fallbackLanguage = "nl"

// NewSchedule builds a schedule for the named IANA timezone. The open/close
// pair is interpreted as a half-open interval: the closing minute itself
// counts as closed.
func NewSchedule(timezone string, days []time.Weekday, open, close TimeOfDay) (*Schedule, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}

	openDays := make(map[time.Weekday]bool, len(days))
	for _, d := range days {
		openDays[d] = true
	}

	return &Schedule{
		location: loc,
		openDays: openDays,
		open:     open,
		close:    close,
	}, nil
}

// DefaultSchedule returns the showroom hours: Europe/Brussels,
// Monday-Saturday 10:00-18:00.
func DefaultSchedule() *Schedule {
	s, err := NewSchedule("Europe/Brussels",
		[]time.Weekday{
			time.Monday, time.Tuesday, time.Wednesday,
			time.Thursday, time.Friday, time.Saturday,
		},
		TimeOfDay{Hour: 10}, TimeOfDay{Hour: 18})
	if err != nil {
		// Europe/Brussels ships with the tzdata the binary links against.
		panic(err)
	}
	return s
}

// IsOpen reports whether the business is open at the given instant. The
// answer flips at the open/close boundary every day, so results must not
// be cached.
func (s *Schedule) IsOpen(now time.Time) bool {
	local := now.In(s.location)
	if !s.openDays[local.Weekday()] {
		return false
	}
	minute := local.Hour()*60 + local.Minute()
	return minute >= s.open.minutes() && minute < s.close.minutes()
}

// LocalTime renders the instant as HH:MM in the schedule's timezone.
func (s *Schedule) LocalTime(now time.Time) string {
	return now.In(s.location).Format("15:04")
}

// ClosedMessage returns the closed-state text for the language key,
// falling back to Dutch for unrecognized keys. It never errors.
func ClosedMessage(languageKey string) string {
	if msg, ok := closedMessages[languageKey]; ok {
		return msg
	}
	return closedMessages[fallbackLanguage]
}

// NextOpenDescription walks forward from now day-by-day until an open
// weekday is found and describes it ("today at 10:00", "tomorrow at
// 10:00", or the weekday name). Advisory chat copy only, not a scheduling
// guarantee. A schedule with zero open days yields a neutral fallback
// after a week of looking.
func (s *Schedule) NextOpenDescription(now time.Time) string {
	local := now.In(s.location)

	for offset := 0; offset <= 7; offset++ {
		day := local.AddDate(0, 0, offset)
		if !s.openDays[day.Weekday()] {
			continue
		}
		if offset == 0 {
			// Today only counts if opening time is still ahead.
			minute := local.Hour()*60 + local.Minute()
			if minute >= s.open.minutes() {
				continue
			}
			return fmt.Sprintf("today at %s", s.open)
		}
		if offset == 1 {
			return fmt.Sprintf("tomorrow at %s", s.open)
		}
		return fmt.Sprintf("%s at %s", day.Weekday(), s.open)
	}

	return "as soon as possible"
}
