package hours

import (
	"strings"
	"testing"
	"time"
)

// brussels loads the schedule timezone for building test instants.
func brussels(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Europe/Brussels")
	if err != nil {
		t.Fatalf("failed to load timezone: %v", err)
	}
	return loc
}

func TestIsOpen(t *testing.T) {
	s := DefaultSchedule()
	loc := brussels(t)

	tests := []struct {
		name string
		now  time.Time
		want bool
	}{
		{
			name: "weekday during opening hours",
			now:  time.Date(2026, 9, 2, 14, 30, 0, 0, loc), // Wednesday
			want: true,
		},
		{
			name: "exactly at opening time",
			now:  time.Date(2026, 9, 2, 10, 0, 0, 0, loc),
			want: true,
		},
		{
			name: "one minute before opening",
			now:  time.Date(2026, 9, 2, 9, 59, 0, 0, loc),
			want: false,
		},
		{
			name: "exactly at closing time counts as closed",
			now:  time.Date(2026, 9, 2, 18, 0, 0, 0, loc),
			want: false,
		},
		{
			name: "one minute before closing",
			now:  time.Date(2026, 9, 2, 17, 59, 0, 0, loc),
			want: true,
		},
		{
			name: "sunday morning",
			now:  time.Date(2026, 9, 6, 11, 0, 0, 0, loc), // Sunday
			want: false,
		},
		{
			name: "sunday midday regardless of time",
			now:  time.Date(2026, 9, 6, 14, 0, 0, 0, loc),
			want: false,
		},
		{
			name: "saturday is an open day",
			now:  time.Date(2026, 9, 5, 12, 0, 0, 0, loc), // Saturday
			want: true,
		},
		{
			name: "instant given in UTC is converted to local time",
			// 08:30 UTC on a summer Wednesday is 10:30 in Brussels (CEST).
			now:  time.Date(2026, 9, 2, 8, 30, 0, 0, time.UTC),
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.IsOpen(tt.now); got != tt.want {
				t.Errorf("IsOpen(%v) = %v, want %v", tt.now, got, tt.want)
			}
		})
	}
}

func TestClosedMessage(t *testing.T) {
	tests := []struct {
		name string
		lang string
		want string
	}{
		{name: "dutch", lang: "nl", want: closedMessages["nl"]},
		{name: "french", lang: "fr", want: closedMessages["fr"]},
		{name: "english", lang: "en", want: closedMessages["en"]},
		{name: "unknown key falls back to dutch", lang: "de", want: closedMessages["nl"]},
		{name: "empty key falls back to dutch", lang: "", want: closedMessages["nl"]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClosedMessage(tt.lang); got != tt.want {
				t.Errorf("ClosedMessage(%q) = %q, want %q", tt.lang, got, tt.want)
			}
		})
	}
}

func TestNextOpenDescription(t *testing.T) {
	s := DefaultSchedule()
	loc := brussels(t)

	tests := []struct {
		name string
		now  time.Time
		want string
	}{
		{
			name: "before opening on an open day",
			now:  time.Date(2026, 9, 2, 8, 0, 0, 0, loc), // Wednesday morning
			want: "today at 10:00",
		},
		{
			name: "after closing points at tomorrow",
			now:  time.Date(2026, 9, 2, 19, 0, 0, 0, loc), // Wednesday evening
			want: "tomorrow at 10:00",
		},
		{
			name: "saturday evening skips sunday",
			now:  time.Date(2026, 9, 5, 20, 0, 0, 0, loc), // Saturday evening
			want: "Monday at 10:00",
		},
		{
			name: "sunday names the next open weekday",
			now:  time.Date(2026, 9, 6, 12, 0, 0, 0, loc), // Sunday
			want: "tomorrow at 10:00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.NextOpenDescription(tt.now); got != tt.want {
				t.Errorf("NextOpenDescription(%v) = %q, want %q", tt.now, got, tt.want)
			}
		})
	}
}

func TestNextOpenDescription_NoOpenDays(t *testing.T) {
	s, err := NewSchedule("Europe/Brussels", nil, TimeOfDay{Hour: 10}, TimeOfDay{Hour: 18})
	if err != nil {
		t.Fatalf("NewSchedule() unexpected error: %v", err)
	}

	got := s.NextOpenDescription(time.Date(2026, 9, 2, 12, 0, 0, 0, time.UTC))
	if !strings.Contains(got, "as soon as possible") {
		t.Errorf("expected fallback description, got %q", got)
	}
}

func TestNewSchedule_InvalidTimezone(t *testing.T) {
	_, err := NewSchedule("Not/AZone", []time.Weekday{time.Monday}, TimeOfDay{Hour: 9}, TimeOfDay{Hour: 17})
	if err == nil {
		t.Error("expected error for invalid timezone, got nil")
	}
}

func TestLocalTime(t *testing.T) {
	s := DefaultSchedule()

	// 08:30 UTC in summer is 10:30 Brussels time.
	got := s.LocalTime(time.Date(2026, 9, 2, 8, 30, 0, 0, time.UTC))
	if got != "10:30" {
		t.Errorf("LocalTime() = %q, want %q", got, "10:30")
	}
}
