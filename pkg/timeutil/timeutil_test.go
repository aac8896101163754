package timeutil

import (
	"testing"
	"time"
)

func TestParseDay(t *testing.T) {
	day, err := ParseDay("2026-03-07")
	if err != nil {
		t.Fatalf("ParseDay() returned %v", err)
	}
	if day.Year() != 2026 || day.Month() != time.March || day.Day() != 7 {
		t.Errorf("got %v", day)
	}
	if day.Hour() != 0 || day.Minute() != 0 {
		t.Errorf("expected midnight, got %v", day)
	}

	if _, err := ParseDay("03/07/2026"); err == nil {
		t.Error("expected an error for a non-ISO date")
	}
}

func TestEndOfDay(t *testing.T) {
	day, _ := ParseDay("2026-03-07")
	end := EndOfDay(day)
	if end.Hour() != 23 || end.Minute() != 59 || end.Second() != 59 {
		t.Errorf("got %v", end)
	}
	if end.Day() != 7 {
		t.Errorf("day changed: %v", end)
	}
}

func TestOverlaps(t *testing.T) {
	at := func(h int) time.Time {
		return time.Date(2026, 3, 7, h, 0, 0, 0, time.UTC)
	}
	tests := []struct {
		name                       string
		aStart, aEnd, bStart, bEnd time.Time
		want                       bool
	}{
		{"inside", at(10), at(11), at(9), at(12), true},
		{"before", at(1), at(2), at(9), at(12), false},
		{"after", at(13), at(14), at(9), at(12), false},
		{"touching end", at(8), at(9), at(9), at(12), true},
		{"touching start", at(12), at(13), at(9), at(12), true},
		{"spanning", at(1), at(23), at(9), at(12), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Overlaps(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd); got != tt.want {
				t.Errorf("Overlaps() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExpandDateTokens(t *testing.T) {
	date := time.Date(2026, 3, 7, 14, 5, 9, 0, time.UTC)
	tests := []struct {
		template string
		want     string
	}{
		{"YYYY-MM-DD", "2026-03-07"},
		{"MMMM D, YYYY", "March 7, 2026"},
		{"ddd DD MMM YY", "Sat 07 Mar 26"},
		{"Notes/YYYY/MM", "Notes/2026/03"},
		{"Calendar", "Calendar"},
		{"HH:mm:ss", "14:05:09"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.template, func(t *testing.T) {
			if got := ExpandDateTokens(tt.template, date); got != tt.want {
				t.Errorf("ExpandDateTokens(%q) = %q, want %q", tt.template, got, tt.want)
			}
		})
	}
}

func TestParseWindow(t *testing.T) {
	tests := []struct {
		input   string
		want    time.Duration
		wantErr bool
	}{
		{"30d", 30 * 24 * time.Hour, false},
		{"2w", 14 * 24 * time.Hour, false},
		{"48h", 48 * time.Hour, false},
		{"1w3d", 10 * 24 * time.Hour, false},
		{"", 30 * 24 * time.Hour, false},
		{"soon", 0, true},
		{"5y", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseWindow(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected an error for %q", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseWindow(%q) returned %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseWindow(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatClock(t *testing.T) {
	if got := FormatClock("garbage"); got != "" {
		t.Errorf("FormatClock(garbage) = %q, want empty", got)
	}
	want := mustParse(t, "2026-03-07T09:30:00Z").Local().Format("15:04")
	if got := FormatClock("2026-03-07T09:30:00Z"); got != want {
		t.Errorf("FormatClock() = %q, want %q", got, want)
	}
}

func mustParse(t *testing.T, iso string) time.Time {
	t.Helper()
	tm, err := time.Parse(time.RFC3339, iso)
	if err != nil {
		t.Fatalf("bad fixture %q: %v", iso, err)
	}
	return tm
}
