package schedule

import (
	"testing"
)

func TestParseTimeOfDay(t *testing.T) {
	cases := []struct {
		input   string
		want    TimeOfDay
		wantErr bool
	}{
		{"08:00:00", 8 * 3600, false},
		{"08:30", 8*3600 + 30*60, false},
		{"00:00:00", 0, false},
		{"23:59:59", 23*3600 + 59*60 + 59, false},
		{"24:00:00", 0, true},
		{"8am", 0, true},
		{"", 0, true},
	}
	for _, c := range cases {
		got, err := ParseTimeOfDay(c.input)
		if c.wantErr {
			if err == nil {
				t.Errorf("ParseTimeOfDay(%q) expected error, got %v", c.input, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseTimeOfDay(%q) unexpected error: %v", c.input, err)
			continue
		}
		if got != c.want {
			t.Errorf("ParseTimeOfDay(%q) = %d, want %d", c.input, got, c.want)
		}
	}
}

func TestTimeOfDayString(t *testing.T) {
	cases := []struct {
		input TimeOfDay
		want  string
	}{
		{0, "00:00:00"},
		{8 * 3600, "08:00:00"},
		{22*3600 + 15*60 + 9, "22:15:09"},
	}
	for _, c := range cases {
		if got := c.input.String(); got != c.want {
			t.Errorf("TimeOfDay(%d).String() = %q, want %q", c.input, got, c.want)
		}
	}
}

func TestWindowSpanSeconds(t *testing.T) {
	day := Window{CheckIn: 8 * 3600, CheckOut: 17 * 3600}
	if got := day.SpanSeconds(); got != 9*3600 {
		t.Errorf("day window span = %d, want %d", got, 9*3600)
	}

	// A night shift's checkout lands on the next calendar day.
	night := Window{CheckIn: 22 * 3600, CheckOut: 6 * 3600, NightShift: true}
	if got := night.SpanSeconds(); got != 8*3600 {
		t.Errorf("night window span = %d, want %d", got, 8*3600)
	}
}

func TestScheduleRangeContainsDay(t *testing.T) {
	r := ScheduleRange{StartDay: 1, EndDay: 5} // Monday..Friday
	for day := 1; day <= 5; day++ {
		if !r.ContainsDay(day) {
			t.Errorf("ContainsDay(%d) = false, want true", day)
		}
	}
	if r.ContainsDay(0) || r.ContainsDay(6) {
		t.Error("weekend days should fall outside a Monday..Friday range")
	}
}
