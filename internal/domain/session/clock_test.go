package session

import (
	"testing"
	"time"
)

// TestParseClockTime_Valid tests accepted 12- and 24-hour forms.
func TestParseClockTime_Valid(t *testing.T) {
	tests := []struct {
		in   string
		want string
		mins int
	}{
		{"09:00 AM", "09:00 AM", 9 * 60},
		{"9:00 am", "09:00 AM", 9 * 60},
		{"9:00am", "09:00 AM", 9 * 60},
		{"12:00 AM", "12:00 AM", 0},
		{"12:30 PM", "12:30 PM", 12*60 + 30},
		{"05:00 PM", "05:00 PM", 17 * 60},
		{"11:59 pm", "11:59 PM", 23*60 + 59},
		{"21:00", "09:00 PM", 21 * 60},
		{"00:05", "12:05 AM", 5},
		{"  07:45 AM ", "07:45 AM", 7*60 + 45},
	}
	for _, tt := range tests {
		c, err := ParseClockTime(tt.in)
		if err != nil {
			t.Errorf("ParseClockTime(%q) error: %v", tt.in, err)
			continue
		}
		if c.Minutes() != tt.mins {
			t.Errorf("ParseClockTime(%q).Minutes() = %d, want %d", tt.in, c.Minutes(), tt.mins)
		}
		if c.String() != tt.want {
			t.Errorf("ParseClockTime(%q).String() = %q, want %q", tt.in, c.String(), tt.want)
		}
	}
}

// TestParseClockTime_Invalid tests rejected inputs.
func TestParseClockTime_Invalid(t *testing.T) {
	for _, in := range []string{
		"", "9 AM", "13:00 PM", "00:30 AM", "9:60 AM", "9:5 AM", "24:00",
		"+1:00 PM", "ab:cd", "9:00 XM", "100:00",
	} {
		if _, err := ParseClockTime(in); err != ErrInvalidTime {
			t.Errorf("ParseClockTime(%q) = %v, want ErrInvalidTime", in, err)
		}
	}
}

// TestParseDate tests date parsing and formatting.
func TestParseDate(t *testing.T) {
	d, err := ParseDate(" 2024-03-05 ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d != (Date{Year: 2024, Month: time.March, Day: 5}) {
		t.Errorf("ParseDate = %+v", d)
	}
	if d.String() != "2024-03-05" {
		t.Errorf("String() = %q", d.String())
	}
	if d.Long() != "March 5, 2024" {
		t.Errorf("Long() = %q", d.Long())
	}

	for _, in := range []string{"", "03/05/2024", "2024-13-01", "2024-02-30"} {
		if _, err := ParseDate(in); err != ErrInvalidDate {
			t.Errorf("ParseDate(%q) = %v, want ErrInvalidDate", in, err)
		}
	}
}

// TestDate_Before tests ordering.
func TestDate_Before(t *testing.T) {
	a := Date{Year: 2024, Month: time.January, Day: 31}
	b := Date{Year: 2024, Month: time.February, Day: 1}
	if !a.Before(b) || b.Before(a) || a.Before(a) {
		t.Error("Before ordering is wrong")
	}
	if !(Date{}).IsZero() || a.IsZero() {
		t.Error("IsZero is wrong")
	}
}
