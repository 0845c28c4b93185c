package timeutil

import (
	"testing"
	"time"
)

func TestMilliRoundTrip(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 30, 45, 123_000_000, time.UTC)
	ms := ToMilli(now)
	if got := FromMilli(ms); !got.Equal(now) {
		t.Errorf("FromMilli(ToMilli(t)) = %v, want %v", got, now)
	}
}

func TestFormatDuration(t *testing.T) {
	cases := map[int64]string{
		450:    "450ms",
		1200:   "1.2s",
		135300: "2m 15.3s",
	}
	for ms, want := range cases {
		if got := FormatDuration(ms); got != want {
			t.Errorf("FormatDuration(%d) = %q, want %q", ms, got, want)
		}
	}
}

func TestRelativeTime(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	cases := []struct {
		ago  time.Duration
		want string
	}{
		{0, "just now"},
		{5 * time.Second, "5s ago"},
		{2 * time.Minute, "2m ago"},
		{3 * time.Hour, "3h ago"},
		{50 * time.Hour, "2d ago"},
	}
	for _, c := range cases {
		if got := RelativeTime(ToMilli(now.Add(-c.ago)), now); got != c.want {
			t.Errorf("RelativeTime(-%v) = %q, want %q", c.ago, got, c.want)
		}
	}
}
