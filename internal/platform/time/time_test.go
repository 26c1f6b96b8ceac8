package time

import (
	"testing"
	"time"

	kit "shulzmanim/internal/platform/testkit"
)

func TestCivil_DependsOnZone(t *testing.T) {
	t.Parallel()

	// 03:30 UTC on the 10th is still the 9th in New York and already the 10th in Jerusalem
	now := time.Date(2024, 3, 10, 3, 30, 0, 0, time.UTC)
	if got := Today(now, kit.MustZone(t, "America/New_York")); got != Date(2024, 3, 9) {
		t.Fatalf("NY today = %v", got)
	}
	if got := Today(now, kit.MustZone(t, "Asia/Jerusalem")); got != Date(2024, 3, 10) {
		t.Fatalf("Jerusalem today = %v", got)
	}
}

func TestSpan(t *testing.T) {
	t.Parallel()

	from := kit.MustDate(t, "2024-02-27")
	days := Span(from, kit.MustDate(t, "2024-03-02"))
	if len(days) != 5 || Format(days[2]) != "2024-02-29" || Format(days[4]) != "2024-03-02" {
		t.Fatalf("span = %v", days)
	}
	if Span(from, AddDays(from, -1)) != nil {
		t.Fatal("reversed span should be empty")
	}
	if DaysBetween(from, AddDays(from, 180)) != 180 {
		t.Fatal("DaysBetween")
	}
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	d, err := Parse("2024-10-03")
	if err != nil || Format(d) != "2024-10-03" {
		t.Fatalf("round trip = %v %v", d, err)
	}
	if _, err := Parse("10/03/2024"); err == nil {
		t.Fatal("expected parse error")
	}
	if Ptr(time.Time{}) != nil || Ptr(d) == nil {
		t.Fatal("Ptr")
	}
}
