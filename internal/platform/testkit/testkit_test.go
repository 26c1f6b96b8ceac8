package testkit

import (
	"testing"
	"time"
)

var seamValue = 10

func TestSwap_Restores(t *testing.T) {
	t.Run("swap", func(t *testing.T) {
		Swap(t, &seamValue, 42)
		if seamValue != 42 {
			t.Fatalf("got %d", seamValue)
		}
	})
	if seamValue != 10 {
		t.Fatalf("not restored: %d", seamValue)
	}
}

func TestMustDate(t *testing.T) {
	d := MustDate(t, "2025-03-10")
	if d.Year() != 2025 || d.Month() != time.March || d.Day() != 10 || d.Location() != time.UTC {
		t.Fatalf("unexpected %v", d)
	}
}

func TestMustPanicAndNotPanic(t *testing.T) {
	MustPanic(t, func() { panic("boom") })
	MustNotPanic(t, func() {})
	MustContain(t, "hello world", "lo wo")
}
