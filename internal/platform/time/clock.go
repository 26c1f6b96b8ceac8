package time

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

const secondsPerDay = 24 * 60 * 60

// Clock is a wall-clock time of day at second precision. The zero value
// means "no time" and encodes as JSON null.
type Clock struct {
	sec   int32
	valid bool
}

// NewClock builds a valid clock; out of range parts wrap within the day
func NewClock(h, m, s int) Clock {
	total := ((h*3600+m*60+s)%secondsPerDay + secondsPerDay) % secondsPerDay
	return Clock{sec: int32(total), valid: true}
}

// ClockOf takes the wall clock of t in its own location; zero t is no time
func ClockOf(t time.Time) Clock {
	if t.IsZero() {
		return Clock{}
	}
	return NewClock(t.Hour(), t.Minute(), t.Second())
}

// ClockFromSeconds is the inverse of Seconds
func ClockFromSeconds(s int) Clock { return NewClock(0, 0, s) }

// ParseClock accepts HH:MM and HH:MM:SS
func ParseClock(s string) (Clock, error) {
	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			return ClockOf(t), nil
		}
	}
	return Clock{}, fmt.Errorf("invalid clock %q", s)
}

// Valid reports whether c holds a time
func (c Clock) Valid() bool { return c.valid }

// Seconds since midnight
func (c Clock) Seconds() int { return int(c.sec) }

// On places c on civil date d in loc
func (c Clock) On(d time.Time, loc *time.Location) time.Time {
	if !c.valid {
		return time.Time{}
	}
	s := int(c.sec)
	return time.Date(d.Year(), d.Month(), d.Day(), s/3600, s/60%60, s%60, 0, loc)
}

func (c Clock) String() string {
	if !c.valid {
		return ""
	}
	s := int(c.sec)
	return fmt.Sprintf("%02d:%02d:%02d", s/3600, s/60%60, s%60)
}

// MarshalJSON writes "HH:MM:SS" or null
func (c Clock) MarshalJSON() ([]byte, error) {
	if !c.valid {
		return []byte("null"), nil
	}
	return json.Marshal(c.String())
}

// UnmarshalJSON reads "HH:MM[:SS]" or null
func (c *Clock) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*c = Clock{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == "" {
		*c = Clock{}
		return nil
	}
	v, err := ParseClock(s)
	if err != nil {
		return err
	}
	*c = v
	return nil
}
