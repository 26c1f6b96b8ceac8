package limud

import (
	"errors"
	"fmt"
	"time"

	"shulzmanim/internal/core/jcal"
	ptime "shulzmanim/internal/platform/time"

	"github.com/hebcal/hdate"
)

// dafCycleDays is the number of dapim in a Shas cycle
const dafCycleDays = 2711

var (
	// first day of the 14th daf yomi cycle; day k of any cycle learns the same daf
	dafCycleStart = ptime.Date(2020, time.January, 5)
	// first Sunday of the daf hashavua cycle
	hashavuaStart = ptime.Date(2005, time.March, 6)
	// first day of the dirshu amud yomi cycle
	amudYomiStart = ptime.Date(2023, time.October, 16)

	errBeforeCycle = errors.New("date precedes the cycle")
)

// dafAt returns the k-th daf of Shas counting from Berachos 2
func dafAt(k int) (string, error) {
	k %= dafCycleDays
	return dafYomi(hdate.FromTime(ptime.AddDays(dafCycleStart, k)))
}

// dafHashavua learns one daf per Sunday-to-Shabbos week
func dafHashavua(d time.Time) (string, error) {
	n := ptime.DaysBetween(hashavuaStart, d)
	if n < 0 {
		return "", errBeforeCycle
	}
	return dafAt(n / 7)
}

// amudYomi learns one side of a daf per day
func amudYomi(d time.Time) (string, error) {
	n := ptime.DaysBetween(amudYomiStart, d)
	if n < 0 {
		return "", errBeforeCycle
	}
	daf, err := dafAt(n / 2)
	if err != nil {
		return "", err
	}
	return daf + [2]string{"a", "b"}[n%2], nil
}

// short seasons double up chapters at the end so the cycle closes on 6
var avosTails = map[int][][2]int{
	1: {{1, 6}},
	2: {{1, 3}, {4, 6}},
	3: {{1, 2}, {3, 4}, {5, 6}},
	4: {{1, 1}, {2, 2}, {3, 4}, {5, 6}},
	5: {{1, 1}, {2, 2}, {3, 3}, {4, 4}, {5, 6}},
}

// pirkeiAvos names the chapters read on a summer Shabbos, from the Shabbos
// after Pesach through the last Shabbos before Rosh Hashana. A Shabbos that
// is yom tov is skipped.
func pirkeiAvos(d time.Time, israel bool) string {
	if d.Weekday() != time.Saturday {
		return ""
	}
	year := hdate.FromTime(d).Year()
	lastPesach := 22
	if israel {
		lastPesach = 21
	}
	from := civil(hdate.New(year, hdate.Nisan, lastPesach).Gregorian())
	to := civil(hdate.New(year, hdate.Elul, 29).Gregorian())
	if !d.After(from) || d.After(to) {
		return ""
	}

	idx, n := -1, 0
	for s := ptime.AddDays(from, (int(time.Saturday)-int(from.Weekday())+7)%7); !s.After(to); s = ptime.AddDays(s, 7) {
		if s.Equal(from) || jcal.For(s, israel).YomTov {
			continue
		}
		if s.Equal(d) {
			idx = n
		}
		n++
	}
	if idx < 0 {
		return ""
	}

	full := n - n%6
	if idx < full {
		return chapters(idx%6+1, idx%6+1)
	}
	span := avosTails[n%6][idx-full]
	return chapters(span[0], span[1])
}

func chapters(from, to int) string {
	if from == to {
		return fmt.Sprintf("Chapter %d", from)
	}
	return fmt.Sprintf("Chapters %d-%d", from, to)
}

func civil(t time.Time) time.Time { return ptime.Date(t.Year(), t.Month(), t.Day()) }
