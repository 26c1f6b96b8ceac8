package jcal

import (
	"time"

	"github.com/hebcal/hdate"
)

const (
	chalakimPerDay   = 25920
	chalakimPerMonth = 765433
	// molad of creation (BaHaRaD) relative to the epoch day
	chalakimEpoch = -876
	// rata die of 1 Tishrei year 1
	rdEpoch = -1373428
)

// Jerusalem is local mean time in Jerusalem, the clock the molad is announced in
var Jerusalem = time.FixedZone("JMT", 2*3600+20*60+56)

// Molad is the mean conjunction opening a Hebrew month
type Molad struct {
	At time.Time

	// Kiddush levana may be said from EarliestThree (or EarliestSeven by the
	// stricter custom) until LatestFifteen
	EarliestThree time.Time
	EarliestSeven time.Time
	LatestFifteen time.Time
}

// MoladOf returns the molad of Hebrew month m in year
func MoladOf(year int, m hdate.HMonth) Molad {
	parts := chalakimEpoch + monthsElapsed(year, m)*chalakimPerMonth
	days, rem := floorDiv(parts, chalakimPerDay)

	start := time.Date(1, 1, 1, 0, 0, 0, 0, Jerusalem).AddDate(0, 0, int(rdEpoch+days))
	at := start.Add(time.Duration(rem) * 10 * time.Second / 3)
	return Molad{
		At:            at,
		EarliestThree: at.Add(72 * time.Hour),
		EarliestSeven: at.Add(168 * time.Hour),
		LatestFifteen: at.AddDate(0, 0, 15),
	}
}

// MoladFor returns the molad of the Hebrew month civil date d falls in
func MoladFor(d time.Time) Molad {
	hd := hdate.FromTime(d)
	return MoladOf(hd.Year(), hd.Month())
}

// monthsElapsed counts lunations from creation to the start of m. Nisan
// through Elul close the year, so they count from the next Tishrei back.
func monthsElapsed(year int, m hdate.HMonth) int64 {
	y := int64(year)
	if m < hdate.Tishrei {
		y++
	}
	elapsed, _ := floorDiv(235*y-234, 19)
	return elapsed + int64(m) - int64(hdate.Tishrei)
}

func floorDiv(a, b int64) (q, r int64) {
	q, r = a/b, a%b
	if r < 0 {
		q--
		r += b
	}
	return q, r
}
