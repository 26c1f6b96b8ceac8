// Package jcal answers Jewish calendar questions about a civil date: the
// Hebrew date, the holiday it falls on and the related observance flags.
package jcal

import (
	"time"

	"github.com/hebcal/hdate"
)

// Day describes one civil date on the Jewish calendar
type Day struct {
	Year       int
	Month      hdate.HMonth
	MonthName  string
	DayOfMonth int
	Weekday    time.Weekday

	// Holiday is empty on ordinary days
	Holiday Holiday

	Omer     int // 1..49, 0 outside the count
	Chanukah int // 1..8, 0 outside chanukah

	RoshChodesh     bool
	ErevRoshChodesh bool
	YomTov          bool
	CholHamoed      bool
	ErevYomTov      bool
	IsChanukah      bool
	Taanis          bool
	AssurBemelacha  bool
}

// For classifies civil date d; israel selects the one-day yom tov schedule
func For(d time.Time, israel bool) Day {
	hd := hdate.FromTime(d)
	out := Day{
		Year:       hd.Year(),
		Month:      hd.Month(),
		DayOfMonth: hd.Day(),
		Weekday:    d.Weekday(),
	}
	out.MonthName = MonthName(out.Month, out.Year)
	out.Holiday = holidayOf(out.Year, out.Month, out.DayOfMonth, out.Weekday, israel)
	out.Omer = omer(out.Month, out.DayOfMonth)
	out.Chanukah = chanukahDay(out.Year, out.Month, out.DayOfMonth)

	out.RoshChodesh = out.DayOfMonth == 30 || (out.DayOfMonth == 1 && out.Month != hdate.Tishrei)
	out.ErevRoshChodesh = out.DayOfMonth == 29 && out.Month != hdate.Elul
	out.IsChanukah = out.Chanukah > 0
	out.Taanis = out.Holiday.fast()
	out.CholHamoed = out.Holiday == CholHamoedSuccos || out.Holiday == HoshanaRabbah || out.Holiday == CholHamoedPesach
	out.ErevYomTov = out.Holiday.erev() || (out.Holiday == CholHamoedPesach && out.DayOfMonth == 20)
	out.YomTov = isYomTov(out)
	out.AssurBemelacha = out.Weekday == time.Saturday || out.Holiday.assur()
	return out
}

// a holiday counts as yom tov unless it is an erev or a fast other than
// yom kippur; hoshana rabbah and the last day of chol hamoed pesach stay in
func isYomTov(d Day) bool {
	switch {
	case d.Holiday == "":
		return false
	case d.Taanis && d.Holiday != YomKippur:
		return false
	case d.ErevYomTov && d.Holiday != HoshanaRabbah && d.Holiday != CholHamoedPesach:
		return false
	}
	return true
}

func omer(m hdate.HMonth, day int) int {
	switch {
	case m == hdate.Nisan && day >= 16:
		return day - 15
	case m == hdate.Iyyar:
		return 15 + day
	case m == hdate.Sivan && day <= 5:
		return 44 + day
	}
	return 0
}

func chanukahDay(year int, m hdate.HMonth, day int) int {
	switch {
	case m == hdate.Kislev && day >= 25:
		return day - 24
	case m == hdate.Tevet:
		if n := hdate.DaysInMonth(hdate.Kislev, year) - 24 + day; n <= 8 {
			return n
		}
	}
	return 0
}

var monthNames = map[hdate.HMonth]string{
	hdate.Nisan:    "Nissan",
	hdate.Iyyar:    "Iyar",
	hdate.Sivan:    "Sivan",
	hdate.Tamuz:    "Tammuz",
	hdate.Av:       "Av",
	hdate.Elul:     "Elul",
	hdate.Tishrei:  "Tishrei",
	hdate.Cheshvan: "Cheshvan",
	hdate.Kislev:   "Kislev",
	hdate.Tevet:    "Teves",
	hdate.Shvat:    "Shevat",
	hdate.Adar1:    "Adar",
	hdate.Adar2:    "Adar II",
}

// MonthName is the Ashkenazi transliteration; Adar is "Adar I" in leap years
func MonthName(m hdate.HMonth, year int) string {
	if m == hdate.Adar1 && hdate.IsLeapYear(year) {
		return "Adar I"
	}
	return monthNames[m]
}
