package jcal

import (
	"time"

	"github.com/hebcal/hdate"
)

// Holiday names a significant day; values are stable and stored as-is
type Holiday string

// Significant days
const (
	ErevRoshHashana   Holiday = "erev_rosh_hashana"
	RoshHashana       Holiday = "rosh_hashana"
	TzomGedalyah      Holiday = "tzom_gedalyah"
	ErevYomKippur     Holiday = "erev_yom_kippur"
	YomKippur         Holiday = "yom_kippur"
	ErevSuccos        Holiday = "erev_succos"
	Succos            Holiday = "succos"
	CholHamoedSuccos  Holiday = "chol_hamoed_succos"
	HoshanaRabbah     Holiday = "hoshana_rabbah"
	SheminiAtzeres    Holiday = "shemini_atzeres"
	SimchasTorah      Holiday = "simchas_torah"
	Chanukah          Holiday = "chanukah"
	TenthOfTeves      Holiday = "tenth_of_teves"
	TuBeshvat         Holiday = "tu_beshvat"
	TaanisEsther      Holiday = "taanis_esther"
	Purim             Holiday = "purim"
	ShushanPurim      Holiday = "shushan_purim"
	PurimKatan        Holiday = "purim_katan"
	ErevPesach        Holiday = "erev_pesach"
	Pesach            Holiday = "pesach"
	CholHamoedPesach  Holiday = "chol_hamoed_pesach"
	PesachSheni       Holiday = "pesach_sheni"
	LagBaomer         Holiday = "lag_baomer"
	ErevShavuos       Holiday = "erev_shavuos"
	Shavuos           Holiday = "shavuos"
	SeventeenOfTammuz Holiday = "seventeen_of_tammuz"
	TishaBeav         Holiday = "tisha_beav"
	TuBeav            Holiday = "tu_beav"
)

func (h Holiday) fast() bool {
	switch h {
	case TzomGedalyah, YomKippur, TenthOfTeves, TaanisEsther, SeventeenOfTammuz, TishaBeav:
		return true
	}
	return false
}

func (h Holiday) erev() bool {
	switch h {
	case ErevRoshHashana, ErevYomKippur, ErevSuccos, HoshanaRabbah, ErevPesach, ErevShavuos:
		return true
	}
	return false
}

func (h Holiday) assur() bool {
	switch h {
	case RoshHashana, YomKippur, Succos, SheminiAtzeres, SimchasTorah, Pesach, Shavuos:
		return true
	}
	return false
}

// holidayOf maps a Hebrew date to its significant day. Fasts that land on
// Shabbos move to Sunday, except taanis esther which moves back to Thursday.
func holidayOf(year int, m hdate.HMonth, day int, wd time.Weekday, israel bool) Holiday {
	sunday := wd == time.Sunday
	switch m {
	case hdate.Tishrei:
		switch {
		case day == 1 || day == 2:
			return RoshHashana
		case (day == 3 && wd != time.Saturday) || (day == 4 && sunday):
			return TzomGedalyah
		case day == 9:
			return ErevYomKippur
		case day == 10:
			return YomKippur
		case day == 14:
			return ErevSuccos
		case day == 15 || (day == 16 && !israel):
			return Succos
		case day >= 16 && day <= 20:
			return CholHamoedSuccos
		case day == 21:
			return HoshanaRabbah
		case day == 22:
			return SheminiAtzeres
		case day == 23 && !israel:
			return SimchasTorah
		}
	case hdate.Kislev:
		if day >= 25 {
			return Chanukah
		}
	case hdate.Tevet:
		if chanukahDay(year, m, day) > 0 {
			return Chanukah
		}
		if day == 10 {
			return TenthOfTeves
		}
	case hdate.Shvat:
		if day == 15 {
			return TuBeshvat
		}
	case hdate.Adar1, hdate.Adar2:
		leap := hdate.IsLeapYear(year)
		if leap && m == hdate.Adar1 {
			if day == 14 {
				return PurimKatan
			}
			return ""
		}
		switch {
		case (day == 13 && wd != time.Saturday) || (day == 11 && wd == time.Thursday):
			return TaanisEsther
		case day == 14:
			return Purim
		case day == 15:
			return ShushanPurim
		}
	case hdate.Nisan:
		switch {
		case day == 14:
			return ErevPesach
		case day == 15 || day == 21 || (!israel && (day == 16 || day == 22)):
			return Pesach
		case day >= 16 && day <= 20:
			return CholHamoedPesach
		}
	case hdate.Iyyar:
		switch day {
		case 14:
			return PesachSheni
		case 18:
			return LagBaomer
		}
	case hdate.Sivan:
		switch {
		case day == 5:
			return ErevShavuos
		case day == 6 || (day == 7 && !israel):
			return Shavuos
		}
	case hdate.Tamuz:
		if (day == 17 && wd != time.Saturday) || (day == 18 && sunday) {
			return SeventeenOfTammuz
		}
	case hdate.Av:
		switch {
		case (day == 9 && wd != time.Saturday) || (day == 10 && sunday):
			return TishaBeav
		case day == 15:
			return TuBeav
		}
	case hdate.Elul:
		if day == 29 {
			return ErevRoshHashana
		}
	}
	return ""
}
