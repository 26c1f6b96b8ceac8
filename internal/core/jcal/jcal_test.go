package jcal

import (
	"testing"
	"time"

	kit "shulzmanim/internal/platform/testkit"

	"github.com/hebcal/hdate"
)

func TestFor_HebrewDate(t *testing.T) {
	t.Parallel()

	d := For(kit.MustDate(t, "2024-03-24"), false)
	if d.Year != 5784 || d.Month != hdate.Adar2 || d.DayOfMonth != 14 || d.MonthName != "Adar II" {
		t.Fatalf("hebrew date = %+v", d)
	}
	if d.Weekday != time.Sunday || d.Holiday != Purim || !d.YomTov || d.AssurBemelacha {
		t.Fatalf("purim = %+v", d)
	}
	if got := For(kit.MustDate(t, "2024-02-23"), false); got.MonthName != "Adar I" || got.Holiday != PurimKatan {
		t.Fatalf("adar I = %+v", got)
	}
}

func TestFor_Holidays(t *testing.T) {
	t.Parallel()

	cases := []struct {
		date   string
		israel bool
		want   Holiday
	}{
		{"2023-09-16", false, RoshHashana},
		{"2023-09-18", false, TzomGedalyah},
		{"2024-10-05", false, ""}, // 3 tishrei 5785 is shabbos
		{"2024-10-06", false, TzomGedalyah},
		{"2023-09-25", false, YomKippur},
		{"2023-10-01", false, Succos},
		{"2023-10-01", true, CholHamoedSuccos},
		{"2023-10-06", false, HoshanaRabbah},
		{"2023-10-08", false, SimchasTorah},
		{"2023-10-08", true, ""},
		{"2023-12-22", false, TenthOfTeves},
		{"2024-03-21", false, TaanisEsther}, // 13 adar II 5784 is shabbos
		{"2024-03-23", false, ""},
		{"2024-04-22", false, ErevPesach},
		{"2024-04-24", false, Pesach},
		{"2024-04-24", true, CholHamoedPesach},
		{"2024-05-26", false, LagBaomer},
		{"2024-06-11", false, ErevShavuos},
		{"2024-06-13", false, Shavuos},
		{"2024-06-13", true, ""},
		{"2025-07-13", false, SeventeenOfTammuz},
		{"2022-07-16", false, ""}, // 17 tammuz 5782 is shabbos
		{"2022-07-17", false, SeventeenOfTammuz},
		{"2024-08-13", false, TishaBeav},
		{"2022-08-07", false, TishaBeav},
		{"2024-10-02", false, ErevRoshHashana},
	}
	for _, tc := range cases {
		if got := For(kit.MustDate(t, tc.date), tc.israel).Holiday; got != tc.want {
			t.Errorf("%s israel=%v: holiday = %q, want %q", tc.date, tc.israel, got, tc.want)
		}
	}
}

func TestFor_Flags(t *testing.T) {
	t.Parallel()

	yk := For(kit.MustDate(t, "2023-09-25"), false)
	if !yk.YomTov || !yk.Taanis || !yk.AssurBemelacha || yk.ErevYomTov {
		t.Fatalf("yom kippur flags = %+v", yk)
	}

	fast := For(kit.MustDate(t, "2024-08-13"), false)
	if fast.YomTov || !fast.Taanis || fast.AssurBemelacha {
		t.Fatalf("tisha beav flags = %+v", fast)
	}

	hr := For(kit.MustDate(t, "2023-10-06"), false)
	if !hr.YomTov || !hr.ErevYomTov || !hr.CholHamoed || hr.AssurBemelacha {
		t.Fatalf("hoshana rabbah flags = %+v", hr)
	}

	erev := For(kit.MustDate(t, "2024-04-22"), false)
	if erev.YomTov || !erev.ErevYomTov {
		t.Fatalf("erev pesach flags = %+v", erev)
	}

	last := For(kit.MustDate(t, "2024-04-28"), false) // 20 nisan
	if !last.CholHamoed || !last.ErevYomTov || !last.YomTov {
		t.Fatalf("20 nisan flags = %+v", last)
	}

	shabbos := For(kit.MustDate(t, "2024-07-13"), false)
	if !shabbos.AssurBemelacha || shabbos.YomTov {
		t.Fatalf("plain shabbos flags = %+v", shabbos)
	}
}

func TestFor_MinorDaysAreYomTovWithoutMelachaBan(t *testing.T) {
	t.Parallel()

	cases := []struct {
		date string
		want Holiday
	}{
		{"2024-12-26", Chanukah},
		{"2025-02-13", TuBeshvat},
		{"2024-03-24", Purim},
		{"2024-08-19", TuBeav},
		{"2024-05-26", LagBaomer},
	}
	for _, tc := range cases {
		d := For(kit.MustDate(t, tc.date), false)
		if d.Holiday != tc.want || !d.YomTov || d.AssurBemelacha || d.Taanis {
			t.Errorf("%s: %+v", tc.date, d)
		}
	}
}

func TestFor_RoshChodesh(t *testing.T) {
	t.Parallel()

	if d := For(kit.MustDate(t, "2024-04-09"), false); !d.RoshChodesh || d.DayOfMonth != 1 {
		t.Fatalf("1 nisan = %+v", d)
	}
	if d := For(kit.MustDate(t, "2024-04-08"), false); !d.ErevRoshChodesh {
		t.Fatalf("29 adar II = %+v", d)
	}
	if d := For(kit.MustDate(t, "2023-09-16"), false); d.RoshChodesh {
		t.Fatal("1 tishrei is rosh hashana, not rosh chodesh")
	}
	if d := For(kit.MustDate(t, "2024-10-02"), false); d.ErevRoshChodesh {
		t.Fatal("29 elul is not erev rosh chodesh")
	}
}

func TestFor_CountedDays(t *testing.T) {
	t.Parallel()

	cases := []struct {
		date          string
		omer, chanuka int
	}{
		{"2024-04-23", 0, 0},
		{"2024-04-24", 1, 0},
		{"2024-05-26", 33, 0},
		{"2024-06-11", 49, 0},
		{"2024-06-12", 0, 0},
		{"2023-12-07", 0, 0},
		{"2023-12-08", 0, 1},
		{"2023-12-15", 0, 8},
		{"2023-12-16", 0, 0},
	}
	for _, tc := range cases {
		d := For(kit.MustDate(t, tc.date), false)
		if d.Omer != tc.omer || d.Chanukah != tc.chanuka || d.IsChanukah != (tc.chanuka > 0) {
			t.Errorf("%s: omer=%d chanukah=%d", tc.date, d.Omer, d.Chanukah)
		}
	}
}

func TestMoladOf(t *testing.T) {
	t.Parallel()

	cases := []struct {
		year  int
		month hdate.HMonth
		want  time.Time
	}{
		{5784, hdate.Tishrei, time.Date(2023, 9, 15, 5, 49, 0, 0, Jerusalem)},
		{5785, hdate.Tishrei, time.Date(2024, 10, 3, 3, 21, 43, 0, Jerusalem)},
		{5784, hdate.Nisan, time.Date(2024, 4, 8, 22, 57, 23, 0, Jerusalem)},
	}
	for _, tc := range cases {
		m := MoladOf(tc.year, tc.month)
		if got := m.At.Truncate(time.Second); !got.Equal(tc.want) {
			t.Errorf("molad %d/%d = %v, want %v", tc.year, tc.month, got, tc.want)
		}
		if m.EarliestThree.Sub(m.At) != 72*time.Hour || m.EarliestSeven.Sub(m.At) != 168*time.Hour {
			t.Errorf("kiddush levana start offsets wrong: %+v", m)
		}
		if !m.LatestFifteen.Equal(m.At.AddDate(0, 0, 15)) {
			t.Errorf("kiddush levana end = %v", m.LatestFifteen)
		}
	}
}

func TestMoladFor_UsesCurrentMonth(t *testing.T) {
	t.Parallel()

	got := MoladFor(kit.MustDate(t, "2024-04-20"))
	if want := MoladOf(5784, hdate.Nisan); !got.At.Equal(want.At) {
		t.Fatalf("molad for 12 nisan = %v, want %v", got.At, want.At)
	}
}
