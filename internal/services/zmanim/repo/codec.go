package repo

import (
	"time"

	"shulzmanim/internal/platform/store"
	ptime "shulzmanim/internal/platform/time"
	zdom "shulzmanim/internal/services/zmanim/domain"

	"github.com/jackc/pgx/v5/pgtype"
)

func clockArg(c ptime.Clock) pgtype.Time {
	return pgtype.Time{Microseconds: int64(c.Seconds()) * 1_000_000, Valid: c.Valid()}
}

func clockOf(t pgtype.Time) ptime.Clock {
	if !t.Valid {
		return ptime.Clock{}
	}
	return ptime.ClockFromSeconds(int(t.Microseconds / 1_000_000))
}

func smallArg(n *int) pgtype.Int2 {
	if n == nil {
		return pgtype.Int2{}
	}
	return pgtype.Int2{Int16: int16(*n), Valid: true}
}

func smallOf(v pgtype.Int2) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int16)
	return &n
}

// values lists z in columns order
func values(z zdom.DailyZmanim) []any {
	t, c, l := z.Times, z.Calendar, z.Learning
	return []any{
		z.ShulID, z.Date,
		clockArg(t.Alos), clockArg(t.Hanetz), clockArg(t.Chatzos), clockArg(t.MinchaGedola),
		clockArg(t.MinchaKetana), clockArg(t.PlagHamincha), clockArg(t.Shkia),
		clockArg(t.Tzais), clockArg(t.Tzais72), clockArg(t.SofZmanShmaGRA), clockArg(t.SofZmanShmaMGA),
		clockArg(t.SofZmanTfilaGRA), clockArg(t.SofZmanTfilaMGA), clockArg(t.CandleLighting),
		clockArg(t.SeaLevelSunrise), clockArg(t.SeaLevelSunset),
		clockArg(t.ElevationAdjustedRise), clockArg(t.ElevationAdjustedSet),
		clockArg(t.Alos16Point1), clockArg(t.Alos18), clockArg(t.Alos19Point8),
		clockArg(t.Tzais8Point5), clockArg(t.Tzais7Point083), clockArg(t.Tzais5Point95),
		clockArg(t.Tzais6Point45), clockArg(t.SunTransit),
		zdom.Millis(z.Hours.ShaahZmanisGRA), zdom.Millis(z.Hours.ShaahZmanisMGA), zdom.Millis(z.Hours.TemporalHour),
		c.JewishYear, c.JewishMonth, c.JewishMonthName, c.JewishDay, int16(c.DayOfWeek), c.SignificantDay,
		smallArg(c.DayOfOmer), smallArg(c.DayOfChanukah),
		c.IsRoshChodesh, c.IsYomTov, c.IsCholHamoed, c.IsErevYomTov,
		c.IsChanukah, c.IsTaanis, c.IsAssurBemelacha, c.IsErevRoshChodesh,
		c.Molad, c.KiddushLevanaEarliest3, c.KiddushLevanaEarliest7, c.KiddushLevanaLatest15,
		l.Parsha, l.DafYomiBavli, l.MishnaYomis, l.TehillimMonthly,
		l.DafYomiYerushalmi, l.PirkeiAvos, l.DafHashavuaBavli, l.AmudYomiDirshu,
	}
}

// scanRow reads selectCols
func scanRow(row store.Row) (zdom.DailyZmanim, error) {
	var (
		z        zdom.DailyZmanim
		date     pgtype.Date
		clocks   [26]pgtype.Time
		hours    [3]*float64
		dow      int16
		omer     pgtype.Int2
		chanukah pgtype.Int2
	)
	dest := []any{&z.ShulID, &date}
	for i := range clocks {
		dest = append(dest, &clocks[i])
	}
	for i := range hours {
		dest = append(dest, &hours[i])
	}
	c, l := &z.Calendar, &z.Learning
	dest = append(dest,
		&c.JewishYear, &c.JewishMonth, &c.JewishMonthName, &c.JewishDay, &dow, &c.SignificantDay,
		&omer, &chanukah,
		&c.IsRoshChodesh, &c.IsYomTov, &c.IsCholHamoed, &c.IsErevYomTov,
		&c.IsChanukah, &c.IsTaanis, &c.IsAssurBemelacha, &c.IsErevRoshChodesh,
		&c.Molad, &c.KiddushLevanaEarliest3, &c.KiddushLevanaEarliest7, &c.KiddushLevanaLatest15,
		&l.Parsha, &l.DafYomiBavli, &l.MishnaYomis, &l.TehillimMonthly,
		&l.DafYomiYerushalmi, &l.PirkeiAvos, &l.DafHashavuaBavli, &l.AmudYomiDirshu,
		&z.CreatedAt,
	)
	if err := row.Scan(dest...); err != nil {
		return zdom.DailyZmanim{}, err
	}

	z.Date = ptime.Date(date.Time.Year(), date.Time.Month(), date.Time.Day())
	z.Times = zdom.Times{
		Alos:                  clockOf(clocks[0]),
		Hanetz:                clockOf(clocks[1]),
		Chatzos:               clockOf(clocks[2]),
		MinchaGedola:          clockOf(clocks[3]),
		MinchaKetana:          clockOf(clocks[4]),
		PlagHamincha:          clockOf(clocks[5]),
		Shkia:                 clockOf(clocks[6]),
		Tzais:                 clockOf(clocks[7]),
		Tzais72:               clockOf(clocks[8]),
		SofZmanShmaGRA:        clockOf(clocks[9]),
		SofZmanShmaMGA:        clockOf(clocks[10]),
		SofZmanTfilaGRA:       clockOf(clocks[11]),
		SofZmanTfilaMGA:       clockOf(clocks[12]),
		CandleLighting:        clockOf(clocks[13]),
		SeaLevelSunrise:       clockOf(clocks[14]),
		SeaLevelSunset:        clockOf(clocks[15]),
		ElevationAdjustedRise: clockOf(clocks[16]),
		ElevationAdjustedSet:  clockOf(clocks[17]),
		Alos16Point1:          clockOf(clocks[18]),
		Alos18:                clockOf(clocks[19]),
		Alos19Point8:          clockOf(clocks[20]),
		Tzais8Point5:          clockOf(clocks[21]),
		Tzais7Point083:        clockOf(clocks[22]),
		Tzais5Point95:         clockOf(clocks[23]),
		Tzais6Point45:         clockOf(clocks[24]),
		SunTransit:            clockOf(clocks[25]),
	}
	z.Hours = zdom.Hours{
		ShaahZmanisGRA: zdom.FromMillis(hours[0]),
		ShaahZmanisMGA: zdom.FromMillis(hours[1]),
		TemporalHour:   zdom.FromMillis(hours[2]),
	}
	c.DayOfWeek = int(dow)
	c.DayOfOmer, c.DayOfChanukah = smallOf(omer), smallOf(chanukah)
	for _, p := range []**time.Time{&c.Molad, &c.KiddushLevanaEarliest3, &c.KiddushLevanaEarliest7, &c.KiddushLevanaLatest15} {
		if *p != nil {
			u := (*p).UTC()
			*p = &u
		}
	}
	return z, nil
}
