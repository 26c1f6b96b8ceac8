// Package oracle adapts the astro, jcal and limud packages to the zmanim ports
package oracle

import (
	"context"
	"errors"
	"time"

	"shulzmanim/internal/core/astro"
	"shulzmanim/internal/core/jcal"
	perr "shulzmanim/internal/platform/errors"
	ptime "shulzmanim/internal/platform/time"
	zdom "shulzmanim/internal/services/zmanim/domain"
)

// Oracle implements zdom.OraclePort
type Oracle struct{}

// New returns the oracle
func New() Oracle { return Oracle{} }

// Compute derives the times in loc.TZ and the calendar data for civil date d
func (Oracle) Compute(ctx context.Context, loc zdom.Location, d time.Time) (zdom.OracleResult, error) {
	if err := ctx.Err(); err != nil {
		return zdom.OracleResult{}, err
	}
	if loc.TZ == nil {
		return zdom.OracleResult{}, perr.InvalidArgf("oracle: location has no time zone")
	}
	z, err := astro.Compute(astro.Observer{Latitude: loc.Latitude, Longitude: loc.Longitude}, d)
	if err != nil {
		if errors.Is(err, astro.ErrNoSunrise) {
			return zdom.OracleResult{}, perr.Wrapf(err, perr.ErrorCodeCalculation,
				"no sunrise or sunset at %.4f,%.4f on %s", loc.Latitude, loc.Longitude, ptime.Format(d))
		}
		return zdom.OracleResult{}, perr.Wrap(err, perr.ErrorCodeCalculation, "solar calculation")
	}
	return zdom.OracleResult{
		Times:    times(z, loc.TZ),
		Hours:    zdom.Hours{ShaahZmanisGRA: z.ShaahGRA, ShaahZmanisMGA: z.ShaahMGA, TemporalHour: z.TemporalHour},
		Calendar: calendar(jcal.For(d, loc.InIsrael), jcal.MoladFor(d)),
	}, nil
}

func times(z astro.Zmanim, tz *time.Location) zdom.Times {
	at := func(t time.Time) ptime.Clock {
		if t.IsZero() {
			return ptime.Clock{}
		}
		return ptime.ClockOf(t.In(tz))
	}
	return zdom.Times{
		Alos:                  at(z.Alos),
		Hanetz:                at(z.Hanetz),
		Chatzos:               at(z.Chatzos),
		MinchaGedola:          at(z.MinchaGedola),
		MinchaKetana:          at(z.MinchaKetana),
		PlagHamincha:          at(z.PlagHamincha),
		Shkia:                 at(z.Shkia),
		Tzais:                 at(z.Tzais),
		Tzais72:               at(z.Tzais72),
		SofZmanShmaGRA:        at(z.ShmaGRA),
		SofZmanShmaMGA:        at(z.ShmaMGA),
		SofZmanTfilaGRA:       at(z.TfilaGRA),
		SofZmanTfilaMGA:       at(z.TfilaMGA),
		CandleLighting:        at(z.CandleLighting),
		SeaLevelSunrise:       at(z.SeaLevelSunrise),
		SeaLevelSunset:        at(z.SeaLevelSunset),
		ElevationAdjustedRise: at(z.ElevationSunrise),
		ElevationAdjustedSet:  at(z.ElevationSunset),
		Alos16Point1:          at(z.Alos16Point1),
		Alos18:                at(z.Alos18),
		Alos19Point8:          at(z.Alos19Point8),
		Tzais8Point5:          at(z.Tzais8Point5),
		Tzais7Point083:        at(z.Tzais7Point083),
		Tzais5Point95:         at(z.Tzais5Point95),
		Tzais6Point45:         at(z.Tzais6Point45),
		SunTransit:            at(z.Transit),
	}
}

func calendar(d jcal.Day, m jcal.Molad) zdom.Calendar {
	return zdom.Calendar{
		JewishYear:      d.Year,
		JewishMonth:     int(d.Month),
		JewishMonthName: d.MonthName,
		JewishDay:       d.DayOfMonth,
		DayOfWeek:       int(d.Weekday),
		SignificantDay:  string(d.Holiday),
		DayOfOmer:       positive(d.Omer),
		DayOfChanukah:   positive(d.Chanukah),

		IsRoshChodesh:     d.RoshChodesh,
		IsYomTov:          d.YomTov,
		IsCholHamoed:      d.CholHamoed,
		IsErevYomTov:      d.ErevYomTov,
		IsChanukah:        d.IsChanukah,
		IsTaanis:          d.Taanis,
		IsAssurBemelacha:  d.AssurBemelacha,
		IsErevRoshChodesh: d.ErevRoshChodesh,

		Molad:                  ptime.Ptr(m.At),
		KiddushLevanaEarliest3: ptime.Ptr(m.EarliestThree),
		KiddushLevanaEarliest7: ptime.Ptr(m.EarliestSeven),
		KiddushLevanaLatest15:  ptime.Ptr(m.LatestFifteen),
	}
}

func positive(n int) *int {
	if n <= 0 {
		return nil
	}
	return &n
}
