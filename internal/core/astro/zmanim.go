package astro

import "time"

// Zmanim is every time of day the daily record stores, in UTC. A zero time
// means the event does not happen on that day.
type Zmanim struct {
	Alos           time.Time
	Hanetz         time.Time
	Chatzos        time.Time
	MinchaGedola   time.Time
	MinchaKetana   time.Time
	PlagHamincha   time.Time
	Shkia          time.Time
	Tzais          time.Time
	Tzais72        time.Time
	ShmaGRA        time.Time
	ShmaMGA        time.Time
	TfilaGRA       time.Time
	TfilaMGA       time.Time
	CandleLighting time.Time

	SeaLevelSunrise  time.Time
	SeaLevelSunset   time.Time
	ElevationSunrise time.Time
	ElevationSunset  time.Time
	Alos16Point1     time.Time
	Alos18           time.Time
	Alos19Point8     time.Time
	Tzais8Point5     time.Time
	Tzais7Point083   time.Time
	Tzais5Point95    time.Time
	Tzais6Point45    time.Time
	Transit          time.Time

	ShaahGRA     time.Duration
	ShaahMGA     time.Duration
	TemporalHour time.Duration
}

// Compute derives the day's zmanim for obs on civil date d
func Compute(obs Observer, d time.Time) (Zmanim, error) {
	sun, err := SunFor(obs, d)
	if err != nil {
		return Zmanim{}, err
	}

	var z Zmanim
	z.SeaLevelSunrise, z.SeaLevelSunset = sun.SeaLevelRise, sun.SeaLevelSet
	z.ElevationSunrise, z.ElevationSunset = sun.Rise, sun.Set
	z.Hanetz, z.Shkia = sun.Rise, sun.Set
	z.Transit = sun.Transit()
	z.Chatzos = z.Transit

	z.Alos16Point1, z.Tzais8Point5 = morning(sun, 16.1), evening(sun, 8.5)
	z.Alos18 = morning(sun, 18)
	z.Alos19Point8 = morning(sun, 19.8)
	z.Tzais7Point083 = evening(sun, 7.083)
	z.Tzais5Point95 = evening(sun, 5.95)
	z.Tzais6Point45 = evening(sun, 6.45)
	z.Alos, z.Tzais = z.Alos16Point1, z.Tzais8Point5

	alos72 := sun.SeaLevelRise.Add(-MGAOffset)
	z.Tzais72 = sun.SeaLevelSet.Add(MGAOffset)

	z.ShaahGRA = sun.SeaLevelSet.Sub(sun.SeaLevelRise) / 12
	z.ShaahMGA = z.Tzais72.Sub(alos72) / 12
	z.TemporalHour = z.ShaahGRA

	gra := func(hours float64) time.Time { return offset(sun.SeaLevelRise, z.ShaahGRA, hours) }
	mga := func(hours float64) time.Time { return offset(alos72, z.ShaahMGA, hours) }

	z.ShmaGRA, z.TfilaGRA = gra(3), gra(4)
	z.ShmaMGA, z.TfilaMGA = mga(3), mga(4)
	z.MinchaGedola = gra(6.5)
	z.MinchaKetana = gra(9.5)
	z.PlagHamincha = gra(10.75)
	z.CandleLighting = sun.SeaLevelSet.Add(-CandleLightingLag)
	return z, nil
}

func morning(s Sun, deg float64) time.Time {
	t, _ := s.BelowHorizon(deg)
	return t
}

func evening(s Sun, deg float64) time.Time {
	_, t := s.BelowHorizon(deg)
	return t
}

func offset(from time.Time, hour time.Duration, n float64) time.Time {
	return from.Add(time.Duration(float64(hour) * n))
}
