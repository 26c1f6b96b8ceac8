// Package astro derives solar events and halachic times for one civil day
package astro

import (
	"errors"
	"math"
	"time"

	"github.com/nathan-osman/go-sunrise"
)

// ErrNoSunrise is returned when the sun does not cross the horizon on the day
var ErrNoSunrise = errors.New("astro: no sunrise or sunset on this date")

// Default degree offsets and fixed offsets used across the zmanim
const (
	AlosDegrees  = 16.1
	TzaisDegrees = 8.5

	MGAOffset         = 72 * time.Minute
	CandleLightingLag = 18 * time.Minute

	earthRadiusMeters = 6356900
	horizonDegrees    = 0.833
)

// Observer is a point on earth. Elevation is metres above sea level and only
// shifts the elevation-adjusted sunrise and sunset.
type Observer struct {
	Latitude  float64
	Longitude float64
	Elevation float64
}

// Sun holds one day's horizon crossings in UTC
type Sun struct {
	obs  Observer
	date time.Time

	SeaLevelRise time.Time
	SeaLevelSet  time.Time
	Rise         time.Time
	Set          time.Time
}

// SunFor computes the horizon crossings on the civil date d
func SunFor(obs Observer, d time.Time) (Sun, error) {
	y, m, day := d.Date()
	rise, set := sunrise.SunriseSunset(obs.Latitude, obs.Longitude, y, m, day)
	if rise.IsZero() || set.IsZero() {
		return Sun{}, ErrNoSunrise
	}
	s := Sun{obs: obs, date: d, SeaLevelRise: rise, SeaLevelSet: set, Rise: rise, Set: set}
	if obs.Elevation > 0 {
		r, e := s.elevation(-(horizonDegrees + elevationDip(obs.Elevation)))
		if !r.IsZero() && !e.IsZero() {
			s.Rise, s.Set = r, e
		}
	}
	return s, nil
}

// Transit is local solar noon, the midpoint of sea level rise and set
func (s Sun) Transit() time.Time {
	return s.SeaLevelRise.Add(s.SeaLevelSet.Sub(s.SeaLevelRise) / 2)
}

// BelowHorizon returns when the sun is deg degrees below the horizon in the
// morning and the evening; either is zero when the sun never gets that low
func (s Sun) BelowHorizon(deg float64) (dawn, dusk time.Time) {
	return s.elevation(-deg)
}

func (s Sun) elevation(elev float64) (time.Time, time.Time) {
	y, m, d := s.date.Date()
	return sunrise.TimeOfElevation(s.obs.Latitude, s.obs.Longitude, elev, y, m, d)
}

// elevationDip is the extra depression of the visible horizon seen from h metres
func elevationDip(h float64) float64 {
	return math.Acos(earthRadiusMeters/(earthRadiusMeters+h)) * 180 / math.Pi
}
