package domain

import (
	"sort"
	"time"

	ptime "shulzmanim/internal/platform/time"
)

// FieldValue is a base field read off a record: either a wall clock on the
// record's date or a full timestamp
type FieldValue struct {
	Clock ptime.Clock
	At    *time.Time
}

// Present reports whether the field holds a value
func (v FieldValue) Present() bool { return v.Clock.Valid() || v.At != nil }

var clockFields = map[string]func(*Times) ptime.Clock{
	"alos":                       func(t *Times) ptime.Clock { return t.Alos },
	"hanetz":                     func(t *Times) ptime.Clock { return t.Hanetz },
	"chatzos":                    func(t *Times) ptime.Clock { return t.Chatzos },
	"mincha_gedola":              func(t *Times) ptime.Clock { return t.MinchaGedola },
	"mincha_ketana":              func(t *Times) ptime.Clock { return t.MinchaKetana },
	"plag_hamincha":              func(t *Times) ptime.Clock { return t.PlagHamincha },
	"shkia":                      func(t *Times) ptime.Clock { return t.Shkia },
	"tzais":                      func(t *Times) ptime.Clock { return t.Tzais },
	"tzais_72":                   func(t *Times) ptime.Clock { return t.Tzais72 },
	"sof_zman_krias_shema_gra":   func(t *Times) ptime.Clock { return t.SofZmanShmaGRA },
	"sof_zman_krias_shema_mga":   func(t *Times) ptime.Clock { return t.SofZmanShmaMGA },
	"sof_zman_tfila_gra":         func(t *Times) ptime.Clock { return t.SofZmanTfilaGRA },
	"sof_zman_tfila_mga":         func(t *Times) ptime.Clock { return t.SofZmanTfilaMGA },
	"candle_lighting":            func(t *Times) ptime.Clock { return t.CandleLighting },
	"sea_level_sunrise":          func(t *Times) ptime.Clock { return t.SeaLevelSunrise },
	"sea_level_sunset":           func(t *Times) ptime.Clock { return t.SeaLevelSunset },
	"elevation_adjusted_sunrise": func(t *Times) ptime.Clock { return t.ElevationAdjustedRise },
	"elevation_adjusted_sunset":  func(t *Times) ptime.Clock { return t.ElevationAdjustedSet },
	"alos_16_1":                  func(t *Times) ptime.Clock { return t.Alos16Point1 },
	"alos_18":                    func(t *Times) ptime.Clock { return t.Alos18 },
	"alos_19_8":                  func(t *Times) ptime.Clock { return t.Alos19Point8 },
	"tzais_8_5":                  func(t *Times) ptime.Clock { return t.Tzais8Point5 },
	"tzais_7_083":                func(t *Times) ptime.Clock { return t.Tzais7Point083 },
	"tzais_5_95":                 func(t *Times) ptime.Clock { return t.Tzais5Point95 },
	"tzais_6_45":                 func(t *Times) ptime.Clock { return t.Tzais6Point45 },
	"sun_transit":                func(t *Times) ptime.Clock { return t.SunTransit },
}

var instantFields = map[string]func(*Calendar) *time.Time{
	"molad":                          func(c *Calendar) *time.Time { return c.Molad },
	"kiddush_levana_earliest_3_days": func(c *Calendar) *time.Time { return c.KiddushLevanaEarliest3 },
	"kiddush_levana_earliest_7_days": func(c *Calendar) *time.Time { return c.KiddushLevanaEarliest7 },
	"kiddush_levana_latest_15_days":  func(c *Calendar) *time.Time { return c.KiddushLevanaLatest15 },
}

// IsBaseField reports whether name is a field a custom time may offset from
func IsBaseField(name string) bool {
	_, c := clockFields[name]
	_, i := instantFields[name]
	return c || i
}

// BaseFields lists every valid base field name, sorted
func BaseFields() []string {
	out := make([]string, 0, len(clockFields)+len(instantFields))
	for k := range clockFields {
		out = append(out, k)
	}
	for k := range instantFields {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Field reads a base field; ok is false for unknown names
func (z *DailyZmanim) Field(name string) (v FieldValue, ok bool) {
	if f, hit := clockFields[name]; hit {
		return FieldValue{Clock: f(&z.Times)}, true
	}
	if f, hit := instantFields[name]; hit {
		return FieldValue{At: f(&z.Calendar)}, true
	}
	return FieldValue{}, false
}
