// Package domain defines the daily zmanim record and the ports around it
package domain

import (
	"encoding/json"
	"time"

	ptime "shulzmanim/internal/platform/time"

	"github.com/google/uuid"
)

// HorizonDays is the rolling window kept ahead of today
const HorizonDays = 180

// ShulRef is what the calculator needs to know about a shul
type ShulRef struct {
	ID        uuid.UUID
	Name      string
	Latitude  float64
	Longitude float64
	Timezone  string
	InIsrael  bool
}

// Location resolves the shul's IANA zone
func (s ShulRef) Location() (*time.Location, error) { return time.LoadLocation(s.Timezone) }

// Location is an oracle input: a point on earth with its civil time zone
type Location struct {
	Latitude  float64
	Longitude float64
	TZ        *time.Location
	InIsrael  bool
}

// Times are wall-clock times in the shul's zone; an invalid Clock is absent
type Times struct {
	Alos                  ptime.Clock `json:"alos"`
	Hanetz                ptime.Clock `json:"hanetz"`
	Chatzos               ptime.Clock `json:"chatzos"`
	MinchaGedola          ptime.Clock `json:"mincha_gedola"`
	MinchaKetana          ptime.Clock `json:"mincha_ketana"`
	PlagHamincha          ptime.Clock `json:"plag_hamincha"`
	Shkia                 ptime.Clock `json:"shkia"`
	Tzais                 ptime.Clock `json:"tzais"`
	Tzais72               ptime.Clock `json:"tzais_72"`
	SofZmanShmaGRA        ptime.Clock `json:"sof_zman_krias_shema_gra"`
	SofZmanShmaMGA        ptime.Clock `json:"sof_zman_krias_shema_mga"`
	SofZmanTfilaGRA       ptime.Clock `json:"sof_zman_tfila_gra"`
	SofZmanTfilaMGA       ptime.Clock `json:"sof_zman_tfila_mga"`
	CandleLighting        ptime.Clock `json:"candle_lighting"`
	SeaLevelSunrise       ptime.Clock `json:"sea_level_sunrise"`
	SeaLevelSunset        ptime.Clock `json:"sea_level_sunset"`
	ElevationAdjustedRise ptime.Clock `json:"elevation_adjusted_sunrise"`
	ElevationAdjustedSet  ptime.Clock `json:"elevation_adjusted_sunset"`
	Alos16Point1          ptime.Clock `json:"alos_16_1"`
	Alos18                ptime.Clock `json:"alos_18"`
	Alos19Point8          ptime.Clock `json:"alos_19_8"`
	Tzais8Point5          ptime.Clock `json:"tzais_8_5"`
	Tzais7Point083        ptime.Clock `json:"tzais_7_083"`
	Tzais5Point95         ptime.Clock `json:"tzais_5_95"`
	Tzais6Point45         ptime.Clock `json:"tzais_6_45"`
	SunTransit            ptime.Clock `json:"sun_transit"`
}

// Hours are the day's proportional hours; zero is absent
type Hours struct {
	ShaahZmanisGRA time.Duration
	ShaahZmanisMGA time.Duration
	TemporalHour   time.Duration
}

// MarshalJSON writes the hours as milliseconds, the unit they are stored in
func (h Hours) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]*float64{
		"shaah_zmanis_gra_ms": Millis(h.ShaahZmanisGRA),
		"shaah_zmanis_mga_ms": Millis(h.ShaahZmanisMGA),
		"temporal_hour_ms":    Millis(h.TemporalHour),
	})
}

// Millis is nil for zero
func Millis(d time.Duration) *float64 {
	if d == 0 {
		return nil
	}
	ms := float64(d) / float64(time.Millisecond)
	return &ms
}

// FromMillis inverts Millis
func FromMillis(ms *float64) time.Duration {
	if ms == nil {
		return 0
	}
	return time.Duration(*ms * float64(time.Millisecond))
}

// Calendar is the Jewish calendar view of the date
type Calendar struct {
	JewishYear      int    `json:"jewish_year"`
	JewishMonth     int    `json:"jewish_month"`
	JewishMonthName string `json:"jewish_month_name"`
	JewishDay       int    `json:"jewish_day"`
	DayOfWeek       int    `json:"day_of_week"`
	SignificantDay  string `json:"significant_day"`
	DayOfOmer       *int   `json:"day_of_omer"`
	DayOfChanukah   *int   `json:"day_of_chanukah"`

	IsRoshChodesh     bool `json:"is_rosh_chodesh"`
	IsYomTov          bool `json:"is_yom_tov"`
	IsCholHamoed      bool `json:"is_chol_hamoed"`
	IsErevYomTov      bool `json:"is_erev_yom_tov"`
	IsChanukah        bool `json:"is_chanukah"`
	IsTaanis          bool `json:"is_taanis"`
	IsAssurBemelacha  bool `json:"is_assur_bemelacha"`
	IsErevRoshChodesh bool `json:"is_erev_rosh_chodesh"`

	Molad                  *time.Time `json:"molad"`
	KiddushLevanaEarliest3 *time.Time `json:"kiddush_levana_earliest_3_days"`
	KiddushLevanaEarliest7 *time.Time `json:"kiddush_levana_earliest_7_days"`
	KiddushLevanaLatest15  *time.Time `json:"kiddush_levana_latest_15_days"`
}

// Learning holds the learning references; "" is absent
type Learning struct {
	Parsha            string `json:"parsha"`
	DafYomiBavli      string `json:"daf_yomi_bavli"`
	MishnaYomis       string `json:"mishna_yomis"`
	TehillimMonthly   string `json:"tehillim_monthly"`
	DafYomiYerushalmi string `json:"daf_yomi_yerushalmi"`
	PirkeiAvos        string `json:"pirkei_avos"`
	DafHashavuaBavli  string `json:"daf_hashavua_bavli"`
	AmudYomiDirshu    string `json:"amud_yomi_bavli_dirshu"`
}

// OracleResult is everything the oracle derives for one date
type OracleResult struct {
	Times    Times
	Hours    Hours
	Calendar Calendar
}

// DailyZmanim is the stored record for one (shul, date)
type DailyZmanim struct {
	ShulID    uuid.UUID `json:"shul_id"`
	Date      time.Time `json:"-"`
	Times     Times     `json:"times"`
	Hours     Hours     `json:"hours"`
	Calendar  Calendar  `json:"calendar"`
	Learning  Learning  `json:"learning"`
	CreatedAt time.Time `json:"created_at"`
}

// MarshalJSON renders Date as YYYY-MM-DD
func (z DailyZmanim) MarshalJSON() ([]byte, error) {
	type plain DailyZmanim
	return json.Marshal(struct {
		plain
		Date string `json:"date"`
	}{plain(z), ptime.Format(z.Date)})
}

// DateFailure records one date the builder could not produce
type DateFailure struct {
	Date time.Time
	Err  error
}

// RangeResult reports a range calculation; Built counts rows submitted and
// Inserted the rows that did not already exist
type RangeResult struct {
	Built    int
	Inserted int
	Failed   []DateFailure
}
