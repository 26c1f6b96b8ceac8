// Package limud resolves the daily learning schedules for a civil date.
// Every schedule yields "" when the date falls outside its cycle.
package limud

import (
	"fmt"
	"strings"
	"time"

	ptime "shulzmanim/internal/platform/time"

	"github.com/hebcal/hdate"
	"github.com/hebcal/hebcal-go/dafyomi"
	"github.com/hebcal/hebcal-go/mishnayomi"
	"github.com/hebcal/hebcal-go/sedra"
	"github.com/hebcal/hebcal-go/yerushalmi"
)

// Schedule is the set of learning references for one day.
// DafYomiYerushalmi follows the Vilna edition, which has no daf on Yom
// Kippur and Tisha B'Av.
type Schedule struct {
	Parsha            string
	DafYomiBavli      string
	MishnaYomis       string
	TehillimMonthly   string
	DafYomiYerushalmi string
	PirkeiAvos        string
	DafHashavuaBavli  string
	AmudYomiDirshu    string
}

// Resolver computes schedules. A failing schedule never fails the whole
// day; its error goes to the optional report hook.
type Resolver struct {
	mishna mishnayomi.MishnaYomiIndex
	report func(schedule string, d time.Time, err error)
}

// New builds a resolver; report may be nil
func New(report func(schedule string, d time.Time, err error)) *Resolver {
	return &Resolver{mishna: mishnayomi.MakeIndex(), report: report}
}

// For resolves every schedule on civil date d
func (r *Resolver) For(d time.Time, israel bool) Schedule {
	hd := hdate.FromTime(d)
	return Schedule{
		Parsha:            r.guard("parsha", d, func() (string, error) { return parsha(d, israel) }),
		DafYomiBavli:      r.guard("daf_yomi_bavli", d, func() (string, error) { return dafYomi(hd) }),
		MishnaYomis:       r.guard("mishna_yomis", d, func() (string, error) { return r.mishnaYomis(hd) }),
		TehillimMonthly:   fmt.Sprintf("Day %d of Tehillim", hd.Day()),
		DafYomiYerushalmi: r.guard("daf_yomi_yerushalmi", d, func() (string, error) { return yerushalmiYomi(hd) }),
		PirkeiAvos:        pirkeiAvos(d, israel),
		DafHashavuaBavli:  r.guard("daf_hashavua_bavli", d, func() (string, error) { return dafHashavua(d) }),
		AmudYomiDirshu:    r.guard("amud_yomi_dirshu", d, func() (string, error) { return amudYomi(d) }),
	}
}

func (r *Resolver) guard(name string, d time.Time, fn func() (string, error)) (out string) {
	defer func() {
		if p := recover(); p != nil {
			r.fail(name, d, fmt.Errorf("panic: %v", p))
			out = ""
		}
	}()
	s, err := fn()
	if err != nil {
		r.fail(name, d, err)
		return ""
	}
	return s
}

func (r *Resolver) fail(name string, d time.Time, err error) {
	if r.report != nil {
		r.report(name, d, err)
	}
}

// parsha is the reading of the Shabbos on or after d; yom tov weeks have none
func parsha(d time.Time, israel bool) (string, error) {
	shabbos := ptime.AddDays(d, (int(time.Saturday)-int(d.Weekday())+7)%7)
	hd := hdate.FromTime(shabbos)
	s := sedra.New(hd.Year(), israel)
	p := s.Lookup(hd)
	if p.Chag || len(p.Name) == 0 {
		return "", nil
	}
	return strings.Join(p.Name, "-"), nil
}

func dafYomi(hd hdate.HDate) (string, error) {
	daf, err := dafyomi.New(hd)
	if err != nil {
		return "", err
	}
	return daf.String(), nil
}

// yerushalmiYomi is "" on the days the Vilna cycle skips
func yerushalmiYomi(hd hdate.HDate) (string, error) {
	daf := yerushalmi.New(hd, yerushalmi.Vilna)
	if daf.Blatt == 0 {
		return "", nil
	}
	return daf.String(), nil
}

func (r *Resolver) mishnaYomis(hd hdate.HDate) (string, error) {
	pair, err := r.mishna.Lookup(hd)
	if err != nil {
		return "", err
	}
	return pair.String(), nil
}
