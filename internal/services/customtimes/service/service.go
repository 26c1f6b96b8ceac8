// Package service stores custom times and resolves them against stored zmanim
package service

import (
	"context"
	"strings"
	"time"

	"shulzmanim/internal/modkit/repokit"
	perr "shulzmanim/internal/platform/errors"
	"shulzmanim/internal/platform/logger"
	"shulzmanim/internal/platform/net/http/bind"
	ptime "shulzmanim/internal/platform/time"
	cdom "shulzmanim/internal/services/customtimes/domain"
	sdom "shulzmanim/internal/services/shuls/domain"
	zdom "shulzmanim/internal/services/zmanim/domain"

	"github.com/google/uuid"
)

// Service wires TxRunner + Binder with the shul directory and the zmanim reader
type Service struct {
	DB        repokit.TxRunner
	Binder    repokit.Binder[cdom.StorageRepo]
	Directory sdom.DirectoryPort
	Zmanim    zdom.ReaderPort
}

// New panics on nil collaborators
func New(db repokit.TxRunner, binder repokit.Binder[cdom.StorageRepo], dir sdom.DirectoryPort, z zdom.ReaderPort) *Service {
	if db == nil {
		panic("customtimes.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("customtimes.Service requires a non nil Repo binder")
	}
	if dir == nil || z == nil {
		panic("customtimes.Service requires the shul directory and zmanim reader")
	}
	cdom.RegisterValidations()
	return &Service{DB: db, Binder: binder, Directory: dir, Zmanim: z}
}

func (s *Service) repo() cdom.StorageRepo { return s.Binder.Bind(s.DB) }

func (s *Service) List(ctx context.Context, shulID uuid.UUID) ([]cdom.CustomTime, error) {
	return s.repo().List(ctx, shulID)
}

// Create validates the definition; an unknown base field is rejected here, never at resolve time
func (s *Service) Create(ctx context.Context, shulID uuid.UUID, in cdom.CreateInput) (cdom.CustomTime, error) {
	if err := bind.Struct(in); err != nil {
		return cdom.CustomTime{}, err
	}
	ct := cdom.CustomTime{
		ID:            uuid.New(),
		ShulID:        shulID,
		InternalName:  in.InternalName,
		DisplayName:   strings.TrimSpace(in.DisplayName),
		Description:   in.Description,
		TimeType:      in.TimeType,
		OffsetMinutes: in.OffsetMinutes,
		Daily:         in.Daily,
		DaysOfWeek:    in.DaysOfWeek,
		DayOfWeek:     in.DayOfWeek,
	}
	switch in.TimeType {
	case cdom.Fixed:
		c, err := ptime.ParseClock(in.FixedTime)
		if err != nil {
			return ct, perr.WithField(perr.Validationf("fixed_time must be a HH:MM time"), "fixed_time")
		}
		ct.FixedTime = c
	case cdom.Dynamic:
		ct.BaseTime = in.BaseTime
	}
	if ct.DaysOfWeek == nil {
		ct.DaysOfWeek = []int{}
	}
	return s.repo().Insert(ctx, ct)
}

func (s *Service) Delete(ctx context.Context, shulID uuid.UUID, internalName string) error {
	return s.repo().Delete(ctx, shulID, internalName)
}

// record loads the day's zmanim once; a missing row is nil without error
type record struct {
	s      *Service
	shulID uuid.UUID
	date   time.Time
	loaded bool
	row    *zdom.DailyZmanim
}

func (r *record) get(ctx context.Context) (*zdom.DailyZmanim, error) {
	if r.loaded {
		return r.row, nil
	}
	z, err := r.s.Zmanim.Get(ctx, r.shulID, r.date)
	switch {
	case perr.IsCode(err, perr.ErrorCodeNotComputed):
	case err != nil:
		return nil, err
	default:
		r.row = &z
	}
	r.loaded = true
	return r.row, nil
}

// Resolve evaluates ct on date in the shul's zone
func (s *Service) Resolve(ctx context.Context, ct cdom.CustomTime, date time.Time) (*time.Time, error) {
	if !ct.AppliesOn(date.Weekday()) {
		return nil, nil
	}
	ref, err := s.Directory.Ref(ctx, ct.ShulID)
	if err != nil {
		return nil, err
	}
	tz, err := ref.Location()
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeInvalidArgument, "unknown timezone %q", ref.Timezone)
	}
	return s.resolve(ctx, ct, date, tz, &record{s: s, shulID: ct.ShulID, date: date})
}

// ResolveAll evaluates every custom time of the shul, reading the day's row at most once
func (s *Service) ResolveAll(ctx context.Context, shulID uuid.UUID, date time.Time) (map[string]time.Time, error) {
	ref, err := s.Directory.Ref(ctx, shulID)
	if err != nil {
		return nil, err
	}
	tz, err := ref.Location()
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeInvalidArgument, "unknown timezone %q", ref.Timezone)
	}
	cts, err := s.repo().List(ctx, shulID)
	if err != nil {
		return nil, err
	}
	rec := &record{s: s, shulID: shulID, date: date}
	out := make(map[string]time.Time, len(cts))
	for _, ct := range cts {
		if !ct.AppliesOn(date.Weekday()) {
			continue
		}
		at, err := s.resolve(ctx, ct, date, tz, rec)
		if err != nil {
			return nil, err
		}
		if at != nil {
			out[ct.InternalName] = *at
		}
	}
	return out, nil
}

func (s *Service) resolve(ctx context.Context, ct cdom.CustomTime, date time.Time, tz *time.Location, rec *record) (*time.Time, error) {
	var base time.Time
	switch ct.TimeType {
	case cdom.Fixed:
		if !ct.FixedTime.Valid() {
			return nil, nil
		}
		base = ct.FixedTime.On(date, tz)
	case cdom.Dynamic:
		row, err := rec.get(ctx)
		if err != nil || row == nil {
			return nil, err
		}
		v, ok := row.Field(ct.BaseTime)
		if !ok {
			logger.C(ctx).Warn().Str("mod", "customtimes").Str("name", ct.InternalName).Str("base_time", ct.BaseTime).Msg("customtimes: unknown base field")
			return nil, nil
		}
		switch {
		case v.At != nil:
			base = *v.At
		case v.Clock.Valid():
			base = v.Clock.On(date, tz)
		default:
			return nil, nil
		}
	default:
		return nil, nil
	}
	at := base.Add(time.Duration(ct.OffsetMinutes) * time.Minute)
	return &at, nil
}

var _ cdom.ServicePort = (*Service)(nil)
