// Package service manages shuls and triggers recalculation on location changes
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"shulzmanim/internal/modkit/repokit"
	perr "shulzmanim/internal/platform/errors"
	"shulzmanim/internal/platform/logger"
	"shulzmanim/internal/platform/net/http/bind"
	str "shulzmanim/internal/platform/strings"
	ptime "shulzmanim/internal/platform/time"
	sdom "shulzmanim/internal/services/shuls/domain"
	zdom "shulzmanim/internal/services/zmanim/domain"

	"github.com/google/uuid"
)

// slugAttempts bounds the -N suffixes tried for a taken slug
const slugAttempts = 50

// Service wires TxRunner + Binder into shul management
type Service struct {
	DB     repokit.TxRunner
	Binder repokit.Binder[sdom.StorageRepo]
	Recalc sdom.RecalculatorPort
	Now    func() time.Time
}

// New panics on nil storage; a nil Recalc skips recalculation
func New(db repokit.TxRunner, binder repokit.Binder[sdom.StorageRepo], recalc sdom.RecalculatorPort, now func() time.Time) *Service {
	if db == nil {
		panic("shuls.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("shuls.Service requires a non nil Repo binder")
	}
	if now == nil {
		now = time.Now
	}
	sdom.RegisterValidations()
	return &Service{DB: db, Binder: binder, Recalc: recalc, Now: now}
}

func (s *Service) repo() sdom.StorageRepo { return s.Binder.Bind(s.DB) }

func (s *Service) List(ctx context.Context, activeOnly bool) ([]sdom.Shul, error) {
	return s.repo().List(ctx, activeOnly)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (sdom.Shul, error) {
	return s.repo().Get(ctx, id)
}

// Create derives the slug from the name when absent and appends -N until it is free
func (s *Service) Create(ctx context.Context, in sdom.CreateInput) (sdom.Shul, error) {
	if err := bind.Struct(in); err != nil {
		return sdom.Shul{}, err
	}
	base := str.Slug(in.Slug)
	if base == "" {
		base = str.Slug(in.Name)
	}
	if base == "" {
		base = "shul"
	}
	sh := sdom.Shul{
		Name:      strings.TrimSpace(in.Name),
		Latitude:  *in.Latitude,
		Longitude: *in.Longitude,
		Timezone:  in.Timezone,
		Country:   strings.TrimSpace(in.Country),
		InIsrael:  sdom.InIsrael(in.Country, in.InIsrael),
		Language:  in.Language,
		Active:    true,
	}
	if sh.Language == "" {
		sh.Language = "en"
	}

	repo := s.repo()
	for i := 0; i < slugAttempts; i++ {
		sh.ID = uuid.New()
		sh.Slug = base
		if i > 0 {
			sh.Slug = fmt.Sprintf("%s-%d", base, i)
		}
		out, err := repo.Insert(ctx, sh)
		if perr.IsDuplicateKey(err) {
			continue
		}
		if err != nil {
			return out, err
		}
		logger.C(ctx).Info().Str("mod", "shuls").Str("shul_id", out.ID.String()).Str("slug", out.Slug).Msg("shuls: created")
		return out, nil
	}
	return sdom.Shul{}, perr.WithField(perr.New(perr.ErrorCodeConflict, "no free slug for "+base), "slug")
}

// UpdateLocation saves the new location, then recalculates from today in the
// shul's (new) zone. A failed recalculation is logged; the daily integrity
// job refills the window.
func (s *Service) UpdateLocation(ctx context.Context, id uuid.UUID, in sdom.LocationInput) (sdom.Shul, error) {
	if err := bind.Struct(in); err != nil {
		return sdom.Shul{}, err
	}
	repo := s.repo()
	cur, err := repo.Get(ctx, id)
	if err != nil {
		return cur, err
	}
	country := strings.TrimSpace(in.Country)
	if country == "" {
		country = cur.Country
	}
	sh, err := repo.UpdateLocation(ctx, id, sdom.Location{
		Latitude:  *in.Latitude,
		Longitude: *in.Longitude,
		Timezone:  in.Timezone,
		Country:   country,
		InIsrael:  sdom.InIsrael(country, in.InIsrael),
	})
	if err != nil {
		return sh, err
	}
	if s.Recalc == nil || !sh.Active {
		return sh, nil
	}

	l := logger.C(ctx).With().Str("mod", "shuls").Str("shul_id", id.String()).Logger()
	tz, err := time.LoadLocation(sh.Timezone)
	if err != nil {
		return sh, perr.Wrapf(err, perr.ErrorCodeInvalidArgument, "unknown timezone %q", sh.Timezone)
	}
	from := ptime.Today(s.Now(), tz)
	res, err := s.Recalc.RecalculateFrom(ctx, sh.Ref(), from)
	if err != nil {
		l.Error().Err(err).Str("from", ptime.Format(from)).Msg("shuls: recalculation after location change failed")
		return sh, nil
	}
	l.Info().Str("from", ptime.Format(from)).Int("inserted", res.Inserted).Int("failed", len(res.Failed)).Msg("shuls: location changed, zmanim recalculated")
	return sh, nil
}

// Deactivate stops scheduled maintenance for the shul
func (s *Service) Deactivate(ctx context.Context, id uuid.UUID) error {
	return s.repo().SetActive(ctx, id, false)
}

// Delete removes the shul and everything it owns
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo().Delete(ctx, id)
}

// Ref resolves the calculator's view of a shul
func (s *Service) Ref(ctx context.Context, id uuid.UUID) (zdom.ShulRef, error) {
	sh, err := s.repo().Get(ctx, id)
	if err != nil {
		return zdom.ShulRef{}, err
	}
	return sh.Ref(), nil
}

// ListActive lists the refs of active shuls
func (s *Service) ListActive(ctx context.Context) ([]zdom.ShulRef, error) {
	shuls, err := s.repo().List(ctx, true)
	if err != nil {
		return nil, err
	}
	out := make([]zdom.ShulRef, len(shuls))
	for i, sh := range shuls {
		out[i] = sh.Ref()
	}
	return out, nil
}

func (s *Service) ListTexts(ctx context.Context, shulID uuid.UUID) ([]sdom.CustomText, error) {
	return s.repo().ListTexts(ctx, shulID)
}

// CreateText defaults the type to text and the size to 16
func (s *Service) CreateText(ctx context.Context, shulID uuid.UUID, in sdom.TextInput) (sdom.CustomText, error) {
	if err := bind.Struct(in); err != nil {
		return sdom.CustomText{}, err
	}
	t := sdom.CustomText{
		ID:           uuid.New(),
		ShulID:       shulID,
		InternalName: in.InternalName,
		DisplayName:  in.DisplayName,
		TextType:     in.TextType,
		TextContent:  in.TextContent,
		FontSize:     in.FontSize,
		FontColor:    in.FontColor,
		Description:  in.Description,
	}
	if t.TextType == "" {
		t.TextType = sdom.TextPlain
	}
	if t.TextType == sdom.TextDivider {
		t.TextContent = ""
	}
	if t.FontSize == 0 {
		t.FontSize = 16
	}
	if t.FontColor == "" {
		t.FontColor = "#000000"
	}
	return s.repo().InsertText(ctx, t)
}

func (s *Service) DeleteText(ctx context.Context, shulID uuid.UUID, internalName string) error {
	return s.repo().DeleteText(ctx, shulID, internalName)
}

var (
	_ sdom.ServicePort   = (*Service)(nil)
	_ sdom.TextsPort     = (*Service)(nil)
	_ sdom.DirectoryPort = (*Service)(nil)
)
