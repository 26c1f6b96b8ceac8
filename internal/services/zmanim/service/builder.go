package service

import (
	"context"
	"time"

	perr "shulzmanim/internal/platform/errors"
	zdom "shulzmanim/internal/services/zmanim/domain"
)

// Builder merges the oracle's times and calendar with the learning
// references into one record. It does no I/O of its own.
type Builder struct {
	Oracle   zdom.OraclePort
	Learning zdom.LearningPort
}

// NewBuilder panics on nil ports
func NewBuilder(o zdom.OraclePort, l zdom.LearningPort) *Builder {
	if o == nil {
		panic("zmanim.Builder requires a non nil Oracle")
	}
	if l == nil {
		panic("zmanim.Builder requires a non nil Learning resolver")
	}
	return &Builder{Oracle: o, Learning: l}
}

// Build produces the record for (shul, date). Oracle errors are returned as is.
func (b *Builder) Build(ctx context.Context, shul zdom.ShulRef, date time.Time) (zdom.DailyZmanim, error) {
	tz, err := shul.Location()
	if err != nil {
		return zdom.DailyZmanim{}, perr.Wrapf(err, perr.ErrorCodeInvalidArgument, "shul %s has unknown timezone %q", shul.ID, shul.Timezone)
	}
	res, err := b.Oracle.Compute(ctx, zdom.Location{
		Latitude:  shul.Latitude,
		Longitude: shul.Longitude,
		TZ:        tz,
		InIsrael:  shul.InIsrael,
	}, date)
	if err != nil {
		return zdom.DailyZmanim{}, err
	}
	return zdom.DailyZmanim{
		ShulID:   shul.ID,
		Date:     date,
		Times:    res.Times,
		Hours:    res.Hours,
		Calendar: res.Calendar,
		Learning: b.Learning.Compute(date, shul.InIsrael),
	}, nil
}
