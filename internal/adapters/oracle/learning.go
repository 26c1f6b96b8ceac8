package oracle

import (
	"time"

	"shulzmanim/internal/core/limud"
	"shulzmanim/internal/platform/logger"
	ptime "shulzmanim/internal/platform/time"
	zdom "shulzmanim/internal/services/zmanim/domain"
)

// Learning implements zdom.LearningPort over the limud resolver
type Learning struct{ r *limud.Resolver }

// NewLearning logs schedule failures at warn and carries on with ""
func NewLearning() Learning {
	log := logger.Named("limud")
	return Learning{r: limud.New(func(schedule string, d time.Time, err error) {
		log.Warn().Err(err).Str("schedule", schedule).Str("date", ptime.Format(d)).Msg("learning schedule unavailable")
	})}
}

// Compute resolves the learning references for civil date d
func (l Learning) Compute(d time.Time, inIsrael bool) zdom.Learning {
	s := l.r.For(d, inIsrael)
	return zdom.Learning{
		Parsha:            s.Parsha,
		DafYomiBavli:      s.DafYomiBavli,
		MishnaYomis:       s.MishnaYomis,
		TehillimMonthly:   s.TehillimMonthly,
		DafYomiYerushalmi: s.DafYomiYerushalmi,
		PirkeiAvos:        s.PirkeiAvos,
		DafHashavuaBavli:  s.DafHashavuaBavli,
		AmudYomiDirshu:    s.AmudYomiDirshu,
	}
}
