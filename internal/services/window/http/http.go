// Package http exposes the admin recalculate and populate triggers
package http

import (
	stdhttp "net/http"
	"time"

	"shulzmanim/internal/modkit/httpkit"
	perr "shulzmanim/internal/platform/errors"
	ptime "shulzmanim/internal/platform/time"
	wdom "shulzmanim/internal/services/window/domain"
)

// Register mounts the triggers on the api router
func Register(r httpkit.Router, jobs wdom.JobsPort, now func() time.Time) {
	h := &handlers{jobs: jobs, now: now}
	httpkit.PostJSON[wdom.RecalculateInput](r, "/shuls/{id}/zmanim/recalculate", h.recalculate)
	httpkit.PostJSON[wdom.PopulateInput](r, "/shuls/{id}/zmanim/populate", h.populate)
}

type handlers struct {
	jobs wdom.JobsPort
	now  func() time.Time
}

func (h *handlers) recalculate(r *stdhttp.Request, in wdom.RecalculateInput) (any, error) {
	id, err := httpkit.PathUUID(r, "id")
	if err != nil {
		return nil, err
	}
	shul, err := h.jobs.Shul(r.Context(), id)
	if err != nil {
		return nil, err
	}

	var from time.Time
	if in.From != "" {
		if from, err = ptime.Parse(in.From); err != nil {
			return nil, perr.WithField(perr.InvalidArgf("from must be YYYY-MM-DD"), "from")
		}
	} else {
		tz, err := shul.Location()
		if err != nil {
			return nil, perr.Wrapf(err, perr.ErrorCodeInvalidArgument, "unknown timezone %q", shul.Timezone)
		}
		from = ptime.Today(h.now(), tz)
	}

	res, err := h.jobs.RecalculateFrom(r.Context(), shul, from)
	if err != nil {
		return nil, err
	}
	return wdom.Summarize(res), nil
}

func (h *handlers) populate(r *stdhttp.Request, in wdom.PopulateInput) (any, error) {
	id, err := httpkit.PathUUID(r, "id")
	if err != nil {
		return nil, err
	}
	shul, err := h.jobs.Shul(r.Context(), id)
	if err != nil {
		return nil, err
	}
	months := in.Months
	if months == 0 {
		months = wdom.DefaultPopulateMonths
	}
	res, err := h.jobs.Populate(r.Context(), shul, months, h.now())
	if err != nil {
		return nil, err
	}
	return wdom.Summarize(res), nil
}
