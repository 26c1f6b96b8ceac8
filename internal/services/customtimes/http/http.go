// Package http provides http transport for custom times
package http

import (
	stdhttp "net/http"
	"time"

	"shulzmanim/internal/modkit/httpkit"
	phttp "shulzmanim/internal/platform/net/http"
	ptime "shulzmanim/internal/platform/time"
	cdom "shulzmanim/internal/services/customtimes/domain"
	sdom "shulzmanim/internal/services/shuls/domain"
	zdom "shulzmanim/internal/services/zmanim/domain"
)

// Register mounts custom time endpoints; r is already scoped to /shuls/{id}/custom-times
func Register(r httpkit.Router, s cdom.ServicePort, dir sdom.DirectoryPort, now func() time.Time) {
	cdom.RegisterValidations()
	h := &handlers{svc: s, dir: dir, now: now}
	httpkit.Get(r, "/", h.list)
	httpkit.CreateJSON[cdom.CreateInput](r, "/", h.create)
	httpkit.Get(r, "/resolved", h.resolved)
	httpkit.Get(r, "/base-fields", h.baseFields)
	httpkit.Delete(r, "/{name}", h.delete)
}

type handlers struct {
	svc cdom.ServicePort
	dir sdom.DirectoryPort
	now func() time.Time
}

func (h *handlers) list(r *stdhttp.Request) (any, error) {
	id, err := httpkit.PathUUID(r, "id")
	if err != nil {
		return nil, err
	}
	cts, err := h.svc.List(r.Context(), id)
	if err != nil {
		return nil, err
	}
	return httpkit.List(cts), nil
}

func (h *handlers) create(r *stdhttp.Request, in cdom.CreateInput) (any, error) {
	id, err := httpkit.PathUUID(r, "id")
	if err != nil {
		return nil, err
	}
	return h.svc.Create(r.Context(), id, in)
}

func (h *handlers) delete(r *stdhttp.Request) (any, error) {
	id, err := httpkit.PathUUID(r, "id")
	if err != nil {
		return nil, err
	}
	if err := h.svc.Delete(r.Context(), id, phttp.URLParam(r, "name")); err != nil {
		return nil, err
	}
	return httpkit.NoContent(), nil
}

// baseFields lists the names base_time accepts
func (h *handlers) baseFields(r *stdhttp.Request) (any, error) {
	if _, err := httpkit.PathUUID(r, "id"); err != nil {
		return nil, err
	}
	return httpkit.List(zdom.BaseFields()), nil
}

type resolved struct {
	Date  string               `json:"date"`
	Times map[string]time.Time `json:"times"`
}

// resolved defaults the date to today in the shul's zone
func (h *handlers) resolved(r *stdhttp.Request) (any, error) {
	id, err := httpkit.PathUUID(r, "id")
	if err != nil {
		return nil, err
	}
	ref, err := h.dir.Ref(r.Context(), id)
	if err != nil {
		return nil, err
	}
	tz, err := ref.Location()
	if err != nil {
		return nil, err
	}
	date, ok, err := httpkit.QueryDate(r, "date")
	if err != nil {
		return nil, err
	}
	if !ok {
		date = ptime.Today(h.now(), tz)
	}
	times, err := h.svc.ResolveAll(r.Context(), id, date)
	if err != nil {
		return nil, err
	}
	for k, v := range times {
		times[k] = v.In(tz)
	}
	return resolved{Date: ptime.Format(date), Times: times}, nil
}
