// Package http serves stored zmanim
package http

import (
	stdhttp "net/http"

	"shulzmanim/internal/modkit/httpkit"
	perr "shulzmanim/internal/platform/errors"
	zdom "shulzmanim/internal/services/zmanim/domain"

	"github.com/google/uuid"
)

// Register mounts the read endpoints; r is already scoped to /shuls/{id}/zmanim.
// An unknown shul is not found, a known one without a row is not computed.
func Register(r httpkit.Router, s zdom.ReaderPort, shuls zdom.ShulLookupPort) {
	h := &handlers{svc: s, shuls: shuls}
	httpkit.Get(r, "/", h.list)
	httpkit.Get(r, "/{date}", h.day)
}

type handlers struct {
	svc   zdom.ReaderPort
	shuls zdom.ShulLookupPort
}

func (h *handlers) shul(r *stdhttp.Request) (uuid.UUID, error) {
	id, err := httpkit.PathUUID(r, "id")
	if err != nil {
		return id, err
	}
	_, err = h.shuls.Ref(r.Context(), id)
	return id, err
}

func (h *handlers) day(r *stdhttp.Request) (any, error) {
	id, err := h.shul(r)
	if err != nil {
		return nil, err
	}
	d, err := httpkit.PathDate(r, "date")
	if err != nil {
		return nil, err
	}
	return h.svc.Get(r.Context(), id, d)
}

func (h *handlers) list(r *stdhttp.Request) (any, error) {
	id, err := h.shul(r)
	if err != nil {
		return nil, err
	}
	start, ok, err := httpkit.QueryDate(r, "start")
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, perr.WithField(perr.InvalidArgf("start is required"), "start")
	}
	end, ok, err := httpkit.QueryDate(r, "end")
	if err != nil {
		return nil, err
	}
	if !ok {
		end = start
	}
	rows, err := h.svc.Range(r.Context(), id, start, end)
	if err != nil {
		return nil, err
	}
	return httpkit.List(rows), nil
}
