// Package http provides http transport for shuls
package http

import (
	stdhttp "net/http"
	"strconv"

	"shulzmanim/internal/modkit/httpkit"
	perr "shulzmanim/internal/platform/errors"
	phttp "shulzmanim/internal/platform/net/http"
	sdom "shulzmanim/internal/services/shuls/domain"
)

// Service is what the handlers need
type Service interface {
	sdom.ServicePort
	sdom.TextsPort
}

// Register mounts shul endpoints; r is already scoped to /shuls
func Register(r httpkit.Router, s Service) {
	sdom.RegisterValidations()
	h := &handlers{svc: s}
	httpkit.Get(r, "/", h.list)
	httpkit.CreateJSON[sdom.CreateInput](r, "/", h.create)
	httpkit.Get(r, "/{id}", h.get)
	httpkit.Delete(r, "/{id}", h.delete)
	httpkit.PatchJSON[sdom.LocationInput](r, "/{id}/location", h.location)
	httpkit.Post(r, "/{id}/deactivate", h.deactivate)

	httpkit.Get(r, "/{id}/texts", h.texts)
	httpkit.CreateJSON[sdom.TextInput](r, "/{id}/texts", h.createText)
	httpkit.Delete(r, "/{id}/texts/{name}", h.deleteText)
}

type handlers struct{ svc Service }

func (h *handlers) list(r *stdhttp.Request) (any, error) {
	active := false
	if raw := r.URL.Query().Get("active"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, perr.WithField(perr.InvalidArgf("active must be a boolean"), "active")
		}
		active = v
	}
	shuls, err := h.svc.List(r.Context(), active)
	if err != nil {
		return nil, err
	}
	return httpkit.List(shuls), nil
}

func (h *handlers) create(r *stdhttp.Request, in sdom.CreateInput) (any, error) {
	return h.svc.Create(r.Context(), in)
}

func (h *handlers) get(r *stdhttp.Request) (any, error) {
	id, err := httpkit.PathUUID(r, "id")
	if err != nil {
		return nil, err
	}
	return h.svc.Get(r.Context(), id)
}

func (h *handlers) delete(r *stdhttp.Request) (any, error) {
	id, err := httpkit.PathUUID(r, "id")
	if err != nil {
		return nil, err
	}
	if err := h.svc.Delete(r.Context(), id); err != nil {
		return nil, err
	}
	return httpkit.NoContent(), nil
}

func (h *handlers) location(r *stdhttp.Request, in sdom.LocationInput) (any, error) {
	id, err := httpkit.PathUUID(r, "id")
	if err != nil {
		return nil, err
	}
	return h.svc.UpdateLocation(r.Context(), id, in)
}

func (h *handlers) deactivate(r *stdhttp.Request) (any, error) {
	id, err := httpkit.PathUUID(r, "id")
	if err != nil {
		return nil, err
	}
	if err := h.svc.Deactivate(r.Context(), id); err != nil {
		return nil, err
	}
	return httpkit.NoContent(), nil
}

func (h *handlers) texts(r *stdhttp.Request) (any, error) {
	id, err := httpkit.PathUUID(r, "id")
	if err != nil {
		return nil, err
	}
	ts, err := h.svc.ListTexts(r.Context(), id)
	if err != nil {
		return nil, err
	}
	return httpkit.List(ts), nil
}

func (h *handlers) createText(r *stdhttp.Request, in sdom.TextInput) (any, error) {
	id, err := httpkit.PathUUID(r, "id")
	if err != nil {
		return nil, err
	}
	return h.svc.CreateText(r.Context(), id, in)
}

func (h *handlers) deleteText(r *stdhttp.Request) (any, error) {
	id, err := httpkit.PathUUID(r, "id")
	if err != nil {
		return nil, err
	}
	if err := h.svc.DeleteText(r.Context(), id, phttp.URLParam(r, "name")); err != nil {
		return nil, err
	}
	return httpkit.NoContent(), nil
}
