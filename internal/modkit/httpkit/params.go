package httpkit

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	perr "shulzmanim/internal/platform/errors"
	phttp "shulzmanim/internal/platform/net/http"
	ptime "shulzmanim/internal/platform/time"

	"github.com/google/uuid"
)

// PathUUID parses the named path parameter as a UUID
func PathUUID(r *http.Request, name string) (uuid.UUID, error) {
	raw := phttp.URLParam(r, name)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, perr.WithField(perr.InvalidArgf("%s must be a UUID, got %q", name, raw), name)
	}
	return id, nil
}

// PathDate parses the named path parameter as YYYY-MM-DD
func PathDate(r *http.Request, name string) (time.Time, error) {
	return parseDate(phttp.URLParam(r, name), name)
}

// QueryDate parses the named query parameter as YYYY-MM-DD; ok is false when absent
func QueryDate(r *http.Request, name string) (d time.Time, ok bool, err error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return time.Time{}, false, nil
	}
	d, err = parseDate(raw, name)
	return d, err == nil, err
}

// QueryInt reads a non-negative integer query parameter or def
func QueryInt(r *http.Request, name string, def int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, perr.WithField(perr.InvalidArgf("%s must be a non-negative integer", name), name)
	}
	return n, nil
}

func parseDate(raw, name string) (time.Time, error) {
	d, err := ptime.Parse(raw)
	if err != nil {
		return time.Time{}, perr.WithField(perr.InvalidArgf("%s must be YYYY-MM-DD, got %q", name, raw), name)
	}
	return d, nil
}
