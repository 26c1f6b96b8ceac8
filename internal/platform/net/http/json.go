package http

import (
	"net/http"

	"shulzmanim/internal/platform/net/http/bind"
)

// JSONHandler binds and validates T, then wraps fn's result as a 200
func JSONHandler[T any](fn func(*http.Request, T) (any, error)) Handler {
	return JSONHandlerStatus(http.StatusOK, fn)
}

// JSONHandlerStatus is JSONHandler with a custom success status
func JSONHandlerStatus[T any](status int, fn func(*http.Request, T) (any, error)) Handler {
	return Handle(func(r *http.Request) Response {
		in, err := bind.ParseJSON[T](r)
		if err != nil {
			return Error(err)
		}
		out, err := fn(r, in)
		if err != nil {
			return Error(err)
		}
		return Response{Status: status, Body: out}
	})
}

// JSONHandlerNoBody calls fn without reading a body
func JSONHandlerNoBody(fn func(*http.Request) (any, error)) Handler {
	return Handle(func(r *http.Request) Response {
		out, err := fn(r)
		if err != nil {
			return Error(err)
		}
		if resp, ok := out.(Response); ok {
			return resp
		}
		return OK(out)
	})
}
