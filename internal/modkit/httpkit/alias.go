// Package httpkit is the HTTP toolkit modules import instead of the platform transport
package httpkit

import (
	"net/http"

	phttp "shulzmanim/internal/platform/net/http"
)

type (
	// Envelope is the response body shape
	Envelope = phttp.Envelope
	// Response is what return-style handlers produce
	Response = phttp.Response
	// Handler is the route handler shape
	Handler = phttp.Handler
	// Router is the routing seam
	Router = phttp.Router
)

// OK is a 200
func OK(data any) Response { return phttp.OK(data) }

// Created is a 201
func Created(data any) Response { return phttp.Created(data) }

// NoContent is a 204
func NoContent() Response { return phttp.NoContent() }

// Error maps err onto status and envelope
func Error(err error) Response { return phttp.Error(err) }

// List is a 200 carrying a count
func List[T any](items []T) Response { return phttp.List(items) }

// Call adapts a body-less handler; returning a Response passes it through
func Call(fn func(*http.Request) (any, error)) Handler { return phttp.JSONHandlerNoBody(fn) }

// Handle adapts a Response-returning function
func Handle(fn func(*http.Request) Response) Handler { return phttp.Handle(fn) }
