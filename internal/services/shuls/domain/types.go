// Package domain defines shuls, their owned texts and the ports around them
package domain

import (
	"strings"
	"time"

	zdom "shulzmanim/internal/services/zmanim/domain"

	"github.com/google/uuid"
)

// Shul is a synagogue and the place its zmanim are calculated for
type Shul struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Timezone  string    `json:"timezone"`
	Country   string    `json:"country"`
	InIsrael  bool      `json:"in_israel"`
	Language  string    `json:"language"`
	Active    bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Ref is the calculator's view of the shul
func (s Shul) Ref() zdom.ShulRef {
	return zdom.ShulRef{
		ID:        s.ID,
		Name:      s.Name,
		Latitude:  s.Latitude,
		Longitude: s.Longitude,
		Timezone:  s.Timezone,
		InIsrael:  s.InIsrael,
	}
}

// CreateInput is the POST /shuls body
type CreateInput struct {
	Name      string   `json:"name" validate:"required,min=2,max=200"`
	Slug      string   `json:"slug" validate:"omitempty,max=250"`
	Latitude  *float64 `json:"latitude" validate:"required,min=-90,max=90"`
	Longitude *float64 `json:"longitude" validate:"required,min=-180,max=180"`
	Timezone  string   `json:"timezone" validate:"required,iana_tz"`
	Country   string   `json:"country" validate:"required,max=100"`
	InIsrael  *bool    `json:"in_israel"`
	Language  string   `json:"language" validate:"omitempty,display_lang"`
}

// LocationInput is the PATCH /shuls/{id}/location body
type LocationInput struct {
	Latitude  *float64 `json:"latitude" validate:"required,min=-90,max=90"`
	Longitude *float64 `json:"longitude" validate:"required,min=-180,max=180"`
	Timezone  string   `json:"timezone" validate:"required,iana_tz"`
	Country   string   `json:"country" validate:"omitempty,max=100"`
	InIsrael  *bool    `json:"in_israel"`
}

// Location is a validated location change
type Location struct {
	Latitude  float64
	Longitude float64
	Timezone  string
	Country   string
	InIsrael  bool
}

// InIsrael derives the flag from the country unless it was given
func InIsrael(country string, explicit *bool) bool {
	if explicit != nil {
		return *explicit
	}
	switch strings.ToLower(strings.TrimSpace(country)) {
	case "israel", "il", "isr":
		return true
	}
	return false
}

// Text types
const (
	TextPlain   = "text"
	TextDivider = "divider"
)

// CustomText is a labelled text or divider shown on the shul's display
type CustomText struct {
	ID           uuid.UUID `json:"id"`
	ShulID       uuid.UUID `json:"shul_id"`
	InternalName string    `json:"internal_name"`
	DisplayName  string    `json:"display_name"`
	TextType     string    `json:"text_type"`
	TextContent  string    `json:"text_content"`
	FontSize     int       `json:"font_size"`
	FontColor    string    `json:"font_color"`
	Description  string    `json:"description"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TextInput is the POST /shuls/{id}/texts body
type TextInput struct {
	InternalName string `json:"internal_name" validate:"required,max=100,internal_name"`
	DisplayName  string `json:"display_name" validate:"required,max=100"`
	TextType     string `json:"text_type" validate:"omitempty,oneof=text divider"`
	TextContent  string `json:"text_content"`
	FontSize     int    `json:"font_size" validate:"omitempty,min=6,max=200"`
	FontColor    string `json:"font_color" validate:"omitempty,hexcolor"`
	Description  string `json:"description"`
}
