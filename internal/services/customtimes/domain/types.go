// Package domain defines custom times: shul-defined times fixed on the clock
// or offset from a stored zman
package domain

import (
	"time"

	ptime "shulzmanim/internal/platform/time"

	"github.com/google/uuid"
)

// Time types
const (
	Fixed   = "fixed"
	Dynamic = "dynamic"
)

// CustomTime is one shul-defined time
type CustomTime struct {
	ID            uuid.UUID   `json:"id"`
	ShulID        uuid.UUID   `json:"shul_id"`
	InternalName  string      `json:"internal_name"`
	DisplayName   string      `json:"display_name"`
	Description   string      `json:"description"`
	TimeType      string      `json:"time_type"`
	BaseTime      string      `json:"base_time"`
	OffsetMinutes int         `json:"offset_minutes"`
	FixedTime     ptime.Clock `json:"fixed_time"`
	Daily         bool        `json:"daily"`
	DaysOfWeek    []int       `json:"days_of_week"`

	// DayOfWeek is the older single-day form; it joins DaysOfWeek
	DayOfWeek *int `json:"day_of_week"`

	// CalculatedTime is advisory and never read when resolving
	CalculatedTime ptime.Clock `json:"calculated_time"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AppliesOn reports whether the time is shown on weekday (0=Sunday).
// A non-daily time with no days never applies.
func (c CustomTime) AppliesOn(weekday time.Weekday) bool {
	if c.Daily {
		return true
	}
	if c.DayOfWeek != nil && *c.DayOfWeek == int(weekday) {
		return true
	}
	for _, d := range c.DaysOfWeek {
		if d == int(weekday) {
			return true
		}
	}
	return false
}

// CreateInput is the POST /shuls/{id}/custom-times body
type CreateInput struct {
	InternalName  string `json:"internal_name" validate:"required,max=100,internal_name"`
	DisplayName   string `json:"display_name" validate:"required,max=100"`
	Description   string `json:"description"`
	TimeType      string `json:"time_type" validate:"required,oneof=fixed dynamic"`
	BaseTime      string `json:"base_time" validate:"required_if=TimeType dynamic,base_time"`
	OffsetMinutes int    `json:"offset_minutes" validate:"min=-1440,max=1440"`
	FixedTime     string `json:"fixed_time" validate:"required_if=TimeType fixed,clock"`
	Daily         bool   `json:"daily"`
	DaysOfWeek    []int  `json:"days_of_week" validate:"dive,min=0,max=6"`
	DayOfWeek     *int   `json:"day_of_week" validate:"omitempty,min=0,max=6"`
}
