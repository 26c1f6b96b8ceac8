// Package domain defines the rolling window jobs and their reports
package domain

import (
	"time"

	ptime "shulzmanim/internal/platform/time"
	zdom "shulzmanim/internal/services/zmanim/domain"

	"github.com/google/uuid"
)

// Job names a maintenance job
type Job string

// Jobs
const (
	JobExtend      Job = "extend"
	JobValidate    Job = "validate"
	JobCleanup     Job = "cleanup"
	JobRecalculate Job = "recalculate"
	JobPopulate    Job = "populate"
)

// Failure is a shul the job could not process
type Failure struct {
	ShulID uuid.UUID `json:"shul_id"`
	Name   string    `json:"name"`
	Error  string    `json:"error"`
}

// Report summarises one run over the active shuls
type Report struct {
	Job   Job `json:"job"`
	Shuls int `json:"shuls"`

	// Changed counts shuls extended, fixed or cleaned
	Changed  int `json:"changed"`
	Inserted int `json:"inserted"`
	Deleted  int `json:"deleted"`

	// DateFailures counts single dates the builder skipped
	DateFailures int       `json:"date_failures"`
	Failed       []Failure `json:"failed"`

	Took time.Duration `json:"-"`
}

// RecalculateInput is the body of a recalculate request; From defaults to the shul's local today
type RecalculateInput struct {
	From string `json:"from" validate:"omitempty,datetime=2006-01-02"`
}

// PopulateInput is the body of a populate request; Months defaults to DefaultPopulateMonths
type PopulateInput struct {
	Months int `json:"months" validate:"omitempty,min=1"`
}

// DefaultPopulateMonths is used when a populate request names no month count
const DefaultPopulateMonths = 6

// RangeSummary is the API view of a range calculation
type RangeSummary struct {
	Built    int           `json:"built"`
	Inserted int           `json:"inserted"`
	Failed   []DateFailure `json:"failed,omitempty"`
}

// DateFailure is the API view of one skipped date
type DateFailure struct {
	Date  string `json:"date"`
	Error string `json:"error"`
}

// Summarize converts a range result for the API
func Summarize(r zdom.RangeResult) RangeSummary {
	out := RangeSummary{Built: r.Built, Inserted: r.Inserted}
	for _, f := range r.Failed {
		out.Failed = append(out.Failed, DateFailure{Date: ptime.Format(f.Date), Error: f.Err.Error()})
	}
	return out
}
