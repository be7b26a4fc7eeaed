// Package models holds the records exchanged between the app services,
// the report writers, and the run store.
package models

import (
	"time"

	"github.com/google/uuid"

	"promcorr/domain/series"
)

// Run statuses.
const (
	StatusOK               = "ok"
	StatusInsufficientData = "insufficient_data"
)

// PairRun is the complete outcome of one pair analysis. Correlation
// fields are nil when the corresponding statistic is undefined.
type PairRun struct {
	ID        uuid.UUID `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Metric1   string    `json:"metric1"`
	Metric2   string    `json:"metric2"`
	Status    string    `json:"status"`

	Cadence     time.Duration `json:"cadence"`
	Tolerance   time.Duration `json:"tolerance"`
	AlignedRows int           `json:"aligned_rows"`
	Rate1       bool          `json:"rate1"`
	Rate2       bool          `json:"rate2"`

	Correlation           *series.CorrelationResult `json:"correlation,omitempty"`
	NormalizedCorrelation *series.CorrelationResult `json:"normalized_correlation,omitempty"`
	Lag                   *series.LagResult         `json:"lag,omitempty"`
	RateOfChange          *series.CorrelationResult `json:"rate_of_change,omitempty"`
	RollingSummary        *RollingSummary           `json:"rolling_summary,omitempty"`

	// Bulk rows travel with the run in memory for the report writers but
	// are not persisted.
	Aligned series.AlignedSeries `json:"-"`
	Rolling series.RollingSeries `json:"-"`
}

// RollingSummary describes the defined portion of a rolling-correlation
// trajectory.
type RollingSummary struct {
	Window     int     `json:"window"`
	MinPeriods int     `json:"min_periods"`
	Defined    int     `json:"defined"`
	Mean       float64 `json:"mean"`
	Std        float64 `json:"std"`
	Min        float64 `json:"min"`
	Max        float64 `json:"max"`
	Q25        float64 `json:"q25"`
	Q75        float64 `json:"q75"`
}
