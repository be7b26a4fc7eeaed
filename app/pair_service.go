// Package app wires the ingest, temporal, and correlation layers into the
// analyses the CLI and server expose: single-pair runs, multi-pair
// sweeps, efficiency breakdowns, and EDA summaries.
package app

import (
	"context"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/montanaflynn/stats"

	"promcorr/adapters/stats/engine"
	"promcorr/adapters/stats/temporal"
	"promcorr/domain/series"
	"promcorr/internal"
	"promcorr/models"
	"promcorr/ports"
)

// MinAlignedRows is the overlap below which a pair run reports
// insufficient data instead of statistics.
const MinAlignedRows = 10

// PairRequest describes one pair analysis. Either explicit file lists or
// per-metric directories may be given; directories win when both are set.
type PairRequest struct {
	Files1 []string
	Files2 []string
	Dir1   string
	Dir2   string

	Metric1  string
	Metric2  string
	NumFiles int
	Host     string

	Cadence    time.Duration
	Tolerance  time.Duration
	MaxLag     int
	Window     int
	MinPeriods int

	// SkipRateConversion leaves cumulative counters untouched.
	SkipRateConversion bool
}

// PairService runs single-pair correlation analyses.
type PairService struct {
	source ports.SeriesSource
	runs   ports.RunRepository
	log    *internal.Logger
}

// NewPairService creates a pair service. runs may be nil to disable
// persistence.
func NewPairService(source ports.SeriesSource, runs ports.RunRepository, log *internal.Logger) *PairService {
	return &PairService{source: source, runs: runs, log: log}
}

// Analyze loads, normalizes, aligns and correlates one metric pair. Data
// conditions (no overlap, degenerate statistics) are reported in the run
// status and nil result fields; only loading failures return an error.
func (s *PairService) Analyze(ctx context.Context, req PairRequest) (*models.PairRun, error) {
	s1, err := s.loadSide(req.Files1, req.Dir1, req.Metric1, req)
	if err != nil {
		return nil, err
	}
	s2, err := s.loadSide(req.Files2, req.Dir2, req.Metric2, req)
	if err != nil {
		return nil, err
	}
	s.log.Info("loaded %d points of %s, %d points of %s", s1.Len(), s1.Name, s2.Len(), s2.Name)

	run := &models.PairRun{
		ID:        uuid.New(),
		CreatedAt: time.Now().UTC(),
		Metric1:   s1.Name,
		Metric2:   s2.Name,
	}

	if !req.SkipRateConversion {
		if temporal.IsCumulative(s1) && s1.Len() >= 2 {
			s1 = temporal.ToRate(s1)
			run.Rate1 = true
			s.log.Info("%s classified cumulative, converted to rate (%d points)", run.Metric1, s1.Len())
		}
		if temporal.IsCumulative(s2) && s2.Len() >= 2 {
			s2 = temporal.ToRate(s2)
			run.Rate2 = true
			s.log.Info("%s classified cumulative, converted to rate (%d points)", run.Metric2, s2.Len())
		}
	}

	cadence := req.Cadence
	if cadence <= 0 {
		cadence = temporal.InferCadence(s1, s2)
	}
	tolerance := req.Tolerance
	if tolerance <= 0 {
		tolerance = 2 * cadence
	}
	run.Cadence = cadence
	run.Tolerance = tolerance

	aligned := temporal.Align(s1, s2, cadence, tolerance)
	run.Aligned = aligned
	run.AlignedRows = aligned.Len()
	s.log.Info("aligned to %d rows at cadence %s", aligned.Len(), cadence)

	if aligned.Len() < MinAlignedRows {
		run.Status = models.StatusInsufficientData
		s.persist(ctx, run)
		return run, nil
	}
	run.Status = models.StatusOK

	run.Correlation = engine.Correlate(aligned, false)
	run.NormalizedCorrelation = engine.Correlate(aligned, true)
	run.Lag = engine.LagCorrelate(aligned, req.MaxLag)
	run.RateOfChange = engine.RateCorrelate(aligned)
	run.Rolling = engine.RollingCorrelate(aligned, req.Window, req.MinPeriods)
	run.RollingSummary = summarizeRolling(run.Rolling)

	s.persist(ctx, run)
	return run, nil
}

func (s *PairService) loadSide(files []string, dir, name string, req PairRequest) (series.Series, error) {
	if dir != "" {
		if name == "" {
			name = filepath.Base(dir)
		}
		return s.source.LoadMetricDir(dir, req.NumFiles, name, req.Host)
	}
	if name == "" && len(files) > 0 {
		name = filepath.Base(filepath.Dir(files[0]))
	}
	return s.source.LoadSeries(files, name, req.Host)
}

func (s *PairService) persist(ctx context.Context, run *models.PairRun) {
	if s.runs == nil {
		return
	}
	if err := s.runs.SaveRun(ctx, run); err != nil {
		s.log.Warn("persisting run %s: %v", run.ID, err)
	}
}

// summarizeRolling reduces the defined rolling correlations to a summary
// block, or nil when nothing is defined.
func summarizeRolling(rolling series.RollingSeries) *models.RollingSummary {
	defined := rolling.DefinedCorrelations()
	if len(defined) == 0 {
		return nil
	}
	mean, _ := stats.Mean(defined)
	std, _ := stats.StandardDeviationSample(defined)
	min, _ := stats.Min(defined)
	max, _ := stats.Max(defined)
	q25, _ := stats.Percentile(defined, 25)
	q75, _ := stats.Percentile(defined, 75)
	return &models.RollingSummary{
		Window:     rolling.Window,
		MinPeriods: rolling.MinPeriods,
		Defined:    len(defined),
		Mean:       mean,
		Std:        std,
		Min:        min,
		Max:        max,
		Q25:        q25,
		Q75:        q75,
	}
}
