package app

import (
	"context"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"promcorr/internal"
	"promcorr/internal/config"
	"promcorr/models"
)

// SweepService fans a list of metric pairs out over the pair service with
// bounded concurrency. The shared file cache in the series source keeps
// repeated metrics from being re-parsed per pair.
type SweepService struct {
	pairs *PairService
	log   *internal.Logger
}

// NewSweepService creates a sweep service.
func NewSweepService(pairs *PairService, log *internal.Logger) *SweepService {
	return &SweepService{pairs: pairs, log: log}
}

// Run analyzes every configured pair. Results keep the config's pair
// order. The first loading failure cancels the remaining pairs.
func (s *SweepService) Run(ctx context.Context, cfg *config.SweepConfig, dataDir string) ([]*models.PairRun, error) {
	runs := make([]*models.PairRun, len(cfg.Pairs))

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(cfg.Concurrency)
	for i, pair := range cfg.Pairs {
		i, pair := i, pair
		group.Go(func() error {
			req := PairRequest{
				Dir1:     filepath.Join(dataDir, pair.Metric1),
				Dir2:     filepath.Join(dataDir, pair.Metric2),
				Metric1:  pair.Metric1,
				Metric2:  pair.Metric2,
				NumFiles: cfg.NumFiles,
				Host:     cfg.Host,
				MaxLag:   cfg.MaxLag,
				Window:   cfg.Window,
			}
			run, err := s.pairs.Analyze(ctx, req)
			if err != nil {
				s.log.Error("pair %s / %s: %v", pair.Metric1, pair.Metric2, err)
				return err
			}
			runs[i] = run
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return runs, nil
}
