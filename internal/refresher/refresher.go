package refresher

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"fomezero/internal"
	"fomezero/internal/config"
	"fomezero/internal/pipeline"
)

const defaultInterval = 30 * time.Second

type Loader interface {
	Load() (*internal.Dataset, error)
}

// Service re-runs the loader on an interval. The loader only cleans again
// when the raw file checksum changed.
type Service struct {
	loader Loader
	cfg    config.Config
	last   string
}

func NewService(loader Loader, cfg config.Config) *Service {
	return &Service{loader: loader, cfg: cfg}
}

func (s *Service) Run(ctx context.Context) error {
	for {
		if _, err := s.runCycle(ctx); err != nil {
			fmt.Printf("refresher cycle error: %v\n", err)
		}

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(s.interval()):
		}
	}
}

// runCycle reports whether the dataset changed since the previous cycle.
func (s *Service) runCycle(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, nil
	}

	ds, err := s.loader.Load()
	if err != nil {
		return false, err
	}
	if ds.Checksum == s.last {
		return false, nil
	}

	previous := s.last
	s.last = ds.Checksum

	if s.cfg.RefreshAutoExport {
		if err := s.exportDataset(ds); err != nil {
			return true, err
		}
	}

	if previous != "" {
		fmt.Printf("refresher: dataset changed checksum=%s rows=%d\n", shortSum(ds.Checksum), ds.Stats.Kept)
	} else {
		fmt.Printf("refresher: dataset loaded checksum=%s rows=%d\n", shortSum(ds.Checksum), ds.Stats.Kept)
	}
	return true, nil
}

func (s *Service) exportDataset(ds *internal.Dataset) error {
	outputPath := filepath.Join(s.cfg.OutputDir, "refresh", shortSum(ds.Checksum)+".xlsx")
	return pipeline.ExportXLSX(*ds, outputPath)
}

func (s *Service) interval() time.Duration {
	if s.cfg.RefreshIntervalSec <= 0 {
		return defaultInterval
	}
	return time.Duration(s.cfg.RefreshIntervalSec) * time.Second
}

func shortSum(sum string) string {
	if len(sum) > 12 {
		return sum[:12]
	}
	return sum
}
