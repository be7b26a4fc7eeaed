package promread

import (
	"fmt"
	"path/filepath"
	"sort"

	"promcorr/domain/core"
	"promcorr/domain/series"
	"promcorr/ports"
)

// Source implements ports.SeriesSource over dump files on disk, with an
// LRU cache of parsed files shared across calls.
type Source struct {
	cache *FileCache
}

var _ ports.SeriesSource = (*Source)(nil)

// NewSource creates a Source caching up to cacheSize parsed files.
func NewSource(cacheSize int) (*Source, error) {
	cache, err := NewFileCache(cacheSize)
	if err != nil {
		return nil, err
	}
	return &Source{cache: cache}, nil
}

// LoadSeries loads and merges the given dump files into one series named
// name, optionally filtered to one host.
func (s *Source) LoadSeries(paths []string, name, host string) (series.Series, error) {
	var rows []Row
	for _, path := range paths {
		fileRows, err := s.cache.Load(path)
		if err != nil {
			return series.Series{}, err
		}
		rows = append(rows, fileRows...)
	}
	rows = FilterInstance(rows, host)
	return ToSeries(rows, name), nil
}

// LoadMetricDir loads up to numFiles *.json.gz dumps from dir, in name
// order, into one series.
func (s *Source) LoadMetricDir(dir string, numFiles int, name, host string) (series.Series, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.json.gz"))
	if err != nil {
		return series.Series{}, err
	}
	sort.Strings(paths)
	if numFiles > 0 && len(paths) > numFiles {
		paths = paths[:numFiles]
	}
	if len(paths) == 0 {
		return series.Series{}, fmt.Errorf("%w: no *.json.gz files in %s", core.ErrNoData, dir)
	}
	return s.LoadSeries(paths, name, host)
}

// ListInstances returns the unique port-stripped instance names in one
// dump file.
func (s *Source) ListInstances(path string) ([]string, error) {
	rows, err := s.cache.Load(path)
	if err != nil {
		return nil, err
	}
	return Instances(rows), nil
}
