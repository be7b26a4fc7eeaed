// Package ports defines the interfaces between the app services and their
// adapters. Services accept these interfaces; adapters return concrete
// implementations.
package ports

import (
	"promcorr/domain/series"
)

// SeriesSource supplies ordered metric series from stored dumps. Host, when
// non-empty, restricts rows to instances whose port-stripped name contains
// it.
type SeriesSource interface {
	// LoadSeries loads and merges the given dump files into one series.
	LoadSeries(paths []string, name, host string) (series.Series, error)

	// LoadMetricDir loads up to numFiles dumps from a per-metric directory.
	LoadMetricDir(dir string, numFiles int, name, host string) (series.Series, error)

	// ListInstances returns the unique instance names in one dump file.
	ListInstances(path string) ([]string, error)
}
