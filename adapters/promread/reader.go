// Package promread loads Prometheus range-query exports (.json.gz) into
// in-memory rows. It owns decompression, JSON parsing, numeric coercion,
// instance filtering, and per-instant aggregation; the stats packages
// never touch files.
package promread

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/klauspost/compress/gzip"

	"promcorr/domain/core"
)

// Row is one observation with its full label set.
type Row struct {
	Time   time.Time
	Value  float64
	Labels map[string]string
}

// queryResponse mirrors the Prometheus range-query API envelope.
type queryResponse struct {
	Status string    `json:"status"`
	Data   queryData `json:"data"`
}

type queryData struct {
	ResultType string        `json:"resultType"`
	Result     []queryResult `json:"result"`
}

type queryResult struct {
	Metric map[string]string `json:"metric"`
	// Each entry is a [unix-seconds, "value"] pair.
	Values [][]json.RawMessage `json:"values"`
}

// LoadFile reads one gzipped range-query export. Malformed timestamps or
// values are fatal: they surface as errors rather than being coerced.
func LoadFile(path string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open metric dump: %w", err)
	}
	defer f.Close()

	zr, err := gzip.NewReader(f)
	if err != nil {
		return nil, core.NewFileError(path, err)
	}
	defer zr.Close()

	var resp queryResponse
	if err := json.NewDecoder(zr).Decode(&resp); err != nil {
		return nil, core.NewFileError(path, err)
	}

	var rows []Row
	for _, result := range resp.Data.Result {
		for i, pair := range result.Values {
			if len(pair) != 2 {
				return nil, core.NewSampleError(i, string(join(pair)), fmt.Errorf("expected [timestamp, value] pair"))
			}
			ts, err := parseTimestamp(pair[0])
			if err != nil {
				return nil, core.NewSampleError(i, string(pair[0]), err)
			}
			val, err := parseValue(pair[1])
			if err != nil {
				return nil, core.NewSampleError(i, string(pair[1]), err)
			}
			rows = append(rows, Row{Time: ts, Value: val, Labels: result.Metric})
		}
	}
	return rows, nil
}

// LoadFiles reads and concatenates several exports of the same metric.
func LoadFiles(paths []string) ([]Row, error) {
	var rows []Row
	for _, path := range paths {
		fileRows, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		rows = append(rows, fileRows...)
	}
	return rows, nil
}

// LoadMetricDir loads up to numFiles *.json.gz dumps from a per-metric
// directory, in name order. numFiles <= 0 loads them all.
func LoadMetricDir(dir string, numFiles int) ([]Row, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.json.gz"))
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)
	if numFiles > 0 && len(paths) > numFiles {
		paths = paths[:numFiles]
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w: no *.json.gz files in %s", core.ErrNoData, dir)
	}
	return LoadFiles(paths)
}

// parseTimestamp accepts the API's unix-seconds number, at second or finer
// resolution.
func parseTimestamp(raw json.RawMessage) (time.Time, error) {
	var seconds float64
	if err := json.Unmarshal(raw, &seconds); err != nil {
		return time.Time{}, err
	}
	sec := int64(seconds)
	nsec := int64((seconds - float64(sec)) * float64(time.Second))
	return time.Unix(sec, nsec).UTC(), nil
}

// parseValue accepts the API's string-encoded sample value.
func parseValue(raw json.RawMessage) (float64, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		// Some exporters write bare numbers.
		var v float64
		if numErr := json.Unmarshal(raw, &v); numErr == nil {
			return v, nil
		}
		return 0, err
	}
	return strconv.ParseFloat(s, 64)
}

func join(parts []json.RawMessage) []byte {
	var out []byte
	for _, p := range parts {
		out = append(out, p...)
		out = append(out, ' ')
	}
	return out
}
