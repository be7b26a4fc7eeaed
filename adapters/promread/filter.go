package promread

import (
	"sort"
	"strings"
	"time"

	"promcorr/domain/series"
)

// StripPort removes a trailing ":<port>" from an instance label so host
// matching is port-agnostic.
func StripPort(instance string) string {
	if i := strings.LastIndex(instance, ":"); i >= 0 {
		return instance[:i]
	}
	return instance
}

// FilterInstance keeps rows whose stripped instance label contains host
// (case-insensitive substring). An empty host keeps everything.
func FilterInstance(rows []Row, host string) []Row {
	if host == "" {
		return rows
	}
	needle := strings.ToLower(host)
	out := make([]Row, 0, len(rows))
	for _, row := range rows {
		instance := strings.ToLower(StripPort(row.Labels["instance"]))
		if strings.Contains(instance, needle) {
			out = append(out, row)
		}
	}
	return out
}

// Instances returns the sorted unique stripped instance names present in
// the rows.
func Instances(rows []Row) []string {
	seen := make(map[string]struct{})
	for _, row := range rows {
		instance := StripPort(row.Labels["instance"])
		if instance == "" {
			continue
		}
		seen[instance] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for instance := range seen {
		out = append(out, instance)
	}
	sort.Strings(out)
	return out
}

// ToSeries collapses rows into a single series named name, summing values
// across label combinations that share an instant and dropping non-finite
// values. The result is sorted by time with unique instants.
func ToSeries(rows []Row, name string) series.Series {
	sums := make(map[int64]float64)
	for _, row := range rows {
		if !series.Defined(row.Value) {
			continue
		}
		sums[row.Time.UnixNano()] += row.Value
	}

	out := series.Series{Name: name, Samples: make([]series.Sample, 0, len(sums))}
	for nano, sum := range sums {
		out.Samples = append(out.Samples, series.Sample{Time: time.Unix(0, nano).UTC(), Value: sum})
	}
	return out.Sorted()
}
