// Package series defines the core data model: timestamped samples, metric
// series, jointly-indexed aligned series, and the result records produced
// by the correlation engines. All types are derived, immutable snapshots;
// nothing here is mutated in place after construction.
//
// Absence convention: a non-finite value (NaN or Inf) marks a missing
// observation inside a float column. Aggregate results that cannot be
// computed at all (empty input, insufficient overlap) are returned as nil
// by the stats packages, never as errors.
package series
