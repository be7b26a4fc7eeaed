// Package temporal turns two irregularly-sampled, differently-cadenced
// metric streams into a single jointly-indexed series. It owns the three
// pre-correlation transforms: cumulative-counter rate normalization,
// cadence inference, and tolerance-bounded nearest alignment.
package temporal
