package config

import (
	"github.com/BurntSushi/toml"

	"promcorr/internal/errors"
)

// SweepConfig describes a multi-pair analysis run, loaded from a TOML
// file.
//
//	window = 30
//	max-lag = 20
//	concurrency = 4
//
//	[[pair]]
//	metric1 = "node_load1"
//	metric2 = "rPDULoadStatusLoad"
type SweepConfig struct {
	Window      int        `toml:"window"`
	MaxLag      int        `toml:"max-lag"`
	Concurrency int        `toml:"concurrency"`
	NumFiles    int        `toml:"num-files"`
	Host        string     `toml:"host"`
	Pairs       []PairSpec `toml:"pair"`
}

// PairSpec names the two metric directories of one pair.
type PairSpec struct {
	Metric1 string `toml:"metric1"`
	Metric2 string `toml:"metric2"`
}

// LoadSweep parses a sweep configuration file.
func LoadSweep(path string) (*SweepConfig, error) {
	var cfg SweepConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, errors.Wrapf(err, "parse sweep config %s", path)
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 4
	}
	if len(cfg.Pairs) == 0 {
		return nil, errors.New("EMPTY_SWEEP", "sweep config lists no pairs")
	}
	return &cfg, nil
}
