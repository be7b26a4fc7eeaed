package models

// Load states, split at the 33rd and 67th load percentiles.
const (
	LoadStateLow    = "Low Load"
	LoadStateMedium = "Medium Load"
	LoadStateHigh   = "High Load"
)

// LoadStateOrder is the display order of load states.
var LoadStateOrder = []string{LoadStateLow, LoadStateMedium, LoadStateHigh}

// EfficiencyReport describes load-per-unit-power behavior of an aligned
// load/power pair.
type EfficiencyReport struct {
	LoadMetric  string `json:"load_metric"`
	PowerMetric string `json:"power_metric"`
	N           int    `json:"n"`

	// Load-state thresholds.
	P33 float64 `json:"p33"`
	P67 float64 `json:"p67"`

	Overall SummaryStats                `json:"overall"`
	ByState map[string]EfficiencyState  `json:"by_state"`

	// Pairwise Pearson correlations.
	LoadPowerR       float64 `json:"load_power_r"`
	LoadEfficiencyR  float64 `json:"load_efficiency_r"`
	PowerEfficiencyR float64 `json:"power_efficiency_r"`

	// Top-quartile operating range.
	TopQuartileThreshold float64 `json:"top_quartile_threshold"`
	OptimalLoadMin       float64 `json:"optimal_load_min"`
	OptimalLoadMax       float64 `json:"optimal_load_max"`
	OptimalPowerMin      float64 `json:"optimal_power_min"`
	OptimalPowerMax      float64 `json:"optimal_power_max"`
}

// EfficiencyState is the per-load-state breakdown.
type EfficiencyState struct {
	Count      int          `json:"count"`
	Efficiency SummaryStats `json:"efficiency"`
	LoadMean   float64      `json:"load_mean"`
	LoadStd    float64      `json:"load_std"`
	PowerMean  float64      `json:"power_mean"`
	PowerStd   float64      `json:"power_std"`
}
