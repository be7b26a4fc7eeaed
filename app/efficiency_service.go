package app

import (
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"

	"promcorr/domain/series"
	"promcorr/internal"
	"promcorr/models"
)

// EfficiencyService computes load-per-unit-power breakdowns over an
// aligned load/power pair.
type EfficiencyService struct {
	log *internal.Logger
}

// NewEfficiencyService creates an efficiency service.
func NewEfficiencyService(log *internal.Logger) *EfficiencyService {
	return &EfficiencyService{log: log}
}

// Analyze computes efficiency = load/power per aligned row (column 1 is
// load, column 2 is power), categorizes rows into load states at the
// 33rd/67th load percentiles, and summarizes efficiency overall and per
// state. Rows whose ratio is non-finite (zero power) are dropped. Returns
// nil when fewer than MinAlignedRows usable rows remain.
func (s *EfficiencyService) Analyze(aligned series.AlignedSeries) *models.EfficiencyReport {
	var load, power, eff []float64
	for _, p := range aligned.Points {
		ratio := p.V1 / p.V2
		if !series.Defined(ratio) {
			continue
		}
		load = append(load, p.V1)
		power = append(power, p.V2)
		eff = append(eff, ratio)
	}
	if len(eff) < MinAlignedRows {
		return nil
	}

	p33, _ := stats.Percentile(load, 33)
	p67, _ := stats.Percentile(load, 67)

	report := &models.EfficiencyReport{
		LoadMetric:  aligned.Name1,
		PowerMetric: aligned.Name2,
		N:           len(eff),
		P33:         p33,
		P67:         p67,
		Overall:     summarize(eff),
		ByState:     make(map[string]models.EfficiencyState),

		LoadPowerR:       stat.Correlation(load, power, nil),
		LoadEfficiencyR:  stat.Correlation(load, eff, nil),
		PowerEfficiencyR: stat.Correlation(power, eff, nil),
	}

	byState := map[string][]int{}
	for i, l := range load {
		state := models.LoadStateHigh
		switch {
		case l <= p33:
			state = models.LoadStateLow
		case l <= p67:
			state = models.LoadStateMedium
		}
		byState[state] = append(byState[state], i)
	}
	for state, idx := range byState {
		stateEff := take(eff, idx)
		stateLoad := take(load, idx)
		statePower := take(power, idx)
		loadMean, _ := stats.Mean(stateLoad)
		loadStd, _ := stats.StandardDeviationSample(stateLoad)
		powerMean, _ := stats.Mean(statePower)
		powerStd, _ := stats.StandardDeviationSample(statePower)
		report.ByState[state] = models.EfficiencyState{
			Count:      len(idx),
			Efficiency: summarize(stateEff),
			LoadMean:   loadMean,
			LoadStd:    loadStd,
			PowerMean:  powerMean,
			PowerStd:   powerStd,
		}
	}

	// Operating range of the top efficiency quartile.
	threshold, _ := stats.Percentile(eff, 75)
	report.TopQuartileThreshold = threshold
	report.OptimalLoadMin = math.Inf(1)
	report.OptimalLoadMax = math.Inf(-1)
	report.OptimalPowerMin = math.Inf(1)
	report.OptimalPowerMax = math.Inf(-1)
	for i, e := range eff {
		if e < threshold {
			continue
		}
		report.OptimalLoadMin = math.Min(report.OptimalLoadMin, load[i])
		report.OptimalLoadMax = math.Max(report.OptimalLoadMax, load[i])
		report.OptimalPowerMin = math.Min(report.OptimalPowerMin, power[i])
		report.OptimalPowerMax = math.Max(report.OptimalPowerMax, power[i])
	}

	return report
}

// summarize computes the standard descriptive block.
func summarize(values []float64) models.SummaryStats {
	mean, _ := stats.Mean(values)
	median, _ := stats.Median(values)
	std, _ := stats.StandardDeviationSample(values)
	min, _ := stats.Min(values)
	max, _ := stats.Max(values)
	q25, _ := stats.Percentile(values, 25)
	q75, _ := stats.Percentile(values, 75)
	return models.SummaryStats{
		N:      len(values),
		Mean:   mean,
		Median: median,
		Std:    std,
		Min:    min,
		Max:    max,
		Q25:    q25,
		Q75:    q75,
	}
}

func take(values []float64, idx []int) []float64 {
	out := make([]float64, len(idx))
	for i, j := range idx {
		out[i] = values[j]
	}
	return out
}
