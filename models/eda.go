package models

// EDAReport summarizes every loaded metric plus their cross-correlation
// matrix.
type EDAReport struct {
	Metrics []MetricSummary    `json:"metrics"`
	Matrix  *CorrelationMatrix `json:"matrix,omitempty"`
}

// MetricSummary is the per-metric block of the EDA report.
type MetricSummary struct {
	Name  string       `json:"name"`
	Stats SummaryStats `json:"stats"`

	// IQR anomaly detection (3x IQR bounds).
	IQRAnomalies   int     `json:"iqr_anomalies"`
	IQRAnomalyPct  float64 `json:"iqr_anomaly_pct"`
	IQRLowerBound  float64 `json:"iqr_lower_bound"`
	IQRUpperBound  float64 `json:"iqr_upper_bound"`

	// Z-score anomaly detection (|z| > 3).
	ZScoreAnomalies  int     `json:"zscore_anomalies"`
	ZScoreAnomalyPct float64 `json:"zscore_anomaly_pct"`

	CoefficientOfVariation float64 `json:"coefficient_of_variation"`
	Skewness               float64 `json:"skewness"`
}

// CorrelationMatrix holds pairwise Pearson coefficients over the rows
// where all metrics are jointly defined on a shared one-minute grid.
type CorrelationMatrix struct {
	Names []string    `json:"names"`
	R     [][]float64 `json:"r"`
	N     int         `json:"n"`
}
