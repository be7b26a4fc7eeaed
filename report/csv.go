package report

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"

	"promcorr/domain/series"
)

// WriteRollingCSV writes the rolling correlation series to path. Undefined
// values are left empty so spreadsheet tools read them as blanks.
func WriteRollingCSV(path string, rolling series.RollingSeries) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"datetime", "v1", "v2", "v1_rolling_avg", "v2_rolling_avg", "rolling_corr"}); err != nil {
		return err
	}
	for _, p := range rolling.Points {
		record := []string{
			p.Time.UTC().Format(time.RFC3339),
			formatValue(p.V1),
			formatValue(p.V2),
			formatValue(p.V1Avg),
			formatValue(p.V2Avg),
			formatValue(p.Corr),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func formatValue(v float64) string {
	if !series.Defined(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}
