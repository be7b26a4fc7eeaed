package ports

import (
	"promcorr/models"
)

// ReportWriter renders a finished pair run to some output format under the
// given directory.
type ReportWriter interface {
	WritePairRun(run *models.PairRun, dir string) error
}
