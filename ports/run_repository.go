package ports

import (
	"context"

	"github.com/google/uuid"

	"promcorr/models"
)

// RunRepository persists pair-analysis runs. Implementations are optional:
// services treat a nil repository as "do not persist".
type RunRepository interface {
	SaveRun(ctx context.Context, run *models.PairRun) error
	GetRun(ctx context.Context, id uuid.UUID) (*models.PairRun, error)
	ListRuns(ctx context.Context, limit int) ([]*models.PairRun, error)
}
