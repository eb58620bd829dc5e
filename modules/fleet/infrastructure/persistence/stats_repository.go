package persistence

import (
	"context"

	"github.com/pkg/errors"

	"github.com/mnicoli13/programmazione-web-2/modules/fleet/domain/tables"
	"github.com/mnicoli13/programmazione-web-2/pkg/composables"
)

const statsQuery = `
	SELECT
		(SELECT COUNT(*) FROM veicoli) AS total_veicoli,
		(SELECT COUNT(*) FROM targhe) AS total_targhe,
		(SELECT COUNT(*) FROM targhe_attive) AS targhe_attive,
		(SELECT COUNT(*) FROM targhe_restituite) AS targhe_restituite,
		(SELECT COUNT(*) FROM revisioni) AS revisioni_totali,
		(SELECT COUNT(*) FROM revisioni WHERE esito = 'positivo') AS revisioni_positive,
		(SELECT COUNT(*) FROM revisioni WHERE esito = 'negativo') AS revisioni_negative`

type StatsRepository struct{}

func NewStatsRepository() tables.StatsRepository {
	return &StatsRepository{}
}

func (g *StatsRepository) Stats(ctx context.Context) (*tables.Stats, error) {
	db, err := composables.UseDB(ctx)
	if err != nil {
		return nil, err
	}
	var s tables.Stats
	err = db.QueryRowContext(ctx, statsQuery).Scan(
		&s.TotalVeicoli,
		&s.TotalTarghe,
		&s.TargheAttive,
		&s.TargheRestituite,
		&s.RevisioniTotali,
		&s.RevisioniPositive,
		&s.RevisioniNegative,
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load dashboard stats")
	}
	return &s, nil
}
