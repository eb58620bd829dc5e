package services

import (
	"context"
	"net/url"

	"github.com/mnicoli13/programmazione-web-2/modules/fleet/domain/tables"
)

type TableService struct {
	repo  tables.Repository
	stats tables.StatsRepository
}

func NewTableService(repo tables.Repository, stats tables.StatsRepository) *TableService {
	return &TableService{repo: repo, stats: stats}
}

// Fetch runs a table query. The repository validates the table name and
// ignores filter and sort fields outside the table definition.
func (s *TableService) Fetch(ctx context.Context, table string, filters url.Values, sort, order string) (*tables.Result, error) {
	return s.repo.Fetch(ctx, tables.Query{
		Table:   table,
		Filters: filters,
		Sort:    sort,
		Order:   order,
	})
}

// Stats returns the dashboard counters.
func (s *TableService) Stats(ctx context.Context) (*tables.Stats, error) {
	return s.stats.Stats(ctx)
}
