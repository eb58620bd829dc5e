package composables

import (
	"context"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/mnicoli13/programmazione-web-2/pkg/constants"
)

var ErrNoDB = errors.New("database not found in context")

func WithDB(ctx context.Context, db *sqlx.DB) context.Context {
	return context.WithValue(ctx, constants.DBKey, db)
}

// UseDB returns the database handle provided by the middleware stack.
func UseDB(ctx context.Context) (*sqlx.DB, error) {
	db, ok := ctx.Value(constants.DBKey).(*sqlx.DB)
	if !ok {
		return nil, ErrNoDB
	}
	return db, nil
}
