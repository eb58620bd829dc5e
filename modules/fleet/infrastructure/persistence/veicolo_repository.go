package persistence

import (
	"context"
	"database/sql"

	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/mnicoli13/programmazione-web-2/modules/fleet/domain/veicolo"
	"github.com/mnicoli13/programmazione-web-2/pkg/composables"
)

const (
	selectVeicoloQuery = `
		SELECT telaio, marca, modello, data_prod
		FROM veicoli
		WHERE telaio = $1`

	veicoloExistsQuery = `SELECT EXISTS (SELECT 1 FROM veicoli WHERE telaio = $1)`

	insertVeicoloQuery = `
		INSERT INTO veicoli (telaio, marca, modello, data_prod)
		VALUES ($1, $2, $3, $4)`

	updateVeicoloQuery = `
		UPDATE veicoli
		SET telaio = $1, marca = $2, modello = $3, data_prod = $4
		WHERE telaio = $5`

	deleteVeicoloQuery = `DELETE FROM veicoli WHERE telaio = $1`
)

type VeicoloRepository struct{}

func NewVeicoloRepository() veicolo.Repository {
	return &VeicoloRepository{}
}

func (g *VeicoloRepository) GetByTelaio(ctx context.Context, telaio string) (*veicolo.Veicolo, error) {
	db, err := composables.UseDB(ctx)
	if err != nil {
		return nil, err
	}
	var v veicolo.Veicolo
	err = db.QueryRowContext(ctx, selectVeicoloQuery, telaio).Scan(
		&v.Telaio, &v.Marca, &v.Modello, &v.DataProd,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, veicolo.ErrNotFound
		}
		return nil, errors.Wrap(err, "failed to get veicolo")
	}
	return &v, nil
}

func (g *VeicoloRepository) Exists(ctx context.Context, telaio string) (bool, error) {
	db, err := composables.UseDB(ctx)
	if err != nil {
		return false, err
	}
	var exists bool
	if err := db.GetContext(ctx, &exists, veicoloExistsQuery, telaio); err != nil {
		return false, errors.Wrap(err, "failed to check telaio")
	}
	return exists, nil
}

func (g *VeicoloRepository) Create(ctx context.Context, v *veicolo.Veicolo) error {
	db, err := composables.UseDB(ctx)
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, insertVeicoloQuery, v.Telaio, v.Marca, v.Modello, v.DataProd)
	if err != nil {
		return mapVeicoloConstraintError(err)
	}
	return nil
}

func (g *VeicoloRepository) Update(ctx context.Context, telaio string, v *veicolo.Veicolo) error {
	db, err := composables.UseDB(ctx)
	if err != nil {
		return err
	}
	res, err := db.ExecContext(ctx, updateVeicoloQuery, v.Telaio, v.Marca, v.Modello, v.DataProd, telaio)
	if err != nil {
		return mapVeicoloConstraintError(err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "failed to update veicolo")
	}
	if affected == 0 {
		return veicolo.ErrNotFound
	}
	return nil
}

func (g *VeicoloRepository) Delete(ctx context.Context, telaio string) error {
	db, err := composables.UseDB(ctx)
	if err != nil {
		return err
	}
	res, err := db.ExecContext(ctx, deleteVeicoloQuery, telaio)
	if err != nil {
		return errors.Wrap(err, "failed to delete veicolo")
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "failed to delete veicolo")
	}
	if affected == 0 {
		return veicolo.ErrNotFound
	}
	return nil
}

func mapVeicoloConstraintError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return veicolo.ErrTelaioExists
	}
	return errors.Wrap(err, "failed to write veicolo")
}
