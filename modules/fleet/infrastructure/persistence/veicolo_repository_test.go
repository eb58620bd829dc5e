package persistence_test

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mnicoli13/programmazione-web-2/modules/fleet/domain/veicolo"
	"github.com/mnicoli13/programmazione-web-2/modules/fleet/infrastructure/persistence"
)

func TestVeicoloRepository_GetByTelaio(t *testing.T) {
	ctx, mock := mockContext(t)
	repo := persistence.NewVeicoloRepository()

	mock.ExpectQuery(`FROM veicoli\s+WHERE telaio = \$1`).
		WithArgs("ZFA1").
		WillReturnRows(sqlmock.NewRows([]string{"telaio", "marca", "modello", "data_prod"}).
			AddRow("ZFA1", "Fiat", "Panda", date("2020-05-01")))

	v, err := repo.GetByTelaio(ctx, "ZFA1")
	require.NoError(t, err)
	assert.Equal(t, "Fiat", v.Marca)
	assert.Equal(t, date("2020-05-01"), v.DataProd)
}

func TestVeicoloRepository_GetByTelaio_NotFound(t *testing.T) {
	ctx, mock := mockContext(t)
	repo := persistence.NewVeicoloRepository()

	mock.ExpectQuery(`FROM veicoli`).
		WithArgs("MISSING").
		WillReturnRows(sqlmock.NewRows([]string{"telaio", "marca", "modello", "data_prod"}))

	_, err := repo.GetByTelaio(ctx, "MISSING")
	assert.ErrorIs(t, err, veicolo.ErrNotFound)
}

func TestVeicoloRepository_Create(t *testing.T) {
	ctx, mock := mockContext(t)
	repo := persistence.NewVeicoloRepository()

	v := &veicolo.Veicolo{Telaio: "ZFA1", Marca: "Fiat", Modello: "Panda", DataProd: date("2020-05-01")}
	mock.ExpectExec(`INSERT INTO veicoli`).
		WithArgs(v.Telaio, v.Marca, v.Modello, v.DataProd).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.Create(ctx, v))
}

func TestVeicoloRepository_Create_Duplicate(t *testing.T) {
	ctx, mock := mockContext(t)
	repo := persistence.NewVeicoloRepository()

	mock.ExpectExec(`INSERT INTO veicoli`).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "veicoli_pkey"})

	err := repo.Create(ctx, &veicolo.Veicolo{Telaio: "ZFA1"})
	assert.ErrorIs(t, err, veicolo.ErrTelaioExists)
}

func TestVeicoloRepository_UpdateKeyedByOriginalTelaio(t *testing.T) {
	ctx, mock := mockContext(t)
	repo := persistence.NewVeicoloRepository()

	v := &veicolo.Veicolo{Telaio: "NEW1", Marca: "Fiat", Modello: "Panda", DataProd: date("2020-05-01")}
	mock.ExpectExec(`UPDATE veicoli\s+SET telaio = \$1`).
		WithArgs(v.Telaio, v.Marca, v.Modello, v.DataProd, "OLD1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.Update(ctx, "OLD1", v))
}

func TestVeicoloRepository_Update_NotFound(t *testing.T) {
	ctx, mock := mockContext(t)
	repo := persistence.NewVeicoloRepository()

	mock.ExpectExec(`UPDATE veicoli`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(ctx, "MISSING", &veicolo.Veicolo{Telaio: "MISSING"})
	assert.ErrorIs(t, err, veicolo.ErrNotFound)
}

func TestVeicoloRepository_Delete(t *testing.T) {
	ctx, mock := mockContext(t)
	repo := persistence.NewVeicoloRepository()

	mock.ExpectExec(`DELETE FROM veicoli WHERE telaio = \$1`).
		WithArgs("ZFA1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	assert.NoError(t, repo.Delete(ctx, "ZFA1"))

	mock.ExpectExec(`DELETE FROM veicoli WHERE telaio = \$1`).
		WithArgs("ZFA1").
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.Delete(ctx, "ZFA1"), veicolo.ErrNotFound)
}
