package services_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mnicoli13/programmazione-web-2/modules/fleet/domain/veicolo"
	"github.com/mnicoli13/programmazione-web-2/modules/fleet/services"
	"github.com/mnicoli13/programmazione-web-2/pkg/eventbus"
)

type memVeicoloRepo struct {
	rows map[string]*veicolo.Veicolo
}

func newMemVeicoloRepo() *memVeicoloRepo {
	return &memVeicoloRepo{rows: map[string]*veicolo.Veicolo{}}
}

func (f *memVeicoloRepo) GetByTelaio(_ context.Context, telaio string) (*veicolo.Veicolo, error) {
	v, ok := f.rows[telaio]
	if !ok {
		return nil, veicolo.ErrNotFound
	}
	copied := *v
	return &copied, nil
}

func (f *memVeicoloRepo) Exists(_ context.Context, telaio string) (bool, error) {
	_, ok := f.rows[telaio]
	return ok, nil
}

func (f *memVeicoloRepo) Create(_ context.Context, v *veicolo.Veicolo) error {
	if _, ok := f.rows[v.Telaio]; ok {
		return veicolo.ErrTelaioExists
	}
	copied := *v
	f.rows[v.Telaio] = &copied
	return nil
}

func (f *memVeicoloRepo) Update(_ context.Context, telaio string, v *veicolo.Veicolo) error {
	if _, ok := f.rows[telaio]; !ok {
		return veicolo.ErrNotFound
	}
	delete(f.rows, telaio)
	copied := *v
	f.rows[v.Telaio] = &copied
	return nil
}

func (f *memVeicoloRepo) Delete(_ context.Context, telaio string) error {
	if _, ok := f.rows[telaio]; !ok {
		return veicolo.ErrNotFound
	}
	delete(f.rows, telaio)
	return nil
}

func setup(t *testing.T) (*services.VeicoloService, *memVeicoloRepo, eventbus.EventBus) {
	t.Helper()
	t.Setenv("LOG_PATH", filepath.Join(t.TempDir(), "app.log"))
	repo := newMemVeicoloRepo()
	bus := eventbus.NewEventPublisher(logrus.New())
	return services.NewVeicoloService(repo, bus), repo, bus
}

func panda() *veicolo.Veicolo {
	dataProd, _ := time.Parse("2006-01-02", "2020-05-01")
	return &veicolo.Veicolo{Telaio: "ZFA1", Marca: "Fiat", Modello: "Panda", DataProd: dataProd}
}

func TestVeicoloService_Create(t *testing.T) {
	svc, repo, bus := setup(t)
	ctx := context.Background()

	var created []services.VeicoloCreatedEvent
	bus.Subscribe(func(e services.VeicoloCreatedEvent) {
		created = append(created, e)
	})

	require.NoError(t, svc.Create(ctx, panda()))
	assert.Contains(t, repo.rows, "ZFA1")
	require.Len(t, created, 1)
	assert.Equal(t, "ZFA1", created[0].Veicolo.Telaio)

	assert.ErrorIs(t, svc.Create(ctx, panda()), veicolo.ErrTelaioExists)
	assert.Len(t, created, 1)
}

func TestVeicoloService_UpdatePartial(t *testing.T) {
	svc, repo, _ := setup(t)
	ctx := context.Background()
	require.NoError(t, svc.Create(ctx, panda()))

	marca := "FIAT"
	updated, err := svc.Update(ctx, "ZFA1", services.VeicoloUpdate{Marca: &marca})
	require.NoError(t, err)
	assert.Equal(t, "FIAT", updated.Marca)
	// Untouched fields keep their values.
	assert.Equal(t, "Panda", updated.Modello)
	assert.Equal(t, "FIAT", repo.rows["ZFA1"].Marca)
}

func TestVeicoloService_UpdateRenameTelaio(t *testing.T) {
	svc, repo, _ := setup(t)
	ctx := context.Background()
	require.NoError(t, svc.Create(ctx, panda()))

	newTelaio := "ZFA2"
	updated, err := svc.Update(ctx, "ZFA1", services.VeicoloUpdate{Telaio: &newTelaio})
	require.NoError(t, err)
	assert.Equal(t, "ZFA2", updated.Telaio)
	assert.NotContains(t, repo.rows, "ZFA1")
	assert.Contains(t, repo.rows, "ZFA2")
}

func TestVeicoloService_UpdateRenameConflict(t *testing.T) {
	svc, _, _ := setup(t)
	ctx := context.Background()
	require.NoError(t, svc.Create(ctx, panda()))
	other := panda()
	other.Telaio = "ZFA2"
	require.NoError(t, svc.Create(ctx, other))

	taken := "ZFA2"
	_, err := svc.Update(ctx, "ZFA1", services.VeicoloUpdate{Telaio: &taken})
	assert.ErrorIs(t, err, veicolo.ErrTelaioExists)
}

func TestVeicoloService_UpdateInvalidDate(t *testing.T) {
	svc, _, _ := setup(t)
	ctx := context.Background()
	require.NoError(t, svc.Create(ctx, panda()))

	bad := "01/05/2020"
	_, err := svc.Update(ctx, "ZFA1", services.VeicoloUpdate{DataProd: &bad})
	assert.ErrorIs(t, err, services.ErrInvalidDate)
}

func TestVeicoloService_Delete(t *testing.T) {
	svc, repo, bus := setup(t)
	ctx := context.Background()
	require.NoError(t, svc.Create(ctx, panda()))

	var deleted []services.VeicoloDeletedEvent
	bus.Subscribe(func(e services.VeicoloDeletedEvent) {
		deleted = append(deleted, e)
	})

	require.NoError(t, svc.Delete(ctx, "ZFA1"))
	assert.Empty(t, repo.rows)
	require.Len(t, deleted, 1)
	assert.Equal(t, "ZFA1", deleted[0].Telaio)

	assert.ErrorIs(t, svc.Delete(ctx, "ZFA1"), veicolo.ErrNotFound)
}
