package services

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/mnicoli13/programmazione-web-2/modules/fleet/domain/veicolo"
	"github.com/mnicoli13/programmazione-web-2/pkg/eventbus"
)

// ErrInvalidDate marks a date value that is not in ISO yyyy-mm-dd form.
var ErrInvalidDate = errors.New("invalid date")

func parseISODate(value string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

// VeicoloCreatedEvent is published after a vehicle is added.
type VeicoloCreatedEvent struct {
	Veicolo *veicolo.Veicolo
}

// VeicoloUpdatedEvent is published after a vehicle is changed;
// OldTelaio differs from the current one when the key was renamed.
type VeicoloUpdatedEvent struct {
	OldTelaio string
	Veicolo   *veicolo.Veicolo
}

// VeicoloDeletedEvent is published after a vehicle is removed.
type VeicoloDeletedEvent struct {
	Telaio string
}

// VeicoloUpdate carries the optional fields of a partial update; nil
// fields keep their stored value.
type VeicoloUpdate struct {
	Telaio   *string
	Marca    *string
	Modello  *string
	DataProd *string
}

type VeicoloService struct {
	repo      veicolo.Repository
	publisher eventbus.EventBus
}

func NewVeicoloService(repo veicolo.Repository, publisher eventbus.EventBus) *VeicoloService {
	return &VeicoloService{repo: repo, publisher: publisher}
}

func (s *VeicoloService) Get(ctx context.Context, telaio string) (*veicolo.Veicolo, error) {
	return s.repo.GetByTelaio(ctx, telaio)
}

// Create adds a vehicle after checking the telaio is free. The insert
// still maps a concurrent duplicate onto veicolo.ErrTelaioExists.
func (s *VeicoloService) Create(ctx context.Context, v *veicolo.Veicolo) error {
	exists, err := s.repo.Exists(ctx, v.Telaio)
	if err != nil {
		return err
	}
	if exists {
		return veicolo.ErrTelaioExists
	}
	if err := s.repo.Create(ctx, v); err != nil {
		return err
	}
	s.publisher.Publish(VeicoloCreatedEvent{Veicolo: v})
	return nil
}

// Update applies a partial update to the vehicle currently stored under
// telaio. Renaming the key is allowed when the new telaio is free.
func (s *VeicoloService) Update(ctx context.Context, telaio string, upd VeicoloUpdate) (*veicolo.Veicolo, error) {
	current, err := s.repo.GetByTelaio(ctx, telaio)
	if err != nil {
		return nil, err
	}
	if upd.Marca != nil {
		current.Marca = *upd.Marca
	}
	if upd.Modello != nil {
		current.Modello = *upd.Modello
	}
	if upd.DataProd != nil {
		dataProd, err := parseISODate(*upd.DataProd)
		if err != nil {
			return nil, err
		}
		current.DataProd = dataProd
	}
	if upd.Telaio != nil && *upd.Telaio != telaio {
		exists, err := s.repo.Exists(ctx, *upd.Telaio)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, veicolo.ErrTelaioExists
		}
		current.Telaio = *upd.Telaio
	}
	if err := s.repo.Update(ctx, telaio, current); err != nil {
		return nil, err
	}
	s.publisher.Publish(VeicoloUpdatedEvent{OldTelaio: telaio, Veicolo: current})
	return current, nil
}

func (s *VeicoloService) Delete(ctx context.Context, telaio string) error {
	if err := s.repo.Delete(ctx, telaio); err != nil {
		return err
	}
	s.publisher.Publish(VeicoloDeletedEvent{Telaio: telaio})
	return nil
}
