package veicolo

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

var (
	ErrNotFound     = errors.New("veicolo not found")
	ErrTelaioExists = errors.New("telaio already exists")
)

// Veicolo is a vehicle identified by its chassis number.
type Veicolo struct {
	Telaio   string
	Marca    string
	Modello  string
	DataProd time.Time
}

// Repository is the persistence port for vehicles. Update is keyed by
// the telaio the row currently has, which allows changing the key
// itself.
type Repository interface {
	GetByTelaio(ctx context.Context, telaio string) (*Veicolo, error)
	Exists(ctx context.Context, telaio string) (bool, error)
	Create(ctx context.Context, v *Veicolo) error
	Update(ctx context.Context, telaio string, v *Veicolo) error
	Delete(ctx context.Context, telaio string) error
}
