package dtos

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/mnicoli13/programmazione-web-2/modules/fleet/domain/veicolo"
	"github.com/mnicoli13/programmazione-web-2/modules/fleet/services"
	"github.com/mnicoli13/programmazione-web-2/pkg/constants"
)

// CreateVeicoloDTO carries the add-vehicle form; every field is
// mandatory.
type CreateVeicoloDTO struct {
	Telaio   string `form:"telaio" validate:"required"`
	Marca    string `form:"marca" validate:"required"`
	Modello  string `form:"modello" validate:"required"`
	DataProd string `form:"dataProd" validate:"required,datetime=2006-01-02"`
}

var veicoloFormNames = map[string]string{
	"Telaio":   "telaio",
	"Marca":    "marca",
	"Modello":  "modello",
	"DataProd": "dataProd",
}

// Ok validates the form and returns the message for the first failing
// field, in declaration order.
func (d *CreateVeicoloDTO) Ok(ctx context.Context) (string, bool) {
	if err := constants.Validate.StructCtx(ctx, d); err != nil {
		var fieldErrors validator.ValidationErrors
		if errors.As(err, &fieldErrors) && len(fieldErrors) > 0 {
			fe := fieldErrors[0]
			if fe.Tag() == "datetime" {
				return "Formato data non valido (YYYY-MM-DD)", false
			}
			return "Campo " + veicoloFormNames[fe.StructField()] + " obbligatorio", false
		}
		return "Dati non validi", false
	}
	return "", true
}

// ToEntity converts the validated form into the domain entity.
func (d *CreateVeicoloDTO) ToEntity() (*veicolo.Veicolo, error) {
	dataProd, err := time.Parse("2006-01-02", d.DataProd)
	if err != nil {
		return nil, services.ErrInvalidDate
	}
	return &veicolo.Veicolo{
		Telaio:   d.Telaio,
		Marca:    d.Marca,
		Modello:  d.Modello,
		DataProd: dataProd,
	}, nil
}

// UpdateVeicoloDTO carries a partial update; absent fields keep their
// stored value.
type UpdateVeicoloDTO struct {
	Telaio   *string `form:"telaio"`
	Marca    *string `form:"marca"`
	Modello  *string `form:"modello"`
	DataProd *string `form:"dataProd" validate:"omitempty,datetime=2006-01-02"`
}

// Ok validates the update form.
func (d *UpdateVeicoloDTO) Ok(ctx context.Context) (string, bool) {
	if d.DataProd != nil && *d.DataProd != "" {
		if err := constants.Validate.StructCtx(ctx, d); err != nil {
			return "Formato data non valido (YYYY-MM-DD)", false
		}
	}
	return "", true
}

// ToUpdate converts the form into the service-level change set.
func (d *UpdateVeicoloDTO) ToUpdate() services.VeicoloUpdate {
	return services.VeicoloUpdate{
		Telaio:   d.Telaio,
		Marca:    d.Marca,
		Modello:  d.Modello,
		DataProd: d.DataProd,
	}
}
