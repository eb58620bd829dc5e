package dtos

import (
	"context"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/mnicoli13/programmazione-web-2/pkg/constants"
)

var (
	usernameRegex = regexp.MustCompile(`^[A-Za-z0-9_]+$`)
	emailRegex    = regexp.MustCompile(`^[^@]+@[^@]+\.[^@]+$`)
)

// LoginDTO carries the login form. The identifier may be a username or
// an email address.
type LoginDTO struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
	Remember string `form:"remember"`
}

// Ok validates the login form. Both fields share a single error message.
func (d *LoginDTO) Ok(ctx context.Context) (string, bool) {
	d.Username = strings.TrimSpace(d.Username)
	if err := constants.Validate.StructCtx(ctx, d); err != nil {
		return "Nome utente e password sono obbligatori", false
	}
	return "", true
}

// RememberMe interprets the checkbox value posted by the login form.
func (d *LoginDTO) RememberMe() bool {
	return truthy(d.Remember)
}

// RegisterDTO carries the registration form.
type RegisterDTO struct {
	Username        string `form:"username" validate:"required"`
	Email           string `form:"email" validate:"required"`
	Password        string `form:"password" validate:"required"`
	ConfirmPassword string `form:"confirm_password" validate:"required"`
	Terms           string `form:"terms" validate:"required"`
}

var registerFormNames = map[string]string{
	"Username":        "username",
	"Email":           "email",
	"Password":        "password",
	"ConfirmPassword": "confirm_password",
	"Terms":           "terms",
}

// Ok validates the registration form and returns the first failing
// rule's message. Checks run in a fixed order: presence, username
// length, username charset, email format, password length, password
// confirmation, terms acceptance.
func (d *RegisterDTO) Ok(ctx context.Context) (string, bool) {
	d.Username = strings.TrimSpace(d.Username)
	d.Email = strings.TrimSpace(d.Email)

	if err := constants.Validate.StructCtx(ctx, d); err != nil {
		var fieldErrors validator.ValidationErrors
		if errors.As(err, &fieldErrors) {
			missing := make([]string, 0, len(fieldErrors))
			for _, fe := range fieldErrors {
				missing = append(missing, registerFormNames[fe.StructField()])
			}
			return "I seguenti campi sono obbligatori: " + strings.Join(missing, ", "), false
		}
		return "Errore nella registrazione", false
	}
	if len(d.Username) < 4 {
		return "Il nome utente deve contenere almeno 4 caratteri", false
	}
	if !usernameRegex.MatchString(d.Username) {
		return "Il nome utente può contenere solo lettere, numeri e underscore", false
	}
	if !emailRegex.MatchString(d.Email) {
		return "Indirizzo email non valido", false
	}
	if len(d.Password) < 8 {
		return "La password deve contenere almeno 8 caratteri", false
	}
	if d.Password != d.ConfirmPassword {
		return "Le password non corrispondono", false
	}
	if !truthy(d.Terms) {
		return "Devi accettare i termini", false
	}
	return "", true
}

func truthy(v string) bool {
	switch v {
	case "on", "true", "1":
		return true
	}
	return false
}
