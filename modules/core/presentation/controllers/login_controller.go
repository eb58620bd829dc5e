package controllers

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/mnicoli13/programmazione-web-2/modules/core/domain/aggregates/user"
	"github.com/mnicoli13/programmazione-web-2/modules/core/presentation/controllers/dtos"
	"github.com/mnicoli13/programmazione-web-2/modules/core/presentation/templates"
	"github.com/mnicoli13/programmazione-web-2/modules/core/services"
	"github.com/mnicoli13/programmazione-web-2/pkg/application"
	"github.com/mnicoli13/programmazione-web-2/pkg/composables"
	"github.com/mnicoli13/programmazione-web-2/pkg/configuration"
	"github.com/mnicoli13/programmazione-web-2/pkg/shared"
)

// LoginController serves the login page and the classic form flow; the
// JSON flow lives in AuthController.
type LoginController struct {
	app         application.Application
	authService *services.AuthService
}

func NewLoginController(app application.Application) application.Controller {
	return &LoginController{
		app:         app,
		authService: app.Service(services.AuthService{}).(*services.AuthService),
	}
}

func (c *LoginController) Key() string {
	return "/login"
}

func (c *LoginController) Register(r *mux.Router) {
	r.HandleFunc("/login", c.page).Methods(http.MethodGet)
	r.HandleFunc("/login", c.login).Methods(http.MethodPost)
	r.HandleFunc("/register", c.register).Methods(http.MethodPost)
	r.HandleFunc("/logout", c.logout).Methods(http.MethodPost)
}

func (c *LoginController) page(w http.ResponseWriter, r *http.Request) {
	props := templates.AuthPageProps{
		Next:     r.URL.Query().Get("next"),
		Username: r.URL.Query().Get("username"),
	}
	if notice, err := composables.UseFlash(w, r, "auth-notice"); err == nil && len(notice) > 0 {
		props.Notice = string(notice)
	}
	c.render(w, r, props)
}

func (c *LoginController) login(w http.ResponseWriter, r *http.Request) {
	dto, err := composables.UseForm(&dtos.LoginDTO{}, r)
	if err != nil {
		c.render(w, r, templates.AuthPageProps{Error: "Nome utente e password sono obbligatori"})
		return
	}
	nextURL := sanitizeNext(r.PostFormValue("next"))
	if msg, ok := dto.Ok(r.Context()); !ok {
		c.render(w, r, templates.AuthPageProps{Error: msg, Username: dto.Username, Next: nextURL})
		return
	}

	_, sess, err := c.authService.Login(r.Context(), dto.Username, dto.Password, dto.RememberMe())
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			c.render(w, r, templates.AuthPageProps{
				Error:    "Nome utente o password non validi",
				Username: dto.Username,
				Next:     nextURL,
			})
			return
		}
		composables.UseLogger(r.Context()).WithError(err).Error("login failed")
		c.render(w, r, templates.AuthPageProps{Error: "Errore del server", Username: dto.Username, Next: nextURL})
		return
	}

	http.SetCookie(w, sessionCookie(sess.Token, dto.RememberMe()))
	shared.Redirect(w, r, nextURL)
}

func (c *LoginController) register(w http.ResponseWriter, r *http.Request) {
	dto, err := composables.UseForm(&dtos.RegisterDTO{}, r)
	if err != nil {
		c.render(w, r, templates.AuthPageProps{Error: "Errore nella registrazione"})
		return
	}
	if msg, ok := dto.Ok(r.Context()); !ok {
		c.render(w, r, templates.AuthPageProps{Error: msg})
		return
	}

	if _, err := c.authService.Register(r.Context(), dto.Username, dto.Email, dto.Password); err != nil {
		switch {
		case errors.Is(err, user.ErrUsernameTaken):
			c.render(w, r, templates.AuthPageProps{Error: "Nome utente già in uso"})
		case errors.Is(err, user.ErrEmailTaken):
			c.render(w, r, templates.AuthPageProps{Error: "Email già registrata"})
		default:
			composables.UseLogger(r.Context()).WithError(err).Error("registration failed")
			c.render(w, r, templates.AuthPageProps{Error: "Errore nella registrazione"})
		}
		return
	}

	shared.SetFlash(w, "auth-notice", []byte("Registrazione completata con successo! Ora puoi accedere con le tue credenziali."))
	shared.Redirect(w, r, "/login?username="+dto.Username)
}

func (c *LoginController) logout(w http.ResponseWriter, r *http.Request) {
	conf := configuration.Use()
	if cookie, err := r.Cookie(conf.SidCookieKey); err == nil && cookie.Value != "" {
		if err := c.authService.Logout(r.Context(), cookie.Value); err != nil {
			composables.UseLogger(r.Context()).WithError(err).Error("logout failed")
		}
	}
	shared.ExpireCookie(w, conf.SidCookieKey)
	shared.Redirect(w, r, "/login")
}

func (c *LoginController) render(w http.ResponseWriter, r *http.Request, props templates.AuthPageProps) {
	if err := templates.AuthPage(props).Render(r.Context(), w); err != nil {
		composables.UseLogger(r.Context()).WithError(err).Error("failed to render login page")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

// sanitizeNext keeps post-login redirects on this site.
func sanitizeNext(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") {
		return "/dashboard"
	}
	return next
}
