package controllers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/mnicoli13/programmazione-web-2/modules/core/domain/aggregates/user"
	"github.com/mnicoli13/programmazione-web-2/modules/core/presentation/controllers/dtos"
	"github.com/mnicoli13/programmazione-web-2/modules/core/services"
	"github.com/mnicoli13/programmazione-web-2/pkg/application"
	"github.com/mnicoli13/programmazione-web-2/pkg/composables"
	"github.com/mnicoli13/programmazione-web-2/pkg/configuration"
	"github.com/mnicoli13/programmazione-web-2/pkg/shared"
)

type AuthController struct {
	app         application.Application
	authService *services.AuthService
	basePath    string
}

func NewAuthController(app application.Application) application.Controller {
	return &AuthController{
		app:         app,
		authService: app.Service(services.AuthService{}).(*services.AuthService),
		basePath:    "/api/auth",
	}
}

func (c *AuthController) Key() string {
	return c.basePath
}

func (c *AuthController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.HandleFunc("/login", c.login).Methods(http.MethodPost)
	router.HandleFunc("/register", c.register).Methods(http.MethodPost)
	router.HandleFunc("/logout", c.logout).Methods(http.MethodPost)
	router.HandleFunc("/check-username", c.checkUsername).Methods(http.MethodPost)
	router.HandleFunc("/check-email", c.checkEmail).Methods(http.MethodPost)
	router.HandleFunc("/password-strength", c.passwordStrength).Methods(http.MethodPost)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func sessionCookie(token string, remember bool) *http.Cookie {
	conf := configuration.Use()
	cookie := &http.Cookie{
		Name:     conf.SidCookieKey,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   conf.GoAppEnvironment == "production",
	}
	if remember {
		cookie.MaxAge = int(conf.RememberDuration.Seconds())
		cookie.Expires = time.Now().Add(conf.RememberDuration)
	}
	return cookie
}

func (c *AuthController) login(w http.ResponseWriter, r *http.Request) {
	dto, err := composables.UseForm(&dtos.LoginDTO{}, r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"success": false,
			"message": "Nome utente e password sono obbligatori",
		})
		return
	}
	if msg, ok := dto.Ok(r.Context()); !ok {
		writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "message": msg})
		return
	}

	u, sess, err := c.authService.Login(r.Context(), dto.Username, dto.Password, dto.RememberMe())
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			writeJSON(w, http.StatusUnauthorized, map[string]any{
				"success": false,
				"message": "Nome utente o password non validi",
			})
			return
		}
		composables.UseLogger(r.Context()).WithError(err).Error("login failed")
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"success": false,
			"message": "Errore del server",
		})
		return
	}

	http.SetCookie(w, sessionCookie(sess.Token, dto.RememberMe()))
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Login effettuato con successo",
		"user": map[string]any{
			"id":       u.ID,
			"username": u.Username,
			"email":    u.Email,
		},
	})
}

func (c *AuthController) register(w http.ResponseWriter, r *http.Request) {
	dto, err := composables.UseForm(&dtos.RegisterDTO{}, r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"success": false,
			"message": "Errore nella registrazione",
		})
		return
	}
	if msg, ok := dto.Ok(r.Context()); !ok {
		writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "message": msg})
		return
	}

	if _, err := c.authService.Register(r.Context(), dto.Username, dto.Email, dto.Password); err != nil {
		switch {
		case errors.Is(err, user.ErrUsernameTaken):
			writeJSON(w, http.StatusBadRequest, map[string]any{
				"success": false,
				"message": "Nome utente già in uso",
			})
		case errors.Is(err, user.ErrEmailTaken):
			writeJSON(w, http.StatusBadRequest, map[string]any{
				"success": false,
				"message": "Email già registrata",
			})
		default:
			composables.UseLogger(r.Context()).WithError(err).Error("registration failed")
			writeJSON(w, http.StatusInternalServerError, map[string]any{
				"success": false,
				"message": "Errore nella registrazione",
			})
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Registrazione completata con successo",
	})
}

func (c *AuthController) logout(w http.ResponseWriter, r *http.Request) {
	conf := configuration.Use()
	if cookie, err := r.Cookie(conf.SidCookieKey); err == nil && cookie.Value != "" {
		if err := c.authService.Logout(r.Context(), cookie.Value); err != nil {
			composables.UseLogger(r.Context()).WithError(err).Error("logout failed")
		}
	}
	shared.ExpireCookie(w, conf.SidCookieKey)
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Logout effettuato con successo",
	})
}

func (c *AuthController) checkUsername(w http.ResponseWriter, r *http.Request) {
	username := strings.TrimSpace(r.PostFormValue("username"))
	if username == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":     "Nome utente mancante",
			"available": false,
		})
		return
	}
	available, err := c.authService.CheckUsername(r.Context(), username)
	if err != nil {
		composables.UseLogger(r.Context()).WithError(err).Error("username check failed")
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"error":     "db_error",
			"available": false,
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"available": available})
}

func (c *AuthController) checkEmail(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimSpace(r.PostFormValue("email"))
	if email == "" {
		writeJSON(w, http.StatusOK, map[string]any{
			"error":     "Email mancante",
			"available": false,
		})
		return
	}
	available, err := c.authService.CheckEmail(r.Context(), email)
	if err != nil {
		composables.UseLogger(r.Context()).WithError(err).Error("email check failed")
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"error":     "db_error",
			"available": false,
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"available": available})
}

func (c *AuthController) passwordStrength(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, user.EvaluateStrength(r.PostFormValue("password")))
}
