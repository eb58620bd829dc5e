package templates

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"github.com/mnicoli13/programmazione-web-2/components/base"
)

// AuthPageProps configures the combined login and registration page.
type AuthPageProps struct {
	// Error, when set, is shown above the forms as a danger alert.
	Error string
	// Notice, when set, is shown as a success alert (post-registration).
	Notice string
	// Username pre-fills the login form.
	Username string
	// Next is the URL to land on after a successful login.
	Next string
}

// AuthPage renders the login and registration tabs.
func AuthPage(props AuthPageProps) templ.Component {
	content := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w,
			`<div class="row justify-content-center"><div class="col-md-6 col-lg-5">`+
				`<div class="card shadow-sm"><div class="card-body">`+
				`<div id="login-notification">`,
		); err != nil {
			return err
		}
		if err := base.Flash("danger", props.Error).Render(ctx, w); err != nil {
			return err
		}
		if err := base.Flash("success", props.Notice).Render(ctx, w); err != nil {
			return err
		}
		if _, err := io.WriteString(w,
			`</div>`+
				`<ul class="nav nav-tabs mb-3" role="tablist">`+
				`<li class="nav-item"><button class="nav-link active" id="login-tab" data-bs-toggle="tab" data-bs-target="#login-pane" type="button">Accedi</button></li>`+
				`<li class="nav-item"><button class="nav-link" id="register-tab" data-bs-toggle="tab" data-bs-target="#register-pane" type="button">Registrati</button></li>`+
				`</ul><div class="tab-content">`,
		); err != nil {
			return err
		}
		if err := renderLoginForm(w, props); err != nil {
			return err
		}
		if err := renderRegisterForm(w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</div></div></div></div></div>`)
		return err
	})
	return base.Layout(base.LayoutProps{Title: "Accedi - Gestione Veicoli", ActivePath: "/login"}, content)
}

func renderLoginForm(w io.Writer, props AuthPageProps) error {
	_, err := fmt.Fprintf(w,
		`<div class="tab-pane fade show active" id="login-pane">`+
			`<form id="login-form" method="post" action="/login">`+
			`<input type="hidden" name="next" value="%s">`+
			`<div class="mb-3"><label class="form-label" for="login-username">Nome utente o email</label>`+
			`<input type="text" class="form-control" id="login-username" name="username" value="%s" required></div>`+
			`<div class="mb-3"><label class="form-label" for="login-password">Password</label>`+
			`<div class="input-group"><input type="password" class="form-control" id="login-password" name="password" required>`+
			`<button class="btn btn-outline-secondary toggle-password" type="button"><i class="bi bi-eye"></i></button></div></div>`+
			`<div class="mb-3 form-check"><input type="checkbox" class="form-check-input" id="remember-me" name="remember">`+
			`<label class="form-check-label" for="remember-me">Ricordami</label></div>`+
			`<button type="submit" class="btn btn-primary w-100">Accedi</button>`+
			`</form></div>`,
		templ.EscapeString(props.Next),
		templ.EscapeString(props.Username),
	)
	return err
}

func renderRegisterForm(w io.Writer) error {
	_, err := io.WriteString(w,
		`<div class="tab-pane fade" id="register-pane">`+
			`<form id="register-form" method="post" action="/register">`+
			`<div class="mb-3"><label class="form-label" for="register-username">Nome utente</label>`+
			`<input type="text" class="form-control" id="register-username" name="username" required>`+
			`<div class="form-text" id="username-feedback"></div></div>`+
			`<div class="mb-3"><label class="form-label" for="register-email">Email</label>`+
			`<input type="email" class="form-control" id="register-email" name="email" required>`+
			`<div class="form-text" id="email-feedback"></div></div>`+
			`<div class="mb-3"><label class="form-label" for="register-password">Password</label>`+
			`<div class="input-group"><input type="password" class="form-control" id="register-password" name="password" required>`+
			`<button class="btn btn-outline-secondary toggle-password" type="button"><i class="bi bi-eye"></i></button></div>`+
			`<div class="progress mt-2" style="height: 6px;"><div class="progress-bar" id="password-strength-bar" style="width: 0%"></div></div>`+
			`<div class="form-text" id="password-feedback"></div></div>`+
			`<div class="mb-3"><label class="form-label" for="register-confirm-password">Conferma password</label>`+
			`<input type="password" class="form-control" id="register-confirm-password" name="confirm_password" required>`+
			`<div class="form-text" id="confirm-password-feedback"></div></div>`+
			`<div class="mb-3 form-check"><input type="checkbox" class="form-check-input" id="terms" name="terms">`+
			`<label class="form-check-label" for="terms">Accetto i termini e le condizioni</label></div>`+
			`<button type="submit" class="btn btn-primary w-100" id="register-button">Registrati</button>`+
			`</form></div>`,
	)
	return err
}
