package base

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// NavLink is one entry of the top navigation bar.
type NavLink struct {
	Href  string
	Label string
	Icon  string
}

// DefaultNav lists the pages of the fleet in display order.
func DefaultNav() []NavLink {
	return []NavLink{
		{Href: "/dashboard", Label: "Dashboard", Icon: "bi-speedometer2"},
		{Href: "/veicoli", Label: "Veicoli", Icon: "bi-car-front"},
		{Href: "/targhe", Label: "Targhe", Icon: "bi-card-text"},
		{Href: "/targhe-attive", Label: "Targhe attive", Icon: "bi-check-circle"},
		{Href: "/targhe-restituite", Label: "Targhe restituite", Icon: "bi-arrow-return-left"},
		{Href: "/revisioni", Label: "Revisioni", Icon: "bi-clipboard-check"},
	}
}

// LayoutProps configures the HTML shell around a page.
type LayoutProps struct {
	Title         string
	ActivePath    string
	Authenticated bool
	Username      string
	Nav           []NavLink
}

// Layout renders the document shell: head, navbar and the given content
// inside the main container.
func Layout(props LayoutProps, content templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w,
			`<!DOCTYPE html><html lang="it"><head>`+
				`<meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1">`+
				`<title>%s</title>`+
				`<link href="https://cdn.jsdelivr.net/npm/bootstrap@5.3.3/dist/css/bootstrap.min.css" rel="stylesheet">`+
				`<link href="https://cdn.jsdelivr.net/npm/bootstrap-icons@1.11.3/font/bootstrap-icons.min.css" rel="stylesheet">`+
				`<link href="/static/css/style.css" rel="stylesheet">`+
				`</head><body>`,
			templ.EscapeString(props.Title),
		); err != nil {
			return err
		}
		if err := renderNav(w, props); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `<main class="container py-4">`); err != nil {
			return err
		}
		if content != nil {
			if err := content.Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w,
			`</main>`+
				`<script src="https://cdn.jsdelivr.net/npm/bootstrap@5.3.3/dist/js/bootstrap.bundle.min.js"></script>`+
				`<script src="/static/js/app.js"></script>`+
				`</body></html>`,
		)
		return err
	})
}

func renderNav(w io.Writer, props LayoutProps) error {
	if _, err := io.WriteString(w,
		`<nav class="navbar navbar-expand-lg navbar-dark bg-dark"><div class="container">`+
			`<a class="navbar-brand" href="/dashboard"><i class="bi bi-truck"></i> Gestione Veicoli</a>`+
			`<button class="navbar-toggler" type="button" data-bs-toggle="collapse" data-bs-target="#main-nav">`+
			`<span class="navbar-toggler-icon"></span></button>`+
			`<div class="collapse navbar-collapse" id="main-nav"><ul class="navbar-nav me-auto">`,
	); err != nil {
		return err
	}
	nav := props.Nav
	if nav == nil {
		nav = DefaultNav()
	}
	for _, link := range nav {
		active := ""
		if link.Href == props.ActivePath {
			active = " active"
		}
		if _, err := fmt.Fprintf(w,
			`<li class="nav-item"><a class="nav-link%s" href="%s"><i class="bi %s"></i> %s</a></li>`,
			active,
			templ.EscapeString(link.Href),
			templ.EscapeString(link.Icon),
			templ.EscapeString(link.Label),
		); err != nil {
			return err
		}
	}
	if _, err := io.WriteString(w, `</ul><ul class="navbar-nav">`); err != nil {
		return err
	}
	if props.Authenticated {
		if _, err := fmt.Fprintf(w,
			`<li class="nav-item dropdown" id="user-menu">`+
				`<a class="nav-link dropdown-toggle" href="#" data-bs-toggle="dropdown"><i class="bi bi-person-circle"></i> %s</a>`+
				`<ul class="dropdown-menu dropdown-menu-end">`+
				`<li><form method="post" action="/logout"><button type="submit" class="dropdown-item" id="logout-button">`+
				`<i class="bi bi-box-arrow-right"></i> Esci</button></form></li>`+
				`</ul></li>`,
			templ.EscapeString(props.Username),
		); err != nil {
			return err
		}
	} else {
		if _, err := io.WriteString(w,
			`<li class="nav-item"><a class="nav-link" href="/login" id="login-button">`+
				`<i class="bi bi-box-arrow-in-right"></i> Accedi</a></li>`,
		); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, `</ul></div></div></nav>`)
	return err
}

// Flash renders a dismissible alert, nothing when the message is empty.
func Flash(kind, message string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if message == "" {
			return nil
		}
		_, err := fmt.Fprintf(w,
			`<div class="alert alert-%s alert-dismissible fade show" role="alert">%s`+
				`<button type="button" class="btn-close" data-bs-dismiss="alert" aria-label="Close"></button></div>`,
			templ.EscapeString(kind),
			templ.EscapeString(message),
		)
		return err
	})
}
