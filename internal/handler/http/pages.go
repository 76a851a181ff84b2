package http

import (
	"html/template"
	"net/http"
	"strings"

	"github.com/michaelhessen/chronos/internal/logger"
	"github.com/michaelhessen/chronos/internal/utils"
)

var pageTemplates = template.Must(template.New("layout").Parse(`{{define "layout"}}<!DOCTYPE html>
<html lang="en">
<head><meta charset="utf-8"><title>{{.Title}} · chronos</title></head>
<body>
{{template "content" .}}
</body>
</html>{{end}}`))

var (
	loginPageTemplate = template.Must(template.Must(pageTemplates.Clone()).Parse(`{{define "content"}}
<h1>Welcome back</h1>
<form id="login" data-endpoint="/api/auth/callback/credentials" data-callback="{{.CallbackURL}}">
  <label>Email <input type="email" name="email" required></label>
  <label>Password <input type="password" name="password" required></label>
  <button type="submit">Sign in</button>
</form>
<p>No account yet? <a href="/auth/signup">Create one</a></p>
{{end}}`))

	signupPageTemplate = template.Must(template.Must(pageTemplates.Clone()).Parse(`{{define "content"}}
<h1>Create an account</h1>
<form id="signup" data-endpoint="/api/signup">
  <label>First name <input type="text" name="firstName"></label>
  <label>Last name <input type="text" name="lastName"></label>
  <label>Email <input type="email" name="email" required></label>
  <label>Password <input type="password" name="password" minlength="8" required></label>
  <button type="submit">Sign up</button>
</form>
<p>Already registered? <a href="/auth/login">Sign in</a></p>
{{end}}`))

	homePageTemplate = template.Must(template.Must(pageTemplates.Clone()).Parse(`{{define "content"}}
<h1>Hello, {{.DisplayName}}</h1>
<form id="signout" data-endpoint="/api/auth/signout"><button type="submit">Sign out</button></form>
{{end}}`))
)

type pageData struct {
	Title       string
	DisplayName string
	CallbackURL string
}

func (h *Handler) loginPage(w http.ResponseWriter, r *http.Request) {
	callback := r.URL.Query().Get(callbackURLParam)
	if !isLocalPath(callback) {
		callback = h.session.HomePath
	}
	h.renderAuthPage(w, r, loginPageTemplate, pageData{Title: "Sign in", CallbackURL: callback})
}

func (h *Handler) signupPage(w http.ResponseWriter, r *http.Request) {
	h.renderAuthPage(w, r, signupPageTemplate, pageData{Title: "Sign up"})
}

// renderAuthPage renders a login or signup page, or sends an already
// authenticated caller home.
func (h *Handler) renderAuthPage(w http.ResponseWriter, r *http.Request, tmpl *template.Template, data pageData) {
	_, authenticated := utils.GetSessionFromContext(r.Context())

	decision := h.services.Gate.AuthPage(authenticated)
	if !decision.Allow {
		http.Redirect(w, r, decision.RedirectTo, http.StatusFound)
		return
	}

	h.render(w, r, tmpl, data)
}

func (h *Handler) homePage(w http.ResponseWriter, r *http.Request) {
	session, ok := utils.GetSessionFromContext(r.Context())
	if !ok {
		// the gate normally keeps anonymous callers out
		http.Redirect(w, r, h.session.LoginPath, http.StatusFound)
		return
	}

	h.render(w, r, homePageTemplate, pageData{Title: "Calendar", DisplayName: session.DisplayName})
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, tmpl *template.Template, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.ExecuteTemplate(w, "layout", data); err != nil {
		logger.FromRequest(r).Err(err).Msg("rendering page failed")
	}
}

// isLocalPath accepts only same-origin absolute paths as callback targets.
func isLocalPath(p string) bool {
	return strings.HasPrefix(p, "/") && !strings.HasPrefix(p, "//") && !strings.Contains(p, `\`)
}
