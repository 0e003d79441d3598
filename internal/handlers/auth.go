package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/GauriLakshmi/Farm-Connect/internal/models"
	"github.com/GauriLakshmi/Farm-Connect/internal/store"
	"github.com/gorilla/csrf"
	"github.com/gorilla/sessions"
)

type AuthHandler struct {
	Store        *store.Store
	SessionStore *sessions.CookieStore
	Templates    *TemplateCache
	Gate         *Gate
}

func (h *AuthHandler) RegisterForm(w http.ResponseWriter, r *http.Request) {
	if h.Gate.CurrentUser(r) != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	h.render(w, r, "register.html", nil)
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, sessionName)

	username := strings.TrimSpace(r.FormValue("username"))
	password := r.FormValue("password")
	role := models.Role(r.FormValue("role"))
	name := strings.TrimSpace(r.FormValue("name"))
	contact := strings.TrimSpace(r.FormValue("contact_number"))

	_, err := h.Store.Register(username, password, role, name, contact)
	switch {
	case errors.Is(err, store.ErrValidation):
		flashAndRedirect(w, r, session, "danger", "All required fields must be filled", "/register")
		return
	case errors.Is(err, store.ErrUsernameTaken):
		flashAndRedirect(w, r, session, "warning", "Username already taken", "/register")
		return
	case err != nil:
		slog.Error("Registration failed", "error", err)
		flashAndRedirect(w, r, session, "danger", "Registration failed. Please try again.", "/register")
		return
	}

	flashAndRedirect(w, r, session, "success", "Registration successful. Please log in.", "/login")
}

func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	if h.Gate.CurrentUser(r) != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	h.render(w, r, "login.html", map[string]interface{}{
		"Next": r.URL.Query().Get("next"),
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, sessionName)

	username := strings.TrimSpace(r.FormValue("username"))
	password := r.FormValue("password")

	user, err := h.Store.Authenticate(username, password)
	if err != nil {
		if !errors.Is(err, store.ErrBadCredentials) {
			slog.Error("Login failed", "error", err)
		}
		flashAndRedirect(w, r, session, "danger", "Invalid username or password.", "/login")
		return
	}

	session.Values["user_id"] = user.ID
	session.AddFlash(FlashMessage{Type: "success", Message: "Logged in successfully."})
	if err := session.Save(r, w); err != nil {
		slog.Error("Failed to save session", "error", err)
		http.Error(w, "Failed to save session", http.StatusInternalServerError)
		return
	}

	next := r.FormValue("next")
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") {
		next = "/"
	}
	http.Redirect(w, r, next, http.StatusSeeOther)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, sessionName)
	delete(session.Values, "user_id")
	session.Options.MaxAge = -1 // Expire immediately
	session.Save(r, w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *AuthHandler) render(w http.ResponseWriter, r *http.Request, name string, extra map[string]interface{}) {
	tmpl := h.Templates.Get(name)
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	session, _ := h.SessionStore.Get(r, sessionName)
	data := map[string]interface{}{
		"CsrfField": csrf.TemplateField(r),
		"Flashes":   GetFlash(session),
	}
	for k, v := range extra {
		data[k] = v
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}
