package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/GauriLakshmi/Farm-Connect/internal/models"
	"github.com/GauriLakshmi/Farm-Connect/internal/store"
	"github.com/gorilla/csrf"
	"github.com/gorilla/sessions"
)

type AdminHandler struct {
	Store        *store.Store
	SessionStore *sessions.CookieStore
	Templates    *TemplateCache
}

// Dashboard shows record totals and the most recent orders.
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request, user *models.User) {
	stats, err := h.Store.GetDashboardStats(10)
	if err != nil {
		http.Error(w, "Error fetching stats", http.StatusInternalServerError)
		return
	}
	h.render(w, r, "admin_dashboard.html", user, map[string]interface{}{
		"Stats": stats,
	})
}

// Users lists every account except the admin viewing the table.
func (h *AdminHandler) Users(w http.ResponseWriter, r *http.Request, user *models.User) {
	users, err := h.Store.ListUsersExcept(user.ID)
	if err != nil {
		http.Error(w, "Error fetching users", http.StatusInternalServerError)
		return
	}
	h.render(w, r, "admin_users.html", user, map[string]interface{}{
		"Users": users,
	})
}

func (h *AdminHandler) EditUserForm(w http.ResponseWriter, r *http.Request, user *models.User) {
	session, _ := h.SessionStore.Get(r, sessionName)

	id, err := strconv.Atoi(r.URL.Query().Get("id"))
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}
	target, err := h.Store.GetUserByID(id)
	if err != nil {
		http.Error(w, "Error fetching user", http.StatusInternalServerError)
		return
	}
	if target == nil {
		http.NotFound(w, r)
		return
	}
	if target.Username == store.PrimaryAdminUsername {
		flashAndRedirect(w, r, session, "danger", "Cannot modify the primary system administrator account.", "/admin/users")
		return
	}
	h.render(w, r, "admin_edit_user.html", user, map[string]interface{}{
		"User": target,
	})
}

func (h *AdminHandler) UpdateUser(w http.ResponseWriter, r *http.Request, user *models.User) {
	session, _ := h.SessionStore.Get(r, sessionName)

	id := atoiDefault(r.FormValue("id"), 0)
	name := r.FormValue("name")
	username := r.FormValue("username")
	contact := r.FormValue("contact_number")
	role := models.Role(r.FormValue("role"))
	password := r.FormValue("password")

	err := h.Store.UpdateUser(id, name, username, contact, role, password)
	switch {
	case errors.Is(err, store.ErrNotFound):
		http.NotFound(w, r)
		return
	case errors.Is(err, store.ErrProtectedAccount):
		flashAndRedirect(w, r, session, "danger", "Cannot modify the primary system administrator account.", "/admin/users")
		return
	case errors.Is(err, store.ErrValidation):
		flashAndRedirect(w, r, session, "danger", "All required fields must be filled", fmt.Sprintf("/admin/users/edit?id=%d", id))
		return
	case errors.Is(err, store.ErrUsernameTaken):
		flashAndRedirect(w, r, session, "warning", "Username already taken", fmt.Sprintf("/admin/users/edit?id=%d", id))
		return
	case err != nil:
		slog.Error("Failed to update user", "user_id", id, "error", err)
		flashAndRedirect(w, r, session, "danger", "Error updating user.", "/admin/users")
		return
	}

	flashAndRedirect(w, r, session, "success", fmt.Sprintf("User %s updated successfully.", username), "/admin/users")
}

// Products shows the whole catalog, paginated, newest first.
func (h *AdminHandler) Products(w http.ResponseWriter, r *http.Request, user *models.User) {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit < 1 {
		limit = 10 // Default limit
	}
	offset := (page - 1) * limit

	products, err := h.Store.AllProducts(limit, offset)
	if err != nil {
		http.Error(w, "Error fetching products", http.StatusInternalServerError)
		return
	}
	total, err := h.Store.CountProducts()
	if err != nil {
		http.Error(w, "Error counting products", http.StatusInternalServerError)
		return
	}
	totalPages := (total + limit - 1) / limit
	if totalPages == 0 {
		totalPages = 1
	}

	h.render(w, r, "admin_products.html", user, map[string]interface{}{
		"Products":    products,
		"CurrentPage": page,
		"TotalPages":  totalPages,
		"Limit":       limit,
	})
}

func (h *AdminHandler) render(w http.ResponseWriter, r *http.Request, name string, user *models.User, extra map[string]interface{}) {
	tmpl := h.Templates.Get(name)
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	session, _ := h.SessionStore.Get(r, sessionName)
	data := map[string]interface{}{
		"CsrfField":   csrf.TemplateField(r),
		"Flashes":     GetFlash(session),
		"CurrentUser": user,
	}
	for k, v := range extra {
		data[k] = v
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}
