package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/GauriLakshmi/Farm-Connect/internal/models"
	"github.com/GauriLakshmi/Farm-Connect/internal/store"
	"github.com/gorilla/csrf"
	"github.com/gorilla/sessions"
)

type HomeHandler struct {
	Store        *store.Store
	SessionStore *sessions.CookieStore
	Templates    *TemplateCache
	Gate         *Gate
}

// Index shows the landing page to visitors and sends logged-in users to
// their role's home view.
func (h *HomeHandler) Index(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	user := h.Gate.CurrentUser(r)
	if user == nil {
		h.render(w, r, "index.html", nil, nil)
		return
	}

	switch user.Role {
	case models.RoleAdmin:
		http.Redirect(w, r, "/admin/dashboard", http.StatusSeeOther)
	case models.RoleFarmer:
		http.Redirect(w, r, "/farmer/dashboard", http.StatusSeeOther)
	default:
		http.Redirect(w, r, "/products", http.StatusSeeOther)
	}
}

// Products lists everything currently in stock, newest first.
func (h *HomeHandler) Products(w http.ResponseWriter, r *http.Request) {
	products, err := h.Store.AvailableProducts()
	if err != nil {
		http.Error(w, "Error fetching products", http.StatusInternalServerError)
		return
	}
	h.render(w, r, "products.html", h.Gate.CurrentUser(r), map[string]interface{}{
		"Products": products,
	})
}

// ProductDetail shows one catalog entry.
func (h *HomeHandler) ProductDetail(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		http.Error(w, "Invalid product ID", http.StatusBadRequest)
		return
	}
	product, err := h.Store.GetProductByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		http.Error(w, "Error fetching product", http.StatusInternalServerError)
		return
	}
	h.render(w, r, "product_detail.html", h.Gate.CurrentUser(r), map[string]interface{}{
		"Product": product,
	})
}

func (h *HomeHandler) render(w http.ResponseWriter, r *http.Request, name string, user *models.User, extra map[string]interface{}) {
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
