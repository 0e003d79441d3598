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

type OrderHandler struct {
	Store        *store.Store
	SessionStore *sessions.CookieStore
	Templates    *TemplateCache
}

// OrderForm shows the quantity form for one product.
func (h *OrderHandler) OrderForm(w http.ResponseWriter, r *http.Request, user *models.User) {
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
	h.render(w, r, "order_form.html", user, map[string]interface{}{
		"Product": product,
	})
}

// PlaceOrder validates the quantity and hands the rest to the store's
// transactional placement.
func (h *OrderHandler) PlaceOrder(w http.ResponseWriter, r *http.Request, user *models.User) {
	session, _ := h.SessionStore.Get(r, sessionName)

	productID, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		http.Error(w, "Invalid product ID", http.StatusBadRequest)
		return
	}
	backToForm := fmt.Sprintf("/order/%d", productID)

	quantity := atoiDefault(r.FormValue("quantity"), 0)

	_, err = h.Store.PlaceOrder(user.ID, productID, quantity)
	switch {
	case errors.Is(err, store.ErrValidation):
		flashAndRedirect(w, r, session, "danger", "Invalid quantity", backToForm)
		return
	case errors.Is(err, store.ErrInsufficientStock):
		flashAndRedirect(w, r, session, "danger", "Not enough stock available", backToForm)
		return
	case errors.Is(err, store.ErrNotFound):
		http.NotFound(w, r)
		return
	case err != nil:
		slog.Error("Failed to place order", "product_id", productID, "error", err)
		flashAndRedirect(w, r, session, "danger", "Failed to place order. Please try again.", backToForm)
		return
	}

	flashAndRedirect(w, r, session, "success", "Order placed successfully", "/my_orders")
}

// MyOrders lists the user's orders: customers see orders they placed,
// farmers see orders against their products.
func (h *OrderHandler) MyOrders(w http.ResponseWriter, r *http.Request, user *models.User) {
	var (
		orders []models.Order
		err    error
	)
	if user.Role == models.RoleFarmer {
		orders, err = h.Store.OrdersForFarmer(user.ID)
	} else {
		orders, err = h.Store.OrdersByCustomer(user.ID)
	}
	if err != nil {
		http.Error(w, "Error fetching orders", http.StatusInternalServerError)
		return
	}
	h.render(w, r, "my_orders.html", user, map[string]interface{}{
		"Orders": orders,
	})
}

func (h *OrderHandler) render(w http.ResponseWriter, r *http.Request, name string, user *models.User, extra map[string]interface{}) {
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
