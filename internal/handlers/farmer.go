package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/GauriLakshmi/Farm-Connect/internal/models"
	"github.com/GauriLakshmi/Farm-Connect/internal/store"
	"github.com/google/uuid"
	"github.com/gorilla/csrf"
	"github.com/gorilla/sessions"
	"github.com/nfnt/resize"
)

type FarmerHandler struct {
	Store        *store.Store
	SessionStore *sessions.CookieStore
	Templates    *TemplateCache
	UploadDir    string // e.g. static/uploads
}

// Dashboard shows the farmer's products and the orders placed against
// them. Viewing it clears the new-order badge.
func (h *FarmerHandler) Dashboard(w http.ResponseWriter, r *http.Request, user *models.User) {
	products, err := h.Store.ProductsByFarmer(user.ID)
	if err != nil {
		http.Error(w, "Error fetching products", http.StatusInternalServerError)
		return
	}
	orders, err := h.Store.OrdersForFarmer(user.ID)
	if err != nil {
		http.Error(w, "Error fetching orders", http.StatusInternalServerError)
		return
	}

	// The dashboard is the farmer reviewing their orders, so everything
	// listed stops counting as new.
	if err := h.Store.MarkOrdersSeen(user.ID); err != nil {
		slog.Error("Failed to mark orders seen", "farmer_id", user.ID, "error", err)
	}

	h.render(w, r, "farmer_dashboard.html", user, map[string]interface{}{
		"Products": products,
		"Orders":   orders,
	})
}

// NewOrdersCount serves the polling badge as JSON.
func (h *FarmerHandler) NewOrdersCount(w http.ResponseWriter, r *http.Request, user *models.User) {
	count, err := h.Store.CountNewOrders(user.ID)
	if err != nil {
		http.Error(w, "Error counting orders", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]int{"new_orders_count": count})
}

func (h *FarmerHandler) AddProductForm(w http.ResponseWriter, r *http.Request, user *models.User) {
	h.render(w, r, "product_form.html", user, map[string]interface{}{
		"Action": "Add",
	})
}

func (h *FarmerHandler) CreateProduct(w http.ResponseWriter, r *http.Request, user *models.User) {
	session, _ := h.SessionStore.Get(r, sessionName)

	if err := r.ParseMultipartForm(10 << 20); err != nil { // 10MB
		flashAndRedirect(w, r, session, "danger", "File too large. Max 10MB.", "/farmer/products/new")
		return
	}

	name := strings.TrimSpace(r.FormValue("name"))
	description := strings.TrimSpace(r.FormValue("description"))
	quantity := atoiDefault(r.FormValue("quantity"), 0)
	price := parseFloatDefault(r.FormValue("price"), 0)
	imageURL := strings.TrimSpace(r.FormValue("image_url"))

	// An uploaded photo beats both the URL field and the derived image.
	if uploaded, err := h.saveUpload(r); err != nil {
		flashAndRedirect(w, r, session, "danger", err.Error(), "/farmer/products/new")
		return
	} else if uploaded != "" {
		imageURL = uploaded
	}

	_, err := h.Store.CreateProduct(user.ID, name, description, quantity, price, imageURL)
	if err != nil {
		if errors.Is(err, store.ErrValidation) {
			flashAndRedirect(w, r, session, "danger", "Product name required", "/farmer/products/new")
			return
		}
		slog.Error("Failed to create product", "error", err)
		flashAndRedirect(w, r, session, "danger", "Error saving product.", "/farmer/products/new")
		return
	}

	flashAndRedirect(w, r, session, "success", "Product added", "/farmer/dashboard")
}

func (h *FarmerHandler) EditProductForm(w http.ResponseWriter, r *http.Request, user *models.User) {
	id, err := strconv.Atoi(r.URL.Query().Get("id"))
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}
	product, err := h.Store.GetProductByID(id)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	if product.FarmerID != user.ID {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}
	h.render(w, r, "product_form.html", user, map[string]interface{}{
		"Action":  "Edit",
		"Product": product,
	})
}

func (h *FarmerHandler) UpdateProduct(w http.ResponseWriter, r *http.Request, user *models.User) {
	session, _ := h.SessionStore.Get(r, sessionName)

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		flashAndRedirect(w, r, session, "danger", "File too large. Max 10MB.", "/farmer/dashboard")
		return
	}

	id := atoiDefault(r.FormValue("id"), 0)
	name := strings.TrimSpace(r.FormValue("name"))
	description := strings.TrimSpace(r.FormValue("description"))
	quantity := atoiDefault(r.FormValue("quantity"), 0)
	price := parseFloatDefault(r.FormValue("price"), 0)
	imageURL := strings.TrimSpace(r.FormValue("image_url"))
	rederive := r.FormValue("regenerate_image") != ""

	if uploaded, err := h.saveUpload(r); err != nil {
		flashAndRedirect(w, r, session, "danger", err.Error(), fmt.Sprintf("/farmer/products/edit?id=%d", id))
		return
	} else if uploaded != "" {
		imageURL = uploaded
	}

	err := h.Store.UpdateProduct(id, user.ID, name, description, quantity, price, imageURL, rederive)
	switch {
	case errors.Is(err, store.ErrNotFound):
		http.NotFound(w, r)
		return
	case errors.Is(err, store.ErrForbidden):
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	case errors.Is(err, store.ErrValidation):
		flashAndRedirect(w, r, session, "danger", "Product name required", fmt.Sprintf("/farmer/products/edit?id=%d", id))
		return
	case err != nil:
		slog.Error("Failed to update product", "product_id", id, "error", err)
		flashAndRedirect(w, r, session, "danger", "Error updating product.", "/farmer/dashboard")
		return
	}

	flashAndRedirect(w, r, session, "success", "Product updated", "/farmer/dashboard")
}

func (h *FarmerHandler) DeleteProduct(w http.ResponseWriter, r *http.Request, user *models.User) {
	session, _ := h.SessionStore.Get(r, sessionName)

	id, err := strconv.Atoi(r.FormValue("id"))
	if err != nil {
		flashAndRedirect(w, r, session, "danger", "Invalid ID.", "/farmer/dashboard")
		return
	}

	err = h.Store.DeleteProduct(id, user.ID)
	switch {
	case errors.Is(err, store.ErrNotFound):
		http.NotFound(w, r)
		return
	case errors.Is(err, store.ErrForbidden):
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	case err != nil:
		slog.Error("Failed to delete product", "product_id", id, "error", err)
		flashAndRedirect(w, r, session, "danger", "Error deleting product.", "/farmer/dashboard")
		return
	}

	flashAndRedirect(w, r, session, "info", "Product deleted", "/farmer/dashboard")
}

// saveUpload stores an optional "image" form file, downscaled to 800px
// width, and returns its public path. Returns "" when no file was sent.
func (h *FarmerHandler) saveUpload(r *http.Request) (string, error) {
	file, header, err := r.FormFile("image")
	if err != nil {
		return "", nil // no upload
	}
	defer file.Close()

	var img image.Image
	switch ext := strings.ToLower(filepath.Ext(header.Filename)); ext {
	case ".png":
		img, err = png.Decode(file)
	case ".jpg", ".jpeg":
		img, err = jpeg.Decode(file)
	default:
		return "", errors.New("unsupported image format, only PNG, JPG, JPEG are allowed")
	}
	if err != nil {
		return "", errors.New("failed to decode image")
	}

	scaled := resize.Resize(800, 0, img, resize.Lanczos3)
	filename := fmt.Sprintf("%s.jpg", uuid.New().String())
	uploadPath := filepath.Join(h.UploadDir, filename)

	out, err := os.Create(uploadPath)
	if err != nil {
		return "", errors.New("error saving image file")
	}
	defer out.Close()

	if err := jpeg.Encode(out, scaled, &jpeg.Options{Quality: 80}); err != nil {
		return "", errors.New("error encoding image")
	}

	return "/static/uploads/" + filename, nil
}

func (h *FarmerHandler) render(w http.ResponseWriter, r *http.Request, name string, user *models.User, extra map[string]interface{}) {
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

func atoiDefault(s string, def int) int {
	if v, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
		return v
	}
	return def
}

func parseFloatDefault(s string, def float64) float64 {
	if v, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
		return v
	}
	return def
}
