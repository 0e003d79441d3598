package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/GauriLakshmi/Farm-Connect/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOrdersCount(t *testing.T) {
	g, s := newTestGate(t)
	farmer := createUser(t, s, "farmer", models.RoleFarmer)
	customer := createUser(t, s, "customer", models.RoleCustomer)

	p, err := s.CreateProduct(farmer.ID, "Tomatoes", "", 100, 30, "")
	require.NoError(t, err)
	_, err = s.PlaceOrder(customer.ID, p.ID, 2)
	require.NoError(t, err)
	_, err = s.PlaceOrder(customer.ID, p.ID, 3)
	require.NoError(t, err)

	h := &FarmerHandler{Store: s, SessionStore: g.SessionStore, Templates: NewTemplateCache()}

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/farmer/new_orders_count", nil)
	h.NewOrdersCount(w, r, farmer)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var body map[string]int
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, 2, body["new_orders_count"])

	// Dashboard view clears the badge.
	require.NoError(t, s.MarkOrdersSeen(farmer.ID))

	w = httptest.NewRecorder()
	h.NewOrdersCount(w, r, farmer)
	body = nil
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, 0, body["new_orders_count"])
}
