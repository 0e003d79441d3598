package store

import (
	"sync"
	"testing"

	"github.com/GauriLakshmi/Farm-Connect/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlaceOrder(t *testing.T) {
	s := newTestStore(t)
	farmer := newTestUser(t, s, "farmer", models.RoleFarmer)
	customer := newTestUser(t, s, "customer", models.RoleCustomer)

	p, err := s.CreateProduct(farmer.ID, "Tomatoes", "", 100, 30, "")
	require.NoError(t, err)

	order, err := s.PlaceOrder(customer.ID, p.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, order.Quantity)
	assert.Equal(t, 150.0, order.TotalPrice)
	assert.True(t, order.IsNew)
	assert.Equal(t, "Tomatoes", order.ProductName)

	got, err := s.GetProductByID(p.ID)
	require.NoError(t, err)
	assert.Equal(t, 95, got.Quantity, "stock decremented by the ordered amount")
}

func TestPlaceOrderValidation(t *testing.T) {
	s := newTestStore(t)
	farmer := newTestUser(t, s, "farmer", models.RoleFarmer)
	customer := newTestUser(t, s, "customer", models.RoleCustomer)

	p, err := s.CreateProduct(farmer.ID, "Spinach", "", 50, 20, "")
	require.NoError(t, err)

	_, err = s.PlaceOrder(customer.ID, p.ID, 0)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = s.PlaceOrder(customer.ID, p.ID, -3)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = s.PlaceOrder(customer.ID, 999, 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPlaceOrderInsufficientStock(t *testing.T) {
	s := newTestStore(t)
	farmer := newTestUser(t, s, "farmer", models.RoleFarmer)
	customer := newTestUser(t, s, "customer", models.RoleCustomer)

	p, err := s.CreateProduct(farmer.ID, "Cabbage", "", 40, 25, "")
	require.NoError(t, err)

	_, err = s.PlaceOrder(customer.ID, p.ID, 41)
	assert.ErrorIs(t, err, ErrInsufficientStock)

	got, err := s.GetProductByID(p.ID)
	require.NoError(t, err)
	assert.Equal(t, 40, got.Quantity, "failed order must not touch stock")

	orders, err := s.OrdersByCustomer(customer.ID)
	require.NoError(t, err)
	assert.Empty(t, orders, "failed order must not be recorded")
}

// Two concurrent orders whose combined quantity exceeds stock: exactly one
// may succeed.
func TestPlaceOrderConcurrent(t *testing.T) {
	s := newTestStore(t)
	farmer := newTestUser(t, s, "farmer", models.RoleFarmer)
	customer := newTestUser(t, s, "customer", models.RoleCustomer)

	p, err := s.CreateProduct(farmer.ID, "Beets", "", 10, 5, "")
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = s.PlaceOrder(customer.ID, p.ID, 7)
		}(i)
	}
	wg.Wait()

	var succeeded, insufficient int
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case assert.ErrorIs(t, err, ErrInsufficientStock):
			insufficient++
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, insufficient)

	got, err := s.GetProductByID(p.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.Quantity, "quantity never goes negative")
}

func TestOrderListings(t *testing.T) {
	s := newTestStore(t)
	farmer := newTestUser(t, s, "farmer", models.RoleFarmer)
	customer := newTestUser(t, s, "customer", models.RoleCustomer)
	otherCustomer := newTestUser(t, s, "other", models.RoleCustomer)

	p, err := s.CreateProduct(farmer.ID, "Tomatoes", "", 100, 30, "")
	require.NoError(t, err)

	first, err := s.PlaceOrder(customer.ID, p.ID, 2)
	require.NoError(t, err)
	second, err := s.PlaceOrder(customer.ID, p.ID, 3)
	require.NoError(t, err)
	_, err = s.PlaceOrder(otherCustomer.ID, p.ID, 1)
	require.NoError(t, err)

	mine, err := s.OrdersByCustomer(customer.ID)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, second.ID, mine[0].ID, "newest first")
	assert.Equal(t, first.ID, mine[1].ID)

	received, err := s.OrdersForFarmer(farmer.ID)
	require.NoError(t, err)
	assert.Len(t, received, 3)
	assert.Equal(t, customer.Name, received[1].CustomerName)
}

func TestOrdersSurviveProductDeletion(t *testing.T) {
	s := newTestStore(t)
	farmer := newTestUser(t, s, "farmer", models.RoleFarmer)
	customer := newTestUser(t, s, "customer", models.RoleCustomer)

	p, err := s.CreateProduct(farmer.ID, "Spinach", "", 50, 20, "")
	require.NoError(t, err)
	order, err := s.PlaceOrder(customer.ID, p.ID, 2)
	require.NoError(t, err)

	require.NoError(t, s.DeleteProduct(p.ID, farmer.ID))

	mine, err := s.OrdersByCustomer(customer.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, order.ID, mine[0].ID)
	assert.Equal(t, "(deleted product)", mine[0].ProductName)
	assert.Equal(t, 40.0, mine[0].TotalPrice, "total fixed at order time")
}

func TestMarkOrdersSeen(t *testing.T) {
	s := newTestStore(t)
	farmer := newTestUser(t, s, "farmer", models.RoleFarmer)
	otherFarmer := newTestUser(t, s, "other", models.RoleFarmer)
	customer := newTestUser(t, s, "customer", models.RoleCustomer)

	p, err := s.CreateProduct(farmer.ID, "Tomatoes", "", 100, 30, "")
	require.NoError(t, err)
	otherP, err := s.CreateProduct(otherFarmer.ID, "Cabbage", "", 40, 25, "")
	require.NoError(t, err)

	_, err = s.PlaceOrder(customer.ID, p.ID, 1)
	require.NoError(t, err)
	_, err = s.PlaceOrder(customer.ID, p.ID, 2)
	require.NoError(t, err)
	_, err = s.PlaceOrder(customer.ID, otherP.ID, 1)
	require.NoError(t, err)

	count, err := s.CountNewOrders(farmer.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	require.NoError(t, s.MarkOrdersSeen(farmer.ID))
	count, err = s.CountNewOrders(farmer.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	// Second call is a no-op.
	require.NoError(t, s.MarkOrdersSeen(farmer.ID))
	count, err = s.CountNewOrders(farmer.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	// The other farmer's badge is untouched.
	count, err = s.CountNewOrders(otherFarmer.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
