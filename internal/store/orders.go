package store

import (
	"database/sql"
	"fmt"

	"github.com/GauriLakshmi/Farm-Connect/internal/models"
)

// PlaceOrder creates an order and decrements the product's stock as one
// transaction. The decrement is conditional on sufficient stock, so two
// concurrent orders can never oversell the same product.
func (s *Store) PlaceOrder(customerID, productID, quantity int) (*models.Order, error) {
	if quantity <= 0 {
		return nil, ErrValidation
	}

	tx, err := s.DB.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var price float64
	err = tx.QueryRow(`SELECT price FROM products WHERE id = ?`, productID).Scan(&price)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}

	res, err := tx.Exec(
		`UPDATE products SET quantity = quantity - ? WHERE id = ? AND quantity >= ?`,
		quantity, productID, quantity,
	)
	if err != nil {
		return nil, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, ErrInsufficientStock
	}

	total := float64(quantity) * price
	ins, err := tx.Exec(
		`INSERT INTO orders (customer_id, product_id, quantity, total_price, is_new) VALUES (?, ?, ?, ?, 1)`,
		customerID, productID, quantity, total,
	)
	if err != nil {
		return nil, err
	}
	id, err := ins.LastInsertId()
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing order: %w", err)
	}

	return s.GetOrderByID(int(id))
}

func (s *Store) GetOrderByID(id int) (*models.Order, error) {
	row := s.DB.QueryRow(
		`SELECT o.id, o.customer_id, o.product_id, o.quantity, o.total_price, o.order_date, o.is_new,
		        COALESCE(p.name, '(deleted product)'), u.name
		 FROM orders o
		 LEFT JOIN products p ON o.product_id = p.id
		 JOIN users u ON o.customer_id = u.id
		 WHERE o.id = ?`,
		id,
	)

	var o models.Order
	err := row.Scan(&o.ID, &o.CustomerID, &o.ProductID, &o.Quantity, &o.TotalPrice, &o.OrderDate, &o.IsNew, &o.ProductName, &o.CustomerName)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

// OrdersByCustomer lists one customer's orders, newest first. Orders for
// deleted products are kept with a placeholder name.
func (s *Store) OrdersByCustomer(customerID int) ([]models.Order, error) {
	return s.queryOrders(
		`SELECT o.id, o.customer_id, o.product_id, o.quantity, o.total_price, o.order_date, o.is_new,
		        COALESCE(p.name, '(deleted product)'), u.name
		 FROM orders o
		 LEFT JOIN products p ON o.product_id = p.id
		 JOIN users u ON o.customer_id = u.id
		 WHERE o.customer_id = ?
		 ORDER BY o.order_date DESC, o.id DESC`,
		customerID,
	)
}

// OrdersForFarmer lists orders placed against the farmer's products,
// newest first.
func (s *Store) OrdersForFarmer(farmerID int) ([]models.Order, error) {
	return s.queryOrders(
		`SELECT o.id, o.customer_id, o.product_id, o.quantity, o.total_price, o.order_date, o.is_new,
		        p.name, u.name
		 FROM orders o
		 JOIN products p ON o.product_id = p.id
		 JOIN users u ON o.customer_id = u.id
		 WHERE p.farmer_id = ?
		 ORDER BY o.order_date DESC, o.id DESC`,
		farmerID,
	)
}

// MarkOrdersSeen clears the new flag on every unseen order against the
// farmer's products. Safe to call repeatedly.
func (s *Store) MarkOrdersSeen(farmerID int) error {
	_, err := s.DB.Exec(
		`UPDATE orders SET is_new = 0
		 WHERE is_new = 1
		   AND product_id IN (SELECT id FROM products WHERE farmer_id = ?)`,
		farmerID,
	)
	return err
}

// CountNewOrders returns the farmer's unseen order count for the polling
// indicator.
func (s *Store) CountNewOrders(farmerID int) (int, error) {
	var count int
	err := s.DB.QueryRow(
		`SELECT COUNT(*) FROM orders o
		 JOIN products p ON o.product_id = p.id
		 WHERE p.farmer_id = ? AND o.is_new = 1`,
		farmerID,
	).Scan(&count)
	return count, err
}

func (s *Store) queryOrders(query string, args ...interface{}) ([]models.Order, error) {
	rows, err := s.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		var o models.Order
		if err := rows.Scan(&o.ID, &o.CustomerID, &o.ProductID, &o.Quantity, &o.TotalPrice, &o.OrderDate, &o.IsNew, &o.ProductName, &o.CustomerName); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}
