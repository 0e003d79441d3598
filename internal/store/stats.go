package store

import (
	"database/sql"

	"github.com/GauriLakshmi/Farm-Connect/internal/models"
)

type DashboardStats struct {
	TotalUsers    int
	TotalProducts int
	TotalOrders   int
	RecentOrders  []models.Order
}

// GetDashboardStats gathers the admin overview: record totals plus the
// most recent orders.
func (s *Store) GetDashboardStats(recentLimit int) (*DashboardStats, error) {
	stats := &DashboardStats{}

	err := s.DB.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&stats.TotalUsers)
	if err != nil && err != sql.ErrNoRows {
		return nil, err
	}

	err = s.DB.QueryRow(`SELECT COUNT(*) FROM products`).Scan(&stats.TotalProducts)
	if err != nil && err != sql.ErrNoRows {
		return nil, err
	}

	err = s.DB.QueryRow(`SELECT COUNT(*) FROM orders`).Scan(&stats.TotalOrders)
	if err != nil && err != sql.ErrNoRows {
		return nil, err
	}

	stats.RecentOrders, err = s.queryOrders(
		`SELECT o.id, o.customer_id, o.product_id, o.quantity, o.total_price, o.order_date, o.is_new,
		        COALESCE(p.name, '(deleted product)'), u.name
		 FROM orders o
		 LEFT JOIN products p ON o.product_id = p.id
		 JOIN users u ON o.customer_id = u.id
		 ORDER BY o.order_date DESC, o.id DESC
		 LIMIT ?`,
		recentLimit,
	)
	if err != nil {
		return nil, err
	}

	return stats, nil
}

func (s *Store) CountProducts() (int, error) {
	var count int
	err := s.DB.QueryRow(`SELECT COUNT(*) FROM products`).Scan(&count)
	return count, err
}
