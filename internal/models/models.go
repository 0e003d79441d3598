package models

import (
	"time"
)

// Role is the closed set of account roles. Every user has exactly one.
type Role string

const (
	RoleFarmer   Role = "farmer"
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

func (r Role) Valid() bool {
	return r == RoleFarmer || r == RoleCustomer || r == RoleAdmin
}

// SelfService reports whether a visitor may pick this role at registration.
// Admin accounts are only created by seeding or the CLI.
func (r Role) SelfService() bool {
	return r == RoleFarmer || r == RoleCustomer
}

type User struct {
	ID            int    `json:"id"`
	Username      string `json:"username"`
	PasswordHash  string `json:"-"`
	Role          Role   `json:"role"`
	Name          string `json:"name"`
	ContactNumber string `json:"contact_number"`
}

type Product struct {
	ID          int       `json:"id"`
	FarmerID    int       `json:"farmer_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Quantity    int       `json:"quantity"`
	Price       float64   `json:"price"`
	CreatedAt   time.Time `json:"created_at"`
	ImageURL    string    `json:"image_url"`
	FarmerName  string    `json:"farmer_name"` // For display convenience (joined)
}

type Order struct {
	ID           int       `json:"id"`
	CustomerID   int       `json:"customer_id"`
	ProductID    int       `json:"product_id"`
	Quantity     int       `json:"quantity"`
	TotalPrice   float64   `json:"total_price"`
	OrderDate    time.Time `json:"order_date"`
	IsNew        bool      `json:"is_new"`
	ProductName  string    `json:"product_name"`  // For display convenience (joined)
	CustomerName string    `json:"customer_name"` // For display convenience (joined)
}
