package store

import (
	"fmt"
	"log/slog"

	"github.com/GauriLakshmi/Farm-Connect/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// SeedDemoData creates one account per role, three products and one
// already-seen order so a fresh install has something to show. Skipped
// entirely when any user exists.
func (s *Store) SeedDemoData() error {
	count, err := s.CountUsers()
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	seedUsers := []struct {
		username string
		password string
		role     models.Role
		name     string
		contact  string
	}{
		{"admin", "123", models.RoleAdmin, "System Admin", "0000000000"},
		{"farmer1", "farmerpass", models.RoleFarmer, "Alice Farmer", "9876543210"},
		{"cust1", "custpass", models.RoleCustomer, "Bob Customer", "9998887776"},
	}

	ids := make(map[string]int)
	for _, u := range seedUsers {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("seeding %s: %w", u.username, err)
		}
		created, err := s.CreateUser(u.username, string(hash), u.role, u.name, u.contact)
		if err != nil {
			return fmt.Errorf("seeding %s: %w", u.username, err)
		}
		ids[u.username] = created.ID
	}

	seedProducts := []struct {
		name        string
		description string
		quantity    int
		price       float64
	}{
		{"Tomatoes", "Fresh red tomatoes", 100, 30.0},
		{"Spinach", "Leafy spinach", 50, 20.0},
		{"Cabbage", "Crisp green cabbage", 40, 25.0},
	}

	var tomatoesID int
	for _, p := range seedProducts {
		created, err := s.CreateProduct(ids["farmer1"], p.name, p.description, p.quantity, p.price, "")
		if err != nil {
			return fmt.Errorf("seeding %s: %w", p.name, err)
		}
		if p.name == "Tomatoes" {
			tomatoesID = created.ID
		}
	}

	// One historical order, already reviewed by the farmer. Inserted
	// directly so the seed stock figures stay as advertised.
	_, err = s.DB.Exec(
		`INSERT INTO orders (customer_id, product_id, quantity, total_price, is_new) VALUES (?, ?, ?, ?, 0)`,
		ids["cust1"], tomatoesID, 5, 150.0,
	)
	if err != nil {
		return fmt.Errorf("seeding demo order: %w", err)
	}

	slog.Info("Demo data created", "users", len(seedUsers), "products", len(seedProducts))
	return nil
}
