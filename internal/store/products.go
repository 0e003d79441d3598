package store

import (
	"database/sql"
	"strings"

	"github.com/GauriLakshmi/Farm-Connect/internal/models"
)

// CreateProduct adds a catalog entry owned by the given farmer. When no
// image URL is supplied one is derived from the product name.
func (s *Store) CreateProduct(farmerID int, name, description string, quantity int, price float64, imageURL string) (*models.Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrValidation
	}
	if quantity < 0 || price < 0 {
		return nil, ErrValidation
	}
	if imageURL == "" {
		imageURL = models.ImageURLForName(name)
	}

	res, err := s.DB.Exec(
		`INSERT INTO products (farmer_id, name, description, quantity, price, image_url)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		farmerID, name, description, quantity, price, imageURL,
	)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return s.GetProductByID(int(id))
}

func (s *Store) GetProductByID(id int) (*models.Product, error) {
	row := s.DB.QueryRow(
		`SELECT p.id, p.farmer_id, p.name, p.description, p.quantity, p.price, p.created_at, p.image_url, u.name
		 FROM products p
		 JOIN users u ON p.farmer_id = u.id
		 WHERE p.id = ?`,
		id,
	)

	var p models.Product
	err := row.Scan(&p.ID, &p.FarmerID, &p.Name, &p.Description, &p.Quantity, &p.Price, &p.CreatedAt, &p.ImageURL, &p.FarmerName)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// UpdateProduct rewrites a product's fields. Only the owning farmer may
// edit. An explicit imageURL wins; otherwise rederive recomputes the image
// from the (possibly new) name; otherwise the current image is kept.
func (s *Store) UpdateProduct(id, requesterID int, name, description string, quantity int, price float64, imageURL string, rederive bool) error {
	p, err := s.GetProductByID(id)
	if err != nil {
		return err
	}
	if p.FarmerID != requesterID {
		return ErrForbidden
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return ErrValidation
	}
	if quantity < 0 || price < 0 {
		return ErrValidation
	}

	switch {
	case imageURL != "":
		// keep the explicit value
	case rederive:
		imageURL = models.ImageURLForName(name)
	default:
		imageURL = p.ImageURL
	}

	_, err = s.DB.Exec(
		`UPDATE products SET name = ?, description = ?, quantity = ?, price = ?, image_url = ? WHERE id = ?`,
		name, description, quantity, price, imageURL, id,
	)
	return err
}

// UpdateProductImage replaces just the image reference, owner only.
func (s *Store) UpdateProductImage(id, requesterID int, imageURL string) error {
	p, err := s.GetProductByID(id)
	if err != nil {
		return err
	}
	if p.FarmerID != requesterID {
		return ErrForbidden
	}
	_, err = s.DB.Exec(`UPDATE products SET image_url = ? WHERE id = ?`, imageURL, id)
	return err
}

// DeleteProduct removes a catalog entry, owner only. Historical orders
// against the product are kept (listings fall back to a placeholder name).
func (s *Store) DeleteProduct(id, requesterID int) error {
	p, err := s.GetProductByID(id)
	if err != nil {
		return err
	}
	if p.FarmerID != requesterID {
		return ErrForbidden
	}
	_, err = s.DB.Exec(`DELETE FROM products WHERE id = ?`, id)
	return err
}

// AvailableProducts lists everything in stock, newest first.
func (s *Store) AvailableProducts() ([]models.Product, error) {
	return s.queryProducts(
		`SELECT p.id, p.farmer_id, p.name, p.description, p.quantity, p.price, p.created_at, p.image_url, u.name
		 FROM products p
		 JOIN users u ON p.farmer_id = u.id
		 WHERE p.quantity > 0
		 ORDER BY p.created_at DESC, p.id DESC`,
	)
}

// ProductsByFarmer lists one farmer's products, newest first.
func (s *Store) ProductsByFarmer(farmerID int) ([]models.Product, error) {
	return s.queryProducts(
		`SELECT p.id, p.farmer_id, p.name, p.description, p.quantity, p.price, p.created_at, p.image_url, u.name
		 FROM products p
		 JOIN users u ON p.farmer_id = u.id
		 WHERE p.farmer_id = ?
		 ORDER BY p.created_at DESC, p.id DESC`,
		farmerID,
	)
}

// AllProducts lists the whole catalog for the admin inventory view.
func (s *Store) AllProducts(limit, offset int) ([]models.Product, error) {
	return s.queryProducts(
		`SELECT p.id, p.farmer_id, p.name, p.description, p.quantity, p.price, p.created_at, p.image_url, u.name
		 FROM products p
		 JOIN users u ON p.farmer_id = u.id
		 ORDER BY p.created_at DESC, p.id DESC
		 LIMIT ? OFFSET ?`,
		limit, offset,
	)
}

func (s *Store) queryProducts(query string, args ...interface{}) ([]models.Product, error) {
	rows, err := s.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.FarmerID, &p.Name, &p.Description, &p.Quantity, &p.Price, &p.CreatedAt, &p.ImageURL, &p.FarmerName); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}
