package store

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/GauriLakshmi/Farm-Connect/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// PrimaryAdminUsername names the seeded administrator account that can
// never be modified, not even by another admin.
const PrimaryAdminUsername = "admin"

// dummyHash is a throwaway bcrypt hash compared against when the username
// does not exist, so lookups take the same time either way.
var dummyHash = []byte("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy")

// Register creates a self-service account. The password is hashed before
// storage; the plaintext is never retained.
func (s *Store) Register(username, password string, role models.Role, name, contact string) (*models.User, error) {
	username = strings.TrimSpace(username)
	name = strings.TrimSpace(name)
	contact = strings.TrimSpace(contact)

	if username == "" || password == "" || name == "" || contact == "" {
		return nil, ErrValidation
	}
	if !role.SelfService() {
		return nil, ErrValidation
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	return s.CreateUser(username, string(hash), role, name, contact)
}

// CreateUser inserts a user with an already-hashed password. Used by
// Register, seeding and the CLI.
func (s *Store) CreateUser(username, passwordHash string, role models.Role, name, contact string) (*models.User, error) {
	res, err := s.DB.Exec(
		`INSERT INTO users (username, password_hash, role, name, contact_number) VALUES (?, ?, ?, ?, ?)`,
		username, passwordHash, role, name, contact,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &models.User{
		ID:            int(id),
		Username:      username,
		PasswordHash:  passwordHash,
		Role:          role,
		Name:          name,
		ContactNumber: contact,
	}, nil
}

// Authenticate compares the supplied password against the stored hash.
// Unknown usernames and wrong passwords produce the same error.
func (s *Store) Authenticate(username, password string) (*models.User, error) {
	user, err := s.GetUserByUsername(username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		// Burn a comparison so unknown usernames take as long as bad passwords.
		bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return nil, ErrBadCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrBadCredentials
	}
	return user, nil
}

func (s *Store) GetUserByUsername(username string) (*models.User, error) {
	row := s.DB.QueryRow(
		`SELECT id, username, password_hash, role, name, contact_number FROM users WHERE username = ?`,
		username,
	)
	return scanUser(row)
}

func (s *Store) GetUserByID(id int) (*models.User, error) {
	row := s.DB.QueryRow(
		`SELECT id, username, password_hash, role, name, contact_number FROM users WHERE id = ?`,
		id,
	)
	return scanUser(row)
}

func scanUser(row *sql.Row) (*models.User, error) {
	var u models.User
	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role, &u.Name, &u.ContactNumber); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

// UpdateUser rewrites a user's profile fields. An empty newPassword keeps
// the current hash. The primary admin account is immutable.
func (s *Store) UpdateUser(id int, name, username, contact string, role models.Role, newPassword string) error {
	target, err := s.GetUserByID(id)
	if err != nil {
		return err
	}
	if target == nil {
		return ErrNotFound
	}
	if target.Username == PrimaryAdminUsername {
		return ErrProtectedAccount
	}

	username = strings.TrimSpace(username)
	name = strings.TrimSpace(name)
	contact = strings.TrimSpace(contact)
	if username == "" || name == "" || !role.Valid() {
		return ErrValidation
	}

	hash := target.PasswordHash
	if newPassword != "" {
		h, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hashing password: %w", err)
		}
		hash = string(h)
	}

	_, err = s.DB.Exec(
		`UPDATE users SET name = ?, username = ?, contact_number = ?, role = ?, password_hash = ? WHERE id = ?`,
		name, username, contact, role, hash, id,
	)
	if err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return ErrUsernameTaken
	}
	return err
}

// ListUsersExcept returns every user except the given one, oldest first.
// The admin user table excludes the admin viewing it.
func (s *Store) ListUsersExcept(id int) ([]models.User, error) {
	rows, err := s.DB.Query(
		`SELECT id, username, password_hash, role, name, contact_number FROM users WHERE id != ? ORDER BY id ASC`,
		id,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role, &u.Name, &u.ContactNumber); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (s *Store) CountUsers() (int, error) {
	var count int
	err := s.DB.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&count)
	return count, err
}
