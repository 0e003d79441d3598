package store

import (
	"path/filepath"
	"testing"

	"github.com/GauriLakshmi/Farm-Connect/internal/models"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	require.NoError(t, s.Migrate(filepath.Join("..", "..", "migrations")))
	return s
}

func TestMigrateIdempotent(t *testing.T) {
	s := newTestStore(t)
	// Running the same migrations again must be a no-op.
	require.NoError(t, s.Migrate(filepath.Join("..", "..", "migrations")))

	var applied int
	require.NoError(t, s.DB.QueryRow(`SELECT COUNT(*) FROM schema_migrations`).Scan(&applied))
	require.Equal(t, 1, applied)
}

// newTestUser inserts a user with a cheap hash; most tests don't care about
// the password.
func newTestUser(t *testing.T, s *Store, username string, role models.Role) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("pw"), bcrypt.MinCost)
	require.NoError(t, err)
	u, err := s.CreateUser(username, string(hash), role, username+" name", "555-0100")
	require.NoError(t, err)
	return u
}
