package handlers

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/GauriLakshmi/Farm-Connect/internal/models"
	"github.com/GauriLakshmi/Farm-Connect/internal/store"
	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestAuthorize(t *testing.T) {
	farmer := &models.User{ID: 1, Role: models.RoleFarmer}
	admin := &models.User{ID: 2, Role: models.RoleAdmin}

	cases := []struct {
		name     string
		user     *models.User
		required models.Role
		want     decision
	}{
		{"anonymous is challenged", nil, models.RoleFarmer, decisionChallenge},
		{"anonymous challenged even without role", nil, "", decisionChallenge},
		{"matching role allowed", farmer, models.RoleFarmer, decisionAllow},
		{"mismatched role forbidden", farmer, models.RoleCustomer, decisionForbid},
		{"admin is not a superset of farmer", admin, models.RoleFarmer, decisionForbid},
		{"any authenticated user when no role required", farmer, "", decisionAllow},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, authorize(tc.user, tc.required))
		})
	}
}

func newTestGate(t *testing.T) (*Gate, *store.Store) {
	t.Helper()
	s, err := store.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	require.NoError(t, s.Migrate(filepath.Join("..", "..", "migrations")))

	sessionStore := sessions.NewCookieStore([]byte("test-session-key-0123456789abcdef"))
	return &Gate{Store: s, SessionStore: sessionStore}, s
}

func createUser(t *testing.T, s *store.Store, username string, role models.Role) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("pw"), bcrypt.MinCost)
	require.NoError(t, err)
	u, err := s.CreateUser(username, string(hash), role, username, "0")
	require.NoError(t, err)
	return u
}

// loginCookies builds the session cookies for a logged-in user.
func loginCookies(t *testing.T, g *Gate, userID int) []*http.Cookie {
	t.Helper()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	session, _ := g.SessionStore.Get(r, sessionName)
	session.Values["user_id"] = userID
	require.NoError(t, session.Save(r, w))
	return w.Result().Cookies()
}

func TestRequireRole(t *testing.T) {
	g, s := newTestGate(t)
	farmer := createUser(t, s, "farmer", models.RoleFarmer)
	customer := createUser(t, s, "customer", models.RoleCustomer)

	var calledBy *models.User
	protected := g.RequireRole(models.RoleFarmer, func(w http.ResponseWriter, r *http.Request, u *models.User) {
		calledBy = u
		w.WriteHeader(http.StatusOK)
	})

	t.Run("anonymous redirected to login", func(t *testing.T) {
		calledBy = nil
		r := httptest.NewRequest(http.MethodGet, "/farmer/dashboard", nil)
		w := httptest.NewRecorder()
		protected(w, r)
		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Contains(t, w.Header().Get("Location"), "/login?next=")
		assert.Nil(t, calledBy)
	})

	t.Run("wrong role forbidden", func(t *testing.T) {
		calledBy = nil
		r := httptest.NewRequest(http.MethodGet, "/farmer/dashboard", nil)
		for _, c := range loginCookies(t, g, customer.ID) {
			r.AddCookie(c)
		}
		w := httptest.NewRecorder()
		protected(w, r)
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Nil(t, calledBy)
	})

	t.Run("matching role allowed", func(t *testing.T) {
		calledBy = nil
		r := httptest.NewRequest(http.MethodGet, "/farmer/dashboard", nil)
		for _, c := range loginCookies(t, g, farmer.ID) {
			r.AddCookie(c)
		}
		w := httptest.NewRecorder()
		protected(w, r)
		assert.Equal(t, http.StatusOK, w.Code)
		require.NotNil(t, calledBy)
		assert.Equal(t, farmer.ID, calledBy.ID)
	})

	t.Run("stale session for deleted user is challenged", func(t *testing.T) {
		calledBy = nil
		r := httptest.NewRequest(http.MethodGet, "/farmer/dashboard", nil)
		for _, c := range loginCookies(t, g, 9999) {
			r.AddCookie(c)
		}
		w := httptest.NewRecorder()
		protected(w, r)
		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Nil(t, calledBy)
	})
}

func TestRequireLogin(t *testing.T) {
	g, s := newTestGate(t)
	customer := createUser(t, s, "customer", models.RoleCustomer)

	handler := g.RequireLogin(func(w http.ResponseWriter, r *http.Request, u *models.User) {
		w.WriteHeader(http.StatusOK)
	})

	r := httptest.NewRequest(http.MethodGet, "/my_orders", nil)
	for _, c := range loginCookies(t, g, customer.ID) {
		r.AddCookie(c)
	}
	w := httptest.NewRecorder()
	handler(w, r)
	assert.Equal(t, http.StatusOK, w.Code)
}
