package handlers

import (
	"net/http"

	"github.com/GauriLakshmi/Farm-Connect/internal/models"
	"github.com/GauriLakshmi/Farm-Connect/internal/store"
	"github.com/gorilla/sessions"
)

const sessionName = "farmconnect-session"

// decision is the outcome of an access check.
type decision int

const (
	decisionAllow     decision = iota
	decisionChallenge          // not logged in: send to the login form
	decisionForbid             // logged in with the wrong role
)

// authorize is the single access rule for the whole app: anonymous callers
// are challenged, authenticated callers need an exact role match. An empty
// required role means any authenticated user.
func authorize(user *models.User, required models.Role) decision {
	if user == nil {
		return decisionChallenge
	}
	if required != "" && user.Role != required {
		return decisionForbid
	}
	return decisionAllow
}

// Gate resolves the session user and wraps role-protected routes. The
// permitted-operations matrix is the route table in cmd/server.
type Gate struct {
	Store        *store.Store
	SessionStore *sessions.CookieStore
}

// CurrentUser resolves the logged-in user from the session, or nil.
func (g *Gate) CurrentUser(r *http.Request) *models.User {
	session, _ := g.SessionStore.Get(r, sessionName)
	id, ok := session.Values["user_id"].(int)
	if !ok {
		return nil
	}
	user, err := g.Store.GetUserByID(id)
	if err != nil || user == nil {
		return nil
	}
	return user
}

// RequireRole wraps a handler with the access check for one role.
func (g *Gate) RequireRole(required models.Role, next func(http.ResponseWriter, *http.Request, *models.User)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := g.CurrentUser(r)
		switch authorize(user, required) {
		case decisionChallenge:
			loginRedirect(w, r)
		case decisionForbid:
			// Generic signal; don't leak what lives behind the route.
			http.Error(w, "Forbidden", http.StatusForbidden)
		default:
			next(w, r, user)
		}
	}
}

// RequireLogin wraps a handler that only needs an authenticated user,
// regardless of role.
func (g *Gate) RequireLogin(next func(http.ResponseWriter, *http.Request, *models.User)) http.HandlerFunc {
	return g.RequireRole("", next)
}
