// Package session keeps the signed-in user's identity in a signed cookie.
// Exactly two values are stored: the user id and the admin flag, both
// string-encoded inside JWT claims. Missing values are tolerated, never fatal.
package session

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
)

const (
	cookieName   = "survey_session"
	claimUserID  = "UserId"
	claimIsAdmin = "isAdmin"
)

type Session struct {
	UserID  int
	IsAdmin bool
}

type Store struct {
	auth *jwtauth.JWTAuth
	ttl  time.Duration
}

func NewStore(secret string, ttl time.Duration) *Store {
	return &Store{
		auth: jwtauth.New("HS256", []byte(secret), nil),
		ttl:  ttl,
	}
}

// Issue signs a fresh session token and sets it as a cookie. The cookie has
// no Max-Age: it lives for the browser session, like the storage it replaces.
func (s *Store) Issue(w http.ResponseWriter, userID int, isAdmin bool) error {
	claims := map[string]any{
		claimUserID:  strconv.Itoa(userID),
		claimIsAdmin: strconv.FormatBool(isAdmin),
		"jti":        uuid.NewString(),
	}
	jwtauth.SetIssuedNow(claims)
	jwtauth.SetExpiryIn(claims, s.ttl)

	_, token, err := s.auth.Encode(claims)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Path:     "/",
		Name:     cookieName,
		Value:    token,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func (s *Store) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Path:     "/",
		Name:     cookieName,
		Value:    "",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// Verifier parses and validates the session cookie, stashing the result in
// the request context. It never rejects a request by itself: gate handlers
// with middlewares.RequireUser/RequireAdmin instead.
func (s *Store) Verifier() func(http.Handler) http.Handler {
	return jwtauth.Verify(s.auth, tokenFromCookie)
}

func tokenFromCookie(r *http.Request) string {
	cookie, err := r.Cookie(cookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// FromContext returns the verified session, if any.
func FromContext(ctx context.Context) (Session, bool) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return Session{}, false
	}

	raw, _ := claims[claimUserID].(string)
	userID, err := strconv.Atoi(raw)
	if err != nil || userID <= 0 {
		return Session{}, false
	}

	admin, _ := claims[claimIsAdmin].(string)
	return Session{UserID: userID, IsAdmin: admin == "true"}, true
}
