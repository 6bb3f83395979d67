package middlewares

import (
	"net/http"
	"net/url"

	"github.com/mbolis/survey-portal/session"
)

// RequireUser redirects anonymous requests to the login page. The session
// verifier must run earlier in the chain.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, ok := session.FromContext(r.Context())
		if !ok {
			loginLocation := "/login?goto=" + url.QueryEscape(r.RequestURI)
			http.Redirect(w, r, loginLocation, http.StatusTemporaryRedirect)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RequireAdmin rejects sessions without the admin flag.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, ok := session.FromContext(r.Context())
		if !ok {
			loginLocation := "/login?goto=" + url.QueryEscape(r.RequestURI)
			http.Redirect(w, r, loginLocation, http.StatusTemporaryRedirect)
			return
		}
		if !sess.IsAdmin {
			http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
			return
		}

		next.ServeHTTP(w, r)
	})
}
