package http

import (
	"net/http"
	"net/url"

	"github.com/an678-mhg/test-fe-interview-ecom/internal/auth"
)

// RequireAuth gates a route group on an authenticated session. Unauthenticated
// requests are redirected to /login with the intended destination preserved,
// so a successful login can send the user back.
func RequireAuth(session *auth.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !session.IsAuthenticated() {
				from := r.URL.Path
				if r.URL.RawQuery != "" {
					from += "?" + r.URL.RawQuery
				}
				http.Redirect(w, r, "/login?from="+url.QueryEscape(from), http.StatusFound)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
