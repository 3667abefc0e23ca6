package httpserver

import (
	"context"
	"net/http"
	"regexp"

	"github.com/google/uuid"
)

const (
	SessionCookie = "tw_session"
	SessionHeader = "X-Session-ID"
)

type sessionKey struct{}

var validSession = regexp.MustCompile(`^[A-Za-z0-9_-]{8,64}$`)

// Session resolves the caller's session id from the header or cookie and
// issues a new one when neither carries a usable id.
func Session(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(SessionHeader)
		if !validSession.MatchString(id) {
			id = ""
			if c, err := r.Cookie(SessionCookie); err == nil && validSession.MatchString(c.Value) {
				id = c.Value
			}
		}
		if id == "" {
			id = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     SessionCookie,
				Value:    id,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}
		w.Header().Set(SessionHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), sessionKey{}, id)))
	})
}

func sessionFrom(ctx context.Context) string {
	id, _ := ctx.Value(sessionKey{}).(string)
	return id
}
