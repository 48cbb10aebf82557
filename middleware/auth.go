package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/Dosada05/padel-tournament/services"
)

// Authenticate reads an optional bearer token. A valid organizer token puts the
// Organizer into the request context; requests without a token pass through as public.
func Authenticate(authService services.AuthService, logger *slog.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := bearerToken(r)
			if errors.Is(err, errNoToken) {
				next.ServeHTTP(w, r)
				return
			}
			if err != nil {
				writeError(w, http.StatusUnauthorized, err.Error())
				return
			}

			org, err := authService.Authorize(r.Context(), token)
			if err != nil {
				logger.DebugContext(r.Context(), "token rejected", "path", r.URL.Path, "error", err)
				writeError(w, http.StatusUnauthorized, services.ErrAuthInvalidToken.Error())
				return
			}
			next.ServeHTTP(w, r.WithContext(WithOrganizer(r.Context(), org)))
		})
	}
}

// RequireOrganizer rejects requests that Authenticate did not mark as organizer.
func RequireOrganizer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := OrganizerFromContext(r.Context()); !ok {
			writeError(w, http.StatusUnauthorized, "organizer authentication required")
			return
		}
		next.ServeHTTP(w, r)
	})
}
