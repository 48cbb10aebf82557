package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/Dosada05/padel-tournament/services"
)

type contextKey string

const organizerContextKey contextKey = "organizer"

var (
	errNoToken        = errors.New("no bearer token")
	errMalformedToken = errors.New("authorization header must be 'Bearer <token>'")
)

func WithOrganizer(ctx context.Context, org services.Organizer) context.Context {
	return context.WithValue(ctx, organizerContextKey, org)
}

// OrganizerFromContext returns the organizer capability of the request, if any.
func OrganizerFromContext(ctx context.Context) (services.Organizer, bool) {
	org, ok := ctx.Value(organizerContextKey).(services.Organizer)
	if !ok || !org.Valid() {
		return services.Organizer{}, false
	}
	return org, true
}

func bearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", errNoToken
	}
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return "", errMalformedToken
	}
	return strings.TrimSpace(token), nil
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
