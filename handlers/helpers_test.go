package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/padel-tournament/brackets"
	"github.com/Dosada05/padel-tournament/services"
)

func TestMapServiceErrorToHTTP(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{services.ErrTournamentNotFound, http.StatusNotFound},
		{fmt.Errorf("round 7: %w", brackets.ErrRoundNotFound), http.StatusNotFound},
		{fmt.Errorf("%w: pair 2 is incomplete", services.ErrInvalidPairs), http.StatusUnprocessableEntity},
		{services.ErrInvalidScore, http.StatusUnprocessableEntity},
		{brackets.ErrWrongCourtCount, http.StatusUnprocessableEntity},
		{services.ErrScheduleLocked, http.StatusConflict},
		{services.ErrTournamentClosed, http.StatusConflict},
		{fmt.Errorf("round 2: %w", brackets.ErrIndecisiveResult), http.StatusConflict},
		{services.ErrAuthInvalidToken, http.StatusUnauthorized},
		{services.ErrForbiddenOperation, http.StatusForbidden},
		{services.ErrExportUnavailable, http.StatusServiceUnavailable},
		{errors.New("connection refused"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			mapServiceErrorToHTTP(rec, req, tt.err)
			assert.Equal(t, tt.want, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		})
	}
}

func TestReadJSON(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{name: "valid", body: `{"password":"x"}`},
		{name: "empty", body: ``, wantErr: "body must not be empty"},
		{name: "unknown field", body: `{"pass":"x"}`, wantErr: `body contains unknown key "pass"`},
		{name: "two values", body: `{"password":"x"}{}`, wantErr: "body must only contain a single JSON value"},
		{name: "wrong type", body: `{"password":1}`, wantErr: `body contains incorrect JSON type for field "password"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(tt.body))
			var input LoginInput
			err := readJSON(rec, req, &input)
			if tt.wantErr == "" {
				require.NoError(t, err)
				assert.Equal(t, "x", input.Password)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantErr, err.Error())
		})
	}
}

func TestParseEventDate(t *testing.T) {
	d, err := parseEventDate("2025-03-07")
	require.NoError(t, err)
	assert.Equal(t, 2025, d.Year)
	assert.Equal(t, 3, d.Month)
	assert.Equal(t, 7, d.Day)

	_, err = parseEventDate("07/03/2025")
	assert.Error(t, err)
}
