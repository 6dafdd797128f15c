package ui

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/lib/pq"
)

func TestHealthz(t *testing.T) {
	s := NewOpsServer(nil)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestReadyzWithUnreachableDatabase(t *testing.T) {
	// Open is lazy, so this succeeds; the ping inside readyz fails
	db, err := sqlx.Open("postgres", "postgres://localhost:1/unreachable?sslmode=disable")
	require.NoError(t, err)
	defer db.Close()

	s := NewOpsServer(db)

	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
