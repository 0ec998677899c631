package httpserver_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/totpgate/pkg/httpserver"
)

func TestLivenessHandler(t *testing.T) {
	t.Parallel()
	rec := httptest.NewRecorder()
	httpserver.LivenessHandler()(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ALIVE", rec.Body.String())
}

func TestReadinessHandler(t *testing.T) {
	t.Parallel()
	ok := func(context.Context) error { return nil }
	failing := func(context.Context) error { return errors.New("redis down") }
	waitsForDeadline := func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	}

	tests := []struct {
		name   string
		checks []httpserver.Check
		status int
		body   string
	}{
		{name: "no checks", status: http.StatusOK, body: "READY"},
		{name: "all pass", checks: []httpserver.Check{ok, ok}, status: http.StatusOK, body: "READY"},
		{name: "one fails", checks: []httpserver.Check{ok, failing}, status: http.StatusServiceUnavailable, body: "NOT_READY"},
		{name: "timeout", checks: []httpserver.Check{waitsForDeadline}, status: http.StatusServiceUnavailable, body: "NOT_READY"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec := httptest.NewRecorder()
			h := httpserver.ReadinessHandler(nil, 20*time.Millisecond, tt.checks...)
			h(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.body, rec.Body.String())
		})
	}
}

func TestConfig_Addr(t *testing.T) {
	t.Parallel()
	assert.Equal(t, ":9000", httpserver.Config{Port: 9000}.Addr())
	assert.Equal(t, "127.0.0.1:8081", httpserver.Config{Host: "127.0.0.1", Port: 8081}.Addr())
}
