package routes_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/peoplehub/user-access-service/internal/infra/config"
	httproutes "github.com/peoplehub/user-access-service/internal/transport/http/routes"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()
	cfg := &config.AppConfig{App: config.AppSettings{Env: "test"}}

	return httproutes.Register(httproutes.Dependencies{
		Config: cfg,
		Logger: logger,
	})
}

func TestHealthEndpoint(t *testing.T) {
	r := newTestRouter()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/healthz", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
}

func TestProtectedRoutesRequireAuth(t *testing.T) {
	r := newTestRouter()

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/v1/auth/me"},
		{http.MethodGet, "/api/v1/users"},
		{http.MethodGet, "/api/v1/pages"},
		{http.MethodGet, "/api/v1/pages/mine"},
		{http.MethodGet, "/api/v1/enterprises"},
		{http.MethodDelete, "/api/v1/users/u-1"},
	}

	for _, tc := range paths {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(tc.method, tc.path, nil)
		r.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("%s %s without a token: expected 401, got %d", tc.method, tc.path, w.Code)
		}
	}
}

func TestMetricsEndpoint(t *testing.T) {
	r := newTestRouter()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/metrics", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
}
