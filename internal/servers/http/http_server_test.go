package http

import (
	"mgMessenger/configs"
	"mgMessenger/internal/handlers"
	"mgMessenger/internal/realtime"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
)

func newTestServer() *HttpServer {
	gin.SetMode(gin.TestMode)
	v := viper.New()
	v.Set("server.cors_origins", "http://localhost:5173, http://app.example")
	hub := realtime.NewHub()
	return &HttpServer{
		config:         &configs.Config{Viper: v},
		restHandler:    handlers.NewRestHandler(nil, nil, nil, nil, nil, nil, nil),
		socketHandler:  handlers.NewSocketHandler(hub, nil, realtime.DefaultClientConfig()),
		metricsHandler: handlers.NewMetricsHandler(hub),
	}
}

func TestRouter_Health(t *testing.T) {
	router := newTestServer().Router()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK || rec.Body.String() != `{"status":"ok"}` {
		t.Errorf("health: %d %s", rec.Code, rec.Body)
	}
}

func TestRouter_RegistersRoutes(t *testing.T) {
	router := newTestServer().Router()

	registered := make(map[string]bool)
	for _, route := range router.Routes() {
		registered[route.Method+" "+route.Path] = true
	}
	for _, want := range []string{
		"POST /api/auth/login",
		"GET /api/me",
		"POST /api/messages",
		"PUT /api/messages/:id",
		"DELETE /api/messages/:id",
		"POST /api/messages/:id/forward",
		"POST /api/upload",
		"PUT /api/me",
		"POST /api/auth/change-password",
		"GET /api/users/search",
		"GET /api/users/:login",
		"PUT /api/users/:login/note",
		"GET /api/users/:login/presence",
		"GET /api/chats/active",
		"POST /api/groups",
		"PUT /api/groups/:id",
		"DELETE /api/groups/:id",
		"POST /api/calls/invite",
		"GET /api/ws/events",
		"GET /api/ws/calls/:roomId",
		"GET /metrics",
		"GET /swagger/*any",
	} {
		if !registered[want] {
			t.Errorf("route %v not registered", want)
		}
	}
}

func TestRouter_ProtectedRouteNeedsToken(t *testing.T) {
	router := newTestServer().Router()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/chats/active", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want 401", rec.Code)
	}
}

func TestCorsMiddleware(t *testing.T) {
	router := newTestServer().Router()

	preflight := func(origin string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodOptions, "/api/auth/login", nil)
		req.Header.Set("Origin", origin)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	rec := preflight("http://app.example")
	if rec.Code != http.StatusNoContent {
		t.Errorf("preflight status: got %d", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://app.example" {
		t.Errorf("allowed origin: got %q", got)
	}

	rec = preflight("http://evil.example")
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("foreign origin allowed: %q", got)
	}
}

func TestSplitOrigins(t *testing.T) {
	got := splitOrigins(" a ,, b,")
	if !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("got %v", got)
	}
}
