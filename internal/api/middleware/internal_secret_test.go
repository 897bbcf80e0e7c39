package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func newSecretRouter(secret string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/internal/ping", InternalSecretMiddleware(secret), func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	return router
}

func TestInternalSecretMiddleware(t *testing.T) {
	router := newSecretRouter("hunter2")

	cases := []struct {
		name   string
		header string
		want   int
	}{
		{"valid secret", "hunter2", http.StatusOK},
		{"wrong secret", "hunter3", http.StatusUnauthorized},
		{"missing header", "", http.StatusUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/internal/ping", nil)
			if tc.header != "" {
				req.Header.Set("X-Internal-Secret", tc.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			if w.Code != tc.want {
				t.Fatalf("expected %d got %d", tc.want, w.Code)
			}
		})
	}
}

func TestInternalSecretMiddleware_Unconfigured(t *testing.T) {
	router := newSecretRouter("")

	req := httptest.NewRequest(http.MethodGet, "/internal/ping", nil)
	req.Header.Set("X-Internal-Secret", "anything")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 when secret unset, got %d", w.Code)
	}
}

func TestCorrelationIDMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(CorrelationIDMiddleware())

	var seen string
	router.GET("/ping", func(c *gin.Context) {
		seen = GetCorrelationID(c)
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Correlation-ID", "req-123")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if seen != "req-123" {
		t.Fatalf("expected inbound id to be kept, got %q", seen)
	}
	if got := w.Header().Get("X-Correlation-ID"); got != "req-123" {
		t.Fatalf("expected id echoed in response, got %q", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/ping", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if seen == "" {
		t.Fatal("expected generated correlation id")
	}
	if got := w.Header().Get("X-Correlation-ID"); got != seen {
		t.Fatalf("expected generated id in response header, got %q want %q", got, seen)
	}
}
