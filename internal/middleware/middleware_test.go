package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"report-srv/config"
	"report-srv/pkg/log"
	"report-srv/pkg/scope"

	"github.com/gin-gonic/gin"
)

type fakeManager struct {
	tokens map[string]scope.Payload
}

func (f fakeManager) Verify(token string) (scope.Payload, error) {
	p, ok := f.tokens[token]
	if !ok {
		return scope.Payload{}, errors.New("invalid token")
	}
	return p, nil
}

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	mw := New(log.NewNop(), fakeManager{tokens: map[string]scope.Payload{
		"good":    {UserID: "user-1", Role: "user"},
		"subject": {Subject: "user-2"},
		"anon":    {},
	}}, config.CookieConfig{Name: "auth"}, "internal-secret")

	r := gin.New()
	r.Use(Recovery(log.NewNop()))
	r.GET("/me", mw.Auth(), func(c *gin.Context) {
		c.String(http.StatusOK, scope.GetScopeFromContext(c.Request.Context()).UserID)
	})
	r.GET("/internal", mw.InternalAuth(), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	r.GET("/panic", func(c *gin.Context) {
		panic("boom")
	})
	return r
}

func TestAuth(t *testing.T) {
	r := newTestRouter()

	tests := []struct {
		name     string
		header   string
		cookie   string
		wantCode int
		wantBody string
	}{
		{name: "bearer", header: "Bearer good", wantCode: http.StatusOK, wantBody: "user-1"},
		{name: "raw token", header: "good", wantCode: http.StatusOK, wantBody: "user-1"},
		{name: "cookie", cookie: "good", wantCode: http.StatusOK, wantBody: "user-1"},
		{name: "subject fallback", header: "Bearer subject", wantCode: http.StatusOK, wantBody: "user-2"},
		{name: "missing", wantCode: http.StatusUnauthorized},
		{name: "invalid", header: "Bearer nope", wantCode: http.StatusUnauthorized},
		{name: "no user", header: "Bearer anon", wantCode: http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: "auth", Value: tt.cookie})
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.wantCode {
				t.Fatalf("code = %d, want %d", w.Code, tt.wantCode)
			}
			if tt.wantBody != "" && w.Body.String() != tt.wantBody {
				t.Errorf("body = %q, want %q", w.Body.String(), tt.wantBody)
			}
		})
	}
}

func TestInternalAuth(t *testing.T) {
	r := newTestRouter()

	tests := []struct {
		name     string
		header   string
		wantCode int
	}{
		{"bearer key", "Bearer internal-secret", http.StatusNoContent},
		{"raw key", "internal-secret", http.StatusNoContent},
		{"wrong key", "Bearer other", http.StatusUnauthorized},
		{"missing", "", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/internal", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != tt.wantCode {
				t.Errorf("code = %d, want %d", w.Code, tt.wantCode)
			}
		})
	}
}

func TestInternalAuthWithoutKey(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mw := New(log.NewNop(), fakeManager{}, config.CookieConfig{}, "")

	r := gin.New()
	r.GET("/internal", mw.InternalAuth(), func(c *gin.Context) { c.Status(http.StatusNoContent) })

	req := httptest.NewRequest(http.MethodGet, "/internal", nil)
	req.Header.Set("Authorization", "Bearer ")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("code = %d, want 401", w.Code)
	}
}

func TestRecovery(t *testing.T) {
	r := newTestRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("code = %d, want 500", w.Code)
	}
}
