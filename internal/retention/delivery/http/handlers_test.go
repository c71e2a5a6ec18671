package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"report-srv/config"
	"report-srv/internal/middleware"
	"report-srv/internal/retention"
	"report-srv/pkg/log"
	"report-srv/pkg/scope"

	"github.com/gin-gonic/gin"
)

type noTokens struct{}

func (noTokens) Verify(string) (scope.Payload, error) {
	return scope.Payload{}, errors.New("no tokens")
}

type fakeUseCase struct {
	retention.UseCase
	out retention.SweepOutput
	err error
}

func (f *fakeUseCase) Sweep(context.Context) (retention.SweepOutput, error) {
	return f.out, f.err
}

func newTestRouter(uc retention.UseCase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	l := log.NewNop()

	r := gin.New()
	r.Use(middleware.Recovery(l))
	New(l, uc).RegisterRoutes(r.Group(""), middleware.New(l, noTokens{}, config.CookieConfig{}, "key"))
	return r
}

func sweep(r *gin.Engine, key string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/internal/retention/sweep", nil)
	if key != "" {
		req.Header.Set("Authorization", "Bearer "+key)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSweep(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		uc       *fakeUseCase
		wantCode int
		wantBody string
	}{
		{
			name:     "success",
			key:      "key",
			uc:       &fakeUseCase{out: retention.SweepOutput{Expired: 3, Deleted: 1}},
			wantCode: http.StatusOK,
			wantBody: `"expired":3`,
		},
		{
			name:     "unauthorized",
			uc:       &fakeUseCase{},
			wantCode: http.StatusUnauthorized,
		},
		{
			name:     "pass failed",
			key:      "key",
			uc:       &fakeUseCase{err: errors.Join(retention.ErrDeletePassFailed, errors.New("db"))},
			wantCode: http.StatusInternalServerError,
			wantBody: "Retention sweep failed",
		},
		{
			name:     "lock error",
			key:      "key",
			uc:       &fakeUseCase{err: errors.New("redis down")},
			wantCode: http.StatusInternalServerError,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := sweep(newTestRouter(tt.uc), tt.key)
			if w.Code != tt.wantCode {
				t.Fatalf("code = %d, want %d", w.Code, tt.wantCode)
			}
			if tt.wantBody != "" && !strings.Contains(w.Body.String(), tt.wantBody) {
				t.Errorf("body = %s, want substring %s", w.Body.String(), tt.wantBody)
			}
		})
	}
}
