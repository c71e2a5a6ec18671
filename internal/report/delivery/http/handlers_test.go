package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"report-srv/config"
	"report-srv/internal/middleware"
	"report-srv/internal/model"
	"report-srv/internal/report"
	"report-srv/pkg/log"
	"report-srv/pkg/scope"

	"github.com/gin-gonic/gin"
)

const (
	userToken   = "user-token"
	internalKey = "internal-key"
)

var testNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

type tokenManager struct{}

func (tokenManager) Verify(token string) (scope.Payload, error) {
	if token != userToken {
		return scope.Payload{}, errors.New("invalid token")
	}
	return scope.Payload{UserID: "user-1"}, nil
}

// fakeUseCase records calls and returns canned results.
type fakeUseCase struct {
	report.UseCase

	err       error
	deleted   bool
	lastScope model.Scope
	lastList  report.ListReportsInput
	lastAll   report.ListAllReportsInput
	lastStat  report.UpdateStatusInput
	started   string
	triggered string
}

func (f *fakeUseCase) CreateReport(_ context.Context, sc model.Scope, input report.CreateReportInput) (report.CreateReportOutput, error) {
	f.lastScope = sc
	if f.err != nil {
		return report.CreateReportOutput{}, f.err
	}
	return report.CreateReportOutput{
		ReportID:            "r-1",
		Status:              model.ReportStatusPending,
		EstimatedCompletion: testNow.Add(3 * time.Minute),
		ExpiresAt:           testNow.AddDate(0, 0, 30),
	}, nil
}

func (f *fakeUseCase) GetReport(_ context.Context, sc model.Scope, input report.GetReportInput) (report.ReportOutput, error) {
	f.lastScope = sc
	if f.err != nil {
		return report.ReportOutput{}, f.err
	}
	return report.ReportOutput{
		ReportID: input.ReportID,
		UserID:   sc.UserID,
		Status:   model.ReportStatusCompleted,
		Content: &report.Content{
			Title:    "Plan",
			Sections: []report.Section{{Heading: "Visa", Body: "Apply early"}},
		},
		CreatedAt: testNow,
		UpdatedAt: testNow,
		ExpiresAt: testNow.AddDate(0, 0, 30),
	}, nil
}

func (f *fakeUseCase) ListUserReports(_ context.Context, sc model.Scope, input report.ListReportsInput) ([]report.ReportListItem, error) {
	f.lastScope = sc
	f.lastList = input
	return []report.ReportListItem{{ReportID: "r-1", Status: model.ReportStatusPending, CreatedAt: testNow}}, f.err
}

func (f *fakeUseCase) SoftDeleteReport(_ context.Context, sc model.Scope, _ report.DeleteReportInput) (bool, error) {
	f.lastScope = sc
	return f.deleted, f.err
}

func (f *fakeUseCase) DownloadReport(_ context.Context, _ model.Scope, input report.DownloadReportInput) (report.DownloadOutput, error) {
	if f.err != nil {
		return report.DownloadOutput{}, f.err
	}
	return report.DownloadOutput{
		DownloadURL: "http://minio/reports/" + input.ReportID,
		ExpiresAt:   testNow.Add(15 * time.Minute),
		FileName:    "report_" + input.ReportID + ".md",
	}, nil
}

func (f *fakeUseCase) StartReportGeneration(_ context.Context, input report.TriggerGenerationInput) error {
	f.started = input.ReportID
	return f.err
}

func (f *fakeUseCase) TriggerReportGeneration(_ context.Context, input report.TriggerGenerationInput) error {
	f.triggered = input.ReportID
	return f.err
}

func (f *fakeUseCase) ListAllReports(_ context.Context, input report.ListAllReportsInput) ([]report.ReportOutput, error) {
	f.lastAll = input
	return nil, f.err
}

func (f *fakeUseCase) UpdateReportStatus(_ context.Context, input report.UpdateStatusInput) error {
	f.lastStat = input
	return f.err
}

func (f *fakeUseCase) RestoreReport(_ context.Context, input report.RestoreReportInput) (report.ReportOutput, error) {
	if f.err != nil {
		return report.ReportOutput{}, f.err
	}
	return report.ReportOutput{ReportID: input.ReportID, Status: model.ReportStatusCompleted}, nil
}

func (f *fakeUseCase) PurgeReport(_ context.Context, _ report.PurgeReportInput) (bool, error) {
	return f.deleted, f.err
}

func newTestRouter(uc report.UseCase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	l := log.NewNop()

	r := gin.New()
	r.Use(middleware.Recovery(l))
	mw := middleware.New(l, tokenManager{}, config.CookieConfig{Name: "auth"}, internalKey)
	New(l, uc).RegisterRoutes(r.Group(""), mw)
	return r
}

func do(r *gin.Engine, method, path, token, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder, into any) {
	t.Helper()
	var body struct {
		ErrorCode int             `json:"error_code"`
		Data      json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body %q: %v", w.Body.String(), err)
	}
	if err := json.Unmarshal(body.Data, into); err != nil {
		t.Fatalf("decode data %s: %v", body.Data, err)
	}
}

func TestCreateReport(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		uc := &fakeUseCase{}
		w := do(newTestRouter(uc), http.MethodPost, "/api/v1/reports", userToken, `{"query":"study in Germany"}`)
		if w.Code != http.StatusOK {
			t.Fatalf("code = %d, body %s", w.Code, w.Body.String())
		}

		var resp createReportResp
		decodeData(t, w, &resp)
		if resp.ReportID != "r-1" || resp.Status != "pending" {
			t.Errorf("resp = %+v", resp)
		}
		if resp.ExpiresAt != "2025-03-31T12:00:00Z" {
			t.Errorf("ExpiresAt = %s", resp.ExpiresAt)
		}
		if uc.lastScope.UserID != "user-1" {
			t.Errorf("scope = %+v", uc.lastScope)
		}
	})

	t.Run("unauthenticated", func(t *testing.T) {
		w := do(newTestRouter(&fakeUseCase{}), http.MethodPost, "/api/v1/reports", "", `{"query":"x"}`)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("code = %d, want 401", w.Code)
		}
	})

	t.Run("missing query", func(t *testing.T) {
		w := do(newTestRouter(&fakeUseCase{}), http.MethodPost, "/api/v1/reports", userToken, `{}`)
		if w.Code != http.StatusBadRequest {
			t.Errorf("code = %d, want 400", w.Code)
		}
	})

	t.Run("query too long", func(t *testing.T) {
		uc := &fakeUseCase{err: report.ErrQueryTooLong}
		w := do(newTestRouter(uc), http.MethodPost, "/api/v1/reports", userToken, `{"query":"x"}`)
		if w.Code != http.StatusBadRequest {
			t.Errorf("code = %d, want 400", w.Code)
		}
	})

	t.Run("unexpected error", func(t *testing.T) {
		uc := &fakeUseCase{err: errors.New("db down")}
		w := do(newTestRouter(uc), http.MethodPost, "/api/v1/reports", userToken, `{"query":"x"}`)
		if w.Code != http.StatusInternalServerError {
			t.Errorf("code = %d, want 500", w.Code)
		}
		if strings.Contains(w.Body.String(), "db down") {
			t.Errorf("internal error leaked: %s", w.Body.String())
		}
	})
}

func TestGetReport(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		w := do(newTestRouter(&fakeUseCase{}), http.MethodGet, "/api/v1/reports/r-9", userToken, "")
		if w.Code != http.StatusOK {
			t.Fatalf("code = %d", w.Code)
		}
		var resp reportResp
		decodeData(t, w, &resp)
		if resp.ReportID != "r-9" || resp.Content == nil || len(resp.Content.Sections) != 1 {
			t.Errorf("resp = %+v", resp)
		}
	})

	t.Run("not found", func(t *testing.T) {
		uc := &fakeUseCase{err: report.ErrReportNotFound}
		w := do(newTestRouter(uc), http.MethodGet, "/api/v1/reports/r-9", userToken, "")
		if w.Code != http.StatusNotFound {
			t.Errorf("code = %d, want 404", w.Code)
		}
	})
}

func TestListReports(t *testing.T) {
	uc := &fakeUseCase{}
	w := do(newTestRouter(uc), http.MethodGet, "/api/v1/reports?skip=-3&limit=500", userToken, "")
	if w.Code != http.StatusOK {
		t.Fatalf("code = %d", w.Code)
	}
	if uc.lastList.Skip != 0 || uc.lastList.Limit != 100 {
		t.Errorf("input = %+v", uc.lastList)
	}

	var resp listReportsResp
	decodeData(t, w, &resp)
	if len(resp.Reports) != 1 || resp.Paging.More {
		t.Errorf("resp = %+v", resp)
	}

	w = do(newTestRouter(uc), http.MethodGet, "/api/v1/reports?limit=abc", userToken, "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("code = %d, want 400", w.Code)
	}
}

func TestDeleteReport(t *testing.T) {
	w := do(newTestRouter(&fakeUseCase{deleted: true}), http.MethodDelete, "/api/v1/reports/r-1", userToken, "")
	if w.Code != http.StatusOK {
		t.Errorf("code = %d, want 200", w.Code)
	}

	w = do(newTestRouter(&fakeUseCase{deleted: false}), http.MethodDelete, "/api/v1/reports/r-1", userToken, "")
	if w.Code != http.StatusNotFound {
		t.Errorf("code = %d, want 404", w.Code)
	}
}

func TestDownloadReport(t *testing.T) {
	w := do(newTestRouter(&fakeUseCase{}), http.MethodGet, "/api/v1/reports/r-1/download", userToken, "")
	if w.Code != http.StatusOK {
		t.Fatalf("code = %d", w.Code)
	}
	var resp downloadResp
	decodeData(t, w, &resp)
	if resp.FileName != "report_r-1.md" || resp.DownloadURL == "" {
		t.Errorf("resp = %+v", resp)
	}

	w = do(newTestRouter(&fakeUseCase{err: report.ErrReportNotCompleted}), http.MethodGet, "/api/v1/reports/r-1/download", userToken, "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("code = %d, want 400", w.Code)
	}
}

func TestInternalRoutes(t *testing.T) {
	t.Run("rejects user token", func(t *testing.T) {
		w := do(newTestRouter(&fakeUseCase{}), http.MethodGet, "/internal/reports", userToken, "")
		if w.Code != http.StatusUnauthorized {
			t.Errorf("code = %d, want 401", w.Code)
		}
	})

	t.Run("generate async", func(t *testing.T) {
		uc := &fakeUseCase{}
		w := do(newTestRouter(uc), http.MethodPost, "/internal/reports/r-1/generate", internalKey, "")
		if w.Code != http.StatusAccepted {
			t.Fatalf("code = %d, want 202", w.Code)
		}
		if uc.started != "r-1" || uc.triggered != "" {
			t.Errorf("started = %q, triggered = %q", uc.started, uc.triggered)
		}
	})

	t.Run("generate wait", func(t *testing.T) {
		uc := &fakeUseCase{}
		w := do(newTestRouter(uc), http.MethodPost, "/internal/reports/r-1/generate?wait=true", internalKey, "")
		if w.Code != http.StatusOK {
			t.Fatalf("code = %d, want 200", w.Code)
		}
		if uc.triggered != "r-1" {
			t.Errorf("triggered = %q", uc.triggered)
		}
	})

	t.Run("generate failed", func(t *testing.T) {
		uc := &fakeUseCase{err: errors.Join(report.ErrGenerationFailed, errors.New("llm"))}
		w := do(newTestRouter(uc), http.MethodPost, "/internal/reports/r-1/generate?wait=true", internalKey, "")
		if w.Code != http.StatusBadGateway {
			t.Errorf("code = %d, want 502", w.Code)
		}
	})

	t.Run("generate rejected by status", func(t *testing.T) {
		uc := &fakeUseCase{err: fmt.Errorf("%w: report r-1 is completed", report.ErrInvalidTransition)}
		w := do(newTestRouter(uc), http.MethodPost, "/internal/reports/r-1/generate", internalKey, "")
		if w.Code != http.StatusConflict {
			t.Errorf("code = %d, want 409", w.Code)
		}
	})

	t.Run("generate while shutting down", func(t *testing.T) {
		uc := &fakeUseCase{err: report.ErrShuttingDown}
		w := do(newTestRouter(uc), http.MethodPost, "/internal/reports/r-1/generate", internalKey, "")
		if w.Code != http.StatusServiceUnavailable {
			t.Errorf("code = %d, want 503", w.Code)
		}
	})

	t.Run("list all", func(t *testing.T) {
		uc := &fakeUseCase{}
		w := do(newTestRouter(uc), http.MethodGet, "/internal/reports?include_deleted=true", internalKey, "")
		if w.Code != http.StatusOK {
			t.Fatalf("code = %d", w.Code)
		}
		if !uc.lastAll.IncludeDeleted || uc.lastAll.Limit != defaultAdminListLimit {
			t.Errorf("input = %+v", uc.lastAll)
		}
	})

	t.Run("update status", func(t *testing.T) {
		uc := &fakeUseCase{}
		w := do(newTestRouter(uc), http.MethodPatch, "/internal/reports/r-1/status", internalKey, `{"status":"failed","error":"timeout"}`)
		if w.Code != http.StatusOK {
			t.Fatalf("code = %d", w.Code)
		}
		if uc.lastStat.ReportID != "r-1" || uc.lastStat.Status != model.ReportStatusFailed || uc.lastStat.Error != "timeout" {
			t.Errorf("input = %+v", uc.lastStat)
		}

		uc = &fakeUseCase{err: report.ErrInvalidTransition}
		w = do(newTestRouter(uc), http.MethodPatch, "/internal/reports/r-1/status", internalKey, `{"status":"pending"}`)
		if w.Code != http.StatusConflict {
			t.Errorf("code = %d, want 409", w.Code)
		}

		uc = &fakeUseCase{err: report.ErrInvalidStatus}
		w = do(newTestRouter(uc), http.MethodPatch, "/internal/reports/r-1/status", internalKey, `{"status":"weird"}`)
		if w.Code != http.StatusBadRequest {
			t.Errorf("code = %d, want 400", w.Code)
		}
	})

	t.Run("restore", func(t *testing.T) {
		w := do(newTestRouter(&fakeUseCase{}), http.MethodPost, "/internal/reports/r-1/restore", internalKey, "")
		if w.Code != http.StatusOK {
			t.Errorf("code = %d", w.Code)
		}
		w = do(newTestRouter(&fakeUseCase{err: report.ErrReportNotFound}), http.MethodPost, "/internal/reports/r-1/restore", internalKey, "")
		if w.Code != http.StatusNotFound {
			t.Errorf("code = %d, want 404", w.Code)
		}
	})

	t.Run("purge", func(t *testing.T) {
		w := do(newTestRouter(&fakeUseCase{deleted: true}), http.MethodDelete, "/internal/reports/r-1", internalKey, "")
		if w.Code != http.StatusOK {
			t.Errorf("code = %d", w.Code)
		}
		w = do(newTestRouter(&fakeUseCase{}), http.MethodDelete, "/internal/reports/r-1", internalKey, "")
		if w.Code != http.StatusNotFound {
			t.Errorf("code = %d, want 404", w.Code)
		}
	})
}
