package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"report-srv/internal/model"
	"report-srv/internal/report/repository"
	"report-srv/internal/report/repository/postgre"
	"report-srv/internal/retention"
	"report-srv/pkg/log"
	"report-srv/pkg/minio"
	"report-srv/pkg/redis"
)

var testNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

const day = 24 * time.Hour

type fakeMinIO struct {
	minio.MinIO
	deleted []string
}

func (m *fakeMinIO) DeleteFile(_ context.Context, _, objectName string) error {
	m.deleted = append(m.deleted, objectName)
	return nil
}

type fakeRedis struct {
	redis.IRedis
	keys   map[string]string
	setErr error
}

func (f *fakeRedis) SetNX(_ context.Context, key string, value interface{}, _ time.Duration) (bool, error) {
	if f.setErr != nil {
		return false, f.setErr
	}
	if _, ok := f.keys[key]; ok {
		return false, nil
	}
	f.keys[key] = fmt.Sprint(value)
	return true, nil
}

func (f *fakeRedis) DeleteIfValue(_ context.Context, key, value string) (bool, error) {
	if f.keys[key] != value {
		return false, nil
	}
	delete(f.keys, key)
	return true, nil
}

// failingRepo fails the expire pass and delegates everything else.
type failingRepo struct {
	repository.PostgresRepository
}

func (failingRepo) ExpireOldReports(context.Context, repository.ExpireOptions) (int64, error) {
	return 0, errors.New("db timeout")
}

type testEnv struct {
	uc    *implUseCase
	repo  repository.PostgresRepository
	store *fakeMinIO
	redis *fakeRedis
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	if err := db.AutoMigrate(&model.Report{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	repo := postgre.New(db, log.NewNop())
	store := &fakeMinIO{}
	rds := &fakeRedis{keys: map[string]string{}}

	uc := New(log.NewNop(), repo, store, rds, Config{}).(*implUseCase)
	uc.clock = func() time.Time { return testNow }
	uc.lockToken = func() string { return "token-1" }

	return &testEnv{uc: uc, repo: repo, store: store, redis: rds}
}

func (e *testEnv) seed(t *testing.T, status model.ReportStatus, createdAgo, expiresIn time.Duration) string {
	t.Helper()
	rpt, err := e.repo.Create(context.Background(), repository.CreateReportOptions{
		UserID:    "user-1",
		Query:     "Can I study nursing in Australia?",
		Status:    status,
		CreatedAt: testNow.Add(-createdAgo),
		ExpiresAt: testNow.Add(expiresIn),
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	return rpt.ReportID
}

func (e *testEnv) status(t *testing.T, id string) (model.ReportStatus, bool) {
	t.Helper()
	rpt, err := e.repo.FindByID(context.Background(), repository.FindByIDOptions{ID: id, IncludeDeleted: true})
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if rpt == nil {
		return "", false
	}
	return rpt.Status, true
}

func TestExpireReports(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	overdue := e.seed(t, model.ReportStatusCompleted, 40*day, -10*day)
	failed := e.seed(t, model.ReportStatusFailed, 40*day, -time.Minute)
	fresh := e.seed(t, model.ReportStatusCompleted, day, 29*day)

	n, err := e.uc.ExpireReports(ctx)
	if err != nil {
		t.Fatalf("ExpireReports() error = %v", err)
	}
	if n != 2 {
		t.Errorf("expired = %d, want 2", n)
	}
	for _, id := range []string{overdue, failed} {
		if st, _ := e.status(t, id); st != model.ReportStatusExpired {
			t.Errorf("report %s status = %s, want expired", id, st)
		}
	}
	if st, _ := e.status(t, fresh); st != model.ReportStatusCompleted {
		t.Errorf("fresh report status = %s", st)
	}

	n, err = e.uc.ExpireReports(ctx)
	if err != nil || n != 0 {
		t.Errorf("second pass = %d, %v; want 0, nil", n, err)
	}
}

func TestDeleteExpiredReports(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	old := e.seed(t, model.ReportStatusExpired, 200*day, -91*day)
	inGrace := e.seed(t, model.ReportStatusExpired, 150*day, -89*day)
	liveButOld := e.seed(t, model.ReportStatusCompleted, 200*day, -100*day)

	n, err := e.uc.DeleteExpiredReports(ctx)
	if err != nil {
		t.Fatalf("DeleteExpiredReports() error = %v", err)
	}
	if n != 1 {
		t.Errorf("deleted = %d, want 1", n)
	}
	if _, ok := e.status(t, old); ok {
		t.Error("report past grace period should be gone")
	}
	if _, ok := e.status(t, inGrace); !ok {
		t.Error("report inside grace period should remain")
	}
	if _, ok := e.status(t, liveButOld); !ok {
		t.Error("live report must never be hard deleted")
	}
	if len(e.store.deleted) != 1 || e.store.deleted[0] != "reports/"+old+".md" {
		t.Errorf("deleted objects = %v", e.store.deleted)
	}
}

func TestSweep(t *testing.T) {
	t.Run("runs both passes and releases the lock", func(t *testing.T) {
		e := newTestEnv(t)

		e.seed(t, model.ReportStatusCompleted, 40*day, -day)
		e.seed(t, model.ReportStatusExpired, 200*day, -100*day)
		e.seed(t, model.ReportStatusGenerating, 3*time.Hour, 29*day)
		e.seed(t, model.ReportStatusGenerating, 10*time.Minute, 29*day)

		out, err := e.uc.Sweep(context.Background())
		if err != nil {
			t.Fatalf("Sweep() error = %v", err)
		}
		if out.Expired != 1 || out.Deleted != 1 || out.StaleGenerating != 1 || out.Skipped {
			t.Errorf("out = %+v", out)
		}
		if _, held := e.redis.keys[sweepLockKey]; held {
			t.Error("lock should be released")
		}
	})

	t.Run("expired in the same sweep is not deleted", func(t *testing.T) {
		e := newTestEnv(t)
		id := e.seed(t, model.ReportStatusCompleted, 200*day, -100*day)

		out, err := e.uc.Sweep(context.Background())
		if err != nil {
			t.Fatalf("Sweep() error = %v", err)
		}
		if out.Expired != 1 || out.Deleted != 0 {
			t.Errorf("out = %+v", out)
		}
		if st, ok := e.status(t, id); !ok || st != model.ReportStatusExpired {
			t.Errorf("status = %s, exists = %v", st, ok)
		}
	})

	t.Run("skips when another sweep holds the lock", func(t *testing.T) {
		e := newTestEnv(t)
		e.redis.keys[sweepLockKey] = "other-replica"
		id := e.seed(t, model.ReportStatusCompleted, 40*day, -day)

		out, err := e.uc.Sweep(context.Background())
		if err != nil {
			t.Fatalf("Sweep() error = %v", err)
		}
		if !out.Skipped {
			t.Error("expected skipped sweep")
		}
		if st, _ := e.status(t, id); st != model.ReportStatusCompleted {
			t.Errorf("status = %s, want untouched", st)
		}
		if e.redis.keys[sweepLockKey] != "other-replica" {
			t.Error("foreign lock must not be released")
		}
	})

	t.Run("failing pass does not stop the other", func(t *testing.T) {
		e := newTestEnv(t)
		old := e.seed(t, model.ReportStatusExpired, 200*day, -100*day)
		e.uc.repo = failingRepo{PostgresRepository: e.repo}

		out, err := e.uc.Sweep(context.Background())
		if !errors.Is(err, retention.ErrExpirePassFailed) {
			t.Fatalf("Sweep() error = %v, want expire pass failure", err)
		}
		if errors.Is(err, retention.ErrDeletePassFailed) {
			t.Error("delete pass should have succeeded")
		}
		if out.Deleted != 1 {
			t.Errorf("deleted = %d, want 1", out.Deleted)
		}
		if _, ok := e.status(t, old); ok {
			t.Error("report should be deleted despite expire failure")
		}
	})

	t.Run("redis failure does not block the sweep", func(t *testing.T) {
		e := newTestEnv(t)
		e.redis.setErr = errors.New("redis down")
		id := e.seed(t, model.ReportStatusCompleted, 40*day, -day)

		out, err := e.uc.Sweep(context.Background())
		if err != nil {
			t.Fatalf("Sweep() error = %v", err)
		}
		if out.Skipped || out.Expired != 1 {
			t.Errorf("out = %+v", out)
		}
		if st, _ := e.status(t, id); st != model.ReportStatusExpired {
			t.Errorf("status = %s, want expired", st)
		}
	})

	t.Run("without redis", func(t *testing.T) {
		e := newTestEnv(t)
		e.uc.redis = nil
		e.seed(t, model.ReportStatusPending, 40*day, -day)
		e.seed(t, model.ReportStatusCompleted, 40*day, -day)

		out, err := e.uc.Sweep(context.Background())
		if err != nil || out.Expired != 2 {
			t.Errorf("Sweep() = %+v, %v", out, err)
		}
	})
}
