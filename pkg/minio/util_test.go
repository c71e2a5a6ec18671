package minio

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/minio/minio-go/v7"
)

func TestValidateBucketName(t *testing.T) {
	tests := []struct {
		name    string
		bucket  string
		wantErr bool
	}{
		{"valid", "report-exports", false},
		{"empty", "", true},
		{"too short", "ab", true},
		{"uppercase", "Reports", true},
		{"double hyphen", "report--exports", true},
		{"leading hyphen", "-reports", true},
		{"too long", strings.Repeat("a", 64), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateBucketName(tt.bucket)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateBucketName(%q) error = %v, wantErr %v", tt.bucket, err, tt.wantErr)
			}
		})
	}
}

func TestValidateUploadRequest(t *testing.T) {
	valid := func() *UploadRequest {
		return &UploadRequest{
			BucketName:  "report-exports",
			ObjectName:  "reports/abc.md",
			Reader:      strings.NewReader("# hi"),
			Size:        4,
			ContentType: "text/markdown",
		}
	}

	if err := validateUploadRequest(valid()); err != nil {
		t.Fatalf("valid request rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*UploadRequest)
	}{
		{"no reader", func(r *UploadRequest) { r.Reader = nil }},
		{"zero size", func(r *UploadRequest) { r.Size = 0 }},
		{"no content type", func(r *UploadRequest) { r.ContentType = "" }},
		{"leading slash", func(r *UploadRequest) { r.ObjectName = "/reports/abc.md" }},
		{"trailing slash", func(r *UploadRequest) { r.ObjectName = "reports/" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid()
			tt.mutate(req)
			if err := validateUploadRequest(req); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestValidatePresignedURLRequest(t *testing.T) {
	req := &PresignedURLRequest{BucketName: "report-exports", ObjectName: "reports/a.md", Expiry: 8 * 24 * time.Hour}
	if err := validatePresignedURLRequest(req); err == nil {
		t.Error("expiry over 7 days accepted")
	}
	req.Expiry = 15 * time.Minute
	if err := validatePresignedURLRequest(req); err != nil {
		t.Errorf("valid request rejected: %v", err)
	}
}

func TestValidateConfigDefaults(t *testing.T) {
	cfg := Config{Endpoint: "minio", AccessKey: "a", SecretKey: "s"}
	if err := validateConfig(&cfg); err != nil {
		t.Fatalf("validateConfig: %v", err)
	}
	if cfg.Endpoint != "minio:9000" {
		t.Errorf("endpoint = %q", cfg.Endpoint)
	}
	if cfg.Region != DefaultRegion {
		t.Errorf("region = %q", cfg.Region)
	}
}

func TestHandleMinIOError(t *testing.T) {
	if err := handleMinIOError(nil, "op"); err != nil {
		t.Fatalf("nil error mapped to %v", err)
	}

	err := handleMinIOError(minio.ErrorResponse{Code: "NoSuchKey", Message: "gone"}, "stat_object")
	if !IsNotFound(err) {
		t.Errorf("NoSuchKey not mapped to not found: %v", err)
	}

	err = handleMinIOError(errors.New("dial tcp: refused"), "upload_file")
	var se *StorageError
	if !errors.As(err, &se) || se.Code != ErrCodeOperation {
		t.Errorf("unexpected mapping %v", err)
	}
	if IsNotFound(err) {
		t.Error("generic error reported as not found")
	}
}
