package http

import (
	"errors"

	"report-srv/internal/retention"
	pkgErrors "report-srv/pkg/errors"
)

var (
	errSweepFailed = pkgErrors.NewHTTPError(500, "Retention sweep failed")
)

func (h *handler) mapError(err error) error {
	switch {
	case errors.Is(err, retention.ErrExpirePassFailed), errors.Is(err, retention.ErrDeletePassFailed):
		return errSweepFailed
	default:
		panic(err)
	}
}
