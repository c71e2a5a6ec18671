package usecase

import (
	"context"

	"github.com/google/uuid"
)

func newLockToken() string {
	return uuid.NewString()
}

// acquireLock takes the sweep lock. Without redis, or when redis fails, the sweep
// runs unlocked: both passes are idempotent set statements.
func (uc *implUseCase) acquireLock(ctx context.Context) (release func(), acquired bool) {
	noop := func() {}
	if uc.redis == nil {
		return noop, true
	}

	token := uc.lockToken()
	ok, err := uc.redis.SetNX(ctx, sweepLockKey, token, uc.config.LockTTL)
	if err != nil {
		uc.l.Warnf(ctx, "retention.usecase.acquireLock: SetNX failed, sweeping without lock: %v", err)
		return noop, true
	}
	if !ok {
		return nil, false
	}

	release = func() {
		// The sweep context may be cancelled by now.
		rctx := context.WithoutCancel(ctx)
		if _, err := uc.redis.DeleteIfValue(rctx, sweepLockKey, token); err != nil {
			uc.l.Warnf(rctx, "retention.usecase.acquireLock: Failed to release lock: %v", err)
		}
	}
	return release, true
}
