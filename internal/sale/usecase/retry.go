package usecase

import (
	"errors"
	"math/rand"
	"time"

	"github.com/go-sql-driver/mysql"
	"go.uber.org/zap"

	apperrors "tradepost/internal/errors"
)

// Backoff intervals: attempt 1 (0ms), attempt 2 (100ms), attempt 3 (200ms).
var deadlockBackoffs = []time.Duration{0, 100 * time.Millisecond, 200 * time.Millisecond}

// withDeadlockRetry re-runs fn when MySQL aborts the transaction with a
// deadlock or lock wait timeout. Any other error returns immediately.
func withDeadlockRetry(logger *zap.Logger, maxAttempts int, fn func() error) error {
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		err := fn()
		if err == nil {
			return nil
		}

		if !isDeadlockError(err) {
			return err
		}

		if attempt < maxAttempts {
			base := deadlockBackoffs[len(deadlockBackoffs)-1]
			if attempt-1 < len(deadlockBackoffs) {
				base = deadlockBackoffs[attempt-1]
			}
			// Jitter: 80%..120% of the backoff base.
			time.Sleep(time.Duration(float64(base) * (0.8 + rand.Float64()*0.4)))
			logger.Warn("deadlock detected, retrying",
				zap.Int("attempt", attempt), zap.Int("maxAttempts", maxAttempts))
		}
	}

	return apperrors.NewDeadlockError("max retries exceeded")
}

func isDeadlockError(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == 1213 || mysqlErr.Number == 1205
	}
	return false
}
