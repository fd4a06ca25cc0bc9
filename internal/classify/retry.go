package classify

import (
	"context"
	"errors"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dhg-hub/drivemeta/internal/cmderr"
	"github.com/dhg-hub/drivemeta/models"
)

const (
	maxRetries  = 3
	baseBackoff = time.Second
)

// FallbackConfidence is recorded on locally synthesized classifications.
const FallbackConfidence = 0.1

// Retrying decorates a Classifier with bounded retry: up to 3 retries
// after the initial call, backing off 1s/2s/4s before each, on rate-limit
// or connection-reset errors. After exhausting retries it returns a
// low-confidence fallback classification instead of an error, so a long
// classification pass never aborts on one flaky call.
type Retrying struct {
	next Classifier
	log  *zap.Logger

	// sleep is swapped out in tests.
	sleep func(ctx context.Context, d time.Duration) error
}

func NewRetrying(next Classifier, log *zap.Logger) *Retrying {
	return &Retrying{next: next, log: log, sleep: sleepCtx}
}

func (r *Retrying) Classify(ctx context.Context, content string) (models.Classification, error) {
	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			backoff := baseBackoff << (attempt - 1)
			r.log.Warn("classification failed, retrying",
				zap.Int("retry", attempt),
				zap.Duration("backoff", backoff),
				zap.Error(lastErr))
			if serr := r.sleep(ctx, backoff); serr != nil {
				return models.Classification{}, serr
			}
		}
		result, err := r.next.Classify(ctx, content)
		if err == nil {
			return result, nil
		}
		if !Retryable(err) {
			return models.Classification{}, err
		}
		lastErr = err
	}

	r.log.Warn("classification retries exhausted, using fallback",
		zap.Error(lastErr))
	return Fallback(), nil
}

// Retryable reports whether err is a transient rate-limit or
// connection-reset failure.
func Retryable(err error) bool {
	var rle *RateLimitError
	if errors.As(err, &rle) {
		return true
	}
	if errors.Is(err, syscall.ECONNRESET) {
		return true
	}
	var ce *cmderr.ConnectionError
	if errors.As(err, &ce) {
		msg := err.Error()
		return strings.Contains(msg, "connection reset") ||
			strings.Contains(msg, "rate limit") ||
			strings.Contains(msg, "429")
	}
	return false
}

// Fallback synthesizes the low-confidence classification recorded when
// the external service could not be reached.
func Fallback() models.Classification {
	return models.Classification{
		ID:             uuid.NewString(),
		DocumentTypeID: "",
		Label:          "unclassified",
		Confidence:     FallbackConfidence,
		Fallback:       true,
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
