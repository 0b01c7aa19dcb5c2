package cache

import (
	"context"

	"github.com/getsentry/sentry-go"
)

const (
	OpCacheGet = "cache.get"
	OpCachePut = "cache.put"
)

// StartSpan opens a sentry cache span for key. It returns nil when no hub
// is bound to ctx, and every helper below accepts a nil span.
func StartSpan(ctx context.Context, op, key string) *sentry.Span {
	if sentry.GetHubFromContext(ctx) == nil {
		return nil
	}

	span := sentry.StartSpan(ctx, op)
	span.Description = key
	span.SetData("cache.key", []string{key})
	return span
}

// SetHit records whether a lookup was served from the cache
func SetHit(span *sentry.Span, hit bool) {
	if span != nil {
		span.SetData("cache.hit", hit)
	}
}

// FinishSpan records err, if any, and finishes the span
func FinishSpan(span *sentry.Span, err error) {
	if span == nil {
		return
	}

	if err != nil {
		span.Status = sentry.SpanStatusInternalError
		span.SetData("error", err.Error())
	} else {
		span.Status = sentry.SpanStatusOK
	}
	span.Finish()
}
