package common

import (
	"context"
	"time"
)

// WithTimeout acota una llamada al store. d <= 0 no agrega deadline.
func WithTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
