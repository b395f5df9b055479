package server

import (
	"context"
	"time"

	"github.com/dmitrijs2005/credbridge/internal/logging"
)

type expiredTokenPurger interface {
	PurgeExpired(ctx context.Context) (int64, error)
}

// runSweeper purges expired access tokens every interval until ctx is done.
// Lookups already ignore expired tokens; this only reclaims rows.
func runSweeper(ctx context.Context, interval time.Duration, p expiredTokenPurger, l logging.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := p.PurgeExpired(ctx)
			if err != nil {
				l.Error(ctx, "token sweep failed", "error", err.Error())
				continue
			}
			if n > 0 {
				l.Info(ctx, "token sweep", "purged", n)
			}
		}
	}
}
