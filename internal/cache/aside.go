package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"ripple/internal/middleware"
)

// Aside implements the cache-aside pattern. It fills dest from the cache when
// the key is present, otherwise calls load and stores the result with the
// given TTL. When Redis is unavailable it degrades to calling load directly.
// Cache failures are logged and never surfaced to the caller.
func Aside(ctx context.Context, key string, dest interface{}, ttl time.Duration, load func() error) error {
	if client != nil {
		raw, err := client.Get(ctx, key).Bytes()
		if err == nil {
			if unmarshalErr := json.Unmarshal(raw, dest); unmarshalErr == nil {
				return nil
			}
			// Corrupt entry; drop it and fall through to load
			client.Del(ctx, key)
		}
	}

	if err := load(); err != nil {
		return err
	}

	if client != nil {
		raw, err := json.Marshal(dest)
		if err == nil {
			if setErr := client.Set(ctx, key, raw, ttl).Err(); setErr != nil {
				middleware.Logger.WarnContext(ctx, "cache set failed",
					slog.String("key", key),
					slog.String("error", setErr.Error()),
				)
			}
		}
	}

	return nil
}
