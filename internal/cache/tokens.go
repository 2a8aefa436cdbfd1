package cache

import (
	"context"
	"fmt"
	"time"
)

const blacklistKeyPrefix = "blacklist:%s"

// BlacklistToken marks a JWT ID as revoked until the token would have expired
// anyway. A nil Redis client makes revocation a no-op.
func BlacklistToken(ctx context.Context, jti string, ttl time.Duration) error {
	if client == nil || jti == "" {
		return nil
	}
	if ttl <= 0 {
		return nil
	}
	return client.Set(ctx, fmt.Sprintf(blacklistKeyPrefix, jti), "1", ttl).Err()
}

// IsTokenBlacklisted reports whether the JWT ID has been revoked.
func IsTokenBlacklisted(ctx context.Context, jti string) bool {
	if client == nil || jti == "" {
		return false
	}
	n, err := client.Exists(ctx, fmt.Sprintf(blacklistKeyPrefix, jti)).Result()
	return err == nil && n > 0
}
