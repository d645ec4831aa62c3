// Package cache holds the Redis ban-list: a fast-path revocation check in
// front of the token store. Redis here is an idempotent collaborator; an
// outage only costs the shortcut, the database row stays authoritative.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// Digest keys ban entries by a hash of the token string, so the raw token
// never reaches Redis and the key is derivable on both the ban and the check
// side.
func Digest(tokenString string) string {
	sum := sha256.Sum256([]byte(tokenString))
	return hex.EncodeToString(sum[:16])
}

const defaultBanTTL = 30 * time.Minute

// BanList records revoked access tokens under ban:<kind>:<account>:<token id>
// keys with a TTL no shorter than the token's remaining lifetime.
type BanList struct {
	client *redis.Client
	ttl    time.Duration
}

func NewBanList(client *redis.Client) *BanList {
	return &BanList{client: client, ttl: defaultBanTTL}
}

// NewBanListFromURL builds a ban list from a Redis URL; an empty URL disables
// the cache and every lookup reports "not banned".
func NewBanListFromURL(url string) (*BanList, error) {
	if url == "" {
		return &BanList{}, nil
	}
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}
	return NewBanList(redis.NewClient(opts)), nil
}

func (b *BanList) key(kind string, accountID int64, digest string) string {
	return fmt.Sprintf("ban:%s:%d:%s", kind, accountID, digest)
}

// Ban marks a token revoked. Write failures are logged and swallowed; the
// database ban already happened.
func (b *BanList) Ban(ctx context.Context, kind string, accountID int64, digest string, ttl time.Duration) {
	if b.client == nil {
		return
	}
	if ttl <= 0 {
		ttl = b.ttl
	}
	if err := b.client.Set(ctx, b.key(kind, accountID, digest), "banned", ttl).Err(); err != nil {
		slog.Warn("ban-list write failed", "account_id", accountID, "err", err)
	}
}

// IsBanned reports a cached revocation. Errors degrade to false so the gate
// falls through to the store lookup.
func (b *BanList) IsBanned(ctx context.Context, kind string, accountID int64, digest string) bool {
	if b.client == nil {
		return false
	}
	n, err := b.client.Exists(ctx, b.key(kind, accountID, digest)).Result()
	if err != nil {
		slog.Warn("ban-list read failed", "account_id", accountID, "err", err)
		return false
	}
	return n > 0
}

// Remove drops a ban entry, e.g. after an admin unban.
func (b *BanList) Remove(ctx context.Context, kind string, accountID int64, digest string) {
	if b.client == nil {
		return
	}
	if err := b.client.Del(ctx, b.key(kind, accountID, digest)).Err(); err != nil {
		slog.Warn("ban-list delete failed", "account_id", accountID, "err", err)
	}
}
