package standard

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisEpochs shares region invalidation epochs across processes and
// survives restarts. If an epoch key expires, readers observe a zero epoch
// and entries written since then stay valid.
type RedisEpochs struct {
	rdb redis.UniversalClient
	ns  string        // logical namespace to avoid collisions between facades
	ttl time.Duration // optional TTL for epoch keys; 0 disables expiry
}

var _ EpochStore = (*RedisEpochs)(nil)

// NewRedisEpochs creates a Redis-backed epoch store without TTL.
func NewRedisEpochs(client redis.UniversalClient, namespace string) *RedisEpochs {
	return &RedisEpochs{rdb: client, ns: namespace}
}

// NewRedisEpochsWithTTL creates a Redis-backed epoch store whose keys expire
// after ttl. If ttl <= 0, keys do not expire.
func NewRedisEpochsWithTTL(client redis.UniversalClient, namespace string, ttl time.Duration) *RedisEpochs {
	return &RedisEpochs{rdb: client, ns: namespace, ttl: ttl}
}

func (s *RedisEpochs) hardKey(region string) string { return "rc:epoch:h:" + s.ns + ":" + region }
func (s *RedisEpochs) softKey(region string) string { return "rc:epoch:s:" + s.ns + ":" + region }

// Snapshot fetches both epochs in one MGET round-trip. Missing keys are zero.
func (s *RedisEpochs) Snapshot(ctx context.Context, region string) (Epochs, error) {
	vals, err := s.rdb.MGet(ctx, s.hardKey(region), s.softKey(region)).Result()
	if err != nil {
		return Epochs{}, err
	}
	var e Epochs
	if e.Hard, err = parseEpoch(vals[0]); err != nil {
		return Epochs{}, fmt.Errorf("redis epoch parse (hard, %s): %w", region, err)
	}
	if e.Soft, err = parseEpoch(vals[1]); err != nil {
		return Epochs{}, fmt.Errorf("redis epoch parse (soft, %s): %w", region, err)
	}
	return e, nil
}

func (s *RedisEpochs) Bump(ctx context.Context, region string, hard bool) error {
	k := s.softKey(region)
	if hard {
		k = s.hardKey(region)
	}
	ttl := s.ttl
	if ttl < 0 {
		ttl = 0
	}
	return s.rdb.Set(ctx, k, strconv.FormatInt(time.Now().UnixNano(), 10), ttl).Err()
}

// Close closes the underlying Redis client.
func (s *RedisEpochs) Close(context.Context) error { return s.rdb.Close() }

func parseEpoch(v any) (int64, error) {
	switch vv := v.(type) {
	case nil:
		return 0, nil
	case string:
		return strconv.ParseInt(vv, 10, 64)
	case []byte:
		return strconv.ParseInt(string(vv), 10, 64)
	default:
		return strconv.ParseInt(fmt.Sprint(vv), 10, 64)
	}
}
