package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// tokens and last refill live in one hash per key; the script refills, takes one token and reports the result
var tokenBucket = redis.NewScript(`
local key = KEYS[1]
local now_ms = tonumber(ARGV[1])
local capacity = tonumber(ARGV[2])
local interval_ms = tonumber(ARGV[3])
local ttl_seconds = tonumber(ARGV[4])

local state = redis.call('HMGET', key, 'tokens', 'last_refill_ms')
local tokens = tonumber(state[1])
local last_refill = tonumber(state[2])

if tokens == nil or last_refill == nil then
    tokens = capacity
    last_refill = now_ms
end

local elapsed = math.max(0, now_ms - last_refill)
local intervals = math.floor(elapsed / interval_ms)
if intervals > 0 then
    tokens = math.min(capacity, tokens + intervals)
    last_refill = last_refill + (intervals * interval_ms)
end

local allowed = 0
local retry_after_ms = 0
if tokens > 0 then
    allowed = 1
    tokens = tokens - 1
else
    retry_after_ms = math.max(0, interval_ms - (now_ms - last_refill))
end

redis.call('HSET', key, 'tokens', tokens, 'last_refill_ms', last_refill)
redis.call('EXPIRE', key, ttl_seconds)

return { allowed, tokens, retry_after_ms }
`)

// RedisLimiter shares buckets between every instance pointed at the same Redis.
type RedisLimiter struct {
	client   redis.Scripter
	prefix   string
	capacity int
	interval time.Duration
	ttl      time.Duration
}

func NewRedisLimiter(client redis.Scripter, prefix string, capacity int, refillEvery time.Duration) *RedisLimiter {
	ttl := time.Duration(capacity) * refillEvery
	if ttl < time.Minute {
		ttl = time.Minute
	}
	return &RedisLimiter{
		client:   client,
		prefix:   prefix,
		capacity: capacity,
		interval: refillEvery,
		ttl:      ttl,
	}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (Decision, error) {
	vals, err := tokenBucket.Run(ctx, l.client, []string{l.prefix + ":" + key},
		time.Now().UnixMilli(),
		l.capacity,
		l.interval.Milliseconds(),
		int64(l.ttl/time.Second),
	).Slice()
	if err != nil {
		return Decision{}, fmt.Errorf("run token bucket for %s: %w", key, err)
	}
	if len(vals) != 3 {
		return Decision{}, fmt.Errorf("unexpected token bucket result %v", vals)
	}

	return Decision{
		Allowed:    asInt64(vals[0]) == 1,
		Remaining:  int(asInt64(vals[1])),
		RetryAfter: time.Duration(asInt64(vals[2])) * time.Millisecond,
	}, nil
}

func asInt64(v any) int64 {
	switch t := v.(type) {
	case int64:
		return t
	case string:
		n, _ := strconv.ParseInt(t, 10, 64)
		return n
	default:
		return 0
	}
}
