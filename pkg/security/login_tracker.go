package security

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"myresume-backend/pkg/redis"

	goredis "github.com/redis/go-redis/v9"
)

// LoginTrackerConfig holds configuration for failed-login tracking
type LoginTrackerConfig struct {
	MaxAttempts   int           // Maximum failed attempts before block
	AttemptWindow time.Duration // Time window for tracking attempts
	BlockDuration time.Duration // How long to block after max attempts
	UseIPTracking bool          // Also track by IP address
}

// DefaultLoginTrackerConfig returns sensible defaults
func DefaultLoginTrackerConfig() LoginTrackerConfig {
	return LoginTrackerConfig{
		MaxAttempts:   5,
		AttemptWindow: 15 * time.Minute,
		BlockDuration: 15 * time.Minute,
		UseIPTracking: true,
	}
}

// LoginTracker tracks failed login attempts in Redis and enforces temporary
// blocks. Without Redis it fails open: logins are never blocked.
type LoginTracker struct {
	config LoginTrackerConfig
	log    *slog.Logger
}

func NewLoginTracker(config LoginTrackerConfig, log *slog.Logger) *LoginTracker {
	return &LoginTracker{config: config, log: log}
}

// Redis key patterns
const (
	failLoginUserPrefix    = "fail:login:user:"
	failLoginIPPrefix      = "fail:login:ip:"
	blockedLoginUserPrefix = "blocked:login:user:"
	blockedLoginIPPrefix   = "blocked:login:ip:"
)

// Lua script for atomic increment with TTL on first set
// KEYS[1] = counter key
// ARGV[1] = TTL in seconds
// Returns: current count after increment
const incrWithTTLScript = `
local count = redis.call('INCR', KEYS[1])
if count == 1 then
    redis.call('EXPIRE', KEYS[1], ARGV[1])
end
return count
`

// IsBlocked checks if the given email or IP is currently blocked.
func (lt *LoginTracker) IsBlocked(ctx context.Context, email, ip string) (bool, error) {
	client := redis.Client()
	if client == nil {
		return false, nil
	}

	exists, err := client.Exists(ctx, blockedLoginUserPrefix+email).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check user block: %w", err)
	}
	if exists > 0 {
		return true, nil
	}

	if lt.config.UseIPTracking && ip != "" {
		exists, err := client.Exists(ctx, blockedLoginIPPrefix+ip).Result()
		if err != nil {
			return false, fmt.Errorf("failed to check IP block: %w", err)
		}
		if exists > 0 {
			return true, nil
		}
	}

	return false, nil
}

// RecordFailedAttempt records a failed login attempt.
// Returns (blocked, currentAttempts, error).
func (lt *LoginTracker) RecordFailedAttempt(ctx context.Context, email, ip string) (bool, int, error) {
	client := redis.Client()
	if client == nil {
		return false, 0, nil
	}

	ttlSeconds := int(lt.config.AttemptWindow.Seconds())

	userCount, err := lt.atomicIncrement(ctx, client, failLoginUserPrefix+email, ttlSeconds)
	if err != nil {
		return false, 0, fmt.Errorf("failed to increment user counter: %w", err)
	}

	if lt.config.UseIPTracking && ip != "" {
		_, _ = lt.atomicIncrement(ctx, client, failLoginIPPrefix+ip, ttlSeconds) // Best effort
	}

	lt.log.Warn("failed login attempt", "email", email, "ip", ip, "attempts", userCount)

	if userCount >= lt.config.MaxAttempts {
		if err := lt.createBlock(ctx, client, email, ip); err != nil {
			return true, userCount, err
		}
		return true, userCount, nil
	}

	return false, userCount, nil
}

func (lt *LoginTracker) atomicIncrement(ctx context.Context, client *goredis.Client, key string, ttlSeconds int) (int, error) {
	result, err := client.Eval(ctx, incrWithTTLScript, []string{key}, ttlSeconds).Result()
	if err != nil {
		return 0, err
	}
	count, ok := result.(int64)
	if !ok {
		return 0, errors.New("unexpected result type from Lua script")
	}
	return int(count), nil
}

func (lt *LoginTracker) createBlock(ctx context.Context, client *goredis.Client, email, ip string) error {
	blockTTL := lt.config.BlockDuration

	if err := client.Set(ctx, blockedLoginUserPrefix+email, "1", blockTTL).Err(); err != nil {
		return fmt.Errorf("failed to set user block: %w", err)
	}

	if lt.config.UseIPTracking && ip != "" {
		if err := client.Set(ctx, blockedLoginIPPrefix+ip, "1", blockTTL).Err(); err != nil {
			// User is already blocked; IP block is best effort.
			lt.log.Warn("failed to set IP block", "error", err)
		}
	}

	lt.log.Warn("login block created", "email", email, "ip", ip, "minutes", int(blockTTL.Minutes()))
	return nil
}

// ClearAttempts clears failed login attempts on successful login.
func (lt *LoginTracker) ClearAttempts(ctx context.Context, email, ip string) error {
	client := redis.Client()
	if client == nil {
		return nil
	}

	if err := client.Del(ctx, failLoginUserPrefix+email).Err(); err != nil {
		return fmt.Errorf("failed to clear user attempts: %w", err)
	}

	if lt.config.UseIPTracking && ip != "" {
		_ = client.Del(ctx, failLoginIPPrefix+ip).Err() // Best effort
	}

	return nil
}
