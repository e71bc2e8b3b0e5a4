package ratelimit

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenBucket_AllowAndExhaust(t *testing.T) {
	bucket := newTokenBucket(10, 1.0)

	for i := 0; i < 10; i++ {
		assert.True(t, bucket.allow(), "request %d should pass", i+1)
	}
	assert.False(t, bucket.allow(), "bucket should be empty")
}

func TestTokenBucket_Refill(t *testing.T) {
	bucket := newTokenBucket(2, 1.0)
	bucket.allow()
	bucket.allow()
	require.False(t, bucket.allow())

	time.Sleep(1100 * time.Millisecond)

	assert.True(t, bucket.allow(), "one token should have refilled")
	assert.False(t, bucket.allow())
}

func TestTokenBucket_GetStatus(t *testing.T) {
	bucket := newTokenBucket(10, 1.0)
	for i := 0; i < 5; i++ {
		bucket.allow()
	}

	remaining, resetTime := bucket.getStatus()
	assert.Equal(t, 5, remaining)
	assert.True(t, resetTime.After(time.Now()))
}

func TestLimiter_DefaultLimit(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  10,
		DefaultWindow: time.Minute,
	})
	defer limiter.Stop()

	for i := 0; i < 10; i++ {
		allowed, info := limiter.Allow("203.0.113.7", "/jobs", "GET")
		require.True(t, allowed, "request %d should pass", i+1)
		assert.Equal(t, 10, info.Limit)
		assert.Equal(t, 9-i, info.Remaining)
	}

	allowed, info := limiter.Allow("203.0.113.7", "/jobs", "GET")
	assert.False(t, allowed)
	assert.Equal(t, 0, info.Remaining)
	assert.Greater(t, info.RetryAfter, time.Duration(0))
}

func TestLimiter_UploadTier(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  1000,
		DefaultWindow: time.Minute,
		EndpointConfigs: []EndpointConfig{
			{Path: "/resumes", Method: "POST", Limit: 3, Window: time.Hour, Burst: 3},
		},
	})
	defer limiter.Stop()

	// The upload tier caps bursts independently of the default limit.
	for i := 0; i < 3; i++ {
		allowed, info := limiter.Allow("203.0.113.7", "/resumes", "POST")
		require.True(t, allowed, "upload %d should pass", i+1)
		assert.Equal(t, 3, info.Limit)
	}
	allowed, _ := limiter.Allow("203.0.113.7", "/resumes", "POST")
	assert.False(t, allowed)

	// Reads on other endpoints stay on the default limit.
	allowed, info := limiter.Allow("203.0.113.7", "/jobs", "GET")
	assert.True(t, allowed)
	assert.Equal(t, 1000, info.Limit)
}

func TestLimiter_Whitelist(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  1,
		DefaultWindow: time.Minute,
		Whitelist:     map[string]bool{"10.0.0.1": true},
	})
	defer limiter.Stop()

	for i := 0; i < 50; i++ {
		allowed, info := limiter.Allow("10.0.0.1", "/jobs", "GET")
		require.True(t, allowed)
		assert.Equal(t, 0, info.Limit)
	}
}

func TestLimiter_Blacklist(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  1000,
		DefaultWindow: time.Minute,
		Blacklist:     map[string]bool{"198.51.100.9": true},
	})
	defer limiter.Stop()

	allowed, _ := limiter.Allow("198.51.100.9", "/jobs", "GET")
	assert.False(t, allowed)
}

func TestLimiter_Disabled(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: false})
	defer limiter.Stop()

	for i := 0; i < 50; i++ {
		allowed, _ := limiter.Allow("203.0.113.7", "/auth/login", "POST")
		require.True(t, allowed)
	}
}

func TestLimiter_Concurrent(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  100,
		DefaultWindow: time.Minute,
	})
	defer limiter.Stop()

	var wg sync.WaitGroup
	var mu sync.Mutex
	allowedCount := 0

	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if allowed, _ := limiter.Allow("203.0.113.7", "/jobs", "GET"); allowed {
				mu.Lock()
				allowedCount++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, allowedCount)
}

func TestLimiter_DistinctClients(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  1,
		DefaultWindow: time.Minute,
	})
	defer limiter.Stop()

	for i := 0; i < 5; i++ {
		clientID := fmt.Sprintf("203.0.113.%d", i+1)
		allowed, _ := limiter.Allow(clientID, "/jobs", "GET")
		assert.True(t, allowed, "each client has its own bucket")
	}
}

func TestNewLimiter_NilConfig(t *testing.T) {
	limiter := NewLimiter(nil)
	defer limiter.Stop()

	allowed, info := limiter.Allow("203.0.113.7", "/jobs", "GET")
	assert.True(t, allowed)
	assert.Equal(t, 1000, info.Limit)
}

func TestMatchEndpoint(t *testing.T) {
	configs := DefaultEndpointConfigs()

	health := MatchEndpoint("/health", "GET", configs)
	require.NotNil(t, health)
	assert.Equal(t, 0, health.Limit, "health checks are unlimited")

	upload := MatchEndpoint("/resumes", "POST", configs)
	require.NotNil(t, upload)
	assert.Equal(t, time.Hour, upload.Window)

	// Prefix configs cover parameterized paths.
	apply := MatchEndpoint("/jobs/backend-engineer/apply", "POST", configs)
	require.NotNil(t, apply)
	assert.Equal(t, "/jobs/", apply.Path)

	assert.Nil(t, MatchEndpoint("/jobs", "GET", configs), "reads fall through to the default limit")
}
