// Package ratelimit provides per-client, per-endpoint rate limiting for the HTTP server.
package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Info contains information about rate limit status.
type Info struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetTime  time.Time
	RetryAfter time.Duration
}

type entry struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// Limiter manages one token-bucket limiter per client and endpoint.
type Limiter struct {
	config *Config
	now    func() time.Time

	mu      sync.Mutex
	entries map[string]*entry

	cleanupTicker *time.Ticker
	cleanupStop   chan struct{}
	stopOnce      sync.Once
}

// NewLimiter creates a new rate limiter with the given configuration.
// A nil config selects DefaultConfig.
func NewLimiter(config *Config) *Limiter {
	if config == nil {
		config = DefaultConfig()
	}

	l := &Limiter{
		config:  config,
		now:     time.Now,
		entries: make(map[string]*entry),
	}

	if config.Enabled && config.CleanupInterval > 0 {
		l.cleanupTicker = time.NewTicker(config.CleanupInterval)
		l.cleanupStop = make(chan struct{})
		go l.cleanup()
	}

	return l
}

// Allow reports whether a request from clientID to endpoint may proceed.
func (l *Limiter) Allow(clientID, endpoint, method string) (bool, Info) {
	if !l.config.Enabled || l.config.Whitelist[clientID] {
		return true, Info{Allowed: true}
	}
	if l.config.Blacklist[clientID] {
		return false, Info{Allowed: false}
	}

	cfg := MatchEndpoint(endpoint, method, l.config.EndpointConfigs)
	if cfg == nil {
		cfg = &EndpointConfig{
			Path:   endpoint,
			Limit:  l.config.DefaultLimit,
			Window: l.config.DefaultWindow,
		}
	}
	if cfg.Limit <= 0 || cfg.Window <= 0 {
		return true, Info{Allowed: true}
	}

	burst := cfg.Burst
	if burst <= 0 {
		burst = cfg.Limit
	}

	// Prefix-matched endpoints share one limiter per client
	key := clientID + ":" + method + ":" + cfg.Path
	now := l.now()
	lim := l.limiterFor(key, rate.Every(cfg.Window/time.Duration(cfg.Limit)), burst, now)

	info := Info{Limit: cfg.Limit}
	res := lim.ReserveN(now, 1)
	if delay := res.DelayFrom(now); delay > 0 {
		res.CancelAt(now)
		info.RetryAfter = delay
	} else {
		info.Allowed = true
	}

	tokens := lim.TokensAt(now)
	info.Remaining = max(int(tokens), 0)
	if missing := float64(burst) - tokens; missing > 0 {
		info.ResetTime = now.Add(time.Duration(missing / float64(lim.Limit()) * float64(time.Second)))
	} else {
		info.ResetTime = now
	}

	return info.Allowed, info
}

func (l *Limiter) limiterFor(key string, r rate.Limit, burst int, now time.Time) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.entries[key]
	if !ok {
		e = &entry{limiter: rate.NewLimiter(r, burst)}
		l.entries[key] = e
	}
	e.lastAccess = now
	return e.limiter
}

func (l *Limiter) cleanup() {
	for {
		select {
		case <-l.cleanupTicker.C:
			l.cleanupIdle()
		case <-l.cleanupStop:
			return
		}
	}
}

// cleanupIdle drops limiters that have not been used within IdleTTL.
func (l *Limiter) cleanupIdle() {
	ttl := l.config.IdleTTL
	if ttl <= 0 {
		ttl = time.Hour
	}
	cutoff := l.now().Add(-ttl)

	l.mu.Lock()
	defer l.mu.Unlock()
	for key, e := range l.entries {
		if e.lastAccess.Before(cutoff) {
			delete(l.entries, key)
		}
	}
}

// size returns the number of tracked limiters
func (l *Limiter) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// Stop stops the cleanup goroutine. It is safe to call more than once.
func (l *Limiter) Stop() {
	l.stopOnce.Do(func() {
		if l.cleanupTicker != nil {
			l.cleanupTicker.Stop()
		}
		if l.cleanupStop != nil {
			close(l.cleanupStop)
		}
	})
}
