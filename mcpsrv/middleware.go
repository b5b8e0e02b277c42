package mcpsrv

import (
	"crypto/subtle"
	"net/http"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/nordiskauto/bilvisning/internal/config"
	"github.com/nordiskauto/bilvisning/internal/logging"
)

const (
	defaultRPS   = 2
	defaultBurst = 5
)

// guard inspects a request and writes a rejection when it fails. It reports
// whether the request may continue.
type guard func(w http.ResponseWriter, r *http.Request) bool

// WrapMCPHandler runs the origin, rate and API key guards in that order
// before handing the request to next.
func WrapMCPHandler(next http.Handler, cfg config.MCP, logger logging.Logger) http.Handler {
	logger = logging.OrNoop(logger)
	rps, burst := cfg.RPS, cfg.Burst
	if rps <= 0 {
		rps = defaultRPS
	}
	if burst <= 0 {
		burst = defaultBurst
	}

	guards := []guard{
		originGuard(cfg.AllowedOrigins, logger),
		rateGuard(newTokenBucket(rps, burst), logger),
	}
	if cfg.APIKey != "" {
		guards = append(guards, keyGuard(cfg.APIKey, logger))
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for _, g := range guards {
			if !g(w, r) {
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

// originGuard lets requests without an Origin through. Browser requests must
// come from an allowlisted origin; their preflights are answered here.
func originGuard(allowed []string, logger logging.Logger) guard {
	return func(w http.ResponseWriter, r *http.Request) bool {
		origin := strings.TrimSpace(r.Header.Get("Origin"))
		if origin == "" {
			return true
		}
		if !slices.Contains(allowed, origin) {
			logger.Warn("rejected origin", "origin", origin, "remote", r.RemoteAddr)
			http.Error(w, "origin not allowed", http.StatusForbidden)
			return false
		}
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", origin)
		h.Set("Vary", "Origin")
		h.Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "Content-Type, Accept, Authorization, X-API-Key, Mcp-Protocol-Version, Mcp-Session-Id")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return false
		}
		return true
	}
}

func rateGuard(bucket *tokenBucket, logger logging.Logger) guard {
	return func(w http.ResponseWriter, r *http.Request) bool {
		if bucket.Allow() {
			return true
		}
		logger.Debug("rate limited", "remote", r.RemoteAddr)
		http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
		return false
	}
}

func keyGuard(key string, logger logging.Logger) guard {
	want := []byte(key)
	return func(w http.ResponseWriter, r *http.Request) bool {
		got := []byte(requestKey(r))
		if len(got) == len(want) && subtle.ConstantTimeCompare(got, want) == 1 {
			return true
		}
		logger.Warn("rejected api key", "remote", r.RemoteAddr)
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return false
	}
}

// requestKey extracts the caller's API key: X-API-Key wins, otherwise a
// single-token "Bearer" Authorization value. It returns "" when neither is
// usable.
func requestKey(r *http.Request) string {
	if key := strings.TrimSpace(r.Header.Get("X-API-Key")); key != "" {
		return key
	}
	fields := strings.Fields(r.Header.Get("Authorization"))
	if len(fields) != 2 || !strings.EqualFold(fields[0], "Bearer") {
		return ""
	}
	return fields[1]
}

// tokenBucket is one limiter shared by every caller.
type tokenBucket struct {
	mu     sync.Mutex
	rate   float64
	burst  float64
	tokens float64
	last   time.Time
	now    func() time.Time
}

func newTokenBucket(rate float64, burst int) *tokenBucket {
	b := &tokenBucket{rate: rate, burst: float64(burst), tokens: float64(burst), now: time.Now}
	b.last = b.now()
	return b
}

// Allow refills by elapsed time, capped at burst, and spends one token.
func (b *tokenBucket) Allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.now()
	b.tokens = min(b.burst, b.tokens+b.rate*now.Sub(b.last).Seconds())
	b.last = now
	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}
