package mw

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/MrSnakeDoc/linkbridge/internal/utils"
)

// tooManyRequestsBody follows the Shaarli error shape.
var tooManyRequestsBody = []byte(`{"code":429,"message":"Too Many Requests"}` + "\n")

// RateLimitConfig configures RateLimit.
type RateLimitConfig struct {
	Burst      int           // requests a client may send at once; <= 0 disables limiting
	PerMinute  int           // sustained requests per client and minute
	MaxClients int           // tracked clients before idle ones are dropped; 0 means unbounded
	IdleTTL    time.Duration // a client unseen for this long is forgotten (default 15m)
	TrustProxy bool          // resolve the client IP from proxy headers
}

type clientQuota struct {
	tokens float64
	seen   time.Time
}

// quotas holds one token bucket per client IP.
type quotas struct {
	mu      sync.Mutex
	burst   float64
	perSec  float64
	maxSize int
	idle    time.Duration
	now     func() time.Time
	clients map[string]*clientQuota
	pruned  time.Time
}

func newQuotas(cfg RateLimitConfig) *quotas {
	perMinute := max(cfg.PerMinute, 1)
	idle := cfg.IdleTTL
	if idle <= 0 {
		idle = 15 * time.Minute
	}
	return &quotas{
		burst:   float64(cfg.Burst),
		perSec:  float64(perMinute) / 60,
		maxSize: cfg.MaxClients,
		idle:    idle,
		now:     time.Now,
		clients: make(map[string]*clientQuota),
		pruned:  time.Now(),
	}
}

// take spends one token of ip. When none is left it reports how many
// seconds until the next one.
func (q *quotas) take(ip string) (ok bool, left int, retryAfter int) {
	q.mu.Lock()
	defer q.mu.Unlock()

	now := q.now()
	if now.Sub(q.pruned) >= q.idle || (q.maxSize > 0 && len(q.clients) >= q.maxSize) {
		q.prune(now)
	}

	c, found := q.clients[ip]
	if !found {
		c = &clientQuota{tokens: q.burst, seen: now}
		q.clients[ip] = c
	}
	c.tokens = math.Min(q.burst, c.tokens+now.Sub(c.seen).Seconds()*q.perSec)
	c.seen = now

	if c.tokens < 1 {
		wait := int(math.Ceil((1 - c.tokens) / q.perSec))
		return false, 0, max(wait, 1)
	}
	c.tokens--
	return true, int(c.tokens), 0
}

// prune forgets clients idle for longer than q.idle.
func (q *quotas) prune(now time.Time) {
	for ip, c := range q.clients {
		if now.Sub(c.seen) > q.idle {
			delete(q.clients, ip)
		}
	}
	q.pruned = now
}

func (q *quotas) size() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.clients)
}

// RateLimit is a per-client-IP token bucket. Burst <= 0 disables it.
// Rejected requests get 429 with the Shaarli error body.
func RateLimit(cfg RateLimitConfig) func(http.Handler) http.Handler {
	if cfg.Burst <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	return rateLimit(newQuotas(cfg), cfg)
}

func rateLimit(q *quotas, cfg RateLimitConfig) func(http.Handler) http.Handler {
	limit := strconv.Itoa(cfg.Burst)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ok, left, retryAfter := q.take(utils.ClientIP(r, cfg.TrustProxy))

			h := w.Header()
			h.Set("X-RateLimit-Limit", limit)
			h.Set("X-RateLimit-Remaining", strconv.Itoa(left))
			if !ok {
				h.Set("Retry-After", strconv.Itoa(retryAfter))
				h.Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				_, _ = w.Write(tooManyRequestsBody)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
