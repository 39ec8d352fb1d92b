package deps

import (
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/linkbridge/internal/dispatch"
	"github.com/MrSnakeDoc/linkbridge/internal/logger"
	"github.com/MrSnakeDoc/linkbridge/internal/settings"
)

type Deps struct {
	Logger          logger.Logger
	StartTime       time.Time
	Version         string
	Commit          string
	BuildDate       string
	GoVersion       string
	TimeNow         func() time.Time    // for testing, defaults to time.Now
	Dispatcher      dispatch.Dispatcher // backend serving the Shaarli capabilities
	Instance        settings.Instance   // metadata reported by /api/v1/info
	AlwaysReturn404 bool                // unsupported requests: true => 404 page, false => empty 200
	BasePath        string              // script path appended to header_link
	AllowedHosts    []string            // Host headers allowed to reach the API
	AllowedCIDRS    []string            // IPs allowed to access healthz/readyz endpoints
	TrustProxy      bool                // true if running behind a trusted reverse proxy (e.g., cloudflared)
	RedisClient     *redis.Client       // tag cache connection, nil when the cache is disabled
	RateLimitBurst  int                 // per-IP burst on the API, 0 disables rate limiting
	RateLimitPerMin int                 // per-IP refill per minute
	RequestTimeout  time.Duration       // per-request handler timeout
}

// Now returns the current time through TimeNow when set.
func (d Deps) Now() time.Time {
	if d.TimeNow != nil {
		return d.TimeNow()
	}
	return time.Now()
}
