package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ListenPort      string        // ex: ":8000"
	ShutdownTimeout time.Duration // ex: 5s
	RequestTimeout  time.Duration // per-request handler timeout (ex: 30s)

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	AlwaysReturn404 bool   // true => 404 page for unsupported requests, false => 200 with empty body
	BasePath        string // script path appended to header_link in /api/v1/info (ex: "/shaarli")
	InstanceFile    string // optional YAML with instance settings reported by /api/v1/info

	// LinkDing backend (empty URI = stub dispatcher)
	LinkdingURI           string        // ex: "https://linkding.domain.ext/"
	LinkdingToken         string        // API token, sent as "Authorization: Token <value>"
	LinkdingTimeout       time.Duration // timeout of each outbound call (ex: 5s)
	LinkdingPageSize      int           // tags requested per page
	LinkdingMaxPages      int           // hard cap on followed "next" cursors
	LinkdingSkipTLSVerify bool          // skip certificate verification (self-signed dev setups)

	// Redis tag cache (empty addr = no cache)
	RedisAddr           string        // ex: "localhost:6379"
	RedisUser           string        // optional
	RedisPassword       string        // optional
	RedisDB             int           // Redis DB number
	RedisDT             time.Duration // Redis dial timeout (ex: 5s)
	RedisRT             time.Duration // Redis read timeout (ex: 3s)
	RedisWT             time.Duration // Redis write timeout (ex: 3s)
	RedisMaxWait        time.Duration // max wait between retries (ex: 10s)
	RedisPingTimeout    time.Duration // timeout for each ping attempt (ex: 5s)
	RedisPoolSize       int           // Redis connection pool size
	RedisConnectTimeout time.Duration // Total time to retry connecting (ex: 30s)
	RedisRetryInterval  time.Duration // Initial wait between retries (ex: 2s, grows exponentially)
	RedisWarnThreshold  int           // warn after this many attempts
	TagCacheTTL         time.Duration // lifetime of a cached tag listing
	TagWarmInterval     time.Duration // refresh period of the full tag listing, 0 disables warming

	AllowedHosts    []string // optional, restrict the API to specific Host headers
	AllowedCIDRS    []string // optional, restrict health endpoints to specific IPs/CIDRs
	TrustProxy      bool     // true => trust X-Forwarded-* headers
	RateLimitBurst  int      // per-IP burst, 0 disables rate limiting
	RateLimitPerMin int      // per-IP refill per minute
}

// UseLinkding reports whether the LinkDing adapter replaces the stub.
func (c *Config) UseLinkding() bool { return c.LinkdingURI != "" }

// UseRedis reports whether the tag cache is enabled.
func (c *Config) UseRedis() bool { return c.RedisAddr != "" }

// LoadEnvFile loads variables from a dotenv file without overriding the
// real environment. An empty path tries ".env" and ignores its absence.
func LoadEnvFile(path string) error {
	if path == "" {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load .env: %w", err)
		}
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return nil
}

func Load() *Config {
	cfg := &Config{
		// Server settings
		ListenPort:      getenv("LINKBRIDGE_LISTEN_PORT", ":8000"),
		ShutdownTimeout: mustDuration("LINKBRIDGE_SHUTDOWN_TIMEOUT", 5*time.Second),
		RequestTimeout:  mustDuration("LINKBRIDGE_REQUEST_TIMEOUT", 30*time.Second),

		// Logging
		LogLevel:  getenv("LINKBRIDGE_LOG_LEVEL", "info"),
		PrettyLog: mustBool("LINKBRIDGE_PRETTY_LOG", true),

		// Emulated API
		AlwaysReturn404: looseBool("LINKBRIDGE_ALWAYS_RETURN_404", true),
		BasePath:        getenv("LINKBRIDGE_BASE_PATH", ""),
		InstanceFile:    getenv("LINKBRIDGE_INSTANCE_FILE", ""),

		// LinkDing
		LinkdingURI:           getenv("LINKBRIDGE_LINKDING_URI", ""),
		LinkdingTimeout:       mustDuration("LINKBRIDGE_LINKDING_TIMEOUT", 5*time.Second),
		LinkdingPageSize:      getenvInt("LINKBRIDGE_LINKDING_PAGE_SIZE", 1000),
		LinkdingMaxPages:      getenvInt("LINKBRIDGE_LINKDING_MAX_PAGES", 100),
		LinkdingSkipTLSVerify: mustBool("LINKBRIDGE_LINKDING_SKIP_TLS_VERIFY", false),

		// Redis settings
		RedisAddr:           getenv("LINKBRIDGE_REDIS_ADDR", ""),
		RedisUser:           getenv("LINKBRIDGE_REDIS_USERNAME", ""),
		RedisPassword:       getenv("LINKBRIDGE_REDIS_PASSWORD", ""),
		RedisDB:             getenvInt("LINKBRIDGE_REDIS_DB", 0),
		RedisDT:             mustDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:             mustDuration("REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:             mustDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisMaxWait:        mustDuration("REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:    mustDuration("REDIS_PING_TIMEOUT", 5*time.Second),
		RedisPoolSize:       getenvInt("REDIS_POOL_SIZE", 10),
		RedisConnectTimeout: mustDuration("REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:  mustDuration("REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisWarnThreshold:  getenvInt("REDIS_WARN_THRESHOLD", 3),
		TagCacheTTL:         mustDuration("LINKBRIDGE_TAG_CACHE_TTL", 5*time.Minute),
		TagWarmInterval:     mustDuration("LINKBRIDGE_TAG_WARM_INTERVAL", 0),

		// Access restrictions
		AllowedHosts:    splitAndTrim(getenv("LINKBRIDGE_ALLOWED_HOSTS", "")),
		AllowedCIDRS:    splitAndTrim(getenv("LINKBRIDGE_ALLOWED_CIDRS", "")),
		TrustProxy:      mustBool("LINKBRIDGE_TRUST_PROXY", false),
		RateLimitBurst:  getenvInt("LINKBRIDGE_RATE_LIMIT_BURST", 0),
		RateLimitPerMin: getenvInt("LINKBRIDGE_RATE_LIMIT_PER_MIN", 60),
	}

	// The token is only mandatory once a LinkDing backend is selected
	if cfg.UseLinkding() {
		cfg.LinkdingToken = requireEnv("LINKBRIDGE_LINKDING_TOKEN")
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		log.Printf("[DEBUG] cfg: %+v\n", cfg.Redacted())
	}

	return cfg
}

// Redacted returns a copy safe to print.
func (c *Config) Redacted() Config {
	cp := *c
	if cp.LinkdingToken != "" {
		cp.LinkdingToken = "***REDACTED***"
	}
	if cp.RedisPassword != "" {
		cp.RedisPassword = "***REDACTED***"
	}
	if cp.RedisUser != "" {
		cp.RedisUser = "***REDACTED***"
	}
	return cp
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func requireEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		panic(fmt.Sprintf("❌ FATAL: Required environment variable %s is not set", key))
	}
	return v
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

// looseBool treats every set value as true except "false", "off" and "0".
func looseBool(key string, def bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok {
		return def
	}
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "false", "off", "0":
		return false
	default:
		return true
	}
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.TrimSpace(part)
		// Remove surrounding quotes if present
		trimmed = strings.Trim(trimmed, `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
