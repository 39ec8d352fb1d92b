package app

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/linkbridge/internal/config"
	"github.com/MrSnakeDoc/linkbridge/internal/dispatch"
	"github.com/MrSnakeDoc/linkbridge/internal/httpserver"
	"github.com/MrSnakeDoc/linkbridge/internal/httpserver/deps"
	"github.com/MrSnakeDoc/linkbridge/internal/linkding"
	"github.com/MrSnakeDoc/linkbridge/internal/logger"
	"github.com/MrSnakeDoc/linkbridge/internal/redis"
	"github.com/MrSnakeDoc/linkbridge/internal/scheduler"
	"github.com/MrSnakeDoc/linkbridge/internal/settings"
	redisstore "github.com/MrSnakeDoc/linkbridge/internal/store/redis"
	"github.com/MrSnakeDoc/linkbridge/internal/version"
)

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	redisClient *goredis.Client
	dispatcher  dispatch.Dispatcher
	warmer      *scheduler.TagWarmer
}

// New wires the application from the environment. ctx bounds the startup
// work (Redis connection attempts).
func New(ctx context.Context) (*App, error) {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	instance, err := settings.NewLoader(cfg.InstanceFile).Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load instance settings: %w", err)
	}

	backend, err := newBackend(cfg, loggerClient)
	if err != nil {
		return nil, fmt.Errorf("failed to configure dispatcher: %w", err)
	}

	// The tag cache is optional: without Redis every listing hits the backend.
	var redisClient *goredis.Client
	var warmer *scheduler.TagWarmer
	dispatcher := backend
	if cfg.UseRedis() {
		redisClient, err = redis.New(ctx, redisOptions(cfg), loggerClient)
		if err != nil {
			loggerClient.Error("tag cache disabled, redis unreachable", logger.Error(err))
		} else {
			store := redisstore.NewTagStore(redisClient, redisstore.Scope(backendIdentity(backend)))
			cached := dispatch.NewCached(backend, store, cfg.TagCacheTTL, loggerClient)
			if cfg.TagWarmInterval > 0 {
				warmer = scheduler.NewTagWarmer(cached, loggerClient, cfg.TagWarmInterval)
			}
			dispatcher = cached
		}
	}

	loggerClient.Info("dispatcher selected",
		logger.String("kind", dispatch.Kind(dispatcher)),
		logger.Bool("always_return_404", cfg.AlwaysReturn404))

	d := deps.Deps{
		Logger:          loggerClient,
		StartTime:       time.Now(),
		Version:         version.Version,
		Commit:          version.Commit,
		BuildDate:       version.BuildDate,
		GoVersion:       version.GoVersion,
		TimeNow:         time.Now,
		Dispatcher:      dispatcher,
		Instance:        instance,
		AlwaysReturn404: cfg.AlwaysReturn404,
		BasePath:        cfg.BasePath,
		AllowedHosts:    cfg.AllowedHosts,
		AllowedCIDRS:    cfg.AllowedCIDRS,
		TrustProxy:      cfg.TrustProxy,
		RedisClient:     redisClient,
		RateLimitBurst:  cfg.RateLimitBurst,
		RateLimitPerMin: cfg.RateLimitPerMin,
		RequestTimeout:  cfg.RequestTimeout,
	}

	return &App{
		cfg:         cfg,
		logger:      loggerClient,
		server:      httpserver.New(cfg, loggerClient, d),
		redisClient: redisClient,
		dispatcher:  dispatcher,
		warmer:      warmer,
	}, nil
}

// newBackend selects the LinkDing adapter when a URI is configured, the stub otherwise.
func newBackend(cfg *config.Config, log logger.Logger) (dispatch.Dispatcher, error) {
	if !cfg.UseLinkding() {
		return dispatch.NewStub(), nil
	}
	return linkding.New(linkding.Options{
		BaseURI:       cfg.LinkdingURI,
		Token:         cfg.LinkdingToken,
		Timeout:       cfg.LinkdingTimeout,
		PageSize:      cfg.LinkdingPageSize,
		MaxPages:      cfg.LinkdingMaxPages,
		SkipTLSVerify: cfg.LinkdingSkipTLSVerify,
		Logger:        log.With(logger.String("component", "linkding")),
	})
}

// backendIdentity names the data set a dispatcher serves.
func backendIdentity(d dispatch.Dispatcher) string {
	if a, ok := d.(*linkding.Adapter); ok {
		return dispatch.Kind(a) + " " + a.BaseURI()
	}
	return dispatch.Kind(d)
}

func redisOptions(cfg *config.Config) redis.ConnectOptions {
	return redis.ConnectOptions{
		Addr:           cfg.RedisAddr,
		User:           cfg.RedisUser,
		Password:       cfg.RedisPassword,
		DB:             cfg.RedisDB,
		DialTimeout:    cfg.RedisDT,
		ReadTimeout:    cfg.RedisRT,
		WriteTimeout:   cfg.RedisWT,
		PoolSize:       cfg.RedisPoolSize,
		ConnectTimeout: cfg.RedisConnectTimeout,
		RetryInterval:  cfg.RedisRetryInterval,
		MaxWait:        cfg.RedisMaxWait,
		PingTimeout:    cfg.RedisPingTimeout,
		WarnThreshold:  cfg.RedisWarnThreshold,
	}
}

// Run serves until ctx is cancelled (SIGINT/SIGTERM), then shuts down gracefully.
func (a *App) Run(ctx context.Context) error {
	a.logger.Infof("🚀 Starting LinkBridge v%s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Info(version.String())

	if a.warmer != nil {
		if err := a.warmer.Start(ctx); err != nil {
			return fmt.Errorf("failed to start tag warmer: %w", err)
		}
		a.logger.Info("tag warmer started",
			logger.Duration("interval", a.cfg.TagWarmInterval))
	}

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case err := <-errCh:
		return err
	}

	if a.warmer != nil {
		a.warmer.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warnf("failed to close redis: %v", err)
		} else {
			a.logger.Info("✅ Redis closed cleanly")
		}
	}

	a.logger.Info("✅ LinkBridge stopped cleanly")
	_ = a.logger.Sync()
	return nil
}
