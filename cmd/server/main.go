package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	mongodriver "go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/dmitrymomot/courseapi/modules/course"
	"github.com/dmitrymomot/courseapi/pkg/async"
	"github.com/dmitrymomot/courseapi/pkg/config"
	"github.com/dmitrymomot/courseapi/pkg/httpserver"
	"github.com/dmitrymomot/courseapi/pkg/logger"
	"github.com/dmitrymomot/courseapi/pkg/metrics"
	pkgmongo "github.com/dmitrymomot/courseapi/pkg/mongo"
	"github.com/dmitrymomot/courseapi/pkg/redis"
	"github.com/dmitrymomot/courseapi/pkg/requestid"
)

const closeTimeout = 5 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Stdout)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

// run serves until ctx is cancelled or startup fails. Any return cancels the
// context handed to the connection supervisor.
func run(ctx context.Context, logOutput io.Writer) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var app appConfig
	if err := config.Load(&app); err != nil {
		slog.Error("Failed to load configuration", logger.Error(err))
		return err
	}

	log := logger.New(
		logger.WithEnvironment(app.Env, app.Name),
		logger.WithOutput(logOutput),
		logger.WithContextExtractors(requestid.LoggerExtractor()),
	)
	logger.SetAsDefault(log)

	var (
		mongoCfg pkgmongo.Config
		httpCfg  httpserver.Config
		redisCfg redis.Config
	)
	if err := loadConfig(&mongoCfg, &httpCfg, &redisCfg); err != nil {
		log.Error("Invalid configuration", logger.Error(err))
		return err
	}

	m := metrics.New("courseapi")

	sup := pkgmongo.NewSupervisor(mongoCfg,
		pkgmongo.WithLogger(log),
		pkgmongo.WithAttemptHook(m.ObserveConnectAttempt),
	)
	connected := sup.ConnectWithRetry(ctx)
	defer closeMongo(sup, log)

	mongoStore := course.NewMongoStore(sup)
	go ensureIndexes(ctx, connected, mongoStore, log)

	var store course.Store = mongoStore
	if redisCfg.Enabled() {
		client, err := redis.Connect(ctx, redisCfg)
		if err != nil {
			log.Warn("Course cache disabled", logger.Error(err))
		} else {
			defer client.Close()
			store = course.NewCachedStore(store, client, app.CourseCacheTTL, log)
			log.Info("Course cache enabled", slog.Duration("ttl", app.CourseCacheTTL))
		}
	}

	router := newRouter(routerDeps{
		store:          store,
		metrics:        m,
		readiness:      []func(context.Context) error{sup.Healthcheck()},
		allowedOrigins: app.AllowedOrigins,
		log:            log,
	})

	srv := httpserver.NewFromConfig(httpCfg,
		httpserver.WithLogger(log),
		httpserver.WithStartHook(logListening),
		httpserver.WithStopHook(func(l *slog.Logger) { l.Info("Server stopped") }),
	)
	if err := srv.Run(ctx, router); err != nil {
		log.Error("Server failed", logger.Error(err))
		return err
	}
	return nil
}

func loadConfig(mongoCfg *pkgmongo.Config, httpCfg *httpserver.Config, redisCfg *redis.Config) error {
	if err := config.Load(mongoCfg); err != nil {
		return err
	}
	if err := mongoCfg.Validate(); err != nil {
		return err
	}
	if err := config.Load(httpCfg); err != nil {
		return err
	}
	return config.Load(redisCfg)
}

func logListening(log *slog.Logger, addr net.Addr) {
	port := 0
	if tcp, ok := addr.(*net.TCPAddr); ok {
		port = tcp.Port
	}
	log.Info(fmt.Sprintf("Server running on port %d", port), logger.Port(port))
}

// ensureIndexes waits for the first connection without blocking startup.
func ensureIndexes(ctx context.Context, connected *async.Future[*mongodriver.Client], store *course.MongoStore, log *slog.Logger) {
	if _, err := connected.AwaitContext(ctx); err != nil {
		return
	}
	if err := store.EnsureIndexes(ctx); err != nil {
		log.Warn("Failed to create course indexes", logger.Error(err))
	}
}

func closeMongo(sup *pkgmongo.Supervisor, log *slog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()
	if err := sup.Close(ctx); err != nil {
		log.Warn("Failed to disconnect from MongoDB", logger.Error(err))
	}
}
