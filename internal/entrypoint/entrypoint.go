package entrypoint

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/mrlokans/userbooks/internal/config"
	http_controllers "github.com/mrlokans/userbooks/internal/http"
	"github.com/mrlokans/userbooks/internal/logging"
	"github.com/mrlokans/userbooks/internal/services"
	"github.com/mrlokans/userbooks/internal/storage"
	"github.com/mrlokans/userbooks/internal/storage/backends"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

// App is the assembled service: storage, services and router.
type App struct {
	Backend *backends.Backend
	Facade  *services.UserBooksFacade
	Books   *services.BookService
	Router  *gin.Engine
}

// Build opens the configured backend and wires the services and router on
// top of it. The caller owns app.Backend and must close it.
func Build(ctx context.Context, cfg *config.Config, logger *logrus.Logger, version string) (*App, error) {
	var (
		metrics        *storage.Metrics
		metricsHandler http.Handler
	)
	if cfg.Metrics.Enabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		metrics = storage.NewMetrics(reg)
		metricsHandler = promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
	}

	backend, err := backends.Open(ctx, cfg, metrics)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}

	users := services.NewUserService(backend.Users, logging.Component(logger, "user_service"))
	books := services.NewBookService(backend.Books, logging.Component(logger, "book_service"))
	facade := services.NewUserBooksFacade(users, books, logging.Component(logger, "user_books"))

	router := http_controllers.NewRouter(http_controllers.RouterConfig{
		UserBooks:      facade,
		Books:          books,
		Storage:        backend,
		BackendName:    string(backend.Name),
		Version:        version,
		MetricsHandler: metricsHandler,
	})

	return &App{Backend: backend, Facade: facade, Books: books, Router: router}, nil
}

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		logrus.WithField("addr", srv.Addr).Info("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Fatal("listen failed")
		}
	}()

	// kill (no param) sends SIGTERM, kill -2 sends SIGINT; SIGKILL cannot be caught
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.WithField("timeout", timeout).Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logrus.WithError(err).Error("server shutdown failed")
	}

	if onShutdown != nil {
		onShutdown(ctx)
	}

	logrus.Info("server exiting")
}

func Run(cfg *config.Config, version string) {
	logger, err := logging.New(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logger.WithFields(logrus.Fields{
		"version": version,
		"backend": cfg.Storage.Backend,
	}).Info("starting userbooks")

	app, err := Build(context.Background(), cfg, logger, version)
	if err != nil {
		logger.WithError(err).Fatal("failed to initialize")
	}

	onShutdown := func(ctx context.Context) {
		if err := app.Backend.Close(); err != nil {
			logger.WithError(err).Error("error closing storage")
		}
	}

	Serve(app.Router, cfg, onShutdown)
}
