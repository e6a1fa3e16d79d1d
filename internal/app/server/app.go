package server

import (
	"context"
	"errors"
	"fmt"
	"github.com/DenisKhanov/GenAPI/internal/logcfg"
	"github.com/DenisKhanov/GenAPI/internal/server/api/http/middleware"
	"github.com/DenisKhanov/GenAPI/internal/server/config"
	"github.com/DenisKhanov/GenAPI/internal/server/constant"
	"github.com/gin-gonic/gin"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"io"
	"net/http"
	"os/signal"
	"syscall"
)

// App represents the application structure responsible for initializing dependencies
// and running the HTTP server.
type App struct {
	serviceProvider *serviceProvider // The service provider for dependency injection
	config          *config.Config   // The configuration object for the application
	serverHTTP      *http.Server     // The HTTP server instance
}

// NewApp creates a new instance of the application from the environment.
func NewApp(ctx context.Context) (*App, error) {
	cfg, err := config.NewConfig()
	if err != nil {
		return nil, err
	}
	if err = logcfg.RunLoggerConfig(cfg.EnvLogsLevel, cfg.EnvLogFileName); err != nil {
		return nil, err
	}
	return newApp(ctx, cfg)
}

// newApp builds the application from an already loaded configuration.
func newApp(ctx context.Context, cfg *config.Config) (*App, error) {
	app := &App{config: cfg}
	err := app.initDeps(ctx)
	if err != nil {
		return nil, err
	}
	return app, nil
}

// Run starts the HTTP server and blocks until it stops or a shutdown signal arrives.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()
	return a.runServer(ctx)
}

// initDeps initializes all dependencies required by the application.
func (a *App) initDeps(ctx context.Context) error {
	inits := []func(context.Context) error{
		a.initServiceProvider,
		a.initHTTPServer,
	}

	for _, f := range inits {
		err := f(ctx)
		if err != nil {
			return err
		}
	}

	return nil
}

// initServiceProvider initializes the service provider for dependency injection.
func (a *App) initServiceProvider(_ context.Context) error {
	a.serviceProvider = newServiceProvider(a.config)
	return nil
}

// initHTTPServer initializes the HTTP server with middleware and routes.
func (a *App) initHTTPServer(ctx context.Context) error {
	myHandler, err := a.serviceProvider.Handler(ctx)
	if err != nil {
		return err
	}
	collector := a.serviceProvider.Collector()

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	if limit := a.config.MaxUploadBytes(); limit > 0 {
		router.MaxMultipartMemory = limit
	}
	router.Use(middleware.Recovery(), middleware.LogrusLog(), middleware.Metrics(collector))

	//Public routers group
	publicRoutes := router.Group("/")
	myHandler.RegisterRoutes(publicRoutes)
	router.GET(constant.ROUTE_METRICS, gin.WrapH(collector.Handler()))

	var handler http.Handler = router
	handler = chimw.Heartbeat(constant.ROUTE_HEALTH)(handler)
	handler = chimw.RealIP(handler)
	handler = chimw.RequestID(handler)

	a.serverHTTP = &http.Server{
		Addr:    a.config.HTTPServer,
		Handler: handler,
	}

	return nil
}

// runServer starts the HTTP server with graceful shutdown once ctx is done.
func (a *App) runServer(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logrus.Infof("HTTP server started on: %s", a.config.HTTPServer)
		if err := a.serverHTTP.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logrus.Info("Shutting down HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.config.ShutdownTimeout)
		defer cancel()

		if err := a.serverHTTP.Shutdown(shutdownCtx); err != nil {
			logrus.WithError(err).Error("HTTP server shutdown error")
			return err
		}
		return nil
	})

	err := g.Wait()
	a.close()
	logrus.Info("Server exited")
	return err
}

// close releases the resources of the generative model client, if it holds any.
func (a *App) close() {
	model, err := a.serviceProvider.GenerativeModel(context.Background())
	if err != nil {
		return
	}
	if closer, ok := model.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			logrus.WithError(err).Warn("failed to close generative model client")
		}
	}
	if store, err := a.serviceProvider.UploadStore(); err == nil && store.Pending() > 0 {
		logrus.Warnf("%d transient uploads were not cleaned up in %s", store.Pending(), a.config.UploadDir)
	}
}
