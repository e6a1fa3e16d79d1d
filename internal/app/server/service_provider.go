// Package server provides dependency injection and service management for the application's HTTP server.
// It initializes and provides access to services and handlers required for handling HTTP requests.
package server

import (
	"context"
	"fmt"
	"github.com/DenisKhanov/GenAPI/internal/server/api/http"
	"github.com/DenisKhanov/GenAPI/internal/server/config"
	"github.com/DenisKhanov/GenAPI/internal/server/infra/generative"
	"github.com/DenisKhanov/GenAPI/internal/server/metrics"
	"github.com/DenisKhanov/GenAPI/internal/server/repository"
	"github.com/DenisKhanov/GenAPI/internal/server/service"
	"github.com/sirupsen/logrus"
	"sync"
)

// serviceProvider manages dependency injection for components related to the HTTP server.
// It lazily initializes services and handlers as needed.
type serviceProvider struct {
	config *config.Config // Application configuration

	collector   *metrics.Collector      // Prometheus collectors
	uploadStore *repository.UploadStore // Transient upload storage
	model       service.GenerativeModel // Model Gateway shared by every request
	service     *service.Service        // Generation pipeline
	handler     *http.Handler           // The HTTP handler for routing requests

	collectorOnce sync.Once // Ensures thread-safe collector initialization
	storeOnce     sync.Once // Ensures thread-safe upload store initialization
	modelOnce     sync.Once // Ensures thread-safe gateway initialization
	serviceOnce   sync.Once // Ensures thread-safe service initialization
	handlerOnce   sync.Once // Ensures thread-safe handler initialization

	storeErr error
	modelErr error
}

// newServiceProvider creates a new instance of serviceProvider with the specified configuration.
func newServiceProvider(cfg *config.Config) *serviceProvider {
	return &serviceProvider{config: cfg}
}

// Collector returns the metrics collector.
func (s *serviceProvider) Collector() *metrics.Collector {
	s.collectorOnce.Do(func() {
		s.collector = metrics.NewCollector(s.config.MetricsNamespace)
		logrus.Info("Metrics collector initialized")
	})
	return s.collector
}

// UploadStore returns the transient upload store, creating the upload directory on first use.
func (s *serviceProvider) UploadStore() (*repository.UploadStore, error) {
	s.storeOnce.Do(func() {
		s.uploadStore, s.storeErr = repository.NewUploadStore(s.config.UploadDir, s.config.MaxUploadBytes(), s.Collector())
		if s.storeErr != nil {
			logrus.Errorf("Failed to initialize upload store: %v", s.storeErr)
			return
		}
		logrus.Infof("Upload store initialized in %s", s.config.UploadDir)
	})
	return s.uploadStore, s.storeErr
}

// GenerativeModel returns the Model Gateway selected by GENERATIVE_NAME.
func (s *serviceProvider) GenerativeModel(ctx context.Context) (service.GenerativeModel, error) {
	s.modelOnce.Do(func() {
		s.model, s.modelErr = generative.ModelFactory(
			ctx,
			s.config.GenerativeName,
			s.config.GenerativeApiKey,
			s.config.GenerativeModel,
			s.config.GenerativeMaxTokens,
			float32(s.config.GenerativeTemp),
		)
		if s.modelErr != nil {
			logrus.Errorf("Failed to initialize Generative service: %v", s.modelErr)
			s.model = nil
			return
		}
		logrus.WithFields(logrus.Fields{
			"provider": s.config.GenerativeName,
			"model":    s.config.GenerativeModel,
		}).Info("Generative model initialized")
	})
	return s.model, s.modelErr
}

// Service returns the generation service.
func (s *serviceProvider) Service(ctx context.Context) (*service.Service, error) {
	model, err := s.GenerativeModel(ctx)
	if err != nil {
		return nil, fmt.Errorf("generative model not initialized: %w", err)
	}
	store, err := s.UploadStore()
	if err != nil {
		return nil, fmt.Errorf("upload store not initialized: %w", err)
	}
	s.serviceOnce.Do(func() {
		s.service = service.NewService(model, store, s.Collector(), s.config.GenerativeTimeout)
		logrus.Info("Service initialized lazily")
	})
	return s.service, nil
}

// Handler returns the HTTP handler for the generation routes.
func (s *serviceProvider) Handler(ctx context.Context) (*http.Handler, error) {
	svc, err := s.Service(ctx)
	if err != nil {
		return nil, err
	}
	store, err := s.UploadStore()
	if err != nil {
		return nil, err
	}
	s.handlerOnce.Do(func() {
		s.handler = http.NewHandler(svc, store)
		logrus.Info("HTTP handler initialized lazily")
	})
	return s.handler, nil
}
