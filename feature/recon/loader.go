package recon

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"recon-engine/core/docstore"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates the reconciliation feature.
func NewFeature(store docstore.Store, logger *zap.Logger) *Feature {
	svc := NewService(store, logger)
	h := NewHandler(svc)
	return &Feature{service: svc, handler: h}
}

// Service returns the feature's service for out-of-band use (rule preloading,
// CLI tooling).
func (f *Feature) Service() *Service {
	return f.service
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "recon"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
