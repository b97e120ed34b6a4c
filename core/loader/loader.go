package loader

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature is a self-contained application module that registers its own
// routes.
type Feature interface {
	// Name returns the feature's identifier, used for logging.
	Name() string
	// IsEnabled reports whether the feature should be loaded.
	IsEnabled() bool
	// Load registers the feature's routes on the given router.
	Load(app fiber.Router) error
}

// Manager holds the registry of available features.
type Manager struct {
	features []Feature
	log      *zap.Logger
}

// NewManager creates an empty feature manager.
func NewManager(log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{log: log}
}

// Register adds a feature to the registry. Registration order is load order.
func (m *Manager) Register(f Feature) {
	m.features = append(m.features, f)
}

// LoadAll loads every enabled feature. The first failure aborts loading.
func (m *Manager) LoadAll(app fiber.Router) error {
	for _, f := range m.features {
		if !f.IsEnabled() {
			m.log.Info("Feature disabled, skipping", zap.String("feature", f.Name()))
			continue
		}

		if err := f.Load(app); err != nil {
			return fmt.Errorf("failed to load feature %s: %w", f.Name(), err)
		}
		m.log.Info("Feature loaded", zap.String("feature", f.Name()))
	}
	return nil
}
