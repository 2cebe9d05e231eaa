package files

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature registers the file serving routes.
type Feature struct {
	service *Service
}

// NewFeature creates the files feature over backend.
// backend must already be ensured.
func NewFeature(backend Backend, logger *zap.Logger) *Feature {
	return &Feature{service: NewService(backend, logger)}
}

func (f *Feature) Name() string {
	return "files"
}

func (f *Feature) IsEnabled() bool {
	return true
}

func (f *Feature) Load(app fiber.Router) error {
	NewHandler(f.service).RegisterRoutes(app)
	return nil
}
