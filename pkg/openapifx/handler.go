package openapifx

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/swaggo/swag"
	"go.uber.org/zap"
)

type Handler struct {
	config Config
	spec   *swag.Spec

	logger *zap.Logger
}

func New(config Config, spec *swag.Spec, logger *zap.Logger) *Handler {
	if spec != nil {
		if config.PublicHost != "" {
			spec.Host = config.PublicHost
		}
		if config.PublicPath != "" {
			spec.BasePath = config.PublicPath
		}
	}

	return &Handler{
		config: config,
		spec:   spec,

		logger: logger,
	}
}

// Register serves the swagger UI and the generated document on r.
func (h *Handler) Register(r fiber.Router) {
	if !h.config.Enabled || h.spec == nil {
		h.logger.Info("openapi docs disabled")
		return
	}

	r.Get("/*", swagger.New(swagger.Config{
		InstanceName: h.spec.InstanceName(),
		Title:        h.spec.Title,
		DeepLinking:  true,
	}))
}
