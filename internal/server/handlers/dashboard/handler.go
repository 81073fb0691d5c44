package dashboard

import (
	"fmt"

	"github.com/gatescan/gatescan/internal/badges"
	"github.com/gatescan/gatescan/internal/gitsync"
	"github.com/go-core-fx/fiberfx/handler"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler serves the quality gate badge dashboard.
type Handler struct {
	badgesSvc    *badges.Service
	repositories []gitsync.RepositorySpec

	logger *zap.Logger
}

func NewHandler(
	badgesSvc *badges.Service,
	repositories []gitsync.RepositorySpec,
	logger *zap.Logger,
) handler.Handler {
	return &Handler{
		badgesSvc:    badgesSvc,
		repositories: repositories,

		logger: logger,
	}
}

// Register implements handler.Handler.
func (h *Handler) Register(r fiber.Router) {
	r.Get("/dashboard", h.get)
}

// Render the badge dashboard.
func (h *Handler) get(c *fiber.Ctx) error {
	content, err := h.badgesSvc.Render(c.Context(), h.repositories)
	if err != nil {
		return fmt.Errorf("failed to render dashboard: %w", err)
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.SendString(content)
}
