package scans

import (
	"errors"
	"fmt"

	"github.com/gatescan/gatescan/internal/orchestrator"
	"github.com/gatescan/gatescan/internal/server/validation"
	"github.com/go-core-fx/fiberfx/handler"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

type Handler struct {
	orchestratorSvc *orchestrator.Service

	validator *validator.Validate
	logger    *zap.Logger
}

func NewHandler(
	orchestratorSvc *orchestrator.Service,
	validator *validator.Validate,
	logger *zap.Logger,
) handler.Handler {
	return &Handler{
		orchestratorSvc: orchestratorSvc,

		validator: validator,
		logger:    logger,
	}
}

// Register implements handler.Handler.
func (h *Handler) Register(r fiber.Router) {
	r = r.Group("/scans")

	r.Use(h.errorsHandler)
	r.Post("/", validation.DecorateWithBodyEx(h.validator, h.post))
}

// Trigger an on-demand scan of a configured repository.
func (h *Handler) post(c *fiber.Ctx, req *TriggerRequest) error {
	outcomes, err := h.orchestratorSvc.TriggerRepository(c.Context(), req.Repository, req.Branch)
	if err != nil {
		return fmt.Errorf("failed to trigger scan: %w", err)
	}

	responses := lo.Map(outcomes, func(outcome orchestrator.Outcome, _ int) OutcomeResponse {
		return OutcomeResponse{
			Repository: outcome.Repository,
			Branch:     outcome.Branch,
			ProjectKey: outcome.ProjectKey,
			Status:     string(outcome.Status),
			Error:      outcome.Error,
			RunID:      outcome.RunID,
		}
	})

	return c.JSON(responses)
}

func (h *Handler) errorsHandler(c *fiber.Ctx) error {
	err := c.Next()
	if err == nil {
		return nil
	}

	if errors.Is(err, orchestrator.ErrUnknownRepository) || errors.Is(err, orchestrator.ErrUnknownBranch) {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	return err //nolint:wrapcheck //already wrapped
}
