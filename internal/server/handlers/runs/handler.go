package runs

import (
	"errors"
	"fmt"

	"github.com/gatescan/gatescan/internal/runs"
	"github.com/go-core-fx/fiberfx/handler"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

type Handler struct {
	runsSvc *runs.Service

	logger *zap.Logger
}

func NewHandler(runsSvc *runs.Service, logger *zap.Logger) handler.Handler {
	return &Handler{
		runsSvc: runsSvc,

		logger: logger,
	}
}

// Register implements handler.Handler.
func (h *Handler) Register(r fiber.Router) {
	r = r.Group("/runs")

	r.Use(h.errorsHandler)
	r.Get("/", h.list)
	r.Get("/:id", h.get)
}

// List scan runs, optionally filtered by repository.
func (h *Handler) list(c *fiber.Ctx) error {
	var (
		results []runs.ScanRun
		err     error
	)

	if repository := c.Query("repository"); repository != "" {
		results, err = h.runsSvc.ListByRepository(c.Context(), repository)
	} else {
		results, err = h.runsSvc.List(c.Context())
	}
	if err != nil {
		return fmt.Errorf("failed to list scan runs: %w", err)
	}

	return c.JSON(lo.Map(results, func(run runs.ScanRun, _ int) RunResponse {
		return toResponse(&run)
	}))
}

// Get a specific scan run.
func (h *Handler) get(c *fiber.Ctx) error {
	idParam := c.Params("id")
	id, err := uuid.Parse(idParam)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	run, err := h.runsSvc.Get(c.Context(), id)
	if err != nil {
		return fmt.Errorf("failed to get scan run: %w", err)
	}

	return c.JSON(toResponse(run))
}

func (h *Handler) errorsHandler(c *fiber.Ctx) error {
	err := c.Next()
	if err == nil {
		return nil
	}

	if errors.Is(err, runs.ErrNotFound) {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	return err //nolint:wrapcheck //already wrapped
}

func toResponse(run *runs.ScanRun) RunResponse {
	return RunResponse{
		ID:         run.ID,
		Repository: run.Repository,
		Branch:     run.Branch,
		ProjectKey: run.ProjectKey,
		Status:     string(run.Status),
		Error:      run.Error,
		StartedAt:  run.StartedAt,
		FinishedAt: run.FinishedAt,
		CreatedAt:  run.CreatedAt,
	}
}
