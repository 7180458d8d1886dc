package recent

import (
	"errors"
	"fmt"

	"github.com/go-core-fx/fiberfx/handler"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/mgit-app/mgit/internal/recent"
	"github.com/mgit-app/mgit/internal/server/validation"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

type Handler struct {
	store *recent.Store

	validator *validator.Validate
	logger    *zap.Logger
}

func NewHandler(store *recent.Store, validator *validator.Validate, logger *zap.Logger) handler.Handler {
	return &Handler{
		store: store,

		validator: validator,
		logger:    logger,
	}
}

// Register implements handler.Handler.
func (h *Handler) Register(r fiber.Router) {
	r = r.Group("/recent")

	r.Use(h.errorsHandler)
	r.Get("/", validation.DecorateWithQueryEx(h.validator, h.list))
	r.Delete("/", h.delete)
}

//	@Summary		List recently opened repositories
//	@Tags			recent
//	@Produce		json
//	@Param			limit	query	int	false	"Maximum number of entries"
//	@Success		200		{array}	EntryResponse
//	@Router			/recent [get]
//
// List recently opened repositories.
func (h *Handler) list(c *fiber.Ctx, req *ListQuery) error {
	entries, err := h.store.List(c.Context(), req.Limit)
	if err != nil {
		return fmt.Errorf("failed to list recent repositories: %w", err)
	}

	return c.JSON(lo.Map(entries, func(e recent.Entry, _ int) EntryResponse {
		return EntryResponse{Path: e.Path, OpenedAt: e.OpenedAt}
	}))
}

//	@Summary		Forget a recently opened repository
//	@Tags			recent
//	@Param			path	query	string	true	"Repository path"
//	@Success		204
//	@Failure		400	{object}	fiberfx.ErrorResponse
//	@Failure		404	{object}	fiberfx.ErrorResponse
//	@Router			/recent [delete]
//
// Forget a recently opened repository.
func (h *Handler) delete(c *fiber.Ctx) error {
	path := c.Query("path")
	if path == "" {
		return fiber.NewError(fiber.StatusBadRequest, "path is required")
	}

	if err := h.store.Remove(c.Context(), path); err != nil {
		return fmt.Errorf("failed to forget repository: %w", err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) errorsHandler(c *fiber.Ctx) error {
	err := c.Next()
	if err == nil {
		return nil
	}

	if errors.Is(err, recent.ErrNotFound) {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	return err //nolint:wrapcheck //already wrapped
}
