package operations

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-core-fx/fiberfx/handler"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/mgit-app/mgit/internal/history"
	"github.com/mgit-app/mgit/internal/operations"
	"github.com/mgit-app/mgit/internal/server/validation"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

type Handler struct {
	historySvc *history.Service

	validator *validator.Validate
	logger    *zap.Logger
}

func NewHandler(
	historySvc *history.Service,
	validator *validator.Validate,
	logger *zap.Logger,
) handler.Handler {
	return &Handler{
		historySvc: historySvc,

		validator: validator,
		logger:    logger,
	}
}

// Register implements handler.Handler.
func (h *Handler) Register(r fiber.Router) {
	r = r.Group("/operations")

	r.Use(h.errorsHandler)
	r.Get("/", validation.DecorateWithQueryEx(h.validator, h.list))
	r.Get("/latest", h.latest)
	r.Get("/:id", h.get)
	r.Delete("/", h.clear)
}

//	@Summary		List executed operations
//	@Description	Retrieve the newest operations, optionally limited to one repository or kind
//	@Tags			operations
//	@Produce		json
//	@Param			path	query		string	false	"Repository path"
//	@Param			kind	query		string	false	"Operation kind"
//	@Param			limit	query		int		false	"Maximum number of records"
//	@Success		200		{array}		RecordResponse
//	@Failure		400		{object}	fiberfx.ErrorResponse
//	@Router			/operations [get]
//
// List executed operations.
func (h *Handler) list(c *fiber.Ctx, req *ListQuery) error {
	filter := history.Filter{RepoPath: req.Path}
	if req.Kind != "" {
		kind, err := operations.ParseKind(req.Kind)
		if err != nil {
			known := lo.Map(operations.Kinds(), func(k operations.Kind, _ int) string { return k.String() })
			return fiber.NewError(fiber.StatusBadRequest,
				fmt.Sprintf("unknown kind %q, expected one of %s", req.Kind, strings.Join(known, ", ")))
		}
		filter.Kind = kind
	}

	records, err := h.historySvc.List(c.Context(), filter, req.Limit)
	if err != nil {
		return fmt.Errorf("failed to list operations: %w", err)
	}

	return c.JSON(lo.Map(records, func(r history.Record, _ int) RecordResponse {
		return toResponse(&r)
	}))
}

//	@Summary		Get the latest operation of a repository
//	@Tags			operations
//	@Produce		json
//	@Param			path	query		string	true	"Repository path"
//	@Success		200		{object}	RecordResponse
//	@Failure		400		{object}	fiberfx.ErrorResponse
//	@Failure		404		{object}	fiberfx.ErrorResponse
//	@Router			/operations/latest [get]
//
// Get the latest operation of a repository.
func (h *Handler) latest(c *fiber.Ctx) error {
	path := c.Query("path")
	if path == "" {
		return fiber.NewError(fiber.StatusBadRequest, "path is required")
	}

	record, err := h.historySvc.Latest(c.Context(), path)
	if err != nil {
		return fmt.Errorf("failed to get latest operation: %w", err)
	}

	return c.JSON(toResponse(record))
}

//	@Summary		Get an operation
//	@Tags			operations
//	@Produce		json
//	@Param			id	path		string	true	"Job ID"
//	@Success		200	{object}	RecordResponse
//	@Failure		400	{object}	fiberfx.ErrorResponse
//	@Failure		404	{object}	fiberfx.ErrorResponse
//	@Router			/operations/{id} [get]
//
// Get an operation.
func (h *Handler) get(c *fiber.Ctx) error {
	idParam := c.Params("id")
	id, err := uuid.Parse(idParam)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	record, err := h.historySvc.Get(c.Context(), id)
	if err != nil {
		return fmt.Errorf("failed to get operation: %w", err)
	}

	return c.JSON(toResponse(record))
}

//	@Summary		Clear the history of a repository
//	@Tags			operations
//	@Produce		json
//	@Param			path	query		string	true	"Repository path"
//	@Success		200		{object}	ClearResponse
//	@Failure		400		{object}	fiberfx.ErrorResponse
//	@Router			/operations [delete]
//
// Clear the history of a repository.
func (h *Handler) clear(c *fiber.Ctx) error {
	path := c.Query("path")
	if path == "" {
		return fiber.NewError(fiber.StatusBadRequest, "path is required")
	}

	n, err := h.historySvc.Clear(c.Context(), path)
	if err != nil {
		return fmt.Errorf("failed to clear operations: %w", err)
	}

	return c.JSON(ClearResponse{Deleted: n})
}

func (h *Handler) errorsHandler(c *fiber.Ctx) error {
	err := c.Next()
	if err == nil {
		return nil
	}

	if errors.Is(err, history.ErrNotFound) {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	return err //nolint:wrapcheck //already wrapped
}

func toResponse(record *history.Record) RecordResponse {
	return RecordResponse{
		ID:          record.ID,
		RepoPath:    record.RepoPath,
		Kind:        record.Kind.String(),
		Status:      string(record.Status),
		Message:     record.Message,
		StartedAt:   record.StartedAt,
		CompletedAt: record.CompletedAt,
		DurationMs:  record.Duration().Milliseconds(),
	}
}
