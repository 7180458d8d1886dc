package panel

import (
	"errors"
	"fmt"

	"github.com/go-core-fx/fiberfx/handler"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/mgit-app/mgit/internal/git"
	"github.com/mgit-app/mgit/internal/operations"
	"github.com/mgit-app/mgit/internal/panel"
	"github.com/mgit-app/mgit/internal/server/validation"
	"go.uber.org/zap"
)

type Handler struct {
	controller *panel.Controller

	validator *validator.Validate
	logger    *zap.Logger
}

func NewHandler(controller *panel.Controller, validator *validator.Validate, logger *zap.Logger) handler.Handler {
	return &Handler{
		controller: controller,

		validator: validator,
		logger:    logger,
	}
}

// Register implements handler.Handler.
func (h *Handler) Register(r fiber.Router) {
	r = r.Group("/panel")

	r.Use(h.errorsHandler)
	r.Get("/", h.state)
	r.Post("/open", validation.DecorateWithBodyEx(h.validator, h.open))
	r.Post("/reconcile", h.reconcile)

	r.Post("/init", validation.DecorateWithBodyEx(h.validator, h.init))
	r.Post("/clone", validation.DecorateWithBodyEx(h.validator, h.clone))
	r.Post("/commit", validation.DecorateWithBodyEx(h.validator, h.commit))
	r.Post("/push", validation.DecorateWithBodyEx(h.validator, h.push))
	r.Post("/pull", h.pull)
	r.Post("/sync", validation.DecorateWithBodyEx(h.validator, h.sync))
	r.Post("/fetch", validation.DecorateWithBodyEx(h.validator, h.fetch))
	r.Post("/cancel", h.cancel)
	r.Post("/import", validation.DecorateWithBodyEx(h.validator, h.importRepo))

	r.Post("/stage", validation.DecorateWithBodyEx(h.validator, h.stage))
	r.Post("/unstage", validation.DecorateWithBodyEx(h.validator, h.unstage))
	r.Post("/discard", validation.DecorateWithBodyEx(h.validator, h.discard))

	r.Get("/branches", h.branches)
	r.Post("/branches", validation.DecorateWithBodyEx(h.validator, h.createBranch))
	r.Post("/branches/checkout", validation.DecorateWithBodyEx(h.validator, h.checkout))
	r.Post("/branches/merge", validation.DecorateWithBodyEx(h.validator, h.merge))
	r.Post("/branches/delete", validation.DecorateWithBodyEx(h.validator, h.deleteBranch))

	r.Get("/remotes", h.remotes)
	r.Post("/remotes", validation.DecorateWithBodyEx(h.validator, h.addRemote))
	r.Delete("/remotes/:name", h.removeRemote)

	r.Get("/stashes", h.stashes)
	r.Post("/stashes", validation.DecorateWithBodyEx(h.validator, h.stash))
	r.Post("/stashes/apply", validation.DecorateWithBodyEx(h.validator, h.applyStash))
	r.Post("/stashes/drop", validation.DecorateWithBodyEx(h.validator, h.dropStash))
	r.Post("/stashes/clear", validation.DecorateWithBodyEx(h.validator, h.clearStash))

	r.Get("/history", validation.DecorateWithQueryEx(h.validator, h.history))
	r.Get("/commits/:hash", h.commitDetails)
}

//	@Summary		Get panel state
//	@Description	Returns the opened repository, busy flag, available actions and changed files
//	@Tags			panel
//	@Produce		json
//	@Success		200	{object}	panel.State
//	@Router			/panel [get]
//
// Get panel state.
func (h *Handler) state(c *fiber.Ctx) error {
	return c.JSON(h.controller.State())
}

//	@Summary		Open a repository
//	@Tags			panel
//	@Accept			json
//	@Produce		json
//	@Param			request	body		OpenRequest	true	"Repository path"
//	@Success		200		{object}	panel.State
//	@Failure		400		{object}	fiberfx.ErrorResponse
//	@Failure		409		{object}	fiberfx.ErrorResponse
//	@Failure		422		{object}	fiberfx.ErrorResponse
//	@Router			/panel/open [post]
//
// Open a repository.
func (h *Handler) open(c *fiber.Ctx, req *OpenRequest) error {
	state, err := h.controller.OpenRepository(c.Context(), req.Path)
	if err != nil {
		return fmt.Errorf("failed to open repository: %w", err)
	}

	return c.JSON(state)
}

//	@Summary		Re-read repository state
//	@Tags			panel
//	@Produce		json
//	@Success		200	{object}	panel.State
//	@Router			/panel/reconcile [post]
//
// Re-read repository state.
func (h *Handler) reconcile(c *fiber.Ctx) error {
	return c.JSON(h.controller.Reconcile())
}

//	@Summary		Initialize a repository
//	@Description	Creates a repository under parent/name. With create_remote the repository is also created on the hosting provider and pushed.
//	@Tags			panel
//	@Accept			json
//	@Produce		json
//	@Param			request	body		InitRequest	true	"Init request"
//	@Success		202		{object}	JobResponse
//	@Failure		400		{object}	fiberfx.ErrorResponse
//	@Failure		409		{object}	fiberfx.ErrorResponse
//	@Failure		428		{object}	fiberfx.ErrorResponse
//	@Router			/panel/init [post]
//
// Initialize a repository.
func (h *Handler) init(c *fiber.Ctx, req *InitRequest) error {
	id, err := h.controller.InitRepository(c.Context(), panel.InitRequest{
		Parent:       req.Parent,
		Name:         req.Name,
		CreateRemote: req.CreateRemote,
		Private:      req.Private,
		Confirm:      req.Confirm,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize repository: %w", err)
	}

	return h.accepted(c, id)
}

//	@Summary		Clone a repository
//	@Tags			panel
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CloneRequest	true	"Clone request"
//	@Success		202		{object}	JobResponse
//	@Failure		400		{object}	fiberfx.ErrorResponse
//	@Failure		409		{object}	fiberfx.ErrorResponse
//	@Router			/panel/clone [post]
//
// Clone a repository.
func (h *Handler) clone(c *fiber.Ctx, req *CloneRequest) error {
	id, err := h.controller.CloneRepository(c.Context(), panel.CloneRequest{
		URL:       req.URL,
		Parent:    req.Parent,
		Name:      req.Name,
		Branch:    req.Branch,
		Depth:     req.Depth,
		Recursive: req.Recursive,
	})
	if err != nil {
		return fmt.Errorf("failed to clone repository: %w", err)
	}

	return h.accepted(c, id)
}

//	@Summary		Commit files
//	@Tags			panel
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CommitRequest	true	"Commit request"
//	@Success		202		{object}	JobResponse
//	@Failure		400		{object}	fiberfx.ErrorResponse
//	@Failure		409		{object}	fiberfx.ErrorResponse
//	@Failure		412		{object}	fiberfx.ErrorResponse
//	@Router			/panel/commit [post]
//
// Commit files.
func (h *Handler) commit(c *fiber.Ctx, req *CommitRequest) error {
	id, err := h.controller.Commit(c.Context(), req.Files, req.Message)
	if err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}

	return h.accepted(c, id)
}

//	@Summary		Push the current branch
//	@Tags			panel
//	@Accept			json
//	@Produce		json
//	@Param			request	body		PushRequest	false	"Push request"
//	@Success		202		{object}	JobResponse
//	@Failure		400		{object}	fiberfx.ErrorResponse
//	@Failure		409		{object}	fiberfx.ErrorResponse
//	@Failure		412		{object}	fiberfx.ErrorResponse
//	@Router			/panel/push [post]
//
// Push the current branch.
func (h *Handler) push(c *fiber.Ctx, req *PushRequest) error {
	id, err := h.controller.Push(c.Context(), req.Remote, req.SetUpstream)
	if err != nil {
		return fmt.Errorf("failed to push: %w", err)
	}

	return h.accepted(c, id)
}

//	@Summary		Pull the current branch
//	@Tags			panel
//	@Produce		json
//	@Success		202	{object}	JobResponse
//	@Failure		409	{object}	fiberfx.ErrorResponse
//	@Failure		412	{object}	fiberfx.ErrorResponse
//	@Router			/panel/pull [post]
//
// Pull the current branch.
func (h *Handler) pull(c *fiber.Ctx) error {
	id, err := h.controller.Pull(c.Context())
	if err != nil {
		return fmt.Errorf("failed to pull: %w", err)
	}

	return h.accepted(c, id)
}

//	@Summary		Sync the current branch
//	@Description	Fetches, pulls and pushes the current branch
//	@Tags			panel
//	@Accept			json
//	@Produce		json
//	@Param			request	body		SyncRequest	true	"Sync request"
//	@Success		202		{object}	JobResponse
//	@Failure		409		{object}	fiberfx.ErrorResponse
//	@Failure		412		{object}	fiberfx.ErrorResponse
//	@Failure		428		{object}	fiberfx.ErrorResponse
//	@Router			/panel/sync [post]
//
// Sync the current branch.
func (h *Handler) sync(c *fiber.Ctx, req *SyncRequest) error {
	id, err := h.controller.Sync(c.Context(), req.Remote, req.Confirm)
	if err != nil {
		return fmt.Errorf("failed to sync: %w", err)
	}

	return h.accepted(c, id)
}

//	@Summary		Fetch a remote
//	@Tags			panel
//	@Accept			json
//	@Produce		json
//	@Param			request	body		FetchRequest	false	"Fetch request"
//	@Success		202		{object}	JobResponse
//	@Failure		409		{object}	fiberfx.ErrorResponse
//	@Failure		412		{object}	fiberfx.ErrorResponse
//	@Router			/panel/fetch [post]
//
// Fetch a remote.
func (h *Handler) fetch(c *fiber.Ctx, req *FetchRequest) error {
	id, err := h.controller.Fetch(c.Context(), req.Remote)
	if err != nil {
		return fmt.Errorf("failed to fetch: %w", err)
	}

	return h.accepted(c, id)
}

//	@Summary		Cancel the running operation
//	@Tags			panel
//	@Produce		json
//	@Success		200	{object}	CancelResponse
//	@Router			/panel/cancel [post]
//
// Cancel the running operation.
func (h *Handler) cancel(c *fiber.Ctx) error {
	return c.JSON(CancelResponse{Cancelled: h.controller.CancelOperation()})
}

//	@Summary		Import an external repository
//	@Description	Links the repository as a remote, or pulls its history through a temporary remote
//	@Tags			panel
//	@Accept			json
//	@Produce		json
//	@Param			request	body		ImportRequest	true	"Import request"
//	@Success		202		{object}	JobResponse
//	@Success		204
//	@Failure		400		{object}	fiberfx.ErrorResponse
//	@Failure		409		{object}	fiberfx.ErrorResponse
//	@Router			/panel/import [post]
//
// Import an external repository.
func (h *Handler) importRepo(c *fiber.Ctx, req *ImportRequest) error {
	id, err := h.controller.ImportExternalRepo(c.Context(), req.URL, req.AsRemote, req.RemoteName, req.Pull)
	if err != nil {
		return fmt.Errorf("failed to import repository: %w", err)
	}
	if id == uuid.Nil {
		return c.SendStatus(fiber.StatusNoContent)
	}

	return h.accepted(c, id)
}

//	@Summary		Stage files
//	@Tags			panel
//	@Accept			json
//	@Param			request	body	PathsRequest	true	"Files"
//	@Success		204
//	@Failure		409	{object}	fiberfx.ErrorResponse
//	@Router			/panel/stage [post]
//
// Stage files.
func (h *Handler) stage(c *fiber.Ctx, req *PathsRequest) error {
	if err := h.controller.Stage(c.Context(), req.Paths); err != nil {
		return fmt.Errorf("failed to stage: %w", err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

//	@Summary		Unstage files
//	@Tags			panel
//	@Accept			json
//	@Param			request	body	PathsRequest	true	"Files"
//	@Success		204
//	@Failure		409	{object}	fiberfx.ErrorResponse
//	@Router			/panel/unstage [post]
//
// Unstage files.
func (h *Handler) unstage(c *fiber.Ctx, req *PathsRequest) error {
	if err := h.controller.Unstage(c.Context(), req.Paths); err != nil {
		return fmt.Errorf("failed to unstage: %w", err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

//	@Summary		Discard local changes
//	@Tags			panel
//	@Accept			json
//	@Param			request	body	PathsRequest	true	"Files, confirm must be set"
//	@Success		204
//	@Failure		409	{object}	fiberfx.ErrorResponse
//	@Failure		428	{object}	fiberfx.ErrorResponse
//	@Router			/panel/discard [post]
//
// Discard local changes.
func (h *Handler) discard(c *fiber.Ctx, req *PathsRequest) error {
	if err := h.controller.Discard(c.Context(), req.Paths, req.Confirm); err != nil {
		return fmt.Errorf("failed to discard: %w", err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

//	@Summary		List branches
//	@Tags			panel
//	@Produce		json
//	@Success		200	{object}	BranchesResponse
//	@Router			/panel/branches [get]
//
// List branches.
func (h *Handler) branches(c *fiber.Ctx) error {
	state := h.controller.State()

	branches := state.Branches
	if branches == nil {
		branches = []string{}
	}

	return c.JSON(BranchesResponse{Branches: branches, Current: state.Handle.Branch})
}

//	@Summary		Create a branch
//	@Tags			panel
//	@Accept			json
//	@Param			request	body	BranchRequest	true	"Branch"
//	@Success		204
//	@Failure		409	{object}	fiberfx.ErrorResponse
//	@Router			/panel/branches [post]
//
// Create a branch.
func (h *Handler) createBranch(c *fiber.Ctx, req *BranchRequest) error {
	if err := h.controller.CreateBranch(c.Context(), req.Name, req.Checkout); err != nil {
		return fmt.Errorf("failed to create branch: %w", err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

//	@Summary		Check out a branch
//	@Tags			panel
//	@Accept			json
//	@Param			request	body	BranchRequest	true	"Branch, confirm must be set"
//	@Success		204
//	@Failure		404	{object}	fiberfx.ErrorResponse
//	@Failure		428	{object}	fiberfx.ErrorResponse
//	@Router			/panel/branches/checkout [post]
//
// Check out a branch.
func (h *Handler) checkout(c *fiber.Ctx, req *BranchRequest) error {
	if err := h.controller.CheckoutBranch(c.Context(), req.Name, req.Confirm); err != nil {
		return fmt.Errorf("failed to check out branch: %w", err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

//	@Summary		Merge a branch into the current branch
//	@Tags			panel
//	@Accept			json
//	@Produce		json
//	@Param			request	body		BranchRequest	true	"Branch"
//	@Success		200		{object}	MergeResponse
//	@Failure		409		{object}	fiberfx.ErrorResponse
//	@Router			/panel/branches/merge [post]
//
// Merge a branch into the current branch.
func (h *Handler) merge(c *fiber.Ctx, req *BranchRequest) error {
	message, err := h.controller.MergeBranch(c.Context(), req.Name)
	if err != nil {
		return fmt.Errorf("failed to merge branch: %w", err)
	}

	return c.JSON(MergeResponse{Message: message})
}

//	@Summary		Delete a branch
//	@Tags			panel
//	@Accept			json
//	@Param			request	body	BranchRequest	true	"Branch, confirm must be set"
//	@Success		204
//	@Failure		409	{object}	fiberfx.ErrorResponse
//	@Failure		428	{object}	fiberfx.ErrorResponse
//	@Router			/panel/branches/delete [post]
//
// Delete a branch.
func (h *Handler) deleteBranch(c *fiber.Ctx, req *BranchRequest) error {
	if err := h.controller.DeleteBranch(c.Context(), req.Name, req.Force, req.Confirm); err != nil {
		return fmt.Errorf("failed to delete branch: %w", err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

//	@Summary		List remotes
//	@Tags			panel
//	@Produce		json
//	@Success		200	{array}		git.RemoteInfo
//	@Failure		412	{object}	fiberfx.ErrorResponse
//	@Router			/panel/remotes [get]
//
// List remotes.
func (h *Handler) remotes(c *fiber.Ctx) error {
	remotes, err := h.controller.RemoteDetails(c.Context())
	if err != nil {
		return fmt.Errorf("failed to list remotes: %w", err)
	}
	if remotes == nil {
		remotes = RemotesResponse{}
	}

	return c.JSON(remotes)
}

//	@Summary		Add a remote
//	@Tags			panel
//	@Accept			json
//	@Param			request	body	RemoteRequest	true	"Remote"
//	@Success		204
//	@Failure		400	{object}	fiberfx.ErrorResponse
//	@Failure		428	{object}	fiberfx.ErrorResponse
//	@Router			/panel/remotes [post]
//
// Add a remote.
func (h *Handler) addRemote(c *fiber.Ctx, req *RemoteRequest) error {
	if err := h.controller.AddRemote(c.Context(), req.Name, req.URL, req.Replace); err != nil {
		return fmt.Errorf("failed to add remote: %w", err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

//	@Summary		Remove a remote
//	@Tags			panel
//	@Param			name	path	string	true	"Remote name"
//	@Param			confirm	query	bool	true	"Confirmation"
//	@Success		204
//	@Failure		404	{object}	fiberfx.ErrorResponse
//	@Failure		428	{object}	fiberfx.ErrorResponse
//	@Router			/panel/remotes/{name} [delete]
//
// Remove a remote.
func (h *Handler) removeRemote(c *fiber.Ctx) error {
	if err := h.controller.RemoveRemote(c.Context(), c.Params("name"), c.QueryBool("confirm")); err != nil {
		return fmt.Errorf("failed to remove remote: %w", err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

//	@Summary		List stash entries
//	@Tags			panel
//	@Produce		json
//	@Success		200	{array}	string
//	@Router			/panel/stashes [get]
//
// List stash entries.
func (h *Handler) stashes(c *fiber.Ctx) error {
	stashes, err := h.controller.Stashes(c.Context())
	if err != nil {
		return fmt.Errorf("failed to list stashes: %w", err)
	}
	if stashes == nil {
		stashes = []string{}
	}

	return c.JSON(stashes)
}

//	@Summary		Stash local changes
//	@Tags			panel
//	@Accept			json
//	@Param			request	body	StashRequest	false	"Stash message"
//	@Success		204
//	@Failure		409	{object}	fiberfx.ErrorResponse
//	@Router			/panel/stashes [post]
//
// Stash local changes.
func (h *Handler) stash(c *fiber.Ctx, req *StashRequest) error {
	if err := h.controller.Stash(c.Context(), req.Message); err != nil {
		return fmt.Errorf("failed to stash: %w", err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

//	@Summary		Apply a stash entry
//	@Tags			panel
//	@Accept			json
//	@Param			request	body	StashRequest	true	"Stash id"
//	@Success		204
//	@Failure		404	{object}	fiberfx.ErrorResponse
//	@Router			/panel/stashes/apply [post]
//
// Apply a stash entry.
func (h *Handler) applyStash(c *fiber.Ctx, req *StashRequest) error {
	if err := h.controller.ApplyStash(c.Context(), req.ID); err != nil {
		return fmt.Errorf("failed to apply stash: %w", err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

//	@Summary		Drop a stash entry
//	@Tags			panel
//	@Accept			json
//	@Param			request	body	StashRequest	true	"Stash id"
//	@Success		204
//	@Failure		404	{object}	fiberfx.ErrorResponse
//	@Router			/panel/stashes/drop [post]
//
// Drop a stash entry.
func (h *Handler) dropStash(c *fiber.Ctx, req *StashRequest) error {
	if err := h.controller.DropStash(c.Context(), req.ID); err != nil {
		return fmt.Errorf("failed to drop stash: %w", err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

//	@Summary		Clear all stash entries
//	@Tags			panel
//	@Accept			json
//	@Param			request	body	StashRequest	true	"confirm must be set"
//	@Success		204
//	@Failure		428	{object}	fiberfx.ErrorResponse
//	@Router			/panel/stashes/clear [post]
//
// Clear all stash entries.
func (h *Handler) clearStash(c *fiber.Ctx, req *StashRequest) error {
	if err := h.controller.ClearStash(c.Context(), req.Confirm); err != nil {
		return fmt.Errorf("failed to clear stash: %w", err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

//	@Summary		Commit history of the current branch
//	@Tags			panel
//	@Produce		json
//	@Param			count	query	int	false	"Number of commits"
//	@Success		200		{array}	git.CommitInfo
//	@Router			/panel/history [get]
//
// Commit history of the current branch.
func (h *Handler) history(c *fiber.Ctx, req *HistoryQuery) error {
	commits, err := h.controller.History(c.Context(), req.Count)
	if err != nil {
		return fmt.Errorf("failed to read history: %w", err)
	}
	if commits == nil {
		commits = CommitsResponse{}
	}

	return c.JSON(commits)
}

//	@Summary		Commit details
//	@Tags			panel
//	@Produce		json
//	@Param			hash	path		string	true	"Commit hash"
//	@Success		200		{object}	CommitDetailsResponse
//	@Failure		404		{object}	fiberfx.ErrorResponse
//	@Router			/panel/commits/{hash} [get]
//
// Commit details.
func (h *Handler) commitDetails(c *fiber.Ctx) error {
	hash := c.Params("hash")

	details, err := h.controller.CommitDetails(c.Context(), hash)
	if err != nil {
		return fmt.Errorf("failed to read commit: %w", err)
	}

	return c.JSON(CommitDetailsResponse{Hash: hash, Details: details})
}

func (h *Handler) accepted(c *fiber.Ctx, id uuid.UUID) error {
	return c.Status(fiber.StatusAccepted).JSON(JobResponse{JobID: id})
}

func (h *Handler) errorsHandler(c *fiber.Ctx) error {
	err := c.Next()
	if err == nil {
		return nil
	}

	if status := statusOf(err); status != 0 {
		return fiber.NewError(status, git.RedactSecrets(err.Error()))
	}

	h.logger.Error("panel request failed", zap.String("path", c.Path()), zap.Error(err))

	return err //nolint:wrapcheck //already wrapped
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, panel.ErrBusy):
		return fiber.StatusConflict
	case errors.Is(err, panel.ErrInvalidInput), errors.Is(err, operations.ErrInvalidJob):
		return fiber.StatusBadRequest
	case errors.Is(err, panel.ErrNoRepository), errors.Is(err, panel.ErrNoRemote):
		return fiber.StatusPreconditionFailed
	case errors.Is(err, panel.ErrConfirmationRequired):
		return fiber.StatusPreconditionRequired
	case errors.Is(err, panel.ErrInvalidRepository):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, git.ErrBranchNotFound),
		errors.Is(err, git.ErrRemoteNotFound),
		errors.Is(err, git.ErrStashNotFound),
		errors.Is(err, git.ErrCommitNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, git.ErrBranchExists),
		errors.Is(err, git.ErrRemoteExists),
		errors.Is(err, git.ErrBranchNotMerged),
		errors.Is(err, git.ErrCurrentBranch),
		errors.Is(err, git.ErrNonFastForward),
		errors.Is(err, git.ErrNothingToCommit):
		return fiber.StatusConflict
	}

	return 0
}
