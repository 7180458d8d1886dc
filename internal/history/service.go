package history

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mgit-app/mgit/internal/git"
	"github.com/mgit-app/mgit/internal/operations"
	"go.uber.org/zap"
)

const DefaultListLimit = 100

// Service records the lifecycle of runner jobs.
type Service struct {
	records *Repository

	logger *zap.Logger
}

func NewService(records *Repository, logger *zap.Logger) *Service {
	return &Service{
		records: records,

		logger: logger,
	}
}

// OnStarted implements operations.Listener.
func (s *Service) OnStarted(e operations.Started) {
	record := &Record{
		ID:        e.JobID,
		RepoPath:  e.RepoPath,
		Kind:      e.Kind,
		Status:    StatusRunning,
		StartedAt: time.Now(),
	}

	if err := s.records.Save(context.Background(), record); err != nil {
		s.logger.Error("failed to record started job", zap.Stringer("job_id", e.JobID), zap.Error(err))
	}
}

// OnProgress implements operations.Listener.
func (s *Service) OnProgress(operations.Progress) {}

// OnFinished implements operations.Listener.
func (s *Service) OnFinished(r operations.Result) {
	ctx := context.Background()
	completed := r.StartedAt.Add(r.Duration)
	status := resultStatus(r)
	message := git.RedactSecrets(r.Message)

	err := s.records.Update(ctx, r.JobID, func(record *Record) error {
		record.Status = status
		record.Message = message
		record.CompletedAt = &completed
		return nil
	})
	if errors.Is(err, ErrNotFound) {
		err = s.records.Save(ctx, &Record{
			ID:          r.JobID,
			RepoPath:    r.RepoPath,
			Kind:        r.Kind,
			Status:      status,
			Message:     message,
			StartedAt:   r.StartedAt,
			CompletedAt: &completed,
		})
	}
	if err != nil {
		s.logger.Error("failed to record finished job", zap.Stringer("job_id", r.JobID), zap.Error(err))
		return
	}

	s.logger.Debug("job recorded",
		zap.Stringer("job_id", r.JobID),
		zap.Stringer("kind", r.Kind),
		zap.String("status", string(status)))
}

var _ operations.Listener = (*Service)(nil)

func resultStatus(r operations.Result) Status {
	switch {
	case r.Success:
		return StatusSuccess
	case r.Cancelled:
		return StatusCancelled
	default:
		return StatusFailed
	}
}

// Get retrieves a record by job ID.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Record, error) {
	record, err := s.records.GetByID(ctx, id)
	if err != nil {
		s.logger.Debug("failed to get record", zap.Stringer("id", id), zap.Error(err))
		return nil, err
	}

	return record, nil
}

// List returns the newest records matching filter.
func (s *Service) List(ctx context.Context, filter Filter, limit int) ([]Record, error) {
	if limit <= 0 || limit > DefaultListLimit {
		limit = DefaultListLimit
	}

	records, err := s.records.List(ctx, filter, limit)
	if err != nil {
		s.logger.Error("failed to list records",
			zap.String("path", filter.RepoPath),
			zap.Stringer("kind", filter.Kind),
			zap.Error(err))
		return nil, err
	}

	return records, nil
}

// Latest returns the newest record of repoPath.
func (s *Service) Latest(ctx context.Context, repoPath string) (*Record, error) {
	records, err := s.records.List(ctx, Filter{RepoPath: repoPath}, 1)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w for repository: %s", ErrNotFound, repoPath)
	}

	return &records[0], nil
}

// Clear removes the history of repoPath.
func (s *Service) Clear(ctx context.Context, repoPath string) (int, error) {
	s.logger.Info("clearing history", zap.String("path", repoPath))

	n, err := s.records.DeleteByRepository(ctx, repoPath)
	if err != nil {
		s.logger.Error("failed to clear history", zap.String("path", repoPath), zap.Error(err))
		return 0, err
	}

	return n, nil
}
