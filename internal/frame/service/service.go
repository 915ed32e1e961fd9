package service

import (
	"context"
	"errors"
	"log/slog"

	"targetonchain/internal/frame/models"
	"targetonchain/internal/frame/store"
	"targetonchain/internal/verification"
	dErrors "targetonchain/pkg/domain-errors"
	"targetonchain/pkg/validation"
)

// Service owns frame authoring: create, update, delete, and reads for both
// the authoring API and the interaction pipeline.
type Service struct {
	store  store.Store
	logger *slog.Logger
}

// Option configures the Service.
type Option func(*Service)

// WithLogger sets the logger for the service.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		s.logger = l
	}
}

// New creates a frame service.
// Panics if the store is nil - fail fast at startup.
func New(st store.Store, opts ...Option) *Service {
	if st == nil {
		panic("frame service: store is required")
	}
	s := &Service{store: st, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create validates the authoring request and persists a new frame.
func (s *Service) Create(ctx context.Context, req models.CreateFrameRequest) (*models.Frame, error) {
	if err := validation.Validate(req); err != nil {
		return nil, err
	}
	criteria, err := verification.ParseCriteria(req.MatchingCriteria)
	if err != nil {
		return nil, err
	}

	frame := &models.Frame{
		Shop:             req.Shop,
		Title:            req.Title,
		Image:            req.Image,
		Button:           req.Button,
		MatchingCriteria: criteria,
	}
	if err := s.store.Save(ctx, frame); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "save frame")
	}

	s.logger.Info("frame created", "frame_id", frame.ID, "shop", frame.Shop, "criteria", string(criteria))
	return frame, nil
}

// Update validates the authoring request and replaces an existing frame.
func (s *Service) Update(ctx context.Context, req models.UpdateFrameRequest) (*models.Frame, error) {
	if err := validation.Validate(req); err != nil {
		return nil, err
	}
	criteria, err := verification.ParseCriteria(req.MatchingCriteria)
	if err != nil {
		return nil, err
	}

	frame := &models.Frame{
		ID:               req.ID,
		Shop:             req.Shop,
		Title:            req.Title,
		Image:            req.Image,
		Button:           req.Button,
		MatchingCriteria: criteria,
	}
	if err := s.store.Update(ctx, frame); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "frame not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "update frame")
	}

	s.logger.Info("frame updated", "frame_id", frame.ID, "shop", frame.Shop)
	return frame, nil
}

// Delete removes a frame by id.
func (s *Service) Delete(ctx context.Context, req models.DeleteFrameRequest) error {
	if err := validation.Validate(req); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, req.ID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "frame not found")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "delete frame")
	}
	s.logger.Info("frame deleted", "frame_id", req.ID)
	return nil
}

// Get loads a frame by id.
func (s *Service) Get(ctx context.Context, id int64) (*models.Frame, error) {
	frame, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "frame not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "get frame")
	}
	return frame, nil
}

// List returns all frames ordered by id.
func (s *Service) List(ctx context.Context) ([]models.Frame, error) {
	frames, err := s.store.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "list frames")
	}
	return frames, nil
}
