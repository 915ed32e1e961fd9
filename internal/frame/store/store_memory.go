package store

import (
	"context"
	"sort"
	"sync"

	"targetonchain/internal/frame/models"
)

// InMemoryStore stores frames in memory for development and tests.
type InMemoryStore struct {
	mu     sync.RWMutex
	nextID int64
	frames map[int64]*models.Frame
}

// NewMemory constructs an empty in-memory frame store.
func NewMemory() *InMemoryStore {
	return &InMemoryStore{nextID: 1, frames: make(map[int64]*models.Frame)}
}

func (s *InMemoryStore) GetByID(_ context.Context, id int64) (*models.Frame, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	frame, ok := s.frames[id]
	if !ok {
		return nil, ErrNotFound
	}
	copyFrame := *frame
	return &copyFrame, nil
}

func (s *InMemoryStore) List(_ context.Context) ([]models.Frame, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Frame, 0, len(s.frames))
	for _, frame := range s.frames {
		out = append(out, *frame)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *InMemoryStore) Save(_ context.Context, frame *models.Frame) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if frame.ID == 0 {
		frame.ID = s.nextID
		s.nextID++
	} else if frame.ID >= s.nextID {
		s.nextID = frame.ID + 1
	}
	copyFrame := *frame
	s.frames[frame.ID] = &copyFrame
	return nil
}

func (s *InMemoryStore) Update(_ context.Context, frame *models.Frame) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.frames[frame.ID]; !ok {
		return ErrNotFound
	}
	copyFrame := *frame
	s.frames[frame.ID] = &copyFrame
	return nil
}

func (s *InMemoryStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.frames[id]; !ok {
		return ErrNotFound
	}
	delete(s.frames, id)
	return nil
}

// Verify interface is satisfied.
var _ Store = (*InMemoryStore)(nil)
