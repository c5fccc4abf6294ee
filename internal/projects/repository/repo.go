package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/is24/projects-manager/internal/projects/domain"
)

// Backend stores the serialized project list as a single blob.
type Backend interface {
	Name() string
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, data []byte) error
}

// ProjectRepository is the in-memory project list. Every mutation is
// followed by a full rewrite of the backend through Persist.
type ProjectRepository struct {
	backend Backend
	logger  *zap.Logger

	mu       sync.RWMutex
	projects []domain.Project

	// serializes Persist so the last write carries the newest snapshot
	persistMu sync.Mutex
}

// NewProjectRepository creates an empty repository; call Load to fill it.
func NewProjectRepository(backend Backend, logger *zap.Logger) *ProjectRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProjectRepository{
		backend:  backend,
		logger:   logger,
		projects: []domain.Project{},
	}
}

func (r *ProjectRepository) BackendName() string { return r.backend.Name() }

// Load replaces the in-memory list with the backend contents. Read or decode
// failures are logged and leave an empty list.
func (r *ProjectRepository) Load(ctx context.Context) int {
	projects := []domain.Project{}

	data, err := r.backend.Load(ctx)
	switch {
	case err != nil:
		r.logger.Warn("error reading projects, starting empty",
			zap.String("backend", r.backend.Name()), zap.Error(err))
	case len(bytes.TrimSpace(data)) == 0:
		// nothing stored yet
	default:
		var decoded []domain.Project
		if err := json.Unmarshal(data, &decoded); err != nil {
			r.logger.Warn("error decoding projects, starting empty",
				zap.String("backend", r.backend.Name()), zap.Error(err))
		} else if decoded != nil {
			projects = decoded
		}
	}

	r.mu.Lock()
	r.projects = projects
	r.mu.Unlock()

	return len(projects)
}

// List returns a copy of every project in insertion order. Never nil.
func (r *ProjectRepository) List() []domain.Project {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Project, 0, len(r.projects))
	for _, p := range r.projects {
		out = append(out, p.Clone())
	}
	return out
}

func (r *ProjectRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.projects)
}

// Get finds a project by linear scan.
func (r *ProjectRepository) Get(productID string) (*domain.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.indexOf(productID)
	if i < 0 {
		return nil, &domain.NotFoundError{ProductID: productID}
	}
	p := r.projects[i].Clone()
	return &p, nil
}

// Append adds p to the end of the list.
func (r *ProjectRepository) Append(p domain.Project) domain.Project {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := p.Clone()
	r.projects = append(r.projects, stored)
	return stored.Clone()
}

// Update replaces the project with the given id by fn(existing).
func (r *ProjectRepository) Update(productID string, fn func(domain.Project) domain.Project) (*domain.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(productID)
	if i < 0 {
		return nil, &domain.NotFoundError{ProductID: productID}
	}

	r.projects[i] = fn(r.projects[i].Clone())
	p := r.projects[i].Clone()
	return &p, nil
}

// Snapshot serializes the current list the way it is written to the backend.
func (r *ProjectRepository) Snapshot() ([]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	data, err := json.MarshalIndent(r.projects, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal projects: %w", err)
	}
	return data, nil
}

// Persist rewrites the backend with the current list.
func (r *ProjectRepository) Persist(ctx context.Context) error {
	r.persistMu.Lock()
	defer r.persistMu.Unlock()

	data, err := r.Snapshot()
	if err != nil {
		return err
	}
	if err := r.backend.Save(ctx, data); err != nil {
		return fmt.Errorf("persist to %s: %w", r.backend.Name(), err)
	}
	return nil
}

// indexOf must be called with mu held.
func (r *ProjectRepository) indexOf(productID string) int {
	for i := range r.projects {
		if r.projects[i].ProductID == productID {
			return i
		}
	}
	return -1
}
