package service

import (
	"context"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"go.uber.org/zap"

	"github.com/is24/projects-manager/internal/metrics"
	"github.com/is24/projects-manager/internal/projects/domain"
	"github.com/is24/projects-manager/internal/projects/repository"
)

const (
	opCreate = "create"
	opUpdate = "update"

	resultOK       = "ok"
	resultInvalid  = "invalid"
	resultNotFound = "not_found"

	persistTimeout = 10 * time.Second
)

// ProjectService handles project-related business logic
type ProjectService struct {
	repo    *repository.ProjectRepository
	logger  *zap.Logger
	metrics *metrics.Metrics
}

// NewProjectService creates a new project service. m may be nil.
func NewProjectService(repo *repository.ProjectRepository, logger *zap.Logger, m *metrics.Metrics) *ProjectService {
	if logger == nil {
		logger = zap.NewNop()
	}
	m.SetStored(repo.Len())
	return &ProjectService{
		repo:    repo,
		logger:  logger,
		metrics: m,
	}
}

// List returns all projects
func (s *ProjectService) List(ctx context.Context) []domain.Project {
	return s.repo.List()
}

// Get returns one project by id
func (s *ProjectService) Get(ctx context.Context, productID string) (*domain.Project, error) {
	return s.repo.Get(productID)
}

// Create validates p, assigns a fresh identifier and stores it.
func (s *ProjectService) Create(ctx context.Context, p domain.Project) (*domain.Project, error) {
	if err := Validate(&p); err != nil {
		s.metrics.ObserveOperation(opCreate, resultInvalid)
		return nil, err
	}

	p.ProductID = domain.NewProductID()
	stored := s.repo.Append(p)
	s.persist(ctx, opCreate, stored.ProductID)

	s.metrics.ObserveOperation(opCreate, resultOK)
	s.metrics.SetStored(s.repo.Len())
	s.logger.Info("project created",
		zap.String("product_id", stored.ProductID),
		zap.String("product_name", stored.ProductName),
	)

	return &stored, nil
}

// Update validates p and merges it over the project with the given id.
func (s *ProjectService) Update(ctx context.Context, productID string, p domain.Project) (*domain.Project, error) {
	if err := Validate(&p); err != nil {
		s.metrics.ObserveOperation(opUpdate, resultInvalid)
		return nil, err
	}

	p.StartDate = domain.NormalizeStartDate(p.StartDate)

	updated, err := s.repo.Update(productID, func(existing domain.Project) domain.Project {
		return domain.Merge(existing, p)
	})
	if err != nil {
		s.metrics.ObserveOperation(opUpdate, resultNotFound)
		return nil, err
	}

	s.persist(ctx, opUpdate, productID)

	s.metrics.ObserveOperation(opUpdate, resultOK)
	s.logger.Info("project updated", zap.String("product_id", productID))

	return updated, nil
}

// persist writes the list through. Failures are logged and dropped, so the
// in-memory list stays authoritative for the rest of the process. The write
// outlives a cancelled request: the change is already applied in memory.
func (s *ProjectService) persist(ctx context.Context, op, productID string) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), persistTimeout)
	defer cancel()

	if err := s.repo.Persist(ctx); err != nil {
		s.metrics.PersistFailed()
		s.logger.Error("error updating projects store",
			zap.String("operation", op),
			zap.String("product_id", productID),
			zap.String("backend", s.repo.BackendName()),
			zap.Error(err),
		)
	}
}

// Validate checks that every field except the identifier is present.
func Validate(p *domain.Project) error {
	err := validation.ValidateStruct(p,
		validation.Field(&p.ProductName, validation.Required),
		validation.Field(&p.ProductOwnerName, validation.Required),
		validation.Field(&p.Developers, validation.Required),
		validation.Field(&p.ScrumMasterName, validation.Required),
		validation.Field(&p.StartDate, validation.Required),
		validation.Field(&p.Methodology, validation.Required),
	)
	if err != nil {
		return &domain.ValidationError{Err: err}
	}
	return nil
}
