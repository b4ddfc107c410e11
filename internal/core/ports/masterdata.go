package ports

import (
	"context"

	"github.com/Sanjana0524/Pharmaceutical-Quality-Control-Record-Portal/internal/core/domain"
)

// BatchRepository persists batches.
type BatchRepository interface {
	Create(ctx context.Context, b *domain.Batch) error
	FindByID(ctx context.Context, id string) (*domain.Batch, error)
	List(ctx context.Context) ([]*domain.Batch, error)
}

// SpecificationRepository persists specification limits.
type SpecificationRepository interface {
	Create(ctx context.Context, s *domain.Specification) error
	List(ctx context.Context) ([]*domain.Specification, error)
	// FindFor returns the limits for a product/test-type pair or a
	// *domain.NotFoundError.
	FindFor(ctx context.Context, productName, testType string) (*domain.Specification, error)
}

// EquipmentRepository persists equipment.
type EquipmentRepository interface {
	Create(ctx context.Context, e *domain.Equipment) error
	List(ctx context.Context) ([]*domain.Equipment, error)
}

// MasterDataService manages batches, specifications and equipment.
type MasterDataService interface {
	CreateBatch(ctx context.Context, b domain.Batch, actor domain.Actor) (*domain.Batch, error)
	GetBatch(ctx context.Context, id string) (*domain.Batch, error)
	ListBatches(ctx context.Context) ([]*domain.Batch, error)
	CreateSpecification(ctx context.Context, s domain.Specification, actor domain.Actor) (*domain.Specification, error)
	ListSpecifications(ctx context.Context) ([]*domain.Specification, error)
	CreateEquipment(ctx context.Context, e domain.Equipment, actor domain.Actor) (*domain.Equipment, error)
	ListEquipment(ctx context.Context) ([]*domain.Equipment, error)
}
