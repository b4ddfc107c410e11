package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Sanjana0524/Pharmaceutical-Quality-Control-Record-Portal/internal/core/domain"
	"github.com/Sanjana0524/Pharmaceutical-Quality-Control-Record-Portal/internal/core/ports"
)

// MasterDataService manages batches, specifications and equipment.
type MasterDataService struct {
	batches   ports.BatchRepository
	specs     ports.SpecificationRepository
	equipment ports.EquipmentRepository
	audit     *AuditRecorder
	logger    zerolog.Logger
	now       func() time.Time
}

func NewMasterDataService(
	batches ports.BatchRepository,
	specs ports.SpecificationRepository,
	equipment ports.EquipmentRepository,
	audit *AuditRecorder,
	logger zerolog.Logger,
) *MasterDataService {
	return &MasterDataService{
		batches:   batches,
		specs:     specs,
		equipment: equipment,
		audit:     audit,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func requireFields(fields ...[2]string) error {
	var verr domain.ValidationError
	for _, f := range fields {
		if strings.TrimSpace(f[1]) == "" {
			verr.Errors = append(verr.Errors, domain.FieldError{Field: f[0], Message: "is required"})
		}
	}
	if len(verr.Errors) > 0 {
		return &verr
	}
	return nil
}

func (s *MasterDataService) CreateBatch(ctx context.Context, b domain.Batch, actor domain.Actor) (*domain.Batch, error) {
	if !actor.Can(domain.ActionCreateBatch) {
		return nil, domain.ErrForbidden
	}
	if err := requireFields(
		[2]string{"batch_number", b.BatchNumber},
		[2]string{"product_name", b.ProductName},
	); err != nil {
		return nil, err
	}

	b.ID = uuid.NewString()
	b.CreatedBy = actor.Username
	b.CreatedAt = s.now().Truncate(time.Millisecond)
	if err := s.batches.Create(ctx, &b); err != nil {
		return nil, fmt.Errorf("create batch: %w", err)
	}
	s.logger.Info().Str("batch_id", b.ID).Str("batch_number", b.BatchNumber).Msg("batch created")

	auditErr := s.audit.Record(ctx, domain.AuditCreate, domain.EntityBatch, b.ID, actor,
		map[string]any{"batch_number": b.BatchNumber})
	return &b, auditErr
}

func (s *MasterDataService) GetBatch(ctx context.Context, id string) (*domain.Batch, error) {
	return s.batches.FindByID(ctx, id)
}

func (s *MasterDataService) ListBatches(ctx context.Context) ([]*domain.Batch, error) {
	return s.batches.List(ctx)
}

func (s *MasterDataService) CreateSpecification(
	ctx context.Context,
	spec domain.Specification,
	actor domain.Actor,
) (*domain.Specification, error) {
	if !actor.Can(domain.ActionCreateSpecification) {
		return nil, domain.ErrForbidden
	}
	if err := requireFields(
		[2]string{"product_name", spec.ProductName},
		[2]string{"test_type", spec.TestType},
	); err != nil {
		return nil, err
	}

	spec.ID = uuid.NewString()
	if err := s.specs.Create(ctx, &spec); err != nil {
		return nil, fmt.Errorf("create specification: %w", err)
	}
	s.logger.Info().Str("specification_id", spec.ID).Str("product", spec.ProductName).Str("test_type", spec.TestType).Msg("specification created")

	auditErr := s.audit.Record(ctx, domain.AuditCreate, domain.EntitySpecification, spec.ID, actor,
		map[string]any{"product_name": spec.ProductName, "test_type": spec.TestType})
	return &spec, auditErr
}

func (s *MasterDataService) ListSpecifications(ctx context.Context) ([]*domain.Specification, error) {
	return s.specs.List(ctx)
}

func (s *MasterDataService) CreateEquipment(ctx context.Context, e domain.Equipment, actor domain.Actor) (*domain.Equipment, error) {
	if !actor.Can(domain.ActionCreateEquipment) {
		return nil, domain.ErrForbidden
	}
	if err := requireFields(
		[2]string{"equipment_name", e.EquipmentName},
		[2]string{"equipment_id", e.EquipmentID},
	); err != nil {
		return nil, err
	}

	e.ID = uuid.NewString()
	if err := s.equipment.Create(ctx, &e); err != nil {
		return nil, fmt.Errorf("create equipment: %w", err)
	}
	s.logger.Info().Str("id", e.ID).Str("equipment_id", e.EquipmentID).Msg("equipment created")

	auditErr := s.audit.Record(ctx, domain.AuditCreate, domain.EntityEquipment, e.ID, actor,
		map[string]any{"equipment_id": e.EquipmentID})
	return &e, auditErr
}

func (s *MasterDataService) ListEquipment(ctx context.Context) ([]*domain.Equipment, error) {
	return s.equipment.List(ctx)
}
