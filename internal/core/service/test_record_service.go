package service

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Sanjana0524/Pharmaceutical-Quality-Control-Record-Portal/internal/core/domain"
	"github.com/Sanjana0524/Pharmaceutical-Quality-Control-Record-Portal/internal/core/ports"
)

// maxUpdateAttempts bounds the read-evaluate-write retries of an update that
// carries no expected version.
const maxUpdateAttempts = 3

// TestRecordService owns the record lifecycle: creation, whitelisted updates
// and status derivation.
type TestRecordService struct {
	repo   ports.TestRecordRepository
	specs  ports.SpecificationRepository
	audit  *AuditRecorder
	logger zerolog.Logger
	now    func() time.Time
}

// NewTestRecordService returns a TestRecordService. specs may be nil, which
// disables pre-filling limits from stored specifications.
func NewTestRecordService(
	repo ports.TestRecordRepository,
	specs ports.SpecificationRepository,
	audit *AuditRecorder,
	logger zerolog.Logger,
) *TestRecordService {
	return &TestRecordService{
		repo:   repo,
		specs:  specs,
		audit:  audit,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Create persists a new record with a derived status and appends a CREATE
// entry. If the record is stored but the entry is not, the record is returned
// together with a *domain.AuditTrailError.
func (s *TestRecordService) Create(
	ctx context.Context,
	in ports.CreateTestRecordInput,
	actor domain.Actor,
) (*domain.TestRecord, error) {
	if !actor.Can(domain.ActionCreateTest) {
		return nil, domain.ErrForbidden
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}

	if strings.TrimSpace(in.SpecificationMin) == "" && strings.TrimSpace(in.SpecificationMax) == "" {
		s.prefillLimits(ctx, &in)
	}

	now := s.now().Truncate(time.Millisecond)
	rec := &domain.TestRecord{
		ID:               uuid.NewString(),
		BatchID:          in.BatchID,
		BatchNumber:      in.BatchNumber,
		ProductName:      in.ProductName,
		TestType:         in.TestType,
		TestMethod:       in.TestMethod,
		EquipmentUsed:    in.EquipmentUsed,
		TestDate:         in.TestDate,
		TestTime:         in.TestTime,
		AnalystName:      actor.FullName,
		AnalystID:        actor.UserID,
		ResultValue:      in.ResultValue,
		ResultUnit:       in.ResultUnit,
		SpecificationMin: in.SpecificationMin,
		SpecificationMax: in.SpecificationMax,
		Comments:         in.Comments,
		DeviationNotes:   in.DeviationNotes,
		RetestRequired:   in.RetestRequired,
		Attachments:      append([]string{}, in.Attachments...),
		Version:          1,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	rec.Reevaluate()

	if err := s.repo.Create(ctx, rec); err != nil {
		s.logger.Error().Err(err).Str("batch_number", rec.BatchNumber).Msg("failed to create test record")
		return nil, fmt.Errorf("create test record: %w", err)
	}

	s.logger.Info().
		Str("test_id", rec.ID).
		Str("batch_number", rec.BatchNumber).
		Str("status", string(rec.PassFailStatus)).
		Str("analyst", actor.Username).
		Msg("test record created")

	auditErr := s.audit.Record(ctx, domain.AuditCreate, domain.EntityTest, rec.ID, actor, map[string]any{
		"test_type":        rec.TestType,
		"batch_number":     rec.BatchNumber,
		"pass_fail_status": string(rec.PassFailStatus),
	})
	return rec, auditErr
}

func (s *TestRecordService) prefillLimits(ctx context.Context, in *ports.CreateTestRecordInput) {
	if s.specs == nil {
		return
	}
	spec, err := s.specs.FindFor(ctx, in.ProductName, in.TestType)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.logger.Warn().Err(err).Str("product", in.ProductName).Str("test_type", in.TestType).Msg("specification lookup failed")
		}
		return
	}
	in.SpecificationMin = spec.MinLimit
	in.SpecificationMax = spec.MaxLimit
	if strings.TrimSpace(in.ResultUnit) == "" {
		in.ResultUnit = spec.Unit
	}
}

// Update applies a whitelisted patch. Status is re-derived whenever the
// result or a limit changes. Each write is guarded by the version read in the
// same attempt; a lost race is retried unless the caller pinned a version.
func (s *TestRecordService) Update(
	ctx context.Context,
	in ports.UpdateTestRecordInput,
	actor domain.Actor,
) (*domain.TestRecord, error) {
	if !actor.Can(domain.ActionUpdateTest) {
		return nil, domain.ErrForbidden
	}

	var (
		updated  *domain.TestRecord
		previous domain.PassFailStatus
	)
	for attempt := 1; ; attempt++ {
		current, err := s.repo.FindByID(ctx, in.ID)
		if err != nil {
			return nil, err
		}
		if in.ExpectedVersion != nil && *in.ExpectedVersion != current.Version {
			return nil, fmt.Errorf("%w: test record %s is at version %d, expected %d",
				domain.ErrConflict, in.ID, current.Version, *in.ExpectedVersion)
		}
		previous = current.PassFailStatus

		if in.Patch.IsEmpty() {
			updated = current
			break
		}

		next := current.Clone()
		in.Patch.Apply(next)
		next.UpdatedAt = s.now().Truncate(time.Millisecond)

		updated, err = s.repo.Update(ctx, next, current.Version)
		if err == nil {
			break
		}
		if !errors.Is(err, domain.ErrConflict) || in.ExpectedVersion != nil {
			return nil, err
		}
		if attempt == maxUpdateAttempts {
			s.logger.Warn().Str("test_id", in.ID).Int("attempts", attempt).Msg("update lost every version race")
			return nil, err
		}
		s.logger.Debug().Str("test_id", in.ID).Int("attempt", attempt).Msg("concurrent write detected, retrying update")
	}

	fields := in.Patch.ChangedFields()
	s.logger.Info().
		Str("test_id", updated.ID).
		Strs("fields", fields).
		Str("status", string(updated.PassFailStatus)).
		Str("by", actor.Username).
		Msg("test record updated")

	auditErr := s.audit.Record(ctx, domain.AuditUpdate, domain.EntityTest, updated.ID, actor, map[string]any{
		"updated_fields":   fields,
		"status_rederived": in.Patch.TouchesEvaluation(),
		"status_changed":   previous != updated.PassFailStatus,
	})
	return updated, auditErr
}

// Get returns one record.
func (s *TestRecordService) Get(ctx context.Context, id string) (*domain.TestRecord, error) {
	return s.repo.FindByID(ctx, id)
}

// Search yields records matching every set criterion, newest first.
func (s *TestRecordService) Search(ctx context.Context, filter domain.TestRecordFilter) iter.Seq2[*domain.TestRecord, error] {
	return s.repo.Search(ctx, filter)
}

// Dashboard aggregates every record in a single pass.
func (s *TestRecordService) Dashboard(ctx context.Context) (*ports.Dashboard, error) {
	d := &ports.Dashboard{
		TestTypesDistribution: map[string]int{},
		ProductStatistics:     map[string]ports.ProductStats{},
	}
	since := s.now().AddDate(0, 0, -7)

	for rec, err := range s.repo.Search(ctx, domain.TestRecordFilter{}) {
		if err != nil {
			return nil, fmt.Errorf("dashboard: %w", err)
		}
		d.TotalTests++

		stats := d.ProductStatistics[rec.ProductName]
		stats.Total++
		switch rec.PassFailStatus {
		case domain.StatusPass:
			d.PassTests++
			stats.Pass++
		case domain.StatusFail:
			d.FailTests++
			stats.Fail++
		case domain.StatusPendingReview:
			d.PendingTests++
		}
		d.ProductStatistics[rec.ProductName] = stats
		d.TestTypesDistribution[rec.TestType]++

		if !rec.CreatedAt.Before(since) {
			d.RecentTestsCount++
		}
	}

	if d.TotalTests > 0 {
		d.PassRate = math.Round(float64(d.PassTests)/float64(d.TotalTests)*10000) / 100
	}
	return d, nil
}
