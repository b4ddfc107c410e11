package ports

import (
	"context"
	"iter"
	"strings"

	"github.com/Sanjana0524/Pharmaceutical-Quality-Control-Record-Portal/internal/core/domain"
)

// CreateTestRecordInput carries the caller-supplied fields of a new record.
// Analyst identity comes from the acting principal, never from here.
type CreateTestRecordInput struct {
	BatchID          string
	BatchNumber      string
	ProductName      string
	TestType         string
	TestMethod       string
	EquipmentUsed    string
	TestDate         string
	TestTime         string
	ResultValue      string
	ResultUnit       string
	SpecificationMin string
	SpecificationMax string
	Comments         string
	DeviationNotes   string
	RetestRequired   bool
	Attachments      []string
}

// Validate reports every missing required field.
func (in CreateTestRecordInput) Validate() error {
	required := []struct{ field, value string }{
		{"batch_id", in.BatchID},
		{"batch_number", in.BatchNumber},
		{"product_name", in.ProductName},
		{"test_type", in.TestType},
		{"test_method", in.TestMethod},
		{"equipment_used", in.EquipmentUsed},
		{"test_date", in.TestDate},
		{"test_time", in.TestTime},
		{"result_value", in.ResultValue},
		{"result_unit", in.ResultUnit},
	}
	var verr domain.ValidationError
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			verr.Errors = append(verr.Errors, domain.FieldError{Field: r.field, Message: "is required"})
		}
	}
	if len(verr.Errors) > 0 {
		return &verr
	}
	return nil
}

// UpdateTestRecordInput is a whitelisted patch with an optional optimistic
// concurrency check.
type UpdateTestRecordInput struct {
	ID              string
	Patch           domain.TestRecordPatch
	ExpectedVersion *int64
}

// TestRecordService is the record lifecycle manager.
type TestRecordService interface {
	Create(ctx context.Context, in CreateTestRecordInput, actor domain.Actor) (*domain.TestRecord, error)
	Update(ctx context.Context, in UpdateTestRecordInput, actor domain.Actor) (*domain.TestRecord, error)
	Get(ctx context.Context, id string) (*domain.TestRecord, error)
	Search(ctx context.Context, filter domain.TestRecordFilter) iter.Seq2[*domain.TestRecord, error]
	Dashboard(ctx context.Context) (*Dashboard, error)
}

// ProductStats aggregates results for one product.
type ProductStats struct {
	Total int `json:"total"`
	Pass  int `json:"pass"`
	Fail  int `json:"fail"`
}

// Dashboard summarises every test record.
type Dashboard struct {
	TotalTests            int                     `json:"total_tests"`
	PassTests             int                     `json:"pass_tests"`
	FailTests             int                     `json:"fail_tests"`
	PendingTests          int                     `json:"pending_tests"`
	PassRate              float64                 `json:"pass_rate"`
	TestTypesDistribution map[string]int          `json:"test_types_distribution"`
	RecentTestsCount      int                     `json:"recent_tests_count"`
	ProductStatistics     map[string]ProductStats `json:"product_statistics"`
}
