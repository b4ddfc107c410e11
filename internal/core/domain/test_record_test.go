package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name             string
		result, min, max string
		want             PassFailStatus
	}{
		{"inside", "5.0", "4.0", "6.0", StatusPass},
		{"above max", "7.0", "4.0", "6.0", StatusFail},
		{"below min", "3.9", "4.0", "6.0", StatusFail},
		{"on lower bound", "4", "4", "6", StatusPass},
		{"on upper bound", "6", "4", "6", StatusPass},
		{"non numeric result", "n/a", "4.0", "6.0", StatusPendingReview},
		{"non numeric min", "5", "low", "6", StatusPendingReview},
		{"non numeric max", "5", "4", "high", StatusPendingReview},
		{"empty result", "", "4", "6", StatusPendingReview},
		{"nan result", "NaN", "4", "6", StatusPendingReview},
		{"absent min", "100", "", "50", StatusFail},
		{"absent min passes", "-1e9", "", "50", StatusPass},
		{"absent max", "1e12", "0", "", StatusPass},
		{"no limits", "42", "", "", StatusPass},
		{"padded values", " 5 ", " 4 ", " 6 ", StatusPass},
		{"overflowing result", "1e400", "", "50", StatusFail},
		{"overflowing max", "5", "0", "1e400", StatusPass},
		{"negative overflow min", "5", "-1e400", "6", StatusPass},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Evaluate(tt.result, tt.min, tt.max))
		})
	}
}

func TestMeaningKey(t *testing.T) {
	assert.Equal(t, "reviewed_by", MeaningKey("Reviewed by"))
	assert.Equal(t, "reviewed_by", MeaningKey("  reviewed   BY "))
	assert.Equal(t, "approved_by_qa", MeaningKey("Approved by: QA."))
	assert.Equal(t, "tested_by", MeaningKey("Tested.by"))
}

func TestNewAttestation_Statement(t *testing.T) {
	signer := &User{ID: "u1", Username: "bob", FullName: "Bob B"}
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	a := NewAttestation(signer, "Reviewed by", "ok", at)
	assert.Equal(t, "Reviewed by bob", a.Statement)
	assert.Equal(t, "bob", a.SignerUsername)
	assert.Equal(t, at, a.SignedAt)

	b := NewAttestation(signer, "Approved", "", at)
	assert.Equal(t, "Approved by bob", b.Statement)
}

func TestTestRecord_SignLayersMeanings(t *testing.T) {
	rec := &TestRecord{ResultValue: "5", SpecificationMin: "4", SpecificationMax: "6"}
	rec.Reevaluate()
	require.Equal(t, StatusPass, rec.PassFailStatus)

	ana := &User{ID: "u1", Username: "ana"}
	bob := &User{ID: "u2", Username: "bob"}
	t1 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Hour)
	t3 := t2.Add(time.Hour)

	rec.Sign(NewAttestation(ana, "Tested by", "", t1))
	rec.Sign(NewAttestation(bob, "Reviewed by", "first pass", t2))
	require.Len(t, rec.Signatures, 2)
	assert.Equal(t, "bob", rec.ReviewedBy)

	rec.Sign(NewAttestation(ana, "Reviewed by", "second pass", t3))
	require.Len(t, rec.Signatures, 2)
	assert.Equal(t, "ana", rec.Signatures["reviewed_by"].SignerUsername)
	assert.Equal(t, "ana", rec.Signatures["tested_by"].SignerUsername)
	assert.Equal(t, "Reviewed by ana", rec.Signature)
	assert.Equal(t, t3, *rec.SignatureDate)
	assert.Equal(t, StatusPass, rec.PassFailStatus)
	assert.True(t, rec.IsSigned())
}

func TestTestRecordFilter_Matches(t *testing.T) {
	rec := &TestRecord{
		BatchNumber:    "B-1-REWORK",
		ProductName:    "Paracetamol 500mg",
		TestType:       "Assay",
		PassFailStatus: StatusPass,
		TestDate:       "2026-03-15",
	}

	assert.True(t, TestRecordFilter{}.Matches(rec))
	assert.True(t, TestRecordFilter{BatchNumber: "b-1"}.Matches(rec))
	assert.True(t, TestRecordFilter{ProductName: "PARACETAMOL"}.Matches(rec))
	assert.False(t, TestRecordFilter{TestType: "assay"}.Matches(rec))
	assert.True(t, TestRecordFilter{TestType: "Assay", PassFailStatus: StatusPass}.Matches(rec))
	assert.False(t, TestRecordFilter{PassFailStatus: StatusFail}.Matches(rec))
	assert.True(t, TestRecordFilter{DateFrom: "2026-03-15", DateTo: "2026-03-15"}.Matches(rec))
	assert.False(t, TestRecordFilter{DateFrom: "2026-03-16"}.Matches(rec))
	assert.False(t, TestRecordFilter{DateTo: "2026-03-14"}.Matches(rec))
	assert.False(t, TestRecordFilter{BatchNumber: "b-1", TestType: "Dissolution"}.Matches(rec))
}
