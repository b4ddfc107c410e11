package domain

import (
	"errors"
	"maps"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// PassFailStatus is always derived from the result and the specification
// limits; it is never set by callers.
type PassFailStatus string

const (
	StatusPass          PassFailStatus = "Pass"
	StatusFail          PassFailStatus = "Fail"
	StatusPendingReview PassFailStatus = "Pending Review"
)

// Evaluate derives the status of a measurement. An empty min means no lower
// bound and an empty max no upper bound. Any value that is not a finite
// number yields StatusPendingReview.
func Evaluate(result, min, max string) PassFailStatus {
	r, ok := parseMeasurement(result)
	if !ok {
		return StatusPendingReview
	}
	lo, hi := math.Inf(-1), math.Inf(1)
	if strings.TrimSpace(min) != "" {
		if lo, ok = parseMeasurement(min); !ok {
			return StatusPendingReview
		}
	}
	if strings.TrimSpace(max) != "" {
		if hi, ok = parseMeasurement(max); !ok {
			return StatusPendingReview
		}
	}
	if lo <= r && r <= hi {
		return StatusPass
	}
	return StatusFail
}

func parseMeasurement(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	// Out-of-range input still parses, to ±Inf or 0.
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	if math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

// Attestation is one electronic signature: a principal who re-proved their
// credential asserting Meaning about a record at SignedAt.
type Attestation struct {
	Statement      string    `json:"signature"`
	SignerID       string    `json:"signer_id"`
	SignerUsername string    `json:"signer_username"`
	SignerFullName string    `json:"signer_full_name"`
	Meaning        string    `json:"meaning"`
	Comments       string    `json:"comments,omitempty"`
	SignedAt       time.Time `json:"signed_at"`
}

// NewAttestation builds the attestation text, e.g. "Reviewed by bob".
func NewAttestation(signer *User, meaning, comments string, at time.Time) Attestation {
	meaning = strings.TrimSpace(meaning)
	statement := meaning + " by " + signer.Username
	if strings.HasSuffix(strings.ToLower(meaning), " by") {
		statement = meaning + " " + signer.Username
	}
	return Attestation{
		Statement:      statement,
		SignerID:       signer.ID,
		SignerUsername: signer.Username,
		SignerFullName: signer.FullName,
		Meaning:        meaning,
		Comments:       comments,
		SignedAt:       at,
	}
}

// MeaningKey normalises a meaning into the key under which its attestation is
// stored, so "Reviewed by" and "reviewed  BY" share a slot.
func MeaningKey(meaning string) string {
	var b strings.Builder
	underscore := false
	for _, r := range strings.ToLower(strings.TrimSpace(meaning)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			underscore = false
			continue
		}
		if !underscore && b.Len() > 0 {
			b.WriteByte('_')
			underscore = true
		}
	}
	return strings.TrimSuffix(b.String(), "_")
}

// IsReview reports whether the meaning denotes a review or approval.
func (a Attestation) IsReview() bool {
	m := strings.ToLower(a.Meaning)
	return strings.Contains(m, "review") || strings.Contains(m, "approv")
}

// TestRecord is a QC measurement against a batch.
type TestRecord struct {
	ID               string         `json:"id"`
	BatchID          string         `json:"batch_id"`
	BatchNumber      string         `json:"batch_number"`
	ProductName      string         `json:"product_name"`
	TestType         string         `json:"test_type"`
	TestMethod       string         `json:"test_method"`
	EquipmentUsed    string         `json:"equipment_used"`
	TestDate         string         `json:"test_date"`
	TestTime         string         `json:"test_time"`
	AnalystName      string         `json:"analyst_name"`
	AnalystID        string         `json:"analyst_id"`
	ResultValue      string         `json:"result_value"`
	ResultUnit       string         `json:"result_unit"`
	SpecificationMin string         `json:"specification_min"`
	SpecificationMax string         `json:"specification_max"`
	PassFailStatus   PassFailStatus `json:"pass_fail_status"`
	Comments         string         `json:"comments"`
	DeviationNotes   string         `json:"deviation_notes"`
	RetestRequired   bool           `json:"retest_required"`
	Attachments      []string       `json:"attachments"`

	// Signature fields; only the signing protocol writes them.
	Signature         string                 `json:"signature,omitempty"`
	SignatureDate     *time.Time             `json:"signature_date,omitempty"`
	SignatureMeaning  string                 `json:"signature_meaning,omitempty"`
	SignatureComments string                 `json:"signature_comments,omitempty"`
	ReviewedBy        string                 `json:"reviewed_by,omitempty"`
	ReviewDate        *time.Time             `json:"review_date,omitempty"`
	Signatures        map[string]Attestation `json:"signatures,omitempty"`

	Version   int64     `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Clone returns a deep copy of t.
func (t *TestRecord) Clone() *TestRecord {
	c := *t
	c.Attachments = slices.Clone(t.Attachments)
	c.Signatures = maps.Clone(t.Signatures)
	if t.SignatureDate != nil {
		d := *t.SignatureDate
		c.SignatureDate = &d
	}
	if t.ReviewDate != nil {
		d := *t.ReviewDate
		c.ReviewDate = &d
	}
	return &c
}

// Reevaluate recomputes PassFailStatus from the current result and limits.
func (t *TestRecord) Reevaluate() {
	t.PassFailStatus = Evaluate(t.ResultValue, t.SpecificationMin, t.SpecificationMax)
}

// Sign layers a onto the record. A repeated meaning replaces only that
// meaning's attestation. Result and status are untouched.
func (t *TestRecord) Sign(a Attestation) {
	if t.Signatures == nil {
		t.Signatures = make(map[string]Attestation)
	}
	t.Signatures[MeaningKey(a.Meaning)] = a
	at := a.SignedAt
	t.Signature = a.Statement
	t.SignatureDate = &at
	t.SignatureMeaning = a.Meaning
	t.SignatureComments = a.Comments
	if a.IsReview() {
		t.ReviewedBy = a.SignerUsername
		t.ReviewDate = &at
	}
}

// IsSigned reports whether at least one attestation is present.
func (t *TestRecord) IsSigned() bool { return len(t.Signatures) > 0 }

// TestRecordFilter holds the conjunctive search criteria. Empty fields match
// everything. Dates are compared as ISO-8601 strings, inclusively.
type TestRecordFilter struct {
	BatchNumber    string         `json:"batch_number"`
	ProductName    string         `json:"product_name"`
	TestType       string         `json:"test_type"`
	PassFailStatus PassFailStatus `json:"pass_fail_status"`
	DateFrom       string         `json:"date_from"`
	DateTo         string         `json:"date_to"`
}

// Matches applies the filter to a single record, mirroring the store query.
func (f TestRecordFilter) Matches(t *TestRecord) bool {
	if f.BatchNumber != "" && !containsFold(t.BatchNumber, f.BatchNumber) {
		return false
	}
	if f.ProductName != "" && !containsFold(t.ProductName, f.ProductName) {
		return false
	}
	if f.TestType != "" && t.TestType != f.TestType {
		return false
	}
	if f.PassFailStatus != "" && t.PassFailStatus != f.PassFailStatus {
		return false
	}
	if f.DateFrom != "" && t.TestDate < f.DateFrom {
		return false
	}
	if f.DateTo != "" && t.TestDate > f.DateTo {
		return false
	}
	return true
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
