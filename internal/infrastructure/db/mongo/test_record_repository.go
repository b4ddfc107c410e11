package mongo

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Sanjana0524/Pharmaceutical-Quality-Control-Record-Portal/internal/core/domain"
)

// TestRecordRepository implements ports.TestRecordRepository using MongoDB.
// Every write is a single-document update filtered on id and version.
type TestRecordRepository struct {
	coll *mongo.Collection
}

func NewTestRecordRepository(db *mongo.Database) *TestRecordRepository {
	return &TestRecordRepository{coll: db.Collection(collectionTestRecords)}
}

type attestationDoc struct {
	Statement      string    `bson:"signature"`
	SignerID       string    `bson:"signer_id"`
	SignerUsername string    `bson:"signer_username"`
	SignerFullName string    `bson:"signer_full_name"`
	Meaning        string    `bson:"meaning"`
	Comments       string    `bson:"comments,omitempty"`
	SignedAt       time.Time `bson:"signed_at"`
}

type testRecordDoc struct {
	ID               string   `bson:"id"`
	BatchID          string   `bson:"batch_id"`
	BatchNumber      string   `bson:"batch_number"`
	ProductName      string   `bson:"product_name"`
	TestType         string   `bson:"test_type"`
	TestMethod       string   `bson:"test_method"`
	EquipmentUsed    string   `bson:"equipment_used"`
	TestDate         string   `bson:"test_date"`
	TestTime         string   `bson:"test_time"`
	AnalystName      string   `bson:"analyst_name"`
	AnalystID        string   `bson:"analyst_id"`
	ResultValue      string   `bson:"result_value"`
	ResultUnit       string   `bson:"result_unit"`
	SpecificationMin string   `bson:"specification_min"`
	SpecificationMax string   `bson:"specification_max"`
	PassFailStatus   string   `bson:"pass_fail_status"`
	Comments         string   `bson:"comments"`
	DeviationNotes   string   `bson:"deviation_notes"`
	RetestRequired   bool     `bson:"retest_required"`
	Attachments      []string `bson:"attachments"`

	Signature         string                    `bson:"signature,omitempty"`
	SignatureDate     *time.Time                `bson:"signature_date,omitempty"`
	SignatureMeaning  string                    `bson:"signature_meaning,omitempty"`
	SignatureComments string                    `bson:"signature_comments,omitempty"`
	ReviewedBy        string                    `bson:"reviewed_by,omitempty"`
	ReviewDate        *time.Time                `bson:"review_date,omitempty"`
	Signatures        map[string]attestationDoc `bson:"signatures,omitempty"`

	Version   int64     `bson:"version"`
	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

func toAttestationDoc(a domain.Attestation) attestationDoc {
	return attestationDoc{
		Statement:      a.Statement,
		SignerID:       a.SignerID,
		SignerUsername: a.SignerUsername,
		SignerFullName: a.SignerFullName,
		Meaning:        a.Meaning,
		Comments:       a.Comments,
		SignedAt:       a.SignedAt,
	}
}

func toTestRecordDoc(t *domain.TestRecord) testRecordDoc {
	doc := testRecordDoc{
		ID:                t.ID,
		BatchID:           t.BatchID,
		BatchNumber:       t.BatchNumber,
		ProductName:       t.ProductName,
		TestType:          t.TestType,
		TestMethod:        t.TestMethod,
		EquipmentUsed:     t.EquipmentUsed,
		TestDate:          t.TestDate,
		TestTime:          t.TestTime,
		AnalystName:       t.AnalystName,
		AnalystID:         t.AnalystID,
		ResultValue:       t.ResultValue,
		ResultUnit:        t.ResultUnit,
		SpecificationMin:  t.SpecificationMin,
		SpecificationMax:  t.SpecificationMax,
		PassFailStatus:    string(t.PassFailStatus),
		Comments:          t.Comments,
		DeviationNotes:    t.DeviationNotes,
		RetestRequired:    t.RetestRequired,
		Attachments:       t.Attachments,
		Signature:         t.Signature,
		SignatureDate:     t.SignatureDate,
		SignatureMeaning:  t.SignatureMeaning,
		SignatureComments: t.SignatureComments,
		ReviewedBy:        t.ReviewedBy,
		ReviewDate:        t.ReviewDate,
		Version:           t.Version,
		CreatedAt:         t.CreatedAt,
		UpdatedAt:         t.UpdatedAt,
	}
	if doc.Attachments == nil {
		doc.Attachments = []string{}
	}
	if len(t.Signatures) > 0 {
		doc.Signatures = make(map[string]attestationDoc, len(t.Signatures))
		for k, a := range t.Signatures {
			doc.Signatures[k] = toAttestationDoc(a)
		}
	}
	return doc
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}

func (d testRecordDoc) toDomain() *domain.TestRecord {
	t := &domain.TestRecord{
		ID:                d.ID,
		BatchID:           d.BatchID,
		BatchNumber:       d.BatchNumber,
		ProductName:       d.ProductName,
		TestType:          d.TestType,
		TestMethod:        d.TestMethod,
		EquipmentUsed:     d.EquipmentUsed,
		TestDate:          d.TestDate,
		TestTime:          d.TestTime,
		AnalystName:       d.AnalystName,
		AnalystID:         d.AnalystID,
		ResultValue:       d.ResultValue,
		ResultUnit:        d.ResultUnit,
		SpecificationMin:  d.SpecificationMin,
		SpecificationMax:  d.SpecificationMax,
		PassFailStatus:    domain.PassFailStatus(d.PassFailStatus),
		Comments:          d.Comments,
		DeviationNotes:    d.DeviationNotes,
		RetestRequired:    d.RetestRequired,
		Attachments:       d.Attachments,
		Signature:         d.Signature,
		SignatureDate:     utcPtr(d.SignatureDate),
		SignatureMeaning:  d.SignatureMeaning,
		SignatureComments: d.SignatureComments,
		ReviewedBy:        d.ReviewedBy,
		ReviewDate:        utcPtr(d.ReviewDate),
		Version:           d.Version,
		CreatedAt:         d.CreatedAt.UTC(),
		UpdatedAt:         d.UpdatedAt.UTC(),
	}
	if t.Attachments == nil {
		t.Attachments = []string{}
	}
	if len(d.Signatures) > 0 {
		t.Signatures = make(map[string]domain.Attestation, len(d.Signatures))
		for k, a := range d.Signatures {
			t.Signatures[k] = domain.Attestation{
				Statement:      a.Statement,
				SignerID:       a.SignerID,
				SignerUsername: a.SignerUsername,
				SignerFullName: a.SignerFullName,
				Meaning:        a.Meaning,
				Comments:       a.Comments,
				SignedAt:       a.SignedAt.UTC(),
			}
		}
	}
	return t
}

func (r *TestRecordRepository) Create(ctx context.Context, rec *domain.TestRecord) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, toTestRecordDoc(rec)); err != nil {
		if isDuplicateKey(err) {
			return fmt.Errorf("%w: test record %s already exists", domain.ErrConflict, rec.ID)
		}
		return fmt.Errorf("insert test record: %w", err)
	}
	return nil
}

func (r *TestRecordRepository) FindByID(ctx context.Context, id string) (*domain.TestRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc testRecordDoc
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.NewNotFoundError("test record", id)
		}
		return nil, fmt.Errorf("find test record: %w", err)
	}
	return doc.toDomain(), nil
}

// Update sets the substantive fields and status. Signature fields are not in
// the $set, so a concurrent signature is never overwritten.
func (r *TestRecordRepository) Update(ctx context.Context, rec *domain.TestRecord, expectedVersion int64) (*domain.TestRecord, error) {
	set := bson.M{
		"test_type":         rec.TestType,
		"test_method":       rec.TestMethod,
		"equipment_used":    rec.EquipmentUsed,
		"test_date":         rec.TestDate,
		"test_time":         rec.TestTime,
		"result_value":      rec.ResultValue,
		"result_unit":       rec.ResultUnit,
		"specification_min": rec.SpecificationMin,
		"specification_max": rec.SpecificationMax,
		"pass_fail_status":  string(rec.PassFailStatus),
		"comments":          rec.Comments,
		"deviation_notes":   rec.DeviationNotes,
		"retest_required":   rec.RetestRequired,
		"attachments":       rec.Attachments,
		"updated_at":        rec.UpdatedAt,
	}
	if rec.Attachments == nil {
		set["attachments"] = []string{}
	}
	return r.guardedUpdate(ctx, rec.ID, &expectedVersion, bson.M{"$set": set, "$inc": bson.M{"version": 1}})
}

// ApplySignature stores the attestation under its meaning key and refreshes
// the latest-signature summary. Other meanings are left untouched.
func (r *TestRecordRepository) ApplySignature(
	ctx context.Context,
	id string,
	a domain.Attestation,
	expectedVersion *int64,
) (*domain.TestRecord, error) {
	set := bson.M{
		"signature":          a.Statement,
		"signature_date":     a.SignedAt,
		"signature_meaning":  a.Meaning,
		"signature_comments": a.Comments,
		"updated_at":         a.SignedAt,
	}
	set["signatures."+domain.MeaningKey(a.Meaning)] = toAttestationDoc(a)
	if a.IsReview() {
		set["reviewed_by"] = a.SignerUsername
		set["review_date"] = a.SignedAt
	}
	return r.guardedUpdate(ctx, id, expectedVersion, bson.M{"$set": set, "$inc": bson.M{"version": 1}})
}

func (r *TestRecordRepository) guardedUpdate(ctx context.Context, id string, expectedVersion *int64, update bson.M) (*domain.TestRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"id": id}
	if expectedVersion != nil {
		filter["version"] = *expectedVersion
	}

	var doc testRecordDoc
	err := r.coll.FindOneAndUpdate(ctx, filter, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&doc)
	if err == nil {
		return doc.toDomain(), nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("update test record: %w", err)
	}

	n, countErr := r.coll.CountDocuments(ctx, bson.M{"id": id})
	if countErr != nil {
		return nil, fmt.Errorf("update test record: %w", countErr)
	}
	if n == 0 {
		return nil, domain.NewNotFoundError("test record", id)
	}
	return nil, fmt.Errorf("%w: test record %s changed concurrently", domain.ErrConflict, id)
}

func searchFilter(f domain.TestRecordFilter) bson.M {
	filter := bson.M{}
	if f.BatchNumber != "" {
		filter["batch_number"] = primitive.Regex{Pattern: regexp.QuoteMeta(f.BatchNumber), Options: "i"}
	}
	if f.ProductName != "" {
		filter["product_name"] = primitive.Regex{Pattern: regexp.QuoteMeta(f.ProductName), Options: "i"}
	}
	if f.TestType != "" {
		filter["test_type"] = f.TestType
	}
	if f.PassFailStatus != "" {
		filter["pass_fail_status"] = string(f.PassFailStatus)
	}
	if f.DateFrom != "" || f.DateTo != "" {
		dateFilter := bson.M{}
		if f.DateFrom != "" {
			dateFilter["$gte"] = f.DateFrom
		}
		if f.DateTo != "" {
			dateFilter["$lte"] = f.DateTo
		}
		filter["test_date"] = dateFilter
	}
	return filter
}

// Search streams matching records newest first. Each range over the result
// opens a new cursor.
func (r *TestRecordRepository) Search(ctx context.Context, f domain.TestRecordFilter) iter.Seq2[*domain.TestRecord, error] {
	return func(yield func(*domain.TestRecord, error) bool) {
		opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "id", Value: -1}})
		cur, err := r.coll.Find(ctx, searchFilter(f), opts)
		if err != nil {
			yield(nil, fmt.Errorf("search test records: %w", err))
			return
		}
		defer cur.Close(context.WithoutCancel(ctx))

		for cur.Next(ctx) {
			var doc testRecordDoc
			if err := cur.Decode(&doc); err != nil {
				yield(nil, fmt.Errorf("decode test record: %w", err))
				return
			}
			if !yield(doc.toDomain(), nil) {
				return
			}
		}
		if err := cur.Err(); err != nil {
			yield(nil, fmt.Errorf("search test records: %w", err))
		}
	}
}
