package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Sanjana0524/Pharmaceutical-Quality-Control-Record-Portal/internal/core/domain"
)

const listLimit = 1000

type batchDoc struct {
	ID                    string    `bson:"id"`
	BatchNumber           string    `bson:"batch_number"`
	ProductName           string    `bson:"product_name"`
	ManufacturingDate     string    `bson:"manufacturing_date"`
	ExpiryDate            string    `bson:"expiry_date"`
	BatchSize             string    `bson:"batch_size"`
	BatchQuantity         string    `bson:"batch_quantity"`
	ManufacturingLocation string    `bson:"manufacturing_location"`
	CreatedBy             string    `bson:"created_by"`
	CreatedAt             time.Time `bson:"created_at"`
}

type specificationDoc struct {
	ID              string `bson:"id"`
	ProductName     string `bson:"product_name"`
	TestType        string `bson:"test_type"`
	MinLimit        string `bson:"min_limit"`
	MaxLimit        string `bson:"max_limit"`
	Unit            string `bson:"unit"`
	MethodReference string `bson:"method_reference"`
}

type equipmentDoc struct {
	ID                  string `bson:"id"`
	EquipmentName       string `bson:"equipment_name"`
	EquipmentID         string `bson:"equipment_id"`
	CalibrationStatus   string `bson:"calibration_status"`
	LastCalibrationDate string `bson:"last_calibration_date"`
	NextCalibrationDate string `bson:"next_calibration_date"`
}

// findAll decodes up to listLimit documents of type D and converts each one.
func findAll[D any, T any](ctx context.Context, coll *mongo.Collection, filter bson.M, sort bson.D, conv func(D) *T) ([]*T, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetLimit(listLimit)
	if sort != nil {
		opts.SetSort(sort)
	}
	cur, err := coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", coll.Name(), err)
	}
	var docs []D
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode %s: %w", coll.Name(), err)
	}
	out := make([]*T, 0, len(docs))
	for _, d := range docs {
		out = append(out, conv(d))
	}
	return out, nil
}

func insert(ctx context.Context, coll *mongo.Collection, doc any) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := coll.InsertOne(ctx, doc); err != nil {
		if isDuplicateKey(err) {
			return fmt.Errorf("%w: duplicate %s", domain.ErrConflict, coll.Name())
		}
		return fmt.Errorf("insert %s: %w", coll.Name(), err)
	}
	return nil
}

// BatchRepository implements ports.BatchRepository using MongoDB.
type BatchRepository struct {
	coll *mongo.Collection
}

func NewBatchRepository(db *mongo.Database) *BatchRepository {
	return &BatchRepository{coll: db.Collection(collectionBatches)}
}

func (d batchDoc) toDomain() *domain.Batch {
	return &domain.Batch{
		ID:                    d.ID,
		BatchNumber:           d.BatchNumber,
		ProductName:           d.ProductName,
		ManufacturingDate:     d.ManufacturingDate,
		ExpiryDate:            d.ExpiryDate,
		BatchSize:             d.BatchSize,
		BatchQuantity:         d.BatchQuantity,
		ManufacturingLocation: d.ManufacturingLocation,
		CreatedBy:             d.CreatedBy,
		CreatedAt:             d.CreatedAt.UTC(),
	}
}

func (r *BatchRepository) Create(ctx context.Context, b *domain.Batch) error {
	return insert(ctx, r.coll, batchDoc{
		ID:                    b.ID,
		BatchNumber:           b.BatchNumber,
		ProductName:           b.ProductName,
		ManufacturingDate:     b.ManufacturingDate,
		ExpiryDate:            b.ExpiryDate,
		BatchSize:             b.BatchSize,
		BatchQuantity:         b.BatchQuantity,
		ManufacturingLocation: b.ManufacturingLocation,
		CreatedBy:             b.CreatedBy,
		CreatedAt:             b.CreatedAt,
	})
}

func (r *BatchRepository) FindByID(ctx context.Context, id string) (*domain.Batch, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc batchDoc
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.NewNotFoundError("batch", id)
		}
		return nil, fmt.Errorf("find batch: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *BatchRepository) List(ctx context.Context) ([]*domain.Batch, error) {
	return findAll(ctx, r.coll, bson.M{}, bson.D{{Key: "created_at", Value: -1}}, batchDoc.toDomain)
}

// SpecificationRepository implements ports.SpecificationRepository using MongoDB.
type SpecificationRepository struct {
	coll *mongo.Collection
}

func NewSpecificationRepository(db *mongo.Database) *SpecificationRepository {
	return &SpecificationRepository{coll: db.Collection(collectionSpecifications)}
}

func (d specificationDoc) toDomain() *domain.Specification {
	return &domain.Specification{
		ID:              d.ID,
		ProductName:     d.ProductName,
		TestType:        d.TestType,
		MinLimit:        d.MinLimit,
		MaxLimit:        d.MaxLimit,
		Unit:            d.Unit,
		MethodReference: d.MethodReference,
	}
}

func (r *SpecificationRepository) Create(ctx context.Context, s *domain.Specification) error {
	return insert(ctx, r.coll, specificationDoc{
		ID:              s.ID,
		ProductName:     s.ProductName,
		TestType:        s.TestType,
		MinLimit:        s.MinLimit,
		MaxLimit:        s.MaxLimit,
		Unit:            s.Unit,
		MethodReference: s.MethodReference,
	})
}

func (r *SpecificationRepository) List(ctx context.Context) ([]*domain.Specification, error) {
	return findAll(ctx, r.coll, bson.M{}, nil, specificationDoc.toDomain)
}

// FindFor returns the most recently inserted specification for the pair.
func (r *SpecificationRepository) FindFor(ctx context.Context, productName, testType string) (*domain.Specification, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc specificationDoc
	err := r.coll.FindOne(ctx,
		bson.M{"product_name": productName, "test_type": testType},
		options.FindOne().SetSort(bson.D{{Key: "_id", Value: -1}}),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.NewNotFoundError("specification", productName+"/"+testType)
		}
		return nil, fmt.Errorf("find specification: %w", err)
	}
	return doc.toDomain(), nil
}

// EquipmentRepository implements ports.EquipmentRepository using MongoDB.
type EquipmentRepository struct {
	coll *mongo.Collection
}

func NewEquipmentRepository(db *mongo.Database) *EquipmentRepository {
	return &EquipmentRepository{coll: db.Collection(collectionEquipment)}
}

func (d equipmentDoc) toDomain() *domain.Equipment {
	return &domain.Equipment{
		ID:                  d.ID,
		EquipmentName:       d.EquipmentName,
		EquipmentID:         d.EquipmentID,
		CalibrationStatus:   d.CalibrationStatus,
		LastCalibrationDate: d.LastCalibrationDate,
		NextCalibrationDate: d.NextCalibrationDate,
	}
}

func (r *EquipmentRepository) Create(ctx context.Context, e *domain.Equipment) error {
	return insert(ctx, r.coll, equipmentDoc{
		ID:                  e.ID,
		EquipmentName:       e.EquipmentName,
		EquipmentID:         e.EquipmentID,
		CalibrationStatus:   e.CalibrationStatus,
		LastCalibrationDate: e.LastCalibrationDate,
		NextCalibrationDate: e.NextCalibrationDate,
	})
}

func (r *EquipmentRepository) List(ctx context.Context) ([]*domain.Equipment, error) {
	return findAll(ctx, r.coll, bson.M{}, nil, equipmentDoc.toDomain)
}
