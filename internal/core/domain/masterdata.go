package domain

import "time"

// Batch is a manufactured lot that test records refer to.
type Batch struct {
	ID                    string    `json:"id"`
	BatchNumber           string    `json:"batch_number"`
	ProductName           string    `json:"product_name"`
	ManufacturingDate     string    `json:"manufacturing_date"`
	ExpiryDate            string    `json:"expiry_date"`
	BatchSize             string    `json:"batch_size"`
	BatchQuantity         string    `json:"batch_quantity"`
	ManufacturingLocation string    `json:"manufacturing_location"`
	CreatedBy             string    `json:"created_by"`
	CreatedAt             time.Time `json:"created_at"`
}

// Specification is the acceptable range for a product/test-type pair.
type Specification struct {
	ID              string `json:"id"`
	ProductName     string `json:"product_name"`
	TestType        string `json:"test_type"`
	MinLimit        string `json:"min_limit"`
	MaxLimit        string `json:"max_limit"`
	Unit            string `json:"unit"`
	MethodReference string `json:"method_reference"`
}

// Equipment is an instrument used to run tests.
type Equipment struct {
	ID                  string `json:"id"`
	EquipmentName       string `json:"equipment_name"`
	EquipmentID         string `json:"equipment_id"`
	CalibrationStatus   string `json:"calibration_status"`
	LastCalibrationDate string `json:"last_calibration_date"`
	NextCalibrationDate string `json:"next_calibration_date"`
}
