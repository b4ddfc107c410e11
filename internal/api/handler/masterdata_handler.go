package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Sanjana0524/Pharmaceutical-Quality-Control-Record-Portal/internal/core/domain"
	"github.com/Sanjana0524/Pharmaceutical-Quality-Control-Record-Portal/internal/core/ports"
)

// MasterDataHandler handles batches, specifications and equipment.
type MasterDataHandler struct {
	service ports.MasterDataService
}

func NewMasterDataHandler(service ports.MasterDataService) *MasterDataHandler {
	return &MasterDataHandler{service: service}
}

type createBatchRequest struct {
	BatchNumber           string `json:"batch_number"`
	ProductName           string `json:"product_name"`
	ManufacturingDate     string `json:"manufacturing_date"`
	ExpiryDate            string `json:"expiry_date"`
	BatchSize             string `json:"batch_size"`
	BatchQuantity         string `json:"batch_quantity"`
	ManufacturingLocation string `json:"manufacturing_location"`
}

type createSpecificationRequest struct {
	ProductName     string `json:"product_name"`
	TestType        string `json:"test_type"`
	MinLimit        string `json:"min_limit"`
	MaxLimit        string `json:"max_limit"`
	Unit            string `json:"unit"`
	MethodReference string `json:"method_reference"`
}

type createEquipmentRequest struct {
	EquipmentName       string `json:"equipment_name"`
	EquipmentID         string `json:"equipment_id"`
	CalibrationStatus   string `json:"calibration_status"`
	LastCalibrationDate string `json:"last_calibration_date"`
	NextCalibrationDate string `json:"next_calibration_date"`
}

func list[T any](c echo.Context, items []T, err error) error {
	if err != nil {
		return err
	}
	if items == nil {
		items = []T{}
	}
	return c.JSON(http.StatusOK, listResponse[T]{Items: items, Total: len(items)})
}

// CreateBatch handles POST /api/batches.
//
// @Summary      Create a batch
// @Tags         batches
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createBatchRequest  true  "Batch"
// @Success      201   {object}  domain.Batch
// @Failure      422   {object}  map[string]any
// @Router       /api/batches [post]
func (h *MasterDataHandler) CreateBatch(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	var req createBatchRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}

	b, err := h.service.CreateBatch(c.Request().Context(), domain.Batch{
		BatchNumber:           req.BatchNumber,
		ProductName:           req.ProductName,
		ManufacturingDate:     req.ManufacturingDate,
		ExpiryDate:            req.ExpiryDate,
		BatchSize:             req.BatchSize,
		BatchQuantity:         req.BatchQuantity,
		ManufacturingLocation: req.ManufacturingLocation,
	}, actor)
	if b == nil {
		return err
	}
	return respond(c, http.StatusCreated, b, err)
}

// ListBatches handles GET /api/batches.
//
// @Summary      List batches
// @Tags         batches
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  listResponse[domain.Batch]
// @Router       /api/batches [get]
func (h *MasterDataHandler) ListBatches(c echo.Context) error {
	items, err := h.service.ListBatches(c.Request().Context())
	return list(c, items, err)
}

// GetBatch handles GET /api/batches/:id.
//
// @Summary      Get a batch
// @Tags         batches
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Batch id"
// @Success      200  {object}  domain.Batch
// @Failure      404  {object}  map[string]string
// @Router       /api/batches/{id} [get]
func (h *MasterDataHandler) GetBatch(c echo.Context) error {
	b, err := h.service.GetBatch(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, b)
}

// CreateSpecification handles POST /api/specifications.
//
// @Summary      Create a specification
// @Tags         specifications
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createSpecificationRequest  true  "Specification limits"
// @Success      201   {object}  domain.Specification
// @Failure      403   {object}  map[string]string
// @Router       /api/specifications [post]
func (h *MasterDataHandler) CreateSpecification(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	var req createSpecificationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}

	s, err := h.service.CreateSpecification(c.Request().Context(), domain.Specification{
		ProductName:     req.ProductName,
		TestType:        req.TestType,
		MinLimit:        req.MinLimit,
		MaxLimit:        req.MaxLimit,
		Unit:            req.Unit,
		MethodReference: req.MethodReference,
	}, actor)
	if s == nil {
		return err
	}
	return respond(c, http.StatusCreated, s, err)
}

// ListSpecifications handles GET /api/specifications.
//
// @Summary      List specifications
// @Tags         specifications
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  listResponse[domain.Specification]
// @Router       /api/specifications [get]
func (h *MasterDataHandler) ListSpecifications(c echo.Context) error {
	items, err := h.service.ListSpecifications(c.Request().Context())
	return list(c, items, err)
}

// CreateEquipment handles POST /api/equipment.
//
// @Summary      Register equipment
// @Tags         equipment
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createEquipmentRequest  true  "Equipment"
// @Success      201   {object}  domain.Equipment
// @Failure      403   {object}  map[string]string
// @Router       /api/equipment [post]
func (h *MasterDataHandler) CreateEquipment(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	var req createEquipmentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}

	e, err := h.service.CreateEquipment(c.Request().Context(), domain.Equipment{
		EquipmentName:       req.EquipmentName,
		EquipmentID:         req.EquipmentID,
		CalibrationStatus:   req.CalibrationStatus,
		LastCalibrationDate: req.LastCalibrationDate,
		NextCalibrationDate: req.NextCalibrationDate,
	}, actor)
	if e == nil {
		return err
	}
	return respond(c, http.StatusCreated, e, err)
}

// ListEquipment handles GET /api/equipment.
//
// @Summary      List equipment
// @Tags         equipment
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  listResponse[domain.Equipment]
// @Router       /api/equipment [get]
func (h *MasterDataHandler) ListEquipment(c echo.Context) error {
	items, err := h.service.ListEquipment(c.Request().Context())
	return list(c, items, err)
}
