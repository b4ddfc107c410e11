package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Sanjana0524/Pharmaceutical-Quality-Control-Record-Portal/internal/api/metrics"
	"github.com/Sanjana0524/Pharmaceutical-Quality-Control-Record-Portal/internal/core/domain"
	"github.com/Sanjana0524/Pharmaceutical-Quality-Control-Record-Portal/internal/core/ports"
)

// maxPatchBytes bounds the raw update body read before decoding.
const maxPatchBytes = 1 << 20

// TestRecordHandler handles HTTP requests for test records and signatures.
type TestRecordHandler struct {
	records ports.TestRecordService
	signer  ports.SignatureService
}

func NewTestRecordHandler(records ports.TestRecordService, signer ports.SignatureService) *TestRecordHandler {
	return &TestRecordHandler{records: records, signer: signer}
}

// --- Request / Response types ---

type createTestRecordRequest struct {
	BatchID          string   `json:"batch_id"`
	BatchNumber      string   `json:"batch_number"`
	ProductName      string   `json:"product_name"`
	TestType         string   `json:"test_type"`
	TestMethod       string   `json:"test_method"`
	EquipmentUsed    string   `json:"equipment_used"`
	TestDate         string   `json:"test_date"`
	TestTime         string   `json:"test_time"`
	ResultValue      string   `json:"result_value"`
	ResultUnit       string   `json:"result_unit"`
	SpecificationMin string   `json:"specification_min"`
	SpecificationMax string   `json:"specification_max"`
	Comments         string   `json:"comments"`
	DeviationNotes   string   `json:"deviation_notes"`
	RetestRequired   bool     `json:"retest_required"`
	Attachments      []string `json:"attachments"`
}

type signRequest struct {
	Username        string `json:"username" validate:"required"`
	Password        string `json:"password" validate:"required"`
	Meaning         string `json:"meaning" validate:"required"`
	Comments        string `json:"comments"`
	ExpectedVersion *int64 `json:"expected_version,omitempty" validate:"omitempty,gte=1"`
}

type signResponse struct {
	Message     string             `json:"message"`
	Signature   domain.Attestation `json:"signature"`
	AuditID     string             `json:"audit_id"`
	Version     int64              `json:"version"`
	SignedAt    time.Time          `json:"signed_at"`
	RecordID    string             `json:"test_id"`
	ReviewedBy  string             `json:"reviewed_by,omitempty"`
	Signatures  int                `json:"signature_count"`
	StatusAfter string             `json:"pass_fail_status"`
}

type listResponse[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}

func toCreateTestRecordInput(req createTestRecordRequest) ports.CreateTestRecordInput {
	return ports.CreateTestRecordInput{
		BatchID:          req.BatchID,
		BatchNumber:      req.BatchNumber,
		ProductName:      req.ProductName,
		TestType:         req.TestType,
		TestMethod:       req.TestMethod,
		EquipmentUsed:    req.EquipmentUsed,
		TestDate:         req.TestDate,
		TestTime:         req.TestTime,
		ResultValue:      req.ResultValue,
		ResultUnit:       req.ResultUnit,
		SpecificationMin: req.SpecificationMin,
		SpecificationMax: req.SpecificationMax,
		Comments:         req.Comments,
		DeviationNotes:   req.DeviationNotes,
		RetestRequired:   req.RetestRequired,
		Attachments:      req.Attachments,
	}
}

// Create handles POST /api/tests.
//
// @Summary      Create a test record
// @Tags         tests
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createTestRecordRequest  true  "Test record"
// @Success      201   {object}  domain.TestRecord
// @Failure      400   {object}  map[string]string
// @Failure      422   {object}  map[string]any
// @Router       /api/tests [post]
func (h *TestRecordHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	var req createTestRecordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}

	rec, err := h.records.Create(c.Request().Context(), toCreateTestRecordInput(req), actor)
	if rec == nil {
		return err
	}
	metrics.TestRecordsCreatedTotal.WithLabelValues(string(rec.PassFailStatus)).Inc()
	return respond(c, http.StatusCreated, rec, err)
}

// List handles GET /api/tests. Query parameters are the search filters.
//
// @Summary      List test records
// @Tags         tests
// @Produce      json
// @Security     BearerAuth
// @Param        batch_number      query     string  false  "Case-insensitive substring"
// @Param        product_name      query     string  false  "Case-insensitive substring"
// @Param        test_type         query     string  false  "Exact match"
// @Param        pass_fail_status  query     string  false  "Pass, Fail or Pending Review"
// @Param        date_from         query     string  false  "Inclusive, YYYY-MM-DD"
// @Param        date_to           query     string  false  "Inclusive, YYYY-MM-DD"
// @Success      200               {object}  listResponse[domain.TestRecord]
// @Router       /api/tests [get]
func (h *TestRecordHandler) List(c echo.Context) error {
	filter := domain.TestRecordFilter{
		BatchNumber:    c.QueryParam("batch_number"),
		ProductName:    c.QueryParam("product_name"),
		TestType:       c.QueryParam("test_type"),
		PassFailStatus: domain.PassFailStatus(c.QueryParam("pass_fail_status")),
		DateFrom:       c.QueryParam("date_from"),
		DateTo:         c.QueryParam("date_to"),
	}
	return h.search(c, filter)
}

// Search handles POST /api/tests/search.
//
// @Summary      Search test records
// @Tags         tests
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      domain.TestRecordFilter  true  "Conjunctive filters"
// @Success      200   {object}  listResponse[domain.TestRecord]
// @Router       /api/tests/search [post]
func (h *TestRecordHandler) Search(c echo.Context) error {
	var filter domain.TestRecordFilter
	if err := c.Bind(&filter); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	return h.search(c, filter)
}

func (h *TestRecordHandler) search(c echo.Context, filter domain.TestRecordFilter) error {
	items := []*domain.TestRecord{}
	for rec, err := range h.records.Search(c.Request().Context(), filter) {
		if err != nil {
			return err
		}
		items = append(items, rec)
	}
	return c.JSON(http.StatusOK, listResponse[*domain.TestRecord]{Items: items, Total: len(items)})
}

// Get handles GET /api/tests/:id.
//
// @Summary      Get a test record
// @Tags         tests
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Test record id"
// @Success      200  {object}  domain.TestRecord
// @Failure      404  {object}  map[string]string
// @Router       /api/tests/{id} [get]
func (h *TestRecordHandler) Get(c echo.Context) error {
	rec, err := h.records.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	c.Response().Header().Set(echo.HeaderETag, strconv.Quote(strconv.FormatInt(rec.Version, 10)))
	return c.JSON(http.StatusOK, rec)
}

// Update handles PUT /api/tests/:id. The body is a whitelisted patch; an
// If-Match header carrying the record version enables the conflict check.
//
// @Summary      Update a test record
// @Tags         tests
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id        path      string  true   "Test record id"
// @Param        If-Match  header    string  false  "Expected record version"
// @Param        body      body      domain.TestRecordPatch  true  "Fields to change"
// @Success      200       {object}  domain.TestRecord
// @Failure      404       {object}  map[string]string
// @Failure      409       {object}  map[string]string
// @Failure      422       {object}  map[string]any
// @Router       /api/tests/{id} [put]
func (h *TestRecordHandler) Update(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	expected, err := ifMatchVersion(c.Request().Header.Get(echo.HeaderIfMatch))
	if err != nil {
		return err
	}
	body, err := io.ReadAll(io.LimitReader(c.Request().Body, maxPatchBytes))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	patch, err := domain.DecodeTestRecordPatch(body)
	if err != nil {
		return err
	}

	rec, err := h.records.Update(c.Request().Context(), ports.UpdateTestRecordInput{
		ID:              c.Param("id"),
		Patch:           patch,
		ExpectedVersion: expected,
	}, actor)
	if rec == nil {
		return err
	}
	metrics.TestRecordsUpdatedTotal.Inc()
	c.Response().Header().Set(echo.HeaderETag, strconv.Quote(strconv.FormatInt(rec.Version, 10)))
	return respond(c, http.StatusOK, rec, err)
}

// ifMatchVersion parses an If-Match header holding a record version, quoted
// or not. An empty header means no version check.
func ifMatchVersion(header string) (*int64, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(strings.Trim(strings.TrimPrefix(header, "W/"), `"`), 10, 64)
	if err != nil || v < 1 {
		return nil, domain.NewValidationError("If-Match", "must be a record version")
	}
	return &v, nil
}

// Sign handles POST /api/tests/:id/sign. The credential in the body is
// verified afresh; the session only identifies who submitted the request.
//
// @Summary      Electronically sign a test record
// @Tags         tests
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string       true  "Test record id"
// @Param        body  body      signRequest  true  "Signer credential and meaning"
// @Success      200   {object}  signResponse
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /api/tests/{id}/sign [post]
func (h *TestRecordHandler) Sign(c echo.Context) error {
	start := time.Now()
	defer func() { metrics.SignatureDuration.Observe(time.Since(start).Seconds()) }()

	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	var req signRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	result, err := h.signer.Sign(c.Request().Context(), ports.SignInput{
		RecordID:        c.Param("id"),
		Username:        req.Username,
		Password:        req.Password,
		Meaning:         req.Meaning,
		Comments:        req.Comments,
		ExpectedVersion: req.ExpectedVersion,
	}, actor)
	if result == nil {
		switch {
		case errors.Is(err, domain.ErrAuthentication), errors.Is(err, domain.ErrForbidden):
			metrics.SignaturesTotal.WithLabelValues("rejected").Inc()
		default:
			metrics.SignaturesTotal.WithLabelValues("error").Inc()
		}
		return err
	}
	metrics.SignaturesTotal.WithLabelValues("signed").Inc()

	return respond(c, http.StatusOK, signResponse{
		Message:     "Test record signed",
		Signature:   result.Attestation,
		AuditID:     result.AuditID,
		Version:     result.Record.Version,
		SignedAt:    result.Attestation.SignedAt,
		RecordID:    result.Record.ID,
		ReviewedBy:  result.Record.ReviewedBy,
		Signatures:  len(result.Record.Signatures),
		StatusAfter: string(result.Record.PassFailStatus),
	}, err)
}

// Dashboard handles GET /api/analytics/dashboard.
//
// @Summary      Dashboard statistics
// @Tags         analytics
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.Dashboard
// @Router       /api/analytics/dashboard [get]
func (h *TestRecordHandler) Dashboard(c echo.Context) error {
	d, err := h.records.Dashboard(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, d)
}
