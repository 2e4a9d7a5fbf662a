package fiber

import (
	"bytes"
	"context"
	"errors"
	"net/http"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"

	"ad-metrics-service/internal/logging"
	"ad-metrics-service/internal/rows/core/usecase"
	"ad-metrics-service/internal/validation"
)

type StoreRowUseCase interface {
	Execute(ctx context.Context, in usecase.StoreRowInput) (bool, error)
	BulkStoreRows(ctx context.Context, in usecase.BulkStoreRowsInput) (usecase.BulkStoreRowsResult, error)
}

type RowHandler struct {
	storeUC StoreRowUseCase
}

func NewRowHandler(storeUC StoreRowUseCase) *RowHandler {
	return &RowHandler{storeUC: storeUC}
}

func (h *RowHandler) Register(r fiber.Router) {
	r.Post("/rows", h.CreateRow)
	r.Post("/rows/bulk", h.BulkCreateRows)
}

// CreateRow godoc
// @Summary Store a report row
// @Description Snapshots one report row; re-posting the same customer, day, device and location is a no-op
// @Tags Rows
// @Accept json
// @Produce json
// @Param request body CreateRowRequest true "Row payload"
// @Success 201 {object} CreateRowResponse
// @Success 200 {object} CreateRowResponse "Duplicate row"
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/rows [post]
func (h *RowHandler) CreateRow(c *fiber.Ctx) error {
	var req CreateRowRequest
	if err := decodeBody(c.Body(), &req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error: "invalid_json",
		})
	}
	if err := validation.Struct(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error: err.Error(),
		})
	}

	created, err := h.storeUC.Execute(c.UserContext(), toInput(req))
	if err != nil {
		return h.writeError(c, err)
	}

	if !created {
		return c.Status(http.StatusOK).JSON(CreateRowResponse{
			Success: true,
			Status:  "duplicate",
		})
	}

	return c.Status(http.StatusCreated).JSON(CreateRowResponse{
		Success: true,
		Status:  "created",
	})
}

// BulkCreateRows godoc
// @Summary Bulk store report rows
// @Description Validates every row, then stores them individually
// @Tags Rows
// @Accept json
// @Produce json
// @Param request body BulkCreateRowsRequest true "Bulk row payload"
// @Success 201 {object} BulkCreateRowsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/rows/bulk [post]
func (h *RowHandler) BulkCreateRows(c *fiber.Ctx) error {
	var req BulkCreateRowsRequest
	if err := decodeBody(c.Body(), &req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error: "invalid_json",
		})
	}

	if len(req.Rows) == 0 {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error: "rows_list_required",
		})
	}
	if err := validation.Struct(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error: err.Error(),
		})
	}

	result, err := h.storeUC.BulkStoreRows(c.UserContext(), usecase.BulkStoreRowsInput{
		Rows: lo.Map(req.Rows, func(r CreateRowRequest, _ int) usecase.StoreRowInput {
			return toInput(r)
		}),
	})
	if err != nil {
		return h.writeError(c, err)
	}

	return c.Status(http.StatusCreated).JSON(BulkCreateRowsResponse{
		Success:    true,
		Created:    result.Created,
		Duplicates: result.Duplicates,
	})
}

func (h *RowHandler) writeError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, usecase.ErrInvalidRow),
		errors.Is(err, usecase.ErrFutureDate):
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error: err.Error(),
		})
	default:
		logging.Ctx(c.UserContext()).Error().Err(err).Msg("row ingestion failed")
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Error: "internal_server_error",
		})
	}
}

func toInput(r CreateRowRequest) usecase.StoreRowInput {
	return usecase.StoreRowInput{
		CustomerID:       r.CustomerID,
		ReportDate:       r.ReportDate,
		Device:           r.Device,
		Impressions:      r.Impressions,
		Clicks:           r.Clicks,
		CostMicros:       r.CostMicros,
		LocationCriteria: r.LocationCriteria,
	}
}

// numbers stay json.Number so they are stored verbatim
func decodeBody(body []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	return dec.Decode(v)
}
