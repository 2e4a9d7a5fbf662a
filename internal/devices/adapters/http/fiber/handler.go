package fiber

import (
	"context"
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"ad-metrics-service/internal/devices/adapters/rowjson"
	"ad-metrics-service/internal/devices/core/domain"
	"ad-metrics-service/internal/devices/core/usecase"
	"ad-metrics-service/internal/logging"
	"ad-metrics-service/internal/validation"
)

type SummarizeRowsUseCase interface {
	Execute(ctx context.Context, rows []domain.RawMetricRow) *domain.DeviceReport
}

type ReportUseCase interface {
	Execute(ctx context.Context, in usecase.ReportQueryInput) (*domain.DeviceReport, error)
}

type DeviceReportHandler struct {
	summarizeUC SummarizeRowsUseCase
	relayUC     ReportUseCase
	storedUC    ReportUseCase
}

func NewDeviceReportHandler(summarizeUC SummarizeRowsUseCase, relayUC, storedUC ReportUseCase) *DeviceReportHandler {
	return &DeviceReportHandler{
		summarizeUC: summarizeUC,
		relayUC:     relayUC,
		storedUC:    storedUC,
	}
}

// Register mounts the device report routes on r.
func (h *DeviceReportHandler) Register(r fiber.Router) {
	r.Post("/reports/devices/aggregate", h.AggregateRows)
	r.Get("/reports/devices", h.GetDeviceReport)
	r.Get("/reports/devices/stored", h.GetStoredReport)
}

// AggregateRows godoc
// @Summary Aggregate report rows by device
// @Description Folds the posted rows into android, ios, desktop and tablet buckets. The body is either a JSON array of rows or {"rows": [...]}.
// @Tags Devices
// @Accept json
// @Produce json
// @Param request body AggregateRowsRequest true "Report rows"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/reports/devices/aggregate [post]
func (h *DeviceReportHandler) AggregateRows(c *fiber.Ctx) error {
	rows, err := rowjson.Decode(c.Body())
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error: "invalid_json",
		})
	}

	report := h.summarizeUC.Execute(c.UserContext(), rows)

	return c.Status(http.StatusOK).JSON(SuccessResponse{
		Success: true,
		Data:    toReportResponse(report),
	})
}

// GetDeviceReport godoc
// @Summary Device report from the ads API
// @Description Queries the ads API for device-segmented rows and aggregates them
// @Tags Devices
// @Produce json
// @Param customer_id query string true "Ads customer id"
// @Param from query string true "First day, YYYY-MM-DD"
// @Param to query string true "Last day, YYYY-MM-DD"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/reports/devices [get]
func (h *DeviceReportHandler) GetDeviceReport(c *fiber.Ctx) error {
	// nil when ADS_API_BASE_URL is unset
	if h.relayUC == nil {
		return c.Status(http.StatusServiceUnavailable).JSON(ErrorResponse{
			Error: "ads api is not configured",
		})
	}
	return h.serveReport(c, h.relayUC)
}

// GetStoredReport godoc
// @Summary Device report from stored rows
// @Description Aggregates rows previously ingested through /api/v1/rows
// @Tags Devices
// @Produce json
// @Param customer_id query string true "Ads customer id"
// @Param from query string true "First day, YYYY-MM-DD"
// @Param to query string true "Last day, YYYY-MM-DD"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/reports/devices/stored [get]
func (h *DeviceReportHandler) GetStoredReport(c *fiber.Ctx) error {
	return h.serveReport(c, h.storedUC)
}

func (h *DeviceReportHandler) serveReport(c *fiber.Ctx, uc ReportUseCase) error {
	var params ReportQueryParams
	if err := c.QueryParser(&params); err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error: "invalid query parameters",
		})
	}
	if err := validation.Struct(&params); err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error: err.Error(),
		})
	}

	report, err := uc.Execute(c.UserContext(), usecase.ReportQueryInput{
		CustomerID: params.CustomerID,
		From:       params.From,
		To:         params.To,
	})
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidReportQuery),
			errors.Is(err, usecase.ErrInvalidDateRange):
			return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
				Error: err.Error(),
			})
		case errors.Is(err, usecase.ErrUpstreamUnavailable):
			return c.Status(http.StatusBadGateway).JSON(ErrorResponse{
				Error: err.Error(),
			})
		default:
			logging.Ctx(c.UserContext()).Error().Err(err).Msg("device report failed")
			return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
				Error: "internal_server_error",
			})
		}
	}

	return c.Status(http.StatusOK).JSON(SuccessResponse{
		Success: true,
		Data:    toReportResponse(report),
	})
}
