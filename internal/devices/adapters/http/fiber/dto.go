package fiber

import "ad-metrics-service/internal/devices/core/domain"

// RowPayload documents one report row as sent by the dashboard or a script.
// Decoding goes through rowjson.
// @Description Raw report row; numeric fields may be numbers or strings. A non-string device leaves the row unclassified
type RowPayload struct {
	Device           any `json:"device" swaggertype:"string" example:"ANDROID_SMARTPHONE"`
	Impressions      any `json:"impressions" swaggertype:"string" example:"1200"`
	Clicks           any `json:"clicks" swaggertype:"string" example:"37"`
	CostMicros       any `json:"cost_micros,omitempty" swaggertype:"string"`
	LocationCriteria any `json:"location_criteria,omitempty" swaggertype:"string"`
}

// AggregateRowsRequest is the wrapped form of the aggregate body. A bare
// JSON array of rows is accepted too.
type AggregateRowsRequest struct {
	Rows []RowPayload `json:"rows"`
}

// ReportQueryParams are the query parameters of the report endpoints.
type ReportQueryParams struct {
	CustomerID string `query:"customer_id" validate:"required"`
	From       string `query:"from" validate:"required,datetime=2006-01-02"`
	To         string `query:"to" validate:"required,datetime=2006-01-02"`
}

type BucketResponse struct {
	Impressions int64 `json:"impressions" example:"1200"`
	Clicks      int64 `json:"clicks" example:"37"`
	Requests    int64 `json:"requests" example:"960"`
}

// DevicesResponse fixes the bucket order: android, ios, desktop, tablet.
type DevicesResponse struct {
	Android BucketResponse `json:"android"`
	IOS     BucketResponse `json:"ios"`
	Desktop BucketResponse `json:"desktop"`
	Tablet  BucketResponse `json:"tablet"`
}

type DeviceReportResponse struct {
	Devices   DevicesResponse `json:"devices"`
	Locations map[string]any  `json:"locations"`
}

type SuccessResponse struct {
	Success bool                 `json:"success" example:"true"`
	Data    DeviceReportResponse `json:"data"`
}

type ErrorResponse struct {
	Success bool   `json:"success" example:"false"`
	Error   string `json:"error" example:"customer_id is required"`
}

func toBucketResponse(b domain.DeviceBucket) BucketResponse {
	return BucketResponse{
		Impressions: b.Impressions,
		Clicks:      b.Clicks,
		Requests:    b.Requests,
	}
}

func toReportResponse(r *domain.DeviceReport) DeviceReportResponse {
	locations := r.Locations
	if locations == nil {
		locations = map[string]any{}
	}
	return DeviceReportResponse{
		Devices: DevicesResponse{
			Android: toBucketResponse(r.Devices.Bucket(domain.Android)),
			IOS:     toBucketResponse(r.Devices.Bucket(domain.IOS)),
			Desktop: toBucketResponse(r.Devices.Bucket(domain.Desktop)),
			Tablet:  toBucketResponse(r.Devices.Bucket(domain.Tablet)),
		},
		Locations: locations,
	}
}
