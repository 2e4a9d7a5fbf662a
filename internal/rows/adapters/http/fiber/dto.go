package fiber

// CreateRowRequest represents a row snapshot payload
// @Description Report row to store for later aggregation
type CreateRowRequest struct {
	CustomerID       string `json:"customer_id" validate:"required" example:"1234567890"`
	ReportDate       string `json:"report_date" validate:"required,datetime=2006-01-02" example:"2025-01-15"`
	Device           string `json:"device" example:"MOBILE_ANDROID"`
	Impressions      any    `json:"impressions" swaggertype:"string" example:"1200"`
	Clicks           any    `json:"clicks" swaggertype:"string" example:"37"`
	CostMicros       any    `json:"cost_micros,omitempty" swaggertype:"string"`
	LocationCriteria any    `json:"location_criteria,omitempty" swaggertype:"string"`
}

type CreateRowResponse struct {
	Success bool   `json:"success" example:"true"`
	Status  string `json:"status" example:"created"`
}

type BulkCreateRowsRequest struct {
	Rows []CreateRowRequest `json:"rows" validate:"required,min=1,max=1000,dive"`
}

type BulkCreateRowsResponse struct {
	Success    bool `json:"success" example:"true"`
	Created    int  `json:"created"`
	Duplicates int  `json:"duplicates"`
}

type ErrorResponse struct {
	Success bool   `json:"success" example:"false"`
	Error   string `json:"error" example:"invalid_row"`
}
