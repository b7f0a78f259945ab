package dto

type Prediction struct {
	Invoice          any     `json:"Invoice"`
	CustomerID       any     `json:"CustomerID,omitempty"`
	PredictedRevenue float64 `json:"predicted_revenue"`
}

type PredictionMetadata struct {
	Count        int     `json:"count"`
	TotalRevenue float64 `json:"total_revenue"`
}

type PredictionResponse struct {
	Predictions []Prediction       `json:"predictions"`
	Metadata    PredictionMetadata `json:"metadata"`
}
