package dto

type CustomerRFMResponse struct {
	CustomerID string  `json:"CustomerID"`
	Recency    int     `json:"recency"`
	Frequency  int     `json:"frequency"`
	Monetary   float64 `json:"monetary"`
	Segment    string  `json:"segment"`
	Offer      string  `json:"offer"`
}

type SegmentSummary struct {
	Segment        string `json:"segment"`
	Count          int    `json:"count"`
	SuggestedOffer string `json:"suggested_offer"`
}

type SegmentsResponse struct {
	Customers []CustomerRFMResponse `json:"customers"`
	Summary   []SegmentSummary      `json:"summary"`
}

type IntegrityResponse struct {
	FileHash   string `json:"file_hash"`
	MerkleRoot string `json:"merkle_root"`
}
