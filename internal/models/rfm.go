package models

type Segment string

const (
	SegmentTopSpenders Segment = "Top Spenders"
	SegmentLoyal       Segment = "Loyal Customers"
	SegmentAtRisk      Segment = "At Risk Customers"
	SegmentNew         Segment = "New Customers"
	SegmentLowValue    Segment = "Low Value Customers"
)

// SegmentOffers maps each behavioral segment to its suggested offer.
var SegmentOffers = map[Segment]string{
	SegmentTopSpenders: "VIP 15% Discount",
	SegmentLoyal:       "Early Access Deals",
	SegmentAtRisk:      "10% Comeback Coupon",
	SegmentNew:         "Welcome Offer",
	SegmentLowValue:    "Bundle Discount",
}

// CustomerRFM is a derived view: recomputed from the transaction set on
// every query, never persisted.
type CustomerRFM struct {
	CustomerID string
	Recency    int
	Frequency  int
	Monetary   float64
	Segment    Segment
	Offer      string
}
