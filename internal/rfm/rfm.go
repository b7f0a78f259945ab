// Package rfm scores customers on recency, frequency and monetary value
// and assigns each one a behavioral segment. Thresholds are recomputed
// from the full customer population on every invocation; nothing here is
// cached as authoritative state.
package rfm

import (
	"math"
	"sort"
	"time"

	"crm-insight/internal/models"
)

type SegmentCount struct {
	Segment models.Segment
	Count   int
}

type thresholds struct {
	recencyLow    float64
	recencyHigh   float64
	frequencyHigh float64
	frequencyLow  float64
	monetaryHigh  float64
	monetaryLow   float64
}

// Compute derives per-customer RFM metrics and segments from a cleaned
// transaction set. The result is sorted descending by monetary value.
// An empty input yields an empty result, not an error. With one or two
// distinct customers the percentile thresholds degenerate toward the
// available values; that is expected.
func Compute(records []models.Transaction, now time.Time) []models.CustomerRFM {
	if len(records) == 0 {
		return nil
	}

	type aggregate struct {
		lastInvoice time.Time
		frequency   int
		monetary    float64
	}
	byCustomer := make(map[string]*aggregate)
	order := make([]string, 0)
	for _, tx := range records {
		agg, ok := byCustomer[tx.CustomerID]
		if !ok {
			agg = &aggregate{lastInvoice: tx.InvoiceDate}
			byCustomer[tx.CustomerID] = agg
			order = append(order, tx.CustomerID)
		}
		if tx.InvoiceDate.After(agg.lastInvoice) {
			agg.lastInvoice = tx.InvoiceDate
		}
		agg.frequency++
		agg.monetary += tx.TotalAmount
	}

	customers := make([]models.CustomerRFM, 0, len(byCustomer))
	for _, id := range order {
		agg := byCustomer[id]
		customers = append(customers, models.CustomerRFM{
			CustomerID: id,
			Recency:    int(now.Sub(agg.lastInvoice).Hours() / 24),
			Frequency:  agg.frequency,
			Monetary:   agg.monetary,
		})
	}

	th := computeThresholds(customers)
	for i := range customers {
		customers[i].Segment = assignSegment(customers[i], th)
		customers[i].Offer = models.SegmentOffers[customers[i].Segment]
	}

	sort.SliceStable(customers, func(i, j int) bool {
		if customers[i].Monetary != customers[j].Monetary {
			return customers[i].Monetary > customers[j].Monetary
		}
		return customers[i].CustomerID < customers[j].CustomerID
	})

	return customers
}

// Summarize counts customers per segment, ordered by segment name.
func Summarize(customers []models.CustomerRFM) []SegmentCount {
	counts := make(map[models.Segment]int)
	for _, c := range customers {
		counts[c.Segment]++
	}

	summary := make([]SegmentCount, 0, len(counts))
	for segment, count := range counts {
		summary = append(summary, SegmentCount{Segment: segment, Count: count})
	}
	sort.Slice(summary, func(i, j int) bool {
		return summary[i].Segment < summary[j].Segment
	})
	return summary
}

func computeThresholds(customers []models.CustomerRFM) thresholds {
	recency := make([]float64, len(customers))
	frequency := make([]float64, len(customers))
	monetary := make([]float64, len(customers))
	for i, c := range customers {
		recency[i] = float64(c.Recency)
		frequency[i] = float64(c.Frequency)
		monetary[i] = c.Monetary
	}

	return thresholds{
		recencyLow:    percentile(recency, 30),
		recencyHigh:   percentile(recency, 70),
		frequencyHigh: percentile(frequency, 80),
		frequencyLow:  percentile(frequency, 30),
		monetaryHigh:  percentile(monetary, 80),
		monetaryLow:   percentile(monetary, 35),
	}
}

// assignSegment evaluates the rules in fixed precedence order, first
// match wins. The order carries business meaning and must not change.
func assignSegment(c models.CustomerRFM, th thresholds) models.Segment {
	recency := float64(c.Recency)
	frequency := float64(c.Frequency)

	switch {
	case c.Monetary >= th.monetaryHigh:
		return models.SegmentTopSpenders
	case frequency >= th.frequencyHigh && recency <= th.recencyHigh:
		return models.SegmentLoyal
	case recency >= th.recencyHigh:
		return models.SegmentAtRisk
	case recency <= th.recencyLow && frequency <= th.frequencyLow:
		return models.SegmentNew
	case c.Monetary <= th.monetaryLow:
		return models.SegmentLowValue
	default:
		return models.SegmentLoyal
	}
}

// percentile uses linear interpolation between closest ranks, matching
// the thresholds the original scoring was tuned against.
func percentile(values []float64, p float64) float64 {
	if len(values) == 0 {
		return 0
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	rank := p / 100 * float64(len(sorted)-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo == hi {
		return sorted[lo]
	}
	return sorted[lo] + (sorted[hi]-sorted[lo])*(rank-float64(lo))
}
