package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Transaction is the shape consumed by the Merkle digest builder and the
// RFM segmentation engine.
type Transaction struct {
	InvoiceDate time.Time
	CustomerID  string
	Quantity    float64
	UnitPrice   float64
	TotalAmount float64
}

var transactionDateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// TransactionFromRow cleans one stored batch row into a Transaction.
// Rows without a parseable InvoiceDate or a CustomerID are skipped by
// the caller (ok=false). TotalAmount falls back to Quantity*UnitPrice,
// with "Amount" accepted as an alias for the total.
func TransactionFromRow(row map[string]any) (Transaction, bool) {
	var tx Transaction

	dateStr := strings.TrimSpace(stringValue(row["InvoiceDate"]))
	if dateStr == "" {
		return tx, false
	}
	var parsed bool
	for _, layout := range transactionDateLayouts {
		if t, err := time.Parse(layout, dateStr); err == nil {
			tx.InvoiceDate = t
			parsed = true
			break
		}
	}
	if !parsed {
		return tx, false
	}

	tx.CustomerID = strings.TrimSpace(stringValue(row["CustomerID"]))
	if tx.CustomerID == "" {
		return tx, false
	}

	tx.Quantity, _ = floatValue(row["Quantity"])
	tx.UnitPrice, _ = floatValue(row["UnitPrice"])

	if total, ok := floatValue(row["TotalAmount"]); ok {
		tx.TotalAmount = total
	} else if total, ok := floatValue(row["Amount"]); ok {
		tx.TotalAmount = total
	} else {
		tx.TotalAmount = tx.Quantity * tx.UnitPrice
	}

	return tx, true
}

func stringValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64)
	case int64:
		return strconv.FormatInt(val, 10)
	default:
		return fmt.Sprint(val)
	}
}

func floatValue(v any) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case int64:
		return float64(val), true
	case int:
		return float64(val), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
