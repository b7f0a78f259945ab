// Package merkle builds a tamper-evidence digest over an ordered
// transaction set. The digest changes under any change to field values
// or record order; it carries no per-leaf inclusion proofs.
package merkle

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
	"strconv"
	"strings"

	"crm-insight/internal/models"
)

const fileChunkSize = 8192

// Root computes the Merkle root of the records in the order given,
// never re-sorting. An empty set yields the empty-string root.
func Root(records []models.Transaction) string {
	if len(records) == 0 {
		return ""
	}

	nodes := make([]string, len(records))
	for i, tx := range records {
		nodes[i] = leafHash(tx)
	}

	for len(nodes) > 1 {
		// Odd levels pair the unmatched last node with itself.
		if len(nodes)%2 == 1 {
			nodes = append(nodes, nodes[len(nodes)-1])
		}
		next := make([]string, 0, len(nodes)/2)
		for i := 0; i < len(nodes); i += 2 {
			sum := sha256.Sum256([]byte(nodes[i] + nodes[i+1]))
			next = append(next, hex.EncodeToString(sum[:]))
		}
		nodes = next
	}

	return nodes[0]
}

// leafHash hashes the pipe-joined string rendering of the record's
// fields in fixed order: InvoiceDate, CustomerID, Quantity, UnitPrice,
// TotalAmount. Dates render as "2006-01-02 15:04:05", numbers in
// shortest round-trip form.
func leafHash(tx models.Transaction) string {
	joined := strings.Join([]string{
		tx.InvoiceDate.Format("2006-01-02 15:04:05"),
		tx.CustomerID,
		formatNumber(tx.Quantity),
		formatNumber(tx.UnitPrice),
		formatNumber(tx.TotalAmount),
	}, "|")
	sum := sha256.Sum256([]byte(joined))
	return hex.EncodeToString(sum[:])
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// HashFile computes the whole-artifact hash of the untransformed source
// file, streamed in fixed-size chunks.
func HashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	digest := sha256.New()
	buf := make([]byte, fileChunkSize)
	for {
		n, err := f.Read(buf)
		if n > 0 {
			digest.Write(buf[:n])
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
	}

	return hex.EncodeToString(digest.Sum(nil)), nil
}
