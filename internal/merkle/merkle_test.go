package merkle

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"
	"time"

	"crm-insight/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tx(date string, customer string, qty, price, total float64) models.Transaction {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		panic(err)
	}
	return models.Transaction{
		InvoiceDate: d,
		CustomerID:  customer,
		Quantity:    qty,
		UnitPrice:   price,
		TotalAmount: total,
	}
}

func hexSum(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

func TestRoot_Empty(t *testing.T) {
	assert.Equal(t, "", Root(nil))
	assert.Equal(t, "", Root([]models.Transaction{}))
}

func TestRoot_SingleLeaf(t *testing.T) {
	record := tx("2024-01-01", "7890", 2, 10.5, 21)

	want := hexSum("2024-01-01 00:00:00|7890|2|10.5|21")
	assert.Equal(t, want, Root([]models.Transaction{record}))
}

func TestRoot_Deterministic(t *testing.T) {
	records := []models.Transaction{
		tx("2024-01-01", "a", 1, 1, 1),
		tx("2024-01-02", "b", 2, 2, 4),
	}

	first := Root(records)
	second := Root(records)
	assert.Equal(t, first, second)
	assert.Len(t, first, 64)
}

func TestRoot_OrderSensitive(t *testing.T) {
	a := tx("2024-01-01", "a", 1, 1, 1)
	b := tx("2024-01-02", "b", 2, 2, 4)

	assert.NotEqual(t,
		Root([]models.Transaction{a, b}),
		Root([]models.Transaction{b, a}),
	)
}

func TestRoot_OddNodeDuplication(t *testing.T) {
	records := []models.Transaction{
		tx("2024-01-01", "a", 1, 1, 1),
		tx("2024-01-02", "b", 2, 2, 4),
		tx("2024-01-03", "c", 3, 3, 9),
	}

	l1 := hexSum("2024-01-01 00:00:00|a|1|1|1")
	l2 := hexSum("2024-01-02 00:00:00|b|2|2|4")
	l3 := hexSum("2024-01-03 00:00:00|c|3|3|9")

	// the unmatched third leaf pairs with itself, giving two parents
	p1 := hexSum(l1 + l2)
	p2 := hexSum(l3 + l3)
	want := hexSum(p1 + p2)

	assert.Equal(t, want, Root(records))
}

func TestHashFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "transactions.csv")
	content := []byte("InvoiceDate,CustomerID,Quantity,UnitPrice\n2024-01-01,7890,2,10.5\n")
	require.NoError(t, os.WriteFile(path, content, 0o644))

	got, err := HashFile(path)
	require.NoError(t, err)

	sum := sha256.Sum256(content)
	assert.Equal(t, hex.EncodeToString(sum[:]), got)
}

func TestHashFile_Missing(t *testing.T) {
	_, err := HashFile(filepath.Join(t.TempDir(), "absent.csv"))
	require.Error(t, err)
	assert.True(t, os.IsNotExist(err))
}
