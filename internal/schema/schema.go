package schema

type ColumnType string

const (
	TypeInt    ColumnType = "int"
	TypeFloat  ColumnType = "float"
	TypeString ColumnType = "string"
	TypeDate   ColumnType = "date"
)

// ColumnSpec declares one expected column. The ordered spec list defines
// the exact header shape an upload must carry.
type ColumnSpec struct {
	Key      string
	Type     ColumnType
	Required bool
}

// DefaultColumns is the CRM invoice schema uploads are validated against.
func DefaultColumns() []ColumnSpec {
	return []ColumnSpec{
		{Key: "Invoice", Type: TypeInt, Required: true},
		{Key: "CustomerID", Type: TypeInt, Required: true},
		{Key: "CustomerName", Type: TypeString, Required: true},
		{Key: "Amount", Type: TypeFloat, Required: true},
		{Key: "Currency", Type: TypeString, Required: true},
		{Key: "InvoiceDate", Type: TypeDate, Required: true},
		{Key: "Status", Type: TypeString, Required: true},
	}
}
