package export

import "strings"

// Kind selects the formatting rule applied to a column's values.
type Kind int

const (
	Plain Kind = iota
	Date
	Currency
	Computed
)

// Column describes one report column. Compute is used only for Computed columns and
// receives the whole row.
type Column struct {
	Key     string
	Label   string
	Kind    Kind
	Compute func(row map[string]any) string
}

// Col infers the kind from the key: keys mentioning date, or the timestamp columns, are
// dates; keys mentioning cost are currency.
func Col(key, label string) Column {
	return Column{Key: key, Label: label, Kind: InferKind(key)}
}

func DateCol(key, label string) Column { return Column{Key: key, Label: label, Kind: Date} }

func CurrencyCol(key, label string) Column { return Column{Key: key, Label: label, Kind: Currency} }

func ComputedCol(key, label string, fn func(row map[string]any) string) Column {
	return Column{Key: key, Label: label, Kind: Computed, Compute: fn}
}

func InferKind(key string) Kind {
	k := strings.ToLower(key)
	switch {
	case strings.Contains(k, "date"), k == "timestamp", k == "created_at":
		return Date
	case strings.Contains(k, "cost"):
		return Currency
	default:
		return Plain
	}
}

// Format renders the column's value for row. Every renderer goes through here.
func (c Column) Format(row map[string]any) string {
	switch c.Kind {
	case Computed:
		if c.Compute == nil {
			return NotAvailable
		}
		if s := c.Compute(row); s != "" {
			return s
		}
		return NotAvailable
	case Date:
		return FormatDate(row[c.Key])
	case Currency:
		return FormatCurrency(row[c.Key])
	default:
		return FormatValue(row[c.Key])
	}
}

func Labels(columns []Column) []string {
	labels := make([]string, len(columns))
	for i, c := range columns {
		labels[i] = c.Label
	}
	return labels
}
