package export

import (
	"encoding/json"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

const (
	NotAvailable = "N/A"
	Never        = "Never"

	DisplayDateLayout = "Jan 02, 2006"
)

var inputDateLayouts = []string{
	"2006-01-02",
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

// FormatDate renders v as "Jan 02, 2006". Sentinel strings pass through and
// empty values become N/A.
func FormatDate(v any) string {
	switch t := v.(type) {
	case nil:
		return NotAvailable
	case time.Time:
		if t.IsZero() {
			return NotAvailable
		}
		return t.Format(DisplayDateLayout)
	case *time.Time:
		if t == nil {
			return NotAvailable
		}
		return FormatDate(*t)
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return NotAvailable
		}
		if s == Never || s == NotAvailable {
			return s
		}
		for _, layout := range inputDateLayouts {
			if parsed, err := time.Parse(layout, s); err == nil {
				return parsed.Format(DisplayDateLayout)
			}
		}
		return s
	default:
		return FormatValue(v)
	}
}

// FormatCurrency renders v as dollars with thousands separators, rounded half away
// from zero to cents: 1234.5 -> "$1,234.50", -3 -> "-$3.00".
func FormatCurrency(v any) string {
	d, ok := toDecimal(v)
	if !ok {
		return NotAvailable
	}
	d = d.Round(2)

	sign := ""
	if d.Sign() < 0 {
		sign = "-"
		d = d.Abs()
	}

	fixed := d.StringFixed(2)
	intPart, frac, _ := strings.Cut(fixed, ".")
	whole, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		bi, _ := new(big.Int).SetString(intPart, 10)
		return sign + "$" + humanize.BigComma(bi) + "." + frac
	}
	return sign + "$" + humanize.Comma(whole) + "." + frac
}

// FormatValue renders a plain cell. Nil and empty values become N/A.
func FormatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return NotAvailable
	case string:
		if strings.TrimSpace(t) == "" {
			return NotAvailable
		}
		return t
	case []byte:
		if len(t) == 0 {
			return NotAvailable
		}
		return string(t)
	case time.Time:
		return FormatDate(t)
	case *time.Time:
		return FormatDate(t)
	case bool:
		if t {
			return "Yes"
		}
		return "No"
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%d", t)
	case decimal.Decimal:
		return t.String()
	case fmt.Stringer:
		return t.String()
	case map[string]any, []any:
		b, err := json.Marshal(t)
		if err != nil {
			return NotAvailable
		}
		return string(b)
	default:
		return fmt.Sprintf("%v", t)
	}
}

// FormatPercent renders v with one decimal and a percent sign, or N/A.
func FormatPercent(v any) string {
	d, ok := toDecimal(v)
	if !ok {
		return NotAvailable
	}
	return d.Round(1).StringFixed(1) + "%"
}

func toDecimal(v any) (decimal.Decimal, bool) {
	switch n := v.(type) {
	case nil:
		return decimal.Decimal{}, false
	case decimal.Decimal:
		return n, true
	case float64:
		return decimal.NewFromFloat(n), true
	case float32:
		return decimal.NewFromFloat32(n), true
	case int:
		return decimal.NewFromInt(int64(n)), true
	case int32:
		return decimal.NewFromInt32(n), true
	case int64:
		return decimal.NewFromInt(n), true
	case uint64:
		return decimal.NewFromBigInt(new(big.Int).SetUint64(n), 0), true
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(n))
		if err != nil {
			return decimal.Decimal{}, false
		}
		return d, true
	case *float64:
		if n == nil {
			return decimal.Decimal{}, false
		}
		return decimal.NewFromFloat(*n), true
	default:
		return decimal.Decimal{}, false
	}
}
