package engine

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Providers phrase field names inconsistently, in English or Spanish,
// depending on the model that happened to answer. Each logical field accepts
// a small fixed set of synonymous keys, checked in order.
var (
	amountKeys      = []string{"amount", "monto"}
	descriptionKeys = []string{"description", "descripcion", "descripción", "detalle"}
	currencyKeys    = []string{"currency", "moneda"}
	deadlineKeys    = []string{"when", "deadline", "fecha_limite", "fecha_límite"}
	contentKeys     = []string{"content", "contenido", "texto"}
)

// stringField returns the first non-empty string value found under any of the
// synonym keys.
func stringField(fields map[string]any, keys []string) (string, bool) {
	for _, key := range keys {
		value, ok := fields[key]
		if !ok {
			continue
		}
		if s, ok := value.(string); ok && s != "" {
			return s, true
		}
	}
	return "", false
}

// amountField extracts a monetary amount. Providers send numbers as JSON
// numbers or as strings ("12.50"); both are accepted. Anything unparseable
// degrades to zero, matching the contract's default.
func amountField(fields map[string]any) decimal.Decimal {
	for _, key := range amountKeys {
		value, ok := fields[key]
		if !ok {
			continue
		}
		switch v := value.(type) {
		case float64:
			return decimal.NewFromFloat(v)
		case string:
			if d, err := decimal.NewFromString(v); err == nil {
				return d
			}
		case json.Number:
			if d, err := decimal.NewFromString(v.String()); err == nil {
				return d
			}
		}
	}
	return decimal.Zero
}
