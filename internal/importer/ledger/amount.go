package ledger

import (
	"strings"

	"github.com/shopspring/decimal"
)

// parseAmount parses a European-formatted amount into sen, ignoring a
// leading "RM" currency tag. "1.234,56" -> 123456, "RM 10,00" -> 1000.
func parseAmount(s string) (int64, error) {
	clean := strings.TrimSpace(s)
	clean = strings.TrimPrefix(strings.TrimPrefix(clean, "RM"), "rm")
	clean = strings.TrimSpace(clean)
	clean = strings.ReplaceAll(clean, ".", "")
	clean = strings.ReplaceAll(clean, ",", ".")

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return 0, err
	}

	return d.Shift(2).Round(0).IntPart(), nil
}
