package finance

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// FormatAmount renders an amount in sen as ringgit with thousands
// separators: 302500000 -> "RM 3,025,000.00".
func FormatAmount(sen int64) string {
	d := decimal.New(sen, -2)

	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}

	fixed := d.StringFixed(2)
	whole := message.NewPrinter(language.English).Sprintf("%d", d.IntPart())

	return sign + "RM " + whole + fixed[len(fixed)-3:]
}
