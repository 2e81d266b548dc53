package view

import (
	"context"
	"time"

	"github.com/MrJamesThe3rd/studiodesk/internal/finance"
)

const dbTimeout = 5 * time.Second

// FormatAmount formats an amount in sen as ringgit.
func FormatAmount(sen int64) string {
	return finance.FormatAmount(sen)
}

// FormatDate formats a time.Time into YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(time.DateOnly)
}

// FormatDatePtr is FormatDate with "-" for a missing date.
func FormatDatePtr(t *time.Time) string {
	if t == nil {
		return "-"
	}

	return FormatDate(*t)
}

// DbCtx returns a context with a standard timeout for database operations.
func DbCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), dbTimeout)
}
