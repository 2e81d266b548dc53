package importer

import (
	"errors"
	"io"

	"github.com/MrJamesThe3rd/studiodesk/internal/finance"
)

var ErrUnknownFormat = errors.New("unknown import format")

// Format names a supported ledger export layout.
type Format string

const (
	FormatLedger Format = "ledger"
)

type Importer interface {
	Parse(r io.Reader) ([]finance.PaymentParams, error)
}
