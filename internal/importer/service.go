package importer

import (
	"fmt"
	"io"

	"github.com/MrJamesThe3rd/studiodesk/internal/finance"
	"github.com/MrJamesThe3rd/studiodesk/internal/importer/ledger"
)

type Service struct {
	importers map[Format]Importer
}

func NewService() *Service {
	return &Service{
		importers: map[Format]Importer{
			FormatLedger: ledger.NewParser(),
		},
	}
}

// Import parses r with the importer registered for format. An empty format
// means FormatLedger.
func (s *Service) Import(format Format, r io.Reader) ([]finance.PaymentParams, error) {
	if format == "" {
		format = FormatLedger
	}

	imp, ok := s.importers[format]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}

	return imp.Parse(r)
}
