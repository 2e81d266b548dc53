package ledger

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	enc "github.com/MrJamesThe3rd/studiodesk/internal/encoding"
	"github.com/MrJamesThe3rd/studiodesk/internal/finance"
)

// Parser reads semicolon-separated payment ledgers exported from
// spreadsheets. The header row may appear anywhere in the file; rows above
// it and rows without a valid date are skipped.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) Parse(r io.Reader) ([]finance.PaymentParams, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	reader := csv.NewReader(utf8r)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	profile, cols, headerIdx := detectProfile(rows)
	if profile == nil {
		return nil, fmt.Errorf("no matching ledger format found: expected Date, Description and Amount or Received columns")
	}

	return parseRows(profile, cols, rows[headerIdx+1:], headerIdx+1)
}

// colIndex maps lower-cased column names to their index in the row.
type colIndex map[string]int

func (c colIndex) lookup(name string) int {
	if name == "" {
		return -1
	}

	i, ok := c[strings.ToLower(name)]
	if !ok {
		return -1
	}

	return i
}

func detectProfile(rows [][]string) (*Profile, colIndex, int) {
	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			name := strings.ToLower(strings.TrimSpace(cell))
			if name != "" {
				cols[name] = i
			}
		}

		for i := range profiles {
			if matchesProfile(&profiles[i], cols) {
				return &profiles[i], cols, rowIdx
			}
		}
	}

	return nil, nil, 0
}

func matchesProfile(p *Profile, cols colIndex) bool {
	for _, name := range p.requiredCols() {
		if cols.lookup(name) < 0 {
			return false
		}
	}

	return true
}

func parseRows(p *Profile, cols colIndex, rows [][]string, headerRowNum int) ([]finance.PaymentParams, error) {
	var (
		dateIdx    = cols.lookup(p.DateCol)
		descIdx    = cols.lookup(p.DescCol)
		amountIdx  = cols.lookup(p.AmountCol)
		paidIdx    = cols.lookup(p.PaidCol)
		typeIdx    = cols.lookup(p.TypeCol)
		statusIdx  = cols.lookup(p.StatusCol)
		invoiceIdx = cols.lookup(p.InvoiceCol)
		notesIdx   = cols.lookup(p.NotesCol)
	)

	var params []finance.PaymentParams

	for i, row := range rows {
		rowNum := headerRowNum + i + 2 // 1-based, skipping header

		date, ok := parseDate(cellValue(row, dateIdx))
		if !ok {
			continue
		}

		desc := cellValue(row, descIdx)
		if desc == "" {
			return nil, fmt.Errorf("row %d: missing description", rowNum)
		}

		amount, err := parseAmount(cellValue(row, amountIdx))
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid amount %q", rowNum, cellValue(row, amountIdx))
		}

		pp := finance.PaymentParams{
			Type:          parseType(cellValue(row, typeIdx)),
			Description:   desc,
			Amount:        amount,
			InvoiceNumber: cellValue(row, invoiceIdx),
			Notes:         cellValue(row, notesIdx),
		}

		if p.Received {
			pp.PaidAmount = amount
			pp.Status = finance.StatusPaid
			pp.PaidDate = &date
		} else {
			if s := cellValue(row, paidIdx); s != "" {
				paid, err := parseAmount(s)
				if err != nil {
					return nil, fmt.Errorf("row %d: invalid paid amount %q", rowNum, s)
				}

				pp.PaidAmount = paid
			}

			pp.DueDate = &date
			pp.Status = parseStatus(cellValue(row, statusIdx), pp.Amount, pp.PaidAmount)
		}

		params = append(params, pp)
	}

	return params, nil
}

var dateLayouts = []string{"02-01-2006", "02/01/2006", time.DateOnly}

// parseDate returns false for empty cells and footer rows.
func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

func parseType(s string) finance.PaymentType {
	if t := finance.PaymentType(strings.ToLower(strings.ReplaceAll(s, " ", "-"))); t.Valid() {
		return t
	}

	return finance.TypeOther
}

// parseStatus takes the ledger's own status when it names one. Otherwise the
// status is inferred from the amounts once, at import time.
func parseStatus(s string, amount, paid int64) finance.PaymentStatus {
	if st := finance.PaymentStatus(strings.ToLower(s)); st.Valid() {
		return st
	}

	switch {
	case paid <= 0:
		return finance.StatusPending
	case paid >= amount:
		return finance.StatusPaid
	default:
		return finance.StatusPartial
	}
}

func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}
