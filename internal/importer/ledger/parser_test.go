package ledger_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/MrJamesThe3rd/studiodesk/internal/finance"
	"github.com/MrJamesThe3rd/studiodesk/internal/importer/ledger"
)

func date(y, m, d int) *time.Time {
	t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestParser_Ledger(t *testing.T) {
	csv := `AM Square Interiors - payment ledger
Project;Residential Villa - Damansara Heights

Date;Type;Description;Amount;Paid;Status;Invoice
20-01-2024;Deposit;Initial Deposit - 30%;7.500,00;7.500,00;paid;INV-2024-001
15-03-2024;milestone;Design Phase Completion;RM 7.500,00;;;INV-2024-002
15-07-2024;Consultant Fee;Structural review;1.000,00;400,00;;
;;Total;16.000,00;7.900,00;;
`

	params, err := ledger.NewParser().Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, params, 3)

	assert.Equal(t, finance.PaymentParams{
		Type:          finance.TypeDeposit,
		Description:   "Initial Deposit - 30%",
		Amount:        750_000,
		PaidAmount:    750_000,
		Status:        finance.StatusPaid,
		DueDate:       date(2024, 1, 20),
		InvoiceNumber: "INV-2024-001",
	}, params[0])

	assert.Equal(t, int64(750_000), params[1].Amount)
	assert.Equal(t, finance.StatusPending, params[1].Status)
	assert.Equal(t, finance.TypeMilestone, params[1].Type)

	assert.Equal(t, finance.TypeConsultantFee, params[2].Type)
	assert.Equal(t, finance.StatusPartial, params[2].Status)
	assert.Empty(t, params[2].InvoiceNumber)
}

func TestParser_Receipts(t *testing.T) {
	csv := "date;description;received\n18-01-2024;Initial Deposit;7.500,00\n"

	params, err := ledger.NewParser().Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, params, 1)

	p := params[0]
	assert.Equal(t, finance.TypeOther, p.Type)
	assert.Equal(t, int64(750_000), p.PaidAmount)
	assert.Equal(t, finance.StatusPaid, p.Status)
	assert.Equal(t, date(2024, 1, 18), p.PaidDate)
	assert.Nil(t, p.DueDate)
}

func TestParser_Windows1252(t *testing.T) {
	csv := "Date;Type;Description;Amount;Paid\n05-12-2024;material;Café chairs;1.200,00;0,00\n"

	encoded, err := charmap.Windows1252.NewEncoder().Bytes([]byte(csv))
	require.NoError(t, err)

	params, err := ledger.NewParser().Parse(bytes.NewReader(encoded))
	require.NoError(t, err)
	require.Len(t, params, 1)
	assert.Equal(t, "Café chairs", params[0].Description)
}

func TestParser_Errors(t *testing.T) {
	type testCase struct {
		name string
		csv  string
	}

	tests := []testCase{
		{name: "No Header", csv: "foo;bar\n1;2\n"},
		{name: "Missing Description", csv: "Date;Description;Amount;Paid\n01-01-2024;;10,00;0\n"},
		{name: "Bad Amount", csv: "Date;Description;Amount;Paid\n01-01-2024;Deposit;ten;0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ledger.NewParser().Parse(strings.NewReader(tt.csv))
			assert.Error(t, err)
		})
	}
}
