package finance_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/studiodesk/internal/finance"
)

func TestSplitConflicts(t *testing.T) {
	record := finance.Record{
		ProjectID: "1",
		Payments: []finance.Payment{
			{ID: "p1", Description: "Initial Deposit", Amount: 750000, InvoiceNumber: "INV-2024-001"},
			{ID: "p2", Description: "Site visit", Amount: 5000},
		},
	}

	params := []finance.PaymentParams{
		{Description: "Deposit (re-issued)", Amount: 1, InvoiceNumber: "inv-2024-001"},
		{Description: "site visit ", Amount: 5000},
		{Description: "Site visit", Amount: 6000},
		{Description: "Final", Amount: 100, InvoiceNumber: "INV-2024-099"},
	}

	newParams, conflicts := finance.SplitConflicts(record, params)

	if assert.Len(t, conflicts, 2) {
		assert.Equal(t, "p1", conflicts[0].Existing.ID)
		assert.Equal(t, params[0], conflicts[0].Incoming)
		assert.Equal(t, "p2", conflicts[1].Existing.ID)
	}

	assert.Equal(t, []finance.PaymentParams{params[2], params[3]}, newParams)
}

func TestPaymentParams_Replacement(t *testing.T) {
	due := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)
	recorded := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)

	records := []finance.Record{{
		ID:        "f1",
		ProjectID: "1",
		Payments: []finance.Payment{
			{ID: "p1", Description: "Deposit", Amount: 500, Status: finance.StatusPending, DueDate: &recorded, Notes: "old"},
		},
	}}

	incoming := finance.PaymentParams{Type: finance.TypeDeposit, Description: "Deposit (re-issued)", Amount: 700, PaidAmount: 700, Status: finance.StatusPaid, PaidDate: &due}

	got := finance.UpdatePayment(records, "1", "p1", incoming.Replacement())[0]

	assert.Equal(t, "Deposit (re-issued)", got.Payments[0].Description)
	assert.Equal(t, int64(700), got.Payments[0].Amount)
	assert.Equal(t, finance.StatusPaid, got.Payments[0].Status)
	assert.Empty(t, got.Payments[0].Notes)
	assert.Equal(t, &recorded, got.Payments[0].DueDate)
	assert.Equal(t, &due, got.Payments[0].PaidDate)
	assert.Equal(t, int64(0), got.Balance)
}
