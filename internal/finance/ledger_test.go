package finance_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/studiodesk/internal/finance"
)

func seedRecords() []finance.Record {
	return []finance.Record{
		{ID: "f1", ProjectID: "1", ClientID: "c1", Payments: []finance.Payment{}},
		{
			ID:        "f2",
			ProjectID: "2",
			ClientID:  "c2",
			Payments: []finance.Payment{
				{ID: "p4", ProjectID: "2", Amount: 3000, PaidAmount: 3000, Status: finance.StatusPaid},
				{ID: "p6", ProjectID: "2", Amount: 4500, PaidAmount: 1475, Status: finance.StatusPartial},
			},
			TotalAmount: 7500,
			PaidAmount:  4475,
			Balance:     3025,
		},
	}
}

func TestRecompute(t *testing.T) {
	type testCase struct {
		name     string
		payments []finance.Payment
		want     [3]int64
	}

	tests := []testCase{
		{name: "No Payments", payments: nil, want: [3]int64{0, 0, 0}},
		{
			name: "Mixed",
			payments: []finance.Payment{
				{ID: "a", Amount: 100, PaidAmount: 100},
				{ID: "b", Amount: 50, PaidAmount: 0},
				{ID: "c", Amount: 25, PaidAmount: 10},
			},
			want: [3]int64{175, 110, 65},
		},
		{
			name:     "Paid Status Does Not Change Totals",
			payments: []finance.Payment{{ID: "a", Amount: 100, PaidAmount: 40, Status: finance.StatusPaid}},
			want:     [3]int64{100, 40, 60},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stale := finance.Record{ID: "f", TotalAmount: 999, PaidAmount: 1, Balance: 998}

			got := finance.Recompute(stale, tt.payments)
			again := finance.Recompute(got, tt.payments)

			assert.Equal(t, tt.want, [3]int64{got.TotalAmount, got.PaidAmount, got.Balance})
			assert.Equal(t, got, again)
			assert.Equal(t, int64(999), stale.TotalAmount)
		})
	}
}

func TestAddPayment_Twice(t *testing.T) {
	records := seedRecords()

	records, first := finance.AddPayment(records, "1", finance.PaymentParams{
		Type:       finance.TypeDeposit,
		Amount:     100,
		PaidAmount: 100,
		Status:     finance.StatusPaid,
	})
	records, second := finance.AddPayment(records, "1", finance.PaymentParams{
		Type:   finance.TypeMilestone,
		Amount: 50,
		Status: finance.StatusPending,
	})

	r := records[0]
	assert.Equal(t, int64(150), r.TotalAmount)
	assert.Equal(t, int64(100), r.PaidAmount)
	assert.Equal(t, int64(50), r.Balance)
	require.Len(t, r.Payments, 2)
	assert.NotEmpty(t, first.ID)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, "1", second.ProjectID)
	assert.Equal(t, seedRecords()[1], records[1])
}

func TestAddPayment_UnknownProject(t *testing.T) {
	records := seedRecords()

	got, p := finance.AddPayment(records, "missing", finance.PaymentParams{Amount: 10})

	assert.Equal(t, records, got)
	assert.Empty(t, p.ID)
}

func TestAddPayments(t *testing.T) {
	records := seedRecords()

	got, added := finance.AddPayments(records, "2", []finance.PaymentParams{
		{Amount: 100, PaidAmount: 0},
		{Amount: 200, PaidAmount: 200},
	})

	require.Len(t, added, 2)
	assert.Len(t, got[1].Payments, 4)
	assert.Equal(t, int64(7800), got[1].TotalAmount)
	assert.Equal(t, int64(4675), got[1].PaidAmount)
	assert.Equal(t, int64(3125), got[1].Balance)
	assert.Len(t, records[1].Payments, 2)
}

func TestUpdatePayment(t *testing.T) {
	type args struct {
		projectID string
		paymentID string
		upd       finance.PaymentUpdate
	}

	type testCase struct {
		name   string
		args   args
		verify func(t *testing.T, before, after []finance.Record)
	}

	tests := []testCase{
		{
			name: "Settles Partial Payment",
			args: args{
				projectID: "2",
				paymentID: "p6",
				upd: finance.PaymentUpdate{
					PaidAmount: new(int64(4500)),
					Status:     new(finance.StatusPaid),
				},
			},
			verify: func(t *testing.T, before, after []finance.Record) {
				p := after[1].Payments[1]
				assert.Equal(t, int64(4500), p.PaidAmount)
				assert.Equal(t, int64(4500), p.Amount)
				assert.Equal(t, finance.StatusPaid, p.Status)
				assert.Equal(t, int64(7500), after[1].PaidAmount)
				assert.Equal(t, int64(0), after[1].Balance)
				assert.Equal(t, before[0], after[0])
				assert.Equal(t, int64(1475), before[1].Payments[1].PaidAmount)
			},
		},
		{
			name: "Status Is Not Validated Against Amounts",
			args: args{
				projectID: "2",
				paymentID: "p6",
				upd:       finance.PaymentUpdate{Status: new(finance.StatusPaid)},
			},
			verify: func(t *testing.T, _, after []finance.Record) {
				assert.Equal(t, finance.StatusPaid, after[1].Payments[1].Status)
				assert.Equal(t, int64(3025), after[1].Balance)
			},
		},
		{
			name: "Unknown Payment",
			args: args{projectID: "2", paymentID: "nope", upd: finance.PaymentUpdate{Amount: new(int64(1))}},
			verify: func(t *testing.T, before, after []finance.Record) {
				assert.Equal(t, before, after)
			},
		},
		{
			name: "Unknown Project",
			args: args{projectID: "9", paymentID: "p6", upd: finance.PaymentUpdate{Amount: new(int64(1))}},
			verify: func(t *testing.T, before, after []finance.Record) {
				assert.Equal(t, before, after)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := seedRecords()
			after := finance.UpdatePayment(before, tt.args.projectID, tt.args.paymentID, tt.args.upd)
			tt.verify(t, before, after)
		})
	}
}

func TestFilterPayments(t *testing.T) {
	payments := seedRecords()[1].Payments

	assert.Len(t, finance.FilterPayments(payments, finance.StatusAll), 2)
	assert.Len(t, finance.FilterPayments(payments, finance.StatusOverdue), 0)

	partial := finance.FilterPayments(payments, finance.StatusPartial)
	if assert.Len(t, partial, 1) {
		assert.Equal(t, "p6", partial[0].ID)
	}
}

func TestComputeTotals(t *testing.T) {
	got := finance.ComputeTotals(seedRecords())

	assert.Equal(t, finance.Totals{Revenue: 4475, Pending: 3025, Invoiced: 7500}, got)
}

func TestForProject(t *testing.T) {
	r, ok := finance.ForProject(seedRecords(), "2")
	assert.True(t, ok)
	assert.Equal(t, "f2", r.ID)

	_, ok = finance.ForProject(seedRecords(), "x")
	assert.False(t, ok)
}

func TestOpenRecord(t *testing.T) {
	records := seedRecords()

	got, r := finance.OpenRecord(records, "3", "c3")
	require.Len(t, got, 3)
	assert.Len(t, records, 2)
	assert.NotEmpty(t, r.ID)
	assert.Equal(t, "c3", r.ClientID)
	assert.Empty(t, r.Payments)
	assert.Equal(t, r, got[2])

	again, existing := finance.OpenRecord(got, "3", "c3")
	assert.Equal(t, got, again)
	assert.Equal(t, r.ID, existing.ID)
}
