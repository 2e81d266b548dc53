package finance

import (
	"slices"

	"github.com/google/uuid"
)

// Recompute returns a copy of record holding payments, with its totals
// re-derived from them.
func Recompute(record Record, payments []Payment) Record {
	record.Payments = payments
	record.TotalAmount = 0
	record.PaidAmount = 0

	for _, p := range payments {
		record.TotalAmount += p.Amount
		record.PaidAmount += p.PaidAmount
	}

	record.Balance = record.TotalAmount - record.PaidAmount

	return record
}

// AddPayment appends a new payment to the record of projectID. Records of
// other projects are carried over untouched. The input is returned unchanged
// when no record matches.
func AddPayment(records []Record, projectID string, params PaymentParams) ([]Record, Payment) {
	i := indexOfProject(records, projectID)
	if i < 0 {
		return records, Payment{}
	}

	p := newPayment(projectID, params)
	r := records[i]

	out := slices.Clone(records)
	out[i] = Recompute(r, append(slices.Clone(r.Payments), p))

	return out, p
}

// AddPayments appends several payments to one record in a single step.
func AddPayments(records []Record, projectID string, params []PaymentParams) ([]Record, []Payment) {
	i := indexOfProject(records, projectID)
	if i < 0 || len(params) == 0 {
		return records, nil
	}

	added := make([]Payment, 0, len(params))
	for _, p := range params {
		added = append(added, newPayment(projectID, p))
	}

	r := records[i]

	out := slices.Clone(records)
	out[i] = Recompute(r, append(slices.Clone(r.Payments), added...))

	return out, added
}

// UpdatePayment merges upd into the payment paymentID of projectID's record
// and re-derives the totals. The input is returned unchanged when either id
// is unknown.
func UpdatePayment(records []Record, projectID, paymentID string, upd PaymentUpdate) []Record {
	i := indexOfProject(records, projectID)
	if i < 0 {
		return records
	}

	r := records[i]

	j := slices.IndexFunc(r.Payments, func(p Payment) bool { return p.ID == paymentID })
	if j < 0 {
		return records
	}

	payments := slices.Clone(r.Payments)
	payments[j] = applyUpdate(payments[j], upd)

	out := slices.Clone(records)
	out[i] = Recompute(r, payments)

	return out
}

// OpenRecord appends an empty record for projectID. When the project already
// has one, the input and that record are returned.
func OpenRecord(records []Record, projectID, clientID string) ([]Record, Record) {
	if r, ok := ForProject(records, projectID); ok {
		return records, r
	}

	r := Record{
		ID:        uuid.NewString(),
		ProjectID: projectID,
		ClientID:  clientID,
		Payments:  []Payment{},
	}

	return append(slices.Clone(records), r), r
}

// FilterPayments keeps the payments with the given status. StatusAll keeps everything.
func FilterPayments(payments []Payment, status PaymentStatus) []Payment {
	if status == StatusAll {
		return slices.Clone(payments)
	}

	out := make([]Payment, 0, len(payments))
	for _, p := range payments {
		if p.Status == status {
			out = append(out, p)
		}
	}

	return out
}

// ForProject returns the record of projectID.
func ForProject(records []Record, projectID string) (Record, bool) {
	i := indexOfProject(records, projectID)
	if i < 0 {
		return Record{}, false
	}

	return records[i], true
}

func ComputeTotals(records []Record) Totals {
	var t Totals

	for _, r := range records {
		t.Revenue += r.PaidAmount
		t.Pending += r.Balance
		t.Invoiced += r.TotalAmount
	}

	return t
}

func newPayment(projectID string, params PaymentParams) Payment {
	return Payment{
		ID:            uuid.NewString(),
		ProjectID:     projectID,
		Type:          params.Type,
		Description:   params.Description,
		Amount:        params.Amount,
		PaidAmount:    params.PaidAmount,
		Status:        params.Status,
		DueDate:       params.DueDate,
		PaidDate:      params.PaidDate,
		InvoiceNumber: params.InvoiceNumber,
		Notes:         params.Notes,
	}
}

func applyUpdate(p Payment, upd PaymentUpdate) Payment {
	if upd.Type != nil {
		p.Type = *upd.Type
	}

	if upd.Description != nil {
		p.Description = *upd.Description
	}

	if upd.Amount != nil {
		p.Amount = *upd.Amount
	}

	if upd.PaidAmount != nil {
		p.PaidAmount = *upd.PaidAmount
	}

	if upd.Status != nil {
		p.Status = *upd.Status
	}

	if upd.DueDate != nil {
		p.DueDate = upd.DueDate
	}

	if upd.PaidDate != nil {
		p.PaidDate = upd.PaidDate
	}

	if upd.InvoiceNumber != nil {
		p.InvoiceNumber = *upd.InvoiceNumber
	}

	if upd.Notes != nil {
		p.Notes = *upd.Notes
	}

	return p
}

func indexOfProject(records []Record, projectID string) int {
	return slices.IndexFunc(records, func(r Record) bool { return r.ProjectID == projectID })
}
