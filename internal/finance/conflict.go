package finance

import "strings"

// Conflict pairs an incoming payment with the recorded payment it duplicates.
type Conflict struct {
	Incoming PaymentParams `json:"incoming"`
	Existing Payment       `json:"existing"`
}

type dupKey struct {
	InvoiceNumber string
	Description   string
	Amount        int64
}

// keyOf identifies a payment by invoice number when it has one, otherwise by
// description and amount.
func keyOf(invoice, description string, amount int64) dupKey {
	if inv := strings.TrimSpace(invoice); inv != "" {
		return dupKey{InvoiceNumber: strings.ToUpper(inv)}
	}

	return dupKey{Description: strings.ToLower(strings.TrimSpace(description)), Amount: amount}
}

// SplitConflicts separates params that duplicate a payment already on record
// from the ones that are new.
func SplitConflicts(record Record, params []PaymentParams) ([]PaymentParams, []Conflict) {
	lookup := make(map[dupKey]Payment, len(record.Payments))
	for _, p := range record.Payments {
		lookup[keyOf(p.InvoiceNumber, p.Description, p.Amount)] = p
	}

	var (
		newParams []PaymentParams
		conflicts []Conflict
	)

	for _, p := range params {
		existing, found := lookup[keyOf(p.InvoiceNumber, p.Description, p.Amount)]
		if found {
			conflicts = append(conflicts, Conflict{Incoming: p, Existing: existing})
			continue
		}

		newParams = append(newParams, p)
	}

	return newParams, conflicts
}

// Replacement is the update that overwrites a recorded payment with p. Dates
// p leaves unset keep their recorded value.
func (p PaymentParams) Replacement() PaymentUpdate {
	return PaymentUpdate{
		Type:          &p.Type,
		Description:   &p.Description,
		Amount:        &p.Amount,
		PaidAmount:    &p.PaidAmount,
		Status:        &p.Status,
		DueDate:       p.DueDate,
		PaidDate:      p.PaidDate,
		InvoiceNumber: &p.InvoiceNumber,
		Notes:         &p.Notes,
	}
}
