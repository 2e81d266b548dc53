package ledger

// Profile describes the column layout of a payment ledger export. Columns
// left empty are optional and fall back to defaults when absent.
type Profile struct {
	Name       string
	DateCol    string
	DescCol    string
	AmountCol  string
	PaidCol    string
	TypeCol    string
	StatusCol  string
	InvoiceCol string
	NotesCol   string
	// Received marks exports that only list money already received: the
	// whole amount counts as paid and the date is the paid date.
	Received bool
}

func (p Profile) requiredCols() []string {
	cols := []string{p.DateCol, p.DescCol, p.AmountCol}
	if p.PaidCol != "" && !p.Received {
		cols = append(cols, p.PaidCol)
	}

	return cols
}

// profiles is tried in order; more specific layouts come first.
var profiles = []Profile{
	{
		Name:       "ledger",
		DateCol:    "Date",
		DescCol:    "Description",
		AmountCol:  "Amount",
		PaidCol:    "Paid",
		TypeCol:    "Type",
		StatusCol:  "Status",
		InvoiceCol: "Invoice",
		NotesCol:   "Notes",
	},
	{
		Name:       "receipts",
		DateCol:    "Date",
		DescCol:    "Description",
		AmountCol:  "Received",
		InvoiceCol: "Invoice",
		NotesCol:   "Notes",
		Received:   true,
	},
}
