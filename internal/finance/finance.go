package finance

import "time"

// PaymentType classifies what a payment is for.
type PaymentType string

const (
	TypeDeposit       PaymentType = "deposit"
	TypeMilestone     PaymentType = "milestone"
	TypeFinal         PaymentType = "final"
	TypeConsultantFee PaymentType = "consultant-fee"
	TypeMaterial      PaymentType = "material"
	TypeOther         PaymentType = "other"
)

func (t PaymentType) Valid() bool {
	switch t {
	case TypeDeposit, TypeMilestone, TypeFinal, TypeConsultantFee, TypeMaterial, TypeOther:
		return true
	}

	return false
}

// PaymentStatus is set by whoever records the payment. It is not derived
// from Amount and PaidAmount.
type PaymentStatus string

const (
	StatusPending PaymentStatus = "pending"
	StatusPartial PaymentStatus = "partial"
	StatusPaid    PaymentStatus = "paid"
	StatusOverdue PaymentStatus = "overdue"

	// StatusAll disables status filtering.
	StatusAll PaymentStatus = "all"
)

// Valid reports whether s is a status a payment can hold. StatusAll is not.
func (s PaymentStatus) Valid() bool {
	switch s {
	case StatusPending, StatusPartial, StatusPaid, StatusOverdue:
		return true
	}

	return false
}

func (s PaymentStatus) Color() string {
	switch s {
	case StatusPaid:
		return "#10b981"
	case StatusPartial:
		return "#f59e0b"
	case StatusPending:
		return "#3b82f6"
	case StatusOverdue:
		return "#ef4444"
	}

	return "#6b7280"
}

// Record is the payment ledger of one project.
type Record struct {
	ID          string    `json:"id"`
	ProjectID   string    `json:"projectId"`
	ClientID    string    `json:"clientId"`
	Payments    []Payment `json:"payments"`
	TotalAmount int64     `json:"totalAmount"` // Amount in sen
	PaidAmount  int64     `json:"paidAmount"`
	Balance     int64     `json:"balance"`
}

// Payment is a single invoiced amount on a project.
type Payment struct {
	ID            string        `json:"id"`
	ProjectID     string        `json:"projectId"`
	Type          PaymentType   `json:"type"`
	Description   string        `json:"description"`
	Amount        int64         `json:"amount"` // Amount in sen
	PaidAmount    int64         `json:"paidAmount"`
	Status        PaymentStatus `json:"status"`
	DueDate       *time.Time    `json:"dueDate,omitempty"`
	PaidDate      *time.Time    `json:"paidDate,omitempty"`
	InvoiceNumber string        `json:"invoiceNumber,omitempty"`
	Notes         string        `json:"notes,omitempty"`
}

// PaymentParams describes a payment to be recorded.
type PaymentParams struct {
	Type          PaymentType   `json:"type"`
	Description   string        `json:"description"`
	Amount        int64         `json:"amount"`
	PaidAmount    int64         `json:"paidAmount"`
	Status        PaymentStatus `json:"status"`
	DueDate       *time.Time    `json:"dueDate,omitempty"`
	PaidDate      *time.Time    `json:"paidDate,omitempty"`
	InvoiceNumber string        `json:"invoiceNumber,omitempty"`
	Notes         string        `json:"notes,omitempty"`
}

// PaymentUpdate holds the fields to overwrite on a payment. Nil fields are kept.
type PaymentUpdate struct {
	Type          *PaymentType
	Description   *string
	Amount        *int64
	PaidAmount    *int64
	Status        *PaymentStatus
	DueDate       *time.Time
	PaidDate      *time.Time
	InvoiceNumber *string
	Notes         *string
}

// Totals is the portfolio-wide view over all finance records.
type Totals struct {
	Revenue  int64 `json:"revenue"`
	Pending  int64 `json:"pending"`
	Invoiced int64 `json:"invoiced"`
}
