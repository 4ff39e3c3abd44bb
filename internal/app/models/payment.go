package models

type PaymentMethod string

const (
	PaymentMethodCash      PaymentMethod = "cash"
	PaymentMethodCard      PaymentMethod = "card"
	PaymentMethodCheck     PaymentMethod = "check"
	PaymentMethodInsurance PaymentMethod = "insurance"
	PaymentMethodMixed     PaymentMethod = "mixed"
)

type PaymentStatus string

const (
	// PaymentPending means nothing has been tendered yet.
	PaymentPending PaymentStatus = "pending"
	// PaymentShort means the tendered amount does not cover the amount due.
	PaymentShort PaymentStatus = "short"
	// PaymentPaid means a cash tender covered the amount due.
	PaymentPaid PaymentStatus = "paid"
	// PaymentAwaitingConfirmation means a non-cash tender covers the amount
	// due but the operator has not confirmed the settlement yet.
	PaymentAwaitingConfirmation PaymentStatus = "awaiting_confirmation"
	PaymentConfirmed            PaymentStatus = "confirmed"
)

type Denomination struct {
	ValueCents int64 `json:"value_cents" bson:"value_cents"`
	Count      int   `json:"count" bson:"count"`
}

type PaymentRecord struct {
	Method              PaymentMethod  `json:"method" bson:"method"`
	AmountReceivedCents int64          `json:"amount_received_cents" bson:"amount_received_cents"`
	TotalDueCents       int64          `json:"total_due_cents" bson:"total_due_cents"`
	ChangeCents         int64          `json:"change_cents" bson:"change_cents"`
	DeficitCents        int64          `json:"deficit_cents" bson:"deficit_cents"`
	Status              PaymentStatus  `json:"status" bson:"status"`
	Denominations       []Denomination `json:"denominations,omitempty" bson:"denominations,omitempty"`
}

// Covers reports whether the payment settles the patient responsibility.
func (p *PaymentRecord) Covers() bool {
	if p == nil {
		return false
	}
	switch p.Status {
	case PaymentPaid, PaymentConfirmed:
		return true
	}
	return false
}
