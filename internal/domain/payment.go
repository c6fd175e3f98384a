package domain

import "time"

// PaymentMethod represents how a payment was made
type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "cash"
	PaymentMethodMobileMoney  PaymentMethod = "mobile_money"
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
	PaymentMethodCard         PaymentMethod = "card"
)

// PaymentStatus represents the state of a payment
type PaymentStatus string

const (
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusFailed    PaymentStatus = "failed"
)

// DefaultPaymentStatus is used when a payment is recorded without a status
const DefaultPaymentStatus = PaymentStatusCompleted

// Payment represents money received for a service record
type Payment struct {
	ID               int64
	UserID           int64
	PaymentNumber    string
	AmountPaid       float64
	PaymentDate      time.Time
	PaymentMethod    PaymentMethod
	Status           PaymentStatus
	ServicePackageID int64
	CreatedAt        time.Time
	UpdatedAt        time.Time

	// Joined data for responses
	ServicePackage *ServiceRecordSummary
}

// IsValid returns true for a known payment method
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodMobileMoney, PaymentMethodBankTransfer, PaymentMethodCard:
		return true
	}
	return false
}

// IsValid returns true for a known payment status
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusCompleted, PaymentStatusPending, PaymentStatusFailed:
		return true
	}
	return false
}

// IsCompleted returns true if the payment counts toward the paid balance
func (p *Payment) IsCompleted() bool {
	return p.Status == PaymentStatusCompleted
}

// ExceedsBalance reports whether adding amount to alreadyPaid goes over price.
// Amounts are compared in cents to avoid float drift.
func ExceedsBalance(price, alreadyPaid, amount float64) bool {
	return toCents(alreadyPaid)+toCents(amount) > toCents(price)
}

func toCents(v float64) int64 {
	if v < 0 {
		return int64(v*100 - 0.5)
	}
	return int64(v*100 + 0.5)
}
