package domain

import "time"

// PaymentMethod is one of the accepted settlement methods.
type PaymentMethod string

const (
	PaymentMethodUPI        PaymentMethod = "UPI"
	PaymentMethodCard       PaymentMethod = "Credit/Debit Card"
	PaymentMethodNetBanking PaymentMethod = "Net Banking"
)

// ValidPaymentMethods lists the accepted payment methods for validation.
var ValidPaymentMethods = map[PaymentMethod]bool{
	PaymentMethodUPI:        true,
	PaymentMethodCard:       true,
	PaymentMethodNetBanking: true,
}

// Payment is the settlement record closing out a Sold item. Exactly one
// payment exists per item; its amount equals the sale price locked at
// finalization and its payer equals the item's winner.
type Payment struct {
	PaymentID string // globally unique, generated at creation
	ItemID    string
	PayerID   string
	Amount    int64
	Method    PaymentMethod
	PaidAt    time.Time
}
