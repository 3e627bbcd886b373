package ports

import "context"

// MobileMoneyTransaction is the gateway's view of an external payment.
type MobileMoneyTransaction struct {
	Reference string
	Amount    float64
	Confirmed bool
}

// MobileMoneyGateway reads transactions from the external mobile-money
// provider. Mobile-money collections are only accepted when the referenced
// transaction exists, is confirmed, and matches the amount owed.
type MobileMoneyGateway interface {
	// GetTransaction looks up a transaction by its gateway reference.
	// Returns a not-found error for unknown references.
	GetTransaction(ctx context.Context, reference string) (MobileMoneyTransaction, error)
}
