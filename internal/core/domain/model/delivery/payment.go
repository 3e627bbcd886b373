package delivery

import (
	"fmt"
	"time"

	"dispatch/internal/pkg/errs"
)

// PaymentMethod identifies how the amount owed for a stop is settled.
type PaymentMethod int

const (
	// PaymentMethodUnknown represents an invalid or undefined method.
	PaymentMethodUnknown PaymentMethod = iota

	// PaymentMethodCash is settled in cash at the door.
	PaymentMethodCash

	// PaymentMethodMobileMoney is settled through the external mobile-money
	// gateway; the referenced transaction must be confirmed before the
	// payment is accepted.
	PaymentMethodMobileMoney

	// PaymentMethodCredit defers settlement; no collection is required to
	// complete the stop.
	PaymentMethodCredit

	// PaymentMethodNotRequired marks stops with nothing to collect.
	PaymentMethodNotRequired
)

func getPaymentMethodStrings() map[PaymentMethod]string {
	//nolint:exhaustive // PaymentMethodUnknown is intentionally excluded as it's invalid
	return map[PaymentMethod]string{
		PaymentMethodCash:        "cash",
		PaymentMethodMobileMoney: "mobile_money",
		PaymentMethodCredit:      "credit",
		PaymentMethodNotRequired: "not_required",
	}
}

// Validate checks if the method is one of the defined payment methods.
func (m PaymentMethod) Validate() error {
	if _, ok := getPaymentMethodStrings()[m]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("payment method is invalid",
			fmt.Errorf("%d is not a valid payment method", m))
	}
	return nil
}

// String returns the wire-level name of the method. Implements fmt.Stringer.
func (m PaymentMethod) String() string {
	if str, ok := getPaymentMethodStrings()[m]; ok {
		return str
	}
	return "unknown"
}

// RequiresCollection reports whether the stop cannot complete until the
// payment is collected. Credit and not-required methods are exempt.
func (m PaymentMethod) RequiresCollection() bool {
	return m == PaymentMethodCash || m == PaymentMethodMobileMoney
}

// PaymentMethodFromString parses a wire-level payment method name.
func PaymentMethodFromString(s string) (PaymentMethod, error) {
	for method, str := range getPaymentMethodStrings() {
		if str == s {
			return method, nil
		}
	}
	return PaymentMethodUnknown, errs.NewValueIsInvalidErrorWithCause("payment method is invalid",
		fmt.Errorf("%q is not a valid payment method", s))
}

// PaymentStatus identifies the collection state of a stop's payment.
type PaymentStatus int

const (
	// PaymentStatusUnknown represents an invalid or undefined payment status.
	PaymentStatusUnknown PaymentStatus = iota

	// PaymentStatusPending means the amount is still owed.
	PaymentStatusPending

	// PaymentStatusCollected means the amount was collected in full.
	PaymentStatusCollected
)

func getPaymentStatusStrings() map[PaymentStatus]string {
	//nolint:exhaustive // PaymentStatusUnknown is intentionally excluded as it's invalid
	return map[PaymentStatus]string{
		PaymentStatusPending:   "pending",
		PaymentStatusCollected: "collected",
	}
}

// Validate checks if the payment status is one of the defined states.
func (s PaymentStatus) Validate() error {
	if _, ok := getPaymentStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("payment status is invalid",
			fmt.Errorf("%d is not a valid payment status", s))
	}
	return nil
}

// String returns the wire-level name of the status. Implements fmt.Stringer.
func (s PaymentStatus) String() string {
	if str, ok := getPaymentStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// PaymentStatusFromString parses a wire-level payment status name.
func PaymentStatusFromString(s string) (PaymentStatus, error) {
	for status, str := range getPaymentStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return PaymentStatusUnknown, errs.NewValueIsInvalidErrorWithCause("payment status is invalid",
		fmt.Errorf("%q is not a valid payment status", s))
}

// Payment is the payment sub-record of a delivery stop. It tracks the amount
// owed, what has been collected and when.
type Payment struct {
	method          PaymentMethod
	amountToCollect float64
	amountCollected float64
	status          PaymentStatus
	externalRef     string
	collectedAt     *time.Time
}

// NewPayment creates the payment sub-record for a stop. Amount must not be
// negative; methods without collection start satisfied.
func NewPayment(method PaymentMethod, amountToCollect float64) (Payment, error) {
	if err := method.Validate(); err != nil {
		return Payment{}, err
	}

	if amountToCollect < 0 {
		return Payment{}, errs.NewValueIsInvalidErrorWithCause("amountToCollect",
			fmt.Errorf("%f is negative", amountToCollect))
	}

	status := PaymentStatusPending
	if !method.RequiresCollection() {
		status = PaymentStatusCollected
	}

	return Payment{
		method:          method,
		amountToCollect: amountToCollect,
		status:          status,
	}, nil
}

// RestorePayment reconstructs a payment sub-record from persistent storage
// without re-running collection logic.
func RestorePayment(
	method PaymentMethod,
	amountToCollect float64,
	amountCollected float64,
	status PaymentStatus,
	externalRef string,
	collectedAt *time.Time,
) (Payment, error) {
	if err := method.Validate(); err != nil {
		return Payment{}, err
	}
	if err := status.Validate(); err != nil {
		return Payment{}, err
	}

	return Payment{
		method:          method,
		amountToCollect: amountToCollect,
		amountCollected: amountCollected,
		status:          status,
		externalRef:     externalRef,
		collectedAt:     collectedAt,
	}, nil
}

// Method returns the payment method.
func (p Payment) Method() PaymentMethod { return p.method }

// AmountToCollect returns the amount owed for the stop.
func (p Payment) AmountToCollect() float64 { return p.amountToCollect }

// AmountCollected returns the amount collected so far.
func (p Payment) AmountCollected() float64 { return p.amountCollected }

// Status returns the collection state.
func (p Payment) Status() PaymentStatus { return p.status }

// ExternalRef returns the gateway transaction reference for mobile-money
// payments, or an empty string.
func (p Payment) ExternalRef() string { return p.externalRef }

// CollectedAt returns when the payment was collected, or nil.
func (p Payment) CollectedAt() *time.Time { return p.collectedAt }

// IsSatisfied reports whether the stop may complete with respect to payment:
// either nothing needs collecting or the full amount was collected.
func (p Payment) IsSatisfied() bool {
	return !p.method.RequiresCollection() || p.status == PaymentStatusCollected
}

// Collect records a collection of the owed amount.
// The collected amount must equal the amount owed exactly; a mismatch is
// rejected with AmountMismatchError. Collecting twice reports
// AlreadyInTerminalState.
func (p Payment) Collect(amount float64, externalRef string, at time.Time) (Payment, error) {
	if p.status == PaymentStatusCollected {
		return Payment{}, errs.NewAlreadyInTerminalStateError("payment", p.status.String())
	}

	if amount != p.amountToCollect {
		return Payment{}, errs.NewAmountMismatchError(p.amountToCollect, amount)
	}

	collected := p
	collected.amountCollected = amount
	collected.externalRef = externalRef
	collected.status = PaymentStatusCollected
	collected.collectedAt = &at
	return collected, nil
}
