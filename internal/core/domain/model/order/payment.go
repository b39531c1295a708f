package order

import (
	"fmt"
	"time"

	"orders/internal/pkg/errs"
)

// PaymentStatus represents the payment-side facts attached to an order.
// It is conceptually owned by the payment collaborator but stored on the
// order record because invoice generation keys off it.
type PaymentStatus int

const (
	// PaymentUnknown represents an uninitialized payment status.
	PaymentUnknown PaymentStatus = iota

	// PaymentPending means payment has not been confirmed yet.
	PaymentPending

	// PaymentPaid means payment has been captured.
	// The first time an order carries this value, an invoice is generated.
	PaymentPaid

	// PaymentFailed means the payment attempt was rejected.
	PaymentFailed

	// PaymentRefunded means the captured payment was returned.
	PaymentRefunded
)

func getPaymentStatusStrings() map[PaymentStatus]string {
	return map[PaymentStatus]string{
		PaymentUnknown:  "unknown",
		PaymentPending:  "pending",
		PaymentPaid:     "paid",
		PaymentFailed:   "failed",
		PaymentRefunded: "refunded",
	}
}

// Validate checks if the PaymentStatus value is part of the closed enumeration.
func (p PaymentStatus) Validate() error {
	if p == PaymentUnknown {
		return errs.NewValueIsInvalidErrorWithCause("paymentStatus",
			fmt.Errorf("%d is not a valid payment status", p))
	}
	if _, ok := getPaymentStatusStrings()[p]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("paymentStatus",
			fmt.Errorf("%d is not a valid payment status", p))
	}
	return nil
}

// String returns the wire representation of the payment status, e.g. "paid".
func (p PaymentStatus) String() string {
	if str, ok := getPaymentStatusStrings()[p]; ok {
		return str
	}
	return "unknown"
}

// ParsePaymentStatus converts a wire representation back into a PaymentStatus.
func ParsePaymentStatus(s string) (PaymentStatus, error) {
	for status, str := range getPaymentStatusStrings() {
		if status != PaymentUnknown && str == s {
			return status, nil
		}
	}
	return PaymentUnknown, errs.NewValueIsInvalidErrorWithCause("paymentStatus",
		fmt.Errorf("%q is not a valid payment status", s))
}

// RefundKind distinguishes full from partial refunds.
type RefundKind string

const (
	// RefundKindFull marks a refund of the whole order amount.
	RefundKindFull RefundKind = "full"

	// RefundKindPartial marks a refund of part of the order amount.
	RefundKindPartial RefundKind = "partial"
)

// Validate checks the refund kind against the two allowed values.
func (k RefundKind) Validate() error {
	if k != RefundKindFull && k != RefundKindPartial {
		return errs.NewValueIsInvalidErrorWithCause("refund kind",
			fmt.Errorf("%q is not a valid refund kind", k))
	}
	return nil
}

// Refund is an optional sub-record describing a processed refund.
//
// Note that nothing ties the RefundFull/RefundPartial order statuses to a
// populated Refund: an administrator may flip an order into a refund status
// without filing the sub-record, and may file the sub-record without touching
// the status. This permissiveness is intentional.
type Refund struct {
	kind        RefundKind
	amountCents int64
	reason      string
	refundedAt  time.Time
	refundedBy  string
}

// NewRefund creates a validated Refund sub-record.
// The amount must not be negative; kind must be full or partial;
// refundedBy identifies the actor who processed the refund.
func NewRefund(kind RefundKind, amountCents int64, reason string, refundedAt time.Time, refundedBy string) (Refund, error) {
	if err := kind.Validate(); err != nil {
		return Refund{}, err
	}
	if amountCents < 0 {
		return Refund{}, errs.NewValueIsInvalidErrorWithCause("refund amount",
			fmt.Errorf("%d cents is negative", amountCents))
	}
	if refundedBy == "" {
		return Refund{}, errs.NewValueIsRequiredError("refundedBy")
	}

	return Refund{
		kind:        kind,
		amountCents: amountCents,
		reason:      reason,
		refundedAt:  refundedAt,
		refundedBy:  refundedBy,
	}, nil
}

// Kind returns whether the refund is full or partial.
func (r Refund) Kind() RefundKind {
	return r.kind
}

// AmountCents returns the refunded amount in cents.
func (r Refund) AmountCents() int64 {
	return r.amountCents
}

// Reason returns the free-text reason supplied by the actor.
func (r Refund) Reason() string {
	return r.reason
}

// RefundedAt returns when the refund was processed.
func (r Refund) RefundedAt() time.Time {
	return r.refundedAt
}

// RefundedBy returns the identifier of the actor who processed the refund.
func (r Refund) RefundedBy() string {
	return r.refundedBy
}
