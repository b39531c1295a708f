package order

import (
	"fmt"

	"orders/internal/pkg/errs"
)

// Status represents the lifecycle stage of an order.
//
// The happy path runs:
//
//	PendingPayment -> PaidAwaitingBAT -> InProduction -> ProductionComplete
//	  -> PreparingShipment -> InDelivery -> Delivered
//
// with Cancelled, RefundFull and RefundPartial as side branches. The
// enumeration is closed, but transitions between statuses are deliberately
// unrestricted: an authorized caller may move an order from any status to any
// other. The happy path above is a convention, not an enforced edge set, so
// manual corrections by administrators stay possible. Side effects key off
// specific transitions (see the pipeline package), not off a validation graph.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// PendingPayment is the initial status of a checkout-created order
	// whose payment has not yet been confirmed.
	PendingPayment

	// PaidAwaitingBAT means payment is confirmed and the order waits for
	// the customer's approval of the production proof (BAT, "bon a tirer").
	PaidAwaitingBAT

	// InProduction means the items are being manufactured.
	// Entering this status triggers delivery-note generation.
	InProduction

	// ProductionComplete means manufacturing is finished.
	ProductionComplete

	// PreparingShipment means the order is being packed.
	PreparingShipment

	// InDelivery means the parcel has been handed to the carrier.
	// Entering this status triggers the shipped notification.
	InDelivery

	// Delivered means the carrier confirmed delivery.
	Delivered

	// Cancelled means the order was abandoned before completion.
	Cancelled

	// RefundFull means the order was fully refunded.
	RefundFull

	// RefundPartial means the order was partially refunded.
	RefundPartial
)

// getStatusStrings returns a map of Status values to their wire representations.
// All statuses are included for string conversion.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:            "unknown",
		PendingPayment:     "pending_payment",
		PaidAwaitingBAT:    "paid_awaiting_bat",
		InProduction:       "in_production",
		ProductionComplete: "production_complete",
		PreparingShipment:  "preparing_shipment",
		InDelivery:         "in_delivery",
		Delivered:          "delivered",
		Cancelled:          "cancelled",
		RefundFull:         "refund_full",
		RefundPartial:      "refund_partial",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
// Unknown is excluded to support validation.
func getValidStatusStrings() map[Status]string {
	strings := getStatusStrings()
	delete(strings, Unknown)
	return strings
}

// Validate checks if the Status value is part of the closed enumeration.
// Unknown (0) and any other values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire representation of the status, e.g. "in_production".
// Invalid values render as "unknown".
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsRefund reports whether the status is one of the refund branches.
func (s Status) IsRefund() bool {
	return s == RefundFull || s == RefundPartial
}

// ParseStatus converts a wire representation back into a Status.
// Returns an error for strings outside the closed enumeration.
func ParseStatus(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}
