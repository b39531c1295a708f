package order

import "orders/internal/pkg/errs"

// DocumentRef points at a generated business document (invoice or delivery
// note): its human-readable sequence number and its storage location.
//
// The presence of a DocumentRef on an order is the idempotency flag for
// document generation: each ref is set at most once and never cleared or
// overwritten afterwards.
type DocumentRef struct {
	number   string
	location string
}

// NewDocumentRef creates a validated document reference.
// Both the document number and its retrievable location are required.
func NewDocumentRef(number, location string) (DocumentRef, error) {
	if number == "" {
		return DocumentRef{}, errs.NewValueIsRequiredError("document number")
	}
	if location == "" {
		return DocumentRef{}, errs.NewValueIsRequiredError("document location")
	}
	return DocumentRef{number: number, location: location}, nil
}

// Number returns the human-readable document number, e.g. "INV-2026-0042".
func (d DocumentRef) Number() string {
	return d.number
}

// Location returns the stable retrievable location of the stored document.
func (d DocumentRef) Location() string {
	return d.location
}
