// Package order provides the domain entities and business rules for customer
// order management. It implements the Order aggregate root with its lifecycle,
// audit trail, and write-once document references.
//
// The package includes:
//   - Order: the aggregate root holding identity, snapshots, pricing, and lifecycle state
//   - Status: the closed enumeration of lifecycle stages (transitions are unrestricted)
//   - HistoryEntry: an element of the append-only status audit trail
//   - DocumentRef: a write-once pointer at a generated invoice or delivery note
//   - Refund: the optional refund sub-record
//
// Key business rules:
//   - Order numbers are assigned once at creation and never reassigned
//   - The status history only grows, and its last entry mirrors the current status
//   - Invoice and delivery-note references are set at most once; their presence
//     is the idempotency flag for the document generators
//   - Customer identity and addresses are snapshots taken at creation
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
