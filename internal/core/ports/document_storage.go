package ports

import "context"

// DocumentStorage persists rendered document payloads and hands back a stable
// retrievable location. Overwrite semantics are not required: every document
// is generated at most once, guarded by the order's document references.
type DocumentStorage interface {
	Store(ctx context.Context, filename string, payload []byte) (location string, err error)
}
