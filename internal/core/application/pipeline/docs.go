// Package pipeline implements the transition-triggered side-effect pipeline
// that wraps every order write.
//
// The pipeline has two halves around the persistence boundary:
//
//   - Pre-write stages (NumberAllocator, StatusTracker) mutate the candidate
//     record so identity assignment and the status audit entry commit
//     atomically with the primary write. Their errors abort the write.
//
//   - Post-write stages (InvoiceStage, DeliveryNoteStage, NotificationStage)
//     run sequentially after the write has committed. Each is edge-triggered
//     on a specific (previous, new) state transition, idempotent through the
//     presence of its result on the order, and fault-isolated: a failure is
//     logged as a SideEffectError and swallowed, the committed write stands,
//     and the remaining stages still run.
//
// Post-write stages that produce a document reference write it back through
// the patch-only DocumentPatcher path, which bypasses the pipeline entirely —
// a secondary write never re-enters the stages recursively.
package pipeline
