// Package pagelayout is the margins stage of the scanned-page pipeline:
// it decides, per page, how much blank space surrounds the detected
// content and where the content sits inside the resulting page frame.
//
// # The store
//
// [Settings] keys every page's [Params] record by its durable identity
// and owns all mutation: wholesale record replacement, content-box
// updates from the detection stage, invalidation when detection changes,
// pruning against the project's authoritative page set, and relinking
// when page identities are reassigned. A page with no record is not an
// error — it means "needs defaults", and [PopulateDefaults] fills it in,
// converting the globally configured margins into millimetres through
// that page's own resolution.
//
// # Task duality
//
// [Filter.NewTask] produces the interactive work unit that actually lays
// a page out; [Filter.NewCacheDrivenTask] produces the check that only
// answers whether cached output is still valid. Both derive downstream
// parameters through one shared computation, so they cannot disagree:
// work happens exactly once per parameter change, and stale output is
// never silently reused.
//
// # Persistence
//
// [SaveElement] and [LoadElement] move the store to and from the
// <page-layout> element of the project file. Page records are keyed by
// the project's small numeric IDs, which the project resolves back to
// durable identities on load; anything malformed is dropped entry by
// entry, never failing the load.
package pagelayout
