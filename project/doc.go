// Package project holds the hosting-project services the pipeline stages
// depend on: the authoritative ordered page set, stable numeric-ID
// enumeration for saving, numeric-ID resolution for loading, relinking,
// and the XML project file that frames each stage's persisted element.
//
// Stages never key their stores by the small numeric IDs — those exist
// only inside the file. Durable [pages.ID] values are reconstructed on
// load and resolved through the file's own ID table, so per-page state
// survives reloads and reorderings.
package project
