// Package pipeline defines the two-faced stage task abstraction and the
// worker pool that drives per-page task chains.
//
// Every stage offers the same capability pair: an interactive [Task] that
// performs real work for one page, and a [CacheDrivenTask] that only
// verifies whether previously produced output is still valid. Both chain
// into the next stage's corresponding unit, so a full-pipeline validity
// question costs one cheap check per stage while real work happens
// exactly once per parameter change.
package pipeline
