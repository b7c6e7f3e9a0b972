// Package output is the final pipeline stage: it renders each laid-out
// page to an image file and remembers, per page, a fingerprint of the
// parameters that file was rendered from.
//
// The fingerprint is what gives the pipeline its exactly-once-per-change
// behaviour: the interactive [Task] skips rendering when the stored
// fingerprint matches the freshly derived parameters, and the
// [CacheDrivenTask] answers validity by the same comparison, so the two
// can never disagree about whether work is needed.
package output
