package pipeline

import (
	"context"
	"image"

	"github.com/xietoby/scantailor-advanced/geom"
	"github.com/xietoby/scantailor-advanced/pages"
)

// PageData carries the inputs an interactive task needs: the page being
// processed, its pixels, and the transform from source pixels into the
// virtual coordinate system earlier stages established (deskew, split).
type PageData struct {
	Page  pages.Info
	Image image.Image
	Xform geom.Matrix
}

// Task is the interactive variant of a stage's work unit. Running it
// performs the stage's real computation for one page, possibly mutating
// the stage's parameter store, and forwards control to the next stage's
// corresponding unit. A task chain owned by an abandoned pipeline run may
// be dropped between stages at any point; stage stores must stay
// consistent regardless, which they guarantee by making every mutation
// independently atomic.
type Task interface {
	Process(ctx context.Context, data *PageData) error
}

// CacheDrivenTask is the validity-check variant. It answers, from stage
// stores alone, whether the cached output for a page is still valid, and
// chains into the next stage's check. The whole pipeline answers in time
// proportional to the number of stages, never re-doing stage work.
//
// A stage's CacheDrivenTask must be decision-equivalent to its Task: if
// running the Task would leave output unchanged, Check must report true.
type CacheDrivenTask interface {
	Check(page pages.Info) bool
}

// TaskFunc adapts a function to the Task interface.
type TaskFunc func(ctx context.Context, data *PageData) error

// Process calls f.
func (f TaskFunc) Process(ctx context.Context, data *PageData) error {
	return f(ctx, data)
}

// Invalid sweeps a page sequence through cache-driven checks and returns
// the identities whose cached output is no longer valid.
func Invalid(seq pages.Sequence, build func(pages.Info) CacheDrivenTask) []pages.ID {
	var stale []pages.ID
	for _, info := range seq {
		if !build(info).Check(info) {
			stale = append(stale, info.ID)
		}
	}
	return stale
}
