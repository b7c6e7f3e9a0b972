package pagelayout

import (
	"context"
	"log/slog"

	"github.com/xietoby/scantailor-advanced/output"
	"github.com/xietoby/scantailor-advanced/pages"
	"github.com/xietoby/scantailor-advanced/pipeline"
)

// Task is the interactive work unit for one page. Running it populates
// defaults if the page has none, establishes the content box when it is
// missing, derives the output parameters, and forwards control to the
// output stage.
type Task struct {
	filter *Filter
	next   *output.Task
	pageID pages.ID
	batch  bool
	debug  bool
	log    *slog.Logger
}

func newTask(f *Filter, next *output.Task, id pages.ID, batch, debug bool) *Task {
	return &Task{
		filter: f,
		next:   next,
		pageID: id,
		batch:  batch,
		debug:  debug,
		log:    slog.Default(),
	}
}

// Process performs the layout computation for the page. Every store
// mutation it makes is individually atomic, so an owner may abandon the
// chain between stages without corrupting the store.
func (t *Task) Process(ctx context.Context, data *pipeline.PageData) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	page := data.Page
	settings := t.filter.Settings()

	t.filter.LoadDefaultSettings(page)
	params, _ := settings.Params(page.ID)

	if _, ok := params.ContentSizeMM(); !ok {
		// First pass for this page: no content box yet. Use the full
		// transformed page as content until detection narrows it.
		pageRect := transformedPageRect(page.Metadata, data.Xform)
		t.filter.SetContentBox(page, data.Xform, pageRect)
		params, _ = settings.Params(page.ID)
	}

	outParams := t.filter.layoutFor(params, page)
	if t.debug {
		t.log.Debug("page laid out",
			"page", page.ID.String(),
			"margins", params.HardMarginsMM(),
			"out_width", outParams.OutRect.Width,
			"out_height", outParams.OutRect.Height)
	}

	if t.batch {
		return t.next.Process(ctx, data, outParams)
	}
	// Interactive editing: no output is produced, but the downstream
	// validity verdict is refreshed so the UI can show staleness.
	t.next.CacheDriven().Check(page, outParams)
	return nil
}

// CacheDrivenTask answers, from the store alone, whether this page's
// layout output is still valid, and chains into the output stage's own
// check. It must agree with Task: whenever running Task would leave
// output unchanged, Check reports true. Both derive the output
// parameters through the same Filter.layoutFor, so disagreement would
// require the store to change between the two calls.
type CacheDrivenTask struct {
	filter *Filter
	next   *output.CacheDrivenTask
}

// Check reports whether the page's cached output remains valid.
func (t *CacheDrivenTask) Check(page pages.Info) bool {
	params, ok := t.filter.Settings().Params(page.ID)
	if !ok {
		// No record: running the interactive task would populate
		// defaults, a store mutation. Not valid.
		return false
	}
	if _, ok := params.ContentSizeMM(); !ok {
		// No content box: the interactive task would establish one.
		return false
	}
	return t.next.Check(page, t.filter.layoutFor(params, page))
}
