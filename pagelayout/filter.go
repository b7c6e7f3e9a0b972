package pagelayout

import (
	"github.com/xietoby/scantailor-advanced/geom"
	"github.com/xietoby/scantailor-advanced/output"
	"github.com/xietoby/scantailor-advanced/pages"
	"github.com/xietoby/scantailor-advanced/unit"
)

// ProjectPages is the slice of the hosting project this stage needs: the
// authoritative, ordered page list.
type ProjectPages interface {
	ToPageSequence(v pages.View) pages.Sequence
}

// Filter orchestrates the page-layout stage: it owns the Settings store,
// answers the hosting project's lifecycle hooks, wires persistence, and
// dispatches the stage's interactive and cache-driven tasks.
type Filter struct {
	pages         ProjectPages
	settings      *Settings
	defaults      Defaults
	orderOptions  []OrderOption
	selectedOrder int
}

// NewFilter creates the stage for a project, with the given global
// defaults for pages that have no parameters yet.
func NewFilter(p ProjectPages, defaults Defaults) *Filter {
	settings := NewSettings()
	return &Filter{
		pages:    p,
		settings: settings,
		defaults: defaults,
		orderOptions: []OrderOption{
			{Name: "Natural order"},
			{Name: "Order by increasing width", Order: OrderByWidth(settings)},
			{Name: "Order by increasing height", Order: OrderByHeight(settings)},
			{Name: "Order by decreasing deviation", Order: OrderByDeviation(settings)},
		},
	}
}

// Name is the user-visible stage name.
func (f *Filter) Name() string { return "Margins" }

// View returns the granularity this stage observes pages at.
func (f *Filter) View() pages.View { return pages.PageView }

// Settings exposes the stage's parameter store.
func (f *Filter) Settings() *Settings { return f.settings }

// Selected is called when the user switches to this stage. Pages removed
// from the project while the stage was inactive are pruned here.
func (f *Filter) Selected() {
	f.settings.RemovePagesMissingFrom(f.pages.ToPageSequence(f.View()))
}

// PageOrderOptions lists the orderings the stage offers.
func (f *Filter) PageOrderOptions() []OrderOption { return f.orderOptions }

// SelectedPageOrder returns the index of the active ordering.
func (f *Filter) SelectedPageOrder() int { return f.selectedOrder }

// SelectPageOrder activates an ordering by index. Out-of-range indices
// are ignored.
func (f *Filter) SelectPageOrder(option int) {
	if option >= 0 && option < len(f.orderOptions) {
		f.selectedOrder = option
	}
}

// PerformRelinking remaps the store's keys after the project's page
// identities changed.
func (f *Filter) PerformRelinking(r pages.Relinker) {
	f.settings.PerformRelinking(r)
}

// SetContentBox is the inbound hook from the content-detection stage: it
// measures the physical size of the detected content rectangle and
// records the content box. Pages with unusable resolution or a singular
// transform are left alone.
func (f *Filter) SetContentBox(page pages.Info, xform geom.Matrix, contentRect geom.Rect) {
	dpi := page.Metadata.DPI
	sizeMM, ok := geom.RectSizeMM(xform, contentRect, float64(dpi.X), float64(dpi.Y))
	if !ok {
		return
	}
	pageRect := transformedPageRect(page.Metadata, xform)
	f.settings.SetContentBox(page.ID, pageRect, contentRect, sizeMM)
}

// InvalidateContentBox drops a page's content box after upstream
// detection changed.
func (f *Filter) InvalidateContentBox(id pages.ID) {
	f.settings.InvalidateContentSize(id)
}

// CheckReadyForOutput is the readiness gate: output generation may only
// proceed once every page (other than ignore, typically the page still
// being edited) has its parameters defined.
func (f *Filter) CheckReadyForOutput(ignore *pages.ID) bool {
	snapshot := f.pages.ToPageSequence(f.View())
	return f.settings.CheckEverythingDefined(snapshot, ignore)
}

// LoadDefaultSettings establishes a default record for a freshly visited
// page. Idempotent.
func (f *Filter) LoadDefaultSettings(page pages.Info) {
	PopulateDefaults(f.settings, page, f.defaults)
}

// SaveSettings serializes the store into the project-file element.
func (f *Filter) SaveSettings(enum PageEnumerator) *Element {
	return SaveElement(f.settings, enum)
}

// LoadSettings restores the store from a project-file element.
func (f *Filter) LoadSettings(el *Element, res PageResolver) {
	LoadElement(f.settings, el, res)
}

// NewTask creates the interactive task for one page, chained to the
// output stage's interactive task. With batch set, the downstream
// interactive task runs; without it, only the downstream validity check.
// Debug requests extra diagnostics and has no effect on control flow.
func (f *Filter) NewTask(next *output.Task, id pages.ID, batch, debug bool) *Task {
	return newTask(f, next, id, batch, debug)
}

// NewCacheDrivenTask creates the validity-check task, chained to the
// output stage's check.
func (f *Filter) NewCacheDrivenTask(next *output.CacheDrivenTask) *CacheDrivenTask {
	return &CacheDrivenTask{filter: f, next: next}
}

// layoutFor derives the output-stage parameters for a page from its
// record. Both task variants use this one derivation, which is what
// makes them decision-equivalent: they cannot disagree about what output
// the record implies.
func (f *Filter) layoutFor(p Params, page pages.Info) output.Params {
	dpi := page.Metadata.DPI
	conv := unit.NewConverter(float64(dpi.X), float64(dpi.Y))

	contentRect := p.ContentRect()
	pageRect := p.PageRect()
	if contentRect.IsEmpty() {
		// No content box: downstream falls back to the full page.
		contentRect = pageRect
	}

	var inner geom.Rect
	if p.AutoMargins() && !pageRect.IsEmpty() {
		// Auto margins: the space the content already has inside the
		// page becomes its margins.
		inner = pageRect
	} else {
		m := p.HardMarginsMM()
		left, top := conv.Convert(m.Left, m.Top, unit.Millimetres, unit.Pixels)
		right, bottom := conv.Convert(m.Right, m.Bottom, unit.Millimetres, unit.Pixels)
		inner = contentRect.Adjusted(left, top, right, bottom)
	}

	outRect := inner
	if !p.Alignment().Null {
		if agg, ok := f.settings.AggregateHardSizeMM(); ok {
			frameW, frameH := conv.Convert(agg.Width, agg.Height, unit.Millimetres, unit.Pixels)
			outRect = alignWithin(inner, frameW, frameH, p.Alignment())
		}
	}

	return output.Params{OutRect: outRect, ContentRect: contentRect, DPI: dpi}
}

// alignWithin places the inner rectangle's frame inside a project-wide
// frame of at least frameW by frameH pixels, anchored per the alignment.
func alignWithin(inner geom.Rect, frameW, frameH float64, a Alignment) geom.Rect {
	if frameW < inner.Width {
		frameW = inner.Width
	}
	if frameH < inner.Height {
		frameH = inner.Height
	}
	extraW := frameW - inner.Width
	extraH := frameH - inner.Height

	var dx, dy float64
	switch a.Hor {
	case HAlignLeft:
		dx = 0
	case HAlignRight:
		dx = extraW
	default:
		dx = extraW / 2
	}
	switch a.Vert {
	case VAlignTop:
		dy = 0
	case VAlignBottom:
		dy = extraH
	default:
		dy = extraH / 2
	}

	return geom.Rect{X: inner.X - dx, Y: inner.Y - dy, Width: frameW, Height: frameH}
}

// transformedPageRect is the bounding box of the page's full image after
// the virtual transform.
func transformedPageRect(meta pages.Metadata, xform geom.Matrix) geom.Rect {
	full := geom.NewRect(0, 0, float64(meta.WidthPx), float64(meta.HeightPx))
	return xform.TransformRect(full)
}
