package pagelayout

import (
	"sync"

	"github.com/xietoby/scantailor-advanced/geom"
	"github.com/xietoby/scantailor-advanced/pages"
)

// Settings is the single source of truth for the page-layout stage: the
// per-page parameter records plus the project-wide guide lines and the
// middle-rectangle display flag.
//
// One coarse lock serializes every mutation against concurrent readers
// and writers. That is sufficient because each operation is O(1) or
// O(page count), never blocks on I/O, and records are only ever replaced
// wholesale — a reader can observe an older record or a newer one, never
// a partially written one.
type Settings struct {
	mu             sync.RWMutex
	params         map[pages.ID]Params
	guides         []Guide
	showMiddleRect bool
}

// NewSettings creates an empty store.
func NewSettings() *Settings {
	return &Settings{params: make(map[pages.ID]Params)}
}

// Params returns the record for a page. No side effects: a page with no
// record simply reports false, leaving default population to the caller.
func (s *Settings) Params(id pages.ID) (Params, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.params[id]
	return p, ok
}

// SetParams installs a record wholesale, replacing any previous one.
func (s *Settings) SetParams(id pages.ID, p Params) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.params[id] = p
}

// SetContentBox records the content rectangle detected for a page and the
// physical size derived from it. Margins and alignment are untouched.
// A page with no base record is left alone: a content box is meaningless
// without one, and default population will establish the base record on
// the page's next visit.
func (s *Settings) SetContentBox(id pages.ID, pageRect, contentRect geom.Rect, sizeMM geom.Size) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.params[id]
	if !ok {
		return
	}
	s.params[id] = p.WithContentBox(pageRect, contentRect, sizeMM)
}

// InvalidateContentSize clears a page's content box after upstream
// content detection changed and the old box can no longer be trusted.
// The rest of the record survives.
func (s *Settings) InvalidateContentSize(id pages.ID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.params[id]
	if !ok {
		return
	}
	s.params[id] = p.WithoutContentBox()
}

// RemovePagesMissingFrom prunes every record whose page is not in the
// authoritative sequence. Called when the stage becomes active, to
// reconcile against project changes made while it was not watching.
func (s *Settings) RemovePagesMissingFrom(seq pages.Sequence) {
	keep := seq.IDSet()
	s.mu.Lock()
	defer s.mu.Unlock()
	for id := range s.params {
		if _, ok := keep[id]; !ok {
			delete(s.params, id)
		}
	}
}

// CheckEverythingDefined reports whether every page in the sequence,
// other than ignore, has a record. A record always carries hard margins
// and an alignment, so its presence is the whole test; a missing content
// size does not block output, which falls back to full-page content.
func (s *Settings) CheckEverythingDefined(seq pages.Sequence, ignore *pages.ID) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, info := range seq {
		if ignore != nil && info.ID == *ignore {
			continue
		}
		if _, ok := s.params[info.ID]; !ok {
			return false
		}
	}
	return true
}

// PerformRelinking rewrites every record's key through the relinker,
// keeping the record values unchanged. Keys the relinker does not map are
// dropped — those pages no longer exist. The replacement map is built
// completely before the old one is discarded, so a panic mid-remap
// cannot lose data. Guides and the display flag are not keyed by page
// and are untouched.
func (s *Settings) PerformRelinking(r pages.Relinker) {
	s.mu.Lock()
	defer s.mu.Unlock()
	remapped := make(map[pages.ID]Params, len(s.params))
	for id, p := range s.params {
		if newID, ok := r.Relink(id); ok {
			remapped[newID] = p
		}
	}
	s.params = remapped
}

// Clear removes all per-page records and project-wide state. Used before
// a bulk reload.
func (s *Settings) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.params = make(map[pages.ID]Params)
	s.guides = nil
	s.showMiddleRect = false
}

// Guides returns a copy of the ordered guide list.
func (s *Settings) Guides() []Guide {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Guide, len(s.guides))
	copy(out, s.guides)
	return out
}

// SetGuides replaces the guide list.
func (s *Settings) SetGuides(guides []Guide) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.guides = make([]Guide, len(guides))
	copy(s.guides, guides)
}

// AddGuide appends a guide.
func (s *Settings) AddGuide(g Guide) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.guides = append(s.guides, g)
}

// ShowingMiddleRect reports whether the middle divider rectangle is shown
// in the editor. Persisted but never consulted by layout computation.
func (s *Settings) ShowingMiddleRect() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.showMiddleRect
}

// EnableShowingMiddleRect sets the display flag.
func (s *Settings) EnableShowingMiddleRect(enable bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.showMiddleRect = enable
}

// pageIDs returns a snapshot of the keyed identities, for tests and the
// deviation order provider.
func (s *Settings) pageIDs() []pages.ID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]pages.ID, 0, len(s.params))
	for id := range s.params {
		ids = append(ids, id)
	}
	return ids
}

// AggregateHardSizeMM returns the largest hard width and height across
// all pages with a known content size. This is the frame non-null-aligned
// pages are grown to so the whole project prints at a uniform size.
// False while no page has a content size yet.
func (s *Settings) AggregateHardSizeMM() (geom.Size, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var agg geom.Size
	found := false
	for _, p := range s.params {
		if !p.hasContentSize {
			continue
		}
		m := p.hardMarginsMM
		w := p.contentSizeMM.Width + m.Left + m.Right
		h := p.contentSizeMM.Height + m.Top + m.Bottom
		if w > agg.Width {
			agg.Width = w
		}
		if h > agg.Height {
			agg.Height = h
		}
		found = true
	}
	return agg, found
}

// HardSizeMM returns the page's physical size with margins applied: the
// content size grown by the hard margins. False while the page has no
// record or no content size yet.
func (s *Settings) HardSizeMM(id pages.ID) (geom.Size, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.params[id]
	if !ok {
		return geom.Size{}, false
	}
	size, ok := p.contentSizeMM, p.hasContentSize
	if !ok {
		return geom.Size{}, false
	}
	m := p.hardMarginsMM
	return geom.Size{
		Width:  size.Width + m.Left + m.Right,
		Height: size.Height + m.Top + m.Bottom,
	}, true
}
