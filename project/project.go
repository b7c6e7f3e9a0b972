package project

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/xietoby/scantailor-advanced/pages"
)

// Project is the hosting side of the pipeline: the authoritative,
// ordered set of pages, their durable identities, and the small numeric
// IDs pages are keyed by inside the project file.
type Project struct {
	mu    sync.RWMutex
	id    uuid.UUID
	pages []pages.Info
	index map[pages.ID]int
}

// New creates an empty project with a fresh durable identifier.
func New() *Project {
	return &Project{
		id:    uuid.New(),
		index: make(map[pages.ID]int),
	}
}

// ID returns the project's durable identifier.
func (p *Project) ID() uuid.UUID {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.id
}

// AddPage appends a page to the project. Adding a page whose identity is
// already present is an error; identities are never shared.
func (p *Project) AddPage(info pages.Info) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.index[info.ID]; ok {
		return fmt.Errorf("project: page %s already present", info.ID)
	}
	p.index[info.ID] = len(p.pages)
	p.pages = append(p.pages, info)
	return nil
}

// RemovePage removes a page. Removing an absent page is a no-op.
func (p *Project) RemovePage(id pages.ID) {
	p.mu.Lock()
	defer p.mu.Unlock()
	i, ok := p.index[id]
	if !ok {
		return
	}
	p.pages = append(p.pages[:i], p.pages[i+1:]...)
	delete(p.index, id)
	for j := i; j < len(p.pages); j++ {
		p.index[p.pages[j].ID] = j
	}
}

// NumPages returns the page count.
func (p *Project) NumPages() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.pages)
}

// ToPageSequence returns the pages in project order. The sequence is a
// snapshot; later project changes do not affect it.
func (p *Project) ToPageSequence(v pages.View) pages.Sequence {
	p.mu.RLock()
	defer p.mu.RUnlock()
	seq := make(pages.Sequence, len(p.pages))
	copy(seq, p.pages)
	return seq
}

// PageInfo returns the page with the given identity.
func (p *Project) PageInfo(id pages.ID) (pages.Info, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	i, ok := p.index[id]
	if !ok {
		return pages.Info{}, false
	}
	return p.pages[i], true
}

// EnumPages walks the pages in project order, pairing each durable
// identity with its stable numeric ID for this save.
func (p *Project) EnumPages(fn func(id pages.ID, numericID int)) {
	p.mu.RLock()
	snapshot := make(pages.Sequence, len(p.pages))
	copy(snapshot, p.pages)
	p.mu.RUnlock()
	for i, info := range snapshot {
		fn(info.ID, i)
	}
}

// PageID resolves a numeric ID from the current enumeration back to a
// durable identity.
func (p *Project) PageID(numericID int) (pages.ID, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if numericID < 0 || numericID >= len(p.pages) {
		return pages.ID{}, false
	}
	return p.pages[numericID].ID, true
}

// Relink rewrites page identities through the relinker. Pages the
// relinker maps get their new identity; unmapped pages keep their old
// one. Stage stores must be relinked with the same relinker — they drop
// unmapped entries, which is correct because a store entry whose page
// was neither kept nor remapped refers to a page that no longer exists.
func (p *Project) Relink(r pages.Relinker) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i := range p.pages {
		if newID, ok := r.Relink(p.pages[i].ID); ok {
			p.pages[i].ID = newID
		}
	}
	p.index = make(map[pages.ID]int, len(p.pages))
	for i, info := range p.pages {
		p.index[info.ID] = i
	}
}
