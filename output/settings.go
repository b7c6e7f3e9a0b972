package output

import (
	"sync"

	"github.com/xietoby/scantailor-advanced/pages"
)

// Settings records, per page, the fingerprint of the parameters the last
// produced output file was rendered from, and where output files live.
// All mutation is serialized behind one lock; entries are replaced
// wholesale so readers never observe partial state.
type Settings struct {
	mu           sync.RWMutex
	fingerprints map[pages.ID]uint64
	outDir       string
}

// NewSettings creates an empty store. outDir is where rendered files are
// written; an empty string keeps the stage purely in-memory, which cache
// checks honour by skipping the file-existence test.
func NewSettings(outDir string) *Settings {
	return &Settings{
		fingerprints: make(map[pages.ID]uint64),
		outDir:       outDir,
	}
}

// OutputDir returns the directory rendered files are written to.
func (s *Settings) OutputDir() string {
	return s.outDir
}

// Fingerprint returns the stored fingerprint for a page.
func (s *Settings) Fingerprint(id pages.ID) (uint64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fp, ok := s.fingerprints[id]
	return fp, ok
}

// SetFingerprint records that output for the page was produced from
// parameters with the given fingerprint.
func (s *Settings) SetFingerprint(id pages.ID, fp uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fingerprints[id] = fp
}

// Invalidate forgets the page's output, forcing regeneration next run.
func (s *Settings) Invalidate(id pages.ID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.fingerprints, id)
}

// RemovePagesMissingFrom prunes entries for pages no longer in the
// project.
func (s *Settings) RemovePagesMissingFrom(seq pages.Sequence) {
	keep := seq.IDSet()
	s.mu.Lock()
	defer s.mu.Unlock()
	for id := range s.fingerprints {
		if _, ok := keep[id]; !ok {
			delete(s.fingerprints, id)
		}
	}
}

// PerformRelinking rewrites every key through the relinker, dropping
// entries whose old key has no mapping. The new map is built completely
// before replacing the old one.
func (s *Settings) PerformRelinking(r pages.Relinker) {
	s.mu.Lock()
	defer s.mu.Unlock()
	remapped := make(map[pages.ID]uint64, len(s.fingerprints))
	for id, fp := range s.fingerprints {
		if newID, ok := r.Relink(id); ok {
			remapped[newID] = fp
		}
	}
	s.fingerprints = remapped
}

// Clear removes all per-page state.
func (s *Settings) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fingerprints = make(map[pages.ID]uint64)
}
