// Package scantailor ties a scanned-page project to its processing
// pipeline: per-page layout parameters, output generation, and the
// cache-driven validity sweep that decides what actually needs
// recomputing.
//
// Basic usage:
//
//	session := scantailor.NewSession(config.Default(), "out")
//	session.Project.AddPage(page)
//	session.Layout.LoadDefaultSettings(page)
//	if session.CheckReadyForOutput(nil) {
//	    err := session.ProcessAll(ctx, 4, loadPage)
//	}
//
// For finer control the stage packages (pagelayout, output) are also
// available directly.
package scantailor

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/xietoby/scantailor-advanced/config"
	"github.com/xietoby/scantailor-advanced/content"
	"github.com/xietoby/scantailor-advanced/output"
	"github.com/xietoby/scantailor-advanced/pagelayout"
	"github.com/xietoby/scantailor-advanced/pages"
	"github.com/xietoby/scantailor-advanced/pipeline"
	"github.com/xietoby/scantailor-advanced/project"
)

// Session wires one project to the pipeline stages operating on it.
type Session struct {
	Project *project.Project
	Layout  *pagelayout.Filter
	Output  *output.Settings
}

// NewSession creates a session over a fresh, empty project. outDir is
// where rendered output files go; empty keeps output in memory only.
func NewSession(cfg config.Config, outDir string) *Session {
	s := &Session{Output: output.NewSettings(outDir)}
	s.Layout = pagelayout.NewFilter(s, pagelayout.DefaultsFromConfig(cfg.PageLayout))
	s.Project = project.New()
	return s
}

// OpenSession restores a session from a saved project file.
func OpenSession(r io.Reader, cfg config.Config, outDir string) (*Session, error) {
	s := &Session{Output: output.NewSettings(outDir)}
	s.Layout = pagelayout.NewFilter(s, pagelayout.DefaultsFromConfig(cfg.PageLayout))
	proj, err := project.Load(r, s.Layout)
	if err != nil {
		return nil, err
	}
	s.Project = proj
	return s, nil
}

// ToPageSequence lets the session stand in as the stages' view of the
// project, so stages can be constructed before a project file is loaded.
func (s *Session) ToPageSequence(v pages.View) pages.Sequence {
	if s.Project == nil {
		return nil
	}
	return s.Project.ToPageSequence(v)
}

// SaveProject writes the project file, including all stage state.
func (s *Session) SaveProject(w io.Writer) error {
	return s.Project.Save(w, s.Layout)
}

// CheckReadyForOutput reports whether every page except ignore has its
// layout parameters defined.
func (s *Session) CheckReadyForOutput(ignore *pages.ID) bool {
	return s.Layout.CheckReadyForOutput(ignore)
}

// StalePages sweeps the cache-driven task chain over every page and
// returns the pages whose cached output is no longer valid. No stage
// work is performed.
func (s *Session) StalePages() []pages.ID {
	seq := s.ToPageSequence(s.Layout.View())
	return pipeline.Invalid(seq, func(pages.Info) pipeline.CacheDrivenTask {
		return s.Layout.NewCacheDrivenTask(output.NewCacheDrivenTask(s.Output))
	})
}

// ProcessAll runs the interactive task chain for every page over a
// worker pool. load supplies each page's pixels and transform. Pages
// whose cached output is still valid cost one fingerprint comparison.
func (s *Session) ProcessAll(ctx context.Context, workers int, load func(pages.Info) (*pipeline.PageData, error)) error {
	seq := s.ToPageSequence(s.Layout.View())
	runner := pipeline.NewRunner(workers, nil)
	return runner.Run(ctx, seq,
		func(info pages.Info) pipeline.Task {
			next := output.NewTask(s.Output, info.ID, true, false)
			return s.Layout.NewTask(next, info.ID, true, false)
		},
		load,
	)
}

// DetectContent sweeps every page through content-box detection and
// records the detected boxes in the layout stage, narrowing margins from
// the full page down to the actual ink. Requires a build with the ocr
// tag; without one the detector's constructor error is returned and the
// layout stage keeps treating the full page as content. Pages on which
// the engine finds nothing are left as they are.
func (s *Session) DetectContent(ctx context.Context, load func(pages.Info) (*pipeline.PageData, error)) error {
	det, err := content.NewDetector()
	if err != nil {
		return err
	}
	defer det.Close()

	for _, info := range s.ToPageSequence(s.Layout.View()) {
		if err := ctx.Err(); err != nil {
			return err
		}
		data, err := load(info)
		if err != nil {
			return fmt.Errorf("load %s: %w", info.ID, err)
		}
		box, err := det.DetectBox(data.Image)
		if errors.Is(err, content.ErrNoContent) {
			continue
		}
		if err != nil {
			return fmt.Errorf("detect %s: %w", info.ID, err)
		}
		// The detector reports source pixels; the layout stage works in
		// the virtual coordinate space.
		s.Layout.SetContentBox(info, data.Xform, data.Xform.TransformRect(box))
	}
	return nil
}

// Relink rewrites page identities project-wide, in the project and in
// every stage store, through one relinker.
func (s *Session) Relink(r pages.Relinker) {
	s.Project.Relink(r)
	s.Layout.PerformRelinking(r)
	s.Output.PerformRelinking(r)
}
