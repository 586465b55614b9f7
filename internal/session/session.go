// Package session wires the capture engine, the UI panel and persistence
// into one per-frame loop for a single drawing surface.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"HandSketch/internal/capture"
	"HandSketch/internal/codec"
	"HandSketch/internal/config"
	"HandSketch/internal/export"
	"HandSketch/internal/geom"
	"HandSketch/internal/logging"
	"HandSketch/internal/pool"
	"HandSketch/internal/render"
	"HandSketch/internal/touchui"
)

// Panel button targets.
const (
	ButtonColor  touchui.Target = "color"
	ButtonSave   touchui.Target = "save"
	ButtonLoad   touchui.Target = "load"
	ButtonClear  touchui.Target = "clear"
	ButtonExport touchui.Target = "export"
)

// ErrPersistenceDisabled is returned by Save and Load when storage is
// switched off in the configuration.
var ErrPersistenceDisabled = errors.New("persistence disabled")

// Options supplies the engine-side collaborators.
type Options struct {
	Poses geom.PoseProvider
	// NewLine creates a backend line. Defaults to headless render.Lines.
	NewLine func() render.Renderable
	// HitTester for the UI panel. Defaults to the stacked button column.
	HitTester touchui.HitTester
	Projector touchui.Projector
}

type Session struct {
	Engine *capture.Engine
	Bridge *touchui.Bridge

	lines   *pool.Pool[render.Renderable]
	store   *codec.FileStore
	pdfPath string
	page    export.Page

	// OnStatus receives short human-readable results of panel actions.
	OnStatus func(string)

	log *slog.Logger
}

// New builds a session from cfg.
func New(cfg config.Config, opts Options) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	palette, err := cfg.Colors()
	if err != nil {
		return nil, err
	}
	newLine := opts.NewLine
	if newLine == nil {
		f := &render.LineFactory{}
		newLine = f.NewRenderable
	}

	s := &Session{
		lines:   pool.New(newLine, cfg.Drawing.PoolCapacity),
		pdfPath: cfg.Storage.PDFPath,
		page:    export.Page{Width: cfg.Surface.Width, Height: cfg.Surface.Height},
		log:     logging.For("session"),
	}
	if cfg.Storage.Enabled {
		s.store = &codec.FileStore{Path: cfg.Storage.Path}
	}

	s.Engine = capture.New(opts.Poses, cfg.DrawingSurface(), s.lines, capture.Config{
		TouchDistance:      cfg.Drawing.TouchDistance,
		MinPointSpacing:    cfg.Drawing.MinPointSpacing,
		MaxPointsPerStroke: cfg.Drawing.MaxPointsPerStroke,
		MaxActiveStrokes:   cfg.Drawing.MaxActiveStrokes,
		Palette:            palette,
		Hand:               cfg.DrawingHand(),
	})

	panel := cfg.PanelSurface()
	hits := opts.HitTester
	if hits == nil {
		hits = touchui.StackedButtons(panel, 0.01, ButtonColor, ButtonSave, ButtonLoad, ButtonClear, ButtonExport)
	}
	s.Bridge = touchui.NewBridge(opts.Poses, panel, hits, opts.Projector, touchui.Config{
		PressDepth:    cfg.Panel.PressDepth,
		HoverDistance: cfg.Panel.HoverDistance,
		Hand:          cfg.PanelHand(),
	})
	s.Bridge.OnEvent = s.handle
	return s, nil
}

// Tick runs one frame: drawing first, then the UI panel.
func (s *Session) Tick() (capture.Effects, []touchui.Event) {
	eff := s.Engine.Update()
	events := s.Bridge.Update()
	return eff, events
}

// Run ticks every interval until ctx is cancelled.
func (s *Session) Run(ctx context.Context, interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.Tick()
		}
	}
}

// Lines exposes the renderable pool, mostly for diagnostics.
func (s *Session) Lines() *pool.Pool[render.Renderable] { return s.lines }

// Save writes every active stroke to the drawing file.
func (s *Session) Save() error {
	if s.store == nil {
		return ErrPersistenceDisabled
	}
	recs := s.Engine.Records()
	if err := s.store.Write(codec.Save(recs)); err != nil {
		return err
	}
	s.log.Info("drawing saved", "path", s.store.Path, "strokes", len(recs))
	return nil
}

// Load replaces the drawing with the saved one. loaded is false when no
// file exists yet; the current drawing is then left alone. On any error
// the current drawing is also left untouched.
func (s *Session) Load() (loaded bool, err error) {
	if s.store == nil {
		return false, ErrPersistenceDisabled
	}
	doc, found, err := s.store.Read()
	if err != nil {
		return false, err
	}
	if !found {
		s.log.Info("no saved drawing", "path", s.store.Path)
		return false, nil
	}
	s.Engine.Replace(doc.Records())
	s.log.Info("drawing loaded", "path", s.store.Path, "strokes", s.Engine.Len())
	return true, nil
}

// ExportPDF renders the current drawing to the configured PDF path.
func (s *Session) ExportPDF() error {
	if s.pdfPath == "" {
		return errors.New("no pdf path configured")
	}
	if err := export.PDF(s.pdfPath, s.Engine.Records(), s.page); err != nil {
		return fmt.Errorf("export pdf: %w", err)
	}
	s.log.Info("drawing exported", "path", s.pdfPath)
	return nil
}

// Press runs the action behind a panel button, as a click would.
func (s *Session) Press(target touchui.Target) {
	switch target {
	case ButtonColor:
		c := s.Engine.ToggleColor()
		s.status("Colour " + c.Hex())
	case ButtonClear:
		s.Engine.ClearAll()
		s.status("Cleared")
	case ButtonSave:
		if err := s.Save(); err != nil {
			s.fail("save", err)
			return
		}
		s.status(fmt.Sprintf("Saved %d strokes", s.Engine.Len()))
	case ButtonLoad:
		loaded, err := s.Load()
		switch {
		case err != nil:
			s.fail("load", err)
		case !loaded:
			s.status("Nothing to load")
		default:
			s.status(fmt.Sprintf("Loaded %d strokes", s.Engine.Len()))
		}
	case ButtonExport:
		if err := s.ExportPDF(); err != nil {
			s.fail("export", err)
			return
		}
		s.status("Exported " + s.pdfPath)
	default:
		s.log.Debug("click on unknown target", "target", string(target))
	}
}

func (s *Session) handle(ev touchui.Event) {
	if ev.Kind == touchui.Click {
		s.Press(ev.Target)
	}
}

func (s *Session) status(msg string) {
	if s.OnStatus != nil {
		s.OnStatus(msg)
	}
}

func (s *Session) fail(op string, err error) {
	var de *codec.DecodeError
	if errors.As(err, &de) {
		s.log.Warn(op+" failed: malformed drawing", "err", err)
		s.status("Saved drawing is corrupt")
		return
	}
	s.log.Warn(op+" failed", "err", err)
	s.status(fmt.Sprintf("%s failed: %v", op, err))
}
