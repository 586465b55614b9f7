package ui

import (
	"context"
	"log"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"HandSketch/internal/config"
	"HandSketch/internal/geom"
	"HandSketch/internal/session"
)

// frameInterval is the simulated headset frame rate.
const frameInterval = time.Second / 72

// Simulator is the desktop stand-in for the headset: a board driven by the
// mouse, plus a toolbar for the panel buttons.
type Simulator struct {
	Board   *BoardWidget
	Session *session.Session
	Status  *widget.Label
	Toolbar fyne.CanvasObject
}

// NewSimulator builds the widgets and the session they drive. extra, when
// non-nil, is consulted for the left hand so a real headset can still
// operate the UI panel through the pose feed.
func NewSimulator(cfg config.Config, extra geom.PoseProvider) (*Simulator, error) {
	board := NewBoardWidget(cfg.DrawingSurface())
	var poses geom.PoseProvider = board.Poses()
	if extra != nil {
		poses = handSplit{right: board.Poses(), left: extra}
		cfg.Panel.Hand = geom.Left.String()
	}
	sess, err := session.New(cfg, session.Options{Poses: poses, NewLine: board.NewLine})
	if err != nil {
		return nil, err
	}
	status := widget.NewLabel("Ready")
	return &Simulator{
		Board:   board,
		Session: sess,
		Status:  status,
		Toolbar: NewToolbar(sess, status),
	}, nil
}

// Run opens the window and blocks until it is closed.
func (s *Simulator) Run() {
	myApp := app.New()
	myWindow := myApp.NewWindow("HandSketch simulator")
	myWindow.Resize(fyne.NewSize(960, 700))
	myWindow.SetContent(container.NewBorder(s.Toolbar, nil, nil, nil, s.Board))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		t := time.NewTicker(frameInterval)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				fyne.Do(func() { s.Session.Tick() })
			}
		}
	}()

	log.Println("[UI] simulator running; hold the left mouse button to draw")
	myWindow.ShowAndRun()
}

// handSplit serves the right hand from one provider and the left from
// another.
type handSplit struct {
	right, left geom.PoseProvider
}

func (h handSplit) TryGetFingertipPose(hand geom.Hand) (geom.Pose, bool) {
	if hand == geom.Left {
		return h.left.TryGetFingertipPose(hand)
	}
	return h.right.TryGetFingertipPose(hand)
}
