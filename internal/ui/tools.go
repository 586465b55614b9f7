package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"HandSketch/internal/geom"
	"HandSketch/internal/session"
	"HandSketch/internal/touchui"
)

// colorSwatch shows the colour the next stroke will use. Tapping it cycles
// the palette.
type colorSwatch struct {
	widget.BaseWidget
	rect     *canvas.Rectangle
	OnTapped func()
}

func newColorSwatch(c geom.Color, tapped func()) *colorSwatch {
	s := &colorSwatch{rect: canvas.NewRectangle(c.NRGBA()), OnTapped: tapped}
	s.rect.SetMinSize(fyne.NewSize(32, 32))
	s.ExtendBaseWidget(s)
	return s
}

func (s *colorSwatch) SetColor(c geom.Color) {
	s.rect.FillColor = c.NRGBA()
	s.rect.Refresh()
}

func (s *colorSwatch) CreateRenderer() fyne.WidgetRenderer {
	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = color.Gray{Y: 150}
	border.StrokeWidth = 1
	return widget.NewSimpleRenderer(container.NewStack(s.rect, border))
}

func (s *colorSwatch) Tapped(_ *fyne.PointEvent) {
	if s.OnTapped != nil {
		s.OnTapped()
	}
}

// NewToolbar builds the desktop stand-in for the in-headset button panel.
// Every button goes through Session.Press, the same path a finger click
// on the panel takes.
func NewToolbar(sess *session.Session, status *widget.Label) fyne.CanvasObject {
	press := func(t touchui.Target) func() {
		return func() { sess.Press(t) }
	}

	swatch := newColorSwatch(sess.Engine.CurrentColor(), press(session.ButtonColor))
	sess.Engine.OnColorChanged = swatch.SetColor
	sess.OnStatus = status.SetText

	return container.NewHBox(
		widget.NewLabel("Colour:"),
		swatch,
		widget.NewSeparator(),
		widget.NewButtonWithIcon("Save", theme.DocumentSaveIcon(), press(session.ButtonSave)),
		widget.NewButtonWithIcon("Load", theme.FolderOpenIcon(), press(session.ButtonLoad)),
		widget.NewButtonWithIcon("Clear", theme.DeleteIcon(), press(session.ButtonClear)),
		widget.NewButtonWithIcon("PDF", theme.DocumentPrintIcon(), press(session.ButtonExport)),
		layout.NewSpacer(),
		status,
	)
}
