package ui

import (
	"image/color"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
	"github.com/go-gl/mathgl/mgl32"

	"HandSketch/internal/geom"
	"HandSketch/internal/render"
)

// hoverDepth is how far in front of the surface the simulated fingertip
// floats while no mouse button is held.
const hoverDepth = 0.05

// MousePoses turns the mouse into a fingertip: over the board it hovers
// in front of the surface, and holding the primary button pushes it onto
// the surface. Outside the board the hand is untracked.
type MousePoses struct {
	mu      sync.Mutex
	pose    geom.Pose
	tracked bool
}

var _ geom.PoseProvider = (*MousePoses)(nil)

func (m *MousePoses) TryGetFingertipPose(geom.Hand) (geom.Pose, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pose, m.tracked
}

func (m *MousePoses) set(p geom.Pose, tracked bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pose, m.tracked = p, tracked
}

// BoardWidget shows the drawing surface face-on and feeds mouse input to
// the capture engine as fingertip poses.
type BoardWidget struct {
	widget.BaseWidget

	surface geom.Surface
	poses   *MousePoses
	content *fyne.Container
	lines   []*canvasLine
	pressed bool
	cursor  fyne.Position
}

var _ fyne.Widget = (*BoardWidget)(nil)
var _ fyne.Draggable = (*BoardWidget)(nil)
var _ desktop.Mouseable = (*BoardWidget)(nil)
var _ desktop.Hoverable = (*BoardWidget)(nil)

func NewBoardWidget(surface geom.Surface) *BoardWidget {
	b := &BoardWidget{
		surface: surface,
		poses:   &MousePoses{},
		content: container.NewWithoutLayout(),
	}
	b.ExtendBaseWidget(b)
	return b
}

// Poses is the pose provider driven by this widget.
func (b *BoardWidget) Poses() *MousePoses { return b.poses }

// NewLine creates a canvas-backed renderable on this board.
func (b *BoardWidget) NewLine() render.Renderable {
	l := &canvasLine{board: b, visible: true}
	b.lines = append(b.lines, l)
	return l
}

// toLocal maps a widget position to surface-local coordinates.
func (b *BoardWidget) toLocal(pos fyne.Position) mgl32.Vec3 {
	size := b.Size()
	if size.Width <= 0 || size.Height <= 0 {
		return mgl32.Vec3{}
	}
	w, h := b.surface.Scale.X(), b.surface.Scale.Y()
	return mgl32.Vec3{
		(pos.X/size.Width - 0.5) * w,
		(0.5 - pos.Y/size.Height) * h,
		0,
	}
}

// toPixel is the inverse of toLocal.
func (b *BoardWidget) toPixel(p mgl32.Vec3) fyne.Position {
	size := b.Size()
	w, h := b.surface.Scale.X(), b.surface.Scale.Y()
	if w <= 0 || h <= 0 {
		return fyne.Position{}
	}
	return fyne.NewPos((p.X()/w+0.5)*size.Width, (0.5-p.Y()/h)*size.Height)
}

func (b *BoardWidget) updatePose(pos fyne.Position) {
	b.cursor = pos
	depth := float32(hoverDepth)
	if b.pressed {
		depth = 0
	}
	local := b.toLocal(pos)
	world := b.surface.LocalToWorld(local).Add(b.surface.Forward().Mul(depth))
	b.poses.set(geom.Pose{Position: world, Forward: b.surface.Forward().Mul(-1)}, true)
}

func (b *BoardWidget) MouseDown(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	b.pressed = true
	b.updatePose(e.Position)
}

func (b *BoardWidget) MouseUp(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	b.pressed = false
	b.updatePose(e.Position)
}

func (b *BoardWidget) Dragged(e *fyne.DragEvent) {
	b.updatePose(e.Position)
}

func (b *BoardWidget) DragEnd() {
	b.pressed = false
	b.updatePose(b.cursor)
}

func (b *BoardWidget) MouseIn(e *desktop.MouseEvent)    { b.updatePose(e.Position) }
func (b *BoardWidget) MouseMoved(e *desktop.MouseEvent) { b.updatePose(e.Position) }

func (b *BoardWidget) MouseOut() {
	b.pressed = false
	b.poses.set(geom.Pose{}, false)
}

func (b *BoardWidget) relayout() {
	for _, l := range b.lines {
		l.layout()
	}
	b.content.Refresh()
}

func (b *BoardWidget) CreateRenderer() fyne.WidgetRenderer {
	r := &boardWidgetRenderer{board: b}
	r.background = canvas.NewRectangle(color.White)
	r.background.StrokeColor = color.Gray{Y: 200}
	r.background.StrokeWidth = 1
	return r
}

type boardWidgetRenderer struct {
	board      *BoardWidget
	background *canvas.Rectangle
}

func (r *boardWidgetRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.background, r.board.content}
}

func (r *boardWidgetRenderer) Layout(size fyne.Size) {
	r.background.Resize(size)
	r.board.content.Resize(size)
	r.board.relayout()
}

func (r *boardWidgetRenderer) MinSize() fyne.Size {
	return fyne.NewSize(300, 200)
}

func (r *boardWidgetRenderer) Refresh() {
	r.background.Refresh()
	r.board.content.Refresh()
}

func (r *boardWidgetRenderer) Destroy() {}
