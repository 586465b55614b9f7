package posenet

import (
	"sync"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"HandSketch/internal/geom"
)

// Message is one fingertip sample as sent by the headset companion.
type Message struct {
	Hand     string     `json:"hand"`
	Tracked  bool       `json:"tracked"`
	Position [3]float32 `json:"position"`
	Forward  [3]float32 `json:"forward"`
}

type sample struct {
	pose    geom.Pose
	tracked bool
	at      time.Time
	src     string
}

// Feed holds the latest pose per hand received from the network and
// serves it as a geom.PoseProvider. Samples older than the max age read
// as untracked, so a stalled connection ends strokes instead of freezing
// them. Feed is safe for concurrent use.
type Feed struct {
	mu     sync.RWMutex
	hands  [2]sample
	maxAge time.Duration
	now    func() time.Time
}

var _ geom.PoseProvider = (*Feed)(nil)

// NewFeed returns a feed whose samples expire after maxAge. Zero means
// samples never expire.
func NewFeed(maxAge time.Duration) *Feed {
	return &Feed{maxAge: maxAge, now: time.Now}
}

// Push records a sample. Messages naming an unknown hand are dropped and
// Push returns false.
func (f *Feed) Push(m Message) bool { return f.PushFrom("", m) }

// PushFrom records a sample sent by src, which becomes the hand's writer.
func (f *Feed) PushFrom(src string, m Message) bool {
	h, ok := geom.ParseHand(m.Hand)
	if !ok {
		return false
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.hands[h] = sample{
		pose: geom.Pose{
			Position: mgl32.Vec3(m.Position),
			Forward:  mgl32.Vec3(m.Forward),
		},
		tracked: m.Tracked,
		at:      f.now(),
		src:     src,
	}
	return true
}

// Lose marks a hand untracked.
func (f *Feed) Lose(h geom.Hand) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.hands[h].tracked = false
}

// LoseFrom marks h untracked only if src wrote its latest sample, so a
// departing source cannot blank a hand another source now feeds.
func (f *Feed) LoseFrom(src string, h geom.Hand) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.hands[h].src != src {
		return false
	}
	f.hands[h].tracked = false
	return true
}

func (f *Feed) TryGetFingertipPose(h geom.Hand) (geom.Pose, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	s := f.hands[h]
	if !s.tracked || f.stale(s) {
		return geom.Pose{}, false
	}
	return s.pose, true
}

// IsTracked reports whether a fresh tracked sample exists for h.
func (f *Feed) IsTracked(h geom.Hand) bool {
	_, ok := f.TryGetFingertipPose(h)
	return ok
}

func (f *Feed) stale(s sample) bool {
	return f.maxAge > 0 && f.now().Sub(s.at) > f.maxAge
}
