package zoom

import (
	"time"

	"github.com/matzehuels/sunburst/pkg/partition"
)

// DefaultDuration is the length of a zoom tween.
const DefaultDuration = 750 * time.Millisecond

// Option configures a [View].
type Option func(*View)

// WithDuration sets the tween length. Zero or negative durations make
// focus changes take effect immediately.
func WithDuration(d time.Duration) Option {
	return func(v *View) { v.duration = d }
}

// WithEasing sets the tween easing (default [CubicInOut]).
func WithEasing(e Easing) Option {
	return func(v *View) {
		if e != nil {
			v.ease = e
		}
	}
}

// WithFocus starts the view zoomed into focus. Invalid or non-zoomable
// indices are ignored.
func WithFocus(focus int) Option {
	return func(v *View) {
		if focus == 0 || partition.ZoomTarget(v.layout, focus) {
			v.focus = focus
		}
	}
}

// View is the zoom state over one layout. It is not safe for concurrent
// use.
type View struct {
	Current []partition.Span
	From    []partition.Span
	Target  []partition.Span

	layout    *partition.Layout
	focus     int
	start     time.Time
	duration  time.Duration
	ease      Easing
	animating bool
}

// NewView returns a settled view over l focused on the root.
func NewView(l *partition.Layout, opts ...Option) *View {
	v := &View{
		layout:   l,
		duration: DefaultDuration,
		ease:     CubicInOut,
	}
	for _, opt := range opts {
		opt(v)
	}
	v.Target = partition.Retarget(l, v.focus)
	v.Current = clone(v.Target)
	v.From = clone(v.Target)
	return v
}

// Layout returns the base layout.
func (v *View) Layout() *partition.Layout { return v.layout }

// Focus returns the index of the node currently filling the view.
func (v *View) Focus() int { return v.focus }

// Animating reports whether a tween is in progress.
func (v *View) Animating() bool { return v.animating }

// Click zooms into node i at time now. Leaves, zero-width nodes and the
// current focus are not zoom targets; for those Click returns false and
// leaves the view untouched.
func (v *View) Click(i int, now time.Time) bool {
	if i == v.focus || !partition.ZoomTarget(v.layout, i) {
		return false
	}
	v.retarget(i, now)
	return true
}

// Back zooms out to the parent of the current focus, as a click on the
// center does. It returns false when the root is already the focus.
func (v *View) Back(now time.Time) bool {
	p := partition.ParentFocus(v.layout, v.focus)
	if p == v.focus {
		return false
	}
	v.retarget(p, now)
	return true
}

// Advance moves Current to its position at now and reports whether the
// tween is still running afterwards.
func (v *View) Advance(now time.Time) bool {
	if !v.animating {
		return false
	}
	t := v.progress(now)
	if t >= 1 {
		v.Settle()
		return false
	}
	e := v.ease(t)
	for i := range v.Current {
		v.Current[i] = v.From[i].Lerp(v.Target[i], e)
	}
	return true
}

// Settle ends any running tween with Current at its target.
func (v *View) Settle() {
	copy(v.Current, v.Target)
	v.animating = false
}

func (v *View) retarget(focus int, now time.Time) {
	v.Advance(now)
	v.focus = focus
	v.From = clone(v.Current)
	v.Target = partition.Retarget(v.layout, focus)
	v.start = now
	v.animating = true
	if v.duration <= 0 {
		v.Settle()
	}
}

func (v *View) progress(now time.Time) float64 {
	if v.duration <= 0 {
		return 1
	}
	t := float64(now.Sub(v.start)) / float64(v.duration)
	switch {
	case t < 0:
		return 0
	case t > 1:
		return 1
	}
	return t
}

func clone(s []partition.Span) []partition.Span {
	return append([]partition.Span(nil), s...)
}
