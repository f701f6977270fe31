// Package zoom holds the focus state of a zoomable sunburst.
//
// A [View] owns three span slices indexed like its layout: Current is what
// is drawn now, From is where the running tween started and Target is where
// it ends. [View.Click] and [View.Back] change the focus; [View.Advance]
// moves Current along the tween for a given instant.
//
// Tweens are interruptible. A click during a running tween first brings
// Current up to the click instant and starts the new tween from there, so
// arcs never jump back to a stale target.
//
// Time is passed in by the caller. The package never reads the clock or
// starts goroutines, which keeps a View deterministic in tests and usable
// from any event loop.
package zoom
