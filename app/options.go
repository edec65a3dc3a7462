package app

import (
	"time"

	"github.com/gogpu/gpucontext"
)

// Option configures Run.
type Option func(*options)

type options struct {
	retries   int
	maxFrames int
	fixedStep time.Duration
	scale     float32
	perf      bool
	label     string
	events    gpucontext.EventSource
	window    gpucontext.WindowProvider
}

func defaultOptions() options {
	return options{
		retries:   3,
		maxFrames: 0, // run until stopped
		fixedStep: 0, // measure wall time
		scale:     1,
		label:     "sprite_frame",
	}
}

// WithAcquireRetries sets how many times a timed-out frame acquisition is
// retried before the frame is dropped. Default: 3.
func WithAcquireRetries(n int) Option {
	return func(o *options) {
		o.retries = max(n, 0)
	}
}

// WithMaxFrames stops Run after n presented frames. Zero means no limit.
func WithMaxFrames(n int) Option {
	return func(o *options) {
		o.maxFrames = max(n, 0)
	}
}

// WithFixedStep passes step to Game.Update on every frame instead of the
// measured wall time. Headless runs use it for reproducible output.
func WithFixedStep(step time.Duration) Option {
	return func(o *options) {
		o.fixedStep = step
	}
}

// WithScale sets the target scale used when no window provider is given.
func WithScale(scale float32) Option {
	return func(o *options) {
		o.scale = scale
	}
}

// WithPerf draws the frame time graph over every frame.
func WithPerf() Option {
	return func(o *options) {
		o.perf = true
	}
}

// WithFrameLabel sets the debug label of recorded frames.
func WithFrameLabel(label string) Option {
	return func(o *options) {
		o.label = label
	}
}

// WithEvents subscribes Run to es for key presses and resizes.
func WithEvents(es gpucontext.EventSource) Option {
	return func(o *options) {
		o.events = es
	}
}

// WithWindow reads the initial size and the per-frame scale factor from w.
func WithWindow(w gpucontext.WindowProvider) Option {
	return func(o *options) {
		o.window = w
	}
}
