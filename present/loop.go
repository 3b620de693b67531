package present

import (
	"errors"
	"fmt"

	"github.com/gogpu/blitrepro"
)

// State is the state of a Loop.
type State uint8

const (
	// Idle waits for the next event.
	Idle State = iota

	// Rendering is presenting the scene.
	Rendering

	// Terminated is final; no more frames are presented.
	Terminated
)

// String returns a string representation of the state.
func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Rendering:
		return "Rendering"
	case Terminated:
		return "Terminated"
	default:
		return "Unknown"
	}
}

// ErrTerminated is returned by Run when called on a terminated loop.
var ErrTerminated = errors.New("present: loop already terminated")

// Presenter draws a scene to its target and returns once the frame is
// visible (the swap has completed).
type Presenter interface {
	Present(scene *blitrepro.Scene) error
}

// PresenterFunc adapts a function to the Presenter interface.
type PresenterFunc func(scene *blitrepro.Scene) error

// Present calls f(scene).
func (f PresenterFunc) Present(scene *blitrepro.Scene) error { return f(scene) }

// EventSource blocks until the next event is available.
type EventSource interface {
	NextEvent() Event
}

// Option configures a Loop.
type Option func(*Loop)

// WithTransitionHook registers fn to be called after every state change.
func WithTransitionHook(fn func(from, to State, ev Event)) Option {
	return func(l *Loop) {
		l.onTransition = fn
	}
}

// WithMaxFrames terminates the loop after n presented frames.
// Zero, the default, means no limit.
func WithMaxFrames(n int) Option {
	return func(l *Loop) {
		l.maxFrames = n
	}
}

// Loop is the render-on-expose state machine.
type Loop struct {
	scene     *blitrepro.Scene
	presenter Presenter

	state     State
	frames    int
	maxFrames int

	onTransition func(from, to State, ev Event)
}

// New creates a loop in the Idle state.
func New(scene *blitrepro.Scene, p Presenter, opts ...Option) *Loop {
	l := &Loop{scene: scene, presenter: p}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// State returns the current state.
func (l *Loop) State() State { return l.state }

// Frames returns the number of frames presented so far.
func (l *Loop) Frames() int { return l.frames }

// Done reports whether the loop has terminated.
func (l *Loop) Done() bool { return l.state == Terminated }

// Handle applies a single event.
//
// Quit and Escape move any state to Terminated without rendering. Expose
// in Idle presents the scene and returns to Idle. Everything else, and every
// event after termination, is ignored. A presenter error terminates the loop
// and is returned.
func (l *Loop) Handle(ev Event) error {
	log := blitrepro.Logger()
	if l.state == Terminated {
		log.Debug("present: event after termination ignored", "event", ev.String())
		return nil
	}

	if ev.terminates() {
		l.transition(Terminated, ev)
		return nil
	}
	if ev.Kind != EventExpose || l.state != Idle {
		log.Debug("present: event ignored", "event", ev.String(), "state", l.state.String())
		return nil
	}

	l.transition(Rendering, ev)
	if err := l.presenter.Present(l.scene); err != nil {
		l.transition(Terminated, ev)
		return fmt.Errorf("present: frame %d: %w", l.frames+1, err)
	}
	l.frames++
	log.Info("present: frame presented", "frame", l.frames)

	if l.maxFrames > 0 && l.frames >= l.maxFrames {
		l.transition(Terminated, ev)
		return nil
	}
	l.transition(Idle, ev)
	return nil
}

// Run blocks on src until the loop terminates.
// It returns nil after Quit or Escape and the presenter's error otherwise.
func (l *Loop) Run(src EventSource) error {
	if l.state == Terminated {
		return ErrTerminated
	}
	for l.state != Terminated {
		if err := l.Handle(src.NextEvent()); err != nil {
			return err
		}
	}
	return nil
}

func (l *Loop) transition(to State, ev Event) {
	from := l.state
	l.state = to
	blitrepro.Logger().Debug("present: transition",
		"from", from.String(), "to", to.String(), "event", ev.String())
	if l.onTransition != nil {
		l.onTransition(from, to, ev)
	}
}
