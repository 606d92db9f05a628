// Package onboarding drives the intro shown when the landing page mounts:
// a fixed-length loading screen, the hero reveal, and the typed tagline.
//
// The sequence only moves forward (Loading -> TextReveal -> SteadyState), is
// driven entirely by timers from an injected clock, and runs once per
// Sequencer.
package onboarding

import (
	"errors"
	"sync"
	"time"

	"proply_app_go/services/clock"
)

// Phase is the stage of the intro sequence
type Phase int

const (
	Loading Phase = iota
	TextReveal
	SteadyState
)

func (p Phase) String() string {
	switch p {
	case Loading:
		return "loading"
	case TextReveal:
		return "text-reveal"
	case SteadyState:
		return "steady-state"
	}
	return "unknown"
}

// EventKind identifies what happened in the sequence
type EventKind int

const (
	LoadingStarted EventKind = iota
	BrandRevealed
	LoadingComplete
	ContentRevealed
	CharTyped
	CaretFading
	CaretHidden
)

func (k EventKind) String() string {
	return [...]string{
		"loading-started",
		"brand-revealed",
		"loading-complete",
		"content-revealed",
		"char-typed",
		"caret-fading",
		"caret-hidden",
	}[k]
}

// Event is delivered to the listener for every step
type Event struct {
	Kind  EventKind
	Phase Phase
	// Char is the character just typed (CharTyped only)
	Char string
	// Text is everything typed so far
	Text string
	// Elapsed is the clock time since Start
	Elapsed time.Duration
}

// Listener receives events one at a time, in order. It is called outside the
// sequencer's lock and may call the sequencer's accessors.
type Listener func(Event)

// ErrAlreadyStarted is returned by a second Start; the sequence is not restartable.
var ErrAlreadyStarted = errors.New("onboarding: sequence already started")

// Sequencer is the timer driven intro state machine
type Sequencer struct {
	mu       sync.Mutex
	clock    clock.Clock
	timings  Timings
	random   Random
	listener Listener

	plan      Plan
	phase     Phase
	typed     int
	caret     bool
	started   bool
	stopped   bool
	startedAt time.Time
	timers    []clock.Timer
	done      chan struct{}

	queue      []Event
	delivering bool
}

// Option configures a Sequencer
type Option func(*Sequencer)

// WithClock sets the clock that drives the timers
func WithClock(c clock.Clock) Option {
	return func(s *Sequencer) { s.clock = c }
}

// WithTimings overrides the default delays
func WithTimings(t Timings) Option {
	return func(s *Sequencer) { s.timings = t }
}

// WithRand sets the jitter source
func WithRand(r Random) Option {
	return func(s *Sequencer) { s.random = r }
}

// WithListener registers the event callback
func WithListener(l Listener) Option {
	return func(s *Sequencer) { s.listener = l }
}

// New creates a Sequencer that will type text once content is revealed
func New(text string, opts ...Option) *Sequencer {
	s := &Sequencer{
		clock:   clock.Real(),
		timings: DefaultTimings(),
		random:  globalRandom{},
		done:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.plan = PlanTyping(text, s.timings, s.random)
	return s
}

// Plan returns the precomputed timeline the sequence will follow
func (s *Sequencer) Plan() Plan {
	return s.plan
}

// Phase returns the current phase
func (s *Sequencer) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Typed returns the part of the tagline typed so far
func (s *Sequencer) Typed() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.typedLocked()
}

// CaretVisible reports whether the typing caret is shown
func (s *Sequencer) CaretVisible() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.caret
}

// Done is closed once the last event has been delivered, or on Stop
func (s *Sequencer) Done() <-chan struct{} {
	return s.done
}

// Start enters Loading and schedules the rest of the sequence
func (s *Sequencer) Start() error {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return ErrAlreadyStarted
	}
	s.started = true
	s.phase = Loading
	s.startedAt = s.clock.Now()

	s.after(s.timings.BrandReveal, func() []Event {
		return []Event{s.eventLocked(BrandRevealed, "")}
	})
	s.after(s.timings.Loading, s.completeLoadingLocked)
	s.queue = append(s.queue, s.eventLocked(LoadingStarted, ""))
	s.mu.Unlock()

	s.deliver()
	return nil
}

// Stop clears every pending timer, as when the page is torn down. The
// sequence stays in whatever phase it reached.
func (s *Sequencer) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}
	s.stopped = true
	for _, t := range s.timers {
		t.Stop()
	}
	s.timers = nil
	s.closeDoneLocked()
}

func (s *Sequencer) completeLoadingLocked() []Event {
	s.after(s.timings.RevealDelay, s.revealContentLocked)
	return []Event{s.eventLocked(LoadingComplete, "")}
}

func (s *Sequencer) revealContentLocked() []Event {
	s.phase = TextReveal
	s.caret = true
	s.after(time.Duration(s.plan.TypingStartMS)*time.Millisecond, s.typeNextLocked)
	return []Event{s.eventLocked(ContentRevealed, "")}
}

func (s *Sequencer) typeNextLocked() []Event {
	if s.typed >= len(s.plan.Keys) {
		s.after(time.Duration(s.plan.CaretHoldMS)*time.Millisecond, s.fadeCaretLocked)
		return nil
	}

	key := s.plan.Keys[s.typed]
	s.typed++
	s.after(time.Duration(key.PauseMS)*time.Millisecond, s.typeNextLocked)
	return []Event{s.eventLocked(CharTyped, key.Char)}
}

func (s *Sequencer) fadeCaretLocked() []Event {
	s.after(time.Duration(s.plan.CaretFadeMS)*time.Millisecond, s.hideCaretLocked)
	return []Event{s.eventLocked(CaretFading, "")}
}

func (s *Sequencer) hideCaretLocked() []Event {
	s.caret = false
	s.phase = SteadyState
	return []Event{s.eventLocked(CaretHidden, "")}
}

// after schedules step; it must be called with s.mu held so the callback
// cannot observe a half-registered timer.
func (s *Sequencer) after(d time.Duration, step func() []Event) {
	var t clock.Timer
	t = s.clock.AfterFunc(d, func() {
		s.mu.Lock()
		if s.stopped {
			s.mu.Unlock()
			return
		}
		s.forgetLocked(t)
		s.queue = append(s.queue, step()...)
		s.mu.Unlock()
		s.deliver()
	})
	s.timers = append(s.timers, t)
}

func (s *Sequencer) forgetLocked(t clock.Timer) {
	for i, p := range s.timers {
		if p == t {
			s.timers = append(s.timers[:i], s.timers[i+1:]...)
			return
		}
	}
}

func (s *Sequencer) eventLocked(kind EventKind, char string) Event {
	return Event{
		Kind:    kind,
		Phase:   s.phase,
		Char:    char,
		Text:    s.typedLocked(),
		Elapsed: s.clock.Now().Sub(s.startedAt),
	}
}

func (s *Sequencer) typedLocked() string {
	var text string
	for _, k := range s.plan.Keys[:s.typed] {
		text += k.Char
	}
	return text
}

func (s *Sequencer) closeDoneLocked() {
	select {
	case <-s.done:
	default:
		close(s.done)
	}
}

// deliver drains the queue to the listener. Only one caller drains at a time,
// so events arrive in the order they were queued even when timers fire on
// different goroutines.
func (s *Sequencer) deliver() {
	s.mu.Lock()
	if s.delivering {
		s.mu.Unlock()
		return
	}
	s.delivering = true
	for len(s.queue) > 0 {
		ev := s.queue[0]
		s.queue = s.queue[1:]
		s.mu.Unlock()
		if s.listener != nil {
			s.listener(ev)
		}
		s.mu.Lock()
	}
	s.delivering = false
	if s.phase == SteadyState {
		s.closeDoneLocked()
	}
	s.mu.Unlock()
}
