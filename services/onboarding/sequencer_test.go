package onboarding

import (
	"sync"
	"testing"
	"time"

	"proply_app_go/services/clock"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// fixedRandom replays values, repeating the last one
type fixedRandom struct {
	values []float64
	i      int
}

func (f *fixedRandom) Float64() float64 {
	v := f.values[f.i]
	if f.i < len(f.values)-1 {
		f.i++
	}
	return v
}

type recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *recorder) listen(ev Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *recorder) kinds() []EventKind {
	r.mu.Lock()
	defer r.mu.Unlock()
	kinds := make([]EventKind, 0, len(r.events))
	for _, ev := range r.events {
		kinds = append(kinds, ev.Kind)
	}
	return kinds
}

func (r *recorder) find(kind EventKind) (Event, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ev := range r.events {
		if ev.Kind == kind {
			return ev, true
		}
	}
	return Event{}, false
}

func newTestSequencer(text string) (*Sequencer, *clock.Fake, *recorder) {
	fake := clock.NewFake()
	rec := &recorder{}
	seq := New(text,
		WithClock(fake),
		WithRand(&fixedRandom{values: []float64{0.99}}), // never jitter
		WithListener(rec.listen),
	)
	return seq, fake, rec
}

func TestLoadingLastsExactlyTheFixedDuration(t *testing.T) {
	seq, fake, rec := newTestSequencer("Hi.")
	require.NoError(t, seq.Start())
	assert.Equal(t, Loading, seq.Phase())

	fake.Advance(1199 * time.Millisecond)
	assert.Equal(t, []EventKind{LoadingStarted}, rec.kinds())

	fake.Advance(time.Millisecond)
	assert.Equal(t, []EventKind{LoadingStarted, BrandRevealed}, rec.kinds())

	fake.Advance(1799 * time.Millisecond)
	_, completed := rec.find(LoadingComplete)
	assert.False(t, completed)

	fake.Advance(time.Millisecond)
	ev, completed := rec.find(LoadingComplete)
	require.True(t, completed)
	assert.Equal(t, 3000*time.Millisecond, ev.Elapsed)
	// Content is revealed only after the extra delay
	assert.Equal(t, Loading, seq.Phase())

	fake.Advance(300 * time.Millisecond)
	assert.Equal(t, TextReveal, seq.Phase())
	assert.True(t, seq.CaretVisible())
	assert.Equal(t, "", seq.Typed())
}

func TestFullSequence(t *testing.T) {
	seq, fake, rec := newTestSequencer("Hi, ok.")
	require.NoError(t, seq.Start())

	fake.Advance(time.Minute)

	assert.Equal(t, SteadyState, seq.Phase())
	assert.False(t, seq.CaretVisible())
	assert.Equal(t, "Hi, ok.", seq.Typed())

	expected := []EventKind{LoadingStarted, BrandRevealed, LoadingComplete, ContentRevealed}
	for range "Hi, ok." {
		expected = append(expected, CharTyped)
	}
	expected = append(expected, CaretFading, CaretHidden)
	if diff := cmp.Diff(expected, rec.kinds()); diff != "" {
		t.Errorf("event order mismatch (-want +got):\n%s", diff)
	}

	select {
	case <-seq.Done():
	default:
		t.Fatal("Done should be closed in steady state")
	}
	assert.Equal(t, 0, fake.Pending())
}

func TestTypingDelays(t *testing.T) {
	seq, fake, rec := newTestSequencer("a, b.")
	require.NoError(t, seq.Start())
	fake.Advance(time.Minute)

	var typedAt []time.Duration
	var texts []string
	for _, ev := range rec.events {
		if ev.Kind == CharTyped {
			typedAt = append(typedAt, ev.Elapsed)
			texts = append(texts, ev.Text)
		}
	}

	ms := time.Millisecond
	first := 3000*ms + 300*ms + 400*ms
	assert.Equal(t, []time.Duration{
		first,          // a
		first + 40*ms,  // ,  (after plain char)
		first + 240*ms, // ' ' (after comma)
		first + 300*ms, // b  (after space)
		first + 340*ms, // .  (after plain char)
	}, typedAt)
	assert.Equal(t, []string{"a", "a,", "a, ", "a, b", "a, b."}, texts)

	fading, ok := rec.find(CaretFading)
	require.True(t, ok)
	// pause after '.' then the caret hold
	assert.Equal(t, first+340*ms+200*ms+800*ms, fading.Elapsed)

	hidden, ok := rec.find(CaretHidden)
	require.True(t, ok)
	assert.Equal(t, fading.Elapsed+300*ms, hidden.Elapsed)
	assert.Equal(t, seq.Plan().Duration(), hidden.Elapsed)
}

func TestJitterNeverChangesContent(t *testing.T) {
	text := "Automate your books, save time, and cut costs."
	for _, r := range []Random{
		&fixedRandom{values: []float64{0.0, 0.5}},
		&fixedRandom{values: []float64{0.05, 0.99, 0.01}},
		nil,
	} {
		fake := clock.NewFake()
		opts := []Option{WithClock(fake)}
		if r != nil {
			opts = append(opts, WithRand(r))
		}
		seq := New(text, opts...)
		require.NoError(t, seq.Start())
		fake.Advance(time.Minute)

		assert.Equal(t, text, seq.Typed())
		assert.Equal(t, text, seq.Plan().Typed())
		assert.Equal(t, SteadyState, seq.Phase())
	}
}

func TestStartTwice(t *testing.T) {
	seq, fake, _ := newTestSequencer("x")
	require.NoError(t, seq.Start())
	assert.ErrorIs(t, seq.Start(), ErrAlreadyStarted)

	fake.Advance(time.Minute)
	assert.ErrorIs(t, seq.Start(), ErrAlreadyStarted)
	assert.Equal(t, SteadyState, seq.Phase())
}

func TestStopClearsPendingTimers(t *testing.T) {
	seq, fake, rec := newTestSequencer("Hello")
	require.NoError(t, seq.Start())

	fake.Advance(3300*time.Millisecond + 400*time.Millisecond)
	assert.Equal(t, TextReveal, seq.Phase())
	assert.Equal(t, "H", seq.Typed())
	seen := len(rec.kinds())

	seq.Stop()
	assert.Equal(t, 0, fake.Pending())
	<-seq.Done()

	fake.Advance(time.Minute)
	assert.Len(t, rec.kinds(), seen)
	assert.Equal(t, "H", seq.Typed())
	assert.Equal(t, TextReveal, seq.Phase())

	// Stopping again is harmless
	seq.Stop()
}

func TestPhasesOnlyMoveForward(t *testing.T) {
	seq, fake, _ := newTestSequencer("abc")
	require.NoError(t, seq.Start())

	last := seq.Phase()
	for i := 0; i < 600; i++ {
		fake.Advance(10 * time.Millisecond)
		p := seq.Phase()
		assert.GreaterOrEqual(t, int(p), int(last))
		last = p
	}
	assert.Equal(t, SteadyState, last)
}

func TestEmptyText(t *testing.T) {
	seq, fake, rec := newTestSequencer("")
	require.NoError(t, seq.Start())
	fake.Advance(time.Minute)

	assert.Equal(t, SteadyState, seq.Phase())
	assert.Equal(t, []EventKind{LoadingStarted, BrandRevealed, LoadingComplete, ContentRevealed, CaretFading, CaretHidden}, rec.kinds())
}

func TestRealClock(t *testing.T) {
	timings := Timings{
		BrandReveal: time.Millisecond,
		Loading:     2 * time.Millisecond,
		RevealDelay: time.Millisecond,
		TypingStart: time.Millisecond,
		Base:        time.Millisecond,
		Space:       time.Millisecond,
		Punctuation: time.Millisecond,
		CaretHold:   time.Millisecond,
		CaretFade:   time.Millisecond,
	}
	rec := &recorder{}
	seq := New("ok", WithTimings(timings), WithListener(rec.listen))
	require.NoError(t, seq.Start())

	select {
	case <-seq.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("sequence did not finish")
	}
	assert.Equal(t, SteadyState, seq.Phase())
	assert.Equal(t, "ok", seq.Typed())
	_, ok := rec.find(CaretHidden)
	assert.True(t, ok)
}

func TestPhaseAndEventNames(t *testing.T) {
	assert.Equal(t, "loading", Loading.String())
	assert.Equal(t, "text-reveal", TextReveal.String())
	assert.Equal(t, "steady-state", SteadyState.String())
	assert.Equal(t, "unknown", Phase(9).String())
	assert.Equal(t, "char-typed", CharTyped.String())
}
