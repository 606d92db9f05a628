package onboarding

import (
	"math/rand/v2"
	"strings"
	"time"
)

// Timings are the fixed delays of the intro sequence
type Timings struct {
	// BrandReveal is when the wordmark appears on the loading screen
	BrandReveal time.Duration
	// Loading is how long the loading screen stays before signalling completion
	Loading time.Duration
	// RevealDelay separates loading completion from the content reveal
	RevealDelay time.Duration
	// TypingStart is the pause between the reveal and the first character
	TypingStart time.Duration

	Base         time.Duration
	Space        time.Duration
	Punctuation  time.Duration
	JitterChance float64
	JitterMax    time.Duration

	// CaretHold is how long the caret lingers once typing is done
	CaretHold time.Duration
	// CaretFade is the opacity transition of the caret
	CaretFade time.Duration
}

// DefaultTimings returns the landing page timings
func DefaultTimings() Timings {
	return Timings{
		BrandReveal:  1200 * time.Millisecond,
		Loading:      3000 * time.Millisecond,
		RevealDelay:  300 * time.Millisecond,
		TypingStart:  400 * time.Millisecond,
		Base:         40 * time.Millisecond,
		Space:        60 * time.Millisecond,
		Punctuation:  200 * time.Millisecond,
		JitterChance: 0.1,
		JitterMax:    40 * time.Millisecond,
		CaretHold:    800 * time.Millisecond,
		CaretFade:    300 * time.Millisecond,
	}
}

// Random is the source of typing jitter
type Random interface {
	Float64() float64
}

type globalRandom struct{}

func (globalRandom) Float64() float64 { return rand.Float64() }

// DelayAfter returns the pause that follows typing ch. Punctuation and spaces
// get fixed pauses; other characters occasionally get extra jitter.
func (t Timings) DelayAfter(ch rune, r Random) time.Duration {
	switch ch {
	case '.', ',':
		return t.Punctuation
	case ' ':
		return t.Space
	}
	if r != nil && r.Float64() < t.JitterChance {
		return t.Base + time.Duration(r.Float64()*float64(t.JitterMax))
	}
	return t.Base
}

// Keystroke is one appended character and the pause that follows it
type Keystroke struct {
	Char    string `json:"c"`
	PauseMS int64  `json:"p"`
}

// Plan is the complete, precomputed intro timeline. It is what the landing
// page replays and what Sequencer schedules.
type Plan struct {
	Text          string      `json:"text"`
	BrandRevealMS int64       `json:"brandReveal"`
	LoadingMS     int64       `json:"loading"`
	RevealDelayMS int64       `json:"revealDelay"`
	TypingStartMS int64       `json:"typingStart"`
	Keys          []Keystroke `json:"keys"`
	CaretHoldMS   int64       `json:"caretHold"`
	CaretFadeMS   int64       `json:"caretFade"`
}

// PlanTyping draws the jitter for every character of text up front
func PlanTyping(text string, t Timings, r Random) Plan {
	if r == nil {
		r = globalRandom{}
	}
	runes := []rune(text)
	keys := make([]Keystroke, 0, len(runes))
	for _, ch := range runes {
		keys = append(keys, Keystroke{
			Char:    string(ch),
			PauseMS: t.DelayAfter(ch, r).Milliseconds(),
		})
	}
	return Plan{
		Text:          text,
		BrandRevealMS: t.BrandReveal.Milliseconds(),
		LoadingMS:     t.Loading.Milliseconds(),
		RevealDelayMS: t.RevealDelay.Milliseconds(),
		TypingStartMS: t.TypingStart.Milliseconds(),
		Keys:          keys,
		CaretHoldMS:   t.CaretHold.Milliseconds(),
		CaretFadeMS:   t.CaretFade.Milliseconds(),
	}
}

// Typed concatenates the keystrokes; it always equals Text.
func (p Plan) Typed() string {
	var b strings.Builder
	for _, k := range p.Keys {
		b.WriteString(k.Char)
	}
	return b.String()
}

// Duration is the time from mount until the caret is gone
func (p Plan) Duration() time.Duration {
	total := p.LoadingMS + p.RevealDelayMS + p.TypingStartMS + p.CaretHoldMS + p.CaretFadeMS
	for _, k := range p.Keys {
		total += k.PauseMS
	}
	return time.Duration(total) * time.Millisecond
}
