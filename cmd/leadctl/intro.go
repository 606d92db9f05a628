package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"proply_app_go/services/onboarding"

	"github.com/spf13/cobra"
)

var introSpeed float64

var introCmd = &cobra.Command{
	Use:   "intro",
	Short: "Play the landing page intro in the terminal",
	RunE:  runIntro,
}

func init() {
	introCmd.Flags().Float64Var(&introSpeed, "speed", 1, "playback speed multiplier")
}

func runIntro(cmd *cobra.Command, args []string) error {
	timings := scaleTimings(onboarding.DefaultTimings(), introSpeed)
	out := cmd.OutOrStdout()

	seq := onboarding.New(content.TypedSentence,
		onboarding.WithTimings(timings),
		onboarding.WithListener(terminalListener(out, content.Brand)),
	)
	if err := seq.Start(); err != nil {
		return err
	}
	defer seq.Stop()

	ctx := cmd.Context()
	if ctx == nil {
		<-seq.Done()
		return nil
	}
	select {
	case <-seq.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// terminalListener draws the sequence events as plain text
func terminalListener(out io.Writer, brand string) onboarding.Listener {
	return func(ev onboarding.Event) {
		switch ev.Kind {
		case onboarding.LoadingStarted:
			fmt.Fprint(out, "loading")
		case onboarding.BrandRevealed:
			fmt.Fprintf(out, " %s", strings.ToUpper(brand))
		case onboarding.LoadingComplete:
			fmt.Fprintln(out)
		case onboarding.ContentRevealed:
			fmt.Fprintf(out, "%s\n", brand)
		case onboarding.CharTyped:
			fmt.Fprint(out, ev.Char)
		case onboarding.CaretHidden:
			fmt.Fprintln(out)
		}
	}
}

// scaleTimings divides every delay by speed. A non-positive speed keeps t.
func scaleTimings(t onboarding.Timings, speed float64) onboarding.Timings {
	if speed <= 0 || speed == 1 {
		return t
	}
	scale := func(d *time.Duration) { *d = time.Duration(float64(*d) / speed) }
	for _, d := range []*time.Duration{
		&t.BrandReveal, &t.Loading, &t.RevealDelay, &t.TypingStart,
		&t.Base, &t.Space, &t.Punctuation, &t.JitterMax,
		&t.CaretHold, &t.CaretFade,
	} {
		scale(d)
	}
	return t
}
