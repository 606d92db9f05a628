package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"proply_app_go/models"
	"proply_app_go/services"
	"proply_app_go/services/i18n"
	"proply_app_go/services/leadform"

	"github.com/spf13/cobra"
)

var waitlistCmd = &cobra.Command{
	Use:   "waitlist",
	Short: "Join the waitlist",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLead(cmd, models.FormWaitlist)
	},
}

var betaCmd = &cobra.Command{
	Use:   "beta",
	Short: "Apply for the beta program",
	Long: `Apply for the beta program.

The application asks for the survey to be completed in a browser and
confirmed here. Beta applications are not sent anywhere.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLead(cmd, models.FormBeta)
	},
}

// fieldOrder is the order the forms ask in
var fieldOrder = map[models.FormVariant][]string{
	models.FormWaitlist: {"name", "email", "company"},
	models.FormBeta:     {"name", "email", "phone", "company"},
}

var fieldLabels = map[string]string{
	"name":    "modal.full_name",
	"email":   "modal.email",
	"phone":   "modal.phone",
	"company": "modal.company",
}

func runLead(cmd *cobra.Command, variant models.FormVariant) error {
	if _, err := i18n.Load(); err != nil {
		return err
	}

	burst := leadform.DefaultBurst().WithColors(content.Palette)
	out := cmd.OutOrStdout()
	m := leadform.New(variant,
		leadform.WithSubmitter(leadSubmitter(variant)),
		leadform.WithSurveyURL(content.SurveyURL),
		leadform.WithCelebrator(func(b leadform.Burst) { celebrate(out, b) }, burst),
		leadform.WithObserver(func(st leadform.State) {
			if st.Status == leadform.Submitting {
				fmt.Fprintln(out, "...")
			}
		}),
	)
	return driveModal(cmd.Context(), m, newPrompter(cmd.InOrStdin(), out), out)
}

// leadSubmitter picks where waitlist leads go; beta applications only wait.
func leadSubmitter(variant models.FormVariant) leadform.Submitter {
	if variant == models.FormBeta {
		return leadform.NewDelaySubmitter(nil, cfg.BetaConfirmDelay)
	}
	if direct {
		brevo := services.NewBrevoClient(services.BrevoConfig{
			APIKey:        cfg.BrevoAPIKey,
			DefaultListID: cfg.BrevoListID,
			BaseURL:       cfg.BrevoBaseURL,
		})
		return leadform.ServiceSubmitter{
			Subscriber: services.NewSubscriber(brevo, nil, logger),
			Source:     "cli",
		}
	}
	return leadform.NewHTTPSubmitter(endpoint, "cli")
}

// driveModal runs the modal to completion from terminal input
func driveModal(ctx context.Context, m *leadform.Modal, p *prompter, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	prefix := string(m.Variant()) + "."
	fmt.Fprintln(out, i18n.Translate("en", prefix+"title"))
	fmt.Fprintln(out, i18n.Translate("en", prefix+"subtitle"))
	m.Open()
	defer m.Close()

	names := fieldOrder[m.Variant()]
	for {
		st := m.State()
		switch {
		case st.Status == leadform.Success:
			fmt.Fprintln(out, i18n.Translate("en", prefix+"success_title"))
			fmt.Fprintln(out, i18n.Translate("en", prefix+"success_body", map[string]any{"brand": content.Brand}))
			return nil

		case st.Status == leadform.Error:
			fmt.Fprintln(out, "Error:", st.Message)
			retry, err := p.confirm("Try again?")
			if err != nil || !retry {
				return errors.New(st.Message)
			}
			retryFn := m.Submit
			if st.Stage == leadform.SurveyStage {
				retryFn = m.ConfirmSurvey
			}
			if err := retryFn(ctx); err != nil {
				return err
			}

		case st.Stage == leadform.SurveyStage:
			fmt.Fprintln(out, i18n.Translate("en", "beta.survey_title"))
			fmt.Fprintln(out, i18n.Translate("en", "beta.survey_body"))
			fmt.Fprintln(out, " ", m.SurveyURL())
			done, err := p.confirm(i18n.Translate("en", "beta.confirm"))
			if err != nil {
				return err
			}
			if !done {
				if err := m.Back(); err != nil {
					return err
				}
				continue
			}
			if err := m.ConfirmSurvey(ctx); err != nil {
				return err
			}

		default:
			if err := askFields(m, p, names, st.Errors); err != nil {
				return err
			}
			if err := m.Submit(ctx); err != nil {
				return err
			}
			printErrors(out, names, m.State().Errors)
		}
	}
}

// askFields prompts for every field on a fresh form, then only for the
// fields that failed validation.
func askFields(m *leadform.Modal, p *prompter, names []string, failed services.ValidationErrors) error {
	fields := m.Fields()
	for _, name := range names {
		if len(failed) > 0 && failed[name] == "" {
			continue
		}
		value, err := p.ask(i18n.Translate("en", fieldLabels[name]), fields.Field(name))
		if err != nil {
			return err
		}
		if err := m.SetField(name, value); err != nil {
			return err
		}
	}
	return nil
}

func printErrors(out io.Writer, names []string, errs services.ValidationErrors) {
	if len(errs) == 0 {
		return
	}
	ordered := make([]string, 0, len(errs))
	for _, name := range names {
		if msg, ok := errs[name]; ok {
			ordered = append(ordered, msg)
		}
	}
	for _, msg := range ordered {
		fmt.Fprintln(out, "  -", msg)
	}
}

func celebrate(out io.Writer, b leadform.Burst) {
	fmt.Fprintf(out, "* %d confetti in %v *\n", b.ParticleCount, b.Colors)
}
