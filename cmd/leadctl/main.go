// Command leadctl runs the lead capture flows and the landing intro from a
// terminal, against a running server or directly against Brevo.
package main

import (
	"fmt"
	"os"

	"proply_app_go/config"
	"proply_app_go/logging"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Global flags
	endpoint string
	direct   bool

	cfg     *config.Config
	content *config.Content
	logger  *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "leadctl",
	Short: "Proply lead capture from the terminal",
	Long: `leadctl walks through the Proply lead capture flows without a browser.

Available subcommands:
  waitlist - Join the waitlist
  beta     - Apply for the beta program
  intro    - Play the landing page intro`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg = config.Load()

		var err error
		logger, err = logging.New(cfg.Environment, "warn")
		if err != nil {
			return err
		}
		cfg.LogNotes(logger)

		content, err = config.LoadContent(cfg.ContentPath)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&endpoint, "endpoint", "http://localhost:8080/api/subscribe", "subscribe endpoint to post leads to")
	rootCmd.PersistentFlags().BoolVar(&direct, "direct", false, "send leads straight to Brevo instead of the endpoint")

	rootCmd.AddCommand(waitlistCmd, betaCmd, introCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
