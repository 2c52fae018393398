// Package cmd provides Cobra CLI commands for contactus.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bnema/contactus/internal/cli"
	"github.com/bnema/contactus/internal/domain/build"
)

var (
	app       *cli.App
	buildInfo build.Info
	appOpts   cli.Options
	rootCmd   = &cobra.Command{
		Use:   "contactus",
		Short: "Browser checks for the WebDriverUniversity contact form",
		Long: `contactus drives a real browser through the WebDriverUniversity "Contact Us"
form and reports whether the page still behaves as expected: title, navbar
link, required-field and email validation, reset, and a successful submission.

The same checks run under "go test -tags e2e ./internal/contactform/...".

Configuration is read from $XDG_CONFIG_HOME/contactus/config.toml or ./config.toml,
and every key can be overridden with CONTACTUS_* environment variables
(e.g. CONTACTUS_BROWSER_HEADLESS=false).`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip initialization for commands that don't need app context
			switch cmd.Name() {
			case "help", "completion", "version", "schema":
				return nil
			}

			var err error
			app, err = cli.NewApp(appOpts)
			if err != nil {
				return fmt.Errorf("initialize app: %w", err)
			}
			return nil
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&appOpts.ConfigFile, "config", "c", "", "config file (default $XDG_CONFIG_HOME/contactus/config.toml)")
	rootCmd.PersistentFlags().StringVar(&appOpts.LogLevel, "log-level", "", "override logging.level (trace, debug, info, warn, error)")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// GetApp returns the initialized app (for use by subcommands).
func GetApp() *cli.App {
	return app
}

// SetBuildInfo sets the build information (called from main.go before Execute).
func SetBuildInfo(info build.Info) {
	buildInfo = info
}
