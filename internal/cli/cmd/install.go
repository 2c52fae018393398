package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/contactus/internal/browser"
)

var installEngines []string

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Install the Playwright driver and browsers",
	Long: `Download the Playwright driver and the browser engines the checks need.

Without --browser the engine from the configuration is installed.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app := GetApp()
		if app == nil {
			return fmt.Errorf("app not initialized")
		}
		engines := installEngines
		if len(engines) == 0 {
			engines = []string{string(app.Config.Browser.Engine)}
		}
		if err := browser.Install(app.Context(), engines...); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), app.Theme.SuccessStyle.Render("Browsers installed."))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(installCmd)
	installCmd.Flags().StringSliceVar(&installEngines, "browser", nil, "engines to install: chromium, firefox, webkit")
}
