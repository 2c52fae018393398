package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/contactus/internal/contactform"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the available scenarios",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app := GetApp()
		if app == nil {
			return fmt.Errorf("app not initialized")
		}
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, app.Theme.BoxHeader.Render("Scenarios"))
		for _, s := range contactform.Scenarios() {
			fmt.Fprintln(out, "  "+app.Theme.Normal.Render(s.Name))
		}
		fmt.Fprintln(out, app.Theme.Subtle.Render("\ntarget: "+app.Config.Target.ContactURL))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
