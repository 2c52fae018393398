package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/bnema/contactus/internal/config"
)

var configForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long:  `Show the effective configuration, write a default config file, or print its JSON schema.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Long:  `Print the configuration after merging defaults, the config file and CONTACTUS_* variables.`,
	RunE:  runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a default config file and its JSON schema",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runConfigInit,
}

var configSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON schema of the config file",
	RunE: func(cmd *cobra.Command, _ []string) error {
		data, err := config.Schema()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configSchemaCmd)
	configInitCmd.Flags().BoolVarP(&configForce, "force", "f", false, "overwrite an existing file")
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}
	t := app.Theme
	cfg := app.Config
	out := cmd.OutOrStdout()

	source := app.ConfigFile
	if source == "" {
		source = "defaults and environment only"
	}
	fmt.Fprintln(out, t.BoxHeader.Render("Configuration"))
	fmt.Fprintln(out, t.Subtle.Render("source: "+source))

	rows := [][2]string{
		{"target.contact_url", cfg.Target.ContactURL},
		{"target.index_url", cfg.Target.IndexURL},
		{"browser.engine", string(cfg.Browser.Engine)},
		{"browser.headless", strconv.FormatBool(cfg.Browser.Headless)},
		{"browser.slow_mo", cfg.Browser.SlowMo.String()},
		{"browser.navigation_timeout", cfg.Browser.NavigationTimeout.String()},
		{"browser.expect_timeout", cfg.Browser.ExpectTimeout.String()},
		{"logging.level", cfg.Logging.Level},
		{"logging.format", cfg.Logging.Format},
	}
	for _, r := range rows {
		fmt.Fprintf(out, "  %s %s\n", t.Highlight.Render(fmt.Sprintf("%-28s", r[0])), t.Normal.Render(r[1]))
	}
	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}

	path := ""
	if len(args) == 1 {
		path = args[0]
	} else {
		var err error
		if path, err = config.GetConfigFile(); err != nil {
			return err
		}
	}

	if err := config.WriteDefault(path, configForce); err != nil {
		return err
	}
	schemaFile, err := config.GenerateSchemaFile(path)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, app.Theme.SuccessStyle.Render("Wrote "+path))
	fmt.Fprintln(out, app.Theme.Subtle.Render("Schema: "+schemaFile))
	return nil
}
