package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/bnema/contactus/internal/browser"
	"github.com/bnema/contactus/internal/cli"
	"github.com/bnema/contactus/internal/cli/model"
	"github.com/bnema/contactus/internal/cli/styles"
	"github.com/bnema/contactus/internal/config"
	"github.com/bnema/contactus/internal/contactform"
	"github.com/bnema/contactus/internal/logging"
	"github.com/bnema/contactus/internal/runner"
)

var (
	runHeaded     bool
	runEngine     string
	runNoProgress bool
)

var runCmd = &cobra.Command{
	Use:   "run [scenario...]",
	Short: "Run the contact form checks",
	Long: `Run the contact form checks against the configured site, one fresh browser
page per scenario, and print a report.

Arguments select scenarios by exact name or by group prefix; with no arguments
every scenario runs. See 'contactus list'.

Examples:
  contactus run                        # everything
  contactus run missing_field          # the four required-field cases
  contactus run page_title --headed    # watch one check in a visible browser`,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().BoolVar(&runHeaded, "headed", false, "show the browser window")
	runCmd.Flags().StringVar(&runEngine, "browser", "", "browser engine: chromium, firefox or webkit (default from config)")
	runCmd.Flags().BoolVar(&runNoProgress, "no-progress", false, "disable the live progress view")
}

func runRun(cmd *cobra.Command, args []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}

	scenarios, err := contactform.Select(args...)
	if err != nil {
		return err
	}

	cfg := *app.Config
	if runHeaded {
		cfg.Browser.Headless = false
	}
	if runEngine != "" {
		cfg.Browser.Engine = config.Engine(runEngine)
	}

	ctx, stop := signal.NotifyContext(app.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	interactive := !runNoProgress && term.IsTerminal(int(os.Stdout.Fd()))
	if interactive {
		// Log lines would tear the progress view; the report carries the errors.
		ctx = logging.WithContext(ctx, zerolog.Nop())
	}
	log := logging.FromContext(ctx)

	session, err := browser.Launch(ctx, browser.Options{
		Engine:            string(cfg.Browser.Engine),
		Headless:          cfg.Browser.Headless,
		SlowMo:            cfg.Browser.SlowMo,
		NavigationTimeout: cfg.Browser.NavigationTimeout,
	})
	if err != nil {
		if errors.Is(err, browser.ErrUnknownEngine) {
			return err
		}
		return fmt.Errorf("%w\nRun 'contactus install' to download the browser", err)
	}
	defer func() {
		if err := session.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close browser session")
		}
	}()

	target := contactform.Target{
		ContactURL: cfg.Target.ContactURL,
		IndexURL:   cfg.Target.IndexURL,
	}
	log.Info().
		Str("url", target.ContactURL).
		Str("engine", session.Engine()).
		Int("scenarios", len(scenarios)).
		Msg("starting run")

	var report runner.Report
	if interactive {
		report, err = runWithProgress(ctx, cancel, app, session, target, cfg, scenarios)
		if err != nil {
			return err
		}
	} else {
		r := runner.New(session, target, runner.WithExpectTimeout(cfg.Browser.ExpectTimeout))
		report = r.Run(ctx, scenarios)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, styles.RenderReport(app.Theme, report))
	fmt.Fprintln(out, app.Theme.Subtle.Render("run "+app.RunID))
	return report.Err()
}

func runWithProgress(
	ctx context.Context,
	cancel context.CancelFunc,
	app *cli.App,
	pages runner.PageSource,
	target contactform.Target,
	cfg config.Config,
	scenarios []contactform.Scenario,
) (runner.Report, error) {
	p := tea.NewProgram(model.NewRunModel(app.Theme, len(scenarios), cancel))

	r := runner.New(pages, target,
		runner.WithExpectTimeout(cfg.Browser.ExpectTimeout),
		runner.WithObserver(model.ProgramObserver{Send: p.Send}),
	)
	go func() {
		p.Send(model.RunDoneMsg{Report: r.Run(ctx, scenarios)})
	}()

	final, err := p.Run()
	if err != nil {
		cancel()
		return runner.Report{}, fmt.Errorf("progress view: %w", err)
	}
	m, ok := final.(model.RunModel)
	if !ok || !m.Done() {
		return runner.Report{}, fmt.Errorf("run interrupted before completion")
	}
	return m.Report(), nil
}
