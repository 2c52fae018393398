//go:build e2e

package contactform_test

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bnema/contactus/internal/browser"
	"github.com/bnema/contactus/internal/config"
	"github.com/bnema/contactus/internal/contactform"
	"github.com/bnema/contactus/internal/logging"
)

var (
	cfg     *config.Config
	session *browser.Session
	baseCtx context.Context
)

// TestMain starts one browser for the whole package; every test gets its own
// context and page. Settings come from CONTACTUS_* variables, e.g.
// CONTACTUS_BROWSER_HEADLESS=false to watch the run.
func TestMain(m *testing.M) {
	var err error
	cfg, err = config.Load(os.Getenv("CONTACTUS_CONFIG"))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger := logging.NewFromConfigValues(cfg.Logging.Level, cfg.Logging.Format)
	baseCtx = logging.WithComponent(logging.WithContext(context.Background(), logger), "e2e")

	session, err = browser.Launch(baseCtx, browser.Options{
		Engine:            string(cfg.Browser.Engine),
		Headless:          cfg.Browser.Headless,
		SlowMo:            cfg.Browser.SlowMo,
		NavigationTimeout: cfg.Browser.NavigationTimeout,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	code := m.Run()
	if err := session.Close(); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
	os.Exit(code)
}

// openContactPage gives the test a fresh page already showing the contact form.
func openContactPage(t *testing.T) (context.Context, *contactform.Page) {
	t.Helper()
	ctx := logging.WithScenario(baseCtx, t.Name())

	pw, release, err := session.NewPage(ctx)
	require.NoError(t, err)
	t.Cleanup(release)

	p := contactform.NewPage(pw, contactform.Target{
		ContactURL: cfg.Target.ContactURL,
		IndexURL:   cfg.Target.IndexURL,
	}, cfg.Browser.ExpectTimeout)
	require.NoError(t, p.Open(ctx))
	return ctx, p
}

func TestPageTitle(t *testing.T) {
	ctx, p := openContactPage(t)
	require.NoError(t, contactform.CheckTitle(ctx, p))
}

func TestClickOnNavbarRedirectsToHomePage(t *testing.T) {
	ctx, p := openContactPage(t)
	require.NoError(t, contactform.CheckHomeLink(ctx, p))
}

func TestSubmitFormMissingAnyRequiredFieldReturnsAnError(t *testing.T) {
	for _, missing := range contactform.CanonicalFields() {
		t.Run(missing.Slug(), func(t *testing.T) {
			ctx, p := openContactPage(t)
			require.NoError(t, contactform.CheckMissingField(ctx, p, contactform.NewFieldSet(), missing),
				"should show empty field error message")
		})
	}
}

func TestSubmitFormWithAnInvalidEmailReturnsAnError(t *testing.T) {
	ctx, p := openContactPage(t)
	require.NoError(t, contactform.CheckInvalidEmail(ctx, p, contactform.NewFieldSet()),
		"should show invalid email error message")
}

func TestResetButtonClearsAllFields(t *testing.T) {
	ctx, p := openContactPage(t)
	require.NoError(t, contactform.CheckReset(ctx, p, contactform.NewFieldSet()))
}

func TestSuccessfullySubmitsAForm(t *testing.T) {
	ctx, p := openContactPage(t)
	require.NoError(t, contactform.CheckSubmission(ctx, p, contactform.NewFieldSet()))
}
