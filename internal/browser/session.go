// Package browser owns the Playwright driver and browser process and hands out
// isolated pages, one browser context per page.
package browser

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/bnema/contactus/internal/logging"
)

var (
	// ErrUnknownEngine indicates an engine name Playwright does not ship.
	ErrUnknownEngine = errors.New("unknown browser engine")

	// ErrSessionClosed indicates a page was requested after Close.
	ErrSessionClosed = errors.New("browser session closed")
)

// Options configures a browser session.
type Options struct {
	// Engine is chromium, firefox or webkit. Empty means chromium.
	Engine            string
	Headless          bool
	SlowMo            time.Duration
	NavigationTimeout time.Duration
}

// Session is one running Playwright driver with one launched browser.
type Session struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	opts    Options

	mu     sync.Mutex
	closed bool
}

// Launch starts the Playwright driver and launches the configured browser.
func Launch(ctx context.Context, opts Options) (*Session, error) {
	log := logging.FromContext(ctx)

	engine, err := normalizeEngine(opts.Engine)
	if err != nil {
		return nil, err
	}
	opts.Engine = engine

	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("start playwright driver: %w", err)
	}

	launchOpts := playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(opts.Headless),
	}
	if opts.SlowMo > 0 {
		launchOpts.SlowMo = playwright.Float(millis(opts.SlowMo))
	}

	browser, err := browserType(pw, engine).Launch(launchOpts)
	if err != nil {
		_ = pw.Stop()
		return nil, fmt.Errorf("launch %s: %w", engine, err)
	}

	log.Debug().
		Str("engine", engine).
		Bool("headless", opts.Headless).
		Str("version", browser.Version()).
		Msg("browser launched")

	return &Session{pw: pw, browser: browser, opts: opts}, nil
}

// NewPage opens a page in a fresh browser context, so cookies, storage and
// history never leak between pages. The returned release func closes the
// context and is safe to call more than once.
func (s *Session) NewPage(ctx context.Context) (playwright.Page, func(), error) {
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		return nil, nil, ErrSessionClosed
	}

	bctx, err := s.browser.NewContext()
	if err != nil {
		return nil, nil, fmt.Errorf("create browser context: %w", err)
	}

	page, err := bctx.NewPage()
	if err != nil {
		_ = bctx.Close()
		return nil, nil, fmt.Errorf("create page: %w", err)
	}
	if s.opts.NavigationTimeout > 0 {
		page.SetDefaultNavigationTimeout(millis(s.opts.NavigationTimeout))
	}

	var once sync.Once
	release := func() {
		once.Do(func() {
			if err := bctx.Close(); err != nil {
				logging.FromContext(ctx).Warn().Err(err).Msg("failed to close browser context")
			}
		})
	}
	return page, release, nil
}

// Engine returns the engine the session was launched with.
func (s *Session) Engine() string {
	return s.opts.Engine
}

// Close shuts down the browser and the driver. Calling it twice is a no-op.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true

	var errs []error
	if err := s.browser.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close browser: %w", err))
	}
	if err := s.pw.Stop(); err != nil {
		errs = append(errs, fmt.Errorf("stop playwright driver: %w", err))
	}
	return errors.Join(errs...)
}

// Install downloads the Playwright driver and the given browser engines.
func Install(ctx context.Context, engines ...string) error {
	names := make([]string, 0, len(engines))
	for _, e := range engines {
		engine, err := normalizeEngine(e)
		if err != nil {
			return err
		}
		names = append(names, engine)
	}
	if len(names) == 0 {
		names = append(names, "chromium")
	}

	logging.FromContext(ctx).Info().Strs("engines", names).Msg("installing playwright browsers")
	if err := playwright.Install(&playwright.RunOptions{Browsers: names, Verbose: true}); err != nil {
		return fmt.Errorf("install playwright browsers: %w", err)
	}
	return nil
}

func normalizeEngine(engine string) (string, error) {
	switch e := strings.ToLower(strings.TrimSpace(engine)); e {
	case "":
		return "chromium", nil
	case "chromium", "firefox", "webkit":
		return e, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownEngine, engine)
	}
}

func browserType(pw *playwright.Playwright, engine string) playwright.BrowserType {
	switch engine {
	case "firefox":
		return pw.Firefox
	case "webkit":
		return pw.WebKit
	default:
		return pw.Chromium
	}
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
