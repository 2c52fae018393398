// Package runner executes contact form scenarios one after another, each on a
// freshly opened page, and collects the outcome.
package runner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/bnema/contactus/internal/contactform"
	"github.com/bnema/contactus/internal/logging"
)

// ErrScenariosFailed is returned by Report.Err when at least one scenario failed.
var ErrScenariosFailed = errors.New("scenarios failed")

// PageSource hands out isolated pages. browser.Session implements it.
type PageSource interface {
	NewPage(ctx context.Context) (playwright.Page, func(), error)
}

// Observer is told about scenario progress. Calls happen on the goroutine
// running Run.
type Observer interface {
	ScenarioStarted(name string, index, total int)
	ScenarioFinished(result Result, index, total int)
}

type nopObserver struct{}

func (nopObserver) ScenarioStarted(string, int, int)  {}
func (nopObserver) ScenarioFinished(Result, int, int) {}

// Result is the outcome of one scenario.
type Result struct {
	Name     string
	Err      error
	Duration time.Duration
}

// Passed reports whether the scenario finished without error.
func (r Result) Passed() bool {
	return r.Err == nil
}

// Report is the outcome of a whole run.
type Report struct {
	Results []Result
	Started time.Time
	Elapsed time.Duration
}

// Passed returns the number of passing scenarios.
func (r Report) Passed() int {
	n := 0
	for _, res := range r.Results {
		if res.Passed() {
			n++
		}
	}
	return n
}

// Failed returns the number of failing scenarios.
func (r Report) Failed() int {
	return len(r.Results) - r.Passed()
}

// OK reports whether every scenario passed.
func (r Report) OK() bool {
	return r.Failed() == 0
}

// Err returns nil when every scenario passed, else an error wrapping
// ErrScenariosFailed.
func (r Report) Err() error {
	if r.OK() {
		return nil
	}
	return fmt.Errorf("%w: %d of %d", ErrScenariosFailed, r.Failed(), len(r.Results))
}

// Runner runs scenarios sequentially.
type Runner struct {
	pages         PageSource
	target        contactform.Target
	expectTimeout time.Duration
	observer      Observer
	now           func() time.Time
}

// Option configures a Runner.
type Option func(*Runner)

// WithObserver reports progress to o.
func WithObserver(o Observer) Option {
	return func(r *Runner) {
		if o != nil {
			r.observer = o
		}
	}
}

// WithExpectTimeout sets how long each assertion may wait.
func WithExpectTimeout(d time.Duration) Option {
	return func(r *Runner) {
		r.expectTimeout = d
	}
}

// New creates a Runner that takes pages from pages and points them at target.
func New(pages PageSource, target contactform.Target, opts ...Option) *Runner {
	r := &Runner{
		pages:    pages,
		target:   target,
		observer: nopObserver{},
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes every scenario in order. A failing scenario never stops the
// run; a cancelled ctx marks the remaining ones as failed with ctx.Err().
func (r *Runner) Run(ctx context.Context, scenarios []contactform.Scenario) Report {
	ctx = logging.WithComponent(ctx, "runner")
	log := logging.FromContext(ctx)

	report := Report{
		Results: make([]Result, 0, len(scenarios)),
		Started: r.now(),
	}
	total := len(scenarios)

	for i, s := range scenarios {
		r.observer.ScenarioStarted(s.Name, i, total)

		start := r.now()
		var err error
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = ctxErr
		} else {
			err = r.runOne(logging.WithScenario(ctx, s.Name), s)
		}
		res := Result{Name: s.Name, Err: err, Duration: r.now().Sub(start)}

		if res.Passed() {
			log.Info().Str("scenario", s.Name).Dur("duration", res.Duration).Msg("scenario passed")
		} else {
			log.Error().Err(err).Str("scenario", s.Name).Dur("duration", res.Duration).Msg("scenario failed")
		}

		report.Results = append(report.Results, res)
		r.observer.ScenarioFinished(res, i, total)
	}

	report.Elapsed = r.now().Sub(report.Started)
	return report
}

func (r *Runner) runOne(ctx context.Context, s contactform.Scenario) error {
	page, release, err := r.pages.NewPage(ctx)
	if err != nil {
		return fmt.Errorf("open page: %w", err)
	}
	if release != nil {
		defer release()
	}

	p := contactform.NewPage(page, r.target, r.expectTimeout)
	if err := p.Open(ctx); err != nil {
		return err
	}
	return s.Run(ctx, p)
}
