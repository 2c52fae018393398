package contactform

import (
	"context"
	"fmt"
	"strings"
)

// Scenario is one named check run against a freshly opened contact page.
type Scenario struct {
	Name string
	Run  func(ctx context.Context, p *Page) error
}

// Scenarios returns every check, each field-missing case expanded on its own.
// Each Run builds its own FieldSet.
func Scenarios() []Scenario {
	scenarios := []Scenario{
		{Name: "page_title", Run: CheckTitle},
		{Name: "navbar_home_link", Run: CheckHomeLink},
	}

	for _, missing := range canonicalFields {
		scenarios = append(scenarios, Scenario{
			Name: "missing_field/" + missing.Slug(),
			Run: func(ctx context.Context, p *Page) error {
				return CheckMissingField(ctx, p, NewFieldSet(), missing)
			},
		})
	}

	return append(scenarios,
		Scenario{Name: "invalid_email", Run: withFields(CheckInvalidEmail)},
		Scenario{Name: "reset_clears_fields", Run: withFields(CheckReset)},
		Scenario{Name: "successful_submission", Run: withFields(CheckSubmission)},
	)
}

func withFields(check func(context.Context, *Page, *FieldSet) error) func(context.Context, *Page) error {
	return func(ctx context.Context, p *Page) error {
		return check(ctx, p, NewFieldSet())
	}
}

// Select returns the scenarios whose name equals a pattern or starts with
// "pattern/". No patterns selects everything. Order follows Scenarios.
func Select(patterns ...string) ([]Scenario, error) {
	all := Scenarios()
	if len(patterns) == 0 {
		return all, nil
	}

	matched := make([]bool, len(all))
	for _, pattern := range patterns {
		pattern = strings.TrimSuffix(strings.TrimSpace(pattern), "/")
		found := false
		for i, s := range all {
			if s.Name == pattern || strings.HasPrefix(s.Name, pattern+"/") {
				matched[i] = true
				found = true
			}
		}
		if !found {
			return nil, fmt.Errorf("%w: %q", ErrUnknownScenario, pattern)
		}
	}

	selected := make([]Scenario, 0, len(all))
	for i, s := range all {
		if matched[i] {
			selected = append(selected, s)
		}
	}
	return selected, nil
}
