package contactform

import "errors"

var (
	// ErrNavigation indicates the page under test could not be loaded
	ErrNavigation = errors.New("navigation failed")

	// ErrAction indicates a fill or click could not be performed
	ErrAction = errors.New("page action failed")

	// ErrAssertion indicates an expectation did not hold within the wait window
	ErrAssertion = errors.New("assertion failed")

	// ErrUnknownField indicates a label outside the four contact form fields
	ErrUnknownField = errors.New("unknown form field")

	// ErrUnknownScenario indicates a scenario name or prefix that matches nothing
	ErrUnknownScenario = errors.New("unknown scenario")
)
