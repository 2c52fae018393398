package contactform

import (
	"context"
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/bnema/contactus/internal/logging"
)

// Text the site renders, matched exactly.
const (
	ContactTitle = "WebDriver | Contact Us"
	IndexTitle   = "WebDriverUniversity.com"

	HomeLinkName = "WebdriverUniversity.com (New Approach To Learning)"
	SubmitButton = "SUBMIT"
	ResetButton  = "RESET"

	MsgAllFieldsRequired = "Error: all fields are required"
	MsgInvalidEmail      = "Error: Invalid email address"
	MsgThankYou          = "Thank You for your Message!"

	InvalidEmail = "invalid_email"

	// Heading inside the reply container shown after a successful submission.
	confirmationXPath = `xpath=//div[@id="contact_reply"]/h1`
)

// Target holds the URLs a Page navigates between.
type Target struct {
	ContactURL string
	IndexURL   string
}

// Page wraps a Playwright page showing the contact form.
type Page struct {
	page   playwright.Page
	expect playwright.PlaywrightAssertions
	target Target
}

// NewPage binds p to target. Assertions wait up to expectTimeout; zero keeps
// Playwright's default.
func NewPage(p playwright.Page, target Target, expectTimeout time.Duration) *Page {
	var expect playwright.PlaywrightAssertions
	if expectTimeout > 0 {
		expect = playwright.NewPlaywrightAssertions(float64(expectTimeout) / float64(time.Millisecond))
	} else {
		expect = playwright.NewPlaywrightAssertions()
	}
	return &Page{page: p, expect: expect, target: target}
}

// Target returns the URLs the page was built with.
func (p *Page) Target() Target {
	return p.target
}

// Open loads the contact page and waits for the load event.
func (p *Page) Open(ctx context.Context) error {
	ctx = logging.WithURL(ctx, p.target.ContactURL)
	logging.FromContext(ctx).Debug().Msg("opening contact page")

	if _, err := p.page.Goto(p.target.ContactURL, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateLoad,
	}); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrNavigation, p.target.ContactURL, err)
	}
	return nil
}

func (p *Page) field(f Field) playwright.Locator {
	return p.page.GetByPlaceholder(string(f))
}

// FillField types value into the input whose placeholder is f.
func (p *Page) FillField(f Field, value string) error {
	if err := p.field(f).Fill(value); err != nil {
		return fmt.Errorf("%w: fill %q: %w", ErrAction, string(f), err)
	}
	return nil
}

// Fill types every value of fields into its input, in page order.
func (p *Page) Fill(ctx context.Context, fields *FieldSet) error {
	log := logging.FromContext(ctx)
	for f, v := range fields.All() {
		log.Trace().Str("field", string(f)).Msg("filling")
		if err := p.FillField(f, v); err != nil {
			return err
		}
	}
	return nil
}

func (p *Page) clickButton(name string) error {
	btn := p.page.GetByRole(*playwright.AriaRoleButton, playwright.PageGetByRoleOptions{
		Name: name,
	})
	if err := btn.Click(); err != nil {
		return fmt.Errorf("%w: click button %q: %w", ErrAction, name, err)
	}
	return nil
}

// Submit clicks the SUBMIT button.
func (p *Page) Submit() error {
	return p.clickButton(SubmitButton)
}

// Reset clicks the RESET button.
func (p *Page) Reset() error {
	return p.clickButton(ResetButton)
}

// ClickHomeLink clicks the navbar brand link.
func (p *Page) ClickHomeLink() error {
	link := p.page.GetByRole(*playwright.AriaRoleLink, playwright.PageGetByRoleOptions{
		Name: HomeLinkName,
	})
	if err := link.Click(); err != nil {
		return fmt.Errorf("%w: click link %q: %w", ErrAction, HomeLinkName, err)
	}
	return nil
}

// ExpectTitle waits for the document title to equal title.
func (p *Page) ExpectTitle(title string) error {
	if err := p.expect.Page(p.page).ToHaveTitle(title); err != nil {
		return fmt.Errorf("%w: title should be %q: %w", ErrAssertion, title, err)
	}
	return nil
}

// ExpectURL waits for the page URL to equal url.
func (p *Page) ExpectURL(url string) error {
	if err := p.expect.Page(p.page).ToHaveURL(url); err != nil {
		return fmt.Errorf("%w: url should be %q: %w", ErrAssertion, url, err)
	}
	return nil
}

// ExpectTextVisible waits for text to be rendered and visible.
func (p *Page) ExpectTextVisible(text string) error {
	if err := p.expect.Locator(p.page.GetByText(text)).ToBeVisible(); err != nil {
		return fmt.Errorf("%w: %q should be visible: %w", ErrAssertion, text, err)
	}
	return nil
}

// ExpectFieldEmpty waits for the input f to be empty.
func (p *Page) ExpectFieldEmpty(f Field) error {
	if err := p.expect.Locator(p.field(f)).ToBeEmpty(); err != nil {
		return fmt.Errorf("%w: %q should be empty: %w", ErrAssertion, string(f), err)
	}
	return nil
}

// ExpectFieldNotEmpty waits for the input f to hold some text.
func (p *Page) ExpectFieldNotEmpty(f Field) error {
	if err := p.expect.Locator(p.field(f)).Not().ToBeEmpty(); err != nil {
		return fmt.Errorf("%w: %q should not be empty: %w", ErrAssertion, string(f), err)
	}
	return nil
}

// ExpectConfirmation checks the thank-you message after a submission. The
// heading lookup by role is a weak signal on this site; the reply container's
// h1 text is the check that decides.
func (p *Page) ExpectConfirmation() error {
	heading := p.page.GetByRole(*playwright.AriaRoleHeading, playwright.PageGetByRoleOptions{
		Name: MsgThankYou,
	})
	if err := p.expect.Locator(heading).ToBeVisible(); err != nil {
		return fmt.Errorf("%w: heading %q should be visible: %w", ErrAssertion, MsgThankYou, err)
	}
	if err := p.expect.Locator(p.page.Locator(confirmationXPath)).ToHaveText(MsgThankYou); err != nil {
		return fmt.Errorf("%w: contact reply should read %q: %w", ErrAssertion, MsgThankYou, err)
	}
	return nil
}
