package contactform

import (
	"context"
	"fmt"
)

// CheckTitle expects the freshly loaded contact page to carry its title.
func CheckTitle(_ context.Context, p *Page) error {
	return p.ExpectTitle(ContactTitle)
}

// CheckHomeLink follows the navbar brand link and expects the index page.
func CheckHomeLink(_ context.Context, p *Page) error {
	if err := p.ClickHomeLink(); err != nil {
		return err
	}
	if err := p.ExpectTitle(IndexTitle); err != nil {
		return err
	}
	return p.ExpectURL(p.target.IndexURL)
}

// CheckMissingField removes missing from fields, submits the rest and expects
// the required-fields error.
func CheckMissingField(ctx context.Context, p *Page, fields *FieldSet, missing Field) error {
	if !missing.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownField, string(missing))
	}
	fields.Delete(missing)

	if err := p.Fill(ctx, fields); err != nil {
		return err
	}
	if err := p.Submit(); err != nil {
		return err
	}
	return p.ExpectTextVisible(MsgAllFieldsRequired)
}

// CheckInvalidEmail submits fields with a malformed address and expects the
// invalid-email error.
func CheckInvalidEmail(ctx context.Context, p *Page, fields *FieldSet) error {
	if err := fields.Set(EmailAddress, InvalidEmail); err != nil {
		return err
	}
	if err := p.Fill(ctx, fields); err != nil {
		return err
	}
	if err := p.Submit(); err != nil {
		return err
	}
	return p.ExpectTextVisible(MsgInvalidEmail)
}

// CheckReset fills every field, confirming each one took the text, then
// expects RESET to empty them all.
func CheckReset(_ context.Context, p *Page, fields *FieldSet) error {
	for f, v := range fields.All() {
		if err := p.FillField(f, v); err != nil {
			return err
		}
		if err := p.ExpectFieldNotEmpty(f); err != nil {
			return err
		}
	}

	if err := p.Reset(); err != nil {
		return err
	}

	for _, f := range fields.Fields() {
		if err := p.ExpectFieldEmpty(f); err != nil {
			return err
		}
	}
	return nil
}

// CheckSubmission submits fields and expects the thank-you message.
func CheckSubmission(ctx context.Context, p *Page, fields *FieldSet) error {
	if err := p.Fill(ctx, fields); err != nil {
		return err
	}
	if err := p.Submit(); err != nil {
		return err
	}
	return p.ExpectConfirmation()
}
