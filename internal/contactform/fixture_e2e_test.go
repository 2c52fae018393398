//go:build e2e

package contactform_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/contactus/internal/contactform"
	"github.com/bnema/contactus/internal/logging"
)

// Local copies of the contact form, so reset and confirmation behaviour can
// be checked against pages whose markup the test controls.

const formTemplate = `<!DOCTYPE html>
<html><head><title>WebDriver | Contact Us</title></head>
<body>
<form action="%s" method="post">
  <input type="text" name="first_name" placeholder="First Name">
  <input type="text" name="last_name" placeholder="Last Name">
  <input type="text" name="email" placeholder="Email Address">
  <textarea name="message" placeholder="Comments"></textarea>
  <input type="%s" value="RESET">
  <input type="submit" value="SUBMIT">
</form>
</body></html>`

const replyTemplate = `<!DOCTYPE html>
<html><head><title>Gianni Bruno - Thank You</title></head>
<body>%s</body></html>`

// A short expect timeout keeps the failing cases quick.
const fixtureExpectTimeout = time.Second

func fixtureServer(t *testing.T) *httptest.Server {
	t.Helper()

	html := func(body string) http.HandlerFunc {
		return func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			fmt.Fprint(w, body)
		}
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/contactus.html", html(fmt.Sprintf(formTemplate, "/reply", "reset")))
	mux.HandleFunc("/sticky-reset.html", html(fmt.Sprintf(formTemplate, "/reply", "button")))
	mux.HandleFunc("/misplaced-reply.html", html(fmt.Sprintf(formTemplate, "/reply-misplaced", "reset")))
	mux.HandleFunc("/hidden-reply.html", html(fmt.Sprintf(formTemplate, "/reply-hidden", "reset")))

	mux.HandleFunc("/reply", html(fmt.Sprintf(replyTemplate,
		`<div id="contact_reply"><h1>Thank You for your Message!</h1></div>`)))
	mux.HandleFunc("/reply-misplaced", html(fmt.Sprintf(replyTemplate,
		`<div id="contact_reply"><p>Received.</p></div><h1>Thank You for your Message!</h1>`)))
	mux.HandleFunc("/reply-hidden", html(fmt.Sprintf(replyTemplate,
		`<div id="contact_reply"><h1 hidden>Thank You for your Message!</h1></div>`)))

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

// openFixturePage gives the test a fresh page showing the local form at path.
func openFixturePage(t *testing.T, path string) (context.Context, *contactform.Page) {
	t.Helper()
	srv := fixtureServer(t)
	ctx := logging.WithScenario(baseCtx, t.Name())

	pw, release, err := session.NewPage(ctx)
	require.NoError(t, err)
	t.Cleanup(release)

	p := contactform.NewPage(pw, contactform.Target{
		ContactURL: srv.URL + path,
		IndexURL:   srv.URL + "/",
	}, fixtureExpectTimeout)
	require.NoError(t, p.Open(ctx))
	return ctx, p
}

func TestLocalForm_ResetClearsFilledFields(t *testing.T) {
	ctx, p := openFixturePage(t, "/contactus.html")
	require.NoError(t, contactform.CheckReset(ctx, p, contactform.NewFieldSet()))
}

func TestLocalForm_ResetThatKeepsTextFails(t *testing.T) {
	ctx, p := openFixturePage(t, "/sticky-reset.html")

	err := contactform.CheckReset(ctx, p, contactform.NewFieldSet())
	require.ErrorIs(t, err, contactform.ErrAssertion)
	assert.Contains(t, err.Error(), `"First Name" should be empty`)
}

func TestLocalForm_SubmissionShowsConfirmation(t *testing.T) {
	ctx, p := openFixturePage(t, "/contactus.html")
	require.NoError(t, contactform.CheckSubmission(ctx, p, contactform.NewFieldSet()))
}

func TestLocalForm_ConfirmationOutsideReplyContainerFails(t *testing.T) {
	ctx, p := openFixturePage(t, "/misplaced-reply.html")

	err := contactform.CheckSubmission(ctx, p, contactform.NewFieldSet())
	require.ErrorIs(t, err, contactform.ErrAssertion)
	assert.Contains(t, err.Error(), "contact reply should read")
	assert.NotContains(t, err.Error(), "heading")
}

func TestLocalForm_HiddenConfirmationHeadingFails(t *testing.T) {
	ctx, p := openFixturePage(t, "/hidden-reply.html")

	err := contactform.CheckSubmission(ctx, p, contactform.NewFieldSet())
	require.ErrorIs(t, err, contactform.ErrAssertion)
	assert.Contains(t, err.Error(), "heading")
	assert.NotContains(t, err.Error(), "contact reply should read")
}
