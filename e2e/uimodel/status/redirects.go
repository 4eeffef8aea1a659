package status

import (
	"strings"

	"github.com/gravitational/trace"
	"github.com/jmptrader/robotest-web/e2e/runtime"
	"github.com/jmptrader/robotest-web/e2e/uimodel/defaults"
	"github.com/jmptrader/robotest-web/e2e/uimodel/utils"
	log "github.com/sirupsen/logrus"
)

const redirectLink = "#redirect"

// RedirectsPage is the ui model of the redirector page
type RedirectsPage struct {
	t *runtime.TContext
}

// OpenRedirector navigates to the redirector page
func OpenRedirector(t *runtime.TContext) (*RedirectsPage, error) {
	if err := utils.Open(t, defaults.RedirectorURL); err != nil {
		return nil, trace.Wrap(err)
	}
	return &RedirectsPage{t: t}, nil
}

// IsDisplayed returns true if the heading or the URL names the redirector
func (p *RedirectsPage) IsDisplayed() bool {
	heading, err := utils.Text(p.t, pageHeading)
	if err == nil && strings.Contains(heading, "Redirection") {
		return true
	}
	url, err := p.t.Session.URL()
	return err == nil && strings.Contains(url, defaults.RedirectorURL)
}

// IsLinkVisible returns true if the redirect link is shown
func (p *RedirectsPage) IsLinkVisible() bool {
	return utils.IsDisplayed(p.t.Session, redirectLink)
}

// Instructions returns the paragraph explaining the redirect
func (p *RedirectsPage) Instructions() (string, error) {
	return utils.Text(p.t, "#content p")
}

// Redirect follows the redirect link and waits to land on the status
// codes page. It returns the URL landed on.
func (p *RedirectsPage) Redirect() (string, error) {
	from, err := p.t.Session.URL()
	if err != nil {
		return "", trace.Wrap(err)
	}
	if err := utils.Click(p.t, redirectLink); err != nil {
		return "", trace.Wrap(err)
	}
	if err := p.t.Wait.ForURL(defaults.StatusCodesURL); err != nil {
		return "", trace.Wrap(err, "no redirect from %v", from)
	}
	to, err := p.t.Session.URL()
	if err != nil {
		return "", trace.Wrap(err)
	}
	log.Infof("redirected from %v to %v", from, to)
	return to, nil
}

// StatusCodes returns the model of the page the redirect lands on
func (p *RedirectsPage) StatusCodes() *StatusCodesPage {
	return &StatusCodesPage{t: p.t}
}
