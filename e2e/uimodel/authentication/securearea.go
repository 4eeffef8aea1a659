package authentication

import (
	"strings"

	"github.com/gravitational/trace"
	"github.com/jmptrader/robotest-web/e2e/runtime"
	"github.com/jmptrader/robotest-web/e2e/uimodel/defaults"
	"github.com/jmptrader/robotest-web/e2e/uimodel/utils"
	log "github.com/sirupsen/logrus"
)

const (
	logoutLink    = "a[href='/logout']"
	secureHeading = "h2"
	secureMessage = "h4.subheader"
)

// SecureAreaPage is the page shown after a successful login
type SecureAreaPage struct {
	t *runtime.TContext
}

// SecureArea returns the secure area ui model for the current page
func SecureArea(t *runtime.TContext) *SecureAreaPage {
	return &SecureAreaPage{t: t}
}

// Logout clicks the logout button and waits for the login form
func (p *SecureAreaPage) Logout() (*LoginPage, error) {
	log.Infof("logging out")
	if err := utils.Click(p.t, logoutLink); err != nil {
		return nil, trace.Wrap(err)
	}
	if err := p.t.Wait.ForURL(defaults.LoginURL); err != nil {
		return nil, trace.Wrap(err, "logout did not return to the login form")
	}
	return Login(p.t), nil
}

// IsDisplayed returns true on the secure area
func (p *SecureAreaPage) IsDisplayed() bool {
	url, err := p.t.Session.URL()
	if err != nil {
		return false
	}
	return utils.IsDisplayed(p.t.Session, secureHeading) &&
		p.IsLogoutDisplayed() &&
		strings.Contains(url, defaults.SecureAreaURL)
}

// IsLogoutDisplayed returns true if the logout button is visible
func (p *SecureAreaPage) IsLogoutDisplayed() bool {
	return utils.IsDisplayed(p.t.Session, logoutLink)
}

// IsUserLoggedIn returns true if the secure area heading is shown
func (p *SecureAreaPage) IsUserLoggedIn() bool {
	if !p.IsDisplayed() {
		return false
	}
	return strings.Contains(utils.TextOf(p.t.Session.Find(secureHeading)), "Secure Area")
}

// Heading returns the page heading
func (p *SecureAreaPage) Heading() (string, error) {
	return utils.Text(p.t, secureHeading)
}

// Message returns the welcome text under the heading
func (p *SecureAreaPage) Message() (string, error) {
	return utils.Text(p.t, secureMessage)
}

// FlashMessage returns the flash message
func (p *SecureAreaPage) FlashMessage() (string, error) {
	return utils.Text(p.t, flashMessage)
}

// IsLoginSuccessMessageDisplayed returns true if the flash reports a login
func (p *SecureAreaPage) IsLoginSuccessMessageDisplayed() bool {
	return utils.IsDisplayed(p.t.Session, flashMessage) &&
		strings.Contains(utils.TextOf(p.t.Session.Find(flashMessage)), defaults.LoginSuccessMessage)
}
