package authentication

import (
	"strings"

	"github.com/gravitational/trace"
	"github.com/jmptrader/robotest-web/e2e/runtime"
	"github.com/jmptrader/robotest-web/e2e/runtime/configs"
	"github.com/jmptrader/robotest-web/e2e/uimodel/defaults"
	"github.com/jmptrader/robotest-web/e2e/uimodel/utils"
	log "github.com/sirupsen/logrus"
)

const (
	usernameInput = "input[name='username']"
	passwordInput = "input[name='password']"
	loginButton   = "button[type='submit']"
	flashMessage  = "#flash"
	loginHeading  = "h2"
)

// Credentials are the values entered into the login form
type Credentials struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
}

// Check returns an error if either value is missing
func (c Credentials) Check() error {
	return trace.Wrap(configs.Validate(c))
}

// ValidCredentials are accepted by the demo application
var ValidCredentials = Credentials{Username: defaults.ValidUsername, Password: defaults.ValidPassword}

// LoginPage is the login form ui model
type LoginPage struct {
	t *runtime.TContext
}

// OpenLogin navigates to the login form and returns its ui model
func OpenLogin(t *runtime.TContext) (*LoginPage, error) {
	if err := utils.Open(t, defaults.LoginURL); err != nil {
		return nil, trace.Wrap(err)
	}
	return &LoginPage{t: t}, nil
}

// Login returns the login ui model for the current page
func Login(t *runtime.TContext) *LoginPage {
	return &LoginPage{t: t}
}

// EnterUsername types username into the form
func (p *LoginPage) EnterUsername(username string) error {
	log.Infof("entering username: %s", username)
	return trace.Wrap(utils.Type(p.t, usernameInput, username))
}

// EnterPassword types password into the form
func (p *LoginPage) EnterPassword(password string) error {
	log.Infof("entering password")
	return trace.Wrap(utils.Type(p.t, passwordInput, password))
}

// Fill enters the credentials without submitting
func (p *LoginPage) Fill(creds Credentials) error {
	if err := p.EnterUsername(creds.Username); err != nil {
		return trace.Wrap(err)
	}
	return trace.Wrap(p.EnterPassword(creds.Password))
}

// Submit clicks the login button
func (p *LoginPage) Submit() error {
	log.Infof("submitting the login form")
	return trace.Wrap(utils.Click(p.t, loginButton))
}

// LoginAs submits creds and waits for the secure area
func (p *LoginPage) LoginAs(creds Credentials) (*SecureAreaPage, error) {
	if err := creds.Check(); err != nil {
		return nil, trace.BadParameter("incomplete credentials: %v", err)
	}
	if err := p.Fill(creds); err != nil {
		return nil, trace.Wrap(err)
	}
	if err := p.Submit(); err != nil {
		return nil, trace.Wrap(err)
	}
	if err := p.t.Wait.ForURL(defaults.SecureAreaURL); err != nil {
		return nil, trace.Wrap(err, "login as %q did not reach the secure area", creds.Username)
	}
	return SecureArea(p.t), nil
}

// IsDisplayed returns true if the whole form is visible
func (p *LoginPage) IsDisplayed() bool {
	s := p.t.Session
	return utils.IsDisplayed(s, loginHeading) &&
		utils.IsDisplayed(s, usernameInput) &&
		utils.IsDisplayed(s, passwordInput) &&
		utils.IsDisplayed(s, loginButton)
}

// IsLoginButtonEnabled returns true if the form can be submitted
func (p *LoginPage) IsLoginButtonEnabled() bool {
	return utils.IsEnabled(p.t.Session, loginButton)
}

// Heading returns the page heading
func (p *LoginPage) Heading() (string, error) {
	return utils.Text(p.t, loginHeading)
}

// FlashMessage waits for the flash message and returns it
func (p *LoginPage) FlashMessage() (string, error) {
	return utils.Text(p.t, flashMessage)
}

// IsFlashDisplayed returns true if a flash message is shown
func (p *LoginPage) IsFlashDisplayed() bool {
	return utils.IsDisplayed(p.t.Session, flashMessage)
}

// IsErrorMessageDisplayed returns true if the flash reports bad credentials
func (p *LoginPage) IsErrorMessageDisplayed() bool {
	return p.flashContains(defaults.InvalidLoginMessage, defaults.InvalidPasswordMessage)
}

// IsSuccessMessageDisplayed returns true if the flash reports a login
func (p *LoginPage) IsSuccessMessageDisplayed() bool {
	return p.flashContains(defaults.LoginSuccessMessage)
}

// IsLogoutMessageDisplayed returns true if the flash reports a logout
func (p *LoginPage) IsLogoutMessageDisplayed() bool {
	return p.flashContains(defaults.LogoutSuccessMessage)
}

func (p *LoginPage) flashContains(messages ...string) bool {
	if !p.IsFlashDisplayed() {
		return false
	}
	text := utils.TextOf(p.t.Session.Find(flashMessage))
	for _, message := range messages {
		if strings.Contains(text, message) {
			return true
		}
	}
	return false
}
