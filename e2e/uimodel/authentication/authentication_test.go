package authentication_test

import (
	"github.com/gravitational/trace"
	"github.com/jmptrader/robotest-web/e2e/runtime"
	"github.com/jmptrader/robotest-web/e2e/runtime/session/sessiontest"
	"github.com/jmptrader/robotest-web/e2e/runtime/wait"
	. "github.com/jmptrader/robotest-web/e2e/uimodel/authentication"
	"github.com/jmptrader/robotest-web/e2e/uimodel/defaults"
	"github.com/jmptrader/robotest-web/e2e/uimodel/uimodeltest"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

const (
	username = "input[name='username']"
	password = "input[name='password']"
	submit   = "button[type='submit']"
	logout   = "a[href='/logout']"
)

// fakeApp emulates the login flow of the application
func fakeApp(s *sessiontest.Session, selector string) {
	switch selector {
	case submit:
		user, _ := s.Find(username).Attribute("value")
		pass, _ := s.Find(password).Attribute("value")
		switch {
		case user != defaults.ValidUsername:
			s.Put("#flash", uimodeltest.Visible(defaults.InvalidLoginMessage+"\n×"))
		case pass != defaults.ValidPassword:
			s.Put("#flash", uimodeltest.Visible(defaults.InvalidPasswordMessage+"\n×"))
		default:
			s.SetURL(uimodeltest.BaseURL + defaults.SecureAreaURL)
			s.Put("#flash", uimodeltest.Visible(defaults.LoginSuccessMessage+"\n×"))
			s.Put("h2", uimodeltest.Visible("Secure Area"))
			s.Put(logout, uimodeltest.Visible("Logout"))
		}
	case logout:
		s.SetURL(uimodeltest.BaseURL + defaults.LoginURL)
		s.Remove(logout)
		s.Put("h2", uimodeltest.Visible("Login Page"))
		s.Put("#flash", uimodeltest.Visible(defaults.LogoutSuccessMessage+"\n×"))
	}
}

var _ = Describe("Login", func() {
	var (
		tcontext *runtime.TContext
		browser  *sessiontest.Session
		login    *LoginPage
	)

	BeforeEach(func() {
		tcontext, browser = uimodeltest.NewContext()
		browser.Put("h2", uimodeltest.Visible("Login Page"))
		browser.Put(username, uimodeltest.Visible(""))
		browser.Put(password, uimodeltest.Visible(""))
		browser.Put(submit, uimodeltest.Visible("Login"))
		browser.OnClick = fakeApp

		var err error
		login, err = OpenLogin(tcontext)
		Expect(err).NotTo(HaveOccurred())
	})

	It("opens the login form", func() {
		Expect(browser.Visits).To(Equal([]string{uimodeltest.BaseURL + defaults.LoginURL}))
		Expect(login.IsDisplayed()).To(BeTrue())
		Expect(login.IsLoginButtonEnabled()).To(BeTrue())
		Expect(login.Heading()).To(Equal("Login Page"))
	})

	It("logs in and out with valid credentials", func() {
		secure, err := login.LoginAs(ValidCredentials)
		Expect(err).NotTo(HaveOccurred())
		Expect(secure.IsUserLoggedIn()).To(BeTrue())
		Expect(secure.IsLoginSuccessMessageDisplayed()).To(BeTrue())

		login, err = secure.Logout()
		Expect(err).NotTo(HaveOccurred())
		Expect(login.IsLogoutMessageDisplayed()).To(BeTrue())
		Expect(secure.IsDisplayed()).To(BeFalse())
	})

	It("refuses to log in with incomplete credentials", func() {
		Expect(Credentials{Username: defaults.ValidUsername}.Check()).NotTo(Succeed())
		Expect(ValidCredentials.Check()).To(Succeed())

		_, err := login.LoginAs(Credentials{Password: defaults.ValidPassword})
		Expect(trace.IsBadParameter(err)).To(BeTrue())
		Expect(err.Error()).To(ContainSubstring("Username"))
		Expect(browser.Clicks).To(BeEmpty())
	})

	It("reports an invalid username", func() {
		Expect(login.Fill(Credentials{Username: defaults.InvalidUsername, Password: defaults.ValidPassword})).To(Succeed())
		Expect(login.Submit()).To(Succeed())
		Expect(login.IsErrorMessageDisplayed()).To(BeTrue())
		Expect(login.IsSuccessMessageDisplayed()).To(BeFalse())
		Expect(login.FlashMessage()).To(ContainSubstring(defaults.InvalidLoginMessage))
	})

	It("reports an invalid password", func() {
		Expect(login.Fill(Credentials{Username: defaults.ValidUsername, Password: defaults.InvalidPassword})).To(Succeed())
		Expect(login.Submit()).To(Succeed())
		Expect(login.IsErrorMessageDisplayed()).To(BeTrue())
		Expect(login.FlashMessage()).To(ContainSubstring(defaults.InvalidPasswordMessage))
	})

	It("replaces previous input", func() {
		Expect(login.EnterUsername("first")).To(Succeed())
		Expect(login.EnterUsername(defaults.ValidUsername)).To(Succeed())
		Expect(browser.Find(username).Attribute("value")).To(Equal(defaults.ValidUsername))
	})

	It("answers no instead of failing when elements are missing", func() {
		browser.Remove(submit)
		Expect(login.IsDisplayed()).To(BeFalse())
		Expect(login.IsFlashDisplayed()).To(BeFalse())
		Expect(login.IsErrorMessageDisplayed()).To(BeFalse())
	})

	It("fails to submit a disabled form", func() {
		browser.Update(submit, func(n *sessiontest.Node) { n.Enabled = false })
		err := login.Submit()
		Expect(err).To(HaveOccurred())
		Expect(wait.IsTimeout(err)).To(BeTrue())
	})
})
