package features

import (
	"context"
	"strings"

	"github.com/cucumber/godog"
	"github.com/gravitational/trace"
	"github.com/jmptrader/robotest-web/e2e/uimodel/authentication"
	"github.com/jmptrader/robotest-web/e2e/uimodel/defaults"
)

func registerLoginSteps(sc *godog.ScenarioContext) {
	sc.Step(`^I navigate to the login page$`, navigateToLogin)
	sc.Step(`^I enter username "([^"]*)"$`, enterUsername)
	sc.Step(`^I enter password "([^"]*)"$`, enterPassword)
	sc.Step(`^I click the login button$`, clickLogin)
	sc.Step(`^I login with valid credentials$`, loginWithValidCredentials)
	sc.Step(`^I should be redirected to the secure area$`, shouldBeOnSecureArea)
	sc.Step(`^I am on the secure area page$`, shouldBeOnSecureArea)
	sc.Step(`^I should see the success message "([^"]*)"$`, shouldSeeFlash)
	sc.Step(`^I should see the logout button$`, shouldSeeLogout)
	sc.Step(`^I should remain on the login page$`, shouldRemainOnLogin)
	sc.Step(`^I should see the error message "([^"]*)"$`, shouldSeeFlash)
	sc.Step(`^I should see an error message$`, shouldSeeError)
	sc.Step(`^I click the logout button$`, clickLogout)
	sc.Step(`^I should see the logout success message "([^"]*)"$`, shouldSeeFlash)
	sc.Step(`^I should see the login form$`, shouldSeeLoginForm)
}

func navigateToLogin(ctx context.Context) error {
	w, err := worldFrom(ctx)
	if err != nil {
		return trace.Wrap(err)
	}
	w.login, err = authentication.OpenLogin(w.t)
	return trace.Wrap(err)
}

func enterUsername(ctx context.Context, username string) error {
	w, err := worldFrom(ctx)
	if err != nil {
		return trace.Wrap(err)
	}
	return w.loginPage().EnterUsername(username)
}

func enterPassword(ctx context.Context, password string) error {
	w, err := worldFrom(ctx)
	if err != nil {
		return trace.Wrap(err)
	}
	return w.loginPage().EnterPassword(password)
}

func clickLogin(ctx context.Context) error {
	w, err := worldFrom(ctx)
	if err != nil {
		return trace.Wrap(err)
	}
	return w.loginPage().Submit()
}

func loginWithValidCredentials(ctx context.Context) error {
	w, err := worldFrom(ctx)
	if err != nil {
		return trace.Wrap(err)
	}
	if w.login, err = authentication.OpenLogin(w.t); err != nil {
		return trace.Wrap(err)
	}
	w.secure, err = w.login.LoginAs(authentication.ValidCredentials)
	return trace.Wrap(err)
}

func shouldBeOnSecureArea(ctx context.Context) error {
	w, err := worldFrom(ctx)
	if err != nil {
		return trace.Wrap(err)
	}
	if err := w.t.Wait.ForURL(defaults.SecureAreaURL); err != nil {
		return trace.Wrap(err)
	}
	if !w.securePage().IsDisplayed() {
		return trace.CompareFailed("secure area is not displayed")
	}
	return nil
}

func shouldSeeFlash(ctx context.Context, message string) error {
	w, err := worldFrom(ctx)
	if err != nil {
		return trace.Wrap(err)
	}
	if err := w.t.Wait.ForText("#flash", message); err != nil {
		flash, _ := w.loginPage().FlashMessage()
		return trace.Wrap(err, "expected flash %q, got %q", message, strings.TrimSpace(flash))
	}
	return nil
}

func shouldSeeLogout(ctx context.Context) error {
	w, err := worldFrom(ctx)
	if err != nil {
		return trace.Wrap(err)
	}
	if !w.securePage().IsLogoutDisplayed() {
		return trace.CompareFailed("logout button is not displayed")
	}
	return nil
}

func shouldRemainOnLogin(ctx context.Context) error {
	w, err := worldFrom(ctx)
	if err != nil {
		return trace.Wrap(err)
	}
	url, err := w.t.Session.URL()
	if err != nil {
		return trace.Wrap(err)
	}
	if !strings.Contains(url, defaults.LoginURL) {
		return trace.CompareFailed("expected to stay on the login page, at %v", url)
	}
	return shouldSeeLoginForm(ctx)
}

func shouldSeeError(ctx context.Context) error {
	w, err := worldFrom(ctx)
	if err != nil {
		return trace.Wrap(err)
	}
	if !w.loginPage().IsErrorMessageDisplayed() {
		return trace.CompareFailed("no login error is displayed")
	}
	return nil
}

func clickLogout(ctx context.Context) error {
	w, err := worldFrom(ctx)
	if err != nil {
		return trace.Wrap(err)
	}
	w.login, err = w.securePage().Logout()
	return trace.Wrap(err)
}

func shouldSeeLoginForm(ctx context.Context) error {
	w, err := worldFrom(ctx)
	if err != nil {
		return trace.Wrap(err)
	}
	if !w.loginPage().IsDisplayed() {
		return trace.CompareFailed("login form is not displayed")
	}
	return nil
}
