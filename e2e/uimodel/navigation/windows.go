package navigation

import (
	"strings"

	"github.com/gravitational/trace"
	"github.com/jmptrader/robotest-web/e2e/runtime"
	"github.com/jmptrader/robotest-web/e2e/uimodel/defaults"
	"github.com/jmptrader/robotest-web/e2e/uimodel/utils"
	log "github.com/sirupsen/logrus"
)

const (
	newWindowLink = "a[href='/windows/new']"
	pageHeading   = "h3"
)

// WindowsPage is the ui model of the multiple windows page.
// It tracks which of the two windows is focused.
type WindowsPage struct {
	t           *runtime.TContext
	onNewWindow bool
}

// OpenWindows navigates to the multiple windows page
func OpenWindows(t *runtime.TContext) (*WindowsPage, error) {
	if err := utils.Open(t, defaults.WindowsURL); err != nil {
		return nil, trace.Wrap(err)
	}
	return &WindowsPage{t: t}, nil
}

// IsDisplayed returns true if the heading and link are shown
func (p *WindowsPage) IsDisplayed() bool {
	return utils.IsDisplayed(p.t.Session, pageHeading) && p.IsLinkDisplayed()
}

// IsLinkDisplayed returns true if the new window link is visible
func (p *WindowsPage) IsLinkDisplayed() bool {
	return utils.IsDisplayed(p.t.Session, newWindowLink)
}

// OpenNewWindow clicks the link and waits for the second window
func (p *WindowsPage) OpenNewWindow() error {
	if err := utils.Click(p.t, newWindowLink); err != nil {
		return trace.Wrap(err)
	}
	if err := p.t.Wait.ForWindows(2, defaults.NewWindowTimeout); err != nil {
		return trace.Wrap(err, "new window did not open")
	}
	log.Infof("new window opened")
	return nil
}

// SwitchToNewWindow focuses the window opened by the link
func (p *WindowsPage) SwitchToNewWindow() error {
	if p.onNewWindow {
		return nil
	}
	if err := p.t.Session.NextWindow(); err != nil {
		return trace.Wrap(err)
	}
	p.onNewWindow = true
	return nil
}

// SwitchToOriginalWindow focuses the window the page was opened in
func (p *WindowsPage) SwitchToOriginalWindow() error {
	if !p.onNewWindow {
		return nil
	}
	if err := p.t.Session.NextWindow(); err != nil {
		return trace.Wrap(err)
	}
	p.onNewWindow = false
	return nil
}

// CloseNewWindow closes the new window and focuses the original one
func (p *WindowsPage) CloseNewWindow() error {
	if err := p.SwitchToNewWindow(); err != nil {
		return trace.Wrap(err)
	}
	if err := p.t.Session.CloseWindow(); err != nil {
		return trace.Wrap(err)
	}
	p.onNewWindow = false
	// focus must be moved off the closed window explicitly
	return trace.Wrap(p.t.Session.NextWindow())
}

// WindowCount returns the number of open windows, 0 if unknown
func (p *WindowsPage) WindowCount() int {
	count, err := p.t.Session.WindowCount()
	if err != nil {
		return 0
	}
	return count
}

// IsNewWindowOpened returns true if more than one window is open
func (p *WindowsPage) IsNewWindowOpened() bool {
	return p.WindowCount() > 1
}

// Heading returns the heading of the focused window
func (p *WindowsPage) Heading() (string, error) {
	return utils.Text(p.t, pageHeading)
}

// IsNewWindowContentCorrect switches to the new window and checks it
func (p *WindowsPage) IsNewWindowContentCorrect() bool {
	if err := p.SwitchToNewWindow(); err != nil {
		return false
	}
	if err := p.t.Wait.ForPageLoad(); err != nil {
		return false
	}
	title, err := p.t.Session.Title()
	if err != nil {
		log.Debugf("no title for the new window: %v", trace.UserMessage(err))
	}
	heading, err := p.Heading()
	if err != nil {
		log.Debugf("no heading in the new window: %v", trace.UserMessage(err))
	}
	log.Infof("new window title %q, heading %q", title, heading)
	return strings.Contains(title, "New Window") || strings.Contains(heading, "New Window")
}
