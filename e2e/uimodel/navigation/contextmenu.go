package navigation

import (
	"github.com/gravitational/trace"
	"github.com/jmptrader/robotest-web/e2e/runtime"
	"github.com/jmptrader/robotest-web/e2e/uimodel/defaults"
	"github.com/jmptrader/robotest-web/e2e/uimodel/utils"
	log "github.com/sirupsen/logrus"
)

const hotSpot = "#hot-spot"

// ContextMenuPage is the ui model of the context menu page
type ContextMenuPage struct {
	t *runtime.TContext
}

// OpenContextMenu navigates to the context menu page
func OpenContextMenu(t *runtime.TContext) (*ContextMenuPage, error) {
	if err := utils.Open(t, defaults.ContextMenuURL); err != nil {
		return nil, trace.Wrap(err)
	}
	return &ContextMenuPage{t: t}, nil
}

// IsDisplayed returns true if the heading reads Context Menu
func (p *ContextMenuPage) IsDisplayed() bool {
	heading, err := utils.Text(p.t, pageHeading)
	return err == nil && heading == "Context Menu"
}

// IsHotSpotDisplayed returns true if the right-click area is visible
func (p *ContextMenuPage) IsHotSpotDisplayed() bool {
	return utils.IsDisplayed(p.t.Session, hotSpot)
}

// RightClick opens the context menu on the hot spot
func (p *ContextMenuPage) RightClick() error {
	el, err := p.t.Wait.ForClickable(hotSpot)
	if err != nil {
		return trace.Wrap(err)
	}
	log.Infof("right-clicking %v", hotSpot)
	return trace.Wrap(el.ContextClick(), "failed to right-click %v", hotSpot)
}

// IsAlertPresent waits for an alert, returns false if none opens
func (p *ContextMenuPage) IsAlertPresent() bool {
	_, err := p.t.Wait.ForAlert()
	return err == nil
}

// AlertText waits for an alert and returns its text, "" if none opens
func (p *ContextMenuPage) AlertText() string {
	text, err := p.t.Wait.ForAlert()
	if err != nil {
		log.Debugf("no alert: %v", trace.UserMessage(err))
		return ""
	}
	return text
}

// AcceptAlert waits for the alert and accepts it
func (p *ContextMenuPage) AcceptAlert() error {
	if _, err := p.t.Wait.ForAlert(); err != nil {
		return trace.Wrap(err)
	}
	return trace.Wrap(p.t.Session.AcceptAlert())
}

// DismissAlert waits for the alert and dismisses it
func (p *ContextMenuPage) DismissAlert() error {
	if _, err := p.t.Wait.ForAlert(); err != nil {
		return trace.Wrap(err)
	}
	return trace.Wrap(p.t.Session.DismissAlert())
}

// IsAlertTextCorrect returns true if the alert has the expected text
func (p *ContextMenuPage) IsAlertTextCorrect() bool {
	return p.AlertText() == defaults.ContextMenuAlertText
}

// Verify right-clicks the hot spot, checks the alert and accepts it
func (p *ContextMenuPage) Verify() error {
	if err := p.RightClick(); err != nil {
		return trace.Wrap(err)
	}
	text, err := p.t.Wait.ForAlert()
	if err != nil {
		return trace.Wrap(err, "no alert after right-click")
	}
	if err := p.t.Session.AcceptAlert(); err != nil {
		return trace.Wrap(err)
	}
	if text != defaults.ContextMenuAlertText {
		return trace.CompareFailed("alert text %q, expected %q", text, defaults.ContextMenuAlertText)
	}
	return nil
}
