// Package components models pages built around a single interactive widget
package components

import (
	"fmt"
	"strings"

	"github.com/gravitational/trace"
	"github.com/jmptrader/robotest-web/e2e/runtime"
	"github.com/jmptrader/robotest-web/e2e/runtime/session"
	"github.com/jmptrader/robotest-web/e2e/runtime/wait"
	"github.com/jmptrader/robotest-web/e2e/uimodel/defaults"
	"github.com/jmptrader/robotest-web/e2e/uimodel/utils"
	log "github.com/sirupsen/logrus"
)

const (
	pageHeading  = "h3"
	avatars      = ".figure"
	captions     = ".figure .figcaption"
	userNames    = ".figure .figcaption h5"
	profileLinks = ".figure .figcaption a"
)

// HoverPage is the ui model of the hovers page
type HoverPage struct {
	t *runtime.TContext
}

// OpenHovers navigates to the hovers page
func OpenHovers(t *runtime.TContext) (*HoverPage, error) {
	if err := utils.Open(t, defaults.HoversURL); err != nil {
		return nil, trace.Wrap(err)
	}
	return &HoverPage{t: t}, nil
}

// IsDisplayed returns true if the page heading is shown
func (p *HoverPage) IsDisplayed() bool {
	heading, err := utils.Text(p.t, pageHeading)
	return err == nil && strings.Contains(heading, "Hovers")
}

// AvatarCount returns the number of user avatars
func (p *HoverPage) AvatarCount() int {
	return utils.Count(p.t.Session, avatars)
}

// AreAvatarsVisible returns true if the first avatar is shown
func (p *HoverPage) AreAvatarsVisible() bool {
	return utils.IsDisplayedAt(p.t.Session, avatars, 0)
}

// HoverOver moves the mouse over the index-th avatar
func (p *HoverPage) HoverOver(index int) error {
	avatar, err := p.at(avatars, index)
	if err != nil {
		return trace.Wrap(err)
	}
	if err := avatar.Hover(); err != nil {
		return trace.Wrap(err, "failed to hover over avatar %v", index)
	}
	log.Debugf("hovering over avatar %v", index)
	return nil
}

// IsUserInfoVisible returns true if the caption of the index-th avatar is shown
func (p *HoverPage) IsUserInfoVisible(index int) bool {
	return utils.IsDisplayedAt(p.t.Session, captions, index)
}

// UserName returns the caption name of the index-th avatar, "" if unreadable
func (p *HoverPage) UserName(index int) string {
	return utils.TextOf(p.t.Session.FindAll(userNames).At(index))
}

// IsProfileLinkVisible returns true if the index-th "View profile" link is shown
func (p *HoverPage) IsProfileLinkVisible(index int) bool {
	return utils.IsDisplayedAt(p.t.Session, profileLinks, index)
}

// ViewProfile hovers over the index-th avatar and follows its profile link
func (p *HoverPage) ViewProfile(index int) error {
	if err := p.HoverOver(index); err != nil {
		return trace.Wrap(err)
	}
	if err := utils.ClickAt(p.t, profileLinks, index); err != nil {
		return trace.Wrap(err, "failed to view profile %v", index)
	}
	return trace.Wrap(p.t.Wait.ForURL(fmt.Sprintf("/users/%d", index+1)))
}

// HoverAndVerify hovers over the index-th avatar and waits for its
// caption to show name
func (p *HoverPage) HoverAndVerify(index int, name string) error {
	if err := p.HoverOver(index); err != nil {
		return trace.Wrap(err)
	}
	if _, err := p.t.Wait.Until(captionShows(index, name)); err != nil {
		return trace.Wrap(err)
	}
	return nil
}

// captionShows holds once the index-th caption is visible and its user
// name contains name
func captionShows(index int, name string) wait.Condition {
	return wait.Condition{
		Name: fmt.Sprintf("caption %d to show %q", index, name),
		Check: func(s session.Session) (interface{}, bool, error) {
			caption := s.FindAll(captions).At(index)
			visible, err := caption.Visible()
			if err != nil || !visible {
				return nil, false, nil
			}
			text, err := s.FindAll(userNames).At(index).Text()
			if err != nil {
				return nil, false, err
			}
			return text, strings.Contains(text, name), nil
		},
	}
}

func (p *HoverPage) at(selector string, index int) (session.Element, error) {
	all, err := p.t.Wait.ForAllPresent(selector)
	if err != nil {
		return nil, trace.Wrap(err)
	}
	count, err := all.Count()
	if err != nil {
		return nil, trace.Wrap(err)
	}
	if index < 0 || index >= count {
		return nil, trace.BadParameter("avatar %v out of range (%v found)", index, count)
	}
	return all.At(index), nil
}
