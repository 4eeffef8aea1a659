// Package utils holds the element helpers shared by the page models.
//
// State queries (IsFound, IsDisplayed, ...) never fail: any error reads as
// "no". Actions (Click, Type, Text) wait for the element and return errors.
package utils

import (
	"time"

	"github.com/gravitational/trace"
	"github.com/jmptrader/robotest-web/e2e/runtime"
	"github.com/jmptrader/robotest-web/e2e/runtime/session"
	"github.com/jmptrader/robotest-web/e2e/uimodel/defaults"
	log "github.com/sirupsen/logrus"
)

// Open navigates to endpoint and waits for the document to load
func Open(t *runtime.TContext, endpoint string) error {
	if err := t.Navigate(endpoint); err != nil {
		return trace.Wrap(err)
	}
	if err := t.Wait.ForPageLoad(); err != nil {
		return trace.Wrap(err, "%v did not load", endpoint)
	}
	log.Infof("opened %v", endpoint)
	return nil
}

// IsFound returns true if at least one element matches selector
func IsFound(s session.Session, selector string) bool {
	return Count(s, selector) > 0
}

// Count returns the number of elements matching selector
func Count(s session.Session, selector string) int {
	count, err := s.FindAll(selector).Count()
	if err != nil {
		log.Debugf("failed to count %v: %v", selector, trace.UserMessage(err))
		return 0
	}
	return count
}

// IsDisplayed returns true if the element is present and visible
func IsDisplayed(s session.Session, selector string) bool {
	return isVisible(s.Find(selector))
}

// IsEnabled returns true if the element is present and enabled
func IsEnabled(s session.Session, selector string) bool {
	return isEnabled(s.Find(selector))
}

// IsDisplayedAt is IsDisplayed for the index-th match of selector
func IsDisplayedAt(s session.Session, selector string, index int) bool {
	if index < 0 || index >= Count(s, selector) {
		return false
	}
	return isVisible(s.FindAll(selector).At(index))
}

// TextOf returns the element text without waiting, "" if it cannot be read
func TextOf(el session.Element) string {
	text, err := el.Text()
	if err != nil {
		log.Debugf("no text for %v: %v", el, trace.UserMessage(err))
		return ""
	}
	return text
}

// Click waits for the element to become clickable and clicks it
func Click(t *runtime.TContext, selector string) error {
	el, err := t.Wait.ForClickable(selector)
	if err != nil {
		return trace.Wrap(err)
	}
	if err := el.Click(); err != nil {
		return trace.Wrap(err, "failed to click %v", selector)
	}
	log.Debugf("clicked %v", selector)
	return nil
}

// ClickAt clicks the index-th match of selector
func ClickAt(t *runtime.TContext, selector string, index int) error {
	all, err := t.Wait.ForAllPresent(selector)
	if err != nil {
		return trace.Wrap(err)
	}
	count, err := all.Count()
	if err != nil {
		return trace.Wrap(err)
	}
	if index < 0 || index >= count {
		return trace.BadParameter("index %v out of range for %v (%v found)", index, selector, count)
	}
	el := all.At(index)
	if !isVisible(el) || !isEnabled(el) {
		return trace.BadParameter("%v is not clickable", el)
	}
	if err := el.Click(); err != nil {
		return trace.Wrap(err, "failed to click %v", el)
	}
	return nil
}

// Type waits for the input to become visible, clears it and enters text
func Type(t *runtime.TContext, selector, text string) error {
	el, err := t.Wait.ForVisible(selector)
	if err != nil {
		return trace.Wrap(err)
	}
	if err := el.Clear(); err != nil {
		return trace.Wrap(err, "failed to clear %v", selector)
	}
	if err := el.Fill(text); err != nil {
		return trace.Wrap(err, "failed to type into %v", selector)
	}
	return nil
}

// Text waits for the element to become visible and returns its text
func Text(t *runtime.TContext, selector string) (string, error) {
	el, err := t.Wait.ForVisible(selector)
	if err != nil {
		return "", trace.Wrap(err)
	}
	text, err := el.Text()
	if err != nil {
		return "", trace.Wrap(err, "failed to read %v", selector)
	}
	return text, nil
}

// PauseForPageJs waits for page scripts to settle
func PauseForPageJs(t *runtime.TContext) {
	t.Wait.Sleep(defaults.PageJsPause)
}

// Elapsed runs fn and returns how long it took
func Elapsed(fn func() error) (time.Duration, error) {
	start := time.Now()
	err := fn()
	return time.Since(start), err
}

func isVisible(el session.Element) bool {
	visible, err := el.Visible()
	if err != nil {
		log.Debugf("%v not displayed: %v", el, trace.UserMessage(err))
		return false
	}
	return visible
}

func isEnabled(el session.Element) bool {
	enabled, err := el.Enabled()
	if err != nil {
		log.Debugf("%v not enabled: %v", el, trace.UserMessage(err))
		return false
	}
	return enabled
}
