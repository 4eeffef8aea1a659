package wait

import (
	"fmt"
	"strings"

	"github.com/jmptrader/robotest-web/e2e/runtime/session"
)

// Present holds once at least one element matches selector.
// The value is the element.
func Present(selector string) Condition {
	return Condition{
		Name: fmt.Sprintf("presence of %q", selector),
		Check: func(s session.Session) (interface{}, bool, error) {
			el := s.Find(selector)
			count, err := el.Count()
			if err != nil {
				return nil, false, err
			}
			return el, count > 0, nil
		},
	}
}

// AllPresent holds once at least one element matches selector.
// The value is the set of matching elements.
func AllPresent(selector string) Condition {
	return Condition{
		Name: fmt.Sprintf("presence of all %q", selector),
		Check: func(s session.Session) (interface{}, bool, error) {
			all := s.FindAll(selector)
			count, err := all.Count()
			if err != nil {
				return nil, false, err
			}
			return all, count > 0, nil
		},
	}
}

// Visible holds once the element is present and displayed.
// The value is the element.
func Visible(selector string) Condition {
	return Condition{
		Name: fmt.Sprintf("visibility of %q", selector),
		Check: func(s session.Session) (interface{}, bool, error) {
			el, visible, err := displayed(s, selector)
			if err != nil {
				return nil, false, err
			}
			return el, visible, nil
		},
	}
}

// Clickable holds once the element is visible and enabled.
// The value is the element.
func Clickable(selector string) Condition {
	return Condition{
		Name: fmt.Sprintf("element %q to be clickable", selector),
		Check: func(s session.Session) (interface{}, bool, error) {
			el, visible, err := displayed(s, selector)
			if err != nil || !visible {
				return nil, false, err
			}
			enabled, err := el.Enabled()
			if err != nil {
				return nil, false, err
			}
			return el, enabled, nil
		},
	}
}

// InvisibleOrAbsent holds once no element matches selector or
// the element is not displayed
func InvisibleOrAbsent(selector string) Condition {
	return Condition{
		Name: fmt.Sprintf("invisibility of %q", selector),
		Check: func(s session.Session) (interface{}, bool, error) {
			_, visible, err := displayed(s, selector)
			if err != nil {
				return nil, false, err
			}
			return !visible, !visible, nil
		},
	}
}

// TextContains holds once the element text contains substr.
// The value is the full text.
func TextContains(selector, substr string) Condition {
	return Condition{
		Name: fmt.Sprintf("text %q to be present in %q", substr, selector),
		Check: func(s session.Session) (interface{}, bool, error) {
			el, ok, err := present(s, selector)
			if err != nil || !ok {
				return nil, false, err
			}
			text, err := el.Text()
			if err != nil {
				return nil, false, err
			}
			return text, strings.Contains(text, substr), nil
		},
	}
}

// URLContains holds once the current URL contains substr.
// The value is the URL.
func URLContains(substr string) Condition {
	return Condition{
		Name: fmt.Sprintf("url to contain %q", substr),
		Check: func(s session.Session) (interface{}, bool, error) {
			url, err := s.URL()
			if err != nil {
				return nil, false, err
			}
			return url, strings.Contains(url, substr), nil
		},
	}
}

// TitleContains holds once the document title contains substr.
// The value is the title.
func TitleContains(substr string) Condition {
	return Condition{
		Name: fmt.Sprintf("title to contain %q", substr),
		Check: func(s session.Session) (interface{}, bool, error) {
			title, err := s.Title()
			if err != nil {
				return nil, false, err
			}
			return title, strings.Contains(title, substr), nil
		},
	}
}

// AlertPresent holds once an alert is open. The value is the alert text.
// Failing to read the alert counts as no alert.
func AlertPresent() Condition {
	return Condition{
		Name: "alert to be present",
		Check: func(s session.Session) (interface{}, bool, error) {
			text, err := s.AlertText()
			if err != nil {
				return nil, false, nil
			}
			return text, true, nil
		},
	}
}

// PageLoaded holds once document.readyState is complete
func PageLoaded() Condition {
	return Condition{
		Name: "page to load",
		Check: func(s session.Session) (interface{}, bool, error) {
			state, err := s.ReadyState()
			if err != nil {
				return nil, false, err
			}
			return state, state == "complete", nil
		},
	}
}

// WindowCount holds once exactly n windows are open
func WindowCount(n int) Condition {
	return Condition{
		Name: fmt.Sprintf("%d windows to be open", n),
		Check: func(s session.Session) (interface{}, bool, error) {
			count, err := s.WindowCount()
			if err != nil {
				return nil, false, err
			}
			return count, count == n, nil
		},
	}
}

func present(s session.Session, selector string) (session.Element, bool, error) {
	el := s.Find(selector)
	count, err := el.Count()
	if err != nil {
		return nil, false, err
	}
	return el, count > 0, nil
}

// displayed reports whether the element is present and visible.
// An element that leaves the DOM between the count and the visibility
// read counts as not visible.
func displayed(s session.Session, selector string) (session.Element, bool, error) {
	el, ok, err := present(s, selector)
	if err != nil || !ok {
		return nil, false, err
	}
	visible, err := el.Visible()
	if err == nil {
		return el, visible, nil
	}
	_, ok, countErr := present(s, selector)
	if countErr == nil && !ok {
		return nil, false, nil
	}
	return nil, false, err
}
