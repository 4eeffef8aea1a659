package wait

import (
	"time"

	"github.com/gravitational/trace"
	"github.com/jmptrader/robotest-web/e2e/runtime/session"
)

// ForVisible waits for the element to be visible and returns it
func (w *Waiter) ForVisible(selector string) (session.Element, error) {
	return w.element(Visible(selector))
}

// ForClickable waits for the element to be clickable and returns it
func (w *Waiter) ForClickable(selector string) (session.Element, error) {
	return w.element(Clickable(selector))
}

// ForPresent waits for the element to be in the DOM and returns it
func (w *Waiter) ForPresent(selector string) (session.Element, error) {
	return w.element(Present(selector))
}

// ForAllPresent waits for at least one element and returns all matches
func (w *Waiter) ForAllPresent(selector string) (session.Elements, error) {
	result, err := w.Until(AllPresent(selector))
	if err != nil {
		return nil, err
	}
	return result.Value.(session.Elements), nil
}

// ForInvisible waits for the element to disappear
func (w *Waiter) ForInvisible(selector string) error {
	_, err := w.Until(InvisibleOrAbsent(selector))
	return err
}

// ForText waits for the element text to contain text
func (w *Waiter) ForText(selector, text string) error {
	_, err := w.Until(TextContains(selector, text))
	return err
}

// ForURL waits for the URL to contain fragment
func (w *Waiter) ForURL(fragment string) error {
	_, err := w.Until(URLContains(fragment))
	return err
}

// ForTitle waits for the title to contain title
func (w *Waiter) ForTitle(title string) error {
	_, err := w.Until(TitleContains(title))
	return err
}

// ForAlert waits for an alert and returns its text
func (w *Waiter) ForAlert() (string, error) {
	result, err := w.Until(AlertPresent())
	if err != nil {
		return "", err
	}
	return result.Value.(string), nil
}

// ForPageLoad waits for the document to finish loading
func (w *Waiter) ForPageLoad() error {
	_, err := w.Until(PageLoaded())
	return err
}

// ForWindows waits for exactly n windows, giving up after timeout
func (w *Waiter) ForWindows(n int, timeout time.Duration) error {
	_, err := w.WaitUntil(WindowCount(n), timeout)
	return err
}

func (w *Waiter) element(cond Condition) (session.Element, error) {
	result, err := w.Until(cond)
	if err != nil {
		return nil, err
	}
	el, ok := result.Value.(session.Element)
	if !ok {
		return nil, trace.BadParameter("%v produced %T, not an element", cond.Name, result.Value)
	}
	return el, nil
}
