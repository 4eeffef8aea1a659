// Package session owns browser sessions: how they are built for a browser
// kind, and which worker owns which session.
package session

import (
	"strings"
)

// WorkerKey identifies the execution unit that owns a session:
// a scenario id, a test name or any other caller-chosen label
type WorkerKey string

// Kind is a supported browser kind
type Kind string

const (
	Chrome          Kind = "chrome"
	Firefox         Kind = "firefox"
	Edge            Kind = "edge"
	ChromeHeadless  Kind = "chrome-headless"
	FirefoxHeadless Kind = "firefox-headless"

	// DefaultKind is used for unknown browser names
	DefaultKind = Chrome
)

var kindAliases = map[string]Kind{
	"chrome":            Chrome,
	"firefox":           Firefox,
	"edge":              Edge,
	"chrome-headless":   ChromeHeadless,
	"chromium-headless": ChromeHeadless,
	"firefox-headless":  FirefoxHeadless,
}

// ParseKind maps a browser name to a Kind, case-insensitively.
// Returns false if the name is not recognized.
func ParseKind(name string) (Kind, bool) {
	kind, ok := kindAliases[strings.ToLower(strings.TrimSpace(name))]
	return kind, ok
}

// Headless returns true for the dedicated headless kinds
func (k Kind) Headless() bool {
	return k == ChromeHeadless || k == FirefoxHeadless
}

// Browser returns the underlying browser for this kind
func (k Kind) Browser() Kind {
	switch k {
	case ChromeHeadless:
		return Chrome
	case FirefoxHeadless:
		return Firefox
	default:
		return k
	}
}

// Session is a handle to one live browser instance.
// A session is owned by exactly one worker.
type Session interface {
	// ID is the opaque session identifier
	ID() string
	// Kind is the browser kind the session was launched with
	Kind() Kind
	// Capabilities are the resolved launch capabilities
	Capabilities() Capabilities

	Navigate(url string) error
	URL() (string, error)
	Title() (string, error)
	// ReadyState returns document.readyState of the current document
	ReadyState() (string, error)

	// Find returns the first element matching the CSS selector.
	// The selector is re-evaluated on every call on the element.
	Find(selector string) Element
	// FindAll returns all elements matching the CSS selector
	FindAll(selector string) Elements

	AlertText() (string, error)
	AcceptAlert() error
	DismissAlert() error

	WindowCount() (int, error)
	NextWindow() error
	CloseWindow() error
	SwitchToRootFrame() error
	SwitchToParentFrame() error

	ClearCookies() error
	// Screenshot returns the PNG encoded contents of the current window
	Screenshot() ([]byte, error)
	// Close releases the browser. Subsequent calls are no-ops.
	Close() error
}

// Element is a lazily resolved reference to a page element
type Element interface {
	// Count returns the number of matching elements
	Count() (int, error)
	Visible() (bool, error)
	Enabled() (bool, error)
	Selected() (bool, error)
	Text() (string, error)
	Attribute(name string) (string, error)

	Click() error
	ContextClick() error
	Hover() error
	// DragTo drags this element onto target with the mouse
	DragTo(target Element) error
	Fill(text string) error
	Clear() error
	Check() error
	Uncheck() error
	Select(text string) error
	UploadFile(path string) error
	SwitchToFrame() error

	String() string
}

// Elements is a set of matching elements
type Elements interface {
	Count() (int, error)
	At(index int) Element
	String() string
}
