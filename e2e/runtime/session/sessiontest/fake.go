// Package sessiontest provides in-memory sessions for tests that need a
// browser but cannot start one
package sessiontest

import (
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/gravitational/trace"
	"github.com/jmptrader/robotest-web/e2e/runtime/session"
)

// ErrClosed is returned by every operation on a closed session
var ErrClosed = trace.ConnectionProblem(nil, "session is closed")

var sessionIDs int64

// Session is a scriptable session. Element state is keyed by CSS selector.
type Session struct {
	mu       sync.Mutex
	id       string
	kind     session.Kind
	caps     session.Capabilities
	elements map[string]*Node
	url      string
	title    string
	ready    string
	alert    *string
	windows  int
	image    []byte
	closed   bool

	// Visits lists every URL navigated to
	Visits []string
	// Clicks lists the selectors clicked, in order
	Clicks []string
	// CloseCount is the number of times Close was called
	CloseCount int32
	// CloseErr is returned from Close
	CloseErr error
	// OnClick is invoked after an element is clicked
	OnClick func(s *Session, selector string)
	// Hovers lists the selectors hovered over, in order
	Hovers []string
	// OnHover is invoked after the mouse is moved over an element.
	// index is -1 unless the element came from FindAll.
	OnHover func(s *Session, selector string, index int)
	// Drags lists "source -> target" for every drag and drop
	Drags []string
	// OnDrag is invoked after source is dropped onto target
	OnDrag func(s *Session, source, target string)
}

// Node is the state of one element
type Node struct {
	Count    int
	Visible  bool
	Enabled  bool
	Selected bool
	Text     string
	Attrs    map[string]string
	// Err is returned from every query on this node
	Err error
	// Items are the individual elements for FindAll
	Items []*Node
}

// New returns an open session with a blank page
func New(kind session.Kind, caps session.Capabilities) *Session {
	return &Session{
		id:       fmt.Sprintf("fake-%d", atomic.AddInt64(&sessionIDs, 1)),
		kind:     kind,
		caps:     caps,
		elements: make(map[string]*Node),
		ready:    "complete",
		windows:  1,
		image:    []byte("\x89PNG\r\n\x1a\nfake"),
	}
}

// Put adds or replaces an element. A zero Count is treated as 1.
func (s *Session) Put(selector string, node Node) *Node {
	s.mu.Lock()
	defer s.mu.Unlock()
	if node.Count == 0 && len(node.Items) == 0 {
		node.Count = 1
	}
	if len(node.Items) > 0 {
		node.Count = len(node.Items)
	}
	n := node
	s.elements[selector] = &n
	return &n
}

// Remove detaches an element from the page
func (s *Session) Remove(selector string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.elements, selector)
}

// Update mutates an element under the session lock
func (s *Session) Update(selector string, fn func(n *Node)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.elements[selector]
	if !ok {
		n = &Node{Count: 1}
		s.elements[selector] = n
	}
	fn(n)
}

// SetAlert opens an alert with text, nil dismisses it
func (s *Session) SetAlert(text *string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.alert = text
}

// SetTitle sets the document title
func (s *Session) SetTitle(title string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.title = title
}

// SetURL sets the current URL without recording a visit
func (s *Session) SetURL(url string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.url = url
}

// SetReadyState sets document.readyState
func (s *Session) SetReadyState(state string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ready = state
}

// SetWindows sets the number of open windows
func (s *Session) SetWindows(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.windows = n
}

// Closed returns true once Close has been called
func (s *Session) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

func (s *Session) ID() string                         { return s.id }
func (s *Session) Kind() session.Kind                 { return s.kind }
func (s *Session) Capabilities() session.Capabilities { return s.caps }

func (s *Session) Navigate(url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	s.url = url
	s.Visits = append(s.Visits, url)
	return nil
}

func (s *Session) URL() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return "", ErrClosed
	}
	return s.url, nil
}

func (s *Session) Title() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return "", ErrClosed
	}
	return s.title, nil
}

func (s *Session) ReadyState() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return "", ErrClosed
	}
	return s.ready, nil
}

func (s *Session) Find(selector string) session.Element {
	return &Element{session: s, selector: selector, index: -1}
}

func (s *Session) FindAll(selector string) session.Elements {
	return &Elements{session: s, selector: selector}
}

func (s *Session) AlertText() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return "", ErrClosed
	}
	if s.alert == nil {
		return "", trace.NotFound("no alert open")
	}
	return *s.alert, nil
}

func (s *Session) AcceptAlert() error {
	return s.closeAlert()
}

func (s *Session) DismissAlert() error {
	return s.closeAlert()
}

func (s *Session) closeAlert() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	if s.alert == nil {
		return trace.NotFound("no alert open")
	}
	s.alert = nil
	return nil
}

func (s *Session) WindowCount() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return 0, ErrClosed
	}
	return s.windows, nil
}

func (s *Session) NextWindow() error          { return s.check() }
func (s *Session) SwitchToRootFrame() error   { return s.check() }
func (s *Session) SwitchToParentFrame() error { return s.check() }
func (s *Session) ClearCookies() error        { return s.check() }

func (s *Session) CloseWindow() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	if s.windows > 0 {
		s.windows--
	}
	return nil
}

func (s *Session) Screenshot() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrClosed
	}
	return s.image, nil
}

func (s *Session) Close() error {
	atomic.AddInt32(&s.CloseCount, 1)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return s.CloseErr
}

func (s *Session) check() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	return nil
}

// node returns the element state; nil if absent
func (s *Session) node(selector string, index int) (*Node, error) {
	if s.closed {
		return nil, ErrClosed
	}
	n, ok := s.elements[selector]
	if !ok {
		return nil, nil
	}
	if n.Err != nil {
		return nil, n.Err
	}
	if index < 0 {
		if len(n.Items) > 0 {
			return n.Items[0], nil
		}
		return n, nil
	}
	if index >= len(n.Items) {
		return nil, nil
	}
	return n.Items[index], nil
}

// Element is a fake element reference
type Element struct {
	session  *Session
	selector string
	index    int
}

func (e *Element) String() string {
	if e.index >= 0 {
		return fmt.Sprintf("selection 'CSS: %s [%d]'", e.selector, e.index)
	}
	return fmt.Sprintf("selection 'CSS: %s'", e.selector)
}

func (e *Element) query(fn func(n *Node) error) error {
	e.session.mu.Lock()
	defer e.session.mu.Unlock()
	n, err := e.session.node(e.selector, e.index)
	if err != nil {
		return err
	}
	if n == nil {
		return trace.NotFound("failed to select element from %v: element not found", e)
	}
	return fn(n)
}

func (e *Element) Count() (int, error) {
	e.session.mu.Lock()
	defer e.session.mu.Unlock()
	n, err := e.session.node(e.selector, e.index)
	if err != nil {
		return 0, err
	}
	if n == nil {
		return 0, nil
	}
	if e.index >= 0 {
		return 1, nil
	}
	return e.session.elements[e.selector].Count, nil
}

func (e *Element) Visible() (visible bool, err error) {
	err = e.query(func(n *Node) error { visible = n.Visible; return nil })
	return visible, err
}

func (e *Element) Enabled() (enabled bool, err error) {
	err = e.query(func(n *Node) error { enabled = n.Enabled; return nil })
	return enabled, err
}

func (e *Element) Selected() (selected bool, err error) {
	err = e.query(func(n *Node) error { selected = n.Selected; return nil })
	return selected, err
}

func (e *Element) Text() (text string, err error) {
	err = e.query(func(n *Node) error { text = n.Text; return nil })
	return text, err
}

func (e *Element) Attribute(name string) (value string, err error) {
	err = e.query(func(n *Node) error { value = n.Attrs[name]; return nil })
	return value, err
}

func (e *Element) Click() error {
	err := e.query(func(n *Node) error {
		if !n.Visible || !n.Enabled {
			return trace.BadParameter("element %v is not interactable", e)
		}
		e.session.Clicks = append(e.session.Clicks, e.selector)
		return nil
	})
	if err == nil && e.session.OnClick != nil {
		e.session.OnClick(e.session, e.selector)
	}
	return err
}

func (e *Element) ContextClick() error {
	return e.Click()
}

func (e *Element) Hover() error {
	err := e.query(func(n *Node) error {
		if !n.Visible {
			return trace.BadParameter("element %v is not visible", e)
		}
		e.session.Hovers = append(e.session.Hovers, e.selector)
		return nil
	})
	if err == nil && e.session.OnHover != nil {
		e.session.OnHover(e.session, e.selector, e.index)
	}
	return err
}

func (e *Element) DragTo(target session.Element) error {
	to, ok := target.(*Element)
	if !ok || to.session != e.session {
		return trace.BadParameter("cannot drag %v onto %v", e, target)
	}
	visible, err := to.Visible()
	if err != nil {
		return err
	}
	if !visible {
		return trace.BadParameter("drop target %v is not visible", to)
	}
	err = e.query(func(n *Node) error {
		if !n.Visible {
			return trace.BadParameter("element %v is not visible", e)
		}
		e.session.Drags = append(e.session.Drags, e.selector+" -> "+to.selector)
		return nil
	})
	if err == nil && e.session.OnDrag != nil {
		e.session.OnDrag(e.session, e.selector, to.selector)
	}
	return err
}

func (e *Element) Fill(text string) error {
	return e.query(func(n *Node) error {
		if n.Attrs == nil {
			n.Attrs = make(map[string]string)
		}
		n.Attrs["value"] = n.Attrs["value"] + text
		return nil
	})
}

func (e *Element) Clear() error {
	return e.query(func(n *Node) error {
		if n.Attrs != nil {
			delete(n.Attrs, "value")
		}
		return nil
	})
}

func (e *Element) Check() error {
	return e.query(func(n *Node) error { n.Selected = true; return nil })
}

func (e *Element) Uncheck() error {
	return e.query(func(n *Node) error { n.Selected = false; return nil })
}

func (e *Element) Select(text string) error {
	return e.query(func(n *Node) error {
		if !strings.Contains(n.Text, text) {
			return trace.NotFound("no option %q in %v", text, e)
		}
		if n.Attrs == nil {
			n.Attrs = make(map[string]string)
		}
		n.Attrs["selected"] = text
		return nil
	})
}

func (e *Element) UploadFile(path string) error {
	return e.query(func(n *Node) error {
		if n.Attrs == nil {
			n.Attrs = make(map[string]string)
		}
		n.Attrs["value"] = path
		return nil
	})
}

func (e *Element) SwitchToFrame() error {
	return e.query(func(n *Node) error { return nil })
}

// Elements is a fake multi-element reference
type Elements struct {
	session  *Session
	selector string
}

func (e *Elements) Count() (int, error) {
	return e.session.Find(e.selector).Count()
}

func (e *Elements) At(index int) session.Element {
	return &Element{session: e.session, selector: e.selector, index: index}
}

func (e *Elements) String() string {
	return fmt.Sprintf("selection 'CSS: %s'", e.selector)
}

// Launcher hands out fake sessions
type Launcher struct {
	mu sync.Mutex
	// Err fails every launch
	Err error
	// Launched are all sessions created so far
	Launched []*Session
	// Setup is applied to every new session
	Setup func(s *Session)
}

// Launch returns a new fake session
func (l *Launcher) Launch(kind session.Kind, caps session.Capabilities) (session.Session, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.Err != nil {
		return nil, l.Err
	}
	s := New(kind, caps)
	if l.Setup != nil {
		l.Setup(s)
	}
	l.Launched = append(l.Launched, s)
	return s, nil
}

// Last returns the most recently launched session
func (l *Launcher) Last() *Session {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.Launched) == 0 {
		return nil
	}
	return l.Launched[len(l.Launched)-1]
}
