package session

import (
	"sync"

	"github.com/google/uuid"
	"github.com/gravitational/trace"
	log "github.com/sirupsen/logrus"

	web "github.com/sclevine/agouti"
)

// AgoutiLauncher launches sessions with agouti: either a local driver
// process per session, or a page on a remote WebDriver endpoint
type AgoutiLauncher struct {
	// WebDriverURL is the remote WebDriver endpoint. Empty starts a local driver.
	WebDriverURL string
	// StartTimeout is the driver start timeout in seconds
	StartTimeout int
	// Debug streams driver output to stdout
	Debug bool
}

// Launch starts a browser
func (l AgoutiLauncher) Launch(kind Kind, caps Capabilities) (Session, error) {
	options := []web.Option{
		web.Desired(web.Capabilities(caps.Desired(kind))),
	}
	if l.StartTimeout > 0 {
		options = append(options, web.Timeout(l.StartTimeout))
	}
	if l.Debug {
		options = append(options, web.Debug)
	}

	if l.WebDriverURL != "" {
		log.Debugf("using remote web driver at %v", l.WebDriverURL)
		page, err := web.NewPage(l.WebDriverURL, options...)
		if err != nil {
			return nil, trace.Wrap(err, "cannot connect to %v", l.WebDriverURL)
		}
		return newAgoutiSession(kind, caps, page, nil), nil
	}

	var driver *web.WebDriver
	switch kind.Browser() {
	case Firefox:
		driver = web.GeckoDriver(options...)
	case Edge:
		driver = web.EdgeDriver(options...)
	default:
		driver = web.ChromeDriver(options...)
	}
	if driver == nil {
		return nil, trace.Errorf("cannot create %v driver", kind)
	}
	if err := driver.Start(); err != nil {
		return nil, trace.Wrap(err, "cannot start %v driver", kind)
	}

	page, err := driver.NewPage()
	if err != nil {
		if errStop := driver.Stop(); errStop != nil {
			log.Errorf("failed to stop %v driver: %v", kind, errStop)
		}
		return nil, trace.Wrap(err)
	}
	return newAgoutiSession(kind, caps, page, driver), nil
}

type agoutiSession struct {
	id     string
	kind   Kind
	caps   Capabilities
	page   *web.Page
	driver *web.WebDriver

	closeOnce sync.Once
	closeErr  error
}

func newAgoutiSession(kind Kind, caps Capabilities, page *web.Page, driver *web.WebDriver) *agoutiSession {
	return &agoutiSession{
		id:     uuid.NewString(),
		kind:   kind,
		caps:   caps,
		page:   page,
		driver: driver,
	}
}

func (r *agoutiSession) ID() string                 { return r.id }
func (r *agoutiSession) Kind() Kind                 { return r.kind }
func (r *agoutiSession) Capabilities() Capabilities { return r.caps }

func (r *agoutiSession) Navigate(url string) error {
	return trace.Wrap(r.page.Navigate(url))
}

func (r *agoutiSession) URL() (string, error) {
	url, err := r.page.URL()
	return url, trace.Wrap(err)
}

func (r *agoutiSession) Title() (string, error) {
	title, err := r.page.Title()
	return title, trace.Wrap(err)
}

func (r *agoutiSession) ReadyState() (string, error) {
	var state string
	err := r.page.RunScript("return document.readyState;", nil, &state)
	return state, trace.Wrap(err)
}

func (r *agoutiSession) Find(selector string) Element {
	return &agoutiElement{
		page:      r.page,
		selection: r.page.First(selector),
		counter:   r.page.All(selector),
	}
}

func (r *agoutiSession) FindAll(selector string) Elements {
	return &agoutiElements{page: r.page, all: r.page.All(selector)}
}

func (r *agoutiSession) AlertText() (string, error) {
	text, err := r.page.PopupText()
	return text, trace.Wrap(err)
}

func (r *agoutiSession) AcceptAlert() error {
	return trace.Wrap(r.page.ConfirmPopup())
}

func (r *agoutiSession) DismissAlert() error {
	return trace.Wrap(r.page.CancelPopup())
}

func (r *agoutiSession) WindowCount() (int, error) {
	count, err := r.page.WindowCount()
	return count, trace.Wrap(err)
}

func (r *agoutiSession) NextWindow() error {
	return trace.Wrap(r.page.NextWindow())
}

func (r *agoutiSession) CloseWindow() error {
	return trace.Wrap(r.page.CloseWindow())
}

func (r *agoutiSession) SwitchToRootFrame() error {
	return trace.Wrap(r.page.SwitchToRootFrame())
}

func (r *agoutiSession) SwitchToParentFrame() error {
	return trace.Wrap(r.page.SwitchToParentFrame())
}

func (r *agoutiSession) ClearCookies() error {
	return trace.Wrap(r.page.ClearCookies())
}

func (r *agoutiSession) Screenshot() ([]byte, error) {
	data, err := r.page.Session().GetScreenshot()
	return data, trace.Wrap(err)
}

// Close destroys the page and stops the local driver, once
func (r *agoutiSession) Close() error {
	r.closeOnce.Do(func() {
		var errors []error
		errors = append(errors, r.page.Destroy())
		if r.driver != nil {
			errors = append(errors, r.driver.Stop())
		}
		r.closeErr = trace.NewAggregate(errors...)
	})
	return r.closeErr
}

type counter interface {
	Count() (int, error)
}

type agoutiElement struct {
	page      *web.Page
	selection *web.Selection
	counter   counter
}

func (r *agoutiElement) Count() (int, error) {
	count, err := r.counter.Count()
	return count, trace.Wrap(err)
}

func (r *agoutiElement) Visible() (bool, error) {
	visible, err := r.selection.Visible()
	return visible, trace.Wrap(err)
}

func (r *agoutiElement) Enabled() (bool, error) {
	enabled, err := r.selection.Enabled()
	return enabled, trace.Wrap(err)
}

func (r *agoutiElement) Selected() (bool, error) {
	selected, err := r.selection.Selected()
	return selected, trace.Wrap(err)
}

func (r *agoutiElement) Text() (string, error) {
	text, err := r.selection.Text()
	return text, trace.Wrap(err)
}

func (r *agoutiElement) Attribute(name string) (string, error) {
	value, err := r.selection.Attribute(name)
	return value, trace.Wrap(err)
}

func (r *agoutiElement) Click() error {
	return trace.Wrap(r.selection.Click())
}

func (r *agoutiElement) ContextClick() error {
	if err := r.selection.MouseToElement(); err != nil {
		return trace.Wrap(err)
	}
	return trace.Wrap(r.page.Click(web.SingleClick, web.RightButton))
}

func (r *agoutiElement) Hover() error {
	return trace.Wrap(r.selection.MouseToElement())
}

func (r *agoutiElement) DragTo(target Element) error {
	to, ok := target.(*agoutiElement)
	if !ok {
		return trace.BadParameter("cannot drag %v onto %T", r, target)
	}
	if err := r.selection.MouseToElement(); err != nil {
		return trace.Wrap(err)
	}
	if err := r.page.Click(web.HoldClick, web.LeftButton); err != nil {
		return trace.Wrap(err)
	}
	if err := to.selection.MouseToElement(); err != nil {
		return trace.Wrap(err)
	}
	return trace.Wrap(r.page.Click(web.ReleaseClick, web.LeftButton))
}

func (r *agoutiElement) Fill(text string) error {
	return trace.Wrap(r.selection.Fill(text))
}

func (r *agoutiElement) Clear() error {
	return trace.Wrap(r.selection.Clear())
}

func (r *agoutiElement) Check() error {
	return trace.Wrap(r.selection.Check())
}

func (r *agoutiElement) Uncheck() error {
	return trace.Wrap(r.selection.Uncheck())
}

func (r *agoutiElement) Select(text string) error {
	return trace.Wrap(r.selection.Select(text))
}

func (r *agoutiElement) UploadFile(path string) error {
	return trace.Wrap(r.selection.UploadFile(path))
}

func (r *agoutiElement) SwitchToFrame() error {
	return trace.Wrap(r.selection.SwitchToFrame())
}

func (r *agoutiElement) String() string {
	return r.selection.String()
}

type agoutiElements struct {
	page *web.Page
	all  *web.MultiSelection
}

func (r *agoutiElements) Count() (int, error) {
	count, err := r.all.Count()
	return count, trace.Wrap(err)
}

func (r *agoutiElements) At(index int) Element {
	selection := r.all.At(index)
	return &agoutiElement{page: r.page, selection: selection, counter: selection}
}

func (r *agoutiElements) String() string {
	return r.all.String()
}
