// Package screenshot saves browser screenshots for failure diagnostics.
// Capturing never fails the caller: errors are logged and an empty
// result is returned.
package screenshot

import (
	"fmt"
	"path/filepath"
	"regexp"
	"time"

	"github.com/gravitational/trace"
	"github.com/jmptrader/robotest-web/e2e/runtime/session"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// TimestampFormat is appended to every screenshot file name
const TimestampFormat = "2006-01-02_15-04-05"

// CaptureError describes a screenshot that could not be taken or saved
type CaptureError struct {
	Name string
	Err  error
}

func (e *CaptureError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("failed to capture screenshot: %v", trace.UserMessage(e.Err))
	}
	return fmt.Sprintf("failed to capture screenshot for %q: %v", e.Name, trace.UserMessage(e.Err))
}

func (e *CaptureError) Unwrap() error {
	return e.Err
}

// Capturer writes screenshots into a directory
type Capturer struct {
	fs  afero.Fs
	dir string
	// Clock returns the time used in file names
	Clock func() time.Time
}

// New returns a capturer writing into dir on fs.
// A nil fs means the OS filesystem.
func New(fs afero.Fs, dir string) *Capturer {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Capturer{fs: fs, dir: dir, Clock: time.Now}
}

// Dir returns the output directory
func (c *Capturer) Dir() string {
	return c.dir
}

// Capture saves a PNG named after name and the current time and returns
// its path. It returns an empty string if the screenshot could not be saved.
func (c *Capturer) Capture(s session.Session, name string) string {
	path, err := c.capture(s, name)
	if err != nil {
		log.WithError(&CaptureError{Name: name, Err: err}).Warn("screenshot skipped")
		return ""
	}
	log.Infof("screenshot captured: %v", path)
	return path
}

// CaptureInline returns the raw PNG bytes, nil on failure
func (c *Capturer) CaptureInline(s session.Session) []byte {
	if s == nil {
		log.WithError(&CaptureError{Err: trace.BadParameter("no session")}).Warn("screenshot skipped")
		return nil
	}
	data, err := s.Screenshot()
	if err != nil {
		log.WithError(&CaptureError{Err: err}).Warn("screenshot skipped")
		return nil
	}
	return data
}

func (c *Capturer) capture(s session.Session, name string) (string, error) {
	if s == nil {
		return "", trace.BadParameter("no session")
	}
	data, err := s.Screenshot()
	if err != nil {
		return "", trace.Wrap(err)
	}
	if err := c.fs.MkdirAll(c.dir, 0755); err != nil {
		return "", trace.ConvertSystemError(err)
	}
	path := filepath.Join(c.dir, FileName(name, c.Clock()))
	if err := afero.WriteFile(c.fs, path, data, 0644); err != nil {
		return "", trace.ConvertSystemError(err)
	}
	return path, nil
}

// FileName returns the screenshot file name for name taken at t
func FileName(name string, t time.Time) string {
	return fmt.Sprintf("%s_%s.png", sanitize(name), t.Format(TimestampFormat))
}

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

func sanitize(name string) string {
	name = unsafeChars.ReplaceAllString(name, "_")
	if name == "" || name == "." || name == ".." {
		return "screenshot"
	}
	return name
}
