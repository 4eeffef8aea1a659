// Package status models the pages that exercise HTTP status codes and redirects
package status

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/gravitational/trace"
	"github.com/jmptrader/robotest-web/e2e/runtime"
	"github.com/jmptrader/robotest-web/e2e/uimodel/defaults"
	"github.com/jmptrader/robotest-web/e2e/uimodel/utils"
	log "github.com/sirupsen/logrus"
)

const (
	pageHeading   = "h3"
	statusMessage = "#content p"
)

// Codes are the status codes linked from the status codes page
var Codes = []int{200, 301, 404, 500}

var returnedCode = regexp.MustCompile(`returned a (\d{3}) status code`)

// StatusCodesPage is the ui model of the status codes page and the
// pages it links to
type StatusCodesPage struct {
	t *runtime.TContext
}

// OpenStatusCodes navigates to the status codes page
func OpenStatusCodes(t *runtime.TContext) (*StatusCodesPage, error) {
	if err := utils.Open(t, defaults.StatusCodesURL); err != nil {
		return nil, trace.Wrap(err)
	}
	return &StatusCodesPage{t: t}, nil
}

// IsDisplayed returns true if the page heading is shown
func (p *StatusCodesPage) IsDisplayed() bool {
	heading, err := utils.Text(p.t, pageHeading)
	return err == nil && strings.Contains(heading, "Status Codes")
}

// AreLinksVisible returns true if every status code link is shown
func (p *StatusCodesPage) AreLinksVisible() bool {
	for _, code := range Codes {
		if !utils.IsDisplayed(p.t.Session, codeLink(code)) {
			return false
		}
	}
	return true
}

// LinkCount returns the number of status code links
func (p *StatusCodesPage) LinkCount() int {
	count := 0
	for _, code := range Codes {
		if utils.IsFound(p.t.Session, codeLink(code)) {
			count++
		}
	}
	return count
}

// Follow clicks the link of code and waits for its page
func (p *StatusCodesPage) Follow(code int) error {
	if !isLinked(code) {
		return trace.BadParameter("unsupported status code %v, expected one of %v", code, Codes)
	}
	if err := utils.Click(p.t, codeLink(code)); err != nil {
		return trace.Wrap(err)
	}
	if err := p.t.Wait.ForURL(fmt.Sprintf("%v/%d", defaults.StatusCodesURL, code)); err != nil {
		return trace.Wrap(err)
	}
	log.Debugf("followed status code %v", code)
	return nil
}

// Message returns the explanation on a status code page
func (p *StatusCodesPage) Message() (string, error) {
	return utils.Text(p.t, statusMessage)
}

// ReturnedCode reads the code a status code page says it returned
func (p *StatusCodesPage) ReturnedCode() (int, error) {
	message, err := p.Message()
	if err != nil {
		return 0, trace.Wrap(err)
	}
	match := returnedCode.FindStringSubmatch(message)
	if match == nil {
		return 0, trace.NotFound("no status code in %q", message)
	}
	code, err := strconv.Atoi(match[1])
	return code, trace.Wrap(err)
}

// Verify follows the link of code, checks the page reports it and returns
// to the index
func (p *StatusCodesPage) Verify(code int) error {
	if err := p.Follow(code); err != nil {
		return trace.Wrap(err)
	}
	got, err := p.ReturnedCode()
	if err != nil {
		return trace.Wrap(err)
	}
	if got != code {
		return trace.CompareFailed("page for %v reports %v", code, got)
	}
	return trace.Wrap(utils.Open(p.t, defaults.StatusCodesURL))
}

func isLinked(code int) bool {
	for _, c := range Codes {
		if c == code {
			return true
		}
	}
	return false
}

func codeLink(code int) string {
	return fmt.Sprintf("a[href='status_codes/%d']", code)
}
