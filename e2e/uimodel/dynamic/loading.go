package dynamic

import (
	"fmt"
	"time"

	"github.com/gravitational/trace"
	"github.com/jmptrader/robotest-web/e2e/runtime"
	"github.com/jmptrader/robotest-web/e2e/uimodel/defaults"
	"github.com/jmptrader/robotest-web/e2e/uimodel/utils"
	log "github.com/sirupsen/logrus"
)

const (
	startButton      = "#start button"
	loadingIndicator = "#loading"
	hiddenContent    = "#finish"
	pageHeading      = "h3"
	pageDescription  = "div.example h4"
)

// HelloWorld is the text revealed by both examples
const HelloWorld = "Hello World!"

// DynamicLoadingPage is the ui model of the dynamic loading examples.
// Example 1 reveals a hidden element, example 2 renders one after the fact.
type DynamicLoadingPage struct {
	t       *runtime.TContext
	example int
}

// OpenExample navigates to example 1 or 2
func OpenExample(t *runtime.TContext, example int) (*DynamicLoadingPage, error) {
	if example != 1 && example != 2 {
		return nil, trace.BadParameter("unknown dynamic loading example %v", example)
	}
	if err := utils.Open(t, fmt.Sprintf("%v/%v", defaults.DynamicLoadingURL, example)); err != nil {
		return nil, trace.Wrap(err)
	}
	return &DynamicLoadingPage{t: t, example: example}, nil
}

// Example returns the example number
func (p *DynamicLoadingPage) Example() int {
	return p.example
}

// Start clicks the start button
func (p *DynamicLoadingPage) Start() error {
	log.Infof("starting example %v", p.example)
	return trace.Wrap(utils.Click(p.t, startButton))
}

// WaitForLoading waits for the loading indicator to come and go
func (p *DynamicLoadingPage) WaitForLoading() error {
	if _, err := p.t.Wait.ForVisible(loadingIndicator); err != nil {
		return trace.Wrap(err, "loading indicator did not appear")
	}
	if err := p.t.Wait.ForInvisible(loadingIndicator); err != nil {
		return trace.Wrap(err, "loading did not complete")
	}
	log.Infof("loading completed")
	return nil
}

// WaitForContent waits for the hidden content to be revealed
func (p *DynamicLoadingPage) WaitForContent() error {
	_, err := p.t.Wait.ForVisible(hiddenContent)
	return trace.Wrap(err)
}

// ContentText waits for the revealed content and returns it
func (p *DynamicLoadingPage) ContentText() (string, error) {
	return utils.Text(p.t, hiddenContent)
}

// Heading returns the page heading
func (p *DynamicLoadingPage) Heading() (string, error) {
	return utils.Text(p.t, pageHeading)
}

// Description returns the example description
func (p *DynamicLoadingPage) Description() (string, error) {
	return utils.Text(p.t, pageDescription)
}

// IsDisplayed returns true if the heading and start button are visible
func (p *DynamicLoadingPage) IsDisplayed() bool {
	return utils.IsDisplayed(p.t.Session, pageHeading) && p.IsStartDisplayed()
}

// IsStartDisplayed returns true if the start button is visible
func (p *DynamicLoadingPage) IsStartDisplayed() bool {
	return utils.IsDisplayed(p.t.Session, startButton)
}

// IsStartEnabled returns true if the start button can be clicked
func (p *DynamicLoadingPage) IsStartEnabled() bool {
	return utils.IsEnabled(p.t.Session, startButton)
}

// IsLoadingDisplayed returns true while the loading indicator is visible
func (p *DynamicLoadingPage) IsLoadingDisplayed() bool {
	return utils.IsDisplayed(p.t.Session, loadingIndicator)
}

// IsContentDisplayed returns true once the content is visible
func (p *DynamicLoadingPage) IsContentDisplayed() bool {
	return utils.IsDisplayed(p.t.Session, hiddenContent)
}

// IsLoadingSequenceCorrect runs the example and checks each step:
// start visible and content hidden, then loading, then content revealed
func (p *DynamicLoadingPage) IsLoadingSequenceCorrect() bool {
	if !p.IsStartDisplayed() || p.IsContentDisplayed() {
		log.Errorf("initial state incorrect")
		return false
	}
	if err := p.Start(); err != nil {
		log.Errorf("failed to start: %v", trace.UserMessage(err))
		return false
	}
	if err := p.WaitForLoading(); err != nil {
		log.Errorf("%v", trace.UserMessage(err))
		return false
	}
	if !p.IsContentDisplayed() {
		log.Errorf("content was not revealed after loading")
		return false
	}
	return true
}

// MeasureLoadingTime starts the example and returns the time until the
// content is revealed
func (p *DynamicLoadingPage) MeasureLoadingTime() (time.Duration, error) {
	elapsed, err := utils.Elapsed(func() error {
		if err := p.Start(); err != nil {
			return trace.Wrap(err)
		}
		if err := p.WaitForLoading(); err != nil {
			return trace.Wrap(err)
		}
		return p.WaitForContent()
	})
	if err != nil {
		return 0, trace.Wrap(err)
	}
	log.Infof("loading took %v", elapsed)
	return elapsed, nil
}
