package forms

import (
	"github.com/gravitational/trace"
	"github.com/jmptrader/robotest-web/e2e/runtime"
	"github.com/jmptrader/robotest-web/e2e/uimodel/defaults"
	"github.com/jmptrader/robotest-web/e2e/uimodel/utils"
	log "github.com/sirupsen/logrus"
)

const (
	checkboxes    = "#checkboxes input[type='checkbox']"
	checkboxForm  = "#checkboxes"
	headingHeader = "h3"
)

// CheckboxesPage is the ui model of the checkboxes page
type CheckboxesPage struct {
	t *runtime.TContext
}

// OpenCheckboxes navigates to the checkboxes page
func OpenCheckboxes(t *runtime.TContext) (*CheckboxesPage, error) {
	if err := utils.Open(t, defaults.CheckboxesURL); err != nil {
		return nil, trace.Wrap(err)
	}
	return &CheckboxesPage{t: t}, nil
}

// IsDisplayed returns true if the heading and checkboxes are shown
func (p *CheckboxesPage) IsDisplayed() bool {
	s := p.t.Session
	return utils.IsDisplayed(s, headingHeader) &&
		utils.IsDisplayed(s, checkboxForm) &&
		p.Count() > 0
}

// Heading returns the page heading
func (p *CheckboxesPage) Heading() (string, error) {
	return utils.Text(p.t, headingHeader)
}

// Count returns the number of checkboxes
func (p *CheckboxesPage) Count() int {
	return utils.Count(p.t.Session, checkboxes)
}

// IsChecked returns true if the index-th checkbox is checked
func (p *CheckboxesPage) IsChecked(index int) bool {
	if index < 0 || index >= p.Count() {
		return false
	}
	checked, err := p.t.Session.FindAll(checkboxes).At(index).Selected()
	return err == nil && checked
}

// IsEnabled returns true if the index-th checkbox can be toggled
func (p *CheckboxesPage) IsEnabled(index int) bool {
	if index < 0 || index >= p.Count() {
		return false
	}
	enabled, err := p.t.Session.FindAll(checkboxes).At(index).Enabled()
	return err == nil && enabled
}

// Toggle flips the index-th checkbox
func (p *CheckboxesPage) Toggle(index int) error {
	count := p.Count()
	if index < 0 || index >= count {
		return trace.BadParameter("checkbox %v out of range, %v checkboxes", index, count)
	}
	checkbox := p.t.Session.FindAll(checkboxes).At(index)
	checked, err := checkbox.Selected()
	if err != nil {
		return trace.Wrap(err)
	}
	if checked {
		err = checkbox.Uncheck()
	} else {
		err = checkbox.Check()
	}
	if err != nil {
		return trace.Wrap(err, "failed to toggle checkbox %v", index)
	}
	log.Infof("toggled checkbox %v to %v", index, !checked)
	return nil
}

// ToggleAll flips every checkbox
func (p *CheckboxesPage) ToggleAll() error {
	for i := 0; i < p.Count(); i++ {
		if err := p.Toggle(i); err != nil {
			return trace.Wrap(err)
		}
	}
	return nil
}

// IsTogglingCorrectly flips every checkbox and verifies each changed state
func (p *CheckboxesPage) IsTogglingCorrectly() bool {
	count := p.Count()
	initial := make([]bool, count)
	for i := range initial {
		initial[i] = p.IsChecked(i)
	}
	if err := p.ToggleAll(); err != nil {
		log.Errorf("%v", trace.UserMessage(err))
		return false
	}
	for i := range initial {
		if p.IsChecked(i) == initial[i] {
			log.Errorf("checkbox %v did not toggle", i)
			return false
		}
	}
	return true
}
