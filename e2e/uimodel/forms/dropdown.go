package forms

import (
	"github.com/gravitational/trace"
	"github.com/jmptrader/robotest-web/e2e/runtime"
	"github.com/jmptrader/robotest-web/e2e/uimodel/defaults"
	"github.com/jmptrader/robotest-web/e2e/uimodel/utils"
	log "github.com/sirupsen/logrus"
)

const (
	dropdown        = "#dropdown"
	dropdownOptions = "#dropdown option"
	selectedOption  = "#dropdown option:checked"

	// PlaceholderOption is shown before anything is selected
	PlaceholderOption = "Please select an option"
)

// DropdownPage is the ui model of the dropdown page
type DropdownPage struct {
	t *runtime.TContext
}

// OpenDropdown navigates to the dropdown page
func OpenDropdown(t *runtime.TContext) (*DropdownPage, error) {
	if err := utils.Open(t, defaults.DropdownURL); err != nil {
		return nil, trace.Wrap(err)
	}
	return &DropdownPage{t: t}, nil
}

// IsDisplayed returns true if the heading and dropdown are shown
func (p *DropdownPage) IsDisplayed() bool {
	return utils.IsDisplayed(p.t.Session, headingHeader) && utils.IsDisplayed(p.t.Session, dropdown)
}

// IsEnabled returns true if the dropdown accepts input
func (p *DropdownPage) IsEnabled() bool {
	return utils.IsEnabled(p.t.Session, dropdown)
}

// Select picks the option with the given visible text
func (p *DropdownPage) Select(text string) error {
	el, err := p.t.Wait.ForClickable(dropdown)
	if err != nil {
		return trace.Wrap(err)
	}
	if err := el.Select(text); err != nil {
		return trace.Wrap(err, "failed to select %q", text)
	}
	log.Infof("selected %q", text)
	return nil
}

// Selected returns the text of the selected option
func (p *DropdownPage) Selected() string {
	return utils.TextOf(p.t.Session.Find(selectedOption))
}

// Options returns the texts of all options in order
func (p *DropdownPage) Options() []string {
	all := p.t.Session.FindAll(dropdownOptions)
	count := utils.Count(p.t.Session, dropdownOptions)
	options := make([]string, 0, count)
	for i := 0; i < count; i++ {
		options = append(options, utils.TextOf(all.At(i)))
	}
	return options
}

// IsOptionAvailable returns true if an option has the given text
func (p *DropdownPage) IsOptionAvailable(text string) bool {
	for _, option := range p.Options() {
		if option == text {
			return true
		}
	}
	return false
}

// AreAllOptionsSelectable selects each option but the placeholder in turn
func (p *DropdownPage) AreAllOptionsSelectable() bool {
	for _, option := range p.Options() {
		if option == PlaceholderOption {
			continue
		}
		if err := p.Select(option); err != nil {
			log.Errorf("option %q is not selectable: %v", option, trace.UserMessage(err))
			return false
		}
	}
	return true
}
