package dynamic

import (
	"strings"

	"github.com/gravitational/trace"
	"github.com/jmptrader/robotest-web/e2e/runtime"
	"github.com/jmptrader/robotest-web/e2e/uimodel/defaults"
	"github.com/jmptrader/robotest-web/e2e/uimodel/utils"
	log "github.com/sirupsen/logrus"
)

const (
	addButton     = "button[onclick='addElement()']"
	deleteButtons = ".added-manually"
	elements      = "#elements"
)

// AddRemoveElementsPage is the ui model of the add/remove elements page
type AddRemoveElementsPage struct {
	t *runtime.TContext
}

// OpenAddRemove navigates to the add/remove elements page
func OpenAddRemove(t *runtime.TContext) (*AddRemoveElementsPage, error) {
	if err := utils.Open(t, defaults.AddRemoveURL); err != nil {
		return nil, trace.Wrap(err)
	}
	return &AddRemoveElementsPage{t: t}, nil
}

// IsDisplayed returns true if the page heading is shown
func (p *AddRemoveElementsPage) IsDisplayed() bool {
	heading, err := utils.Text(p.t, pageHeading)
	return err == nil && strings.Contains(heading, "Add/Remove Elements")
}

// Add clicks the add element button once
func (p *AddRemoveElementsPage) Add() error {
	return trace.Wrap(utils.Click(p.t, addButton), "failed to add element")
}

// AddN clicks the add element button n times
func (p *AddRemoveElementsPage) AddN(n int) error {
	for i := 0; i < n; i++ {
		if err := p.Add(); err != nil {
			return trace.Wrap(err)
		}
	}
	log.Infof("added %v elements", n)
	return nil
}

// Count returns the number of delete buttons
func (p *AddRemoveElementsPage) Count() int {
	utils.PauseForPageJs(p.t)
	return utils.Count(p.t.Session, deleteButtons)
}

// Delete clicks the index-th delete button
func (p *AddRemoveElementsPage) Delete(index int) error {
	return trace.Wrap(utils.ClickAt(p.t, deleteButtons, index), "failed to delete element")
}

// DeleteFirst clicks the first delete button
func (p *AddRemoveElementsPage) DeleteFirst() error {
	return p.Delete(0)
}

// DeleteLast clicks the last delete button
func (p *AddRemoveElementsPage) DeleteLast() error {
	count := utils.Count(p.t.Session, deleteButtons)
	if count == 0 {
		return trace.NotFound("no delete buttons available")
	}
	return p.Delete(count - 1)
}

// RemoveAll deletes elements until none are left
func (p *AddRemoveElementsPage) RemoveAll() error {
	for utils.Count(p.t.Session, deleteButtons) > 0 {
		if err := p.DeleteFirst(); err != nil {
			return trace.Wrap(err)
		}
	}
	return nil
}

// AddThenRemove adds added elements and deletes up to removed of them
func (p *AddRemoveElementsPage) AddThenRemove(added, removed int) error {
	if err := p.AddN(added); err != nil {
		return trace.Wrap(err)
	}
	for i := 0; i < removed && utils.Count(p.t.Session, deleteButtons) > 0; i++ {
		if err := p.DeleteFirst(); err != nil {
			return trace.Wrap(err)
		}
	}
	return nil
}

// IsAddDisplayed returns true if the add button is visible
func (p *AddRemoveElementsPage) IsAddDisplayed() bool {
	return utils.IsDisplayed(p.t.Session, addButton)
}

// AreDeleteButtonsVisible returns true if at least one delete button is shown
func (p *AddRemoveElementsPage) AreDeleteButtonsVisible() bool {
	return utils.IsDisplayedAt(p.t.Session, deleteButtons, 0)
}

// DeleteButtonText returns the label of the index-th delete button
func (p *AddRemoveElementsPage) DeleteButtonText(index int) string {
	if index < 0 || index >= utils.Count(p.t.Session, deleteButtons) {
		return ""
	}
	return utils.TextOf(p.t.Session.FindAll(deleteButtons).At(index))
}

// IsContainerPresent returns true if the elements container is shown
func (p *AddRemoveElementsPage) IsContainerPresent() bool {
	return utils.IsDisplayed(p.t.Session, elements)
}
