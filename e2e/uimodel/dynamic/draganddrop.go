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
	columnA       = "#column-a"
	columnB       = "#column-b"
	columnAHeader = "#column-a header"
	columnBHeader = "#column-b header"
)

// DragAndDropPage is the ui model of the drag and drop page
type DragAndDropPage struct {
	t *runtime.TContext
}

// OpenDragAndDrop navigates to the drag and drop page
func OpenDragAndDrop(t *runtime.TContext) (*DragAndDropPage, error) {
	if err := utils.Open(t, defaults.DragAndDropURL); err != nil {
		return nil, trace.Wrap(err)
	}
	return &DragAndDropPage{t: t}, nil
}

// IsDisplayed returns true if the page heading is shown
func (p *DragAndDropPage) IsDisplayed() bool {
	heading, err := utils.Text(p.t, pageHeading)
	return err == nil && strings.Contains(heading, "Drag and Drop")
}

// DragAToB drops the left column onto the right one
func (p *DragAndDropPage) DragAToB() error {
	return trace.Wrap(p.drag(columnA, columnB), "failed to drag from A to B")
}

// DragBToA drops the right column onto the left one
func (p *DragAndDropPage) DragBToA() error {
	return trace.Wrap(p.drag(columnB, columnA), "failed to drag from B to A")
}

func (p *DragAndDropPage) drag(from, to string) error {
	source, err := p.t.Wait.ForVisible(from)
	if err != nil {
		return trace.Wrap(err)
	}
	target, err := p.t.Wait.ForVisible(to)
	if err != nil {
		return trace.Wrap(err)
	}
	if err := source.DragTo(target); err != nil {
		return trace.Wrap(err)
	}
	log.Debugf("dragged %v onto %v", from, to)
	return nil
}

// ColumnAText returns the header of the left column, "" if unreadable
func (p *DragAndDropPage) ColumnAText() string {
	return strings.TrimSpace(utils.TextOf(p.t.Session.Find(columnAHeader)))
}

// ColumnBText returns the header of the right column, "" if unreadable
func (p *DragAndDropPage) ColumnBText() string {
	return strings.TrimSpace(utils.TextOf(p.t.Session.Find(columnBHeader)))
}

// AreColumnsVisible returns true if both columns are shown
func (p *DragAndDropPage) AreColumnsVisible() bool {
	return utils.IsDisplayed(p.t.Session, columnA) && utils.IsDisplayed(p.t.Session, columnB)
}

// IsDraggable returns true if the column with the given header letter
// carries draggable="true"
func (p *DragAndDropPage) IsDraggable(column string) bool {
	selector := columnA
	if strings.EqualFold(column, "b") {
		selector = columnB
	}
	draggable, err := p.t.Session.Find(selector).Attribute("draggable")
	return err == nil && strings.EqualFold(draggable, "true")
}

// WaitForHeaders waits until the columns read a and b, left to right
func (p *DragAndDropPage) WaitForHeaders(a, b string) error {
	if err := p.t.Wait.ForText(columnAHeader, a); err != nil {
		return trace.Wrap(err)
	}
	return trace.Wrap(p.t.Wait.ForText(columnBHeader, b))
}

// IsSwapped returns true if the columns read B then A
func (p *DragAndDropPage) IsSwapped() bool {
	return p.ColumnAText() == "B" && p.ColumnBText() == "A"
}

// Reset drags the columns back if they are swapped
func (p *DragAndDropPage) Reset() error {
	if !p.IsSwapped() {
		return nil
	}
	if err := p.DragAToB(); err != nil {
		return trace.Wrap(err)
	}
	return p.WaitForHeaders("A", "B")
}
