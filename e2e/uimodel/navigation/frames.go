package navigation

import (
	"fmt"
	"strings"

	"github.com/gravitational/trace"
	"github.com/jmptrader/robotest-web/e2e/runtime"
	"github.com/jmptrader/robotest-web/e2e/uimodel/defaults"
	"github.com/jmptrader/robotest-web/e2e/uimodel/utils"
	log "github.com/sirupsen/logrus"
)

// Nested frame names
const (
	FrameTop    = "frame-top"
	FrameMiddle = "frame-middle"
	FrameLeft   = "frame-left"
	FrameRight  = "frame-right"
	FrameBottom = "frame-bottom"
)

const (
	nestedFramesLink = "a[href='/nested_frames']"
	frameBody        = "body"
)

// FramesPage is the ui model of the frames pages
type FramesPage struct {
	t *runtime.TContext
}

// OpenFrames navigates to the frames index page
func OpenFrames(t *runtime.TContext) (*FramesPage, error) {
	if err := utils.Open(t, defaults.FramesURL); err != nil {
		return nil, trace.Wrap(err)
	}
	return &FramesPage{t: t}, nil
}

// OpenNestedFrames navigates straight to the nested frames page
func OpenNestedFrames(t *runtime.TContext) (*FramesPage, error) {
	if err := utils.Open(t, defaults.NestedFramesURL); err != nil {
		return nil, trace.Wrap(err)
	}
	return &FramesPage{t: t}, nil
}

// IsDisplayed returns true if the heading reads Frames
func (p *FramesPage) IsDisplayed() bool {
	heading, err := utils.Text(p.t, pageHeading)
	return err == nil && heading == "Frames"
}

// ClickNestedFrames follows the nested frames link
func (p *FramesPage) ClickNestedFrames() error {
	if err := utils.Click(p.t, nestedFramesLink); err != nil {
		return trace.Wrap(err)
	}
	return trace.Wrap(p.t.Wait.ForURL(defaults.NestedFramesURL))
}

// SwitchTo descends into the named frames, starting from the top document
func (p *FramesPage) SwitchTo(names ...string) error {
	if err := p.t.Session.SwitchToRootFrame(); err != nil {
		return trace.Wrap(err)
	}
	for _, name := range names {
		frame, err := p.t.Wait.ForPresent(frameSelector(name))
		if err != nil {
			return trace.Wrap(err)
		}
		if err := frame.SwitchToFrame(); err != nil {
			return trace.Wrap(err, "failed to switch to frame %v", name)
		}
		log.Debugf("switched to frame %v", name)
	}
	return nil
}

// SwitchToRoot returns to the top document
func (p *FramesPage) SwitchToRoot() error {
	return trace.Wrap(p.t.Session.SwitchToRootFrame())
}

// FrameText returns the body text of the frame at path and switches back
// to the top document
func (p *FramesPage) FrameText(path ...string) (string, error) {
	if err := p.SwitchTo(path...); err != nil {
		return "", trace.Wrap(err)
	}
	text, textErr := utils.Text(p.t, frameBody)
	if err := p.SwitchToRoot(); err != nil {
		return "", trace.NewAggregate(textErr, err)
	}
	if textErr != nil {
		return "", trace.Wrap(textErr)
	}
	return strings.TrimSpace(text), nil
}

// FramePath returns the nesting of a named frame, top frames first
func FramePath(name string) []string {
	switch name {
	case FrameLeft, FrameMiddle, FrameRight:
		return []string{FrameTop, name}
	default:
		return []string{name}
	}
}

func frameSelector(name string) string {
	return fmt.Sprintf("frame[name='%v']", name)
}
