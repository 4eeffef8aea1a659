package navigation_test

import (
	"github.com/jmptrader/robotest-web/e2e/runtime"
	"github.com/jmptrader/robotest-web/e2e/runtime/session/sessiontest"
	"github.com/jmptrader/robotest-web/e2e/runtime/wait"
	"github.com/jmptrader/robotest-web/e2e/uimodel/defaults"
	. "github.com/jmptrader/robotest-web/e2e/uimodel/navigation"
	"github.com/jmptrader/robotest-web/e2e/uimodel/uimodeltest"

	"github.com/gravitational/trace"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/ginkgo/extensions/table"
	. "github.com/onsi/gomega"
)

var _ = Describe("WindowsPage", func() {
	var (
		browser *sessiontest.Session
		page    *WindowsPage
	)

	BeforeEach(func() {
		var tcontext *runtime.TContext
		tcontext, browser = uimodeltest.NewContext()
		browser.Put("h3", uimodeltest.Visible("Opening a new window"))
		browser.Put("a[href='/windows/new']", uimodeltest.Visible("Click Here"))
		browser.OnClick = func(s *sessiontest.Session, selector string) {
			s.SetWindows(2)
			s.SetTitle("New Window")
		}

		var err error
		page, err = OpenWindows(tcontext)
		Expect(err).NotTo(HaveOccurred())
	})

	It("opens, checks and closes a new window", func() {
		Expect(page.IsDisplayed()).To(BeTrue())
		Expect(page.IsNewWindowOpened()).To(BeFalse())

		Expect(page.OpenNewWindow()).To(Succeed())
		Expect(page.WindowCount()).To(Equal(2))
		Expect(page.IsNewWindowContentCorrect()).To(BeTrue())

		Expect(page.CloseNewWindow()).To(Succeed())
		Expect(page.WindowCount()).To(Equal(1))
	})

	It("recognises the new window by its heading alone", func() {
		browser.OnClick = func(s *sessiontest.Session, selector string) {
			s.SetWindows(2)
			s.SetTitle("")
			s.Put("h3", uimodeltest.Visible("New Window"))
		}
		Expect(page.OpenNewWindow()).To(Succeed())
		Expect(page.IsNewWindowContentCorrect()).To(BeTrue())
	})

	It("rejects a new window without title or heading", func() {
		browser.OnClick = func(s *sessiontest.Session, selector string) {
			s.SetWindows(2)
			s.SetTitle("Other")
			s.Remove("h3")
		}
		Expect(page.OpenNewWindow()).To(Succeed())
		Expect(page.IsNewWindowContentCorrect()).To(BeFalse())
	})

	It("reports a window count of zero once the session is gone", func() {
		Expect(browser.Close()).To(Succeed())
		Expect(page.WindowCount()).To(BeZero())
		Expect(page.IsDisplayed()).To(BeFalse())
	})
})

var _ = Describe("ContextMenuPage", func() {
	var (
		browser *sessiontest.Session
		page    *ContextMenuPage
	)

	BeforeEach(func() {
		var tcontext *runtime.TContext
		tcontext, browser = uimodeltest.NewContext()
		browser.Put("h3", uimodeltest.Visible("Context Menu"))
		browser.Put("#hot-spot", uimodeltest.Visible(""))
		browser.OnClick = func(s *sessiontest.Session, selector string) {
			text := defaults.ContextMenuAlertText
			s.SetAlert(&text)
		}

		var err error
		page, err = OpenContextMenu(tcontext)
		Expect(err).NotTo(HaveOccurred())
	})

	It("shows an alert on right click", func() {
		Expect(page.IsDisplayed()).To(BeTrue())
		Expect(page.IsHotSpotDisplayed()).To(BeTrue())
		Expect(page.Verify()).To(Succeed())
		Expect(browser.Clicks).To(Equal([]string{"#hot-spot"}))

		_, err := browser.AlertText()
		Expect(trace.IsNotFound(err)).To(BeTrue())
	})

	It("reads and dismisses the alert", func() {
		Expect(page.RightClick()).To(Succeed())
		Expect(page.IsAlertPresent()).To(BeTrue())
		Expect(page.IsAlertTextCorrect()).To(BeTrue())
		Expect(page.DismissAlert()).To(Succeed())
	})

	It("reports a missing alert", func() {
		Expect(page.AlertText()).To(BeEmpty())
		Expect(wait.IsTimeout(page.AcceptAlert())).To(BeTrue())
	})
})

var _ = Describe("FramesPage", func() {
	var (
		browser *sessiontest.Session
		page    *FramesPage
	)

	BeforeEach(func() {
		var tcontext *runtime.TContext
		tcontext, browser = uimodeltest.NewContext()
		browser.Put("frame[name='frame-top']", uimodeltest.Visible(""))
		browser.Put("frame[name='frame-middle']", uimodeltest.Visible(""))
		browser.Put("body", uimodeltest.Visible("  MIDDLE\n"))

		var err error
		page, err = OpenNestedFrames(tcontext)
		Expect(err).NotTo(HaveOccurred())
	})

	It("reads the text of a nested frame", func() {
		Expect(browser.Visits[0]).To(HaveSuffix(defaults.NestedFramesURL))
		Expect(page.FrameText(FramePath(FrameMiddle)...)).To(Equal("MIDDLE"))
	})

	It("fails for a frame that is not there", func() {
		_, err := page.FrameText(FrameBottom)
		Expect(wait.IsTimeout(err)).To(BeTrue())
	})

	DescribeTable("frame paths",
		func(name string, path []string) {
			Expect(FramePath(name)).To(Equal(path))
		},
		Entry("top", FrameTop, []string{FrameTop}),
		Entry("left", FrameLeft, []string{FrameTop, FrameLeft}),
		Entry("middle", FrameMiddle, []string{FrameTop, FrameMiddle}),
		Entry("right", FrameRight, []string{FrameTop, FrameRight}),
		Entry("bottom", FrameBottom, []string{FrameBottom}),
	)
})
