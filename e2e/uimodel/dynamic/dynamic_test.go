package dynamic_test

import (
	"strings"
	"time"

	"github.com/gravitational/trace"
	"github.com/jmptrader/robotest-web/e2e/runtime"
	"github.com/jmptrader/robotest-web/e2e/runtime/session/sessiontest"
	"github.com/jmptrader/robotest-web/e2e/runtime/wait"
	"github.com/jmptrader/robotest-web/e2e/uimodel/defaults"
	. "github.com/jmptrader/robotest-web/e2e/uimodel/dynamic"
	"github.com/jmptrader/robotest-web/e2e/uimodel/uimodeltest"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

const loadingTime = 150 * time.Millisecond

var _ = Describe("DynamicLoadingPage", func() {
	var (
		tcontext *runtime.TContext
		browser  *sessiontest.Session
	)

	// startLoading emulates the example scripts: the indicator shows for
	// loadingTime, then the content is revealed (example 1) or rendered (example 2)
	startLoading := func(example int) func(*sessiontest.Session, string) {
		return func(s *sessiontest.Session, selector string) {
			if selector != "#start button" {
				return
			}
			s.Update("#start button", func(n *sessiontest.Node) { n.Visible = false })
			s.Put("#loading", uimodeltest.Visible("Loading..."))
			time.AfterFunc(loadingTime, func() {
				if example == 1 {
					s.Update("#finish", func(n *sessiontest.Node) { n.Visible = true })
				} else {
					s.Put("#finish", uimodeltest.Visible(HelloWorld))
				}
				s.Update("#loading", func(n *sessiontest.Node) { n.Visible = false })
			})
		}
	}

	setup := func(example int) *DynamicLoadingPage {
		tcontext, browser = uimodeltest.NewContext()
		browser.Put("h3", uimodeltest.Visible("Dynamically Loaded Page Elements"))
		browser.Put("#start button", uimodeltest.Visible("Start"))
		if example == 1 {
			browser.Put("#finish", sessiontest.Node{Text: HelloWorld})
		}
		browser.OnClick = startLoading(example)

		page, err := OpenExample(tcontext, example)
		Expect(err).NotTo(HaveOccurred())
		return page
	}

	It("reveals the hidden element", func() {
		page := setup(1)
		Expect(browser.Visits[0]).To(HaveSuffix(defaults.DynamicLoadingURL + "/1"))
		Expect(page.IsDisplayed()).To(BeTrue())
		Expect(page.IsContentDisplayed()).To(BeFalse())

		Expect(page.Start()).To(Succeed())
		Expect(page.WaitForLoading()).To(Succeed())
		Expect(page.ContentText()).To(Equal(HelloWorld))
	})

	It("renders the element after the fact", func() {
		page := setup(2)
		Expect(page.IsLoadingSequenceCorrect()).To(BeTrue())
		Expect(page.ContentText()).To(Equal(HelloWorld))
	})

	It("measures the loading time", func() {
		page := setup(1)
		elapsed, err := page.MeasureLoadingTime()
		Expect(err).NotTo(HaveOccurred())
		Expect(elapsed).To(BeNumerically(">=", loadingTime))
		Expect(elapsed).To(BeNumerically("<", time.Second))
	})

	It("times out when the content never shows", func() {
		page := setup(1)
		browser.OnClick = nil
		Expect(page.Start()).To(Succeed())
		Expect(wait.IsTimeout(page.WaitForContent())).To(BeTrue())
	})

	It("rejects unknown examples", func() {
		tcontext, browser = uimodeltest.NewContext()
		_, err := OpenExample(tcontext, 3)
		Expect(trace.IsBadParameter(err)).To(BeTrue())
		Expect(browser.Visits).To(BeEmpty())
	})
})

var _ = Describe("AddRemoveElementsPage", func() {
	const (
		addButton = "button[onclick='addElement()']"
		deletes   = ".added-manually"
	)

	var (
		browser *sessiontest.Session
		page    *AddRemoveElementsPage
		added   int
	)

	BeforeEach(func() {
		var tcontext *runtime.TContext
		tcontext, browser = uimodeltest.NewContext()
		added = 0
		browser.Put("h3", uimodeltest.Visible("Add/Remove Elements"))
		browser.Put("#elements", uimodeltest.Visible(""))
		browser.Put(addButton, uimodeltest.Visible("Add Element"))
		browser.OnClick = func(s *sessiontest.Session, selector string) {
			switch selector {
			case addButton:
				added++
			case deletes:
				added--
			default:
				return
			}
			if added == 0 {
				s.Remove(deletes)
				return
			}
			s.Put(deletes, uimodeltest.List(strings.Split(strings.Repeat("Delete,", added), ",")[:added]...))
		}

		var err error
		page, err = OpenAddRemove(tcontext)
		Expect(err).NotTo(HaveOccurred())
	})

	It("adds and removes elements", func() {
		Expect(page.IsDisplayed()).To(BeTrue())
		Expect(page.IsAddDisplayed()).To(BeTrue())
		Expect(page.AreDeleteButtonsVisible()).To(BeFalse())

		Expect(page.AddN(3)).To(Succeed())
		Expect(page.Count()).To(Equal(3))
		Expect(page.AreDeleteButtonsVisible()).To(BeTrue())
		Expect(page.DeleteButtonText(2)).To(Equal("Delete"))
		Expect(page.DeleteButtonText(3)).To(BeEmpty())

		Expect(page.DeleteLast()).To(Succeed())
		Expect(page.Count()).To(Equal(2))
		Expect(page.RemoveAll()).To(Succeed())
		Expect(page.Count()).To(BeZero())
	})

	It("adds then removes at most what is there", func() {
		Expect(page.AddThenRemove(2, 5)).To(Succeed())
		Expect(page.Count()).To(BeZero())
	})

	It("rejects out of range deletes", func() {
		Expect(page.AddN(1)).To(Succeed())
		Expect(trace.IsBadParameter(page.Delete(4))).To(BeTrue())
	})
})
