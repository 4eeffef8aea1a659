package components_test

import (
	"fmt"

	"github.com/gravitational/trace"
	"github.com/jmptrader/robotest-web/e2e/runtime/session/sessiontest"
	"github.com/jmptrader/robotest-web/e2e/runtime/wait"
	. "github.com/jmptrader/robotest-web/e2e/uimodel/components"
	"github.com/jmptrader/robotest-web/e2e/uimodel/defaults"
	"github.com/jmptrader/robotest-web/e2e/uimodel/uimodeltest"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

const (
	captions     = ".figure .figcaption"
	profileLinks = ".figure .figcaption a"
)

func hidden(n int) sessiontest.Node {
	items := make([]*sessiontest.Node, n)
	for i := range items {
		items[i] = &sessiontest.Node{Enabled: true}
	}
	return sessiontest.Node{Items: items}
}

// showOnly makes the index-th item of selector the only visible one
func showOnly(s *sessiontest.Session, selector string, index int) {
	s.Update(selector, func(n *sessiontest.Node) {
		for i, item := range n.Items {
			item.Visible = i == index
		}
	})
}

var _ = Describe("HoverPage", func() {
	var (
		browser *sessiontest.Session
		page    *HoverPage
		hovered int
	)

	BeforeEach(func() {
		tcontext, fake := uimodeltest.NewContext()
		browser = fake
		hovered = -1
		browser.Put("h3", uimodeltest.Visible("Hovers"))
		browser.Put(".figure", uimodeltest.List("", "", ""))
		browser.Put(captions, hidden(3))
		browser.Put(".figure .figcaption h5", uimodeltest.List("name: user1", "name: user2", "name: user3"))
		browser.Put(profileLinks, hidden(3))
		browser.OnHover = func(s *sessiontest.Session, selector string, index int) {
			if selector != ".figure" {
				return
			}
			hovered = index
			showOnly(s, captions, index)
			showOnly(s, profileLinks, index)
		}
		browser.OnClick = func(s *sessiontest.Session, selector string) {
			if selector == profileLinks {
				s.SetURL(fmt.Sprintf("%v/users/%d", uimodeltest.BaseURL, hovered+1))
			}
		}

		var err error
		page, err = OpenHovers(tcontext)
		Expect(err).NotTo(HaveOccurred())
	})

	It("shows the avatars", func() {
		Expect(browser.Visits[0]).To(HaveSuffix(defaults.HoversURL))
		Expect(page.IsDisplayed()).To(BeTrue())
		Expect(page.AvatarCount()).To(Equal(3))
		Expect(page.AreAvatarsVisible()).To(BeTrue())
		Expect(page.IsUserInfoVisible(0)).To(BeFalse())
	})

	It("reveals the caption of the hovered avatar only", func() {
		Expect(page.HoverAndVerify(1, "name: user2")).To(Succeed())
		Expect(browser.Hovers).To(Equal([]string{".figure"}))
		Expect(page.IsUserInfoVisible(1)).To(BeTrue())
		Expect(page.IsUserInfoVisible(0)).To(BeFalse())
		Expect(page.IsProfileLinkVisible(1)).To(BeTrue())
		Expect(page.UserName(1)).To(Equal("name: user2"))
	})

	It("times out when the caption shows another user", func() {
		err := page.HoverAndVerify(0, "name: user9")
		Expect(wait.IsTimeout(err)).To(BeTrue())
	})

	It("rejects avatars that do not exist", func() {
		Expect(trace.IsBadParameter(page.HoverOver(3))).To(BeTrue())
		Expect(browser.Hovers).To(BeEmpty())
	})

	It("follows the profile link of the hovered avatar", func() {
		Expect(page.ViewProfile(2)).To(Succeed())
		Expect(browser.URL()).To(HaveSuffix("/users/3"))
	})
})
