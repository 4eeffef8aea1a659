package e2e

import (
	"path/filepath"

	"github.com/jmptrader/robotest-web/e2e/runtime"
	"github.com/jmptrader/robotest-web/e2e/uimodel/components"
	"github.com/jmptrader/robotest-web/e2e/uimodel/defaults"
	"github.com/jmptrader/robotest-web/e2e/uimodel/dynamic"
	"github.com/jmptrader/robotest-web/e2e/uimodel/forms"
	"github.com/jmptrader/robotest-web/e2e/uimodel/navigation"
	"github.com/jmptrader/robotest-web/e2e/uimodel/status"
	"github.com/spf13/afero"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = RoboDescribe("dynamic", func() {
	It("should reveal the content of example 2 after loading", func() {
		run(func(t *runtime.TContext) error {
			page, err := dynamic.OpenExample(t, 2)
			Expect(err).NotTo(HaveOccurred())
			Expect(page.IsContentDisplayed()).To(BeFalse())

			Expect(page.Start()).To(Succeed())
			Expect(page.WaitForLoading()).To(Succeed())
			Expect(page.ContentText()).To(Equal(dynamic.HelloWorld))
			return nil
		})
	})

	It("should add and remove elements", func() {
		run(func(t *runtime.TContext) error {
			page, err := dynamic.OpenAddRemove(t)
			Expect(err).NotTo(HaveOccurred())
			Expect(page.AddThenRemove(3, 2)).To(Succeed())
			Expect(page.Count()).To(Equal(1))
			return nil
		})
	})
})

var _ = RoboDescribe("drag and drop", func() {
	It("should swap the columns and back", func() {
		run(func(t *runtime.TContext) error {
			page, err := dynamic.OpenDragAndDrop(t)
			Expect(err).NotTo(HaveOccurred())
			Expect(page.AreColumnsVisible()).To(BeTrue())

			Expect(page.DragAToB()).To(Succeed())
			Expect(page.WaitForHeaders("B", "A")).To(Succeed())
			Expect(page.IsSwapped()).To(BeTrue())
			Expect(page.Reset()).To(Succeed())
			Expect(page.IsSwapped()).To(BeFalse())
			return nil
		})
	})
})

var _ = RoboDescribe("hovers", func() {
	It("should show the caption of the hovered user", func() {
		run(func(t *runtime.TContext) error {
			page, err := components.OpenHovers(t)
			Expect(err).NotTo(HaveOccurred())
			Expect(page.AvatarCount()).To(Equal(3))
			Expect(page.HoverAndVerify(1, "name: user2")).To(Succeed())
			return nil
		})
	})
})

var _ = RoboDescribe("status codes", func() {
	It("should report every linked status code", func() {
		run(func(t *runtime.TContext) error {
			page, err := status.OpenStatusCodes(t)
			Expect(err).NotTo(HaveOccurred())
			for _, code := range status.Codes {
				Expect(page.Verify(code)).To(Succeed())
			}
			return nil
		})
	})

	It("should redirect to the status codes page", func() {
		run(func(t *runtime.TContext) error {
			page, err := status.OpenRedirector(t)
			Expect(err).NotTo(HaveOccurred())
			_, err = page.Redirect()
			Expect(err).NotTo(HaveOccurred())
			Expect(page.StatusCodes().IsDisplayed()).To(BeTrue())
			return nil
		})
	})
})

var _ = RoboDescribe("forms", func() {
	It("should toggle every checkbox", func() {
		run(func(t *runtime.TContext) error {
			page, err := forms.OpenCheckboxes(t)
			Expect(err).NotTo(HaveOccurred())
			Expect(page.Count()).To(Equal(2))
			Expect(page.IsTogglingCorrectly()).To(BeTrue())
			return nil
		})
	})

	It("should select every dropdown option", func() {
		run(func(t *runtime.TContext) error {
			page, err := forms.OpenDropdown(t)
			Expect(err).NotTo(HaveOccurred())
			Expect(page.AreAllOptionsSelectable()).To(BeTrue())
			return nil
		})
	})

	It("should upload a file", func() {
		fs := afero.NewOsFs()
		file, err := afero.TempFile(fs, "", "upload-*.txt")
		Expect(err).NotTo(HaveOccurred())
		defer fs.Remove(file.Name())
		_, err = file.WriteString("robotest upload")
		Expect(err).NotTo(HaveOccurred())
		Expect(file.Close()).To(Succeed())

		run(func(t *runtime.TContext) error {
			page, err := forms.OpenFileUpload(t, fs)
			Expect(err).NotTo(HaveOccurred())
			return page.UploadAndVerify(file.Name(), filepath.Base(file.Name()))
		})
	})
})

var _ = RoboDescribe("navigation", func() {
	It("should open and close a new window", func() {
		run(func(t *runtime.TContext) error {
			page, err := navigation.OpenWindows(t)
			Expect(err).NotTo(HaveOccurred())
			Expect(page.OpenNewWindow()).To(Succeed())
			Expect(page.SwitchToNewWindow()).To(Succeed())
			Expect(page.IsNewWindowContentCorrect()).To(BeTrue())
			Expect(page.CloseNewWindow()).To(Succeed())
			Expect(page.WindowCount()).To(Equal(1))
			return nil
		})
	})

	It("should show an alert on right click", func() {
		run(func(t *runtime.TContext) error {
			page, err := navigation.OpenContextMenu(t)
			Expect(err).NotTo(HaveOccurred())
			Expect(page.RightClick()).To(Succeed())
			Expect(page.AlertText()).To(Equal(defaults.ContextMenuAlertText))
			return page.AcceptAlert()
		})
	})

	It("should read the nested frames", func() {
		run(func(t *runtime.TContext) error {
			page, err := navigation.OpenNestedFrames(t)
			Expect(err).NotTo(HaveOccurred())
			frames := map[string]string{
				navigation.FrameLeft:   "LEFT",
				navigation.FrameMiddle: "MIDDLE",
				navigation.FrameRight:  "RIGHT",
				navigation.FrameBottom: "BOTTOM",
			}
			for name, want := range frames {
				text, err := page.FrameText(navigation.FramePath(name)...)
				Expect(err).NotTo(HaveOccurred())
				Expect(text).To(Equal(want), name)
			}
			return page.SwitchToRoot()
		})
	})
})
