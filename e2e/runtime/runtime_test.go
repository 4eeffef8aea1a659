package runtime_test

import (
	"errors"
	"sync"

	"github.com/gravitational/trace"
	"github.com/jmptrader/robotest-web/e2e/runtime"
	"github.com/jmptrader/robotest-web/e2e/runtime/configs"
	"github.com/jmptrader/robotest-web/e2e/runtime/session"
	"github.com/jmptrader/robotest-web/e2e/runtime/session/sessiontest"
	"github.com/spf13/afero"
	"gopkg.in/guregu/null.v3"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("Runtime", func() {
	var (
		fs       afero.Fs
		launcher *sessiontest.Launcher
		rt       *runtime.Runtime
	)

	newRuntime := func(overrides configs.Overrides, values map[string]string) *runtime.Runtime {
		config := configs.NewConfig("dev", values, overrides, configs.EnvOverrides{})
		return runtime.New(config, launcher, fs)
	}

	BeforeEach(func() {
		fs = afero.NewMemMapFs()
		launcher = &sessiontest.Launcher{}
		rt = newRuntime(configs.Overrides{}, map[string]string{
			configs.KeyBaseURL:        "https://the-internet.herokuapp.com/",
			configs.KeyScreenshotsDir: "shots",
		})
	})

	Describe("browser resolution", func() {
		It("prefers the runtime override", func() {
			rt = newRuntime(configs.Overrides{Browser: null.StringFrom("firefox")},
				map[string]string{configs.KeyBrowserName: "edge"})
			Expect(rt.BrowserFor("chrome")).To(Equal("firefox"))
		})

		It("uses the requested browser over the configured one", func() {
			rt = newRuntime(configs.Overrides{}, map[string]string{configs.KeyBrowserName: "edge"})
			Expect(rt.BrowserFor("firefox")).To(Equal("firefox"))
			Expect(rt.BrowserFor("")).To(Equal("edge"))
		})

		It("falls back to chrome", func() {
			Expect(rt.BrowserFor("")).To(Equal("chrome"))
		})
	})

	Describe("Begin and End", func() {
		It("registers a session for the worker", func() {
			tcontext, err := rt.Begin("worker-1", "firefox")
			Expect(err).NotTo(HaveOccurred())
			Expect(tcontext.Key).To(Equal(session.WorkerKey("worker-1")))
			Expect(tcontext.Session.Kind()).To(Equal(session.Firefox))
			Expect(rt.Registry.IsInitialized("worker-1")).To(BeTrue())

			again, err := rt.Context("worker-1")
			Expect(err).NotTo(HaveOccurred())
			Expect(again.Session).To(BeIdenticalTo(tcontext.Session))

			Expect(rt.End("worker-1", "scenario", false)).To(Succeed())
			Expect(rt.Registry.IsInitialized("worker-1")).To(BeFalse())
			Expect(launcher.Last().CloseCount).To(BeEquivalentTo(1))
		})

		It("closes a previous session before beginning again", func() {
			_, err := rt.Begin("worker-1", "")
			Expect(err).NotTo(HaveOccurred())
			first := launcher.Last()
			_, err = rt.Begin("worker-1", "")
			Expect(err).NotTo(HaveOccurred())
			Expect(first.CloseCount).To(BeEquivalentTo(1))
			Expect(rt.Registry.Len()).To(Equal(1))
		})

		It("surfaces launch failures", func() {
			launcher.Err = trace.ConnectionProblem(nil, "driver not found")
			_, err := rt.Begin("worker-1", "chrome")
			Expect(session.IsSessionLaunch(err)).To(BeTrue())
			Expect(rt.Registry.IsInitialized("worker-1")).To(BeFalse())
		})

		It("fails for a worker that has not begun", func() {
			_, err := rt.Context("nobody")
			Expect(session.IsSessionNotInitialized(err)).To(BeTrue())
		})

		It("saves a screenshot only on failure", func() {
			_, err := rt.Begin("worker-1", "")
			Expect(err).NotTo(HaveOccurred())
			Expect(rt.End("worker-1", "passing", false)).To(Succeed())

			_, err = rt.Begin("worker-2", "")
			Expect(err).NotTo(HaveOccurred())
			Expect(rt.End("worker-2", "failing", true)).To(Succeed())

			files, err := afero.ReadDir(fs, "shots")
			Expect(err).NotTo(HaveOccurred())
			Expect(files).To(HaveLen(1))
			Expect(files[0].Name()).To(HavePrefix("failing_"))
		})

		It("is a no-op to end twice", func() {
			_, err := rt.Begin("worker-1", "")
			Expect(err).NotTo(HaveOccurred())
			Expect(rt.End("worker-1", "scenario", false)).To(Succeed())
			Expect(rt.End("worker-1", "scenario", false)).To(Succeed())
			Expect(launcher.Last().CloseCount).To(BeEquivalentTo(1))
		})
	})

	Describe("Run", func() {
		It("closes the session exactly once when the body fails", func() {
			err := rt.Run("worker-1", "", "failing", func(tcontext *runtime.TContext) error {
				return errors.New("assertion failed")
			})
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("assertion failed"))
			Expect(launcher.Last().CloseCount).To(BeEquivalentTo(1))
			Expect(rt.Registry.Len()).To(BeZero())
		})

		It("closes the session exactly once when the body panics", func() {
			Expect(func() {
				rt.Run("worker-1", "", "panicking", func(tcontext *runtime.TContext) error {
					panic("boom")
				})
			}).To(PanicWith("boom"))
			Expect(launcher.Last().CloseCount).To(BeEquivalentTo(1))
			Expect(rt.Registry.Len()).To(BeZero())
		})

		It("reports close failures after a successful body", func() {
			launcher.Setup = func(s *sessiontest.Session) {
				s.CloseErr = trace.ConnectionProblem(nil, "driver went away")
			}
			err := rt.Run("worker-1", "", "scenario", func(*runtime.TContext) error { return nil })
			Expect(err).To(HaveOccurred())
			Expect(rt.Registry.Len()).To(BeZero())
		})

		It("navigates relative to the base URL", func() {
			err := rt.Run("worker-1", "", "navigation", func(tcontext *runtime.TContext) error {
				return tcontext.Navigate("/login")
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(launcher.Last().Visits).To(Equal([]string{"https://the-internet.herokuapp.com/login"}))
		})

		It("keeps concurrent workers apart", func() {
			var wg sync.WaitGroup
			ids := make([]string, 8)
			for i := range ids {
				wg.Add(1)
				go func(i int) {
					defer GinkgoRecover()
					defer wg.Done()
					key := session.WorkerKey(string(rune('a' + i)))
					Expect(rt.Run(key, "", "parallel", func(tcontext *runtime.TContext) error {
						ids[i] = tcontext.Session.ID()
						return nil
					})).To(Succeed())
				}(i)
			}
			wg.Wait()

			seen := map[string]bool{}
			for _, id := range ids {
				seen[id] = true
			}
			Expect(seen).To(HaveLen(len(ids)))
			Expect(rt.Close()).To(Succeed())
		})
	})

	Describe("TContext", func() {
		It("resolves endpoints", func() {
			tcontext, err := rt.Begin("worker-1", "")
			Expect(err).NotTo(HaveOccurred())
			defer rt.End("worker-1", "", false)

			Expect(tcontext.URL("dynamic_loading/1")).To(Equal("https://the-internet.herokuapp.com/dynamic_loading/1"))
			Expect(tcontext.URL("/upload?x=1")).To(Equal("https://the-internet.herokuapp.com/upload?x=1"))
			Expect(tcontext.URL("https://example.com/a")).To(Equal("https://example.com/a"))
			Expect(tcontext.Wait.Timeout()).To(Equal(rt.Config.Timeout()))
		})
	})
})
