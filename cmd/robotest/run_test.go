package main

import (
	"errors"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/gravitational/trace"
	"github.com/jmptrader/robotest-web/e2e/runtime/configs"
	"github.com/jmptrader/robotest-web/e2e/runtime/session"
	"github.com/jmptrader/robotest-web/e2e/runtime/session/sessiontest"
	"github.com/spf13/afero"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

const applicationYAML = `
app:
  base:
    url: https://the-internet.test
selenium:
  timeout: 1
  poll.interval.ms: 10
browser:
  name: firefox
screenshots:
  dir: shots
`

var _ = Describe("run", func() {
	var (
		fs       afero.Fs
		launcher *sessiontest.Launcher
		loaded   *configs.Config
	)

	execute := func(args ...string) error {
		cmd := newRootCommand(env{
			fs:        fs,
			lookupEnv: func(string) (string, bool) { return "", false },
			launcher: func(config *configs.Config) session.Launcher {
				loaded = config
				return launcher
			},
		})
		cmd.SetArgs(args)
		return cmd.Execute()
	}

	BeforeEach(func() {
		fs = afero.NewMemMapFs()
		Expect(afero.WriteFile(fs, "config/application.yaml", []byte(applicationYAML), 0644)).To(Succeed())
		launcher = &sessiontest.Launcher{}
		loaded = nil
	})

	It("rejects an unknown log level", func() {
		err := execute("run", "--log-level", "loud")
		Expect(trace.IsBadParameter(err)).To(BeTrue())
		Expect(loaded).To(BeNil())
	})

	It("rejects a non-positive concurrency", func() {
		err := execute("run", "--concurrency", "0")
		Expect(trace.IsBadParameter(err)).To(BeTrue())
	})

	It("rejects a malformed headless override", func() {
		err := execute("run", "--headless", "maybe")
		Expect(trace.IsBadParameter(err)).To(BeTrue())
	})

	It("loads configuration and honors overrides", func() {
		err := execute("run", "--browser", "chrome-headless", "--tags", "@nothing-matches", "--format", "progress")
		Expect(err).NotTo(HaveOccurred())
		Expect(loaded).NotTo(BeNil())
		Expect(loaded.BaseURL()).To(Equal("https://the-internet.test"))
		Expect(loaded.Browser()).To(Equal("chrome-headless"))
		Expect(launcher.Launched).To(BeEmpty())
	})

	It("exits with the suite status when a scenario fails", func() {
		dir, err := ioutil.TempDir("", "robotest-features")
		Expect(err).NotTo(HaveOccurred())
		defer os.RemoveAll(dir)
		feature := "Feature: undefined\n  Scenario: nothing\n    Given a step nobody wrote\n"
		Expect(ioutil.WriteFile(filepath.Join(dir, "undefined.feature"), []byte(feature), 0644)).To(Succeed())

		err = execute("run", "--format", "progress", dir)
		var code exitCode
		Expect(errors.As(err, &code)).To(BeTrue())
		Expect(int(code)).NotTo(BeZero())
		Expect(launcher.Launched).To(HaveLen(1))
		Expect(launcher.Last().Closed()).To(BeTrue())
	})
})
