// Package features runs the Gherkin scenarios against the application.
// Every scenario gets its own browser session, keyed by the scenario id,
// so scenarios can run concurrently.
package features

import (
	"context"
	"embed"
	"time"

	"github.com/cucumber/godog"
	"github.com/gravitational/trace"
	"github.com/jmptrader/robotest-web/e2e/runtime"
	"github.com/jmptrader/robotest-web/e2e/runtime/screenshot"
	"github.com/jmptrader/robotest-web/e2e/runtime/session"
	log "github.com/sirupsen/logrus"
)

// Scenarios are the bundled feature files
//
//go:embed scenarios/*.feature
var Scenarios embed.FS

// ScenariosDir is the directory of the bundled feature files
const ScenariosDir = "scenarios"

const screenshotMediaType = "image/png"

// Options control a suite run
type Options struct {
	// Paths are feature files or directories on disk.
	// The bundled scenarios run when empty.
	Paths []string
	// Tags is a godog tag expression, e.g. "@login && ~@slow"
	Tags string
	// Format is the godog output format
	Format string
	// Concurrency is the number of scenarios run at once
	Concurrency int
}

// Suite binds the scenarios to a runtime
type Suite struct {
	Runtime *runtime.Runtime
	// Browser is requested for every scenario, the configured browser if empty
	Browser string
}

// Run runs the scenarios and returns the godog exit code
func (s *Suite) Run(opts Options) int {
	return godog.TestSuite{
		Name:                "robotest-web",
		ScenarioInitializer: s.InitializeScenario,
		Options:             s.godogOptions(opts),
	}.Run()
}

func (s *Suite) godogOptions(opts Options) *godog.Options {
	options := &godog.Options{
		Paths:       opts.Paths,
		Tags:        opts.Tags,
		Format:      opts.Format,
		Concurrency: opts.Concurrency,
		Strict:      true,
	}
	if options.Format == "" {
		options.Format = "pretty"
	}
	if options.Concurrency < 1 {
		options.Concurrency = 1
	}
	if len(options.Paths) == 0 {
		options.FS = Scenarios
		options.Paths = []string{ScenariosDir}
	}
	return options
}

// InitializeScenario installs the session hooks and step definitions
func (s *Suite) InitializeScenario(sc *godog.ScenarioContext) {
	sc.Before(s.beforeScenario)
	sc.After(s.afterScenario)
	registerLoginSteps(sc)
	registerDynamicSteps(sc)
}

func (s *Suite) beforeScenario(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
	key := session.WorkerKey(sc.Id)
	log.WithField("worker", key).Infof("starting scenario %q", sc.Name)
	tcontext, err := s.Runtime.Begin(key, s.Browser)
	if err != nil {
		return ctx, trace.Wrap(err)
	}
	return withWorld(ctx, &world{t: tcontext}), nil
}

func (s *Suite) afterScenario(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
	key := session.WorkerKey(sc.Id)
	logger := log.WithField("worker", key)
	logger.Infof("finished scenario %q, failed=%v", sc.Name, err != nil)
	if err != nil {
		ctx = s.attachScreenshot(ctx, key, sc.Name)
	}
	if endErr := s.Runtime.End(key, sc.Name, err != nil); endErr != nil {
		logger.Warnf("failed to end session: %v", trace.UserMessage(endErr))
	}
	return ctx, nil
}

// attachScreenshot embeds the current page in the scenario report
func (s *Suite) attachScreenshot(ctx context.Context, key session.WorkerKey, name string) context.Context {
	tcontext, err := s.Runtime.Context(key)
	if err != nil {
		return ctx
	}
	data := tcontext.Capturer.CaptureInline(tcontext.Session)
	if data == nil {
		return ctx
	}
	return godog.Attach(ctx, godog.Attachment{
		Body:      data,
		FileName:  screenshot.FileName(name, time.Now()),
		MediaType: screenshotMediaType,
	})
}
