// Package runtime ties configuration, sessions, waits and screenshots into
// the per-test lifecycle: a worker begins with a fresh session, runs, and
// ends with the session closed whatever the outcome.
package runtime

import (
	"github.com/gravitational/trace"
	"github.com/jmptrader/robotest-web/e2e/runtime/configs"
	"github.com/jmptrader/robotest-web/e2e/runtime/screenshot"
	"github.com/jmptrader/robotest-web/e2e/runtime/session"
	"github.com/jmptrader/robotest-web/e2e/runtime/wait"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// Runtime is shared by all workers of a process
type Runtime struct {
	Config   *configs.Config
	Factory  *session.Factory
	Registry *session.Registry
	Capturer *screenshot.Capturer
}

// New returns a runtime launching browsers with launcher.
// Screenshots are written to the configured directory on fs.
func New(config *configs.Config, launcher session.Launcher, fs afero.Fs) *Runtime {
	return &Runtime{
		Config:   config,
		Factory:  session.NewFactory(config, launcher),
		Registry: session.NewRegistry(),
		Capturer: screenshot.New(fs, config.String(configs.KeyScreenshotsDir, configs.DefaultScreenshotsDir)),
	}
}

// BrowserFor resolves the browser to launch: the runtime override wins over
// the name the caller asked for, which wins over the configured browser
func (r *Runtime) BrowserFor(requested string) string {
	if browser := r.Config.Overrides().Browser; browser.Valid && browser.String != "" {
		return browser.String
	}
	if requested != "" {
		return requested
	}
	return r.Config.Browser()
}

// Begin starts a fresh session for the worker and returns its context
func (r *Runtime) Begin(key session.WorkerKey, browser string) (*TContext, error) {
	logger := log.WithField("worker", key)
	if r.Registry.IsInitialized(key) {
		logger.Warn("worker already has a session, closing it first")
		if err := r.Registry.Clear(key); err != nil {
			logger.Warnf("failed to close previous session: %v", trace.UserMessage(err))
		}
	}

	s, err := r.Factory.Create(r.BrowserFor(browser))
	if err != nil {
		return nil, trace.Wrap(err)
	}
	r.Registry.Set(key, s)

	if err := s.ClearCookies(); err != nil {
		return nil, trace.NewAggregate(
			trace.Wrap(err, "failed to clear cookies"),
			r.Registry.Clear(key))
	}
	logger.Infof("began with session %v", s.ID())
	return r.newContext(key, s), nil
}

// Context returns the context of a worker that has begun
func (r *Runtime) Context(key session.WorkerKey) (*TContext, error) {
	s, err := r.Registry.Get(key)
	if err != nil {
		return nil, trace.Wrap(err)
	}
	return r.newContext(key, s), nil
}

// End closes the worker session. When failed is set a screenshot named
// after name is saved first. Screenshot problems never fail End.
func (r *Runtime) End(key session.WorkerKey, name string, failed bool) error {
	if failed {
		if s, err := r.Registry.Get(key); err == nil {
			if path := r.Capturer.Capture(s, name); path != "" {
				log.WithField("worker", key).Infof("%q failed, screenshot saved to %v", name, path)
			}
		}
	}
	return trace.Wrap(r.Registry.Clear(key))
}

// Run begins a session for the worker, runs fn and ends the session,
// also when fn fails or panics. A panic is re-raised after cleanup.
func (r *Runtime) Run(key session.WorkerKey, browser, name string, fn func(*TContext) error) (err error) {
	tcontext, err := r.Begin(key, browser)
	if err != nil {
		return trace.Wrap(err)
	}

	defer func() {
		recovered := recover()
		endErr := r.End(key, name, err != nil || recovered != nil)
		if recovered != nil {
			if endErr != nil {
				log.WithField("worker", key).Warnf("cleanup after panic: %v", trace.UserMessage(endErr))
			}
			panic(recovered)
		}
		if endErr != nil {
			err = trace.NewAggregate(err, endErr)
		}
	}()

	if err = fn(tcontext); err != nil {
		return trace.Wrap(err, "%v failed", name)
	}
	return nil
}

// Close ends every remaining session
func (r *Runtime) Close() error {
	if n := r.Registry.Len(); n > 0 {
		log.Warnf("closing %v sessions left open", n)
	}
	return trace.Wrap(r.Registry.ClearAll())
}

func (r *Runtime) newContext(key session.WorkerKey, s session.Session) *TContext {
	return &TContext{
		Key:     key,
		Session: s,
		Wait: wait.New(s,
			wait.WithTimeout(r.Config.Timeout()),
			wait.WithPollInterval(r.Config.PollInterval())),
		Config:   r.Config,
		Capturer: r.Capturer,
	}
}
