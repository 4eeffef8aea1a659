package session

import (
	"github.com/gravitational/trace"
	"github.com/jmptrader/robotest-web/e2e/runtime/configs"
	log "github.com/sirupsen/logrus"
	"gopkg.in/guregu/null.v3"
)

// Launcher starts a browser for the given kind and capabilities
type Launcher interface {
	Launch(kind Kind, caps Capabilities) (Session, error)
}

// HeadlessSource names where the headless setting was resolved from
type HeadlessSource string

const (
	HeadlessFromRuntime HeadlessSource = "runtime flag"
	HeadlessFromEnv     HeadlessSource = "environment variable"
	HeadlessFromConfig  HeadlessSource = "config file"
	HeadlessFromDefault HeadlessSource = "default"
)

// ResolveHeadless picks the headless mode: the runtime flag wins over the
// environment, which wins over the config file. Unset everywhere means headed.
func ResolveHeadless(runtime, env, file null.Bool) (bool, HeadlessSource) {
	switch {
	case runtime.Valid:
		return runtime.Bool, HeadlessFromRuntime
	case env.Valid:
		return env.Bool, HeadlessFromEnv
	case file.Valid:
		return file.Bool, HeadlessFromConfig
	default:
		return false, HeadlessFromDefault
	}
}

// Factory creates sessions configured from the process configuration
type Factory struct {
	config   *configs.Config
	launcher Launcher
}

// NewFactory returns a factory launching browsers with launcher
func NewFactory(config *configs.Config, launcher Launcher) *Factory {
	return &Factory{config: config, launcher: launcher}
}

// Resolve maps a browser name to a kind and assembles its capabilities.
// Unknown names resolve to the default kind.
func (f *Factory) Resolve(kindName string) (Kind, Capabilities) {
	kind, ok := ParseKind(kindName)
	if !ok {
		log.Warnf("browser %q not supported, defaulting to %v", kindName, DefaultKind)
		kind = DefaultKind
	}

	headless, source := ResolveHeadless(
		f.config.Overrides().Headless,
		f.config.Env().Headless,
		f.config.NullBool(configs.KeyBrowserHeadless))
	if kind.Headless() {
		headless, source = true, HeadlessSource("browser kind "+string(kind))
	}
	log.Infof("running %v headless=%v (set via %v)", kind, headless, source)

	caps := Capabilities{
		Headless:             headless,
		NoSandbox:            true,
		DisableGPU:           true,
		DisableExtensions:    true,
		DisableDevShm:        true,
		Maximize:             !headless && f.config.Bool(configs.KeyBrowserMaximize, true),
		DisableNotifications: f.config.Bool(configs.KeyDisableNotifications, true),
	}
	return kind, caps
}

// Create launches a new session for the named browser.
// Launch failures are returned as SessionLaunchError and are not retried.
func (f *Factory) Create(kindName string) (Session, error) {
	kind, caps := f.Resolve(kindName)
	log.WithFields(log.Fields{"browser": kind, "capabilities": caps.Flags(kind)}).Info("creating session")

	session, err := f.launcher.Launch(kind, caps)
	if err != nil {
		return nil, trace.Wrap(&SessionLaunchError{Kind: kind, Capabilities: caps, Err: err})
	}
	return session, nil
}
