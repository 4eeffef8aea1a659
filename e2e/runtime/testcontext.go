package runtime

import (
	"net/url"
	"path"
	"strings"

	"github.com/gravitational/trace"
	"github.com/jmptrader/robotest-web/e2e/runtime/configs"
	"github.com/jmptrader/robotest-web/e2e/runtime/screenshot"
	"github.com/jmptrader/robotest-web/e2e/runtime/session"
	"github.com/jmptrader/robotest-web/e2e/runtime/wait"
)

// TContext is one worker's view of the runtime: its session, a waiter
// bound to that session and the shared configuration
type TContext struct {
	Key      session.WorkerKey
	Session  session.Session
	Wait     *wait.Waiter
	Config   *configs.Config
	Capturer *screenshot.Capturer
}

// URL resolves endpoint against the application base URL
func (r *TContext) URL(endpoint string) (string, error) {
	return appendToBase(r.Config.BaseURL(), endpoint)
}

// Navigate opens endpoint relative to the application base URL
func (r *TContext) Navigate(endpoint string) error {
	target, err := r.URL(endpoint)
	if err != nil {
		return trace.Wrap(err)
	}
	if err := r.Session.Navigate(target); err != nil {
		return trace.Wrap(err, "failed to open %v", target)
	}
	return nil
}

// Screenshot saves a screenshot of the current page, returns "" on failure
func (r *TContext) Screenshot(name string) string {
	return r.Capturer.Capture(r.Session, name)
}

func appendToBase(base string, endpoint string) (string, error) {
	baseURL, err := url.Parse(base)
	if err != nil {
		return "", trace.Wrap(err, "invalid base URL %q", base)
	}
	ref, err := url.Parse(endpoint)
	if err != nil {
		return "", trace.Wrap(err, "invalid endpoint %q", endpoint)
	}
	if ref.IsAbs() {
		return ref.String(), nil
	}

	baseURL.Path = path.Join("/", baseURL.Path, ref.Path)
	if strings.HasSuffix(ref.Path, "/") && !strings.HasSuffix(baseURL.Path, "/") {
		baseURL.Path += "/"
	}
	baseURL.RawQuery = ref.RawQuery
	baseURL.Fragment = ref.Fragment
	return baseURL.String(), nil
}
