// Package uimodeltest builds worker contexts over fake sessions for page
// model tests
package uimodeltest

import (
	"github.com/jmptrader/robotest-web/e2e/runtime"
	"github.com/jmptrader/robotest-web/e2e/runtime/configs"
	"github.com/jmptrader/robotest-web/e2e/runtime/session"
	"github.com/jmptrader/robotest-web/e2e/runtime/session/sessiontest"
	"github.com/spf13/afero"
)

// BaseURL is the application base URL of the test contexts
const BaseURL = "https://the-internet.test"

// NewContext returns a context over a fresh fake session. Waits poll every
// 10ms and give up after a second.
func NewContext() (*runtime.TContext, *sessiontest.Session) {
	launcher := &sessiontest.Launcher{}
	config := configs.NewConfig("test", map[string]string{
		configs.KeyBaseURL:         BaseURL,
		configs.KeySeleniumTimeout: "1",
		configs.KeyPollInterval:    "10",
	}, configs.Overrides{}, configs.EnvOverrides{})

	rt := runtime.New(config, launcher, afero.NewMemMapFs())
	tcontext, err := rt.Begin(session.WorkerKey("uimodel"), "chrome")
	if err != nil {
		panic(err)
	}
	return tcontext, launcher.Last()
}

// Visible is a visible, enabled element with text
func Visible(text string) sessiontest.Node {
	return sessiontest.Node{Visible: true, Enabled: true, Text: text}
}

// List is a set of visible, enabled elements with the given texts
func List(texts ...string) sessiontest.Node {
	items := make([]*sessiontest.Node, 0, len(texts))
	for _, text := range texts {
		node := Visible(text)
		items = append(items, &node)
	}
	return sessiontest.Node{Items: items}
}
