package features

import (
	"context"
	"time"

	"github.com/gravitational/trace"
	"github.com/jmptrader/robotest-web/e2e/runtime"
	"github.com/jmptrader/robotest-web/e2e/uimodel/authentication"
	"github.com/jmptrader/robotest-web/e2e/uimodel/dynamic"
)

// world is the state of one scenario
type world struct {
	t *runtime.TContext

	login   *authentication.LoginPage
	secure  *authentication.SecureAreaPage
	loading *dynamic.DynamicLoadingPage
	elapsed time.Duration
}

type worldKey struct{}

func withWorld(ctx context.Context, w *world) context.Context {
	return context.WithValue(ctx, worldKey{}, w)
}

func worldFrom(ctx context.Context) (*world, error) {
	w, ok := ctx.Value(worldKey{}).(*world)
	if !ok {
		return nil, trace.NotFound("scenario has no browser session")
	}
	return w, nil
}

func (w *world) loginPage() *authentication.LoginPage {
	if w.login == nil {
		w.login = authentication.Login(w.t)
	}
	return w.login
}

func (w *world) securePage() *authentication.SecureAreaPage {
	if w.secure == nil {
		w.secure = authentication.SecureArea(w.t)
	}
	return w.secure
}
