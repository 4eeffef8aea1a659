package features

import (
	"context"
	"time"

	"github.com/cucumber/godog"
	"github.com/gravitational/trace"
	"github.com/jmptrader/robotest-web/e2e/uimodel/dynamic"
)

func registerDynamicSteps(sc *godog.ScenarioContext) {
	sc.Step(`^I open dynamic loading example (\d+)$`, openDynamicExample)
	sc.Step(`^the hidden content should not be displayed$`, contentShouldBeHidden)
	sc.Step(`^I click the start button$`, clickStart)
	sc.Step(`^I wait for loading to finish$`, waitForLoading)
	sc.Step(`^I start loading and measure the time$`, measureLoading)
	sc.Step(`^I should see the text "([^"]*)"$`, shouldSeeContent)
	sc.Step(`^loading should complete within (\d+) seconds$`, loadingShouldCompleteWithin)
}

func loadingPage(ctx context.Context) (*world, error) {
	w, err := worldFrom(ctx)
	if err != nil {
		return nil, trace.Wrap(err)
	}
	if w.loading == nil {
		return nil, trace.BadParameter("no dynamic loading example is open")
	}
	return w, nil
}

func openDynamicExample(ctx context.Context, example int) error {
	w, err := worldFrom(ctx)
	if err != nil {
		return trace.Wrap(err)
	}
	w.loading, err = dynamic.OpenExample(w.t, example)
	return trace.Wrap(err)
}

func contentShouldBeHidden(ctx context.Context) error {
	w, err := loadingPage(ctx)
	if err != nil {
		return trace.Wrap(err)
	}
	if w.loading.IsContentDisplayed() {
		return trace.CompareFailed("content is displayed before loading")
	}
	return nil
}

func clickStart(ctx context.Context) error {
	w, err := loadingPage(ctx)
	if err != nil {
		return trace.Wrap(err)
	}
	return w.loading.Start()
}

func waitForLoading(ctx context.Context) error {
	w, err := loadingPage(ctx)
	if err != nil {
		return trace.Wrap(err)
	}
	return w.loading.WaitForLoading()
}

func measureLoading(ctx context.Context) error {
	w, err := loadingPage(ctx)
	if err != nil {
		return trace.Wrap(err)
	}
	w.elapsed, err = w.loading.MeasureLoadingTime()
	return trace.Wrap(err)
}

func shouldSeeContent(ctx context.Context, text string) error {
	w, err := loadingPage(ctx)
	if err != nil {
		return trace.Wrap(err)
	}
	content, err := w.loading.ContentText()
	if err != nil {
		return trace.Wrap(err)
	}
	if content != text {
		return trace.CompareFailed("expected %q, got %q", text, content)
	}
	return nil
}

func loadingShouldCompleteWithin(ctx context.Context, seconds int) error {
	w, err := loadingPage(ctx)
	if err != nil {
		return trace.Wrap(err)
	}
	if limit := time.Duration(seconds) * time.Second; w.elapsed > limit {
		return trace.CompareFailed("loading took %v, more than %v", w.elapsed, limit)
	}
	return nil
}
