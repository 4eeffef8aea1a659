package main

import (
	"github.com/gravitational/trace"
	"github.com/jmptrader/robotest-web/e2e/features"
	"github.com/jmptrader/robotest-web/e2e/runtime"
	"github.com/jmptrader/robotest-web/e2e/runtime/configs"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type runOptions struct {
	tags        string
	format      string
	concurrency int
}

func newRunCommand(e env) *cobra.Command {
	var opts runOptions
	cmd := &cobra.Command{
		Use:   "run [paths]",
		Short: "Run feature files",
		Long: `Run feature files.

Without paths the bundled login and dynamic loading scenarios run.
Every scenario gets its own browser session.`,
		Example: `
  # Run the bundled scenarios in headless chrome
  robotest run --browser chrome-headless

  # Run the smoke scenarios against the ci environment, four at a time
  robotest run --env ci --tags @smoke --concurrency 4

  # Run feature files from disk
  robotest run ./features/login.feature`[1:],
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, e, args, opts)
		},
	}

	flags := cmd.Flags()
	flags.SortFlags = false
	flags.AddFlagSet(configs.FlagSet())
	flags.StringVar(&opts.tags, "tags", "", "godog tag expression, e.g. \"@login && ~@slow\"")
	flags.StringVar(&opts.format, "format", "pretty", "godog output format: pretty, progress, cucumber, junit")
	flags.IntVar(&opts.concurrency, "concurrency", 1, "number of scenarios to run at once")
	return cmd
}

func run(cmd *cobra.Command, e env, paths []string, opts runOptions) error {
	if opts.concurrency < 1 {
		return trace.BadParameter("--concurrency must be at least 1, got %v", opts.concurrency)
	}
	overrides, err := configs.OverridesFromFlags(cmd.Flags())
	if err != nil {
		return trace.Wrap(err)
	}
	config, err := configs.Load(configs.LoadOptions{
		FS:        e.fs,
		Dir:       configs.ConfigDirFromFlags(cmd.Flags()),
		Overrides: overrides,
		LookupEnv: e.lookupEnv,
	})
	if err != nil {
		return trace.Wrap(err)
	}

	rt := runtime.New(config, e.launcher(config), e.fs)
	suite := &features.Suite{Runtime: rt}
	log.Infof("running scenarios in %v against %v", rt.BrowserFor(""), config.BaseURL())

	status := suite.Run(features.Options{
		Paths:       paths,
		Tags:        opts.tags,
		Format:      opts.format,
		Concurrency: opts.concurrency,
	})
	if err := rt.Close(); err != nil {
		log.WithError(err).Warn("failed to close sessions")
	}
	if status != 0 {
		return exitCode(status)
	}
	return nil
}
