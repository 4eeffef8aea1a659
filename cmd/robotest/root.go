package main

import (
	"fmt"

	"github.com/gravitational/trace"
	"github.com/jmptrader/robotest-web/e2e/runtime/configs"
	"github.com/jmptrader/robotest-web/e2e/runtime/session"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// env holds what the commands need from the outside world
type env struct {
	fs        afero.Fs
	lookupEnv func(string) (string, bool)
	// launcher returns the session launcher for the loaded configuration
	launcher func(config *configs.Config) session.Launcher
}

func defaultEnv() env {
	return env{
		fs: afero.NewOsFs(),
		launcher: func(config *configs.Config) session.Launcher {
			return session.AgoutiLauncher{WebDriverURL: config.String(configs.KeyWebDriverURL, "")}
		},
	}
}

// exitCode is returned by a command that finished with a non-zero status
type exitCode int

func (c exitCode) Error() string {
	return fmt.Sprintf("exit status %d", int(c))
}

func newRootCommand(e env) *cobra.Command {
	var logLevel string
	root := &cobra.Command{
		Use:           "robotest",
		Short:         "Browser tests for the-internet",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := log.ParseLevel(logLevel)
			if err != nil {
				return trace.BadParameter("invalid --log-level %q", logLevel)
			}
			log.SetLevel(level)
			log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
			return nil
		},
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warning, error")
	root.AddCommand(newRunCommand(e))
	return root
}
