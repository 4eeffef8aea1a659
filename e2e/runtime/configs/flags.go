package configs

import (
	"github.com/gravitational/trace"
	"github.com/spf13/pflag"
)

const (
	flagBrowser     = "browser"
	flagHeadless    = "headless"
	flagEnvironment = "env"
	flagConfigDir   = "config-dir"
)

// FlagSet returns the flags that feed runtime overrides
func FlagSet() *pflag.FlagSet {
	flags := pflag.NewFlagSet("", pflag.ContinueOnError)
	flags.SortFlags = false
	flags.String(flagBrowser, "", "browser to run: chrome, firefox, edge, chrome-headless, firefox-headless")
	flags.String(flagHeadless, "", "force headless mode on or off, overrides HEADLESS and browser.headless")
	flags.String(flagEnvironment, DefaultEnvironment, "environment overlay to load from the config directory")
	flags.String(flagConfigDir, "config", "directory with application.yaml and environment overlays")
	return flags
}

// OverridesFromFlags reads runtime overrides from flags returned by FlagSet.
// Only flags explicitly set on the command line count as overrides.
func OverridesFromFlags(flags *pflag.FlagSet) (Overrides, error) {
	var browser, headless, environment string
	var err error
	if flags.Changed(flagBrowser) {
		if browser, err = flags.GetString(flagBrowser); err != nil {
			return Overrides{}, trace.Wrap(err)
		}
	}
	if flags.Changed(flagHeadless) {
		if headless, err = flags.GetString(flagHeadless); err != nil {
			return Overrides{}, trace.Wrap(err)
		}
	}
	if flags.Changed(flagEnvironment) {
		if environment, err = flags.GetString(flagEnvironment); err != nil {
			return Overrides{}, trace.Wrap(err)
		}
	}
	return ParseOverrides(browser, headless, environment)
}

// ConfigDirFromFlags returns the configuration directory
func ConfigDirFromFlags(flags *pflag.FlagSet) string {
	dir, err := flags.GetString(flagConfigDir)
	if err != nil || dir == "" {
		return "config"
	}
	return dir
}
