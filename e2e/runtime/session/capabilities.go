package session

import (
	"github.com/tebeka/selenium"
	"github.com/tebeka/selenium/chrome"
	"github.com/tebeka/selenium/firefox"
)

const edgeCapabilitiesKey = "ms:edgeOptions"

// Capabilities are the browser launch flags
type Capabilities struct {
	Headless             bool
	NoSandbox            bool
	DisableGPU           bool
	DisableExtensions    bool
	DisableDevShm        bool
	Maximize             bool
	DisableNotifications bool
}

// Flags returns the capabilities applied when launching kind as short names.
// Firefox only takes headless mode and the notification preferences.
func (c Capabilities) Flags(kind Kind) []string {
	var flags []string
	if c.Headless {
		flags = append(flags, "headless")
	}
	if kind.Browser() != Firefox {
		if c.NoSandbox {
			flags = append(flags, "sandbox-disabled")
		}
		if c.DisableGPU {
			flags = append(flags, "gpu-disabled")
		}
		if c.DisableExtensions {
			flags = append(flags, "extensions-disabled")
		}
		if c.Maximize {
			flags = append(flags, "maximize")
		} else {
			flags = append(flags, "no-maximize")
		}
	}
	if c.DisableNotifications {
		flags = append(flags, "notifications-suppressed")
	}
	return flags
}

// ChromiumArgs returns command line switches for Chrome and Edge
func (c Capabilities) ChromiumArgs() []string {
	var args []string
	if c.DisableDevShm {
		args = append(args, "--disable-dev-shm-usage")
	}
	if c.DisableExtensions {
		args = append(args, "--disable-extensions")
	}
	if c.NoSandbox {
		// Sandbox requires namespace permissions that we don't have on a container
		args = append(args, "--no-sandbox")
	}
	if c.DisableGPU {
		args = append(args, "--disable-gpu")
	}
	args = append(args, "--remote-allow-origins=*")
	if c.Headless {
		args = append(args, "--headless")
	}
	if c.Maximize {
		args = append(args, "--start-maximized")
	}
	if c.DisableNotifications {
		args = append(args, "--disable-notifications")
	}
	return args
}

// FirefoxArgs returns command line switches for Firefox
func (c Capabilities) FirefoxArgs() []string {
	var args []string
	if c.Headless {
		args = append(args, "-headless")
	}
	return args
}

// Desired returns the WebDriver capabilities for the given browser kind
func (c Capabilities) Desired(kind Kind) selenium.Capabilities {
	browser := kind.Browser()
	caps := selenium.Capabilities{}
	switch browser {
	case Firefox:
		caps["browserName"] = string(Firefox)
		opts := firefox.Capabilities{Args: c.FirefoxArgs()}
		if c.DisableNotifications {
			opts.Prefs = map[string]interface{}{
				"dom.webnotifications.enabled": false,
				"dom.push.enabled":             false,
			}
		}
		caps.AddFirefox(opts)
	case Edge:
		caps["browserName"] = "MicrosoftEdge"
		caps[edgeCapabilitiesKey] = map[string]interface{}{"args": c.ChromiumArgs()}
	default:
		caps["browserName"] = string(Chrome)
		caps.AddChrome(chrome.Capabilities{Args: c.ChromiumArgs()})
	}
	caps["javascriptEnabled"] = true
	return caps
}
