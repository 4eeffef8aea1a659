package configs

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gravitational/trace"
	"github.com/mstoykov/envconfig"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"gopkg.in/go-playground/validator.v9"
	"gopkg.in/guregu/null.v3"
	yaml "gopkg.in/yaml.v2"
)

// Recognized configuration keys
const (
	KeySeleniumTimeout      = "selenium.timeout"
	KeyPollInterval         = "selenium.poll.interval.ms"
	KeyBrowserName          = "browser.name"
	KeyBrowserHeadless      = "browser.headless"
	KeyBrowserMaximize      = "browser.maximize"
	KeyDisableNotifications = "browser.disable.notifications"
	KeyBaseURL              = "app.base.url"
	KeyScreenshotsDir       = "screenshots.dir"
	KeyWebDriverURL         = "webdriver.url"
)

const (
	DefaultEnvironment    = "dev"
	DefaultBrowser        = "chrome"
	DefaultTimeout        = 30
	DefaultPollIntervalMs = 500
	DefaultBaseURL        = "https://the-internet.herokuapp.com"
	DefaultScreenshotsDir = "reports/screenshots"

	baseConfigName = "application.yaml"
)

// Overrides are process-level values passed by the invoking process.
// They take precedence over everything else.
type Overrides struct {
	Browser     null.String
	Headless    null.Bool
	Environment null.String
}

// EnvOverrides are read from the process environment
type EnvOverrides struct {
	Headless null.Bool `envconfig:"HEADLESS"`
}

// LoadOptions controls where configuration is read from
type LoadOptions struct {
	// FS is the filesystem to read from, defaults to the OS filesystem
	FS afero.Fs
	// Dir is the directory with application.yaml and the environment overlays
	Dir string
	// Overrides are the runtime overrides
	Overrides Overrides
	// LookupEnv resolves environment variables, defaults to os.LookupEnv
	LookupEnv func(string) (string, bool)
}

// Config is the resolved configuration. It is read-only once loaded
// and safe for concurrent use.
type Config struct {
	environment string
	values      map[string]string
	overrides   Overrides
	env         EnvOverrides
}

// Settings is a typed snapshot of the keys the runtime depends on
type Settings struct {
	Browser          string `yaml:"browser" validate:"required"`
	TimeoutSeconds   int    `yaml:"timeout" validate:"min=1"`
	PollIntervalMs   int    `yaml:"poll_interval_ms" validate:"min=1"`
	Maximize         bool   `yaml:"maximize"`
	DisableNotifying bool   `yaml:"disable_notifications"`
	BaseURL          string `yaml:"base_url" validate:"required,url"`
	ScreenshotsDir   string `yaml:"screenshots_dir" validate:"required"`
	WebDriverURL     string `yaml:"web_driver_url,omitempty" validate:"omitempty,url"`
}

// Load reads the base file, then the environment overlay, then applies
// environment and runtime overrides. Later layers win.
func Load(opts LoadOptions) (*Config, error) {
	if opts.FS == nil {
		opts.FS = afero.NewOsFs()
	}
	if opts.LookupEnv == nil {
		opts.LookupEnv = os.LookupEnv
	}

	environment := opts.Overrides.Environment.ValueOrZero()
	if environment == "" {
		environment = DefaultEnvironment
	}
	log.Infof("loading configuration for environment: %v", environment)

	values := make(map[string]string)
	for _, name := range []string{baseConfigName, environment + ".yaml"} {
		path := filepath.Join(opts.Dir, name)
		layer, err := readLayer(opts.FS, path)
		if err != nil {
			return nil, trace.Wrap(err)
		}
		if layer == nil {
			log.Warnf("configuration file not found: %v", path)
			continue
		}
		for k, v := range layer {
			values[k] = v
		}
		log.Infof("loaded configuration from %v", path)
	}

	env, err := loadEnvOverrides(opts.LookupEnv)
	if err != nil {
		return nil, trace.Wrap(err)
	}

	cfg := NewConfig(environment, values, opts.Overrides, env)
	if err := Validate(cfg.Settings()); err != nil {
		return nil, trace.Wrap(err, "invalid configuration")
	}
	return cfg, nil
}

// NewConfig creates a configuration from already resolved values
func NewConfig(environment string, values map[string]string, overrides Overrides, env EnvOverrides) *Config {
	copied := make(map[string]string, len(values))
	for k, v := range values {
		copied[k] = v
	}
	return &Config{
		environment: environment,
		values:      copied,
		overrides:   overrides,
		env:         env,
	}
}

// Environment returns the name of the active environment overlay
func (c *Config) Environment() string {
	return c.environment
}

// Overrides returns the runtime overrides
func (c *Config) Overrides() Overrides {
	return c.overrides
}

// Env returns the overrides read from the environment
func (c *Config) Env() EnvOverrides {
	return c.env
}

// Lookup returns the raw value for key
func (c *Config) Lookup(key string) (string, bool) {
	v, ok := c.values[key]
	return v, ok
}

// String returns the value for key or defaultValue if absent
func (c *Config) String(key, defaultValue string) string {
	if v, ok := c.values[key]; ok {
		return v
	}
	return defaultValue
}

// Int returns the value for key or defaultValue if absent or malformed
func (c *Config) Int(key string, defaultValue int) int {
	v, ok := c.values[key]
	if !ok {
		return defaultValue
	}
	i, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		log.Warnf("%v=%q is not an integer, using %v", key, v, defaultValue)
		return defaultValue
	}
	return i
}

// Bool returns the value for key or defaultValue if absent.
// Any value other than "true" (case-insensitive) reads as false.
func (c *Config) Bool(key string, defaultValue bool) bool {
	b := c.NullBool(key)
	if !b.Valid {
		return defaultValue
	}
	return b.Bool
}

// NullBool returns the value for key, invalid if the key is absent
func (c *Config) NullBool(key string) null.Bool {
	v, ok := c.values[key]
	if !ok {
		return null.Bool{}
	}
	return null.BoolFrom(strings.EqualFold(strings.TrimSpace(v), "true"))
}

// Timeout returns the default explicit wait timeout
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Int(KeySeleniumTimeout, DefaultTimeout)) * time.Second
}

// PollInterval returns the condition polling interval
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.Int(KeyPollInterval, DefaultPollIntervalMs)) * time.Millisecond
}

// BaseURL returns the application under test base URL
func (c *Config) BaseURL() string {
	return strings.TrimSuffix(c.String(KeyBaseURL, DefaultBaseURL), "/")
}

// Browser returns the configured browser name, honoring the runtime override
func (c *Config) Browser() string {
	if c.overrides.Browser.Valid && c.overrides.Browser.String != "" {
		return c.overrides.Browser.String
	}
	return c.String(KeyBrowserName, DefaultBrowser)
}

// Settings returns a typed snapshot of the configuration
func (c *Config) Settings() Settings {
	return Settings{
		Browser:          c.Browser(),
		TimeoutSeconds:   c.Int(KeySeleniumTimeout, DefaultTimeout),
		PollIntervalMs:   c.Int(KeyPollInterval, DefaultPollIntervalMs),
		Maximize:         c.Bool(KeyBrowserMaximize, true),
		DisableNotifying: c.Bool(KeyDisableNotifications, true),
		BaseURL:          c.BaseURL(),
		ScreenshotsDir:   c.String(KeyScreenshotsDir, DefaultScreenshotsDir),
		WebDriverURL:     c.String(KeyWebDriverURL, ""),
	}
}

// Keys returns all configured keys in sorted order
func (c *Config) Keys() []string {
	keys := make([]string, 0, len(c.values))
	for k := range c.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Validate validates obj against its struct tags
func Validate(obj interface{}) error {
	errors := []error{}
	err := validator.New().Struct(obj)
	if validationErrors, ok := err.(validator.ValidationErrors); err != nil && ok {
		for _, fieldError := range validationErrors {
			errors = append(errors,
				trace.Errorf(` * %s="%v" fails "%s"`, fieldError.Field(), fieldError.Value(), fieldError.Tag()))
		}
	}

	return trace.NewAggregate(errors...)
}

// ParseOverrides builds runtime overrides from raw flag values.
// Empty values are treated as unset.
func ParseOverrides(browser, headless, environment string) (Overrides, error) {
	var o Overrides
	if browser != "" {
		o.Browser = null.StringFrom(browser)
	}
	if environment != "" {
		o.Environment = null.StringFrom(environment)
	}
	if headless != "" {
		b, err := strconv.ParseBool(headless)
		if err != nil {
			return o, trace.BadParameter("headless: expected a boolean, got %q", headless)
		}
		o.Headless = null.BoolFrom(b)
	}
	return o, nil
}

func loadEnvOverrides(lookup func(string) (string, bool)) (EnvOverrides, error) {
	var env EnvOverrides
	err := envconfig.Process("", &env, func(key string) (string, bool) {
		v, ok := lookup(key)
		return strings.ToLower(strings.TrimSpace(v)), ok
	})
	if err != nil {
		return env, trace.BadParameter("failed to read environment overrides: %v", err)
	}
	return env, nil
}

// readLayer reads a YAML file into a flat map of dotted keys.
// Returns nil without error if the file does not exist.
func readLayer(fs afero.Fs, path string) (map[string]string, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, trace.ConvertSystemError(err)
	}

	var configMap map[interface{}]interface{}
	if err := yaml.Unmarshal(data, &configMap); err != nil {
		return nil, trace.Wrap(err, "failed to parse %v", path)
	}

	values := make(map[string]string)
	flatten("", configMap, values)
	return values, nil
}

func flatten(prefix string, m map[interface{}]interface{}, out map[string]string) {
	for k, v := range m {
		key := fmt.Sprint(k)
		if prefix != "" {
			key = prefix + "." + key
		}
		switch value := v.(type) {
		case map[interface{}]interface{}:
			flatten(key, value, out)
		case nil:
			// explicit null leaves the key unset
		default:
			out[key] = fmt.Sprint(value)
		}
	}
}
