package config

import (
	"time"

	"github.com/spf13/viper"
)

// Default configuration constants
const (
	defaultContactURL = "https://webdriveruniversity.com/Contact-Us/contactus.html"
	defaultIndexURL   = "https://webdriveruniversity.com/index.html"

	defaultNavigationTimeout = 30 * time.Second
	// Matches Playwright's own expect timeout.
	defaultExpectTimeout = 5 * time.Second

	defaultLogLevel  = "info"
	defaultLogFormat = "console"
)

// DefaultConfig returns the default configuration values for contactus.
func DefaultConfig() *Config {
	return &Config{
		Target: TargetConfig{
			ContactURL: defaultContactURL,
			IndexURL:   defaultIndexURL,
		},
		Browser: BrowserConfig{
			Engine:            EngineChromium,
			Headless:          true,
			NavigationTimeout: defaultNavigationTimeout,
			ExpectTimeout:     defaultExpectTimeout,
		},
		Logging: LoggingConfig{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
	}
}

// setDefaults registers every key with viper so AutomaticEnv can override it.
func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("target.contact_url", d.Target.ContactURL)
	v.SetDefault("target.index_url", d.Target.IndexURL)

	v.SetDefault("browser.engine", string(d.Browser.Engine))
	v.SetDefault("browser.headless", d.Browser.Headless)
	v.SetDefault("browser.slow_mo", d.Browser.SlowMo)
	v.SetDefault("browser.navigation_timeout", d.Browser.NavigationTimeout)
	v.SetDefault("browser.expect_timeout", d.Browser.ExpectTimeout)

	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
}
