package config

import (
	"fmt"
	"net/url"
	"strings"
)

// validateConfig performs comprehensive validation of configuration values
func validateConfig(config *Config) error {
	var validationErrors []string

	validationErrors = append(validationErrors, validateTarget(config)...)
	validationErrors = append(validationErrors, validateBrowser(config)...)
	validationErrors = append(validationErrors, validateLogging(config)...)

	if len(validationErrors) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(validationErrors, "\n  - "))
	}

	return nil
}

func validateTarget(config *Config) []string {
	var validationErrors []string
	if msg := validateHTTPURL("target.contact_url", config.Target.ContactURL); msg != "" {
		validationErrors = append(validationErrors, msg)
	}
	if msg := validateHTTPURL("target.index_url", config.Target.IndexURL); msg != "" {
		validationErrors = append(validationErrors, msg)
	}
	return validationErrors
}

func validateHTTPURL(key, raw string) string {
	if raw == "" {
		return key + " must not be empty"
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Sprintf("%s is not a valid URL: %v", key, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Sprintf("%s must use http or https, got %q", key, u.Scheme)
	}
	if u.Host == "" {
		return key + " must include a host"
	}
	return ""
}

func validateBrowser(config *Config) []string {
	var validationErrors []string

	switch config.Browser.Engine {
	case EngineChromium, EngineFirefox, EngineWebKit:
	default:
		validationErrors = append(validationErrors,
			fmt.Sprintf("browser.engine must be one of: chromium, firefox, webkit (got %q)", config.Browser.Engine))
	}
	if config.Browser.SlowMo < 0 {
		validationErrors = append(validationErrors, "browser.slow_mo must be non-negative")
	}
	if config.Browser.NavigationTimeout <= 0 {
		validationErrors = append(validationErrors, "browser.navigation_timeout must be positive")
	}
	if config.Browser.ExpectTimeout <= 0 {
		validationErrors = append(validationErrors, "browser.expect_timeout must be positive")
	}
	return validationErrors
}

func validateLogging(config *Config) []string {
	switch config.Logging.Level {
	case "trace", "debug", "info", "warn", "error":
		return nil
	default:
		return []string{
			fmt.Sprintf("logging.level must be one of: trace, debug, info, warn, error (got %q)", config.Logging.Level),
		}
	}
}
