// Package config loads contactus settings from TOML files and CONTACTUS_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	dirPerm  = 0755 // Standard directory permissions (rwxr-xr-x)
	filePerm = 0644 // Standard file permissions (rw-r--r--)
)

// Config represents the complete configuration for contactus.
type Config struct {
	Target  TargetConfig  `mapstructure:"target" json:"target" jsonschema:"description=Pages under test"`
	Browser BrowserConfig `mapstructure:"browser" json:"browser" jsonschema:"description=Browser launch and wait settings"`
	Logging LoggingConfig `mapstructure:"logging" json:"logging"`
}

// TargetConfig holds the URLs of the site under test.
type TargetConfig struct {
	ContactURL string `mapstructure:"contact_url" json:"contact_url" jsonschema:"format=uri"`
	IndexURL   string `mapstructure:"index_url" json:"index_url" jsonschema:"format=uri"`
}

// Engine selects the Playwright browser type.
type Engine string

const (
	EngineChromium Engine = "chromium"
	EngineFirefox  Engine = "firefox"
	EngineWebKit   Engine = "webkit"
)

// BrowserConfig holds browser launch settings.
type BrowserConfig struct {
	Engine   Engine `mapstructure:"engine" json:"engine" jsonschema:"enum=chromium,enum=firefox,enum=webkit"`
	Headless bool   `mapstructure:"headless" json:"headless"`
	// SlowMo delays every browser operation, handy when watching a headed run.
	SlowMo            time.Duration `mapstructure:"slow_mo" json:"slow_mo"`
	NavigationTimeout time.Duration `mapstructure:"navigation_timeout" json:"navigation_timeout"`
	// ExpectTimeout bounds how long a single assertion waits before failing.
	ExpectTimeout time.Duration `mapstructure:"expect_timeout" json:"expect_timeout"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level" json:"level" jsonschema:"enum=trace,enum=debug,enum=info,enum=warn,enum=error"`
	Format string `mapstructure:"format" json:"format" jsonschema:"enum=console,enum=json"`
}

// Manager loads configuration from file and environment variables.
type Manager struct {
	config     *Config
	viper      *viper.Viper
	configFile string
}

// NewManager creates a new configuration manager. An empty configFile means
// config.toml is searched in the XDG config directory and then the working
// directory.
func NewManager(configFile string) (*Manager, error) {
	v := viper.New()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("toml")

		configDir, err := GetConfigDir()
		if err != nil {
			return nil, fmt.Errorf("failed to determine config directory: %w\nCheck XDG_CONFIG_HOME environment variable or HOME directory", err)
		}
		v.AddConfigPath(configDir)
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("CONTACTUS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Short aliases for the logging keys.
	if err := v.BindEnv("logging.level", "CONTACTUS_LOG_LEVEL", "CONTACTUS_LOGGING_LEVEL"); err != nil {
		return nil, fmt.Errorf("failed to bind CONTACTUS_LOG_LEVEL: %w", err)
	}
	if err := v.BindEnv("logging.format", "CONTACTUS_LOG_FORMAT", "CONTACTUS_LOGGING_FORMAT"); err != nil {
		return nil, fmt.Errorf("failed to bind CONTACTUS_LOG_FORMAT: %w", err)
	}

	return &Manager{viper: v, configFile: configFile}, nil
}

// Load loads the configuration from file and environment variables.
func (m *Manager) Load() error {
	setDefaults(m.viper, DefaultConfig())

	if err := m.readConfigFile(); err != nil {
		return err
	}

	config := &Config{}
	if err := m.viper.Unmarshal(config); err != nil {
		return fmt.Errorf(
			"failed to parse config file at %s: %w\nCheck for syntax errors, invalid values, or type mismatches",
			m.ConfigFileUsed(),
			err,
		)
	}
	normalizeConfig(config)

	if err := validateConfig(config); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	m.config = config
	return nil
}

func (m *Manager) readConfigFile() error {
	err := m.viper.ReadInConfig()
	if err == nil {
		return nil
	}
	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) {
		// Defaults and environment are enough to run the suite.
		return nil
	}
	configFile := m.ConfigFileUsed()
	if configFile == "" {
		configFile = m.configFile
	}
	return fmt.Errorf("failed to read config file at %s: %w\nCheck the file format (must be valid TOML) and permissions", configFile, err)
}

// ConfigFileUsed returns the file the configuration was read from, or "" when
// only defaults and environment were used.
func (m *Manager) ConfigFileUsed() string {
	return m.viper.ConfigFileUsed()
}

// Get returns a copy of the loaded configuration.
func (m *Manager) Get() *Config {
	if m.config == nil {
		return DefaultConfig()
	}
	configCopy := *m.config
	return &configCopy
}

// Load is a shortcut for NewManager followed by Manager.Load.
func Load(configFile string) (*Config, error) {
	m, err := NewManager(configFile)
	if err != nil {
		return nil, err
	}
	if err := m.Load(); err != nil {
		return nil, err
	}
	return m.Get(), nil
}

func normalizeConfig(config *Config) {
	config.Browser.Engine = Engine(strings.ToLower(strings.TrimSpace(string(config.Browser.Engine))))
	if config.Browser.Engine == "" {
		config.Browser.Engine = EngineChromium
	}

	config.Logging.Level = strings.ToLower(strings.TrimSpace(config.Logging.Level))
	switch strings.ToLower(config.Logging.Format) {
	case "json":
		config.Logging.Format = "json"
	default:
		config.Logging.Format = "console"
	}

	config.Target.ContactURL = strings.TrimSpace(config.Target.ContactURL)
	config.Target.IndexURL = strings.TrimSpace(config.Target.IndexURL)
}

// WriteDefault writes the default configuration as TOML to path. It refuses to
// overwrite an existing file unless force is set.
func WriteDefault(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config file already exists at %s (use --force to overwrite)", path)
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	defaults := DefaultConfig()
	v.Set("target.contact_url", defaults.Target.ContactURL)
	v.Set("target.index_url", defaults.Target.IndexURL)
	v.Set("browser.engine", string(defaults.Browser.Engine))
	v.Set("browser.headless", defaults.Browser.Headless)
	v.Set("browser.slow_mo", defaults.Browser.SlowMo.String())
	v.Set("browser.navigation_timeout", defaults.Browser.NavigationTimeout.String())
	v.Set("browser.expect_timeout", defaults.Browser.ExpectTimeout.String())
	v.Set("logging.level", defaults.Logging.Level)
	v.Set("logging.format", defaults.Logging.Format)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write config file %s: %w", path, err)
	}
	return os.Chmod(path, filePerm)
}
