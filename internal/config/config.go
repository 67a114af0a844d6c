package config

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"hrm-qa/internal/vars"
)

const (
	DefaultCookieName   = "orangehrm"
	DefaultTestData     = "TestData.xlsx"
	DefaultLoginTimeout = 30 * time.Second
)

var ErrMissingKey = errors.New("missing configuration key")

// Config is read once per run and then only passed around by value or
// pointer; nothing mutates it after Load returns.
type Config struct {
	BaseURL      string        `env:"HRM_BASE_URL" env-description:"Application root, e.g. https://hrm.example.com"`
	Username     string        `env:"HRM_USERNAME" env-description:"Login user name"`
	Password     string        `env:"HRM_PASSWORD" env-description:"Login password"`
	CookieName   string        `env:"HRM_COOKIE_NAME" env-description:"Session cookie name"`
	Cookie       string        `env:"HRM_COOKIE" env-description:"Session cookie value; skips the browser login"`
	Headless     bool          `env:"HRM_HEADLESS" env-description:"Run the login browser headless"`
	BrowserBin   string        `env:"HRM_BROWSER_BIN" env-description:"Chrome/Chromium binary for the login browser"`
	LoginCommand string        `env:"HRM_LOGIN_COMMAND" env-description:"External login command printing a JSON cookie; replaces the browser"`
	LoginTimeout time.Duration `env:"HRM_LOGIN_TIMEOUT" env-description:"Upper bound for the browser login"`
	TestData     string        `env:"HRM_TEST_DATA" env-description:"Spreadsheet with request test data"`
	OpenAPI      string        `env:"HRM_OPENAPI" env-description:"OpenAPI document for response contract checks"`
}

func defaults() Config {
	return Config{
		CookieName:   DefaultCookieName,
		Headless:     true,
		LoginTimeout: DefaultLoginTimeout,
		TestData:     DefaultTestData,
	}
}

// Load applies defaults, then each file in order, then HRM_* environment
// variables.
func Load(paths ...string) (*Config, error) {
	return LoadWith(nil, paths...)
}

// LoadWith is Load followed by overrides, keyed like the config file.
func LoadWith(overrides map[string]string, paths ...string) (*Config, error) {
	cfg := defaults()

	kv, err := vars.LoadFiles(paths)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.apply(kv); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config env: %w", err)
	}
	if err := cfg.apply(overrides); err != nil {
		return nil, fmt.Errorf("config flags: %w", err)
	}

	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the keys a run cannot do without.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("%w: base.url", ErrMissingKey)
	}
	if c.Cookie == "" && (c.Username == "" || c.Password == "") {
		return fmt.Errorf("%w: username and password (or cookie.value)", ErrMissingKey)
	}
	if c.CookieName == "" {
		return fmt.Errorf("%w: cookie.name", ErrMissingKey)
	}
	return nil
}

// LoginURL is the browser entry point of the application.
func (c *Config) LoginURL() string {
	return c.BaseURL + "/web/index.php/auth/login"
}

func (c *Config) apply(kv map[string]string) error {
	for k, v := range kv {
		switch k {
		case "base.url":
			c.BaseURL = v
		case "username":
			c.Username = v
		case "password":
			c.Password = v
		case "cookie.name":
			c.CookieName = v
		case "cookie.value":
			c.Cookie = v
		case "browser.headless":
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("browser.headless: %w", err)
			}
			c.Headless = b
		case "browser.bin":
			c.BrowserBin = v
		case "login.command":
			c.LoginCommand = v
		case "login.timeout":
			d, err := time.ParseDuration(v)
			if err != nil {
				return fmt.Errorf("login.timeout: %w", err)
			}
			c.LoginTimeout = d
		case "test.data":
			c.TestData = v
		case "openapi":
			c.OpenAPI = v
		}
	}
	return nil
}

// Usage writes the supported environment variables.
func Usage(w io.Writer) {
	var cfg Config
	header := "Environment variables (override the config file):"
	cleanenv.FUsage(w, &cfg, &header)()
}
