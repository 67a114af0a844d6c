package session

import (
	"strings"

	"go.uber.org/zap"

	"hrm-qa/internal/config"
)

// FromConfig picks the login method: a configured cookie value wins, then an
// external login command, then the browser.
func FromConfig(cfg *config.Config, log *zap.Logger) Source {
	if cfg.Cookie != "" {
		return Static{Name: cfg.CookieName, Value: cfg.Cookie}
	}
	in := ProcessInput{
		LoginURL:   cfg.LoginURL(),
		Username:   cfg.Username,
		Password:   cfg.Password,
		CookieName: cfg.CookieName,
	}
	if fields := strings.Fields(cfg.LoginCommand); len(fields) > 0 {
		return &Process{Cmd: fields[0], Args: fields[1:], Timeout: cfg.LoginTimeout, Input: in}
	}
	return &Browser{
		LoginURL:   in.LoginURL,
		Username:   in.Username,
		Password:   in.Password,
		CookieName: in.CookieName,
		Headless:   cfg.Headless,
		Bin:        cfg.BrowserBin,
		Timeout:    cfg.LoginTimeout,
		Log:        log,
	}
}
