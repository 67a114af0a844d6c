package session

import (
	"context"
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"go.uber.org/zap"
)

// Login form selectors of the application.
const (
	UsernameSelector = "input[name='username']"
	PasswordSelector = "input[name='password']"
	SubmitSelector   = "button[type='submit']"
)

// Browser logs in through the application's login page with a real Chrome
// and reads the session cookie from the browser afterwards.
type Browser struct {
	LoginURL   string
	Username   string
	Password   string
	CookieName string

	Headless bool
	Bin      string // empty: let the launcher find or download Chrome
	// ControlURL connects to an already running browser instead of launching one.
	ControlURL string
	Timeout    time.Duration

	Log *zap.Logger
}

func (b *Browser) Login(ctx context.Context) (Token, error) {
	log := b.Log
	if log == nil {
		log = zap.NewNop()
	}
	timeout := b.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	controlURL := b.ControlURL
	if controlURL == "" {
		l := launcher.New().Headless(b.Headless)
		if b.Bin != "" {
			l = l.Bin(b.Bin)
		}
		u, err := l.Launch()
		if err != nil {
			return Token{}, fmt.Errorf("launch chrome: %w", err)
		}
		defer l.Kill()
		controlURL = u
	}

	browser := rod.New().ControlURL(controlURL).Context(ctx)
	if err := browser.Connect(); err != nil {
		return Token{}, fmt.Errorf("connect to chrome: %w", err)
	}
	defer func() { _ = browser.Close() }()

	log.Debug("opening login page", zap.String("url", b.LoginURL))
	page, err := browser.Page(proto.TargetCreateTarget{URL: b.LoginURL})
	if err != nil {
		return Token{}, fmt.Errorf("open %s: %w", b.LoginURL, err)
	}
	if err := page.WaitLoad(); err != nil {
		return Token{}, fmt.Errorf("load %s: %w", b.LoginURL, err)
	}

	if err := fill(page, UsernameSelector, b.Username); err != nil {
		return Token{}, err
	}
	if err := fill(page, PasswordSelector, b.Password); err != nil {
		return Token{}, err
	}

	submit, err := page.Element(SubmitSelector)
	if err != nil {
		return Token{}, fmt.Errorf("element %s: %w", SubmitSelector, err)
	}
	wait := page.WaitNavigation(proto.PageLifecycleEventNameLoad)
	if err := submit.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return Token{}, fmt.Errorf("submit login: %w", err)
	}
	wait()

	raw, err := page.Cookies(nil)
	if err != nil {
		return Token{}, fmt.Errorf("read cookies: %w", err)
	}
	cookies := make([]cookie, 0, len(raw))
	for _, c := range raw {
		cookies = append(cookies, cookie{name: c.Name, value: c.Value})
	}
	tok, err := findCookie(b.CookieName, cookies)
	if err != nil {
		return Token{}, err
	}
	log.Info("logged in", zap.String("cookie", tok.Name))
	return tok, nil
}

func fill(page *rod.Page, selector, text string) error {
	el, err := page.Element(selector)
	if err != nil {
		return fmt.Errorf("element %s: %w", selector, err)
	}
	if err := el.Input(text); err != nil {
		return fmt.Errorf("type into %s: %w", selector, err)
	}
	return nil
}
