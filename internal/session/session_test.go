package session_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrm-qa/internal/config"
	"hrm-qa/internal/session"
)

func TestStatic(t *testing.T) {
	tok, err := session.Static{Name: "orangehrm", Value: "abc"}.Login(context.Background())
	require.NoError(t, err)
	assert.Equal(t, session.Token{Name: "orangehrm", Value: "abc"}, tok)
	assert.Equal(t, "orangehrm=abc", tok.Cookie().String())
	assert.Equal(t, "orangehrm=<redacted>", tok.String())

	_, err = session.Static{Name: "orangehrm"}.Login(context.Background())
	assert.True(t, errors.Is(err, session.ErrCookieNotFound))
}

func TestFromConfig(t *testing.T) {
	cfg := &config.Config{BaseURL: "http://hrm", CookieName: "orangehrm", Cookie: "abc"}
	assert.IsType(t, session.Static{}, session.FromConfig(cfg, nil))

	cfg = &config.Config{BaseURL: "http://hrm", CookieName: "orangehrm", Username: "u", Password: "p",
		LoginCommand: "sso-login --realm hr", LoginTimeout: time.Second}
	p, ok := session.FromConfig(cfg, nil).(*session.Process)
	require.True(t, ok)
	assert.Equal(t, "sso-login", p.Cmd)
	assert.Equal(t, []string{"--realm", "hr"}, p.Args)
	assert.Equal(t, "http://hrm/web/index.php/auth/login", p.Input.LoginURL)

	cfg.LoginCommand = ""
	b, ok := session.FromConfig(cfg, nil).(*session.Browser)
	require.True(t, ok)
	assert.Equal(t, "http://hrm/web/index.php/auth/login", b.LoginURL)
	assert.Equal(t, "orangehrm", b.CookieName)
}

// TestHelperProcess is the login command run by TestProcess.
func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}
	var in session.ProcessInput
	if err := json.NewDecoder(os.Stdin).Decode(&in); err != nil {
		os.Exit(3)
	}
	var out session.ProcessOutput
	switch os.Getenv("HELPER_MODE") {
	case "ok":
		out.Cookie = "cookie-for-" + in.Username
	case "fail":
		out.Errors = []string{"bad password"}
	case "empty":
	}
	_ = json.NewEncoder(os.Stdout).Encode(out)
	os.Exit(0)
}

func helper(mode string) *session.Process {
	return &session.Process{
		Cmd:     os.Args[0],
		Args:    []string{"-test.run=TestHelperProcess", "--"},
		Env:     map[string]string{"GO_WANT_HELPER_PROCESS": "1", "HELPER_MODE": mode},
		Timeout: 10 * time.Second,
		Input:   session.ProcessInput{LoginURL: "http://hrm/login", Username: "Admin", CookieName: "orangehrm"},
	}
}

func TestProcess(t *testing.T) {
	ctx := context.Background()

	tok, err := helper("ok").Login(ctx)
	require.NoError(t, err)
	assert.Equal(t, session.Token{Name: "orangehrm", Value: "cookie-for-Admin"}, tok)

	_, err = helper("fail").Login(ctx)
	assert.ErrorContains(t, err, "bad password")

	_, err = helper("empty").Login(ctx)
	assert.True(t, errors.Is(err, session.ErrCookieNotFound), fmt.Sprint(err))

	_, err = (&session.Process{Cmd: "/nonexistent/login-command"}).Login(ctx)
	assert.Error(t, err)
}
