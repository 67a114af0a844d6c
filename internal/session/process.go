package session

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"
)

// ProcessInput is written as one JSON document to the command's stdin.
type ProcessInput struct {
	LoginURL   string `json:"loginUrl"`
	Username   string `json:"username,omitempty"`
	Password   string `json:"password,omitempty"`
	CookieName string `json:"cookieName"`
}

// ProcessOutput is read from the command's stdout.
type ProcessOutput struct {
	Cookie string   `json:"cookie"`
	Errors []string `json:"errors,omitempty"`
}

// Process delegates the login to an external command, e.g. a site-specific
// SSO script. The command gets ProcessInput on stdin and must print
// ProcessOutput.
type Process struct {
	Cmd     string
	Args    []string
	Env     map[string]string
	Timeout time.Duration
	Input   ProcessInput
}

func (p *Process) Login(ctx context.Context) (Token, error) {
	tmo := p.Timeout
	if tmo <= 0 {
		tmo = 10 * time.Second
	}
	cctx, cancel := context.WithTimeout(ctx, tmo)
	defer cancel()

	cmd := exec.CommandContext(cctx, p.Cmd, p.Args...)

	// inherit env + add login env
	cmd.Env = os.Environ()
	for k, v := range p.Env {
		cmd.Env = append(cmd.Env, fmt.Sprintf("%s=%s", k, v))
	}

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return Token{}, fmt.Errorf("stdin: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return Token{}, fmt.Errorf("stdout: %w", err)
	}
	cmd.Stderr = os.Stderr

	if err := cmd.Start(); err != nil {
		return Token{}, fmt.Errorf("start: %w", err)
	}

	if err := json.NewEncoder(stdin).Encode(p.Input); err != nil {
		_ = stdin.Close()
		_ = cmd.Wait()
		return Token{}, fmt.Errorf("encode stdin: %w", err)
	}
	_ = stdin.Close()

	var out ProcessOutput
	if err := json.NewDecoder(stdout).Decode(&out); err != nil {
		_ = cmd.Wait()
		return Token{}, fmt.Errorf("decode stdout: %w", err)
	}
	if err := cmd.Wait(); err != nil {
		return Token{}, fmt.Errorf("login command exit: %w", err)
	}
	if len(out.Errors) > 0 {
		return Token{}, fmt.Errorf("login command: %s", strings.Join(out.Errors, "; "))
	}
	return findCookie(p.Input.CookieName, []cookie{{name: p.Input.CookieName, value: out.Cookie}})
}
