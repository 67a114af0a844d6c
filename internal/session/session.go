// Package session obtains the session cookie every API call carries. A run
// logs in once; the resulting Token is read-only afterwards.
package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

var ErrCookieNotFound = errors.New("session cookie not found")

// Token is a named session cookie.
type Token struct {
	Name  string
	Value string
}

// Cookie renders the token for a request.
func (t Token) Cookie() *http.Cookie {
	return &http.Cookie{Name: t.Name, Value: t.Value}
}

func (t Token) String() string {
	if t.Value == "" {
		return t.Name + "=<empty>"
	}
	return t.Name + "=<redacted>"
}

// Source logs in and returns the session token.
type Source interface {
	Login(ctx context.Context) (Token, error)
}

// Static returns a token known up front, e.g. from configuration.
type Static Token

func (s Static) Login(context.Context) (Token, error) {
	if s.Value == "" {
		return Token{}, fmt.Errorf("%w: %s has no value", ErrCookieNotFound, s.Name)
	}
	return Token(s), nil
}

type cookie struct{ name, value string }

func findCookie(name string, cookies []cookie) (Token, error) {
	for _, c := range cookies {
		if c.name == name && c.value != "" {
			return Token{Name: name, Value: c.value}, nil
		}
	}
	return Token{}, fmt.Errorf("%w: %s", ErrCookieNotFound, name)
}
