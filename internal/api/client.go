// Package api is the authenticated HTTP client for the HR REST API. Every
// operation sends one request carrying the session cookie and extracts a
// fixed set of fields from the response's "data" element.
package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"hrm-qa/internal/extract"
	"hrm-qa/internal/session"
)

const DefaultTimeout = 30 * time.Second

// Response is what an operation hands back to the caller.
type Response struct {
	Method      string
	URL         string
	RequestBody string

	StatusCode int
	// Status is the status line, e.g. "HTTP/1.1 200 OK".
	Status string
	Header http.Header
	Body   []byte

	Data       *extract.Result
	DurationMs float64
}

// Values is shorthand for r.Data.Values(field).
func (r *Response) Values(field string) []any {
	if r == nil || r.Data == nil {
		return []any{}
	}
	return r.Data.Values(field)
}

type Client struct {
	baseURL string
	token   session.Token

	httpClient *http.Client
	log        *zap.Logger
	extractor  *extract.Extractor
}

// NewClient returns a client for baseURL that authenticates with tok. The
// token is never changed by the client.
func NewClient(baseURL string, tok session.Token) *Client {
	log := zap.NewNop()
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      tok,
		httpClient: &http.Client{Transport: NewTransport(), Timeout: DefaultTimeout},
		log:        log,
		extractor:  extract.New(log),
	}
}

// NewTransport returns the pooled transport the client uses by default. It
// speaks HTTP/1.1 only, including over TLS, so status lines read
// "HTTP/1.1 ...".
func NewTransport() *http.Transport {
	var protos http.Protocols
	protos.SetHTTP1(true)
	return &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        16,
		MaxIdleConnsPerHost: 8,
		IdleConnTimeout:     90 * time.Second,
		Protocols:           &protos,
	}
}

func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	if hc != nil {
		c.httpClient = hc
	}
	return c
}

func (c *Client) WithLogger(l *zap.Logger) *Client {
	if l == nil {
		l = zap.NewNop()
	}
	c.log = l
	c.extractor = extract.New(l)
	return c
}

// WithTimeout sets the per-request timeout on a copy of the HTTP client, so a
// client passed to WithHTTPClient is left as it was.
func (c *Client) WithTimeout(d time.Duration) *Client {
	if d > 0 {
		hc := *c.httpClient
		hc.Timeout = d
		c.httpClient = &hc
	}
	return c
}

func (c *Client) BaseURL() string { return c.baseURL }

// CloseIdleConnections releases kept-alive connections at the end of a run.
func (c *Client) CloseIdleConnections() { c.httpClient.CloseIdleConnections() }

// ---- request primitives ----

func (c *Client) newRequest(ctx context.Context, method, endpoint string, body *string) (*http.Request, error) {
	var rd io.Reader
	if body != nil {
		rd = bytes.NewBufferString(*body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.url(endpoint), rd)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	if body != nil {
		c.log.Debug("request body", zap.String("method", method), zap.String("endpoint", endpoint), zap.String("body", *body))
	}
	return req, nil
}

// withSession attaches the session cookie and the JSON content type.
func (c *Client) withSession(req *http.Request) {
	req.AddCookie(c.token.Cookie())
	req.Header.Set("Content-Type", "application/json")
}

// send performs req and extracts fields from the response. Only transport
// failures are errors; any status code is a valid response.
func (c *Client) send(req *http.Request, fields ...string) (*Response, error) {
	out := &Response{Method: req.Method, URL: req.URL.String()}
	if req.GetBody != nil {
		if rc, err := req.GetBody(); err == nil {
			b, _ := io.ReadAll(rc)
			out.RequestBody = string(b)
		}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	out.DurationMs = float64(time.Since(start).Milliseconds())

	out.StatusCode = resp.StatusCode
	out.Status = resp.Proto + " " + resp.Status
	out.Header = resp.Header
	out.Body = data
	out.Data = c.extractor.Extract(resp.StatusCode, data, fields)

	c.log.Debug("response",
		zap.String("method", out.Method),
		zap.String("url", out.URL),
		zap.Int("status", out.StatusCode),
		zap.String("shape", string(out.Data.Shape)),
		zap.Int("records", out.Data.Len()),
	)
	return out, nil
}

func (c *Client) url(endpoint string) string {
	if strings.HasPrefix(endpoint, "http://") || strings.HasPrefix(endpoint, "https://") {
		return endpoint
	}
	if !strings.HasPrefix(endpoint, "/") {
		endpoint = "/" + endpoint
	}
	return c.baseURL + endpoint
}
