// Package gateway translates list/get/create/update/delete intents into
// exactly one HTTP request each against the venue API and normalizes the
// heterogeneous response shapes into one canonical form.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ft-kumarsatyam/venue-management-system/internal/logger"
)

const (
	DefaultTimeout       = 30 * time.Second
	DefaultUploadTimeout = 2 * time.Minute
	DefaultAuthParam     = "auth"
)

// TokenSource returns the current access token. The gateway never refreshes
// tokens; an empty token or an error means "not authenticated".
type TokenSource interface {
	Token() (string, error)
}

// TokenFunc adapts a function to TokenSource.
type TokenFunc func() (string, error)

func (f TokenFunc) Token() (string, error) { return f() }

// StaticToken is a TokenSource returning a fixed token.
type StaticToken string

func (s StaticToken) Token() (string, error) { return string(s), nil }

// Config configures a Client.
type Config struct {
	BaseURL       string
	Tokens        TokenSource
	AuthParam     string        // query parameter carrying the token (default "auth")
	Timeout       time.Duration // normal calls (default 30s)
	UploadTimeout time.Duration // multipart calls carrying a file (default 2m)
	HTTPClient    *http.Client
}

// Client performs authenticated requests against the venue API.
type Client struct {
	baseURL       *url.URL
	http          *http.Client
	tokens        TokenSource
	authParam     string
	timeout       time.Duration
	uploadTimeout time.Duration
	log           *logrus.Entry
}

// NewClient validates cfg and builds a Client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("base URL is required")
	}
	u, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q: scheme and host are required", cfg.BaseURL)
	}
	if cfg.Tokens == nil {
		return nil, errors.New("token source is required")
	}

	c := &Client{
		baseURL:       u,
		http:          cfg.HTTPClient,
		tokens:        cfg.Tokens,
		authParam:     cfg.AuthParam,
		timeout:       cfg.Timeout,
		uploadTimeout: cfg.UploadTimeout,
		log:           logger.WithComponent("gateway"),
	}
	if c.http == nil {
		c.http = &http.Client{}
	}
	if c.authParam == "" {
		c.authParam = DefaultAuthParam
	}
	if c.timeout <= 0 {
		c.timeout = DefaultTimeout
	}
	if c.uploadTimeout <= 0 {
		c.uploadTimeout = DefaultUploadTimeout
	}
	return c, nil
}

// param is one query parameter; order is preserved on the wire.
type param struct {
	key, value string
}

// request is a fully described outgoing call.
type request struct {
	method string
	path   string
	params []param
	body   io.Reader
	ctype  string
	upload bool
	// anonymous requests carry no token, e.g. login.
	anonymous bool
}

// response is the raw result of a call that reached the server.
type response struct {
	status int
	body   []byte
}

// do sends req with the token appended and returns the raw response.
// It fails with a network error when nothing came back.
func (c *Client) do(ctx context.Context, req request) (*response, error) {
	params := req.params
	if !req.anonymous {
		token, err := c.tokens.Token()
		if err != nil || strings.TrimSpace(token) == "" {
			return nil, unauthenticatedError(0, err)
		}
		params = append(params, param{key: c.authParam, value: token})
	}

	timeout := c.timeout
	if req.upload {
		timeout = c.uploadTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	target := c.endpoint(req.path, params)

	httpReq, err := http.NewRequestWithContext(ctx, req.method, target, req.body)
	if err != nil {
		return nil, &Error{Kind: KindNetwork, Msg: "could not build request", Err: err}
	}
	httpReq.Header.Set("Accept", "application/json")
	if req.ctype != "" {
		httpReq.Header.Set("Content-Type", req.ctype)
	}

	start := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		timedOut := errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded)
		c.log.WithError(err).Warnf("%s %s failed", req.method, req.path)
		return nil, networkError(err, timedOut)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, networkError(err, errors.Is(ctx.Err(), context.DeadlineExceeded))
	}

	c.log.WithFields(logrus.Fields{
		"method":   req.method,
		"path":     req.path,
		"status":   resp.StatusCode,
		"duration": time.Since(start),
	}).Debug("request completed")

	return &response{status: resp.StatusCode, body: body}, nil
}

// endpoint joins the base URL, path and the ordered query parameters.
func (c *Client) endpoint(path string, params []param) string {
	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + "/" + strings.TrimLeft(path, "/")

	var sb strings.Builder
	for i, p := range params {
		if i > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(url.QueryEscape(p.key))
		sb.WriteByte('=')
		sb.WriteString(url.QueryEscape(p.value))
	}
	u.RawQuery = sb.String()
	return u.String()
}
