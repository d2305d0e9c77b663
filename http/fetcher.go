// Package http provides HTTP implementations of vipbot services: a fetcher
// for the published dataset, a webhook notifier, and the command API server.
package http

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/fwojciec/vipbot"
)

// DefaultFetchTimeout is the default timeout for a single HTTP request.
const DefaultFetchTimeout = 10 * time.Second

// DefaultMaxBodySize is the default cap on a response body.
const DefaultMaxBodySize = 10 << 20

// Fetcher retrieves text and JSON documents with single GET requests.
// Failures are reported as EUNAVAILABLE errors.
type Fetcher struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
	maxBody   int64
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithMaxBodySize sets the largest response body accepted, in bytes.
// Defaults to DefaultMaxBodySize (10 MiB) if not specified.
func WithMaxBodySize(n int64) Option {
	return func(f *Fetcher) {
		f.maxBody = n
	}
}

// NewFetcher creates a new Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:   DefaultFetchTimeout,
		userAgent: "vipbot",
		maxBody:   DefaultMaxBodySize,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// FetchText retrieves the body of url as text.
func (f *Fetcher) FetchText(ctx context.Context, url string) (string, error) {
	body, err := f.get(ctx, url, "text/plain, */*")
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// FetchJSON retrieves url and decodes its JSON body into v.
func (f *Fetcher) FetchJSON(ctx context.Context, url string, v any) error {
	body, err := f.get(ctx, url, "application/json")
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return &vipbot.Error{Code: vipbot.EUNAVAILABLE, Message: fmt.Sprintf("invalid JSON from %s", url), Err: err}
	}
	return nil
}

func (f *Fetcher) get(ctx context.Context, url, accept string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, vipbot.Errorf(vipbot.EINVALID, "invalid URL %q", url)
	}
	req.Header.Set("Accept", accept)
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &vipbot.Error{Code: vipbot.EUNAVAILABLE, Message: fmt.Sprintf("request to %s failed", url), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, vipbot.Errorf(vipbot.EUNAVAILABLE, "HTTP %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBody+1))
	if err != nil {
		return nil, &vipbot.Error{Code: vipbot.EUNAVAILABLE, Message: fmt.Sprintf("reading %s failed", url), Err: err}
	}
	if int64(len(body)) > f.maxBody {
		return nil, vipbot.Errorf(vipbot.EUNAVAILABLE, "response from %s exceeds %d bytes", url, f.maxBody)
	}

	return body, nil
}
