// Package webhook sends stories to the publishing webhook.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Semior001/storyhook/app/story"
	"github.com/Semior001/storyhook/pkg/logx"
	"github.com/go-pkgz/requester"
	"github.com/go-pkgz/requester/middleware"
	"golang.org/x/exp/slog"
)

// DefaultURL is the Make.com scenario hook that receives stories.
const DefaultURL = "https://hook.us2.make.com/w22pet4ujx4xssam6ejo66xunyxuessz"

// DefaultTimeout limits a single webhook call.
const DefaultTimeout = 30 * time.Second

// Result describes the outcome of a webhook call.
// StatusCode is zero if the request did not complete.
type Result struct {
	StatusCode int
	Body       string
	Err        error
}

// OK returns true only if the webhook responded with 200.
func (r Result) OK() bool { return r.StatusCode == http.StatusOK }

// Client posts stories to the webhook.
type Client struct {
	url string
	rq  *requester.Requester
	Options
}

// Options defines options for Client.
type Options struct {
	Logger *slog.Logger
}

// Option defines a function that configures Client.
type Option func(*Options)

// WithLogger sets the logger to use.
func WithLogger(lg *slog.Logger) Option {
	return func(o *Options) { o.Logger = lg }
}

// NewClient makes a new Client posting to the given url with the given http client.
func NewClient(url string, cl http.Client, opts ...Option) *Client {
	options := Options{Logger: slog.New(logx.NoOp())}
	for _, opt := range opts {
		opt(&options)
	}

	return &Client{
		url: url,
		rq: requester.New(cl,
			middleware.Header("Content-Type", "application/json"),
			logx.LoggingRoundTripper(options.Logger, logx.RoundTripperOpts{Level: slog.LevelDebug}),
		),
		Options: options,
	}
}

// Send posts the record to the webhook once. Failures to complete
// the exchange are reported as a Result with zero status code.
func (c *Client) Send(ctx context.Context, rec story.Record) Result {
	res, err := c.send(ctx, rec)
	if err != nil {
		c.Logger.WarnCtx(ctx, "webhook call failed", slog.Any("err", err))
		return Result{Body: fmt.Sprintf("Request error: %v", err), Err: err}
	}

	c.Logger.InfoCtx(ctx, "webhook responded", slog.Int("status", res.StatusCode))
	return res
}

func (c *Client) send(ctx context.Context, rec story.Record) (Result, error) {
	if err := rec.Validate(); err != nil {
		return Result{}, fmt.Errorf("invalid story: %w", err)
	}

	bts, err := json.Marshal(rec)
	if err != nil {
		return Result{}, fmt.Errorf("marshal story: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(bts))
	if err != nil {
		return Result{}, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.rq.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("do request: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.Logger.WarnCtx(ctx, "failed to close response body", slog.Any("err", err))
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Result{}, fmt.Errorf("read response body: %w", err)
	}

	return Result{StatusCode: resp.StatusCode, Body: string(body)}, nil
}
