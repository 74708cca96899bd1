package logx

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-pkgz/requester/middleware"
	"github.com/samber/lo"
	"golang.org/x/exp/slog"
)

// RoundTripperOpts contains options for client logger.
type RoundTripperOpts struct {
	Level         slog.Level
	SecretHeaders []string
}

// LoggingRoundTripper logs every client request and the response to it,
// or the transport error if the request failed.
func LoggingRoundTripper(lg *slog.Logger, opts RoundTripperOpts) middleware.RoundTripperHandler {
	return func(next http.RoundTripper) http.RoundTripper {
		return middleware.RoundTripperFunc(func(req *http.Request) (*http.Response, error) {
			ctx := req.Context()

			reqEntry := requestEntry{
				Method:  req.Method,
				URL:     req.URL.String(),
				Headers: opts.headers(req.Header),
			}
			req.Body, reqEntry.Body = copyAndTrim(req.Body)

			lg.LogAttrs(ctx, opts.Level, "request sent", slog.Any("request", reqEntry))

			start := time.Now()
			resp, err := next.RoundTrip(req)
			elapsed := time.Since(start)

			if err != nil {
				lg.LogAttrs(ctx, opts.Level, "request failed",
					slog.Duration("elapsed", elapsed),
					slog.Any("err", err),
				)
				return resp, err
			}

			respEntry := responseEntry{
				StatusCode: resp.StatusCode,
				Headers:    opts.headers(resp.Header),
			}
			resp.Body, respEntry.Body = copyAndTrim(resp.Body)

			lg.LogAttrs(ctx, opts.Level, "response received",
				slog.Any("response", respEntry),
				slog.Duration("elapsed", elapsed),
			)

			return resp, nil
		})
	}
}

func (o RoundTripperOpts) headers(h http.Header) map[string]string {
	res := make(map[string]string, len(h))
	for k, vals := range h {
		if lo.Contains(o.SecretHeaders, k) {
			res[k] = "***"
			continue
		}
		res[k] = strings.Join(vals, ",")
	}
	return res
}

type requestEntry struct {
	Method  string
	URL     string
	Headers map[string]string
	Body    string
}

type responseEntry struct {
	StatusCode int
	Headers    map[string]string
	Body       string
}

const trimBodyAt = 1024

func copyAndTrim(r io.ReadCloser) (rd io.ReadCloser, result string) {
	if r == nil || r == http.NoBody {
		return r, ""
	}

	rd, result, read := readPortion(r, trimBodyAt)
	if read == trimBodyAt {
		result = result[:trimBodyAt] + "..."
	}
	result = strings.ReplaceAll(result, "\n", "")
	result = strings.ReplaceAll(result, "\t", "")

	return rd, result
}

func readPortion(src io.ReadCloser, limit int64) (rd io.ReadCloser, portion string, read int64) {
	buf := &bytes.Buffer{}

	read, err := io.CopyN(buf, src, limit)
	switch {
	case errors.Is(err, io.EOF):
		return &closer{rd: buf, closeFn: src.Close}, buf.String(), read
	case err != nil:
		// keep the read error for the caller, after the portion that was read
		return &closer{rd: io.MultiReader(buf, errReader{err: err}), closeFn: src.Close}, buf.String(), read
	}

	return &closer{rd: io.MultiReader(buf, src), closeFn: src.Close}, buf.String(), read
}

type closer struct {
	rd      io.Reader
	closeFn func() error
}

func (c *closer) Read(p []byte) (n int, err error) { return c.rd.Read(p) }
func (c *closer) Close() error                     { return c.closeFn() }

type errReader struct{ err error }

func (e errReader) Read([]byte) (int, error) { return 0, e.err }
