package logx

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-pkgz/requester"
	"github.com/go-pkgz/requester/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

func TestLoggingRoundTripper(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.Equal(t, `{"title":"Test"}`, string(body), "body is still readable by the server")

		w.Header().Set("X-Token", "secret")
		w.WriteHeader(http.StatusAccepted)
		_, _ = w.Write([]byte("Accepted"))
	}))
	defer ts.Close()

	buf := &bytes.Buffer{}
	lg := slog.New(slog.HandlerOptions{Level: slog.LevelDebug}.NewTextHandler(buf))

	rq := requester.New(http.Client{}, LoggingRoundTripper(lg, RoundTripperOpts{
		Level:         slog.LevelDebug,
		SecretHeaders: []string{"Authorization", "X-Token"},
	}))

	req, err := http.NewRequest(http.MethodPost, ts.URL, strings.NewReader(`{"title":"Test"}`))
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer token")

	resp, err := rq.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "Accepted", string(body), "body is still readable by the client")

	logs := buf.String()
	assert.Contains(t, logs, "request sent")
	assert.Contains(t, logs, "response received")
	assert.Contains(t, logs, "Accepted")
	assert.Contains(t, logs, "202")
	assert.NotContains(t, logs, "Bearer token")
	assert.NotContains(t, logs, "secret")
}

func TestLoggingRoundTripper_TransportError(t *testing.T) {
	buf := &bytes.Buffer{}
	lg := slog.New(slog.HandlerOptions{}.NewTextHandler(buf))

	failing := middleware.RoundTripperFunc(func(*http.Request) (*http.Response, error) {
		return nil, errors.New("connection refused")
	})

	rt := LoggingRoundTripper(lg, RoundTripperOpts{Level: slog.LevelInfo})(failing)

	req, err := http.NewRequest(http.MethodPost, "http://localhost", strings.NewReader("{}"))
	require.NoError(t, err)

	resp, err := rt.RoundTrip(req)
	require.Error(t, err)
	assert.Nil(t, resp)

	assert.Contains(t, buf.String(), "request failed")
	assert.Contains(t, buf.String(), "connection refused")
}

func TestCopyAndTrim(t *testing.T) {
	t.Run("short body", func(t *testing.T) {
		rd, portion := copyAndTrim(io.NopCloser(strings.NewReader("line\n\twith tab")))
		assert.Equal(t, "linewith tab", portion)

		full, err := io.ReadAll(rd)
		require.NoError(t, err)
		assert.Equal(t, "line\n\twith tab", string(full))
	})

	t.Run("long body", func(t *testing.T) {
		src := strings.Repeat("a", trimBodyAt+10)
		rd, portion := copyAndTrim(io.NopCloser(strings.NewReader(src)))
		assert.Equal(t, strings.Repeat("a", trimBodyAt)+"...", portion)

		full, err := io.ReadAll(rd)
		require.NoError(t, err)
		assert.Equal(t, src, string(full))
	})

	t.Run("read error kept", func(t *testing.T) {
		readErr := errors.New("unexpected EOF")
		src := io.NopCloser(io.MultiReader(strings.NewReader("partial"), errReader{err: readErr}))

		rd, portion := copyAndTrim(src)
		assert.Equal(t, "partial", portion)

		full, err := io.ReadAll(rd)
		assert.ErrorIs(t, err, readErr)
		assert.Equal(t, "partial", string(full))
	})

	t.Run("no body", func(t *testing.T) {
		rd, portion := copyAndTrim(nil)
		assert.Nil(t, rd)
		assert.Empty(t, portion)
	})
}
