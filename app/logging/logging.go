// Package logging sets up the application logger.
package logging

import (
	"io"

	"github.com/Semior001/storyhook/pkg/logx"
	"golang.org/x/exp/slog"
)

// Options defines logger parameters.
type Options struct {
	JSON  bool
	Debug bool
}

// New makes a logger writing to w. Every record gets the request id
// from the context, if there is one.
func New(w io.Writer, opts Options) *slog.Logger {
	handler := slog.HandlerOptions{
		AddSource:   false,
		Level:       slog.LevelInfo,
		ReplaceAttr: nil,
	}

	if opts.Debug {
		handler.Level = slog.LevelDebug
		handler.AddSource = true
	}

	var h slog.Handler = handler.NewTextHandler(w)
	if opts.JSON {
		h = handler.NewJSONHandler(w)
	}

	return slog.New(&logx.Chain{
		Middleware: []logx.Middleware{logx.RequestID},
		Handler:    h,
	})
}
