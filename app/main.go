// Package main is an entrypoint for application
package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"runtime/debug"

	"github.com/Semior001/storyhook/app/cmd"
	"github.com/Semior001/storyhook/app/logging"
	"github.com/Semior001/storyhook/app/prompt"
	"github.com/Semior001/storyhook/app/webhook"
	"github.com/Semior001/storyhook/pkg/logx"
	"github.com/google/uuid"
	"github.com/jessevdk/go-flags"
	"golang.org/x/exp/slog"
)

type options struct {
	JSONLogs bool `long:"json-logs" env:"JSON_LOGS" description:"turn on json logs"`
	Debug    bool `long:"dbg" env:"DEBUG" description:"turn on debug mode"`
}

var version = "unknown"

func getVersion() string {
	v, ok := debug.ReadBuildInfo()
	if !ok || v.Main.Version == "(devel)" || v.Main.Version == "" {
		return version
	}
	return v.Main.Version
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr, webhook.DefaultURL))
}

// run parses flags and executes the send command, returning the exit code.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer, webhookURL string) int {
	_, _ = fmt.Fprintf(stdout, "storyhook, version: %s\n", getVersion())

	var opts options
	p := flags.NewParser(&opts, flags.HelpFlag)
	rest, err := p.ParseArgs(args)
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			p.WriteHelp(stdout)
			return 0
		}
		_, _ = fmt.Fprintf(stderr, "failed to parse flags: %v\n", err)
		return 1
	}

	if len(rest) > 0 {
		_, _ = fmt.Fprintf(stderr, "unexpected arguments: %v\n", rest)
		return 1
	}

	lg := logging.New(stderr, logging.Options{JSON: opts.JSONLogs, Debug: opts.Debug})
	slog.SetDefault(lg)

	ctx := logx.ContextWithRequestID(context.Background(), uuid.New().String())

	send := cmd.Send{
		Logger:   lg.With(slog.String("prefix", "send")),
		Prompter: prompt.New(stdin, stdout),
		Sender: webhook.NewClient(
			webhookURL,
			http.Client{Timeout: webhook.DefaultTimeout},
			webhook.WithLogger(lg.With(slog.String("prefix", "webhook"))),
		),
		Out: stdout,
	}

	if err := send.Execute(ctx); err != nil {
		lg.ErrorCtx(ctx, "failed to execute command", slog.Any("err", err))
		return 1
	}

	return 0
}
