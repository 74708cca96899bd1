// Package cmd contains commands for the application.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/Semior001/storyhook/app/prompt"
	"github.com/Semior001/storyhook/app/story"
	"github.com/Semior001/storyhook/app/webhook"
	"golang.org/x/exp/slog"
)

// ErrWebhookFailed is returned when the webhook did not respond with 200.
var ErrWebhookFailed = errors.New("webhook call failed")

// Sender sends a story to the webhook.
type Sender interface {
	Send(ctx context.Context, rec story.Record) webhook.Result
}

// Send is a command to collect a story from the user
// and post it to the webhook.
type Send struct {
	Logger   *slog.Logger
	Prompter *prompt.Prompter
	Sender   Sender
	Out      io.Writer
}

// Execute runs the command. A nil error is returned on success
// and when the user cancels sending.
func (s Send) Execute(ctx context.Context) error {
	s.printf("🌐 Story Webhook Bot\n===================\n\n")

	rec, err := s.Prompter.Collect()
	if err != nil {
		return fmt.Errorf("collect story: %w", err)
	}

	ok, err := s.Prompter.Confirm(rec)
	if err != nil {
		return fmt.Errorf("confirm story: %w", err)
	}

	if !ok {
		s.Logger.DebugCtx(ctx, "sending cancelled by user")
		s.printf("❌ Operation cancelled.\n")
		return nil
	}

	s.printf("📤 Sending data to webhook...\n\n")

	res := s.Sender.Send(ctx, rec)

	s.printf("📊 Response Status: %d\n", res.StatusCode)
	s.printf("📄 Response Body: %s\n\n", res.Body)

	if !res.OK() {
		s.printf("❌ Error! Failed to send data to webhook.\n")
		s.printf("   Status: %d\n", res.StatusCode)
		s.printf("   Response: %s\n", res.Body)
		if res.Err != nil {
			return fmt.Errorf("%w: %w", ErrWebhookFailed, res.Err)
		}
		return fmt.Errorf("%w: status %d", ErrWebhookFailed, res.StatusCode)
	}

	s.printf("✅ Success! Story data sent successfully to webhook.\n")
	return nil
}

func (s Send) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(s.Out, format, args...)
}
