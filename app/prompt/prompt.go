// Package prompt collects a story from the user in an interactive session.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/Semior001/storyhook/app/story"
	"github.com/samber/lo"
)

var affirmative = []string{"y", "yes"}

var summaryTmpl = template.Must(template.New("summary").Parse(`
📊 Summary of data to send:
   Title: {{.Title}}
   Excerpt: {{.Excerpt}}
   URL: {{.URL}}
   Image: {{.ImageURL}}

`))

// Prompter reads answers line by line from the input
// and writes prompts to the output.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// New creates new Prompter.
func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// Collect prompts for every story field in order.
// It stops at the first empty answer and returns an error
// wrapping story.ErrEmptyField.
func (p *Prompter) Collect() (story.Record, error) {
	var rec story.Record
	for _, f := range story.Fields {
		v, err := p.ask(f.Prompt)
		if err != nil {
			return story.Record{}, fmt.Errorf("read %s: %w", f.Key, err)
		}

		if v == "" {
			ferr := &story.FieldError{Field: f}
			p.printf("❌ Error: %s\n", ferr.Error())
			return story.Record{}, ferr
		}

		f.Set(&rec, v)
	}

	return rec, nil
}

// Confirm shows the record and asks whether to send it.
// Only "y" and "yes" in any case are treated as agreement.
func (p *Prompter) Confirm(rec story.Record) (bool, error) {
	if err := summaryTmpl.Execute(p.out, rec); err != nil {
		return false, fmt.Errorf("execute summary template: %w", err)
	}

	answer, err := p.ask("🚀 Send to webhook? (y/N): ")
	if err != nil {
		return false, fmt.Errorf("read confirmation: %w", err)
	}

	return lo.Contains(affirmative, strings.ToLower(answer)), nil
}

// ask prints the prompt and reads a single trimmed line,
// end of input is treated as an empty line.
func (p *Prompter) ask(prompt string) (string, error) {
	p.printf("%s", prompt)

	line, err := p.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}

	return strings.TrimSpace(line), nil
}

func (p *Prompter) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(p.out, format, args...)
}
