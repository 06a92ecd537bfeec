// Package tracker is the terminal front end of an inference session. Reviews
// span one or more lines and are submitted by a blank line.
package tracker

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spacesedan/sentitrack/internal/models"
	"github.com/spacesedan/sentitrack/internal/sentiment"
	"github.com/spacesedan/sentitrack/internal/session"
)

const (
	CMD_RESET   = ":reset"
	CMD_HISTORY = ":history"
	CMD_QUIT    = ":quit"

	BAR_WIDTH = 40
	PROMPT    = "> "
)

type ReviewClassifier interface {
	Classify(ctx context.Context, sess *session.Session, review string) (*models.ClassificationResult, error)
}

type Tracker struct {
	pipeline ReviewClassifier
	session  *session.Session
	out      io.Writer
}

func New(pipeline ReviewClassifier, sess *session.Session, out io.Writer) *Tracker {
	return &Tracker{pipeline: pipeline, session: sess, out: out}
}

// Run reads in until EOF, :quit or ctx is done. A pending review is submitted
// at EOF.
func (t *Tracker) Run(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var pending []string
	fmt.Fprintf(t.out, "Enter a review, then a blank line to classify. Commands: %s %s %s\n", CMD_RESET, CMD_HISTORY, CMD_QUIT)
	fmt.Fprint(t.out, PROMPT)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line := scanner.Text()

		switch strings.TrimSpace(line) {
		case CMD_QUIT:
			return nil
		case CMD_RESET:
			pending = nil
			t.session.Do(func(h *session.History) { h.Reset() })
			fmt.Fprintln(t.out, "History cleared.")
		case CMD_HISTORY:
			t.printHistory()
		case "":
			t.submit(ctx, strings.Join(pending, "\n"))
			pending = nil
		default:
			pending = append(pending, line)
			continue
		}
		fmt.Fprint(t.out, PROMPT)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("[Tracker] failed to read input: %w", err)
	}

	if len(pending) > 0 {
		t.submit(ctx, strings.Join(pending, "\n"))
	}
	return nil
}

func (t *Tracker) submit(ctx context.Context, review string) {
	result, err := t.pipeline.Classify(ctx, t.session, review)
	switch {
	case errors.Is(err, sentiment.ErrEmptyInput):
		return
	case err != nil:
		fmt.Fprintf(t.out, "Error: %v\n", err)
		return
	}

	fmt.Fprintln(t.out, RenderResult(result))
	t.printHistory()
}

func (t *Tracker) printHistory() {
	var view models.HistoryView
	t.session.Do(func(h *session.History) { view = h.View() })
	fmt.Fprintln(t.out, RenderHistory(view))
}

func RenderResult(r *models.ClassificationResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s %3d%%\n", ProgressBar(r.Progress, BAR_WIDTH), r.Progress)
	b.WriteString(r.Banner)
	if r.Cached {
		b.WriteString(" [cached]")
	}
	fmt.Fprintf(&b, "\nConfidence: %s\n", r.Bucket)

	if len(r.TopTerms) > 0 {
		b.WriteString("Top terms:")
		for _, tw := range r.TopTerms {
			fmt.Fprintf(&b, " %s(%+.3f)", tw.Term, tw.Weight)
		}
		b.WriteString("\n")
	}
	if r.Baseline != nil {
		fmt.Fprintf(&b, "Lexicon baseline: %s (%+.3f)\n", r.Baseline.Label, r.Baseline.Compound)
	}

	return strings.TrimRight(b.String(), "\n")
}

func RenderHistory(view models.HistoryView) string {
	if view.Size == 0 {
		return "History: empty"
	}

	parts := make([]string, len(view.Scores))
	for i, s := range view.Scores {
		parts[i] = fmt.Sprintf("%.2f", s)
	}
	line := fmt.Sprintf("History (%d): %s", view.Size, strings.Join(parts, " "))

	if view.Trend != nil {
		line += fmt.Sprintf("\nTrend: mean %.2f, change %+.2f", view.Trend.Mean, view.Trend.Delta)
	}
	return line
}

// ProgressBar draws progress (0-100) as a bar of width cells.
func ProgressBar(progress, width int) string {
	progress = max(0, min(progress, 100))
	filled := progress * width / 100
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}
