// Package output prints user-facing progress lines for the CLI. Diagnostics
// go through the logger; this is what a person running a command reads.
package output

import (
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/nguyentantai21042004/meetscribe/internal/batch"
)

type Formatter struct {
	w io.Writer
}

func NewFormatter(w io.Writer) *Formatter {
	return &Formatter{w: w}
}

func (f *Formatter) RecordingStarted(path string, hint string) {
	fmt.Fprintf(f.w, "🎙️  Recording started: %s\n", path)
	if hint != "" {
		fmt.Fprintf(f.w, "   %s\n", hint)
	}
}

func (f *Formatter) RecordingStopped(duration time.Duration) {
	fmt.Fprintf(f.w, "🛑 Recording stopped (%s)\n", formatDuration(duration))
}

func (f *Formatter) Transcribing(dir string) {
	fmt.Fprintf(f.w, "🎧 Transcribing audio in %s...\n", dir)
}

func (f *Formatter) Summarizing(dir string) {
	fmt.Fprintf(f.w, "🤖 Generating summaries in %s...\n", dir)
}

// Report prints one line per item and a totals line.
func (f *Formatter) Report(r *batch.Report) {
	if r == nil {
		return
	}
	for _, res := range r.Results {
		switch res.Status {
		case batch.StatusDone:
			fmt.Fprintf(f.w, "  ✅ %s -> %s\n", filepath.Base(res.Input), filepath.Base(res.Output))
		case batch.StatusSkipped:
			fmt.Fprintf(f.w, "  ⏭️  %s: %s\n", filepath.Base(res.Input), res.Reason)
		case batch.StatusFailed:
			fmt.Fprintf(f.w, "  ❌ %s: %s\n", filepath.Base(res.Input), res.Reason)
		}
	}
	fmt.Fprintf(f.w, "📊 %s\n", r)
}

func (f *Formatter) Done(dir string) {
	fmt.Fprintf(f.w, "\n📁 Done: %s\n", dir)
}

func (f *Formatter) Error(msg string) {
	fmt.Fprintf(f.w, "❌ %s\n", msg)
}

func (f *Formatter) Info(msg string) {
	fmt.Fprintf(f.w, "ℹ️  %s\n", msg)
}

func (f *Formatter) Success(msg string) {
	fmt.Fprintf(f.w, "✅ %s\n", msg)
}

func (f *Formatter) Warning(msg string) {
	fmt.Fprintf(f.w, "⚠️  %s\n", msg)
}

func (f *Formatter) SetupCheck(name string, ok bool, detail string) {
	if ok {
		fmt.Fprintf(f.w, "  ✅ %s: %s\n", name, detail)
	} else {
		fmt.Fprintf(f.w, "  ❌ %s: %s\n", name, detail)
	}
}

func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	if m > 0 {
		return fmt.Sprintf("%dm%02ds", m, s)
	}
	return fmt.Sprintf("%ds", s)
}
