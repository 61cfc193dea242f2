// Package batch holds the per-file outcome types shared by the transcriber
// and the summarizer. A stage never aborts on a single bad file; it records
// a Result and moves on, and callers inspect the Report.
package batch

import (
	"fmt"
	"path/filepath"
)

type Status string

const (
	StatusDone    Status = "done"
	StatusSkipped Status = "skipped"
	StatusFailed  Status = "failed"
)

// Result is the outcome of processing one input file.
type Result struct {
	Input  string
	Output string // empty when nothing was written
	Status Status
	Reason string
	Err    error
}

func Done(input, output string) Result {
	return Result{Input: input, Output: output, Status: StatusDone}
}

func Skipped(input, reason string) Result {
	return Result{Input: input, Status: StatusSkipped, Reason: reason}
}

func Failed(input string, err error) Result {
	return Result{Input: input, Status: StatusFailed, Reason: err.Error(), Err: err}
}

func (r Result) String() string {
	name := filepath.Base(r.Input)
	if r.Reason != "" {
		return fmt.Sprintf("%s: %s (%s)", name, r.Status, r.Reason)
	}
	return fmt.Sprintf("%s: %s", name, r.Status)
}

// Report aggregates the results of one stage run.
type Report struct {
	Stage   string
	Results []Result
}

func NewReport(stage string) *Report {
	return &Report{Stage: stage}
}

func (r *Report) Add(res Result) {
	r.Results = append(r.Results, res)
}

func (r *Report) Count(s Status) int {
	n := 0
	for _, res := range r.Results {
		if res.Status == s {
			n++
		}
	}
	return n
}

// Outputs lists the files written by successful items.
func (r *Report) Outputs() []string {
	var out []string
	for _, res := range r.Results {
		if res.Status == StatusDone && res.Output != "" {
			out = append(out, res.Output)
		}
	}
	return out
}

// Find returns the result for the given input base name.
func (r *Report) Find(name string) (Result, bool) {
	for _, res := range r.Results {
		if filepath.Base(res.Input) == name {
			return res, true
		}
	}
	return Result{}, false
}

func (r *Report) String() string {
	return fmt.Sprintf("%s: %d done, %d skipped, %d failed",
		r.Stage, r.Count(StatusDone), r.Count(StatusSkipped), r.Count(StatusFailed))
}
