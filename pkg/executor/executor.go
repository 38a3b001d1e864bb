// Package executor orchestrates the execution of a check suite.
// This file contains the main Execute function which expands the suite into
// cases and runs each one through Guard: load the dataset, run the check,
// classify and print the outcome. Every case loads the dataset afresh, so
// cases share no state and may run concurrently.
package executor

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"dqv/pkg/checks"
	"dqv/pkg/dataset"
	"dqv/pkg/suite"
)

// ExecutionResult represents the outcome of running a suite
type ExecutionResult struct {
	RunID       string        // Unique identifier of this run
	SuiteID     string        // Suite identifier
	DatasetPath string        // Dataset every case was loaded from
	Policy      FailurePolicy // Policy applied to intercepted failures
	Success     bool          // Whether every case was reported as passed
	StartTime   time.Time
	EndTime     time.Time
	Duration    float64       // Total duration in seconds
	CaseResults []*CaseResult // In suite order
	Error       error         // Overall error (if any)
}

// CaseResult represents the outcome of one parametrized check case
type CaseResult struct {
	Name      string      // e.g. no_null_values[Year]
	CheckType string
	Column    string
	Passed    bool        // What the run reports for this case
	Success   bool        // Whether the check itself held
	Swallowed bool        // Failed, but reported as passed
	Skipped   bool        // Not run because the run was cancelled
	Kind      FailureKind // Classification of the failure, if any
	Message   string      // Printed line
	Error     error
	StartTime time.Time
	EndTime   time.Time
	Duration  float64 // Case duration in seconds
}

// Failed returns how many cases did not hold, swallowed or not.
func (r *ExecutionResult) Failed() int {
	n := 0
	for _, c := range r.CaseResults {
		if !c.Success && !c.Skipped {
			n++
		}
	}
	return n
}

// Swallowed returns how many failed cases were reported as passed.
func (r *ExecutionResult) Swallowed() int {
	n := 0
	for _, c := range r.CaseResults {
		if c.Swallowed {
			n++
		}
	}
	return n
}

// ExecutorOptions provides configuration options for the executor
type ExecutorOptions struct {
	Policy   FailurePolicy
	Workers  int       // Cases run concurrently when > 1
	Output   io.Writer // Where per-case lines are printed
	Registry *checks.CheckRegistry
	Load     dataset.Options // Overrides the suite's dataset settings when set
}

// DefaultOptions returns the default executor options
func DefaultOptions() *ExecutorOptions {
	return &ExecutorOptions{
		Policy:   PolicyContinue,
		Workers:  1,
		Output:   os.Stdout,
		Registry: checks.DefaultRegistry,
	}
}

// LoadOptions derives dataset parsing options from a suite, letting any
// field set in override win.
func LoadOptions(s *suite.Suite, override dataset.Options) (dataset.Options, error) {
	opts := dataset.Options{
		RecordXPath: s.Dataset.RecordXPath,
		NullMarkers: s.Dataset.NullMarkers,
	}

	format, err := dataset.ParseFormat(s.Dataset.Format)
	if err != nil {
		return opts, err
	}
	opts.Format = format

	if s.Dataset.Delimiter != "" {
		opts.Delimiter, _ = utf8.DecodeRuneInString(s.Dataset.Delimiter)
	}

	if override.Format != "" {
		opts.Format = override.Format
	}
	if override.Delimiter != 0 {
		opts.Delimiter = override.Delimiter
	}
	if override.RecordXPath != "" {
		opts.RecordXPath = override.RecordXPath
	}
	if override.NullMarkers != nil {
		opts.NullMarkers = override.NullMarkers
	}
	return opts, nil
}

// Execute runs every case of the suite. Under PolicyContinue the returned
// error is nil even when checks fail; under PolicyFail it reports how many
// cases failed. A cancelled ctx skips the cases that have not started.
func Execute(ctx context.Context, s *suite.Suite, options *ExecutorOptions) (*ExecutionResult, error) {
	if options == nil {
		options = DefaultOptions()
	}
	if s == nil {
		return nil, fmt.Errorf("cannot execute nil suite")
	}
	registry := options.Registry
	if registry == nil {
		registry = checks.DefaultRegistry
	}
	policy := options.Policy
	if policy == "" {
		policy = PolicyContinue
	}

	loadOpts, err := LoadOptions(s, options.Load)
	if err != nil {
		return nil, fmt.Errorf("invalid dataset settings: %w", err)
	}

	result := &ExecutionResult{
		RunID:       uuid.NewString(),
		SuiteID:     s.Metadata.ID,
		DatasetPath: s.Dataset.Path,
		Policy:      policy,
		StartTime:   time.Now(),
	}

	cases := s.Cases()
	result.CaseResults = make([]*CaseResult, len(cases))

	slog.Info("Starting suite execution",
		"run_id", result.RunID,
		"suite", s.Metadata.ID,
		"dataset", s.Dataset.Path,
		"cases", len(cases),
		"policy", policy)

	runOne := func(i int) {
		c := cases[i]
		if ctx.Err() != nil {
			result.CaseResults[i] = &CaseResult{
				Name:      c.Name(),
				CheckType: c.Check.Type,
				Column:    c.Column,
				Skipped:   true,
				Error:     ctx.Err(),
			}
			return
		}

		slog.Debug("Executing case", "run_id", result.RunID, "case", c.Name())
		cr := Guard(options.Output, s.Dataset.Path, policy, func() (string, error) {
			ds, err := dataset.LoadWithOptions(s.Dataset.Path, loadOpts)
			if err != nil {
				return "", err
			}
			return registry.Execute(ds, c.Check, c.Column)
		})
		cr.Name = c.Name()
		cr.CheckType = c.Check.Type
		cr.Column = c.Column
		result.CaseResults[i] = cr

		slog.Debug("Case completed",
			"run_id", result.RunID,
			"case", cr.Name,
			"success", cr.Success,
			"passed", cr.Passed,
			"duration", cr.Duration)
	}

	if options.Workers > 1 {
		var g errgroup.Group
		g.SetLimit(options.Workers)
		for i := range cases {
			i := i
			g.Go(func() error {
				runOne(i)
				return nil
			})
		}
		_ = g.Wait()
	} else {
		for i := range cases {
			runOne(i)
		}
	}

	finalizeResult(result)

	skipped := 0
	for _, cr := range result.CaseResults {
		if cr.Skipped {
			skipped++
		}
	}

	switch {
	case skipped > 0:
		result.Error = fmt.Errorf("run cancelled, %d of %d cases skipped: %w", skipped, len(cases), ctx.Err())
	case policy == PolicyFail && result.Failed() > 0:
		result.Error = fmt.Errorf("%d of %d checks failed", result.Failed(), len(cases))
	}

	result.Success = result.Error == nil
	for _, cr := range result.CaseResults {
		if !cr.Passed {
			result.Success = false
		}
	}

	if result.Success {
		slog.Info("Suite execution finished",
			"run_id", result.RunID,
			"suite", s.Metadata.ID,
			"failed", result.Failed(),
			"swallowed", result.Swallowed(),
			"duration", result.Duration)
	} else {
		slog.Warn("Suite execution failed",
			"run_id", result.RunID,
			"suite", s.Metadata.ID,
			"failed", result.Failed(),
			"error", result.Error,
			"duration", result.Duration)
	}

	return result, result.Error
}

// finalizeResult completes the result structure with timing information
func finalizeResult(result *ExecutionResult) {
	result.EndTime = time.Now()
	result.Duration = result.EndTime.Sub(result.StartTime).Seconds()
}
