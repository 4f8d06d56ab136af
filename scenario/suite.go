package scenario

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/armon/go-metrics"
	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-multierror"
)

// Status is the outcome of a single case
type Status string

const (
	StatusPassed  Status = "passed"
	StatusFailed  Status = "failed"
	StatusPending Status = "pending"
)

// Case is a named test body. A case without a body is pending.
type Case struct {
	Name string
	Run  func(ctx context.Context, t *T)
}

// Suite is a setup step followed by cases run in declaration order
type Suite struct {
	Name  string
	Setup func(ctx context.Context) error
	Cases []Case
}

// CaseResult is the outcome of a case run
type CaseResult struct {
	Name     string        `json:"name"`
	Status   Status        `json:"status"`
	Duration time.Duration `json:"duration"`
	Failures []string      `json:"failures,omitempty"`
}

// Report is the outcome of a suite run
type Report struct {
	RunID     string        `json:"runID"`
	Suite     string        `json:"suite"`
	StartedAt time.Time     `json:"startedAt"`
	Duration  time.Duration `json:"duration"`
	SetupErr  string        `json:"setupError,omitempty"`
	Cases     []CaseResult  `json:"cases"`
}

// Count returns the number of cases with the given status
func (r *Report) Count(status Status) int {
	count := 0

	for _, c := range r.Cases {
		if c.Status == status {
			count++
		}
	}

	return count
}

// Err aggregates the failed cases. Pending cases are not failures.
func (r *Report) Err() error {
	var result *multierror.Error

	for _, c := range r.Cases {
		if c.Status != StatusFailed {
			continue
		}

		result = multierror.Append(result, fmt.Errorf("%s: %s", c.Name, strings.Join(c.Failures, "; ")))
	}

	return result.ErrorOrNil()
}

type Option func(*runner)

func WithLogger(logger hclog.Logger) Option {
	return func(r *runner) {
		r.logger = logger
	}
}

type runner struct {
	logger hclog.Logger
}

// Run executes the suite. Setup completes before any case starts; if it fails
// no case runs and every case is reported failed with the setup error.
func Run(ctx context.Context, suite Suite, opts ...Option) *Report {
	r := &runner{logger: hclog.NewNullLogger()}
	for _, opt := range opts {
		opt(r)
	}

	report := &Report{
		RunID:     uuid.New().String(),
		Suite:     suite.Name,
		StartedAt: time.Now().UTC(),
		Cases:     make([]CaseResult, 0, len(suite.Cases)),
	}

	logger := r.logger.Named("scenario").With("suite", suite.Name, "run", report.RunID)

	defer func() {
		report.Duration = time.Since(report.StartedAt)

		logger.Info("suite finished",
			"passed", report.Count(StatusPassed),
			"failed", report.Count(StatusFailed),
			"pending", report.Count(StatusPending),
			"duration", report.Duration)
	}()

	if err := runSetup(ctx, suite); err != nil {
		report.SetupErr = err.Error()
		logger.Error("suite setup failed", "err", err)

		for _, c := range suite.Cases {
			report.Cases = append(report.Cases, CaseResult{
				Name:     c.Name,
				Status:   StatusFailed,
				Failures: []string{fmt.Sprintf("setup failed: %v", err)},
			})
			metrics.IncrCounter([]string{"scenario", "cases", string(StatusFailed)}, 1)
		}

		return report
	}

	for _, c := range suite.Cases {
		result := runCase(ctx, c, logger)
		report.Cases = append(report.Cases, result)

		metrics.IncrCounter([]string{"scenario", "cases", string(result.Status)}, 1)
	}

	return report
}

func runSetup(ctx context.Context, suite Suite) (err error) {
	if suite.Setup == nil {
		return nil
	}

	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic: %v", p)
		}
	}()

	return suite.Setup(ctx)
}

func runCase(ctx context.Context, c Case, logger hclog.Logger) CaseResult {
	result := CaseResult{Name: c.Name}

	if c.Run == nil {
		result.Status = StatusPending
		logger.Info("case pending", "case", c.Name)

		return result
	}

	if err := ctx.Err(); err != nil {
		result.Status = StatusFailed
		result.Failures = []string{err.Error()}

		return result
	}

	t := newT(c.Name, logger)
	start := time.Now()

	t.run(ctx, c.Run)

	result.Duration = time.Since(start)
	result.Failures = t.failures

	if t.Failed() {
		result.Status = StatusFailed
		logger.Warn("case failed", "case", c.Name, "failures", len(t.failures), "duration", result.Duration)
	} else {
		result.Status = StatusPassed
		logger.Info("case passed", "case", c.Name, "duration", result.Duration)
	}

	return result
}
