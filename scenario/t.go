package scenario

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	_ assert.TestingT  = (*T)(nil)
	_ require.TestingT = (*T)(nil)
)

// failNow unwinds a case body stopped with FailNow
type failNow struct{}

// T collects the failures of a single case. It can be handed to testify's
// assert and require packages.
type T struct {
	name     string
	failed   bool
	failures []string
	logger   hclog.Logger
}

func newT(name string, logger hclog.Logger) *T {
	return &T{
		name:   name,
		logger: logger.With("case", name),
	}
}

func (t *T) Name() string {
	return t.name
}

// Errorf records a failure and lets the case continue
func (t *T) Errorf(format string, args ...interface{}) {
	t.failed = true
	t.failures = append(t.failures, fmt.Sprintf(format, args...))
}

// FailNow marks the case failed and stops it
func (t *T) FailNow() {
	t.failed = true

	if len(t.failures) == 0 {
		t.failures = append(t.failures, "case stopped with FailNow")
	}

	panic(failNow{})
}

func (t *T) Failed() bool {
	return t.failed
}

func (t *T) Helper() {}

// Logf writes to the suite logger
func (t *T) Logf(format string, args ...interface{}) {
	t.logger.Info(fmt.Sprintf(format, args...))
}

func (t *T) run(ctx context.Context, body func(ctx context.Context, t *T)) {
	defer func() {
		p := recover()
		if p == nil {
			return
		}

		if _, ok := p.(failNow); ok {
			return
		}

		t.Errorf("panic: %v", p)
	}()

	body(ctx, t)
}
