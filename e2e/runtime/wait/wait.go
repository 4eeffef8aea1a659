// Package wait polls conditions against a browser session until they
// are satisfied or time out
package wait

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/gravitational/trace"
	"github.com/jmptrader/robotest-web/e2e/runtime/session"
	log "github.com/sirupsen/logrus"
)

const (
	// DefaultTimeout is used when the waiter is not given one
	DefaultTimeout = 30 * time.Second
	// DefaultPollInterval is the delay between condition evaluations
	DefaultPollInterval = 500 * time.Millisecond
)

// State is the state of a single wait
type State int

const (
	Pending State = iota
	Satisfied
	TimedOut
	Cancelled
	// Failed means the condition could not be evaluated
	Failed
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Satisfied:
		return "satisfied"
	case TimedOut:
		return "timed out"
	case Cancelled:
		return "cancelled"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Result describes a finished wait
type Result struct {
	State State
	// Value is what the condition produced when satisfied
	Value interface{}
	// Elapsed is the time spent waiting
	Elapsed time.Duration
	// Attempts is the number of times the condition was evaluated
	Attempts int
}

// Check evaluates a condition once. It returns done=false if the condition
// does not hold yet, and an error if it can never hold.
type Check func(s session.Session) (value interface{}, done bool, err error)

// Condition is a named Check
type Condition struct {
	Name  string
	Check Check
}

func (c Condition) String() string {
	return c.Name
}

// Waiter polls conditions against one session
type Waiter struct {
	session  session.Session
	timeout  time.Duration
	interval time.Duration
}

// Option configures a Waiter
type Option func(*Waiter)

// WithTimeout sets the default timeout
func WithTimeout(timeout time.Duration) Option {
	return func(w *Waiter) {
		if timeout > 0 {
			w.timeout = timeout
		}
	}
}

// WithPollInterval sets the delay between evaluations
func WithPollInterval(interval time.Duration) Option {
	return func(w *Waiter) {
		if interval > 0 {
			w.interval = interval
		}
	}
}

// New returns a waiter for s
func New(s session.Session, opts ...Option) *Waiter {
	w := &Waiter{
		session:  s,
		timeout:  DefaultTimeout,
		interval: DefaultPollInterval,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Session returns the session this waiter polls
func (w *Waiter) Session() session.Session {
	return w.session
}

// Timeout returns the default timeout
func (w *Waiter) Timeout() time.Duration {
	return w.timeout
}

// Until waits for cond with the default timeout
func (w *Waiter) Until(cond Condition) (Result, error) {
	return w.UntilContext(context.Background(), cond, w.timeout)
}

// WaitUntil blocks until cond is satisfied or timeout elapses.
// A non-positive timeout uses the waiter default.
func (w *Waiter) WaitUntil(cond Condition, timeout time.Duration) (Result, error) {
	return w.UntilContext(context.Background(), cond, timeout)
}

// UntilContext is WaitUntil that also stops when ctx is done
func (w *Waiter) UntilContext(ctx context.Context, cond Condition, timeout time.Duration) (Result, error) {
	if timeout <= 0 {
		timeout = w.timeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	logger := log.WithField("condition", cond.Name)
	logger.Debugf("waiting up to %v", timeout)

	var result Result
	start := time.Now()
	operation := func() error {
		result.Attempts++
		value, done, err := cond.Check(w.session)
		if err != nil {
			return backoff.Permanent(&ConditionEvaluationError{Condition: cond.Name, Err: err})
		}
		if !done {
			return errNotYet
		}
		result.Value = value
		return nil
	}

	policy := backoff.WithContext(backoff.NewConstantBackOff(w.interval), ctx)
	err := backoff.Retry(operation, policy)
	result.Elapsed = time.Since(start)

	var evalErr *ConditionEvaluationError
	switch {
	case err == nil:
		result.State = Satisfied
		logger.Debugf("satisfied after %v", result.Elapsed)
		return result, nil
	case errors.As(err, &evalErr):
		result.State = Failed
		logger.Warnf("evaluation failed after %v: %v", result.Elapsed, evalErr)
		return result, trace.Wrap(evalErr)
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, errNotYet):
		result.State = TimedOut
		return result, trace.Wrap(&ConditionTimeoutError{
			Condition: cond.Name,
			Timeout:   timeout,
			Elapsed:   result.Elapsed,
		})
	case errors.Is(err, context.Canceled):
		result.State = Cancelled
		return result, trace.Wrap(err, "wait for %v cancelled", cond.Name)
	default:
		result.State = Failed
		return result, trace.Wrap(err)
	}
}

// Sleep blocks unconditionally.
// Prefer a condition; this exists for CSS transitions with nothing to observe.
func (w *Waiter) Sleep(d time.Duration) {
	log.Debugf("sleeping for %v", d)
	time.Sleep(d)
}

var errNotYet = errors.New("condition not satisfied yet")
