package wait

import (
	"fmt"
	"time"

	"github.com/gravitational/trace"
)

// ConditionTimeoutError is returned when a condition did not hold in time
type ConditionTimeoutError struct {
	Condition string
	Timeout   time.Duration
	Elapsed   time.Duration
}

func (e *ConditionTimeoutError) Error() string {
	return fmt.Sprintf("timed out after %v waiting for %v (timeout %v)",
		e.Elapsed.Round(time.Millisecond), e.Condition, e.Timeout)
}

// ConditionEvaluationError is returned when a condition failed to evaluate,
// for example because the session crashed
type ConditionEvaluationError struct {
	Condition string
	Err       error
}

func (e *ConditionEvaluationError) Error() string {
	return fmt.Sprintf("failed to evaluate %v: %v", e.Condition, trace.UserMessage(e.Err))
}

func (e *ConditionEvaluationError) Unwrap() error {
	return e.Err
}

// IsTimeout returns true if err is a ConditionTimeoutError
func IsTimeout(err error) bool {
	_, ok := trace.Unwrap(err).(*ConditionTimeoutError)
	return ok
}

// IsEvaluation returns true if err is a ConditionEvaluationError
func IsEvaluation(err error) bool {
	_, ok := trace.Unwrap(err).(*ConditionEvaluationError)
	return ok
}
