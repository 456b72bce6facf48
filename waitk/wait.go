package waitk

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

// DefaultPollInterval between attempts of a Wait
const DefaultPollInterval = 50 * time.Millisecond

// Callable is anything a Wait can poll: conditions and commands
type Callable[E any] interface {
	fmt.Stringer
	Call(entity E) error
}

// Wait polls an operation against one entity until it succeeds or the timeout passes.
type Wait[E any] struct {
	entity  E
	timeout time.Duration
	poll    time.Duration
	hook    FailureHook
}

// NewWait bound to entity. A nil hook returns timeouts unchanged.
func NewWait[E any](entity E, timeout time.Duration, hook FailureHook) Wait[E] {
	return Wait[E]{entity: entity, timeout: timeout, poll: DefaultPollInterval, hook: hook}
}

// Entity the wait is bound to
func (w Wait[E]) Entity() E {
	return w.entity
}

// Timeout of the wait
func (w Wait[E]) Timeout() time.Duration {
	return w.timeout
}

// HookFailure returns the hook applied to timeouts
func (w Wait[E]) HookFailure() FailureHook {
	return w.hook
}

// AtMost returns a copy of the wait with a different timeout
func (w Wait[E]) AtMost(timeout time.Duration) Wait[E] {
	w.timeout = timeout
	return w
}

// PollingEvery returns a copy of the wait sleeping interval between attempts
func (w Wait[E]) PollingEvery(interval time.Duration) Wait[E] {
	w.poll = interval
	return w
}

// OrFailWith returns a copy of the wait using hook on timeouts
func (w Wait[E]) OrFailWith(hook FailureHook) Wait[E] {
	w.hook = hook
	return w
}

// For calls fn until it returns nil. The first attempt always happens, even with a
// zero timeout. Once the deadline passes the last error is returned as a
// *TimeoutError passed through the failure hook. Errors marked Permanent are
// returned at once.
func (w Wait[E]) For(fn Callable[E]) error {
	deadline := time.Now().Add(w.timeout)
	for {
		err := fn.Call(w.entity)
		if err == nil {
			return nil
		}

		if IsPermanent(err) {
			return err
		}

		remaining := time.Until(deadline)
		if remaining <= 0 {
			return w.fail(fn.String(), err)
		}
		time.Sleep(min(w.poll, remaining))
	}
}

func (w Wait[E]) fail(operation string, reason error) error {
	entity := fmt.Sprint(w.entity)
	log.Debug().Str("entity", entity).Str("operation", operation).Dur("timeout", w.timeout).Err(reason).Msg("wait timed out")

	timeoutErr := newTimeoutError(w.timeout, entity, operation, reason)
	if w.hook == nil {
		return timeoutErr
	}
	if err := w.hook(timeoutErr); err != nil {
		return err
	}
	return timeoutErr
}

// Until is For that reports success instead of returning an error.
func (w Wait[E]) Until(fn Callable[E]) bool {
	return w.For(fn) == nil
}

// Command polls an inline command
func (w Wait[E]) Command(description string, fn func(entity E) error) error {
	return w.For(NewCommand(description, fn))
}

// ForQuery polls q until it returns without error and hands back its result.
func ForQuery[E, R any](w Wait[E], q Query[E, R]) (R, error) {
	var result R
	err := w.For(NewCommand(q.String(), func(entity E) error {
		r, err := q.Call(entity)
		if err != nil {
			return err
		}
		result = r
		return nil
	}))
	return result, err
}

// WaitQuery polls an inline query
func WaitQuery[E, R any](w Wait[E], description string, fn func(entity E) (R, error)) (R, error) {
	return ForQuery(w, NewQuery(description, fn))
}
