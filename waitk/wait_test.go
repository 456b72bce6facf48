package waitk_test

import (
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"
	"gitlab.com/waitker/waitk"
)

func failing(attempts *int) waitk.Command[string] {
	return waitk.NewCommand("always fails", func(string) error {
		*attempts++
		return errors.New("boom")
	})
}

func TestWaitZeroTimeoutAttemptsOnce(t *testing.T) {
	attempts := 0
	err := waitk.NewWait("entity", 0, nil).For(failing(&attempts))
	if attempts != 1 {
		t.Fatalf("expected exactly one attempt, got %d\n", attempts)
	}

	var timeoutErr *waitk.TimeoutError
	if !errors.As(err, &timeoutErr) {
		t.Fatalf("expected timeout error got: %v\n", err)
	}
}

func TestWaitTimeoutLowerBound(t *testing.T) {
	attempts := 0
	timeout := 200 * time.Millisecond
	start := time.Now()
	err := waitk.NewWait("entity", timeout, nil).PollingEvery(10 * time.Millisecond).For(failing(&attempts))
	if err == nil {
		t.Fatalf("expected error")
	}
	if elapsed := time.Since(start); elapsed < timeout {
		t.Fatalf("timed out too early after %s\n", elapsed)
	}
	if attempts < 2 {
		t.Fatalf("expected retries, got %d attempts\n", attempts)
	}
}

func TestWaitReturnsOnSuccess(t *testing.T) {
	attempts := 0
	cmd := waitk.NewCommand("third time lucky", func(string) error {
		attempts++
		if attempts < 3 {
			return errors.New("not yet")
		}
		return nil
	})

	start := time.Now()
	err := waitk.NewWait("entity", 10*time.Second, nil).PollingEvery(time.Millisecond).For(cmd)
	if err != nil {
		t.Fatalf("error waiting: %s\n", err)
	}
	if attempts != 3 {
		t.Fatalf("expected 3 attempts got %d\n", attempts)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Fatalf("wait did not return on success, took %s\n", elapsed)
	}
}

func TestWaitTimeoutMessage(t *testing.T) {
	attempts := 0
	err := waitk.NewWait("browser.element(('css selector', '#id'))", 0, nil).For(failing(&attempts))
	msg := err.Error()
	for _, expected := range []string{
		"Timed out after 0s",
		"browser.element(('css selector', '#id')).always fails",
		"Reason: Error: boom",
	} {
		if !strings.Contains(msg, expected) {
			t.Fatalf("expected %q in message: %s\n", expected, msg)
		}
	}
}

func TestWaitTypedReason(t *testing.T) {
	cmd := waitk.NewCommand("index", func(string) error {
		return &waitk.IndexError{Index: 5, Length: 3}
	})
	err := waitk.NewWait("entity", 0, nil).For(cmd)
	if !strings.Contains(err.Error(), "Reason: IndexError: Cannot get element with index 5") {
		t.Fatalf("expected typed reason, got: %s\n", err)
	}
	var indexErr *waitk.IndexError
	if !errors.As(err, &indexErr) {
		t.Fatalf("expected timeout to unwrap to the index error")
	}
}

func TestWaitUntil(t *testing.T) {
	attempts := 0
	w := waitk.NewWait("entity", 0, nil)
	if w.Until(failing(&attempts)) {
		t.Fatalf("expected false for failing operation")
	}
	if !w.Until(waitk.NewCommand("ok", func(string) error { return nil })) {
		t.Fatalf("expected true for passing operation")
	}
}

func TestWaitFailureHook(t *testing.T) {
	attempts := 0
	hook := func(err error) error {
		return waitk.AddNote(err, "Screenshot: file:///tmp/1.png")
	}
	err := waitk.NewWait("entity", 0, nil).OrFailWith(hook).For(failing(&attempts))
	if !strings.HasSuffix(err.Error(), "\nScreenshot: file:///tmp/1.png") {
		t.Fatalf("expected hook note, got: %s\n", err)
	}
}

func TestWaitPermanentStopsAtOnce(t *testing.T) {
	attempts := 0
	cmd := waitk.NewCommand("closed", func(string) error {
		attempts++
		return waitk.Permanent(waitk.ErrDriverClosed)
	})
	err := waitk.NewWait("entity", 5*time.Second, nil).For(cmd)
	if attempts != 1 {
		t.Fatalf("expected one attempt got %d\n", attempts)
	}
	if !errors.Is(err, waitk.ErrDriverClosed) {
		t.Fatalf("expected driver closed, got %v\n", err)
	}
}

func TestForQuery(t *testing.T) {
	calls := 0
	q := waitk.NewQuery("counter", func(string) (int, error) {
		calls++
		if calls < 2 {
			return 0, errors.New("not ready")
		}
		return 42, nil
	})
	got, err := waitk.ForQuery(waitk.NewWait("entity", time.Second, nil).PollingEvery(time.Millisecond), q)
	if err != nil {
		t.Fatalf("error querying: %s\n", err)
	}
	if got != 42 {
		t.Fatalf("expected 42 got %d\n", got)
	}
}

func TestWaitBuildersCopy(t *testing.T) {
	w := waitk.NewWait("entity", time.Second, nil)
	longer := w.AtMost(time.Minute)
	if w.Timeout() != time.Second || longer.Timeout() != time.Minute {
		t.Fatalf("AtMost modified the original wait")
	}
	if longer.OrFailWith(func(err error) error { return err }).HookFailure() == nil || w.HookFailure() != nil {
		t.Fatalf("OrFailWith modified the original wait")
	}
}

func TestPipe(t *testing.T) {
	order := ""
	hook := waitk.Pipe(
		func(err error) error { order += "a"; return errors.Wrap(err, "a") },
		nil,
		func(err error) error { order += "b"; return errors.Wrap(err, "b") },
	)
	err := hook(errors.New("root"))
	if order != "ab" {
		t.Fatalf("expected hooks in order got %s\n", order)
	}
	if err.Error() != "b: a: root" {
		t.Fatalf("unexpected error: %s\n", err)
	}
	if waitk.Pipe(nil, nil) != nil {
		t.Fatalf("expected nil hook when nothing to pipe")
	}
}
