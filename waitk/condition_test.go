package waitk_test

import (
	"strings"
	"testing"

	"github.com/pkg/errors"
	"gitlab.com/waitker/waitk"
)

func pass(description string, calls *int) waitk.Condition[string] {
	return waitk.NewCondition(description, func(string) error {
		*calls++
		return nil
	})
}

func fail(description string, calls *int) waitk.Condition[string] {
	return waitk.NewCondition(description, func(string) error {
		*calls++
		return errors.New(description + " failed")
	})
}

func TestByAndShortCircuits(t *testing.T) {
	var a, b int
	err := waitk.ByAnd(fail("is a", &a), pass("is b", &b)).Call("e")
	if err == nil || err.Error() != "is a failed" {
		t.Fatalf("expected first failure, got %v\n", err)
	}
	if b != 0 {
		t.Fatalf("second condition should not be evaluated")
	}
}

func TestByOrShortCircuits(t *testing.T) {
	var a, b int
	if err := waitk.ByOr(pass("is a", &a), fail("is b", &b)).Call("e"); err != nil {
		t.Fatalf("expected success got %s\n", err)
	}
	if b != 0 {
		t.Fatalf("second condition should not be evaluated")
	}
}

func TestByOrFailingFirst(t *testing.T) {
	var a, b int
	if err := waitk.ByOr(fail("x", &a), pass("is b", &b)).Call("e"); err != nil {
		t.Fatalf("expected success got %s\n", err)
	}
}

func TestByOrAggregatesReasons(t *testing.T) {
	var a, b int
	err := waitk.ByOr(fail("is a", &a), fail("is b", &b)).Call("e")
	if err == nil || err.Error() != "is a failed; is b failed" {
		t.Fatalf("expected joined reasons, got %v\n", err)
	}
}

func TestDescriptions(t *testing.T) {
	var n int
	var tests = []struct {
		in       waitk.Condition[string]
		expected string
	}{
		{waitk.ByAnd(pass("is a", &n), pass("is b", &n)), "is a and is b"},
		{waitk.ByOr(pass("is a", &n), pass("is b", &n)), "is a or is b"},
		{waitk.AsNot(pass("is visible", &n)), "is not visible"},
		{waitk.AsNot(pass("has text 'x'", &n)), "has no text 'x'"},
		{waitk.AsNot(pass("have text 'x'", &n)), "have no text 'x'"},
		{waitk.AsNot(pass("is visible", &n), "is invisible"), "is invisible"},
		{pass("is a", &n).And(pass("is b", &n)).Not(), "is not a and is b"},
	}

	for _, tt := range tests {
		if tt.in.String() != tt.expected {
			t.Fatalf("expected %q got %q\n", tt.expected, tt.in.String())
		}
	}
}

func TestAsNot(t *testing.T) {
	var n int
	if err := waitk.AsNot(pass("is a", &n)).Call("e"); !errors.Is(err, waitk.ErrConditionNotMatched) {
		t.Fatalf("expected condition not matched got %v\n", err)
	}
	if err := waitk.AsNot(fail("is a", &n)).Call("e"); err != nil {
		t.Fatalf("expected negated failure to match: %s\n", err)
	}
	if err := waitk.AsNot(waitk.AsNot(pass("is a", &n))).Call("e"); err != nil {
		t.Fatalf("expected double negation to match: %s\n", err)
	}
}

func broken(description string, calls *int) waitk.Condition[string] {
	return waitk.NewCondition(description, func(string) error {
		*calls++
		return waitk.Permanent(waitk.ErrDriverClosed)
	})
}

func TestPermanentErrorsSurviveNegation(t *testing.T) {
	var n int
	err := waitk.AsNot(broken("is a", &n)).Call("e")
	if !waitk.IsPermanent(err) || !errors.Is(err, waitk.ErrDriverClosed) {
		t.Fatalf("expected negation to pass the permanent error through got %v\n", err)
	}
	if err := waitk.AsNot(waitk.AsNot(broken("is a", &n))).Call("e"); !waitk.IsPermanent(err) {
		t.Fatalf("expected double negation to keep the permanent error got %v\n", err)
	}
}

func TestPermanentErrorsSurviveOr(t *testing.T) {
	var a, b int
	err := waitk.ByOr(fail("is a", &a), broken("is b", &b)).Call("e")
	if !waitk.IsPermanent(err) {
		t.Fatalf("expected permanent error got %v\n", err)
	}
	if err.Error() != "is a failed; "+waitk.ErrDriverClosed.Error() {
		t.Fatalf("expected joined reasons got %s\n", err)
	}
	if err := waitk.ByOr(broken("is a", &a), pass("is b", &b)).Call("e"); err != nil {
		t.Fatalf("expected a matching branch to win: %s\n", err)
	}
	if err := waitk.ByOr(fail("is a", &a), fail("is b", &b)).Call("e"); waitk.IsPermanent(err) {
		t.Fatalf("ordinary failures must stay retryable: %s\n", err)
	}
}

func TestPredicate(t *testing.T) {
	var n int
	if !pass("is a", &n).Predicate()("e") {
		t.Fatalf("expected true")
	}
	if fail("is a", &n).Predicate()("e") {
		t.Fatalf("expected false")
	}
}

func TestRaiseIfNot(t *testing.T) {
	long := waitk.RaiseIfNot("is long", func(s string) (bool, error) {
		return len(s) > 3, nil
	})
	if err := long.Call("abcd"); err != nil {
		t.Fatalf("expected match: %s\n", err)
	}
	if err := long.Call("ab"); !errors.Is(err, waitk.ErrConditionNotMatched) {
		t.Fatalf("expected not matched got %v\n", err)
	}
}

func TestRaiseIfNotActual(t *testing.T) {
	length := waitk.NewQuery("length", func(s string) (int, error) {
		return len(s), nil
	})
	cond := waitk.RaiseIfNotActual("has length 3", length, func(n int) bool { return n == 3 })
	if err := cond.Call("abc"); err != nil {
		t.Fatalf("expected match: %s\n", err)
	}
	err := cond.Call("abcde")
	if err == nil || !strings.Contains(err.Error(), "actual length: 5") {
		t.Fatalf("expected actual value in error got %v\n", err)
	}
}
