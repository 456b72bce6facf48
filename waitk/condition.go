package waitk

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Condition is a named check over an entity; it returns nil when matched.
type Condition[E any] struct {
	description string
	fn          func(entity E) error
}

// NewCondition from a description and check function
func NewCondition[E any](description string, fn func(entity E) error) Condition[E] {
	return Condition[E]{description: description, fn: fn}
}

// Call evaluates the condition against entity
func (c Condition[E]) Call(entity E) error {
	return c.fn(entity)
}

func (c Condition[E]) String() string {
	return c.description
}

// Predicate views the condition as a filter; any error counts as false.
func (c Condition[E]) Predicate() func(entity E) bool {
	return func(entity E) bool {
		return c.fn(entity) == nil
	}
}

// And this condition with another
func (c Condition[E]) And(other Condition[E]) Condition[E] {
	return ByAnd(c, other)
}

// Or this condition with another
func (c Condition[E]) Or(other Condition[E]) Condition[E] {
	return ByOr(c, other)
}

// Not inverts the condition
func (c Condition[E]) Not() Condition[E] {
	return AsNot(c)
}

// ByAnd matches when every condition matches, stopping at the first failure.
func ByAnd[E any](conditions ...Condition[E]) Condition[E] {
	return NewCondition(joinDescriptions(conditions, " and "), func(entity E) error {
		for _, c := range conditions {
			if err := c.Call(entity); err != nil {
				return err
			}
		}
		return nil
	})
}

// ByOr matches on the first condition that matches. When none do, the error
// lists every failure, and stays permanent when any failure was.
func ByOr[E any](conditions ...Condition[E]) Condition[E] {
	return NewCondition(joinDescriptions(conditions, " or "), func(entity E) error {
		reasons := make([]string, 0, len(conditions))
		permanent := false
		for _, c := range conditions {
			err := c.Call(entity)
			if err == nil {
				return nil
			}
			permanent = permanent || IsPermanent(err)
			reasons = append(reasons, err.Error())
		}
		err := errors.New(strings.Join(reasons, "; "))
		if permanent {
			return Permanent(err)
		}
		return err
	})
}

// AsNot matches exactly when c fails with an ordinary error; permanent errors
// are passed through. The description is negated for display only; pass
// description to override it.
func AsNot[E any](c Condition[E], description ...string) Condition[E] {
	desc := negate(c.description)
	if len(description) > 0 {
		desc = description[0]
	}
	return NewCondition(desc, func(entity E) error {
		if err := c.Call(entity); err != nil {
			if IsPermanent(err) {
				return err
			}
			return nil
		}
		return ErrConditionNotMatched
	})
}

// RaiseIfNot builds a condition from a boolean check.
func RaiseIfNot[E any](description string, predicate func(entity E) (bool, error)) Condition[E] {
	return NewCondition(description, func(entity E) error {
		ok, err := predicate(entity)
		if err != nil {
			return err
		}
		if !ok {
			return ErrConditionNotMatched
		}
		return nil
	})
}

// RaiseIfNotActual resolves query against the entity and checks the result,
// reporting the actual value on mismatch.
func RaiseIfNotActual[E, R any](description string, query Query[E, R], predicate func(actual R) bool) Condition[E] {
	return NewCondition(description, func(entity E) error {
		actual, err := query.Call(entity)
		if err != nil {
			return err
		}
		if !predicate(actual) {
			return &MismatchErr{Query: query.String(), Actual: actual}
		}
		return nil
	})
}

func joinDescriptions[E any](conditions []Condition[E], sep string) string {
	parts := make([]string, len(conditions))
	for i, c := range conditions {
		parts[i] = c.String()
	}
	return strings.Join(parts, sep)
}

func negate(description string) string {
	words := strings.SplitN(description, " ", 2)
	rest := ""
	if len(words) == 2 {
		rest = " " + words[1]
	}
	if words[0] == "is" {
		return fmt.Sprintf("is not%s", rest)
	}
	return fmt.Sprintf("%s no%s", words[0], rest)
}
