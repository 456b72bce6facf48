package match

import (
	"fmt"
	"strings"

	"gitlab.com/waitker/waitk"
	"gitlab.com/waitker/waitk/query"
)

type collectionCondition = waitk.Condition[*waitk.Collection]

func sizeCondition(description string, pred func(int) bool) collectionCondition {
	return waitk.RaiseIfNotActual(description, query.Size, pred)
}

// Size equal to expected
func Size(expected int) collectionCondition {
	return sizeCondition(fmt.Sprintf("has size %d", expected), func(n int) bool { return n == expected })
}

// Empty collection
var Empty = sizeCondition("is empty", func(n int) bool { return n == 0 })

func SizeLessThan(expected int) collectionCondition {
	return sizeCondition(fmt.Sprintf("has size less than %d", expected), func(n int) bool { return n < expected })
}

func SizeLessThanOrEqual(expected int) collectionCondition {
	return sizeCondition(fmt.Sprintf("has size less than or equal %d", expected), func(n int) bool { return n <= expected })
}

func SizeGreaterThan(expected int) collectionCondition {
	return sizeCondition(fmt.Sprintf("has size greater than %d", expected), func(n int) bool { return n > expected })
}

func SizeGreaterThanOrEqual(expected int) collectionCondition {
	return sizeCondition(fmt.Sprintf("has size greater than or equal %d", expected), func(n int) bool { return n >= expected })
}

func textsCondition(description string, expected []string, match func(actual, expected string) bool) collectionCondition {
	return waitk.RaiseIfNotActual(fmt.Sprintf("%s %s", description, quoted(expected)), query.Texts, func(actual []string) bool {
		if len(actual) != len(expected) {
			return false
		}
		for i := range actual {
			if !match(actual[i], expected[i]) {
				return false
			}
		}
		return true
	})
}

// Texts where each element's text contains the expected one at the same position
func Texts(expected ...string) collectionCondition {
	return textsCondition("has texts", expected, strings.Contains)
}

// ExactTexts where each element's text equals the expected one at the same position
func ExactTexts(expected ...string) collectionCondition {
	return textsCondition("has exact texts", expected, func(a, b string) bool { return a == b })
}

func quoted(values []string) string {
	q := make([]string, len(values))
	for i, v := range values {
		q[i] = "'" + v + "'"
	}
	return "[" + strings.Join(q, ", ") + "]"
}
