package match

import (
	"fmt"
	"reflect"
	"strings"

	"gitlab.com/waitker/waitk"
	"gitlab.com/waitker/waitk/query"
)

type browserCondition = waitk.Condition[*waitk.Browser]

// URL equal to expected
func URL(expected string) browserCondition {
	return waitk.RaiseIfNotActual(fmt.Sprintf("has url '%s'", expected), query.URL, func(actual string) bool {
		return actual == expected
	})
}

// URLContaining expected
func URLContaining(expected string) browserCondition {
	return waitk.RaiseIfNotActual(fmt.Sprintf("has url containing '%s'", expected), query.URL, func(actual string) bool {
		return strings.Contains(actual, expected)
	})
}

// Title equal to expected
func Title(expected string) browserCondition {
	return waitk.RaiseIfNotActual(fmt.Sprintf("has title '%s'", expected), query.Title, func(actual string) bool {
		return actual == expected
	})
}

// TitleContaining expected
func TitleContaining(expected string) browserCondition {
	return waitk.RaiseIfNotActual(fmt.Sprintf("has title containing '%s'", expected), query.Title, func(actual string) bool {
		return strings.Contains(actual, expected)
	})
}

func tabsCondition(description string, pred func(int) bool) browserCondition {
	return waitk.RaiseIfNotActual(description, query.TabsNumber, pred)
}

// TabsNumber equal to expected
func TabsNumber(expected int) browserCondition {
	return tabsCondition(fmt.Sprintf("has tabs number %d", expected), func(n int) bool { return n == expected })
}

func TabsNumberLessThan(expected int) browserCondition {
	return tabsCondition(fmt.Sprintf("has tabs number less than %d", expected), func(n int) bool { return n < expected })
}

func TabsNumberLessThanOrEqual(expected int) browserCondition {
	return tabsCondition(fmt.Sprintf("has tabs number less than or equal %d", expected), func(n int) bool { return n <= expected })
}

func TabsNumberGreaterThan(expected int) browserCondition {
	return tabsCondition(fmt.Sprintf("has tabs number greater than %d", expected), func(n int) bool { return n > expected })
}

func TabsNumberGreaterThanOrEqual(expected int) browserCondition {
	return tabsCondition(fmt.Sprintf("has tabs number greater than or equal %d", expected), func(n int) bool { return n >= expected })
}

// JSReturned checks the value script returns in the page
func JSReturned(expected interface{}, script string, args ...interface{}) browserCondition {
	returned := waitk.NewQuery("js returned", func(b *waitk.Browser) (interface{}, error) {
		return b.ExecuteScript(script, args...)
	})
	return waitk.RaiseIfNotActual(fmt.Sprintf("has js returned %v", expected), returned, func(actual interface{}) bool {
		return reflect.DeepEqual(normalize(actual), normalize(expected))
	})
}

// numbers come back from drivers as float64
func normalize(v interface{}) interface{} {
	switch n := v.(type) {
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case int32:
		return float64(n)
	}
	return v
}
