// Package match builds the conditions behind the be and have packages.
package match

import (
	"fmt"
	"strings"

	"gitlab.com/waitker/waitk"
	"gitlab.com/waitker/waitk/query"
)

type elementCondition = waitk.Condition[*waitk.Element]

func nodeState(description string, state func(waitk.Node) (bool, error), want bool) elementCondition {
	return waitk.RaiseIfNot(description, func(e *waitk.Element) (bool, error) {
		node, err := e.Locate()
		if err != nil {
			return false, err
		}
		got, err := state(node)
		if err != nil {
			return false, err
		}
		return got == want, nil
	})
}

var (
	Visible  = nodeState("is visible", waitk.Node.IsDisplayed, true)
	Hidden   = nodeState("is hidden", waitk.Node.IsDisplayed, false)
	Selected = nodeState("is selected", waitk.Node.IsSelected, true)
	Enabled  = nodeState("is enabled", waitk.Node.IsEnabled, true)
	Disabled = nodeState("is disabled", waitk.Node.IsEnabled, false)

	Clickable = Visible.And(Enabled)

	Present = waitk.NewCondition("is present in DOM", func(e *waitk.Element) error {
		_, err := e.Locate()
		return err
	})
	Absent = waitk.AsNot(Present, "is absent in DOM")

	Focused = waitk.RaiseIfNot("is focused", func(e *waitk.Element) (bool, error) {
		v, err := e.ExecuteScript("return document.activeElement === arguments[0];")
		if err != nil {
			return false, err
		}
		focused, _ := v.(bool)
		return focused, nil
	})

	Blank = ExactText("").And(Value(""))
)

// Text containing expected
func Text(expected string) elementCondition {
	return waitk.RaiseIfNotActual(fmt.Sprintf("has text '%s'", expected), query.Text, func(actual string) bool {
		return strings.Contains(actual, expected)
	})
}

// ExactText equal to expected
func ExactText(expected string) elementCondition {
	return waitk.RaiseIfNotActual(fmt.Sprintf("has exact text '%s'", expected), query.Text, func(actual string) bool {
		return actual == expected
	})
}

// Attribute is set on the element
func Attribute(name string) elementCondition {
	return waitk.NewCondition(fmt.Sprintf("has attribute '%s'", name), func(e *waitk.Element) error {
		_, err := query.Attribute(name).Call(e)
		return err
	})
}

// AttributeValue equal to expected
func AttributeValue(name, expected string) elementCondition {
	return waitk.RaiseIfNotActual(fmt.Sprintf("has attribute '%s' with value '%s'", name, expected),
		query.Attribute(name), func(actual string) bool {
			return actual == expected
		})
}

// AttributeValueContaining expected
func AttributeValueContaining(name, expected string) elementCondition {
	return waitk.RaiseIfNotActual(fmt.Sprintf("has attribute '%s' with value containing '%s'", name, expected),
		query.Attribute(name), func(actual string) bool {
			return strings.Contains(actual, expected)
		})
}

// Value of the input equal to expected
func Value(expected string) elementCondition {
	return waitk.RaiseIfNotActual(fmt.Sprintf("has value '%s'", expected), query.Value, func(actual string) bool {
		return actual == expected
	})
}

// ValueContaining expected
func ValueContaining(expected string) elementCondition {
	return waitk.RaiseIfNotActual(fmt.Sprintf("has value containing '%s'", expected), query.Value, func(actual string) bool {
		return strings.Contains(actual, expected)
	})
}

// CSSClass among the element's classes
func CSSClass(name string) elementCondition {
	return waitk.RaiseIfNotActual(fmt.Sprintf("has css class '%s'", name), query.Attribute("class"), func(actual string) bool {
		for _, c := range strings.Fields(actual) {
			if c == name {
				return true
			}
		}
		return false
	})
}

// CSSProperty is set to a non empty value
func CSSProperty(name string) elementCondition {
	return waitk.RaiseIfNotActual(fmt.Sprintf("has css property '%s'", name), query.CSSProperty(name), func(actual string) bool {
		return actual != ""
	})
}

// CSSPropertyValue equal to expected
func CSSPropertyValue(name, expected string) elementCondition {
	return waitk.RaiseIfNotActual(fmt.Sprintf("has css property '%s' with value '%s'", name, expected),
		query.CSSProperty(name), func(actual string) bool {
			return actual == expected
		})
}

// JSProperty is defined on the element
func JSProperty(name string) elementCondition {
	return waitk.RaiseIfNotActual(fmt.Sprintf("has js property '%s'", name), query.JSProperty(name), func(actual interface{}) bool {
		return actual != nil
	})
}

// JSPropertyValue whose string form equals expected
func JSPropertyValue(name, expected string) elementCondition {
	return waitk.RaiseIfNotActual(fmt.Sprintf("has js property '%s' with value '%s'", name, expected),
		query.JSProperty(name), func(actual interface{}) bool {
			return actual != nil && fmt.Sprint(actual) == expected
		})
}

// Tag name equal to expected
func Tag(expected string) elementCondition {
	return waitk.RaiseIfNotActual(fmt.Sprintf("has tag '%s'", expected), query.Tag, func(actual string) bool {
		return strings.EqualFold(actual, expected)
	})
}

// TagContaining expected
func TagContaining(expected string) elementCondition {
	return waitk.RaiseIfNotActual(fmt.Sprintf("has tag containing '%s'", expected), query.Tag, func(actual string) bool {
		return strings.Contains(strings.ToLower(actual), strings.ToLower(expected))
	})
}
