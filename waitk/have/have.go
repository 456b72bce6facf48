// Package have holds value conditions: browser.Element("h1").Should(have.Text("Welcome"))
package have

import (
	"gitlab.com/waitker/waitk"
	"gitlab.com/waitker/waitk/match"
)

func Text(expected string) waitk.Condition[*waitk.Element]      { return match.Text(expected) }
func ExactText(expected string) waitk.Condition[*waitk.Element] { return match.ExactText(expected) }
func Attribute(name string) waitk.Condition[*waitk.Element]     { return match.Attribute(name) }

func AttributeValue(name, expected string) waitk.Condition[*waitk.Element] {
	return match.AttributeValue(name, expected)
}

func AttributeValueContaining(name, expected string) waitk.Condition[*waitk.Element] {
	return match.AttributeValueContaining(name, expected)
}

func CSSProperty(name string) waitk.Condition[*waitk.Element] { return match.CSSProperty(name) }

func CSSPropertyValue(name, expected string) waitk.Condition[*waitk.Element] {
	return match.CSSPropertyValue(name, expected)
}

func JSProperty(name string) waitk.Condition[*waitk.Element] { return match.JSProperty(name) }

func JSPropertyValue(name, expected string) waitk.Condition[*waitk.Element] {
	return match.JSPropertyValue(name, expected)
}

func Value(expected string) waitk.Condition[*waitk.Element]           { return match.Value(expected) }
func ValueContaining(expected string) waitk.Condition[*waitk.Element] { return match.ValueContaining(expected) }
func CSSClass(name string) waitk.Condition[*waitk.Element]            { return match.CSSClass(name) }
func Tag(expected string) waitk.Condition[*waitk.Element]             { return match.Tag(expected) }
func TagContaining(expected string) waitk.Condition[*waitk.Element]   { return match.TagContaining(expected) }

func Size(expected int) waitk.Condition[*waitk.Collection]         { return match.Size(expected) }
func SizeLessThan(n int) waitk.Condition[*waitk.Collection]        { return match.SizeLessThan(n) }
func SizeLessThanOrEqual(n int) waitk.Condition[*waitk.Collection] { return match.SizeLessThanOrEqual(n) }
func SizeGreaterThan(n int) waitk.Condition[*waitk.Collection]     { return match.SizeGreaterThan(n) }

func SizeGreaterThanOrEqual(n int) waitk.Condition[*waitk.Collection] {
	return match.SizeGreaterThanOrEqual(n)
}

func Texts(expected ...string) waitk.Condition[*waitk.Collection]      { return match.Texts(expected...) }
func ExactTexts(expected ...string) waitk.Condition[*waitk.Collection] { return match.ExactTexts(expected...) }

func URL(expected string) waitk.Condition[*waitk.Browser]             { return match.URL(expected) }
func URLContaining(expected string) waitk.Condition[*waitk.Browser]   { return match.URLContaining(expected) }
func Title(expected string) waitk.Condition[*waitk.Browser]           { return match.Title(expected) }
func TitleContaining(expected string) waitk.Condition[*waitk.Browser] { return match.TitleContaining(expected) }
func TabsNumber(n int) waitk.Condition[*waitk.Browser]                { return match.TabsNumber(n) }
func TabsNumberLessThan(n int) waitk.Condition[*waitk.Browser]        { return match.TabsNumberLessThan(n) }
func TabsNumberGreaterThan(n int) waitk.Condition[*waitk.Browser]     { return match.TabsNumberGreaterThan(n) }

func TabsNumberLessThanOrEqual(n int) waitk.Condition[*waitk.Browser] {
	return match.TabsNumberLessThanOrEqual(n)
}

func TabsNumberGreaterThanOrEqual(n int) waitk.Condition[*waitk.Browser] {
	return match.TabsNumberGreaterThanOrEqual(n)
}

func JSReturned(expected interface{}, script string, args ...interface{}) waitk.Condition[*waitk.Browser] {
	return match.JSReturned(expected, script, args...)
}

type negated struct{}

// No negates value conditions: have.No.Text("error")
var No negated

func (negated) Text(expected string) waitk.Condition[*waitk.Element] {
	return match.Text(expected).Not()
}

func (negated) ExactText(expected string) waitk.Condition[*waitk.Element] {
	return match.ExactText(expected).Not()
}

func (negated) Attribute(name string) waitk.Condition[*waitk.Element] {
	return match.Attribute(name).Not()
}

func (negated) AttributeValue(name, expected string) waitk.Condition[*waitk.Element] {
	return match.AttributeValue(name, expected).Not()
}

func (negated) Value(expected string) waitk.Condition[*waitk.Element] {
	return match.Value(expected).Not()
}

func (negated) CSSClass(name string) waitk.Condition[*waitk.Element] {
	return match.CSSClass(name).Not()
}

func (negated) Size(expected int) waitk.Condition[*waitk.Collection] {
	return match.Size(expected).Not()
}

func (negated) Texts(expected ...string) waitk.Condition[*waitk.Collection] {
	return match.Texts(expected...).Not()
}

func (negated) URL(expected string) waitk.Condition[*waitk.Browser] {
	return match.URL(expected).Not()
}

func (negated) URLContaining(expected string) waitk.Condition[*waitk.Browser] {
	return match.URLContaining(expected).Not()
}

func (negated) Title(expected string) waitk.Condition[*waitk.Browser] {
	return match.Title(expected).Not()
}

func (negated) TabsNumber(n int) waitk.Condition[*waitk.Browser] {
	return match.TabsNumber(n).Not()
}
