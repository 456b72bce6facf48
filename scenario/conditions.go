package scenario

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gitlab.com/waitker/waitk"
	"gitlab.com/waitker/waitk/be"
	"gitlab.com/waitker/waitk/have"
)

type (
	elementCondition    func(arg, value string) (waitk.Condition[*waitk.Element], error)
	collectionCondition func(arg, value string) (waitk.Condition[*waitk.Collection], error)
	browserCondition    func(arg, value string) (waitk.Condition[*waitk.Browser], error)
)

func state(c waitk.Condition[*waitk.Element]) elementCondition {
	return func(string, string) (waitk.Condition[*waitk.Element], error) { return c, nil }
}

func withValue(fn func(string) waitk.Condition[*waitk.Element]) elementCondition {
	return func(_, value string) (waitk.Condition[*waitk.Element], error) { return fn(value), nil }
}

func withArg(fn func(string) waitk.Condition[*waitk.Element]) elementCondition {
	return func(arg, _ string) (waitk.Condition[*waitk.Element], error) {
		if arg == "" {
			return waitk.Condition[*waitk.Element]{}, errors.New("arg is required")
		}
		return fn(arg), nil
	}
}

func withArgValue(fn func(string, string) waitk.Condition[*waitk.Element]) elementCondition {
	return func(arg, value string) (waitk.Condition[*waitk.Element], error) {
		if arg == "" {
			return waitk.Condition[*waitk.Element]{}, errors.New("arg is required")
		}
		return fn(arg, value), nil
	}
}

var elementConditions = map[string]elementCondition{
	"be.visible":   state(be.Visible),
	"be.hidden":    state(be.Hidden),
	"be.selected":  state(be.Selected),
	"be.present":   state(be.Present),
	"be.absent":    state(be.Absent),
	"be.enabled":   state(be.Enabled),
	"be.disabled":  state(be.Disabled),
	"be.clickable": state(be.Clickable),
	"be.focused":   state(be.Focused),
	"be.blank":     state(be.Blank),

	"have.text":                       withValue(have.Text),
	"have.exact_text":                 withValue(have.ExactText),
	"have.value":                      withValue(have.Value),
	"have.value_containing":           withValue(have.ValueContaining),
	"have.css_class":                  withValue(have.CSSClass),
	"have.tag":                        withValue(have.Tag),
	"have.tag_containing":             withValue(have.TagContaining),
	"have.attribute":                  withArg(have.Attribute),
	"have.css_property":               withArg(have.CSSProperty),
	"have.js_property":                withArg(have.JSProperty),
	"have.attribute_value":            withArgValue(have.AttributeValue),
	"have.attribute_value_containing": withArgValue(have.AttributeValueContaining),
	"have.css_property_value":         withArgValue(have.CSSPropertyValue),
	"have.js_property_value":          withArgValue(have.JSPropertyValue),
}

func sized(fn func(int) waitk.Condition[*waitk.Collection]) collectionCondition {
	return func(_, value string) (waitk.Condition[*waitk.Collection], error) {
		n, err := strconv.Atoi(value)
		if err != nil {
			return waitk.Condition[*waitk.Collection]{}, errors.Wrap(err, "value must be a number")
		}
		return fn(n), nil
	}
}

// texts are separated by |
func texts(fn func(...string) waitk.Condition[*waitk.Collection]) collectionCondition {
	return func(_, value string) (waitk.Condition[*waitk.Collection], error) {
		return fn(strings.Split(value, "|")...), nil
	}
}

var collectionConditions = map[string]collectionCondition{
	"be.empty": func(string, string) (waitk.Condition[*waitk.Collection], error) { return be.Empty, nil },

	"have.size":                       sized(have.Size),
	"have.size_less_than":             sized(have.SizeLessThan),
	"have.size_less_than_or_equal":    sized(have.SizeLessThanOrEqual),
	"have.size_greater_than":          sized(have.SizeGreaterThan),
	"have.size_greater_than_or_equal": sized(have.SizeGreaterThanOrEqual),
	"have.texts":                      texts(have.Texts),
	"have.exact_texts":                texts(have.ExactTexts),
}

func browserValue(fn func(string) waitk.Condition[*waitk.Browser]) browserCondition {
	return func(_, value string) (waitk.Condition[*waitk.Browser], error) { return fn(value), nil }
}

func tabs(fn func(int) waitk.Condition[*waitk.Browser]) browserCondition {
	return func(_, value string) (waitk.Condition[*waitk.Browser], error) {
		n, err := strconv.Atoi(value)
		if err != nil {
			return waitk.Condition[*waitk.Browser]{}, errors.Wrap(err, "value must be a number")
		}
		return fn(n), nil
	}
}

var browserConditions = map[string]browserCondition{
	"have.url":                               browserValue(have.URL),
	"have.url_containing":                    browserValue(have.URLContaining),
	"have.title":                             browserValue(have.Title),
	"have.title_containing":                  browserValue(have.TitleContaining),
	"have.tabs_number":                       tabs(have.TabsNumber),
	"have.tabs_number_less_than":             tabs(have.TabsNumberLessThan),
	"have.tabs_number_greater_than":          tabs(have.TabsNumberGreaterThan),
	"have.tabs_number_less_than_or_equal":    tabs(have.TabsNumberLessThanOrEqual),
	"have.tabs_number_greater_than_or_equal": tabs(have.TabsNumberGreaterThanOrEqual),
	"have.js_returned": func(arg, value string) (waitk.Condition[*waitk.Browser], error) {
		if arg == "" {
			return waitk.Condition[*waitk.Browser]{}, errors.New("arg must hold the script")
		}
		return have.JSReturned(value, arg), nil
	},
}

// check is the condition of a step, exactly one field is set
type check struct {
	element    *waitk.Condition[*waitk.Element]
	collection *waitk.Condition[*waitk.Collection]
	browser    *waitk.Condition[*waitk.Browser]
}

func negate[E any](c waitk.Condition[E], not bool) *waitk.Condition[E] {
	if not {
		c = c.Not()
	}
	return &c
}

func (st Step) condition() (check, error) {
	switch {
	case st.Select != "":
		build, ok := elementConditions[st.Should]
		if !ok {
			return check{}, errors.Errorf("unknown element condition %s", st.Should)
		}
		c, err := build(st.Arg, st.Value)
		if err != nil {
			return check{}, errors.Wrap(err, st.Should)
		}
		return check{element: negate(c, st.Not)}, nil
	case st.All != "":
		build, ok := collectionConditions[st.Should]
		if !ok {
			return check{}, errors.Errorf("unknown collection condition %s", st.Should)
		}
		c, err := build(st.Arg, st.Value)
		if err != nil {
			return check{}, errors.Wrap(err, st.Should)
		}
		return check{collection: negate(c, st.Not)}, nil
	}
	build, ok := browserConditions[st.Should]
	if !ok {
		return check{}, errors.Errorf("unknown browser condition %s", st.Should)
	}
	c, err := build(st.Arg, st.Value)
	if err != nil {
		return check{}, errors.Wrap(err, st.Should)
	}
	return check{browser: negate(c, st.Not)}, nil
}
