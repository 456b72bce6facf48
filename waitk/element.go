package waitk

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Element is one lazily located node.
type Element struct {
	locator Locator[Node]
	config  Config
}

// NewElement from a locator and config
func NewElement(locator Locator[Node], config Config) *Element {
	return &Element{locator: locator, config: config}
}

func (e *Element) String() string {
	return e.locator.String()
}

// Config of the element
func (e *Element) Config() Config {
	return e.config
}

// With returns the same element using an overridden config
func (e *Element) With(o Options) *Element {
	return NewElement(e.locator, e.config.With(o))
}

// Locate resolves the element now
func (e *Element) Locate() (Node, error) {
	return e.locator.Locate()
}

// Nodes resolves the element as a one node list
func (e *Element) Nodes() ([]Node, error) {
	node, err := e.Locate()
	if err != nil {
		return nil, err
	}
	return []Node{node}, nil
}

// Wait over this element, appending its outer html to timeouts when configured
func (e *Element) Wait() Wait[*Element] {
	w := WaitFor(e.config, e)
	if e.config.LogOuterHTMLOnFailure() {
		return w.OrFailWith(Pipe(e.logOuterHTML, w.HookFailure()))
	}
	return w
}

func (e *Element) logOuterHTML(err error) error {
	node, lookupErr := e.Locate()
	if lookupErr != nil {
		return err
	}
	html, htmlErr := node.Property("outerHTML")
	if htmlErr != nil {
		return err
	}
	return AddNote(err, fmt.Sprintf("\nActual webelement: %v", html))
}

// Cached resolves the element once; the result, or the lookup error, is reused forever after.
func (e *Element) Cached() *Element {
	node, err := e.Locate()
	return NewElement(NewLocator(e.String()+".cached", func() (Node, error) {
		return node, err
	}), e.config)
}

// Element finds a child, the selector is auto detected as CSS or XPath.
func (e *Element) Element(selector string) *Element {
	return e.ElementBy(ParseSelector(selector))
}

// ElementBy finds a child with an explicit selector
func (e *Element) ElementBy(by Selector) *Element {
	return NewElement(NewLocator(fmt.Sprintf("%s.element(%s)", e, by), func() (Node, error) {
		node, err := e.Locate()
		if err != nil {
			return nil, err
		}
		return node.FindElement(by)
	}), e.config)
}

// All children matching selector
func (e *Element) All(selector string) *Collection {
	return e.AllBy(ParseSelector(selector))
}

// AllBy children matching an explicit selector
func (e *Element) AllBy(by Selector) *Collection {
	return NewCollection(NewLocator(fmt.Sprintf("%s.all(%s)", e, by), func() ([]Node, error) {
		node, err := e.Locate()
		if err != nil {
			return nil, err
		}
		return node.FindElements(by)
	}), e.config)
}

// Should waits for the condition to match
func (e *Element) Should(c Condition[*Element]) error {
	return e.Wait().For(c)
}

// WaitUntil is Should reporting a bool
func (e *Element) WaitUntil(c Condition[*Element]) bool {
	return e.Wait().Until(c)
}

// Matching checks the condition once, without waiting
func (e *Element) Matching(c Condition[*Element]) bool {
	return c.Predicate()(e)
}

// Perform runs cmd through the element's wait
func (e *Element) Perform(cmd Command[*Element]) error {
	return e.Wait().For(cmd)
}

func (e *Element) driver() (Driver, error) {
	return e.config.Driver()
}

// ExecuteScript runs script with the element as arguments[0] and args after it.
func (e *Element) ExecuteScript(script string, args ...interface{}) (interface{}, error) {
	d, err := e.driver()
	if err != nil {
		return nil, err
	}
	node, err := e.Locate()
	if err != nil {
		return nil, err
	}
	return d.ExecuteScript(script, append([]interface{}{node}, args...)...)
}

// actualNotOverlapped resolves the element, failing when another element covers its centre
func (e *Element) actualNotOverlapped() (Node, error) {
	node, err := e.Locate()
	if err != nil || !e.config.WaitForNoOverlapFoundByJS() {
		return node, err
	}

	d, err := e.driver()
	if err != nil {
		return nil, err
	}
	result, err := d.ExecuteScript(overlapScript, node)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return node, nil
	}
	found, ok := result.(map[string]interface{})
	if !ok {
		return nil, errors.Errorf("unexpected overlap check result: %v", result)
	}
	return nil, &OverlapError{Element: fmt.Sprint(found["element"]), Cover: fmt.Sprint(found["cover"])}
}

// SetValue clears the element and types value
func (e *Element) SetValue(value string) error {
	if e.config.SetValueByJS() {
		return e.Perform(SetValueByJS(value))
	}
	return e.Wait().Command("set value: "+value, func(e *Element) error {
		node, err := e.actualNotOverlapped()
		if err != nil {
			return err
		}
		if err := node.Clear(); err != nil {
			return err
		}
		return node.SendKeys(value)
	})
}

// Type appends text to the element's value
func (e *Element) Type(text string) error {
	if e.config.TypeByJS() {
		return e.Perform(TypeByJS(text))
	}
	return e.Wait().Command("type: "+text, func(e *Element) error {
		node, err := e.actualNotOverlapped()
		if err != nil {
			return err
		}
		return node.SendKeys(text)
	})
}

// Press sends keys, e.g. KeyEnter
func (e *Element) Press(keys ...string) error {
	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = KeyName(k)
	}
	return e.Wait().Command("press keys: "+strings.Join(names, ", "), func(e *Element) error {
		node, err := e.actualNotOverlapped()
		if err != nil {
			return err
		}
		return node.SendKeys(strings.Join(keys, ""))
	})
}

func (e *Element) PressEnter() error {
	return e.Press(KeyEnter)
}

func (e *Element) PressEscape() error {
	return e.Press(KeyEscape)
}

func (e *Element) PressTab() error {
	return e.Press(KeyTab)
}

// Clear the element's value
func (e *Element) Clear() error {
	return e.Wait().Command("clear", func(e *Element) error {
		node, err := e.actualNotOverlapped()
		if err != nil {
			return err
		}
		return node.Clear()
	})
}

// Submit the form the element belongs to
func (e *Element) Submit() error {
	return e.Wait().Command("submit", func(e *Element) error {
		node, err := e.actualNotOverlapped()
		if err != nil {
			return err
		}
		return node.Submit()
	})
}

// Click the element, retried until it is interactable
func (e *Element) Click() error {
	return e.Wait().Command("click", func(e *Element) error {
		node, err := e.actualNotOverlapped()
		if err != nil {
			return err
		}
		return node.Click()
	})
}

func (e *Element) DoubleClick() error {
	return e.mouseEvent("double click", "dblclick", 0)
}

func (e *Element) ContextClick() error {
	return e.mouseEvent("context click", "contextmenu", 2)
}

func (e *Element) Hover() error {
	return e.mouseEvent("hover", "mouseover", 0)
}

func (e *Element) mouseEvent(description, event string, button int) error {
	return e.Wait().Command(description, func(e *Element) error {
		if _, err := e.actualNotOverlapped(); err != nil {
			return err
		}
		_, err := e.ExecuteScript(mouseEventScript, event, button)
		return err
	})
}
