package cdp

import (
	"github.com/wirepair/gcd/gcdapi"
	"gitlab.com/waitker/waitk"
)

// Node is a remote object handle to an element of a tab
type Node struct {
	d        *Driver
	t        *Tab
	objectID string
}

func (n *Node) call(function string, args ...interface{}) (interface{}, error) {
	callArgs := make([]*gcdapi.RuntimeCallArgument, len(args))
	for i, arg := range args {
		callArgs[i] = &gcdapi.RuntimeCallArgument{Value: arg}
	}
	r, err := n.t.callOn(n.objectID, function, true, callArgs)
	if err != nil {
		return nil, err
	}
	return r.Value, nil
}

func (n *Node) callString(function string, args ...interface{}) (string, error) {
	v, err := n.call(function, args...)
	if err != nil {
		return "", err
	}
	s, _ := v.(string)
	return s, nil
}

func (n *Node) callBool(function string) (bool, error) {
	v, err := n.call(function)
	if err != nil {
		return false, err
	}
	b, _ := v.(bool)
	return b, nil
}

func (n *Node) FindElement(by waitk.Selector) (waitk.Node, error) {
	return n.d.findOne(n.t, n.objectID, by)
}

func (n *Node) FindElements(by waitk.Selector) ([]waitk.Node, error) {
	return n.d.find(n.t, n.objectID, by)
}

func (n *Node) TagName() (string, error) {
	return n.callString(tagNameFunction)
}

func (n *Node) Text() (string, error) {
	return n.callString(textFunction)
}

func (n *Node) Attribute(name string) (string, bool, error) {
	v, err := n.call(attributeFunction, name)
	if err != nil {
		return "", false, err
	}
	if v == nil {
		return "", false, nil
	}
	s, _ := v.(string)
	return s, true, nil
}

func (n *Node) Property(name string) (interface{}, error) {
	return n.call(propertyFunction, name)
}

func (n *Node) CSSValue(name string) (string, error) {
	return n.callString(cssValueFunction, name)
}

func (n *Node) Rect() (waitk.Rect, error) {
	v, err := n.call(rectFunction, false)
	if err != nil {
		return waitk.Rect{}, err
	}
	return rectFrom(v)
}

func (n *Node) IsDisplayed() (bool, error) {
	return n.callBool(displayedFunction)
}

func (n *Node) IsEnabled() (bool, error) {
	return n.callBool(enabledFunction)
}

func (n *Node) IsSelected() (bool, error) {
	return n.callBool(selectedFunction)
}

// Click scrolls the element to the centre of the viewport and clicks its middle
func (n *Node) Click() error {
	v, err := n.call(rectFunction, true)
	if err != nil {
		return err
	}
	rect, err := rectFrom(v)
	if err != nil {
		return err
	}
	return n.t.Click(rect.X+rect.Width/2, rect.Y+rect.Height/2)
}

// SendKeys focuses the element and types keys into it
func (n *Node) SendKeys(keys string) error {
	if _, err := n.call(focusFunction); err != nil {
		return err
	}
	return n.t.SendKeys(translateKeys(keys))
}

func (n *Node) Clear() error {
	_, err := n.call(clearFunction)
	return err
}

func (n *Node) Submit() error {
	_, err := n.call(submitFunction)
	return err
}
