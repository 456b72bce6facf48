package mock

import (
	"gitlab.com/waitker/waitk"
)

type Node struct {
	FindElementFn  func(by waitk.Selector) (waitk.Node, error)
	FindElementsFn func(by waitk.Selector) ([]waitk.Node, error)

	TagNameFn   func() (string, error)
	TextFn      func() (string, error)
	AttributeFn func(name string) (string, bool, error)
	PropertyFn  func(name string) (interface{}, error)
	CSSValueFn  func(name string) (string, error)
	RectFn      func() (waitk.Rect, error)

	IsDisplayedFn func() (bool, error)
	IsEnabledFn   func() (bool, error)
	IsSelectedFn  func() (bool, error)

	ClickFn     func() error
	ClickCalled int

	SendKeysFn func(keys string) error
	SentKeys   string

	ClearFn     func() error
	ClearCalled bool

	SubmitFn     func() error
	SubmitCalled bool
}

func (n *Node) FindElement(by waitk.Selector) (waitk.Node, error) {
	return n.FindElementFn(by)
}

func (n *Node) FindElements(by waitk.Selector) ([]waitk.Node, error) {
	return n.FindElementsFn(by)
}

func (n *Node) TagName() (string, error) {
	return n.TagNameFn()
}

func (n *Node) Text() (string, error) {
	return n.TextFn()
}

func (n *Node) Attribute(name string) (string, bool, error) {
	return n.AttributeFn(name)
}

func (n *Node) Property(name string) (interface{}, error) {
	return n.PropertyFn(name)
}

func (n *Node) CSSValue(name string) (string, error) {
	return n.CSSValueFn(name)
}

func (n *Node) Rect() (waitk.Rect, error) {
	return n.RectFn()
}

func (n *Node) IsDisplayed() (bool, error) {
	return n.IsDisplayedFn()
}

func (n *Node) IsEnabled() (bool, error) {
	return n.IsEnabledFn()
}

func (n *Node) IsSelected() (bool, error) {
	return n.IsSelectedFn()
}

func (n *Node) Click() error {
	n.ClickCalled++
	return n.ClickFn()
}

func (n *Node) SendKeys(keys string) error {
	if err := n.SendKeysFn(keys); err != nil {
		return err
	}
	n.SentKeys += keys
	return nil
}

func (n *Node) Clear() error {
	n.ClearCalled = true
	return n.ClearFn()
}

func (n *Node) Submit() error {
	n.SubmitCalled = true
	return n.SubmitFn()
}

// MakeMockNode is a visible, enabled <div> with text and attributes. The value
// and outerHTML properties are served from attrs.
func MakeMockNode(text string, attrs map[string]string) *Node {
	if attrs == nil {
		attrs = make(map[string]string)
	}
	n := &Node{}
	n.FindElementFn = func(by waitk.Selector) (waitk.Node, error) {
		return nil, waitk.ErrNoSuchElement
	}
	n.FindElementsFn = func(by waitk.Selector) ([]waitk.Node, error) {
		return []waitk.Node{}, nil
	}
	n.TagNameFn = func() (string, error) {
		return "div", nil
	}
	n.TextFn = func() (string, error) {
		return text, nil
	}
	n.AttributeFn = func(name string) (string, bool, error) {
		v, ok := attrs[name]
		return v, ok, nil
	}
	n.PropertyFn = func(name string) (interface{}, error) {
		switch name {
		case "outerHTML":
			return "<div>" + text + "</div>", nil
		case "value":
			return attrs["value"], nil
		}
		return nil, nil
	}
	n.CSSValueFn = func(name string) (string, error) {
		return "", nil
	}
	n.RectFn = func() (waitk.Rect, error) {
		return waitk.Rect{Width: 10, Height: 10}, nil
	}
	n.IsDisplayedFn = func() (bool, error) {
		return true, nil
	}
	n.IsEnabledFn = func() (bool, error) {
		return true, nil
	}
	n.IsSelectedFn = func() (bool, error) {
		return false, nil
	}
	n.ClickFn = func() error {
		return nil
	}
	n.SendKeysFn = func(keys string) error {
		return nil
	}
	n.ClearFn = func() error {
		n.SentKeys = ""
		return nil
	}
	n.SubmitFn = func() error {
		return nil
	}
	return n
}
