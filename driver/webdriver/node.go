package webdriver

import (
	"github.com/tebeka/selenium"
	"gitlab.com/waitker/waitk"
)

// Node wraps a selenium element
type Node struct {
	d  *Driver
	we selenium.WebElement
}

// WebElement underneath
func (n *Node) WebElement() selenium.WebElement {
	return n.we
}

func (n *Node) FindElement(by waitk.Selector) (waitk.Node, error) {
	we, err := n.we.FindElement(by.Strategy(), by.Value)
	if err != nil {
		return nil, classify(err)
	}
	return &Node{d: n.d, we: we}, nil
}

func (n *Node) FindElements(by waitk.Selector) ([]waitk.Node, error) {
	elements, err := n.we.FindElements(by.Strategy(), by.Value)
	if err != nil {
		return nil, classify(err)
	}
	return n.d.wrap(elements), nil
}

func (n *Node) TagName() (string, error) {
	tag, err := n.we.TagName()
	return tag, classify(err)
}

func (n *Node) Text() (string, error) {
	text, err := n.we.Text()
	return text, classify(err)
}

// Attribute reports a null attribute as not set
func (n *Node) Attribute(name string) (string, bool, error) {
	value, err := n.we.GetAttribute(name)
	if err != nil {
		if err.Error() == "nil return value" {
			return "", false, nil
		}
		return "", false, classify(err)
	}
	return value, true, nil
}

// Property keeps the js type of the value, selenium's GetProperty would stringify it
func (n *Node) Property(name string) (interface{}, error) {
	return n.d.ExecuteScript("return arguments[0][arguments[1]];", n, name)
}

func (n *Node) CSSValue(name string) (string, error) {
	value, err := n.we.CSSProperty(name)
	return value, classify(err)
}

func (n *Node) Rect() (waitk.Rect, error) {
	location, err := n.we.Location()
	if err != nil {
		return waitk.Rect{}, classify(err)
	}
	size, err := n.we.Size()
	if err != nil {
		return waitk.Rect{}, classify(err)
	}
	return waitk.Rect{
		X:      float64(location.X),
		Y:      float64(location.Y),
		Width:  float64(size.Width),
		Height: float64(size.Height),
	}, nil
}

func (n *Node) IsDisplayed() (bool, error) {
	ok, err := n.we.IsDisplayed()
	return ok, classify(err)
}

func (n *Node) IsEnabled() (bool, error) {
	ok, err := n.we.IsEnabled()
	return ok, classify(err)
}

func (n *Node) IsSelected() (bool, error) {
	ok, err := n.we.IsSelected()
	return ok, classify(err)
}

func (n *Node) Click() error {
	return classify(n.we.Click())
}

func (n *Node) SendKeys(keys string) error {
	return classify(n.we.SendKeys(keys))
}

func (n *Node) Clear() error {
	return classify(n.we.Clear())
}

func (n *Node) Submit() error {
	return classify(n.we.Submit())
}
