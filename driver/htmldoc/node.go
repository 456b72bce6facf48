package htmldoc

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/antchfx/htmlquery"
	"github.com/pkg/errors"
	"gitlab.com/waitker/waitk"
	"golang.org/x/net/html"
)

// Node is an element of a document held by a Driver. Reads and writes go
// through the driver's lock so pages can be mutated concurrently.
type Node struct {
	d *Driver
	n *html.Node
}

// HTML node wrapped by this element
func (e *Node) HTML() *html.Node {
	return e.n
}

func (e *Node) lock() func() {
	e.d.mu.Lock()
	return e.d.mu.Unlock
}

func (e *Node) sel() *goquery.Selection {
	return goquery.NewDocumentFromNode(e.n).Selection
}

func (e *Node) FindElement(by waitk.Selector) (waitk.Node, error) {
	nodes, err := e.FindElements(by)
	if err != nil {
		return nil, err
	}
	if len(nodes) == 0 {
		return nil, errors.Wrapf(waitk.ErrNoSuchElement, "%s", by)
	}
	return nodes[0], nil
}

func (e *Node) FindElements(by waitk.Selector) ([]waitk.Node, error) {
	defer e.lock()()
	return e.d.wrap(find(e.n, by))
}

func (e *Node) TagName() (string, error) {
	return e.n.Data, nil
}

// Text is the normalized text content, empty when the element is not displayed.
func (e *Node) Text() (string, error) {
	defer e.lock()()
	if !displayed(e.n) {
		return "", nil
	}
	return normalizeSpace(htmlquery.InnerText(e.n)), nil
}

func (e *Node) Attribute(name string) (string, bool, error) {
	defer e.lock()()
	v, ok := attr(e.n, name)
	return v, ok, nil
}

// Property emulates the handful of DOM properties the engine reads.
func (e *Node) Property(name string) (interface{}, error) {
	defer e.lock()()
	switch name {
	case "outerHTML":
		return goquery.OuterHtml(e.sel())
	case "innerHTML":
		return e.sel().Html()
	case "textContent":
		return htmlquery.InnerText(e.n), nil
	case "value":
		if e.n.Data == "textarea" {
			if v, ok := attr(e.n, "value"); ok {
				return v, nil
			}
			return htmlquery.InnerText(e.n), nil
		}
		v, _ := attr(e.n, "value")
		return v, nil
	case "checked", "selected", "disabled", "hidden":
		_, ok := attr(e.n, name)
		return ok, nil
	case "tagName":
		return strings.ToUpper(e.n.Data), nil
	case "id", "className", "name", "href", "type":
		attrName := name
		if name == "className" {
			attrName = "class"
		}
		v, _ := attr(e.n, attrName)
		return v, nil
	}
	return nil, nil
}

// CSSValue reads the inline style only; there is no stylesheet cascade.
func (e *Node) CSSValue(name string) (string, error) {
	defer e.lock()()
	return inlineStyle(e.n)[strings.ToLower(name)], nil
}

// Rect is always empty, documents are not laid out
func (e *Node) Rect() (waitk.Rect, error) {
	return waitk.Rect{}, nil
}

func (e *Node) IsDisplayed() (bool, error) {
	defer e.lock()()
	return displayed(e.n), nil
}

func (e *Node) IsEnabled() (bool, error) {
	defer e.lock()()
	for n := e.n; n != nil; n = n.Parent {
		if _, ok := attr(n, "disabled"); ok && (n == e.n || n.Data == "fieldset") {
			return false, nil
		}
	}
	return true, nil
}

func (e *Node) IsSelected() (bool, error) {
	defer e.lock()()
	_, checked := attr(e.n, "checked")
	_, selected := attr(e.n, "selected")
	return checked || selected, nil
}

// Click toggles checkboxes, selects radios and options, and follows links.
func (e *Node) Click() error {
	defer e.lock()()
	if !displayed(e.n) {
		return errors.New("element not interactable")
	}

	inputType, _ := attr(e.n, "type")
	switch {
	case e.n.Data == "input" && inputType == "checkbox":
		if _, ok := attr(e.n, "checked"); ok {
			removeAttr(e.n, "checked")
		} else {
			setAttr(e.n, "checked", "")
		}
	case e.n.Data == "input" && inputType == "radio":
		name, _ := attr(e.n, "name")
		form := ancestor(e.n, "form")
		if form == nil {
			form = root(e.n)
		}
		goquery.NewDocumentFromNode(form).Find("input[type=radio]").Each(func(_ int, s *goquery.Selection) {
			if s.AttrOr("name", "") == name {
				s.RemoveAttr("checked")
			}
		})
		setAttr(e.n, "checked", "")
	case e.n.Data == "option":
		if sel := ancestor(e.n, "select"); sel != nil {
			goquery.NewDocumentFromNode(sel).Find("option").RemoveAttr("selected")
		}
		setAttr(e.n, "selected", "")
	case e.n.Data == "a":
		href, ok := attr(e.n, "href")
		if !ok || strings.HasPrefix(href, "#") || strings.HasPrefix(strings.ToLower(href), "javascript:") {
			return nil
		}
		return e.d.follow(href)
	}
	return nil
}

// SendKeys appends to the value; special keys other than backspace are ignored.
func (e *Node) SendKeys(keys string) error {
	defer e.lock()()
	if !editable(e.n) {
		return errors.New("element not interactable")
	}
	v, _ := attr(e.n, "value")
	value := []rune(v)
	for _, r := range keys {
		switch {
		case string(r) == waitk.KeyBackspace:
			if len(value) > 0 {
				value = value[:len(value)-1]
			}
		case r >= 0xe000 && r <= 0xf8ff:
		default:
			value = append(value, r)
		}
	}
	setAttr(e.n, "value", string(value))
	return nil
}

func (e *Node) Clear() error {
	defer e.lock()()
	if !editable(e.n) {
		return errors.New("invalid element state")
	}
	setAttr(e.n, "value", "")
	return nil
}

// Submit follows the enclosing form's action, if it names a registered page.
func (e *Node) Submit() error {
	defer e.lock()()
	form := e.n
	if form.Data != "form" {
		form = ancestor(e.n, "form")
	}
	if form == nil {
		return errors.New("element is not in a form")
	}
	action, ok := attr(form, "action")
	if !ok || action == "" {
		return nil
	}
	return e.d.follow(action)
}

// follow navigates the current tab to href relative to its url, lock held.
func (d *Driver) follow(href string) error {
	t := d.tab()
	if t == nil {
		return ErrNoTabs
	}
	base, err := url.Parse(t.url)
	if err != nil {
		return d.load(href)
	}
	ref, err := url.Parse(href)
	if err != nil {
		return errors.Wrap(err, "invalid link")
	}
	return d.load(base.ResolveReference(ref).String())
}

func attr(n *html.Node, name string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

func setAttr(n *html.Node, name, value string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == name {
			n.Attr[i].Val = value
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: name, Val: value})
}

func removeAttr(n *html.Node, name string) {
	attrs := n.Attr[:0]
	for _, a := range n.Attr {
		if a.Namespace != "" || a.Key != name {
			attrs = append(attrs, a)
		}
	}
	n.Attr = attrs
}

func ancestor(n *html.Node, tag string) *html.Node {
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Type == html.ElementNode && p.Data == tag {
			return p
		}
	}
	return nil
}

func root(n *html.Node) *html.Node {
	for n.Parent != nil {
		n = n.Parent
	}
	return n
}

func inlineStyle(n *html.Node) map[string]string {
	styles := make(map[string]string)
	style, _ := attr(n, "style")
	for _, decl := range strings.Split(style, ";") {
		parts := strings.SplitN(decl, ":", 2)
		if len(parts) != 2 {
			continue
		}
		styles[strings.ToLower(strings.TrimSpace(parts[0]))] = strings.TrimSpace(parts[1])
	}
	return styles
}

var invisibleTags = map[string]bool{
	"head": true, "script": true, "style": true, "title": true, "meta": true, "template": true, "noscript": true,
}

// displayed is false when the node or an ancestor is hidden by markup or inline style.
func displayed(n *html.Node) bool {
	if n.Data == "input" {
		if t, _ := attr(n, "type"); strings.EqualFold(t, "hidden") {
			return false
		}
	}
	for p := n; p != nil; p = p.Parent {
		if p.Type != html.ElementNode {
			continue
		}
		if invisibleTags[p.Data] {
			return false
		}
		if _, ok := attr(p, "hidden"); ok {
			return false
		}
		style := inlineStyle(p)
		if style["display"] == "none" || style["visibility"] == "hidden" {
			return false
		}
	}
	return true
}

func editable(n *html.Node) bool {
	if !displayed(n) {
		return false
	}
	if _, disabled := attr(n, "disabled"); disabled {
		return false
	}
	if _, readonly := attr(n, "readonly"); readonly {
		return false
	}
	return n.Data == "input" || n.Data == "textarea"
}
