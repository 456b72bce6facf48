// Package query holds ready made queries for elements, collections and the browser.
package query

import (
	"fmt"

	"github.com/pkg/errors"
	"gitlab.com/waitker/waitk"
)

// Attribute value of the element; a missing attribute is an error so Get keeps waiting.
func Attribute(name string) waitk.Query[*waitk.Element, string] {
	return waitk.NewQuery("attribute '"+name+"'", func(e *waitk.Element) (string, error) {
		node, err := e.Locate()
		if err != nil {
			return "", err
		}
		value, ok, err := node.Attribute(name)
		if err != nil {
			return "", err
		}
		if !ok {
			return "", errors.Errorf("no attribute %s", name)
		}
		return value, nil
	})
}

func property(description, name string) waitk.Query[*waitk.Element, string] {
	return waitk.NewQuery(description, func(e *waitk.Element) (string, error) {
		node, err := e.Locate()
		if err != nil {
			return "", err
		}
		v, err := node.Property(name)
		if err != nil {
			return "", err
		}
		if v == nil {
			return "", nil
		}
		return fmt.Sprint(v), nil
	})
}

var (
	InnerHTML = property("inner html", "innerHTML")
	OuterHTML = property("outer html", "outerHTML")
	Value     = property("value", "value")
)

// Tag name of the element
var Tag = waitk.NewQuery("tag name", func(e *waitk.Element) (string, error) {
	node, err := e.Locate()
	if err != nil {
		return "", err
	}
	return node.TagName()
})

// Text visible in the element
var Text = waitk.NewQuery("text", func(e *waitk.Element) (string, error) {
	node, err := e.Locate()
	if err != nil {
		return "", err
	}
	return node.Text()
})

// Rect of the element: location and size
var Rect = waitk.NewQuery("rect", func(e *waitk.Element) (waitk.Rect, error) {
	node, err := e.Locate()
	if err != nil {
		return waitk.Rect{}, err
	}
	return node.Rect()
})

// CSSProperty computed for the element
func CSSProperty(name string) waitk.Query[*waitk.Element, string] {
	return waitk.NewQuery("css property "+name, func(e *waitk.Element) (string, error) {
		node, err := e.Locate()
		if err != nil {
			return "", err
		}
		return node.CSSValue(name)
	})
}

// JSProperty of the element's DOM object
func JSProperty(name string) waitk.Query[*waitk.Element, interface{}] {
	return waitk.NewQuery("js property "+name, func(e *waitk.Element) (interface{}, error) {
		node, err := e.Locate()
		if err != nil {
			return nil, err
		}
		return node.Property(name)
	})
}

// Size of the collection
var Size = waitk.NewQuery("size", func(c *waitk.Collection) (int, error) {
	nodes, err := c.Locate()
	if err != nil {
		return 0, err
	}
	return len(nodes), nil
})

// Texts of every element of the collection
var Texts = waitk.NewQuery("texts", func(c *waitk.Collection) ([]string, error) {
	nodes, err := c.Locate()
	if err != nil {
		return nil, err
	}
	texts := make([]string, len(nodes))
	for i, n := range nodes {
		if texts[i], err = n.Text(); err != nil {
			return nil, err
		}
	}
	return texts, nil
})

func browserQuery[R any](description string, fn func(d waitk.Driver) (R, error)) waitk.Query[*waitk.Browser, R] {
	return waitk.NewQuery(description, func(b *waitk.Browser) (R, error) {
		d, err := b.Driver()
		if err != nil {
			var zero R
			return zero, err
		}
		return fn(d)
	})
}

var (
	URL         = browserQuery("url", waitk.Driver.CurrentURL)
	Title       = browserQuery("title", waitk.Driver.Title)
	PageSource  = browserQuery("page source", waitk.Driver.PageSource)
	Tabs        = browserQuery("tabs", waitk.Driver.WindowHandles)
	CurrentTab  = browserQuery("current tab", waitk.Driver.CurrentWindowHandle)
	NextTab     = browserQuery("next tab", waitk.NextTabHandle)
	PreviousTab = browserQuery("previous tab", waitk.PreviousTabHandle)
	TabsNumber  = browserQuery("tabs number", func(d waitk.Driver) (int, error) {
		handles, err := d.WindowHandles()
		return len(handles), err
	})
)

// Tab handle at index
func Tab(index int) waitk.Query[*waitk.Browser, string] {
	return browserQuery(fmt.Sprintf("tab(%d)", index), func(d waitk.Driver) (string, error) {
		return waitk.TabHandle(d, index)
	})
}
