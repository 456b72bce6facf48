package mock

import (
	"sync"

	"gitlab.com/waitker/waitk"
)

// Page is what a mock driver's lookups see; change it to simulate DOM updates.
type Page struct {
	mu    sync.Mutex
	nodes []*Node
	// Lookups counts FindElement(s) calls
	Lookups int
}

// Set replaces the page's nodes
func (p *Page) Set(nodes ...*Node) {
	p.mu.Lock()
	p.nodes = nodes
	p.mu.Unlock()
}

// Append nodes to the page
func (p *Page) Append(nodes ...*Node) {
	p.mu.Lock()
	p.nodes = append(p.nodes, nodes...)
	p.mu.Unlock()
}

func (p *Page) current() []waitk.Node {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Lookups++
	nodes := make([]waitk.Node, len(p.nodes))
	for i, n := range p.nodes {
		nodes[i] = n
	}
	return nodes
}

// MakeMockNodes one per text
func MakeMockNodes(texts ...string) []*Node {
	nodes := make([]*Node, len(texts))
	for i, text := range texts {
		nodes[i] = MakeMockNode(text, nil)
	}
	return nodes
}

// MakeMockPage returns a driver whose every selector matches all nodes of the page.
func MakeMockPage(texts ...string) (*Driver, *Page) {
	page := &Page{}
	page.Set(MakeMockNodes(texts...)...)

	d := MakeMockDriver()
	d.FindElementsFn = func(by waitk.Selector) ([]waitk.Node, error) {
		return page.current(), nil
	}
	d.FindElementFn = func(by waitk.Selector) (waitk.Node, error) {
		nodes := page.current()
		if len(nodes) == 0 {
			return nil, waitk.ErrNoSuchElement
		}
		return nodes[0], nil
	}
	return d, page
}
