package waitk

import (
	"fmt"
	"iter"
	"strings"

	"github.com/pkg/errors"
)

// Collection is an ordered set of nodes located together.
type Collection struct {
	locator Locator[[]Node]
	config  Config
}

// NewCollection from a locator and config
func NewCollection(locator Locator[[]Node], config Config) *Collection {
	return &Collection{locator: locator, config: config}
}

func (c *Collection) String() string {
	return c.locator.String()
}

// Config of the collection
func (c *Collection) Config() Config {
	return c.config
}

// With returns the same collection using an overridden config
func (c *Collection) With(o Options) *Collection {
	return NewCollection(c.locator, c.config.With(o))
}

// Locate resolves the collection now
func (c *Collection) Locate() ([]Node, error) {
	return c.locator.Locate()
}

// Nodes is Locate, so collections can be collected
func (c *Collection) Nodes() ([]Node, error) {
	return c.Locate()
}

// Wait over this collection
func (c *Collection) Wait() Wait[*Collection] {
	return WaitFor(c.config, c)
}

// Cached resolves once and keeps the nodes, or the lookup error.
func (c *Collection) Cached() *Collection {
	nodes, err := c.Locate()
	return NewCollection(NewLocator(c.String()+".cached", func() ([]Node, error) {
		return nodes, err
	}), c.config)
}

func (c *Collection) derive(description string, locate func() ([]Node, error)) *Collection {
	return NewCollection(NewLocator(description, locate), c.config)
}

// Element at index, negative indices count from the end.
func (c *Collection) Element(index int) *Element {
	return NewElement(NewLocator(fmt.Sprintf("%s[%d]", c, index), func() (Node, error) {
		nodes, err := c.Locate()
		if err != nil {
			return nil, err
		}
		i := index
		if i < 0 {
			i += len(nodes)
		}
		if i < 0 || i >= len(nodes) {
			return nil, &IndexError{Index: index, Length: len(nodes)}
		}
		return nodes[i], nil
	}), c.config)
}

// First element of the collection
func (c *Collection) First() *Element {
	return c.Element(0)
}

// Sliced returns nodes from start up to, not including, stop, taking every
// step-th one. Bounds are clamped to the current length.
func (c *Collection) Sliced(start, stop, step int) *Collection {
	return c.slice(fmt.Sprintf("%s[%d:%d:%d]", c, start, stop, step), start, stop, step)
}

// From start to the end
func (c *Collection) From(start int) *Collection {
	return c.slice(fmt.Sprintf("%s[%d:]", c, start), start, int(^uint(0)>>1), 1)
}

// To stop, from the beginning
func (c *Collection) To(stop int) *Collection {
	return c.slice(fmt.Sprintf("%s[:%d]", c, stop), 0, stop, 1)
}

func (c *Collection) slice(description string, start, stop, step int) *Collection {
	return c.derive(description, func() ([]Node, error) {
		if step <= 0 {
			return nil, Permanent(errors.Errorf("slice step must be positive, got %d", step))
		}
		nodes, err := c.Locate()
		if err != nil {
			return nil, err
		}
		from, to := clampIndex(start, len(nodes)), clampIndex(stop, len(nodes))
		sliced := make([]Node, 0)
		for i := from; i < to; i += step {
			sliced = append(sliced, nodes[i])
		}
		return sliced, nil
	})
}

func clampIndex(i, length int) int {
	if i < 0 {
		i += length
		if i < 0 {
			return 0
		}
	}
	if i > length {
		return length
	}
	return i
}

// snapshot wraps every currently located node in an element bound to that node.
func (c *Collection) snapshot() ([]*Element, error) {
	cached := c.Cached()
	nodes, err := cached.Locate()
	if err != nil {
		return nil, err
	}
	elements := make([]*Element, len(nodes))
	for i := range nodes {
		elements[i] = cached.Element(i)
	}
	return elements, nil
}

// Elements is a snapshot of the collection; later DOM changes do not affect it.
func (c *Collection) Elements() ([]*Element, error) {
	return c.snapshot()
}

// Iter walks a snapshot of the collection. A failed lookup yields nothing,
// use Elements to see the error.
func (c *Collection) Iter() iter.Seq2[int, *Element] {
	return func(yield func(int, *Element) bool) {
		elements, err := c.snapshot()
		if err != nil {
			return
		}
		for i, el := range elements {
			if !yield(i, el) {
				return
			}
		}
	}
}

// Len waits for the collection to resolve and returns its size
func (c *Collection) Len() (int, error) {
	return WaitQuery(c.Wait(), "size", func(c *Collection) (int, error) {
		nodes, err := c.Locate()
		return len(nodes), err
	})
}

func (c *Collection) filtered(description string, keep func(*Element) bool) *Collection {
	return c.derive(description, func() ([]Node, error) {
		elements, err := c.snapshot()
		if err != nil {
			return nil, err
		}
		nodes := make([]Node, 0, len(elements))
		for _, el := range elements {
			if !keep(el) {
				continue
			}
			node, err := el.Locate()
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, node)
		}
		return nodes, nil
	})
}

// FilteredBy keeps the elements the condition matches
func (c *Collection) FilteredBy(cond Condition[*Element]) *Collection {
	return c.filtered(fmt.Sprintf("%s.filtered_by(%s)", c, cond), cond.Predicate())
}

// FilteredByTheir keeps the elements whose child found by selector matches the condition
func (c *Collection) FilteredByTheir(selector string, cond Condition[*Element]) *Collection {
	return c.filtered(fmt.Sprintf("%s.filtered_by_their(%s, %s)", c, ParseSelector(selector), cond), func(el *Element) bool {
		return el.Element(selector).Matching(cond)
	})
}

func (c *Collection) elementBy(description string, cond Condition[*Element], match func(*Element) bool) *Element {
	return NewElement(NewLocator(description, func() (Node, error) {
		elements, err := c.snapshot()
		if err != nil {
			return nil, err
		}
		for _, el := range elements {
			if match(el) {
				return el.Locate()
			}
		}
		msg := fmt.Sprintf("by condition «%s»\nAmong %s", cond, c)
		if c.config.LogOuterHTMLOnFailure() {
			msg += "\nActual webelements collection:\n" + outerHTMLs(elements)
		}
		return nil, &ElementNotFoundErr{Message: msg}
	}), c.config)
}

// ElementBy is the first element, in document order, matching the condition
func (c *Collection) ElementBy(cond Condition[*Element]) *Element {
	return c.elementBy(fmt.Sprintf("%s.element_by(%s)", c, cond), cond, cond.Predicate())
}

// ElementByIts is the first element whose child found by selector matches the condition
func (c *Collection) ElementByIts(selector string, cond Condition[*Element]) *Element {
	return c.elementBy(fmt.Sprintf("%s.element_by_its(%s, %s)", c, ParseSelector(selector), cond), cond, func(el *Element) bool {
		return el.Element(selector).Matching(cond)
	})
}

func outerHTMLs(elements []*Element) string {
	lines := make([]string, 0, len(elements))
	for _, el := range elements {
		node, err := el.Locate()
		if err != nil {
			continue
		}
		html, err := node.Property("outerHTML")
		if err != nil {
			continue
		}
		lines = append(lines, fmt.Sprint(html))
	}
	return strings.Join(lines, "\n")
}

// All descendants of every element matching selector, flattened
func (c *Collection) All(selector string) *Collection {
	by := ParseSelector(selector)
	return c.Collected(fmt.Sprintf("all(%s)", by), func(el *Element) Resolvable {
		return el.AllBy(by)
	})
}

// AllFirst is the first descendant of every element matching selector
func (c *Collection) AllFirst(selector string) *Collection {
	by := ParseSelector(selector)
	return c.Collected(fmt.Sprintf("all_first(%s)", by), func(el *Element) Resolvable {
		return el.ElementBy(by)
	})
}

// Collected maps every element to more nodes and flattens the result.
func (c *Collection) Collected(description string, finder func(*Element) Resolvable) *Collection {
	return c.derive(fmt.Sprintf("%s.%s", c, description), func() ([]Node, error) {
		elements, err := c.snapshot()
		if err != nil {
			return nil, err
		}
		nodes := make([]Node, 0, len(elements))
		for _, el := range elements {
			found, err := finder(el).Nodes()
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, found...)
		}
		return nodes, nil
	})
}

// Should waits for a collection condition
func (c *Collection) Should(cond Condition[*Collection]) error {
	return c.Wait().For(cond)
}

// ShouldEach waits for every element of the collection to match the condition.
func (c *Collection) ShouldEach(cond Condition[*Element]) error {
	return c.Wait().For(NewCondition(fmt.Sprintf("each %s", cond), func(c *Collection) error {
		elements, err := c.snapshot()
		if err != nil {
			return err
		}
		for _, el := range elements {
			if err := cond.Call(el); err != nil {
				return errors.Wrapf(err, "%s", el)
			}
		}
		return nil
	}))
}

func (c *Collection) WaitUntil(cond Condition[*Collection]) bool {
	return c.Wait().Until(cond)
}

func (c *Collection) Matching(cond Condition[*Collection]) bool {
	return cond.Predicate()(c)
}

func (c *Collection) Perform(cmd Command[*Collection]) error {
	return c.Wait().For(cmd)
}
