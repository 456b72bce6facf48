package htmldoc

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/antchfx/htmlquery"
	"github.com/pkg/errors"
	"gitlab.com/waitker/waitk"
	"golang.org/x/net/html"
)

// find resolves a selector below root. The strategies without a native
// engine are rewritten to css or xpath first.
func find(root *html.Node, by waitk.Selector) ([]*html.Node, error) {
	switch by.Strategy() {
	case waitk.StrategyCSS:
		return findCSS(root, by.Value)
	case waitk.StrategyXPath:
		nodes, err := htmlquery.QueryAll(root, by.Value)
		if err != nil {
			return nil, waitk.Permanent(errors.Wrapf(err, "invalid xpath %s", by.Value))
		}
		return elementsOnly(nodes), nil
	case waitk.StrategyID:
		return findCSS(root, fmt.Sprintf("[id=%q]", by.Value))
	case waitk.StrategyName:
		return findCSS(root, fmt.Sprintf("[name=%q]", by.Value))
	case waitk.StrategyTagName:
		return findCSS(root, by.Value)
	case waitk.StrategyClassName:
		return findCSS(root, "."+by.Value)
	case waitk.StrategyLinkText, waitk.StrategyPartialLinkText:
		partial := by.Strategy() == waitk.StrategyPartialLinkText
		var links []*html.Node
		goquery.NewDocumentFromNode(root).Find("a").Each(func(_ int, s *goquery.Selection) {
			text := normalizeSpace(s.Text())
			if text == by.Value || (partial && strings.Contains(text, by.Value)) {
				links = append(links, s.Nodes[0])
			}
		})
		return links, nil
	}
	return nil, waitk.Permanent(errors.Wrap(waitk.ErrUnknownStrategy, by.Strategy()))
}

func findCSS(root *html.Node, selector string) (nodes []*html.Node, err error) {
	// cascadia panics on some malformed selectors through goquery.Find
	defer func() {
		if r := recover(); r != nil {
			err = waitk.Permanent(errors.Errorf("invalid css selector %s: %v", selector, r))
		}
	}()
	return goquery.NewDocumentFromNode(root).Find(selector).Nodes, nil
}

func elementsOnly(nodes []*html.Node) []*html.Node {
	out := nodes[:0]
	for _, n := range nodes {
		if n.Type == html.ElementNode {
			out = append(out, n)
		}
	}
	return out
}

func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func (d *Driver) wrap(nodes []*html.Node, err error) ([]waitk.Node, error) {
	if err != nil {
		return nil, err
	}
	wrapped := make([]waitk.Node, len(nodes))
	for i, n := range nodes {
		wrapped[i] = &Node{d: d, n: n}
	}
	return wrapped, nil
}
