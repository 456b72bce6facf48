package waitk

import (
	"fmt"
	"strings"
)

// Selector strategies, as named by the WebDriver protocol.
const (
	StrategyCSS             = "css selector"
	StrategyXPath           = "xpath"
	StrategyID              = "id"
	StrategyName            = "name"
	StrategyTagName         = "tag name"
	StrategyClassName       = "class name"
	StrategyLinkText        = "link text"
	StrategyPartialLinkText = "partial link text"
)

// SelectorKind tags which variant a Selector holds
type SelectorKind int8

// revive:disable:var-naming
const (
	SelectorCSS SelectorKind = iota + 1
	SelectorXPath
	SelectorPair
)

// Selector is how a node is located; its kind is fixed when it is built.
type Selector struct {
	Kind     SelectorKind
	strategy string
	Value    string
}

// CSS selector
func CSS(value string) Selector {
	return Selector{Kind: SelectorCSS, strategy: StrategyCSS, Value: value}
}

// XPath selector
func XPath(value string) Selector {
	return Selector{Kind: SelectorXPath, strategy: StrategyXPath, Value: value}
}

// By builds a selector from an explicit strategy and value.
func By(strategy, value string) Selector {
	switch strategy {
	case StrategyCSS:
		return CSS(value)
	case StrategyXPath:
		return XPath(value)
	}
	return Selector{Kind: SelectorPair, strategy: strategy, Value: value}
}

var xpathPrefixes = []string{"/", "./", "..", "("}

// ParseSelector classifies a raw string as XPath or CSS.
func ParseSelector(raw string) Selector {
	for _, prefix := range xpathPrefixes {
		if strings.HasPrefix(raw, prefix) {
			return XPath(raw)
		}
	}
	return CSS(raw)
}

// Strategy the driver should use to resolve Value
func (s Selector) Strategy() string {
	return s.strategy
}

func (s Selector) String() string {
	return fmt.Sprintf("('%s', '%s')", s.strategy, s.Value)
}
