package cdp

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/wirepair/gcd/gcdapi"
	"gitlab.com/waitker/waitk"
)

// findFunction runs with the document or an element as this
const findFunction = `function(strategy, value) {
    if (strategy === 'css selector') {
        return Array.from(this.querySelectorAll(value));
    }
    var doc = this.ownerDocument || this;
    var result = doc.evaluate(value, this, null, XPathResult.ORDERED_NODE_SNAPSHOT_TYPE, null);
    var nodes = [];
    for (var i = 0; i < result.snapshotLength; i++) {
        var node = result.snapshotItem(i);
        if (node.nodeType === Node.ELEMENT_NODE) {
            nodes.push(node);
        }
    }
    return nodes;
}`

const (
	lengthFunction    = `function() { return this.length; }`
	indexFunction     = `function(i) { return this[i]; }`
	tagNameFunction   = `function() { return this.tagName.toLowerCase(); }`
	textFunction      = `function() { return (this.innerText || '').trim(); }`
	attributeFunction = `function(name) { return this.getAttribute(name); }`
	propertyFunction  = `function(name) { return this[name]; }`
	cssValueFunction  = `function(name) { return window.getComputedStyle(this).getPropertyValue(name); }`
	enabledFunction   = `function() { return !this.disabled; }`
	selectedFunction  = `function() { return !!(this.checked || this.selected); }`
	focusFunction     = `function() { this.focus(); return null; }`
	displayedFunction = `function() {
    return !!(this.offsetWidth || this.offsetHeight || this.getClientRects().length)
        && window.getComputedStyle(this).visibility !== 'hidden';
}`
	rectFunction = `function(scroll) {
    if (scroll) {
        this.scrollIntoView({block: 'center', inline: 'center'});
    }
    var r = this.getBoundingClientRect();
    return {x: r.x, y: r.y, width: r.width, height: r.height};
}`
	clearFunction = `function() {
    this.value = '';
    this.dispatchEvent(new Event('input', {bubbles: true}));
    this.dispatchEvent(new Event('change', {bubbles: true}));
    return null;
}`
	submitFunction = `function() {
    var form = this.tagName === 'FORM' ? this : this.form;
    if (!form) {
        throw new Error('element is not in a form');
    }
    form.submit();
    return null;
}`
)

// scriptFunction wraps a script body so that arguments[i] are the call arguments
func scriptFunction(script string) string {
	return "function() {\n" + script + "\n}"
}

// findQuery rewrites a selector to one of the two strategies the browser resolves natively.
func findQuery(by waitk.Selector) (string, string, error) {
	switch by.Strategy() {
	case waitk.StrategyCSS, waitk.StrategyXPath:
		return by.Strategy(), by.Value, nil
	case waitk.StrategyID:
		return waitk.StrategyCSS, fmt.Sprintf("[id=%q]", by.Value), nil
	case waitk.StrategyName:
		return waitk.StrategyCSS, fmt.Sprintf("[name=%q]", by.Value), nil
	case waitk.StrategyTagName:
		return waitk.StrategyCSS, by.Value, nil
	case waitk.StrategyClassName:
		return waitk.StrategyCSS, "." + by.Value, nil
	case waitk.StrategyLinkText:
		return waitk.StrategyXPath, fmt.Sprintf(".//a[normalize-space(.)=%s]", xpathLiteral(by.Value)), nil
	case waitk.StrategyPartialLinkText:
		return waitk.StrategyXPath, fmt.Sprintf(".//a[contains(normalize-space(.), %s)]", xpathLiteral(by.Value)), nil
	}
	return "", "", waitk.Permanent(errors.Wrap(waitk.ErrUnknownStrategy, by.Strategy()))
}

// xpathLiteral quotes s, falling back to concat() when it holds both quote kinds
func xpathLiteral(s string) string {
	if !strings.Contains(s, `"`) {
		return `"` + s + `"`
	}
	if !strings.Contains(s, "'") {
		return "'" + s + "'"
	}
	parts := strings.Split(s, `"`)
	quoted := make([]string, 0, len(parts)*2)
	for i, p := range parts {
		if i > 0 {
			quoted = append(quoted, `'"'`)
		}
		if p != "" {
			quoted = append(quoted, `"`+p+`"`)
		}
	}
	return "concat(" + strings.Join(quoted, ", ") + ")"
}

var systemKeys = map[string]string{
	waitk.KeyReturn:    "\r",
	waitk.KeyEnter:     "\r",
	waitk.KeyTab:       "\t",
	waitk.KeyBackspace: "\b",
}

// translateKeys maps webdriver key codes to what Tab.SendKeys dispatches;
// keys without a mapping are dropped.
func translateKeys(keys string) string {
	var b strings.Builder
	for _, r := range keys {
		k := string(r)
		if mapped, ok := systemKeys[k]; ok {
			b.WriteString(mapped)
			continue
		}
		if r >= 0xe000 && r <= 0xf8ff {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// callArguments passes nodes by remote object id and everything else by value
func (d *Driver) callArguments(args []interface{}) ([]*gcdapi.RuntimeCallArgument, error) {
	callArgs := make([]*gcdapi.RuntimeCallArgument, len(args))
	for i, arg := range args {
		switch v := arg.(type) {
		case *Node:
			if v.d != d {
				return nil, waitk.Permanent(ErrForeignNode)
			}
			callArgs[i] = &gcdapi.RuntimeCallArgument{ObjectId: v.objectID}
		case waitk.Node:
			return nil, waitk.Permanent(ErrForeignNode)
		default:
			callArgs[i] = &gcdapi.RuntimeCallArgument{Value: v}
		}
	}
	return callArgs, nil
}

func rectFrom(v interface{}) (waitk.Rect, error) {
	m, ok := v.(map[string]interface{})
	if !ok {
		return waitk.Rect{}, errors.Errorf("unexpected rect %v", v)
	}
	num := func(key string) float64 {
		f, _ := m[key].(float64)
		return f
	}
	return waitk.Rect{X: num("x"), Y: num("y"), Width: num("width"), Height: num("height")}, nil
}
