package waitk

// scripts run with the element as arguments[0]

const setValueScript = `return (function(element, text) {
    var maxlength = element.getAttribute('maxlength') === null
        ? -1
        : parseInt(element.getAttribute('maxlength'));
    element.value = maxlength === -1
        ? text
        : text.length <= maxlength ? text : text.substring(0, maxlength);
    return null;
})(arguments[0], arguments[1]);`

const typeScript = `return (function(element, textToAppend) {
    var value = element.value || '';
    var text = value + textToAppend;
    var maxlength = element.getAttribute('maxlength') === null
        ? -1
        : parseInt(element.getAttribute('maxlength'));
    element.value = maxlength === -1
        ? text
        : text.length <= maxlength ? text : text.substring(0, maxlength);
    return null;
})(arguments[0], arguments[1]);`

// returns null when nothing covers the element centre
const overlapScript = `var element = arguments[0];
var isVisible = !!(element.offsetWidth || element.offsetHeight || element.getClientRects().length)
    && window.getComputedStyle(element).visibility !== 'hidden';
if (!isVisible) {
    throw 'element ' + element.outerHTML + ' is not visible';
}
var rect = element.getBoundingClientRect();
var x = rect.left + rect.width / 2;
var y = rect.top + rect.height / 2;
var elementByXnY = document.elementFromPoint(x, y);
if (elementByXnY == null) {
    return null;
}
if (element.isSameNode(elementByXnY) || element.contains(elementByXnY)) {
    return null;
}
return {element: element.outerHTML, cover: elementByXnY.outerHTML};`

const mouseEventScript = `arguments[0].dispatchEvent(new MouseEvent(arguments[1], {
    bubbles: true, cancelable: true, view: window, button: arguments[2]
}));
return null;`

const scrollIntoViewScript = `arguments[0].scrollIntoView(arguments[1]); return null;`

const clickScript = `arguments[0].click(); return null;`

// SetValueByJS sets the element's value, honouring maxlength
func SetValueByJS(value string) Command[*Element] {
	return NewCommand("set value by js: "+value, func(e *Element) error {
		_, err := e.ExecuteScript(setValueScript, value)
		return err
	})
}

// TypeByJS appends to the element's value, honouring maxlength
func TypeByJS(text string) Command[*Element] {
	return NewCommand("type by js: "+text, func(e *Element) error {
		_, err := e.ExecuteScript(typeScript, text)
		return err
	})
}

// ScrollIntoView aligns the element to the top of the viewport, or the bottom when alignToTop is false.
func ScrollIntoView(alignToTop bool) Command[*Element] {
	return NewCommand("scroll into view", func(e *Element) error {
		_, err := e.ExecuteScript(scrollIntoViewScript, alignToTop)
		return err
	})
}

// ClickByJS clicks through the DOM api, skipping pointer simulation
func ClickByJS() Command[*Element] {
	return NewCommand("click by js", func(e *Element) error {
		_, err := e.ExecuteScript(clickScript)
		return err
	})
}
