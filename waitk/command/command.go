// Package command holds script based commands for elements and the browser.
package command

import "gitlab.com/waitker/waitk"

// SetValueByJS sets the value without key events, honouring maxlength
func SetValueByJS(value string) waitk.Command[*waitk.Element] {
	return waitk.SetValueByJS(value)
}

// TypeByJS appends to the value without key events, honouring maxlength
func TypeByJS(text string) waitk.Command[*waitk.Element] {
	return waitk.TypeByJS(text)
}

// ScrollIntoView aligning the element to the top of the viewport
var ScrollIntoView = waitk.ScrollIntoView(true)

// ClickByJS skips pointer simulation, reaching elements covered by others
var ClickByJS = waitk.ClickByJS()

// ScrollToBottom of the page
var ScrollToBottom = waitk.NewCommand("scroll to bottom", func(b *waitk.Browser) error {
	_, err := b.ExecuteScript("window.scrollTo(0, document.body.scrollHeight); return null;")
	return err
})
