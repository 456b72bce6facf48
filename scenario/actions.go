package scenario

import (
	"strconv"

	"github.com/pkg/errors"
	"gitlab.com/waitker/waitk"
	"gitlab.com/waitker/waitk/command"
)

type (
	elementAction func(e *waitk.Element, value string) error
	browserAction func(b *waitk.SharedBrowser, value string) error
)

var elementActions = map[string]elementAction{
	"click":            func(e *waitk.Element, _ string) error { return e.Click() },
	"double_click":     func(e *waitk.Element, _ string) error { return e.DoubleClick() },
	"context_click":    func(e *waitk.Element, _ string) error { return e.ContextClick() },
	"hover":            func(e *waitk.Element, _ string) error { return e.Hover() },
	"set_value":        (*waitk.Element).SetValue,
	"type":             (*waitk.Element).Type,
	"clear":            func(e *waitk.Element, _ string) error { return e.Clear() },
	"submit":           func(e *waitk.Element, _ string) error { return e.Submit() },
	"press_enter":      func(e *waitk.Element, _ string) error { return e.PressEnter() },
	"press_escape":     func(e *waitk.Element, _ string) error { return e.PressEscape() },
	"press_tab":        func(e *waitk.Element, _ string) error { return e.PressTab() },
	"scroll_into_view": func(e *waitk.Element, _ string) error { return e.Perform(command.ScrollIntoView) },
	"click_by_js":      func(e *waitk.Element, _ string) error { return e.Perform(command.ClickByJS) },
	"set_value_by_js":  func(e *waitk.Element, v string) error { return e.Perform(command.SetValueByJS(v)) },
	"type_by_js":       func(e *waitk.Element, v string) error { return e.Perform(command.TypeByJS(v)) },
}

var browserActions = map[string]browserAction{
	"open":                   (*waitk.SharedBrowser).Open,
	"switch_to_next_tab":     func(b *waitk.SharedBrowser, _ string) error { return b.SwitchToNextTab() },
	"switch_to_previous_tab": func(b *waitk.SharedBrowser, _ string) error { return b.SwitchToPreviousTab() },
	"switch_to_tab_named":    (*waitk.SharedBrowser).SwitchToTabNamed,
	"close_current_tab":      func(b *waitk.SharedBrowser, _ string) error { return b.CloseCurrentTab() },
	"clear_local_storage":    func(b *waitk.SharedBrowser, _ string) error { return b.ClearLocalStorage() },
	"clear_session_storage":  func(b *waitk.SharedBrowser, _ string) error { return b.ClearSessionStorage() },
	"scroll_to_bottom":       func(b *waitk.SharedBrowser, _ string) error { return b.Perform(command.ScrollToBottom) },
	"switch_to_tab": func(b *waitk.SharedBrowser, v string) error {
		index, err := strconv.Atoi(v)
		if err != nil {
			return errors.Wrap(err, "tab index must be a number")
		}
		return b.SwitchToTab(index)
	},
	"screenshot": func(b *waitk.SharedBrowser, v string) error {
		_, err := b.SaveScreenshot(v)
		return err
	},
}
