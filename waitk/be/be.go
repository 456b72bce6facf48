// Package be holds state conditions: browser.Element("#submit").Should(be.Visible)
package be

import (
	"gitlab.com/waitker/waitk"
	"gitlab.com/waitker/waitk/match"
)

var (
	Visible   = match.Visible
	Hidden    = match.Hidden
	Selected  = match.Selected
	Present   = match.Present
	InDOM     = match.Present
	Existing  = match.Present
	Absent    = match.Absent
	Enabled   = match.Enabled
	Disabled  = match.Disabled
	Clickable = match.Clickable
	Focused   = match.Focused
	Blank     = match.Blank
	Empty     = match.Empty
)

// Not holds the negated state conditions: be.Not.Visible
var Not = struct {
	Visible   waitk.Condition[*waitk.Element]
	Hidden    waitk.Condition[*waitk.Element]
	Selected  waitk.Condition[*waitk.Element]
	Present   waitk.Condition[*waitk.Element]
	Absent    waitk.Condition[*waitk.Element]
	Enabled   waitk.Condition[*waitk.Element]
	Disabled  waitk.Condition[*waitk.Element]
	Clickable waitk.Condition[*waitk.Element]
	Focused   waitk.Condition[*waitk.Element]
	Blank     waitk.Condition[*waitk.Element]
	Empty     waitk.Condition[*waitk.Collection]
}{
	Visible:   match.Visible.Not(),
	Hidden:    match.Hidden.Not(),
	Selected:  match.Selected.Not(),
	Present:   match.Present.Not(),
	Absent:    match.Absent.Not(),
	Enabled:   match.Enabled.Not(),
	Disabled:  match.Disabled.Not(),
	Clickable: match.Clickable.Not(),
	Focused:   match.Focused.Not(),
	Blank:     match.Blank.Not(),
	Empty:     match.Empty.Not(),
}
