package waitk

import (
	"fmt"

	"github.com/rs/zerolog/log"
)

// Browser is the automation surface: navigation, tabs and the page's elements.
type Browser struct {
	config Config
}

// NewBrowser using config
func NewBrowser(config Config) *Browser {
	return &Browser{config: config}
}

func (b *Browser) String() string {
	return "browser"
}

// Config of the browser
func (b *Browser) Config() Config {
	return b.config
}

// With returns a browser using an overridden config
func (b *Browser) With(o Options) *Browser {
	return NewBrowser(b.config.With(o))
}

// Driver currently configured
func (b *Browser) Driver() (Driver, error) {
	return b.config.Driver()
}

// Wait over the browser
func (b *Browser) Wait() Wait[*Browser] {
	return WaitFor(b.config, b)
}

// Element on the page, the selector is auto detected as CSS or XPath.
func (b *Browser) Element(selector string) *Element {
	return b.ElementBy(ParseSelector(selector))
}

// ElementBy with an explicit selector
func (b *Browser) ElementBy(by Selector) *Element {
	return NewElement(NewLocator(fmt.Sprintf("%s.element(%s)", b, by), func() (Node, error) {
		d, err := b.Driver()
		if err != nil {
			return nil, err
		}
		return d.FindElement(by)
	}), b.config)
}

// All elements on the page matching selector
func (b *Browser) All(selector string) *Collection {
	return b.AllBy(ParseSelector(selector))
}

// AllBy with an explicit selector
func (b *Browser) AllBy(by Selector) *Collection {
	return NewCollection(NewLocator(fmt.Sprintf("%s.all(%s)", b, by), func() ([]Node, error) {
		d, err := b.Driver()
		if err != nil {
			return nil, err
		}
		return d.FindElements(by)
	}), b.config)
}

// Open navigates to url, relative urls are appended to the base url. The window
// is resized first when both dimensions are configured.
func (b *Browser) Open(url string) error {
	d, err := b.Driver()
	if err != nil {
		return err
	}
	return open(d, b.config, url)
}

func open(d Driver, config Config, url string) error {
	if width, height, ok := config.WindowSize(); ok {
		if err := d.SetWindowSize(width, height); err != nil {
			return err
		}
	}
	target := ResolveURL(config.BaseURL(), url)
	log.Debug().Str("url", target).Msg("opening")
	return d.Get(target)
}

// Should waits for a browser condition
func (b *Browser) Should(c Condition[*Browser]) error {
	return b.Wait().For(c)
}

func (b *Browser) WaitUntil(c Condition[*Browser]) bool {
	return b.Wait().Until(c)
}

func (b *Browser) Matching(c Condition[*Browser]) bool {
	return c.Predicate()(b)
}

func (b *Browser) Perform(cmd Command[*Browser]) error {
	return b.Wait().For(cmd)
}

// ExecuteScript in the page
func (b *Browser) ExecuteScript(script string, args ...interface{}) (interface{}, error) {
	d, err := b.Driver()
	if err != nil {
		return nil, err
	}
	return d.ExecuteScript(script, args...)
}

func (b *Browser) switchTo(description string, handle func(d Driver) (string, error)) error {
	return b.Wait().Command(description, func(b *Browser) error {
		d, err := b.Driver()
		if err != nil {
			return err
		}
		h, err := handle(d)
		if err != nil {
			return err
		}
		return d.SwitchToWindow(h)
	})
}

// SwitchToNextTab, wrapping from the last tab to the first
func (b *Browser) SwitchToNextTab() error {
	return b.switchTo("switch to next tab", NextTabHandle)
}

// SwitchToPreviousTab, wrapping from the first tab to the last
func (b *Browser) SwitchToPreviousTab() error {
	return b.switchTo("switch to previous tab", PreviousTabHandle)
}

// SwitchToTab by position
func (b *Browser) SwitchToTab(index int) error {
	return b.switchTo(fmt.Sprintf("switch to tab %d", index), func(d Driver) (string, error) {
		return TabHandle(d, index)
	})
}

// SwitchToTabNamed by window handle
func (b *Browser) SwitchToTabNamed(handle string) error {
	return b.switchTo("switch to tab "+handle, func(d Driver) (string, error) {
		return handle, nil
	})
}

// CloseCurrentTab closes the focused tab, switch to another one afterwards.
func (b *Browser) CloseCurrentTab() error {
	d, err := b.Driver()
	if err != nil {
		return err
	}
	return d.CloseWindow()
}

func (b *Browser) ClearLocalStorage() error {
	_, err := b.ExecuteScript("window.localStorage.clear(); return null;")
	return err
}

func (b *Browser) ClearSessionStorage() error {
	_, err := b.ExecuteScript("window.sessionStorage.clear(); return null;")
	return err
}

// SaveScreenshot of the current tab to file
func (b *Browser) SaveScreenshot(file string) error {
	d, err := b.Driver()
	if err != nil {
		return err
	}
	return d.SaveScreenshot(file)
}

// Quit the driver
func (b *Browser) Quit() error {
	d, err := b.Driver()
	if err != nil {
		return err
	}
	return d.Quit()
}
