// Package webdriver adapts a W3C WebDriver session from tebeka/selenium.
package webdriver

import (
	"os"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/tebeka/selenium"
	"gitlab.com/waitker/waitk"
)

// Driver wraps a selenium session
type Driver struct {
	wd selenium.WebDriver
}

// New session on the remote end at url, e.g. http://localhost:4444/wd/hub
func New(browserName, url string) (*Driver, error) {
	caps := selenium.Capabilities{"browserName": browserName}
	remote, err := selenium.NewRemote(caps, url)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to start %s session", browserName)
	}
	log.Info().Str("browser", browserName).Str("remote", url).Msg("webdriver session started")
	return Wrap(remote), nil
}

// Factory starting a new session for every call
func Factory(browserName, url string) waitk.DriverFactory {
	return func() (waitk.Driver, error) {
		return New(browserName, url)
	}
}

// Wrap an existing session
func Wrap(wd selenium.WebDriver) *Driver {
	return &Driver{wd: wd}
}

// WebDriver underneath
func (d *Driver) WebDriver() selenium.WebDriver {
	return d.wd
}

// classify maps protocol errors onto the engine's sentinels
func classify(err error) error {
	if err == nil {
		return nil
	}
	var wdErr *selenium.Error
	if !errors.As(err, &wdErr) {
		return err
	}
	switch wdErr.Err {
	case "no such element", "stale element reference":
		return errors.Wrap(waitk.ErrNoSuchElement, wdErr.Message)
	case "invalid session id", "no such window":
		return waitk.Permanent(errors.Wrap(waitk.ErrDriverClosed, wdErr.Message))
	case "invalid selector":
		return waitk.Permanent(err)
	}
	return err
}

func (d *Driver) wrap(elements []selenium.WebElement) []waitk.Node {
	nodes := make([]waitk.Node, len(elements))
	for i, we := range elements {
		nodes[i] = &Node{d: d, we: we}
	}
	return nodes
}

func (d *Driver) FindElement(by waitk.Selector) (waitk.Node, error) {
	we, err := d.wd.FindElement(by.Strategy(), by.Value)
	if err != nil {
		return nil, classify(err)
	}
	return &Node{d: d, we: we}, nil
}

func (d *Driver) FindElements(by waitk.Selector) ([]waitk.Node, error) {
	elements, err := d.wd.FindElements(by.Strategy(), by.Value)
	if err != nil {
		return nil, classify(err)
	}
	return d.wrap(elements), nil
}

func (d *Driver) Get(url string) error {
	return classify(d.wd.Get(url))
}

func (d *Driver) CurrentURL() (string, error) {
	url, err := d.wd.CurrentURL()
	return url, classify(err)
}

func (d *Driver) Title() (string, error) {
	title, err := d.wd.Title()
	return title, classify(err)
}

func (d *Driver) PageSource() (string, error) {
	source, err := d.wd.PageSource()
	return source, classify(err)
}

// ExecuteScript passes Node arguments as element references
func (d *Driver) ExecuteScript(script string, args ...interface{}) (interface{}, error) {
	wdArgs := make([]interface{}, len(args))
	for i, arg := range args {
		switch v := arg.(type) {
		case *Node:
			wdArgs[i] = v.we
		case waitk.Node:
			return nil, waitk.Permanent(errors.New("node belongs to another driver"))
		default:
			wdArgs[i] = v
		}
	}
	result, err := d.wd.ExecuteScript(script, wdArgs)
	return result, classify(err)
}

func (d *Driver) SetWindowSize(width, height int) error {
	handle, err := d.wd.CurrentWindowHandle()
	if err != nil {
		return classify(err)
	}
	return classify(d.wd.ResizeWindow(handle, width, height))
}

func (d *Driver) WindowHandles() ([]string, error) {
	handles, err := d.wd.WindowHandles()
	return handles, classify(err)
}

func (d *Driver) CurrentWindowHandle() (string, error) {
	handle, err := d.wd.CurrentWindowHandle()
	return handle, classify(err)
}

func (d *Driver) SwitchToWindow(handle string) error {
	return classify(d.wd.SwitchWindow(handle))
}

func (d *Driver) CloseWindow() error {
	handle, err := d.wd.CurrentWindowHandle()
	if err != nil {
		return classify(err)
	}
	return classify(d.wd.CloseWindow(handle))
}

func (d *Driver) SaveScreenshot(file string) error {
	png, err := d.wd.Screenshot()
	if err != nil {
		return classify(err)
	}
	return os.WriteFile(file, png, 0644)
}

func (d *Driver) Quit() error {
	return classify(d.wd.Quit())
}
