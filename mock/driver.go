package mock

import (
	"gitlab.com/waitker/waitk"
)

type Driver struct {
	GetFn     func(url string) error
	GetCalled bool

	CurrentURLFn func() (string, error)
	TitleFn      func() (string, error)
	TitleCalled  bool
	PageSourceFn func() (string, error)

	FindElementFn  func(by waitk.Selector) (waitk.Node, error)
	FindElementsFn func(by waitk.Selector) ([]waitk.Node, error)

	ExecuteScriptFn     func(script string, args ...interface{}) (interface{}, error)
	ExecuteScriptCalled bool

	SetWindowSizeFn     func(width, height int) error
	SetWindowSizeCalled bool

	WindowHandlesFn       func() ([]string, error)
	CurrentWindowHandleFn func() (string, error)
	SwitchToWindowFn      func(handle string) error
	CloseWindowFn         func() error

	SaveScreenshotFn     func(file string) error
	SaveScreenshotCalled bool

	QuitFn     func() error
	QuitCalled bool
}

func (d *Driver) Get(url string) error {
	d.GetCalled = true
	return d.GetFn(url)
}

func (d *Driver) CurrentURL() (string, error) {
	return d.CurrentURLFn()
}

func (d *Driver) Title() (string, error) {
	d.TitleCalled = true
	return d.TitleFn()
}

func (d *Driver) PageSource() (string, error) {
	return d.PageSourceFn()
}

func (d *Driver) FindElement(by waitk.Selector) (waitk.Node, error) {
	return d.FindElementFn(by)
}

func (d *Driver) FindElements(by waitk.Selector) ([]waitk.Node, error) {
	return d.FindElementsFn(by)
}

func (d *Driver) ExecuteScript(script string, args ...interface{}) (interface{}, error) {
	d.ExecuteScriptCalled = true
	return d.ExecuteScriptFn(script, args...)
}

func (d *Driver) SetWindowSize(width, height int) error {
	d.SetWindowSizeCalled = true
	return d.SetWindowSizeFn(width, height)
}

func (d *Driver) WindowHandles() ([]string, error) {
	return d.WindowHandlesFn()
}

func (d *Driver) CurrentWindowHandle() (string, error) {
	return d.CurrentWindowHandleFn()
}

func (d *Driver) SwitchToWindow(handle string) error {
	return d.SwitchToWindowFn(handle)
}

func (d *Driver) CloseWindow() error {
	return d.CloseWindowFn()
}

func (d *Driver) SaveScreenshot(file string) error {
	d.SaveScreenshotCalled = true
	return d.SaveScreenshotFn(file)
}

func (d *Driver) Quit() error {
	d.QuitCalled = true
	return d.QuitFn()
}

// MakeMockDriver with a single tab "t0" and no elements. Get records the url
// so CurrentURL returns it.
func MakeMockDriver() *Driver {
	d := &Driver{}
	current := "about:blank"
	tabs := []string{"t0"}
	tab := "t0"

	d.GetFn = func(url string) error {
		current = url
		return nil
	}
	d.CurrentURLFn = func() (string, error) {
		return current, nil
	}
	d.TitleFn = func() (string, error) {
		return "mock", nil
	}
	d.PageSourceFn = func() (string, error) {
		return "<html><body></body></html>", nil
	}
	d.FindElementFn = func(by waitk.Selector) (waitk.Node, error) {
		return nil, waitk.ErrNoSuchElement
	}
	d.FindElementsFn = func(by waitk.Selector) ([]waitk.Node, error) {
		return []waitk.Node{}, nil
	}
	d.ExecuteScriptFn = func(script string, args ...interface{}) (interface{}, error) {
		return nil, nil
	}
	d.SetWindowSizeFn = func(width, height int) error {
		return nil
	}
	d.WindowHandlesFn = func() ([]string, error) {
		return tabs, nil
	}
	d.CurrentWindowHandleFn = func() (string, error) {
		return tab, nil
	}
	d.SwitchToWindowFn = func(handle string) error {
		tab = handle
		return nil
	}
	d.CloseWindowFn = func() error {
		return nil
	}
	d.SaveScreenshotFn = func(file string) error {
		return nil
	}
	d.QuitFn = func() error {
		return nil
	}
	return d
}
