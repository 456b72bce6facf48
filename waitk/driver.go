package waitk

// Rect of a node in CSS pixels
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Finder locates nodes, either from the document or from inside a node
type Finder interface {
	FindElement(by Selector) (Node, error)
	FindElements(by Selector) ([]Node, error)
}

// Node is a driver-native handle to one DOM element
type Node interface {
	Finder
	TagName() (string, error)
	Text() (string, error)
	// Attribute returns ok=false when the attribute is not set.
	Attribute(name string) (value string, ok bool, err error)
	Property(name string) (interface{}, error)
	CSSValue(name string) (string, error)
	Rect() (Rect, error)
	IsDisplayed() (bool, error)
	IsEnabled() (bool, error)
	IsSelected() (bool, error)
	Click() error
	SendKeys(keys string) error
	Clear() error
	Submit() error
}

// Driver is the browser capability every entity talks to
type Driver interface {
	Finder
	Get(url string) error
	CurrentURL() (string, error)
	Title() (string, error)
	PageSource() (string, error)
	// ExecuteScript runs script as a function body; Node arguments are passed as elements.
	ExecuteScript(script string, args ...interface{}) (interface{}, error)
	SetWindowSize(width, height int) error
	WindowHandles() ([]string, error)
	CurrentWindowHandle() (string, error)
	SwitchToWindow(handle string) error
	CloseWindow() error
	SaveScreenshot(file string) error
	Quit() error
}

// DriverSource hands out the driver to use at the moment of the call.
type DriverSource func() (Driver, error)

// DriverValue always returns d
func DriverValue(d Driver) DriverSource {
	return func() (Driver, error) {
		return d, nil
	}
}
