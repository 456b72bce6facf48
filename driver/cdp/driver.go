// Package cdp drives chrome over the devtools protocol with gcd.
package cdp

import (
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/wirepair/gcd"
	"github.com/wirepair/gcd/gcdapi"
	"gitlab.com/waitker/waitk"
)

// Driver is a browser leased from a LeaserService, each page target is a tab.
type Driver struct {
	g                 *gcd.Gcd
	leaser            LeaserService
	port              string
	navigationTimeout time.Duration

	mu      sync.Mutex
	tabs    []*Tab
	current *Tab
	quit    bool
}

// Factory starts a new leased browser for every session
func Factory(leaser LeaserService) waitk.DriverFactory {
	return func() (waitk.Driver, error) {
		return New(leaser)
	}
}

// New leases a browser and connects to its first tab
func New(leaser LeaserService) (*Driver, error) {
	port, err := leaser.Acquire()
	if err != nil {
		return nil, errors.Wrap(err, "unable to acquire browser")
	}

	d := &Driver{
		g:                 gcd.NewChromeDebugger(),
		leaser:            leaser,
		port:              port,
		navigationTimeout: defaultNavigationTimeout,
	}
	if err := d.g.ConnectToInstance("localhost", port); err != nil {
		leaser.Return(port)
		return nil, errors.Wrap(err, "failed to connect to instance")
	}

	target, err := d.g.GetFirstTab()
	if err != nil {
		leaser.Return(port)
		return nil, errors.Wrap(err, "failed to get first tab")
	}
	d.current = newTab(target, d.navigationTimeout)
	d.tabs = []*Tab{d.current}
	log.Info().Str("port", port).Msg("connected to browser")
	return d, nil
}

// SetNavigationTimeout bounds how long Get waits for the load event, default is 30 seconds
func (d *Driver) SetNavigationTimeout(timeout time.Duration) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.navigationTimeout = timeout
	for _, t := range d.tabs {
		t.navigationTimeout = timeout
	}
}

func (d *Driver) tab() (*Tab, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.quit {
		return nil, waitk.Permanent(ErrTabClosing)
	}
	if d.current == nil {
		return nil, ErrNoTab
	}
	return d.current, nil
}

// document returns the remote object of the current document
func (d *Driver) document() (*Tab, string, error) {
	t, err := d.tab()
	if err != nil {
		return nil, "", err
	}
	r, err := t.evaluate("document", false)
	if err != nil {
		return nil, "", err
	}
	return t, r.ObjectId, nil
}

func (d *Driver) FindElement(by waitk.Selector) (waitk.Node, error) {
	t, doc, err := d.document()
	if err != nil {
		return nil, err
	}
	return d.findOne(t, doc, by)
}

func (d *Driver) FindElements(by waitk.Selector) ([]waitk.Node, error) {
	t, doc, err := d.document()
	if err != nil {
		return nil, err
	}
	return d.find(t, doc, by)
}

func (d *Driver) findOne(t *Tab, rootID string, by waitk.Selector) (waitk.Node, error) {
	nodes, err := d.find(t, rootID, by)
	if err != nil {
		return nil, err
	}
	if len(nodes) == 0 {
		return nil, errors.Wrapf(waitk.ErrNoSuchElement, "%s", by)
	}
	return nodes[0], nil
}

// find resolves by under the remote object rootID into one remote object per element
func (d *Driver) find(t *Tab, rootID string, by waitk.Selector) ([]waitk.Node, error) {
	strategy, value, err := findQuery(by)
	if err != nil {
		return nil, err
	}
	array, err := t.callOn(rootID, findFunction, false, []*gcdapi.RuntimeCallArgument{{Value: strategy}, {Value: value}})
	if err != nil {
		return nil, errors.Wrapf(err, "invalid selector %s", by)
	}
	length, err := t.callOn(array.ObjectId, lengthFunction, true, nil)
	if err != nil {
		return nil, err
	}
	n, _ := length.Value.(float64)

	nodes := make([]waitk.Node, 0, int(n))
	for i := 0; i < int(n); i++ {
		item, err := t.callOn(array.ObjectId, indexFunction, false, []*gcdapi.RuntimeCallArgument{{Value: i}})
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, &Node{d: d, t: t, objectID: item.ObjectId})
	}
	return nodes, nil
}

func (d *Driver) Get(url string) error {
	t, err := d.tab()
	if err != nil {
		return err
	}
	return t.Navigate(url)
}

func (d *Driver) CurrentURL() (string, error) {
	return d.evaluateString("window.location.href")
}

func (d *Driver) Title() (string, error) {
	return d.evaluateString("document.title")
}

func (d *Driver) evaluateString(expression string) (string, error) {
	t, err := d.tab()
	if err != nil {
		return "", err
	}
	r, err := t.evaluate(expression, true)
	if err != nil {
		return "", err
	}
	s, _ := r.Value.(string)
	return s, nil
}

func (d *Driver) PageSource() (string, error) {
	t, err := d.tab()
	if err != nil {
		return "", err
	}
	return t.PageSource()
}

// ExecuteScript runs script as a function body on the current document
func (d *Driver) ExecuteScript(script string, args ...interface{}) (interface{}, error) {
	t, doc, err := d.document()
	if err != nil {
		return nil, err
	}
	callArgs, err := d.callArguments(args)
	if err != nil {
		return nil, err
	}
	r, err := t.callOn(doc, scriptFunction(script), true, callArgs)
	if err != nil {
		return nil, err
	}
	return r.Value, nil
}

func (d *Driver) SetWindowSize(width, height int) error {
	t, err := d.tab()
	if err != nil {
		return err
	}
	return t.SetWindowSize(width, height)
}

// WindowHandles of every page target, including ones the page opened itself
func (d *Driver) WindowHandles() ([]string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.quit {
		return nil, waitk.Permanent(ErrTabClosing)
	}

	known := make(map[string]struct{}, len(d.tabs))
	for _, t := range d.tabs {
		known[t.ID()] = struct{}{}
	}
	targets, err := d.g.GetNewTargets(known)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list targets")
	}
	for _, target := range targets {
		if target.Target.Type != "page" {
			continue
		}
		d.tabs = append(d.tabs, newTab(target, d.navigationTimeout))
	}

	handles := make([]string, len(d.tabs))
	for i, t := range d.tabs {
		handles[i] = t.ID()
	}
	return handles, nil
}

func (d *Driver) CurrentWindowHandle() (string, error) {
	t, err := d.tab()
	if err != nil {
		return "", err
	}
	return t.ID(), nil
}

func (d *Driver) SwitchToWindow(handle string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, t := range d.tabs {
		if t.ID() == handle {
			if err := d.g.ActivateTab(t.t); err != nil {
				return err
			}
			d.current = t
			return nil
		}
	}
	return &InvalidTabErr{Message: handle}
}

// CloseWindow closes the current tab, leaving no tab focused
func (d *Driver) CloseWindow() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.current == nil {
		return ErrNoTab
	}
	closing := d.current
	if err := d.g.CloseTab(closing.t); err != nil {
		return err
	}
	closing.close()
	for i, t := range d.tabs {
		if t == closing {
			d.tabs = append(d.tabs[:i], d.tabs[i+1:]...)
			break
		}
	}
	d.current = nil
	return nil
}

func (d *Driver) SaveScreenshot(file string) error {
	t, err := d.tab()
	if err != nil {
		return err
	}
	return t.Screenshot(file)
}

// Quit closes every tab and returns the browser to the leaser
func (d *Driver) Quit() error {
	d.mu.Lock()
	if d.quit {
		d.mu.Unlock()
		return nil
	}
	d.quit = true
	for _, t := range d.tabs {
		t.close()
	}
	d.tabs = nil
	d.current = nil
	d.mu.Unlock()

	log.Info().Str("port", d.port).Msg("returning browser")
	return d.leaser.Return(d.port)
}
