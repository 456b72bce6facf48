// Package htmldoc is a driver over static html documents held in memory. CSS
// selectors are resolved with goquery and XPath with htmlquery. There is no
// layout or script engine: scripts are unsupported and every rect is empty.
package htmldoc

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gitlab.com/waitker/waitk"
)

// revive:exported
var (
	ErrPageNotFound = errors.New("page not registered")
	ErrQuit         = errors.New("driver has quit")
	ErrNoTabs       = errors.New("no open tabs")
)

type tab struct {
	handle string
	url    string
	doc    *goquery.Document
}

// Driver serves registered pages, one document per tab.
type Driver struct {
	mu      sync.Mutex
	pages   map[string]string
	tabs    []*tab
	current int
	tabID   int
	width   int
	height  int
	quit    bool
}

// New driver with one blank tab
func New() *Driver {
	d := &Driver{pages: make(map[string]string)}
	d.openTab()
	return d
}

// AddPage serves html at url
func (d *Driver) AddPage(pageURL, html string) {
	d.mu.Lock()
	d.pages[pageURL] = html
	d.mu.Unlock()
}

// Mutate changes the current document in place, as a script on the page would.
func (d *Driver) Mutate(fn func(doc *goquery.Document)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if t := d.tab(); t != nil {
		fn(t.doc)
	}
}

// NewTab opens url in a new tab and returns its handle; the current tab does not change.
func (d *Driver) NewTab(pageURL string) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	current := d.current
	t := d.openTab()
	d.current = len(d.tabs) - 1
	err := d.load(pageURL)
	d.current = current
	return t.handle, err
}

// WindowSize last set
func (d *Driver) WindowSize() (int, int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.width, d.height
}

func (d *Driver) openTab() *tab {
	d.tabID++
	doc, _ := goquery.NewDocumentFromReader(strings.NewReader("<html><head></head><body></body></html>"))
	t := &tab{handle: fmt.Sprintf("tab-%d", d.tabID), url: "about:blank", doc: doc}
	d.tabs = append(d.tabs, t)
	return t
}

func (d *Driver) tab() *tab {
	if d.current < 0 || d.current >= len(d.tabs) {
		return nil
	}
	return d.tabs[d.current]
}

// active returns the current tab, locking the driver; callers must unlock.
func (d *Driver) active() (*tab, error) {
	d.mu.Lock()
	if d.quit {
		d.mu.Unlock()
		return nil, waitk.Permanent(ErrQuit)
	}
	t := d.tab()
	if t == nil {
		d.mu.Unlock()
		return nil, ErrNoTabs
	}
	return t, nil
}

func (d *Driver) load(pageURL string) error {
	t := d.tab()
	if t == nil {
		return ErrNoTabs
	}

	html, ok := d.pages[pageURL]
	switch {
	case ok:
	case pageURL == "about:blank":
		html = "<html><head></head><body></body></html>"
	case strings.HasPrefix(pageURL, "data:text/html,"):
		decoded, err := url.PathUnescape(strings.TrimPrefix(pageURL, "data:text/html,"))
		if err != nil {
			return errors.Wrap(err, "invalid data url")
		}
		html = decoded
	default:
		return errors.Wrap(ErrPageNotFound, pageURL)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return errors.Wrap(err, "failed to parse page")
	}
	t.url = pageURL
	t.doc = doc
	log.Debug().Str("url", pageURL).Str("tab", t.handle).Msg("page loaded")
	return nil
}

func (d *Driver) Get(pageURL string) error {
	if _, err := d.active(); err != nil {
		return err
	}
	defer d.mu.Unlock()
	return d.load(pageURL)
}

func (d *Driver) CurrentURL() (string, error) {
	t, err := d.active()
	if err != nil {
		return "", err
	}
	defer d.mu.Unlock()
	return t.url, nil
}

func (d *Driver) Title() (string, error) {
	t, err := d.active()
	if err != nil {
		return "", err
	}
	defer d.mu.Unlock()
	return strings.TrimSpace(t.doc.Find("title").First().Text()), nil
}

func (d *Driver) PageSource() (string, error) {
	t, err := d.active()
	if err != nil {
		return "", err
	}
	defer d.mu.Unlock()
	return t.doc.Html()
}

func (d *Driver) FindElement(by waitk.Selector) (waitk.Node, error) {
	nodes, err := d.FindElements(by)
	if err != nil {
		return nil, err
	}
	if len(nodes) == 0 {
		return nil, errors.Wrapf(waitk.ErrNoSuchElement, "%s", by)
	}
	return nodes[0], nil
}

func (d *Driver) FindElements(by waitk.Selector) ([]waitk.Node, error) {
	t, err := d.active()
	if err != nil {
		return nil, err
	}
	defer d.mu.Unlock()
	return d.wrap(find(t.doc.Nodes[0], by))
}

// ExecuteScript is not available without a script engine
func (d *Driver) ExecuteScript(script string, args ...interface{}) (interface{}, error) {
	return nil, waitk.Permanent(waitk.ErrScriptsUnsupported)
}

func (d *Driver) SetWindowSize(width, height int) error {
	d.mu.Lock()
	d.width, d.height = width, height
	d.mu.Unlock()
	return nil
}

func (d *Driver) WindowHandles() ([]string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	handles := make([]string, len(d.tabs))
	for i, t := range d.tabs {
		handles[i] = t.handle
	}
	return handles, nil
}

func (d *Driver) CurrentWindowHandle() (string, error) {
	t, err := d.active()
	if err != nil {
		return "", err
	}
	defer d.mu.Unlock()
	return t.handle, nil
}

func (d *Driver) SwitchToWindow(handle string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i, t := range d.tabs {
		if t.handle == handle {
			d.current = i
			return nil
		}
	}
	return errors.Errorf("no such window %s", handle)
}

// CloseWindow closes the current tab; like a real browser, no other tab gets focus.
func (d *Driver) CloseWindow() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.tab() == nil {
		return ErrNoTabs
	}
	d.tabs = append(d.tabs[:d.current], d.tabs[d.current+1:]...)
	d.current = -1
	return nil
}

// SaveScreenshot writes the page source, there is nothing to render
func (d *Driver) SaveScreenshot(file string) error {
	source, err := d.PageSource()
	if err != nil {
		return err
	}
	return os.WriteFile(file, []byte(source), 0644)
}

func (d *Driver) Quit() error {
	d.mu.Lock()
	d.quit = true
	d.mu.Unlock()
	return nil
}
