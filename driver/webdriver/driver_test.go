package webdriver_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tebeka/selenium"
	"gitlab.com/waitker/driver/webdriver"
	"gitlab.com/waitker/waitk"
	"gitlab.com/waitker/waitk/be"
	"gitlab.com/waitker/waitk/have"
)

// fakeSession answers the calls the adapter makes; anything else panics on the nil embedded interface.
type fakeSession struct {
	selenium.WebDriver
	url      string
	elements map[string][]selenium.WebElement
	scripts  []string
	args     [][]interface{}
	resized  [2]int
	quit     bool
}

func (f *fakeSession) Get(url string) error { f.url = url; return nil }

func (f *fakeSession) CurrentURL() (string, error) { return f.url, nil }

func (f *fakeSession) Title() (string, error) {
	if f.quit {
		return "", &selenium.Error{Err: "invalid session id", Message: "session deleted"}
	}
	return "fake", nil
}

func (f *fakeSession) FindElement(by, value string) (selenium.WebElement, error) {
	found := f.elements[by+"="+value]
	if len(found) == 0 {
		return nil, &selenium.Error{Err: "no such element", Message: value}
	}
	return found[0], nil
}

func (f *fakeSession) FindElements(by, value string) ([]selenium.WebElement, error) {
	return f.elements[by+"="+value], nil
}

func (f *fakeSession) ExecuteScript(script string, args []interface{}) (interface{}, error) {
	f.scripts = append(f.scripts, script)
	f.args = append(f.args, args)
	return "input", nil
}

func (f *fakeSession) CurrentWindowHandle() (string, error) { return "w1", nil }

func (f *fakeSession) ResizeWindow(name string, width, height int) error {
	f.resized = [2]int{width, height}
	return nil
}

func (f *fakeSession) Screenshot() ([]byte, error) { return []byte("png"), nil }

func (f *fakeSession) Quit() error { f.quit = true; return nil }

type fakeElement struct {
	selenium.WebElement
	text      string
	attrs     map[string]string
	displayed bool
	keys      string
	clicks    int
}

func (e *fakeElement) Text() (string, error)        { return e.text, nil }
func (e *fakeElement) IsDisplayed() (bool, error)   { return e.displayed, nil }
func (e *fakeElement) IsEnabled() (bool, error)     { return true, nil }
func (e *fakeElement) Click() error                 { e.clicks++; return nil }
func (e *fakeElement) SendKeys(keys string) error   { e.keys += keys; return nil }
func (e *fakeElement) Clear() error                 { e.keys = ""; return nil }
func (e *fakeElement) Location() (*selenium.Point, error) { return &selenium.Point{X: 10, Y: 20}, nil }
func (e *fakeElement) Size() (*selenium.Size, error)      { return &selenium.Size{Width: 30, Height: 40}, nil }

func (e *fakeElement) GetAttribute(name string) (string, error) {
	if v, ok := e.attrs[name]; ok {
		return v, nil
	}
	return "", errors.New("nil return value")
}

func newBrowser(session *fakeSession, timeout time.Duration) *waitk.Browser {
	return waitk.NewBrowser(waitk.NewConfig(waitk.Options{
		Driver:       waitk.DriverValue(webdriver.Wrap(session)),
		Timeout:      waitk.Duration(timeout),
		PollInterval: waitk.Duration(5 * time.Millisecond),
		WindowWidth:  waitk.Int(1280),
		WindowHeight: waitk.Int(800),
	}))
}

func TestConditionsThroughSession(t *testing.T) {
	user := &fakeElement{text: "Alice", attrs: map[string]string{"class": "name big"}, displayed: true}
	session := &fakeSession{elements: map[string][]selenium.WebElement{
		"css selector=#user": {user},
		"xpath=//li":         {&fakeElement{text: "a", displayed: true}, &fakeElement{text: "b", displayed: true}},
	}}
	browser := newBrowser(session, 0)

	require.NoError(t, browser.Open("https://example.test/"))
	assert.Equal(t, [2]int{1280, 800}, session.resized)
	require.NoError(t, browser.Should(have.URL("https://example.test/")))

	require.NoError(t, browser.Element("#user").Should(be.Visible.And(have.ExactText("Alice"))))
	require.NoError(t, browser.Element("#user").Should(have.CSSClass("big")))
	require.NoError(t, browser.Element("#user").Should(have.No.Attribute("disabled")))
	require.NoError(t, browser.All("//li").Should(have.ExactTexts("a", "b")))
	require.NoError(t, browser.Element("#missing").Should(be.Absent))

	rect, err := waitk.Get(browser.Element("#user"), waitk.NewQuery("rect", func(e *waitk.Element) (waitk.Rect, error) {
		node, err := e.Locate()
		if err != nil {
			return waitk.Rect{}, err
		}
		return node.Rect()
	}))
	require.NoError(t, err)
	assert.Equal(t, waitk.Rect{X: 10, Y: 20, Width: 30, Height: 40}, rect)
}

func TestActionsThroughSession(t *testing.T) {
	input := &fakeElement{displayed: true, attrs: map[string]string{}}
	session := &fakeSession{elements: map[string][]selenium.WebElement{"css selector=input": {input}}}
	browser := newBrowser(session, 0)

	require.NoError(t, browser.Element("input").SetValue("hello"))
	require.NoError(t, browser.Element("input").PressEnter())
	assert.Equal(t, "hello"+waitk.KeyEnter, input.keys)
	require.NoError(t, browser.Element("input").Click())
	assert.Equal(t, 1, input.clicks)

	tag, err := waitk.Get(browser.Element("input"), waitk.NewQuery("property", func(e *waitk.Element) (interface{}, error) {
		node, err := e.Locate()
		if err != nil {
			return nil, err
		}
		return node.Property("tagName")
	}))
	require.NoError(t, err)
	assert.Equal(t, "input", tag)
	require.Len(t, session.args, 1)
	assert.Equal(t, selenium.WebElement(input), session.args[0][0])
	assert.Equal(t, "tagName", session.args[0][1])
}

func TestErrorClassification(t *testing.T) {
	session := &fakeSession{elements: map[string][]selenium.WebElement{}}
	d := webdriver.Wrap(session)

	_, err := d.FindElement(waitk.CSS("#none"))
	assert.True(t, errors.Is(err, waitk.ErrNoSuchElement))

	require.NoError(t, d.Quit())
	_, err = d.Title()
	assert.True(t, errors.Is(err, waitk.ErrDriverClosed))
	assert.True(t, waitk.IsPermanent(err))
}

func TestSaveScreenshot(t *testing.T) {
	d := webdriver.Wrap(&fakeSession{})
	file := filepath.Join(t.TempDir(), "shot.png")
	require.NoError(t, d.SaveScreenshot(file))
	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Equal(t, "png", string(data))
}
