package waitk_test

import (
	"testing"
	"time"

	"gitlab.com/waitker/mock"
	"gitlab.com/waitker/waitk"
	"gitlab.com/waitker/waitk/have"
	"gitlab.com/waitker/waitk/query"
)

func TestBrowserOpenResolvesURL(t *testing.T) {
	d := mock.MakeMockDriver()
	browser := waitk.NewBrowser(waitk.NewConfig(waitk.Options{
		Driver:  waitk.DriverValue(d),
		BaseURL: waitk.String("https://example.com"),
	}))

	var tests = []struct {
		in       string
		expected string
	}{
		{"/path", "https://example.com/path"},
		{"https://other.com", "https://other.com"},
	}

	for _, tt := range tests {
		if err := browser.Open(tt.in); err != nil {
			t.Fatalf("error opening %s: %s\n", tt.in, err)
		}
		if got, _ := d.CurrentURL(); got != tt.expected {
			t.Fatalf("expected %s got %s\n", tt.expected, got)
		}
	}
	if d.SetWindowSizeCalled {
		t.Fatalf("window size should not be set without width and height")
	}
}

func TestBrowserOpenSetsWindowSize(t *testing.T) {
	d := mock.MakeMockDriver()
	var width, height int
	d.SetWindowSizeFn = func(w, h int) error {
		if d.GetCalled {
			t.Fatalf("window size should be set before navigating")
		}
		width, height = w, h
		return nil
	}
	browser := testBrowser(d, 0).With(waitk.Options{WindowWidth: waitk.Int(1024), WindowHeight: waitk.Int(768)})

	if err := browser.Open("about:blank"); err != nil {
		t.Fatalf("error opening: %s\n", err)
	}
	if width != 1024 || height != 768 {
		t.Fatalf("expected 1024x768 got %dx%d\n", width, height)
	}
}

func tabbedDriver(current string) *mock.Driver {
	d := mock.MakeMockDriver()
	d.WindowHandlesFn = func() ([]string, error) {
		return []string{"t0", "t1", "t2"}, nil
	}
	d.CurrentWindowHandleFn = func() (string, error) {
		return current, nil
	}
	d.SwitchToWindowFn = func(handle string) error {
		current = handle
		return nil
	}
	return d
}

func TestBrowserTabsWrapAround(t *testing.T) {
	next, err := waitk.Get(testBrowser(tabbedDriver("t2"), 0), query.NextTab)
	if err != nil || next != "t0" {
		t.Fatalf("expected next tab t0 got %s (%v)\n", next, err)
	}

	previous, err := waitk.Get(testBrowser(tabbedDriver("t0"), 0), query.PreviousTab)
	if err != nil || previous != "t2" {
		t.Fatalf("expected previous tab t2 got %s (%v)\n", previous, err)
	}
}

func TestBrowserSwitchTabs(t *testing.T) {
	d := tabbedDriver("t2")
	browser := testBrowser(d, 0)

	if err := browser.SwitchToNextTab(); err != nil {
		t.Fatalf("error switching: %s\n", err)
	}
	if current, _ := d.CurrentWindowHandle(); current != "t0" {
		t.Fatalf("expected t0 got %s\n", current)
	}
	if err := browser.SwitchToPreviousTab(); err != nil {
		t.Fatalf("error switching: %s\n", err)
	}
	if current, _ := d.CurrentWindowHandle(); current != "t2" {
		t.Fatalf("expected t2 got %s\n", current)
	}
	if err := browser.SwitchToTab(1); err != nil {
		t.Fatalf("error switching: %s\n", err)
	}
	if current, _ := d.CurrentWindowHandle(); current != "t1" {
		t.Fatalf("expected t1 got %s\n", current)
	}
	if err := browser.SwitchToTab(7); err == nil {
		t.Fatalf("expected error switching to missing tab")
	}
}

func TestBrowserConditions(t *testing.T) {
	d := tabbedDriver("t0")
	d.TitleFn = func() (string, error) {
		return "Dashboard - App", nil
	}
	browser := testBrowser(d, time.Second)
	if err := browser.Open("https://example.com/dashboard"); err != nil {
		t.Fatalf("error opening: %s\n", err)
	}

	var tests = []struct {
		in   waitk.Condition[*waitk.Browser]
		pass bool
	}{
		{have.URL("https://example.com/dashboard"), true},
		{have.URLContaining("/dash"), true},
		{have.No.URLContaining("/login"), true},
		{have.Title("Dashboard - App"), true},
		{have.TitleContaining("Login"), false},
		{have.TabsNumber(3), true},
		{have.TabsNumberGreaterThan(3), false},
		{have.TabsNumberLessThanOrEqual(3), true},
	}

	for _, tt := range tests {
		if got := browser.Matching(tt.in); got != tt.pass {
			t.Fatalf("%s expected %v got %v\n", tt.in, tt.pass, got)
		}
	}
}

func TestBrowserJSReturned(t *testing.T) {
	d := mock.MakeMockDriver()
	d.ExecuteScriptFn = func(script string, args ...interface{}) (interface{}, error) {
		return float64(2), nil
	}
	if !testBrowser(d, 0).Matching(have.JSReturned(2, "return 1 + 1;")) {
		t.Fatalf("expected js returned 2 to match")
	}
}
