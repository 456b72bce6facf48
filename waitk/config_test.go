package waitk_test

import (
	"testing"
	"time"

	"gitlab.com/waitker/waitk"
)

func TestConfigDefaults(t *testing.T) {
	c := waitk.Config{}
	if c.Timeout() != 4*time.Second {
		t.Fatalf("expected 4s default timeout got %s\n", c.Timeout())
	}
	if c.BaseURL() != "" || c.SetValueByJS() || c.TypeByJS() || c.WaitForNoOverlapFoundByJS() {
		t.Fatalf("unexpected defaults")
	}
	if _, _, ok := c.WindowSize(); ok {
		t.Fatalf("window size should not be set by default")
	}
	if _, err := c.Driver(); !waitk.IsPermanent(err) {
		t.Fatalf("expected permanent no driver error got %v\n", err)
	}
}

func TestConfigWithAccumulates(t *testing.T) {
	base := waitk.NewConfig()
	c := base.With(waitk.Options{Timeout: waitk.Duration(10 * time.Second)}).
		With(waitk.Options{BaseURL: waitk.String("x")})

	if c.Timeout() != 10*time.Second {
		t.Fatalf("expected timeout kept got %s\n", c.Timeout())
	}
	if c.BaseURL() != "x" {
		t.Fatalf("expected base url x got %s\n", c.BaseURL())
	}
	if base.Timeout() != waitk.DefaultTimeout || base.BaseURL() != "" {
		t.Fatalf("base config was modified")
	}
}

func TestConfigOverridePrecedence(t *testing.T) {
	c := waitk.NewConfig(waitk.Options{
		Timeout:      waitk.Duration(time.Second),
		SetValueByJS: waitk.Bool(true),
		WindowWidth:  waitk.Int(800),
	})
	c = c.With(waitk.Options{Timeout: waitk.Duration(0), SetValueByJS: waitk.Bool(false), WindowHeight: waitk.Int(600)})

	if c.Timeout() != 0 {
		t.Fatalf("explicit zero override should win, got %s\n", c.Timeout())
	}
	if c.SetValueByJS() {
		t.Fatalf("explicit false override should win")
	}
	if w, h, ok := c.WindowSize(); !ok || w != 800 || h != 600 {
		t.Fatalf("expected 800x600 got %dx%d (%v)\n", w, h, ok)
	}
}

func TestResolveURL(t *testing.T) {
	var tests = []struct {
		base     string
		in       string
		expected string
	}{
		{"https://example.com", "/path", "https://example.com/path"},
		{"https://example.com/", "path", "https://example.com/path"},
		{"https://example.com", "path", "https://example.compath"},
		{"https://example.com", "https://other.com", "https://other.com"},
		{"https://example.com", "HTTP://other.com", "HTTP://other.com"},
		{"https://example.com", "about:blank", "about:blank"},
		{"https://example.com", "data:text/html,<p>hi</p>", "data:text/html,<p>hi</p>"},
		{"https://example.com", "file:///tmp/x.html", "file:///tmp/x.html"},
		{"", "/path", "/path"},
	}

	for _, tt := range tests {
		if got := waitk.ResolveURL(tt.base, tt.in); got != tt.expected {
			t.Fatalf("ResolveURL(%q, %q) expected %q got %q\n", tt.base, tt.in, tt.expected, got)
		}
	}
}

func TestParseSelector(t *testing.T) {
	var tests = []struct {
		in       string
		expected waitk.SelectorKind
	}{
		{"#id", waitk.SelectorCSS},
		{"div.item > a", waitk.SelectorCSS},
		{"//div", waitk.SelectorXPath},
		{"/html/body", waitk.SelectorXPath},
		{"./span", waitk.SelectorXPath},
		{"..", waitk.SelectorXPath},
		{"(//a)[2]", waitk.SelectorXPath},
		{"a[href^='/']", waitk.SelectorCSS},
	}

	for _, tt := range tests {
		if got := waitk.ParseSelector(tt.in); got.Kind != tt.expected {
			t.Fatalf("ParseSelector(%q) expected kind %d got %d\n", tt.in, tt.expected, got.Kind)
		}
	}

	if s := waitk.By(waitk.StrategyID, "main"); s.Kind != waitk.SelectorPair || s.String() != "('id', 'main')" {
		t.Fatalf("unexpected pair selector %v\n", s)
	}
	if s := waitk.By(waitk.StrategyXPath, "//a"); s.Kind != waitk.SelectorXPath {
		t.Fatalf("xpath pair should normalise to xpath selector")
	}
	if s := waitk.CSS("#id").String(); s != "('css selector', '#id')" {
		t.Fatalf("unexpected description %s\n", s)
	}
}
