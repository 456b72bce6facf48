package scenario_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gitlab.com/waitker/driver/htmldoc"
	"gitlab.com/waitker/report"
	"gitlab.com/waitker/scenario"
	"gitlab.com/waitker/waitk"
)

const loginPage = `<html><head><title>Login</title></head><body>
<form action="/home">
  <input id="user" name="user" type="text">
  <button id="go">Go</button>
</form>
<ul><li class="item">One</li><li class="item">Two</li></ul>
</body></html>`

const homePage = `<html><head><title>Home</title></head><body><h1>Hello</h1></body></html>`

const loginScenario = `
name = "login"
case = "C42"
url = "/login"

[[step]]
select = "#user"
action = "type"
value = "admin"

[[step]]
select = "#user"
should = "have.value"
value = "admin"

[[step]]
all = ".item"
should = "have.exact_texts"
value = "One|Two"

[[step]]
select = "form"
action = "submit"

[[step]]
should = "have.url_containing"
value = "/home"

[[step]]
name = "no login form"
select = "form"
should = "be.present"
not = true
`

type collectSink struct {
	results []*report.Result
}

func (c *collectSink) AddResult(ctx context.Context, r *report.Result) error {
	c.results = append(c.results, r)
	return nil
}

func newRunner(t *testing.T) (*scenario.Runner, *collectSink, *waitk.SharedConfig) {
	d := htmldoc.New()
	d.AddPage("http://app.test/login", loginPage)
	d.AddPage("http://app.test/home", homePage)

	shared := waitk.NewSharedConfig(func() (waitk.Driver, error) { return d, nil })
	shared.BaseURL = waitk.String("http://app.test")
	shared.Timeout = waitk.Duration(50 * time.Millisecond)
	shared.PollInterval = waitk.Duration(5 * time.Millisecond)
	shared.ReportsFolder = t.TempDir()

	sink := &collectSink{}
	return scenario.NewRunner(waitk.NewSharedBrowser(shared), sink, "run-1"), sink, shared
}

func TestDecode(t *testing.T) {
	s, err := scenario.Decode(strings.NewReader(loginScenario))
	if err != nil {
		t.Fatalf("error decoding scenario: %s\n", err)
	}
	if s.Name != "login" || s.Case != "C42" || s.URL != "/login" {
		t.Fatalf("unexpected scenario header %#v\n", s)
	}
	if len(s.Steps) != 6 {
		t.Fatalf("expected 6 steps got %d\n", len(s.Steps))
	}
	if !s.Steps[5].Not {
		t.Fatalf("expected last step to be negated\n")
	}

	var describe = []struct {
		step     int
		expected string
	}{
		{0, "#user type admin"},
		{2, "all .item should have.exact_texts One|Two"},
		{4, "browser should have.url_containing /home"},
		{5, "no login form"},
	}
	for _, tt := range describe {
		if got := s.Steps[tt.step].Describe(); got != tt.expected {
			t.Fatalf("step %d: expected %q got %q\n", tt.step, tt.expected, got)
		}
	}
}

func TestValidate(t *testing.T) {
	var tests = []struct {
		in       string
		expected string
	}{
		{"[[step]]\nselect = \"a\"\nall = \"b\"\naction = \"click\"", "select and all are exclusive"},
		{"[[step]]\nselect = \"a\"", "either an action or a should"},
		{"[[step]]\nselect = \"a\"\naction = \"click\"\nshould = \"be.visible\"", "either an action or a should"},
		{"[[step]]\nselect = \"a\"\naction = \"dance\"", "unknown element action dance"},
		{"[[step]]\naction = \"dance\"", "unknown browser action dance"},
		{"[[step]]\nall = \"a\"\naction = \"click\"", "no action click for collections"},
		{"[[step]]\nselect = \"a\"\nshould = \"have.size\"", "unknown element condition have.size"},
		{"[[step]]\nall = \"a\"\nshould = \"have.size\"\nvalue = \"x\"", "value must be a number"},
		{"[[step]]\nselect = \"a\"\nshould = \"have.attribute\"", "arg is required"},
		{"[[step]]\nselect = \"a\"\naction = \"click\"\ntimeout = \"soon\"", "invalid timeout"},
		{"[[step]]\nshould = \"have.js_returned\"", "arg must hold the script"},
	}

	for _, tt := range tests {
		_, err := scenario.Decode(strings.NewReader(tt.in))
		if err == nil {
			t.Fatalf("expected error for %q\n", tt.in)
		}
		if !strings.Contains(err.Error(), tt.expected) {
			t.Fatalf("expected %q in %s\n", tt.expected, err)
		}
	}
}

func TestLoadAll(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.toml", "a.toml", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("[[step]]\naction = \"open\"\nvalue = \"/login\"\n"), 0644); err != nil {
			t.Fatalf("error writing %s: %s\n", name, err)
		}
	}

	scenarios, err := scenario.LoadAll(dir)
	if err != nil {
		t.Fatalf("error loading scenarios: %s\n", err)
	}
	if len(scenarios) != 2 || scenarios[0].Name != "a.toml" || scenarios[1].Name != "b.toml" {
		t.Fatalf("expected a.toml and b.toml in order got %d scenarios\n", len(scenarios))
	}

	single, err := scenario.LoadAll(filepath.Join(dir, "b.toml"))
	if err != nil || len(single) != 1 {
		t.Fatalf("expected one scenario from a file: %v\n", err)
	}

	if _, err := scenario.LoadAll(filepath.Join(dir, "missing")); err == nil {
		t.Fatalf("expected error for missing path\n")
	}
}

func TestRunPasses(t *testing.T) {
	runner, sink, _ := newRunner(t)
	s, err := scenario.Decode(strings.NewReader(loginScenario))
	if err != nil {
		t.Fatalf("error decoding scenario: %s\n", err)
	}

	result := runner.Run(context.Background(), s)
	if result.Failed() {
		t.Fatalf("expected scenario to pass: %s\n", result.Error)
	}
	if result.RunID != "run-1" || result.CaseID != "C42" {
		t.Fatalf("unexpected result identity %s %s\n", result.RunID, result.CaseID)
	}
	// the url opens as an implicit first step
	if len(result.Steps) != 7 {
		t.Fatalf("expected 7 step results got %d\n", len(result.Steps))
	}
	if len(sink.results) != 1 || sink.results[0] != result {
		t.Fatalf("expected result to be sent to the sink\n")
	}
}

func TestRunFailsAndSkips(t *testing.T) {
	runner, sink, _ := newRunner(t)
	s, err := scenario.Decode(strings.NewReader(`
url = "/login"

[[step]]
select = "#user"
should = "have.value"
value = "nobody"
timeout = "20ms"

[[step]]
select = "#go"
action = "click"
`))
	if err != nil {
		t.Fatalf("error decoding scenario: %s\n", err)
	}

	result := runner.Run(context.Background(), s)
	if !result.Failed() {
		t.Fatalf("expected scenario to fail\n")
	}
	if result.Steps[1].Status != report.StatusFailed || result.Steps[2].Status != report.StatusSkipped {
		t.Fatalf("expected failed then skipped steps got %s %s\n", result.Steps[1].Status, result.Steps[2].Status)
	}
	if result.Screenshot == "" || result.PageSource == "" {
		t.Fatalf("expected failure artifacts on the result\n")
	}
	if _, err := os.Stat(result.PageSource); err != nil {
		t.Fatalf("expected page source file: %s\n", err)
	}
	if !strings.Contains(result.Error, "file://") {
		t.Fatalf("expected artifact links in error %s\n", result.Error)
	}

	// a later failure that saves nothing keeps the earlier artifacts off its result
	s.Steps = []scenario.Step{{Action: "open", Value: "/missing"}}
	s.URL = ""
	second := runner.Run(context.Background(), s)
	if !second.Failed() || second.Screenshot != "" {
		t.Fatalf("expected a failure without artifacts got %#v\n", second)
	}
	if len(sink.results) != 2 {
		t.Fatalf("expected 2 results got %d\n", len(sink.results))
	}
}

func TestRunAllStopsOnCancel(t *testing.T) {
	runner, sink, _ := newRunner(t)
	s, err := scenario.Decode(strings.NewReader(loginScenario))
	if err != nil {
		t.Fatalf("error decoding scenario: %s\n", err)
	}

	if failed := runner.RunAll(context.Background(), []*scenario.Scenario{s, s}); failed != 0 {
		t.Fatalf("expected no failures got %d\n", failed)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	runner.RunAll(ctx, []*scenario.Scenario{s})
	if len(sink.results) != 2 {
		t.Fatalf("expected cancelled run to add nothing, got %d results\n", len(sink.results))
	}
}
