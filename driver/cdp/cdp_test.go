package cdp_test

import (
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/waitker/driver/cdp"
	"gitlab.com/waitker/waitk"
)

func TestFindQuery(t *testing.T) {
	var tests = []struct {
		in       waitk.Selector
		strategy string
		value    string
	}{
		{waitk.CSS("#main .item"), waitk.StrategyCSS, "#main .item"},
		{waitk.XPath("//li[2]"), waitk.StrategyXPath, "//li[2]"},
		{waitk.By(waitk.StrategyID, "user"), waitk.StrategyCSS, `[id="user"]`},
		{waitk.By(waitk.StrategyName, "q"), waitk.StrategyCSS, `[name="q"]`},
		{waitk.By(waitk.StrategyTagName, "input"), waitk.StrategyCSS, "input"},
		{waitk.By(waitk.StrategyClassName, "btn"), waitk.StrategyCSS, ".btn"},
		{waitk.By(waitk.StrategyLinkText, "Sign in"), waitk.StrategyXPath, `.//a[normalize-space(.)="Sign in"]`},
		{waitk.By(waitk.StrategyPartialLinkText, "Sign"), waitk.StrategyXPath, `.//a[contains(normalize-space(.), "Sign")]`},
	}

	for _, tt := range tests {
		strategy, value, err := cdp.FindQuery(tt.in)
		if err != nil {
			t.Fatalf("error translating %s: %s\n", tt.in, err)
		}
		if strategy != tt.strategy || value != tt.value {
			t.Fatalf("expected (%s, %s) got (%s, %s)\n", tt.strategy, tt.value, strategy, value)
		}
	}

	_, _, err := cdp.FindQuery(waitk.By("shadow", "x"))
	assert.True(t, errors.Is(err, waitk.ErrUnknownStrategy))
	assert.True(t, waitk.IsPermanent(err))
}

func TestXPathLiteral(t *testing.T) {
	var tests = []struct {
		in       string
		expected string
	}{
		{"plain", `"plain"`},
		{`say "hi"`, `'say "hi"'`},
		{`it's "x"`, `concat("it's ", '"', "x", '"')`},
	}

	for _, tt := range tests {
		if got := cdp.XPathLiteral(tt.in); got != tt.expected {
			t.Fatalf("expected %s got %s\n", tt.expected, got)
		}
	}
}

func TestTranslateKeys(t *testing.T) {
	var tests = []struct {
		in       string
		expected string
	}{
		{"abc", "abc"},
		{"user" + waitk.KeyEnter, "user\r"},
		{waitk.KeyTab + "x" + waitk.KeyBackspace, "\tx\b"},
		{waitk.KeyEscape + "y", "y"},
		{waitk.KeyReturn, "\r"},
	}

	for _, tt := range tests {
		if got := cdp.TranslateKeys(tt.in); got != tt.expected {
			t.Fatalf("expected %q got %q\n", tt.expected, got)
		}
	}
}

func TestRectFrom(t *testing.T) {
	rect, err := cdp.RectFrom(map[string]interface{}{"x": 1.5, "y": 2.0, "width": 10.0, "height": 4.0})
	require.NoError(t, err)
	assert.Equal(t, waitk.Rect{X: 1.5, Y: 2, Width: 10, Height: 4}, rect)

	_, err = cdp.RectFrom("nope")
	assert.Error(t, err)
}

func TestChromeFlags(t *testing.T) {
	headless := cdp.ChromeFlags(true)
	assert.Contains(t, headless, "--headless")
	assert.Equal(t, "about:blank", headless[len(headless)-1])
	assert.NotContains(t, cdp.ChromeFlags(false), "--headless")
}

func TestRemoveProfiles(t *testing.T) {
	tmp := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(tmp, "waitker-123"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(tmp, "keep.txt"), []byte("x"), 0644))

	require.NoError(t, cdp.RemoveProfiles(tmp))
	require.NoError(t, cdp.RemoveProfiles(""))
	_, err := os.Stat(filepath.Join(tmp, "waitker-123"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(tmp, "keep.txt"))
	assert.NoError(t, err)

	assert.Equal(t, "/tmp/waitker/", cdp.ProfileRoot("linux"))

	profile, err := cdp.NewProfile(filepath.Join(tmp, "root"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(filepath.Base(profile), "waitker-"))
	require.NoError(t, cdp.RemoveProfiles(filepath.Join(tmp, "root")))
	_, err = os.Stat(profile)
	assert.True(t, os.IsNotExist(err))

	port, err := cdp.DebuggerPort()
	require.NoError(t, err)
	assert.NotEmpty(t, port)
}

func TestLocalLeaserReturnUnknown(t *testing.T) {
	leaser := cdp.NewLocalLeaserAt("/nonexistent/chrome", t.TempDir(), true)
	count, err := leaser.Count()
	require.NoError(t, err)
	assert.Equal(t, "0", count)
	assert.Error(t, leaser.Return("1234"))
}

func TestSocketLeaser(t *testing.T) {
	sock := filepath.Join(t.TempDir(), "leaser.sock")
	l, err := net.Listen("unix", sock)
	require.NoError(t, err)

	var returned string
	mux := http.NewServeMux()
	mux.HandleFunc("/acquire", func(w http.ResponseWriter, r *http.Request) { w.Write([]byte("9222")) })
	mux.HandleFunc("/count", func(w http.ResponseWriter, r *http.Request) { w.Write([]byte("1")) })
	mux.HandleFunc("/return", func(w http.ResponseWriter, r *http.Request) {
		returned = r.URL.Query().Get("port")
		if returned != "9222" {
			http.NotFound(w, r)
		}
	})
	mux.HandleFunc("/cleanup", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "kill failed", http.StatusInternalServerError)
	})
	srv := &http.Server{Handler: mux}
	go srv.Serve(l)
	defer srv.Close()

	leaser := cdp.NewSocketLeaser(sock)

	port, err := leaser.Acquire()
	require.NoError(t, err)
	assert.Equal(t, "9222", port)

	count, err := leaser.Count()
	require.NoError(t, err)
	assert.Equal(t, "1", count)

	require.NoError(t, leaser.Return("9222"))
	assert.Equal(t, "9222", returned)
	assert.EqualError(t, leaser.Return("1"), "browser not found")

	_, err = leaser.Cleanup()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "kill failed")
}
