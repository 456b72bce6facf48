package cdp_test

import (
	"net"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/waitker/driver/cdp"
	"gitlab.com/waitker/waitk"
	"gitlab.com/waitker/waitk/be"
	"gitlab.com/waitker/waitk/have"
)

const slowPage = `<html><head><title>Slow</title></head><body>
<input id="name" maxlength="5">
<button id="show" onclick="setTimeout(function(){document.getElementById('late').hidden=false}, 300)">Show</button>
<div id="late" hidden>here now</div>
<ul><li>a</li><li>b</li><li>c</li></ul>
</body></html>`

func testServer(t *testing.T) string {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(slowPage))
	})
	srv := &http.Server{Handler: mux}
	testListener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go srv.Serve(testListener)
	t.Cleanup(func() { srv.Close() })
	return "http://" + testListener.Addr().String()
}

// starts a real headless chrome, only when WAITKER_CDP is set
func TestDriverAgainstChrome(t *testing.T) {
	if os.Getenv("WAITKER_CDP") == "" {
		t.Skip("set WAITKER_CDP to run against a local chrome")
	}

	leaser := cdp.NewLocalLeaser(true)
	defer leaser.Cleanup()

	shared := waitk.NewSharedConfig(cdp.Factory(leaser))
	shared.BaseURL = waitk.String(testServer(t))
	shared.Timeout = waitk.Duration(3 * time.Second)
	shared.ReportsFolder = t.TempDir()
	browser := waitk.NewSharedBrowser(shared)
	defer browser.Quit()

	require.NoError(t, browser.Open("/"))
	require.NoError(t, browser.Should(have.Title("Slow")))
	require.NoError(t, browser.All("li").Should(have.ExactTexts("a", "b", "c")))

	name := browser.Element("#name")
	require.NoError(t, name.Type("waitker"))
	assert.NoError(t, name.Should(have.Value("waitk")))

	require.NoError(t, browser.Element("#late").Should(be.Hidden))
	require.NoError(t, browser.Element("#show").Click())
	assert.NoError(t, browser.Element("#late").Should(have.ExactText("here now")))

	file, err := browser.SaveScreenshot("")
	require.NoError(t, err)
	info, err := os.Stat(file)
	require.NoError(t, err)
	assert.NotZero(t, info.Size())
}
