package cdp

import (
	"encoding/base64"
	"encoding/json"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/wirepair/gcd"
	"github.com/wirepair/gcd/gcdapi"
)

// Tab is one chrome page target
type Tab struct {
	t                 *gcd.ChromeTarget
	navigationCh      chan struct{} // load events while navigating
	crashedCh         chan string   // the chrome tab crashed with a reason
	exitCh            chan struct{} // closed with the tab, stops subscribers
	navigationTimeout time.Duration
}

func newTab(target *gcd.ChromeTarget, navigationTimeout time.Duration) *Tab {
	t := &Tab{
		t:                 target,
		navigationCh:      make(chan struct{}, 1),
		crashedCh:         make(chan string, 1),
		exitCh:            make(chan struct{}),
		navigationTimeout: navigationTimeout,
	}
	t.subscribeEvents()
	return t
}

// ID of the devtools target, used as the window handle
func (t *Tab) ID() string {
	return t.t.Target.Id
}

func (t *Tab) close() {
	select {
	case <-t.exitCh:
	default:
		close(t.exitCh)
	}
}

func (t *Tab) subscribeEvents() {
	t.t.DOM.Enable()
	t.t.Inspector.Enable()
	t.t.Page.Enable()
	t.t.Runtime.Enable()

	t.t.Subscribe("Inspector.targetCrashed", func(target *gcd.ChromeTarget, payload []byte) {
		log.Warn().Msgf("tab crashed: %s", string(payload))
		select {
		case t.crashedCh <- "crashed":
		default:
		}
	})

	t.t.Subscribe("Inspector.detached", func(target *gcd.ChromeTarget, payload []byte) {
		header := &gcdapi.InspectorDetachedEvent{}
		reason := "detached"
		if err := json.Unmarshal(payload, header); err == nil {
			reason = header.Params.Reason
		}
		select {
		case t.crashedCh <- reason:
		default:
		}
	})

	t.t.Subscribe("Page.loadEventFired", func(target *gcd.ChromeTarget, payload []byte) {
		select {
		case t.navigationCh <- struct{}{}:
		default:
		}
	})
}

// Navigate and wait for the load event
func (t *Tab) Navigate(url string) error {
	select {
	case <-t.navigationCh:
	default:
	}

	navParams := &gcdapi.PageNavigateParams{Url: url, TransitionType: "typed"}
	_, _, errText, err := t.t.Page.NavigateWithParams(navParams)
	if err != nil {
		return err
	}
	if errText != "" {
		return errors.Wrap(ErrNavigating, errText)
	}

	select {
	case <-t.navigationCh:
		return nil
	case reason := <-t.crashedCh:
		return errors.Wrap(ErrTabCrashed, reason)
	case <-t.exitCh:
		return ErrTabClosing
	case <-time.After(t.navigationTimeout):
		return ErrNavigationTimedOut
	}
}

// evaluate an expression in the page's global context
func (t *Tab) evaluate(expression string, byValue bool) (*gcdapi.RuntimeRemoteObject, error) {
	params := &gcdapi.RuntimeEvaluateParams{
		Expression:    expression,
		ObjectGroup:   objectGroup,
		Silent:        true,
		ReturnByValue: byValue,
		AwaitPromise:  false,
		Timeout:       1000,
	}
	r, exp, err := t.t.Runtime.EvaluateWithParams(params)
	if err != nil {
		return nil, err
	}
	if exp != nil {
		return nil, scriptErr("failed to evaluate "+expression, exp)
	}
	return r, nil
}

// callOn runs function with the remote object objectID as this
func (t *Tab) callOn(objectID, function string, byValue bool, args []*gcdapi.RuntimeCallArgument) (*gcdapi.RuntimeRemoteObject, error) {
	params := &gcdapi.RuntimeCallFunctionOnParams{
		FunctionDeclaration: function,
		ObjectId:            objectID,
		Arguments:           args,
		Silent:              true,
		ReturnByValue:       byValue,
		ObjectGroup:         objectGroup,
	}
	r, exp, err := t.t.Runtime.CallFunctionOnWithParams(params)
	if err != nil {
		return nil, err
	}
	if exp != nil {
		return nil, scriptErr("failed to call function", exp)
	}
	return r, nil
}

// Click dispatches a left button press and release at x, y
func (t *Tab) Click(x, y float64) error {
	return t.click(x, y, 1)
}

func (t *Tab) click(x, y float64, clickCount int) error {
	for _, kind := range []string{"mousePressed", "mouseReleased"} {
		params := &gcdapi.InputDispatchMouseEventParams{TheType: kind,
			X:          x,
			Y:          y,
			Button:     "left",
			ClickCount: clickCount,
		}
		if _, err := t.t.Input.DispatchMouseEventWithParams(params); err != nil {
			return err
		}
	}
	return nil
}

// SendKeys to whatever is focused. Use \r for Enter, \b for backspace or \t for Tab.
func (t *Tab) SendKeys(text string) error {
	inputParams := &gcdapi.InputDispatchKeyEventParams{TheType: "char"}

	for _, inputchar := range text {
		input := string(inputchar)

		switch input {
		case "\r", "\n", "\t", "\b":
			if err := t.pressSystemKey(input); err != nil {
				return err
			}
			continue
		}
		inputParams.Text = input
		if _, err := t.t.Input.DispatchKeyEventWithParams(inputParams); err != nil {
			return err
		}
	}
	return nil
}

func (t *Tab) pressSystemKey(systemKey string) error {
	inputParams := &gcdapi.InputDispatchKeyEventParams{TheType: "rawKeyDown"}

	switch systemKey {
	case "\b":
		inputParams.UnmodifiedText = "\b"
		inputParams.Text = "\b"
		inputParams.WindowsVirtualKeyCode = 8
		inputParams.NativeVirtualKeyCode = 8
	case "\t":
		inputParams.UnmodifiedText = "\t"
		inputParams.Text = "\t"
		inputParams.WindowsVirtualKeyCode = 9
		inputParams.NativeVirtualKeyCode = 9
	case "\r", "\n":
		inputParams.UnmodifiedText = "\r"
		inputParams.Text = "\r"
		inputParams.WindowsVirtualKeyCode = 13
		inputParams.NativeVirtualKeyCode = 13
	}

	for _, kind := range []string{"rawKeyDown", "char", "keyUp"} {
		inputParams.TheType = kind
		if _, err := t.t.Input.DispatchKeyEventWithParams(inputParams); err != nil {
			return err
		}
	}
	return nil
}

// SetWindowSize overrides the viewport metrics
func (t *Tab) SetWindowSize(width, height int) error {
	params := &gcdapi.EmulationSetDeviceMetricsOverrideParams{
		Width:             width,
		Height:            height,
		DeviceScaleFactor: 1,
		Mobile:            false,
	}
	_, err := t.t.Emulation.SetDeviceMetricsOverrideWithParams(params)
	return err
}

// Screenshot writes a png of the viewport to file
func (t *Tab) Screenshot(file string) error {
	params := &gcdapi.PageCaptureScreenshotParams{
		Format:      "png",
		FromSurface: true,
	}
	encoded, err := t.t.Page.CaptureScreenshotWithParams(params)
	if err != nil {
		return err
	}
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return errors.Wrap(err, "failed to decode screenshot")
	}
	return os.WriteFile(file, data, 0644)
}

// PageSource of the top level document
func (t *Tab) PageSource() (string, error) {
	doc, err := t.t.DOM.GetDocument(-1, true)
	if err != nil {
		return "", err
	}
	return t.t.DOM.GetOuterHTMLWithParams(&gcdapi.DOMGetOuterHTMLParams{NodeId: doc.NodeId})
}
