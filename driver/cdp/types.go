package cdp

import (
	"time"

	"github.com/pkg/errors"
	"github.com/wirepair/gcd/gcdapi"
)

const (
	defaultNavigationTimeout = 30 * time.Second
	objectGroup              = "waitker"
)

// revive:exported
var (
	ErrNavigationTimedOut = errors.New("navigation timed out")
	ErrTabCrashed         = errors.New("tab crashed")
	ErrTabClosing         = errors.New("closing")
	ErrNavigating         = errors.New("error in navigation")
	ErrNoTab              = errors.New("no tab is focused")
	ErrForeignNode        = errors.New("node belongs to another driver")
)

// InvalidTabErr when we are unable to access a tab
type InvalidTabErr struct {
	Message string
}

func (e *InvalidTabErr) Error() string {
	return "Unable to access tab: " + e.Message
}

// ScriptEvaluationErr returned when an injected script caused an error
type ScriptEvaluationErr struct {
	Message          string
	ExceptionText    string
	ExceptionDetails *gcdapi.RuntimeExceptionDetails
}

func (e *ScriptEvaluationErr) Error() string {
	return e.Message + " " + e.ExceptionText
}

func scriptErr(message string, exp *gcdapi.RuntimeExceptionDetails) error {
	text := exp.Text
	if exp.Exception != nil && exp.Exception.Description != "" {
		text = exp.Exception.Description
	}
	return &ScriptEvaluationErr{Message: message, ExceptionText: text, ExceptionDetails: exp}
}
