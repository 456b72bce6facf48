package waitk

import "time"

// DefaultTimeout for every wait unless overridden
const DefaultTimeout = 4 * time.Second

// Options are the overridable settings of a Config. Nil fields are unset and
// keep whatever the base config has.
type Options struct {
	// Timeout each Wait polls for
	Timeout *time.Duration
	// PollInterval sleep between attempts
	PollInterval *time.Duration
	// BaseURL prefixed to relative urls passed to Browser.Open
	BaseURL *string
	// Driver to resolve locators with
	Driver DriverSource
	// SetValueByJS sets input values with a script instead of typing
	SetValueByJS *bool
	// TypeByJS appends input values with a script instead of typing
	TypeByJS *bool
	// WaitForNoOverlapFoundByJS refuses to act on elements covered by another element
	WaitForNoOverlapFoundByJS *bool
	// LogOuterHTMLOnFailure adds the element's html to timeouts
	LogOuterHTMLOnFailure *bool
	WindowWidth           *int
	WindowHeight          *int
	// HookWaitFailure rewrites timeouts
	HookWaitFailure FailureHook
}

// Config is an immutable set of Options. The zero value uses the defaults.
type Config struct {
	opts Options
}

// NewConfig merges opts, in order, over the defaults
func NewConfig(opts ...Options) Config {
	c := Config{}
	for _, o := range opts {
		c = c.With(o)
	}
	return c
}

// With returns a new config where every field set in o replaces the current one.
func (c Config) With(o Options) Config {
	merged := c.opts
	if o.Timeout != nil {
		merged.Timeout = o.Timeout
	}
	if o.PollInterval != nil {
		merged.PollInterval = o.PollInterval
	}
	if o.BaseURL != nil {
		merged.BaseURL = o.BaseURL
	}
	if o.Driver != nil {
		merged.Driver = o.Driver
	}
	if o.SetValueByJS != nil {
		merged.SetValueByJS = o.SetValueByJS
	}
	if o.TypeByJS != nil {
		merged.TypeByJS = o.TypeByJS
	}
	if o.WaitForNoOverlapFoundByJS != nil {
		merged.WaitForNoOverlapFoundByJS = o.WaitForNoOverlapFoundByJS
	}
	if o.LogOuterHTMLOnFailure != nil {
		merged.LogOuterHTMLOnFailure = o.LogOuterHTMLOnFailure
	}
	if o.WindowWidth != nil {
		merged.WindowWidth = o.WindowWidth
	}
	if o.WindowHeight != nil {
		merged.WindowHeight = o.WindowHeight
	}
	if o.HookWaitFailure != nil {
		merged.HookWaitFailure = o.HookWaitFailure
	}
	return Config{opts: merged}
}

// Options set on this config
func (c Config) Options() Options {
	return c.opts
}

func (c Config) Timeout() time.Duration {
	if c.opts.Timeout == nil {
		return DefaultTimeout
	}
	return *c.opts.Timeout
}

func (c Config) PollInterval() time.Duration {
	if c.opts.PollInterval == nil {
		return DefaultPollInterval
	}
	return *c.opts.PollInterval
}

func (c Config) BaseURL() string {
	if c.opts.BaseURL == nil {
		return ""
	}
	return *c.opts.BaseURL
}

// Driver resolves the configured driver source
func (c Config) Driver() (Driver, error) {
	if c.opts.Driver == nil {
		return nil, Permanent(ErrNoDriver)
	}
	return c.opts.Driver()
}

func (c Config) SetValueByJS() bool {
	return boolOr(c.opts.SetValueByJS)
}

func (c Config) TypeByJS() bool {
	return boolOr(c.opts.TypeByJS)
}

func (c Config) WaitForNoOverlapFoundByJS() bool {
	return boolOr(c.opts.WaitForNoOverlapFoundByJS)
}

func (c Config) LogOuterHTMLOnFailure() bool {
	return boolOr(c.opts.LogOuterHTMLOnFailure)
}

// WindowSize is only reported when both width and height are set
func (c Config) WindowSize() (width, height int, ok bool) {
	if c.opts.WindowWidth == nil || c.opts.WindowHeight == nil {
		return 0, 0, false
	}
	return *c.opts.WindowWidth, *c.opts.WindowHeight, true
}

func (c Config) HookWaitFailure() FailureHook {
	return c.opts.HookWaitFailure
}

// WaitFor builds the wait entities use for their operations
func WaitFor[E any](c Config, entity E) Wait[E] {
	return NewWait(entity, c.Timeout(), c.HookWaitFailure()).PollingEvery(c.PollInterval())
}

func boolOr(b *bool) bool {
	return b != nil && *b
}

// Duration returns a pointer to d, for Options
func Duration(d time.Duration) *time.Duration { return &d }

// String returns a pointer to s, for Options
func String(s string) *string { return &s }

// Bool returns a pointer to b, for Options
func Bool(b bool) *bool { return &b }

// Int returns a pointer to i, for Options
func Int(i int) *int { return &i }
