package waitk

// SharedBrowser is a Browser over the shared, lazily started driver.
// Its waits run over a *Browser snapshot, so it is not an Entity itself:
// resolve queries with GetShared instead of Get.
type SharedBrowser struct {
	shared    *SharedConfig
	overrides Options
}

// NewSharedBrowser over config
func NewSharedBrowser(config *SharedConfig) *SharedBrowser {
	return &SharedBrowser{shared: config}
}

func (b *SharedBrowser) String() string {
	return "browser"
}

// SharedConfig behind the browser
func (b *SharedBrowser) SharedConfig() *SharedConfig {
	return b.shared
}

// With returns a shared browser applying o over the shared options
func (b *SharedBrowser) With(o Options) *SharedBrowser {
	return &SharedBrowser{shared: b.shared, overrides: NewConfig(b.overrides).With(o).Options()}
}

// Browser with the current shared settings
func (b *SharedBrowser) Browser() *Browser {
	return NewBrowser(b.shared.Config().With(b.overrides))
}

// Config with the current shared settings
func (b *SharedBrowser) Config() Config {
	return b.Browser().Config()
}

// Driver bound to the session, if any
func (b *SharedBrowser) Driver() (Driver, error) {
	return b.shared.driver.Instance()
}

func (b *SharedBrowser) Wait() Wait[*Browser] {
	return b.Browser().Wait()
}

// GetShared resolves a browser query with the current shared settings.
func GetShared[R any](b *SharedBrowser, q Query[*Browser, R]) (R, error) {
	return Get(b.Browser(), q)
}

// Open starts a driver when none is running, or the running one died, then navigates.
func (b *SharedBrowser) Open(url string) error {
	d, err := b.shared.driver.GetOrCreate()
	if err != nil {
		return err
	}
	return open(d, b.Config(), url)
}

func (b *SharedBrowser) Element(selector string) *Element {
	return b.Browser().Element(selector)
}

func (b *SharedBrowser) ElementBy(by Selector) *Element {
	return b.Browser().ElementBy(by)
}

func (b *SharedBrowser) All(selector string) *Collection {
	return b.Browser().All(selector)
}

func (b *SharedBrowser) AllBy(by Selector) *Collection {
	return b.Browser().AllBy(by)
}

func (b *SharedBrowser) Should(c Condition[*Browser]) error {
	return b.Browser().Should(c)
}

func (b *SharedBrowser) WaitUntil(c Condition[*Browser]) bool {
	return b.Browser().WaitUntil(c)
}

func (b *SharedBrowser) Matching(c Condition[*Browser]) bool {
	return b.Browser().Matching(c)
}

func (b *SharedBrowser) Perform(cmd Command[*Browser]) error {
	return b.Browser().Perform(cmd)
}

func (b *SharedBrowser) ExecuteScript(script string, args ...interface{}) (interface{}, error) {
	return b.Browser().ExecuteScript(script, args...)
}

func (b *SharedBrowser) SwitchToNextTab() error {
	return b.Browser().SwitchToNextTab()
}

func (b *SharedBrowser) SwitchToPreviousTab() error {
	return b.Browser().SwitchToPreviousTab()
}

func (b *SharedBrowser) SwitchToTab(index int) error {
	return b.Browser().SwitchToTab(index)
}

func (b *SharedBrowser) SwitchToTabNamed(handle string) error {
	return b.Browser().SwitchToTabNamed(handle)
}

func (b *SharedBrowser) CloseCurrentTab() error {
	return b.Browser().CloseCurrentTab()
}

func (b *SharedBrowser) ClearLocalStorage() error {
	return b.Browser().ClearLocalStorage()
}

func (b *SharedBrowser) ClearSessionStorage() error {
	return b.Browser().ClearSessionStorage()
}

// SaveScreenshot to file, an empty file name saves into the reports folder.
func (b *SharedBrowser) SaveScreenshot(file string) (string, error) {
	return b.shared.SaveScreenshot(file)
}

// SavePageSource to file, an empty file name saves into the reports folder.
func (b *SharedBrowser) SavePageSource(file string) (string, error) {
	return b.shared.SavePageSource(file)
}

// Quit the session; the browser can only be used again after Open.
func (b *SharedBrowser) Quit() error {
	return b.shared.driver.Quit()
}

// Close quits the session unless HoldBrowserOpen is set
func (b *SharedBrowser) Close() error {
	if b.shared.HoldBrowserOpen {
		return nil
	}
	return b.Quit()
}
