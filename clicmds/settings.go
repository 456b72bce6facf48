package clicmds

import (
	"io"
	"os"
	"time"

	"github.com/pelletier/go-toml"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gitlab.com/waitker/driver/cdp"
	"gitlab.com/waitker/driver/htmldoc"
	"gitlab.com/waitker/driver/webdriver"
	"gitlab.com/waitker/waitk"
)

// TestRailSettings for uploading results, disabled without url and run id
type TestRailSettings struct {
	URL    string `toml:"url"`
	User   string `toml:"user"`
	APIKey string `toml:"api_key"`
	RunID  string `toml:"run_id"`
}

// Settings of one environment. A settings file holds a [default] table and one
// table per environment, the environment's values override the defaults.
type Settings struct {
	Driver        string           `toml:"driver"` // cdp, webdriver or htmldoc
	Browser       string           `toml:"browser"`
	Remote        string           `toml:"remote"` // webdriver server url
	LeaserSocket  string           `toml:"leaser_socket"`
	BaseURL       string           `toml:"base_url"`
	Timeout       string           `toml:"timeout"`
	PollInterval  string           `toml:"poll_interval"`
	WindowWidth   int              `toml:"window_width"`
	WindowHeight  int              `toml:"window_height"`
	ReportsFolder string           `toml:"reports_folder"`
	DataDir       string           `toml:"datadir"`
	TestRail      TestRailSettings `toml:"testrail"`

	Headless bool `toml:"-"`
	Hold     bool `toml:"-"`
}

func defaultSettings() *Settings {
	return &Settings{
		Driver:  "cdp",
		Browser: "chrome",
		DataDir: "waitkertmp",
	}
}

// LoadSettings for env from a settings file, an empty path gives the defaults
func LoadSettings(path, env string) (*Settings, error) {
	if path == "" {
		return defaultSettings(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	s, err := DecodeSettings(f, env)
	return s, errors.Wrap(err, path)
}

// DecodeSettings for env
func DecodeSettings(r io.Reader, env string) (*Settings, error) {
	tree, err := toml.LoadReader(r)
	if err != nil {
		return nil, errors.Wrap(err, "invalid settings")
	}

	s := defaultSettings()
	tables := []string{"default"}
	if env != "" && env != "default" {
		if _, ok := tree.Get(env).(*toml.Tree); !ok {
			return nil, errors.Errorf("no settings for environment %s", env)
		}
		tables = append(tables, env)
	}

	for _, name := range tables {
		table, ok := tree.Get(name).(*toml.Tree)
		if !ok {
			continue
		}
		overlay := &Settings{}
		if err := table.Unmarshal(overlay); err != nil {
			return nil, errors.Wrapf(err, "invalid settings for %s", name)
		}
		s.merge(overlay)
	}
	return s, s.validate()
}

// merge the set values of o over s
func (s *Settings) merge(o *Settings) {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&s.Driver, o.Driver)
	set(&s.Browser, o.Browser)
	set(&s.Remote, o.Remote)
	set(&s.LeaserSocket, o.LeaserSocket)
	set(&s.BaseURL, o.BaseURL)
	set(&s.Timeout, o.Timeout)
	set(&s.PollInterval, o.PollInterval)
	set(&s.ReportsFolder, o.ReportsFolder)
	set(&s.DataDir, o.DataDir)
	set(&s.TestRail.URL, o.TestRail.URL)
	set(&s.TestRail.User, o.TestRail.User)
	set(&s.TestRail.APIKey, o.TestRail.APIKey)
	set(&s.TestRail.RunID, o.TestRail.RunID)
	if o.WindowWidth > 0 {
		s.WindowWidth = o.WindowWidth
	}
	if o.WindowHeight > 0 {
		s.WindowHeight = o.WindowHeight
	}
	s.Headless = s.Headless || o.Headless
	s.Hold = s.Hold || o.Hold
}

func (s *Settings) validate() error {
	switch s.Driver {
	case "cdp", "htmldoc":
	case "webdriver":
		if s.Remote == "" {
			return errors.New("the webdriver driver needs a remote url")
		}
	default:
		return errors.Errorf("unknown driver %s", s.Driver)
	}
	for _, d := range []string{s.Timeout, s.PollInterval} {
		if d == "" {
			continue
		}
		if _, err := time.ParseDuration(d); err != nil {
			return errors.Wrap(err, "invalid duration")
		}
	}
	return nil
}

// Mode recorded on results
func (s *Settings) Mode() string {
	if s.Driver == "webdriver" || s.LeaserSocket != "" {
		return "remote"
	}
	return "local"
}

// TestRailEnabled when there is somewhere to upload to
func (s *Settings) TestRailEnabled() bool {
	return s.TestRail.URL != "" && s.TestRail.RunID != ""
}

// Factory for the configured driver, cleanup releases whatever the factory started.
func (s *Settings) Factory() (factory waitk.DriverFactory, cleanup func(), err error) {
	cleanup = func() {}
	switch s.Driver {
	case "cdp":
		if s.LeaserSocket != "" {
			return cdp.Factory(cdp.NewSocketLeaser(s.LeaserSocket)), cleanup, nil
		}
		leaser := cdp.NewLocalLeaser(s.Headless)
		cleanup = func() {
			if _, err := leaser.Cleanup(); err != nil {
				log.Warn().Err(err).Msg("failed to clean up browsers")
			}
		}
		return cdp.Factory(leaser), cleanup, nil
	case "webdriver":
		return webdriver.Factory(s.Browser, s.Remote), cleanup, nil
	case "htmldoc":
		return func() (waitk.Driver, error) { return htmldoc.New(), nil }, cleanup, nil
	}
	return nil, cleanup, errors.Errorf("unknown driver %s", s.Driver)
}

// Apply the settings to the shared browser configuration
func (s *Settings) Apply(shared *waitk.SharedConfig) {
	shared.BrowserName = s.Browser
	shared.HoldBrowserOpen = s.Hold
	if s.BaseURL != "" {
		shared.BaseURL = waitk.String(s.BaseURL)
	}
	if d, err := time.ParseDuration(s.Timeout); err == nil {
		shared.Timeout = waitk.Duration(d)
	}
	if d, err := time.ParseDuration(s.PollInterval); err == nil {
		shared.PollInterval = waitk.Duration(d)
	}
	if s.WindowWidth > 0 && s.WindowHeight > 0 {
		shared.WindowWidth = waitk.Int(s.WindowWidth)
		shared.WindowHeight = waitk.Int(s.WindowHeight)
	}
	if s.ReportsFolder != "" {
		shared.ReportsFolder = s.ReportsFolder
	}
}
