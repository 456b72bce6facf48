package waitk

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// SharedConfig is the mutable, process wide configuration behind a SharedBrowser.
// Entities copy its settings when they are created.
type SharedConfig struct {
	// Options apply to every entity; Options.Driver is ignored, the lazy driver is used.
	Options
	BrowserName             string
	HoldBrowserOpen         bool
	SaveScreenshotOnFailure bool
	SavePageSourceOnFailure bool
	ReportsFolder           string

	driver  *LazyDriver
	counter *Counter

	mu             sync.Mutex
	lastScreenshot string
	lastPageSource string
}

// NewSharedConfig saving failure artifacts under ~/.waitker/screenshots/<millis>
func NewSharedConfig(factory DriverFactory) *SharedConfig {
	counter := NewCounter(time.Now().UnixMilli())
	home, err := os.UserHomeDir()
	if err != nil {
		home = os.TempDir()
	}
	return &SharedConfig{
		BrowserName:             "chrome",
		SaveScreenshotOnFailure: true,
		SavePageSourceOnFailure: true,
		ReportsFolder:           filepath.Join(home, ".waitker", "screenshots", fmt.Sprint(counter.Next())),
		driver:                  NewLazyDriver(factory),
		counter:                 counter,
	}
}

// LazyDriver owning the session
func (s *SharedConfig) LazyDriver() *LazyDriver {
	return s.driver
}

// SetDriver binds an already running driver
func (s *SharedConfig) SetDriver(d Driver) {
	s.driver.Set(d)
}

// Config snapshot: the current options plus the lazy driver and failure artifact hooks.
func (s *SharedConfig) Config() Config {
	return NewConfig(s.Options).With(Options{
		Driver:          s.driver.Instance,
		HookWaitFailure: Pipe(s.saveScreenshotHook, s.savePageSourceHook, s.Options.HookWaitFailure),
	})
}

// GenerateFilename in the reports folder, creating the folder when missing.
func (s *SharedConfig) GenerateFilename(prefix, suffix string) (string, error) {
	if err := os.MkdirAll(s.ReportsFolder, 0755); err != nil {
		return "", errors.Wrap(err, "failed to create reports folder")
	}
	return filepath.Join(s.ReportsFolder, fmt.Sprintf("%s%d%s", prefix, s.counter.Next(), suffix)), nil
}

func (s *SharedConfig) LastScreenshot() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastScreenshot
}

func (s *SharedConfig) LastPageSource() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastPageSource
}

// SaveScreenshot to file, or to a generated file in the reports folder when file is empty.
func (s *SharedConfig) SaveScreenshot(file string) (string, error) {
	d, err := s.driver.Instance()
	if err != nil {
		return "", err
	}
	if file == "" {
		if file, err = s.GenerateFilename("", ".png"); err != nil {
			return "", err
		}
	}
	if err := d.SaveScreenshot(file); err != nil {
		return "", err
	}
	s.mu.Lock()
	s.lastScreenshot = file
	s.mu.Unlock()
	return file, nil
}

// SavePageSource to file, or to a generated file in the reports folder when file is empty.
func (s *SharedConfig) SavePageSource(file string) (string, error) {
	d, err := s.driver.Instance()
	if err != nil {
		return "", err
	}
	source, err := d.PageSource()
	if err != nil {
		return "", err
	}
	if file == "" {
		if file, err = s.GenerateFilename("", ".html"); err != nil {
			return "", err
		}
	}
	if err := os.WriteFile(file, []byte(source), 0644); err != nil {
		return "", errors.Wrap(err, "failed to write page source")
	}
	s.mu.Lock()
	s.lastPageSource = file
	s.mu.Unlock()
	return file, nil
}

func (s *SharedConfig) saveScreenshotHook(err error) error {
	if !s.SaveScreenshotOnFailure || !s.driver.IsStarted() {
		return err
	}
	file, saveErr := s.SaveScreenshot("")
	if saveErr != nil {
		log.Warn().Err(saveErr).Msg("failed to save screenshot on failure")
		return err
	}
	return AddNote(err, "Screenshot: file://"+file)
}

func (s *SharedConfig) savePageSourceHook(err error) error {
	if !s.SavePageSourceOnFailure || !s.driver.IsStarted() {
		return err
	}
	file, saveErr := s.SavePageSource("")
	if saveErr != nil {
		log.Warn().Err(saveErr).Msg("failed to save page source on failure")
		return err
	}
	return AddNote(err, "PageSource: file://"+file)
}
