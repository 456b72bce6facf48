package cdp

import (
	"strconv"
	"sync"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/wirepair/gcd"
)

var startupFlags = []string{
	"--enable-automation",
	"--test-type",
	"--disable-client-side-phishing-detection",
	"--disable-component-update",
	"--disable-infobars",
	"--disable-domain-reliability",
	"--disable-background-networking",
	"--disable-sync",
	"--disable-default-apps",
	"--disable-popup-blocking",
	"--disable-extensions",
	"--disable-features=TranslateUI",
	"--disable-gpu",
	"--disable-dev-shm-usage",
	"--no-sandbox",
	"--no-first-run",
	"--password-store=basic",
	"--safebrowsing-disable-auto-update",
}

// LocalLeaser starts chrome processes on this machine
type LocalLeaser struct {
	browserLock sync.RWMutex
	browsers    map[string]*gcd.Gcd
	chrome      string
	tmp         string
	flags       []string
}

// NewLocalLeaser for chrome at the default location; headless adds --headless.
func NewLocalLeaser(headless bool) *LocalLeaser {
	chrome, tmp := FindChrome()
	return NewLocalLeaserAt(chrome, tmp, headless)
}

// NewLocalLeaserAt starts chrome from the given executable with profiles under tmp
func NewLocalLeaserAt(chrome, tmp string, headless bool) *LocalLeaser {
	return &LocalLeaser{
		browsers: make(map[string]*gcd.Gcd),
		chrome:   chrome,
		tmp:      tmp,
		flags:    chromeFlags(headless),
	}
}

func chromeFlags(headless bool) []string {
	flags := append([]string{}, startupFlags...)
	if headless {
		flags = append(flags, "--headless")
	}
	return append(flags, "about:blank")
}

func (s *LocalLeaser) Acquire() (string, error) {
	b := gcd.NewChromeDebugger()
	b.DeleteProfileOnExit()

	profileDir, err := newProfile(s.tmp)
	if err != nil {
		return "", err
	}
	port, err := debuggerPort()
	if err != nil {
		return "", err
	}

	b.AddFlags(s.flags)
	if err := b.StartProcess(s.chrome, profileDir, port); err != nil {
		return "", errors.Wrapf(err, "failed to start %s", s.chrome)
	}
	s.browserLock.Lock()
	s.browsers[port] = b
	s.browserLock.Unlock()

	log.Info().Str("port", port).Str("chrome", s.chrome).Msg("browser process started")
	return port, nil
}

func (s *LocalLeaser) Count() (string, error) {
	s.browserLock.RLock()
	count := len(s.browsers)
	s.browserLock.RUnlock()
	return strconv.Itoa(count), nil
}

func (s *LocalLeaser) Return(port string) error {
	s.browserLock.Lock()
	defer s.browserLock.Unlock()

	if b, ok := s.browsers[port]; ok {
		delete(s.browsers, port)
		return b.ExitProcess()
	}

	return errors.Errorf("no browser leased on port %s", port)
}

// Cleanup exits every leased browser and removes their profiles
func (s *LocalLeaser) Cleanup() (string, error) {
	s.browserLock.Lock()
	for port, b := range s.browsers {
		if err := b.ExitProcess(); err != nil {
			log.Warn().Err(err).Str("port", port).Msg("failed to exit browser")
		}
		delete(s.browsers, port)
	}
	s.browserLock.Unlock()

	if err := RemoveProfiles(s.tmp); err != nil {
		return "", err
	}
	return "ok", nil
}
