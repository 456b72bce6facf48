package cdp

import (
	"net"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// profiles created by leasers start with this, RemoveProfiles only touches those
const profilePrefix = "waitker-"

// LeaserService hands out debugger ports of running browsers
type LeaserService interface {
	Acquire() (string, error) // returns port number
	Return(port string) error
	Cleanup() (string, error)
	Count() (string, error)
}

// debuggerPort is a free local port for chrome's remote debugger
func debuggerPort() (string, error) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return "", errors.Wrap(err, "no free debugger port")
	}
	defer l.Close()
	_, port, err := net.SplitHostPort(l.Addr().String())
	return port, err
}

// newProfile directory under root for one browser session
func newProfile(root string) (string, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return "", errors.Wrap(err, "failed to create profile root")
	}
	profile, err := os.MkdirTemp(root, profilePrefix)
	return profile, errors.Wrap(err, "failed to create profile")
}

// RemoveProfiles left under root by leased browsers
func RemoveProfiles(root string) error {
	if root == "" {
		return nil
	}
	profiles, err := filepath.Glob(filepath.Join(root, profilePrefix+"*"))
	if err != nil {
		return err
	}
	for _, profile := range profiles {
		if err := os.RemoveAll(profile); err != nil {
			return errors.Wrapf(err, "failed to remove profile %s", profile)
		}
	}
	return nil
}

// KillStaleBrowsers kills every chrome process by name. Names with nothing
// running only log at debug.
func KillStaleBrowsers() {
	for _, name := range []string{"google-chrome", "chrome", "chromium"} {
		kill := FindKill(name)
		if output, err := exec.Command(kill[0], kill[1:]...).CombinedOutput(); err != nil {
			log.Debug().Err(err).Str("browser", name).Msg(string(output))
			continue
		}
		log.Info().Str("browser", name).Msg("killed stale browsers")
	}
}
