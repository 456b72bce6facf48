package waitk

import (
	"sync"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// DriverFactory starts a new browser session
type DriverFactory func() (Driver, error)

type driverState int8

const (
	driverUninitialized driverState = iota
	driverLive
	driverClosed
)

// LazyDriver owns one driver session: created on demand, recreated when it
// died, and refusing access once quit.
type LazyDriver struct {
	mu      sync.Mutex
	factory DriverFactory
	driver  Driver
	state   driverState
}

// NewLazyDriver that will start sessions with factory
func NewLazyDriver(factory DriverFactory) *LazyDriver {
	return &LazyDriver{factory: factory}
}

// SetFactory used by the next GetOrCreate
func (l *LazyDriver) SetFactory(factory DriverFactory) {
	l.mu.Lock()
	l.factory = factory
	l.mu.Unlock()
}

// Set binds an already started driver
func (l *LazyDriver) Set(d Driver) {
	l.mu.Lock()
	l.driver = d
	l.state = driverLive
	l.mu.Unlock()
}

// IsStarted reports whether a session is bound
func (l *LazyDriver) IsStarted() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state == driverLive
}

// Instance of the bound driver. It never creates one.
func (l *LazyDriver) Instance() (Driver, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	switch l.state {
	case driverClosed:
		return nil, Permanent(ErrDriverClosed)
	case driverUninitialized:
		return nil, Permanent(ErrNoDriver)
	}
	return l.driver, nil
}

// GetOrCreate returns the bound driver if it still answers, otherwise it
// quits whatever is left of it and starts a new one.
func (l *LazyDriver) GetOrCreate() (Driver, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.state == driverLive {
		if isAlive(l.driver) {
			return l.driver, nil
		}
		log.Info().Msg("driver stopped responding, starting a new one")
		l.quit()
	}

	if l.factory == nil {
		return nil, Permanent(errors.Wrap(ErrNoDriver, "no driver factory set"))
	}

	d, err := l.factory()
	if err != nil {
		return nil, errors.Wrap(err, "failed to start driver")
	}
	log.Info().Msg("driver started")
	l.driver = d
	l.state = driverLive
	return d, nil
}

// Quit the bound driver; further Instance calls fail until GetOrCreate.
func (l *LazyDriver) Quit() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.quit()
}

func (l *LazyDriver) quit() error {
	if l.state != driverLive {
		return nil
	}
	err := l.driver.Quit()
	if err != nil {
		log.Warn().Err(err).Msg("failed to quit driver")
	}
	l.driver = nil
	l.state = driverClosed
	log.Info().Msg("driver closed")
	return err
}

func isAlive(d Driver) bool {
	if d == nil {
		return false
	}
	_, err := d.Title()
	return err == nil
}
