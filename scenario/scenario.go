// Package scenario loads browser scenarios from toml and runs them against a shared browser.
package scenario

import (
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/pelletier/go-toml"
	"github.com/pkg/errors"
)

// Scenario is an ordered list of steps, optionally opening a url first
type Scenario struct {
	Name  string `toml:"name"`
	Case  string `toml:"case"` // test case id in the management system
	URL   string `toml:"url"`
	Steps []Step `toml:"step"`
}

// Step either performs an action or waits for a condition.
// Select targets an element, All a collection; with neither the browser is the target.
type Step struct {
	Name    string `toml:"name"`
	Select  string `toml:"select"`
	All     string `toml:"all"`
	Action  string `toml:"action"`
	Should  string `toml:"should"`
	Not     bool   `toml:"not"`
	Arg     string `toml:"arg"`
	Value   string `toml:"value"`
	Timeout string `toml:"timeout"`
}

// Decode a scenario
func Decode(r io.Reader) (*Scenario, error) {
	s := &Scenario{}
	if err := toml.NewDecoder(r).Decode(s); err != nil {
		return nil, errors.Wrap(err, "invalid scenario")
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Load a scenario file, the file name is the default scenario name
func Load(path string) (*Scenario, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	s, err := Decode(f)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	if s.Name == "" {
		s.Name = filepath.Base(path)
	}
	return s, nil
}

// LoadAll scenarios from a file or every .toml file of a directory
func LoadAll(path string) ([]*Scenario, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		s, err := Load(path)
		if err != nil {
			return nil, err
		}
		return []*Scenario{s}, nil
	}

	files, err := filepath.Glob(filepath.Join(path, "*.toml"))
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	scenarios := make([]*Scenario, 0, len(files))
	for _, file := range files {
		s, err := Load(file)
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, s)
	}
	return scenarios, nil
}

// Validate every step names exactly one known action or condition
func (s *Scenario) Validate() error {
	for i, st := range s.Steps {
		if err := st.validate(); err != nil {
			return errors.Wrapf(err, "step %d", i+1)
		}
	}
	return nil
}

func (st Step) validate() error {
	if st.Select != "" && st.All != "" {
		return errors.New("select and all are exclusive")
	}
	if (st.Action == "") == (st.Should == "") {
		return errors.New("a step needs either an action or a should")
	}
	if st.Timeout != "" {
		if _, err := time.ParseDuration(st.Timeout); err != nil {
			return errors.Wrap(err, "invalid timeout")
		}
	}
	if st.Should != "" {
		_, err := st.condition()
		return err
	}
	if st.All != "" {
		return errors.Errorf("no action %s for collections", st.Action)
	}
	if st.Select != "" {
		if _, ok := elementActions[st.Action]; !ok {
			return errors.Errorf("unknown element action %s", st.Action)
		}
		return nil
	}
	if _, ok := browserActions[st.Action]; !ok {
		return errors.Errorf("unknown browser action %s", st.Action)
	}
	return nil
}

// Describe the step for reports
func (st Step) Describe() string {
	if st.Name != "" {
		return st.Name
	}
	target := "browser"
	switch {
	case st.Select != "":
		target = st.Select
	case st.All != "":
		target = "all " + st.All
	}
	if st.Should != "" {
		not := ""
		if st.Not {
			not = "not "
		}
		return target + " should " + not + st.Should + describeArgs(st.Arg, st.Value)
	}
	return target + " " + st.Action + describeArgs(st.Arg, st.Value)
}

func describeArgs(arg, value string) string {
	switch {
	case arg != "" && value != "":
		return " " + arg + "=" + value
	case arg != "":
		return " " + arg
	case value != "":
		return " " + value
	}
	return ""
}
