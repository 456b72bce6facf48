package store

import (
	"context"
	"os"
	"sort"
	"time"

	badger "github.com/dgraph-io/badger/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gitlab.com/waitker/report"
)

// Run summarises one invocation's results
type Run struct {
	ID      string    `msgpack:"id"`
	Started time.Time `msgpack:"started"`
	Updated time.Time `msgpack:"updated"`
	Passed  int       `msgpack:"passed"`
	Failed  int       `msgpack:"failed"`
	Skipped int       `msgpack:"skipped"`
}

// ResultStore keeps the history of scenario results
type ResultStore struct {
	Store    *badger.DB
	seq      *badger.Sequence
	filepath string
}

// NewResultStore for result storage
func NewResultStore(filepath string) *ResultStore {
	return &ResultStore{filepath: filepath}
}

// Init the result storage
func (s *ResultStore) Init() error {
	var err error

	if err = os.MkdirAll(s.filepath, 0755); err != nil {
		return err
	}

	opts := badger.DefaultOptions(s.filepath).WithLogger(nil)
	s.Store, err = badger.Open(opts)

	if errors.Is(err, badger.ErrTruncateNeeded) {
		log.Warn().Msg("there was a failure re-opening database, trying to recover")
		opts.Truncate = true
		s.Store, err = badger.Open(opts)
	}

	if err != nil {
		return err
	}

	s.seq, err = s.Store.GetSequence([]byte("seq:results"), 100)
	return err
}

// AddResult stores r and updates its run summary
func (s *ResultStore) AddResult(ctx context.Context, r *report.Result) error {
	if r.RunID == "" {
		return errors.New("result has no run id")
	}
	seq, err := s.seq.Next()
	if err != nil {
		return err
	}

	return s.Store.Update(func(txn *badger.Txn) error {
		bytez, err := EncodeResult(r)
		if err != nil {
			return err
		}
		if err := txn.Set(ResultKey(r.RunID, seq), bytez); err != nil {
			return err
		}

		runKey := MakeKey([]byte(r.RunID), PredicateRun)
		run := &Run{ID: r.RunID, Started: r.Started}
		item, err := txn.Get(runKey)
		switch {
		case err == nil:
			val, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			if run, err = DecodeRun(val); err != nil {
				return err
			}
		case !errors.Is(err, badger.ErrKeyNotFound):
			return err
		}

		switch r.Status {
		case report.StatusPassed:
			run.Passed++
		case report.StatusFailed:
			run.Failed++
		default:
			run.Skipped++
		}
		if run.Started.IsZero() || (!r.Started.IsZero() && r.Started.Before(run.Started)) {
			run.Started = r.Started
		}
		run.Updated = time.Now()

		bytez, err = EncodeRun(run)
		if err != nil {
			return err
		}
		return txn.Set(runKey, bytez)
	})
}

// Results of a run in the order they were added
func (s *ResultStore) Results(runID string) ([]*report.Result, error) {
	var results []*report.Result
	err := s.Store.View(func(txn *badger.Txn) error {
		var err error
		results, err = ResultIterator(txn, ResultPrefix(runID))
		return err
	})
	return results, err
}

// Runs newest first
func (s *ResultStore) Runs() ([]*Run, error) {
	var runs []*Run
	err := s.Store.View(func(txn *badger.Txn) error {
		var err error
		runs, err = RunIterator(txn)
		return err
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Started.After(runs[j].Started)
	})
	return runs, nil
}

// Close the result store
func (s *ResultStore) Close() error {
	if s.seq != nil {
		if err := s.seq.Release(); err != nil {
			log.Warn().Err(err).Msg("failed to release result sequence")
		}
	}
	return s.Store.Close()
}
