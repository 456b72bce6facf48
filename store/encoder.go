package store

import (
	"bytes"
	"fmt"

	"github.com/vmihailenco/msgpack/v4"
	"gitlab.com/waitker/report"
)

// revive:exported
const (
	PredicateRun    = "run"
	PredicateResult = "result"
)

// MakeKey of a predicate and id
func MakeKey(id []byte, predicate string) []byte {
	key := []byte(predicate)
	key = append(key, byte(':'))
	key = append(key, id...)
	return key
}

// GetID of key from a pred:key
func GetID(key []byte) []byte {
	split := bytes.SplitN(key, []byte(":"), 2)
	if len(split) == 1 {
		return []byte{}
	}
	return split[1]
}

// GetPredicate from pred:key
func GetPredicate(key []byte) []byte {
	split := bytes.SplitN(key, []byte(":"), 2)
	return split[0]
}

// ResultKey orders results of a run by their sequence number
func ResultKey(runID string, seq uint64) []byte {
	return MakeKey([]byte(fmt.Sprintf("%s:%020d", runID, seq)), PredicateResult)
}

// ResultPrefix of every result key of a run
func ResultPrefix(runID string) []byte {
	return MakeKey([]byte(runID+":"), PredicateResult)
}

// EncodeResult into a msgpack []byte slice
func EncodeResult(r *report.Result) ([]byte, error) {
	return msgpack.Marshal(r)
}

// DecodeResult from msgpack
func DecodeResult(val []byte) (*report.Result, error) {
	r := &report.Result{}
	if err := msgpack.Unmarshal(val, r); err != nil {
		return nil, err
	}
	return r, nil
}

// EncodeRun summary
func EncodeRun(run *Run) ([]byte, error) {
	return msgpack.Marshal(run)
}

// DecodeRun summary
func DecodeRun(val []byte) (*Run, error) {
	run := &Run{}
	if err := msgpack.Unmarshal(val, run); err != nil {
		return nil, err
	}
	return run, nil
}
