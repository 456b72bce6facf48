package store

import (
	badger "github.com/dgraph-io/badger/v2"
	"gitlab.com/waitker/report"
)

// ResultIterator decodes every result stored under prefix, in key order
func ResultIterator(txn *badger.Txn, prefix []byte) ([]*report.Result, error) {
	results := make([]*report.Result, 0)
	it := txn.NewIterator(badger.IteratorOptions{Prefix: prefix})
	defer it.Close()

	for it.Rewind(); it.Valid(); it.Next() {
		val, err := it.Item().ValueCopy(nil)
		if err != nil {
			return nil, err
		}

		r, err := DecodeResult(val)
		if err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, nil
}

// RunIterator decodes every run summary
func RunIterator(txn *badger.Txn) ([]*Run, error) {
	runs := make([]*Run, 0)
	it := txn.NewIterator(badger.IteratorOptions{Prefix: []byte(PredicateRun + ":")})
	defer it.Close()

	for it.Rewind(); it.Valid(); it.Next() {
		val, err := it.Item().ValueCopy(nil)
		if err != nil {
			return nil, err
		}

		run, err := DecodeRun(val)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, nil
}
