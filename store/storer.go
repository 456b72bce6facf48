package store

// Storer is a store that has to be opened before use
type Storer interface {
	Init() error
	Close() error
}
