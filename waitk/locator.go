package waitk

// Locator is a named deferred lookup. Every call resolves again.
type Locator[T any] struct {
	description string
	locate      func() (T, error)
}

// NewLocator from a description and lookup function
func NewLocator[T any](description string, locate func() (T, error)) Locator[T] {
	return Locator[T]{description: description, locate: locate}
}

// Locate runs the lookup
func (l Locator[T]) Locate() (T, error) {
	return l.locate()
}

func (l Locator[T]) String() string {
	return l.description
}
