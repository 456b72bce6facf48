package waitk

import "fmt"

// Entity is anything that builds waits over itself: *Element, *Collection and *Browser.
type Entity[E any] interface {
	fmt.Stringer
	Wait() Wait[E]
}

// Get resolves q against entity, retrying until it stops failing.
func Get[E Entity[E], R any](entity E, q Query[E, R]) (R, error) {
	return ForQuery(entity.Wait(), q)
}

// Resolvable yields the nodes an entity currently stands for.
type Resolvable interface {
	Nodes() ([]Node, error)
}
