package waitk

// Query is a named function returning a value from an entity.
type Query[E, R any] struct {
	description string
	fn          func(entity E) (R, error)
}

// NewQuery from a description and function
func NewQuery[E, R any](description string, fn func(entity E) (R, error)) Query[E, R] {
	return Query[E, R]{description: description, fn: fn}
}

// Call runs the query
func (q Query[E, R]) Call(entity E) (R, error) {
	return q.fn(entity)
}

func (q Query[E, R]) String() string {
	return q.description
}

// Command is a named side effect on an entity
type Command[E any] struct {
	description string
	fn          func(entity E) error
}

// NewCommand from a description and function
func NewCommand[E any](description string, fn func(entity E) error) Command[E] {
	return Command[E]{description: description, fn: fn}
}

// Call runs the command
func (c Command[E]) Call(entity E) error {
	return c.fn(entity)
}

func (c Command[E]) String() string {
	return c.description
}
