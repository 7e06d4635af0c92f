package model

// Optional holds a value that may be absent. Capacities and flows left to
// autosize are represented as an unset Optional.
type Optional[T any] struct {
	v  T
	ok bool
}

func Some[T any](v T) Optional[T] {
	return Optional[T]{v: v, ok: true}
}

func None[T any]() Optional[T] {
	return Optional[T]{}
}

func (o Optional[T]) Get() (T, bool) {
	return o.v, o.ok
}

func (o Optional[T]) IsSet() bool {
	return o.ok
}

// OrElse returns the held value, or d when unset.
func (o Optional[T]) OrElse(d T) T {
	if o.ok {
		return o.v
	}
	return d
}
