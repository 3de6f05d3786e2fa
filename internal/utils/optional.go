package utils

// Optional holds a value that may be absent. The zero value is absent.
type Optional[T any] struct {
	value   T
	present bool
}

func Some[T any](value T) Optional[T] {
	return Optional[T]{value: value, present: true}
}

func (o Optional[T]) Get() (T, bool) {
	return o.value, o.present
}

func (o Optional[T]) Present() bool {
	return o.present
}

// Take returns the held value and leaves the Optional absent
func (o *Optional[T]) Take() (T, bool) {
	value, present := o.value, o.present
	o.Clear()
	return value, present
}

func (o *Optional[T]) Clear() {
	var zero T
	o.value = zero
	o.present = false
}
