package optional

import "golang.org/x/exp/constraints"

// Optional is a value that may be absent. The zero value is absent.
type Optional[T any] struct {
	value T
	isSet bool
}

// Some creates an optional value with the given value
func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, isSet: true}
}

// None creates an optional value with no value set
func None[T any]() Optional[T] {
	return Optional[T]{}
}

func (o Optional[T]) IsSet() bool {
	return o.isSet
}

func (o *Optional[T]) Set(v T) {
	o.value = v
	o.isSet = true
}

// Unset clears the value so a reused packet struct does not leak old fields.
func (o *Optional[T]) Unset() {
	var zero T
	o.value = zero
	o.isSet = false
}

func (o Optional[T]) Get() (T, bool) {
	return o.value, o.isSet
}

func (o Optional[T]) GetOr(def T) T {
	if o.isSet {
		return o.value
	}
	return def
}

// Unwrap returns the value or panics if it is absent.
func (o Optional[T]) Unwrap() T {
	if !o.isSet {
		panic("optional value is not set")
	}
	return o.value
}

// CastInt converts an integer optional value to another integer type
func CastInt[A, B constraints.Integer](a Optional[A]) (out Optional[B]) {
	if v, ok := a.Get(); ok {
		out.Set(B(v))
	}
	return out
}
