package runtime

// Data is a shared, immutable payload of type T flowing through one channel.
// Clone is cheap: it copies the handle, not the value, the same way the Go
// runtime shares a slice or map header across goroutines. The referenced
// value must not be mutated in place once wrapped.
type Data[T any] struct {
	value *T
}

// NewData wraps v as a shareable payload.
func NewData[T any](v T) Data[T] {
	return Data[T]{value: &v}
}

// DefaultData wraps the zero value of T, used for bootstrap sends and for
// Pulse's between-pulses payload.
func DefaultData[T any]() Data[T] {
	var zero T
	return Data[T]{value: &zero}
}

// Value returns the wrapped value. Callers must treat it as read-only.
func (d Data[T]) Value() T {
	return *d.value
}

// Clone returns a handle sharing the same underlying value.
func (d Data[T]) Clone() Data[T] {
	return d
}

// IsZero reports whether d was never assigned a value.
func (d Data[T]) IsZero() bool {
	return d.value == nil
}
