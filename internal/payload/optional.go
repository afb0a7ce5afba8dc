// Package payload turns loosely typed request fields into typed entity values
// and minimal update sets.
//
// The flow for a write request is Normalize (raw strings to typed Values),
// <Entity>PatchFrom (Values to a patch of Optional fields), the image resolver
// (uploads to stored paths), and finally New<Entity> or Merge<Entity>. None of
// these steps touch the repository.
package payload

// Optional distinguishes "not supplied" from a supplied zero value.
// The zero Optional is absent.
type Optional[T any] struct {
	Value T
	Set   bool
}

// Some returns a present Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Set: true}
}

// OrElse returns the value when present, otherwise def.
func (o Optional[T]) OrElse(def T) T {
	if o.Set {
		return o.Value
	}
	return def
}

// Map converts a present value with f; absence is preserved.
func Map[T, U any](o Optional[T], f func(T) U) Optional[U] {
	if !o.Set {
		return Optional[U]{}
	}
	return Some(f(o.Value))
}
