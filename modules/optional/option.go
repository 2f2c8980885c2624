// Copyright 2026 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

// Package optional provides a light container for values that may be absent.
package optional

// Option holds zero or one value of type T.
type Option[T any] []T

func None[T any]() Option[T] {
	return nil
}

func Some[T any](v T) Option[T] {
	return Option[T]{v}
}

// Has reports whether a value is present.
func (o Option[T]) Has() bool {
	return o != nil
}

// Value returns the contained value, or the zero value of T when absent.
func (o Option[T]) Value() T {
	var zero T
	return o.ValueOrDefault(zero)
}

// ValueOrDefault returns the contained value, or v when absent.
func (o Option[T]) ValueOrDefault(v T) T {
	if o.Has() {
		return o[0]
	}
	return v
}
