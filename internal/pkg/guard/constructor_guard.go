// Package guard enforces construction through factory functions. Route
// commands, queries and value objects embed a ConstructorGuard so that a
// zero-value instance, which would otherwise carry empty tenant and actor
// identifiers, fails validation before any handler acts on it.
package guard

import "errors"

// ErrDefaultConstructorGuard is the fallback validation error used when the
// embedding type does not supply its own not-constructed sentinel.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard records whether the enclosing object came out of its
// factory function. The zero value reports as not constructed.
type ConstructorGuard struct {
	constructed bool
}

// NewConstructorGuard returns a guard marking the enclosing object as built
// through its factory.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{constructed: true}
}

// Validate returns nil for a properly constructed object. Otherwise it
// returns notConstructedErr, or ErrDefaultConstructorGuard when that is nil.
func (g ConstructorGuard) Validate(notConstructedErr error) error {
	if g.constructed {
		return nil
	}
	if notConstructedErr == nil {
		return ErrDefaultConstructorGuard
	}
	return notConstructedErr
}
