// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package gatesim

import "github.com/pkg/errors"

// Error values returned by the simulation core. They are usually wrapped with
// some context; use errors.Cause to get back to one of these.
//
var (
	// ErrInvalidInputArity is returned by Evaluate when a gate is given more
	// inputs than its kind accepts.
	ErrInvalidInputArity = errors.New("invalid input arity")
	// ErrInvalidOperation is returned when an operation does not apply to an
	// element, like asking for the position of a port.
	ErrInvalidOperation = errors.New("invalid operation")
	// ErrMissingElement is returned when an id does not match any element.
	ErrMissingElement = errors.New("missing element")
	// ErrConstraintViolation is returned when an operation would break a
	// wiring invariant, like binding a second wire to an input.
	ErrConstraintViolation = errors.New("constraint violation")
)

func missing(id ID) error {
	return errors.Wrapf(ErrMissingElement, "element %v", id)
}

func wrongKind(id ID, got Kind, want Kind) error {
	return errors.Wrapf(ErrInvalidOperation, "element %v is a %v, not a %v", id, got, want)
}
