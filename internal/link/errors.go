// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package link

import (
	"errors"
	"fmt"
)

// # Error Taxonomy

var (
	// ErrInvalidReference is returned by [Parse] for strings matching no reference form.
	ErrInvalidReference = errors.New("link: invalid reference")

	// ErrResolve is the sentinel matched by every [*ResolveError].
	ErrResolve = errors.New("link: resolve failed")

	// ErrReverseResolve is the sentinel matched by every [*ReverseResolveError].
	ErrReverseResolve = errors.New("link: reverse resolve failed")

	// ErrRegistrySealed is returned when registering after [Registry.Seal].
	ErrRegistrySealed = errors.New("link: registry is sealed")
)

// ResolveError reports a failed forward resolution.
//
// Every resolver failure is folded into this one type. Reason keeps the
// original message for logs; the underlying error is deliberately not
// reachable through [errors.Unwrap].
type ResolveError struct {
	ObjectType string
	ObjectID   string
	Reason     string
}

// Error implements the error interface.
func (e *ResolveError) Error() string {
	return fmt.Sprintf("link: could not resolve %s/%s: %s", e.ObjectType, e.ObjectID, e.Reason)
}

// Is matches [ErrResolve].
func (e *ResolveError) Is(target error) bool {
	return target == ErrResolve
}

// ReverseResolveError reports that no registered resolver handles an object.
type ReverseResolveError struct {
	Object any
}

// Error implements the error interface.
func (e *ReverseResolveError) Error() string {
	return fmt.Sprintf("link: no object resolver found for object: %#v", e.Object)
}

// Is matches [ErrReverseResolve].
func (e *ReverseResolveError) Is(target error) bool {
	return target == ErrReverseResolve
}
