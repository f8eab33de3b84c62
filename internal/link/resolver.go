// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package link

import (
	"context"
	"fmt"
)

// # Resolver Contract

// Resolver converts object ids of one type into URLs and back.
//
// Handles predicates of resolvers registered on the same [Registry] must be
// mutually exclusive, otherwise [Registry.Reverse] is ambiguous.
type Resolver interface {
	// Resolve returns the URL of the object identified by objectID.
	Resolve(context context.Context, objectID string) (string, error)

	// Handles reports whether object is of the type this resolver serves.
	Handles(object any) bool

	// ObjectID returns the id under which object can be resolved again.
	ObjectID(object any) (string, error)
}

// # Generic Resolver

// Identifiable is implemented by records that know their own id and URL.
type Identifiable interface {
	GetID() string
	AbsoluteURL() string
}

// FindFunc loads a record by id, typically through a repository.
type FindFunc[T Identifiable] func(context context.Context, id string) (T, error)

// RecordResolver resolves ids of records of type T via a lookup function.
//
// It is the equivalent of a model-backed resolver: Resolve loads the record and
// asks it for its URL, Handles is a type test on T, ObjectID returns the id.
type RecordResolver[T Identifiable] struct {
	find FindFunc[T]
}

// NewRecordResolver constructs a [RecordResolver] backed by find.
func NewRecordResolver[T Identifiable](find FindFunc[T]) *RecordResolver[T] {
	return &RecordResolver[T]{find: find}
}

// Resolve loads the record and returns its absolute URL.
func (resolver *RecordResolver[T]) Resolve(context context.Context, objectID string) (string, error) {
	record, err := resolver.find(context, objectID)
	if err != nil {
		return "", err
	}
	return record.AbsoluteURL(), nil
}

// Handles reports whether object is a T.
func (resolver *RecordResolver[T]) Handles(object any) bool {
	_, ok := object.(T)
	return ok
}

// ObjectID returns the id of a T.
func (resolver *RecordResolver[T]) ObjectID(object any) (string, error) {
	record, ok := object.(T)
	if !ok {
		return "", fmt.Errorf("link: %T is not handled by this resolver", object)
	}
	return record.GetID(), nil
}

// # Function Adapter

// ResolverFuncs adapts plain functions to the [Resolver] interface.
// A nil HandlesFunc handles nothing.
type ResolverFuncs struct {
	ResolveFunc  func(context context.Context, objectID string) (string, error)
	HandlesFunc  func(object any) bool
	ObjectIDFunc func(object any) (string, error)
}

// Resolve calls ResolveFunc.
func (funcs ResolverFuncs) Resolve(context context.Context, objectID string) (string, error) {
	if funcs.ResolveFunc == nil {
		return "", fmt.Errorf("link: resolver does not implement Resolve")
	}
	return funcs.ResolveFunc(context, objectID)
}

// Handles calls HandlesFunc.
func (funcs ResolverFuncs) Handles(object any) bool {
	return funcs.HandlesFunc != nil && funcs.HandlesFunc(object)
}

// ObjectID calls ObjectIDFunc.
func (funcs ResolverFuncs) ObjectID(object any) (string, error) {
	if funcs.ObjectIDFunc == nil {
		return "", fmt.Errorf("link: resolver does not implement ObjectID")
	}
	return funcs.ObjectIDFunc(object)
}
