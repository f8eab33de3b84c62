// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package link resolves symbolic link references such as "page/123" into
concrete URLs.

A reference string takes one of three forms:

  - External URL: "<scheme>://...", stored and returned verbatim.
  - Absolute path: "/about", a site-relative path returned verbatim.
  - Typed reference: "<type>/<id>", resolved through the [Registry].

Architecture:

  - [Parse] classifies raw strings into immutable [Reference] values.
  - [Registry] holds one pluggable [Resolver] per object type.
  - [Link] lazily resolves a reference and caches the result.
  - [Field] is the persisted form used by records with link-valued attributes.
  - [ConvertLinks] rewrites anchors inside rendered HTML.
*/
package link

import (
	"fmt"
	"regexp"
)

// # Reference Grammar

// TypeIDSeparator joins an object type and an object id in a typed reference.
const TypeIDSeparator = "/"

// referencePattern matches every accepted reference form. Exactly one of the
// capture groups participates in a match; Go's regexp prefers the leftmost
// alternative, so the URL form wins over the typed form.
var referencePattern = regexp.MustCompile(
	`^(?:(?P<url>\w+://.+)|(?P<path>/.*)|(?:(?P<type>[-a-z]+)/(?P<id>.+)))$`,
)

var (
	groupURL  = referencePattern.SubexpIndex("url")
	groupPath = referencePattern.SubexpIndex("path")
	groupType = referencePattern.SubexpIndex("type")
	groupID   = referencePattern.SubexpIndex("id")
)

// Kind identifies which reference form is active.
type Kind int

const (
	// KindExternalURL is an absolute URL with a scheme.
	KindExternalURL Kind = iota + 1
	// KindAbsolutePath is a site-relative path starting with a slash.
	KindAbsolutePath
	// KindTyped is a "type/id" reference resolved by the registry.
	KindTyped
)

// String returns the wire name of the kind.
func (k Kind) String() string {
	switch k {
	case KindExternalURL:
		return "url"
	case KindAbsolutePath:
		return "path"
	case KindTyped:
		return "object"
	default:
		return "unknown"
	}
}

// MarshalText renders the kind for JSON payloads.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// # Reference Value

// Reference is an immutable, parsed link reference.
//
// The zero value is not a valid reference; obtain one through [Parse].
// References are comparable with ==.
type Reference struct {
	raw        string
	kind       Kind
	objectType string
	objectID   string
}

// Parse classifies raw into one of the three reference forms.
//
// It returns an error wrapping [ErrInvalidReference] when raw matches none of
// them. Parse has no side effects and never consults the registry.
func Parse(raw string) (Reference, error) {
	match := referencePattern.FindStringSubmatchIndex(raw)
	if match == nil {
		return Reference{}, fmt.Errorf("%w: %q", ErrInvalidReference, raw)
	}

	switch {
	case participated(match, groupURL):
		return Reference{raw: raw, kind: KindExternalURL}, nil
	case participated(match, groupPath):
		return Reference{raw: raw, kind: KindAbsolutePath}, nil
	default:
		return Reference{
			raw:        raw,
			kind:       KindTyped,
			objectType: raw[match[2*groupType]:match[2*groupType+1]],
			objectID:   raw[match[2*groupID]:match[2*groupID+1]],
		}, nil
	}
}

// MustParse is like [Parse] but panics on malformed input.
// It is meant for tests and package-level fixtures.
func MustParse(raw string) Reference {
	reference, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return reference
}

// Typed builds a typed reference from its parts without going through the grammar.
func Typed(objectType, objectID string) Reference {
	return Reference{
		raw:        objectType + TypeIDSeparator + objectID,
		kind:       KindTyped,
		objectType: objectType,
		objectID:   objectID,
	}
}

// participated reports whether capture group i took part in the match.
func participated(match []int, i int) bool {
	return match[2*i] >= 0
}

// Kind returns the active reference form.
func (r Reference) Kind() Kind { return r.kind }

// Raw returns the reference exactly as it was parsed.
func (r Reference) Raw() string { return r.raw }

// String implements [fmt.Stringer].
func (r Reference) String() string { return r.raw }

// IsZero reports whether r was never parsed.
func (r Reference) IsZero() bool { return r.kind == 0 }

// ObjectType returns the object type of a typed reference, or "".
func (r Reference) ObjectType() string { return r.objectType }

// ObjectID returns the object id of a typed reference, or "".
func (r Reference) ObjectID() string { return r.objectID }

// URL returns the literal URL for the external URL and absolute path forms.
// The second result is false for typed references, which need resolution.
func (r Reference) URL() (string, bool) {
	if r.kind == KindExternalURL || r.kind == KindAbsolutePath {
		return r.raw, true
	}
	return "", false
}
