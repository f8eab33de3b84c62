// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package layout composes the visual structure of a page.

A page is cut into named regions. Layouts form a single-parent tree; every
layout, every page and every request can place components into regions. When
a page is rendered the placements of all providers in the chain are folded
per region according to the region's [ExtendRule], ordered by position and
resolved to concrete [Component] instances.

Architecture:

  - Region, Layout, Placement: persisted records (see store.go).
  - RegionCatalog: process-wide slug/id lookup over regions.
  - Composer: the fold described above, independent of storage.
  - Service / Handler: admin write paths and the HTTP surface.
*/
package layout

import "fmt"

// # Extend Rules

// ExtendRule decides how a region merges component lists coming from
// successive providers.
type ExtendRule string

const (
	// ExtendCombine appends the later list to the earlier one.
	ExtendCombine ExtendRule = "combine"

	// ExtendOverwrite replaces the earlier list when the later one is non-empty.
	ExtendOverwrite ExtendRule = "overwrite"
)

// ExtendRules lists the valid rules in display order.
var ExtendRules = []ExtendRule{ExtendCombine, ExtendOverwrite}

// Label is the human readable name used by editing tools.
func (rule ExtendRule) Label() string {
	switch rule {
	case ExtendCombine:
		return "Add to existing components"
	case ExtendOverwrite:
		return "Replace existing components"
	default:
		return string(rule)
	}
}

// Valid reports whether rule is one of [ExtendRules].
func (rule ExtendRule) Valid() bool {
	return rule == ExtendCombine || rule == ExtendOverwrite
}

// ParseExtendRule converts a stored value into an [ExtendRule].
func ParseExtendRule(value string) (ExtendRule, error) {
	rule := ExtendRule(value)
	if !rule.Valid() {
		return "", fmt.Errorf("layout: unknown extend rule %q", value)
	}
	return rule, nil
}

/*
Extend merges two component lists according to rule.

Description: overwrite returns second when it is non-empty and first
otherwise; combine returns first followed by second. The result is always a
fresh slice, so callers may append to it without aliasing either input. An
unknown rule behaves like combine.

Parameters:
  - rule: ExtendRule
  - first: []T (accumulated so far)
  - second: []T (contributed by the next provider)

Returns:
  - []T: The merged list
*/
func Extend[T any](rule ExtendRule, first, second []T) []T {
	if rule == ExtendOverwrite {
		if len(second) > 0 {
			return append([]T(nil), second...)
		}
		return append([]T(nil), first...)
	}

	merged := make([]T, 0, len(first)+len(second))
	merged = append(merged, first...)
	return append(merged, second...)
}
