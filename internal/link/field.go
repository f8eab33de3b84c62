// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package link

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"unicode/utf8"
)

// MaxFieldLength is the storage limit of a link-valued column.
const MaxFieldLength = 250

// FieldHelpText is shown next to link inputs in editing tools.
const FieldHelpText = `You can enter full URLs, absolute paths (starting with a slash) or ` +
	`a link id that represents a content in the CMS. These usually look like "page/123".`

// # Persisted Field

// Field is the stored representation of a link-valued attribute.
//
// It keeps the raw text exactly as persisted. Values that no longer parse (for
// example rows written before validation existed) are kept verbatim and shown
// as opaque text instead of failing the read.
type Field struct {
	Raw string
}

// NewField wraps raw without validating it.
func NewField(raw string) Field {
	return Field{Raw: raw}
}

// IsEmpty reports whether no link was entered.
func (field Field) IsEmpty() bool { return field.Raw == "" }

// Validate checks the write-path rules: empty is allowed, anything else must parse.
func (field Field) Validate() error {
	if field.Raw == "" {
		return nil
	}
	if utf8.RuneCountInString(field.Raw) > MaxFieldLength {
		return fmt.Errorf("%w: longer than %d characters", ErrInvalidReference, MaxFieldLength)
	}
	_, err := Parse(field.Raw)
	return err
}

// Link binds the field to registry. It returns false for empty or unparsable values.
func (field Field) Link(registry *Registry) (*Link, bool) {
	if field.Raw == "" {
		return nil, false
	}
	link, err := FromString(registry, field.Raw)
	if err != nil {
		return nil, false
	}
	return link, true
}

// Display returns the resolved URL, or the raw text when the value does not parse.
// A well-formed reference whose target is gone yields "".
func (field Field) Display(context context.Context, registry *Registry) string {
	link, ok := field.Link(registry)
	if !ok {
		return field.Raw
	}
	return link.URL(context)
}

// String implements [fmt.Stringer].
func (field Field) String() string { return field.Raw }

// # Storage Codecs

// Scan implements [database/sql.Scanner].
func (field *Field) Scan(src any) error {
	switch value := src.(type) {
	case nil:
		field.Raw = ""
	case string:
		field.Raw = value
	case []byte:
		field.Raw = string(value)
	default:
		return fmt.Errorf("link: cannot scan %T into Field", src)
	}
	return nil
}

// Value implements [database/sql/driver.Valuer]. Empty fields are stored as NULL.
func (field Field) Value() (driver.Value, error) {
	if field.Raw == "" {
		return nil, nil
	}
	return field.Raw, nil
}

// MarshalJSON encodes the field as its raw string.
func (field Field) MarshalJSON() ([]byte, error) {
	return json.Marshal(field.Raw)
}

// UnmarshalJSON decodes a JSON string or null.
func (field *Field) UnmarshalJSON(data []byte) error {
	var raw *string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		field.Raw = ""
		return nil
	}
	field.Raw = *raw
	return nil
}
