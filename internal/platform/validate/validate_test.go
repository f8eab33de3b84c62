// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/mosaic/internal/platform/apperr"
	"github.com/taibuivan/mosaic/internal/platform/validate"
)

/*
TestValidator_Required tests the mandatory field validation logic.
*/
func TestValidator_Required(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		value    string
		hasError bool
	}{
		{"valid_string", "name", "Sidebar", false},
		{"empty_string", "name", "", true},
		{"whitespace_only", "name", "   ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Required(tt.field, tt.value)

			if tt.hasError {
				assert.True(t, v.HasErrors())
				err := v.Err()
				require.NotNil(t, err)

				ae := apperr.As(err)
				require.NotNil(t, ae)
				assert.Equal(t, "VALIDATION_ERROR", ae.Code)
				assert.Equal(t, tt.field, ae.Details[0].Field)
			} else {
				assert.False(t, v.HasErrors())
				assert.Nil(t, v.Err())
			}
		})
	}
}

/*
TestValidator_Slug checks the slug format rule used for regions and layouts.
*/
func TestValidator_Slug(t *testing.T) {
	tests := []struct {
		name    string
		slug    string
		isValid bool
	}{
		{"simple", "sidebar", true},
		{"hyphenated", "main-sidebar-2", true},
		{"uppercase", "Sidebar", false},
		{"spaces", "main sidebar", false},
		{"leading_hyphen", "-sidebar", false},
		{"double_hyphen", "main--sidebar", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Slug("slug", tt.slug)
			assert.Equal(t, !tt.isValid, v.HasErrors())
		})
	}
}

/*
TestValidator_Chain tests the fluent API (chaining multiple rules).
*/
func TestValidator_Chain(t *testing.T) {
	v := &validate.Validator{}

	// Multi-rule validation
	err := v.
		Required("name", "Sidebar").
		MaxLen("name", "Sidebar", 50).
		Slug("slug", "sidebar").
		OneOf("extend_rule", "combine", "combine", "overwrite").
		Range("position", 3, -10, 10).
		UUID("id", "0190f1b6-6a4e-7c5e-9d2a-1f2e3d4c5b6a").
		Err()

	assert.NoError(t, err)
	assert.False(t, v.HasErrors())
}

/*
TestValidator_Chain_Failure tests error accumulation in the chain.
*/
func TestValidator_Chain_Failure(t *testing.T) {
	v := &validate.Validator{}

	err := v.
		Required("name", "").                                   // Fails
		OneOf("extend_rule", "append", "combine", "overwrite"). // Fails
		UUID("id", "not-a-uuid").                               // Fails
		Custom("parent", false, "never reported").
		Err()

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)

	// Should accumulate all 3 errors
	assert.Len(t, ae.Details, 3)
	assert.Equal(t, "extend_rule", ae.Details[1].Field)
}

/*
TestRequiredError builds a single-field validation error.
*/
func TestRequiredError(t *testing.T) {
	ae := validate.RequiredError("parent", "Parent layout does not exist")
	assert.Equal(t, 400, ae.HTTPStatus)
	require.Len(t, ae.Details, 1)
	assert.Equal(t, "parent", ae.Details[0].Field)
}
