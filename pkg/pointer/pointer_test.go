// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pointer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/mosaic/pkg/pointer"
)

type named struct{}

/*
TestIsNil covers untyped nils, typed nils and non-nil values.
*/
func TestIsNil(t *testing.T) {
	var (
		nilPointer *named
		nilMap     map[string]int
		nilSlice   []string
		nilFunc    func()
		nilError   error
	)

	tests := []struct {
		name     string
		value    any
		expected bool
	}{
		{"untyped_nil", nil, true},
		{"nil_interface", nilError, true},
		{"typed_nil_pointer", nilPointer, true},
		{"typed_nil_map", nilMap, true},
		{"typed_nil_slice", nilSlice, true},
		{"typed_nil_func", nilFunc, true},
		{"pointer", &named{}, false},
		{"empty_map", map[string]int{}, false},
		{"struct_value", named{}, false},
		{"zero_int", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, pointer.IsNil(tt.value))
		})
	}
}

/*
TestFallback verifies nil pointers yield the fallback.
*/
func TestFallback(t *testing.T) {
	assert.True(t, pointer.Fallback(nil, true))
	assert.False(t, pointer.Fallback(pointer.To(false), true))
	assert.Equal(t, "", pointer.Val[string](nil))
}
