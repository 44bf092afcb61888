//go:build !integration

package sliceutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContains(t *testing.T) {
	tests := []struct {
		name     string
		slice    []string
		item     string
		expected bool
	}{
		{name: "item exists in slice", slice: []string{"INVALID_FLOW_STRUCTURE", "SYNTAX_ERROR"}, item: "SYNTAX_ERROR", expected: true},
		{name: "item does not exist in slice", slice: []string{"INVALID_FLOW_STRUCTURE"}, item: "SYNTAX_ERROR", expected: false},
		{name: "empty slice", slice: []string{}, item: "SYNTAX_ERROR", expected: false},
		{name: "nil slice", slice: nil, item: "SYNTAX_ERROR", expected: false},
		{name: "empty string item exists", slice: []string{"", "a"}, item: "", expected: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Contains(tt.slice, tt.item),
				"Contains should return correct value for slice %v and item %q", tt.slice, tt.item)
		})
	}
}

func TestDeduplicate(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected []string
	}{
		{name: "no duplicates", input: []string{"a", "b"}, expected: []string{"a", "b"}},
		{name: "keeps first occurrence order", input: []string{"b", "a", "b", "c", "a"}, expected: []string{"b", "a", "c"}},
		{name: "empty", input: []string{}, expected: []string{}},
		{name: "nil", input: nil, expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Deduplicate(tt.input))
		})
	}
}

func TestDeduplicate_Ints(t *testing.T) {
	assert.Equal(t, []int{3, 1, 2}, Deduplicate([]int{3, 1, 3, 2, 1}))
}
