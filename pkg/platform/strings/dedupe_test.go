package strings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDedupeAndTrim(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected []string
	}{
		{
			name:     "nil slice",
			input:    nil,
			expected: nil,
		},
		{
			name:     "empty slice",
			input:    []string{},
			expected: []string{},
		},
		{
			name:     "single region",
			input:    []string{"Italy"},
			expected: []string{"Italy"},
		},
		{
			name:     "trims whitespace",
			input:    []string{"  Italy  ", "Spain  ", "  US"},
			expected: []string{"Italy", "Spain", "US"},
		},
		{
			name:     "removes duplicates preserving order",
			input:    []string{"Italy", "Spain", "Italy", "US", "Spain"},
			expected: []string{"Italy", "Spain", "US"},
		},
		{
			name:     "removes empty strings",
			input:    []string{"Italy", "", "  ", "Spain"},
			expected: []string{"Italy", "Spain"},
		},
		{
			name:     "preserves case",
			input:    []string{"Italy", "italy", "ITALY"},
			expected: []string{"Italy", "italy", "ITALY"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DedupeAndTrim(tt.input))
		})
	}
}
