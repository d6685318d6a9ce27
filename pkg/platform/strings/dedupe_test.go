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
			name:     "single element",
			input:    []string{"M_6M_001"},
			expected: []string{"M_6M_001"},
		},
		{
			name:     "trims whitespace",
			input:    []string{"  M_6M_001  ", "L_12M_002  ", "  S_9M_001"},
			expected: []string{"M_6M_001", "L_12M_002", "S_9M_001"},
		},
		{
			name:     "removes duplicates preserving order",
			input:    []string{"M_6M_001", "L_12M_002", "M_6M_001", "S_9M_001", "L_12M_002"},
			expected: []string{"M_6M_001", "L_12M_002", "S_9M_001"},
		},
		{
			name:     "removes empty strings",
			input:    []string{"M_6M_001", "", "  ", "L_12M_002"},
			expected: []string{"M_6M_001", "L_12M_002"},
		},
		{
			name:     "combined: trim, dedupe, remove empty",
			input:    []string{"  M_6M_001 ", "L_12M_002", "M_6M_001", "", "  ", "L_12M_002"},
			expected: []string{"M_6M_001", "L_12M_002"},
		},
		{
			name:     "preserves case",
			input:    []string{"m_6m_001", "M_6M_001", "M_6m_001"},
			expected: []string{"m_6m_001", "M_6M_001", "M_6m_001"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := DedupeAndTrim(tt.input)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestSet(t *testing.T) {
	set := Set([]string{" M_6M_001", "M_6M_001", "", "L_12M_002 "})

	assert.Len(t, set, 2)
	assert.Contains(t, set, "M_6M_001")
	assert.Contains(t, set, "L_12M_002")
	assert.Empty(t, Set(nil))
}
