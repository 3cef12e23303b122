package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoerceFloat(t *testing.T) {
	tests := []struct {
		name      string
		in        any
		want      float64
		defaulted bool
	}{
		{"plain number", 20.5, 20.5, false},
		{"int", 20, 20, false},
		{"gram suffix", "20g", 20, false},
		{"kcal suffix", "2000kcal", 2000, false},
		{"uppercase and spaces", "  15.5G ", 15.5, false},
		{"plain numeric string", "42", 42, false},
		{"nil", nil, 0, true},
		{"garbage string", "plenty", 0, true},
		{"bool", true, 0, true},
		{"object", map[string]any{}, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, defaulted := CoerceFloat(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.defaulted, defaulted)
		})
	}
}

func TestCoerceString(t *testing.T) {
	s, defaulted := CoerceString("Oatmeal")
	assert.Equal(t, "Oatmeal", s)
	assert.False(t, defaulted)

	s, defaulted = CoerceString(12)
	assert.Equal(t, "", s)
	assert.True(t, defaulted)

	s, defaulted = CoerceString(nil)
	assert.Equal(t, "", s)
	assert.False(t, defaulted) // missing is not the same as wrong-typed
}

func TestTruncate(t *testing.T) {
	long := make([]byte, 300)
	for i := range long {
		long[i] = 'a'
	}
	assert.Len(t, Truncate(string(long), 256), 256)
	assert.Equal(t, "short", Truncate("short", 256))
}
