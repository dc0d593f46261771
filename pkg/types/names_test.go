package types

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidName(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		allowBar  bool
		wantValid bool
	}{
		{"simple", "Walls", false, true},
		{"inner space", "Outer Walls", false, true},
		{"digit zero", "0", false, true},
		{"empty", "", false, false},
		{"leading space", " Walls", false, false},
		{"trailing space", "Walls ", false, false},
		{"bar disallowed", "site|Walls", false, false},
		{"bar allowed", "site|Walls", true, true},
		{"asterisk", "A*", true, false},
		{"backquote", "A`B", true, false},
		{"equals", "A=B", true, false},
		{"max length", strings.Repeat("x", MaxNameLength), false, true},
		{"too long", strings.Repeat("x", MaxNameLength+1), false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantValid, IsValidName(tt.input, tt.allowBar))
		})
	}
}
