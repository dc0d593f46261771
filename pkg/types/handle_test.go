package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleString(t *testing.T) {
	assert.Equal(t, "0", Null.String())
	assert.Equal(t, "1", Root.String())
	assert.Equal(t, "2A", Handle(42).String())
}

func TestParseHandle(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Handle
		wantErr bool
	}{
		{"upper hex", "2A", 42, false},
		{"lower hex", "2a", 42, false},
		{"surrounding space", " 1F ", 31, false},
		{"not hex", "zz", Null, true},
		{"empty", "", Null, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseHandle(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidArgument)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHandleRoundTrip(t *testing.T) {
	for _, h := range []Handle{1, 16, 255, 4096, 1 << 40} {
		got, err := ParseHandle(h.String())
		require.NoError(t, err)
		assert.Equal(t, h, got)
	}
}
