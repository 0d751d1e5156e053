package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCheckMultiplyOverflow(t *testing.T) {
	tests := []struct {
		name    string
		a, b    uint64
		wantErr bool
	}{
		{name: "zero left", a: 0, b: 42, wantErr: false},
		{name: "zero right", a: 42, b: 0, wantErr: false},
		{name: "small values", a: 1000, b: 1000, wantErr: false},
		{name: "max by one", a: ^uint64(0), b: 1, wantErr: false},
		{name: "overflow", a: ^uint64(0), b: 2, wantErr: true},
		{name: "large squares", a: 1 << 33, b: 1 << 33, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckMultiplyOverflow(tt.a, tt.b)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestSafeMultiply(t *testing.T) {
	v, err := SafeMultiply(12, 12)
	require.NoError(t, err)
	require.Equal(t, uint64(144), v)

	_, err = SafeMultiply(^uint64(0), 3)
	require.Error(t, err)
}

func TestElementSpan(t *testing.T) {
	span, err := ElementSpan(3, 8)
	require.NoError(t, err)
	require.Equal(t, uint64(24), span)

	span, err = ElementSpan(0, 4)
	require.NoError(t, err)
	require.Zero(t, span)

	// A hostile count must not wrap around into a small span.
	_, err = ElementSpan(1<<62, 8)
	require.Error(t, err)
}
