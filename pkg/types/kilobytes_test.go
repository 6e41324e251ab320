package types

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKiloBytes_String_Boundaries(t *testing.T) {
	cases := []struct {
		in   KiloBytes
		want string
	}{
		{KiloBytes(0), "0 KB"},
		{KiloBytes(1), "1 KB"},
		{KiloBytes(1023), "1023 KB"},              // just below 1 MiB
		{KiloBytes(1024), "1.00 MB"},              // exactly 1 MiB
		{KiloBytes(1024*1024 - 1), "1024.00 MB"},  // just below 1 GiB
		{KiloBytes(1024 * 1024), "1.00 GB"},       // exactly 1 GiB
		{KiloBytes(5 * 1024 * 1024), "5.00 GB"},   // multiple GiB
	}
	for i, tc := range cases {
		t.Run(fmt.Sprintf("case_%d_%d", i, uint64(tc.in)), func(t *testing.T) {
			require.Equal(t, tc.want, tc.in.String())
		})
	}
}

func TestKiloBytes_UnitAccessors(t *testing.T) {
	// The module-wide conversion factor is binary: 1 MB = 1024 KB.
	assert.InDelta(t, 1.0, KiloBytes(1024).MB(), 1e-12)
	assert.InDelta(t, 1.0, KiloBytes(1<<20).GB(), 1e-12)

	// Non-integers
	assert.InDelta(t, 1.5, KiloBytes(1536).MB(), 1e-12)
	assert.InDelta(t, 0.5, KiloBytes(512).MB(), 1e-12)

	// Typical VmRSS figure: 123456 KB = 120.5625 MB
	assert.InDelta(t, 120.5625, KiloBytes(123456).MB(), 1e-9)
}
