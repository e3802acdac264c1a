package hash

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestID(t *testing.T) {
	require.Equal(t, ID(".debug_info"), ID(".debug_info"))
	require.NotEqual(t, ID(".debug_info"), ID(".debug_abbrev"))
	require.Equal(t, ID("abc"), Fingerprint([]byte("abc")))
}
