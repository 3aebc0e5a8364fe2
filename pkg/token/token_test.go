package token

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	generated, err := Generate()
	require.NoError(t, err)

	// 16 байт энтропии = 32 hex-символа
	assert.Len(t, generated, 32)

	_, err = hex.DecodeString(generated)
	assert.NoError(t, err)
}

func TestGenerate_Unique(t *testing.T) {
	seen := make(map[string]struct{}, 1000)
	for i := 0; i < 1000; i++ {
		generated, err := Generate()
		require.NoError(t, err)

		_, duplicate := seen[generated]
		require.False(t, duplicate, "duplicate token %s", generated)
		seen[generated] = struct{}{}
	}
}
