package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateRandByteArray_LengthAndEntropy(t *testing.T) {
	a := GenerateRandByteArray(32)
	b := GenerateRandByteArray(32)

	require.Len(t, a, 32)
	require.Len(t, b, 32)
	assert.NotEqual(t, a, b, "two 32-byte random buffers should differ")
}

func TestWipeByteArray(t *testing.T) {
	buf := []byte("longenough1")
	WipeByteArray(buf)
	assert.Equal(t, make([]byte, len("longenough1")), buf)

	assert.NotPanics(t, func() { WipeByteArray(nil) })
}

func TestSentinels_MatchThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("creating user: %w", ErrorAlreadyExists)
	assert.True(t, errors.Is(wrapped, ErrorAlreadyExists))
	assert.False(t, errors.Is(wrapped, ErrorNotFound))
}
