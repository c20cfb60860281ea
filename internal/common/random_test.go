package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeRandHexString_LengthAndCharset(t *testing.T) {
	s, err := MakeRandHexString(24)
	require.NoError(t, err)
	assert.Len(t, s, 48)
	assert.Regexp(t, "^[0-9a-f]+$", s)
}

func TestMakeRandHexString_Unique(t *testing.T) {
	a, err := MakeRandHexString(16)
	require.NoError(t, err)
	b, err := MakeRandHexString(16)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}
