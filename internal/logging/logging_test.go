package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	logger, err := New("debug", false)
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(-1))

	_, err = New("loud", false)
	assert.Error(t, err)

	logger, err = New("", true)
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(-1))
}

func TestMaskEmail(t *testing.T) {
	cases := map[string]string{
		"user@example.com": "u***@example.com",
		"@example.com":     "*@example.com",
		"not-an-email":     "***",
		"":                 "",
	}
	for in, want := range cases {
		assert.Equal(t, want, MaskEmail(in), in)
	}
	assert.Equal(t, "u***@example.com", Email("user@example.com").String)
}
