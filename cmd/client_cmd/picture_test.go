package clientcmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"picam.api/v0/pkg/picture"
)

func TestParseOptions(t *testing.T) {
	opts, err := parseOptions([]string{"w=100", "quality=80", "ex=night", "w=200"})
	require.NoError(t, err)
	assert.Equal(t, picture.CaptureOptions{
		{Key: "w", Value: "200"},
		{Key: "quality", Value: "80"},
		{Key: "ex", Value: "night"},
	}, opts)
	assert.Equal(t, []string{"-w", "200", "--quality", "80", "-ex", "night"}, opts.Flags())
}

func TestParseOptions_Malformed(t *testing.T) {
	for _, raw := range []string{"w", "=100"} {
		_, err := parseOptions([]string{raw})
		assert.Error(t, err, raw)
	}
}
