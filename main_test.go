package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeedURL(t *testing.T) {
	u, err := feedURL("192.168.1.20:8765")
	require.NoError(t, err)
	assert.Equal(t, "ws://192.168.1.20:8765/poses", u)

	for _, bad := range []string{"192.168.1.20", ":8765", "host:port", "host:0", "host:70000"} {
		_, err := feedURL(bad)
		assert.Error(t, err, bad)
	}
}
