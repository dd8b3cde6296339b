package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTier(t *testing.T) {
	tier, ok := ParseTier("Advanced")
	assert.True(t, ok)
	assert.Equal(t, TierAdvanced, tier)

	_, ok = ParseTier("premium")
	assert.False(t, ok)
}
