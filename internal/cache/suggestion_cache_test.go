package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStockHashIsOrderInsensitive(t *testing.T) {
	a := stockHash(map[int64]int{1: 10, 2: 5, 30: 0})
	b := stockHash(map[int64]int{30: 0, 1: 10, 2: 5})
	assert.Equal(t, a, b)

	assert.NotEqual(t, a, stockHash(map[int64]int{1: 10, 2: 6, 30: 0}))
	assert.Equal(t, "empty", stockHash(nil))
	assert.Equal(t, "empty", stockHash(map[int64]int{}))
}

func TestBuildSuggestionKeyIgnoresTimeOfDay(t *testing.T) {
	morning := time.Date(2025, 3, 4, 6, 0, 0, 0, time.UTC)
	evening := time.Date(2025, 3, 4, 22, 30, 0, 0, time.UTC)

	assert.Equal(t,
		buildSuggestionKey(7, morning, nil),
		buildSuggestionKey(7, evening, nil))
}
