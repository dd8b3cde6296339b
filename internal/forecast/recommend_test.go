package forecast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSimpleProduction(t *testing.T) {
	t.Run("orders within forecast", func(t *testing.T) {
		// forecast - stock + orders
		assert.Equal(t, 130, SimpleProduction(100, 20, 50))
	})

	t.Run("orders exceed forecast", func(t *testing.T) {
		// orders + forecast - stock
		assert.Equal(t, 230, SimpleProduction(100, 20, 150))
	})

	t.Run("stock covers everything", func(t *testing.T) {
		assert.Equal(t, 0, SimpleProduction(10, 50, 0))
	})

	t.Run("rounds to the nearest unit", func(t *testing.T) {
		assert.Equal(t, 10, SimpleProduction(10.4, 0, 0))
		assert.Equal(t, 11, SimpleProduction(10.6, 0, 0))
	})
}
