package forecast

import (
	"testing"
	"time"

	"github.com/padariaops/backend-go/internal/config"
	"github.com/padariaops/backend-go/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestSelectTierBoundaries(t *testing.T) {
	cfg := config.DefaultForecast()

	cases := []struct {
		days int
		want domain.Tier
	}{
		{0, domain.TierStock},
		{1, domain.TierStock},
		{6, domain.TierStock},
		{7, domain.TierIntermediate},
		{30, domain.TierIntermediate},
		{89, domain.TierIntermediate},
		{90, domain.TierAdvanced},
		{365, domain.TierAdvanced},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, SelectTier(tc.days, cfg), "days=%d", tc.days)
	}
}

func TestDaysOfHistory(t *testing.T) {
	asOf := time.Date(2025, 3, 20, 12, 0, 0, 0, time.UTC)

	t.Run("no order rows at all", func(t *testing.T) {
		assert.Equal(t, 0, DaysOfHistory(nil, asOf))
	})

	t.Run("whole days, floored", func(t *testing.T) {
		earliest := asOf.AddDate(0, 0, -40).Add(6 * time.Hour)
		assert.Equal(t, 39, DaysOfHistory(&earliest, asOf))
	})

	t.Run("exact days", func(t *testing.T) {
		earliest := asOf.AddDate(0, 0, -90)
		assert.Equal(t, 90, DaysOfHistory(&earliest, asOf))
	})

	t.Run("future earliest date clamps to zero", func(t *testing.T) {
		earliest := asOf.AddDate(0, 0, 3)
		assert.Equal(t, 0, DaysOfHistory(&earliest, asOf))
	})
}
