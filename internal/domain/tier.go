package domain

import "strings"

// Tier identifies which estimation strategy backed a suggestion. It is a
// function of how much order history the store has, never of the product.
type Tier string

const (
	TierStock        Tier = "stock"
	TierIntermediate Tier = "intermediate"
	TierAdvanced     Tier = "advanced"
)

var tierNames = map[string]Tier{
	"stock":        TierStock,
	"intermediate": TierIntermediate,
	"advanced":     TierAdvanced,
}

// ParseTier returns the tier for a given name (case-insensitive).
func ParseTier(name string) (Tier, bool) {
	tier, ok := tierNames[strings.ToLower(name)]

	return tier, ok
}

func (t Tier) String() string {
	return string(t)
}
