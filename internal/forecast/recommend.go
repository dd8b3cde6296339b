package forecast

import "math"

// SimpleProduction is the stateless forecast-based production formula used
// where no tiered history exists: a flat daily forecast, current vitrine
// stock and current encomendas. When encomendas exceed the forecast the full
// order book is produced on top of the forecast.
func SimpleProduction(forecast, stock, orders float64) int {
	var production float64
	if orders > forecast {
		production = orders + forecast - stock
	} else {
		production = forecast - stock + orders
	}

	if production < 0 {
		production = 0
	}

	return int(math.Round(production))
}
