package indicator

// SMA calculates Simple Moving Average
// Returns slice of length: len(prices) - period + 1
func SMA(prices []float64, period int) []float64 {
	if period <= 0 || len(prices) < period {
		return []float64{}
	}

	result := make([]float64, 0, len(prices)-period+1)

	// Calculate first SMA
	var sum float64
	for i := 0; i < period; i++ {
		sum += prices[i]
	}
	result = append(result, sum/float64(period))

	// Rolling calculation
	for i := period; i < len(prices); i++ {
		sum = sum - prices[i-period] + prices[i]
		result = append(result, sum/float64(period))
	}

	return result
}

// Rolling maintains a simple moving average incrementally over a stream of
// prices. Push is O(1): it adds the newest price to a running sum and drops
// the price that fell out of the window.
type Rolling struct {
	period int
	window []float64
	sum    float64
	next   int
	warm   bool
}

// NewRolling creates a rolling SMA accumulator for the given period.
// Period must be positive; callers validate before constructing.
func NewRolling(period int) *Rolling {
	return &Rolling{
		period: period,
		window: make([]float64, 0, period),
	}
}

// Push adds a price and returns the current mean. The mean is defined only
// once the window has seen period prices; ok reports that.
func (r *Rolling) Push(price float64) (mean float64, ok bool) {
	if !r.warm {
		r.window = append(r.window, price)
		r.sum += price
		if len(r.window) == r.period {
			r.warm = true
			return r.sum / float64(r.period), true
		}
		return 0, false
	}

	r.sum += price - r.window[r.next]
	r.window[r.next] = price
	r.next = (r.next + 1) % r.period
	return r.sum / float64(r.period), true
}

// Warm reports whether the window holds a full period of prices.
func (r *Rolling) Warm() bool {
	return r.warm
}
