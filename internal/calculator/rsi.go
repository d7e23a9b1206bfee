package calculator

import (
	"errors"
	"math"
)

// RSISeries computes the RSI for every bar using exponential smoothing
// with alpha = 1/period on gains and losses independently. The first
// element is NaN (no prior close to diff against); every later element
// is defined. A zero average loss resolves to RSI = 100 by convention,
// never to NaN or a division error.
func RSISeries(closes []float64, period int) ([]float64, error) {
	if period <= 0 {
		return nil, errors.New("period must be positive")
	}
	out := make([]float64, len(closes))
	if len(closes) == 0 {
		return out, nil
	}
	out[0] = math.NaN()

	alpha := 1.0 / float64(period)
	var avgGain, avgLoss float64
	for i := 1; i < len(closes); i++ {
		delta := closes[i] - closes[i-1]
		gain, loss := 0.0, 0.0
		if delta > 0 {
			gain = delta
		} else {
			loss = -delta
		}
		if i == 1 {
			avgGain, avgLoss = gain, loss
		} else {
			avgGain = alpha*gain + (1-alpha)*avgGain
			avgLoss = alpha*loss + (1-alpha)*avgLoss
		}
		if avgLoss == 0 {
			out[i] = 100.0
		} else {
			rs := avgGain / avgLoss
			out[i] = 100.0 - 100.0/(1.0+rs)
		}
	}
	return out, nil
}
