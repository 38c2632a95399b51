package mock

import "math"

// Score computes the raw and negative-marked net score.
// Unanswered questions score zero either way.
func Score(correct, wrong int, negativeMarking float64, precision int) (raw, net float64) {
	raw = float64(correct)
	net = raw - float64(wrong)*negativeMarking

	factor := math.Pow(10, float64(precision))
	net = math.Round(net*factor) / factor
	return raw, net
}
