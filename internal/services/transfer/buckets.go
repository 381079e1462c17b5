package transfer

import "fmt"

// bucketIndex picks the amount bucket: the index i with
// amount in [thresholds[i], thresholds[i+1]), or the last bucket when the
// amount is at or above the highest threshold. Amounts below the first
// threshold land in the first bucket. Thresholds must be non-empty and
// ascending; an empty table is a configuration error, never a silent
// default.
func bucketIndex(thresholds []float64, amount float64) (int, error) {
	if len(thresholds) == 0 {
		return 0, fmt.Errorf("amount threshold table is empty")
	}
	idx := 0
	for i, t := range thresholds {
		if amount >= t {
			idx = i
		}
	}
	return idx, nil
}
