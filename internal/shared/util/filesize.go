package util

import (
	"math"
	"strconv"
)

var sizeUnits = []string{"B", "KB", "MB", "GB"}

// FormatFileSize renders a byte count in human-readable form with at most
// two decimal places, e.g. "512 B", "1.5 KB", "10 MB".
func FormatFileSize(n int64) string {
	if n <= 0 {
		return "0B"
	}
	v := float64(n)
	unit := 0
	for v >= 1024 && unit < len(sizeUnits)-1 {
		v /= 1024
		unit++
	}
	v = math.Round(v*100) / 100
	return strconv.FormatFloat(v, 'f', -1, 64) + " " + sizeUnits[unit]
}
