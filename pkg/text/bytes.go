package text

import (
	"strconv"
)

// byteUnits are binary (1024-based) magnitude suffixes, smallest first.
var byteUnits = [...]string{"b", "kb", "mb", "gb", "tb"}

// FormatBytes renders a byte count with the largest binary unit it reaches,
// truncating rather than rounding: 1023 -> "1023b", 1536 -> "1kb".
// Counts of a terabyte-squared and beyond stay in "tb".
func FormatBytes(n int64) string {
	if n < 0 {
		n = 0
	}
	div := int64(1)
	exp := 0
	for n/div >= 1024 && exp < len(byteUnits)-1 {
		div *= 1024
		exp++
	}
	return strconv.FormatInt(n/div, 10) + byteUnits[exp]
}
