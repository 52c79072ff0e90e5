package units

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var ErrInvalidSizeFormat = errors.New("invalid size format")

// Accepted form is <number><unit> with nothing else: an integer or
// decimal literal immediately followed by one of B, K, M, G in either
// case. Binary multipliers.
var sizePattern = regexp.MustCompile(`^(\d+(?:\.\d+)?)([BKMGbkmg])$`)

var multipliers = map[string]int64{
	"B": 1,
	"K": 1 << 10,
	"M": 1 << 20,
	"G": 1 << 30,
}

var unitOrder = []string{"B", "K", "M", "G"}

// Parse converts a size string such as "100M" or "2.5G" into bytes.
// The text must match the form exactly; callers trim prompt input.
func Parse(text string) (int64, error) {
	match := sizePattern.FindStringSubmatch(text)
	if match == nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidSizeFormat, text)
	}
	value, err := strconv.ParseFloat(match[1], 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidSizeFormat, text)
	}
	factor := multipliers[strings.ToUpper(match[2])]
	return int64(math.Round(value * float64(factor))), nil
}

// Format renders bytes with the largest unit whose magnitude is >= 1,
// using the same vocabulary Parse accepts. Values below 1K print as
// whole bytes; everything else keeps one decimal place.
func Format(bytes int64) string {
	value := float64(bytes)
	unit := unitOrder[0]
	for _, next := range unitOrder[1:] {
		// 1023.95 and above would print as "1024.0", so roll over.
		if value < 1023.95 {
			break
		}
		value /= 1024
		unit = next
	}
	if unit == "B" {
		return fmt.Sprintf("%d%s", bytes, unit)
	}
	return fmt.Sprintf("%.1f%s", value, unit)
}
