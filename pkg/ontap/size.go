package ontap

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var sizePattern = regexp.MustCompile(`(?i)^\s*([0-9]+(?:\.[0-9]+)?)\s*(B|KB|MB|GB|TB|PB)?\s*$`)

var sizeUnits = []string{"B", "KB", "MB", "GB", "TB", "PB"}

// ParseSize converts a human-readable byte size like "100GB" into integer
// bytes. Units are base-1024, case-insensitive and optional (plain numbers
// are bytes); fractional results are floored.
func ParseSize(text string) (int64, error) {
	match := sizePattern.FindStringSubmatch(text)
	if match == nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidSize, text)
	}

	number, err := strconv.ParseFloat(match[1], 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidSize, text)
	}

	exponent := 0
	if match[2] != "" {
		for i, unit := range sizeUnits {
			if strings.EqualFold(unit, match[2]) {
				exponent = i

				break
			}
		}
	}

	return int64(math.Floor(number * math.Pow(1024, float64(exponent)))), nil
}

// FormatBytes renders n with the largest unit whose mantissa is at least 1,
// rounded to two decimals. Not an exact inverse of ParseSize: the rounding is
// intentionally lossy, this is a display helper.
func FormatBytes(n int64) string {
	if n <= 0 {
		return "0 B"
	}

	value := float64(n)
	exponent := 0

	for value >= 1024 && exponent < len(sizeUnits)-1 {
		value /= 1024
		exponent++
	}

	value = math.Round(value*100) / 100

	return strconv.FormatFloat(value, 'f', -1, 64) + " " + sizeUnits[exponent]
}
