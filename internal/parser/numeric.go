package parser

import (
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"
)

var (
	errNotArray   = errors.New("not an array literal")
	errEmptyArray = errors.New("array has no elements")
)

// parseFloatPrefix reads the longest numeric prefix of s. Trailing garbage
// is ignored; a string without any numeric prefix yields NaN.
func parseFloatPrefix(s string) float64 {
	s = strings.TrimLeft(s, " \t\r\n\v\f")
	i := 0
	neg := false
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		neg = s[i] == '-'
		i++
	}
	if strings.HasPrefix(s[i:], "Infinity") {
		if neg {
			return math.Inf(-1)
		}
		return math.Inf(1)
	}

	digits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		j := i + 1
		frac := 0
		for j < len(s) && isDigit(s[j]) {
			j++
			frac++
		}
		if digits+frac > 0 {
			i = j
			digits += frac
		}
	}
	if digits == 0 {
		return math.NaN()
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		k := j
		for k < len(s) && isDigit(s[k]) {
			k++
		}
		if k > j {
			i = k
		}
	}

	v, err := strconv.ParseFloat(s[:i], 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return math.NaN()
	}
	return v
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// firstOfArray decodes a JSON array of numbers and returns its first element.
func firstOfArray(field string) (float64, error) {
	if !strings.HasPrefix(field, "[") {
		return 0, errNotArray
	}
	var vals []float64
	if err := json.Unmarshal([]byte(field), &vals); err != nil {
		return 0, err
	}
	if len(vals) == 0 {
		return 0, errEmptyArray
	}
	return vals[0], nil
}
