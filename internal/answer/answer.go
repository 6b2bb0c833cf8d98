// Package answer compares typed answers against the accepted forms of an
// exercise, in exact or numeric-tolerance mode.
//
// Normalization rules:
//   - Exact: all whitespace is removed and letters are upper-cased on both
//     sides; any accepted form may match.
//   - Numeric: a comma is read as the decimal point; both sides are rounded
//     to the configured number of decimals (default 1) and must agree to
//     within 1e-9.
package answer

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/abhisek/numa/internal/exercise"
	"github.com/abhisek/numa/internal/expr"
)

const (
	// DefaultDecimals is the rounding precision for numeric answers.
	DefaultDecimals = 1

	// numericMaxLength is the minimum input width for numeric answers
	// without an explicit maxLength.
	numericMaxLength = 6

	tolerance = 1e-9
)

// Checker holds the precomputed comparison state for one presented item.
type Checker struct {
	numeric    bool
	normalized []string
	lengths    []int
	maxLength  int
	minLength  int
	target     float64
	hasTarget  bool
	multiplier float64
}

// NewChecker prepares a checker for an exercise as presented.
func NewChecker(ex exercise.Exercise) *Checker {
	return newChecker(ex.AcceptedAnswers(), ex.PrimaryAnswer(), ex.ValidationSpec())
}

func newChecker(accepted []string, primary string, vs *exercise.ValidationSpec) *Checker {
	if len(accepted) == 0 {
		accepted = []string{primary}
	}

	c := &Checker{numeric: vs.IsNumeric()}

	for _, a := range accepted {
		if n := utf8.RuneCountInString(a); n > 0 {
			c.lengths = append(c.lengths, n)
		}
	}
	if len(c.lengths) == 0 {
		c.lengths = []int{max(utf8.RuneCountInString(primary), 1)}
	}

	c.maxLength = max(1, maxOf(c.lengths))
	switch {
	case c.numeric && vs.MaxLength != nil:
		c.maxLength = max(1, *vs.MaxLength)
	case c.numeric:
		c.maxLength = max(c.maxLength, numericMaxLength)
	case vs != nil && vs.MaxLength != nil:
		c.maxLength = max(1, *vs.MaxLength)
	}

	if !c.numeric {
		c.normalized = make([]string, len(accepted))
		for i, a := range accepted {
			c.normalized[i] = normalize(a)
		}
		return c
	}

	decimals := DefaultDecimals
	if vs.Decimals != nil {
		decimals = *vs.Decimals
	}
	c.multiplier = math.Pow(10, float64(decimals))

	if vs.Target != nil && !math.IsNaN(*vs.Target) && !math.IsInf(*vs.Target, 0) {
		c.target, c.hasTarget = c.round(*vs.Target), true
	} else if v, ok := expr.ParseNumber(primary); ok {
		c.target, c.hasTarget = c.round(v), true
	}

	if vs.MinLength != nil {
		c.minLength = max(1, *vs.MinLength)
	} else {
		c.minLength = max(1, utf8.RuneCountInString(stripSpace(primary)))
	}
	return c
}

// Evaluate reports whether submitted matches any of accepted under vs.
// It never fails: malformed input is simply a wrong answer.
func Evaluate(submitted string, vs *exercise.ValidationSpec, accepted []string) bool {
	primary := ""
	if len(accepted) > 0 {
		primary = accepted[0]
	}
	return newChecker(accepted, primary, vs).Evaluate(submitted)
}

// Numeric reports whether the checker compares numerically.
func (c *Checker) Numeric() bool { return c.numeric }

// MaxLength is the longest input accepted; longer input is truncated.
func (c *Checker) MaxLength() int { return c.maxLength }

// Clamp trims surrounding whitespace and truncates to MaxLength.
// truncated reports whether characters were dropped.
func (c *Checker) Clamp(raw string) (value string, truncated bool) {
	value = strings.TrimSpace(raw)
	if utf8.RuneCountInString(value) <= c.maxLength {
		return value, false
	}
	runes := []rune(value)
	return string(runes[:c.maxLength]), true
}

// Ready reports whether enough has been typed to attempt a check. In exact
// mode the trimmed input must be exactly as long as one of the accepted
// answers; in numeric mode the whitespace-free input must reach the minimum
// length.
func (c *Checker) Ready(value string) bool {
	if c.numeric {
		return utf8.RuneCountInString(stripSpace(value)) >= c.minLength
	}
	n := utf8.RuneCountInString(strings.TrimSpace(value))
	for _, l := range c.lengths {
		if l == n {
			return true
		}
	}
	return false
}

// Evaluate compares value against the accepted answers.
func (c *Checker) Evaluate(value string) bool {
	if c.numeric {
		if !c.hasTarget {
			return false
		}
		v, ok := expr.ParseNumber(value)
		if !ok {
			return false
		}
		return math.Abs(c.round(v)-c.target) < tolerance
	}
	n := normalize(value)
	for _, a := range c.normalized {
		if a == n {
			return true
		}
	}
	return false
}

// round rounds half up, matching how targets are written by hand.
func (c *Checker) round(v float64) float64 {
	return math.Floor(v*c.multiplier+0.5) / c.multiplier
}

func normalize(s string) string {
	return strings.ToUpper(stripSpace(s))
}

func stripSpace(s string) string {
	return strings.Join(strings.Fields(s), "")
}

func maxOf(vals []int) int {
	m := 0
	for _, v := range vals {
		m = max(m, v)
	}
	return m
}
