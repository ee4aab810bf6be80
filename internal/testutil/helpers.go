// Package testutil provides reusable assertion helpers for the converter
// test suites.
package testutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Sample covers the two sample precisions used across the module.
type Sample interface {
	~float32 | ~float64
}

// AssertNoNaNOrInf verifies that no element of the slice is NaN or Inf.
func AssertNoNaNOrInf[S Sample](t *testing.T, s []S) bool {
	t.Helper()
	for i, v := range s {
		f := float64(v)
		if math.IsNaN(f) {
			return assert.Fail(t, "found NaN", "s[%d] is NaN", i)
		}
		if math.IsInf(f, 0) {
			return assert.Fail(t, "found Inf", "s[%d] is Inf", i)
		}
	}
	return true
}

// AssertSymmetric verifies that a slice is symmetric (s[i] == s[n-1-i]).
func AssertSymmetric[S Sample](t *testing.T, s []S, tolerance float64) bool {
	t.Helper()
	n := len(s)
	for i := 0; i < n/2; i++ {
		j := n - 1 - i
		if !assert.InDelta(t, float64(s[i]), float64(s[j]), tolerance,
			"slice not symmetric: s[%d]=%v != s[%d]=%v", i, s[i], j, s[j]) {
			return false
		}
	}
	return true
}

// MaxAbsDiff returns the largest absolute element-wise difference between
// two equal-length slices.
func MaxAbsDiff[S Sample](a, b []S) float64 {
	var peak float64
	for i := range a {
		d := math.Abs(float64(a[i]) - float64(b[i]))
		if d > peak {
			peak = d
		}
	}
	return peak
}
