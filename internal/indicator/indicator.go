// Package indicator implements technical indicator kernels over float64 series.
//
// Every kernel reads one or more input series and fully overwrites caller
// allocated output slices of the same length. Index i of an output always
// corresponds to index i of the input and only depends on inputs [0, i].
// Points that cannot be computed yet (the warm-up region) are set to NaN.
//
// Kernels validate all of their arguments before writing anything, so a
// returned error means the outputs were left untouched. Errors carry one of
// the validation codes from pkg/errors:
//
//   - ErrCodeInvalidBuffer: a nil input or output, or an output whose length differs from the input
//   - ErrCodeInvalidPeriod: a period that is not positive
//   - ErrCodeInvalidLength: a period longer than the series, or inputs of different lengths
//   - ErrCodeInvalidParameter: any other out of range argument
//
// Kernels are pure and hold no state, so calls with disjoint buffers may run
// concurrently. Input and output slices must not overlap.
package indicator

import (
	"math"

	"github.com/rxtech-lab/argo-indicators/pkg/errors"
)

// IsUndefined reports whether v is the warm-up sentinel.
func IsUndefined(v float64) bool {
	return math.IsNaN(v)
}

func fillNaN(dst []float64) {
	nan := math.NaN()
	for i := range dst {
		dst[i] = nan
	}
}

// inputLength checks that every input series is present and that all of them
// have the same length, which it returns.
func inputLength(name string, inputs ...[]float64) (int, error) {
	n := -1

	for _, in := range inputs {
		if in == nil {
			return 0, errors.Newf(errors.ErrCodeInvalidBuffer, "%s: input series is nil", name)
		}

		if n == -1 {
			n = len(in)

			continue
		}

		if len(in) != n {
			return 0, errors.Newf(errors.ErrCodeInvalidLength, "%s: input series have different lengths (%d and %d)", name, n, len(in))
		}
	}

	return n, nil
}

func checkOutputs(name string, n int, outputs ...[]float64) error {
	for _, out := range outputs {
		if out == nil {
			return errors.Newf(errors.ErrCodeInvalidBuffer, "%s: output buffer is nil", name)
		}

		if len(out) != n {
			return errors.Newf(errors.ErrCodeInvalidBuffer, "%s: output buffer has length %d, expected %d", name, len(out), n)
		}
	}

	return nil
}

func checkPeriod(name, param string, period, n int) error {
	if period <= 0 {
		return errors.Newf(errors.ErrCodeInvalidPeriod, "%s: %s must be a positive integer, got %d", name, param, period)
	}

	if period > n {
		return errors.Newf(errors.ErrCodeInvalidLength, "%s: %s %d exceeds series length %d", name, param, period, n)
	}

	return nil
}

// checkSingle validates the common single input, single output, single period shape.
func checkSingle(name string, prices []float64, period int, result []float64) error {
	n, err := inputLength(name, prices)
	if err != nil {
		return err
	}

	if err := checkOutputs(name, n, result); err != nil {
		return err
	}

	return checkPeriod(name, "period", period, n)
}

func mean(values []float64) float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}

	return sum / float64(len(values))
}
