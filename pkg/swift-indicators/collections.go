package swiftindicators

import "math"

// StringCollection is a gomobile-compatible interface for passing string collections to Swift.
// Note: gomobile doesn't support returning slices, so we use Get(i) + Size() pattern.
type StringCollection interface {
	Add(s string) StringCollection
	Get(i int) string
	Size() int
}

type StringArray struct {
	items []string
}

// NewStringArray creates a new empty StringArray.
func NewStringArray() *StringArray {
	return &StringArray{items: []string{}}
}

func (a *StringArray) Add(s string) StringCollection {
	a.items = append(a.items, s)

	return a
}

func (a *StringArray) Get(i int) string {
	if i < 0 || i >= len(a.items) {
		return ""
	}

	return a.items[i]
}

func (a *StringArray) Size() int {
	return len(a.items)
}

// FloatCollection passes price series across the gomobile boundary.
type FloatCollection interface {
	Add(v float64) FloatCollection
	Get(i int) float64
	Size() int
}

type FloatArray struct {
	items []float64
}

// NewFloatArray creates a new empty FloatArray.
// This is the constructor that should be used from Swift via gomobile.
func NewFloatArray() *FloatArray {
	return &FloatArray{items: []float64{}}
}

func newFloatArrayFrom(values []float64) *FloatArray {
	return &FloatArray{items: values}
}

func (a *FloatArray) Add(v float64) FloatCollection {
	a.items = append(a.items, v)

	return a
}

// Get returns NaN for an out of range index, the same value used for
// points an indicator cannot compute yet.
func (a *FloatArray) Get(i int) float64 {
	if i < 0 || i >= len(a.items) {
		return math.NaN()
	}

	return a.items[i]
}

func (a *FloatArray) Size() int {
	return len(a.items)
}

// values copies any FloatCollection into a slice. A nil collection stays nil.
func values(c FloatCollection) []float64 {
	if c == nil {
		return nil
	}

	if arr, ok := c.(*FloatArray); ok {
		if arr == nil {
			return nil
		}

		out := make([]float64, len(arr.items))
		copy(out, arr.items)

		return out
	}

	out := make([]float64, c.Size())
	for i := range out {
		out[i] = c.Get(i)
	}

	return out
}
