package hostabi

import (
	"encoding/binary"
	"math"

	"github.com/rxtech-lab/argo-indicators/pkg/errors"
)

const float64Size = 8

// Memory is the part of a guest's linear memory the host functions touch.
// wazero's api.Memory satisfies it.
type Memory interface {
	Read(offset, byteCount uint32) ([]byte, bool)
	Write(offset uint32, v []byte) bool
}

// region converts a pointer and element count into a byte range, rejecting
// null pointers and ranges that cannot fit in 32-bit memory.
func region(ptr uint32, length int32) (uint32, error) {
	if ptr == 0 {
		return 0, errors.New(errors.ErrCodeInvalidBuffer, "null pointer")
	}

	if length < 0 {
		return 0, errors.Newf(errors.ErrCodeInvalidLength, "negative length %d", length)
	}

	size := uint64(length) * float64Size
	if uint64(ptr)+size > math.MaxUint32+1 {
		return 0, errors.Newf(errors.ErrCodeInvalidBuffer, "region at %d with %d values overflows memory", ptr, length)
	}

	return uint32(size), nil
}

// readFloats copies length little-endian float64 values out of guest memory.
func readFloats(mem Memory, ptr uint32, length int32) ([]float64, error) {
	size, err := region(ptr, length)
	if err != nil {
		return nil, err
	}

	buf, ok := mem.Read(ptr, size)
	if !ok {
		return nil, errors.Newf(errors.ErrCodeInvalidBuffer, "region at %d with %d values is out of range", ptr, length)
	}

	values := make([]float64, length)
	for i := range values {
		values[i] = math.Float64frombits(binary.LittleEndian.Uint64(buf[i*float64Size:]))
	}

	return values, nil
}

// checkWritable verifies that an output region lies inside guest memory and
// returns a host buffer for the kernel to fill.
func checkWritable(mem Memory, ptr uint32, length int32) ([]float64, error) {
	size, err := region(ptr, length)
	if err != nil {
		return nil, err
	}

	if _, ok := mem.Read(ptr, size); !ok {
		return nil, errors.Newf(errors.ErrCodeInvalidBuffer, "output region at %d with %d values is out of range", ptr, length)
	}

	return make([]float64, length), nil
}

func writeFloats(mem Memory, ptr uint32, values []float64) error {
	buf := make([]byte, len(values)*float64Size)
	for i, v := range values {
		binary.LittleEndian.PutUint64(buf[i*float64Size:], math.Float64bits(v))
	}

	if !mem.Write(ptr, buf) {
		return errors.Newf(errors.ErrCodeInvalidBuffer, "failed to write %d values at %d", len(values), ptr)
	}

	return nil
}
