package hostabi

import (
	"github.com/rxtech-lab/argo-indicators/internal/indicator"
	"github.com/tetratelabs/wazero/api"
)

func u32(v uint64) uint32 { return api.DecodeU32(v) }

func s32(v uint64) int32 { return api.DecodeI32(v) }

// output pairs a pointer with the host buffer the kernel fills.
type output struct {
	ptr    uint32
	values []float64
}

// outputs checks every output region before the kernel runs.
func outputs(mem Memory, length int32, ptrs ...uint32) ([]output, [][]float64, error) {
	outs := make([]output, len(ptrs))
	bufs := make([][]float64, len(ptrs))

	for i, ptr := range ptrs {
		buf, err := checkWritable(mem, ptr, length)
		if err != nil {
			return nil, nil, err
		}

		outs[i] = output{ptr: ptr, values: buf}
		bufs[i] = buf
	}

	return outs, bufs, nil
}

func inputs(mem Memory, length int32, ptrs ...uint32) ([][]float64, error) {
	ins := make([][]float64, len(ptrs))

	for i, ptr := range ptrs {
		values, err := readFloats(mem, ptr, length)
		if err != nil {
			return nil, err
		}

		ins[i] = values
	}

	return ins, nil
}

func flush(mem Memory, outs []output) error {
	for _, out := range outs {
		if err := writeFloats(mem, out.ptr, out.values); err != nil {
			return err
		}
	}

	return nil
}

// periodFunc builds the (prices, length, period, result) shaped functions.
func periodFunc(name string, kernel func([]float64, int, []float64) error) hostFunc {
	return hostFunc{
		name:   name,
		params: []api.ValueType{i32, i32, i32, i32},
		call: func(mem Memory, stack []uint64) error {
			length := s32(stack[1])

			ins, err := inputs(mem, length, u32(stack[0]))
			if err != nil {
				return err
			}

			outs, bufs, err := outputs(mem, length, u32(stack[3]))
			if err != nil {
				return err
			}

			if err := kernel(ins[0], int(s32(stack[2])), bufs[0]); err != nil {
				return err
			}

			return flush(mem, outs)
		},
	}
}

func functions() []hostFunc {
	return []hostFunc{
		periodFunc("sma", indicator.SMA),
		periodFunc("ema", indicator.EMA),
		periodFunc("wma", indicator.WMA),
		periodFunc("rsi", indicator.RSI),
		{
			name:   "bollinger",
			params: []api.ValueType{i32, i32, i32, f64, i32, i32, i32},
			call: func(mem Memory, stack []uint64) error {
				length := s32(stack[1])

				ins, err := inputs(mem, length, u32(stack[0]))
				if err != nil {
					return err
				}

				outs, bufs, err := outputs(mem, length, u32(stack[4]), u32(stack[5]), u32(stack[6]))
				if err != nil {
					return err
				}

				err = indicator.BollingerBands(ins[0], int(s32(stack[2])), api.DecodeF64(stack[3]), bufs[0], bufs[1], bufs[2])
				if err != nil {
					return err
				}

				return flush(mem, outs)
			},
		},
		{
			name:   "macd",
			params: []api.ValueType{i32, i32, i32, i32, i32, i32, i32, i32},
			call: func(mem Memory, stack []uint64) error {
				length := s32(stack[1])

				ins, err := inputs(mem, length, u32(stack[0]))
				if err != nil {
					return err
				}

				outs, bufs, err := outputs(mem, length, u32(stack[5]), u32(stack[6]), u32(stack[7]))
				if err != nil {
					return err
				}

				err = indicator.MACD(ins[0], int(s32(stack[2])), int(s32(stack[3])), int(s32(stack[4])), bufs[0], bufs[1], bufs[2])
				if err != nil {
					return err
				}

				return flush(mem, outs)
			},
		},
		{
			name:   "stochastic",
			params: []api.ValueType{i32, i32, i32, i32, i32, i32, i32, i32},
			call: func(mem Memory, stack []uint64) error {
				length := s32(stack[3])

				ins, err := inputs(mem, length, u32(stack[0]), u32(stack[1]), u32(stack[2]))
				if err != nil {
					return err
				}

				outs, bufs, err := outputs(mem, length, u32(stack[6]), u32(stack[7]))
				if err != nil {
					return err
				}

				err = indicator.Stochastic(ins[0], ins[1], ins[2], int(s32(stack[4])), int(s32(stack[5])), bufs[0], bufs[1])
				if err != nil {
					return err
				}

				return flush(mem, outs)
			},
		},
		{
			name:   "vwap",
			params: []api.ValueType{i32, i32, i32, i32, i32, i32},
			call: func(mem Memory, stack []uint64) error {
				length := s32(stack[4])

				ins, err := inputs(mem, length, u32(stack[0]), u32(stack[1]), u32(stack[2]), u32(stack[3]))
				if err != nil {
					return err
				}

				outs, bufs, err := outputs(mem, length, u32(stack[5]))
				if err != nil {
					return err
				}

				if err := indicator.VWAP(ins[0], ins[1], ins[2], ins[3], bufs[0]); err != nil {
					return err
				}

				return flush(mem, outs)
			},
		},
		{
			name:   "obv",
			params: []api.ValueType{i32, i32, i32, i32},
			call: func(mem Memory, stack []uint64) error {
				length := s32(stack[2])

				ins, err := inputs(mem, length, u32(stack[0]), u32(stack[1]))
				if err != nil {
					return err
				}

				outs, bufs, err := outputs(mem, length, u32(stack[3]))
				if err != nil {
					return err
				}

				if err := indicator.OBV(ins[0], ins[1], bufs[0]); err != nil {
					return err
				}

				return flush(mem, outs)
			},
		},
	}
}
