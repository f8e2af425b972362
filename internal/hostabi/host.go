// Package hostabi exposes the indicator kernels to WebAssembly guests.
//
// The host module is named "argo_indicators". Every function takes pointers
// into the caller's linear memory plus an explicit element count, with
// values stored as little-endian float64. Functions return 0 on success or
// an error code from pkg/errors. Outputs are only written back when the
// kernel succeeds.
package hostabi

import (
	"context"

	"github.com/rxtech-lab/argo-indicators/internal/logger"
	"github.com/rxtech-lab/argo-indicators/internal/metrics"
	"github.com/rxtech-lab/argo-indicators/pkg/errors"
	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"
)

// ModuleName is the import module guests link against.
const ModuleName = "argo_indicators"

var (
	i32 = api.ValueTypeI32
	f64 = api.ValueTypeF64
)

var hostFuncs = functions()

// hostFunc is one exported function. call reads its arguments from stack and
// returns the kernel error, if any.
type hostFunc struct {
	name   string
	params []api.ValueType
	call   func(mem Memory, stack []uint64) error
}

type Host struct {
	metrics *metrics.Metrics
	logger  *logger.Logger
}

func NewHost(log *logger.Logger, m *metrics.Metrics) *Host {
	if log == nil {
		log = logger.NewNopLogger()
	}

	return &Host{
		metrics: m,
		logger:  log,
	}
}

// Instantiate registers the host module in r. It must be called before any
// guest importing it is instantiated.
func (h *Host) Instantiate(ctx context.Context, r wazero.Runtime) (api.Module, error) {
	builder := r.NewHostModuleBuilder(ModuleName)

	for _, fn := range hostFuncs {
		builder.NewFunctionBuilder().
			WithGoModuleFunction(h.wrap(fn), fn.params, []api.ValueType{i32}).
			WithParameterNames(paramNames(fn)...).
			Export(fn.name)
	}

	module, err := builder.Instantiate(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeHostModuleFailed, "failed to instantiate host module", err)
	}

	return module, nil
}

// wrap adapts fn to wazero's stack calling convention.
func (h *Host) wrap(fn hostFunc) api.GoModuleFunc {
	return func(ctx context.Context, mod api.Module, stack []uint64) {
		var mem Memory
		if m := mod.Memory(); m != nil {
			mem = m
		}

		err := h.Call(fn.name, mem, stack)
		stack[0] = api.EncodeI32(int32(resultCode(err)))
	}
}

// Call runs the named host function against mem with wazero encoded
// arguments. It is what guests reach through the module and is exported for
// callers that manage memory themselves.
func (h *Host) Call(name string, mem Memory, stack []uint64) error {
	fn, ok := lookup(name)
	if !ok {
		return errors.Newf(errors.ErrCodeIndicatorNotFound, "host function %q does not exist", name)
	}

	if len(stack) < len(fn.params) {
		return errors.Newf(errors.ErrCodeInvalidParameter, "%s expects %d arguments, got %d", name, len(fn.params), len(stack))
	}

	var err error
	if mem == nil {
		err = errors.New(errors.ErrCodeInvalidBuffer, "caller has no linear memory")
	} else {
		err = fn.call(mem, stack)
	}

	h.metrics.ObserveHostCall(name, err)

	if err != nil {
		h.logger.Debug("Host call failed", zap.String("function", name), zap.Error(err))
	}

	return err
}

func resultCode(err error) errors.ErrorCode {
	if err == nil {
		return 0
	}

	return errors.GetCode(err)
}

func lookup(name string) (hostFunc, bool) {
	for _, fn := range hostFuncs {
		if fn.name == name {
			return fn, true
		}
	}

	return hostFunc{}, false
}

func paramNames(fn hostFunc) []string {
	switch fn.name {
	case "bollinger":
		return []string{"prices_ptr", "length", "period", "multiplier", "upper_ptr", "middle_ptr", "lower_ptr"}
	case "macd":
		return []string{"prices_ptr", "length", "fast_period", "slow_period", "signal_period", "macd_ptr", "signal_ptr", "histogram_ptr"}
	case "stochastic":
		return []string{"high_ptr", "low_ptr", "close_ptr", "length", "k_period", "d_period", "k_ptr", "d_ptr"}
	case "vwap":
		return []string{"high_ptr", "low_ptr", "close_ptr", "volume_ptr", "length", "result_ptr"}
	case "obv":
		return []string{"close_ptr", "volume_ptr", "length", "result_ptr"}
	default:
		return []string{"prices_ptr", "length", "period", "result_ptr"}
	}
}
