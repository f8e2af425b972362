package hostabi

import (
	"context"
	"io"

	"github.com/rxtech-lab/argo-indicators/pkg/errors"
	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"
	"github.com/tetratelabs/wazero/sys"
)

// GuestOptions configures RunGuest.
type GuestOptions struct {
	Args   []string
	Stdout io.Writer
	Stderr io.Writer
}

// RunGuest compiles a WASI module, links it against the host module and runs
// its "_start" function. A non-zero exit code is reported as ErrCodeGuestFailed.
func (h *Host) RunGuest(ctx context.Context, wasm []byte, opts GuestOptions) error {
	// A fresh runtime per guest so that modules do not conflict.
	r := wazero.NewRuntime(ctx)
	defer r.Close(ctx)

	if _, err := wasi_snapshot_preview1.Instantiate(ctx, r); err != nil {
		return errors.Wrap(errors.ErrCodeHostModuleFailed, "failed to instantiate WASI", err)
	}

	if _, err := h.Instantiate(ctx, r); err != nil {
		return err
	}

	code, err := r.CompileModule(ctx, wasm)
	if err != nil {
		return errors.Wrap(errors.ErrCodeGuestFailed, "failed to compile guest module", err)
	}

	config := wazero.NewModuleConfig().WithArgs(append([]string{"guest"}, opts.Args...)...)
	if opts.Stdout != nil {
		config = config.WithStdout(opts.Stdout)
	}

	if opts.Stderr != nil {
		config = config.WithStderr(opts.Stderr)
	}

	module, err := r.InstantiateModule(ctx, code, config)
	if err != nil {
		if exitErr, ok := err.(*sys.ExitError); ok {
			if exitErr.ExitCode() == 0 {
				return nil
			}

			return errors.Newf(errors.ErrCodeGuestFailed, "guest exited with code %d", exitErr.ExitCode())
		}

		return errors.Wrap(errors.ErrCodeGuestFailed, "failed to run guest module", err)
	}

	return module.Close(ctx)
}
