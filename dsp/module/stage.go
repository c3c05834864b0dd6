package module

import (
	"fmt"

	"github.com/cwbudde/algo-loudness/dsp/buffer"
)

var _ Module = (*Stage)(nil)

// Stage enforces the lifecycle contract around a Kernel.
type Stage struct {
	kernel Kernel
	out    *buffer.Buffer
	state  State
}

// NewStage wraps k in an unconfigured Stage.
func NewStage(k Kernel) *Stage {
	return &Stage{kernel: k}
}

// Kernel returns the wrapped algorithm.
func (s *Stage) Kernel() Kernel { return s.kernel }

// Name returns the kernel name.
func (s *Stage) Name() string { return s.kernel.Name() }

// State returns the current lifecycle state.
func (s *Stage) State() State { return s.state }

// Output returns the output buffer, or nil while unconfigured.
func (s *Stage) Output() *buffer.Buffer { return s.out }

// Initialize configures the kernel for in. On failure the stage is left
// unconfigured with no output buffer and the kernel's error is returned
// as is; kernel errors already name their package.
func (s *Stage) Initialize(in *buffer.Buffer) error {
	s.state = StateUnconfigured
	s.out = nil

	if in == nil {
		return fmt.Errorf("%s: %w", s.kernel.Name(), buffer.ErrInvalidShape)
	}

	out, err := s.kernel.Configure(in)
	if err != nil {
		return err
	}

	s.kernel.ClearState()
	s.out = out
	s.state = StateInitialized

	return nil
}

// Process runs the kernel on in. Untriggered input produces an untriggered
// output without touching the kernel state.
func (s *Stage) Process(in *buffer.Buffer) error {
	if s.state == StateUnconfigured {
		return fmt.Errorf("%s: %w", s.kernel.Name(), ErrNotInitialized)
	}

	if !in.Triggered() {
		s.out.SetTriggered(false)
		return nil
	}

	s.out.SetTriggered(true)
	s.kernel.ProcessBlock(in, s.out)
	s.state = StateProcessing

	return nil
}

// Reset clears the kernel state. It is a no-op while unconfigured.
func (s *Stage) Reset() {
	if s.state == StateUnconfigured {
		return
	}

	s.kernel.ClearState()
	s.out.Zero()
	s.state = StateInitialized
}

// Reconfigure runs fn, which typically calls parameter setters on the kernel,
// and returns the stage to the unconfigured state. The stage must be
// initialized again before further processing.
func (s *Stage) Reconfigure(fn func() error) error {
	s.state = StateUnconfigured
	s.out = nil

	if fn == nil {
		return nil
	}

	if err := fn(); err != nil {
		return fmt.Errorf("%s: %w", s.kernel.Name(), err)
	}

	return nil
}
