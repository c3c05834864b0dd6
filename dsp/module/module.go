package module

import "github.com/cwbudde/algo-loudness/dsp/buffer"

// State is the lifecycle state of a stage.
type State int

const (
	// StateUnconfigured means no coefficients or buffers are derived.
	StateUnconfigured State = iota

	// StateInitialized means coefficients, state and output are in place and
	// the internal state is cleared.
	StateInitialized

	// StateProcessing means at least one block has been processed since the
	// last Initialize or Reset.
	StateProcessing
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateUnconfigured:
		return "unconfigured"
	case StateInitialized:
		return "initialized"
	case StateProcessing:
		return "processing"
	default:
		return "unknown"
	}
}

// Module is the lifecycle interface consumed by pipelines.
type Module interface {
	// Name identifies the stage in diagnostics.
	Name() string

	// Initialize validates in, derives coefficients and state, and shapes
	// the output buffer.
	Initialize(in *buffer.Buffer) error

	// Process consumes in and overwrites the output buffer.
	Process(in *buffer.Buffer) error

	// Reset clears the internal state without re-deriving coefficients.
	Reset()

	// Output returns the buffer written by Process, or nil before a
	// successful Initialize.
	Output() *buffer.Buffer

	// State returns the current lifecycle state.
	State() State
}

// Kernel is the algorithm behind a stage.
type Kernel interface {
	// Name identifies the algorithm.
	Name() string

	// Configure validates in, derives coefficients, sizes the internal state
	// and returns a freshly shaped output buffer. It must not rely on values
	// derived by an earlier call.
	Configure(in *buffer.Buffer) (*buffer.Buffer, error)

	// ProcessBlock reads in and writes out. The shape of in matches the one
	// passed to Configure.
	ProcessBlock(in, out *buffer.Buffer)

	// ClearState zeroes delay lines, accumulators and ring buffers.
	ClearState()
}
