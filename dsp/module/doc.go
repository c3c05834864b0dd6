// Package module defines the execution contract shared by every processing
// stage.
//
// A stage moves through a small state machine:
//
//	Unconfigured --Initialize--> Initialized --Process--> Processing
//	     ^                           ^                        |
//	     |                           +---------Reset----------+
//	     +--------Reconfigure / failed Initialize-------------+
//
// Algorithms implement [Kernel]: they validate an input buffer and derive
// their coefficients, state and output buffer in Configure, and fill the
// output in ProcessBlock. [Stage] wraps a Kernel and enforces the lifecycle,
// so pipelines only ever see the [Module] interface.
//
// Structural problems (wrong channel count, unsupported parameters) are
// reported by Initialize and nowhere else. ProcessBlock trusts its input.
package module
