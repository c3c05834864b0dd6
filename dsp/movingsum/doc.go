// Package movingsum provides a sliding-window sum / average stage.
//
// Each (source, ear, channel) triple keeps two accumulators and a ring buffer
// holding the last window of (optionally squared) input samples. The running
// accumulator is updated incrementally,
//
//	running += x[n] - x[n-window]
//
// while the safe accumulator sums the current window cycle from scratch.
// Whenever the ring index wraps, the running value is replaced by the safe
// one and the safe accumulator restarts at zero, which keeps the rounding
// error of the incremental update bounded for arbitrarily long signals.
//
// With squared input and averaging enabled the stage yields a running mean
// square, the usual building block of level meters.
package movingsum
