// Package butter provides a third-order Butterworth recursive filter stage.
//
// Coefficients come from the bilinear transform of the analog prototype
//
//	H(s) = 1 / (s^3 + 2s^2 + 2s + 1)
//
// with the cutoff pre-warped as K = tan(pi*fc/fs). The denominator is
// normalised so that a[0] = 1, the numerator keeps its binomial shape
// ({1, 3, 3, 1} for low-pass, {1, -3, 3, -1} for high-pass) and the remaining
// scale factor is applied to each input sample before the recursion:
//
//	x' = gain * x
//	y  = b0*x' + b1*x'[n-1] + b2*x'[n-2] + b3*x'[n-3]
//	   - a1*y[n-1] - a2*y[n-2] - a3*y[n-3]
//
// Every (source, ear, channel) triple owns a six-slot delay line, so a signal
// processed in blocks of any size produces the same output as one pass.
package butter
