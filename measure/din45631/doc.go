// Package din45631 computes the critical-band main loudness of DIN 45631 /
// ISO 532 B from 28 third-octave band levels.
//
// The input holds one level in dB per third-octave band from 25 Hz to
// 12.5 kHz. The lowest eleven bands are corrected for their level-dependent
// weighting and merged into the first three critical bands, the remaining
// seventeen map one-to-one onto critical bands 3..19. Each critical-band
// level is then corrected for the outer-ear transmission of the selected
// sound field and converted to main loudness (sone per bark).
//
// The output carries 21 channels: 20 main-loudness values followed by a
// reserved slot that is always zero.
package din45631
