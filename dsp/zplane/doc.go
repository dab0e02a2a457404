// Package zplane models morphing resonator shapes as conjugate pole pairs
// on the z-plane.
//
// A [Shape] holds [NumSections] pole pairs authored at [ReferenceRate].
// Poles are blended with [Interpolate], retargeted to the active sample
// rate with [Remap], sharpened with [BoostRadius] and voiced into biquad
// sections with [Coefficients]. The morphing filter in dsp/morph drives
// this pipeline once per audio block.
package zplane
